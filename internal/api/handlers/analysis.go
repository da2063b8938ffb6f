package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pointbreak45/Street-Eye/internal/export"
	"github.com/pointbreak45/Street-Eye/internal/models"
	"github.com/pointbreak45/Street-Eye/internal/services/analysis"
)

type AnalysisHandler struct {
	svc *analysis.Service
}

func NewAnalysisHandler(svc *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

type ErrorResponse struct {
	Error string `json:"error" example:"run not found"`
}

// CreateAnalysisRequest starts a run. Kind "video" processes Source as
// a video file or stream URL in-process; kind "ingest" opens a run that
// accepts detection batches over POST /analyses/{id}/frames.
type CreateAnalysisRequest struct {
	Source string  `json:"source" binding:"required" example:"videos/traffic.mp4"`
	Kind   string  `json:"kind" example:"video"`
	FPS    float64 `json:"fps" example:"25"`
}

// FrameDetection is one detection inside an ingested frame.
type FrameDetection struct {
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Label   string  `json:"label" example:"car"`
	Score   float32 `json:"score" example:"0.87"`
	TrackID *int64  `json:"track_id,omitempty"`
}

// IngestFrame is one frame's worth of detections.
type IngestFrame struct {
	FrameIndex int64            `json:"frame_index"`
	Detections []FrameDetection `json:"detections"`
}

type IngestFramesRequest struct {
	Frames []IngestFrame `json:"frames" binding:"required"`
}

type IngestFramesResponse struct {
	Events []models.CrossingEvent `json:"events"`
}

// @Summary Start an analysis run
// @Description Start a video analysis run or open a detection ingest run
// @Tags analyses
// @Accept json
// @Produce json
// @Param request body CreateAnalysisRequest true "Run configuration"
// @Success 202 {object} models.AnalysisRun
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analyses [post]
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Invalid analysis request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var (
		run models.AnalysisRun
		err error
	)
	switch req.Kind {
	case "", "video":
		// The run outlives this request.
		run, err = h.svc.StartVideoRun(context.Background(), req.Source)
	case "ingest":
		run, err = h.svc.CreateIngestRun(req.Source, req.FPS)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "kind must be \"video\" or \"ingest\""})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("source", req.Source).Msg("Failed to start analysis run")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, run)
}

// @Summary List analysis runs
// @Tags analyses
// @Produce json
// @Success 200 {array} models.AnalysisRun
// @Failure 500 {object} ErrorResponse
// @Router /analyses [get]
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	runs, err := h.svc.ListRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// @Summary Get one analysis run
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.AnalysisRun
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	run, err := h.svc.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary Per-second counts for a completed run
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} models.Bucket
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id}/timeseries [get]
func (h *AnalysisHandler) GetTimeSeries(c *gin.Context) {
	series, err := h.svc.GetSeries(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, series)
}

// @Summary Summary statistics for a completed run
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.Summary
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id}/summary [get]
func (h *AnalysisHandler) GetSummary(c *gin.Context) {
	summary, err := h.svc.GetSummary(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Traffic chart for a completed run
// @Description Render the per-second traffic chart as an HTML page
// @Tags analyses
// @Produce html
// @Param id path string true "Run ID"
// @Success 200 {string} string "HTML chart"
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id}/chart [get]
func (h *AnalysisHandler) GetChart(c *gin.Context) {
	series, err := h.svc.GetSeries(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteTrafficChart(c.Writer, series); err != nil {
		log.Error().Err(err).Str("run_id", c.Param("id")).Msg("Failed to render chart")
	}
}

// @Summary Feed detections into an ingest run
// @Description Push one or more frames of detections; frames must be in order
// @Tags analyses
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Param request body IngestFramesRequest true "Detection frames"
// @Success 200 {object} IngestFramesResponse
// @Failure 400 {object} ErrorResponse
// @Router /analyses/{id}/frames [post]
func (h *AnalysisHandler) IngestFrames(c *gin.Context) {
	var req IngestFramesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	runID := c.Param("id")
	events := []models.CrossingEvent{}
	for _, frame := range req.Frames {
		detections := make([]models.TrackedDetection, 0, len(frame.Detections))
		for _, d := range frame.Detections {
			det := models.TrackedDetection{
				Detection: models.Detection{
					Box:        models.BBox{X1: d.X1, Y1: d.Y1, X2: d.X2, Y2: d.Y2},
					Label:      d.Label,
					Score:      d.Score,
					FrameIndex: frame.FrameIndex,
				},
			}
			if d.TrackID != nil {
				det.TrackID = *d.TrackID
				det.HasID = true
			}
			detections = append(detections, det)
		}
		frameEvents, err := h.svc.IngestFrame(runID, frame.FrameIndex, detections)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		events = append(events, frameEvents...)
	}

	c.JSON(http.StatusOK, IngestFramesResponse{Events: events})
}

// @Summary Finish an ingest run
// @Description Finalize the run and return its summary
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.Summary
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id}/finish [post]
func (h *AnalysisHandler) FinishAnalysis(c *gin.Context) {
	summary, err := h.svc.FinishRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Cancel an in-flight run
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.AnalysisRun
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id} [delete]
func (h *AnalysisHandler) CancelAnalysis(c *gin.Context) {
	runID := c.Param("id")
	if err := h.svc.CancelRun(runID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	run, err := h.svc.GetRun(runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}
