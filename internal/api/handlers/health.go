package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pointbreak45/Street-Eye/internal/config"
	"github.com/pointbreak45/Street-Eye/internal/services/analysis"
)

type HealthHandler struct {
	cfg *config.Config
	svc *analysis.Service
}

func NewHealthHandler(cfg *config.Config, svc *analysis.Service) *HealthHandler {
	return &HealthHandler{cfg: cfg, svc: svc}
}

type HealthResponse struct {
	Status     string `json:"status" example:"healthy"`
	WorkerID   string `json:"worker_id" example:"streeteye-1"`
	ActiveRuns int    `json:"active_runs" example:"1"`
}

type ServiceInfoResponse struct {
	WorkerID     string   `json:"worker_id" example:"streeteye-1"`
	Status       string   `json:"status" example:"running"`
	Version      string   `json:"version" example:"1.0.0"`
	Capabilities []string `json:"capabilities"`
}

// @Summary Health check
// @Description Check if the service is healthy and responsive
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		WorkerID:   h.cfg.WorkerID,
		ActiveRuns: h.svc.ActiveRuns(),
	})
}

// @Summary Service information
// @Description Get basic service information and capabilities
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} ServiceInfoResponse
// @Router / [get]
func (h *HealthHandler) ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfoResponse{
		WorkerID: h.cfg.WorkerID,
		Status:   "running",
		Version:  h.cfg.Version,
		Capabilities: []string{
			"video_analysis",
			"detection_ingest",
			"crossing_counts",
		},
	})
}
