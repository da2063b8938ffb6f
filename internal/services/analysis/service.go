// Package analysis orchestrates counting runs: frames in, engine
// decisions, then exports, persistence, and event publishing.
package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pointbreak45/Street-Eye/internal/config"
	"github.com/pointbreak45/Street-Eye/internal/counter"
	"github.com/pointbreak45/Street-Eye/internal/export"
	"github.com/pointbreak45/Street-Eye/internal/logging"
	"github.com/pointbreak45/Street-Eye/internal/models"
	"github.com/pointbreak45/Street-Eye/internal/services/messaging"
	"github.com/pointbreak45/Street-Eye/internal/store"
	"github.com/pointbreak45/Street-Eye/internal/tracker"
)

// session is one in-flight analysis: the engine plus run bookkeeping.
type session struct {
	run       models.AnalysisRun
	engine    *counter.Engine
	tracker   tracker.Tracker
	cancel    context.CancelFunc
	lastFrame int64
}

// Service owns the lifecycle of analysis runs. Each run gets an
// independent engine instance; nothing is shared between streams.
type Service struct {
	cfg       *config.Config
	store     *store.Store
	publisher messaging.Publisher
	log       zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewService creates the analysis service. publisher may be nil when
// NATS is disabled.
func NewService(cfg *config.Config, st *store.Store, publisher messaging.Publisher) *Service {
	return &Service{
		cfg:       cfg,
		store:     st,
		publisher: publisher,
		log:       logging.NewServiceLogger(cfg, "analysis"),
		sessions:  make(map[string]*session),
	}
}

// line builds the counting line from configuration.
func (s *Service) line() counter.Line {
	orientation := counter.Horizontal
	if s.cfg.LineOrientation == string(counter.Vertical) {
		orientation = counter.Vertical
	}
	return counter.Line{
		Orientation: orientation,
		Position:    s.cfg.LinePosition,
		Direction:   counter.Direction(s.cfg.LineDirection),
	}
}

// engineConfig builds the engine configuration for one run.
func (s *Service) engineConfig(fps float64) counter.Config {
	return counter.Config{
		Line:             s.line(),
		CategoryMapping:  s.cfg.CategoryMapping,
		HistoryLen:       s.cfg.TrackHistoryLen,
		ExpiryFrames:     s.cfg.TrackExpiryFrames,
		FallbackWindow:   s.cfg.FallbackWindowFrames,
		FallbackDistance: s.cfg.FallbackMinDistance,
		FallbackBand:     s.cfg.FallbackBandHalf,
		FPS:              fps,
	}
}

// newTracker picks the configured identity assignment.
func (s *Service) newTracker() tracker.Tracker {
	if s.cfg.TrackerEnabled {
		return tracker.NewIoUTracker(s.cfg.TrackerIoUThreshold, s.cfg.TrackExpiryFrames)
	}
	return tracker.Passthrough{}
}

// CreateIngestRun opens a run fed by externally produced detection
// batches through the API instead of an in-process video pipeline.
func (s *Service) CreateIngestRun(source string, fps float64) (models.AnalysisRun, error) {
	if fps <= 0 {
		fps = 25
	}
	run := models.AnalysisRun{
		ID:        uuid.NewString(),
		Source:    source,
		Mode:      models.ModeTracking,
		Status:    models.RunStatusRunning,
		FPS:       fps,
		StartedAt: time.Now().UTC(),
	}

	log := logging.WithRun(s.log, run.ID)
	sess := &session{
		run:       run,
		engine:    counter.NewEngine(s.engineConfig(fps), log),
		tracker:   s.newTracker(),
		lastFrame: -1,
	}

	s.mu.Lock()
	s.sessions[run.ID] = sess
	s.mu.Unlock()

	if err := s.store.SaveRun(run); err != nil {
		return models.AnalysisRun{}, err
	}

	log.Info().Str("source", source).Float64("fps", fps).Msg("Ingest run created")
	return run, nil
}

// IngestFrame feeds one frame's detections into a running ingest run.
// Detections that carry their own track identity are passed straight to
// the engine; otherwise the built-in tracker assigns identities. Frames
// must arrive in order; out-of-order frames are rejected because
// crossing decisions depend on the immediately preceding positions.
func (s *Service) IngestFrame(runID string, frameIndex int64, detections []models.TrackedDetection) ([]models.CrossingEvent, error) {
	s.mu.Lock()
	sess, ok := s.sessions[runID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("no active run %s", runID)
	}
	if sess.cancel != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("run %s processes a video and does not accept ingested frames", runID)
	}
	if frameIndex <= sess.lastFrame {
		s.mu.Unlock()
		return nil, fmt.Errorf("frame %d out of order for run %s (last was %d)", frameIndex, runID, sess.lastFrame)
	}
	sess.lastFrame = frameIndex

	tracked := detections
	if !hasIdentities(detections) {
		plain := make([]models.Detection, len(detections))
		for i, d := range detections {
			plain[i] = d.Detection
		}
		tracked = sess.tracker.NextFrame(frameIndex, plain)
	}
	events := sess.engine.ProcessFrame(frameIndex, tracked)
	sess.run.Mode = sess.engine.Mode()
	sess.run.Frames++
	s.mu.Unlock()

	s.publishEvents(runID, events)
	return events, nil
}

// hasIdentities reports whether any detection carries a track id.
func hasIdentities(detections []models.TrackedDetection) bool {
	for _, d := range detections {
		if d.HasID {
			return true
		}
	}
	return false
}

// FinishRun finalizes an ingest run: series, summary, exports, store.
// Video runs finalize themselves at end of stream; finishing one here
// would race its frame loop, so they are rejected (cancel instead).
func (s *Service) FinishRun(runID string) (models.Summary, error) {
	s.mu.Lock()
	sess, ok := s.sessions[runID]
	if ok && sess.cancel != nil {
		s.mu.Unlock()
		return models.Summary{}, fmt.Errorf("run %s processes a video and finishes on its own; cancel it instead", runID)
	}
	if ok {
		delete(s.sessions, runID)
	}
	s.mu.Unlock()
	if !ok {
		return models.Summary{}, fmt.Errorf("no active run %s", runID)
	}

	return s.complete(sess)
}

// CancelRun stops an in-flight video run or discards an ingest run.
func (s *Service) CancelRun(runID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[runID]
	if ok {
		delete(s.sessions, runID)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no active run %s", runID)
	}

	if sess.cancel != nil {
		sess.cancel()
	}

	now := time.Now().UTC()
	sess.run.Status = models.RunStatusFailed
	sess.run.Error = "canceled"
	sess.run.FinishedAt = &now
	return s.store.SaveRun(sess.run)
}

// complete finalizes a session and persists everything.
func (s *Service) complete(sess *session) (models.Summary, error) {
	log := logging.WithRun(s.log, sess.run.ID)

	series := sess.engine.Finalize()
	summary := counter.BuildSummary(series, sess.engine.Mode(), counter.DensityThresholds{
		MediumRate: s.cfg.DensityMediumRate,
		HighRate:   s.cfg.DensityHighRate,
	})

	now := time.Now().UTC()
	sess.run.Status = models.RunStatusCompleted
	sess.run.Mode = sess.engine.Mode()
	sess.run.FinishedAt = &now

	if err := s.store.SaveRun(sess.run); err != nil {
		return models.Summary{}, err
	}
	if err := s.store.SaveSeries(sess.run.ID, series); err != nil {
		return models.Summary{}, err
	}
	if err := s.store.SaveSummary(sess.run.ID, summary); err != nil {
		return models.Summary{}, err
	}

	if err := s.writeOutputs(sess.run.ID, series, summary); err != nil {
		// Exports are best-effort: results are already persisted.
		log.Error().Err(err).Msg("Failed to write output files")
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(s.cfg.SummariesSubject, summary); err != nil {
			log.Warn().Err(err).Msg("Failed to publish summary")
		}
	}

	log.Info().
		Int("total", summary.TotalVehicles).
		Str("mode", string(summary.Mode)).
		Str("density", string(summary.Density)).
		Msg("Analysis run completed")
	return summary, nil
}

// fail marks a run failed and persists the error.
func (s *Service) fail(sess *session, cause error) {
	now := time.Now().UTC()
	sess.run.Status = models.RunStatusFailed
	sess.run.Error = cause.Error()
	sess.run.FinishedAt = &now
	if err := s.store.SaveRun(sess.run); err != nil {
		logging.WithRun(s.log, sess.run.ID).Error().Err(err).Msg("Failed to persist run failure")
	}
}

// publishEvents sends crossing events to NATS, best-effort.
func (s *Service) publishEvents(runID string, events []models.CrossingEvent) {
	if s.publisher == nil {
		return
	}
	for _, ev := range events {
		if err := s.publisher.Publish(s.cfg.EventsSubject, ev); err != nil {
			logging.WithRun(s.log, runID).Warn().Err(err).Msg("Failed to publish crossing event")
			return
		}
	}
}

// writeOutputs writes the CSV, text summary, and chart for a run under
// the configured output directory.
func (s *Service) writeOutputs(runID string, series []models.Bucket, summary models.Summary) error {
	dir := filepath.Join(s.cfg.OutputDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	csvFile, err := os.Create(filepath.Join(dir, "traffic_data.csv"))
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer csvFile.Close()
	if err := export.WriteTimeSeriesCSV(csvFile, series); err != nil {
		return err
	}

	reportFile, err := os.Create(filepath.Join(dir, "analysis_summary.txt"))
	if err != nil {
		return fmt.Errorf("create summary report: %w", err)
	}
	defer reportFile.Close()
	if err := export.WriteSummaryText(reportFile, summary, time.Now()); err != nil {
		return err
	}

	chartFile, err := os.Create(filepath.Join(dir, "traffic_chart.html"))
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer chartFile.Close()
	return export.WriteTrafficChart(chartFile, series)
}

// GetRun returns a run by id, preferring live session state.
func (s *Service) GetRun(runID string) (models.AnalysisRun, error) {
	s.mu.RLock()
	if sess, ok := s.sessions[runID]; ok {
		run := sess.run
		s.mu.RUnlock()
		return run, nil
	}
	s.mu.RUnlock()
	return s.store.GetRun(runID)
}

// ListRuns returns recent runs from the store plus live sessions.
func (s *Service) ListRuns() ([]models.AnalysisRun, error) {
	return s.store.ListRuns(100)
}

// GetSeries returns the finalized series for a completed run.
func (s *Service) GetSeries(runID string) ([]models.Bucket, error) {
	if _, err := s.store.GetRun(runID); err != nil {
		return nil, err
	}
	return s.store.GetSeries(runID)
}

// GetSummary returns the summary for a completed run.
func (s *Service) GetSummary(runID string) (models.Summary, error) {
	return s.store.GetSummary(runID)
}

// ActiveRuns returns the number of in-flight sessions.
func (s *Service) ActiveRuns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown cancels all in-flight runs.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if err := s.CancelRun(id); err != nil {
			s.log.Warn().Err(err).Str("run_id", id).Msg("Failed to cancel run during shutdown")
		}
	}
	return nil
}
