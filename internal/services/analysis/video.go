package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/pointbreak45/Street-Eye/internal/counter"
	"github.com/pointbreak45/Street-Eye/internal/detection"
	"github.com/pointbreak45/Street-Eye/internal/logging"
	"github.com/pointbreak45/Street-Eye/internal/models"
	"github.com/pointbreak45/Street-Eye/internal/overlay"
)

// StartVideoRun opens the source, starts the frame loop in the
// background, and returns the run immediately. Progress and results are
// queryable by run id; the loop stops at end of stream or when the run
// is canceled.
func (s *Service) StartVideoRun(ctx context.Context, source string) (models.AnalysisRun, error) {
	src, err := detection.OpenVideoSource(source)
	if err != nil {
		return models.AnalysisRun{}, err
	}

	detector, err := detection.NewDNNDetector(
		s.cfg.ModelPath, s.cfg.ModelConfigPath, s.cfg.ModelNamesPath,
		s.cfg.ModelInputSize, s.cfg.ConfidenceThreshold)
	if err != nil {
		src.Close()
		return models.AnalysisRun{}, err
	}

	run := models.AnalysisRun{
		ID:        uuid.NewString(),
		Source:    source,
		Mode:      models.ModeTracking,
		Status:    models.RunStatusRunning,
		FPS:       src.FPS(),
		StartedAt: time.Now().UTC(),
	}

	runCtx, cancel := context.WithCancel(ctx)
	log := logging.WithRun(s.log, run.ID)
	sess := &session{
		run:       run,
		engine:    counter.NewEngine(s.engineConfig(src.FPS()), log),
		tracker:   s.newTracker(),
		cancel:    cancel,
		lastFrame: -1,
	}

	s.mu.Lock()
	s.sessions[run.ID] = sess
	s.mu.Unlock()

	if err := s.store.SaveRun(run); err != nil {
		cancel()
		detector.Close()
		src.Close()
		s.mu.Lock()
		delete(s.sessions, run.ID)
		s.mu.Unlock()
		return models.AnalysisRun{}, err
	}

	log.Info().
		Str("source", source).
		Float64("fps", src.FPS()).
		Int64("frames", src.FrameCount()).
		Msg("Video run started")

	go s.runVideoLoop(runCtx, sess, src, detector)
	return run, nil
}

// runVideoLoop is the per-run frame loop. Cancellation is checked once
// per frame so a cancel takes effect at frame granularity.
func (s *Service) runVideoLoop(ctx context.Context, sess *session, src *detection.VideoSource, detector detection.Detector) {
	log := logging.WithRun(s.log, sess.run.ID)
	defer src.Close()
	defer detector.Close()

	var writer *overlay.Writer
	classifier := counter.NewClassifier(s.cfg.CategoryMapping)
	if s.cfg.AnnotatedVideo {
		path := filepath.Join(s.cfg.OutputDir, sess.run.ID, "annotated.mp4")
		if err := s.prepareOutputDir(sess.run.ID); err != nil {
			log.Warn().Err(err).Msg("Skipping annotated video")
		} else if w, err := overlay.NewWriter(path, src.FPS(), src.Width(), src.Height()); err != nil {
			log.Warn().Err(err).Msg("Skipping annotated video")
		} else {
			writer = w
			defer writer.Close()
		}
	}

	img := gocv.NewMat()
	defer img.Close()

	for {
		select {
		case <-ctx.Done():
			log.Info().Int64("last_frame", sess.lastFrame).Msg("Video run canceled")
			return
		default:
		}

		frameIndex, ok := src.Next(&img)
		if !ok {
			break
		}

		detections, err := detector.Detect(img, frameIndex)
		if err != nil {
			s.detachAndFail(sess, fmt.Errorf("detect frame %d: %w", frameIndex, err))
			return
		}

		tracked := sess.tracker.NextFrame(frameIndex, detections)
		events := sess.engine.ProcessFrame(frameIndex, tracked)

		s.mu.Lock()
		sess.lastFrame = frameIndex
		sess.run.Frames++
		sess.run.Mode = sess.engine.Mode()
		s.mu.Unlock()

		s.publishEvents(sess.run.ID, events)

		if writer != nil {
			overlay.DrawLine(&img, s.line())
			overlay.DrawDetections(&img, tracked, classifier)
			overlay.DrawCountPanel(&img, sess.engine.CategoryTotals(), sess.engine.Mode())
			if err := writer.Write(img); err != nil {
				log.Warn().Err(err).Msg("Failed to write annotated frame")
			}
		}

		if frameIndex > 0 && frameIndex%500 == 0 {
			log.Debug().
				Int64("frame", frameIndex).
				Int("counted", sess.engine.TotalCount()).
				Int("active_tracks", sess.engine.ActiveTracks()).
				Msg("Processing progress")
		}
	}

	s.mu.Lock()
	delete(s.sessions, sess.run.ID)
	s.mu.Unlock()

	if _, err := s.complete(sess); err != nil {
		log.Error().Err(err).Msg("Failed to finalize video run")
		s.fail(sess, err)
	}
}

// detachAndFail removes the session and records the failure.
func (s *Service) detachAndFail(sess *session, cause error) {
	s.mu.Lock()
	delete(s.sessions, sess.run.ID)
	s.mu.Unlock()
	logging.WithRun(s.log, sess.run.ID).Error().Err(cause).Msg("Video run failed")
	s.fail(sess, cause)
}

func (s *Service) prepareOutputDir(runID string) error {
	return os.MkdirAll(filepath.Join(s.cfg.OutputDir, runID), 0o755)
}
