package counter

import (
	"github.com/rs/zerolog"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

// Config holds the recognized counting options for one analysis stream.
type Config struct {
	Line             Line
	CategoryMapping  map[string]models.Category
	HistoryLen       int
	ExpiryFrames     int64
	FallbackWindow   int64
	FallbackDistance float64
	FallbackBand     float64
	FPS              float64
}

// Engine is the crossing-line counting engine: it consumes per-frame
// detection batches, deduplicates crossings, classifies them, and folds
// them into the per-second aggregate. Frames must be fed in order; the
// crossing decision depends on the immediately preceding position of
// each track.
type Engine struct {
	cfg        Config
	classifier *Classifier
	tracks     *TrackManager
	fallback   *FallbackCounter
	agg        *Aggregator

	mode         models.CountingMode
	fellBack     bool
	framesSeen   int64
	lastFrameIdx int64
	log          zerolog.Logger
}

// NewEngine creates an independent engine instance. Engines share no
// state: every analysis owns its own tracks and buckets.
func NewEngine(cfg Config, log zerolog.Logger) *Engine {
	if cfg.FPS <= 0 {
		cfg.FPS = 1
	}
	classifier := NewClassifier(cfg.CategoryMapping)
	return &Engine{
		cfg:        cfg,
		classifier: classifier,
		tracks:     NewTrackManager(cfg.Line, classifier, cfg.HistoryLen, cfg.ExpiryFrames, log),
		fallback:   NewFallbackCounter(cfg.Line, classifier, cfg.FallbackWindow, cfg.FallbackDistance, cfg.FallbackBand, log),
		agg:        NewAggregator(),
		mode:       models.ModeTracking,
		log:        log,
	}
}

// ProcessFrame consumes the detection batch for one frame and returns
// the crossing events it produced. Identified detections go through the
// track lifecycle; unidentified ones take the fallback path, switching
// the reported mode so callers can tell which guarantee applied.
func (e *Engine) ProcessFrame(frameIndex int64, detections []models.TrackedDetection) []models.CrossingEvent {
	second := int(float64(frameIndex) / e.cfg.FPS)

	var events []models.CrossingEvent
	for _, det := range detections {
		var ev *models.CrossingEvent
		if det.HasID {
			ev = e.tracks.Observe(frameIndex, det)
		} else {
			if !e.fellBack {
				e.fellBack = true
				e.mode = models.ModeDetection
				e.log.Warn().Msg("No tracker identities available, switching to detection-only counting")
			}
			ev = e.fallback.Consider(frameIndex, det.Detection)
		}
		if ev != nil {
			ev.Second = second
			e.agg.Record(*ev)
			events = append(events, *ev)
		}
	}

	e.tracks.Expire(frameIndex)
	e.framesSeen++
	e.lastFrameIdx = frameIndex
	return events
}

// Mode reports which counting path the engine has been using.
func (e *Engine) Mode() models.CountingMode {
	return e.mode
}

// TotalCount returns the number of vehicles counted so far.
func (e *Engine) TotalCount() int {
	return e.agg.EventCount()
}

// CategoryTotals returns the per-category totals counted so far.
func (e *Engine) CategoryTotals() map[models.Category]int {
	return e.agg.CategoryTotals()
}

// ActiveTracks returns the number of live tracks (tracking mode).
func (e *Engine) ActiveTracks() int {
	return e.tracks.ActiveCount()
}

// Finalize materializes the dense per-second series for the duration
// observed so far. The caller may stop feeding frames at any point.
func (e *Engine) Finalize() []models.Bucket {
	duration := int(float64(e.lastFrameIdx) / e.cfg.FPS)
	return e.agg.Finalize(duration)
}
