package counter

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

// countedBox remembers where and when a fallback count happened so
// nearby detections of the same category are suppressed for a while.
type countedBox struct {
	category models.Category
	center   models.Point
	frame    int64
}

// FallbackCounter is the detection-only degraded path used when no
// tracker identities are available. A detection counts when its box
// overlaps the line band and no same-category count happened nearby
// within the suppression window. This approximates identity and is
// weaker than tracked mode: closely spaced vehicles of one category can
// undercount, and a vehicle lingering at the line across the window
// boundary can overcount.
type FallbackCounter struct {
	line         Line
	classifier   *Classifier
	windowFrames int64
	minDistance  float64
	bandHalf     float64

	recent []countedBox
	log    zerolog.Logger
}

// NewFallbackCounter creates the fallback path for one analysis stream.
func NewFallbackCounter(line Line, classifier *Classifier, windowFrames int64, minDistance, bandHalf float64, log zerolog.Logger) *FallbackCounter {
	return &FallbackCounter{
		line:         line,
		classifier:   classifier,
		windowFrames: windowFrames,
		minDistance:  minDistance,
		bandHalf:     bandHalf,
		log:          log,
	}
}

// Consider decides whether an unidentified detection counts as a
// crossing in the current frame. Second is filled in by the caller.
func (f *FallbackCounter) Consider(frameIndex int64, det models.Detection) *models.CrossingEvent {
	f.prune(frameIndex)

	if !f.line.IntersectsBand(det.Box, f.bandHalf) {
		return nil
	}

	category := f.classifier.Classify(det.Label)
	center := det.Box.Center()

	for _, prev := range f.recent {
		if prev.category != category {
			continue
		}
		if distance(prev.center, center) <= f.minDistance {
			return nil
		}
	}

	f.recent = append(f.recent, countedBox{category: category, center: center, frame: frameIndex})

	f.log.Debug().
		Str("category", string(category)).
		Int64("frame", frameIndex).
		Msg("Fallback counted detection at line")

	return &models.CrossingEvent{
		Category:   category,
		FrameIndex: frameIndex,
	}
}

// prune drops suppression entries older than the window.
func (f *FallbackCounter) prune(frameIndex int64) {
	kept := f.recent[:0]
	for _, c := range f.recent {
		if frameIndex-c.frame <= f.windowFrames {
			kept = append(kept, c)
		}
	}
	f.recent = kept
}

func distance(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
