// Package tracker assigns persistent identities to per-frame detections.
// The counting engine only consumes the Tracker interface, so the
// assignment algorithm is swappable and its absence degrades cleanly to
// detection-only counting.
package tracker

import "github.com/pointbreak45/Street-Eye/internal/models"

// Tracker matches the detections of one frame to identities carried over
// from previous frames. Frames must be fed in order.
type Tracker interface {
	NextFrame(frameIndex int64, detections []models.Detection) []models.TrackedDetection
}

// Passthrough is the no-tracker tracker: it hands every detection
// through without an identity, which forces the engine into its
// detection-only fallback mode.
type Passthrough struct{}

// NextFrame returns the detections unchanged and unidentified.
func (Passthrough) NextFrame(_ int64, detections []models.Detection) []models.TrackedDetection {
	out := make([]models.TrackedDetection, len(detections))
	for i, det := range detections {
		out[i] = models.TrackedDetection{Detection: det}
	}
	return out
}
