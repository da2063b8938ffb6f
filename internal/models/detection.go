package models

import (
	"math"
	"time"
)

// Category is the closed set of logical vehicle categories every raw
// detector label maps into.
type Category string

const (
	CategoryCar   Category = "car"
	CategoryBike  Category = "bike"
	CategoryBus   Category = "bus"
	CategoryTruck Category = "truck"
	CategoryOther Category = "other"
)

// CategoryPriority is the fixed tie-break order used when two categories
// have equal totals (most-common category, chart ordering, CSV columns).
var CategoryPriority = []Category{
	CategoryCar,
	CategoryBike,
	CategoryBus,
	CategoryTruck,
	CategoryOther,
}

// CountingMode reports which deduplication path an analysis ran on.
type CountingMode string

const (
	// ModeTracking counts via persistent identities from a tracker.
	ModeTracking CountingMode = "tracking"
	// ModeDetection is the degraded detection-only fallback.
	ModeDetection CountingMode = "detection"
)

// Point is a centroid position in frame pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BBox is an axis-aligned bounding box in frame pixel space.
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Center returns the box centroid.
func (b BBox) Center() Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// Area returns the box area, zero for degenerate boxes.
func (b BBox) Area() float64 {
	w := b.X2 - b.X1
	h := b.Y2 - b.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IoU returns the intersection-over-union overlap with another box.
func (b BBox) IoU(o BBox) float64 {
	ix1 := math.Max(b.X1, o.X1)
	iy1 := math.Max(b.Y1, o.Y1)
	ix2 := math.Min(b.X2, o.X2)
	iy2 := math.Min(b.Y2, o.Y2)
	if ix2 <= ix1 || iy2 <= iy1 {
		return 0
	}
	inter := (ix2 - ix1) * (iy2 - iy1)
	union := b.Area() + o.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Detection is one observation in one frame as produced by a detector
// collaborator. Confidence filtering happens before the engine sees it.
type Detection struct {
	Box        BBox    `json:"box"`
	Label      string  `json:"label"`
	Score      float32 `json:"score"`
	FrameIndex int64   `json:"frame_index"`
}

// TrackedDetection is a detection with the identity the tracker assigned
// to it. HasID is false in detection-only mode.
type TrackedDetection struct {
	Detection
	TrackID int64 `json:"track_id"`
	HasID   bool  `json:"has_id"`
}

// FrameMetadata carries frame-level information through the pipeline.
type FrameMetadata struct {
	Index     int64     `json:"frame_index"`
	Timestamp time.Time `json:"timestamp"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
}
