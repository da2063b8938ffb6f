package counter

import "github.com/pointbreak45/Street-Eye/internal/models"

// Orientation of the counting line.
type Orientation string

const (
	// Horizontal lines sit at a fixed y coordinate.
	Horizontal Orientation = "horizontal"
	// Vertical lines sit at a fixed x coordinate.
	Vertical Orientation = "vertical"
)

// Direction restricts which crossings count. Down/Right mean movement
// toward increasing coordinate values.
type Direction string

const (
	DirectionBoth  Direction = "both"
	DirectionDown  Direction = "down"
	DirectionUp    Direction = "up"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Line is the configured counting boundary: one coordinate on one axis
// plus the direction(s) of interest.
type Line struct {
	Orientation Orientation `json:"orientation"`
	Position    float64     `json:"position"`
	Direction   Direction   `json:"direction"`
}

// coord picks the axis-relevant coordinate of a point.
func (l Line) coord(p models.Point) float64 {
	if l.Orientation == Vertical {
		return p.X
	}
	return p.Y
}

// Crossed reports whether moving from prev to curr crosses the line in a
// counted direction. Crossing requires a strict sign change: a point
// exactly on the line has not crossed yet, so a vehicle hovering at the
// boundary cannot trigger on every frame.
func (l Line) Crossed(prev, curr models.Point) bool {
	a := l.coord(prev)
	b := l.coord(curr)

	forward := a < l.Position && b > l.Position
	backward := a > l.Position && b < l.Position

	switch l.Direction {
	case DirectionDown, DirectionRight:
		return forward
	case DirectionUp, DirectionLeft:
		return backward
	default:
		return forward || backward
	}
}

// Evaluate runs crossing detection over a track's position history using
// the two most recent positions. A single observation is never enough
// evidence to cross.
func (l Line) Evaluate(history []models.Point) bool {
	if len(history) < 2 {
		return false
	}
	return l.Crossed(history[len(history)-2], history[len(history)-1])
}

// IntersectsBand reports whether a box overlaps the line's pixel band of
// the given half width. Used by the detection-only fallback path.
func (l Line) IntersectsBand(box models.BBox, halfWidth float64) bool {
	lo := l.Position - halfWidth
	hi := l.Position + halfWidth
	if l.Orientation == Vertical {
		return box.X1 <= hi && box.X2 >= lo
	}
	return box.Y1 <= hi && box.Y2 >= lo
}
