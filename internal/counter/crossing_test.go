package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

func TestCrossedHorizontal(t *testing.T) {
	line := Line{Orientation: Horizontal, Position: 430, Direction: DirectionBoth}

	assert.True(t, line.Crossed(models.Point{Y: 429}, models.Point{Y: 431}))
	assert.True(t, line.Crossed(models.Point{Y: 431}, models.Point{Y: 429}))
	assert.False(t, line.Crossed(models.Point{Y: 420}, models.Point{Y: 425}))
	assert.False(t, line.Crossed(models.Point{Y: 440}, models.Point{Y: 435}))
}

func TestCrossedRequiresStrictSignChange(t *testing.T) {
	line := Line{Orientation: Horizontal, Position: 430, Direction: DirectionBoth}

	// A point exactly on the line has not crossed yet, so hovering at
	// the boundary never triggers frame after frame.
	assert.False(t, line.Crossed(models.Point{Y: 430}, models.Point{Y: 430}))
	assert.False(t, line.Crossed(models.Point{Y: 429}, models.Point{Y: 430}))
	assert.False(t, line.Crossed(models.Point{Y: 430}, models.Point{Y: 431}))
}

func TestCrossedDirectional(t *testing.T) {
	down := Line{Orientation: Horizontal, Position: 100, Direction: DirectionDown}
	assert.True(t, down.Crossed(models.Point{Y: 99}, models.Point{Y: 101}))
	assert.False(t, down.Crossed(models.Point{Y: 101}, models.Point{Y: 99}))

	up := Line{Orientation: Horizontal, Position: 100, Direction: DirectionUp}
	assert.False(t, up.Crossed(models.Point{Y: 99}, models.Point{Y: 101}))
	assert.True(t, up.Crossed(models.Point{Y: 101}, models.Point{Y: 99}))
}

func TestCrossedVertical(t *testing.T) {
	line := Line{Orientation: Vertical, Position: 320, Direction: DirectionRight}

	assert.True(t, line.Crossed(models.Point{X: 319, Y: 50}, models.Point{X: 321, Y: 50}))
	assert.False(t, line.Crossed(models.Point{X: 321, Y: 50}, models.Point{X: 319, Y: 50}))
}

func TestEvaluateNeedsHistory(t *testing.T) {
	line := Line{Orientation: Horizontal, Position: 430, Direction: DirectionBoth}

	assert.False(t, line.Evaluate(nil))
	assert.False(t, line.Evaluate([]models.Point{{Y: 500}}), "a single observation is never a crossing")
	assert.True(t, line.Evaluate([]models.Point{{Y: 400}, {Y: 429}, {Y: 431}}))
}

func TestIntersectsBand(t *testing.T) {
	line := Line{Orientation: Horizontal, Position: 430}

	assert.True(t, line.IntersectsBand(models.BBox{X1: 0, Y1: 420, X2: 50, Y2: 440}, 0))
	assert.False(t, line.IntersectsBand(models.BBox{X1: 0, Y1: 300, X2: 50, Y2: 400}, 0))
	assert.True(t, line.IntersectsBand(models.BBox{X1: 0, Y1: 300, X2: 50, Y2: 425}, 5))
}
