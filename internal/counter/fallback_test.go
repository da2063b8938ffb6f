package counter

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

func fallbackDet(label string, cx, cy float64) models.Detection {
	return models.Detection{
		Box:   models.BBox{X1: cx - 50, Y1: cy - 30, X2: cx + 50, Y2: cy + 30},
		Label: label,
	}
}

func newTestFallback() *FallbackCounter {
	line := Line{Orientation: Horizontal, Position: 430}
	return NewFallbackCounter(line, NewClassifier(nil), 25, 60, 0, zerolog.Nop())
}

func TestFallbackSuppressionWithinWindow(t *testing.T) {
	f := newTestFallback()

	require.NotNil(t, f.Consider(0, fallbackDet("car", 300, 430)))
	// Same category, same spot, a few frames later: suppressed.
	assert.Nil(t, f.Consider(5, fallbackDet("car", 310, 430)))
	assert.Nil(t, f.Consider(20, fallbackDet("car", 305, 430)))
}

func TestFallbackCountsAgainOutsideWindow(t *testing.T) {
	f := newTestFallback()

	require.NotNil(t, f.Consider(0, fallbackDet("car", 300, 430)))
	assert.NotNil(t, f.Consider(26, fallbackDet("car", 300, 430)))
	assert.NotNil(t, f.Consider(60, fallbackDet("car", 300, 430)))
}

func TestFallbackDistinctLocationsBothCount(t *testing.T) {
	f := newTestFallback()

	require.NotNil(t, f.Consider(0, fallbackDet("car", 100, 430)))
	assert.NotNil(t, f.Consider(1, fallbackDet("car", 500, 430)), "far apart same-category detections are separate vehicles")
}

func TestFallbackDifferentCategoriesNotSuppressed(t *testing.T) {
	f := newTestFallback()

	require.NotNil(t, f.Consider(0, fallbackDet("car", 300, 430)))
	assert.NotNil(t, f.Consider(1, fallbackDet("truck", 300, 430)))
}

func TestFallbackIgnoresBoxesOffTheLine(t *testing.T) {
	f := newTestFallback()

	assert.Nil(t, f.Consider(0, fallbackDet("car", 300, 200)))
	assert.Nil(t, f.Consider(1, fallbackDet("bus", 300, 700)))
}
