package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

func det(x1, y1, x2, y2 float64) models.Detection {
	return models.Detection{Box: models.BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}, Label: "car"}
}

func TestIoUTrackerKeepsIdentityAcrossFrames(t *testing.T) {
	tr := NewIoUTracker(0.3, 5)

	first := tr.NextFrame(0, []models.Detection{det(100, 100, 200, 200)})
	require.Len(t, first, 1)
	require.True(t, first[0].HasID)

	// Slight movement, large overlap: same identity.
	second := tr.NextFrame(1, []models.Detection{det(110, 110, 210, 210)})
	require.Len(t, second, 1)
	assert.Equal(t, first[0].TrackID, second[0].TrackID)
}

func TestIoUTrackerAssignsNewIdentities(t *testing.T) {
	tr := NewIoUTracker(0.3, 5)

	a := tr.NextFrame(0, []models.Detection{det(100, 100, 200, 200)})
	b := tr.NextFrame(1, []models.Detection{det(105, 105, 205, 205), det(600, 600, 700, 700)})

	require.Len(t, b, 2)
	assert.Equal(t, a[0].TrackID, b[0].TrackID)
	assert.NotEqual(t, b[0].TrackID, b[1].TrackID)
	assert.Equal(t, 2, tr.ActiveTracks())
}

func TestIoUTrackerGreedyPrefersBestOverlap(t *testing.T) {
	tr := NewIoUTracker(0.1, 5)

	tr.NextFrame(0, []models.Detection{det(100, 100, 200, 200)})
	// Two candidates overlap the old box; the closer one wins the identity.
	out := tr.NextFrame(1, []models.Detection{det(102, 102, 202, 202), det(170, 170, 270, 270)})

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].TrackID)
	assert.Equal(t, int64(2), out[1].TrackID)
}

func TestIoUTrackerDropsStaleTracks(t *testing.T) {
	tr := NewIoUTracker(0.3, 2)

	tr.NextFrame(0, []models.Detection{det(100, 100, 200, 200)})
	tr.NextFrame(1, nil)
	tr.NextFrame(2, nil)
	tr.NextFrame(3, nil)
	assert.Zero(t, tr.ActiveTracks())

	// The same region later gets a fresh identity.
	out := tr.NextFrame(10, []models.Detection{det(100, 100, 200, 200)})
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].TrackID)
}

func TestPassthroughYieldsNoIdentities(t *testing.T) {
	var p Passthrough

	out := p.NextFrame(0, []models.Detection{det(1, 1, 2, 2), det(3, 3, 4, 4)})
	require.Len(t, out, 2)
	for _, d := range out {
		assert.False(t, d.HasID)
	}
}
