package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)

	run := models.AnalysisRun{
		ID:        "run-1",
		Source:    "test.mp4",
		Mode:      models.ModeTracking,
		Status:    models.RunStatusRunning,
		FPS:       25,
		StartedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveRun(run))

	got, err := s.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Source, got.Source)
	assert.Equal(t, models.RunStatusRunning, got.Status)
	assert.Nil(t, got.FinishedAt)

	// Finish the run and save again: upsert, not duplicate.
	finished := run.StartedAt.Add(time.Minute)
	run.Status = models.RunStatusCompleted
	run.Frames = 1500
	run.FinishedAt = &finished
	require.NoError(t, s.SaveRun(run))

	got, err = s.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, int64(1500), got.Frames)
	require.NotNil(t, got.FinishedAt)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSaveAndGetSeries(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun(models.AnalysisRun{
		ID: "run-2", Source: "x", Mode: models.ModeDetection,
		Status: models.RunStatusCompleted, StartedAt: time.Now().UTC(),
	}))

	series := []models.Bucket{
		{Second: 0, Car: 1, Total: 1},
		{Second: 1},
		{Second: 2, Bus: 2, Total: 2},
	}
	require.NoError(t, s.SaveSeries("run-2", series))

	got, err := s.GetSeries("run-2")
	require.NoError(t, err)
	assert.Equal(t, series, got)

	// Saving again replaces rather than appends.
	require.NoError(t, s.SaveSeries("run-2", series[:2]))
	got, err = s.GetSeries("run-2")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSaveAndGetSummary(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun(models.AnalysisRun{
		ID: "run-3", Source: "x", Mode: models.ModeTracking,
		Status: models.RunStatusCompleted, StartedAt: time.Now().UTC(),
	}))

	sum := models.Summary{
		TotalVehicles: 4,
		CategoryTotals: map[models.Category]int{
			models.CategoryCar: 2, models.CategoryBike: 0, models.CategoryBus: 1,
			models.CategoryTruck: 1, models.CategoryOther: 0,
		},
		Percentages: map[models.Category]float64{
			models.CategoryCar: 50, models.CategoryBike: 0, models.CategoryBus: 25,
			models.CategoryTruck: 25, models.CategoryOther: 0,
		},
		DurationSeconds: 60,
		RatePerMinute:   4,
		PeakSecond:      10,
		PeakCount:       2,
		MostCommon:      models.CategoryCar,
		Density:         models.DensityLow,
		Mode:            models.ModeTracking,
	}
	require.NoError(t, s.SaveSummary("run-3", sum))

	got, err := s.GetSummary("run-3")
	require.NoError(t, err)
	assert.Equal(t, sum, got)
}
