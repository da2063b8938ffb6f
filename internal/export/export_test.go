package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

func sampleSeries() []models.Bucket {
	return []models.Bucket{
		{Second: 0, Car: 2, Total: 2},
		{Second: 1},
		{Second: 2, Bus: 1, Bike: 1, Total: 2},
	}
}

func TestWriteTimeSeriesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTimeSeriesCSV(&buf, sampleSeries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "header plus one row per second, zero rows included")

	assert.Equal(t, "elapsed_second,cars,bikes,buses,trucks,others,total", lines[0],
		"plural headers come from the plural table: buses, not buss")
	assert.Equal(t, "0,2,0,0,0,0,2", lines[1])
	assert.Equal(t, "1,0,0,0,0,0,0", lines[2], "quiet second still exports a zero row")
	assert.Equal(t, "2,0,1,1,0,0,2", lines[3])
}

func TestWriteSummaryText(t *testing.T) {
	s := models.Summary{
		TotalVehicles: 10,
		CategoryTotals: map[models.Category]int{
			models.CategoryCar: 6, models.CategoryBike: 1, models.CategoryBus: 2,
			models.CategoryTruck: 1, models.CategoryOther: 0,
		},
		Percentages: map[models.Category]float64{
			models.CategoryCar: 60, models.CategoryBike: 10, models.CategoryBus: 20,
			models.CategoryTruck: 10, models.CategoryOther: 0,
		},
		DurationSeconds: 120,
		RatePerMinute:   5,
		PeakSecond:      42,
		PeakCount:       3,
		MostCommon:      models.CategoryCar,
		Density:         models.DensityLow,
		Mode:            models.ModeTracking,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryText(&buf, s, time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)))
	out := buf.String()

	assert.Contains(t, out, "Generated on: 2026-08-24 12:00:00")
	assert.Contains(t, out, "Buses: 2 (20.0%)")
	assert.NotContains(t, out, "Buss")
	assert.Contains(t, out, "Total Vehicles Counted: 10")
	assert.Contains(t, out, "Peak Activity: 3 vehicles at second 42")
	assert.Contains(t, out, "Counting Mode: tracking")
}

func TestWriteTrafficChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrafficChart(&buf, sampleSeries()))

	out := buf.String()
	assert.Contains(t, out, "<html>")
	assert.Contains(t, out, "buses")
	assert.Contains(t, out, "total")
}
