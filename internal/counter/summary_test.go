package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

var testThresholds = DensityThresholds{MediumRate: 10, HighRate: 30}

func TestSummaryPercentagesSumTo100(t *testing.T) {
	series := []models.Bucket{
		{Second: 0, Car: 3, Total: 3},
		{Second: 1, Bike: 1, Bus: 1, Total: 2},
		{Second: 2, Truck: 2, Other: 1, Total: 3},
	}

	s := BuildSummary(series, models.ModeTracking, testThresholds)

	assert.Equal(t, 8, s.TotalVehicles)
	sum := 0.0
	for _, cat := range models.CategoryPriority {
		sum += s.Percentages[cat]
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.InDelta(t, 37.5, s.Percentages[models.CategoryCar], 1e-9)
}

func TestSummaryZeroEvents(t *testing.T) {
	s := BuildSummary([]models.Bucket{{Second: 0}}, models.ModeDetection, testThresholds)

	assert.Equal(t, 0, s.TotalVehicles)
	for _, cat := range models.CategoryPriority {
		assert.Zero(t, s.Percentages[cat], "zero total yields 0%% for %s", cat)
	}
	assert.Zero(t, s.RatePerMinute)
	assert.Equal(t, models.DensityLow, s.Density)
	assert.Equal(t, models.ModeDetection, s.Mode)
}

func TestSummaryZeroDuration(t *testing.T) {
	s := BuildSummary(nil, models.ModeTracking, testThresholds)

	assert.Zero(t, s.TotalVehicles)
	assert.Zero(t, s.RatePerMinute)
	assert.Zero(t, s.DurationSeconds)
}

func TestSummaryPeakTieBreaksEarliest(t *testing.T) {
	series := make([]models.Bucket, 10)
	for i := range series {
		series[i].Second = i
	}
	series[5].Car = 4
	series[5].Total = 4
	series[9].Truck = 4
	series[9].Total = 4

	s := BuildSummary(series, models.ModeTracking, testThresholds)

	assert.Equal(t, 5, s.PeakSecond)
	assert.Equal(t, 4, s.PeakCount)
}

func TestSummaryMostCommonTieUsesPriorityOrder(t *testing.T) {
	series := []models.Bucket{
		{Second: 0, Bike: 2, Truck: 2, Total: 4},
	}

	s := BuildSummary(series, models.ModeTracking, testThresholds)
	assert.Equal(t, models.CategoryBike, s.MostCommon, "bike precedes truck in the fixed priority order")
}

func TestSummaryRateAndDensity(t *testing.T) {
	// 30 vehicles over 60 seconds = 30/minute = high.
	series := make([]models.Bucket, 60)
	for i := range series {
		series[i].Second = i
		if i < 30 {
			series[i].Car = 1
			series[i].Total = 1
		}
	}

	s := BuildSummary(series, models.ModeTracking, testThresholds)

	assert.InDelta(t, 30, s.RatePerMinute, 1e-9)
	assert.Equal(t, models.DensityHigh, s.Density)
}

func TestDensityThresholdBoundaries(t *testing.T) {
	tests := []struct {
		rate float64
		want models.DensityLevel
	}{
		{0, models.DensityLow},
		{9.99, models.DensityLow},
		{10, models.DensityMedium},
		{29.99, models.DensityMedium},
		{30, models.DensityHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, testThresholds.classify(tt.rate), "rate %v", tt.rate)
	}
}
