package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

func TestAggregatorTotalsMatchEvents(t *testing.T) {
	a := NewAggregator()

	events := []models.CrossingEvent{
		{Category: models.CategoryCar, Second: 0},
		{Category: models.CategoryCar, Second: 3},
		{Category: models.CategoryBus, Second: 3},
		{Category: models.CategoryBike, Second: 7},
	}
	for _, ev := range events {
		a.Record(ev)
	}

	series := a.Finalize(9)

	total := 0
	for _, b := range series {
		total += b.Total
	}
	assert.Equal(t, len(events), total, "series total equals events recorded")
	assert.Equal(t, len(events), a.EventCount())
}

func TestFinalizeIsDense(t *testing.T) {
	a := NewAggregator()
	a.Record(models.CrossingEvent{Category: models.CategoryCar, Second: 2})
	a.Record(models.CrossingEvent{Category: models.CategoryTruck, Second: 5})

	series := a.Finalize(5)

	require.Len(t, series, 6)
	for sec, b := range series {
		assert.Equal(t, sec, b.Second, "every second in [0, duration] present exactly once, in order")
	}
	assert.Equal(t, 0, series[0].Total)
	assert.Equal(t, 1, series[2].Car)
	assert.Equal(t, 0, series[3].Total, "quiet seconds materialize as zero rows")
	assert.Equal(t, 1, series[5].Truck)
}

func TestFinalizeIdempotent(t *testing.T) {
	a := NewAggregator()
	a.Record(models.CrossingEvent{Category: models.CategoryBike, Second: 1})

	first := a.Finalize(3)
	second := a.Finalize(3)
	assert.Equal(t, first, second)
}

func TestFinalizeExtendsPastStatedDuration(t *testing.T) {
	a := NewAggregator()
	a.Record(models.CrossingEvent{Category: models.CategoryCar, Second: 8})

	series := a.Finalize(4)
	require.Len(t, series, 9)
	assert.Equal(t, 1, series[8].Car)
}

func TestFinalizeEmptyAggregator(t *testing.T) {
	a := NewAggregator()

	series := a.Finalize(0)
	require.Len(t, series, 1)
	assert.Equal(t, models.Bucket{Second: 0}, series[0])
}

func TestCategoryTotals(t *testing.T) {
	a := NewAggregator()
	a.Record(models.CrossingEvent{Category: models.CategoryCar, Second: 0})
	a.Record(models.CrossingEvent{Category: models.CategoryCar, Second: 1})
	a.Record(models.CrossingEvent{Category: models.CategoryOther, Second: 2})

	totals := a.CategoryTotals()
	assert.Equal(t, 2, totals[models.CategoryCar])
	assert.Equal(t, 1, totals[models.CategoryOther])
	assert.Equal(t, 0, totals[models.CategoryBus], "all categories present even at zero")
}
