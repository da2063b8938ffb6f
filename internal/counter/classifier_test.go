package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		label string
		want  models.Category
	}{
		{"car", models.CategoryCar},
		{"bicycle", models.CategoryBike},
		{"motorcycle", models.CategoryBike},
		{"bus", models.CategoryBus},
		{"truck", models.CategoryTruck},
		{"train", models.CategoryOther},
		{"Car", models.CategoryCar},
		{"BUS", models.CategoryBus},
		{"giraffe", models.CategoryOther},
		{"", models.CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.label), "label %q", tt.label)
	}
}

func TestClassifyOverrides(t *testing.T) {
	c := NewClassifier(map[string]models.Category{
		"Tractor": models.CategoryTruck,
		"train":   models.CategoryBus,
	})

	assert.Equal(t, models.CategoryTruck, c.Classify("tractor"))
	assert.Equal(t, models.CategoryBus, c.Classify("train"))
	// Defaults survive alongside overrides.
	assert.Equal(t, models.CategoryBike, c.Classify("motorcycle"))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "buses", Plural(models.CategoryBus), "bus must not pluralize to buss")
	assert.Equal(t, "cars", Plural(models.CategoryCar))
	assert.Equal(t, "bikes", Plural(models.CategoryBike))
	assert.Equal(t, "trucks", Plural(models.CategoryTruck))
	assert.Equal(t, "others", Plural(models.CategoryOther))
}
