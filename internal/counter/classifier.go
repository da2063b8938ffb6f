package counter

import (
	"strings"

	"github.com/pointbreak45/Street-Eye/internal/models"
)

// defaultMapping folds the detector vocabulary into the closed category
// set. Many-to-one: motorcycles and bicycles both count as bikes.
var defaultMapping = map[string]models.Category{
	"car":        models.CategoryCar,
	"bicycle":    models.CategoryBike,
	"motorcycle": models.CategoryBike,
	"bus":        models.CategoryBus,
	"truck":      models.CategoryTruck,
	"train":      models.CategoryOther,
}

// Classifier maps raw detector class labels to vehicle categories. The
// mapping is total: labels outside the vocabulary classify as "other".
type Classifier struct {
	mapping map[string]models.Category
}

// NewClassifier builds a classifier from the default vocabulary plus any
// configured overrides.
func NewClassifier(overrides map[string]models.Category) *Classifier {
	mapping := make(map[string]models.Category, len(defaultMapping)+len(overrides))
	for label, cat := range defaultMapping {
		mapping[label] = cat
	}
	for label, cat := range overrides {
		mapping[strings.ToLower(label)] = cat
	}
	return &Classifier{mapping: mapping}
}

// Classify returns the category for a raw class label. Never fails.
func (c *Classifier) Classify(rawLabel string) models.Category {
	if cat, ok := c.mapping[strings.ToLower(rawLabel)]; ok {
		return cat
	}
	return models.CategoryOther
}

// irregularPlurals lists categories whose plural is not label+"s".
// Naive suffixing produced "buss" in an earlier rendition of the CSV
// header, so plural forms go through this table only.
var irregularPlurals = map[models.Category]string{
	models.CategoryBus: "buses",
}

// Plural returns the output-column plural form of a category.
func Plural(cat models.Category) string {
	if p, ok := irregularPlurals[cat]; ok {
		return p
	}
	return string(cat) + "s"
}
