package models

// CrossingEvent is one counted vehicle. Immutable once emitted, never
// retracted; each event contributes +1 to its second/category bucket.
type CrossingEvent struct {
	Category   Category `json:"category"`
	Second     int      `json:"second"`
	FrameIndex int64    `json:"frame_index"`
	TrackID    int64    `json:"track_id,omitempty"`
}

// Bucket is one integer second of elapsed video time. The field layout
// mirrors the exported time-series row so seconds with no traffic still
// produce an all-zero row.
type Bucket struct {
	Second int `json:"elapsed_second"`
	Car    int `json:"car"`
	Bike   int `json:"bike"`
	Bus    int `json:"bus"`
	Truck  int `json:"truck"`
	Other  int `json:"other"`
	Total  int `json:"total"`
}

// Add folds one crossing of the given category into the bucket.
func (b *Bucket) Add(cat Category) {
	switch cat {
	case CategoryCar:
		b.Car++
	case CategoryBike:
		b.Bike++
	case CategoryBus:
		b.Bus++
	case CategoryTruck:
		b.Truck++
	default:
		b.Other++
	}
	b.Total++
}

// CountFor returns the bucket count for one category.
func (b Bucket) CountFor(cat Category) int {
	switch cat {
	case CategoryCar:
		return b.Car
	case CategoryBike:
		return b.Bike
	case CategoryBus:
		return b.Bus
	case CategoryTruck:
		return b.Truck
	default:
		return b.Other
	}
}

// DensityLevel classifies overall traffic rate against configured cutoffs.
type DensityLevel string

const (
	DensityLow    DensityLevel = "low"
	DensityMedium DensityLevel = "medium"
	DensityHigh   DensityLevel = "high"
)

// Summary is the structured analysis result consumed by the report
// writers and the API.
type Summary struct {
	TotalVehicles   int                  `json:"total_vehicles"`
	CategoryTotals  map[Category]int     `json:"category_totals"`
	Percentages     map[Category]float64 `json:"percentages"`
	DurationSeconds int                  `json:"duration_seconds"`
	RatePerMinute   float64              `json:"rate_per_minute"`
	PeakSecond      int                  `json:"peak_second"`
	PeakCount       int                  `json:"peak_count"`
	MostCommon      Category             `json:"most_common"`
	Density         DensityLevel         `json:"density"`
	Mode            CountingMode         `json:"mode"`
}
