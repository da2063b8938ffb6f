package counter

import "github.com/pointbreak45/Street-Eye/internal/models"

// DensityThresholds are the named rate cutoffs, in vehicles per minute,
// separating low, medium, and high traffic.
type DensityThresholds struct {
	MediumRate float64
	HighRate   float64
}

// classify maps a rate onto a density level.
func (t DensityThresholds) classify(ratePerMinute float64) models.DensityLevel {
	switch {
	case ratePerMinute >= t.HighRate:
		return models.DensityHigh
	case ratePerMinute >= t.MediumRate:
		return models.DensityMedium
	default:
		return models.DensityLow
	}
}

// BuildSummary computes the analysis summary from a finalized bucket
// series. Pure: calling it again over the same series yields the same
// result. A zero-event or zero-duration series yields an all-zero
// summary, never a division by zero.
func BuildSummary(series []models.Bucket, mode models.CountingMode, thresholds DensityThresholds) models.Summary {
	summary := models.Summary{
		CategoryTotals:  make(map[models.Category]int, len(models.CategoryPriority)),
		Percentages:     make(map[models.Category]float64, len(models.CategoryPriority)),
		DurationSeconds: len(series),
		Mode:            mode,
	}
	for _, cat := range models.CategoryPriority {
		summary.CategoryTotals[cat] = 0
		summary.Percentages[cat] = 0
	}

	for _, b := range series {
		for _, cat := range models.CategoryPriority {
			summary.CategoryTotals[cat] += b.CountFor(cat)
		}
		summary.TotalVehicles += b.Total
		// Strict > keeps the earliest second on peak ties.
		if b.Total > summary.PeakCount {
			summary.PeakCount = b.Total
			summary.PeakSecond = b.Second
		}
	}

	if summary.TotalVehicles > 0 {
		for _, cat := range models.CategoryPriority {
			summary.Percentages[cat] = float64(summary.CategoryTotals[cat]) / float64(summary.TotalVehicles) * 100
		}
	}

	if summary.DurationSeconds > 0 {
		summary.RatePerMinute = float64(summary.TotalVehicles) / (float64(summary.DurationSeconds) / 60)
	}

	// Most common category: argmax total, priority order breaks ties.
	summary.MostCommon = models.CategoryPriority[0]
	for _, cat := range models.CategoryPriority {
		if summary.CategoryTotals[cat] > summary.CategoryTotals[summary.MostCommon] {
			summary.MostCommon = cat
		}
	}

	summary.Density = thresholds.classify(summary.RatePerMinute)
	return summary
}
