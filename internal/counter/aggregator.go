package counter

import "github.com/pointbreak45/Street-Eye/internal/models"

// Aggregator folds crossing events into fixed 1-second buckets keyed by
// elapsed video second. Buckets are created lazily; Finalize fills the
// gaps. One instance per analysis: there are no process-wide counters,
// so several videos can be analyzed in the same process without shared
// state.
type Aggregator struct {
	buckets map[int]*models.Bucket
	events  int
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{buckets: make(map[int]*models.Bucket)}
}

// Record folds one crossing event into its second/category bucket.
func (a *Aggregator) Record(ev models.CrossingEvent) {
	b, ok := a.buckets[ev.Second]
	if !ok {
		b = &models.Bucket{Second: ev.Second}
		a.buckets[ev.Second] = b
	}
	b.Add(ev.Category)
	a.events++
}

// EventCount returns the number of events recorded so far.
func (a *Aggregator) EventCount() int {
	return a.events
}

// CategoryTotals sums recorded events per category.
func (a *Aggregator) CategoryTotals() map[models.Category]int {
	totals := make(map[models.Category]int, len(models.CategoryPriority))
	for _, cat := range models.CategoryPriority {
		totals[cat] = 0
	}
	for _, b := range a.buckets {
		for _, cat := range models.CategoryPriority {
			totals[cat] += b.CountFor(cat)
		}
	}
	return totals
}

// Finalize materializes every integer second from 0 to durationSeconds
// inclusive, zero-filling seconds with no recorded events so traffic
// lulls never leave holes in the exported series. Seconds recorded past
// the stated duration extend the series rather than losing counts.
// Idempotent between Record calls.
func (a *Aggregator) Finalize(durationSeconds int) []models.Bucket {
	last := durationSeconds
	if last < 0 {
		last = 0
	}
	for sec := range a.buckets {
		if sec > last {
			last = sec
		}
	}

	series := make([]models.Bucket, 0, last+1)
	for sec := 0; sec <= last; sec++ {
		if b, ok := a.buckets[sec]; ok {
			series = append(series, *b)
		} else {
			series = append(series, models.Bucket{Second: sec})
		}
	}
	return series
}
