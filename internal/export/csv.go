// Package export writes analysis results to their external formats: the
// per-second CSV, the plain-text summary report, and the traffic chart.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pointbreak45/Street-Eye/internal/counter"
	"github.com/pointbreak45/Street-Eye/internal/models"
)

// WriteTimeSeriesCSV writes the finalized bucket series as one row per
// elapsed second, zero rows included, with plural category column
// headers from the plural table.
func WriteTimeSeriesCSV(w io.Writer, series []models.Bucket) error {
	cw := csv.NewWriter(w)

	header := []string{"elapsed_second"}
	for _, cat := range models.CategoryPriority {
		header = append(header, counter.Plural(cat))
	}
	header = append(header, "total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, b := range series {
		row := []string{strconv.Itoa(b.Second)}
		for _, cat := range models.CategoryPriority {
			row = append(row, strconv.Itoa(b.CountFor(cat)))
		}
		row = append(row, strconv.Itoa(b.Total))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for second %d: %w", b.Second, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
