package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pointbreak45/Street-Eye/internal/counter"
	"github.com/pointbreak45/Street-Eye/internal/models"
)

// WriteSummaryText writes the plain-text analysis report.
func WriteSummaryText(w io.Writer, s models.Summary, generatedAt time.Time) error {
	var b strings.Builder

	b.WriteString("=== VEHICLE DETECTION ANALYSIS SUMMARY ===\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("OVERALL STATISTICS:\n")
	fmt.Fprintf(&b, "- Analysis Duration: %.1f minutes\n", float64(s.DurationSeconds)/60)
	fmt.Fprintf(&b, "- Counting Mode: %s\n", s.Mode)
	fmt.Fprintf(&b, "- Total Vehicles Counted: %d\n", s.TotalVehicles)
	fmt.Fprintf(&b, "- Average Traffic Rate: %.1f vehicles/minute (%s density)\n\n", s.RatePerMinute, s.Density)

	b.WriteString("VEHICLE BREAKDOWN:\n")
	for _, cat := range models.CategoryPriority {
		name := capitalize(counter.Plural(cat))
		fmt.Fprintf(&b, "- %s: %d (%.1f%%)\n", name, s.CategoryTotals[cat], s.Percentages[cat])
	}
	b.WriteString("\n")

	b.WriteString("TRAFFIC INSIGHTS:\n")
	fmt.Fprintf(&b, "- Peak Activity: %d vehicles at second %d\n", s.PeakCount, s.PeakSecond)
	fmt.Fprintf(&b, "- Most Common Vehicle: %s\n\n", s.MostCommon)

	b.WriteString("=== END OF SUMMARY ===\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
