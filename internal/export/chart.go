package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pointbreak45/Street-Eye/internal/counter"
	"github.com/pointbreak45/Street-Eye/internal/models"
)

// categoryColors keeps the chart palette aligned with the overlay colors.
var categoryColors = map[models.Category]string{
	models.CategoryCar:   "#00c853",
	models.CategoryBike:  "#00b8d4",
	models.CategoryBus:   "#ffd600",
	models.CategoryTruck: "#d500f9",
	models.CategoryOther: "#9e9e9e",
}

// WriteTrafficChart renders the per-second traffic flow as an HTML line
// chart: one series per category plus the total.
func WriteTrafficChart(w io.Writer, series []models.Bucket) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Street-Eye Traffic Flow",
			Theme:     "dark",
			Width:     "1100px",
			Height:    "550px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Vehicles Crossing Per Second",
			Subtitle: fmt.Sprintf("%d seconds of video", len(series)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "elapsed second"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "vehicles"}),
	)

	xAxis := make([]string, len(series))
	for i, b := range series {
		xAxis[i] = strconv.Itoa(b.Second)
	}
	line.SetXAxis(xAxis)

	for _, cat := range models.CategoryPriority {
		data := make([]opts.LineData, len(series))
		for i, b := range series {
			data[i] = opts.LineData{Value: b.CountFor(cat)}
		}
		line.AddSeries(counter.Plural(cat), data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: categoryColors[cat]}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: categoryColors[cat]}),
		)
	}

	totalData := make([]opts.LineData, len(series))
	for i, b := range series {
		totalData[i] = opts.LineData{Value: b.Total}
	}
	line.AddSeries("total", totalData,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#ff1744", Width: 3}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff1744"}),
	)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render traffic chart: %w", err)
	}
	return nil
}
