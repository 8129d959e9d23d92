// Package plot renders growth charts as standalone HTML pages with go-echarts.
package plot

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// Series names for the overlay lines.
const (
	ChildSeries  = "Child"
	MPHSeries    = "MPH"
	ThrMinSeries = "Target min"
	ThrMaxSeries = "Target max"
)

const (
	childColor = "#d62728"
	mphColor   = "rgba(31, 119, 180, 0.8)"
	thrColor   = "rgba(128, 128, 128, 0.6)"
)

// PercentileName is the legend name of a percentile curve, e.g. "P50".
func PercentileName(pct int) string {
	return fmt.Sprintf("P%d", pct)
}

// Title returns the chart title, e.g. "Height-for-age (CDC, male)".
func Title(series schema.ChartSeries) string {
	name := "Height-for-age"
	switch series.Metric {
	case schema.WeightMetric:
		name = "Weight-for-age"
	case schema.BMIMetric:
		name = "BMI-for-age"
	case schema.WeightForLengthMetric:
		name = "Weight-for-length"
	case schema.HeightMetric:
		if series.Standard == schema.WHO {
			name = "Length-for-age"
		}
	}
	return fmt.Sprintf("%s (%s, %s)", name, series.Standard, series.Gender)
}

// Build creates the line chart for the given percentile curves.
func Build(series schema.ChartSeries, percentiles []int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: Title(series),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: series.XName,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  series.YName,
			Scale: opts.Bool(true),
		}),
	)

	xAxis := make([]string, 0, len(series.Points))
	for _, p := range series.Points {
		xAxis = append(xAxis, p.Label)
	}
	line.SetXAxis(xAxis)

	for _, pct := range percentiles {
		data := make([]opts.LineData, 0, len(series.Points))
		for _, p := range series.Points {
			data = append(data, opts.LineData{Value: p.Percentile(pct)})
		}
		line.AddSeries(PercentileName(pct), data,
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(false),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: percentileWidth(pct),
			}),
		)
	}

	addOverlay(line, series, MPHSeries, mphColor, func(p schema.ChartPoint) *float64 { return p.MPHLine })
	addOverlay(line, series, ThrMinSeries, thrColor, func(p schema.ChartPoint) *float64 { return p.ThrLevel1Min })
	addOverlay(line, series, ThrMaxSeries, thrColor, func(p schema.ChartPoint) *float64 { return p.ThrLevel1Max })

	if i := ChildIndex(series); i >= 0 {
		data := make([]opts.LineData, len(series.Points))
		for j := range data {
			data[j] = opts.LineData{Value: "-"}
		}
		data[i] = opts.LineData{Value: series.ChildY, Symbol: "circle", SymbolSize: 10}
		line.AddSeries(ChildSeries, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: childColor}),
		)
	}
	return line
}

// Render writes the chart as an HTML page.
func Render(w io.Writer, series schema.ChartSeries, percentiles []int) error {
	if len(series.Points) == 0 {
		return fmt.Errorf("chart has no points")
	}
	return Build(series, percentiles).Render(w)
}

// ChildIndex returns the point closest to the child's x position, or -1
// when the chart carries no measurement for the child.
func ChildIndex(series schema.ChartSeries) int {
	if series.ChildY <= 0 || len(series.Points) == 0 {
		return -1
	}
	first, last := series.Points[0].X, series.Points[len(series.Points)-1].X
	if series.ChildX < first || series.ChildX > last {
		return -1
	}
	best, bestDist := -1, math.Inf(1)
	for i, p := range series.Points {
		if d := math.Abs(p.X - series.ChildX); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// addOverlay adds a dashed series for an optional per-point value. Nothing is
// added when no point carries the value.
func addOverlay(line *charts.Line, series schema.ChartSeries, name, color string, value func(schema.ChartPoint) *float64) {
	data := make([]opts.LineData, 0, len(series.Points))
	found := false
	for _, p := range series.Points {
		if v := value(p); v != nil {
			data = append(data, opts.LineData{Value: *v})
			found = true
		} else {
			data = append(data, opts.LineData{Value: "-"})
		}
	}
	if !found {
		return
	}
	line.AddSeries(name, data,
		charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol: opts.Bool(false),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: color,
			Type:  "dashed",
			Width: 1.5,
		}),
	)
}

// percentileWidth draws the median thicker than the outer curves.
func percentileWidth(pct int) float32 {
	if pct == 50 {
		return 2.5
	}
	return 1
}
