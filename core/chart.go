package core

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// Chart windows. X is months for age based charts and centimeters for weight-for-length.
const (
	whoChartStart = 0.0
	whoChartEnd   = 24.0
	cdcChartStart = 24.0
	cdcChartEnd   = reference.AdultAgeMonths
	wflChartStart = 45.0
	wflChartEnd   = 110.0
	ageChartStep  = 1.0
	wflChartStep  = 0.5
)

// ChartRequest describes one growth chart. ChildX is the age in months, or the
// length in centimeters for weight-for-length. ChildY is the child's measurement
// in the chart unit and may be zero when no marker is wanted.
type ChartRequest struct {
	Metric schema.Metric
	Gender schema.Gender
	ChildX float64
	ChildY float64
	MPH    *schema.MidParentalHeight
}

type chartWindow struct {
	standard   schema.GrowthStandard
	start, end float64
	step       float64
	xName      string
	label      func(x float64) string
}

// BuildChart generates the percentile curves for the window that contains the
// child. Age charts use one standard for the whole window: WHO from 0 to 24
// months, CDC from 24 to 240 months. The MPH and target range lines are only
// drawn on CDC height charts, re-evaluated at each age from the MPH Z-scores.
func BuildChart(store *reference.Store, req ChartRequest) (schema.ChartSeries, error) {
	if _, ok := schema.ValidMetrics[req.Metric]; !ok {
		return schema.ChartSeries{}, fmt.Errorf("%w: unknown metric '%s'", schema.ErrInvalidInput, req.Metric)
	}
	if req.ChildX < 0 {
		return schema.ChartSeries{}, schema.ErrNegativeQuery
	}
	win := windowFor(req.Metric, req.ChildX)
	table, err := store.Table(req.Metric, win.standard, req.Gender)
	if err != nil {
		return schema.ChartSeries{}, err
	}
	withMPH := req.MPH != nil && req.Metric == schema.HeightMetric && win.standard == schema.CDC

	n := int(math.Round((win.end-win.start)/win.step)) + 1
	points := make([]schema.ChartPoint, 0, n)
	for i := range n {
		x := win.start + float64(i)*win.step
		lms, err := algo.Interpolate(x, table)
		if err != nil {
			return schema.ChartSeries{}, err
		}
		point := schema.ChartPoint{X: x, Label: win.label(x)}
		for _, pct := range schema.StandardPercentiles {
			v, err := algo.MeasurementForZAt(algo.ZForPercentile(pct), lms)
			if err != nil {
				return schema.ChartSeries{}, fmt.Errorf("percentile %d at %v: %w", pct, x, err)
			}
			point.SetPercentile(pct, v)
		}
		if withMPH {
			point.MPHLine = lineAt(req.MPH.MPHZScore, lms)
			point.ThrLevel1Min = lineAt(req.MPH.ThrLevel1MinZScore, lms)
			point.ThrLevel1Max = lineAt(req.MPH.ThrLevel1MaxZScore, lms)
		}
		points = append(points, point)
	}

	return schema.ChartSeries{
		Metric:   req.Metric,
		Standard: win.standard,
		Gender:   req.Gender,
		XName:    win.xName,
		YName:    yName(req.Metric, win.standard),
		Points:   points,
		ChildX:   req.ChildX,
		ChildY:   req.ChildY,
	}, nil
}

func windowFor(metric schema.Metric, childX float64) chartWindow {
	if metric == schema.WeightForLengthMetric {
		return chartWindow{
			standard: schema.WHO, start: wflChartStart, end: wflChartEnd, step: wflChartStep,
			xName: "Length (cm)",
			label: func(x float64) string { return strconv.FormatFloat(x, 'f', 1, 64) },
		}
	}
	if algo.SelectStandard(childX) == schema.WHO {
		return chartWindow{
			standard: schema.WHO, start: whoChartStart, end: whoChartEnd, step: ageChartStep,
			xName: "Age (months)",
			label: func(x float64) string { return strconv.Itoa(int(x)) },
		}
	}
	return chartWindow{
		standard: schema.CDC, start: cdcChartStart, end: cdcChartEnd, step: ageChartStep,
		xName: "Age (years)",
		label: func(x float64) string { return strconv.Itoa(int(x / 12)) },
	}
}

func yName(metric schema.Metric, standard schema.GrowthStandard) string {
	switch metric {
	case schema.HeightMetric:
		if standard == schema.WHO {
			return "Length (cm)"
		}
		return "Height (cm)"
	case schema.BMIMetric:
		return "BMI (kg/m²)"
	default:
		return "Weight (kg)"
	}
}

// lineAt returns nil when z falls outside the LMS domain at this point.
func lineAt(z float64, p schema.LMSPoint) *float64 {
	v, err := algo.MeasurementForZAt(z, p)
	if err != nil {
		return nil
	}
	return &v
}
