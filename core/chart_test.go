package core

import (
	"testing"

	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChartWindows(t *testing.T) {
	store := reference.Builtin()
	tests := []struct {
		name                  string
		metric                schema.Metric
		childX                float64
		standard              schema.GrowthStandard
		points                int
		firstLabel, lastLabel string
		xName, yName          string
	}{
		{"who height", schema.HeightMetric, 6, schema.WHO, 25, "0", "24", "Age (months)", "Length (cm)"},
		{"who boundary", schema.WeightMetric, 24, schema.WHO, 25, "0", "24", "Age (months)", "Weight (kg)"},
		{"cdc height", schema.HeightMetric, 24.01, schema.CDC, 217, "2", "20", "Age (years)", "Height (cm)"},
		{"cdc bmi", schema.BMIMetric, 100, schema.CDC, 217, "2", "20", "Age (years)", "BMI (kg/m²)"},
		{"weight for length", schema.WeightForLengthMetric, 70, schema.WHO, 131, "45.0", "110.0", "Length (cm)", "Weight (kg)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildChart(store, ChartRequest{Metric: tt.metric, Gender: schema.Female, ChildX: tt.childX})
			require.NoError(t, err)
			assert.Equal(t, tt.standard, got.Standard)
			require.Len(t, got.Points, tt.points)
			assert.Equal(t, tt.firstLabel, got.Points[0].Label)
			assert.Equal(t, tt.lastLabel, got.Points[len(got.Points)-1].Label)
			assert.Equal(t, tt.xName, got.XName)
			assert.Equal(t, tt.yName, got.YName)
			assert.InDelta(t, tt.childX, got.ChildX, 1e-12)
		})
	}
}

// TestBuildChartPercentilesOrdered checks that the curves never cross.
func TestBuildChartPercentilesOrdered(t *testing.T) {
	store := reference.Builtin()
	for _, metric := range schema.AllMetrics {
		for _, x := range []float64{6, 60} {
			got, err := BuildChart(store, ChartRequest{Metric: metric, Gender: schema.Male, ChildX: x})
			require.NoError(t, err)
			for _, p := range got.Points {
				for i := 1; i < len(schema.StandardPercentiles); i++ {
					lo, hi := schema.StandardPercentiles[i-1], schema.StandardPercentiles[i]
					assert.Less(t, p.Percentile(lo), p.Percentile(hi), "%s at x=%v: P%d vs P%d", metric, p.X, lo, hi)
				}
			}
		}
	}
}

func TestBuildChartMPHLines(t *testing.T) {
	store := reference.Builtin()
	mph, err := CalculateMidParentalHeight(store, schema.Male, 165, 180)
	require.NoError(t, err)

	got, err := BuildChart(store, ChartRequest{Metric: schema.HeightMetric, Gender: schema.Male, ChildX: 72, ChildY: 116, MPH: mph})
	require.NoError(t, err)
	for _, p := range got.Points {
		require.NotNil(t, p.MPHLine, "x=%v", p.X)
		require.NotNil(t, p.ThrLevel1Min)
		require.NotNil(t, p.ThrLevel1Max)
		assert.Less(t, *p.ThrLevel1Min, *p.MPHLine)
		assert.Less(t, *p.MPHLine, *p.ThrLevel1Max)
	}
	last := got.Points[len(got.Points)-1]
	assert.InDelta(t, 179, *last.MPHLine, 0.2, "the MPH line ends at the MPH")

	// MPH lines are only drawn on CDC height charts.
	for _, req := range []ChartRequest{
		{Metric: schema.HeightMetric, Gender: schema.Male, ChildX: 6, MPH: mph},
		{Metric: schema.WeightMetric, Gender: schema.Male, ChildX: 72, MPH: mph},
	} {
		got, err := BuildChart(store, req)
		require.NoError(t, err)
		for _, p := range got.Points {
			assert.Nil(t, p.MPHLine)
			assert.Nil(t, p.ThrLevel1Min)
		}
	}
}

func TestBuildChartErrors(t *testing.T) {
	store := reference.Builtin()

	_, err := BuildChart(store, ChartRequest{Metric: "head", Gender: schema.Male})
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	_, err = BuildChart(store, ChartRequest{Metric: schema.HeightMetric, Gender: schema.Male, ChildX: -1})
	assert.ErrorIs(t, err, schema.ErrNegativeQuery)

	_, err = BuildChart(store, ChartRequest{Metric: schema.HeightMetric, Gender: "other"})
	assert.Error(t, err)
}

func BenchmarkBuildChart(b *testing.B) {
	store := reference.Builtin()
	mph, _ := CalculateMidParentalHeight(store, schema.Male, 165, 180)
	req := ChartRequest{Metric: schema.HeightMetric, Gender: schema.Male, ChildX: 72, ChildY: 116, MPH: mph}
	for b.Loop() {
		_, _ = BuildChart(store, req)
	}
}
