package core

import (
	"testing"

	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		expected float64
		unitFrom string
		unitTo   string
	}{
		{"lb to kg", 10, "lb", "kg", 4.5359237, "lb", "kg"},
		{"kg to lbs alias", 1, "kg", "lbs", 2.2046226218, "kg", "lb"},
		{"in to cm", 10, "in", "cm", 25.4, "inches", "cm"},
		{"case insensitive", 254, " CM ", "Inches", 100, "cm", "inches"},
		{"same unit", 7, "kg", "kilograms", 7, "kg", "kg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got.Result, 1e-9)
			assert.Equal(t, tt.unitFrom, got.From)
			assert.Equal(t, tt.unitTo, got.To)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	_, err := Convert(10, "cm", "kg")
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	_, err = Convert(10, "feet", "cm")
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	_, err = Convert(-1, "kg", "lb")
	assert.ErrorIs(t, err, schema.ErrInvalidInput)
}

func TestScreen(t *testing.T) {
	normal := schema.GrowthResult{Metric: schema.HeightMetric, ZScore: 0.2, IsNormal: true}
	high := schema.GrowthResult{Metric: schema.WeightMetric, ZScore: 2.1}
	low := schema.GrowthResult{Metric: schema.BMIMetric, ZScore: -2.5}

	t.Run("all normal", func(t *testing.T) {
		got := Screen(&schema.CalculationResults{
			GrowthResult: normal,
			TargetRange:  &schema.TargetRangeAssessment{Within: true},
		})
		assert.True(t, got.Passed)
		assert.Empty(t, got.Flagged)
		assert.Equal(t, 1, got.Checked)
	})

	t.Run("flagged by severity", func(t *testing.T) {
		got := Screen(&schema.CalculationResults{GrowthResult: normal, WeightResult: &high, BMIResult: &low})
		assert.False(t, got.Passed)
		require.Len(t, got.Flagged, 2)
		assert.Equal(t, schema.BMIMetric, got.Flagged[0].Metric)
		assert.Equal(t, schema.WeightMetric, got.Flagged[1].Metric)
		assert.Equal(t, 3, got.Checked)
	})

	t.Run("outside target range", func(t *testing.T) {
		got := Screen(&schema.CalculationResults{
			GrowthResult: normal,
			TargetRange:  &schema.TargetRangeAssessment{Within: false},
		})
		assert.False(t, got.Passed)
		assert.Empty(t, got.Flagged)
		assert.NotNil(t, got.TargetRange)
	})
}

func TestAssessMidParentalHeight(t *testing.T) {
	store := reference.Builtin()

	_, _, err := AssessMidParentalHeight(store, schema.ChildData{MotherHeight: 165, FatherHeight: 180})
	assert.ErrorIs(t, err, schema.ErrInvalidInput)

	mph, target, err := AssessMidParentalHeight(store, schema.ChildData{Gender: schema.Female, IsAdopted: true})
	require.NoError(t, err)
	assert.Nil(t, mph)
	assert.Nil(t, target)

	mph, target, err = AssessMidParentalHeight(store, schema.ChildData{Gender: schema.Female, MotherHeight: 165, FatherHeight: 180})
	require.NoError(t, err)
	require.NotNil(t, mph)
	assert.InDelta(t, 166, mph.MPH, 1e-9)
	assert.Nil(t, target, "no target range without the child's dates and height")

	mph, target, err = AssessMidParentalHeight(store, schoolBoy())
	require.NoError(t, err)
	require.NotNil(t, mph)
	require.NotNil(t, target)
	assert.True(t, target.Within)

	child := schoolBoy()
	child.MeasurementDate = "2010-01-01"
	_, _, err = AssessMidParentalHeight(store, child)
	assert.ErrorIs(t, err, schema.ErrInvalidRange)
}

func TestChartSeriesForChild(t *testing.T) {
	store := reference.Builtin()

	got, err := ChartSeriesForChild(store, schema.ChildData{Gender: schema.Female}, schema.HeightMetric)
	require.NoError(t, err)
	assert.Equal(t, schema.WHO, got.Standard, "no date of birth draws the WHO window")
	assert.Zero(t, got.ChildY)

	got, err = ChartSeriesForChild(store, schoolBoy(), schema.BMIMetric)
	require.NoError(t, err)
	assert.Equal(t, schema.CDC, got.Standard)
	assert.InDelta(t, 15.61, got.ChildY, 1e-9)

	got, err = ChartSeriesForChild(store, schoolBoy(), schema.HeightMetric)
	require.NoError(t, err)
	assert.NotNil(t, got.Points[0].MPHLine)

	_, err = ChartSeriesForChild(store, schema.ChildData{}, schema.HeightMetric)
	assert.ErrorIs(t, err, schema.ErrInvalidInput)
}

func TestValidateChild(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*schema.ChildData)
		target   error
		contains string
	}{
		{"valid", func(*schema.ChildData) {}, nil, ""},
		{"adopted without parents", func(c *schema.ChildData) { c.IsAdopted, c.MotherHeight, c.FatherHeight = true, 0, 0 }, nil, ""},
		{"inches", func(c *schema.ChildData) { c.Height, c.HeightUnit = 45.7, schema.Inches }, nil, ""},
		{"bad measurement", func(c *schema.ChildData) { c.SelectedMeasurements = []schema.Metric{"head"} }, schema.ErrInvalidInput, "invalid measurement 'head'"},
		{"bad gender", func(c *schema.ChildData) { c.Gender = "x" }, schema.ErrInvalidInput, "must be male or female"},
		{"too old", func(c *schema.ChildData) { c.DateOfBirth = "1990-01-01" }, schema.ErrInvalidRange, "beyond the 0-20 year"},
		{"missing weight", func(c *schema.ChildData) { c.Weight = 0 }, schema.ErrInvalidInput, "please enter a valid weight"},
		{"heavy", func(c *schema.ChildData) { c.Weight, c.WeightUnit = 500, schema.Pounds }, schema.ErrInvalidInput, "weight must be between 3.3 and 440 lb"},
		{"short parent", func(c *schema.ChildData) { c.FatherHeight = 100 }, schema.ErrInvalidInput, "father height must be between 120 and 220 cm"},
		{"bad unit", func(c *schema.ChildData) { c.HeightUnit = "feet" }, schema.ErrInvalidInput, "invalid height unit 'feet'"},
		{"missing dob", func(c *schema.ChildData) { c.DateOfBirth = "" }, schema.ErrInvalidDate, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := schoolBoy()
			tt.modify(&child)
			err := ValidateChild(child)
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// TestValidateChildJoinsErrors checks that every problem is reported at once.
func TestValidateChildJoinsErrors(t *testing.T) {
	child := schoolBoy()
	child.Gender = "x"
	child.Height = 5
	child.MotherHeight = 0

	err := ValidateChild(child)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gender")
	assert.Contains(t, err.Error(), "height must be between 30 and 220 cm")
	assert.Contains(t, err.Error(), "please enter a valid mother height")
}
