package core

import (
	"testing"

	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/stretchr/testify/assert"
)

// TestBand checks the band edges for weight, BMI and weight-for-length.
func TestBand(t *testing.T) {
	tests := []struct {
		percentile float64
		expected   int
	}{
		{0.5, bandVeryLow},
		{2.999, bandVeryLow},
		{3.0, bandLow},
		{9.99, bandLow},
		{10, bandBelow},
		{24.9, bandBelow},
		{25, bandNormal},
		{75, bandNormal},
		{75.01, bandAbove},
		{90, bandAbove},
		{90.01, bandHigh},
		{97, bandHigh},
		{97.01, bandVeryHigh},
		{99.9, bandVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Band(tt.percentile), "percentile %v", tt.percentile)
	}
}

// TestHeightBand checks that height bands include their lower edge.
func TestHeightBand(t *testing.T) {
	tests := []struct {
		percentile float64
		expected   int
	}{
		{2.999, bandVeryLow},
		{3.0, bandLow},
		{10, bandBelow},
		{25, bandNormal},
		{74.9, bandNormal},
		{75, bandAbove},
		{90, bandHigh},
		{96.99, bandHigh},
		{97, bandVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HeightBand(tt.percentile), "percentile %v", tt.percentile)
	}
}

func TestInterpretHeight(t *testing.T) {
	tests := []struct {
		name       string
		standard   schema.GrowthStandard
		percentile float64
		zScore     float64
		contains   string
		normal     bool
	}{
		{"median cdc", schema.CDC, 50, 0, "height is at the 50.0th percentile", true},
		{"median who says length", schema.WHO, 50, 0, "length is at the 50.0th percentile", true},
		{"very tall stays normal", schema.CDC, 98.5, 2.17, "very tall", true},
		{"tall", schema.CDC, 92, 1.4, "considered tall", true},
		{"lower edge of below average", schema.CDC, 10, -1.28, "below average but still within normal range", true},
		{"short stature", schema.CDC, 9.9, -1.29, "short stature", false},
		{"lower edge of short stature", schema.CDC, 3.0, -1.88, "short stature", false},
		{"significant short stature", schema.CDC, 1.8, -2.1, "Z-score: -2.10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(schema.HeightMetric, tt.standard, tt.percentile, tt.zScore)
			assert.Contains(t, got.Text, tt.contains)
			assert.Equal(t, tt.normal, got.IsNormal)
			assert.NotEmpty(t, got.Advice)
		})
	}
}

func TestInterpretWeightLike(t *testing.T) {
	tests := []struct {
		name       string
		metric     schema.Metric
		percentile float64
		contains   string
		normal     bool
	}{
		{"weight very low", schema.WeightMetric, 2.999, "below the 3rd percentile", false},
		{"weight low edge", schema.WeightMetric, 3.0, "between the 3rd and 10th percentiles", true},
		{"weight normal", schema.WeightMetric, 50, "indicating normal weight for age", true},
		{"weight high edge", schema.WeightMetric, 97, "between the 90th and 97th percentiles", true},
		{"weight very high", schema.WeightMetric, 97.01, "above the 97th percentile", false},
		{"bmi above", schema.BMIMetric, 80, "indicating above average BMI for age", true},
		{"wfl high", schema.WeightForLengthMetric, 95, "elevated weight for their length", true},
		{"wfl very low", schema.WeightForLengthMetric, 1, "very low weight for their length", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.metric, schema.WHO, tt.percentile, 0)
			assert.Contains(t, got.Text, tt.contains)
			assert.Equal(t, tt.normal, got.IsNormal)
		})
	}
}

func TestInterpretAdvice(t *testing.T) {
	got := Interpret(schema.WeightForLengthMetric, schema.WHO, 99, 2.5)
	assert.Contains(t, got.Advice, "Very high weight-for-length may indicate health concerns")

	got = Interpret(schema.BMIMetric, schema.CDC, 50, 0)
	assert.Contains(t, got.Advice, "Your child's BMI is within the normal range")

	// Unknown metrics get neutral wording.
	got = Interpret(schema.Metric("head"), schema.CDC, 50, 0)
	assert.Equal(t, "The head measurement is at the 50.0th percentile.", got.Text)
	assert.NotContains(t, got.Text, "weight")
	assert.Empty(t, got.Advice)
	assert.True(t, got.IsNormal)

	got = Interpret(schema.Metric("head"), schema.CDC, 1.5, -2.2)
	assert.False(t, got.IsNormal)
}
