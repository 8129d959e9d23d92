package core

import (
	"testing"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMidParentalHeight(t *testing.T) {
	store := reference.Builtin()
	tests := []struct {
		name          string
		gender        schema.Gender
		mph, min, max float64
	}{
		{"boy", schema.Male, 179, 169, 189},
		{"girl", schema.Female, 166, 157.5, 174.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateMidParentalHeight(store, tt.gender, 165, 180)
			require.NoError(t, err)
			assert.InDelta(t, tt.mph, got.MPH, 1e-9)
			assert.InDelta(t, tt.min, got.ThrLevel1Min, 1e-9)
			assert.InDelta(t, tt.max, got.ThrLevel1Max, 1e-9)
			assert.Less(t, got.ThrLevel1MinZScore, got.MPHZScore)
			assert.Less(t, got.MPHZScore, got.ThrLevel1MaxZScore)
			assert.Nil(t, got.ThrLevel2Min)
			assert.Nil(t, got.ThrLevel2MaxZScore)
		})
	}
}

func TestCalculateMidParentalHeightZScore(t *testing.T) {
	store := reference.Builtin()
	adult, err := store.LookupStandard(schema.HeightMetric, schema.CDC, schema.Male, reference.AdultAgeMonths)
	require.NoError(t, err)

	// Parents whose MPH lands on the adult median score zero.
	father := 2*adult.M - 13 - 160
	got, err := CalculateMidParentalHeight(store, schema.Male, 160, father)
	require.NoError(t, err)
	assert.InDelta(t, 0, got.MPHZScore, 0.01)
}

func TestCalculateMidParentalHeightErrors(t *testing.T) {
	store := reference.Builtin()

	_, err := CalculateMidParentalHeight(store, schema.Male, 0, 180)
	assert.ErrorIs(t, err, schema.ErrMissingParentData)

	_, err = CalculateMidParentalHeight(store, schema.Gender("other"), 165, 180)
	assert.ErrorIs(t, err, schema.ErrInvalidInput)
}

func TestMidParentalHeightForChild(t *testing.T) {
	store := reference.Builtin()

	t.Run("inches are converted", func(t *testing.T) {
		got, err := MidParentalHeightForChild(store, schema.ChildData{
			Gender:           schema.Male,
			MotherHeight:     65,
			FatherHeight:     71,
			MotherHeightUnit: schema.Inches,
			FatherHeightUnit: schema.Inches,
		})
		require.NoError(t, err)
		assert.InDelta(t, 179.2, got.MPH, 1e-9)
	})

	t.Run("adopted without parents", func(t *testing.T) {
		got, err := MidParentalHeightForChild(store, schema.ChildData{Gender: schema.Female, MotherHeight: 160, IsAdopted: true})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing parents", func(t *testing.T) {
		_, err := MidParentalHeightForChild(store, schema.ChildData{Gender: schema.Female, FatherHeight: 180})
		assert.ErrorIs(t, err, schema.ErrMissingParentData)
	})

	t.Run("bad unit", func(t *testing.T) {
		_, err := MidParentalHeightForChild(store, schema.ChildData{
			Gender: schema.Female, MotherHeight: 160, FatherHeight: 180, FatherHeightUnit: "feet",
		})
		assert.ErrorIs(t, err, schema.ErrInvalidInput)
	})
}

func TestAssessTargetRange(t *testing.T) {
	store := reference.Builtin()
	mph, err := CalculateMidParentalHeight(store, schema.Male, 165, 180)
	require.NoError(t, err)

	got, err := AssessTargetRange(store, schema.Male, 24, 87, mph)
	require.NoError(t, err)
	assert.Nil(t, got, "no target range at 24 months")

	got, err = AssessTargetRange(store, schema.Male, 72, 116, nil)
	require.NoError(t, err)
	assert.Nil(t, got, "no target range without MPH")

	p, err := store.LookupStandard(schema.HeightMetric, schema.CDC, schema.Male, 72)
	require.NoError(t, err)
	onTrack, err := algo.MeasurementForZAt(mph.MPHZScore, p)
	require.NoError(t, err)

	got, err = AssessTargetRange(store, schema.Male, 72, onTrack, mph)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Within)
	assert.Equal(t, withinTargetText, got.Message)
	assert.Less(t, got.MinCm, onTrack)
	assert.Greater(t, got.MaxCm, onTrack)

	got, err = AssessTargetRange(store, schema.Male, 72, 100, mph)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Within)
	assert.Equal(t, outsideTargetText, got.Message)
}

// TestTargetRangeAtAdultAge checks that the projected range at 20 years is the parental range.
func TestTargetRangeAtAdultAge(t *testing.T) {
	store := reference.Builtin()
	mph, err := CalculateMidParentalHeight(store, schema.Female, 165, 180)
	require.NoError(t, err)

	got, err := AssessTargetRange(store, schema.Female, reference.AdultAgeMonths, 166, mph)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, mph.ThrLevel1Min, got.MinCm, 0.2)
	assert.InDelta(t, mph.ThrLevel1Max, got.MaxCm, 0.2)
	assert.True(t, got.Within)
}
