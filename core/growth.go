package core

import (
	"fmt"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// evaluate looks up the reference point at x and scores the measurement against it.
// Interpretation uses the unrounded percentile; the returned numbers are rounded.
func evaluate(store *reference.Store, metric schema.Metric, gender schema.Gender, x, measurement float64) (schema.GrowthResult, error) {
	if measurement <= 0 {
		return schema.GrowthResult{}, fmt.Errorf("%w: %s must be positive", schema.ErrInvalidInput, metric)
	}
	point, standard, err := store.Lookup(metric, gender, x)
	if err != nil {
		return schema.GrowthResult{}, err
	}
	z, err := algo.ZScoreAt(measurement, point)
	if err != nil {
		return schema.GrowthResult{}, err
	}
	percentile := algo.PercentileFromZ(z)
	reading := Interpret(metric, standard, percentile, z)

	return schema.GrowthResult{
		Metric:         metric,
		ZScore:         algo.Round(z, 2),
		Percentile:     algo.Round(percentile, 1),
		Standard:       standard,
		Interpretation: reading.Text,
		Advice:         reading.Advice,
		IsNormal:       reading.IsNormal,
	}, nil
}

// CalculateHeightResult scores a height in centimeters for the child's age.
func CalculateHeightResult(store *reference.Store, heightCm, ageInMonths float64, gender schema.Gender) (schema.GrowthResult, error) {
	return evaluate(store, schema.HeightMetric, gender, ageInMonths, heightCm)
}

// CalculateWeightResult scores a weight in kilograms for the child's age.
func CalculateWeightResult(store *reference.Store, weightKg, ageInMonths float64, gender schema.Gender) (schema.GrowthResult, error) {
	return evaluate(store, schema.WeightMetric, gender, ageInMonths, weightKg)
}

// CalculateBMIResult scores a BMI value for the child's age.
func CalculateBMIResult(store *reference.Store, bmi, ageInMonths float64, gender schema.Gender) (schema.GrowthResult, error) {
	return evaluate(store, schema.BMIMetric, gender, ageInMonths, bmi)
}

// CalculateWeightForLengthResult scores a weight in kilograms against the WHO
// weight-for-length table at the given length.
func CalculateWeightForLengthResult(store *reference.Store, weightKg, lengthCm float64, gender schema.Gender) (schema.GrowthResult, error) {
	return evaluate(store, schema.WeightForLengthMetric, gender, lengthCm, weightKg)
}
