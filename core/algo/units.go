// Package algo has the numeric kernels of the growth engine: unit conversion,
// age arithmetic, LMS interpolation and the Z-score transforms.
package algo

import (
	"fmt"
	"math"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// Conversion factors.
const (
	CmPerInch = 2.54
	KgPerLb   = 0.45359237
)

// ConvertHeight converts a length between centimeters and inches.
func ConvertHeight(value float64, from, to schema.HeightUnit) (float64, error) {
	if value < 0 || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: height cannot be negative (got %v)", schema.ErrInvalidInput, value)
	}
	if from == to {
		return value, nil
	}
	switch {
	case from == schema.Inches && to == schema.Centimeters:
		return value * CmPerInch, nil
	case from == schema.Centimeters && to == schema.Inches:
		return value / CmPerInch, nil
	}
	return 0, fmt.Errorf("%w: cannot convert height from '%s' to '%s'", schema.ErrInvalidInput, from, to)
}

// ConvertWeight converts a weight between kilograms and pounds.
func ConvertWeight(value float64, from, to schema.WeightUnit) (float64, error) {
	if value < 0 || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: weight cannot be negative (got %v)", schema.ErrInvalidInput, value)
	}
	if from == to {
		return value, nil
	}
	switch {
	case from == schema.Pounds && to == schema.Kilograms:
		return value * KgPerLb, nil
	case from == schema.Kilograms && to == schema.Pounds:
		return value / KgPerLb, nil
	}
	return 0, fmt.Errorf("%w: cannot convert weight from '%s' to '%s'", schema.ErrInvalidInput, from, to)
}

// CalculateBMI returns body mass index in kg/m², rounded to 2 decimals.
func CalculateBMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, fmt.Errorf("%w: weight and height must be positive values", schema.ErrInvalidInput)
	}
	heightM := heightCm / 100
	return Round(weightKg/(heightM*heightM), 2), nil
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
