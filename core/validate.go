package core

import (
	"errors"
	"fmt"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
)

type bounds struct{ min, max float64 }

// Accepted input ranges per unit.
var (
	childHeightBounds  = map[schema.HeightUnit]bounds{schema.Centimeters: {30, 220}, schema.Inches: {12, 87}}
	parentHeightBounds = map[schema.HeightUnit]bounds{schema.Centimeters: {120, 220}, schema.Inches: {47, 87}}
	weightBounds       = map[schema.WeightUnit]bounds{schema.Kilograms: {1.5, 200}, schema.Pounds: {3.3, 440}}
)

// ValidateChild checks a ChildData before calculation and returns every problem
// found, joined into one error.
func ValidateChild(child schema.ChildData) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{schema.ErrInvalidInput}, args...)...))
	}

	if _, ok := schema.ValidGenders[child.Gender]; !ok {
		add("invalid gender '%s'. must be male or female", child.Gender)
	}
	for _, m := range child.SelectedMeasurements {
		if _, ok := schema.SelectableMeasurements[m]; !ok {
			add("invalid measurement '%s'. must be height, weight, bmi", m)
		}
	}

	age, err := algo.CalculateAge(child.DateOfBirth, child.MeasurementDate)
	switch {
	case err != nil:
		errs = append(errs, err)
	case age.AgeInMonths > reference.AdultAgeMonths:
		errs = append(errs, fmt.Errorf("%w: age %.1f months is beyond the 0-20 year reference range", schema.ErrInvalidRange, age.AgeInMonths))
	}

	needsHeight := child.HasMeasurement(schema.HeightMetric) || child.HasMeasurement(schema.BMIMetric)
	if needsHeight || child.Height != 0 {
		checkRange(add, "height", child.Height, string(unitOrDefault(child.HeightUnit)), childHeightBounds[unitOrDefault(child.HeightUnit)])
	}
	if child.HasMeasurement(schema.WeightMetric) || child.HasMeasurement(schema.BMIMetric) || child.Weight != 0 {
		unit := weightUnitOrDefault(child.WeightUnit)
		checkRange(add, "weight", child.Weight, string(unit), weightBounds[unit])
	}

	parentsRequired := child.HasMeasurement(schema.HeightMetric) && !child.IsAdopted
	for _, p := range []struct {
		name  string
		value float64
		unit  schema.HeightUnit
	}{
		{"mother height", child.MotherHeight, child.MotherHeightUnit},
		{"father height", child.FatherHeight, child.FatherHeightUnit},
	} {
		if p.value == 0 && !parentsRequired {
			continue
		}
		unit := unitOrDefault(p.unit)
		checkRange(add, p.name, p.value, string(unit), parentHeightBounds[unit])
	}

	return errors.Join(errs...)
}

func checkRange(add func(string, ...any), name string, v float64, unit string, b bounds) {
	switch {
	case b.max == 0:
		add("invalid %s unit '%s'", name, unit)
	case v <= 0:
		add("please enter a valid %s", name)
	case v < b.min || v > b.max:
		add("%s must be between %v and %v %s", name, b.min, b.max, unit)
	}
}

func weightUnitOrDefault(u schema.WeightUnit) schema.WeightUnit {
	if u == "" {
		return schema.Kilograms
	}
	return u
}
