package core

import (
	"fmt"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// Sex adjustment and target range half widths in centimeters.
const (
	mphSexOffset      = 13.0
	boysTargetRange   = 10.0
	girlsTargetRange  = 8.5
	withinTargetText  = "Your child's height is within the target range - normal."
	outsideTargetText = "Your child's height is outside the target height range - recommended to see a pediatrician or pediatric endocrinologist."
)

// CalculateMidParentalHeight derives the expected adult height and target range
// from parental heights in centimeters, scored against adult CDC stature.
func CalculateMidParentalHeight(store *reference.Store, gender schema.Gender, motherCm, fatherCm float64) (*schema.MidParentalHeight, error) {
	if motherCm <= 0 || fatherCm <= 0 {
		return nil, fmt.Errorf("%w: mother and father heights must be positive", schema.ErrMissingParentData)
	}

	var mph, half float64
	switch gender {
	case schema.Male:
		mph = (motherCm + fatherCm + mphSexOffset) / 2
		half = boysTargetRange
	case schema.Female:
		mph = (motherCm + fatherCm - mphSexOffset) / 2
		half = girlsTargetRange
	default:
		return nil, fmt.Errorf("%w: unknown gender '%s'", schema.ErrInvalidInput, gender)
	}
	low, high := mph-half, mph+half

	adult, err := store.LookupStandard(schema.HeightMetric, schema.CDC, gender, reference.AdultAgeMonths)
	if err != nil {
		return nil, fmt.Errorf("adult height reference: %w", err)
	}
	var z [3]float64
	for i, h := range []float64{mph, low, high} {
		if z[i], err = algo.ZScoreAt(h, adult); err != nil {
			return nil, err
		}
	}

	return &schema.MidParentalHeight{
		MPH:                algo.Round(mph, 1),
		ThrLevel1Min:       algo.Round(low, 1),
		ThrLevel1Max:       algo.Round(high, 1),
		MPHZScore:          algo.Round(z[0], 2),
		ThrLevel1MinZScore: algo.Round(z[1], 2),
		ThrLevel1MaxZScore: algo.Round(z[2], 2),
	}, nil
}

// MidParentalHeightForChild converts the parental heights to centimeters and
// calculates the MPH. An adopted child without both parental heights has no
// MPH, which is reported as nil without an error.
func MidParentalHeightForChild(store *reference.Store, child schema.ChildData) (*schema.MidParentalHeight, error) {
	if child.MotherHeight <= 0 || child.FatherHeight <= 0 {
		if child.IsAdopted {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: missing parent height information", schema.ErrMissingParentData)
	}
	mother, err := algo.ConvertHeight(child.MotherHeight, unitOrDefault(child.MotherHeightUnit), schema.Centimeters)
	if err != nil {
		return nil, fmt.Errorf("mother height: %w", err)
	}
	father, err := algo.ConvertHeight(child.FatherHeight, unitOrDefault(child.FatherHeightUnit), schema.Centimeters)
	if err != nil {
		return nil, fmt.Errorf("father height: %w", err)
	}
	return CalculateMidParentalHeight(store, child.Gender, mother, father)
}

// AssessTargetRange projects the target range Z-scores back to the child's age on
// the CDC height curve and checks the current height against it. The check only
// applies from 2 years on; nil is returned for younger children or a nil MPH.
func AssessTargetRange(store *reference.Store, gender schema.Gender, ageInMonths, heightCm float64, mph *schema.MidParentalHeight) (*schema.TargetRangeAssessment, error) {
	if mph == nil || ageInMonths <= 24 {
		return nil, nil
	}
	p, err := store.LookupStandard(schema.HeightMetric, schema.CDC, gender, ageInMonths)
	if err != nil {
		return nil, err
	}
	low, err := algo.MeasurementForZAt(mph.ThrLevel1MinZScore, p)
	if err != nil {
		return nil, err
	}
	high, err := algo.MeasurementForZAt(mph.ThrLevel1MaxZScore, p)
	if err != nil {
		return nil, err
	}

	within := heightCm >= low && heightCm <= high
	msg := outsideTargetText
	if within {
		msg = withinTargetText
	}
	return &schema.TargetRangeAssessment{
		AgeInMonths: ageInMonths,
		HeightCm:    heightCm,
		MinCm:       algo.Round(low, 1),
		MaxCm:       algo.Round(high, 1),
		Within:      within,
		Message:     msg,
	}, nil
}

func unitOrDefault(u schema.HeightUnit) schema.HeightUnit {
	if u == "" {
		return schema.Centimeters
	}
	return u
}
