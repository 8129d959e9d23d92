package core

import (
	"fmt"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// Calculate runs the full assessment for one child: age, height result, the
// selected weight and BMI results, MPH, the target range check and the height
// chart. Under 24 months weight-for-length takes the place of BMI-for-age.
func Calculate(store *reference.Store, child schema.ChildData) (*schema.CalculationResults, error) {
	if err := ValidateChild(child); err != nil {
		return nil, err
	}
	age, err := algo.CalculateAge(child.DateOfBirth, child.MeasurementDate)
	if err != nil {
		return nil, err
	}
	results := &schema.CalculationResults{ChildData: child, Age: age}

	var heightCm, weightKg float64
	if child.Height > 0 {
		if heightCm, err = algo.ConvertHeight(child.Height, unitOrDefault(child.HeightUnit), schema.Centimeters); err != nil {
			return nil, err
		}
		if results.GrowthResult, err = CalculateHeightResult(store, heightCm, age.AgeInMonths, child.Gender); err != nil {
			return nil, fmt.Errorf("height: %w", err)
		}
	}
	if child.Weight > 0 {
		if weightKg, err = algo.ConvertWeight(child.Weight, weightUnitOrDefault(child.WeightUnit), schema.Kilograms); err != nil {
			return nil, err
		}
	}

	if weightKg > 0 && child.HasMeasurement(schema.WeightMetric) {
		r, err := CalculateWeightResult(store, weightKg, age.AgeInMonths, child.Gender)
		if err != nil {
			return nil, fmt.Errorf("weight: %w", err)
		}
		results.WeightResult = &r
	}

	if weightKg > 0 && heightCm > 0 && child.HasMeasurement(schema.BMIMetric) {
		bmi, err := algo.CalculateBMI(weightKg, heightCm)
		if err != nil {
			return nil, err
		}
		results.BMI = &bmi
		if age.AgeInMonths <= 24 {
			r, err := CalculateWeightForLengthResult(store, weightKg, heightCm, child.Gender)
			if err != nil {
				return nil, fmt.Errorf("weight-for-length: %w", err)
			}
			results.WeightForLengthResult = &r
		} else {
			r, err := CalculateBMIResult(store, bmi, age.AgeInMonths, child.Gender)
			if err != nil {
				return nil, fmt.Errorf("bmi: %w", err)
			}
			results.BMIResult = &r
		}
	}

	if child.HasMeasurement(schema.HeightMetric) || (child.MotherHeight > 0 && child.FatherHeight > 0) {
		if results.MidParentalHeight, err = MidParentalHeightForChild(store, child); err != nil {
			return nil, err
		}
	}
	if heightCm > 0 {
		if results.TargetRange, err = AssessTargetRange(store, child.Gender, age.AgeInMonths, heightCm, results.MidParentalHeight); err != nil {
			return nil, err
		}
		chart, err := BuildChart(store, ChartRequest{
			Metric: schema.HeightMetric,
			Gender: child.Gender,
			ChildX: age.AgeInMonths,
			ChildY: heightCm,
			MPH:    results.MidParentalHeight,
		})
		if err != nil {
			return nil, err
		}
		results.ChartData = chart.Points
	}
	return results, nil
}

// ChartForChild builds the chart of one metric for a calculated child, placing
// the child's own measurement as the marker.
func ChartForChild(store *reference.Store, results *schema.CalculationResults, metric schema.Metric) (schema.ChartSeries, error) {
	child := results.ChildData
	req := ChartRequest{Metric: metric, Gender: child.Gender, ChildX: results.Age.AgeInMonths}

	heightCm, err := algo.ConvertHeight(child.Height, unitOrDefault(child.HeightUnit), schema.Centimeters)
	if err != nil {
		return schema.ChartSeries{}, err
	}
	weightKg, err := algo.ConvertWeight(child.Weight, weightUnitOrDefault(child.WeightUnit), schema.Kilograms)
	if err != nil {
		return schema.ChartSeries{}, err
	}

	switch metric {
	case schema.HeightMetric:
		req.ChildY = heightCm
		req.MPH = results.MidParentalHeight
	case schema.WeightMetric:
		req.ChildY = weightKg
	case schema.BMIMetric:
		if results.BMI != nil {
			req.ChildY = *results.BMI
		}
	case schema.WeightForLengthMetric:
		req.ChildX = heightCm
		req.ChildY = weightKg
	}
	return BuildChart(store, req)
}
