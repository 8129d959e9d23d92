// Package core has the growth assessment logic: interpretation, MPH, charts and
// the command entry points that tie them to the reference store and output writers.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/internal/outwriter"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// ExecutorFunc defines the function signature for executing a command against a reference store.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store *reference.Store) error

// ExecuteCalc runs the full calculation and writes the results.
// It serves as the main entry point for the 'calc' command.
func ExecuteCalc(ctx context.Context, cfg *contract.Config, store *reference.Store) error {
	start := time.Now()
	results, err := Calculate(store, cfg.Child)
	if err != nil {
		return err
	}
	contract.Logger().Debug("calculated", "ageMonths", results.Age.AgeInMonths, "results", len(results.Results()))
	if cfg.Output == schema.HTMLOut {
		series, err := ChartForChild(store, results, schema.HeightMetric)
		if err != nil {
			return err
		}
		return outwriter.WriteChart(series, cfg)
	}
	return writeCalculation(ctx, cfg, results, time.Since(start))
}

// writeCalculation writes the results, with the header unless the context suppresses it.
func writeCalculation(ctx context.Context, cfg *contract.Config, results *schema.CalculationResults, duration time.Duration) error {
	return outwriter.WriteCalculation(results, cfg, !shouldSuppressHeader(ctx), duration)
}

// ExecuteAge computes the child's age from the configured dates.
func ExecuteAge(_ context.Context, cfg *contract.Config, _ *reference.Store) error {
	age, err := algo.CalculateAge(cfg.Child.DateOfBirth, cfg.Child.MeasurementDate)
	if err != nil {
		return err
	}
	return outwriter.WriteAge(cfg.Child, age, cfg)
}

// ExecuteMPH computes the mid-parental height, and the target range check when
// the child's dates and height are known.
func ExecuteMPH(_ context.Context, cfg *contract.Config, store *reference.Store) error {
	mph, target, err := AssessMidParentalHeight(store, cfg.Child)
	if err != nil {
		return err
	}
	return outwriter.WriteMPH(mph, target, cfg)
}

// AssessMidParentalHeight returns the mid-parental height of the child and,
// when the dates and height are known, the target range at the child's age.
func AssessMidParentalHeight(store *reference.Store, child schema.ChildData) (*schema.MidParentalHeight, *schema.TargetRangeAssessment, error) {
	if _, ok := schema.ValidGenders[child.Gender]; !ok {
		return nil, nil, fmt.Errorf("%w: gender is required", schema.ErrInvalidInput)
	}
	mph, err := MidParentalHeightForChild(store, child)
	if err != nil {
		return nil, nil, err
	}
	if mph == nil {
		contract.Logger().Warn("adopted child without both parental heights; no mid-parental height")
		return nil, nil, nil
	}
	if child.DateOfBirth == "" || child.Height <= 0 {
		return mph, nil, nil
	}

	age, err := algo.CalculateAge(child.DateOfBirth, child.MeasurementDate)
	if err != nil {
		return nil, nil, err
	}
	heightCm, err := algo.ConvertHeight(child.Height, unitOrDefault(child.HeightUnit), schema.Centimeters)
	if err != nil {
		return nil, nil, err
	}
	target, err := AssessTargetRange(store, child.Gender, age.AgeInMonths, heightCm, mph)
	if err != nil {
		return nil, nil, err
	}
	return mph, target, nil
}

// ExecuteConvert converts a value between cm and inches or kg and lb.
func ExecuteConvert(_ context.Context, cfg *contract.Config, value float64, from, to string) error {
	conv, err := Convert(value, from, to)
	if err != nil {
		return err
	}
	return outwriter.WriteConversion(conv, cfg)
}

// ExecuteChart writes the chart of the configured metric.
func ExecuteChart(_ context.Context, cfg *contract.Config, store *reference.Store) error {
	series, err := ChartSeriesForChild(store, cfg.Child, cfg.Metric)
	if err != nil {
		return err
	}
	return outwriter.WriteChart(series, cfg)
}

// ChartSeriesForChild builds the chart of a metric for the child's own data,
// which may be partial. Without a date of birth the WHO window is drawn with
// no child marker.
func ChartSeriesForChild(store *reference.Store, child schema.ChildData, metric schema.Metric) (schema.ChartSeries, error) {
	if _, ok := schema.ValidGenders[child.Gender]; !ok {
		return schema.ChartSeries{}, fmt.Errorf("%w: gender is required", schema.ErrInvalidInput)
	}
	results := &schema.CalculationResults{ChildData: child}
	if child.DateOfBirth != "" {
		age, err := algo.CalculateAge(child.DateOfBirth, child.MeasurementDate)
		if err != nil {
			return schema.ChartSeries{}, err
		}
		results.Age = age
	}
	if child.MotherHeight > 0 && child.FatherHeight > 0 {
		mph, err := MidParentalHeightForChild(store, child)
		if err != nil {
			return schema.ChartSeries{}, err
		}
		results.MidParentalHeight = mph
	}
	if child.Weight > 0 && child.Height > 0 {
		weightKg, err := algo.ConvertWeight(child.Weight, weightUnitOrDefault(child.WeightUnit), schema.Kilograms)
		if err != nil {
			return schema.ChartSeries{}, err
		}
		heightCm, err := algo.ConvertHeight(child.Height, unitOrDefault(child.HeightUnit), schema.Centimeters)
		if err != nil {
			return schema.ChartSeries{}, err
		}
		bmi, err := algo.CalculateBMI(weightKg, heightCm)
		if err != nil {
			return schema.ChartSeries{}, err
		}
		results.BMI = &bmi
	}
	return ChartForChild(store, results, metric)
}

// ExecuteTables writes the reference tables in the store, limited to the
// configured metric when one was given explicitly.
func ExecuteTables(_ context.Context, cfg *contract.Config, store *reference.Store, metric schema.Metric) error {
	rows := store.Rows()
	if metric != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			if r.Metric == metric {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	return outwriter.WriteReferenceRows(rows, cfg)
}

// Convert converts between cm and inches or kg and lb. Units are matched
// case-insensitively and accept common aliases such as "in" and "lbs".
func Convert(value float64, from, to string) (schema.UnitConversion, error) {
	conv := schema.UnitConversion{Value: value, From: from, To: to}
	fromH, fromIsHeight := heightAlias(from)
	toH, toIsHeight := heightAlias(to)
	fromW, fromIsWeight := weightAlias(from)
	toW, toIsWeight := weightAlias(to)

	var err error
	switch {
	case fromIsHeight && toIsHeight:
		conv.From, conv.To = string(fromH), string(toH)
		conv.Result, err = algo.ConvertHeight(value, fromH, toH)
	case fromIsWeight && toIsWeight:
		conv.From, conv.To = string(fromW), string(toW)
		conv.Result, err = algo.ConvertWeight(value, fromW, toW)
	default:
		err = fmt.Errorf("%w: cannot convert '%s' to '%s'. must be cm, inches or kg, lb", schema.ErrInvalidInput, from, to)
	}
	return conv, err
}

func heightAlias(s string) (schema.HeightUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cm", "centimeters", "centimetres":
		return schema.Centimeters, true
	case "in", "inch", "inches":
		return schema.Inches, true
	}
	return "", false
}

func weightAlias(s string) (schema.WeightUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kilograms":
		return schema.Kilograms, true
	case "lb", "lbs", "pounds":
		return schema.Pounds, true
	}
	return "", false
}
