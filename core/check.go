package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mapmykidz/Mapmykidz/core/algo"
	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/schema"
)

// ExecuteCheck runs the check command as a screening gate. It calculates every
// selected measurement and exits with a non-zero code when any result falls
// outside the normal range or the height is outside the target range.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, store *reference.Store) error {
	start := time.Now()

	results, err := Calculate(store, cfg.Child)
	if err != nil {
		return err
	}
	screening := Screen(results)
	printCheckResult(&screening, results, time.Since(start))

	if !screening.Passed {
		fmt.Println()
		details := cfg.Clone()
		details.Output, details.OutputFile = schema.TextOut, ""
		if err := writeCalculation(withSuppressHeader(ctx), details, results, 0); err != nil {
			contract.LogWarn("Cannot write details", err)
		}
		os.Exit(1)
	}
	return nil
}

// Screen collects the results that need a clinician's review, most severe first.
func Screen(results *schema.CalculationResults) schema.ScreeningResult {
	all := results.Results()
	var flagged []schema.GrowthResult
	for _, r := range all {
		if !r.IsNormal {
			flagged = append(flagged, r)
		}
	}
	outside := results.TargetRange != nil && !results.TargetRange.Within
	return schema.ScreeningResult{
		Passed:      len(flagged) == 0 && !outside,
		Flagged:     algo.RankBySeverity(flagged, len(flagged)),
		Checked:     len(all),
		TargetRange: results.TargetRange,
	}
}

// printCheckResult prints the check result in a concise format suitable for scripts.
func printCheckResult(result *schema.ScreeningResult, results *schema.CalculationResults, duration time.Duration) {
	printCheckHeader(result, results, duration)

	if result.Passed {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *schema.ScreeningResult, results *schema.CalculationResults, duration time.Duration) {
	fmt.Println("Growth Screening Results:")

	labels := []string{"Gender:", "Age:", "Measured:", "Measurements:"}
	values := []any{
		results.ChildData.Gender,
		fmt.Sprintf("%d years %d months (%.1f months)", results.Age.AgeYears, results.Age.AgeMonths, results.Age.AgeInMonths),
		results.ChildData.MeasurementDate,
		results.ChildData.SelectedMeasurements,
	}

	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d results in %v\n\n", result.Checked, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.ScreeningResult) {
	fmt.Printf("✅ All measurements are within the normal range\n")
	if result.TargetRange != nil {
		fmt.Printf("  target range: %.1f-%.1f cm, height %.1f cm\n",
			result.TargetRange.MinCm, result.TargetRange.MaxCm, result.TargetRange.HeightCm)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.ScreeningResult) {
	issues := len(result.Flagged)
	if result.TargetRange != nil && !result.TargetRange.Within {
		issues++
	}
	fmt.Printf("❌ Screening flagged %d finding(s) across %d results\n\n", issues, result.Checked)

	for _, r := range result.Flagged {
		fmt.Printf("  - %s (%s): percentile %.1f, z-score %.2f\n", r.Metric, r.Standard, r.Percentile, r.ZScore)
	}
	if tr := result.TargetRange; tr != nil && !tr.Within {
		fmt.Printf("  - height %.1f cm is outside the target range %.1f-%.1f cm\n", tr.HeightCm, tr.MinCm, tr.MaxCm)
	}
}
