// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/internal/parquet"
	"github.com/mapmykidz/Mapmykidz/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCalculation outputs a full calculation, dispatching based on the output format configured.
func WriteCalculation(results *schema.CalculationResults, cfg *contract.Config, showHeader bool, duration time.Duration) error {
	fmtFloat, fmtZ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCalculationCSV(w, results, fmtFloat, fmtZ)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteGrowthRecords(w, parquet.GrowthRecords(results))
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return errUnsupported("calculations", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCalculationText(w, results, cfg, showHeader, fmtFloat, fmtZ, duration)
		}, "Wrote report")
	}
}

// writeCalculationText writes the human-readable report.
func writeCalculationText(w io.Writer, results *schema.CalculationResults, cfg *contract.Config, showHeader bool, fmtFloat, fmtZ func(float64) string, duration time.Duration) error {
	if showHeader {
		child := results.ChildData
		heading := fmt.Sprintf("Growth assessment: %s, %s, measured %s", child.Gender, formatAge(results.Age), child.MeasurementDate)
		if cfg.UseColors {
			heading = contract.AccentColor.Sprint(heading)
		}
		if _, err := fmt.Fprintln(w, heading); err != nil {
			return err
		}
	}

	all := results.Results()
	if len(all) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Metric", "Standard", "Z-Score", "Percentile", "Label"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Header.Formatting.AutoFormat = tw.Off
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, r := range all {
			label := contract.GetPlainLabel(r.IsNormal)
			if cfg.UseColors {
				label = contract.GetColorLabel(r.IsNormal)
			}
			data = append(data, []string{
				metricName(r.Metric),
				string(r.Standard),
				fmtZ(r.ZScore),
				fmtFloat(r.Percentile),
				label,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	width := getTextWidth(cfg)
	for _, r := range all {
		paragraph := fmt.Sprintf("%s (%s percentile): %s", metricName(r.Metric), ordinal(r.Percentile), r.Interpretation)
		if _, err := fmt.Fprintf(w, "\n%s\n", wrap(paragraph, width)); err != nil {
			return err
		}
		if r.Advice != "" {
			if _, err := fmt.Fprintf(w, "%s\n", wrap("Advice: "+r.Advice, width)); err != nil {
				return err
			}
		}
	}

	var summary []string
	if results.BMI != nil {
		summary = append(summary, fmt.Sprintf("BMI: %.2f kg/m²", *results.BMI))
	}
	if mph := results.MidParentalHeight; mph != nil {
		summary = append(summary, fmt.Sprintf("Mid-parental height: %.1f cm (z %s), target range %.1f-%.1f cm",
			mph.MPH, fmtZ(mph.MPHZScore), mph.ThrLevel1Min, mph.ThrLevel1Max))
	}
	if tr := results.TargetRange; tr != nil {
		summary = append(summary, fmt.Sprintf("Target range at %.1f months: %.1f-%.1f cm, height %.1f cm [%s]",
			tr.AgeInMonths, tr.MinCm, tr.MaxCm, tr.HeightCm, contract.GetTargetLabel(tr.Within, cfg.UseColors)))
		summary = append(summary, wrap(tr.Message, width))
	}
	if len(summary) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", strings.Join(summary, "\n")); err != nil {
			return err
		}
	}

	if duration > 0 {
		if _, err := fmt.Fprintf(w, "\nCalculated in %v\n", duration); err != nil {
			return err
		}
	}
	return nil
}

// writeCalculationCSV writes one row per growth result.
func writeCalculationCSV(w io.Writer, results *schema.CalculationResults, fmtFloat, fmtZ func(float64) string) error {
	header := []string{
		"metric",
		"standard",
		"z_score",
		"percentile",
		"label",
		"is_normal",
		"interpretation",
		"advice",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results.Results() {
			row := []string{
				string(r.Metric),
				string(r.Standard),
				fmtZ(r.ZScore),
				fmtFloat(r.Percentile),
				contract.GetPlainLabel(r.IsNormal),
				strconv.FormatBool(r.IsNormal),
				r.Interpretation,
				r.Advice,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// formatAge renders an age like "4 years 0 months (48.0 months)".
func formatAge(age schema.AgeCalculation) string {
	return fmt.Sprintf("%d years %d months (%.1f months)", age.AgeYears, age.AgeMonths, age.AgeInMonths)
}

// ordinal renders a percentile as "55th". Values between 0 and 1 read as "<1st"
// and values above 99 as ">99th".
func ordinal(p float64) string {
	switch {
	case p < 1:
		return "<1st"
	case p > 99:
		return ">99th"
	}
	return humanize.Ordinal(int(math.Round(p)))
}

func metricName(m schema.Metric) string {
	switch m {
	case schema.HeightMetric:
		return "Height"
	case schema.WeightMetric:
		return "Weight"
	case schema.BMIMetric:
		return "BMI"
	case schema.WeightForLengthMetric:
		return "Weight-for-length"
	}
	return string(m)
}
