package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ageReport is the JSON shape of the age command.
type ageReport struct {
	DateOfBirth     string `json:"dateOfBirth"`
	MeasurementDate string `json:"measurementDate"`
	schema.AgeCalculation
}

// mphReport is the JSON shape of the mph command.
type mphReport struct {
	MidParentalHeight *schema.MidParentalHeight     `json:"midParentalHeight"`
	TargetRange       *schema.TargetRangeAssessment `json:"targetRange,omitempty"`
}

// WriteAge outputs the age of a child.
func WriteAge(child schema.ChildData, age schema.AgeCalculation, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, ageReport{child.DateOfBirth, child.MeasurementDate, age})
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"date_of_birth", "measurement_date", "age_years", "age_months", "age_in_months", "age_in_days"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					child.DateOfBirth,
					child.MeasurementDate,
					strconv.Itoa(age.AgeYears),
					strconv.Itoa(age.AgeMonths),
					strconv.FormatFloat(age.AgeInMonths, 'f', 2, 64),
					strconv.Itoa(age.AgeInDays),
				})
			})
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Age on %s: %s, %d days\n", child.MeasurementDate, formatAge(age), age.AgeInDays)
			return err
		}, "Wrote report")
	default:
		return errUnsupported("age", cfg.Output)
	}
}

// WriteMPH outputs the mid-parental height and, when present, the target range
// check at the child's current age. A nil mph is reported as unavailable.
func WriteMPH(mph *schema.MidParentalHeight, target *schema.TargetRangeAssessment, cfg *contract.Config) error {
	fmtFloat, fmtZ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, mphReport{mph, target})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMPHCSV(w, mph, target, fmtFloat, fmtZ)
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMPHText(w, mph, target, cfg, fmtZ)
		}, "Wrote report")
	default:
		return errUnsupported("mid-parental height", cfg.Output)
	}
}

func writeMPHText(w io.Writer, mph *schema.MidParentalHeight, target *schema.TargetRangeAssessment, cfg *contract.Config, fmtZ func(float64) string) error {
	if mph == nil {
		_, err := fmt.Fprintln(w, "Mid-parental height is not available: both parental heights are needed.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Measure", "Height (cm)", "Z-Score"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"Mid-parental height", fmt.Sprintf("%.1f", mph.MPH), fmtZ(mph.MPHZScore)},
		{"Target min", fmt.Sprintf("%.1f", mph.ThrLevel1Min), fmtZ(mph.ThrLevel1MinZScore)},
		{"Target max", fmt.Sprintf("%.1f", mph.ThrLevel1Max), fmtZ(mph.ThrLevel1MaxZScore)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if target != nil {
		if _, err := fmt.Fprintf(w, "\nAt %.1f months the target range is %.1f-%.1f cm. Height %.1f cm is %s.\n%s\n",
			target.AgeInMonths, target.MinCm, target.MaxCm, target.HeightCm,
			contract.GetTargetLabel(target.Within, cfg.UseColors), wrap(target.Message, getTextWidth(cfg))); err != nil {
			return err
		}
	}
	return nil
}

func writeMPHCSV(w io.Writer, mph *schema.MidParentalHeight, target *schema.TargetRangeAssessment, fmtFloat, fmtZ func(float64) string) error {
	return writeCSVWithHeader(w, []string{"measure", "height_cm", "z_score"}, func(cw *csv.Writer) error {
		var rows [][]string
		if mph != nil {
			rows = append(rows,
				[]string{"mph", fmtFloat(mph.MPH), fmtZ(mph.MPHZScore)},
				[]string{"thr_level1_min", fmtFloat(mph.ThrLevel1Min), fmtZ(mph.ThrLevel1MinZScore)},
				[]string{"thr_level1_max", fmtFloat(mph.ThrLevel1Max), fmtZ(mph.ThrLevel1MaxZScore)},
			)
		}
		if target != nil {
			rows = append(rows,
				[]string{"target_min_at_age", fmtFloat(target.MinCm), ""},
				[]string{"target_max_at_age", fmtFloat(target.MaxCm), ""},
				[]string{"height", fmtFloat(target.HeightCm), ""},
			)
		}
		return cw.WriteAll(rows)
	})
}

// WriteConversion outputs a unit conversion.
func WriteConversion(conv schema.UnitConversion, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, conv)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"value", "from", "to", "result"}, func(cw *csv.Writer) error {
				return cw.Write([]string{
					strconv.FormatFloat(conv.Value, 'f', -1, 64),
					conv.From,
					conv.To,
					strconv.FormatFloat(conv.Result, 'f', -1, 64),
				})
			})
		}, "Wrote CSV")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s %s = %s %s\n", strconv.FormatFloat(conv.Value, 'f', -1, 64), conv.From, fmtFloat(conv.Result), conv.To)
			return err
		}, "Wrote report")
	default:
		return errUnsupported("conversions", cfg.Output)
	}
}
