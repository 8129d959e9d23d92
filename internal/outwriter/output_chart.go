package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/internal/parquet"
	"github.com/mapmykidz/Mapmykidz/internal/plot"
	"github.com/mapmykidz/Mapmykidz/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteChart outputs the points of a growth chart. Text, CSV and HTML only
// show the configured percentiles; JSON and Parquet carry every curve.
func WriteChart(series schema.ChartSeries, cfg *contract.Config) error {
	percentiles := cfg.Percentiles
	if len(percentiles) == 0 {
		percentiles = schema.StandardPercentiles
	}
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, series)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChartCSV(w, series, percentiles, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteChartPoints(w, parquet.ChartPointRecords(series))
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return plot.Render(w, series, percentiles)
		}, "Wrote chart")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChartTable(w, series, percentiles, fmtFloat)
		}, "Wrote table")
	}
}

// hasTargetLines reports whether any point carries the MPH overlay.
func hasTargetLines(series schema.ChartSeries) bool {
	for _, p := range series.Points {
		if p.MPHLine != nil {
			return true
		}
	}
	return false
}

func optional(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func chartRow(p schema.ChartPoint, percentiles []int, withTarget bool, fmtFloat func(float64) string) []string {
	row := []string{strconv.FormatFloat(p.X, 'f', -1, 64), p.Label}
	for _, pct := range percentiles {
		row = append(row, fmtFloat(p.Percentile(pct)))
	}
	if withTarget {
		row = append(row, optional(p.MPHLine, fmtFloat), optional(p.ThrLevel1Min, fmtFloat), optional(p.ThrLevel1Max, fmtFloat))
	}
	return row
}

func writeChartTable(w io.Writer, series schema.ChartSeries, percentiles []int, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "%s, %s\n", plot.Title(series), series.YName); err != nil {
		return err
	}

	withTarget := hasTargetLines(series)
	table := tablewriter.NewWriter(w)
	headers := []string{"X", series.XName}
	for _, pct := range percentiles {
		headers = append(headers, plot.PercentileName(pct))
	}
	if withTarget {
		headers = append(headers, "MPH", "Min", "Max")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(series.Points))
	for _, p := range series.Points {
		data = append(data, chartRow(p, percentiles, withTarget, fmtFloat))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if i := plot.ChildIndex(series); i >= 0 {
		if _, err := fmt.Fprintf(w, "Child: %s at x=%s\n", fmtFloat(series.ChildY), strconv.FormatFloat(series.ChildX, 'f', 2, 64)); err != nil {
			return err
		}
	}
	return nil
}

func writeChartCSV(w io.Writer, series schema.ChartSeries, percentiles []int, fmtFloat func(float64) string) error {
	withTarget := hasTargetLines(series)
	header := []string{"x", "label"}
	for _, pct := range percentiles {
		header = append(header, fmt.Sprintf("percentile%d", pct))
	}
	if withTarget {
		header = append(header, "mph_line", "thr_level1_min", "thr_level1_max")
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range series.Points {
			if err := cw.Write(chartRow(p, percentiles, withTarget, fmtFloat)); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// WriteReferenceRows outputs flattened reference table rows.
func WriteReferenceRows(rows []reference.Row, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, parquet.ReferenceRecords(rows))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReferenceCSV(w, rows)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteReferenceRecords(w, parquet.ReferenceRecords(rows))
		}, "Wrote Parquet")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReferenceTable(w, rows)
		}, "Wrote table")
	default:
		return errUnsupported("reference tables", cfg.Output)
	}
}

func referenceRow(r reference.Row) []string {
	return []string{
		string(r.Metric),
		string(r.Standard),
		string(r.Gender),
		strconv.FormatFloat(r.X, 'f', -1, 64),
		strconv.FormatFloat(r.L, 'f', -1, 64),
		strconv.FormatFloat(r.M, 'f', -1, 64),
		strconv.FormatFloat(r.S, 'f', -1, 64),
	}
}

func writeReferenceTable(w io.Writer, rows []reference.Row) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Standard", "Gender", "X", "L", "M", "S"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(rows))
	tables := make(map[reference.Key]struct{})
	for _, r := range rows {
		data = append(data, referenceRow(r))
		tables[r.Key] = struct{}{}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d rows from %d tables\n", len(rows), len(tables))
	return err
}

func writeReferenceCSV(w io.Writer, rows []reference.Row) error {
	return writeCSVWithHeader(w, []string{"metric", "standard", "gender", "x", "l", "m", "s"}, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write(referenceRow(r)); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
