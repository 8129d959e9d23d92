// Package parquet provides data structures and functions for exporting growth
// assessments, chart curves and reference tables to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/parquet-go/parquet-go"
)

// GrowthRecord is one assessed measurement of a child.
type GrowthRecord struct {
	// Gender is the sex used to select the reference table
	Gender string `parquet:"gender,snappy"`

	// DateOfBirth and MeasurementDate are YYYY-MM-DD strings
	DateOfBirth     string `parquet:"date_of_birth,snappy"`
	MeasurementDate string `parquet:"measurement_date,snappy"`

	// AgeInMonths is the continuous age used for the lookup
	AgeInMonths float64 `parquet:"age_in_months,snappy"`

	Metric     string  `parquet:"metric,snappy"`
	Standard   string  `parquet:"standard,snappy"`
	ZScore     float64 `parquet:"z_score,snappy"`
	Percentile float64 `parquet:"percentile,snappy"`
	IsNormal   bool    `parquet:"is_normal,snappy"`

	// Interpretation is the plain language reading of the percentile
	Interpretation string `parquet:"interpretation,snappy"`

	// BMI is only set when a BMI was calculated (nullable)
	BMI *float64 `parquet:"bmi,optional,snappy"`

	// MidParentalHeight is the genetic target height in cm (nullable)
	MidParentalHeight *float64 `parquet:"mid_parental_height,optional,snappy"`

	// WithinTargetRange is only set after 24 months with a target range (nullable)
	WithinTargetRange *bool `parquet:"within_target_range,optional,snappy"`
}

// ChartPointRecord is one x position of a growth chart.
type ChartPointRecord struct {
	Metric   string  `parquet:"metric,snappy"`
	Standard string  `parquet:"standard,snappy"`
	Gender   string  `parquet:"gender,snappy"`
	X        float64 `parquet:"x,snappy"`
	Label    string  `parquet:"label,snappy"`
	P3       float64 `parquet:"p3,snappy"`
	P10      float64 `parquet:"p10,snappy"`
	P25      float64 `parquet:"p25,snappy"`
	P50      float64 `parquet:"p50,snappy"`
	P75      float64 `parquet:"p75,snappy"`
	P90      float64 `parquet:"p90,snappy"`
	P97      float64 `parquet:"p97,snappy"`

	// MPHLine and the thr bounds are only set on CDC height charts (nullable)
	MPHLine      *float64 `parquet:"mph_line,optional,snappy"`
	ThrLevel1Min *float64 `parquet:"thr_level1_min,optional,snappy"`
	ThrLevel1Max *float64 `parquet:"thr_level1_max,optional,snappy"`
}

// ReferenceRecord is one LMS row of a reference table.
type ReferenceRecord struct {
	Metric   string  `parquet:"metric,snappy"`
	Standard string  `parquet:"standard,snappy"`
	Gender   string  `parquet:"gender,snappy"`
	X        float64 `parquet:"x,snappy"`
	L        float64 `parquet:"l,snappy"`
	M        float64 `parquet:"m,snappy"`
	S        float64 `parquet:"s,snappy"`
}

// GrowthRecords flattens a calculation into one record per growth result.
func GrowthRecords(results *schema.CalculationResults) []GrowthRecord {
	var mph *float64
	if results.MidParentalHeight != nil {
		v := results.MidParentalHeight.MPH
		mph = &v
	}
	var within *bool
	if results.TargetRange != nil {
		v := results.TargetRange.Within
		within = &v
	}

	var out []GrowthRecord
	for _, r := range results.Results() {
		out = append(out, GrowthRecord{
			Gender:            string(results.ChildData.Gender),
			DateOfBirth:       results.ChildData.DateOfBirth,
			MeasurementDate:   results.ChildData.MeasurementDate,
			AgeInMonths:       results.Age.AgeInMonths,
			Metric:            string(r.Metric),
			Standard:          string(r.Standard),
			ZScore:            r.ZScore,
			Percentile:        r.Percentile,
			IsNormal:          r.IsNormal,
			Interpretation:    r.Interpretation,
			BMI:               results.BMI,
			MidParentalHeight: mph,
			WithinTargetRange: within,
		})
	}
	return out
}

// ChartPointRecords flattens a chart into one record per x position.
func ChartPointRecords(series schema.ChartSeries) []ChartPointRecord {
	out := make([]ChartPointRecord, 0, len(series.Points))
	for _, p := range series.Points {
		out = append(out, ChartPointRecord{
			Metric:       string(series.Metric),
			Standard:     string(series.Standard),
			Gender:       string(series.Gender),
			X:            p.X,
			Label:        p.Label,
			P3:           p.P3,
			P10:          p.P10,
			P25:          p.P25,
			P50:          p.P50,
			P75:          p.P75,
			P90:          p.P90,
			P97:          p.P97,
			MPHLine:      p.MPHLine,
			ThrLevel1Min: p.ThrLevel1Min,
			ThrLevel1Max: p.ThrLevel1Max,
		})
	}
	return out
}

// ReferenceRecords converts store rows to records.
func ReferenceRecords(rows []reference.Row) []ReferenceRecord {
	out := make([]ReferenceRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, ReferenceRecord{
			Metric:   string(r.Metric),
			Standard: string(r.Standard),
			Gender:   string(r.Gender),
			X:        r.X,
			L:        r.L,
			M:        r.M,
			S:        r.S,
		})
	}
	return out
}

// Rows converts records back to store rows.
func Rows(records []ReferenceRecord) []reference.Row {
	out := make([]reference.Row, 0, len(records))
	for _, r := range records {
		out = append(out, reference.Row{
			Key: reference.Key{
				Metric:   schema.Metric(r.Metric),
				Standard: schema.GrowthStandard(r.Standard),
				Gender:   schema.Gender(r.Gender),
			},
			LMSPoint: schema.LMSPoint{X: r.X, L: r.L, M: r.M, S: r.S},
		})
	}
	return out
}

// WriteGrowthRecords writes growth records to w.
func WriteGrowthRecords(w io.Writer, data []GrowthRecord) error {
	return writeRecords(w, data)
}

// WriteChartPoints writes chart point records to w.
func WriteChartPoints(w io.Writer, data []ChartPointRecord) error {
	return writeRecords(w, data)
}

// WriteReferenceRecords writes reference records to w.
func WriteReferenceRecords(w io.Writer, data []ReferenceRecord) error {
	return writeRecords(w, data)
}

// ReadReferenceFile reads the reference records stored in a Parquet file.
func ReadReferenceFile(path string) ([]ReferenceRecord, error) {
	return readRecords[ReferenceRecord](path)
}

// ReadGrowthFile reads the growth records stored in a Parquet file.
func ReadGrowthFile(path string) ([]GrowthRecord, error) {
	return readRecords[GrowthRecord](path)
}

// LoadDir reads every .parquet file in dir as reference records and groups
// them into tables. A directory without Parquet files yields an empty map.
func LoadDir(dir string) (map[reference.Key]schema.LMSTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference dir: %w", err)
	}
	var rows []reference.Row
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".parquet") {
			continue
		}
		records, err := ReadReferenceFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		rows = append(rows, Rows(records)...)
	}
	return reference.FromRows(rows)
}

// writeRecords writes a slice of records using struct schema inference.
func writeRecords[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func readRecords[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	data := make([]T, reader.NumRows())
	n, err := reader.Read(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return data[:n], nil
}
