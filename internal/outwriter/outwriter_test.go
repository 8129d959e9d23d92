package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/internal/parquet"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, mode schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:      mode,
		OutputFile:  filepath.Join(t.TempDir(), "out."+string(mode)),
		Precision:   1,
		Width:       80,
		Percentiles: []int{3, 50, 97},
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(content)
}

func sampleResults() *schema.CalculationResults {
	bmi := 18.9
	return &schema.CalculationResults{
		ChildData: schema.ChildData{
			Gender:          schema.Male,
			DateOfBirth:     "2020-01-15",
			MeasurementDate: "2024-01-15",
		},
		Age: schema.AgeCalculation{AgeYears: 4, AgeInMonths: 47.97, AgeInDays: 1461},
		GrowthResult: schema.GrowthResult{
			Metric: schema.HeightMetric, Standard: schema.CDC, ZScore: 0.12, Percentile: 54.78, IsNormal: true,
			Interpretation: "Your child's height is in the normal range.",
		},
		BMIResult: &schema.GrowthResult{
			Metric: schema.BMIMetric, Standard: schema.CDC, ZScore: 2.1, Percentile: 98.2, IsNormal: false,
			Interpretation: "BMI is very high for age.", Advice: "Talk to your pediatrician, stay active.",
		},
		BMI:               &bmi,
		MidParentalHeight: &schema.MidParentalHeight{MPH: 179, ThrLevel1Min: 169, ThrLevel1Max: 189, MPHZScore: 0.35},
		TargetRange: &schema.TargetRangeAssessment{
			AgeInMonths: 47.97, HeightCm: 103, MinCm: 96.1, MaxCm: 108.4, Within: true,
			Message: "Your child's height is within the target range - normal.",
		},
	}
}

func TestWriteCalculationText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteCalculation(sampleResults(), cfg, true, 1500*time.Microsecond))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Growth assessment: male, 4 years 0 months (48.0 months), measured 2024-01-15")
	assert.Contains(t, out, "54.8")
	assert.Contains(t, out, "Height (55th percentile)")
	assert.Contains(t, out, "BMI (98th percentile)")
	assert.Contains(t, out, "Advice: Talk to your pediatrician")
	assert.Contains(t, out, contract.ReviewValue)
	assert.Contains(t, out, "BMI: 18.90 kg/m²")
	assert.Contains(t, out, "Mid-parental height: 179.0 cm")
	assert.Contains(t, out, "[Within]")
	assert.Contains(t, out, "Calculated in 1.5ms")
}

func TestWriteCalculationTextWithoutHeader(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteCalculation(sampleResults(), cfg, false, 0))

	out := readOutput(t, cfg)
	assert.NotContains(t, out, "Growth assessment")
	assert.NotContains(t, out, "Calculated in")
}

func TestWriteCalculationCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	require.NoError(t, WriteCalculation(sampleResults(), cfg, true, 0))

	lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "metric,standard,z_score,percentile,label,is_normal,interpretation,advice", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "height,CDC,0.12,54.8,Normal,true,"))
	assert.True(t, strings.HasPrefix(lines[2], "bmi,CDC,2.10,98.2,Review,false,"))
}

func TestWriteCalculationJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	require.NoError(t, WriteCalculation(sampleResults(), cfg, true, 0))

	var decoded schema.CalculationResults
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
	assert.Equal(t, schema.HeightMetric, decoded.GrowthResult.Metric)
	require.NotNil(t, decoded.MidParentalHeight)
	assert.InDelta(t, 179.0, decoded.MidParentalHeight.MPH, 1e-9)
}

func TestWriteCalculationParquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut)
	require.NoError(t, WriteCalculation(sampleResults(), cfg, true, 0))

	records, err := parquet.ReadGrowthFile(cfg.OutputFile)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "bmi", records[1].Metric)
}

func TestWriteCalculationHTMLUnsupported(t *testing.T) {
	cfg := testConfig(t, schema.HTMLOut)
	assert.ErrorIs(t, WriteCalculation(sampleResults(), cfg, true, 0), schema.ErrInvalidInput)
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		p        float64
		expected string
	}{
		{0.4, "<1st"},
		{1, "1st"},
		{2.5, "3rd"},
		{11.2, "11th"},
		{54.78, "55th"},
		{99, "99th"},
		{99.6, ">99th"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ordinal(tt.p), "percentile %v", tt.p)
	}
}

func TestWriteAge(t *testing.T) {
	child := schema.ChildData{DateOfBirth: "2022-01-01", MeasurementDate: "2024-01-02"}
	age := schema.AgeCalculation{AgeYears: 2, AgeMonths: 0, AgeInMonths: 24.01, AgeInDays: 731}

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteAge(child, age, cfg))
	assert.Equal(t, "Age on 2024-01-02: 2 years 0 months (24.0 months), 731 days\n", readOutput(t, cfg))

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, WriteAge(child, age, cfg))
	assert.Equal(t, "date_of_birth,measurement_date,age_years,age_months,age_in_months,age_in_days\n2022-01-01,2024-01-02,2,0,24.01,731\n", readOutput(t, cfg))

	cfg = testConfig(t, schema.JSONOut)
	require.NoError(t, WriteAge(child, age, cfg))
	assert.Contains(t, readOutput(t, cfg), `"ageInDays": 731`)
	assert.Contains(t, readOutput(t, cfg), `"dateOfBirth": "2022-01-01"`)

	assert.Error(t, WriteAge(child, age, testConfig(t, schema.ParquetOut)))
}

func TestWriteMPH(t *testing.T) {
	results := sampleResults()

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteMPH(results.MidParentalHeight, results.TargetRange, cfg))
	out := readOutput(t, cfg)
	assert.Contains(t, out, "179.0")
	assert.Contains(t, out, "169.0")
	assert.Contains(t, out, "189.0")
	assert.Contains(t, out, "target range is 96.1-108.4 cm")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, WriteMPH(results.MidParentalHeight, nil, cfg))
	assert.Equal(t, "measure,height_cm,z_score\nmph,179.0,0.35\nthr_level1_min,169.0,0.00\nthr_level1_max,189.0,0.00\n", readOutput(t, cfg))

	assert.Error(t, WriteMPH(results.MidParentalHeight, nil, testConfig(t, schema.HTMLOut)))
}

func TestWriteMPHUnavailable(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteMPH(nil, nil, cfg))
	assert.Contains(t, readOutput(t, cfg), "not available")

	cfg = testConfig(t, schema.JSONOut)
	require.NoError(t, WriteMPH(nil, nil, cfg))
	assert.Contains(t, readOutput(t, cfg), `"midParentalHeight": null`)
}

func TestWriteConversion(t *testing.T) {
	conv := schema.UnitConversion{Value: 10, From: "lb", To: "kg", Result: 4.5359237}

	cfg := testConfig(t, schema.TextOut)
	cfg.Precision = 2
	require.NoError(t, WriteConversion(conv, cfg))
	assert.Equal(t, "10 lb = 4.54 kg\n", readOutput(t, cfg))

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, WriteConversion(conv, cfg))
	assert.Equal(t, "value,from,to,result\n10,lb,kg,4.5359237\n", readOutput(t, cfg))
}

func chartSeries() schema.ChartSeries {
	series := schema.ChartSeries{
		Metric: schema.HeightMetric, Standard: schema.CDC, Gender: schema.Female,
		XName: "Age (years)", YName: "Height (cm)", ChildX: 25, ChildY: 88,
	}
	mph := 100.0
	for x := 24; x <= 26; x++ {
		p := schema.ChartPoint{X: float64(x), Label: "2"}
		for i, pct := range schema.StandardPercentiles {
			p.SetPercentile(pct, 80+float64(i))
		}
		p.MPHLine = &mph
		series.Points = append(series.Points, p)
	}
	return series
}

func TestWriteChartCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	require.NoError(t, WriteChart(chartSeries(), cfg))

	lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "x,label,percentile3,percentile50,percentile97,mph_line,thr_level1_min,thr_level1_max", lines[0])
	assert.Equal(t, "24,2,80.0,83.0,86.0,100.0,,", lines[1])
}

func TestWriteChartText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteChart(chartSeries(), cfg))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Height-for-age (CDC, female)")
	assert.Contains(t, out, "Age (years)")
	assert.Contains(t, out, "P50")
	assert.NotContains(t, out, "P 50")
	assert.NotContains(t, out, "P25")
	assert.Contains(t, out, "MPH")
	assert.Contains(t, out, "Child: 88.0 at x=25.00")
}

func TestWriteChartHTML(t *testing.T) {
	cfg := testConfig(t, schema.HTMLOut)
	require.NoError(t, WriteChart(chartSeries(), cfg))
	assert.Contains(t, readOutput(t, cfg), "<html")
}

func TestWriteChartParquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut)
	require.NoError(t, WriteChart(chartSeries(), cfg))
	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteReferenceRows(t *testing.T) {
	rows := reference.Builtin().Rows()[:3]

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteReferenceRows(rows, cfg))
	assert.Contains(t, readOutput(t, cfg), "Showing 3 rows from 1 tables")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, WriteReferenceRows(rows, cfg))
	lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "metric,standard,gender,x,l,m,s", lines[0])

	cfg = testConfig(t, schema.ParquetOut)
	require.NoError(t, WriteReferenceRows(rows, cfg))
	records, err := parquet.ReadReferenceFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Error(t, WriteReferenceRows(rows, testConfig(t, schema.HTMLOut)))
}

func TestWriteDBStatus(t *testing.T) {
	status := schema.ReferenceDBStatus{
		Backend:   schema.SQLiteBackend,
		Connected: true,
		Version:   2,
		TotalRows: 1234,
		Tables:    map[string]int{"height_cdc_male": 1200, "height_cdc_female": 34},
		Sources:   []string{"builtin"},
	}

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, WriteDBStatus(status, cfg))
	out := readOutput(t, cfg)
	assert.Contains(t, out, "Schema Version: 2")
	assert.Contains(t, out, "Table")
	assert.NotContains(t, out, "TABLE")
	assert.Contains(t, out, "Total Rows: 1,234")
	assert.Contains(t, out, "height_cdc_female")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, WriteDBStatus(status, cfg))
	lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
	assert.Equal(t, []string{"table,rows", "height_cdc_female,34", "height_cdc_male,1200"}, lines)

	cfg = testConfig(t, schema.JSONOut)
	require.NoError(t, WriteDBStatus(status, cfg))
	var decoded schema.ReferenceDBStatus
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
	assert.Equal(t, status, decoded)

	cfg = testConfig(t, schema.TextOut)
	require.NoError(t, WriteDBStatus(schema.ReferenceDBStatus{Backend: schema.SQLiteBackend}, cfg))
	assert.NotContains(t, readOutput(t, cfg), "Schema Version")

	assert.Error(t, WriteDBStatus(status, testConfig(t, schema.ParquetOut)))
}
