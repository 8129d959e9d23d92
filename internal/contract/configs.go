package contract

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// nowFunc supplies today's date when no measurement date is given.
var nowFunc = time.Now

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Range checks on the measurements
// themselves happen in the calculation.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processChild(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	if err := processReferenceDir(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, html", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	cfg.LogLevel = strings.ToLower(input.LogLevel)
	return SetLogLevel(cfg.LogLevel)
}

// processChild converts the child and parent fields into a ChildData.
func processChild(cfg *Config, input *ConfigRawInput) error {
	child := schema.ChildData{
		Gender:       schema.Gender(strings.ToLower(strings.TrimSpace(input.Gender))),
		Height:       input.Height,
		Weight:       input.Weight,
		MotherHeight: input.MotherHeight,
		FatherHeight: input.FatherHeight,
		IsAdopted:    input.Adopted,
	}
	if child.Gender != "" {
		if _, ok := schema.ValidGenders[child.Gender]; !ok {
			return fmt.Errorf("invalid gender '%s'. must be male, female", input.Gender)
		}
	}

	var err error
	if child.HeightUnit, err = parseHeightUnit("height-unit", input.HeightUnit); err != nil {
		return err
	}
	if child.MotherHeightUnit, err = parseHeightUnit("mother-height-unit", input.MotherHeightUnit); err != nil {
		return err
	}
	if child.FatherHeightUnit, err = parseHeightUnit("father-height-unit", input.FatherHeightUnit); err != nil {
		return err
	}
	child.WeightUnit = schema.WeightUnit(strings.ToLower(strings.TrimSpace(input.WeightUnit)))
	switch child.WeightUnit {
	case "":
		child.WeightUnit = schema.Kilograms
	case "lbs", "pounds":
		child.WeightUnit = schema.Pounds
	}
	if _, ok := schema.ValidWeightUnits[child.WeightUnit]; !ok {
		return fmt.Errorf("invalid weight-unit '%s'. must be kg, lb", input.WeightUnit)
	}

	if child.DateOfBirth, err = normalizeDate("dob", input.DOB, ""); err != nil {
		return err
	}
	if child.MeasurementDate, err = normalizeDate("date", input.Date, nowFunc().Format(time.DateOnly)); err != nil {
		return err
	}

	child.SelectedMeasurements, err = ParseMeasurements(input.Measurements)
	if err != nil {
		return err
	}
	cfg.Child = child
	return nil
}

// processSelection handles the chart metric and percentile curves.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	cfg.Metric = DefaultMetric
	if input.Metric != "" {
		cfg.Metric = schema.Metric(strings.ToLower(strings.TrimSpace(input.Metric)))
		if cfg.Metric == "wfl" {
			cfg.Metric = schema.WeightForLengthMetric
		}
		if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
			return fmt.Errorf("invalid metric '%s'. must be height, weight, bmi, weight-for-length", input.Metric)
		}
	}
	percentiles, err := ParsePercentiles(input.Percentiles)
	if err != nil {
		return err
	}
	cfg.Percentiles = percentiles
	return nil
}

// processReferenceDir checks that an override directory exists.
func processReferenceDir(cfg *Config, input *ConfigRawInput) error {
	cfg.ReferenceDir = strings.TrimSpace(input.ReferenceDir)
	if cfg.ReferenceDir == "" {
		return nil
	}
	info, err := os.Stat(cfg.ReferenceDir)
	if err != nil {
		return fmt.Errorf("invalid reference-dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid reference-dir '%s'. must be a directory", cfg.ReferenceDir)
	}
	return nil
}

// validateBackendConfig validates the reference database backend and its connection string.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.DBBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.DBBackend)))
	switch cfg.DBBackend {
	case "":
		cfg.DBBackend = schema.NoneBackend
	case "postgres":
		cfg.DBBackend = schema.PostgreSQLBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.DBBackend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", input.DBBackend)
	}
	cfg.DBConnect = strings.TrimSpace(input.DBConnect)
	return ValidateDatabaseConnectionString(cfg.DBBackend, cfg.DBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends. SQLite falls back to a file in the home directory.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or be a postgres:// URL")
		}
	}
	return nil
}

// ParseMeasurements parses a comma separated list such as "height,weight".
// An empty string selects height only, and "all" selects every measurement.
func ParseMeasurements(s string) ([]schema.Metric, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return []schema.Metric{schema.HeightMetric}, nil
	case "all":
		return []schema.Metric{schema.HeightMetric, schema.WeightMetric, schema.BMIMetric}, nil
	}
	var out []schema.Metric
	for part := range strings.SplitSeq(s, ",") {
		m := schema.Metric(strings.TrimSpace(part))
		if m == "" {
			continue
		}
		if _, ok := schema.SelectableMeasurements[m]; !ok {
			return nil, fmt.Errorf("invalid measurement '%s'. must be height, weight, bmi", part)
		}
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("please select at least one measurement type")
	}
	return out, nil
}

// ParsePercentiles parses a comma separated list of chart percentiles like "3,50,97".
// An empty string selects every standard percentile.
func ParsePercentiles(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return slices.Clone(schema.StandardPercentiles), nil
	}
	var out []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid percentile '%s': %w", part, err)
		}
		if !slices.Contains(schema.StandardPercentiles, p) {
			return nil, fmt.Errorf("invalid percentile %d. must be one of 3, 10, 25, 50, 75, 90, 97", p)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out, nil
}

func parseHeightUnit(name, s string) (schema.HeightUnit, error) {
	u := schema.HeightUnit(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case "":
		return schema.Centimeters, nil
	case "in", "inch":
		return schema.Inches, nil
	}
	if _, ok := schema.ValidHeightUnits[u]; !ok {
		return "", fmt.Errorf("invalid %s '%s'. must be cm, inches", name, s)
	}
	return u, nil
}

// normalizeDate checks an ISO date and returns it in YYYY-MM-DD form.
func normalizeDate(name, s, fallback string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", fmt.Errorf("invalid %s '%s'. expected YYYY-MM-DD", name, s)
	}
	return t.Format(time.DateOnly), nil
}
