// Package contract provides the runtime configuration and shared utilities for the mapmykidz CLI.
package contract

import (
	"slices"

	"github.com/mapmykidz/Mapmykidz/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultOutput    = schema.TextOut
	DefaultMetric    = schema.HeightMetric
)

// Config holds the runtime configuration for a calculation.
// This struct remains the "final, validated" config.
type Config struct {
	Child        schema.ChildData
	Metric       schema.Metric // Chart metric
	Percentiles  []int         // Chart curves to render
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)
	UseColors    bool
	LogLevel     string
	ReferenceDir string // Directory of CSV or parquet tables overriding the built-in ones
	DBBackend    schema.DatabaseBackend
	DBConnect    string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Child ---
	Gender     string  `mapstructure:"gender"`
	DOB        string  `mapstructure:"dob"`
	Date       string  `mapstructure:"date"`
	Height     float64 `mapstructure:"height"`
	HeightUnit string  `mapstructure:"height-unit"`
	Weight     float64 `mapstructure:"weight"`
	WeightUnit string  `mapstructure:"weight-unit"`

	// --- Parents ---
	MotherHeight     float64 `mapstructure:"mother-height"`
	FatherHeight     float64 `mapstructure:"father-height"`
	MotherHeightUnit string  `mapstructure:"mother-height-unit"`
	FatherHeightUnit string  `mapstructure:"father-height-unit"`
	Adopted          bool    `mapstructure:"adopted"`

	// --- Selection ---
	Measurements string `mapstructure:"measurements"`
	Metric       string `mapstructure:"metric"`
	Percentiles  string `mapstructure:"percentiles"`

	// --- Output ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	LogLevel   string `mapstructure:"log-level"`

	// --- Data ---
	ReferenceDir string `mapstructure:"reference-dir"`
	DBBackend    string `mapstructure:"db-backend"`
	DBConnect    string `mapstructure:"db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Percentiles = slices.Clone(c.Percentiles)
	clone.Child.SelectedMeasurements = slices.Clone(c.Child.SelectedMeasurements)
	return &clone
}
