// Package cmd defines the command-line interface for mapmykidz.
package cmd

import (
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(ageCmd)
	rootCmd.AddCommand(mphCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(versionCmd)

	// Child and parents
	rootCmd.PersistentFlags().StringP("gender", "g", "", "Biological sex of the child: male or female")
	rootCmd.PersistentFlags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("date", "", "Measurement date (YYYY-MM-DD, defaults to today)")
	rootCmd.PersistentFlags().Float64("height", 0, "Height, or recumbent length under 24 months")
	rootCmd.PersistentFlags().String("height-unit", "cm", "Unit of the child's height: cm or inches")
	rootCmd.PersistentFlags().Float64("weight", 0, "Weight")
	rootCmd.PersistentFlags().String("weight-unit", "kg", "Unit of the child's weight: kg or lb")
	rootCmd.PersistentFlags().Float64("mother-height", 0, "Biological mother's height")
	rootCmd.PersistentFlags().Float64("father-height", 0, "Biological father's height")
	rootCmd.PersistentFlags().String("mother-height-unit", "cm", "Unit of the mother's height: cm or inches")
	rootCmd.PersistentFlags().String("father-height-unit", "cm", "Unit of the father's height: cm or inches")
	rootCmd.PersistentFlags().Bool("adopted", false, "The child is adopted (parental heights become optional)")
	rootCmd.PersistentFlags().StringP("measurements", "m", "height", "Measurements to assess: height, weight, bmi or all")

	// Charts
	rootCmd.PersistentFlags().String("metric", string(contract.DefaultMetric), "Chart metric: height or weight or bmi or weight-for-length")
	rootCmd.PersistentFlags().String("percentiles", "", "Comma-separated chart percentiles (default 3,10,25,50,75,90,97)")

	// Output
	rootCmd.PersistentFlags().StringP("output", "o", string(contract.DefaultOutput), "Output format: text or csv or json or parquet or html")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentiles and measurements (1 or 2)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug or info or warn or error")

	// Data
	rootCmd.PersistentFlags().String("reference-dir", "", "Directory of CSV or Parquet tables replacing the built-in ones")
	rootCmd.PersistentFlags().String("db-backend", string(schema.NoneBackend), "Reference database backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Reference database connection string (SQLite defaults to ~/.mapmykidz_reference.db)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Database subcommands
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbImportCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbExportCmd)
	dbCmd.AddCommand(dbClearCmd)
	dbMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 for latest, 0 to roll back everything)")
	if err := viper.BindPFlag("target-version", dbMigrateCmd.Flags().Lookup("target-version")); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
