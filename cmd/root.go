package cmd

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/mapmykidz/Mapmykidz/core/reference"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/internal/parquet"
	"github.com/mapmykidz/Mapmykidz/internal/refdb"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// store holds the reference tables, built-in or overridden by --db-backend and --reference-dir.
var store *reference.Store

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "mapmykidz",
	Short:              "Assess children's growth against WHO and CDC reference charts.",
	Long:               `Mapmykidz turns a child's height, weight and parental heights into Z-scores, percentiles and a genetic target range.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".mapmykidz") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("MAPMYKIDZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", contract.DefaultOutput)
	viper.SetDefault("metric", contract.DefaultMetric)
	viper.SetDefault("height-unit", "cm")
	viper.SetDefault("weight-unit", "kg")
	viper.SetDefault("color", "yes")
	viper.SetDefault("db-backend", string(schema.NoneBackend))
}

// loadConfig unmarshals config and runs validation.
func loadConfig() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and parsing. This populates the global 'cfg'.
	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetup loads the config and the reference store.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	var err error
	store, err = buildStore(ctx, cfg)
	return err
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// buildStore returns the built-in store with overrides applied in order:
// tables from the reference database, then Parquet files, then CSV files of
// the reference directory. Later sources win for the same table.
func buildStore(ctx context.Context, c *contract.Config) (*reference.Store, error) {
	overrides := make(map[reference.Key]schema.LMSTable)
	if c.DBBackend != "" && c.DBBackend != schema.NoneBackend {
		db, err := refdb.Open(ctx, c.DBBackend, c.DBConnect)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		tables, err := db.Tables(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load database tables: %w", err)
		}
		for key := range tables {
			contract.Logger().Debug("loaded reference table", "table", key.String(), "source", c.DBBackend)
		}
		maps.Copy(overrides, tables)
	}

	files, err := loadReferenceDir(c.ReferenceDir)
	if err != nil {
		return nil, err
	}
	maps.Copy(overrides, files)

	builtin := reference.Builtin()
	if len(overrides) == 0 {
		return builtin, nil
	}
	return builtin.WithOverrides(overrides)
}

// loadReferenceDir reads the CSV and Parquet tables of dir.
// CSV wins when both define a table.
func loadReferenceDir(dir string) (map[reference.Key]schema.LMSTable, error) {
	if dir == "" {
		return nil, nil
	}
	tables, err := parquet.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load parquet tables: %w", err)
	}
	csvTables, err := reference.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load csv tables: %w", err)
	}
	maps.Copy(tables, csvTables)
	if len(tables) == 0 {
		contract.Logger().Warn("no reference tables found; using built-in tables", "dir", dir)
	}
	for key := range tables {
		contract.Logger().Info("loaded reference table", "table", key.String(), "source", contract.SourceCLI)
	}
	return tables, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
