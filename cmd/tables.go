package cmd

import (
	"fmt"
	"strings"

	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/mapmykidz/Mapmykidz/schema"
	"github.com/spf13/cobra"
)

// tablesCmd dumps the reference tables.
var tablesCmd = &cobra.Command{
	Use:   "tables [metric]",
	Short: "Dump the LMS reference tables",
	Long: `Print the LMS reference tables in use, including any loaded with
--reference-dir. Exporting them as Parquet produces a file that can be edited
and loaded back with --reference-dir.

Examples:
  mapmykidz tables height
  mapmykidz tables -o parquet --output-file reference.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		var metric schema.Metric
		if len(args) == 1 {
			metric = schema.Metric(strings.ToLower(args[0]))
			if _, ok := schema.ValidMetrics[metric]; !ok {
				contract.LogFatal("Tables failed", fmt.Errorf("invalid metric '%s'. must be height, weight, bmi, weight-for-length", args[0]))
			}
		}
		if err := core.ExecuteTables(rootCtx, cfg, store, metric); err != nil {
			contract.LogFatal("Tables failed", err)
		}
	},
}
