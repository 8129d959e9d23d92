package cmd

import (
	"fmt"
	"strconv"

	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/spf13/cobra"
)

// convertCmd converts between metric and imperial units.
var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a height or weight between units",
	Long: `Convert between cm and inches or between kg and lb.

Examples:
  mapmykidz convert 10 lb kg
  mapmykidz convert 42 inches cm --precision 2`,
	Args:    cobra.ExactArgs(3),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			contract.LogFatal("Conversion failed", fmt.Errorf("invalid value '%s': %w", args[0], err))
		}
		if err := core.ExecuteConvert(rootCtx, cfg, value, args[1], args[2]); err != nil {
			contract.LogFatal("Conversion failed", err)
		}
	},
}
