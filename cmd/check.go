package cmd

import (
	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on screening with an exit code.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Screen a child's growth (fails on results outside the normal range)",
	Long: `Calculate every selected measurement and exit with a non-zero code when any
result is outside the normal range or the height is outside the target range.

Designed for batch screening scripts: prints a short summary, and the full
report of the flagged child on failure.

Examples:
  mapmykidz check -g male --dob 2020-01-15 --height 102 --weight 16 -m all \
    --mother-height 165 --father-height 180

  # Screen from a config file
  mapmykidz check --config child.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Screening failed", err)
		}
	},
}
