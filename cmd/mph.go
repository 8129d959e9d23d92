package cmd

import (
	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/spf13/cobra"
)

// mphCmd prints the mid-parental height and target range.
var mphCmd = &cobra.Command{
	Use:   "mph",
	Short: "Calculate the mid-parental height and target range",
	Long: `Calculate the mid-parental (genetic target) height from both parental heights.

Boys:  (mother + father + 13) / 2, target range +/- 10 cm
Girls: (mother + father - 13) / 2, target range +/- 8.5 cm

Each value is reported with its Z-score against adult CDC stature. With a date
of birth and a height, the child's current height is also checked against the
target range projected back to the child's age.

Examples:
  mapmykidz mph -g female --mother-height 165 --father-height 180
  mapmykidz mph -g male --dob 2018-01-01 --height 116 --mother-height 165 --father-height 180`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMPH(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Mid-parental height failed", err)
		}
	},
}
