package cmd

import (
	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/spf13/cobra"
)

// ageCmd prints the chronological age between two dates.
var ageCmd = &cobra.Command{
	Use:   "age",
	Short: "Calculate a child's age from the date of birth",
	Long: `Print the age in years, months and days, and the continuous age in months
(days / 30.4375) used for every reference table lookup.

Examples:
  mapmykidz age --dob 2022-01-01 --date 2024-01-02
  mapmykidz age --dob 2022-01-01 -o json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAge(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Age calculation failed", err)
		}
	},
}
