package cmd

import (
	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/spf13/cobra"
)

// calcCmd runs the full growth assessment.
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Assess a child's growth against the WHO and CDC references",
	Long: `Calculate age, Z-scores and percentiles for the selected measurements, the
mid-parental height and, after 24 months, whether the child's height lies within
the genetic target range.

WHO tables are used up to 24 months and CDC tables from 24 months to 20 years.
Under 24 months weight-for-length replaces BMI-for-age.

Examples:
  # Height of a 4 year old boy with both parents
  mapmykidz calc -g male --dob 2020-01-15 --date 2024-01-15 --height 102 \
    --mother-height 165 --father-height 180

  # Every measurement, in imperial units, as JSON
  mapmykidz calc -g female --dob 2019-06-01 --height 40 --height-unit inches \
    --weight 38 --weight-unit lb --mother-height 64 --father-height 70 \
    --mother-height-unit inches --father-height-unit inches -m all -o json

  # Height chart with percentiles and the target range as an HTML page
  mapmykidz calc -g male --dob 2018-03-01 --height 118 --mother-height 160 \
    --father-height 175 -o html --output-file growth.html`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCalc(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Calculation failed", err)
		}
	},
}
