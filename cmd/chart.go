package cmd

import (
	"github.com/mapmykidz/Mapmykidz/core"
	"github.com/mapmykidz/Mapmykidz/internal/contract"
	"github.com/spf13/cobra"
)

// chartCmd renders the percentile curves of a growth chart.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Generate growth chart percentile curves",
	Long: `Generate the percentile curves of a growth chart for --metric, marking the
child's own measurement when the date of birth and measurement are given.

Windows:
- WHO, 0-24 months in 1 month steps (age under 24 months, or no date of birth)
- CDC, 24-240 months in 1 month steps
- Weight-for-length, 45-110 cm in 0.5 cm steps

CDC height charts also carry the mid-parental height and target range lines
when both parental heights are given.

Examples:
  # Text table of the median and outer curves
  mapmykidz chart -g female --dob 2020-05-01 --height 98 --percentiles 3,50,97

  # Interactive chart
  mapmykidz chart -g male --dob 2018-01-01 --height 116 --mother-height 165 \
    --father-height 180 -o html --output-file height.html

  # Weight-for-length curves as Parquet
  mapmykidz chart -g male --metric weight-for-length -o parquet --output-file wfl.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Chart failed", err)
		}
	},
}
