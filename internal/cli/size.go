package cli

import (
	"github.com/spf13/cobra"

	"tradejournal/internal/metrics"
	"tradejournal/pkg/utils"
)

// addSizeCommand adds the position size calculator.
func addSizeCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Risk-based position size calculator",
		Long:  "Derives a recommended position size from account balance, risk percent, entry and stop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			balance, _ := cmd.Flags().GetFloat64("balance")
			risk, _ := cmd.Flags().GetFloat64("risk")
			entry, _ := cmd.Flags().GetFloat64("entry")
			stop, _ := cmd.Flags().GetFloat64("stop")

			result := metrics.SizePosition(balance, risk, entry, stop)

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Risk Calculator")
			output.Printf("  Risk Amount:   %s\n", utils.FormatCurrency(result.RiskAmount))
			output.Printf("  Stop Distance: %.2f pts\n", result.StopDistance)
			output.Printf("  Position Size: %.4f units\n", result.Units)
			if result.Units == 0 {
				output.Dim("  Entry and stop must differ for a non-zero size.")
			}
			return nil
		},
	}
	cmd.Flags().Float64("balance", app.Config.Sizing.AccountBalance, "Account balance")
	cmd.Flags().Float64("risk", app.Config.Sizing.RiskPercent, "Risk percent of account per trade")
	cmd.Flags().Float64("entry", 0, "Entry price")
	cmd.Flags().Float64("stop", 0, "Stop loss price")
	rootCmd.AddCommand(cmd)
}
