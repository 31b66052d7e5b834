package cli

import (
	"os"

	"github.com/spf13/cobra"

	"tradejournal/internal/export"
	"tradejournal/internal/query"
)

// addExportCommand adds CSV export of the (optionally filtered) journal.
func addExportCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as CSV",
		Long:  "Writes the trade collection as CSV, honoring the same search and outcome filters as list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			search, _ := cmd.Flags().GetString("search")
			outcome, _ := cmd.Flags().GetString("outcome")
			outPath, _ := cmd.Flags().GetString("out")

			trades := query.Filter(app.Trades.List(), query.Criteria{
				Search:  search,
				Outcome: query.OutcomeFilter(outcome),
			})

			if outPath == "" {
				return export.WriteCSV(cmd.OutOrStdout(), trades)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.WriteCSV(f, trades); err != nil {
				return err
			}
			output.Success("Exported %d trades to %s", len(trades), outPath)
			return nil
		},
	}
	cmd.Flags().String("search", "", "Match pair or setup (case-insensitive substring)")
	cmd.Flags().String("outcome", "all", "Restrict by outcome: all, win, loss")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	rootCmd.AddCommand(cmd)
}
