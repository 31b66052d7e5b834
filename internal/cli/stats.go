package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/internal/models"
	"tradejournal/internal/query"
)

// addStatsCommands adds the aggregation view commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newCalendarCmd(app))
	rootCmd.AddCommand(newHeatmapCmd(app))
}

// filteredSnapshot applies the shared search/outcome flags to the snapshot.
func filteredSnapshot(cmd *cobra.Command, app *App) []models.Trade {
	search, _ := cmd.Flags().GetString("search")
	outcome, _ := cmd.Flags().GetString("outcome")
	return query.Filter(app.Trades.List(), query.Criteria{
		Search:  search,
		Outcome: query.OutcomeFilter(outcome),
	})
}

func statsFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "Match pair or setup (case-insensitive substring)")
	cmd.Flags().String("outcome", "all", "Restrict by outcome: all, win, loss")
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate journal KPIs",
		Long:  "Win rate, total P&L, profit factor, streaks and per-setup breakdown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades := filteredSnapshot(cmd, app)
			summary := query.Summarize(trades)
			streaks := query.Streaks(trades)
			setups := query.BySetup(trades)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"summary": summary,
					"streaks": streaks,
					"setups":  setups,
				})
			}

			output.Bold("Journal Statistics")
			output.Printf("  Trades Taken:   %d\n", summary.Count)
			output.Printf("  Win Rate:       %.1f%%\n", summary.WinRate)
			output.Printf("  Total P&L:      %s\n", output.FormatPnL(summary.TotalPnL))
			output.Printf("  Gross Profit:   %s\n", output.FormatPnL(summary.GrossProfit))
			output.Printf("  Gross Loss:     %s\n", output.FormatPnL(-summary.GrossLoss))
			if summary.GrossLoss == 0 && summary.GrossProfit > 0 {
				output.Printf("  Profit Factor:  %.2f (no losing trades)\n", summary.ProfitFactor)
			} else {
				output.Printf("  Profit Factor:  %.2f\n", summary.ProfitFactor)
			}
			output.Printf("  Win Streak:     %d days (best %d)\n", streaks.Current, streaks.Best)

			if len(setups) > 0 {
				output.Println()
				output.Bold("By Setup")
				table := NewTable(output, "Setup", "Trades", "Win Rate", "P&L")
				for _, s := range setups {
					table.AddRow(
						TruncateString(s.Setup, 22),
						fmt.Sprintf("%d", s.Count),
						fmt.Sprintf("%.0f%%", s.WinRate),
						output.FormatPnL(s.TotalPnL),
					)
				}
				table.Render()
			}
			return nil
		},
	}
	statsFilterFlags(cmd)
	return cmd
}

// monthAnchor parses the --month flag, defaulting to the current month.
func monthAnchor(cmd *cobra.Command) (time.Time, error) {
	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		return time.Now(), nil
	}
	anchor, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return anchor, nil
}

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Per-day P&L calendar",
		Long:  "One row per calendar day of the month, with trade count and net P&L.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			anchor, err := monthAnchor(cmd)
			if err != nil {
				return err
			}
			days := query.Month(filteredSnapshot(cmd, app), anchor)

			if output.IsJSON() {
				return output.JSON(days)
			}

			output.Bold("Performance Calendar — %s", anchor.Format("January 2006"))
			table := NewTable(output, "Date", "Trades", "Net P&L")
			for _, day := range days {
				net := ""
				if len(day.Trades) > 0 {
					net = output.FormatPnL(day.NetPnL)
				}
				table.AddRow(day.Date, fmt.Sprintf("%d", len(day.Trades)), net)
			}
			table.Render()
			return nil
		},
	}
	statsFilterFlags(cmd)
	cmd.Flags().String("month", "", "Month to render (YYYY-MM, default current)")
	return cmd
}

func newHeatmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Consistency heatmap",
		Long:  "Classifies each day of the month as win, loss, or none.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			anchor, err := monthAnchor(cmd)
			if err != nil {
				return err
			}
			days := query.Month(filteredSnapshot(cmd, app), anchor)

			if output.IsJSON() {
				type cell struct {
					Date   string              `json:"date"`
					Status query.HeatmapStatus `json:"status"`
					NetPnL float64             `json:"netPnl"`
				}
				cells := make([]cell, len(days))
				for i, day := range days {
					cells[i] = cell{Date: day.Date, Status: query.HeatmapClassify(day), NetPnL: day.NetPnL}
				}
				return output.JSON(cells)
			}

			output.Bold("Consistency Heatmap — %s", anchor.Format("January 2006"))
			for _, day := range days {
				switch query.HeatmapClassify(day) {
				case query.HeatmapWin:
					output.Printf("  %s  %s\n", day.Date, output.Green("■ win"))
				case query.HeatmapLoss:
					output.Printf("  %s  %s\n", day.Date, output.Red("■ loss"))
				default:
					output.Printf("  %s  %s\n", day.Date, "· none")
				}
			}
			return nil
		},
	}
	statsFilterFlags(cmd)
	cmd.Flags().String("month", "", "Month to render (YYYY-MM, default current)")
	return cmd
}
