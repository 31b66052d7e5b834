package cli

import (
	"time"

	"github.com/spf13/cobra"

	"tradejournal/internal/metrics"
	"tradejournal/internal/models"
	"tradejournal/internal/query"
	"tradejournal/pkg/utils"
)

// addTradeCommands adds the trade lifecycle commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newLogCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newShowCmd(app))
	rootCmd.AddCommand(newEditCmd(app))
	rootCmd.AddCommand(newDeleteCmd(app))
}

// tradeFlags registers the raw-input flags shared by log and edit.
func tradeFlags(cmd *cobra.Command) {
	cmd.Flags().String("pair", "", "Instrument identifier (e.g. BTC/USD)")
	cmd.Flags().String("direction", "long", "Trade direction: long or short")
	cmd.Flags().String("entry", "", "Entry price")
	cmd.Flags().String("exit", "", "Exit price")
	cmd.Flags().String("stop", "", "Stop loss price")
	cmd.Flags().String("quantity", "", "Position size in units")
	cmd.Flags().String("date", "", "Trade date (YYYY-MM-DD, default today)")
	cmd.Flags().String("time", "", "Trade time (HH:MM, default now)")
	cmd.Flags().String("setup", "", "Setup tag (default: first #tag of the rationale)")
	cmd.Flags().String("rationale", "", "Why the trade was taken; #tags are extracted")
	cmd.Flags().String("screenshot", "", "Chart screenshot reference")
	cmd.Flags().Int("confidence", 3, "Confidence level 1-5")
	cmd.Flags().String("mood", "Neutral", "Mood: Calm, Anxious, Greedy, Fearful, Neutral, Excited")
}

// inputFromFlags builds a RawTradeInput from the flag set.
func inputFromFlags(cmd *cobra.Command) models.RawTradeInput {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	confidence, _ := cmd.Flags().GetInt("confidence")

	input := models.RawTradeInput{
		Pair:       get("pair"),
		Direction:  get("direction"),
		EntryPrice: get("entry"),
		ExitPrice:  get("exit"),
		StopLoss:   get("stop"),
		Quantity:   get("quantity"),
		Date:       get("date"),
		Time:       get("time"),
		Setup:      get("setup"),
		Rationale:  get("rationale"),
		Screenshot: get("screenshot"),
		Confidence: confidence,
		Mood:       get("mood"),
	}
	if input.Date == "" {
		input.Date = FormatDate(time.Now())
	}
	if input.Time == "" {
		input.Time = FormatTime(time.Now())
	}
	return input
}

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a closed trade",
		Long:  "Record a closed trade. P&L, ROI and risk:reward are derived from the raw prices.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			input := inputFromFlags(cmd)

			if preview, _ := cmd.Flags().GetBool("preview"); preview {
				outcome := metrics.PreviewOutcome(
					models.NormalizeDirection(input.Direction),
					input.EntryPrice, input.ExitPrice, input.StopLoss, input.Quantity)
				if output.IsJSON() {
					return output.JSON(outcome)
				}
				output.Bold("Estimated outcome")
				output.Printf("  P&L:  %s (%s)\n", output.FormatPnL(outcome.PnL), output.FormatPercent(outcome.PnLPercent))
				output.Printf("  R:R:  %s\n", utils.FormatRiskReward(outcome.RiskReward))
				return nil
			}

			trade, err := app.Trades.Create(input)
			if err != nil {
				return err
			}
			if err := app.persist(ctx); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Logged %s %s (%s)", trade.Pair, trade.Direction, shortID(trade.ID))
			output.Printf("  P&L:    %s (%s)\n", output.FormatPnL(trade.PnL), output.FormatPercent(trade.PnLPercent))
			output.Printf("  R:R:    %s\n", utils.FormatRiskReward(trade.RiskReward))
			output.Printf("  Status: %s\n", string(trade.Status))
			output.Printf("  Setup:  %s\n", trade.Setup)
			return nil
		},
	}
	tradeFlags(cmd)
	cmd.Flags().Bool("preview", false, "Compute metrics without saving")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Long:  "List trades, most recent first, with optional search and outcome filters.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			search, _ := cmd.Flags().GetString("search")
			outcome, _ := cmd.Flags().GetString("outcome")
			date, _ := cmd.Flags().GetString("date")

			trades := app.Trades.List()
			if date != "" {
				trades = query.ByDate(trades, date)
			}
			trades = query.Filter(trades, query.Criteria{
				Search:  search,
				Outcome: query.OutcomeFilter(outcome),
			})

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades found matching your filters.")
				return nil
			}

			renderTradeTable(output, trades)
			return nil
		},
	}
	cmd.Flags().String("search", "", "Match pair or setup (case-insensitive substring)")
	cmd.Flags().String("outcome", "all", "Restrict by outcome: all, win, loss")
	cmd.Flags().String("date", "", "Only trades on this date (YYYY-MM-DD)")
	return cmd
}

func renderTradeTable(output *Output, trades []models.Trade) {
	table := NewTable(output, "ID", "Date", "Time", "Pair", "Dir", "Setup", "P&L", "ROI", "Status")
	for _, t := range trades {
		table.AddRow(
			shortID(t.ID),
			t.Date,
			t.Time,
			t.Pair,
			string(t.Direction),
			TruncateString(t.Setup, 18),
			output.FormatPnL(t.PnL),
			output.FormatPercent(t.PnLPercent),
			string(t.Status),
		)
	}
	table.Render()
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trade, err := app.Trades.Get(args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Bold("%s %s — %s %s", trade.Pair, trade.Direction, trade.Date, trade.Time)
			output.Printf("  ID:         %s\n", trade.ID)
			output.Printf("  Entry:      %s   Exit: %s   Stop: %s   Qty: %s\n",
				trade.EntryPrice, trade.ExitPrice, trade.StopLoss, trade.Quantity)
			output.Printf("  P&L:        %s (%s)\n", output.FormatPnL(trade.PnL), output.FormatPercent(trade.PnLPercent))
			output.Printf("  R:R:        %s\n", utils.FormatRiskReward(trade.RiskReward))
			output.Printf("  Status:     %s\n", string(trade.Status))
			output.Printf("  Setup:      %s\n", trade.Setup)
			output.Printf("  Confidence: %s\n", FormatConfidence(trade.Confidence))
			output.Printf("  Mood:       %s\n", string(trade.Mood))
			if trade.Rationale != "" {
				output.Printf("  Rationale:  %s\n", trade.Rationale)
			}
			if trade.Screenshot != "" {
				output.Printf("  Screenshot: %s\n", trade.Screenshot)
			}
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Edit a trade",
		Long:  "Replace fields of an existing trade. Derived metrics are recomputed from scratch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			existing, err := app.Trades.Get(args[0])
			if err != nil {
				return err
			}

			// Start from the stored raw fields; only changed flags override.
			input := models.RawTradeInput{
				Pair:       existing.Pair,
				Direction:  string(existing.Direction),
				EntryPrice: existing.EntryPrice,
				ExitPrice:  existing.ExitPrice,
				StopLoss:   existing.StopLoss,
				Quantity:   existing.Quantity,
				Date:       existing.Date,
				Time:       existing.Time,
				Setup:      existing.Setup,
				Rationale:  existing.Rationale,
				Screenshot: existing.Screenshot,
				Confidence: existing.Confidence,
				Mood:       string(existing.Mood),
			}
			overrideString(cmd, "pair", &input.Pair)
			overrideString(cmd, "direction", &input.Direction)
			overrideString(cmd, "entry", &input.EntryPrice)
			overrideString(cmd, "exit", &input.ExitPrice)
			overrideString(cmd, "stop", &input.StopLoss)
			overrideString(cmd, "quantity", &input.Quantity)
			overrideString(cmd, "date", &input.Date)
			overrideString(cmd, "time", &input.Time)
			overrideString(cmd, "setup", &input.Setup)
			overrideString(cmd, "rationale", &input.Rationale)
			overrideString(cmd, "screenshot", &input.Screenshot)
			overrideString(cmd, "mood", &input.Mood)
			if cmd.Flags().Changed("confidence") {
				input.Confidence, _ = cmd.Flags().GetInt("confidence")
			}

			trade, err := app.Trades.Update(args[0], input)
			if err != nil {
				return err
			}
			if err := app.persist(ctx); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Updated %s (%s)", trade.Pair, shortID(trade.ID))
			output.Printf("  P&L:    %s (%s)\n", output.FormatPnL(trade.PnL), output.FormatPercent(trade.PnLPercent))
			output.Printf("  Status: %s\n", string(trade.Status))
			return nil
		},
	}
	tradeFlags(cmd)
	return cmd
}

func overrideString(cmd *cobra.Command, name string, target *string) {
	if cmd.Flags().Changed(name) {
		*target, _ = cmd.Flags().GetString(name)
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			if err := app.Trades.Delete(args[0]); err != nil {
				return err
			}
			if err := app.persist(ctx); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("Deleted trade %s", shortID(args[0]))
			return nil
		},
	}
}
