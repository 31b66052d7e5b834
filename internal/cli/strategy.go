package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tradejournal/internal/journal"
	"tradejournal/internal/query"
)

// addStrategyCommands adds strategy management commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Manage trading strategies",
		Long:  "Define setups, track their performance snapshot, and level up mastery XP.",
	}

	cmd.AddCommand(newStrategyAddCmd(app))
	cmd.AddCommand(newStrategyListCmd(app))
	cmd.AddCommand(newStrategyUpdateCmd(app))
	cmd.AddCommand(newStrategyDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func strategyFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Strategy name")
	cmd.Flags().String("description", "", "What the setup looks for")
	cmd.Flags().StringSlice("tags", nil, "Tags (comma separated)")
	cmd.Flags().String("status", "Active", "Status: Active, Testing, Archived")
}

func strategyInputFromFlags(cmd *cobra.Command) journal.StrategyInput {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	status, _ := cmd.Flags().GetString("status")

	return journal.StrategyInput{
		Name:        name,
		Description: description,
		Tags:        tags,
		Status:      status,
	}
}

func newStrategyAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			strategy, err := app.Strategies.Create(strategyInputFromFlags(cmd))
			if err != nil {
				return err
			}
			if err := app.persist(ctx); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(strategy)
			}
			output.Success("Added strategy %q (%s)", strategy.Name, shortID(strategy.ID))
			return nil
		},
	}
	strategyFlags(cmd)
	return cmd
}

func newStrategyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			strategies := app.Strategies.List()
			if output.IsJSON() {
				return output.JSON(strategies)
			}
			if len(strategies) == 0 {
				output.Info("No strategies defined yet.")
				return nil
			}

			table := NewTable(output, "ID", "Name", "Status", "Win Rate", "Trades", "Level", "XP")
			for _, s := range strategies {
				table.AddRow(
					shortID(s.ID),
					TruncateString(s.Name, 24),
					string(s.Status),
					fmt.Sprintf("%.0f%%", s.WinRate),
					fmt.Sprintf("%d", s.TradeCount),
					fmt.Sprintf("Lvl %d", journal.LevelOf(s)),
					renderXPBar(s.XP),
				)
			}
			table.Render()

			if best, ok := query.BestPerformer(strategies); ok {
				output.Println()
				output.Printf("  Best performer: %s (%.0f%% win rate)\n", best.Name, best.WinRate)
			}
			return nil
		},
	}
}

// renderXPBar draws mastery progress as a 10-segment bar.
func renderXPBar(xp int) string {
	filled := xp / 10
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func newStrategyUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <strategy-id>",
		Short: "Update a strategy and its performance snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			existing, err := app.Strategies.Get(args[0])
			if err != nil {
				return err
			}

			input := journal.StrategyInput{
				Name:        existing.Name,
				Description: existing.Description,
				Tags:        existing.Tags,
				Status:      string(existing.Status),
				WinRate:     existing.WinRate,
				TradeCount:  existing.TradeCount,
				XP:          existing.XP,
			}
			overrideString(cmd, "name", &input.Name)
			overrideString(cmd, "description", &input.Description)
			overrideString(cmd, "status", &input.Status)
			if cmd.Flags().Changed("tags") {
				input.Tags, _ = cmd.Flags().GetStringSlice("tags")
			}
			if cmd.Flags().Changed("win-rate") {
				input.WinRate, _ = cmd.Flags().GetFloat64("win-rate")
			}
			if cmd.Flags().Changed("trade-count") {
				input.TradeCount, _ = cmd.Flags().GetInt("trade-count")
			}
			if cmd.Flags().Changed("xp") {
				input.XP, _ = cmd.Flags().GetInt("xp")
			}

			strategy, err := app.Strategies.Update(args[0], input)
			if err != nil {
				return err
			}
			if err := app.persist(ctx); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(strategy)
			}
			output.Success("Updated %q — Lvl %d (%d XP)", strategy.Name, journal.LevelOf(strategy), strategy.XP)
			return nil
		},
	}
	strategyFlags(cmd)
	cmd.Flags().Float64("win-rate", 0, "Win rate snapshot (0-100)")
	cmd.Flags().Int("trade-count", 0, "Trade count snapshot")
	cmd.Flags().Int("xp", 0, "Mastery XP (0-100)")
	return cmd
}

func newStrategyDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <strategy-id>",
		Short: "Delete a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			if err := app.Strategies.Delete(args[0]); err != nil {
				return err
			}
			if err := app.persist(ctx); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("Deleted strategy %s", shortID(args[0]))
			return nil
		},
	}
}
