// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradejournal/internal/config"
	"tradejournal/internal/journal"
	"tradejournal/internal/logging"
	"tradejournal/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Trades     *journal.TradeStore
	Strategies *journal.StrategyStore
	DB         store.JournalStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:     "tradejournal",
		Short:   "Personal trading journal",
		Long:    "Record trades and strategies, and derive performance statistics:\nP&L, win rate, profit factor, calendars and consistency heatmaps.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logging.SetDebugLevel()
			}
			return app.open(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	addTradeCommands(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addSizeCommand(rootCmd, app)
	addExportCommand(rootCmd, app)
	addStrategyCommands(rootCmd, app)

	return rootCmd
}

// open loads the persisted collections into the in-memory stores.
func (a *App) open(ctx context.Context) error {
	db, err := store.NewSQLiteStore(a.Config.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("opening journal database: %w", err)
	}
	a.DB = db

	trades, err := db.LoadTrades(ctx)
	if err != nil {
		return fmt.Errorf("loading trades: %w", err)
	}
	strategies, err := db.LoadStrategies(ctx)
	if err != nil {
		return fmt.Errorf("loading strategies: %w", err)
	}

	a.Trades = journal.NewTradeStore(trades, a.Logger)
	a.Strategies = journal.NewStrategyStore(strategies, a.Logger)
	return nil
}

// persist writes the current snapshots back to the database.
func (a *App) persist(ctx context.Context) error {
	if err := a.DB.SaveTrades(ctx, a.Trades.List()); err != nil {
		return fmt.Errorf("saving trades: %w", err)
	}
	if err := a.DB.SaveStrategies(ctx, a.Strategies.List()); err != nil {
		return fmt.Errorf("saving strategies: %w", err)
	}
	return nil
}

func (a *App) close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close database")
		}
	}
}

// cmdContext returns a bounded context for a command invocation.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
