package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradejournal/internal/models"
)

// SQLiteStore implements JournalStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed journal store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables. The seq column preserves the
// most-recent-first ordering of the in-memory collection across restarts.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		pair TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price TEXT NOT NULL,
		exit_price TEXT NOT NULL,
		stop_loss TEXT NOT NULL,
		quantity TEXT NOT NULL,
		pnl REAL NOT NULL,
		pnl_percent REAL NOT NULL,
		risk_reward REAL NOT NULL,
		status TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		setup TEXT NOT NULL,
		rationale TEXT,
		screenshot TEXT,
		confidence INTEGER NOT NULL,
		mood TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_setup ON trades(setup);

	CREATE TABLE IF NOT EXISTS strategies (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		tags TEXT,
		status TEXT NOT NULL,
		win_rate REAL NOT NULL,
		trade_count INTEGER NOT NULL,
		xp INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadTrades returns the persisted trade collection in its stored order.
func (s *SQLiteStore) LoadTrades(ctx context.Context) ([]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pair, direction, entry_price, exit_price, stop_loss, quantity,
		       pnl, pnl_percent, risk_reward, status, date, time, setup,
		       rationale, screenshot, confidence, mood
		FROM trades
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var rationale, screenshot sql.NullString
		if err := rows.Scan(
			&t.ID, &t.Pair, &t.Direction, &t.EntryPrice, &t.ExitPrice,
			&t.StopLoss, &t.Quantity, &t.PnL, &t.PnLPercent, &t.RiskReward,
			&t.Status, &t.Date, &t.Time, &t.Setup,
			&rationale, &screenshot, &t.Confidence, &t.Mood,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		t.Rationale = rationale.String
		t.Screenshot = screenshot.String
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// SaveTrades replaces the persisted collection with the given snapshot.
func (s *SQLiteStore) SaveTrades(ctx context.Context, trades []models.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades (id, seq, pair, direction, entry_price, exit_price,
			stop_loss, quantity, pnl, pnl_percent, risk_reward, status,
			date, time, setup, rationale, screenshot, confidence, mood)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range trades {
		if _, err := stmt.ExecContext(ctx,
			t.ID, i, t.Pair, string(t.Direction), t.EntryPrice, t.ExitPrice,
			t.StopLoss, t.Quantity, t.PnL, t.PnLPercent, t.RiskReward,
			string(t.Status), t.Date, t.Time, t.Setup, t.Rationale,
			t.Screenshot, t.Confidence, string(t.Mood),
		); err != nil {
			return fmt.Errorf("failed to insert trade %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// LoadStrategies returns the persisted strategy collection in stored order.
func (s *SQLiteStore) LoadStrategies(ctx context.Context) ([]models.Strategy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, tags, status, win_rate, trade_count, xp
		FROM strategies
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategies: %w", err)
	}
	defer rows.Close()

	var strategies []models.Strategy
	for rows.Next() {
		var st models.Strategy
		var description, tags sql.NullString
		if err := rows.Scan(
			&st.ID, &st.Name, &description, &tags, &st.Status,
			&st.WinRate, &st.TradeCount, &st.XP,
		); err != nil {
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		st.Description = description.String
		if tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &st.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags for %s: %w", st.ID, err)
			}
		}
		strategies = append(strategies, st)
	}
	return strategies, rows.Err()
}

// SaveStrategies replaces the persisted collection with the given snapshot.
func (s *SQLiteStore) SaveStrategies(ctx context.Context, strategies []models.Strategy) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM strategies`); err != nil {
		return fmt.Errorf("failed to clear strategies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO strategies (id, seq, name, description, tags, status,
			win_rate, trade_count, xp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, st := range strategies {
		tags, err := json.Marshal(st.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags for %s: %w", st.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			st.ID, i, st.Name, st.Description, string(tags),
			string(st.Status), st.WinRate, st.TradeCount, st.XP,
		); err != nil {
			return fmt.Errorf("failed to insert strategy %s: %w", st.ID, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
