// Package store provides the durable persistence boundary for the journal.
// The in-memory stores stay canonical; this adapter only feeds them their
// initial collection and persists snapshots on demand.
package store

import (
	"context"

	"tradejournal/internal/models"
)

// JournalStore defines the persistence interface for journal data.
type JournalStore interface {
	LoadTrades(ctx context.Context) ([]models.Trade, error)
	SaveTrades(ctx context.Context, trades []models.Trade) error
	LoadStrategies(ctx context.Context) ([]models.Strategy, error)
	SaveStrategies(ctx context.Context, strategies []models.Strategy) error
	Close() error
}
