// Package journal owns the canonical trade and strategy collections and
// enforces their identity and invariant rules.
package journal

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/metrics"
	"tradejournal/internal/models"
)

// TradeStore holds the sole canonical copy of the trade collection.
// Snapshots returned by List are copies; mutating them never affects the
// store. Operations are synchronous and run to completion.
type TradeStore struct {
	mu     sync.RWMutex
	trades []models.Trade
	logger zerolog.Logger
}

// NewTradeStore creates a store seeded with an initial collection, most
// recent first. The slice is copied; the caller keeps no shared reference.
func NewTradeStore(initial []models.Trade, logger zerolog.Logger) *TradeStore {
	trades := make([]models.Trade, len(initial))
	copy(trades, initial)
	return &TradeStore{
		trades: trades,
		logger: logger,
	}
}

// Create finalizes a raw input into a Trade with a fresh id and inserts it
// at the head of the collection. Derived metrics are computed in finalize
// mode, so unparseable numeric fields fail with InvalidInput.
func (s *TradeStore) Create(input models.RawTradeInput) (models.Trade, error) {
	trade, err := s.finalize(uuid.NewString(), input, "")
	if err != nil {
		return models.Trade{}, err
	}

	s.mu.Lock()
	s.trades = append([]models.Trade{trade}, s.trades...)
	s.mu.Unlock()

	s.logger.Info().
		Str("trade_id", trade.ID).
		Str("pair", trade.Pair).
		Str("status", string(trade.Status)).
		Float64("pnl", trade.PnL).
		Msg("Trade logged")
	return trade, nil
}

// Update replaces all raw fields of an existing trade and recomputes the
// derived metrics from scratch. The id is preserved, as is the trade's
// position in the collection.
func (s *TradeStore) Update(id string, input models.RawTradeInput) (models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Trade{}, apperrors.NewNotFoundError("trade", id)
	}

	trade, err := s.finalize(id, input, s.trades[idx].Setup)
	if err != nil {
		return models.Trade{}, err
	}
	s.trades[idx] = trade

	s.logger.Info().
		Str("trade_id", id).
		Str("pair", trade.Pair).
		Msg("Trade updated")
	return trade, nil
}

// Upsert replays a fully-formed trade: an existing id behaves as Update,
// an unknown id behaves as Create while preserving the caller-supplied id.
// This makes external save actions idempotent.
func (s *TradeStore) Upsert(trade models.Trade) (models.Trade, error) {
	input := models.RawTradeInput{
		Pair:       trade.Pair,
		Direction:  string(trade.Direction),
		EntryPrice: trade.EntryPrice,
		ExitPrice:  trade.ExitPrice,
		StopLoss:   trade.StopLoss,
		Quantity:   trade.Quantity,
		Date:       trade.Date,
		Time:       trade.Time,
		Setup:      trade.Setup,
		Rationale:  trade.Rationale,
		Screenshot: trade.Screenshot,
		Confidence: trade.Confidence,
		Mood:       string(trade.Mood),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(trade.ID); idx >= 0 {
		updated, err := s.finalize(trade.ID, input, s.trades[idx].Setup)
		if err != nil {
			return models.Trade{}, err
		}
		s.trades[idx] = updated
		return updated, nil
	}

	created, err := s.finalize(trade.ID, input, "")
	if err != nil {
		return models.Trade{}, err
	}
	s.trades = append([]models.Trade{created}, s.trades...)
	return created, nil
}

// Delete removes a trade by id. Deleting an absent id, including a second
// delete of the same id, fails with NotFound.
func (s *TradeStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return apperrors.NewNotFoundError("trade", id)
	}
	s.trades = append(s.trades[:idx], s.trades[idx+1:]...)

	s.logger.Info().Str("trade_id", id).Msg("Trade deleted")
	return nil
}

// Get returns a single trade by id.
func (s *TradeStore) Get(id string) (models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Trade{}, apperrors.NewNotFoundError("trade", id)
	}
	return s.trades[idx], nil
}

// List returns a copy-on-read snapshot of the collection, most recent
// first. Callers may aggregate or sort it freely.
func (s *TradeStore) List() []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.Trade, len(s.trades))
	copy(snapshot, s.trades)
	return snapshot
}

// Len returns the number of trades held.
func (s *TradeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}

// indexOf returns the position of a trade id, or -1. Caller holds the lock.
func (s *TradeStore) indexOf(id string) int {
	for i, t := range s.trades {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// finalize builds a complete Trade from raw input. The setup label is
// resolved as: explicit input, first #tag of the rationale, the previous
// setup (on update), then the default label.
func (s *TradeStore) finalize(id string, input models.RawTradeInput, previousSetup string) (models.Trade, error) {
	direction := models.NormalizeDirection(input.Direction)

	outcome, err := metrics.ComputeOutcome(direction, input.EntryPrice, input.ExitPrice, input.StopLoss, input.Quantity)
	if err != nil {
		return models.Trade{}, err
	}

	setup := input.Setup
	if setup == "" {
		setup = FirstTag(input.Rationale)
	}
	if setup == "" {
		setup = previousSetup
	}
	if setup == "" {
		setup = DefaultSetup
	}

	return models.Trade{
		ID:         id,
		Pair:       input.Pair,
		Direction:  direction,
		EntryPrice: input.EntryPrice,
		ExitPrice:  input.ExitPrice,
		StopLoss:   input.StopLoss,
		Quantity:   input.Quantity,
		PnL:        outcome.PnL,
		PnLPercent: outcome.PnLPercent,
		RiskReward: outcome.RiskReward,
		Status:     outcome.Status,
		Date:       input.Date,
		Time:       input.Time,
		Setup:      setup,
		Rationale:  input.Rationale,
		Screenshot: input.Screenshot,
		Confidence: clampConfidence(input.Confidence),
		Mood:       models.NormalizeMood(input.Mood),
	}, nil
}

// clampConfidence bounds confidence to [1,5]. Zero means the field was
// absent (legacy data) and defaults to the midpoint.
func clampConfidence(c int) int {
	if c == 0 {
		return 3
	}
	if c < 1 {
		return 1
	}
	if c > 5 {
		return 5
	}
	return c
}
