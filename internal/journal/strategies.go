package journal

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/models"
)

// StrategyInput is the caller-supplied payload for creating or updating a
// strategy. The performance snapshot fields are ignored on create (new
// strategies start at zero) and applied verbatim on update after clamping.
type StrategyInput struct {
	Name        string
	Description string
	Tags        []string
	Status      string
	WinRate     float64
	TradeCount  int
	XP          int
}

// StrategyStore holds the sole canonical copy of the strategy collection.
// It is independent of the trade ledger; the snapshot stats are maintained
// by the caller, not joined against trades.
type StrategyStore struct {
	mu         sync.RWMutex
	strategies []models.Strategy
	logger     zerolog.Logger
}

// NewStrategyStore creates a store seeded with an initial collection.
func NewStrategyStore(initial []models.Strategy, logger zerolog.Logger) *StrategyStore {
	strategies := make([]models.Strategy, len(initial))
	copy(strategies, initial)
	return &StrategyStore{
		strategies: strategies,
		logger:     logger,
	}
}

// Create adds a strategy with a fresh id and a zeroed performance snapshot.
func (s *StrategyStore) Create(input StrategyInput) (models.Strategy, error) {
	if input.Name == "" {
		return models.Strategy{}, apperrors.NewInvalidInputError("name", input.Name, "must not be empty")
	}

	strategy := models.Strategy{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Tags:        normalizeTags(input.Tags),
		Status:      models.NormalizeStrategyStatus(input.Status),
		WinRate:     0,
		TradeCount:  0,
		XP:          0,
	}

	s.mu.Lock()
	s.strategies = append([]models.Strategy{strategy}, s.strategies...)
	s.mu.Unlock()

	s.logger.Info().
		Str("strategy_id", strategy.ID).
		Str("name", strategy.Name).
		Msg("Strategy created")
	return strategy, nil
}

// Update replaces a strategy's fields, including the caller-supplied
// performance snapshot. XP is clamped to [0,100]; a negative trade count or
// out-of-range win rate is rejected.
func (s *StrategyStore) Update(id string, input StrategyInput) (models.Strategy, error) {
	if input.Name == "" {
		return models.Strategy{}, apperrors.NewInvalidInputError("name", input.Name, "must not be empty")
	}
	if input.TradeCount < 0 {
		return models.Strategy{}, apperrors.NewInvalidInputError("tradeCount", input.TradeCount, "must not be negative")
	}
	if input.WinRate < 0 || input.WinRate > 100 {
		return models.Strategy{}, apperrors.NewInvalidInputError("winRate", input.WinRate, "must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Strategy{}, apperrors.NewNotFoundError("strategy", id)
	}

	strategy := models.Strategy{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Tags:        normalizeTags(input.Tags),
		Status:      models.NormalizeStrategyStatus(input.Status),
		WinRate:     input.WinRate,
		TradeCount:  input.TradeCount,
		XP:          models.ClampXP(input.XP),
	}
	s.strategies[idx] = strategy

	s.logger.Info().
		Str("strategy_id", id).
		Str("name", strategy.Name).
		Int("xp", strategy.XP).
		Msg("Strategy updated")
	return strategy, nil
}

// Delete removes a strategy by id, failing with NotFound when absent.
func (s *StrategyStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return apperrors.NewNotFoundError("strategy", id)
	}
	s.strategies = append(s.strategies[:idx], s.strategies[idx+1:]...)

	s.logger.Info().Str("strategy_id", id).Msg("Strategy deleted")
	return nil
}

// Get returns a single strategy by id.
func (s *StrategyStore) Get(id string) (models.Strategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Strategy{}, apperrors.NewNotFoundError("strategy", id)
	}
	return cloneStrategy(s.strategies[idx]), nil
}

// List returns a copy-on-read snapshot of the collection.
func (s *StrategyStore) List() []models.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.Strategy, len(s.strategies))
	for i, st := range s.strategies {
		snapshot[i] = cloneStrategy(st)
	}
	return snapshot
}

// LevelOf derives the mastery level from a strategy's XP. Pure; usable by
// any renderer without touching the store.
func LevelOf(s models.Strategy) int {
	return s.Level()
}

func (s *StrategyStore) indexOf(id string) int {
	for i, st := range s.strategies {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// cloneStrategy deep-copies the tag slice so snapshots share no storage
// with the canonical collection.
func cloneStrategy(s models.Strategy) models.Strategy {
	out := s
	out.Tags = append([]string(nil), s.Tags...)
	return out
}

// normalizeTags copies tags, dropping empties and duplicates while keeping
// first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
