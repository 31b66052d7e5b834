package journal

import (
	"testing"

	"github.com/rs/zerolog"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/models"
)

func newStrategyTestStore() *StrategyStore {
	return NewStrategyStore(nil, zerolog.Nop())
}

func TestStrategyCreateStartsAtZero(t *testing.T) {
	s := newStrategyTestStore()

	strategy, err := s.Create(StrategyInput{
		Name:        "Silver Bullet",
		Description: "NY AM session liquidity run",
		Tags:        []string{"ict", "intraday", "ict"},
		Status:      "Testing",
		WinRate:     99, // ignored on create
		XP:          50, // ignored on create
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if strategy.WinRate != 0 || strategy.TradeCount != 0 || strategy.XP != 0 {
		t.Errorf("new strategy snapshot = %+v, want zeroed", strategy)
	}
	if strategy.Status != models.StrategyTesting {
		t.Errorf("Status = %v, want Testing", strategy.Status)
	}
	if len(strategy.Tags) != 2 {
		t.Errorf("Tags = %v, want duplicates dropped", strategy.Tags)
	}
	if LevelOf(strategy) != 1 {
		t.Errorf("Level = %d, want 1 for a new strategy", LevelOf(strategy))
	}
}

func TestStrategyCreateRequiresName(t *testing.T) {
	s := newStrategyTestStore()
	if _, err := s.Create(StrategyInput{}); !apperrors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("error = %v, want InvalidInput", err)
	}
}

func TestStrategyUpdateClampsXP(t *testing.T) {
	s := newStrategyTestStore()
	created, _ := s.Create(StrategyInput{Name: "Breakout"})

	updated, err := s.Update(created.ID, StrategyInput{
		Name:       "Breakout",
		WinRate:    61,
		TradeCount: 23,
		XP:         150,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.XP != models.MaxXP {
		t.Errorf("XP = %d, want clamp to %d", updated.XP, models.MaxXP)
	}
	if LevelOf(updated) != 6 {
		t.Errorf("Level = %d, want 6 at max XP", LevelOf(updated))
	}
}

func TestStrategyUpdateRejectsBadSnapshot(t *testing.T) {
	s := newStrategyTestStore()
	created, _ := s.Create(StrategyInput{Name: "Breakout"})

	cases := []StrategyInput{
		{Name: "Breakout", WinRate: -1},
		{Name: "Breakout", WinRate: 101},
		{Name: "Breakout", TradeCount: -5},
		{Name: ""},
	}
	for _, input := range cases {
		if _, err := s.Update(created.ID, input); !apperrors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("Update(%+v) error = %v, want InvalidInput", input, err)
		}
	}
}

func TestStrategyDeleteNotFound(t *testing.T) {
	s := newStrategyTestStore()
	created, _ := s.Create(StrategyInput{Name: "Gap Fill"})

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(created.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second delete error = %v, want NotFound", err)
	}
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{19, 1},
		{20, 2},
		{39, 2},
		{40, 3},
		{85, 5},
		{99, 5},
		{100, 6},
		{-10, 1}, // clamped
		{250, 6}, // clamped
	}
	for _, tc := range cases {
		s := models.Strategy{XP: tc.xp}
		if got := s.Level(); got != tc.level {
			t.Errorf("Level(xp=%d) = %d, want %d", tc.xp, got, tc.level)
		}
	}
}

func TestStrategySnapshotIsolation(t *testing.T) {
	s := newStrategyTestStore()
	s.Create(StrategyInput{Name: "Supply Zone", Tags: []string{"swing"}})

	snapshot := s.List()
	snapshot[0].Tags[0] = "MUTATED"

	fresh := s.List()
	if fresh[0].Tags[0] == "MUTATED" {
		t.Error("mutating snapshot tags leaked into the store")
	}
}
