package models

// StrategyStatus represents the evaluation stage of a strategy.
type StrategyStatus string

const (
	StrategyActive   StrategyStatus = "Active"
	StrategyTesting  StrategyStatus = "Testing"
	StrategyArchived StrategyStatus = "Archived"
)

// NormalizeStrategyStatus maps free-form input to a known status,
// defaulting to Active.
func NormalizeStrategyStatus(s string) StrategyStatus {
	switch StrategyStatus(s) {
	case StrategyActive, StrategyTesting, StrategyArchived:
		return StrategyStatus(s)
	}
	return StrategyActive
}

// Strategy is a named trading setup under evaluation. The performance
// snapshot (WinRate, TradeCount, XP) is maintained by the caller; it is not
// derived from the trade ledger.
type Strategy struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	Status      StrategyStatus
	WinRate     float64 // 0-100
	TradeCount  int
	XP          int // 0-100, mastery progress
}

// MaxXP is the upper bound of the mastery progress bar.
const MaxXP = 100

// ClampXP bounds mastery progress to [0, MaxXP].
func ClampXP(xp int) int {
	if xp < 0 {
		return 0
	}
	if xp > MaxXP {
		return MaxXP
	}
	return xp
}

// Level derives the mastery level from XP: one level per 20 XP, starting at 1.
func (s Strategy) Level() int {
	return ClampXP(s.XP)/20 + 1
}
