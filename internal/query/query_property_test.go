package query

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tradejournal/internal/models"
)

func genTrade() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("BTC/USD", "ETH/USD", "TSLA", "AAPL", "EUR/USD"),
		gen.OneConstOf("SilverBullet", "Breakout", "Manual Entry"),
		gen.Float64Range(-5000, 5000),
		gen.IntRange(1, 28),
	).Map(func(values []interface{}) models.Trade {
		pnl := values[2].(float64)
		status := models.StatusBreakeven
		if pnl > 0 {
			status = models.StatusWin
		} else if pnl < 0 {
			status = models.StatusLoss
		}
		day := time.Date(2023, time.October, values[3].(int), 0, 0, 0, 0, time.UTC)
		return models.Trade{
			Pair:   values[0].(string),
			Setup:  values[1].(string),
			PnL:    pnl,
			Status: status,
			Date:   day.Format(models.DateLayout),
		}
	})
}

func genTrades() gopter.Gen {
	return gen.SliceOf(genTrade())
}

// Property: the summary counts always reconcile: wins + losses never exceed
// the total, the win rate stays within [0, 100], and total P&L equals gross
// profit minus gross loss.
func TestProperty_SummaryReconciles(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("counts, win rate and pnl identities hold", prop.ForAll(
		func(trades []models.Trade) bool {
			s := Summarize(trades)
			if s.Wins+s.Losses > s.Count {
				return false
			}
			if s.WinRate < 0 || s.WinRate > 100 {
				return false
			}
			return math.Abs(s.TotalPnL-(s.GrossProfit-s.GrossLoss)) <= 1e-6
		},
		genTrades(),
	))

	properties.TestingRun(t)
}

// Property: filtering never invents trades: every filtered trade appears in
// the input, and an empty criteria returns the input unchanged.
func TestProperty_FilterIsSubset(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	contains := func(trades []models.Trade, needle models.Trade) bool {
		for _, t := range trades {
			if t == needle {
				return true
			}
		}
		return false
	}

	properties.Property("filtered output is a subset of the input", prop.ForAll(
		func(trades []models.Trade, search string) bool {
			for _, tr := range Filter(trades, Criteria{Search: search, Outcome: OutcomeWin}) {
				if !contains(trades, tr) {
					return false
				}
			}
			return true
		},
		genTrades(),
		gen.AlphaString(),
	))

	properties.Property("empty criteria is the identity", prop.ForAll(
		func(trades []models.Trade) bool {
			return len(Filter(trades, Criteria{})) == len(trades)
		},
		genTrades(),
	))

	properties.TestingRun(t)
}

// Property: a calendar over any range covers every day exactly once and its
// buckets sum to the total P&L of the trades inside the range.
func TestProperty_CalendarConservesPnL(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("bucket nets sum to the month total", prop.ForAll(
		func(trades []models.Trade) bool {
			anchor := time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
			buckets := Month(trades, anchor)
			if len(buckets) != 31 {
				return false
			}
			var fromBuckets, fromTrades float64
			for _, b := range buckets {
				fromBuckets += b.NetPnL
			}
			for _, tr := range trades {
				fromTrades += tr.PnL
			}
			return math.Abs(fromBuckets-fromTrades) <= 1e-6
		},
		genTrades(),
	))

	properties.TestingRun(t)
}

// Property: the best streak is never shorter than the current one, and never
// longer than the number of distinct trading days.
func TestProperty_StreakBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("current <= best <= distinct days", prop.ForAll(
		func(trades []models.Trade) bool {
			days := make(map[string]struct{})
			for _, tr := range trades {
				days[tr.Date] = struct{}{}
			}
			r := Streaks(trades)
			return r.Current >= 0 && r.Current <= r.Best && r.Best <= len(days)
		},
		genTrades(),
	))

	properties.TestingRun(t)
}
