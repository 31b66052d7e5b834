// Package query is the aggregation engine: pure functions over a trade
// snapshot that produce filtered views, summary KPIs, calendar buckets and
// heatmap classifications. It holds no state of its own.
package query

import (
	"sort"
	"strings"
	"time"

	"tradejournal/internal/models"
)

// OutcomeFilter restricts a result set by trade status.
type OutcomeFilter string

const (
	OutcomeAll  OutcomeFilter = "all"
	OutcomeWin  OutcomeFilter = "win"
	OutcomeLoss OutcomeFilter = "loss"
)

// Criteria describes a filtered view over the journal.
type Criteria struct {
	Search  string
	Outcome OutcomeFilter
}

// Filter returns the trades matching the criteria. Search matches
// case-insensitively as a substring of the pair or the setup tag. Breakeven
// trades belong to neither the win nor the loss bucket.
func Filter(trades []models.Trade, c Criteria) []models.Trade {
	search := strings.ToLower(c.Search)
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Pair), search) &&
			!strings.Contains(strings.ToLower(t.Setup), search) {
			continue
		}
		switch c.Outcome {
		case OutcomeWin:
			if t.Status != models.StatusWin {
				continue
			}
		case OutcomeLoss:
			if t.Status != models.StatusLoss {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// NoLossProfitFactor is the sentinel profit factor reported when a trade
// set has gross profit but no losing trades. A finite sentinel keeps the
// value renderable where a true ratio would be undefined.
const NoLossProfitFactor = 100.0

// Summary holds the aggregate KPIs of a trade set.
type Summary struct {
	Count        int
	Wins         int
	Losses       int
	WinRate      float64
	TotalPnL     float64
	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64
}

// Summarize computes the KPIs of a trade set. An empty set yields all
// zeros, never NaN.
func Summarize(trades []models.Trade) Summary {
	var s Summary
	s.Count = len(trades)
	for _, t := range trades {
		s.TotalPnL += t.PnL
		switch t.Status {
		case models.StatusWin:
			s.Wins++
			s.GrossProfit += t.PnL
		case models.StatusLoss:
			s.Losses++
			s.GrossLoss += -t.PnL
		}
	}
	if s.Count > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Count) * 100
	}
	switch {
	case s.GrossLoss > 0:
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	case s.GrossProfit > 0:
		s.ProfitFactor = NoLossProfitFactor
	}
	return s
}

// ByDate returns the trades whose day bucket matches the given date
// (models.DateLayout granularity).
func ByDate(trades []models.Trade, date string) []models.Trade {
	out := make([]models.Trade, 0)
	for _, t := range trades {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// DayBucket is one calendar cell: the trades of a single day and their net
// P&L. Days without trades carry an empty list and zero net.
type DayBucket struct {
	Date   string
	Trades []models.Trade
	NetPnL float64
}

// Calendar buckets trades per calendar day over [from, to] inclusive,
// one bucket per day in chronological order, empty days included.
func Calendar(trades []models.Trade, from, to time.Time) []DayBucket {
	byDay := make(map[string][]models.Trade)
	for _, t := range trades {
		byDay[t.Date] = append(byDay[t.Date], t)
	}

	var buckets []DayBucket
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(models.DateLayout)
		dayTrades := byDay[key]
		net := 0.0
		for _, t := range dayTrades {
			net += t.PnL
		}
		if dayTrades == nil {
			dayTrades = []models.Trade{}
		}
		buckets = append(buckets, DayBucket{
			Date:   key,
			Trades: dayTrades,
			NetPnL: net,
		})
	}
	return buckets
}

// Month returns the calendar for the month containing the given date.
func Month(trades []models.Trade, anchor time.Time) []DayBucket {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)
	return Calendar(trades, first, last)
}

// HeatmapStatus is the per-day cell classification of the consistency
// heatmap.
type HeatmapStatus string

const (
	HeatmapNone HeatmapStatus = "none"
	HeatmapWin  HeatmapStatus = "win"
	HeatmapLoss HeatmapStatus = "loss"
)

// HeatmapClassify maps a day bucket to its heatmap cell: none without
// trades, win when the day closed flat or positive, loss otherwise.
func HeatmapClassify(day DayBucket) HeatmapStatus {
	if len(day.Trades) == 0 {
		return HeatmapNone
	}
	if day.NetPnL >= 0 {
		return HeatmapWin
	}
	return HeatmapLoss
}

// StreakResult reports consecutive winning trading days.
type StreakResult struct {
	Current int
	Best    int
}

// Streaks walks the trading days in chronological order and counts runs of
// consecutive winning days. Days without trades do not break a run; only a
// losing day does. Current is the run ending at the most recent trading day.
func Streaks(trades []models.Trade) StreakResult {
	byDay := make(map[string]float64)
	for _, t := range trades {
		byDay[t.Date] += t.PnL
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	var result StreakResult
	run := 0
	for _, d := range days {
		if byDay[d] >= 0 {
			run++
			if run > result.Best {
				result.Best = run
			}
		} else {
			run = 0
		}
	}
	result.Current = run
	return result
}

// SetupSummary aggregates the KPIs of every trade sharing a setup tag.
type SetupSummary struct {
	Setup string
	Summary
}

// BySetup groups trades by setup tag and summarizes each group, ordered by
// total P&L descending so the strongest edge lists first.
func BySetup(trades []models.Trade) []SetupSummary {
	groups := make(map[string][]models.Trade)
	for _, t := range trades {
		groups[t.Setup] = append(groups[t.Setup], t)
	}

	out := make([]SetupSummary, 0, len(groups))
	for setup, group := range groups {
		out = append(out, SetupSummary{
			Setup:   setup,
			Summary: Summarize(group),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPnL != out[j].TotalPnL {
			return out[i].TotalPnL > out[j].TotalPnL
		}
		return out[i].Setup < out[j].Setup
	})
	return out
}

// BestPerformer returns the strategy with the highest win rate. The second
// return is false when the collection is empty.
func BestPerformer(strategies []models.Strategy) (models.Strategy, bool) {
	if len(strategies) == 0 {
		return models.Strategy{}, false
	}
	best := strategies[0]
	for _, s := range strategies[1:] {
		if s.WinRate > best.WinRate {
			best = s
		}
	}
	return best, true
}
