package models

// Layouts for the calendar-day and time-of-day buckets carried on a Trade.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Direction indicates which side of the market a trade was taken on.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// TradeStatus is the derived outcome classification of a closed trade.
// It is always a function of the sign of PnL and is never set independently.
type TradeStatus string

const (
	StatusWin       TradeStatus = "WIN"
	StatusLoss      TradeStatus = "LOSS"
	StatusBreakeven TradeStatus = "BREAKEVEN"
)

// Mood captures the trader's emotional state when the trade was taken.
type Mood string

const (
	MoodCalm    Mood = "Calm"
	MoodAnxious Mood = "Anxious"
	MoodGreedy  Mood = "Greedy"
	MoodFearful Mood = "Fearful"
	MoodNeutral Mood = "Neutral"
	MoodExcited Mood = "Excited"
)

// NormalizeMood maps free-form input to a known mood, defaulting to Neutral.
// Legacy records without a mood are treated as Neutral rather than rejected.
func NormalizeMood(s string) Mood {
	switch Mood(s) {
	case MoodCalm, MoodAnxious, MoodGreedy, MoodFearful, MoodNeutral, MoodExcited:
		return Mood(s)
	}
	return MoodNeutral
}

// NormalizeDirection maps free-form input to a direction. Anything that is
// not recognizably short is treated as long.
func NormalizeDirection(s string) Direction {
	switch s {
	case "SHORT", "short", "Short", "SELL", "sell":
		return Short
	}
	return Long
}

// Trade is a closed position record. Raw price fields keep their textual
// form as entered; the derived fields (PnL, PnLPercent, RiskReward, Status)
// are recomputed from the raw fields on every write and must not be edited
// directly.
type Trade struct {
	ID         string      `csv:"id"`
	Pair       string      `csv:"pair"`
	Direction  Direction   `csv:"type"`
	EntryPrice string      `csv:"entry_price"`
	ExitPrice  string      `csv:"exit_price"`
	StopLoss   string      `csv:"stop_loss"`
	Quantity   string      `csv:"quantity"`
	PnL        float64     `csv:"pnl"`
	PnLPercent float64     `csv:"pnl_percent"`
	RiskReward float64     `csv:"risk_reward"`
	Status     TradeStatus `csv:"status"`
	Date       string      `csv:"date"`
	Time       string      `csv:"time"`
	Setup      string      `csv:"setup"`
	Rationale  string      `csv:"rationale"`
	Screenshot string      `csv:"screenshot"`
	Confidence int         `csv:"confidence"`
	Mood       Mood        `csv:"mood"`
}

// RawTradeInput is the ingestion-boundary record supplied by a form or CLI.
// All fields are strings or small primitives; numeric parsing and validation
// happen in the metrics calculator, not here.
type RawTradeInput struct {
	Pair       string
	Direction  string
	EntryPrice string
	ExitPrice  string
	StopLoss   string
	Quantity   string
	Date       string
	Time       string
	Setup      string
	Rationale  string
	Screenshot string
	Confidence int
	Mood       string
}
