// Package metrics computes per-trade outcome metrics from raw entry values.
package metrics

import (
	"math"
	"strconv"
	"strings"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/models"
)

// Outcome holds the derived financial result of a closed trade.
type Outcome struct {
	PnL        float64
	PnLPercent float64
	RiskReward float64
	Status     models.TradeStatus
}

// parseDecimal parses a raw form value into a finite float. Thousands
// separators are tolerated since values arrive as typed text.
func parseDecimal(field, raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, apperrors.NewInvalidInputError(field, raw, "not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewInvalidInputError(field, raw, "not a finite number")
	}
	return v, nil
}

// StatusOf classifies a trade by the sign of its PnL. Zero is breakeven,
// which downstream win/loss filters exclude from both buckets.
func StatusOf(pnl float64) models.TradeStatus {
	switch {
	case pnl > 0:
		return models.StatusWin
	case pnl < 0:
		return models.StatusLoss
	}
	return models.StatusBreakeven
}

// ComputeOutcome derives PnL, ROI and risk:reward from raw trade inputs.
// This is the finalize path used when persisting a trade: unparseable or
// non-finite fields fail with InvalidInput, a zero entry price fails with
// DivisionByZero (ROI is undefined), and quantity must be positive.
func ComputeOutcome(direction models.Direction, entry, exit, stop, quantity string) (Outcome, error) {
	e, err := parseDecimal("entryPrice", entry)
	if err != nil {
		return Outcome{}, err
	}
	x, err := parseDecimal("exitPrice", exit)
	if err != nil {
		return Outcome{}, err
	}
	s, err := parseDecimal("stopLoss", stop)
	if err != nil {
		return Outcome{}, err
	}
	q, err := parseDecimal("quantity", quantity)
	if err != nil {
		return Outcome{}, err
	}
	if q <= 0 {
		return Outcome{}, apperrors.NewInvalidInputError("quantity", quantity, "must be positive")
	}
	if e == 0 {
		return Outcome{}, apperrors.Wrap(apperrors.ErrDivisionByZero, "entry price is zero, ROI undefined")
	}

	var pnl, roi float64
	if direction == models.Short {
		pnl = (e - x) * q
		roi = (e - x) / e * 100
	} else {
		pnl = (x - e) * q
		roi = (x - e) / e * 100
	}

	// An undefined stop is a valid incomplete-entry state, so a zero risk
	// distance yields a ratio of 0 rather than an error.
	rewardDist := math.Abs(x - e)
	riskDist := math.Abs(e - s)
	rr := 0.0
	if riskDist != 0 {
		rr = rewardDist / riskDist
	}

	return Outcome{
		PnL:        pnl,
		PnLPercent: roi,
		RiskReward: rr,
		Status:     StatusOf(pnl),
	}, nil
}

// PreviewOutcome is the live-preview path used while the user is still
// typing. It never fails: any input that would be rejected at finalize time
// produces zeroed metrics instead of blocking the form.
func PreviewOutcome(direction models.Direction, entry, exit, stop, quantity string) Outcome {
	out, err := ComputeOutcome(direction, entry, exit, stop, quantity)
	if err != nil {
		return Outcome{}
	}
	return out
}
