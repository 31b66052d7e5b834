package metrics

import "math"

// SizeResult is the output of the risk-based position size calculation.
type SizeResult struct {
	Units        float64
	RiskAmount   float64
	StopDistance float64
}

// SizePosition derives a recommended position size from account balance,
// percent of account risked, and the entry/stop distance. It is a sizing
// hint, not a persisted value, so it never fails: degenerate inputs
// (non-finite values, negative balance or risk, zero stop distance) yield a
// zeroed result.
func SizePosition(accountBalance, riskPercent, entry, stop float64) SizeResult {
	for _, v := range []float64{accountBalance, riskPercent, entry, stop} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return SizeResult{}
		}
	}
	if accountBalance < 0 || riskPercent < 0 {
		return SizeResult{}
	}

	riskAmount := accountBalance * riskPercent / 100
	stopDistance := math.Abs(entry - stop)

	units := 0.0
	if stopDistance > 0 {
		units = riskAmount / stopDistance
	}

	return SizeResult{
		Units:        units,
		RiskAmount:   riskAmount,
		StopDistance: stopDistance,
	}
}
