package metrics

import (
	"math"
	"testing"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/models"
)

func TestComputeOutcomeLong(t *testing.T) {
	out, err := ComputeOutcome(models.Long, "34200", "34850", "33800", "1")
	if err != nil {
		t.Fatalf("ComputeOutcome failed: %v", err)
	}
	if out.PnL != 650 {
		t.Errorf("PnL = %v, want 650", out.PnL)
	}
	if math.Abs(out.PnLPercent-1.9005847953216375) > 1e-9 {
		t.Errorf("PnLPercent = %v, want ~1.90", out.PnLPercent)
	}
	if out.Status != models.StatusWin {
		t.Errorf("Status = %v, want WIN", out.Status)
	}
}

func TestComputeOutcomeShort(t *testing.T) {
	out, err := ComputeOutcome(models.Short, "245.50", "248.00", "243.00", "100")
	if err != nil {
		t.Fatalf("ComputeOutcome failed: %v", err)
	}
	if math.Abs(out.PnL-(-250)) > 1e-9 {
		t.Errorf("PnL = %v, want -250", out.PnL)
	}
	if math.Abs(out.RiskReward-1.0) > 1e-9 {
		t.Errorf("RiskReward = %v, want 1.0", out.RiskReward)
	}
	if out.Status != models.StatusLoss {
		t.Errorf("Status = %v, want LOSS", out.Status)
	}
}

func TestComputeOutcomeBreakeven(t *testing.T) {
	out, err := ComputeOutcome(models.Long, "100", "100", "95", "10")
	if err != nil {
		t.Fatalf("ComputeOutcome failed: %v", err)
	}
	if out.PnL != 0 {
		t.Errorf("PnL = %v, want 0", out.PnL)
	}
	if out.Status != models.StatusBreakeven {
		t.Errorf("Status = %v, want BREAKEVEN", out.Status)
	}
}

func TestComputeOutcomeThousandsSeparators(t *testing.T) {
	out, err := ComputeOutcome(models.Long, "34,200", "34,850", "33,800", "1")
	if err != nil {
		t.Fatalf("ComputeOutcome failed on comma input: %v", err)
	}
	if out.PnL != 650 {
		t.Errorf("PnL = %v, want 650", out.PnL)
	}
}

func TestComputeOutcomeInvalidInput(t *testing.T) {
	cases := []struct {
		name                   string
		entry, exit, stop, qty string
	}{
		{"unparseable entry", "abc", "100", "95", "1"},
		{"empty exit", "100", "", "95", "1"},
		{"infinite stop", "100", "105", "Inf", "1"},
		{"zero quantity", "100", "105", "95", "0"},
		{"negative quantity", "100", "105", "95", "-2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeOutcome(models.Long, tc.entry, tc.exit, tc.stop, tc.qty)
			if !apperrors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("error = %v, want InvalidInput", err)
			}
		})
	}
}

func TestComputeOutcomeZeroEntry(t *testing.T) {
	_, err := ComputeOutcome(models.Long, "0", "105", "95", "1")
	if !apperrors.Is(err, apperrors.ErrDivisionByZero) {
		t.Errorf("error = %v, want DivisionByZero", err)
	}
}

func TestComputeOutcomeZeroStopDistance(t *testing.T) {
	out, err := ComputeOutcome(models.Long, "100", "110", "100", "1")
	if err != nil {
		t.Fatalf("ComputeOutcome failed: %v", err)
	}
	if out.RiskReward != 0 {
		t.Errorf("RiskReward = %v, want 0 when entry == stop", out.RiskReward)
	}
}

func TestPreviewOutcomeNeverFails(t *testing.T) {
	out := PreviewOutcome(models.Long, "not a number", "", "???", "-1")
	if out.PnL != 0 || out.PnLPercent != 0 || out.RiskReward != 0 {
		t.Errorf("preview of invalid input = %+v, want zeroed metrics", out)
	}
}

func TestSizePosition(t *testing.T) {
	result := SizePosition(10000, 1, 34250, 33800)
	if result.RiskAmount != 100 {
		t.Errorf("RiskAmount = %v, want 100", result.RiskAmount)
	}
	if result.StopDistance != 450 {
		t.Errorf("StopDistance = %v, want 450", result.StopDistance)
	}
	if math.Abs(result.Units-100.0/450.0) > 1e-9 {
		t.Errorf("Units = %v, want ~0.222", result.Units)
	}
}

func TestSizePositionDegenerate(t *testing.T) {
	cases := []struct {
		name                       string
		balance, risk, entry, stop float64
	}{
		{"zero stop distance", 10000, 1, 100, 100},
		{"negative balance", -5000, 1, 100, 95},
		{"negative risk", 10000, -1, 100, 95},
		{"nan entry", 10000, 1, math.NaN(), 95},
		{"infinite stop", 10000, 1, 100, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := SizePosition(tc.balance, tc.risk, tc.entry, tc.stop)
			if result.Units != 0 {
				t.Errorf("Units = %v, want 0", result.Units)
			}
		})
	}
}
