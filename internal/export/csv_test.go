package export

import (
	"strings"
	"testing"

	"tradejournal/internal/models"
)

func exportSample() []models.Trade {
	return []models.Trade{
		{
			ID:         "t1",
			Pair:       "BTC/USD",
			Direction:  models.Long,
			Status:     models.StatusWin,
			PnL:        1200,
			Date:       "2023-10-24",
			Setup:      "SilverBullet",
			EntryPrice: "34200.00",
			ExitPrice:  "35400.00",
			Rationale:  `Retest held, "textbook" entry`,
		},
		{
			ID:         "t2",
			Pair:       "TSLA",
			Direction:  models.Short,
			Status:     models.StatusLoss,
			PnL:        -250,
			Date:       "2023-10-23",
			Setup:      "Breakout",
			EntryPrice: "245.50",
			ExitPrice:  "248.00",
			Rationale:  "stopped out, news spike",
		},
	}
}

func TestMarshalCSVHeaderAndOrder(t *testing.T) {
	out, err := MarshalCSV(exportSample())
	if err != nil {
		t.Fatalf("MarshalCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "id,pair,type,status,pnl,date,setup,entryPrice,exitPrice,rationale" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "t1,BTC/USD,LONG,WIN,1200,") {
		t.Errorf("first row = %q, want snapshot order preserved", lines[1])
	}
	if !strings.HasPrefix(lines[2], "t2,TSLA,SHORT,LOSS,-250,") {
		t.Errorf("second row = %q", lines[2])
	}
}

func TestMarshalCSVEscapesRationale(t *testing.T) {
	out, err := MarshalCSV(exportSample())
	if err != nil {
		t.Fatalf("MarshalCSV failed: %v", err)
	}
	// Embedded quotes double, and the field wraps in quotes.
	if !strings.Contains(out, `"Retest held, ""textbook"" entry"`) {
		t.Errorf("rationale not CSV-escaped:\n%s", out)
	}
}

func TestWriteCSVEmptySnapshot(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if got := strings.TrimSpace(sb.String()); got != "id,pair,type,status,pnl,date,setup,entryPrice,exitPrice,rationale" {
		t.Errorf("empty export = %q, want header only", got)
	}
}
