// Package export serializes trade collections for the file/report
// boundary.
package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"tradejournal/internal/models"
)

// Record is the flat CSV row exposed at the export boundary. Rationale
// values containing delimiters or quotes are escaped by standard CSV
// quoting on write.
type Record struct {
	ID         string  `csv:"id"`
	Pair       string  `csv:"pair"`
	Type       string  `csv:"type"`
	Status     string  `csv:"status"`
	PnL        float64 `csv:"pnl"`
	Date       string  `csv:"date"`
	Setup      string  `csv:"setup"`
	EntryPrice string  `csv:"entryPrice"`
	ExitPrice  string  `csv:"exitPrice"`
	Rationale  string  `csv:"rationale"`
}

// Records flattens a trade snapshot into export rows, preserving order.
func Records(trades []models.Trade) []Record {
	out := make([]Record, len(trades))
	for i, t := range trades {
		out[i] = Record{
			ID:         t.ID,
			Pair:       t.Pair,
			Type:       string(t.Direction),
			Status:     string(t.Status),
			PnL:        t.PnL,
			Date:       t.Date,
			Setup:      t.Setup,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			Rationale:  t.Rationale,
		}
	}
	return out
}

// WriteCSV writes the trade snapshot as CSV, header row included.
func WriteCSV(w io.Writer, trades []models.Trade) error {
	return gocsv.Marshal(Records(trades), w)
}

// MarshalCSV returns the CSV serialization of a trade snapshot.
func MarshalCSV(trades []models.Trade) (string, error) {
	return gocsv.MarshalString(Records(trades))
}
