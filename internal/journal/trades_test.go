package journal

import (
	"testing"

	"github.com/rs/zerolog"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/models"
)

func testInput() models.RawTradeInput {
	return models.RawTradeInput{
		Pair:       "BTC/USD",
		Direction:  "long",
		EntryPrice: "34200.00",
		ExitPrice:  "35400.00",
		StopLoss:   "33800.00",
		Quantity:   "1.0",
		Date:       "2023-10-24",
		Time:       "14:30",
		Rationale:  "Clean retest of the 1H order block. #SilverBullet",
		Confidence: 5,
		Mood:       "Calm",
	}
}

func newTestStore() *TradeStore {
	return NewTradeStore(nil, zerolog.Nop())
}

func TestCreateDerivesOutcome(t *testing.T) {
	s := newTestStore()

	trade, err := s.Create(testInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if trade.ID == "" {
		t.Error("Create did not assign an id")
	}
	if trade.PnL != 1200 {
		t.Errorf("PnL = %v, want 1200", trade.PnL)
	}
	if trade.Status != models.StatusWin {
		t.Errorf("Status = %v, want WIN", trade.Status)
	}
	if trade.Setup != "SilverBullet" {
		t.Errorf("Setup = %q, want tag extracted from rationale", trade.Setup)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	s := newTestStore()

	input := testInput()
	input.EntryPrice = "not a price"
	if _, err := s.Create(input); !apperrors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("error = %v, want InvalidInput", err)
	}
	if s.Len() != 0 {
		t.Error("failed create must not insert a trade")
	}
}

func TestCreateInsertsAtHead(t *testing.T) {
	s := newTestStore()

	first, _ := s.Create(testInput())
	second, _ := s.Create(testInput())

	trades := s.List()
	if len(trades) != 2 {
		t.Fatalf("Len = %d, want 2", len(trades))
	}
	if trades[0].ID != second.ID || trades[1].ID != first.ID {
		t.Error("List is not most-recent-first")
	}
}

func TestCreateSetupFallback(t *testing.T) {
	s := newTestStore()

	input := testInput()
	input.Rationale = "no tags here"
	trade, err := s.Create(input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if trade.Setup != DefaultSetup {
		t.Errorf("Setup = %q, want %q", trade.Setup, DefaultSetup)
	}
}

func TestCreateDefaultsPsychologyFields(t *testing.T) {
	s := newTestStore()

	input := testInput()
	input.Confidence = 0
	input.Mood = ""
	trade, err := s.Create(input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if trade.Confidence != 3 {
		t.Errorf("Confidence = %d, want default 3", trade.Confidence)
	}
	if trade.Mood != models.MoodNeutral {
		t.Errorf("Mood = %q, want Neutral", trade.Mood)
	}

	input.Confidence = 9
	trade, _ = s.Create(input)
	if trade.Confidence != 5 {
		t.Errorf("Confidence = %d, want clamp to 5", trade.Confidence)
	}
}

func TestUpdateIsNoOpRoundTrip(t *testing.T) {
	s := newTestStore()

	created, err := s.Create(testInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	updated, err := s.Update(created.ID, testInput())
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated != created {
		t.Errorf("no-op update changed the trade:\n got %+v\nwant %+v", updated, created)
	}
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	s := newTestStore()

	created, _ := s.Create(testInput())

	input := testInput()
	input.ExitPrice = "33000.00" // now a losing exit
	updated, err := s.Update(created.ID, input)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Error("Update must preserve the id")
	}
	if updated.PnL != -1200 {
		t.Errorf("PnL = %v, want -1200", updated.PnL)
	}
	if updated.Status != models.StatusLoss {
		t.Errorf("Status = %v, want LOSS after recompute", updated.Status)
	}
}

func TestUpdateKeepsSetupWithoutNewTag(t *testing.T) {
	s := newTestStore()

	created, _ := s.Create(testInput())

	input := testInput()
	input.Rationale = "second thoughts, no tag this time"
	updated, err := s.Update(created.ID, input)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Setup != "SilverBullet" {
		t.Errorf("Setup = %q, want previous setup preserved", updated.Setup)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore()
	if _, err := s.Update("missing", testInput()); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want NotFound", err)
	}
}

func TestUpsertReplaysIdempotently(t *testing.T) {
	s := newTestStore()

	created, _ := s.Create(testInput())

	replayed, err := s.Upsert(created)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if replayed != created {
		t.Errorf("replay changed the trade: %+v", replayed)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d after replay, want 1", s.Len())
	}
}

func TestUpsertPreservesCallerID(t *testing.T) {
	s := newTestStore()

	trade := models.Trade{
		ID:         "external-7",
		Pair:       "TSLA",
		Direction:  models.Short,
		EntryPrice: "245.50",
		ExitPrice:  "248.00",
		StopLoss:   "243.00",
		Quantity:   "100",
		Date:       "2023-10-23",
		Time:       "10:15",
		Mood:       models.MoodAnxious,
		Confidence: 3,
	}
	inserted, err := s.Upsert(trade)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if inserted.ID != "external-7" {
		t.Errorf("ID = %q, want caller-supplied id preserved", inserted.ID)
	}
	if inserted.PnL != -250 {
		t.Errorf("PnL = %v, want -250 (derived on upsert)", inserted.PnL)
	}
}

func TestDeleteTwiceObservesNotFound(t *testing.T) {
	s := newTestStore()

	created, _ := s.Create(testInput())
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	for _, tr := range s.List() {
		if tr.ID == created.ID {
			t.Error("deleted id still present in List")
		}
	}
	if err := s.Delete(created.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second delete error = %v, want NotFound", err)
	}
}

func TestListSnapshotIsIsolated(t *testing.T) {
	s := newTestStore()
	s.Create(testInput())

	snapshot := s.List()
	snapshot[0].Pair = "MUTATED"
	snapshot[0].PnL = -999999

	fresh := s.List()
	if fresh[0].Pair == "MUTATED" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestExtractTags(t *testing.T) {
	tags := ExtractTags("went long #breakout after the #retest, clean move")
	if len(tags) != 2 || tags[0] != "breakout" || tags[1] != "retest" {
		t.Errorf("ExtractTags = %v, want [breakout retest]", tags)
	}
	if FirstTag("nothing here") != "" {
		t.Error("FirstTag on untagged text should be empty")
	}
	if FirstTag("#a #b") != "a" {
		t.Error("FirstTag must return the first tag only")
	}
}
