package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/larderhq/larder/internal/model"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func testRecord(item string, status model.Status, qty float64) model.Record {
	return model.Record{
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Item:     item,
		Category: "grains",
		Status:   status,
		Quantity: qty,
		Unit:     "kg",
	}
}

func TestAppendAndReadAll(t *testing.T) {
	l := openTestLedger(t)

	seq1, err := l.Append(testRecord("rice", model.StatusBuy, 10))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	seq2, err := l.Append(testRecord("rice", model.StatusRemaining, 6))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := l.Append(testRecord("oats", model.StatusRemaining, 3)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if seq2 <= seq1 {
		t.Errorf("append sequence not increasing: %d then %d", seq1, seq2)
	}

	rows, err := l.ReadAll("rice")
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rice rows, want 2", len(rows))
	}
	if rows[0].Status != "buy" || rows[1].Status != "remaining" {
		t.Errorf("rows out of append order: %s then %s", rows[0].Status, rows[1].Status)
	}
	if rows[0].Seq != seq1 || rows[1].Seq != seq2 {
		t.Errorf("sequences = %d, %d; want %d, %d", rows[0].Seq, rows[1].Seq, seq1, seq2)
	}
	if !rows[0].Date.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("stored date = %v, want 2025-06-01", rows[0].Date)
	}
}

func TestAppendAll(t *testing.T) {
	l := openTestLedger(t)

	recs := []model.Record{
		testRecord("rice", model.StatusBuy, 10),
		testRecord("oats", model.StatusBuy, 5),
		testRecord("rice", model.StatusRemaining, 8),
	}
	if err := l.AppendAll(recs); err != nil {
		t.Fatalf("append all: %v", err)
	}

	count, err := l.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestItems(t *testing.T) {
	l := openTestLedger(t)

	first := testRecord("rice", model.StatusBuy, 10)
	first.Unit = "bag"
	second := testRecord("rice", model.StatusRemaining, 6) // unit kg, later row wins
	third := testRecord("milk", model.StatusBuy, 2)
	third.Unit = "l"
	third.Category = "dairy"

	if err := l.AppendAll([]model.Record{first, second, third}); err != nil {
		t.Fatalf("append all: %v", err)
	}

	items, err := l.Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	byName := make(map[string]ItemInfo)
	for _, it := range items {
		byName[it.Name] = it
	}
	rice := byName["rice"]
	if rice.Records != 2 || rice.LastUnit != "kg" {
		t.Errorf("rice = %+v, want 2 records with last unit kg", rice)
	}
	milk := byName["milk"]
	if milk.LastCategory != "dairy" || milk.LastUnit != "l" {
		t.Errorf("milk = %+v, want dairy/l", milk)
	}
}

func TestCategories(t *testing.T) {
	l := openTestLedger(t)

	a := testRecord("rice", model.StatusBuy, 1)
	b := testRecord("milk", model.StatusBuy, 1)
	b.Category = "dairy"
	c := testRecord("soap", model.StatusBuy, 1)
	c.Category = ""

	if err := l.AppendAll([]model.Record{a, b, c}); err != nil {
		t.Fatalf("append all: %v", err)
	}

	cats, err := l.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := []string{"dairy", "grains"}
	if len(cats) != len(want) || cats[0] != want[0] || cats[1] != want[1] {
		t.Errorf("Categories = %v, want %v", cats, want)
	}
}
