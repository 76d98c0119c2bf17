package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/larderhq/larder/internal/model"
)

var testThresholds = Thresholds{WarnDays: 7, UrgentDays: 3}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// itemLedger builds a buy-then-reading ledger that leaves the item with the
// given stock and a 1 unit/day usage rate over the past ten days.
func itemLedger(t *testing.T, item string, seq int64, asOf time.Time, stock float64) []model.Record {
	t.Helper()
	return []model.Record{
		{Seq: seq, Date: asOf.AddDate(0, 0, -10), Item: item, Category: "grains", Unit: "kg",
			Status: model.StatusBuy, Quantity: stock + 10, UnitPrice: 2},
		{Seq: seq + 1, Date: asOf, Item: item, Status: model.StatusRemaining, Quantity: stock},
	}
}

func TestBuild_OrdersByUrgency(t *testing.T) {
	asOf := day(t, "2025-06-20")

	var records []model.Record
	records = append(records, itemLedger(t, "flour", 1, asOf, 20)...) // long runway
	records = append(records, itemLedger(t, "rice", 3, asOf, 2)...)   // short runway
	// An item with no usage: runway unknown, sorts last.
	records = append(records, model.Record{
		Seq: 5, Date: asOf, Item: "salt", Status: model.StatusRemaining, Quantity: 1,
	})

	reports, err := Build(records, asOf, model.WindowDays, testThresholds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}

	gotOrder := []string{reports[0].Item, reports[1].Item, reports[2].Item}
	wantOrder := []string{"rice", "flour", "salt"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestBuild_AlertLevels(t *testing.T) {
	asOf := day(t, "2025-06-20")

	// Usage is (10/10 days pro-rated over 14) per day; runway = stock/usage.
	// With the 14-day window the observed 10 units average 10/14 per day, so
	// stock 2 -> runway 2.8d (urgent), stock 4 -> 5.6d (warn), stock 20 -> 28d (ok).
	var records []model.Record
	records = append(records, itemLedger(t, "urgent-item", 1, asOf, 2)...)
	records = append(records, itemLedger(t, "warn-item", 3, asOf, 4)...)
	records = append(records, itemLedger(t, "ok-item", 5, asOf, 20)...)
	records = append(records, model.Record{
		Seq: 7, Date: asOf, Item: "unknown-item", Status: model.StatusRemaining, Quantity: 5,
	})

	reports, err := Build(records, asOf, model.WindowDays, testThresholds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]AlertLevel{
		"urgent-item":  AlertUrgent,
		"warn-item":    AlertWarn,
		"ok-item":      AlertOK,
		"unknown-item": AlertNone,
	}
	for _, r := range reports {
		if r.Alert != want[r.Item] {
			t.Errorf("%s: alert = %q, want %q", r.Item, r.Alert, want[r.Item])
		}
	}
}

func TestBuild_CarriesUnitAndCategory(t *testing.T) {
	asOf := day(t, "2025-06-20")
	reports, err := Build(itemLedger(t, "rice", 1, asOf, 5), asOf, model.WindowDays, testThresholds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reports[0].Unit != "kg" || reports[0].Category != "grains" {
		t.Errorf("unit/category = %q/%q, want kg/grains", reports[0].Unit, reports[0].Category)
	}
}

func TestBuild_StockoutDate(t *testing.T) {
	asOf := day(t, "2025-06-20")
	reports, err := Build(itemLedger(t, "rice", 1, asOf, 2), asOf, model.WindowDays, testThresholds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Runway 2.8 days truncates to a stockout two days out.
	want := day(t, "2025-06-22")
	if !reports[0].StockoutOn.Equal(want) {
		t.Errorf("StockoutOn = %v, want %v", reports[0].StockoutOn, want)
	}
}

func TestBuild_MalformedRecordNamesItem(t *testing.T) {
	asOf := day(t, "2025-06-20")
	records := []model.Record{
		{Seq: 1, Date: asOf, Item: "rice", Status: "junk", Quantity: 1},
	}

	_, err := Build(records, asOf, model.WindowDays, testThresholds)
	if err == nil {
		t.Fatal("expected error for malformed record")
	}
	if !strings.Contains(err.Error(), "rice") {
		t.Errorf("error %q does not name the item", err)
	}
}

func TestSummarize(t *testing.T) {
	asOf := day(t, "2025-06-20")
	var records []model.Record
	records = append(records, itemLedger(t, "urgent-item", 1, asOf, 2)...)
	records = append(records, itemLedger(t, "ok-item", 3, asOf, 20)...)
	records = append(records, model.Record{
		Seq: 5, Date: asOf, Item: "idle-item", Status: model.StatusRemaining, Quantity: 5,
	})

	reports, err := Build(records, asOf, model.WindowDays, testThresholds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k := Summarize(reports)
	if k.Items != 3 {
		t.Errorf("Items = %d, want 3", k.Items)
	}
	if k.DueWithinWarn != 1 {
		t.Errorf("DueWithinWarn = %d, want 1", k.DueWithinWarn)
	}
	if k.ActiveItems != 2 {
		t.Errorf("ActiveItems = %d, want 2", k.ActiveItems)
	}
	// Each test ledger buys stock+10 units at price 2.
	if want := 24.0 + 60.0; k.TotalSpend != want {
		t.Errorf("TotalSpend = %g, want %g", k.TotalSpend, want)
	}
}

func TestFilterByCategory(t *testing.T) {
	reports := []ItemReport{
		{Item: "rice", Category: "Grains"},
		{Item: "milk", Category: "dairy"},
	}

	got := FilterByCategory(reports, "grains")
	if len(got) != 1 || got[0].Item != "rice" {
		t.Errorf("FilterByCategory = %+v, want just rice", got)
	}
	if got := FilterByCategory(reports, ""); len(got) != 2 {
		t.Errorf("empty category filter dropped rows: %d", len(got))
	}
}

func TestWriteCSV(t *testing.T) {
	asOf := day(t, "2025-06-20")
	var records []model.Record
	records = append(records, itemLedger(t, "rice", 1, asOf, 2)...)
	records = append(records, model.Record{
		Seq: 3, Date: asOf, Item: "salt", Status: model.StatusRemaining, Quantity: 1,
	})

	reports, err := Build(records, asOf, model.WindowDays, testThresholds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, reports); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d csv lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "item,category,unit") {
		t.Errorf("header = %q", lines[0])
	}
	// salt has no usage: runway cell must be empty, not zero.
	saltLine := lines[2]
	if !strings.HasPrefix(saltLine, "salt") {
		t.Fatalf("expected salt last, got %q", saltLine)
	}
	fields := strings.Split(saltLine, ",")
	if fields[5] != "" {
		t.Errorf("salt runway cell = %q, want empty", fields[5])
	}
}
