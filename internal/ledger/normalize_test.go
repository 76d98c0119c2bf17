package ledger

import (
	"testing"
	"time"

	"github.com/larderhq/larder/internal/model"
)

func rawRow(item, status string) RawRow {
	return RawRow{
		Seq:      1,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Item:     item,
		Status:   status,
		Quantity: 2,
	}
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   model.Status
		wantOK bool
	}{
		{"buy", model.StatusBuy, true},
		{"Buy", model.StatusBuy, true},
		{"PURCHASE", model.StatusBuy, true},
		{" restock ", model.StatusBuy, true},
		{"remaining", model.StatusRemaining, true},
		{"Left", model.StatusRemaining, true},
		{"rem", model.StatusRemaining, true},
		{"stock", model.StatusRemaining, true},
		{"usage", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ResolveStatus(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveStatus(%q) = %q, %v; want %q, %v",
					tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalize_UnresolvableStatusWarns(t *testing.T) {
	rows := []RawRow{
		rawRow("rice", "buy"),
		rawRow("rice", "misc"),
	}

	records, warnings := Normalize(rows)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Row.Status != "misc" {
		t.Errorf("warning names row with status %q, want misc", warnings[0].Row.Status)
	}
}

func TestNormalize_EmptyItemWarns(t *testing.T) {
	records, warnings := Normalize([]RawRow{rawRow("   ", "buy")})
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestNormalize_FillsBuyTotalCost(t *testing.T) {
	row := rawRow("rice", "buy")
	row.Quantity = 3
	row.UnitPrice = 2.5

	records, _ := Normalize([]RawRow{row})
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].TotalCost != 7.5 {
		t.Errorf("TotalCost = %g, want 7.5", records[0].TotalCost)
	}

	// An explicit total is kept as recorded.
	row.TotalCost = 7.0
	records, _ = Normalize([]RawRow{row})
	if records[0].TotalCost != 7.0 {
		t.Errorf("explicit TotalCost = %g, want 7.0", records[0].TotalCost)
	}
}

func TestNormalize_TrimsFields(t *testing.T) {
	row := rawRow("  rice  ", "remaining")
	row.Category = " grains "
	row.Unit = " kg "
	row.Notes = " opened bag "

	records, _ := Normalize([]RawRow{row})
	r := records[0]
	if r.Item != "rice" || r.Category != "grains" || r.Unit != "kg" || r.Notes != "opened bag" {
		t.Errorf("fields not trimmed: %+v", r)
	}
}

func TestGroupByItem(t *testing.T) {
	records, _ := Normalize([]RawRow{
		rawRow("rice", "buy"),
		rawRow("oats", "remaining"),
		rawRow("rice", "remaining"),
	})

	byItem := GroupByItem(records)
	if len(byItem) != 2 {
		t.Fatalf("got %d items, want 2", len(byItem))
	}
	if len(byItem["rice"]) != 2 || len(byItem["oats"]) != 1 {
		t.Errorf("grouping wrong: rice=%d oats=%d", len(byItem["rice"]), len(byItem["oats"]))
	}
}

func TestValidateNew(t *testing.T) {
	good := model.Record{
		Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Item: "rice", Status: model.StatusBuy, Quantity: 2, UnitPrice: 3,
	}
	if err := ValidateNew(good); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.Record)
	}{
		{"empty item", func(r *model.Record) { r.Item = " " }},
		{"bad status", func(r *model.Record) { r.Status = "usage" }},
		{"zero date", func(r *model.Record) { r.Date = time.Time{} }},
		{"negative qty", func(r *model.Record) { r.Quantity = -1 }},
		{"zero-quantity buy", func(r *model.Record) { r.Quantity = 0 }},
		{"negative price", func(r *model.Record) { r.UnitPrice = -0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := good
			tt.mutate(&r)
			if err := ValidateNew(r); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
