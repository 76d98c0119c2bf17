package engine

import (
	"testing"
	"time"

	"github.com/larderhq/larder/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func rec(seq int64, date time.Time, status model.Status, qty float64) model.Record {
	return model.Record{Seq: seq, Date: date, Item: "rice", Status: status, Quantity: qty}
}

func TestSortLedger_AppendOrderBreaksTies(t *testing.T) {
	d := mustDate(t, "2025-03-10")
	records := []model.Record{
		rec(2, d, model.StatusRemaining, 5),
		rec(1, d, model.StatusRemaining, 7),
	}

	sorted := sortLedger(records)
	if sorted[0].Seq != 1 || sorted[1].Seq != 2 {
		t.Errorf("same-day same-status records not in append order: got seqs %d, %d",
			sorted[0].Seq, sorted[1].Seq)
	}
}

func TestSortLedger_BuyPrecedesRemainingSameDay(t *testing.T) {
	d := mustDate(t, "2025-03-10")
	// Remaining appended first — the buy must still sort ahead of it.
	records := []model.Record{
		rec(1, d, model.StatusRemaining, 8),
		rec(2, d, model.StatusBuy, 10),
	}

	sorted := sortLedger(records)
	if sorted[0].Status != model.StatusBuy {
		t.Errorf("same-day buy should precede remaining, got %s first", sorted[0].Status)
	}
}

func TestBuildIntervals_Classification(t *testing.T) {
	d0 := mustDate(t, "2025-03-01")
	d5 := mustDate(t, "2025-03-06")

	tests := []struct {
		name string
		prev model.Record
		next model.Record
		want IntervalKind
	}{
		{
			name: "remaining drop is consumption",
			prev: rec(1, d0, model.StatusRemaining, 8),
			next: rec(2, d5, model.StatusRemaining, 3),
			want: KindConsumption,
		},
		{
			name: "buy to lower remaining is consumption",
			prev: rec(1, d0, model.StatusBuy, 10),
			next: rec(2, d5, model.StatusRemaining, 6),
			want: KindConsumption,
		},
		{
			name: "equal quantities are consumption with zero delta",
			prev: rec(1, d0, model.StatusRemaining, 4),
			next: rec(2, d5, model.StatusRemaining, 4),
			want: KindConsumption,
		},
		{
			name: "interval ending in buy is restock",
			prev: rec(1, d0, model.StatusRemaining, 2),
			next: rec(2, d5, model.StatusBuy, 10),
			want: KindRestock,
		},
		{
			name: "unexplained increase is anomalous",
			prev: rec(1, d0, model.StatusRemaining, 2),
			next: rec(2, d5, model.StatusRemaining, 9),
			want: KindAnomalous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intervals := BuildIntervals([]model.Record{tt.prev, tt.next})
			if len(intervals) != 1 {
				t.Fatalf("got %d intervals, want 1", len(intervals))
			}
			iv := intervals[0]
			if iv.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", iv.Kind, tt.want)
			}
			if iv.SpanDays != 5 {
				t.Errorf("SpanDays = %d, want 5", iv.SpanDays)
			}
		})
	}
}

func TestBuildIntervals_SameDayPairDropped(t *testing.T) {
	d := mustDate(t, "2025-03-10")
	records := []model.Record{
		rec(1, d, model.StatusBuy, 10),
		rec(2, d, model.StatusRemaining, 9),
		rec(3, d.AddDate(0, 0, 4), model.StatusRemaining, 5),
	}

	intervals := BuildIntervals(sortLedger(records))
	if len(intervals) != 1 {
		t.Fatalf("got %d intervals, want 1 (same-day pair dropped)", len(intervals))
	}
	if intervals[0].Kind != KindConsumption || intervals[0].SpanDays != 4 {
		t.Errorf("surviving interval = %s over %d days, want consumption over 4",
			intervals[0].Kind, intervals[0].SpanDays)
	}
}

func TestIntervalUsagePerDay(t *testing.T) {
	d0 := mustDate(t, "2025-03-01")
	intervals := BuildIntervals([]model.Record{
		rec(1, d0, model.StatusRemaining, 8),
		rec(2, d0.AddDate(0, 0, 4), model.StatusRemaining, 2),
	})
	if got := intervals[0].UsagePerDay(); got != 1.5 {
		t.Errorf("UsagePerDay = %g, want 1.5", got)
	}

	// Anomalous intervals carry no rate regardless of the delta size.
	intervals = BuildIntervals([]model.Record{
		rec(1, d0, model.StatusRemaining, 2),
		rec(2, d0.AddDate(0, 0, 4), model.StatusRemaining, 200),
	})
	if got := intervals[0].UsagePerDay(); got != 0 {
		t.Errorf("anomalous UsagePerDay = %g, want 0", got)
	}
}
