package engine

import (
	"fmt"
	"time"

	"github.com/larderhq/larder/internal/model"
)

// InvalidRecordError reports a malformed ledger record. A single bad row
// aborts the whole snapshot computation so it cannot silently skew the
// aggregate metrics.
type InvalidRecordError struct {
	Record model.Record
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record for %q on %s: %s",
		e.Record.Item, e.Record.Date.Format("2006-01-02"), e.Reason)
}

func validate(records []model.Record) error {
	for _, r := range records {
		switch {
		case !r.Status.Valid():
			return &InvalidRecordError{Record: r, Reason: fmt.Sprintf("unknown status %q", r.Status)}
		case r.Quantity < 0:
			return &InvalidRecordError{Record: r, Reason: fmt.Sprintf("negative quantity %g", r.Quantity)}
		case r.UnitPrice < 0:
			return &InvalidRecordError{Record: r, Reason: fmt.Sprintf("negative unit price %g", r.UnitPrice)}
		}
	}
	return nil
}

// Compute builds the statistics snapshot for one item's ledger as of the
// given date. The ledger may arrive in any order and may be empty; missing
// data degrades metric by metric (noted in DataNotes) rather than failing.
// The only error is a malformed record, which aborts the whole computation.
func Compute(records []model.Record, asOf time.Time, windowDays int) (model.ItemStats, error) {
	if windowDays <= 0 {
		windowDays = model.WindowDays
	}
	if err := validate(records); err != nil {
		return model.ItemStats{}, err
	}

	sorted := sortLedger(records)

	var stats model.ItemStats

	// Latest remaining observation sets the stock; buys never do.
	for _, r := range sorted {
		if r.Status == model.StatusRemaining {
			q := r.Quantity
			stats.CurrentStock = &q
			stats.LastRemainingDate = model.Day(r.Date)
		}
	}

	stats.AvgDailyUsage = windowedUsage(BuildIntervals(sorted), model.Day(asOf), windowDays)

	if stats.CurrentStock != nil && stats.AvgDailyUsage > 0 {
		runway := *stats.CurrentStock / stats.AvgDailyUsage
		stats.RunwayDays = &runway
	}

	// Suggest topping back up to a full window's worth of usage. With no
	// stock reading the full target is suggested.
	stock := 0.0
	if stats.CurrentStock != nil {
		stock = *stats.CurrentStock
	}
	stats.SuggestedQty = stats.AvgDailyUsage*float64(windowDays) - stock
	if stats.SuggestedQty < 0 {
		stats.SuggestedQty = 0
	}

	summarizePurchases(sorted, &stats)

	if stats.CurrentStock == nil {
		stats.DataNotes = append(stats.DataNotes, "no remaining record; current stock unknown")
	}
	if stats.AvgDailyUsage == 0 {
		stats.DataNotes = append(stats.DataNotes, "no usage observed in window; runway unknown")
	}
	if stats.AvgBuyGapDays == nil {
		stats.DataNotes = append(stats.DataNotes, "fewer than two purchases; purchase interval unknown")
	}

	return stats, nil
}

// windowedUsage sums pro-rated usage over consumption intervals that overlap
// the trailing window [asOf-windowDays, asOf] and averages it over the fixed
// window length. An interval contributes its per-day rate for each of its
// days that falls inside the window, so partially overlapping intervals
// contribute a proportional share of their delta. The denominator is always
// windowDays, never the observed coverage, which keeps the estimate
// conservative on sparse ledgers.
func windowedUsage(intervals []Interval, asOf time.Time, windowDays int) float64 {
	winStart := asOf.AddDate(0, 0, -windowDays)

	var used float64
	for _, iv := range intervals {
		rate := iv.UsagePerDay()
		if rate == 0 {
			continue
		}

		start := model.Day(iv.Prev.Date)
		if start.Before(winStart) {
			start = winStart
		}
		end := model.Day(iv.Next.Date)
		if end.After(asOf) {
			end = asOf
		}

		overlap := model.DaysBetween(start, end)
		if overlap <= 0 {
			continue
		}
		used += rate * float64(overlap)
	}

	return used / float64(windowDays)
}

// summarizePurchases fills the purchase-summary block from buy records only.
func summarizePurchases(sorted []model.Record, stats *model.ItemStats) {
	var buys []model.Record
	for _, r := range sorted {
		if r.Status == model.StatusBuy {
			buys = append(buys, r)
		}
	}
	if len(buys) == 0 {
		return
	}

	last := buys[len(buys)-1]
	stats.LastBuyDate = model.Day(last.Date)
	qty, price := last.Quantity, last.UnitPrice
	stats.LastBuyQty = &qty
	stats.LastBuyPrice = &price

	for _, b := range buys {
		stats.TotalSpend += b.Quantity * b.UnitPrice
	}

	if len(buys) >= 2 {
		var gapSum int
		for i := 1; i < len(buys); i++ {
			gapSum += model.DaysBetween(buys[i-1].Date, buys[i].Date)
		}
		gap := float64(gapSum) / float64(len(buys)-1)
		stats.AvgBuyGapDays = &gap
	}
}
