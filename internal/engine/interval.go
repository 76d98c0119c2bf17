// Package engine computes per-item usage statistics from a ledger snapshot.
//
// The engine is pure: it reads a slice of records and a reference date and
// returns a statistics snapshot. It never touches the clock, the store, or
// any other ambient state, so the same inputs always produce the same output.
package engine

import (
	"fmt"
	"sort"

	"github.com/larderhq/larder/internal/model"
)

// IntervalKind classifies what a pair of consecutive records implies about
// consumption.
type IntervalKind int

const (
	// KindConsumption: stock went down (or held) between two observations
	// with no intervening purchase; the delta is usage.
	KindConsumption IntervalKind = iota
	// KindRestock: the interval ends in a purchase, which resets the
	// baseline for the following interval. No usage is attributed.
	KindRestock
	// KindAnomalous: stock increased without a recorded purchase. Treated
	// as data-quality loss, not negative consumption; usage is zero.
	KindAnomalous
)

func (k IntervalKind) String() string {
	switch k {
	case KindConsumption:
		return "consumption"
	case KindRestock:
		return "restock"
	case KindAnomalous:
		return "anomalous"
	}
	return fmt.Sprintf("IntervalKind(%d)", int(k))
}

// Interval is the span between two chronologically consecutive records.
type Interval struct {
	Prev     model.Record
	Next     model.Record
	SpanDays int // always > 0; same-day pairs are dropped
	Kind     IntervalKind
}

// UsagePerDay returns the uniform daily usage rate over the interval.
// Zero for restock and anomalous intervals.
func (iv Interval) UsagePerDay() float64 {
	if iv.Kind != KindConsumption || iv.SpanDays <= 0 {
		return 0
	}
	return (iv.Prev.Quantity - iv.Next.Quantity) / float64(iv.SpanDays)
}

// sortLedger returns a copy of records in timeline order: by date, with
// same-day ties broken by append order. The one exception is a buy and a
// remaining sharing a date: the buy sorts first, since a same-day restock
// is assumed to precede the stock reading.
func sortLedger(records []model.Record) []model.Record {
	sorted := make([]model.Record, len(records))
	copy(sorted, records)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		da, db := model.Day(a.Date), model.Day(b.Date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		if a.Status != b.Status {
			return a.Status == model.StatusBuy
		}
		return a.Seq < b.Seq
	})

	return sorted
}

// BuildIntervals pairs consecutive records of a sorted ledger and classifies
// each pair. Pairs on the same day have no span to spread usage over and are
// dropped rather than divided by zero.
func BuildIntervals(sorted []model.Record) []Interval {
	var intervals []Interval

	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		span := model.DaysBetween(prev.Date, next.Date)
		if span <= 0 {
			continue
		}

		iv := Interval{Prev: prev, Next: next, SpanDays: span}
		switch {
		case next.Status == model.StatusBuy:
			iv.Kind = KindRestock
		case next.Quantity <= prev.Quantity:
			iv.Kind = KindConsumption
		default:
			iv.Kind = KindAnomalous
		}

		intervals = append(intervals, iv)
	}

	return intervals
}
