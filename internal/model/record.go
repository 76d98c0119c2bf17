// Package model defines domain types for larder records and statistics.
package model

import "time"

// Status marks what a ledger row records: a purchase or an observed
// remaining quantity.
type Status string

const (
	StatusBuy       Status = "buy"
	StatusRemaining Status = "remaining"
)

// Valid reports whether s is one of the two canonical statuses.
func (s Status) Valid() bool {
	return s == StatusBuy || s == StatusRemaining
}

// Record is one immutable row of the ledger.
type Record struct {
	Seq      int64     // append order, assigned by the store; stable tie-break
	Date     time.Time // day granularity, normalized to midnight UTC
	Item     string
	Category string
	Status   Status

	Quantity  float64
	Unit      string
	UnitPrice float64 // meaningful for buy rows only
	TotalCost float64 // quantity * unit price, filled for buy rows
	Notes     string
}

// Day normalizes a timestamp to midnight UTC, the granularity the ledger
// works at.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day distance from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}
