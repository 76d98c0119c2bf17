package model

import "time"

// ItemStats is the computed statistics snapshot for a single item.
// Pointer fields and zero time.Time values mean "not enough data", which
// renderers must show as a placeholder, never as zero — zero usage and zero
// runway are meaningfully different from unknown.
type ItemStats struct {
	// Stock and usage
	CurrentStock  *float64 // latest remaining quantity; nil if never recorded
	AvgDailyUsage float64  // units/day over the trailing window; 0 when no usage observed
	RunwayDays    *float64 // stock / usage; nil when stock absent or usage zero
	SuggestedQty  float64  // max(0, usage*window - stock)

	LastRemainingDate time.Time // zero when no remaining record exists

	// Purchase summary
	LastBuyDate   time.Time // zero when no buy record exists
	LastBuyQty    *float64
	LastBuyPrice  *float64
	AvgBuyGapDays *float64 // mean gap between consecutive buys; nil below 2 buys
	TotalSpend    float64  // sum of quantity * unit price over all buys

	// DataNotes lists the metrics that degraded to "unknown" and why.
	// Informational only; the snapshot is still valid.
	DataNotes []string
}

// WindowDays is the default trailing window for the usage average.
const WindowDays = 14
