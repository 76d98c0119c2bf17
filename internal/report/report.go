// Package report builds the cross-item statistics rollup shown by the CLI
// and TUI: per-item snapshots ordered by urgency, alert levels against
// configured thresholds, and the dashboard KPI block.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/engine"
	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"
)

// AlertLevel grades how soon an item runs out.
type AlertLevel int

const (
	AlertNone   AlertLevel = iota // runway unknown
	AlertOK                       // comfortable stock
	AlertWarn                     // due within the warn threshold
	AlertUrgent                   // due within the urgent threshold
)

func (a AlertLevel) String() string {
	switch a {
	case AlertOK:
		return "ok"
	case AlertWarn:
		return "warn"
	case AlertUrgent:
		return "urgent"
	}
	return ""
}

// Thresholds holds the runway cutoffs for alert grading, in days.
type Thresholds struct {
	WarnDays   int
	UrgentDays int
}

// ItemReport is one item's row in the rollup.
type ItemReport struct {
	Item     string
	Category string
	Unit     string
	Stats    model.ItemStats
	Alert    AlertLevel

	// StockoutOn projects the calendar date stock runs out.
	// Zero when the runway is unknown.
	StockoutOn time.Time
}

// KPIs is the headline block above the stats table.
type KPIs struct {
	Items         int
	TotalSpend    float64
	DueWithinWarn int // items with runway inside the warn threshold
	ActiveItems   int // items with usage observed in the window
}

// Build computes per-item snapshots for the whole ledger and orders them
// most-urgent first (shortest runway leads; unknown runway sinks to the
// bottom). A malformed record aborts the build, naming the item it came from.
func Build(records []model.Record, asOf time.Time, windowDays int, th Thresholds) ([]ItemReport, error) {
	byItem := ledger.GroupByItem(records)

	reports := make([]ItemReport, 0, len(byItem))
	for item, recs := range byItem {
		stats, err := engine.Compute(recs, asOf, windowDays)
		if err != nil {
			return nil, fmt.Errorf("computing stats for %q: %w", item, err)
		}

		r := ItemReport{Item: item, Stats: stats}
		for _, rec := range recs {
			if rec.Unit != "" {
				r.Unit = rec.Unit
			}
			if rec.Category != "" {
				r.Category = rec.Category
			}
		}
		r.Alert = classify(stats.RunwayDays, th)
		if stats.RunwayDays != nil {
			r.StockoutOn = model.Day(asOf).AddDate(0, 0, int(*stats.RunwayDays))
		}

		reports = append(reports, r)
	}

	sort.Slice(reports, func(i, j int) bool {
		ri, rj := reports[i].Stats.RunwayDays, reports[j].Stats.RunwayDays
		switch {
		case ri != nil && rj != nil && *ri != *rj:
			return *ri < *rj
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		}
		return reports[i].Item < reports[j].Item
	})

	return reports, nil
}

func classify(runway *float64, th Thresholds) AlertLevel {
	if runway == nil {
		return AlertNone
	}
	switch {
	case *runway <= float64(th.UrgentDays):
		return AlertUrgent
	case *runway <= float64(th.WarnDays):
		return AlertWarn
	}
	return AlertOK
}

// Summarize computes the KPI block for a set of item reports.
func Summarize(reports []ItemReport) KPIs {
	var k KPIs
	k.Items = len(reports)
	for _, r := range reports {
		k.TotalSpend += r.Stats.TotalSpend
		if r.Alert == AlertWarn || r.Alert == AlertUrgent {
			k.DueWithinWarn++
		}
		if r.Stats.AvgDailyUsage > 0 {
			k.ActiveItems++
		}
	}
	return k
}

// FilterByCategory narrows reports to one category (case-insensitive exact
// match). An empty category returns the input unchanged.
func FilterByCategory(reports []ItemReport, category string) []ItemReport {
	if category == "" {
		return reports
	}
	var out []ItemReport
	for _, r := range reports {
		if strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}
