// Package ledger implements the boundary contract between stored ledger rows
// and the typed records the stats engine consumes: status alias resolution,
// field cleanup, and data-quality warnings for rows that cannot be used.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/model"
)

// RawRow is a ledger row as read from the store, before status resolution.
// Status is the stored text, which may be an alias or junk from imports.
type RawRow struct {
	Seq       int64
	Date      time.Time
	Item      string
	Category  string
	Status    string
	Quantity  float64
	Unit      string
	UnitPrice float64
	TotalCost float64
	Notes     string
}

// Warning flags a row that was excluded from computation. Rows are never
// silently dropped; callers decide how to surface these.
type Warning struct {
	Row    RawRow
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d (%s %q): %s",
		w.Row.Seq, w.Row.Date.Format("2006-01-02"), w.Row.Item, w.Reason)
}

// statusAliases maps accepted spellings to the canonical status, matched
// case-insensitively after trimming.
var statusAliases = map[string]model.Status{
	"buy":       model.StatusBuy,
	"bought":    model.StatusBuy,
	"purchase":  model.StatusBuy,
	"purchased": model.StatusBuy,
	"restock":   model.StatusBuy,
	"remaining": model.StatusRemaining,
	"remainder": model.StatusRemaining,
	"left":      model.StatusRemaining,
	"rem":       model.StatusRemaining,
	"stock":     model.StatusRemaining,
}

// ResolveStatus maps a raw status value to its canonical form.
func ResolveStatus(raw string) (model.Status, bool) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// Normalize converts raw rows into engine-ready records. Rows with an empty
// item name or an unresolvable status are excluded and returned as warnings.
// Buy rows missing a total cost get quantity * unit price filled in.
func Normalize(rows []RawRow) ([]model.Record, []Warning) {
	var records []model.Record
	var warnings []Warning

	for _, row := range rows {
		item := strings.TrimSpace(row.Item)
		if item == "" {
			warnings = append(warnings, Warning{Row: row, Reason: "empty item name"})
			continue
		}

		status, ok := ResolveStatus(row.Status)
		if !ok {
			warnings = append(warnings, Warning{
				Row:    row,
				Reason: fmt.Sprintf("unrecognized status %q", row.Status),
			})
			continue
		}

		rec := model.Record{
			Seq:       row.Seq,
			Date:      model.Day(row.Date),
			Item:      item,
			Category:  strings.TrimSpace(row.Category),
			Status:    status,
			Quantity:  row.Quantity,
			Unit:      strings.TrimSpace(row.Unit),
			UnitPrice: row.UnitPrice,
			TotalCost: row.TotalCost,
			Notes:     strings.TrimSpace(row.Notes),
		}
		if status == model.StatusBuy && rec.TotalCost == 0 {
			rec.TotalCost = rec.Quantity * rec.UnitPrice
		}

		records = append(records, rec)
	}

	return records, warnings
}

// GroupByItem splits records into per-item ledgers, preserving order.
func GroupByItem(records []model.Record) map[string][]model.Record {
	byItem := make(map[string][]model.Record)
	for _, r := range records {
		byItem[r.Item] = append(byItem[r.Item], r)
	}
	return byItem
}

// ValidateNew checks a record the entry path is about to append. The store
// is append-only, so bad rows are cheaper to reject here than to correct.
func ValidateNew(rec model.Record) error {
	if strings.TrimSpace(rec.Item) == "" {
		return fmt.Errorf("item name is required")
	}
	if !rec.Status.Valid() {
		return fmt.Errorf("status must be %q or %q", model.StatusBuy, model.StatusRemaining)
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if rec.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if rec.Status == model.StatusBuy && rec.Quantity == 0 {
		return fmt.Errorf("a purchase needs a quantity")
	}
	if rec.UnitPrice < 0 {
		return fmt.Errorf("unit price must not be negative")
	}
	return nil
}
