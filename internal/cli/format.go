// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder marks a metric with not enough data behind it. Never rendered
// as zero: zero stock or zero usage mean something else entirely.
const Placeholder = "—"

// FormatQty formats a quantity, trimming trailing zeros.
// e.g., 10 -> "10", 2.50 -> "2.5", 0.333333 -> "0.33"
func FormatQty(q float64) string {
	s := strconv.FormatFloat(q, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatOptQty formats an optional quantity, with a placeholder when absent.
func FormatOptQty(q *float64) string {
	if q == nil {
		return Placeholder
	}
	return FormatQty(*q)
}

// FormatQtyUnit appends a unit to a quantity when one is known.
func FormatQtyUnit(q float64, unit string) string {
	if unit == "" {
		return FormatQty(q)
	}
	return FormatQty(q) + " " + unit
}

// FormatMoney formats an amount with the configured currency symbol.
func FormatMoney(currency string, amount float64) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}

// FormatOptMoney formats an optional amount, with a placeholder when absent.
func FormatOptMoney(currency string, amount *float64) string {
	if amount == nil {
		return Placeholder
	}
	return FormatMoney(currency, *amount)
}

// FormatDays formats a day count with one decimal.
// e.g., 2.8 -> "2.8d"
func FormatDays(d float64) string {
	return fmt.Sprintf("%.1fd", d)
}

// FormatOptDays formats an optional day count, with a placeholder when absent.
func FormatOptDays(d *float64) string {
	if d == nil {
		return Placeholder
	}
	return FormatDays(*d)
}

// FormatDate formats a ledger date, with a placeholder for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("2006-01-02")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// Truncate shortens a string to maxLen runes with an ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
