package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"item", "category", "unit",
	"current_stock", "avg_daily_usage", "runway_days", "suggested_buy_qty",
	"last_remaining_on", "last_buy_on", "last_buy_qty", "last_buy_unit_price",
	"avg_buy_gap_days", "total_spend", "stockout_on", "alert",
}

// WriteCSV writes the rollup as CSV. Unknown metrics become empty cells, not
// zeros, so spreadsheets can tell "no data" from "none left".
func WriteCSV(w io.Writer, reports []ItemReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range reports {
		s := r.Stats
		row := []string{
			r.Item,
			r.Category,
			r.Unit,
			csvFloat(s.CurrentStock),
			strconv.FormatFloat(s.AvgDailyUsage, 'f', 3, 64),
			csvFloat(s.RunwayDays),
			strconv.FormatFloat(s.SuggestedQty, 'f', 2, 64),
			csvDate(s.LastRemainingDate),
			csvDate(s.LastBuyDate),
			csvFloat(s.LastBuyQty),
			csvFloat(s.LastBuyPrice),
			csvFloat(s.AvgBuyGapDays),
			strconv.FormatFloat(s.TotalSpend, 'f', 2, 64),
			csvDate(r.StockoutOn),
			r.Alert.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func csvDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
