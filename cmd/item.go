package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/report"
	"github.com/larderhq/larder/internal/store"

	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item <name>",
	Short: "Detailed view of one item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItem,
}

// trajectoryDays is how far back the remaining-quantity sparkline looks.
const trajectoryDays = 60

func init() {
	rootCmd.AddCommand(itemCmd)
}

func runItem(_ *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	l, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	rows, err := l.ReadAll(name)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Printf("\n  No records for %q.\n", name)
		return nil
	}

	records, warnings := ledger.Normalize(rows)

	asOf, err := asOfDate()
	if err != nil {
		return err
	}
	window := windowDays(cfg)

	reports, err := report.Build(records, asOf, window, thresholds(cfg))
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		printWarnings(warnings)
		return fmt.Errorf("no usable records for %q", name)
	}
	r := reports[0]
	s := r.Stats
	cur := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %dd window", name, window)))
	fmt.Println()

	stock := cli.FormatOptQty(s.CurrentStock)
	if s.CurrentStock != nil && r.Unit != "" {
		stock = cli.FormatQtyUnit(*s.CurrentStock, r.Unit)
	}

	summary := [][]string{
		{"Current stock", stock},
		{"Usage/day", cli.FormatQty(s.AvgDailyUsage)},
		{"Runway", cli.FormatOptDays(s.RunwayDays)},
		{"Out on", cli.FormatDate(r.StockoutOn)},
		{"Suggested buy", cli.FormatQty(s.SuggestedQty)},
		{"---"},
		{"Last reading", cli.FormatDate(s.LastRemainingDate)},
		{"Last purchase", cli.FormatDate(s.LastBuyDate)},
		{"Last buy qty", cli.FormatOptQty(s.LastBuyQty)},
		{"Last buy price", cli.FormatOptMoney(cur, s.LastBuyPrice)},
		{"Buy interval", cli.FormatOptDays(s.AvgBuyGapDays)},
		{"Total spend", cli.FormatMoney(cur, s.TotalSpend)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"Metric", "Value"},
		Rows:      summary,
		LeftAlign: map[int]bool{1: true},
	}))

	if spark := remainingSparkline(records, asOf); spark != "" {
		fmt.Printf("\n  Remaining, last %dd: %s\n", trajectoryDays, spark)
	}

	for _, note := range s.DataNotes {
		fmt.Printf("  note: %s\n", note)
	}

	fmt.Println()
	recent := records
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	histRows := make([][]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		rec := recent[i]
		price := ""
		if rec.Status == model.StatusBuy {
			price = cli.FormatMoney(cur, rec.UnitPrice)
		}
		histRows = append(histRows, []string{
			rec.Date.Format("2006-01-02"),
			string(rec.Status),
			cli.FormatQtyUnit(rec.Quantity, rec.Unit),
			price,
			cli.Truncate(rec.Notes, 24),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     "Recent records",
		Headers:   []string{"Date", "Status", "Qty", "Price", "Notes"},
		Rows:      histRows,
		LeftAlign: map[int]bool{1: true, 4: true},
	}))

	printWarnings(warnings)
	return nil
}

// remainingSparkline charts the remaining-quantity readings over the
// trailing trajectory window, in timeline order.
func remainingSparkline(records []model.Record, asOf time.Time) string {
	cutoff := model.Day(asOf).AddDate(0, 0, -trajectoryDays)

	ordered := make([]model.Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	var values []float64
	for _, rec := range ordered {
		if rec.Status != model.StatusRemaining {
			continue
		}
		if rec.Date.Before(cutoff) || rec.Date.After(model.Day(asOf)) {
			continue
		}
		values = append(values, rec.Quantity)
	}
	if len(values) < 2 {
		return ""
	}
	return cli.RenderSparkline(values)
}
