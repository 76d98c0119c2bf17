package cmd

import (
	"fmt"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/report"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Stock, usage, and runway for every item",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	records, warnings, err := loadRecords(cfg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("\n  The ledger is empty.")
		fmt.Println("  Record a purchase with `larder add` to get started.")
		printWarnings(warnings)
		return nil
	}

	asOf, err := asOfDate()
	if err != nil {
		return err
	}
	window := windowDays(cfg)

	reports, err := report.Build(records, asOf, window, thresholds(cfg))
	if err != nil {
		return err
	}
	reports = report.FilterByCategory(reports, flagCategory)
	if len(reports) == 0 {
		fmt.Printf("\n  No items in category %q.\n", flagCategory)
		return nil
	}

	kpis := report.Summarize(reports)
	cur := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LARDER  %dd usage window", window)))
	fmt.Println()
	fmt.Println(cli.RenderKPIs([][2]string{
		{"Items", cli.FormatNumber(int64(kpis.Items))},
		{"Spend", cli.FormatMoney(cur, kpis.TotalSpend)},
		{"Due soon", cli.FormatNumber(int64(kpis.DueWithinWarn))},
		{"In use", cli.FormatNumber(int64(kpis.ActiveItems))},
	}))
	fmt.Println()

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		s := r.Stats
		rows = append(rows, []string{
			cli.Truncate(r.Item, 20),
			cli.Truncate(r.Category, 12),
			cli.FormatOptQty(s.CurrentStock),
			cli.FormatQty(s.AvgDailyUsage),
			cli.FormatOptDays(s.RunwayDays),
			cli.FormatDate(r.StockoutOn),
			cli.FormatQty(s.SuggestedQty),
			cli.RenderAlert(r.Alert.String()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"Item", "Category", "Stock", "Use/day", "Runway", "Out on", "Buy", "Alert"},
		Rows:      rows,
		LeftAlign: map[int]bool{1: true, 7: true},
	}))

	printWarnings(warnings)
	return nil
}
