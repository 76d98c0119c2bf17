package cmd

import (
	"fmt"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/store"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <item>",
	Short: "Raw ledger rows for one item, as recorded",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show only the most recent N rows")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, args []string) error {
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
	if historyLimit > 0 && len(rows) > historyLimit {
		rows = rows[len(rows)-historyLimit:]
	}

	cur := cfg.General.Currency
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		price := ""
		if row.UnitPrice > 0 {
			price = cli.FormatMoney(cur, row.UnitPrice)
		}
		total := ""
		if row.TotalCost > 0 {
			total = cli.FormatMoney(cur, row.TotalCost)
		}
		out = append(out, []string{
			fmt.Sprintf("%d", row.Seq),
			row.Date.Format("2006-01-02"),
			row.Status,
			cli.FormatQtyUnit(row.Quantity, row.Unit),
			price,
			total,
			cli.Truncate(row.Notes, 28),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     fmt.Sprintf("%s  (%d rows)", name, len(out)),
		Headers:   []string{"Row", "Date", "Status", "Qty", "Price", "Total", "Notes"},
		Rows:      out,
		LeftAlign: map[int]bool{2: true, 6: true},
	}))
	return nil
}
