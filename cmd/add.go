package cmd

import (
	"fmt"
	"time"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/store"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a buy or remaining record to the ledger",
	Example: `  larder add -i rice -s buy --qty 5 --unit kg --price 2.40
  larder add -i rice -s remaining --qty 1.5`,
	RunE: runAdd,
}

var (
	addItem     string
	addStatus   string
	addQty      float64
	addUnit     string
	addPrice    float64
	addCategory string
	addNotes    string
	addDate     string
)

func init() {
	addCmd.Flags().StringVarP(&addItem, "item", "i", "", "Item name (required)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "buy or remaining (required)")
	addCmd.Flags().Float64Var(&addQty, "qty", 0, "Quantity (required)")
	addCmd.Flags().StringVar(&addUnit, "unit", "", "Unit (defaults from item history)")
	addCmd.Flags().Float64Var(&addPrice, "price", 0, "Unit price, for buy records")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (defaults from item history)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form note")
	addCmd.Flags().StringVar(&addDate, "date", "", "Record date YYYY-MM-DD (default today)")
	_ = addCmd.MarkFlagRequired("item")
	_ = addCmd.MarkFlagRequired("status")
	_ = addCmd.MarkFlagRequired("qty")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	status, ok := ledger.ResolveStatus(addStatus)
	if !ok {
		return fmt.Errorf("unrecognized status %q (use %q or %q)",
			addStatus, model.StatusBuy, model.StatusRemaining)
	}

	date := model.Day(time.Now())
	if addDate != "" {
		d, err := time.Parse("2006-01-02", addDate)
		if err != nil {
			return fmt.Errorf("parsing --date %q: %w", addDate, err)
		}
		date = model.Day(d)
	}

	l, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	rec := model.Record{
		Date:      date,
		Item:      addItem,
		Category:  addCategory,
		Status:    status,
		Quantity:  addQty,
		Unit:      addUnit,
		UnitPrice: addPrice,
		Notes:     addNotes,
	}
	if status == model.StatusBuy {
		rec.TotalCost = rec.Quantity * rec.UnitPrice
	}

	// Fall back to the item's last recorded unit and category, like the
	// entry form does.
	if rec.Unit == "" || rec.Category == "" {
		items, err := l.Items()
		if err == nil {
			for _, it := range items {
				if it.Name == rec.Item {
					if rec.Unit == "" {
						rec.Unit = it.LastUnit
					}
					if rec.Category == "" {
						rec.Category = it.LastCategory
					}
					break
				}
			}
		}
	}

	if err := ledger.ValidateNew(rec); err != nil {
		return err
	}

	seq, err := l.Append(rec)
	if err != nil {
		return err
	}

	fmt.Printf("  Recorded %s: %s %s on %s (row %d)\n",
		rec.Status, rec.Item, cli.FormatQtyUnit(rec.Quantity, rec.Unit),
		rec.Date.Format("2006-01-02"), seq)
	if rec.Status == model.StatusBuy && rec.TotalCost > 0 {
		fmt.Printf("  Total cost %s\n", cli.FormatMoney(cfg.General.Currency, rec.TotalCost))
	}
	return nil
}
