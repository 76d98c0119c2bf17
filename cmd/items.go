package cmd

import (
	"fmt"
	"strings"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/store"

	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List every item known to the ledger",
	RunE:  runItems,
}

func init() {
	rootCmd.AddCommand(itemsCmd)
}

func runItems(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	l, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	items, err := l.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("\n  The ledger is empty.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		if flagCategory != "" && !strings.EqualFold(it.LastCategory, flagCategory) {
			continue
		}
		rows = append(rows, []string{
			cli.Truncate(it.Name, 24),
			cli.Truncate(it.LastCategory, 14),
			it.LastUnit,
			cli.FormatNumber(int64(it.Records)),
		})
	}
	if len(rows) == 0 {
		fmt.Printf("\n  No items in category %q.\n", flagCategory)
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     fmt.Sprintf("Items (%d)", len(rows)),
		Headers:   []string{"Item", "Category", "Unit", "Records"},
		Rows:      rows,
		LeftAlign: map[int]bool{1: true, 2: true},
	}))
	return nil
}
