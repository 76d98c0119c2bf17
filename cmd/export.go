package cmd

import (
	"fmt"
	"os"

	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/report"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the per-item rollup as CSV",
	RunE:  runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	records, warnings, err := loadRecords(cfg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("the ledger is empty, nothing to export")
	}

	asOf, err := asOfDate()
	if err != nil {
		return err
	}

	reports, err := report.Build(records, asOf, windowDays(cfg), thresholds(cfg))
	if err != nil {
		return err
	}
	reports = report.FilterByCategory(reports, flagCategory)

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := report.WriteCSV(out, reports); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "  Wrote %d item(s) to %s\n", len(reports), exportOut)
	}

	printWarnings(warnings)
	return nil
}
