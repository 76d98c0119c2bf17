// Package cmd implements the larder CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/report"
	"github.com/larderhq/larder/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagWindow   int
	flagAsOf     string
	flagCategory string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "larder",
	Short: "Consumable inventory tracker",
	Long:  "Track what you buy and what's left, and see usage, runway, and what to restock next.",
	RunE:  runStats,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "d", "", "Ledger database path (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagWindow, "window", "n", 0, "Usage window in days (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Reference date YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().StringVarP(&flagCategory, "category", "c", "", "Filter to one category")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress data-quality warnings")
}

// dbPath resolves the ledger path: flag, then config, then the default
// data directory.
func dbPath(cfg config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return store.DefaultPath()
}

func windowDays(cfg config.Config) int {
	if flagWindow > 0 {
		return flagWindow
	}
	if cfg.General.WindowDays > 0 {
		return cfg.General.WindowDays
	}
	return model.WindowDays
}

func thresholds(cfg config.Config) report.Thresholds {
	return report.Thresholds{
		WarnDays:   cfg.Alerts.WarnDays,
		UrgentDays: cfg.Alerts.UrgentDays,
	}
}

func asOfDate() (time.Time, error) {
	if flagAsOf == "" {
		return model.Day(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", flagAsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --as-of %q: %w", flagAsOf, err)
	}
	return t, nil
}

// loadRecords opens the ledger and returns engine-ready records, keeping
// data-quality warnings for the caller to surface.
func loadRecords(cfg config.Config) ([]model.Record, []ledger.Warning, error) {
	l, err := store.Open(dbPath(cfg))
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = l.Close() }()

	rows, err := l.ReadEverything()
	if err != nil {
		return nil, nil, fmt.Errorf("reading ledger: %w", err)
	}

	records, warnings := ledger.Normalize(rows)
	return records, warnings, nil
}

// printWarnings surfaces excluded rows on stderr unless --quiet.
func printWarnings(warnings []ledger.Warning) {
	if flagQuiet || len(warnings) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n  %d row(s) excluded from computation:\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "    %s\n", w)
	}
}
