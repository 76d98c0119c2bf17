package cmd

import (
	"fmt"

	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Usage window: %dd\n", cfg.General.WindowDays)
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	if cfg.General.DBPath != "" {
		fmt.Printf("    Ledger path:  %s\n", cfg.General.DBPath)
	} else {
		fmt.Printf("    Ledger path:  %s (default)\n", store.DefaultPath())
	}
	fmt.Println()

	fmt.Println("  [Alerts]")
	fmt.Printf("    Warn below:   %dd of runway\n", cfg.Alerts.WarnDays)
	fmt.Printf("    Urgent below: %dd of runway\n", cfg.Alerts.UrgentDays)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `larder setup` to reconfigure.")
	return nil
}
