package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/store"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to larder!")
	fmt.Println()
	if l, err := store.Open(dbPath(cfg)); err == nil {
		if n, err := l.Count(); err == nil && n > 0 {
			fmt.Printf("  Found %s records in %s\n\n",
				cli.FormatNumber(n), dbPath(cfg))
		}
		_ = l.Close()
	}

	// 1. Ledger location
	fmt.Println("  1. Ledger database path")
	fmt.Printf("     Current: %s\n", dbPath(cfg))
	fmt.Print("     > ")
	path, _ := reader.ReadString('\n')
	if p := strings.TrimSpace(path); p != "" {
		cfg.General.DBPath = p
	}
	fmt.Println()

	// 2. Usage window
	fmt.Println("  2. Usage averaging window")
	fmt.Println("     (1) 7 days")
	fmt.Println("     (2) 14 days [default]")
	fmt.Println("     (3) 30 days")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.WindowDays = 7
	case "3":
		cfg.General.WindowDays = 30
	default:
		cfg.General.WindowDays = 14
	}
	fmt.Println()

	// 3. Alert thresholds
	fmt.Println("  3. Warn when runway drops below how many days?")
	fmt.Printf("     Current: %d\n", cfg.Alerts.WarnDays)
	fmt.Print("     > ")
	warn, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(warn)); err == nil && n > 0 {
		cfg.Alerts.WarnDays = n
	}
	fmt.Println()

	fmt.Println("  4. Urgent when runway drops below how many days?")
	fmt.Printf("     Current: %d\n", cfg.Alerts.UrgentDays)
	fmt.Print("     > ")
	urgent, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(urgent)); err == nil && n > 0 {
		cfg.Alerts.UrgentDays = n
	}
	fmt.Println()

	// 4. Currency symbol
	fmt.Println("  5. Currency symbol")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	currency, _ := reader.ReadString('\n')
	if c := strings.TrimSpace(currency); c != "" {
		cfg.General.Currency = c
	}
	fmt.Println()

	// 5. Theme
	fmt.Println("  6. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `larder setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
