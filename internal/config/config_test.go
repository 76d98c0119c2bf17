package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.General.WindowDays != 14 {
		t.Errorf("WindowDays = %d, want 14", cfg.General.WindowDays)
	}
	if cfg.Alerts.WarnDays != 7 || cfg.Alerts.UrgentDays != 3 {
		t.Errorf("thresholds = %d/%d, want 7/3", cfg.Alerts.WarnDays, cfg.Alerts.UrgentDays)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.WindowDays = 21
	cfg.General.Currency = "€"
	cfg.Alerts.UrgentDays = 2

	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !Exists() {
		t.Fatal("config file should exist after save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.General.WindowDays != 21 || loaded.General.Currency != "€" || loaded.Alerts.UrgentDays != 2 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "larder")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	partial := "[alerts]\nwarn_days = 10\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Alerts.WarnDays != 10 {
		t.Errorf("WarnDays = %d, want 10 from file", cfg.Alerts.WarnDays)
	}
	if cfg.General.WindowDays != 14 {
		t.Errorf("WindowDays = %d, want default 14", cfg.General.WindowDays)
	}
}
