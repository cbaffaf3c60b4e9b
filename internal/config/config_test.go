package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Dir != "data" {
		t.Errorf("data dir = %q, want \"data\"", cfg.Data.Dir)
	}
	if cfg.DataSource.Interval != "1d" {
		t.Errorf("interval = %q, want \"1d\"", cfg.DataSource.Interval)
	}
	if cfg.MACD.FastSpan != 12 || cfg.MACD.SlowSpan != 26 || cfg.MACD.SignalSpan != 9 {
		t.Errorf("macd spans = %d/%d/%d, want 12/26/9",
			cfg.MACD.FastSpan, cfg.MACD.SlowSpan, cfg.MACD.SignalSpan)
	}
	if cfg.MACD.Field != "Close" {
		t.Errorf("macd field = %q, want \"Close\"", cfg.MACD.Field)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
data:
  dir: /srv/prices
data_source:
  symbols: ["PNG.V", "AAPL"]
  interval: 1wk
macd:
  fast_span: 10
  slow_span: 20
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATA_DIR", "/tmp/override")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Dir != "/tmp/override" {
		t.Errorf("data dir = %q, want env override", cfg.Data.Dir)
	}
	if len(cfg.DataSource.Symbols) != 2 || cfg.DataSource.Symbols[0] != "PNG.V" {
		t.Errorf("symbols = %v", cfg.DataSource.Symbols)
	}
	if cfg.MACD.FastSpan != 10 || cfg.MACD.SlowSpan != 20 {
		t.Errorf("macd spans = %d/%d, want 10/20", cfg.MACD.FastSpan, cfg.MACD.SlowSpan)
	}
	if cfg.MACD.SignalSpan != 9 {
		t.Errorf("signal span = %d, want default 9", cfg.MACD.SignalSpan)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no symbols configured")
	}

	cfg.DataSource.Symbols = []string{"PNG.V"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.MACD.FastSpan = 26
	cfg.MACD.SlowSpan = 12
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for fast span >= slow span")
	}
}
