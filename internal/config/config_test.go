package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Report.Format != "table" {
		t.Errorf("Expected Report.Format 'table', got '%s'", cfg.Report.Format)
	}
	if cfg.Gen.Dir != "sample" {
		t.Errorf("Expected Gen.Dir 'sample', got '%s'", cfg.Gen.Dir)
	}
	if cfg.Gen.Weeks != 26 {
		t.Errorf("Expected Gen.Weeks 26, got %d", cfg.Gen.Weeks)
	}
	if cfg.Gen.Products != 40 {
		t.Errorf("Expected Gen.Products 40, got %d", cfg.Gen.Products)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", cfg.LogLevel)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `log_level: debug
source:
  files:
    - facts.csv
  brand_dictionary: brands.csv
report:
  view: brand-performance
  from: "2025-01-05"
  brands:
    - Alpine
  format: json
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got '%s'", cfg.LogLevel)
	}
	if len(cfg.Source.Files) != 1 || cfg.Source.Files[0] != "facts.csv" {
		t.Errorf("Unexpected Source.Files: %v", cfg.Source.Files)
	}
	if cfg.Source.BrandDictionary != "brands.csv" {
		t.Errorf("Unexpected Source.BrandDictionary: %s", cfg.Source.BrandDictionary)
	}
	if cfg.Report.View != "brand-performance" {
		t.Errorf("Unexpected Report.View: %s", cfg.Report.View)
	}
	if cfg.Report.Format != "json" {
		t.Errorf("Unexpected Report.Format: %s", cfg.Report.Format)
	}
	// Keys the file does not set keep their defaults.
	if cfg.Gen.Weeks != 26 {
		t.Errorf("Expected default Gen.Weeks 26, got %d", cfg.Gen.Weeks)
	}
}

func TestValidateReport(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name: "valid file source",
			modify: func(c *Config) {
				c.Source.Files = []string{"facts.csv"}
				c.Report.View = "brand-performance"
			},
			wantErr: false,
		},
		{
			name: "valid connection source",
			modify: func(c *Config) {
				c.Source.Connection = "postgres://localhost/sales"
				c.Report.View = "share-ytd"
			},
			wantErr: false,
		},
		{
			name: "no source",
			modify: func(c *Config) {
				c.Report.View = "share-ytd"
			},
			wantErr: true,
		},
		{
			name: "no view",
			modify: func(c *Config) {
				c.Source.Files = []string{"facts.csv"}
			},
			wantErr: true,
		},
		{
			name: "bad format",
			modify: func(c *Config) {
				c.Source.Files = []string{"facts.csv"}
				c.Report.View = "share-ytd"
				c.Report.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "bad from date",
			modify: func(c *Config) {
				c.Source.Files = []string{"facts.csv"}
				c.Report.View = "share-ytd"
				c.Report.From = "01-05-2025"
			},
			wantErr: true,
		},
		{
			name: "range inverted",
			modify: func(c *Config) {
				c.Source.Files = []string{"facts.csv"}
				c.Report.View = "share-ytd"
				c.Report.From = "2025-06-01"
				c.Report.To = "2025-01-01"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.ValidateReport()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReport() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGen(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", modify: func(c *Config) {}, wantErr: false},
		{
			name:    "no dir",
			modify:  func(c *Config) { c.Gen.Dir = "" },
			wantErr: true,
		},
		{
			name:    "zero weeks",
			modify:  func(c *Config) { c.Gen.Weeks = 0 },
			wantErr: true,
		},
		{
			name:    "zero products",
			modify:  func(c *Config) { c.Gen.Products = 0 },
			wantErr: true,
		},
		{
			name:    "bad start date",
			modify:  func(c *Config) { c.Gen.Start = "Jan 5 2025" },
			wantErr: true,
		},
		{
			name:    "valid start date",
			modify:  func(c *Config) { c.Gen.Start = "2025-01-05" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.ValidateGen()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGen() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Report.From = "2025-01-05"
	cfg.Report.To = "2025-06-29"

	from, to, err := cfg.WeekRange()
	if err != nil {
		t.Fatalf("WeekRange() error = %v", err)
	}
	if !from.Equal(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected from bound: %v", from)
	}
	if !to.Equal(time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected to bound: %v", to)
	}

	cfg.Report.From = ""
	cfg.Report.To = ""
	from, to, err = cfg.WeekRange()
	if err != nil {
		t.Fatalf("WeekRange() error = %v", err)
	}
	if !from.IsZero() || !to.IsZero() {
		t.Errorf("Expected zero bounds, got %v and %v", from, to)
	}
}
