//-------------------------------------------------------------------------
//
// pgEdge Sales View
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-salesview.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DateLayout is the layout for week-range bounds in config and flags.
const DateLayout = "2006-01-02"

// Config holds all configuration for pgedge-salesview.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Source selects where fact data is loaded from.
	Source SourceConfig `mapstructure:"source"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Gen holds configuration for the gen subcommand.
	Gen GenConfig `mapstructure:"gen"`
}

// SourceConfig selects the fact source. Files and Connection are
// mutually exclusive; Files wins when both are set.
type SourceConfig struct {
	// Files are CSV fact files, unified into one snapshot.
	Files []string `mapstructure:"files"`

	// Connection is a PostgreSQL connection string for a warehouse source.
	Connection string `mapstructure:"connection"`

	// Table is the warehouse fact table (default: sales_facts).
	Table string `mapstructure:"table"`

	// BrandDictionary is an optional brand rename dictionary CSV.
	BrandDictionary string `mapstructure:"brand_dictionary"`

	// CategoryDictionary is an optional product category dictionary CSV.
	CategoryDictionary string `mapstructure:"category_dictionary"`
}

// ReportConfig holds the filter scope and output selection for reports.
type ReportConfig struct {
	// View is the report view to build.
	View string `mapstructure:"view"`

	// From and To bound the week-ending range (inclusive, YYYY-MM-DD).
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`

	// Dimension selections; empty means all.
	Brands      []string `mapstructure:"brands"`
	Categories  []string `mapstructure:"categories"`
	Products    []string `mapstructure:"products"`
	Geographies []string `mapstructure:"geographies"`

	// Format is the output format: table, json or html.
	Format string `mapstructure:"format"`

	// Output is the output file; empty means stdout.
	Output string `mapstructure:"output"`
}

// GenConfig holds configuration for sample dataset generation.
type GenConfig struct {
	// Dir is the output directory for generated CSVs.
	Dir string `mapstructure:"dir"`

	Weeks       int    `mapstructure:"weeks"`
	Brands      int    `mapstructure:"brands"`
	Products    int    `mapstructure:"products"`
	Geographies int    `mapstructure:"geographies"`
	Start       string `mapstructure:"start"`
	Seed        uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Report: ReportConfig{
			Format: "table",
		},
		Gen: GenConfig{
			Dir:         "sample",
			Weeks:       26,
			Brands:      6,
			Products:    40,
			Geographies: 3,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-salesview.yaml
// 3. ~/.config/pgedge-salesview/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("pgedge-salesview")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-salesview"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateSource checks that a fact source is configured.
func (c *Config) ValidateSource() error {
	if len(c.Source.Files) == 0 && c.Source.Connection == "" {
		return fmt.Errorf("a fact source is required: set source files or a connection string")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if c.Report.View == "" {
		return fmt.Errorf("a view is required")
	}
	switch c.Report.Format {
	case "table", "json", "html":
	default:
		return fmt.Errorf("format must be table, json or html")
	}
	if _, _, err := c.WeekRange(); err != nil {
		return err
	}
	return nil
}

// ValidateGen checks configuration required for the gen command.
func (c *Config) ValidateGen() error {
	if c.Gen.Dir == "" {
		return fmt.Errorf("an output directory is required for gen")
	}
	if c.Gen.Weeks < 1 {
		return fmt.Errorf("weeks must be at least 1")
	}
	if c.Gen.Brands < 1 || c.Gen.Products < 1 {
		return fmt.Errorf("brands and products must be at least 1")
	}
	if c.Gen.Start != "" {
		if _, err := time.Parse(DateLayout, c.Gen.Start); err != nil {
			return fmt.Errorf("invalid start date %q: expected %s", c.Gen.Start, DateLayout)
		}
	}
	return nil
}

// WeekRange parses the report's week-ending bounds. Zero times mean
// unbounded.
func (c *Config) WeekRange() (from, to time.Time, err error) {
	if c.Report.From != "" {
		from, err = time.Parse(DateLayout, c.Report.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: expected %s", c.Report.From, DateLayout)
		}
	}
	if c.Report.To != "" {
		to, err = time.Parse(DateLayout, c.Report.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: expected %s", c.Report.To, DateLayout)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date %s is before from date %s", c.Report.To, c.Report.From)
	}
	return from, to, nil
}
