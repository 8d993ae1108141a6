//-------------------------------------------------------------------------
//
// pgEdge Sales View
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-salesview.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesview/internal/config"
	"github.com/pgEdge/pgedge-salesview/internal/logging"
	"github.com/pgEdge/pgedge-salesview/internal/views"
	"github.com/pgEdge/pgedge-salesview/pkg/version"
)

var (
	// Global flags
	cfgFile      string
	sourceFiles  []string
	connection   string
	factTable    string
	brandDict    string
	categoryDict string
	logLevel     string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-salesview",
		Short: "Retail sales analytics over weekly scanner data",
		Long: `pgedge-salesview loads weekly retail scanner data from CSV exports or a
PostgreSQL warehouse, builds an in-memory sales snapshot, and renders
analytical report views: brand performance rankings, year-to-date market
share, price and velocity trends, and per-product sales history.

Metrics that cannot be computed (missing year-ago data, zero denominators)
are reported as undefined rather than zero.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-salesview.yaml)")
	rootCmd.PersistentFlags().StringSliceVar(&sourceFiles, "file", nil,
		"fact CSV file (repeatable; multiple files unify into one snapshot)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string for a warehouse fact source")
	rootCmd.PersistentFlags().StringVar(&factTable, "table", "",
		"warehouse fact table (default: sales_facts)")
	rootCmd.PersistentFlags().StringVar(&brandDict, "brand-dictionary", "",
		"brand rename dictionary CSV")
	rootCmd.PersistentFlags().StringVar(&categoryDict, "category-dictionary", "",
		"product category dictionary CSV")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(genCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if len(sourceFiles) > 0 {
		cfg.Source.Files = sourceFiles
	}
	if connection != "" {
		cfg.Source.Connection = connection
	}
	if factTable != "" {
		cfg.Source.Table = factTable
	}
	if brandDict != "" {
		cfg.Source.BrandDictionary = brandDict
	}
	if categoryDict != "" {
		cfg.Source.CategoryDictionary = categoryDict
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List available report views",
	Long: `List all registered report views. Each view reads the current sales
snapshot through the same filter scope and renders one or more tables
and charts.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available views:")
		cmd.Println()
		for _, v := range views.All() {
			cmd.Printf("  %-20s - %s\n", v.Name(), v.Description())
		}
		cmd.Println()
		cmd.Println("Use 'pgedge-salesview report --view <name>' to build one.")
	},
}
