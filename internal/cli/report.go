package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/ingest"
	"github.com/pgEdge/pgedge-salesview/internal/logging"
	"github.com/pgEdge/pgedge-salesview/internal/render"
	"github.com/pgEdge/pgedge-salesview/internal/snapshot"
	"github.com/pgEdge/pgedge-salesview/internal/views"
)

var (
	reportView        string
	reportFrom        string
	reportTo          string
	reportBrands      []string
	reportCategories  []string
	reportProducts    []string
	reportGeographies []string
	reportFormat      string
	reportOutput      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a report view from the configured fact source",
	Long: `Load the fact source into a snapshot, apply the filter scope, and
render the selected view.

Filters narrow the snapshot; an unset filter means all values. The week
range bounds week-ending dates inclusively.

Example:
  pgedge-salesview report --view brand-performance --file sales_facts.csv
  pgedge-salesview report --view share-ytd --brand Alpine --format json
  pgedge-salesview report --view price-velocity --from 2025-01-01 --to 2025-06-30 \
    --format html --output trends.html`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportView, "view", "",
		"report view to build (see 'views' for the list)")
	reportCmd.Flags().StringVar(&reportFrom, "from", "",
		"first week-ending date, inclusive (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "",
		"last week-ending date, inclusive (YYYY-MM-DD)")
	reportCmd.Flags().StringSliceVar(&reportBrands, "brand", nil,
		"brand filter (repeatable)")
	reportCmd.Flags().StringSliceVar(&reportCategories, "category", nil,
		"category filter (repeatable)")
	reportCmd.Flags().StringSliceVar(&reportProducts, "product", nil,
		"product filter (repeatable)")
	reportCmd.Flags().StringSliceVar(&reportGeographies, "geography", nil,
		"geography filter (repeatable)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"output format: table, json or html")
	reportCmd.Flags().StringVar(&reportOutput, "output", "",
		"write output to this file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportView != "" {
		cfg.Report.View = reportView
	}
	if reportFrom != "" {
		cfg.Report.From = reportFrom
	}
	if reportTo != "" {
		cfg.Report.To = reportTo
	}
	if len(reportBrands) > 0 {
		cfg.Report.Brands = reportBrands
	}
	if len(reportCategories) > 0 {
		cfg.Report.Categories = reportCategories
	}
	if len(reportProducts) > 0 {
		cfg.Report.Products = reportProducts
	}
	if len(reportGeographies) > 0 {
		cfg.Report.Geographies = reportGeographies
	}
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportOutput != "" {
		cfg.Report.Output = reportOutput
	}

	// Validate configuration
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	view, err := views.Get(cfg.Report.View)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store := snapshot.NewStore()
	if err := store.Refresh(func() (*snapshot.Snapshot, error) {
		return ingest.LoadSnapshot(ctx, sourceOptions())
	}); err != nil {
		return err
	}
	snap := store.Current()

	from, to, err := cfg.WeekRange()
	if err != nil {
		return err
	}
	sc := aggregate.Scope{
		From:        from,
		To:          to,
		Brands:      cfg.Report.Brands,
		Categories:  cfg.Report.Categories,
		Products:    cfg.Report.Products,
		Geographies: cfg.Report.Geographies,
	}

	logging.Info().
		Str("view", view.Name()).
		Int("facts", len(snap.Facts())).
		Int("weeks", snap.Weeks().Len()).
		Time("loaded_at", snap.LoadedAt()).
		Msg("Building report")

	result, err := view.Build(aggregate.New(snap), sc)
	if err != nil {
		return fmt.Errorf("failed to build view %s: %w", view.Name(), err)
	}

	return writeResult(result)
}

func sourceOptions() ingest.Options {
	return ingest.Options{
		Files:            cfg.Source.Files,
		Connection:       cfg.Source.Connection,
		Table:            cfg.Source.Table,
		BrandDictFile:    cfg.Source.BrandDictionary,
		CategoryDictFile: cfg.Source.CategoryDictionary,
	}
}

func writeResult(result *views.Result) error {
	if cfg.Report.Output == "" {
		return render.Render(os.Stdout, result, cfg.Report.Format)
	}

	f, err := os.Create(cfg.Report.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := render.Render(f, result, cfg.Report.Format); err != nil {
		return err
	}
	logging.Info().
		Str("file", cfg.Report.Output).
		Str("format", cfg.Report.Format).
		Msg("Report written")
	return nil
}
