package ingest

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-salesview/internal/logging"
	"github.com/pgEdge/pgedge-salesview/internal/schema"
	"github.com/pgEdge/pgedge-salesview/internal/snapshot"
)

// Options selects the fact source for a snapshot load. Either Files or
// Connection must be set.
type Options struct {
	// Files are CSV fact files; multiple files unify into one fact table.
	Files []string

	// Connection and Table select a PostgreSQL fact source.
	Connection string
	Table      string

	// Optional dimension dictionaries.
	BrandDictFile    string
	CategoryDictFile string
}

// LoadSnapshot loads a full snapshot from the configured source. Any
// schema error aborts the load; nothing is partially applied.
func LoadSnapshot(ctx context.Context, opts Options) (*snapshot.Snapshot, error) {
	dims, err := loadDimensions(opts)
	if err != nil {
		return nil, err
	}

	var facts []schema.Fact
	switch {
	case len(opts.Files) > 0:
		for _, path := range opts.Files {
			fileFacts, err := ReadFacts(path, dims)
			if err != nil {
				return nil, err
			}
			facts = append(facts, fileFacts...)
		}
	case opts.Connection != "":
		facts, err = ReadFactsPostgres(ctx, opts.Connection, opts.Table, dims)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no fact source configured: set source files or a connection string")
	}

	logging.Info().
		Int("facts", len(facts)).
		Int("files", len(opts.Files)).
		Msg("Snapshot loaded")

	return snapshot.New(facts, nil, dims), nil
}

func loadDimensions(opts Options) (*schema.Dimensions, error) {
	dims := schema.NewDimensions()

	if opts.BrandDictFile != "" {
		brands, err := ReadBrandDictionary(opts.BrandDictFile)
		if err != nil {
			return nil, err
		}
		dims.Brands = brands
	}
	if opts.CategoryDictFile != "" {
		categories, err := ReadCategoryDictionary(opts.CategoryDictFile)
		if err != nil {
			return nil, err
		}
		dims.Categories = categories
	}
	return dims, nil
}
