package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-salesview/internal/logging"
	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

// DefaultFactTable is the warehouse table facts are read from when the
// configuration does not name one.
const DefaultFactTable = "sales_facts"

// Warehouse column names. Fixed, like the CSV header: renames break the
// refresh.
var factColumns = []string{
	"week_ending",
	"geography",
	"product",
	"brand",
	"size",
	"dollar_sales",
	"unit_sales",
	"acv_weighted_distribution",
	"number_of_stores_selling",
	"number_of_stores",
	"dollar_sales_year_ago",
	"unit_sales_year_ago",
	"acv_weighted_distribution_year_ago",
}

// Connect establishes a small read-only pool to the warehouse.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// A snapshot load is one sequential scan; a handful of connections
	// is plenty.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	logging.Debug().
		Str("host", config.ConnConfig.Host).
		Uint16("port", config.ConnConfig.Port).
		Str("database", config.ConnConfig.Database).
		Msg("Connecting to warehouse")

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", config.ConnConfig.Host).
		Str("database", config.ConnConfig.Database).
		Msg("Connected to warehouse")

	return pool, nil
}

// ReadFactsPostgres reads the full fact table from a warehouse table.
// A missing table or column surfaces as a schema error so the caller
// keeps its prior snapshot, same as a drifted CSV.
func ReadFactsPostgres(ctx context.Context, connString, table string, dims *schema.Dimensions) ([]schema.Fact, error) {
	if table == "" {
		table = DefaultFactTable
	}

	pool, err := Connect(ctx, connString)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	query := buildFactQuery(table)
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, &schema.Error{
			Source:  table,
			Invalid: map[string]string{table: err.Error()},
		}
	}
	defer rows.Close()

	var facts []schema.Fact
	for rows.Next() {
		var (
			f          schema.Fact
			weekEnding time.Time
			size       *string
		)
		err := rows.Scan(
			&weekEnding,
			&f.Geography,
			&f.Product,
			&f.RawBrand,
			&size,
			&f.Dollars,
			&f.Units,
			&f.ACV,
			&f.StoresSelling,
			&f.TotalStores,
			&f.DollarsYA,
			&f.UnitsYA,
			&f.ACVYA,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fact row: %w", err)
		}

		f.Week = schema.WeekInfoForDate(weekEnding)
		if size != nil {
			f.Size = *size
		}
		dims.Enrich(&f)
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fact rows: %w", err)
	}

	logging.Debug().
		Str("table", table).
		Int("facts", len(facts)).
		Msg("Warehouse facts loaded")
	return facts, nil
}

func buildFactQuery(table string) string {
	cols := ""
	for i, c := range factColumns {
		if i > 0 {
			cols += ", "
		}
		cols += pgx.Identifier{c}.Sanitize()
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY week_ending",
		cols, pgx.Identifier{table}.Sanitize())
}
