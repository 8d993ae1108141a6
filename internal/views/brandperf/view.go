// Package brandperf implements the brand performance view: products in
// the scoped brand selection ranked by dollar sales, with rank movement
// against the year-ago period.
package brandperf

import (
	"sort"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// View implements the brand performance report.
type View struct{}

// New creates the brand performance view.
func New() *View {
	return &View{}
}

// Name returns the view name.
func (v *View) Name() string {
	return "brand-performance"
}

// Description returns a human-readable description.
func (v *View) Description() string {
	return "Ranked product table for the selected brands: sales, units, " +
		"price, distribution and velocity, with rank movement vs year ago"
}

type productRow struct {
	product string
	brand   string
	m       aggregate.Metrics
	rank    int
	rankYA  int // 0 when the product has no defined year-ago sales
}

// Build assembles the ranked product table.
func (v *View) Build(agg *aggregate.Aggregator, sc aggregate.Scope) (*views.Result, error) {
	byProduct := make(map[string]*productRow)
	for _, f := range agg.Facts(sc) {
		if _, ok := byProduct[f.Product]; !ok {
			byProduct[f.Product] = &productRow{product: f.Product, brand: f.Brand}
		}
	}

	rows := make([]*productRow, 0, len(byProduct))
	for _, r := range byProduct {
		r.m = agg.Metrics(sc.WithProduct(r.product))
		rows = append(rows, r)
	}

	rank(rows, func(r *productRow) aggregate.Value { return r.m.Sales },
		func(r *productRow, n int) { r.rank = n })
	rank(rows, func(r *productRow) aggregate.Value { return r.m.SalesYA },
		func(r *productRow, n int) { r.rankYA = n })

	sort.Slice(rows, func(i, j int) bool { return rows[i].rank < rows[j].rank })

	table := views.Table{
		Title: "Brand performance",
		Columns: []string{
			"Rank", "Rank Chg", "Product", "Brand",
			"Sales", "Units", "Avg Price", "ACV", "Velocity", "Sales Evo %",
		},
	}
	for _, r := range rows {
		rankDelta := aggregate.Undefined()
		if r.rankYA > 0 {
			// Positive means the product moved up since last year.
			rankDelta = aggregate.Defined(float64(r.rankYA - r.rank))
		}
		// ACV arrives in percent points; the percent format expects a
		// fraction.
		acv := r.m.ACV
		if acv.Valid {
			acv = aggregate.Defined(acv.Float64 / 100)
		}
		table.Rows = append(table.Rows, []any{
			r.rank, views.Number(rankDelta), r.product, r.brand,
			views.Money(r.m.Sales), views.Number(r.m.Units), views.Price(r.m.AvgPrice),
			views.Percent(acv), views.Price(r.m.Velocity), views.Percent(r.m.SalesEvo),
		})
	}

	return &views.Result{View: v.Name(), Tables: []views.Table{table}}, nil
}

// rank assigns dense 1-based ranks by descending value. Rows whose value
// is undefined get no rank.
func rank(rows []*productRow, value func(*productRow) aggregate.Value, assign func(*productRow, int)) {
	ranked := make([]*productRow, 0, len(rows))
	for _, r := range rows {
		if value(r).Valid {
			ranked = append(ranked, r)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		vi, vj := value(ranked[i]), value(ranked[j])
		if vi.Float64 != vj.Float64 {
			return vi.Float64 > vj.Float64
		}
		return ranked[i].product < ranked[j].product
	})
	for i, r := range ranked {
		assign(r, i+1)
	}
}

func init() {
	views.Register(New())
}
