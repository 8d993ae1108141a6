// Package productperf implements the product performance view: weekly
// sales, units and average price series per product.
package productperf

import (
	"sort"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// View implements the product performance report.
type View struct{}

// New creates the product performance view.
func New() *View {
	return &View{}
}

// Name returns the view name.
func (v *View) Name() string {
	return "product-performance"
}

// Description returns a human-readable description.
func (v *View) Description() string {
	return "Weekly sales, units and average price trend per product"
}

// Build assembles three trend charts with a series per product and a
// period totals table.
func (v *View) Build(agg *aggregate.Aggregator, sc aggregate.Scope) (*views.Result, error) {
	weeks := views.WeeksInScope(agg, sc)
	labels := views.WeekLabels(weeks)

	products := productsInScope(agg, sc)

	salesChart := views.Chart{Title: "Sales trend", YLabel: "Dollar sales", Labels: labels}
	unitsChart := views.Chart{Title: "Units trend", YLabel: "Unit sales", Labels: labels}
	priceChart := views.Chart{Title: "Average price trend", YLabel: "Price per unit", Labels: labels}

	totals := views.Table{
		Title:   "Product performance",
		Columns: []string{"Product", "Sales", "Units", "Avg Price", "Sales Evo %"},
	}

	for _, product := range products {
		productScope := sc.WithProduct(product)

		sales := views.Series{Name: product}
		units := views.Series{Name: product}
		price := views.Series{Name: product}
		for _, w := range weeks {
			m := agg.Metrics(productScope.WithWeek(w.Ending))
			sales.Points = append(sales.Points, views.Point{Week: w.Label, Value: m.Sales})
			units.Points = append(units.Points, views.Point{Week: w.Label, Value: m.Units})
			price.Points = append(price.Points, views.Point{Week: w.Label, Value: m.AvgPrice})
		}
		salesChart.Series = append(salesChart.Series, sales)
		unitsChart.Series = append(unitsChart.Series, units)
		priceChart.Series = append(priceChart.Series, price)

		m := agg.Metrics(productScope)
		totals.Rows = append(totals.Rows, []any{
			product, views.Money(m.Sales), views.Number(m.Units),
			views.Price(m.AvgPrice), views.Percent(m.SalesEvo),
		})
	}

	return &views.Result{
		View:   v.Name(),
		Tables: []views.Table{totals},
		Charts: []views.Chart{salesChart, unitsChart, priceChart},
	}, nil
}

func productsInScope(agg *aggregate.Aggregator, sc aggregate.Scope) []string {
	seen := make(map[string]struct{})
	var products []string
	for _, f := range agg.Facts(sc) {
		if _, ok := seen[f.Product]; !ok {
			seen[f.Product] = struct{}{}
			products = append(products, f.Product)
		}
	}
	sort.Strings(products)
	return products
}

func init() {
	views.Register(New())
}
