// Package pricevelocity implements the price and velocity trend view:
// weekly average price and velocity series per competitor brand.
package pricevelocity

import (
	"sort"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// View implements the price & velocity trend report.
type View struct{}

// New creates the price & velocity view.
func New() *View {
	return &View{}
}

// Name returns the view name.
func (v *View) Name() string {
	return "price-velocity"
}

// Description returns a human-readable description.
func (v *View) Description() string {
	return "Weekly average price and velocity trend per competitor brand"
}

// Build assembles one price chart and one velocity chart with a series
// per brand, plus a period summary table.
func (v *View) Build(agg *aggregate.Aggregator, sc aggregate.Scope) (*views.Result, error) {
	weeks := views.WeeksInScope(agg, sc)
	labels := views.WeekLabels(weeks)

	brands := brandsInScope(agg, sc)

	priceChart := views.Chart{Title: "Average price trend", YLabel: "Price per unit", Labels: labels}
	velocityChart := views.Chart{Title: "Velocity trend", YLabel: "Units per store selling", Labels: labels}

	summary := views.Table{
		Title:   "Price & velocity",
		Columns: []string{"Brand", "Avg Price", "Avg Price YA", "Velocity", "Weeks"},
	}

	for _, brand := range brands {
		brandScope := sc.WithBrand(brand)

		price := views.Series{Name: brand}
		velocity := views.Series{Name: brand}
		for _, w := range weeks {
			m := agg.Metrics(brandScope.WithWeek(w.Ending))
			price.Points = append(price.Points, views.Point{Week: w.Label, Value: m.AvgPrice})
			velocity.Points = append(velocity.Points, views.Point{Week: w.Label, Value: m.Velocity})
		}
		priceChart.Series = append(priceChart.Series, price)
		velocityChart.Series = append(velocityChart.Series, velocity)

		m := agg.Metrics(brandScope)
		summary.Rows = append(summary.Rows, []any{
			brand, views.Price(m.AvgPrice), views.Price(m.AvgPriceYA),
			views.Price(m.Velocity), m.Weeks,
		})
	}

	return &views.Result{
		View:   v.Name(),
		Tables: []views.Table{summary},
		Charts: []views.Chart{priceChart, velocityChart},
	}, nil
}

func brandsInScope(agg *aggregate.Aggregator, sc aggregate.Scope) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, f := range agg.Facts(sc) {
		if _, ok := seen[f.Brand]; !ok {
			seen[f.Brand] = struct{}{}
			brands = append(brands, f.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

func init() {
	views.Register(New())
}
