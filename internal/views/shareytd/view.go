// Package shareytd implements the year-to-date market share view:
// share of sales and units per brand, current year vs year ago.
package shareytd

import (
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// View implements the YTD share report.
type View struct{}

// New creates the YTD share view.
func New() *View {
	return &View{}
}

// Name returns the view name.
func (v *View) Name() string {
	return "share-ytd"
}

// Description returns a human-readable description.
func (v *View) Description() string {
	return "Year-to-date market share per brand, by sales and by units, " +
		"current vs year ago"
}

// Build assembles the share table and chart. The YTD range runs from
// January 1 of the latest in-scope week's year through that week; an
// explicit scope range narrower than that wins.
func (v *View) Build(agg *aggregate.Aggregator, sc aggregate.Scope) (*views.Result, error) {
	weeks := views.WeeksInScope(agg, sc)
	if len(weeks) > 0 {
		latest := weeks[len(weeks)-1]
		yearStart := time.Date(latest.Year, time.January, 1, 0, 0, 0, 0, latest.Ending.Location())
		if sc.From.IsZero() || sc.From.Before(yearStart) {
			sc.From = yearStart
		}
		if sc.To.IsZero() || sc.To.After(latest.Ending) {
			sc.To = latest.Ending
		}
	}

	shares := agg.Shares(sc, aggregate.ByBrand)

	table := views.Table{
		Title: "Share YTD",
		Columns: []string{
			"Brand", "Sales", "Share (Sales)", "Share YA (Sales)", "Chg (pts)",
			"Units", "Share (Units)", "Share YA (Units)", "Chg (pts)",
		},
	}
	chart := views.Chart{
		Title:  "Share of sales YTD",
		Kind:   views.ChartBar,
		YLabel: "Share",
	}

	for _, s := range shares {
		table.Rows = append(table.Rows, []any{
			s.Entity,
			views.Money(s.Sales), views.Percent(s.SalesShare), views.Percent(s.SalesShareYA),
			views.Percent(pointChange(s.SalesShare, s.SalesShareYA)),
			views.Number(s.Units), views.Percent(s.UnitsShare), views.Percent(s.UnitsShareYA),
			views.Percent(pointChange(s.UnitsShare, s.UnitsShareYA)),
		})
		chart.Labels = append(chart.Labels, s.Entity)
	}

	cur := views.Series{Name: "Current"}
	ya := views.Series{Name: "Year ago"}
	for _, s := range shares {
		cur.Points = append(cur.Points, views.Point{Week: s.Entity, Value: s.SalesShare})
		ya.Points = append(ya.Points, views.Point{Week: s.Entity, Value: s.SalesShareYA})
	}
	chart.Series = []views.Series{cur, ya}

	return &views.Result{
		View:   v.Name(),
		Tables: []views.Table{table},
		Charts: []views.Chart{chart},
	}, nil
}

// pointChange is the share difference in points, undefined when either
// side is undefined.
func pointChange(cur, ya aggregate.Value) aggregate.Value {
	if !cur.Valid || !ya.Valid {
		return aggregate.Undefined()
	}
	return aggregate.Defined(cur.Float64 - ya.Float64)
}

func init() {
	views.Register(New())
}
