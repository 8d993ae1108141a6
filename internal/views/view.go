// Package views defines the report view interface and implementations.
// A view is a pure function of a snapshot and a filter scope; all state
// lives in the snapshot it is handed.
package views

import (
	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
)

// Format describes how a cell value is displayed.
type Format int

const (
	// FormatNumber is a plain number.
	FormatNumber Format = iota
	// FormatMoney is a currency amount.
	FormatMoney
	// FormatPercent is a ratio displayed as a percentage.
	FormatPercent
	// FormatPrice is a unit price.
	FormatPrice
)

// Cell wraps a metric value with its display format.
type Cell struct {
	Value  aggregate.Value
	Format Format
}

// MarshalJSON serializes the raw value; undefined renders as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	return c.Value.MarshalJSON()
}

// Number wraps a value as a plain number cell.
func Number(v aggregate.Value) Cell { return Cell{Value: v, Format: FormatNumber} }

// Money wraps a value as a currency cell.
func Money(v aggregate.Value) Cell { return Cell{Value: v, Format: FormatMoney} }

// Percent wraps a ratio as a percentage cell.
func Percent(v aggregate.Value) Cell { return Cell{Value: v, Format: FormatPercent} }

// Price wraps a value as a unit price cell.
func Price(v aggregate.Value) Cell { return Cell{Value: v, Format: FormatPrice} }

// Table is one named table of a view result. Cells hold strings, ints or
// Cell values; renderers decide presentation.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]any
}

// Point is one weekly observation in a series.
type Point struct {
	Week  string // week label on the x axis
	Value aggregate.Value
}

// Series is a named weekly series.
type Series struct {
	Name   string
	Points []Point
}

// Chart kinds.
const (
	ChartLine = "line"
	ChartBar  = "bar"
)

// Chart is one named chart of a view result.
type Chart struct {
	Title  string
	Kind   string // ChartLine (default) or ChartBar
	YLabel string
	Labels []string // shared x axis labels
	Series []Series
}

// Result is the render-agnostic output of a view.
type Result struct {
	View   string
	Tables []Table
	Charts []Chart
}

// View defines the interface that all report views must implement.
type View interface {
	// Name returns the view name used on the command line.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Build assembles the view from the aggregator for the given scope.
	Build(agg *aggregate.Aggregator, sc aggregate.Scope) (*Result, error)
}
