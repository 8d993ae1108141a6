//-------------------------------------------------------------------------
//
// pgEdge Sales View
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema defines the star schema for weekly retail sales data:
// one fact table keyed by week, product and geography, plus brand,
// category, product and week dimensions.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ColumnType describes the expected type of a source column.
type ColumnType int

const (
	// TypeText is a free-form text column.
	TypeText ColumnType = iota
	// TypeNumber is a numeric column; "$", "," and "%" decorations are
	// tolerated, anything else is a schema violation.
	TypeNumber
)

func (t ColumnType) String() string {
	if t == TypeNumber {
		return "number"
	}
	return "text"
}

// Column describes one expected source column.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
}

// Source column names. These are fixed: a renamed or retyped column in a
// refresh is a breaking change and must abort the load.
const (
	ColTime          = "Time"
	ColGeography     = "Geography"
	ColProduct       = "Product"
	ColBrand         = "Brand-Int Fresh Value"
	ColSize          = "Size"
	ColDollars       = "Dollar Sales"
	ColDollarsYA     = "Dollar Sales Year Ago"
	ColUnits         = "Unit Sales"
	ColUnitsYA       = "Unit Sales Year Ago"
	ColACV           = "ACV Weighted Distribution"
	ColACVYA         = "ACV Weighted Distribution Year Ago"
	ColStores        = "Number of Stores"
	ColStoresSelling = "Number of Stores Selling"
)

// Columns is the full expected column set for a fact source.
// Year-ago columns are optional: when the snapshot itself contains the week
// 52 weeks prior they are not needed, and older extracts omit them.
var Columns = []Column{
	{Name: ColTime, Type: TypeText, Required: true},
	{Name: ColGeography, Type: TypeText, Required: true},
	{Name: ColProduct, Type: TypeText, Required: true},
	{Name: ColBrand, Type: TypeText, Required: true},
	{Name: ColSize, Type: TypeText, Required: false},
	{Name: ColDollars, Type: TypeNumber, Required: true},
	{Name: ColDollarsYA, Type: TypeNumber, Required: false},
	{Name: ColUnits, Type: TypeNumber, Required: true},
	{Name: ColUnitsYA, Type: TypeNumber, Required: false},
	{Name: ColACV, Type: TypeNumber, Required: true},
	{Name: ColACVYA, Type: TypeNumber, Required: false},
	{Name: ColStores, Type: TypeNumber, Required: true},
	{Name: ColStoresSelling, Type: TypeNumber, Required: true},
}

// RequiredColumns returns the names of all required columns.
func RequiredColumns() []string {
	var names []string
	for _, c := range Columns {
		if c.Required {
			names = append(names, c.Name)
		}
	}
	return names
}

// Error reports a mismatch between a source and the expected schema.
// A schema error aborts the refresh; the prior snapshot stays in place.
type Error struct {
	// Source identifies the offending file or table.
	Source string

	// Missing lists required columns absent from the source.
	Missing []string

	// Invalid maps column names to a description of the type violation.
	Invalid map[string]string
}

func (e *Error) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		cols := make([]string, 0, len(e.Invalid))
		for c := range e.Invalid {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for i, c := range cols {
			cols[i] = fmt.Sprintf("%s (%s)", c, e.Invalid[c])
		}
		parts = append(parts, fmt.Sprintf("invalid columns: %s", strings.Join(cols, ", ")))
	}
	if len(parts) == 0 {
		parts = append(parts, "schema mismatch")
	}
	return fmt.Sprintf("schema error in %s: %s", e.Source, strings.Join(parts, "; "))
}

// IsZero reports whether no violations were recorded.
func (e *Error) IsZero() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

// Key identifies a fact's dimensional coordinates within a week.
// One fact row exists per week, product and geography.
type Key struct {
	Product   string
	Geography string
}

// Fact is one immutable weekly sales observation.
type Fact struct {
	Week      WeekInfo
	Brand     string // canonical brand after dictionary mapping
	RawBrand  string // brand value as it appears in the source
	Category  string
	Subcat    string
	Product   string
	Size      string
	Geography string

	Dollars       float64
	Units         float64
	ACV           float64
	StoresSelling float64
	TotalStores   float64

	// Same-row year-ago figures carried by some extracts. Used only when
	// the loaded snapshot has no fact 52 weeks prior for this key.
	DollarsYA *float64
	UnitsYA   *float64
	ACVYA     *float64
}

// Key returns the fact's dimensional key.
func (f *Fact) Key() Key {
	return Key{Product: f.Product, Geography: f.Geography}
}

// BrandEntry maps a raw source brand value to its canonical name.
type BrandEntry struct {
	Raw  string
	Name string
}

// CategoryEntry maps a product to its category and subcategory.
type CategoryEntry struct {
	Product  string
	Category string
	Subcat   string
}

// Dimensions holds the dictionary lookups that enrich fact records.
type Dimensions struct {
	// Brands maps raw brand values to canonical names.
	Brands map[string]string

	// Categories maps products to category/subcategory.
	Categories map[string]CategoryEntry
}

// NewDimensions returns empty dimension lookups.
func NewDimensions() *Dimensions {
	return &Dimensions{
		Brands:     make(map[string]string),
		Categories: make(map[string]CategoryEntry),
	}
}

// BrandFor resolves a raw brand value; unmapped values pass through.
func (d *Dimensions) BrandFor(raw string) string {
	if d == nil {
		return raw
	}
	if name, ok := d.Brands[raw]; ok && name != "" {
		return name
	}
	return raw
}

// CategoryFor resolves a product's category entry; ok is false when the
// product is not in the dictionary.
func (d *Dimensions) CategoryFor(product string) (CategoryEntry, bool) {
	if d == nil {
		return CategoryEntry{}, false
	}
	e, ok := d.Categories[product]
	return e, ok
}

// Enrich applies the dictionaries to a fact in place.
func (d *Dimensions) Enrich(f *Fact) {
	f.Brand = d.BrandFor(f.RawBrand)
	if e, ok := d.CategoryFor(f.Product); ok {
		f.Category = e.Category
		f.Subcat = e.Subcat
	}
}

// YearAgoOffset is the distance between a week and its year-ago
// counterpart: exactly 52 weeks.
const YearAgoOffset = 52 * 7 * 24 * time.Hour
