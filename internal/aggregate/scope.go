package aggregate

import (
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

// Scope is an explicit filter selection: a week-ending range plus
// dimension selections. Empty selections and zero times mean "all".
// Scopes are values; the With* helpers return narrowed copies.
type Scope struct {
	From time.Time // inclusive week-ending lower bound
	To   time.Time // inclusive week-ending upper bound

	Brands      []string
	Categories  []string
	Products    []string
	Geographies []string
}

// Matches reports whether a fact falls inside the scope.
func (s Scope) Matches(f *schema.Fact) bool {
	if !s.From.IsZero() && f.Week.Ending.Before(s.From) {
		return false
	}
	if !s.To.IsZero() && f.Week.Ending.After(s.To) {
		return false
	}
	if !contains(s.Brands, f.Brand) {
		return false
	}
	if !contains(s.Categories, f.Category) {
		return false
	}
	if !contains(s.Products, f.Product) {
		return false
	}
	if !contains(s.Geographies, f.Geography) {
		return false
	}
	return true
}

// WithBrand narrows the scope to a single brand.
func (s Scope) WithBrand(brand string) Scope {
	s.Brands = []string{brand}
	return s
}

// WithProduct narrows the scope to a single product.
func (s Scope) WithProduct(product string) Scope {
	s.Products = []string{product}
	return s
}

// WithWeek narrows the scope to a single week-ending date.
func (s Scope) WithWeek(ending time.Time) Scope {
	s.From = ending
	s.To = ending
	return s
}

func contains(selection []string, v string) bool {
	if len(selection) == 0 {
		return true
	}
	for _, s := range selection {
		if s == v {
			return true
		}
	}
	return false
}
