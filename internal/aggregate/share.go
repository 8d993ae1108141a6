package aggregate

import (
	"sort"

	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

// Share is one entity's slice of a scope's sales and units.
type Share struct {
	Entity string

	Sales Value
	Units Value

	// Shares of the scope total. Undefined when the scope total is zero.
	SalesShare Value
	UnitsShare Value

	// Year-ago shares, computed against the year-ago scope totals.
	SalesShareYA Value
	UnitsShareYA Value
}

// GroupFunc extracts the grouping entity from a fact.
type GroupFunc func(*schema.Fact) string

// ByBrand groups facts by canonical brand.
func ByBrand(f *schema.Fact) string { return f.Brand }

// ByProduct groups facts by product.
func ByProduct(f *schema.Fact) string { return f.Product }

// Shares computes market share per entity within a scope. Two passes:
// totals across all entities in the scope first, then per-entity ratios,
// so shares always sum to one when any entity is nonzero.
func (a *Aggregator) Shares(sc Scope, group GroupFunc) []Share {
	type sums struct {
		sales, units     float64
		yaSales, yaUnits float64
		yaObserved       bool
	}

	perEntity := make(map[string]*sums)
	var total, totalYA sums

	for _, f := range a.Facts(sc) {
		e := perEntity[group(f)]
		if e == nil {
			e = &sums{}
			perEntity[group(f)] = e
		}

		e.sales += f.Dollars
		e.units += f.Units
		total.sales += f.Dollars
		total.units += f.Units

		d, u, _, _, ok := a.yearAgo(f)
		if !ok {
			continue
		}
		e.yaObserved = true
		if d.Valid {
			e.yaSales += d.Float64
			totalYA.sales += d.Float64
		}
		if u.Valid {
			e.yaUnits += u.Float64
			totalYA.units += u.Float64
		}
	}

	shares := make([]Share, 0, len(perEntity))
	for entity, e := range perEntity {
		s := Share{
			Entity:     entity,
			Sales:      Defined(e.sales),
			Units:      Defined(e.units),
			SalesShare: Ratio(Defined(e.sales), Defined(total.sales)),
			UnitsShare: Ratio(Defined(e.units), Defined(total.units)),
		}
		if e.yaObserved {
			s.SalesShareYA = Ratio(Defined(e.yaSales), Defined(totalYA.sales))
			s.UnitsShareYA = Ratio(Defined(e.yaUnits), Defined(totalYA.units))
		}
		shares = append(shares, s)
	}

	// Largest sales first, entity name as tiebreak for stable output.
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Sales.Float64 != shares[j].Sales.Float64 {
			return shares[i].Sales.Float64 > shares[j].Sales.Float64
		}
		return shares[i].Entity < shares[j].Entity
	})
	return shares
}
