package aggregate

import (
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/schema"
	"github.com/pgEdge/pgedge-salesview/internal/snapshot"
)

// Metrics is the standard metric block for one scope.
type Metrics struct {
	Sales         Value // sum of dollar sales
	Units         Value // sum of unit sales
	ACV           Value // max ACV weighted distribution
	StoresSelling Value // max stores selling
	TotalStores   Value // max store count

	SalesYA         Value
	UnitsYA         Value
	ACVYA           Value
	StoresSellingYA Value

	SalesEvo Value // (Sales - SalesYA) / SalesYA
	UnitsEvo Value

	AvgPrice   Value // Sales / Units
	AvgPriceYA Value

	// Velocity is average weekly units per average weekly store selling
	// over the scoped week range.
	Velocity Value

	// Weeks is the number of distinct weeks observed in scope.
	Weeks int
}

// Aggregator computes metrics over one snapshot. It is stateless beyond
// the snapshot reference; every call takes an explicit scope.
type Aggregator struct {
	snap *snapshot.Snapshot
}

// New returns an aggregator over the given snapshot.
func New(snap *snapshot.Snapshot) *Aggregator {
	return &Aggregator{snap: snap}
}

// Snapshot returns the snapshot the aggregator reads from.
func (a *Aggregator) Snapshot() *snapshot.Snapshot {
	return a.snap
}

// Facts returns the in-scope facts.
func (a *Aggregator) Facts(sc Scope) []*schema.Fact {
	all := a.snap.Facts()
	var out []*schema.Fact
	for i := range all {
		if sc.Matches(&all[i]) {
			out = append(out, &all[i])
		}
	}
	return out
}

// yearAgo resolves a fact's year-ago figures. The snapshot's own row 52
// weeks prior wins; extracts that carry year-ago columns fill the gap
// when that week is not loaded. ok is false when neither exists.
func (a *Aggregator) yearAgo(f *schema.Fact) (dollars, units, acv, storesSelling Value, ok bool) {
	if ya, found := a.snap.YearAgo(f); found {
		return Defined(ya.Dollars), Defined(ya.Units), Defined(ya.ACV), Defined(ya.StoresSelling), true
	}
	if f.DollarsYA == nil && f.UnitsYA == nil && f.ACVYA == nil {
		return Undefined(), Undefined(), Undefined(), Undefined(), false
	}
	dollars, units, acv = fromPtr(f.DollarsYA), fromPtr(f.UnitsYA), fromPtr(f.ACVYA)
	return dollars, units, acv, Undefined(), true
}

func fromPtr(p *float64) Value {
	if p == nil {
		return Undefined()
	}
	return Defined(*p)
}

// Metrics computes the standard metric block for a scope. Sums over an
// empty scope are zero; maxes, averages and YoY fields are undefined.
func (a *Aggregator) Metrics(sc Scope) Metrics {
	var (
		m          Metrics
		sales      float64
		units      float64
		stores     float64
		weeks      = make(map[time.Time]struct{})
		haveFacts  bool
		yaSales    float64
		yaUnits    float64
		yaObserved bool
	)

	for _, f := range a.Facts(sc) {
		haveFacts = true
		sales += f.Dollars
		units += f.Units
		stores += f.StoresSelling
		weeks[f.Week.Ending] = struct{}{}

		m.ACV = maxValue(m.ACV, f.ACV)
		m.StoresSelling = maxValue(m.StoresSelling, f.StoresSelling)
		m.TotalStores = maxValue(m.TotalStores, f.TotalStores)

		d, u, acv, ss, ok := a.yearAgo(f)
		if !ok {
			continue
		}
		yaObserved = true
		if d.Valid {
			yaSales += d.Float64
		}
		if u.Valid {
			yaUnits += u.Float64
		}
		if acv.Valid {
			m.ACVYA = maxValue(m.ACVYA, acv.Float64)
		}
		if ss.Valid {
			m.StoresSellingYA = maxValue(m.StoresSellingYA, ss.Float64)
		}
	}

	m.Sales = Defined(sales)
	m.Units = Defined(units)
	m.Weeks = len(weeks)

	if yaObserved {
		m.SalesYA = Defined(yaSales)
		m.UnitsYA = Defined(yaUnits)
	}

	m.SalesEvo = Evolution(m.Sales, m.SalesYA)
	m.UnitsEvo = Evolution(m.Units, m.UnitsYA)
	m.AvgPrice = Ratio(m.Sales, m.Units)
	m.AvgPriceYA = Ratio(m.SalesYA, m.UnitsYA)

	// Average weekly units over average weekly stores selling. The week
	// counts cancel, so this is total units over total store-weeks.
	if haveFacts && stores > 0 {
		m.Velocity = Defined(units / stores)
	}

	return m
}

func maxValue(cur Value, v float64) Value {
	if !cur.Valid || v > cur.Float64 {
		return Defined(v)
	}
	return cur
}
