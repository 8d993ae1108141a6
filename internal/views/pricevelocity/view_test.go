package pricevelocity

import (
	"math"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/schema"
	"github.com/pgEdge/pgedge-salesview/internal/snapshot"
)

func fact(ending time.Time, brand, product string, dollars, units, selling float64) schema.Fact {
	return schema.Fact{
		Week:          schema.WeekInfoForDate(ending),
		Brand:         brand,
		RawBrand:      brand,
		Product:       product,
		Geography:     "Total US",
		Dollars:       dollars,
		Units:         units,
		StoresSelling: selling,
		TotalStores:   selling + 20,
	}
}

func TestBuildSeriesPerBrand(t *testing.T) {
	w1 := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	w2 := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	agg := aggregate.New(snapshot.New([]schema.Fact{
		fact(w1, "Alpine", "Alpine Yogurt", 100, 40, 200),
		fact(w2, "Alpine", "Alpine Yogurt", 120, 48, 200),
		fact(w1, "Borealis", "Borealis Kefir", 60, 20, 100),
	}, nil, nil))

	result, err := New().Build(agg, aggregate.Scope{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(result.Charts) != 2 {
		t.Fatalf("got %d charts, want price and velocity", len(result.Charts))
	}
	priceChart := result.Charts[0]
	if len(priceChart.Labels) != 2 {
		t.Fatalf("got %d week labels, want 2", len(priceChart.Labels))
	}
	if len(priceChart.Series) != 2 {
		t.Fatalf("got %d series, want one per brand", len(priceChart.Series))
	}

	// Series are in sorted brand order.
	if priceChart.Series[0].Name != "Alpine" || priceChart.Series[1].Name != "Borealis" {
		t.Errorf("series order = %s, %s", priceChart.Series[0].Name, priceChart.Series[1].Name)
	}

	// Alpine week 1: 100 dollars / 40 units.
	p := priceChart.Series[0].Points[0].Value
	if !p.Valid || math.Abs(p.Float64-2.5) > 1e-9 {
		t.Errorf("Alpine week 1 price = %+v, want 2.5", p)
	}

	// Borealis has no week 2 fact: its point there is undefined, leaving
	// a gap rather than a zero.
	gap := priceChart.Series[1].Points[1].Value
	if gap.Valid {
		t.Errorf("Borealis week 2 price = %+v, want undefined", gap)
	}

	velocityChart := result.Charts[1]
	vel := velocityChart.Series[0].Points[0].Value
	if !vel.Valid || math.Abs(vel.Float64-0.2) > 1e-9 {
		t.Errorf("Alpine week 1 velocity = %+v, want 0.2", vel)
	}
}

func TestBuildSummaryWeeks(t *testing.T) {
	w1 := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	w2 := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	agg := aggregate.New(snapshot.New([]schema.Fact{
		fact(w1, "Alpine", "Alpine Yogurt", 100, 40, 200),
		fact(w2, "Alpine", "Alpine Yogurt", 120, 48, 200),
	}, nil, nil))

	result, err := New().Build(agg, aggregate.Scope{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	rows := result.Tables[0].Rows
	if len(rows) != 1 {
		t.Fatalf("got %d summary rows, want 1", len(rows))
	}
	if rows[0][0] != "Alpine" {
		t.Errorf("brand = %v, want Alpine", rows[0][0])
	}
	if rows[0][4] != 2 {
		t.Errorf("weeks = %v, want 2", rows[0][4])
	}
}

func TestBuildBrandFilter(t *testing.T) {
	w1 := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	agg := aggregate.New(snapshot.New([]schema.Fact{
		fact(w1, "Alpine", "Alpine Yogurt", 100, 40, 200),
		fact(w1, "Borealis", "Borealis Kefir", 60, 20, 100),
	}, nil, nil))

	result, err := New().Build(agg, aggregate.Scope{Brands: []string{"Borealis"}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(result.Charts[0].Series) != 1 {
		t.Fatalf("got %d series, want only the selected brand", len(result.Charts[0].Series))
	}
	if result.Charts[0].Series[0].Name != "Borealis" {
		t.Errorf("series = %s, want Borealis", result.Charts[0].Series[0].Name)
	}
}
