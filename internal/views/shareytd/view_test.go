package shareytd

import (
	"math"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/schema"
	"github.com/pgEdge/pgedge-salesview/internal/snapshot"
	"github.com/pgEdge/pgedge-salesview/internal/views"
)

func fact(ending time.Time, brand, product string, dollars, units float64) schema.Fact {
	return schema.Fact{
		Week:      schema.WeekInfoForDate(ending),
		Brand:     brand,
		RawBrand:  brand,
		Product:   product,
		Geography: "Total US",
		Dollars:   dollars,
		Units:     units,
	}
}

func TestBuildSharesAndChart(t *testing.T) {
	w := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	agg := aggregate.New(snapshot.New([]schema.Fact{
		fact(w, "Alpine", "Alpine Yogurt", 75, 30),
		fact(w, "Borealis", "Borealis Kefir", 25, 10),
	}, nil, nil))

	result, err := New().Build(agg, aggregate.Scope{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	table := result.Tables[0]
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "Alpine" {
		t.Errorf("top brand = %v, want Alpine (largest sales first)", table.Rows[0][0])
	}
	share := table.Rows[0][2].(views.Cell)
	if !share.Value.Valid || math.Abs(share.Value.Float64-0.75) > 1e-9 {
		t.Errorf("Alpine sales share = %+v, want 0.75", share.Value)
	}

	if len(result.Charts) != 1 {
		t.Fatalf("got %d charts, want 1", len(result.Charts))
	}
	chart := result.Charts[0]
	if chart.Kind != views.ChartBar {
		t.Errorf("chart kind = %q, want bar", chart.Kind)
	}
	if len(chart.Labels) != 2 || len(chart.Series) != 2 {
		t.Errorf("chart shape = %d labels / %d series, want 2/2", len(chart.Labels), len(chart.Series))
	}
}

func TestBuildYTDRange(t *testing.T) {
	// Latest week is March 2025; a December 2024 week must fall outside
	// the derived YTD range.
	dec := time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	agg := aggregate.New(snapshot.New([]schema.Fact{
		fact(dec, "Alpine", "Alpine Yogurt", 1000, 400),
		fact(mar, "Alpine", "Alpine Yogurt", 60, 24),
		fact(mar, "Borealis", "Borealis Kefir", 40, 16),
	}, nil, nil))

	result, err := New().Build(agg, aggregate.Scope{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	table := result.Tables[0]
	byBrand := map[string]views.Cell{}
	for _, row := range table.Rows {
		byBrand[row[0].(string)] = row[2].(views.Cell)
	}

	alpine := byBrand["Alpine"]
	if !alpine.Value.Valid || math.Abs(alpine.Value.Float64-0.6) > 1e-9 {
		t.Errorf("Alpine share = %+v, want 0.6 excluding the prior-year week", alpine.Value)
	}
}

func TestBuildEmptySnapshot(t *testing.T) {
	agg := aggregate.New(snapshot.New(nil, nil, nil))

	result, err := New().Build(agg, aggregate.Scope{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(result.Tables[0].Rows) != 0 {
		t.Errorf("got %d rows for an empty snapshot, want 0", len(result.Tables[0].Rows))
	}
}

func TestPointChange(t *testing.T) {
	got := pointChange(aggregate.Defined(0.3), aggregate.Defined(0.25))
	if !got.Valid || math.Abs(got.Float64-0.05) > 1e-9 {
		t.Errorf("pointChange = %+v, want 0.05", got)
	}
	if pointChange(aggregate.Defined(0.3), aggregate.Undefined()).Valid {
		t.Error("pointChange defined with an undefined year-ago share")
	}
}
