package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    float64
		present bool
		wantErr bool
	}{
		{name: "plain", cell: "1234.5", want: 1234.5, present: true},
		{name: "dollar and commas", cell: "$1,234.56", want: 1234.56, present: true},
		{name: "percent", cell: "87.5%", want: 87.5, present: true},
		{name: "negative", cell: "-42", want: -42, present: true},
		{name: "spaces", cell: " 12 ", want: 12, present: true},
		{name: "empty", cell: "", present: false},
		{name: "blank", cell: "   ", present: false},
		{name: "text", cell: "N/A", wantErr: true},
		{name: "double decorated", cell: "$$--", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, present, err := parseNumeric(tt.cell)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseNumeric(%q) error = %v, wantErr %v", tt.cell, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if present != tt.present {
				t.Fatalf("parseNumeric(%q) present = %v, want %v", tt.cell, present, tt.present)
			}
			if present && v != tt.want {
				t.Errorf("parseNumeric(%q) = %v, want %v", tt.cell, v, tt.want)
			}
		})
	}
}

const factHeader = "Time,Geography,Product,Brand-Int Fresh Value,Size," +
	"Dollar Sales,Unit Sales,ACV Weighted Distribution," +
	"Number of Stores,Number of Stores Selling"

func TestReadFactRows(t *testing.T) {
	data := factHeader + "\n" +
		`Week Ending 01-05-25,Total US,ALPINE Yogurt 32oz,ALPINE,32oz,"$1,250.00",500,87.5%,2000,1800` + "\n" +
		`Week Ending 01-12-25,Total US,ALPINE Yogurt 32oz,ALPINE,32oz,1300,520,88,2000,1820` + "\n"

	facts, err := readFactRows("test.csv", strings.NewReader(data), schema.NewDimensions())
	if err != nil {
		t.Fatalf("readFactRows() error = %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("got %d facts, want 2", len(facts))
	}

	f := facts[0]
	if !f.Week.Ending.Equal(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Week.Ending = %v", f.Week.Ending)
	}
	if f.Dollars != 1250 {
		t.Errorf("Dollars = %v, want 1250 after stripping decorations", f.Dollars)
	}
	if f.ACV != 87.5 {
		t.Errorf("ACV = %v, want 87.5", f.ACV)
	}
	if f.StoresSelling != 1800 || f.TotalStores != 2000 {
		t.Errorf("store counts = %v/%v, want 1800/2000", f.StoresSelling, f.TotalStores)
	}
	if f.Brand != "ALPINE" {
		t.Errorf("Brand = %q, want raw pass-through without a dictionary", f.Brand)
	}
	if f.DollarsYA != nil {
		t.Error("DollarsYA set without year-ago columns in the source")
	}
}

func TestReadFactRowsYearAgoColumns(t *testing.T) {
	data := factHeader + ",Dollar Sales Year Ago,Unit Sales Year Ago\n" +
		"Week Ending 01-05-25,Total US,ALPINE Yogurt 32oz,ALPINE,32oz,1250,500,87.5,2000,1800,1100,460\n" +
		"Week Ending 01-12-25,Total US,ALPINE Yogurt 32oz,ALPINE,32oz,1300,520,88,2000,1820,,\n"

	facts, err := readFactRows("test.csv", strings.NewReader(data), schema.NewDimensions())
	if err != nil {
		t.Fatalf("readFactRows() error = %v", err)
	}
	if facts[0].DollarsYA == nil || *facts[0].DollarsYA != 1100 {
		t.Errorf("DollarsYA = %v, want 1100", facts[0].DollarsYA)
	}
	if facts[0].UnitsYA == nil || *facts[0].UnitsYA != 460 {
		t.Errorf("UnitsYA = %v, want 460", facts[0].UnitsYA)
	}
	// Empty year-ago cells stay unset, not zero.
	if facts[1].DollarsYA != nil {
		t.Errorf("DollarsYA = %v for an empty cell, want nil", *facts[1].DollarsYA)
	}
}

func TestReadFactRowsMissingColumn(t *testing.T) {
	data := "Time,Geography,Product\nWeek Ending 01-05-25,Total US,ALPINE Yogurt 32oz\n"

	_, err := readFactRows("test.csv", strings.NewReader(data), schema.NewDimensions())
	if err == nil {
		t.Fatal("expected schema error for missing required columns")
	}
	var schemaErr *schema.Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *schema.Error", err)
	}
	if len(schemaErr.Missing) == 0 {
		t.Error("schema error reports no missing columns")
	}
	for _, col := range schemaErr.Missing {
		if col == schema.ColTime || col == schema.ColGeography || col == schema.ColProduct {
			t.Errorf("present column %q reported missing", col)
		}
	}
}

func TestReadFactRowsTypeDrift(t *testing.T) {
	data := factHeader + "\n" +
		"Week Ending 01-05-25,Total US,ALPINE Yogurt 32oz,ALPINE,32oz,abc,500,87.5,2000,1800\n" +
		"Week Ending 01-12-25,Total US,ALPINE Yogurt 32oz,ALPINE,32oz,def,520,88,2000,1820\n"

	_, err := readFactRows("test.csv", strings.NewReader(data), schema.NewDimensions())
	if err == nil {
		t.Fatal("expected schema error for a retyped column")
	}
	var schemaErr *schema.Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *schema.Error", err)
	}
	detail, ok := schemaErr.Invalid[schema.ColDollars]
	if !ok {
		t.Fatalf("Invalid = %v, want an entry for %q", schemaErr.Invalid, schema.ColDollars)
	}
	// First offending line wins.
	if !strings.Contains(detail, "line 2") {
		t.Errorf("detail = %q, want the first offending line", detail)
	}
}

func TestReadFactRowsBadWeekLabel(t *testing.T) {
	data := factHeader + "\n" +
		"2025-01-05,Total US,ALPINE Yogurt 32oz,ALPINE,32oz,1250,500,87.5,2000,1800\n"

	_, err := readFactRows("test.csv", strings.NewReader(data), schema.NewDimensions())
	var schemaErr *schema.Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %v, want *schema.Error", err)
	}
	if _, ok := schemaErr.Invalid[schema.ColTime]; !ok {
		t.Errorf("Invalid = %v, want an entry for %q", schemaErr.Invalid, schema.ColTime)
	}
}

func TestReadBrandDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brands.csv")
	data := "Brand,Name\nALPINE,Alpine Creamery\nBOREALIS,Borealis Farms\nALPINE,Duplicate Loses\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}

	brands, err := ReadBrandDictionary(path)
	if err != nil {
		t.Fatalf("ReadBrandDictionary() error = %v", err)
	}
	if len(brands) != 2 {
		t.Fatalf("got %d brands, want 2", len(brands))
	}
	if brands["ALPINE"] != "Alpine Creamery" {
		t.Errorf("ALPINE = %q, want the first entry to win", brands["ALPINE"])
	}
}

func TestReadCategoryDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.csv")
	data := "Product,Category,Subcategory\nALPINE Yogurt 32oz,Dairy,Yogurt\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}

	categories, err := ReadCategoryDictionary(path)
	if err != nil {
		t.Fatalf("ReadCategoryDictionary() error = %v", err)
	}
	e, ok := categories["ALPINE Yogurt 32oz"]
	if !ok {
		t.Fatal("product missing from dictionary")
	}
	if e.Category != "Dairy" || e.Subcat != "Yogurt" {
		t.Errorf("entry = %+v, want Dairy/Yogurt", e)
	}
}

func TestReadDictionaryMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brands.csv")
	if err := os.WriteFile(path, []byte("Brand\nALPINE\n"), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}

	_, err := ReadBrandDictionary(path)
	var schemaErr *schema.Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %v, want *schema.Error", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "Name" {
		t.Errorf("Missing = %v, want [Name]", schemaErr.Missing)
	}
}
