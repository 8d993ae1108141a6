package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-salesview/internal/logging"
	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

// Synthetic pools. Deliberately fictional; no real brand appears.
var (
	brandNames    = []string{"Evergreen", "Solstice", "Cascade", "Lumen", "Harbor", "Mesa", "Redwood", "Juniper", "Arroyo", "Summit"}
	brandSuffixes = []string{"Foods", "Kitchen", "Harvest", "Market"}

	categories = map[string][]string{
		"Snacks":    {"Chips", "Crackers", "Nuts"},
		"Beverages": {"Sparkling Water", "Juice", "Energy Drinks"},
		"Dairy":     {"Yogurt", "Cheese", "Butter"},
		"Frozen":    {"Frozen Meals", "Ice Cream", "Frozen Vegetables"},
		"Pantry":    {"Pasta", "Sauces", "Rice"},
		"Breakfast": {"Cereal", "Oatmeal", "Granola"},
	}

	geographies = []string{
		"Total US - Multi Outlet+",
		"Total US - Grocery",
		"Northeast",
		"Southeast",
		"Midwest",
		"West",
	}

	sizes = []string{"8 oz", "12 oz", "16 oz", "24 oz", "32 oz", "48 oz", "64 oz"}
)

// SampleConfig controls sample dataset generation.
type SampleConfig struct {
	Weeks       int
	Brands      int
	Products    int
	Geographies int

	// Start is the first week-ending date.
	Start time.Time

	// Seed makes generation reproducible when nonzero.
	Seed uint64
}

// DefaultSampleConfig returns a small but representative sample.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Weeks:       26,
		Brands:      6,
		Products:    40,
		Geographies: 3,
		Start:       time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
	}
}

// Output file names inside the target directory.
const (
	FactFile         = "sales_facts.csv"
	BrandDictFile    = "brand_dictionary.csv"
	CategoryDictFile = "category_dictionary.csv"
)

type sampleBrand struct {
	raw  string // uppercased source value
	name string // canonical name
}

type sampleProduct struct {
	name   string
	brand  sampleBrand
	cat    string
	subcat string
	size   string
}

// GenerateSample writes a fact CSV plus brand and category dictionary
// CSVs into dir.
func GenerateSample(dir string, cfg SampleConfig) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	faker := NewFaker()
	if cfg.Seed != 0 {
		faker = NewFakerWithSeed(cfg.Seed)
	}
	if cfg.Start.IsZero() {
		cfg.Start = DefaultSampleConfig().Start
	}

	brands := makeBrands(faker, cfg.Brands)
	products := makeProducts(faker, cfg.Products, brands)
	geos := geographies
	if cfg.Geographies > 0 && cfg.Geographies < len(geos) {
		geos = geos[:cfg.Geographies]
	}

	if err := writeBrandDict(filepath.Join(dir, BrandDictFile), brands); err != nil {
		return err
	}
	if err := writeCategoryDict(filepath.Join(dir, CategoryDictFile), products); err != nil {
		return err
	}
	if err := writeFacts(filepath.Join(dir, FactFile), faker, cfg, products, geos); err != nil {
		return err
	}

	logging.Info().
		Str("dir", dir).
		Int("weeks", cfg.Weeks).
		Int("products", len(products)).
		Int("geographies", len(geos)).
		Msg("Sample dataset generated")
	return nil
}

func makeBrands(faker *Faker, n int) []sampleBrand {
	brands := make([]sampleBrand, 0, n)
	seen := make(map[string]struct{})
	for len(brands) < n {
		name := Choose(faker, brandNames) + " " + Choose(faker, brandSuffixes)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		brands = append(brands, sampleBrand{raw: strings.ToUpper(name), name: name})
	}
	return brands
}

func makeProducts(faker *Faker, n int, brands []sampleBrand) []sampleProduct {
	catNames := make([]string, 0, len(categories))
	for c := range categories {
		catNames = append(catNames, c)
	}

	products := make([]sampleProduct, 0, n)
	for i := 0; i < n; i++ {
		cat := Choose(faker, catNames)
		subcat := Choose(faker, categories[cat])
		brand := Choose(faker, brands)
		size := Choose(faker, sizes)
		barcode := faker.Digits(13)
		products = append(products, sampleProduct{
			name:   fmt.Sprintf("%s %s %s - %s", brand.raw, subcat, size, barcode),
			brand:  brand,
			cat:    cat,
			subcat: subcat,
			size:   size,
		})
	}
	return products
}

func writeBrandDict(path string, brands []sampleBrand) error {
	rows := [][]string{{"Brand", "Name"}}
	for _, b := range brands {
		rows = append(rows, []string{b.raw, b.name})
	}
	return writeCSV(path, rows)
}

func writeCategoryDict(path string, products []sampleProduct) error {
	rows := [][]string{{"Product", "Category", "Subcategory"}}
	for _, p := range products {
		rows = append(rows, []string{p.name, p.cat, p.subcat})
	}
	return writeCSV(path, rows)
}

func writeFacts(path string, faker *Faker, cfg SampleConfig, products []sampleProduct, geos []string) error {
	header := []string{
		schema.ColTime,
		schema.ColGeography,
		schema.ColProduct,
		schema.ColBrand,
		schema.ColSize,
		schema.ColDollars,
		schema.ColDollarsYA,
		schema.ColUnits,
		schema.ColUnitsYA,
		schema.ColACV,
		schema.ColACVYA,
		schema.ColStores,
		schema.ColStoresSelling,
	}
	rows := [][]string{header}

	for w := 0; w < cfg.Weeks; w++ {
		week := schema.WeekInfoForDate(cfg.Start.AddDate(0, 0, 7*w))
		for _, p := range products {
			for _, geo := range geos {
				dollars := faker.Price(100, 5000)
				units := faker.Float64(1, 1200)
				stores := float64(faker.Int(200, 2000))
				selling := stores * faker.Float64(0.3, 0.95)

				rows = append(rows, []string{
					week.Label,
					geo,
					p.name,
					p.brand.raw,
					p.size,
					money(dollars),
					money(dollars * faker.Float64(0.8, 1.2)),
					num(units),
					num(units * faker.Float64(0.8, 1.2)),
					num(faker.Float64(5, 95)),
					num(faker.Float64(5, 95)),
					num(stores),
					num(selling),
				})
			}
		}
	}
	return writeCSV(path, rows)
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
