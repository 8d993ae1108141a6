package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pgEdge/pgedge-salesview/internal/logging"
	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

// Brand dictionary columns: raw brand value and its canonical name.
const (
	brandDictKeyCol   = "Brand"
	brandDictValueCol = "Name"
)

// Category dictionary columns: product key, category, subcategory.
const (
	categoryDictKeyCol    = "Product"
	categoryDictCatCol    = "Category"
	categoryDictSubcatCol = "Subcategory"
)

// ReadBrandDictionary reads the brand rename dictionary. The first entry
// per raw value wins, matching the source deduplication.
func ReadBrandDictionary(path string) (map[string]string, error) {
	rows, err := readDictionary(path, []string{brandDictKeyCol, brandDictValueCol})
	if err != nil {
		return nil, err
	}

	brands := make(map[string]string, len(rows))
	for _, row := range rows {
		raw, name := row[0], row[1]
		if raw == "" {
			continue
		}
		if _, ok := brands[raw]; !ok {
			brands[raw] = name
		}
	}

	logging.Debug().Str("file", path).Int("brands", len(brands)).Msg("Brand dictionary loaded")
	return brands, nil
}

// ReadCategoryDictionary reads the product to category/subcategory
// dictionary. The first entry per product wins.
func ReadCategoryDictionary(path string) (map[string]schema.CategoryEntry, error) {
	rows, err := readDictionary(path, []string{categoryDictKeyCol, categoryDictCatCol, categoryDictSubcatCol})
	if err != nil {
		return nil, err
	}

	categories := make(map[string]schema.CategoryEntry, len(rows))
	for _, row := range rows {
		product := row[0]
		if product == "" {
			continue
		}
		if _, ok := categories[product]; !ok {
			categories[product] = schema.CategoryEntry{
				Product:  product,
				Category: row[1],
				Subcat:   row[2],
			}
		}
	}

	logging.Debug().Str("file", path).Int("products", len(categories)).Msg("Category dictionary loaded")
	return categories, nil
}

// readDictionary reads a CSV and projects the wanted columns, validating
// they exist.
func readDictionary(path string, wanted []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	schemaErr := &schema.Error{Source: path}
	for _, col := range wanted {
		if _, ok := idx[col]; !ok {
			schemaErr.Missing = append(schemaErr.Missing, col)
		}
	}
	if !schemaErr.IsZero() {
		return nil, schemaErr
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		projected := make([]string, len(wanted))
		for i, col := range wanted {
			if j := idx[col]; j < len(row) {
				projected[i] = strings.TrimSpace(row[j])
			}
		}
		rows = append(rows, projected)
	}
	return rows, nil
}
