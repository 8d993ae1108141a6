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

// columnIndex maps expected column names to their position in the header.
type columnIndex map[string]int

// readHeader validates the header row against the expected schema and
// returns the column index. Missing required columns are a schema error.
func readHeader(source string, header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	schemaErr := &schema.Error{Source: source, Invalid: make(map[string]string)}
	for _, col := range schema.Columns {
		if _, ok := idx[col.Name]; !ok && col.Required {
			schemaErr.Missing = append(schemaErr.Missing, col.Name)
		}
	}
	if !schemaErr.IsZero() {
		return nil, schemaErr
	}
	return idx, nil
}

// cell returns the row value for a column, or "" when the column is
// absent (only possible for optional columns).
func (idx columnIndex) cell(row []string, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadFacts reads one CSV fact file. Dictionary enrichment is applied per
// row. Type drift in a numeric column aborts with a schema error; the
// caller keeps its prior snapshot.
func ReadFacts(path string, dims *schema.Dimensions) ([]schema.Fact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fact file: %w", err)
	}
	defer f.Close()

	facts, err := readFactRows(path, f, dims)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("file", path).
		Int("facts", len(facts)).
		Msg("Fact file loaded")
	return facts, nil
}

func readFactRows(source string, r io.Reader, dims *schema.Dimensions) ([]schema.Fact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", source, err)
	}
	idx, err := readHeader(source, header)
	if err != nil {
		return nil, err
	}

	schemaErr := &schema.Error{Source: source, Invalid: make(map[string]string)}
	var facts []schema.Fact

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s line %d: %w", source, line, err)
		}

		fact, ok := parseFact(idx, row, line, schemaErr)
		if !ok {
			continue
		}
		dims.Enrich(&fact)
		facts = append(facts, fact)
	}

	if !schemaErr.IsZero() {
		return nil, schemaErr
	}
	return facts, nil
}

// parseFact converts one row. Violations are recorded on schemaErr per
// column (first offending line wins); the row is skipped so the full
// violation set is reported in one pass.
func parseFact(idx columnIndex, row []string, line int, schemaErr *schema.Error) (schema.Fact, bool) {
	var fact schema.Fact
	ok := true

	week, err := schema.ParseWeekLabel(idx.cell(row, schema.ColTime))
	if err != nil {
		recordViolation(schemaErr, schema.ColTime, line, err.Error())
		ok = false
	}
	fact.Week = week

	fact.Geography = idx.cell(row, schema.ColGeography)
	fact.Product = idx.cell(row, schema.ColProduct)
	fact.RawBrand = idx.cell(row, schema.ColBrand)
	fact.Size = idx.cell(row, schema.ColSize)

	required := []struct {
		col  string
		dest *float64
	}{
		{schema.ColDollars, &fact.Dollars},
		{schema.ColUnits, &fact.Units},
		{schema.ColACV, &fact.ACV},
		{schema.ColStoresSelling, &fact.StoresSelling},
		{schema.ColStores, &fact.TotalStores},
	}
	for _, rc := range required {
		v, _, err := parseNumeric(idx.cell(row, rc.col))
		if err != nil {
			recordViolation(schemaErr, rc.col, line, err.Error())
			ok = false
			continue
		}
		*rc.dest = v
	}

	optional := []struct {
		col  string
		dest **float64
	}{
		{schema.ColDollarsYA, &fact.DollarsYA},
		{schema.ColUnitsYA, &fact.UnitsYA},
		{schema.ColACVYA, &fact.ACVYA},
	}
	for _, oc := range optional {
		v, present, err := parseNumeric(idx.cell(row, oc.col))
		if err != nil {
			recordViolation(schemaErr, oc.col, line, err.Error())
			ok = false
			continue
		}
		if present {
			val := v
			*oc.dest = &val
		}
	}

	return fact, ok
}

func recordViolation(schemaErr *schema.Error, col string, line int, detail string) {
	if _, seen := schemaErr.Invalid[col]; !seen {
		schemaErr.Invalid[col] = fmt.Sprintf("line %d: %s", line, detail)
	}
}
