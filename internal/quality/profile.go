// Package quality profiles a tabular source column by column: null
// counts, distinct values, inferred types and numeric stats. Used by the
// check command to vet a source before it becomes the active snapshot.
package quality

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// maxSampleValues caps the distinct sample values kept per column.
const maxSampleValues = 5

// inferSampleSize is how many non-null values type inference looks at.
const inferSampleSize = 20

// ColumnProfile is the quality summary of one source column.
type ColumnProfile struct {
	Name         string
	NonNull      int
	Nulls        int
	PctNulls     float64
	Unique       int
	Samples      []string
	InferredType string

	// Numeric stats; undefined for non-numeric columns.
	Min  aggregate.Value
	Max  aggregate.Value
	Mean aggregate.Value
}

// ProfileFile profiles a CSV file.
func ProfileFile(path string) ([]ColumnProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()
	return Profile(f)
}

// Profile profiles any CSV stream. The column set is taken from the
// header as-is; this works on sources that do not match the fact schema.
func Profile(r io.Reader) ([]ColumnProfile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	type columnState struct {
		nonNull int
		nulls   int
		seen    map[string]struct{}
		samples []string

		numeric    int
		numericRaw int // numeric after stripping $ , % decorations
		sum        float64
		min        float64
		max        float64
	}

	states := make([]*columnState, len(header))
	for i := range states {
		states[i] = &columnState{seen: make(map[string]struct{})}
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		for i, st := range states {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			if cell == "" {
				st.nulls++
				continue
			}

			st.nonNull++
			if _, ok := st.seen[cell]; !ok {
				st.seen[cell] = struct{}{}
				if len(st.samples) < maxSampleValues {
					st.samples = append(st.samples, cell)
				}
			}

			if v, plain, decorated := parseCell(cell); plain || decorated {
				if plain {
					st.numeric++
				}
				st.numericRaw++
				st.sum += v
				if st.numericRaw == 1 || v < st.min {
					st.min = v
				}
				if st.numericRaw == 1 || v > st.max {
					st.max = v
				}
			}
		}
	}

	profiles := make([]ColumnProfile, len(header))
	for i, st := range states {
		total := st.nonNull + st.nulls
		p := ColumnProfile{
			Name:    strings.TrimSpace(header[i]),
			NonNull: st.nonNull,
			Nulls:   st.nulls,
			Unique:  len(st.seen),
			Samples: st.samples,
		}
		if total > 0 {
			p.PctNulls = float64(st.nulls) * 100 / float64(total)
		}
		p.InferredType = inferType(st.nonNull, st.numeric, st.numericRaw)
		if p.InferredType != "text" && st.numericRaw > 0 {
			p.Min = aggregate.Defined(st.min)
			p.Max = aggregate.Defined(st.max)
			p.Mean = aggregate.Defined(st.sum / float64(st.numericRaw))
		}
		profiles[i] = p
	}
	return profiles, nil
}

// parseCell attempts numeric interpretation of a cell, both as-is and
// with currency/percent decorations stripped.
func parseCell(cell string) (v float64, plain, decorated bool) {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f, true, false
	}

	cleaned := strings.ReplaceAll(cell, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.TrimSpace(cleaned)
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return f, false, true
	}
	return 0, false, false
}

// inferType labels a column from a sample of its non-null values,
// mirroring the quality report of the original tooling: numeric, numeric
// stored as text, or text.
func inferType(nonNull, numeric, numericRaw int) string {
	if nonNull == 0 {
		return "text"
	}
	sample := nonNull
	if sample > inferSampleSize {
		sample = inferSampleSize
	}
	switch {
	case numeric >= sample && numeric == nonNull:
		return "numeric"
	case numericRaw == nonNull:
		return "numeric (stored as text)"
	default:
		return "text"
	}
}

// Result renders profiles as a view result for the shared renderers.
func Result(source string, profiles []ColumnProfile) *views.Result {
	t := views.Table{
		Title: fmt.Sprintf("Data quality: %s", source),
		Columns: []string{
			"Column", "Non-null", "Nulls", "Nulls %", "Unique",
			"Type", "Min", "Max", "Mean", "Samples",
		},
	}
	for _, p := range profiles {
		t.Rows = append(t.Rows, []any{
			p.Name, p.NonNull, p.Nulls,
			views.Percent(aggregate.Defined(p.PctNulls / 100)),
			p.Unique, p.InferredType,
			views.Price(p.Min), views.Price(p.Max), views.Price(p.Mean),
			strings.Join(p.Samples, ", "),
		})
	}
	return &views.Result{View: "quality", Tables: []views.Table{t}}
}
