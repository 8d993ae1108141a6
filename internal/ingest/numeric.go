//-------------------------------------------------------------------------
//
// pgEdge Sales View
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package ingest loads weekly sales facts from CSV files or a PostgreSQL
// table into an in-memory snapshot, validating the expected star schema
// on the way in.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNumeric converts a source cell to a float, tolerating the "$",
// thousands-comma and "%" decorations syndicated extracts carry.
// An empty cell returns ok=false with no error; anything else that does
// not parse is a type violation.
func parseNumeric(cell string) (v float64, ok bool, err error) {
	cleaned := strings.TrimSpace(cell)
	if cleaned == "" {
		return 0, false, nil
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.TrimSpace(cleaned)

	f, parseErr := strconv.ParseFloat(cleaned, 64)
	if parseErr != nil {
		return 0, false, fmt.Errorf("not a number: %q", cell)
	}
	return f, true, nil
}
