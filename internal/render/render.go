//-------------------------------------------------------------------------
//
// pgEdge Sales View
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package render serializes view results for display: terminal tables,
// chart HTML pages and JSON.
package render

import (
	"fmt"
	"io"

	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatHTML  = "html"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTable, FormatJSON, FormatHTML}

// Render writes a view result to w in the given format.
func Render(w io.Writer, result *views.Result, format string) error {
	switch format {
	case FormatTable:
		return Tables(w, result)
	case FormatJSON:
		return JSON(w, result)
	case FormatHTML:
		return ChartPage(w, result)
	default:
		return fmt.Errorf("unknown output format: %s (expected table, json or html)", format)
	}
}
