package render

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// undefinedCell is how an undefined metric displays in a table.
const undefinedCell = "-"

// Tables renders every table of a result to w.
func Tables(w io.Writer, result *views.Result) error {
	for i, t := range result.Tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderTable(w, t)
	}
	return nil
}

func renderTable(w io.Writer, t views.Table) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(t.Title)

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		out := make(table.Row, len(row))
		for i, cell := range row {
			out[i] = formatCell(cell)
		}
		tw.AppendRow(out)
	}

	tw.Render()
}

// formatCell renders one cell for terminal display.
func formatCell(cell any) any {
	c, ok := cell.(views.Cell)
	if !ok {
		return cell
	}
	if !c.Value.Valid {
		return undefinedCell
	}

	v := c.Value.Float64
	switch c.Format {
	case views.FormatMoney:
		// FormatFloat keeps both cent digits; CommafWithDigits would
		// trim a trailing zero ("$1,234.5").
		return "$" + humanize.FormatFloat("#,###.##", v)
	case views.FormatPercent:
		return fmt.Sprintf("%.1f%%", v*100)
	case views.FormatPrice:
		return fmt.Sprintf("%.2f", v)
	default:
		return humanize.CommafWithDigits(v, 0)
	}
}
