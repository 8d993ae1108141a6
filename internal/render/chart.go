package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pgEdge/pgedge-salesview/internal/views"
)

// ChartPage renders every chart of a result as one HTML page.
func ChartPage(w io.Writer, result *views.Result) error {
	page := components.NewPage()
	page.PageTitle = result.View

	for _, c := range result.Charts {
		switch c.Kind {
		case views.ChartBar:
			page.AddCharts(buildBar(c))
		default:
			page.AddCharts(buildLine(c))
		}
	}

	return page.Render(w)
}

func buildLine(c views.Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(c)...)
	line.SetXAxis(c.Labels)

	for _, s := range c.Series {
		data := make([]opts.LineData, len(s.Points))
		for i, p := range s.Points {
			if p.Value.Valid {
				data[i] = opts.LineData{Value: p.Value.Float64}
			} else {
				// Undefined points render as gaps, not zeros.
				data[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(s.Name, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)
	}
	return line
}

func buildBar(c views.Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(c)...)
	bar.SetXAxis(c.Labels)

	for _, s := range c.Series {
		data := make([]opts.BarData, len(s.Points))
		for i, p := range s.Points {
			if p.Value.Valid {
				data[i] = opts.BarData{Value: p.Value.Float64}
			} else {
				data[i] = opts.BarData{Value: nil}
			}
		}
		bar.AddSeries(s.Name, data)
	}
	return bar
}

func globalOptions(c views.Chart) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	}
}
