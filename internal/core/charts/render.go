package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"

	"github.com/bizfindr/bizfindr/internal/core/page"
)

const pageTitle = "BizFindr Dashboard"

// BusinessTypes builds the doughnut chart of registrations per business type
// from the first dataset.
func BusinessTypes(d Data) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: page.IDBusinessTypes}),
		charts.WithTitleOpts(opts.Title{Title: "Business Types"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "vertical",
			Right:  "0",
			Top:    "middle",
		}),
	)

	var ds Dataset
	if len(d.Datasets) > 0 {
		ds = d.Datasets[0]
	}

	items := make([]opts.PieData, 0, len(d.Labels))
	for i, label := range d.Labels {
		item := opts.PieData{Name: label, Value: valueAt(ds.Data, i)}
		if c := ds.BackgroundColor.At(i); c != "" {
			item.ItemStyle = &opts.ItemStyle{Color: c}
		}
		items = append(items, item)
	}

	pie.AddSeries(ds.Label, items,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"70%", "100%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
	)
	return pie
}

// RegistrationTrends builds the line chart of registrations over time with
// one series per dataset.
func RegistrationTrends(d Data) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: page.IDRegistrationTrd}),
		charts.WithTitleOpts(opts.Title{Title: "Registration Trends"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:        "value",
			Min:         0,
			MinInterval: 1,
		}),
	)

	line.SetXAxis(d.Labels)
	for _, ds := range d.Datasets {
		points := make([]opts.LineData, 0, len(d.Labels))
		for i := range d.Labels {
			points = append(points, opts.LineData{Value: valueAt(ds.Data, i)})
		}

		var seriesOpts []charts.SeriesOpts
		if c := ds.BackgroundColor.At(0); c != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: c}))
		}
		line.AddSeries(ds.Label, points, seriesOpts...)
	}
	return line
}

// BuildPage collects every chart whose mount carries usable data. Mounts
// that are missing or carry incomplete data are skipped.
func BuildPage(doc *page.Document) (*components.Page, int) {
	p := components.NewPage()
	p.SetPageTitle(pageTitle)

	count := 0
	if d, ok := load(doc, page.IDBusinessTypes); ok {
		p.AddCharts(BusinessTypes(d))
		count++
	}
	if d, ok := load(doc, page.IDRegistrationTrd); ok {
		p.AddCharts(RegistrationTrends(d))
		count++
	}
	return p, count
}

// RenderPage writes the available charts as one HTML page and returns how
// many were rendered. Nothing is written when no chart has data.
func RenderPage(w io.Writer, doc *page.Document) (int, error) {
	p, count := BuildPage(doc)
	if count == 0 {
		return 0, nil
	}
	if err := p.Render(w); err != nil {
		return 0, fmt.Errorf("render charts: %w", err)
	}
	return count, nil
}

func load(doc *page.Document, id string) (Data, bool) {
	d, ok, err := FromElement(doc, doc.ByID(id))
	if err != nil {
		log.Warn().Err(err).Str("chart", id).Msg("skipping chart with invalid data")
		return Data{}, false
	}
	return d, ok
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
