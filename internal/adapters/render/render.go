// Package render draws dashboard chart configs as PNG or SVG images.
package render

import (
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

const (
	barWidth   = 18
	barSpacing = 6
	axisMargin = 160
	rangePad   = 0.1
)

// Named colors used by chart configs.
var namedColors = map[string]drawing.Color{ //nolint:gochecknoglobals // read-only table
	dashboard.ColorStarting: drawing.ColorFromHex("ADD8E6"),
	dashboard.ColorTop:      drawing.ColorFromHex("00008B"),
}

// Extension returns the file extension for format.
func Extension(format string) string {
	return "." + format
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ViewChart renders the chart with id from view.
func ViewChart(w io.Writer, view dashboard.View, id string, opts ...Option) error {
	const op = "render.ViewChart"
	cfg, ok := view.Chart(id)
	if !ok {
		return wrap(op, ErrUnknownChart)
	}
	return Chart(w, cfg, opts...)
}

// Chart renders cfg to w.
func Chart(w io.Writer, cfg dashboard.ChartConfig, opts ...Option) error {
	const op = "render.Chart"
	c := applyOptions(opts)

	var provider chart.RendererProvider
	switch c.format {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return wrap(op, ErrUnsupportedFormat)
	}

	start := time.Now()
	var err error
	switch cfg.ChartType {
	case dashboard.ChartTypeLine:
		err = lineChart(w, provider, cfg, c)
	default:
		err = barChart(w, provider, cfg, c)
	}
	if err != nil {
		return wrap(op, err)
	}
	metrics.RecordRenderLatency(c.format, float64(time.Since(start).Milliseconds()))
	return nil
}

// barChart draws every series as bars in category order. go-chart has no
// horizontal or grouped bars, so groups are drawn side by side and color
// carries the series.
func barChart(w io.Writer, provider chart.RendererProvider, cfg dashboard.ChartConfig, c *config) error {
	colors := seriesColors(cfg.Series)

	// values per category per series, so grouped bars stay adjacent
	byLabel := make(map[string][]chart.Value, len(cfg.Categories))
	for i, s := range cfg.Series {
		style := chart.Style{FillColor: colors[i], StrokeColor: colors[i], StrokeWidth: 1}
		for _, p := range s.Data {
			byLabel[p.Label] = append(byLabel[p.Label], chart.Value{Value: p.Value, Style: style})
		}
	}

	bars := make([]chart.Value, 0, len(byLabel))
	var values []float64
	for _, label := range cfg.Categories {
		group := byLabel[label]
		for i, v := range group {
			if i == 0 {
				v.Label = label
			}
			bars = append(bars, v)
			values = append(values, v.Value)
		}
	}
	if len(bars) == 0 {
		return ErrEmptyChart
	}

	width := c.width
	if need := len(bars)*(barWidth+barSpacing) + axisMargin; need > width {
		width = need
	}

	bc := chart.BarChart{
		Title:      cfg.Title,
		Width:      width,
		Height:     c.height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: valueAxis(cfg), Range: valueRange(values)},
		Bars:       bars,
	}
	return bc.Render(provider, w)
}

func lineChart(w io.Writer, provider chart.RendererProvider, cfg dashboard.ChartConfig, c *config) error {
	colors := seriesColors(cfg.Series)

	series := make([]chart.Series, 0, len(cfg.Series))
	var xs, ys []float64
	for i, s := range cfg.Series {
		if len(s.Data) == 0 {
			continue
		}
		cs := chart.ContinuousSeries{
			Name:  s.Name,
			Style: chart.Style{StrokeColor: colors[i], StrokeWidth: 2, DotColor: colors[i], DotWidth: 3},
		}
		for _, p := range s.Data {
			cs.XValues = append(cs.XValues, p.X)
			cs.YValues = append(cs.YValues, p.Value)
		}
		xs = append(xs, cs.XValues...)
		ys = append(ys, cs.YValues...)
		series = append(series, cs)
	}
	if len(series) == 0 {
		return ErrEmptyChart
	}

	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      c.width,
		Height:     c.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: cfg.XAxis, Range: valueRange(append(xs, 0))},
		YAxis:      chart.YAxis{Name: cfg.YAxis, Range: valueRange(ys)},
		Series:     series,
	}
	if cfg.ShowLegend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(provider, w)
}

// valueAxis is the axis that carries values: x for horizontal bars.
func valueAxis(cfg dashboard.ChartConfig) string {
	if cfg.Orientation == dashboard.Horizontal {
		return cfg.XAxis
	}
	return cfg.YAxis
}

// valueRange spans values and zero with some headroom. go-chart rejects
// zero-width ranges.
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * rangePad
	if lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

func seriesColors(series []dashboard.ChartSeries) []drawing.Color {
	out := make([]drawing.Color, len(series))
	for i, s := range series {
		if c, ok := namedColors[s.Color]; ok {
			out[i] = c
			continue
		}
		out[i] = chart.GetDefaultColor(i)
	}
	return out
}
