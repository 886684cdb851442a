package dashboard

import "github.com/cobiadigital/school-pay-visualization/internal/domain/types"

// NoData is the headline value shown for an empty selection.
const NoData = "No data"

// Chart IDs in display order.
const (
	ChartSalaryComparison = "salary-comparison"
	ChartSalaryRange      = "salary-range"
	ChartBudgetShare      = "budget-share"
	ChartYearsToTop       = "years-to-top"
	ChartRaiseProgression = "raise-progression"
)

// ChartIDs lists every chart in display order.
func ChartIDs() []string {
	return []string{
		ChartSalaryComparison,
		ChartSalaryRange,
		ChartBudgetShare,
		ChartYearsToTop,
		ChartRaiseProgression,
	}
}

// Chart types.
const (
	ChartTypeBar  = "bar"
	ChartTypeLine = "line"
)

// Bar orientations.
const (
	Vertical   = "v"
	Horizontal = "h"
)

// View is everything the dashboard renders for one selection.
type View struct {
	Selection         types.Selection `json:"selection"`
	Metrics           []Metric        `json:"metrics"`
	Charts            []ChartConfig   `json:"charts"`
	Table             TableData       `json:"table"`
	Records           int             `json:"records"`
	Empty             bool            `json:"empty"`
	DetailedAvailable bool            `json:"detailedAvailable"`
}

// Chart returns the chart with id.
func (v View) Chart(id string) (ChartConfig, bool) {
	for _, c := range v.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return ChartConfig{}, false
}

// Metric is one formatted headline number.
type Metric struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Value     string  `json:"value"`
	Raw       float64 `json:"raw"`
	Available bool    `json:"available"`
}

// ChartConfig describes one chart independently of any renderer.
type ChartConfig struct {
	ID          string        `json:"id"`
	ChartType   string        `json:"chartType"`
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis,omitempty"`
	YAxis       string        `json:"yAxis,omitempty"`
	Orientation string        `json:"orientation,omitempty"`
	Categories  []string      `json:"categories"`
	ColorBy     string        `json:"colorBy,omitempty"`
	Series      []ChartSeries `json:"series"`
	ShowLegend  bool          `json:"showLegend"`
}

// ChartSeries is one named series.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is one value. Bars use Label; lines use X.
type ChartPoint struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Value float64 `json:"value"`
	Group string  `json:"group,omitempty"`
}

// TableData is the detail table.
type TableData struct {
	Title     string     `json:"title"`
	Columns   []Column   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"totalRows"`
	Truncated bool       `json:"truncated"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency"
	Align string `json:"align"` // "left", "right"
}
