package dashboard

import "github.com/cobiadigital/school-pay-visualization/internal/domain/model"

// Headline metric keys.
const (
	MetricStarting = "starting"
	MetricTop      = "top"
	MetricYears    = "years"
	MetricBudget   = "budget"
)

// Headlines are district-weighted means over the filtered records.
func Headlines(records []model.DistrictRecord) []Metric {
	metrics := []Metric{
		{Key: MetricStarting, Label: "Avg Starting Salary"},
		{Key: MetricTop, Label: "Avg Top Salary"},
		{Key: MetricYears, Label: "Avg Years to Top"},
		{Key: MetricBudget, Label: "Avg Budget Share"},
	}
	if len(records) == 0 {
		for i := range metrics {
			metrics[i].Value = NoData
		}
		return metrics
	}

	var starting, top, years, budget float64
	for _, r := range records {
		starting += r.StartingSalary
		top += r.TopSalary
		years += float64(r.YearsToTop)
		budget += r.BudgetSharePct
	}
	n := float64(len(records))

	raw := []float64{starting / n, top / n, years / n, budget / n}
	format := []func(float64) string{FormatCurrency, FormatCurrency, FormatYears, FormatPercent}
	for i := range metrics {
		metrics[i].Raw = raw[i]
		metrics[i].Value = format[i](raw[i])
		metrics[i].Available = true
	}
	return metrics
}
