package dashboard

import (
	"fmt"
	"sort"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/derive"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
)

// Bar colors for the salary comparison chart.
const (
	ColorStarting = "lightblue"
	ColorTop      = "darkblue"
)

const colorByRegion = "region"

func sortedBy(summaries []model.JurisdictionSummary, key func(model.JurisdictionSummary) float64) []model.JurisdictionSummary {
	out := append([]model.JurisdictionSummary(nil), summaries...)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}

func categories(summaries []model.JurisdictionSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Jurisdiction)
	}
	return out
}

// Charts builds the five chart configs in display order.
func Charts(summaries []model.JurisdictionSummary, progressionCap int) []ChartConfig {
	return []ChartConfig{
		salaryComparison(summaries),
		regionBars(summaries, ChartSalaryRange,
			"Salary Growth Potential by State (Top - Starting)", "Salary Range ($)",
			func(s model.JurisdictionSummary) float64 { return s.SalaryRange }),
		regionBars(summaries, ChartBudgetShare,
			"Teacher Salary Budget Share by State", "Budget Share (%)",
			func(s model.JurisdictionSummary) float64 { return s.BudgetSharePct }),
		regionBars(summaries, ChartYearsToTop,
			"Years to Reach Top Salary by State", "Years",
			func(s model.JurisdictionSummary) float64 { return s.YearsToTop }),
		progression(summaries, progressionCap),
	}
}

func salaryComparison(summaries []model.JurisdictionSummary) ChartConfig {
	ordered := sortedBy(summaries, func(s model.JurisdictionSummary) float64 { return s.StartingSalary })

	starting := ChartSeries{Name: "Starting Salary", Color: ColorStarting, Data: make([]ChartPoint, 0, len(ordered))}
	top := ChartSeries{Name: "Top Salary", Color: ColorTop, Data: make([]ChartPoint, 0, len(ordered))}
	for _, s := range ordered {
		starting.Data = append(starting.Data, ChartPoint{Label: s.Jurisdiction, Value: s.StartingSalary, Group: s.Region})
		top.Data = append(top.Data, ChartPoint{Label: s.Jurisdiction, Value: s.TopSalary, Group: s.Region})
	}

	return ChartConfig{
		ID:          ChartSalaryComparison,
		ChartType:   ChartTypeBar,
		Title:       "Starting vs Top Salary by State",
		XAxis:       "State",
		YAxis:       "Salary ($)",
		Orientation: Vertical,
		Categories:  categories(ordered),
		Series:      []ChartSeries{starting, top},
		ShowLegend:  true,
	}
}

// regionBars is a horizontal bar chart with one series per region, in
// order of each region's first bar.
func regionBars(summaries []model.JurisdictionSummary, id, title, xAxis string, key func(model.JurisdictionSummary) float64) ChartConfig {
	ordered := sortedBy(summaries, key)

	index := map[string]int{}
	series := make([]ChartSeries, 0)
	for _, s := range ordered {
		i, ok := index[s.Region]
		if !ok {
			i = len(series)
			index[s.Region] = i
			series = append(series, ChartSeries{Name: s.Region})
		}
		series[i].Data = append(series[i].Data, ChartPoint{Label: s.Jurisdiction, Value: key(s), Group: s.Region})
	}

	return ChartConfig{
		ID:          id,
		ChartType:   ChartTypeBar,
		Title:       title,
		XAxis:       xAxis,
		YAxis:       "State",
		Orientation: Horizontal,
		Categories:  categories(ordered),
		ColorBy:     colorByRegion,
		Series:      series,
		ShowLegend:  true,
	}
}

func progression(summaries []model.JurisdictionSummary, limit int) ChartConfig {
	if limit <= 0 {
		limit = derive.DefaultProgressionCap
	}
	set := derive.ProgressionSet(summaries, limit)

	series := make([]ChartSeries, 0, len(set))
	names := make([]string, 0, len(set))
	for _, p := range set {
		data := make([]ChartPoint, 0, len(p.Points))
		for _, pt := range p.Points {
			data = append(data, ChartPoint{X: float64(pt.Year), Value: pt.Salary, Group: p.Region})
		}
		series = append(series, ChartSeries{Name: p.Jurisdiction, Data: data})
		names = append(names, p.Jurisdiction)
	}

	return ChartConfig{
		ID:         ChartRaiseProgression,
		ChartType:  ChartTypeLine,
		Title:      fmt.Sprintf("Salary Progression Over Career (First %d States by Starting Salary)", limit),
		XAxis:      "Years of Experience",
		YAxis:      "Salary ($)",
		Categories: names,
		Series:     series,
		ShowLegend: true,
	}
}
