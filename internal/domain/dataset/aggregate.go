package dataset

import (
	"github.com/cobiadigital/school-pay-visualization/internal/domain/derive"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
)

type accumulator struct {
	summary model.JurisdictionSummary
	years   float64
}

// Aggregate groups records by jurisdiction in first-appearance order and
// averages every numeric field. A summary's region is the region of its
// first record. Empty input yields an empty, non-nil slice.
func Aggregate(records []model.DistrictRecord) []model.JurisdictionSummary {
	index := make(map[string]int, len(records))
	accs := make([]*accumulator, 0)

	for _, r := range records {
		i, ok := index[r.Jurisdiction]
		if !ok {
			i = len(accs)
			index[r.Jurisdiction] = i
			accs = append(accs, &accumulator{summary: model.JurisdictionSummary{
				Jurisdiction: r.Jurisdiction,
				Region:       r.Region,
			}})
		}
		a := accs[i]
		a.summary.Records++
		a.summary.StartingSalary += r.StartingSalary
		a.summary.MedianSalary += r.MedianSalary
		a.summary.TopSalary += r.TopSalary
		a.years += float64(r.YearsToTop)
		a.summary.BudgetSharePct += r.BudgetSharePct
		a.summary.StudentTeacherRatio += r.StudentTeacherRatio
		a.summary.AvgRaisePct += r.AvgRaisePct
	}

	out := make([]model.JurisdictionSummary, 0, len(accs))
	for _, a := range accs {
		s := a.summary
		n := float64(s.Records)
		s.StartingSalary /= n
		s.MedianSalary /= n
		s.TopSalary /= n
		s.YearsToTop = a.years / n
		s.BudgetSharePct /= n
		s.StudentTeacherRatio /= n
		s.AvgRaisePct /= n
		s.SalaryRange = derive.SalaryRange(s.StartingSalary, s.TopSalary)
		out = append(out, s)
	}
	return out
}
