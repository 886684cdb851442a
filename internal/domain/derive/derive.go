// Package derive computes secondary salary metrics: salary range,
// compound annual raise rate, and simplified linear salary progression.
//
// Every function is pure. A non-positive years-to-top never divides:
// the progression collapses to its starting point and the raise rate
// is zero.
package derive

import (
	"math"
	"sort"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
)

// DefaultProgressionCap is the number of jurisdictions that get a
// progression series when the caller does not choose one.
const DefaultProgressionCap = 10

// DefaultMilestones are the years of service reported by Schedule.
var DefaultMilestones = []int{0, 5, 10, 15, 20, 25, 30} //nolint:gochecknoglobals // read-only table

// SalaryRange is the growth potential from starting to top salary.
func SalaryRange(starting, top float64) float64 {
	return top - starting
}

// RaiseRate is the compound annual growth in percent that takes starting
// to top in years steps: ((top/starting)^(1/years) - 1) * 100.
func RaiseRate(starting, top float64, years int) float64 {
	if years <= 0 || starting <= 0 || top < 0 {
		return 0
	}
	return (math.Pow(top/starting, 1/float64(years)) - 1) * 100
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Progression interpolates salary linearly for year = 0..floor(years).
// years is a float because jurisdiction summaries carry mean years.
func Progression(starting, top, years float64) []model.ProgressionPoint {
	if !(years > 0) || math.IsInf(years, 0) {
		return []model.ProgressionPoint{{Year: 0, Salary: starting}}
	}

	last := int(math.Floor(years))
	points := make([]model.ProgressionPoint, 0, last+1)
	for y := 0; y <= last; y++ {
		points = append(points, model.ProgressionPoint{
			Year:   y,
			Salary: starting + (top-starting)*(float64(y)/years),
		})
	}
	return points
}

// ProgressionSet returns one series for each of the first limit
// summaries ordered by starting salary ascending. Ties keep input order.
// A non-positive limit falls back to DefaultProgressionCap.
func ProgressionSet(summaries []model.JurisdictionSummary, limit int) []model.ProgressionSeries {
	if limit <= 0 {
		limit = DefaultProgressionCap
	}

	ordered := append([]model.JurisdictionSummary(nil), summaries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartingSalary < ordered[j].StartingSalary
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	series := make([]model.ProgressionSeries, 0, len(ordered))
	for _, s := range ordered {
		series = append(series, model.ProgressionSeries{
			Jurisdiction: s.Jurisdiction,
			Region:       s.Region,
			Points:       Progression(s.StartingSalary, s.TopSalary, s.YearsToTop),
		})
	}
	return series
}

// Schedule reports whole-currency salaries at the given milestones. A
// milestone past years pays the top salary.
func Schedule(starting, top float64, years int, milestones []int) []model.ProgressionPoint {
	if milestones == nil {
		milestones = DefaultMilestones
	}

	out := make([]model.ProgressionPoint, 0, len(milestones))
	for _, m := range milestones {
		var salary float64
		switch {
		case m > years:
			salary = top
		case years <= 0:
			salary = starting
		default:
			salary = math.Trunc(starting + (top-starting)*(float64(m)/float64(years)))
		}
		out = append(out, model.ProgressionPoint{Year: m, Salary: salary})
	}
	return out
}
