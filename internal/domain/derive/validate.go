package derive

import (
	"fmt"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
)

// Anomaly kinds reported by Validate.
const (
	AnomalyNonMonotonic      = "non_monotonic_salary"
	AnomalyZeroYears         = "zero_years_to_top"
	AnomalyNonPositiveSalary = "non_positive_salary"
)

// Anomaly flags a record whose values the derivations tolerate but that
// are unlikely to be correct.
type Anomaly struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Validate lists the anomalies in rec. The derivations never fail on
// these; strict callers may refuse such records.
func Validate(rec model.DistrictRecord) []Anomaly {
	var out []Anomaly

	if rec.StartingSalary <= 0 {
		out = append(out, Anomaly{
			Kind:   AnomalyNonPositiveSalary,
			Detail: fmt.Sprintf("starting salary %.0f", rec.StartingSalary),
		})
	}
	if rec.YearsToTop <= 0 {
		out = append(out, Anomaly{
			Kind:   AnomalyZeroYears,
			Detail: fmt.Sprintf("years to top %d", rec.YearsToTop),
		})
	}
	if rec.StartingSalary > rec.MedianSalary || rec.MedianSalary > rec.TopSalary {
		out = append(out, Anomaly{
			Kind: AnomalyNonMonotonic,
			Detail: fmt.Sprintf("starting %.0f, median %.0f, top %.0f",
				rec.StartingSalary, rec.MedianSalary, rec.TopSalary),
		})
	}
	return out
}
