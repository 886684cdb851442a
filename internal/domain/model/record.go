// Package model contains domain models passed between layers.
package model

// Source layer names stamped on loaded records.
const (
	SourceGeneric  = "generic"
	SourceDetailed = "detailed"
)

// DistrictRecord is one salary row for a district, or for a synthetic
// sample district in the generic source. Field tags mirror the CSV headers.
type DistrictRecord struct {
	Jurisdiction        string  `json:"state"`
	Region              string  `json:"region"`
	District            string  `json:"district"`
	StartingSalary      float64 `json:"starting_salary"`
	MedianSalary        float64 `json:"median_salary"`
	TopSalary           float64 `json:"top_salary"`
	YearsToTop          int     `json:"years_to_top"`
	BudgetSharePct      float64 `json:"budget_share_pct"`
	NumTeachers         int     `json:"num_teachers,omitempty"`
	StudentTeacherRatio float64 `json:"student_teacher_ratio"`
	AvgRaisePct         float64 `json:"avg_raise_pct"`
	DataSource          string  `json:"data_source,omitempty"` // provenance, detailed rows only
	Source              string  `json:"-"`                     // loader layer that produced the row
}

// HasDataSource reports whether the record carries a provenance label.
func (r DistrictRecord) HasDataSource() bool {
	return r.DataSource != ""
}

// JurisdictionSummary is the per-jurisdiction mean of its district records.
// Region is the region of the first record seen for the jurisdiction.
type JurisdictionSummary struct {
	Jurisdiction        string  `json:"state"`
	Region              string  `json:"region"`
	Records             int     `json:"records"`
	StartingSalary      float64 `json:"starting_salary"`
	MedianSalary        float64 `json:"median_salary"`
	TopSalary           float64 `json:"top_salary"`
	YearsToTop          float64 `json:"years_to_top"`
	BudgetSharePct      float64 `json:"budget_share_pct"`
	StudentTeacherRatio float64 `json:"student_teacher_ratio"`
	AvgRaisePct         float64 `json:"avg_raise_pct"`
	SalaryRange         float64 `json:"salary_range"`
}

// ProgressionPoint is the projected salary after Year years of service.
type ProgressionPoint struct {
	Year   int     `json:"year"`
	Salary float64 `json:"salary"`
}

// ProgressionSeries is a linear salary trajectory for one jurisdiction.
type ProgressionSeries struct {
	Jurisdiction string             `json:"state"`
	Region       string             `json:"region"`
	Points       []ProgressionPoint `json:"points"`
}
