package dashboard

import (
	"strconv"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
)

var baseColumns = []Column{ //nolint:gochecknoglobals // read-only table
	{Key: "state", Label: "State", Type: "text", Align: "left"},
	{Key: "district", Label: "District", Type: "text", Align: "left"},
	{Key: "starting_salary", Label: "Starting Salary", Type: "currency", Align: "right"},
	{Key: "median_salary", Label: "Median Salary", Type: "currency", Align: "right"},
	{Key: "top_salary", Label: "Top Salary", Type: "currency", Align: "right"},
	{Key: "years_to_top", Label: "Years to Top", Type: "number", Align: "right"},
	{Key: "budget_share_pct", Label: "Budget Share %", Type: "number", Align: "right"},
	{Key: "student_teacher_ratio", Label: "Student:Teacher Ratio", Type: "number", Align: "right"},
}

var dataSourceColumn = Column{Key: "data_source", Label: "Data Source", Type: "text", Align: "left"} //nolint:gochecknoglobals // read-only

// TableColumns returns the columns for records: the fixed set, plus
// Data Source when any record carries provenance.
func TableColumns(records []model.DistrictRecord) []Column {
	cols := append([]Column(nil), baseColumns...)
	if AnyDataSource(records) {
		cols = append(cols, dataSourceColumn)
	}
	return cols
}

// TableRow renders one record. withSource appends its provenance cell.
func TableRow(r model.DistrictRecord, withSource bool) []string {
	row := []string{
		r.Jurisdiction,
		r.District,
		FormatCurrency(r.StartingSalary),
		FormatCurrency(r.MedianSalary),
		FormatCurrency(r.TopSalary),
		strconv.Itoa(r.YearsToTop),
		formatNumber(r.BudgetSharePct),
		formatNumber(r.StudentTeacherRatio),
	}
	if withSource {
		row = append(row, r.DataSource)
	}
	return row
}

// Table renders the first limit records.
func Table(records []model.DistrictRecord, limit int) TableData {
	if limit <= 0 {
		limit = DefaultTableRowLimit
	}
	withSource := AnyDataSource(records)

	shown := records
	if len(shown) > limit {
		shown = shown[:limit]
	}
	rows := make([][]string, 0, len(shown))
	for _, r := range shown {
		rows = append(rows, TableRow(r, withSource))
	}

	return TableData{
		Title:     "District Details",
		Columns:   TableColumns(records),
		Rows:      rows,
		TotalRows: len(records),
		Truncated: len(records) > len(shown),
	}
}

// AnyDataSource reports whether any record carries provenance.
func AnyDataSource(records []model.DistrictRecord) bool {
	for _, r := range records {
		if r.HasDataSource() {
			return true
		}
	}
	return false
}
