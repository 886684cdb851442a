// Package export writes filtered district tables as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/derive"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// Sheet names.
const (
	SheetDistricts = "Districts"
	SheetSchedule  = "Salary Schedule"
)

// ContentType is the XLSX MIME type.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const formatXLSX = "xlsx"

// Workbook writes every record (no row limit) to w. The first sheet uses
// the detail table's columns with numeric cells; the second lists salary
// at each milestone year.
func Workbook(w io.Writer, records []model.DistrictRecord) error {
	const op = "export.Workbook"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetDistricts); err != nil {
		return wrap(op, err)
	}
	if err := districts(f, records); err != nil {
		return wrap(op, err)
	}
	if _, err := f.NewSheet(SheetSchedule); err != nil {
		return wrap(op, err)
	}
	if err := schedule(f, records); err != nil {
		return wrap(op, err)
	}
	if err := f.Write(w); err != nil {
		return wrap(op, err)
	}

	metrics.RecordExport(formatXLSX)
	return nil
}

func districts(f *excelize.File, records []model.DistrictRecord) error {
	columns := dashboard.TableColumns(records)
	withSource := dashboard.AnyDataSource(records)

	header := make([]interface{}, 0, len(columns))
	for _, c := range columns {
		header = append(header, c.Label)
	}
	if err := f.SetSheetRow(SheetDistricts, "A1", &header); err != nil {
		return err
	}

	currency, err := f.NewStyle(&excelize.Style{NumFmt: 5}) // currency, no decimals
	if err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{
			r.Jurisdiction, r.District,
			r.StartingSalary, r.MedianSalary, r.TopSalary,
			r.YearsToTop, r.BudgetSharePct, r.StudentTeacherRatio,
		}
		if withSource {
			row = append(row, r.DataSource)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetDistricts, cell, &row); err != nil {
			return err
		}
	}

	if len(records) > 0 {
		last := fmt.Sprintf("E%d", len(records)+1)
		if err := f.SetCellStyle(SheetDistricts, "C2", last, currency); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetDistricts, "A", "I", 18)
}

func schedule(f *excelize.File, records []model.DistrictRecord) error {
	header := []interface{}{"State", "District"}
	for _, m := range derive.DefaultMilestones {
		header = append(header, fmt.Sprintf("Year %d", m))
	}
	if err := f.SetSheetRow(SheetSchedule, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{r.Jurisdiction, r.District}
		for _, p := range derive.Schedule(r.StartingSalary, r.TopSalary, r.YearsToTop, nil) {
			row = append(row, p.Salary)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSchedule, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSchedule, "A", "B", 28)
}
