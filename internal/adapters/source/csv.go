package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cobiadigital/school-pay-visualization/internal/domain/derive"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
)

// Canonical column names.
const (
	ColState               = "state"
	ColRegion              = "region"
	ColDistrict            = "district"
	ColStartingSalary      = "starting_salary"
	ColMedianSalary        = "median_salary"
	ColTopSalary           = "top_salary"
	ColYearsToTop          = "years_to_top"
	ColBudgetSharePct      = "budget_share_pct"
	ColNumTeachers         = "num_teachers"
	ColStudentTeacherRatio = "student_teacher_ratio"
	ColAvgRaisePct         = "avg_raise_pct"
	ColDataSource          = "data_source"
)

// Header order written by WriteCSV.
var columns = []string{ //nolint:gochecknoglobals // read-only table
	ColState, ColRegion, ColDistrict,
	ColStartingSalary, ColMedianSalary, ColTopSalary, ColYearsToTop,
	ColBudgetSharePct, ColNumTeachers, ColStudentTeacherRatio, ColAvgRaisePct,
}

var required = []string{ //nolint:gochecknoglobals // read-only table
	ColState, ColStartingSalary, ColMedianSalary, ColTopSalary, ColYearsToTop,
}

var aliases = map[string]string{ //nolint:gochecknoglobals // read-only table
	"jurisdiction":        ColState,
	"school_district":     ColDistrict,
	"budget_share":        ColBudgetSharePct,
	"student_teacher":     ColStudentTeacherRatio,
	"avg_raise":           ColAvgRaisePct,
	"avg_annual_raise":    ColAvgRaisePct,
	"source":              ColDataSource,
	"teachers":            ColNumTeachers,
	"number_of_teachers":  ColNumTeachers,
	"years_to_top_salary": ColYearsToTop,
}

// SkippedRow records why a data row was dropped.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseReport summarizes one ParseCSV call.
type ParseReport struct {
	Layer   string       `json:"layer"`
	Rows    int          `json:"rows"`
	Loaded  int          `json:"loaded"`
	Skipped []SkippedRow `json:"skipped,omitempty"`
}

// SkippedCount is the number of dropped rows.
func (r ParseReport) SkippedCount() int {
	return len(r.Skipped)
}

// NormalizeHeader maps a CSV header to its snake_case column name:
// "Starting Salary" becomes "starting_salary" and
// "Student:Teacher Ratio" becomes "student_teacher_ratio".
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))

	var b strings.Builder
	underscore := false
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case r == '%':
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteString("pct")
			underscore = false
		default:
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
		}
	}
	key := strings.TrimSuffix(b.String(), "_")
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// ParseCSV reads salary records from r, stamping each with layer.
// Malformed rows are skipped and reported; file order is kept. An error
// is returned only when the header is unreadable or lacks a required
// column.
func ParseCSV(r io.Reader, layer string) ([]model.DistrictRecord, ParseReport, error) {
	const op = "source.ParseCSV"
	report := ParseReport{Layer: layer}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, report, wrap(op, fmt.Errorf("%w: empty file", ErrMissingColumn))
		}
		return nil, report, wrap(op, err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := NormalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, report, wrap(op, fmt.Errorf("%w: %s", ErrMissingColumn, col))
		}
	}

	records := make([]model.DistrictRecord, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.StartLine
			}
			report.Rows++
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		line, _ := reader.FieldPos(0)
		if blankRow(row) {
			continue
		}
		report.Rows++

		rec, err := parseRow(row, index)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		rec.Source = layer
		records = append(records, rec)
	}

	report.Loaded = len(records)
	return records, report, nil
}

func parseRow(row []string, index map[string]int) (model.DistrictRecord, error) {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := model.DistrictRecord{
		Jurisdiction: cell(ColState),
		Region:       cell(ColRegion),
		District:     cell(ColDistrict),
		DataSource:   cell(ColDataSource),
	}
	if rec.Jurisdiction == "" {
		return rec, fmt.Errorf("%w: empty %s", ErrMalformedRow, ColState)
	}

	var err error
	if rec.StartingSalary, err = number(ColStartingSalary, cell(ColStartingSalary), true); err != nil {
		return rec, err
	}
	if rec.MedianSalary, err = number(ColMedianSalary, cell(ColMedianSalary), true); err != nil {
		return rec, err
	}
	if rec.TopSalary, err = number(ColTopSalary, cell(ColTopSalary), true); err != nil {
		return rec, err
	}
	if rec.YearsToTop, err = whole(ColYearsToTop, cell(ColYearsToTop), true); err != nil {
		return rec, err
	}
	if rec.BudgetSharePct, err = number(ColBudgetSharePct, cell(ColBudgetSharePct), false); err != nil {
		return rec, err
	}
	if rec.NumTeachers, err = whole(ColNumTeachers, cell(ColNumTeachers), false); err != nil {
		return rec, err
	}
	if rec.StudentTeacherRatio, err = number(ColStudentTeacherRatio, cell(ColStudentTeacherRatio), false); err != nil {
		return rec, err
	}

	raise := cell(ColAvgRaisePct)
	if raise == "" {
		rec.AvgRaisePct = derive.RoundTo2(derive.RaiseRate(rec.StartingSalary, rec.TopSalary, rec.YearsToTop))
	} else if rec.AvgRaisePct, err = number(ColAvgRaisePct, raise, true); err != nil {
		return rec, err
	}
	return rec, nil
}

// number parses a decimal cell, tolerating "$" and thousands separators.
func number(col, raw string, needed bool) (float64, error) {
	raw = strings.NewReplacer("$", "", ",", "", "%", "").Replace(raw)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if needed {
			return 0, fmt.Errorf("%w: empty %s", ErrMalformedRow, col)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrMalformedRow, col, raw)
	}
	return v, nil
}

// whole parses an integer cell; "25.0" is accepted, "25.5" is not.
func whole(col, raw string, needed bool) (int, error) {
	v, err := number(col, raw, needed)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s=%q is not a whole number", ErrMalformedRow, col, raw)
	}
	return int(v), nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes records with the canonical header. The data_source
// column is added when withSource is set.
func WriteCSV(w io.Writer, records []model.DistrictRecord, withSource bool) error {
	const op = "source.WriteCSV"

	header := append([]string(nil), columns...)
	if withSource {
		header = append(header, ColDataSource)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return wrap(op, err)
	}
	for _, r := range records {
		row := []string{
			r.Jurisdiction,
			r.Region,
			r.District,
			formatFloat(r.StartingSalary),
			formatFloat(r.MedianSalary),
			formatFloat(r.TopSalary),
			strconv.Itoa(r.YearsToTop),
			formatFloat(r.BudgetSharePct),
			strconv.Itoa(r.NumTeachers),
			formatFloat(r.StudentTeacherRatio),
			formatFloat(r.AvgRaisePct),
		}
		if withSource {
			row = append(row, r.DataSource)
		}
		if err := cw.Write(row); err != nil {
			return wrap(op, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return wrap(op, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
