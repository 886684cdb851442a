package api

import (
	"bytes"
	"net/http"

	"github.com/cobiadigital/school-pay-visualization/internal/adapters/export"
	"github.com/cobiadigital/school-pay-visualization/internal/adapters/source"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// ExportHandler serves the full filtered table as a download.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleXLSX handles GET /api/table.xlsx.
func (h *ExportHandler) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_table_xlsx"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	records, err := h.deps.Records(r.Context(), parseSelection(r))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Workbook(&buf, records); err != nil {
		writeServiceError(w, op, err)
		return
	}
	attachment(w, export.ContentType, "teacher_salaries.xlsx")
	_, _ = w.Write(buf.Bytes())
}

// HandleCSV handles GET /api/table.csv.
func (h *ExportHandler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_table_csv"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	records, err := h.deps.Records(r.Context(), parseSelection(r))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	var buf bytes.Buffer
	if err := source.WriteCSV(&buf, records, dashboard.AnyDataSource(records)); err != nil {
		writeServiceError(w, op, err)
		return
	}
	metrics.RecordExport("csv")
	attachment(w, "text/csv; charset=utf-8", "teacher_salaries.csv")
	_, _ = w.Write(buf.Bytes())
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
}
