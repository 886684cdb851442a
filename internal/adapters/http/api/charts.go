package api

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/cobiadigital/school-pay-visualization/internal/adapters/render"
)

// ChartHandler renders one dashboard chart as an image.
type ChartHandler struct {
	deps Dependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

// HandleChart handles GET /api/charts/{id}.png and /api/charts/{id}.svg.
func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/charts/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "not_found", wrap(op, ErrNotFound))
		return
	}
	format := strings.TrimPrefix(path.Ext(name), ".")
	id := strings.TrimSuffix(name, path.Ext(name))
	if format != render.FormatPNG && format != render.FormatSVG {
		writeError(w, http.StatusNotFound, "not_found", wrap(op, ErrNotFound))
		return
	}

	view, err := h.deps.Dashboard(r.Context(), parseSelection(r))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	var buf bytes.Buffer
	err = render.ViewChart(&buf, view, id, render.WithFormat(format))
	switch {
	case errors.Is(err, render.ErrUnknownChart):
		writeError(w, http.StatusNotFound, "not_found", wrap(op, err))
		return
	case errors.Is(err, render.ErrEmptyChart):
		writeError(w, http.StatusNotFound, "no_data", wrap(op, err))
		return
	case err != nil:
		writeServiceError(w, op, err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
