// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// DashboardHandler serves the projected view for a selection.
type DashboardHandler struct {
	deps Dependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET /api/dashboard?region=R&jurisdiction=J.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Dashboard(r.Context(), parseSelection(r))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
