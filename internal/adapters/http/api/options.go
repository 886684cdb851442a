package api

import "net/http"

// OptionsHandler serves the region and jurisdiction choices.
type OptionsHandler struct {
	deps Dependencies
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps Dependencies) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

type optionsResponse struct {
	Region  string   `json:"region,omitempty"`
	Options []string `json:"options"`
}

// HandleRegions handles GET /api/regions.
func (h *OptionsHandler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_regions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	regions, err := h.deps.Regions(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{Options: regions})
}

// HandleJurisdictions handles GET /api/jurisdictions?region=R.
func (h *OptionsHandler) HandleJurisdictions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_jurisdictions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sel := parseSelection(r)
	names, err := h.deps.Jurisdictions(r.Context(), sel.Region)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{Region: sel.Region, Options: names})
}
