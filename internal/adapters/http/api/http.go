// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/cobiadigital/school-pay-visualization/internal/app"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/model"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/types"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Dashboard(ctx context.Context, sel types.Selection) (dashboard.View, error)
	Records(ctx context.Context, sel types.Selection) ([]model.DistrictRecord, error)
	Regions(ctx context.Context) ([]string, error)
	Jurisdictions(ctx context.Context, region string) ([]string, error)
	Health() service.Health
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	optionsHandler   *OptionsHandler
	dashboardHandler *DashboardHandler
	chartHandler     *ChartHandler
	exportHandler    *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		optionsHandler:   NewOptionsHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		chartHandler:     NewChartHandler(deps),
		exportHandler:    NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/regions", MetricsMiddleware(s.optionsHandler.HandleRegions, "regions"))
	mux.HandleFunc("/api/jurisdictions", MetricsMiddleware(s.optionsHandler.HandleJurisdictions, "jurisdictions"))
	mux.HandleFunc("/api/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/api/charts/", MetricsMiddleware(s.chartHandler.HandleChart, "charts"))
	mux.HandleFunc("/api/table.xlsx", MetricsMiddleware(s.exportHandler.HandleXLSX, "table_xlsx"))
	mux.HandleFunc("/api/table.csv", MetricsMiddleware(s.exportHandler.HandleCSV, "table_csv"))
}

// Query parameter names.
const (
	paramRegion        = "region"
	paramJurisdiction  = "jurisdiction"
	paramJurisdictions = "jurisdictions"
	paramState         = "state"
	paramStates        = "states"
)

// parseSelection reads region and jurisdictions from the query string.
// Jurisdictions may repeat or be comma separated. Unknown values are
// passed through and simply match nothing.
func parseSelection(r *http.Request) types.Selection {
	q := r.URL.Query()

	sel := types.Selection{Region: q.Get(paramRegion)}
	for _, key := range []string{paramJurisdiction, paramJurisdictions, paramState, paramStates} {
		for _, v := range q[key] {
			sel.Jurisdictions = append(sel.Jurisdictions, strings.Split(v, ",")...)
		}
	}
	return sel.Normalize()
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service failures to a status code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrNotStarted) {
		writeError(w, http.StatusServiceUnavailable, "unavailable", wrap(op, ErrUnavailable))
		return
	}
	metrics.RecordErrorByComponent("api", "internal")
	writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
}
