// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"runtime"

	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests. It also refreshes the runtime
// gauges.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	goroutines := runtime.NumGoroutine()
	metrics.UpdateSystemMemoryUsage(mem.Alloc)
	metrics.UpdateSystemGoroutineCount(goroutines)
	metrics.RecordSystemGCPauseTime(float64(mem.PauseNs[(mem.NumGC+255)%256]) / 1e6)

	stats := h.statsProvider.GetStats()
	stats["goroutines"] = goroutines
	stats["heapAllocBytes"] = mem.Alloc
	writeJSON(w, http.StatusOK, stats)
}
