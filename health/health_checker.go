// Package health provides health checking functionality for the symptom finder.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/chobisangyak/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
	watcher   interfaces.SourceWatcher
}

// NewHealthChecker creates a new health checker with injected dependencies.
// watcher may be nil, in which case staleness is not reported.
func NewHealthChecker(dataStore interfaces.DataStore, watcher interfaces.SourceWatcher) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		dataStore: dataStore,
		watcher:   watcher,
	}
}

// HealthCheck returns the catalog health and the HTTP status to answer with
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	table := h.dataStore.GetTable()
	lastLoaded := h.dataStore.GetLastLoaded()
	isLoading := h.dataStore.IsLoading()
	stale := h.watcher != nil && h.watcher.IsStale()

	var dataAge time.Duration
	if !lastLoaded.IsZero() {
		dataAge = time.Since(lastLoaded)
	}

	switch {
	case table == nil || table.Len() == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case stale:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"source":         h.dataStore.GetSource(),
		"available":      table != nil,
		"records":        table.Len(),
		"last_loaded":    lastLoaded.Format(time.RFC3339),
		"data_age_hours": math.Round(dataAge.Hours()*10) / 10,
		"is_loading":     isLoading,
		"source_stale":   stale,
	}

	if report := h.dataStore.GetReport(); report != nil {
		data["rows_dropped"] = report.Ingest.Dropped()
	}

	return status, data, httpStatus
}
