// Package data provides the memoized catalog service for the symptom finder.
// The catalog is loaded at most once per source and shared lock-free with
// readers; it is only replaced by an explicit Reload.
package data

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/giygas/chobisangyak/interfaces"
	"github.com/giygas/chobisangyak/logging"
	"github.com/giygas/chobisangyak/metrics"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// snapshot is the outcome of one load attempt. Either table or err is set.
type snapshot struct {
	table    *entities.Table
	report   *interfaces.DataQualityReport
	err      error
	loadedAt time.Time
}

// DataContainer caches the normalized table of one catalog source
type DataContainer struct {
	loader    interfaces.Loader
	validator interfaces.DataValidator
	source    string

	mu              sync.Mutex // serializes loads
	state           atomic.Pointer[snapshot]
	loading         atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a container for source. Nothing is read until
// the first LoadCatalog call. validator may be nil.
func NewDataContainer(loader interfaces.Loader, validator interfaces.DataValidator, source string) *DataContainer {
	dc := &DataContainer{
		loader:    loader,
		validator: validator,
		source:    source,
	}
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// LoadCatalog returns the cached table, loading it on first use.
// Concurrent callers share a single load. A failed load is cached as well
// and is only retried by Reload.
func (dc *DataContainer) LoadCatalog() (*entities.Table, error) {
	if s := dc.state.Load(); s != nil {
		return s.table, s.err
	}

	dc.mu.Lock()
	defer dc.mu.Unlock()

	// Another caller may have finished the load while we waited
	if s := dc.state.Load(); s != nil {
		return s.table, s.err
	}

	s := dc.load()
	return s.table, s.err
}

// Reload forces a fresh load of the source. On failure the previous table
// is discarded so that no stale or partial catalog is served.
func (dc *DataContainer) Reload() (*entities.Table, error) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	logging.Info("Reloading catalog", "source", dc.source)
	s := dc.load()
	return s.table, s.err
}

// Reset forgets the cached outcome; the next LoadCatalog reads the source again
func (dc *DataContainer) Reset() {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.state.Store(nil)
	metrics.CatalogRecordsLoaded.Set(0)
}

// load runs the loader and publishes the outcome (caller must hold mu)
func (dc *DataContainer) load() *snapshot {
	dc.loading.Store(true)
	defer dc.loading.Store(false)

	start := time.Now()
	table, stats, err := dc.loader.Load(dc.source)

	s := &snapshot{loadedAt: time.Now()}
	if err != nil {
		s.err = err
		metrics.CatalogLoadFailures.Inc()
		metrics.CatalogRecordsLoaded.Set(0)
		dc.state.Store(s)
		return s
	}

	s.table = table
	if dc.validator != nil {
		s.report = dc.validator.ReportDataQuality(table, stats)
		logReport(s.report)
	}

	metrics.CatalogRecordsLoaded.Set(float64(table.Len()))
	metrics.CatalogRowsDropped.WithLabelValues("missing_efficacy").Add(float64(stats.MissingEfficacy))
	metrics.CatalogRowsDropped.WithLabelValues("missing_usage").Add(float64(stats.MissingUsage))
	metrics.CatalogSourceStale.Set(0)

	dc.state.Store(s)

	logging.Info("Catalog ready",
		"source", dc.source,
		"records", table.Len(),
		"duration", time.Since(start).String())

	return s
}

func logReport(report *interfaces.DataQualityReport) {
	if report.RecordsWithoutName > 0 {
		logging.Warn("Records without a product name", "count", report.RecordsWithoutName)
	}

	if report.RecordsWithoutChannel > 0 {
		logging.Warn("Records without a purchase channel, listed as pharmacy only",
			"count", report.RecordsWithoutChannel)
	}

	if report.RecordsWithEmptyEffect > 0 {
		logging.Warn("Records whose efficacy is empty after cleaning",
			"count", report.RecordsWithEmptyEffect)
	}

	if len(report.InvalidImageURLs) > 0 {
		logging.Warn("Records with an invalid image URL",
			"count", len(report.InvalidImageURLs),
			"names", report.InvalidImageURLs)
	}
}

// GetTable returns the loaded table, or nil when none is available
func (dc *DataContainer) GetTable() *entities.Table {
	if s := dc.state.Load(); s != nil {
		return s.table
	}
	return nil
}

// GetReport returns the data quality report of the current table
func (dc *DataContainer) GetReport() *interfaces.DataQualityReport {
	if s := dc.state.Load(); s != nil {
		return s.report
	}
	return nil
}

// GetSource returns the catalog source this container is bound to
func (dc *DataContainer) GetSource() string {
	return dc.source
}

// GetLastLoaded returns the time of the last load attempt
func (dc *DataContainer) GetLastLoaded() time.Time {
	if s := dc.state.Load(); s != nil {
		return s.loadedAt
	}
	return time.Time{}
}

// IsLoading returns true while a load is in progress
func (dc *DataContainer) IsLoading() bool {
	return dc.loading.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}
