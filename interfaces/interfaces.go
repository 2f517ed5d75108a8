// Package interfaces defines core abstractions for the symptom finder
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"net/http"
	"time"

	"github.com/giygas/chobisangyak/catalog/entities"
)

// DataQualityReport provides a summary of data quality issues of one load
type DataQualityReport struct {
	Ingest                 entities.IngestStats `json:"ingest"`
	RecordsWithoutName     int                  `json:"records_without_name"`
	RecordsWithoutChannel  int                  `json:"records_without_channel"`
	RecordsWithEmptyEffect int                  `json:"records_with_empty_efficacy"`
	InvalidImageURLs       []string             `json:"invalid_image_urls"` // Product names
	UnrestrictedRecords    int                  `json:"unrestricted_records"`
	RestrictedRecords      int                  `json:"restricted_records"`
}

// DataStore defines the contract for catalog storage.
// The table is loaded at most once per source and only replaced by an
// explicit Reload.
type DataStore interface {
	// Loading
	LoadCatalog() (*entities.Table, error)
	Reload() (*entities.Table, error)
	Reset()

	// Data retrieval methods
	GetTable() *entities.Table
	GetReport() *DataQualityReport
	GetSource() string
	GetLastLoaded() time.Time
	IsLoading() bool
	GetServerStartTime() time.Time
}

// Loader defines the contract for reading a catalog source into a
// normalized table.
type Loader interface {
	Load(source string) (*entities.Table, entities.IngestStats, error)
}

// ImageResolver picks the image shown for a product
type ImageResolver interface {
	Resolve(productName, recordImage string) (string, bool)
}

// Scheduler defines the contract for background monitoring jobs.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
// It provides a consistent interface for all API endpoints.
type HTTPHandler interface {
	ServeSymptoms(w http.ResponseWriter, r *http.Request)
	SearchBySymptom(w http.ResponseWriter, r *http.Request)
	ResolveImage(w http.ResponseWriter, r *http.Request)
	ReloadCatalog(w http.ResponseWriter, r *http.Request)
	// This will stay in all versions
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// SourceWatcher reports whether the catalog source changed after the last load
type SourceWatcher interface {
	IsStale() bool
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateRecord checks the required fields of a normalized record
	ValidateRecord(record *entities.DrugRecord) error

	// ReportDataQuality generates a data quality report for a loaded table
	ReportDataQuality(table *entities.Table, stats entities.IngestStats) *DataQualityReport

	// ValidateSymptom checks that user input is a supported symptom
	ValidateSymptom(input string) error
}
