package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/giygas/chobisangyak/interfaces"
)

type mockDataStore struct {
	table      *entities.Table
	report     *interfaces.DataQualityReport
	lastLoaded time.Time
	loading    bool
}

func (m *mockDataStore) LoadCatalog() (*entities.Table, error)    { return m.table, nil }
func (m *mockDataStore) Reload() (*entities.Table, error)         { return m.table, nil }
func (m *mockDataStore) Reset()                                   {}
func (m *mockDataStore) GetTable() *entities.Table                { return m.table }
func (m *mockDataStore) GetReport() *interfaces.DataQualityReport { return m.report }
func (m *mockDataStore) GetSource() string                        { return "drugs.csv" }
func (m *mockDataStore) GetLastLoaded() time.Time                 { return m.lastLoaded }
func (m *mockDataStore) IsLoading() bool                          { return m.loading }
func (m *mockDataStore) GetServerStartTime() time.Time            { return time.Time{} }

type staticWatcher bool

func (s staticWatcher) IsStale() bool { return bool(s) }

func tableWith(n int) *entities.Table {
	return &entities.Table{Records: make([]entities.DrugRecord, n)}
}

func TestHealthCheckStatus(t *testing.T) {
	tests := []struct {
		name           string
		store          *mockDataStore
		watcher        interfaces.SourceWatcher
		expectedStatus string
		expectedHTTP   int
	}{
		{"healthy", &mockDataStore{table: tableWith(3), lastLoaded: time.Now()}, staticWatcher(false), "healthy", http.StatusOK},
		{"no watcher", &mockDataStore{table: tableWith(3), lastLoaded: time.Now()}, nil, "healthy", http.StatusOK},
		{"stale source", &mockDataStore{table: tableWith(3), lastLoaded: time.Now()}, staticWatcher(true), "degraded", http.StatusOK},
		{"unavailable", &mockDataStore{lastLoaded: time.Now()}, staticWatcher(false), "unhealthy", http.StatusServiceUnavailable},
		{"empty table", &mockDataStore{table: tableWith(0), lastLoaded: time.Now()}, staticWatcher(false), "unhealthy", http.StatusServiceUnavailable},
		{"never loaded", &mockDataStore{}, staticWatcher(true), "unhealthy", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, httpStatus := NewHealthChecker(tt.store, tt.watcher).HealthCheck()

			if status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s", tt.expectedStatus, status)
			}
			if httpStatus != tt.expectedHTTP {
				t.Errorf("Expected HTTP %d, got %d", tt.expectedHTTP, httpStatus)
			}
		})
	}
}

func TestHealthCheckDetails(t *testing.T) {
	store := &mockDataStore{
		table:      tableWith(5),
		lastLoaded: time.Now().Add(-3 * time.Hour),
		loading:    true,
		report: &interfaces.DataQualityReport{
			Ingest: entities.IngestStats{TotalRows: 8, KeptRows: 5},
		},
	}

	_, data, _ := NewHealthChecker(store, staticWatcher(true)).HealthCheck()

	expected := map[string]any{
		"source":         "drugs.csv",
		"available":      true,
		"records":        5,
		"data_age_hours": 3.0,
		"is_loading":     true,
		"source_stale":   true,
		"rows_dropped":   3,
	}
	for key, want := range expected {
		if got := data[key]; got != want {
			t.Errorf("%s: expected %v, got %v", key, want, got)
		}
	}
	if _, ok := data["last_loaded"].(string); !ok {
		t.Error("Expected last_loaded to be a formatted string")
	}
}

func TestHealthCheckWithoutReport(t *testing.T) {
	_, data, _ := NewHealthChecker(&mockDataStore{}, nil).HealthCheck()

	if _, ok := data["rows_dropped"]; ok {
		t.Error("rows_dropped should be absent without a report")
	}
	if data["available"] != false || data["records"] != 0 {
		t.Errorf("Unexpected data: %v", data)
	}
	if data["data_age_hours"] != 0.0 {
		t.Errorf("Expected zero data age, got %v", data["data_age_hours"])
	}
}
