// Package handlers provides HTTP request handlers for the symptom finder API.
// They expose the three calls the presentation layer needs: load the
// catalog, search it by symptom and resolve a product image.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/giygas/chobisangyak/catalog"
	"github.com/giygas/chobisangyak/catalog/entities"
	"github.com/giygas/chobisangyak/interfaces"
	"github.com/giygas/chobisangyak/logging"
	"github.com/giygas/chobisangyak/metrics"
	"github.com/giygas/chobisangyak/validation"
	"github.com/go-chi/chi/v5"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// catalogUnavailableMessage is the single message shown when ingestion failed
const catalogUnavailableMessage = "catalog unavailable"

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	images        interfaces.ImageResolver
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(dataStore interfaces.DataStore, validator interfaces.DataValidator,
	images interfaces.ImageResolver, healthChecker interfaces.HealthChecker) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		dataStore:     dataStore,
		validator:     validator,
		images:        images,
		healthChecker: healthChecker,
	}
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// SearchRecord is an unrestricted-channel record with its resolved image
type SearchRecord struct {
	entities.DrugRecord
	Image string `json:"image,omitempty"`
}

// SearchResponse is the JSON form of a symptom search
type SearchResponse struct {
	Symptom      string                `json:"symptom"`
	TotalMatches int                   `json:"total_matches"`
	Unrestricted []SearchRecord        `json:"unrestricted"`
	Restricted   []entities.DrugRecord `json:"restricted"`
}

// catalogOrUnavailable returns the loaded table or answers 503
func (h *HTTPHandlerImpl) catalogOrUnavailable(w http.ResponseWriter) (*entities.Table, bool) {
	table, err := h.dataStore.LoadCatalog()
	if err != nil {
		if !errors.Is(err, catalog.ErrDataUnavailable) {
			logging.Error("Unexpected catalog error", "error", err)
		}
		RespondWithError(w, http.StatusServiceUnavailable, catalogUnavailableMessage)
		return nil, false
	}
	return table, true
}

// ServeSymptoms lists the supported symptoms in display order
func (h *HTTPHandlerImpl) ServeSymptoms(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"symptoms": catalog.Vocabulary(),
	})
}

// SearchBySymptom returns the products treating a symptom, split by channel
func (h *HTTPHandlerImpl) SearchBySymptom(w http.ResponseWriter, r *http.Request) {
	symptom, err := url.PathUnescape(chi.URLParam(r, "symptom"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid symptom encoding")
		return
	}

	if err := h.validator.ValidateSymptom(symptom); err != nil {
		logging.Warn("Unusual user input", "symptom", symptom)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, ok := h.catalogOrUnavailable(w)
	if !ok {
		return
	}

	result := catalog.Search(table, catalog.Symptom(symptom))
	metrics.CatalogSearchResults.WithLabelValues("unrestricted").Add(float64(len(result.Unrestricted)))
	metrics.CatalogSearchResults.WithLabelValues("restricted").Add(float64(len(result.Restricted)))

	response := SearchResponse{
		Symptom:      string(result.Symptom),
		TotalMatches: result.TotalMatches,
		Unrestricted: make([]SearchRecord, 0, len(result.Unrestricted)),
		Restricted:   result.Restricted,
	}

	for _, record := range result.Unrestricted {
		image, _ := h.images.Resolve(record.Name, record.ImageURL)
		response.Unrestricted = append(response.Unrestricted, SearchRecord{
			DrugRecord: record,
			Image:      image,
		})
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// ResolveImage returns the image for ?name= with the optional record image ?image=
func (h *HTTPHandlerImpl) ResolveImage(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := validation.ValidateInput(name); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	image, ok := h.images.Resolve(name, r.URL.Query().Get("image"))
	if !ok {
		RespondWithError(w, http.StatusNotFound, "No image for product")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"image": image})
}

// ReloadCatalog reads the source again and replaces the cached table
func (h *HTTPHandlerImpl) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	table, err := h.dataStore.Reload()
	if err != nil {
		RespondWithError(w, http.StatusServiceUnavailable, catalogUnavailableMessage)
		return
	}

	response := map[string]any{
		"source":    table.Source,
		"records":   table.Len(),
		"loaded_at": table.LoadedAt.Format(time.RFC3339),
	}
	if report := h.dataStore.GetReport(); report != nil {
		response["rows_dropped"] = report.Ingest.Dropped()
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// HealthCheck returns the catalog health
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	response := map[string]any{
		"status": status,
		"data":   details,
	}
	if start := h.dataStore.GetServerStartTime(); !start.IsZero() {
		response["uptime"] = formatUptime(time.Since(start))
	}

	RespondWithJSON(w, httpStatus, response)
}
