// Package chi implements the HTTP API: photo search, storage event intake,
// health, and metrics.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aperture-cloud/photodex/internal/domain"
	"github.com/aperture-cloud/photodex/internal/domain/event"
	healthuc "github.com/aperture-cloud/photodex/internal/usecase/health"
	ingestuc "github.com/aperture-cloud/photodex/internal/usecase/ingest"
	queryuc "github.com/aperture-cloud/photodex/internal/usecase/query"
)

const maxEventRecords = 100

// Error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeLabelingFailed   = "labeling_provider_error"
	codeIndexUnavailable = "index_unavailable"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the ingestion and query pipelines over HTTP.
type Server struct {
	ingest        *ingestuc.Service
	query         *queryuc.Service
	health        *healthuc.Service
	urlTemplate   string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. urlTemplate derives public object
// URLs in search results; empty omits them.
func NewServer(
	ingest *ingestuc.Service,
	query *queryuc.Service,
	health *healthuc.Service,
	urlTemplate string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingest:      ingest,
		query:       query,
		health:      health,
		urlTemplate: urlTemplate,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrPhotoNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrInvalidEvent, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrLabelingFailed, http.StatusBadGateway, codeLabelingFailed),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, codeIndexUnavailable),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.SearchPhotos)
	r.Post("/api/v1/search", s.SearchPhotos)
	r.Post("/api/v1/events", s.IngestEvents)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchPhotos handles GET and POST /api/v1/search. A missing or empty
// utterance is not an error: it yields an empty result set with status 200.
func (s *Server) SearchPhotos(w http.ResponseWriter, r *http.Request) {
	utterance, ok := parseUtterance(r)
	if !ok {
		writeJSON(w, http.StatusOK, emptySearchResponse())
		return
	}

	res, err := s.query.Search(r.Context(), utterance)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assembleSearchResponse(utterance, res, s.urlTemplate))
}

// IngestEvents handles POST /api/v1/events: a storage event batch. Records
// are processed independently and reported per item.
func (s *Server) IngestEvents(w http.ResponseWriter, r *http.Request) {
	var req eventBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Records) == 0 || len(req.Records) > maxEventRecords {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("records count must be between 1 and %d", maxEventRecords))
		return
	}

	records := make([]event.Record, 0, len(req.Records))
	results := make([]event.Result, 0, len(req.Records))
	recordIdx := make([]int, 0, len(req.Records))
	for i, wr := range req.Records {
		rec, err := event.NewRecord(wr.Bucket, wr.Key, wr.Size, wr.Caption)
		if err != nil {
			// Report the decoded key so identifiers stay consistent with
			// processed records in the same batch.
			results = append(results, event.NewError(displayKey(wr.Key), err))
			continue
		}
		records = append(records, rec)
		recordIdx = append(recordIdx, i)
		results = append(results, event.Result{})
	}

	processed := s.ingest.Process(r.Context(), records)
	for i, res := range processed {
		results[recordIdx[i]] = res
	}

	writeJSON(w, http.StatusOK, assembleEventResponse(results))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// displayKey best-effort decodes a URL-encoded object key for reporting.
// Undecodable keys fall back to the raw form.
func displayKey(raw string) string {
	if k, err := url.QueryUnescape(raw); err == nil {
		return k
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrPhotoNotFound,
		domain.ErrInvalidEvent,
		domain.ErrLabelingFailed,
		domain.ErrInterpretFailed,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
