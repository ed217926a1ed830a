// Package v1handler implements the version 1 HTTP handlers of the analytics
// API on top of the analyzer service.
package v1handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"phishmetrics/internal/analyzer"
	"phishmetrics/pkg/logger"
	"phishmetrics/pkg/serrors"

	"go.uber.org/zap"
)

// Deps holds the dependencies handlers need to serve requests.
type Deps struct {
	Analyzer analyzer.Analyzer
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register attaches all v1 routes to the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /api/analyze", h.Analyze)
	mux.HandleFunc("POST /api/analyze/bulk", h.AnalyzeBulk)
	mux.HandleFunc("GET /api/statistics", h.Statistics)
	mux.HandleFunc("GET /api/analyses", h.Analyses)
	mux.HandleFunc("GET /api/daily-counts", h.DailyCounts)
	mux.HandleFunc("GET /api/report", h.Report)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps semantic error kinds to HTTP status codes. Unrecognized
// errors are logged and reported as a generic internal error so internals do
// not leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, serrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serrors.ErrTimeout), errors.Is(err, serrors.ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, serrors.ErrUnavailable):
		status = http.StatusServiceUnavailable
	default:
		logger.Error(r.Context(), "request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})

		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// dateLayouts are the accepted formats for start_date and end_date query
// parameters. Date-only values are interpreted as UTC.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil //nolint: nilnil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}

	return nil, serrors.With(serrors.ErrBadRequest, "invalid date format: %q", raw)
}

// rangeFromQuery builds the analyzer range filter from the request query.
func rangeFromQuery(r *http.Request) (analyzer.RangeFilter, error) {
	var filter analyzer.RangeFilter

	start, err := parseDateParam(r.URL.Query().Get("start_date"))
	if err != nil {
		return filter, err
	}
	end, err := parseDateParam(r.URL.Query().Get("end_date"))
	if err != nil {
		return filter, err
	}

	filter.Start = start
	filter.End = end

	return filter, nil
}
