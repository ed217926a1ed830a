package v1handler

import (
	"encoding/json"
	"net/http"

	"phishmetrics/pkg/serrors"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

type bulkAnalyzeRequest struct {
	URLs []string `json:"urls"`
}

// Analyze submits a single URL for classification and returns the stored
// verdict.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	record, err := h.deps.Analyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, record)
}

// AnalyzeBulk submits up to 100 URLs for classification, one at a time, and
// returns the per-URL outcomes in submission order along with success and
// failure counts.
func (h *Handler) AnalyzeBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	bulk, err := h.deps.Analyzer.AnalyzeBulk(r.Context(), req.URLs)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, bulk)
}
