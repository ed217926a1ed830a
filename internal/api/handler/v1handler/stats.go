package v1handler

import (
	"net/http"

	"phishmetrics/pkg/domain"
	"phishmetrics/pkg/serrors"
)

type analysesResponse struct {
	Total int                     `json:"total"`
	Data  []domain.AnalysisRecord `json:"data"`
}

type dailyCountsResponse struct {
	Data []domain.DailyCount `json:"data"`
}

// Statistics returns the aggregates computed over the records in the
// requested date range.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	filter, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	stats, err := h.deps.Analyzer.Statistics(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Analyses returns the stored analysis records in the requested date range,
// most recent first.
func (h *Handler) Analyses(w http.ResponseWriter, r *http.Request) {
	filter, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	records, err := h.deps.Analyzer.Analyses(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)

		return
	}
	if records == nil {
		records = []domain.AnalysisRecord{}
	}

	writeJSON(w, http.StatusOK, analysesResponse{
		Total: len(records),
		Data:  records,
	})
}

// DailyCounts returns per-day analysis counts for the requested date range.
// Both bounds are required; days with no analyses are omitted.
func (h *Handler) DailyCounts(w http.ResponseWriter, r *http.Request) {
	filter, err := rangeFromQuery(r)
	if err != nil {
		writeError(w, r, err)

		return
	}
	if filter.Start == nil || filter.End == nil {
		writeError(w, r, serrors.With(serrors.ErrBadRequest, "start_date and end_date are required"))

		return
	}

	counts, err := h.deps.Analyzer.DailyCounts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)

		return
	}
	if counts == nil {
		counts = []domain.DailyCount{}
	}

	writeJSON(w, http.StatusOK, dailyCountsResponse{Data: counts})
}
