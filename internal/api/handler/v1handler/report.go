package v1handler

import (
	"fmt"
	"net/http"
	"time"

	"phishmetrics/internal/report"
)

// Report renders the analysis history for the requested date range as a PDF
// document.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
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
	records, err := h.deps.Analyzer.Analyses(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)

		return
	}
	counts, err := h.deps.Analyzer.DailyCounts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)

		return
	}

	now := time.Now()
	out, err := report.Generate(report.Input{
		GeneratedAt: now,
		PeriodStart: filter.Start,
		PeriodEnd:   filter.End,
		Statistics:  *stats,
		DailyCounts: counts,
		Records:     records,
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="phishing-report-%s.pdf"`, now.Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
