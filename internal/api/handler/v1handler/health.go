package v1handler

import "net/http"

type indexResponse struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// Index identifies the service at the root path and lists its endpoints.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Service: "phishing URL analytics",
		Status:  "running",
		Endpoints: map[string]string{
			"analyze":      "POST /api/analyze",
			"analyze_bulk": "POST /api/analyze/bulk",
			"statistics":   "GET /api/statistics",
			"analyses":     "GET /api/analyses",
			"daily_counts": "GET /api/daily-counts",
			"report":       "GET /api/report",
			"docs":         "GET /docs/",
			"health":       "GET /health",
		},
	})
}

// Health is the liveness endpoint used by orchestration probes.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
