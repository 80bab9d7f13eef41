package httpapi

import (
	"net/http"

	"jobclassify-engine/internal/events"
	"jobclassify-engine/internal/jobs"
)

type AnalyzeHandler struct {
	Jobs *jobs.Service
	Hub  *events.Hub
}

func (h AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeValid(r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	res := h.Jobs.Analyze(r.Context(), *req.JobDescription)

	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeJobAnalyzed, events.JobAnalyzed{
		Category:     res.Category,
		Confidence:   res.Confidence,
		IsSuspicious: res.IsSuspicious,
	})
	writeJSON(w, res)
}

func (h AnalyzeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"categories": h.Jobs.Categories()})
}
