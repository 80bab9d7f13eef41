package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"jobclassify-engine/internal/jobs"
	"jobclassify-engine/internal/scrape"
)

type ScrapeHandler struct {
	Jobs *jobs.Service
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Jobs.ScrapeStatus())
}

// Run scrapes synchronously and replaces the stored postings.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	res, err := h.Jobs.Scrape(r.Context())
	if errors.Is(err, scrape.ErrAlreadyRunning) {
		WriteError(w, r, http.StatusConflict, "already_running", err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"message":    fmt.Sprintf("Scraped %d jobs successfully", res.Count),
		"jobs_count": res.Count,
	})
}
