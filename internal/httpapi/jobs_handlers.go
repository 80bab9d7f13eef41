package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"jobclassify-engine/internal/domain"
	"jobclassify-engine/internal/jobs"
	"jobclassify-engine/internal/rank"
)

type JobsHandler struct {
	Jobs *jobs.Service
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minSalary, err := intParam(q.Get("min_salary"), 0)
	if err != nil {
		badRequest(w, r, fmt.Errorf("min_salary: %w", err))
		return
	}
	limit, err := intParam(q.Get("limit"), jobs.DefaultListLimit)
	if err != nil {
		badRequest(w, r, fmt.Errorf("limit: %w", err))
		return
	}

	res, err := h.Jobs.List(r.Context(), jobs.ListQuery{
		Location:  q.Get("location"),
		Category:  q.Get("category"),
		MinSalary: minSalary,
		Limit:     limit,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h JobsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Jobs.Stats(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, st)
}

func (h JobsHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := decodeValid(r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	res, err := h.Jobs.Match(r.Context(), jobs.MatchQuery{
		Profile:   domain.Profile{Skills: *req.Skills, Experience: *req.Experience},
		Location:  req.PreferredLocation,
		MinSalary: req.MinSalary,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h JobsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	var req SimilarRequest
	if err := decodeValid(r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	res, err := h.Jobs.Similar(r.Context(), req.Text, req.TopK)
	if errors.Is(err, rank.ErrNoEmbedder) {
		WriteError(w, r, http.StatusServiceUnavailable, "similarity_disabled", err.Error())
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"similar_jobs": res})
}

func intParam(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
