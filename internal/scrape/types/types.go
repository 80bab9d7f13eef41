package types

import (
	"context"

	"jobclassify-engine/internal/domain"
)

type Result struct {
	Source   string
	Postings []domain.Posting
	// Fallback is set when the postings are the built-in samples.
	Fallback bool
}

type Status struct {
	LastRunAt    string `json:"last_run_at"`
	LastOkAt     string `json:"last_ok_at"`
	LastError    string `json:"last_error"`
	LastCount    int    `json:"last_count"`
	LastFallback bool   `json:"last_fallback"`
	Running      bool   `json:"running"`
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}
