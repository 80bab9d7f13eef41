package scrape

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"jobclassify-engine/internal/scrape/types"
)

var ErrAlreadyRunning = errors.New("scrape already running")

// Runner serialises fetcher runs and remembers how the last one went.
type Runner struct {
	Fetcher types.Fetcher
	Timeout time.Duration

	mu     sync.Mutex
	status types.Status
}

func NewRunner(f types.Fetcher, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Runner{Fetcher: f, Timeout: timeout}
}

func (r *Runner) Run(ctx context.Context) (types.Result, error) {
	r.mu.Lock()
	if r.status.Running {
		r.mu.Unlock()
		return types.Result{}, ErrAlreadyRunning
	}
	r.status.Running = true
	r.status.LastRunAt = time.Now().Format(time.RFC3339)
	r.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	log.Printf("[%s] Running...", r.Fetcher.Name())
	res, err := r.Fetcher.Fetch(fctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().Format(time.RFC3339)
	r.status.Running = false
	r.status.LastRunAt = now
	if err != nil {
		log.Printf("[scrape:%s] error: %v", r.Fetcher.Name(), err)
		r.status.LastError = err.Error()
		return res, err
	}
	r.status.LastError = ""
	r.status.LastOkAt = now
	r.status.LastCount = len(res.Postings)
	r.status.LastFallback = res.Fallback
	return res, nil
}

func (r *Runner) Status() types.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}
