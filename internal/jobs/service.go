// Package jobs is the single entry point the transports share: listing,
// statistics, matching, scraping and analysis over the stored postings.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"jobclassify-engine/internal/classify"
	"jobclassify-engine/internal/domain"
	"jobclassify-engine/internal/events"
	"jobclassify-engine/internal/metrics"
	"jobclassify-engine/internal/rank"
	"jobclassify-engine/internal/scrape"
	"jobclassify-engine/internal/store"
)

const (
	DefaultListLimit  = 10
	MaxMatches        = 10
	DefaultSimilarTop = 5
)

type Options struct {
	Store    store.PostingStore
	Runner   *scrape.Runner
	Hub      *events.Hub
	Analyzer *classify.Analyzer
	Scorer   rank.Scorer
	// Embedder enables Similar; nil disables it.
	Embedder rank.Embedder
	Metrics  *metrics.Metrics
}

type Service struct {
	store    store.PostingStore
	runner   *scrape.Runner
	hub      *events.Hub
	scorer   rank.Scorer
	embedder rank.Embedder
	metrics  *metrics.Metrics

	analyzer atomic.Pointer[classify.Analyzer]
}

func New(opts Options) *Service {
	s := &Service{
		store:    opts.Store,
		runner:   opts.Runner,
		hub:      opts.Hub,
		scorer:   opts.Scorer,
		embedder: opts.Embedder,
		metrics:  opts.Metrics,
	}
	if s.scorer == nil {
		s.scorer = rank.OverlapScorer{}
	}
	a := opts.Analyzer
	if a == nil {
		a = classify.NewDefault()
	}
	s.analyzer.Store(a)
	return s
}

func (s *Service) Analyzer() *classify.Analyzer { return s.analyzer.Load() }

// SetAnalyzer swaps the analyzer used by every later call.
func (s *Service) SetAnalyzer(a *classify.Analyzer) {
	if a != nil {
		s.analyzer.Store(a)
	}
}

func (s *Service) Analyze(ctx context.Context, text string) domain.Analysis {
	res := s.analyzer.Load().AnalyzeContext(ctx, text)
	s.metrics.ObserveAnalysis(res)
	return res
}

func (s *Service) Categories() []string {
	return s.analyzer.Load().Categories()
}

func (s *Service) SimilarEnabled() bool { return s.embedder != nil }

// Postings returns every stored posting in stored order.
func (s *Service) Postings(ctx context.Context) ([]domain.Posting, error) {
	postings, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}
	return postings, nil
}

type ListQuery struct {
	Location  string
	Category  string
	MinSalary int
	Limit     int
}

type ListResult struct {
	Jobs  []domain.Posting `json:"jobs"`
	Total int              `json:"total"`
}

func (s *Service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	postings, err := s.store.Load(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("load postings: %w", err)
	}
	a := s.analyzer.Load()
	loc := strings.ToLower(q.Location)
	cat := strings.ToLower(q.Category)

	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if loc != "" && !strings.Contains(strings.ToLower(p.Location), loc) {
			continue
		}
		if cat != "" && !strings.Contains(strings.ToLower(p.Title), cat) {
			continue
		}
		if q.MinSalary > 0 {
			// postings without a salary stay in
			if lo, ok := a.Analyze(p.Description).MinSalary(); ok && lo < q.MinSalary {
				continue
			}
		}
		out = append(out, p)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	total := len(out)
	if limit < len(out) {
		out = out[:limit]
	}
	return ListResult{Jobs: out, Total: total}, nil
}

type MatchQuery struct {
	Profile   domain.Profile
	Location  string
	MinSalary int
}

type MatchResult struct {
	Matches []rank.Match `json:"matched_jobs"`
	Total   int          `json:"total_matches"`
}

func (s *Service) Match(ctx context.Context, q MatchQuery) (MatchResult, error) {
	postings, err := s.store.Load(ctx)
	if err != nil {
		return MatchResult{}, fmt.Errorf("load postings: %w", err)
	}
	all := rank.Rank(postings, q.Profile, rank.Filter{Location: q.Location, MinSalary: q.MinSalary}, s.scorer, s.analyzer.Load())

	top := all
	if len(top) > MaxMatches {
		top = top[:MaxMatches]
	}
	return MatchResult{Matches: top, Total: len(all)}, nil
}

func (s *Service) Similar(ctx context.Context, text string, k int) ([]rank.Similar, error) {
	if s.embedder == nil {
		return nil, rank.ErrNoEmbedder
	}
	if k <= 0 {
		k = DefaultSimilarTop
	}
	postings, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}
	return rank.SimilarityRanker{Embedder: s.embedder}.TopK(ctx, text, postings, k)
}
