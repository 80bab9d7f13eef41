package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobclassify-engine/internal/events"
	"jobclassify-engine/internal/scrape"
	"jobclassify-engine/internal/scrape/types"
)

var ErrNoScraper = errors.New("no scraper configured")

type ScrapeResult struct {
	Count    int  `json:"jobs_count"`
	Fallback bool `json:"fallback"`
}

// Scrape fetches a fresh set of postings and replaces the stored ones.
func (s *Service) Scrape(ctx context.Context) (ScrapeResult, error) {
	if s.runner == nil {
		return ScrapeResult{}, ErrNoScraper
	}
	res, err := s.runner.Run(ctx)
	if err != nil {
		if !errors.Is(err, scrape.ErrAlreadyRunning) {
			s.metrics.ObserveScrape(0, false, err)
		}
		return ScrapeResult{}, err
	}
	if err := s.store.Save(ctx, res.Postings); err != nil {
		s.metrics.ObserveScrape(0, false, err)
		return ScrapeResult{}, fmt.Errorf("save postings: %w", err)
	}
	s.metrics.ObserveScrape(len(res.Postings), res.Fallback, nil)
	log.Printf("[jobs] scraped count=%d fallback=%t", len(res.Postings), res.Fallback)

	s.hub.Emit("", events.TypeJobsScraped, events.JobsScraped{
		Count:    len(res.Postings),
		Source:   res.Source,
		Fallback: res.Fallback,
	})
	return ScrapeResult{Count: len(res.Postings), Fallback: res.Fallback}, nil
}

func (s *Service) ScrapeStatus() types.Status {
	if s.runner == nil {
		return types.Status{}
	}
	return s.runner.Status()
}
