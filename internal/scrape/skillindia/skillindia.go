package skillindia

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"jobclassify-engine/internal/domain"
	"jobclassify-engine/internal/scrape/types"
	"jobclassify-engine/internal/scrape/util"
)

const (
	Source    = "Skill India Digital"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBody   = 5 << 20
)

// DefaultPaths are tried in this order; the first that answers 200 wins.
var DefaultPaths = []string{"/content/list-jobs", "/jobs", "/employment"}

// DefaultCities are the location hints searched for inside a listing.
var DefaultCities = []string{"mumbai", "delhi", "bangalore", "chennai", "pune", "hyderabad"}

type Config struct {
	BaseURL string
	Paths   []string
	MaxJobs int
	Timeout time.Duration
	Cities  []string
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
	now     func() time.Time
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	if len(cfg.Paths) == 0 {
		cfg.Paths = DefaultPaths
	}
	if cfg.MaxJobs <= 0 {
		cfg.MaxJobs = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if len(cfg.Cities) == 0 {
		cfg.Cities = DefaultCities
	}
	if limiter == nil {
		limiter = util.NewHostLimiter(2, 2)
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{},
		limiter: limiter,
		now:     time.Now,
	}
}

func (s *Scraper) Name() string { return "skillindia" }

type page struct {
	url  string
	body []byte
	ok   bool
}

// Fetch never fails: when no listing page yields postings the built-in
// samples are returned with Fallback set.
func (s *Scraper) Fetch(ctx context.Context) (types.Result, error) {
	pages := make([]page, len(s.cfg.Paths))

	var g errgroup.Group
	for i, p := range s.cfg.Paths {
		u := util.JoinURL(s.cfg.BaseURL, p)
		pages[i].url = u
		g.Go(func() error {
			body, err := s.get(ctx, u)
			if err != nil {
				log.Printf("[scrape:skillindia] url=%s err=%v", u, err)
				return nil // best-effort: other paths may still answer
			}
			pages[i].body, pages[i].ok = body, true
			return nil
		})
	}
	_ = g.Wait()

	now := s.now()
	var postings []domain.Posting
	for _, pg := range pages {
		if !pg.ok {
			continue
		}
		found, err := parseListings(pg.body, pg.url, s.cfg.MaxJobs, s.cfg.Cities, now)
		if err != nil {
			log.Printf("[scrape:skillindia] url=%s parse err=%v", pg.url, err)
		}
		postings = found
		break
	}

	if len(postings) == 0 {
		log.Printf("[scrape:skillindia] level=warn msg=%q host=%s", "no listings found, using sample postings", util.Host(s.cfg.BaseURL))
		return types.Result{Source: Source, Postings: SamplePostings(now), Fallback: true}, nil
	}

	log.Printf("[skillindia] Processed: %d", len(postings))
	return types.Result{Source: Source, Postings: postings}, nil
}

func (s *Scraper) get(ctx context.Context, u string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return io.ReadAll(io.LimitReader(res.Body, maxBody))
}
