package skillindia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<div class="header">Skill India</div>
<div class="job-card">
  <h2>Featured</h2>
  <h3 class="job-title">Electrician   Needed</h3>
  <p class="job-desc">Wiring work for new flats. Salary ₹15,000</p>
  <span>Andheri, Mumbai</span>
</div>
<article class="vacancy">
  <h4>Driver</h4>
  <span>Location: Lucknow</span>
</article>
<div class="opening"></div>
</body></html>`

func newTestScraper(t *testing.T, h http.Handler, max int) *Scraper {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	s := New(Config{BaseURL: srv.URL, MaxJobs: max, Timeout: 2 * time.Second}, nil)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func TestFetch_FirstOKPathInOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/content/list-jobs", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/employment", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<div class="position"><h1>Other</h1></div>`))
	})
	s := newTestScraper(t, mux, 20)

	res, err := s.Fetch(context.Background())

	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, Source, res.Source)
	require.Len(t, res.Postings, 3)

	p := res.Postings[0]
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Electrician Needed", p.Title)
	assert.Equal(t, "Wiring work for new flats. Salary ₹15,000", p.Description)
	assert.Equal(t, "Andheri, Mumbai", p.Location)
	assert.Equal(t, Source, p.Source)
	assert.Contains(t, p.URL, "/jobs")

	// no description element: falls back to the title; unknown city: India
	p = res.Postings[1]
	assert.Equal(t, "Driver", p.Title)
	assert.Equal(t, "Driver", p.Description)
	assert.Equal(t, "India", p.Location)

	p = res.Postings[2]
	assert.Equal(t, "Job Opening", p.Title)
	assert.Equal(t, int64(3), p.ID)
}

func TestFetch_MaxJobs(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	}), 2)

	res, err := s.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, res.Postings, 2)
}

func TestFetch_FallsBackToSamples(t *testing.T) {
	var hits atomic.Int32
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), 20)

	res, err := s.Fetch(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, int32(3), hits.Load())
	require.Len(t, res.Postings, 10)
	assert.Equal(t, "Electrician - Residential Wiring", res.Postings[0].Title)
	assert.Equal(t, "Carpenter - Furniture Making", res.Postings[9].Title)
	assert.Equal(t, int64(10), res.Postings[9].ID)
}

func TestFetch_OKPageWithoutListingsFallsBack(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>maintenance</p></body></html>`))
	}), 20)

	res, err := s.Fetch(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Len(t, res.Postings, 10)
}

func TestSamplePostings(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	got := SamplePostings(now)

	require.Len(t, got, 10)
	for i, p := range got {
		assert.Equal(t, int64(i+1), p.ID)
		assert.Equal(t, now, p.ScrapedAt)
		assert.NotEmpty(t, p.Description)
		assert.Empty(t, p.URL)
	}
}
