package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclassify-engine/internal/domain"
	"jobclassify-engine/internal/jobs"
	"jobclassify-engine/internal/scrape"
	"jobclassify-engine/internal/scrape/skillindia"
	"jobclassify-engine/internal/scrape/types"
	"jobclassify-engine/internal/store"
)

type sampleFetcher struct{}

func (sampleFetcher) Name() string { return "samples" }
func (sampleFetcher) Fetch(context.Context) (types.Result, error) {
	return types.Result{Source: skillindia.Source, Postings: samples(), Fallback: true}, nil
}

func samples() []domain.Posting {
	return skillindia.SamplePostings(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func newHandler(t *testing.T, postings []domain.Posting) (*Handler, *store.FileStore) {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "scraped_jobs.json"))
	if postings != nil {
		require.NoError(t, st.Save(context.Background(), postings))
	}
	svc := jobs.New(jobs.Options{Store: st, Runner: scrape.NewRunner(sampleFetcher{}, time.Second)})
	h, err := New(svc)
	require.NoError(t, err)
	return h, st
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBrowse_Filters(t *testing.T) {
	h, _ := newHandler(t, samples())

	rec := get(t, h, "/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing 10 jobs")
	assert.Contains(t, rec.Body.String(), "Total jobs: 10")
	assert.Equal(t, 10, strings.Count(rec.Body.String(), `class="job"`))

	rec = get(t, h, "/dashboard?location=Pune")
	assert.Contains(t, rec.Body.String(), "Showing 1 jobs")
	assert.Contains(t, rec.Body.String(), "Truck Driver - Long Distance")

	// exact match only
	rec = get(t, h, "/dashboard?location=Pun")
	assert.Contains(t, rec.Body.String(), "Showing 0 jobs")

	rec = get(t, h, "/dashboard?location=All&q=DRIVER")
	assert.Contains(t, rec.Body.String(), "Showing 2 jobs")
}

func TestBrowse_Paging(t *testing.T) {
	h, _ := newHandler(t, samples())

	rec := get(t, h, "/dashboard?per_page=5&page=2")
	body := rec.Body.String()
	assert.Equal(t, 5, strings.Count(body, `class="job"`))
	assert.Contains(t, body, "Page 2 of 2")
	assert.Contains(t, body, "Carpenter - Furniture Making")
	assert.NotContains(t, body, "Electrician - Residential Wiring")

	// unsupported sizes fall back to 10
	rec = get(t, h, "/dashboard?per_page=7")
	assert.Equal(t, 10, strings.Count(rec.Body.String(), `class="job"`))
}

func TestBrowse_AnalyzeOne(t *testing.T) {
	h, _ := newHandler(t, samples())

	body := get(t, h, "/dashboard?analyze=1").Body.String()
	assert.Contains(t, body, "90.0%")
	assert.Contains(t, body, "₹15,000")
	assert.Contains(t, body, "Legitimate")
	assert.Equal(t, 9, strings.Count(body, "Analyze Job"))
}

func TestBrowse_UnknownPath(t *testing.T) {
	h, _ := newHandler(t, nil)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/dashboard/nope").Code)
}

func TestAnalyzePage(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := get(t, h, "/dashboard/analyze")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Analysis Results")

	rec = post(t, h, "/dashboard/analyze", url.Values{"text": {"Earn lakhs from home! Registration fee ₹500. Mumbai driver needed."}})
	body := rec.Body.String()
	assert.Contains(t, body, "Analysis Results")
	assert.Contains(t, body, "Driver")
	assert.Contains(t, body, "Mumbai")
	assert.Contains(t, body, "appears suspicious")
}

func TestMatchPage(t *testing.T) {
	h, _ := newHandler(t, samples())

	body := get(t, h, "/dashboard/match").Body.String()
	assert.Contains(t, body, `value="10000"`)

	body = post(t, h, "/dashboard/match", url.Values{
		"skills":     {"wiring"},
		"experience": {"electrician"},
		"min_salary": {"10000"},
	}).Body.String()
	assert.Contains(t, body, "Found 1 matching jobs")
	assert.Contains(t, body, "Electrician - Residential Wiring")
}

func TestAnalyticsPage(t *testing.T) {
	h, _ := newHandler(t, samples())

	rec := get(t, h, "/dashboard/analytics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Jobs by Category")
	assert.Contains(t, body, "Electrician")
	assert.Contains(t, body, "Jobs with salary: 10")
}

func TestRefresh(t *testing.T) {
	h, st := newHandler(t, nil)

	assert.Equal(t, http.StatusMethodNotAllowed, get(t, h, "/dashboard/refresh").Code)

	rec := post(t, h, "/dashboard/refresh", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	postings, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, postings, 10)
}

func TestScaleBars(t *testing.T) {
	bars := scaleBars([]bar{{Label: "b", Value: 1}, {Label: "a", Value: 4}, {Label: "c", Value: 1}})
	require.Len(t, bars, 3)
	assert.Equal(t, "a", bars[0].Label)
	assert.Equal(t, 100, bars[0].Width)
	assert.Equal(t, "b", bars[1].Label)
	assert.Equal(t, 25, bars[1].Width)
}
