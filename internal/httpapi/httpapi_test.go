package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclassify-engine/internal/config"
	"jobclassify-engine/internal/events"
	"jobclassify-engine/internal/jobs"
	"jobclassify-engine/internal/metrics"
	"jobclassify-engine/internal/scrape"
	"jobclassify-engine/internal/scrape/skillindia"
	"jobclassify-engine/internal/scrape/types"
	"jobclassify-engine/internal/store"
)

type sampleFetcher struct{}

func (sampleFetcher) Name() string { return "samples" }
func (sampleFetcher) Fetch(context.Context) (types.Result, error) {
	return types.Result{Source: skillindia.Source, Postings: skillindia.SamplePostings(time.Now()), Fallback: true}, nil
}

type testEnv struct {
	h       http.Handler
	svc     *jobs.Service
	hub     *events.Hub
	cfgPath string
	cfgVal  *atomic.Value
}

func newEnv(t *testing.T, seed bool) testEnv {
	t.Helper()
	dir := t.TempDir()
	st := store.NewFileStore(filepath.Join(dir, "scraped_jobs.json"))
	if seed {
		require.NoError(t, st.Save(context.Background(), skillindia.SamplePostings(time.Now())))
	}
	hub := events.NewHub()
	svc := jobs.New(jobs.Options{
		Store:  st,
		Hub:    hub,
		Runner: scrape.NewRunner(sampleFetcher{}, time.Second),
	})

	cfgPath := filepath.Join(dir, "config.yml")
	cfg := config.Default()
	require.NoError(t, config.SaveAtomic(cfgPath, cfg))
	cfgVal := &atomic.Value{}
	cfgVal.Store(cfg)

	h := Handler(Deps{
		Jobs:        svc,
		Hub:         hub,
		CfgVal:      cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
		Reload: func(c config.Config) error {
			a, err := jobs.NewAnalyzer(c)
			if err != nil {
				return err
			}
			svc.SetAnalyzer(a)
			return nil
		},
	})
	return testEnv{h: h, svc: svc, hub: hub, cfgPath: cfgPath, cfgVal: cfgVal}
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRoot(t *testing.T) {
	env := newEnv(t, false)

	rec := do(t, env.h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Job Classification API","version":"1.0.0"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, env.h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[APIError](t, rec).Error.Code)
}

func TestAnalyzeJob(t *testing.T) {
	env := newEnv(t, false)
	ch := env.hub.Subscribe()
	defer env.hub.Unsubscribe(ch)

	rec := do(t, env.h, http.MethodPost, "/analyze-job",
		`{"job_description":"Electrician needed for wiring in Mumbai. Salary ₹15,000 per month."}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"category":"Electrician",
		"confidence":0.8,
		"salary_range":[15000,15000],
		"location":"Mumbai",
		"is_suspicious":false,
		"raw_category":"electrician"
	}`, rec.Body.String())

	var e events.Event
	require.NoError(t, json.Unmarshal([]byte((<-ch).Data), &e))
	assert.Equal(t, events.TypeJobAnalyzed, e.Type)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), e.RequestID)
}

func TestAnalyzeJob_EmptyDescription(t *testing.T) {
	env := newEnv(t, false)

	rec := do(t, env.h, http.MethodPost, "/analyze-job", `{"job_description":""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"category":"General","confidence":0.3,"salary_range":null,"location":null,"is_suspicious":false,"raw_category":"general"}`, rec.Body.String())
}

func TestAnalyzeJob_Invalid(t *testing.T) {
	env := newEnv(t, false)

	for _, body := range []string{`{}`, `{"job_description":`, ``} {
		rec := do(t, env.h, http.MethodPost, "/analyze-job", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		e := decode[APIError](t, rec)
		assert.Equal(t, "invalid_request", e.Error.Code)
		assert.NotEmpty(t, e.Error.RequestID)
	}

	e := decode[APIError](t, do(t, env.h, http.MethodPost, "/analyze-job", `{}`))
	assert.Equal(t, "job_description is required", e.Error.Message)
	assert.Equal(t, []FieldError{{Field: "job_description", Rule: "required"}}, e.Error.Fields)

	rec := do(t, env.h, http.MethodGet, "/analyze-job", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestJobs_List(t *testing.T) {
	env := newEnv(t, true)

	rec := do(t, env.h, http.MethodGet, "/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[jobs.ListResult](t, rec)
	assert.Equal(t, 10, res.Total)
	assert.Len(t, res.Jobs, 10)

	rec = do(t, env.h, http.MethodGet, "/jobs?location=delhi&limit=5", "")
	res = decode[jobs.ListResult](t, rec)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Plumber - Commercial Buildings", res.Jobs[0].Title)

	rec = do(t, env.h, http.MethodGet, "/jobs?min_salary=17000", "")
	res = decode[jobs.ListResult](t, rec)
	// the daily-wage postings (₹500-1200) are the ones dropped
	for _, j := range res.Jobs {
		assert.NotContains(t, j.Description, "Daily")
	}

	rec = do(t, env.h, http.MethodGet, "/jobs?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobs_EmptyStore(t *testing.T) {
	env := newEnv(t, false)

	rec := do(t, env.h, http.MethodGet, "/jobs", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"jobs":[],"total":0}`, rec.Body.String())
}

func TestCategories(t *testing.T) {
	env := newEnv(t, false)

	rec := do(t, env.h, http.MethodGet, "/categories", "")

	var out struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Categories, 20)
	assert.Equal(t, "Electrician", out.Categories[0])
	assert.Equal(t, "Security Guard", out.Categories[6])
	assert.Equal(t, "Ac Technician", out.Categories[10])
}

func TestStats(t *testing.T) {
	env := newEnv(t, true)

	rec := do(t, env.h, http.MethodGet, "/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[jobs.Stats](t, rec)
	assert.Equal(t, 10, st.TotalJobs)
	assert.Equal(t, 10, st.SalaryJobsCount)
	assert.Equal(t, 1, st.Locations["Mumbai"])
	assert.Greater(t, st.AverageSalary, 0.0)
}

func TestMatchJobs(t *testing.T) {
	env := newEnv(t, true)

	rec := do(t, env.h, http.MethodPost, "/match-jobs",
		`{"skills":"driver vehicle","experience":"3 years","preferred_location":"pune"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[jobs.MatchResult](t, rec)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Truck Driver - Long Distance", res.Matches[0].Job.Title)
	assert.Equal(t, 2, res.Matches[0].Score)

	rec = do(t, env.h, http.MethodPost, "/match-jobs", `{"skills":"driver"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimilarJobs_Disabled(t *testing.T) {
	env := newEnv(t, true)

	rec := do(t, env.h, http.MethodPost, "/similar-jobs", `{"text":"wiring"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "similarity_disabled", decode[APIError](t, rec).Error.Code)
}

func TestScrapeJobs(t *testing.T) {
	env := newEnv(t, false)

	rec := do(t, env.h, http.MethodPost, "/scrape-jobs", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Scraped 10 jobs successfully","jobs_count":10}`, rec.Body.String())

	rec = do(t, env.h, http.MethodGet, "/jobs?limit=100", "")
	assert.Equal(t, 10, decode[jobs.ListResult](t, rec).Total)

	rec = do(t, env.h, http.MethodGet, "/scrape/status", "")
	st := decode[types.Status](t, rec)
	assert.Equal(t, 10, st.LastCount)
	assert.True(t, st.LastFallback)
}

func TestWebhook(t *testing.T) {
	env := newEnv(t, false)

	rec := do(t, env.h, http.MethodPost, "/webhook",
		`{"messages":[{"from":"9198","type":"text","text":{"body":"find job electrician"}}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, env.h, http.MethodPost, "/webhook", `{}`)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestConfig_GetPut(t *testing.T) {
	env := newEnv(t, false)

	rec := do(t, env.h, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decode[config.Config](t, rec)
	assert.Equal(t, "scalar", cfg.Classifier.SalaryMode)

	cfg.Classifier.SalaryMode = "range"
	b, _ := json.Marshal(cfg)
	rec = do(t, env.h, http.MethodPut, "/config", string(b))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	saved, err := config.Load(env.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "range", saved.Classifier.SalaryMode)
	assert.Equal(t, "range", env.cfgVal.Load().(config.Config).Classifier.SalaryMode)

	// the reloaded analyzer now reads ranges
	rec = do(t, env.h, http.MethodPost, "/analyze-job", `{"job_description":"Pay ₹12,000-18,000"}`)
	assert.Contains(t, rec.Body.String(), `"salary_range":[12000,18000]`)
}

func TestConfig_PutInvalid(t *testing.T) {
	env := newEnv(t, false)
	cfg := config.Default()
	cfg.Storage.Driver = "mongo"
	b, _ := json.Marshal(cfg)

	rec := do(t, env.h, http.MethodPut, "/config", string(b))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	v := decode[config.Validation](t, rec)
	assert.NotEmpty(t, v.Errors)

	// dry run reports the same errors and saves nothing
	rec = do(t, env.h, http.MethodPost, "/config/validate", string(b))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, v.Errors, decode[config.Validation](t, rec).Errors)
	saved, err := config.Load(env.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "file", saved.Storage.Driver)

	rec = do(t, env.h, http.MethodPut, "/config", `{"app":{"port":1},"bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decode[APIError](t, rec).Error.Code)
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), RequestID, Recover)

	rec := do(t, h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decode[APIError](t, rec).Error.Code)
}

func TestCors_Preflight(t *testing.T) {
	env := newEnv(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	env.h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEvents_StreamsNamedEvents(t *testing.T) {
	env := newEnv(t, false)
	srv := httptest.NewServer(env.h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?types=jobs_scraped", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	require.Eventually(t, func() bool { return env.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	// filtered out
	env.hub.Emit("", events.TypeJobAnalyzed, nil)
	rec := do(t, env.h, http.MethodPost, "/scrape-jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := []string{events.TypePing}
	for lines.Scan() {
		line := lines.Text()
		if strings.HasPrefix(line, "event: ") {
			got = append(got, strings.TrimPrefix(line, "event: "))
		}
		if strings.HasPrefix(line, "data: ") && len(got) > 1 {
			break
		}
	}
	assert.Equal(t, []string{events.TypePing, events.TypeJobsScraped}, got)
}

func TestMetrics_Endpoint(t *testing.T) {
	m := metrics.New()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "scraped_jobs.json"))
	svc := jobs.New(jobs.Options{Store: st, Metrics: m, Runner: scrape.NewRunner(sampleFetcher{}, time.Second)})
	h := Handler(Deps{Jobs: svc, Metrics: m})

	rec := do(t, h, http.MethodPost, "/analyze-job", `{"job_description":"Truck driver needed in Pune, 20k per month"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/scrape-jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `jobclassify_http_requests_total{code="200",method="post",route="/analyze-job"} 1`)
	assert.Contains(t, body, `jobclassify_analyses_total{category="Driver",suspicious="false"} 1`)
	assert.Contains(t, body, `jobclassify_scrapes_total{outcome="fallback"} 1`)
}
