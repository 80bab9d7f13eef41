package httpapi

import (
	"net/http"

	"jobclassify-engine/internal/bot"
	"jobclassify-engine/internal/metrics"
)

// NewMux returns the raw mux; Handler wraps it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := routeMux{ServeMux: http.NewServeMux(), m: d.Metrics}

	hh := HealthHandler{}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Root,
	}))
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Analysis
	ah := AnalyzeHandler{Jobs: d.Jobs, Hub: d.Hub}
	mux.HandleFunc("/analyze-job", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Analyze,
	}))
	mux.HandleFunc("/categories", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Categories,
	}))

	// Jobs
	jh := JobsHandler{Jobs: d.Jobs}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Stats,
	}))
	mux.HandleFunc("/match-jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Match,
	}))
	mux.HandleFunc("/similar-jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Similar,
	}))

	// Scrape
	sch := ScrapeHandler{Jobs: d.Jobs}
	mux.HandleFunc("/scrape-jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Reload:      d.Reload,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ch.Validate,
		http.MethodPost: ch.Validate,
	}))

	// Chat bot
	sender := d.Sender
	if sender == nil {
		sender = bot.LogSender{}
	}
	responder := d.Bot
	if responder == nil {
		responder = bot.NewResponder(d.Jobs, nil)
	}
	wh := WebhookHandler{Bot: responder, Sender: sender}
	mux.HandleFunc("/webhook", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.Receive,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	if d.Dashboard != nil {
		mux.Handle("/dashboard", d.Dashboard)
		mux.Handle("/dashboard/", d.Dashboard)
	}

	if d.Metrics != nil {
		mux.ServeMux.Handle("/metrics", d.Metrics.Handler())
	}

	return mux.ServeMux
}

// routeMux registers handlers wrapped with per-route metrics.
type routeMux struct {
	*http.ServeMux
	m *metrics.Metrics
}

func (rm routeMux) Handle(pattern string, h http.Handler) {
	rm.ServeMux.Handle(pattern, rm.m.Instrument(pattern, h))
}

func (rm routeMux) HandleFunc(pattern string, h http.HandlerFunc) {
	rm.Handle(pattern, h)
}

func Handler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog, Cors)
}
