// Package metrics exposes engine counters in the Prometheus text format.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobclassify-engine/internal/domain"
)

const namespace = "jobclassify"

// Metrics owns a private registry so tests can build as many as they like.
// All methods are safe on a nil receiver.
type Metrics struct {
	reg *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	analyses *prometheus.CounterVec
	scrapes  *prometheus.CounterVec
	postings prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Postings analysed, by category and scam flag.",
		}, []string{"category", "suspicious"}),
		scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrapes_total",
			Help:      "Scrape runs by outcome (ok, fallback, error).",
		}, []string{"outcome"}),
		postings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_postings",
			Help:      "Postings saved by the last successful scrape.",
		}),
	}
	m.reg.MustRegister(
		m.requests, m.duration, m.analyses, m.scrapes, m.postings,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Instrument counts and times requests to one route. The route label is the
// registered path, not the request URL, to keep cardinality bounded.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(m.duration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), h))
}

func (m *Metrics) ObserveAnalysis(a domain.Analysis) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(a.Category, strconv.FormatBool(a.IsSuspicious)).Inc()
}

func (m *Metrics) ObserveScrape(count int, fallback bool, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.scrapes.WithLabelValues("error").Inc()
		return
	case fallback:
		m.scrapes.WithLabelValues("fallback").Inc()
	default:
		m.scrapes.WithLabelValues("ok").Inc()
	}
	m.postings.Set(float64(count))
}
