package httpapi

import (
	"net/http"
	"sync/atomic"

	"jobclassify-engine/internal/bot"
	"jobclassify-engine/internal/config"
	"jobclassify-engine/internal/events"
	"jobclassify-engine/internal/jobs"
	"jobclassify-engine/internal/metrics"
)

type Deps struct {
	Jobs *jobs.Service
	Hub  *events.Hub

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	// Reload applies a freshly saved config to running components.
	Reload func(config.Config) error

	Bot    *bot.Responder
	Sender bot.Sender

	// Dashboard is mounted under /dashboard when set.
	Dashboard http.Handler
	// Metrics instruments every route and serves /metrics when set.
	Metrics *metrics.Metrics
}
