package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jobclassify-engine/internal/bot"
	"jobclassify-engine/internal/config"
	"jobclassify-engine/internal/dashboard"
	"jobclassify-engine/internal/events"
	"jobclassify-engine/internal/httpapi"
	"jobclassify-engine/internal/jobs"
	"jobclassify-engine/internal/scheduler"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, dashboard and scrape scheduler",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides app.port)")
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Interface to bind")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.Close()

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(e.cfg)

	dash, err := dashboard.New(e.svc)
	if err != nil {
		return err
	}

	jobTypes := e.cfg.Bot.JobTypes
	if len(jobTypes) == 0 {
		jobTypes = bot.DefaultJobTypes
	}

	deps := httpapi.Deps{
		Jobs:        e.svc,
		Hub:         e.hub,
		CfgVal:      &cfgVal,
		UserCfgPath: e.cfgPath,
		LoadCfg: func() (config.Config, error) {
			cfg, _, err := loadConfig(e.cfgPath)
			return cfg, err
		},
		Reload: func(cfg config.Config) error {
			a, err := jobs.NewAnalyzer(cfg)
			if err != nil {
				return err
			}
			e.svc.SetAnalyzer(a)
			log.Printf("[engine] level=info msg=%q", "analyzer reloaded")
			return nil
		},
		Bot:       bot.NewResponder(e.svc, jobTypes),
		Sender:    bot.LogSender{},
		Dashboard: dash,
		Metrics:   e.metrics,
	}

	if url := e.cfg.Events.RedisURL; url != "" {
		rdb, err := events.DialRedis(ctx, url)
		if err != nil {
			return err
		}
		defer rdb.Close()
		bridge := &events.RedisBridge{Hub: e.hub, Client: rdb, Channel: e.cfg.Events.RedisChannel}
		go bridge.Run(ctx)
		log.Printf("[engine] level=info msg=%q channel=%s", "mirroring events to redis", e.cfg.Events.RedisChannel)
	}

	sched := scheduler.New(e.cfg.Scrape.Schedule, "scrape", func(ctx context.Context) error {
		_, err := e.svc.Scrape(ctx)
		return err
	}, e.cfg.Scrape.OnStart)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	port := e.cfg.App.Port
	if servePort != 0 {
		port = servePort
	}
	addr := net.JoinHostPort(serveHost, fmt.Sprint(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("engine listening on http://%s (data=%s storage=%s)", ln.Addr(), e.dataDir, e.cfg.Storage.Driver)

	srv := &http.Server{
		Handler:           httpapi.Handler(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[engine] level=info msg=%q", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
