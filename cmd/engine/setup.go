package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"jobclassify-engine/internal/config"
	"jobclassify-engine/internal/events"
	"jobclassify-engine/internal/jobs"
	"jobclassify-engine/internal/metrics"
	"jobclassify-engine/internal/store"
)

// resolveDataDir picks --data-dir, then the env var, then the working dir.
func resolveDataDir() (string, error) {
	dir := dataDir
	if dir == "" {
		dir = os.Getenv(config.EnvPrefix + "DATA_DIR")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// loadConfig reads the user config, overlays the environment and validates.
func loadConfig(path string) (config.Config, config.Validation, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, config.Validation{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := config.OverlayEnv(&cfg, os.Getenv); err != nil {
		return cfg, config.Validation{}, err
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("[config] level=warn msg=%q", w)
	}
	if !vr.OK() {
		return cfg, vr, fmt.Errorf("invalid config %s: %s", path, strings.Join(vr.Errors, "; "))
	}
	return cfg, vr, nil
}

type engine struct {
	dataDir string
	cfgPath string
	cfg     config.Config
	store   store.PostingStore
	hub     *events.Hub
	metrics *metrics.Metrics
	svc     *jobs.Service
}

// bootstrap loads config and wires the store, hub and job service.
func bootstrap() (*engine, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	cfgPath, err := config.EnsureUserConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, _, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	if cfg.App.DataDir != "" {
		dir = cfg.App.DataDir
	}

	st, err := store.Open(cfg.Storage.Resolve(dir))
	if err != nil {
		return nil, err
	}
	analyzer, err := jobs.NewAnalyzer(cfg)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	hub := events.NewHub()
	m := metrics.New()
	svc := jobs.New(jobs.Options{
		Store:    st,
		Runner:   jobs.NewRunner(cfg),
		Hub:      hub,
		Analyzer: analyzer,
		Embedder: jobs.NewEmbedder(cfg),
		Metrics:  m,
	})
	return &engine{dataDir: dir, cfgPath: cfgPath, cfg: cfg, store: st, hub: hub, metrics: m, svc: svc}, nil
}

func (e *engine) Close() {
	if err := e.store.Close(); err != nil {
		log.Printf("[engine] level=warn msg=%q err=%v", "store close failed", err)
	}
}
