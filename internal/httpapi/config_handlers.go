package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"jobclassify-engine/internal/config"
	"jobclassify-engine/internal/events"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	Reload      func(config.Config) error
	Hub         *events.Hub
}

func (h ConfigHandler) current() config.Config {
	cfg, _ := h.CfgVal.Load().(config.Config)
	return cfg
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.current())
}

// Put replaces the whole config: validate, save, re-read, apply.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	incoming, err := decodeConfig(r)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		WriteJSON(w, http.StatusBadRequest, vr)
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		internalError(w, r, err)
		return
	}
	saved, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
		return
	}
	if h.Reload != nil {
		if err := h.Reload(saved); err != nil {
			WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but apply failed: "+err.Error())
			return
		}
	}
	h.CfgVal.Store(saved)
	log.Printf("[config] level=info msg=%q request_id=%s path=%s warnings=%d",
		"config saved", RequestIDFrom(r.Context()), h.UserCfgPath, len(vr.Warnings))
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeConfigReloaded, events.ConfigReloaded{Warnings: vr.Warnings})
	writeJSON(w, saved)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, err := filepath.Abs(h.UserCfgPath)
	if err != nil {
		abs = h.UserCfgPath
	}
	writeJSON(w, map[string]any{"path": abs})
}

// Validate checks the running config (GET) or a candidate body (POST)
// without saving anything.
func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cfg := h.current()
	if r.Method == http.MethodPost {
		var err error
		if cfg, err = decodeConfig(r); err != nil {
			badRequest(w, r, err)
			return
		}
	}
	_, vr := config.NormalizeAndValidate(cfg)
	writeJSON(w, vr)
}

func decodeConfig(r *http.Request) (config.Config, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()

	var cfg config.Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, errors.New("request body is empty")
		}
		return cfg, errors.New("invalid JSON: " + err.Error())
	}
	if dec.More() {
		return cfg, errors.New("invalid JSON: trailing data")
	}
	return cfg, nil
}
