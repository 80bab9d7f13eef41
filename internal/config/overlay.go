package config

import (
	"fmt"
	"strconv"
	"strings"
)

const EnvPrefix = "JOBCLASSIFY_"

// OverlayEnv applies JOBCLASSIFY_* variables on top of file values.
// getenv is usually os.Getenv.
func OverlayEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(EnvPrefix + key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(EnvPrefix + key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	if err := num("PORT", &cfg.App.Port); err != nil {
		return err
	}
	str("DATA_DIR", &cfg.App.DataDir)
	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("POSTINGS_PATH", &cfg.Storage.PostingsPath)
	str("SQLITE_PATH", &cfg.Storage.SQLitePath)
	str("POSTGRES_DSN", &cfg.Storage.PostgresDSN)
	str("REDIS_URL", &cfg.Events.RedisURL)
	str("SCRAPE_BASE_URL", &cfg.Scrape.BaseURL)
	str("SCRAPE_SCHEDULE", &cfg.Scrape.Schedule)
	if v := strings.TrimSpace(getenv(EnvPrefix + "SCRAPE_ON_START")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSCRAPE_ON_START: %w", EnvPrefix, err)
		}
		cfg.Scrape.OnStart = b
	}
	str("SALARY_MODE", &cfg.Classifier.SalaryMode)
	str("SCAM_POLICY", &cfg.Scam.Policy)
	str("PREDICTOR_URL", &cfg.Model.PredictorURL)
	str("EMBEDDER_URL", &cfg.Model.EmbedderURL)
	return nil
}
