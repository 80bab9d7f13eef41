package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	cfg.App.DataDir = t.TempDir()

	_, v := NormalizeAndValidate(cfg)

	assert.True(t, v.OK(), "errors: %v", v.Errors)
	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "scalar", cfg.Classifier.SalaryMode)
	assert.Equal(t, []string{"/content/list-jobs", "/jobs", "/employment"}, cfg.Scrape.Paths)
	assert.Equal(t, []string{"electrician", "driver", "plumber", "sweeper"}, cfg.Bot.JobTypes)
}

func TestEnsureUserConfig_WritesOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	p, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.FileExists(t, p)

	require.NoError(t, os.WriteFile(p, []byte("app:\n  port: 9001\n"), 0o644))
	p2, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, p, p2)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.App.Port)
	// untouched sections keep defaults
	assert.Equal(t, 20, cfg.Scrape.MaxJobs)
}

func TestLoad_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte("app: [oops"), 0o644))

	_, err := Load(p)
	assert.Error(t, err)
}

func TestOverlayEnv(t *testing.T) {
	env := map[string]string{
		"JOBCLASSIFY_PORT":            "9100",
		"JOBCLASSIFY_STORAGE_DRIVER":  "sqlite",
		"JOBCLASSIFY_SALARY_MODE":     "range",
		"JOBCLASSIFY_SCRAPE_ON_START": "true",
		"JOBCLASSIFY_EMBEDDER_URL":    "http://localhost:9000/embed",
	}
	cfg := Default()

	require.NoError(t, OverlayEnv(&cfg, func(k string) string { return env[k] }))

	assert.Equal(t, 9100, cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "range", cfg.Classifier.SalaryMode)
	assert.True(t, cfg.Scrape.OnStart)
	assert.Equal(t, "http://localhost:9000/embed", cfg.Model.EmbedderURL)
	assert.Equal(t, "phrase", cfg.Scam.Policy)
}

func TestOverlayEnv_BadNumber(t *testing.T) {
	cfg := Default()
	err := OverlayEnv(&cfg, func(k string) string {
		if k == "JOBCLASSIFY_PORT" {
			return "eighty"
		}
		return ""
	})
	assert.ErrorContains(t, err, "JOBCLASSIFY_PORT")
}

func TestNormalizeAndValidate_Errors(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Storage.Driver = "mongo"
	cfg.Classifier.SalaryMode = "weekly"
	cfg.Scam.Policy = "scored"
	cfg.Scam.Patterns = []RedFlag{{Pattern: "(", Weight: 2}}
	cfg.Scrape.Schedule = "every now and then"
	cfg.Classifier.Categories = []Category{{Name: "Cook", Keywords: []string{"cook"}}, {Name: "cook", Keywords: []string{" "}}}

	_, v := NormalizeAndValidate(cfg)

	assert.False(t, v.OK())
	assert.Len(t, v.Errors, 7, "errors: %v", v.Errors)
}

func TestNormalizeAndValidate_PostgresAndRedis(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "postgres"
	cfg.Events.RedisURL = "localhost:6379"

	_, v := NormalizeAndValidate(cfg)
	assert.Len(t, v.Errors, 2, "errors: %v", v.Errors)

	cfg.Storage.PostgresDSN = "postgres://jobs@localhost:5432/jobs"
	cfg.Events.RedisURL = " redis://localhost:6379/0 "
	out, v := NormalizeAndValidate(cfg)
	assert.True(t, v.OK(), "errors: %v", v.Errors)
	assert.Equal(t, "redis://localhost:6379/0", out.Events.RedisURL)
	assert.Equal(t, "jobclassify.events", out.Events.RedisChannel)
}

func TestNormalizeAndValidate_NormalizesLists(t *testing.T) {
	cfg := Default()
	cfg.Classifier.Cities = []string{" Mumbai", "mumbai", "", "Delhi "}
	cfg.Storage.Driver = " SQLite "
	cfg.Scrape.Schedule = "@every 6h"

	out, v := NormalizeAndValidate(cfg)

	assert.True(t, v.OK(), "errors: %v", v.Errors)
	assert.Equal(t, []string{"Mumbai", "Delhi"}, out.Classifier.Cities)
	assert.Equal(t, "sqlite", out.Storage.Driver)
}

func TestSaveAtomic(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.App.Port = 8100

	require.NoError(t, SaveAtomic(p, cfg))
	cfg.App.Port = 8200
	require.NoError(t, SaveAtomic(p, cfg))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 8200, got.App.Port)

	bak, err := Load(p + ".bak")
	require.NoError(t, err)
	assert.Equal(t, 8100, bak.App.Port)

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# jobclassify-engine"))
	tmps, _ := filepath.Glob(p + ".*.tmp")
	assert.Empty(t, tmps)

	cfg.App.Port = -1
	assert.Error(t, SaveAtomic(p, cfg))
}

func TestStorageResolve(t *testing.T) {
	s := Storage{PostingsPath: "jobs.json", SQLitePath: "/abs/jobs.db"}.Resolve("/data")
	assert.Equal(t, filepath.Join("/data", "jobs.json"), s.PostingsPath)
	assert.Equal(t, "/abs/jobs.db", s.SQLitePath)
}
