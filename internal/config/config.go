package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

type RedFlag struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Weight  int    `yaml:"weight" json:"weight"`
}

type Storage struct {
	Driver       string `yaml:"driver" json:"driver"` // file | sqlite | postgres
	PostingsPath string `yaml:"postings_path" json:"postings_path"`
	SQLitePath   string `yaml:"sqlite_path" json:"sqlite_path"`
	PostgresDSN  string `yaml:"postgres_dsn" json:"postgres_dsn"`
}

type Scrape struct {
	BaseURL        string   `yaml:"base_url" json:"base_url"`
	Paths          []string `yaml:"paths" json:"paths"`
	MaxJobs        int      `yaml:"max_jobs" json:"max_jobs"`
	TimeoutSeconds int      `yaml:"timeout_seconds" json:"timeout_seconds"`
	ReqPerSec      float64  `yaml:"req_per_sec" json:"req_per_sec"`
	Burst          int      `yaml:"burst" json:"burst"`
	Schedule       string   `yaml:"schedule" json:"schedule"` // cron spec, "" disables
	OnStart        bool     `yaml:"on_start" json:"on_start"`
}

type Classifier struct {
	SalaryMode string     `yaml:"salary_mode" json:"salary_mode"` // scalar | range
	Categories []Category `yaml:"categories" json:"categories"`
	Cities     []string   `yaml:"cities" json:"cities"`
}

type Scam struct {
	Policy    string    `yaml:"policy" json:"policy"` // phrase | scored
	Phrases   []string  `yaml:"phrases" json:"phrases"`
	Patterns  []RedFlag `yaml:"patterns" json:"patterns"`
	Threshold int       `yaml:"threshold" json:"threshold"`
}

type Model struct {
	PredictorURL   string `yaml:"predictor_url" json:"predictor_url"`
	EmbedderURL    string `yaml:"embedder_url" json:"embedder_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// Events optionally mirrors engine events onto a Redis pub/sub channel.
type Events struct {
	RedisURL     string `yaml:"redis_url" json:"redis_url"`
	RedisChannel string `yaml:"redis_channel" json:"redis_channel"`
}

type Bot struct {
	JobTypes []string `yaml:"job_types" json:"job_types"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Storage    Storage    `yaml:"storage" json:"storage"`
	Scrape     Scrape     `yaml:"scrape" json:"scrape"`
	Classifier Classifier `yaml:"classifier" json:"classifier"`
	Scam       Scam       `yaml:"scam" json:"scam"`
	Model      Model      `yaml:"model" json:"model"`
	Events     Events     `yaml:"events" json:"events"`
	Bot        Bot        `yaml:"bot" json:"bot"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yml: %v", err))
	}
	return cfg
}

// Load reads path on top of the defaults, so keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns storage paths joined onto dataDir when relative.
func (s Storage) Resolve(dataDir string) Storage {
	out := s
	out.PostingsPath = resolve(dataDir, s.PostingsPath)
	out.SQLitePath = resolve(dataDir, s.SQLitePath)
	return out
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}
