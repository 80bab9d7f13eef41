package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy along with the problems found.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Storage.Driver = strings.ToLower(strings.TrimSpace(out.Storage.Driver))
	out.Classifier.SalaryMode = strings.ToLower(strings.TrimSpace(out.Classifier.SalaryMode))
	out.Scam.Policy = strings.ToLower(strings.TrimSpace(out.Scam.Policy))
	out.Scrape.Schedule = strings.TrimSpace(out.Scrape.Schedule)
	out.Scrape.Paths = trimList(out.Scrape.Paths)
	out.Classifier.Cities = trimList(out.Classifier.Cities)
	out.Scam.Phrases = trimList(out.Scam.Phrases)
	out.Bot.JobTypes = trimList(out.Bot.JobTypes)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.Storage.Driver {
	case "file":
		if out.Storage.PostingsPath == "" {
			res.addErr("storage.postings_path is required when storage.driver=file")
		}
	case "sqlite":
		if out.Storage.SQLitePath == "" {
			res.addErr("storage.sqlite_path is required when storage.driver=sqlite")
		}
	case "postgres":
		if strings.TrimSpace(out.Storage.PostgresDSN) == "" {
			res.addErr("storage.postgres_dsn is required when storage.driver=postgres")
		}
	default:
		res.addErr("storage.driver must be file, sqlite or postgres, got %q", out.Storage.Driver)
	}

	// scrape sanity
	if strings.TrimSpace(out.Scrape.BaseURL) == "" {
		res.addWarn("scrape.base_url is empty; scraping will always fall back to sample postings.")
	}
	if len(out.Scrape.Paths) == 0 {
		res.addWarn("scrape.paths is empty; scraping will always fall back to sample postings.")
	}
	if out.Scrape.MaxJobs <= 0 {
		res.addErr("scrape.max_jobs must be > 0")
	}
	if out.Scrape.TimeoutSeconds <= 0 {
		res.addErr("scrape.timeout_seconds must be > 0")
	}
	if out.Scrape.ReqPerSec <= 0 {
		res.addErr("scrape.req_per_sec must be > 0")
	} else if out.Scrape.ReqPerSec > 10 {
		res.addWarn("scrape.req_per_sec is high (%.1f) and may get the scraper blocked.", out.Scrape.ReqPerSec)
	}
	if out.Scrape.Burst <= 0 {
		res.addErr("scrape.burst must be > 0")
	}
	if out.Scrape.Schedule != "" {
		if _, err := cron.ParseStandard(out.Scrape.Schedule); err != nil {
			res.addErr("scrape.schedule %q: %v", out.Scrape.Schedule, err)
		}
	}

	// classifier
	switch out.Classifier.SalaryMode {
	case "scalar", "range":
	default:
		res.addErr("classifier.salary_mode must be scalar or range, got %q", out.Classifier.SalaryMode)
	}
	out.Classifier.Categories = append([]Category(nil), cfg.Classifier.Categories...)
	seenCat := map[string]bool{}
	for i, c := range out.Classifier.Categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			res.addErr("classifier.categories[%d].name is required", i)
			continue
		}
		if seenCat[name] {
			res.addErr("classifier.categories[%d]: duplicate name %q", i, name)
		}
		seenCat[name] = true
		if len(trimList(c.Keywords)) == 0 {
			res.addErr("classifier.categories[%d].keywords must have at least 1 term", i)
		}
		out.Classifier.Categories[i] = Category{Name: name, Keywords: trimList(c.Keywords)}
	}

	// scam
	switch out.Scam.Policy {
	case "phrase":
		if len(out.Scam.Patterns) > 0 {
			res.addWarn("scam.patterns are ignored when scam.policy=phrase")
		}
	case "scored":
		if out.Scam.Threshold < 0 {
			res.addErr("scam.threshold must be >= 0")
		}
	default:
		res.addErr("scam.policy must be phrase or scored, got %q", out.Scam.Policy)
	}
	for i, p := range out.Scam.Patterns {
		if _, err := regexp.Compile(p.Pattern); err != nil {
			res.addErr("scam.patterns[%d].pattern: %v", i, err)
		}
		if p.Weight <= 0 {
			res.addWarn("scam.patterns[%d].weight is %d; the pattern never counts.", i, p.Weight)
		}
	}

	if out.Model.TimeoutSeconds <= 0 {
		res.addErr("model.timeout_seconds must be > 0")
	}

	out.Events.RedisURL = strings.TrimSpace(out.Events.RedisURL)
	out.Events.RedisChannel = strings.TrimSpace(out.Events.RedisChannel)
	if out.Events.RedisURL != "" {
		if !strings.HasPrefix(out.Events.RedisURL, "redis://") && !strings.HasPrefix(out.Events.RedisURL, "rediss://") {
			res.addErr("events.redis_url must start with redis:// or rediss://")
		}
		if out.Events.RedisChannel == "" {
			res.addErr("events.redis_channel is required when events.redis_url is set")
		}
	}

	if len(out.Bot.JobTypes) == 0 {
		res.addWarn("bot.job_types is empty; job searches over the bot will never match.")
	}

	return out, res
}
