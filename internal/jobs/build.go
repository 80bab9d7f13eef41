package jobs

import (
	"fmt"
	"time"

	"jobclassify-engine/internal/classify"
	"jobclassify-engine/internal/config"
	"jobclassify-engine/internal/rank"
	"jobclassify-engine/internal/scrape"
	"jobclassify-engine/internal/scrape/skillindia"
	"jobclassify-engine/internal/scrape/util"
)

// NewAnalyzer builds an analyzer from the classifier, scam and model sections.
func NewAnalyzer(cfg config.Config) (*classify.Analyzer, error) {
	mode, err := classify.ParseSalaryMode(cfg.Classifier.SalaryMode)
	if err != nil {
		return nil, err
	}

	var cats []classify.Category
	for _, c := range cfg.Classifier.Categories {
		cats = append(cats, classify.Category{Name: c.Name, Keywords: c.Keywords})
	}

	var scam classify.ScamDetector
	switch cfg.Scam.Policy {
	case "", "phrase":
		phrases := cfg.Scam.Phrases
		if len(phrases) == 0 {
			phrases = classify.DefaultScamPhrases()
		}
		scam = classify.NewPhraseDetector(phrases)
	case "scored":
		phrases := cfg.Scam.Phrases
		if len(phrases) == 0 {
			phrases = classify.DefaultScoredPhrases()
		}
		flags := classify.DefaultRedFlags()
		if len(cfg.Scam.Patterns) > 0 {
			flags = flags[:0:0]
			for _, p := range cfg.Scam.Patterns {
				flags = append(flags, classify.RedFlag{Pattern: p.Pattern, Weight: p.Weight})
			}
		}
		d, err := classify.NewScoredDetector(phrases, flags, cfg.Scam.Threshold)
		if err != nil {
			return nil, err
		}
		scam = d
	default:
		return nil, fmt.Errorf("unknown scam policy %q", cfg.Scam.Policy)
	}

	var pred classify.Predictor
	if cfg.Model.PredictorURL != "" {
		pred = classify.NewRemotePredictor(cfg.Model.PredictorURL, seconds(cfg.Model.TimeoutSeconds))
	}

	return classify.New(classify.Options{
		Catalog:    cats,
		Cities:     cfg.Classifier.Cities,
		SalaryMode: mode,
		Scam:       scam,
		Predictor:  pred,
	})
}

// NewEmbedder returns nil when no embedder endpoint is configured.
func NewEmbedder(cfg config.Config) rank.Embedder {
	if cfg.Model.EmbedderURL == "" {
		return nil
	}
	return rank.NewRemoteEmbedder(cfg.Model.EmbedderURL, seconds(cfg.Model.TimeoutSeconds))
}

func NewRunner(cfg config.Config) *scrape.Runner {
	limiter := util.NewHostLimiter(cfg.Scrape.ReqPerSec, cfg.Scrape.Burst)
	f := skillindia.New(skillindia.Config{
		BaseURL: cfg.Scrape.BaseURL,
		Paths:   cfg.Scrape.Paths,
		MaxJobs: cfg.Scrape.MaxJobs,
		Timeout: seconds(cfg.Scrape.TimeoutSeconds),
	}, limiter)
	return scrape.NewRunner(f, 2*time.Minute)
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
