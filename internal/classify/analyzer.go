// Package classify turns free-form job posting text into a structured
// analysis: trade category, salary, city and a scam flag.
//
// An Analyzer is immutable once built and safe for concurrent use; build a
// new one to change the catalog or pattern lists.
package classify

import (
	"context"
	"log"
	"strings"

	"jobclassify-engine/internal/domain"
)

type Options struct {
	Catalog    []Category
	Cities     []string
	SalaryMode SalaryMode
	// Scam defaults to a PhraseDetector over DefaultScamPhrases.
	Scam ScamDetector
	// Predictor, when set, is consulted by AnalyzeContext.
	Predictor Predictor
}

type Analyzer struct {
	scorer    Scorer
	salary    SalaryExtractor
	places    Gazetteer
	scam      ScamDetector
	predictor Predictor
}

func New(opts Options) (*Analyzer, error) {
	cats := opts.Catalog
	if len(cats) == 0 {
		cats = DefaultCatalog()
	}
	catalog, err := NewCatalog(cats)
	if err != nil {
		return nil, err
	}
	cities := opts.Cities
	if len(cities) == 0 {
		cities = DefaultCities()
	}
	mode := opts.SalaryMode
	if mode == "" {
		mode = SalaryScalar
	}
	scam := opts.Scam
	if scam == nil {
		scam = NewPhraseDetector(DefaultScamPhrases())
	}
	return &Analyzer{
		scorer:    Scorer{Catalog: catalog},
		salary:    SalaryExtractor{Mode: mode},
		places:    NewGazetteer(cities),
		scam:      scam,
		predictor: opts.Predictor,
	}, nil
}

// NewDefault builds an analyzer from the built-in catalog and lists.
func NewDefault() *Analyzer {
	a, err := New(Options{})
	if err != nil {
		// the built-in catalog is valid
		panic(err)
	}
	return a
}

// Analyze always returns a result, whatever the input.
func (a *Analyzer) Analyze(text string) domain.Analysis {
	t := Normalize(text)
	raw, _, conf := a.scorer.Score(t)
	return a.assemble(t, raw, conf)
}

// AnalyzeContext lets the configured Predictor choose the category. A failed
// prediction or a label outside the catalog falls back to keyword scoring.
// Blank text never reaches the predictor.
func (a *Analyzer) AnalyzeContext(ctx context.Context, text string) domain.Analysis {
	t := Normalize(text)
	if a.predictor == nil || strings.TrimSpace(t) == "" {
		return a.Analyze(text)
	}
	raw, _, conf := a.scorer.Score(t)

	label, pconf, err := a.predictor.Predict(ctx, text)
	label = strings.ToLower(strings.TrimSpace(label))
	switch {
	case err != nil:
		log.Printf("[classify] predictor failed, using keywords: %v", err)
	case !a.scorer.Catalog.Has(label):
		log.Printf("[classify] predictor label %q not in catalog, using keywords", label)
	default:
		raw, conf = label, clamp01(pconf)
	}
	return a.assemble(t, raw, conf)
}

func (a *Analyzer) assemble(t, raw string, conf float64) domain.Analysis {
	out := domain.Analysis{
		Category:     DisplayName(raw),
		Confidence:   conf,
		IsSuspicious: a.scam.Suspicious(t),
		RawCategory:  raw,
	}
	if s, ok := a.salary.Extract(t); ok {
		out.Salary = &s
	}
	if loc, ok := a.places.Locate(t); ok {
		out.Location = &loc
	}
	return out
}

// Categories returns display names in catalog order.
func (a *Analyzer) Categories() []string {
	names := a.scorer.Catalog.Names()
	for i, n := range names {
		names[i] = DisplayName(n)
	}
	return names
}

func (a *Analyzer) Catalog() Catalog { return a.scorer.Catalog }

func clamp01(f float64) float64 {
	return max(0, min(1, f))
}
