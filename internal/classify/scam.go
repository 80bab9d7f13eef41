package classify

import (
	"fmt"
	"regexp"
	"strings"
)

type ScamDetector interface {
	// Suspicious expects normalized text.
	Suspicious(text string) bool
}

// PhraseDetector flags text containing any of its phrases.
type PhraseDetector struct {
	phrases []string
}

func NewPhraseDetector(phrases []string) PhraseDetector {
	return PhraseDetector{phrases: lowerNonEmpty(phrases)}
}

func (d PhraseDetector) Suspicious(text string) bool {
	for _, p := range d.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

type RedFlag struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Weight  int    `yaml:"weight" json:"weight"`
}

type compiledFlag struct {
	re     *regexp.Regexp
	weight int
}

// ScoredDetector adds one point per matched phrase and each red flag's
// weight per matched pattern; text scoring above the threshold is suspicious.
type ScoredDetector struct {
	phrases   []string
	flags     []compiledFlag
	threshold int
}

func NewScoredDetector(phrases []string, flags []RedFlag, threshold int) (ScoredDetector, error) {
	d := ScoredDetector{phrases: lowerNonEmpty(phrases), threshold: threshold}
	for i, f := range flags {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return ScoredDetector{}, fmt.Errorf("scam pattern[%d] %q: %w", i, f.Pattern, err)
		}
		d.flags = append(d.flags, compiledFlag{re: re, weight: f.Weight})
	}
	return d, nil
}

func (d ScoredDetector) Score(text string) int {
	score := 0
	for _, p := range d.phrases {
		if strings.Contains(text, p) {
			score++
		}
	}
	for _, f := range d.flags {
		if f.re.MatchString(text) {
			score += f.weight
		}
	}
	return score
}

func (d ScoredDetector) Suspicious(text string) bool {
	return d.Score(text) > d.threshold
}

func DefaultScamPhrases() []string {
	return []string{
		"work from home guaranteed", "no experience high salary", "earn lakhs",
		"investment required", "registration fee", "advance payment",
		"part time full salary", "easy money", "get rich quick",
	}
}

// DefaultScoredPhrases are the one-point phrases of the scored policy.
func DefaultScoredPhrases() []string {
	return []string{
		"work from home guaranteed", "no experience needed high salary",
		"earn lakhs", "part time full salary", "investment required",
	}
}

func DefaultRedFlags() []RedFlag {
	return []RedFlag{
		{Pattern: `earn\s+₹?\d+\s+lakhs?\s+monthly`, Weight: 2},
		{Pattern: `no\s+work\s+high\s+salary`, Weight: 2},
		{Pattern: `investment\s+of\s+₹?\d+`, Weight: 2},
	}
}

const DefaultScamThreshold = 2

func lowerNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
