package rank

import (
	"sort"
	"strings"

	"jobclassify-engine/internal/domain"
)

// Analyzer is the slice of the classifier that matching needs.
type Analyzer interface {
	Analyze(text string) domain.Analysis
}

type Filter struct {
	Location  string
	MinSalary int
}

type Match struct {
	Job      domain.Posting  `json:"job"`
	Score    int             `json:"match_score"`
	Analysis domain.Analysis `json:"analysis"`
}

// Rank scores every posting against the profile and returns those with a
// positive score that pass the filter, best first. Equal scores keep input
// order. Salary is read from the posting description.
func Rank(postings []domain.Posting, profile domain.Profile, f Filter, s Scorer, a Analyzer) []Match {
	if s == nil {
		s = OverlapScorer{}
	}
	loc := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]Match, 0)
	for _, p := range postings {
		score := s.Score(profile, p)
		if score <= 0 {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(p.Location), loc) {
			continue
		}
		an := a.Analyze(p.Description)
		if f.MinSalary > 0 {
			if lo, ok := an.MinSalary(); ok && lo < f.MinSalary {
				continue
			}
		}
		out = append(out, Match{Job: p, Score: score, Analysis: an})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
