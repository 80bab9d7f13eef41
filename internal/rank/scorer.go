package rank

import (
	"strings"

	"jobclassify-engine/internal/domain"
)

type Scorer interface {
	Score(profile domain.Profile, p domain.Posting) int
}

// OverlapScorer counts profile tokens found anywhere in the posting text.
// Tokens are not deduplicated, so "driver driver" scores twice.
type OverlapScorer struct{}

func (OverlapScorer) Score(profile domain.Profile, p domain.Posting) int {
	text := strings.ToLower(p.Text())

	score := 0
	for _, tok := range profileTokens(profile) {
		if strings.Contains(text, tok) {
			score++
		}
	}
	return score
}

func profileTokens(profile domain.Profile) []string {
	return strings.Fields(strings.ToLower(profile.Skills + " " + profile.Experience))
}
