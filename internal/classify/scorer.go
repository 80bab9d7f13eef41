package classify

import "strings"

const (
	baseConfidence    = 0.6
	perMatchIncrement = 0.1
	maxConfidence     = 0.95
	// GeneralConfidence is a sentinel, not derived from the formula.
	GeneralConfidence = 0.3
)

// Scorer picks the best catalog category for a piece of text by counting
// keyword hits.
type Scorer struct {
	Catalog Catalog
}

// Score expects text that already went through Normalize.
func (s Scorer) Score(text string) (raw string, matches int, confidence float64) {
	best, bestCount := "", 0
	for _, cat := range s.Catalog.cats {
		n := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				n++
			}
		}
		// strictly greater: earlier categories win ties
		if n > bestCount {
			best, bestCount = cat.Name, n
		}
	}
	if bestCount == 0 {
		return General, 0, GeneralConfidence
	}
	return best, bestCount, KeywordConfidence(bestCount)
}

// KeywordConfidence grows by a fixed step per matched keyword and saturates.
func KeywordConfidence(matches int) float64 {
	return min(maxConfidence, baseConfidence+perMatchIncrement*float64(matches))
}
