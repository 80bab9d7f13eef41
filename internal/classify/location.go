package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Gazetteer is the ordered list of recognised city names. The first city
// in list order that appears in the text wins.
type Gazetteer struct {
	cities []string
}

func NewGazetteer(cities []string) Gazetteer {
	out := make([]string, 0, len(cities))
	seen := map[string]bool{}
	for _, c := range cities {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return Gazetteer{cities: out}
}

func (g Gazetteer) Cities() []string {
	return append([]string(nil), g.cities...)
}

// Locate expects normalized text.
func (g Gazetteer) Locate(text string) (string, bool) {
	for _, c := range g.cities {
		if strings.Contains(text, c) {
			return cases.Title(language.English).String(c), true
		}
	}
	return "", false
}

func DefaultCities() []string {
	return []string{
		"mumbai", "delhi", "bangalore", "chennai", "pune", "hyderabad",
		"ahmedabad", "kolkata", "jaipur", "lucknow", "kanpur", "nagpur",
		"indore", "thane", "bhopal", "visakhapatnam", "pimpri", "patna",
	}
}
