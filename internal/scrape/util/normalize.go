package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// ContainsAny reports whether lower-cased s contains any of the needles,
// which must already be lower case.
func ContainsAny(s string, needles []string) bool {
	l := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(l, n) {
			return true
		}
	}
	return false
}
