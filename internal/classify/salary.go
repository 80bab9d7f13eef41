package classify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"jobclassify-engine/internal/domain"
)

type SalaryMode string

const (
	// SalaryScalar reports a single figure as an equal min/max pair.
	SalaryScalar SalaryMode = "scalar"
	// SalaryRange also recognises "X to Y" / "X-Y" ranges.
	SalaryRange SalaryMode = "range"
)

func ParseSalaryMode(s string) (SalaryMode, error) {
	switch SalaryMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SalaryScalar:
		return SalaryScalar, nil
	case SalaryRange:
		return SalaryRange, nil
	default:
		return "", fmt.Errorf("unknown salary mode %q", s)
	}
}

type salaryPattern struct {
	re *regexp.Regexp
	// amounts written as "20k"
	shorthand bool
}

var (
	rupeeAmount   = salaryPattern{re: regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)`)}
	kPerMonth     = salaryPattern{re: regexp.MustCompile(`(\d+)k\s*(?:per|/)?\s*month`), shorthand: true}
	labelledValue = salaryPattern{re: regexp.MustCompile(`salary\s*:?\s*₹?\s*(\d+(?:,\d+)*)`)}
	rsSuffix      = salaryPattern{re: regexp.MustCompile(`(\d+(?:,\d+)*)\s*(?:rs|rupees)`)}

	rupeeRange    = salaryPattern{re: regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)\s*(?:-|to)\s*₹?\s*(\d+(?:,\d+)*)`)}
	suffixedRange = salaryPattern{re: regexp.MustCompile(`(\d+(?:,\d+)*)\s*(?:-|to)\s*(\d+(?:,\d+)*)\s*(?:rs|rupees|₹)`)}
	kRange        = salaryPattern{re: regexp.MustCompile(`(\d+)k\s*(?:-|to)\s*(\d+)k`), shorthand: true}
)

// Priority order; the first pattern that matches anywhere wins.
var (
	scalarPatterns = []salaryPattern{rupeeAmount, kPerMonth, labelledValue, rsSuffix}
	rangePatterns  = []salaryPattern{rupeeRange, suffixedRange, labelledValue, kRange, rupeeAmount, kPerMonth, rsSuffix}
)

type SalaryExtractor struct {
	Mode SalaryMode
}

// Extract expects normalized text. It never fails: anything it cannot
// parse is reported as no salary.
func (e SalaryExtractor) Extract(text string) (domain.SalaryRange, bool) {
	patterns := scalarPatterns
	if e.Mode == SalaryRange {
		patterns = rangePatterns
	}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return p.parse(m)
	}
	return domain.SalaryRange{}, false
}

func (p salaryPattern) parse(m []string) (domain.SalaryRange, bool) {
	mult := 1
	if p.shorthand && strings.Contains(m[0], "k") {
		mult = 1000
	}
	lo, ok := parseAmount(m[1], mult)
	if !ok {
		return domain.SalaryRange{}, false
	}
	hi := lo
	if len(m) > 2 {
		if hi, ok = parseAmount(m[2], mult); !ok {
			return domain.SalaryRange{}, false
		}
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	// a zero lower bound is treated as "no salary given"
	if lo == 0 {
		return domain.SalaryRange{}, false
	}
	return domain.SalaryRange{Min: lo, Max: hi}, true
}

func parseAmount(s string, mult int) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil || n > math.MaxInt/mult {
		return 0, false
	}
	return n * mult, true
}
