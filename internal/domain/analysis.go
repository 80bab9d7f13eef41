package domain

import "encoding/json"

// SalaryRange is a monthly (or daily) wage in rupees. Min <= Max.
type SalaryRange struct {
	Min int
	Max int
}

// MarshalJSON renders the range as a two element array, matching the wire
// format clients already consume.
func (s SalaryRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Min, s.Max})
}

func (s *SalaryRange) UnmarshalJSON(b []byte) error {
	var pair [2]int
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	s.Min, s.Max = pair[0], pair[1]
	return nil
}

// Analysis is the structured result of classifying one posting text.
// Salary and Location are nil when nothing was extracted.
type Analysis struct {
	Category     string       `json:"category"`
	Confidence   float64      `json:"confidence"`
	Salary       *SalaryRange `json:"salary_range"`
	Location     *string      `json:"location"`
	IsSuspicious bool         `json:"is_suspicious"`
	RawCategory  string       `json:"raw_category"`
}

// MinSalary returns the lower bound of the extracted salary, if any.
func (a Analysis) MinSalary() (int, bool) {
	if a.Salary == nil {
		return 0, false
	}
	return a.Salary.Min, true
}
