package jobs

import (
	"context"
	"fmt"
)

const unknownLocation = "Unknown"

type Stats struct {
	TotalJobs       int            `json:"total_jobs"`
	Categories      map[string]int `json:"categories"`
	Locations       map[string]int `json:"locations"`
	AverageSalary   float64        `json:"average_salary"`
	SalaryJobsCount int            `json:"salary_jobs_count"`
	// CategorySalary is the mean minimum salary per raw category, for
	// categories with at least one salaried posting.
	CategorySalary map[string]float64 `json:"category_average_salary"`
}

// Stats analyses every posting description. Categories are raw names.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	postings, err := s.store.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load postings: %w", err)
	}
	a := s.analyzer.Load()

	st := Stats{
		TotalJobs:      len(postings),
		Categories:     map[string]int{},
		Locations:      map[string]int{},
		CategorySalary: map[string]float64{},
	}
	// float sums: extracted salaries are unbounded
	var sum float64
	catSum := map[string]float64{}
	catN := map[string]int{}

	for _, p := range postings {
		an := a.Analyze(p.Description)
		st.Categories[an.RawCategory]++

		loc := p.Location
		if loc == "" {
			loc = unknownLocation
		}
		st.Locations[loc]++

		if lo, ok := an.MinSalary(); ok {
			sum += float64(lo)
			st.SalaryJobsCount++
			catSum[an.RawCategory] += float64(lo)
			catN[an.RawCategory]++
		}
	}

	if st.SalaryJobsCount > 0 {
		st.AverageSalary = sum / float64(st.SalaryJobsCount)
	}
	for c, n := range catN {
		st.CategorySalary[c] = catSum[c] / float64(n)
	}
	return st, nil
}
