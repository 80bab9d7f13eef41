package httpapi

// Pointer fields distinguish a missing value from an empty string.

type AnalyzeRequest struct {
	JobDescription *string `json:"job_description" validate:"required"`
}

type MatchRequest struct {
	Skills            *string `json:"skills" validate:"required"`
	Experience        *string `json:"experience" validate:"required"`
	PreferredLocation string  `json:"preferred_location"`
	MinSalary         int     `json:"min_salary" validate:"gte=0"`
}

type SimilarRequest struct {
	Text string `json:"text" validate:"required"`
	TopK int    `json:"top_k" validate:"gte=0,lte=100"`
}
