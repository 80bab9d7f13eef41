package domain

import "time"

// Posting is a single job advertisement as produced by a scraper.
type Posting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Source      string    `json:"source"`
	ScrapedAt   time.Time `json:"scraped_at"`
	URL         string    `json:"url,omitempty"`
}

// Text is the blob the matchers look at.
func (p Posting) Text() string {
	return p.Title + " " + p.Description
}

// Profile describes a worker looking for jobs.
type Profile struct {
	Skills      string `json:"skills"`
	Experience  string `json:"experience"`
	Preferences string `json:"preferences,omitempty"`
}
