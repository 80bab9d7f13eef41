package skillindia

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobclassify-engine/internal/domain"
	"jobclassify-engine/internal/scrape/util"
)

var (
	containerHints = []string{"job", "vacancy", "opening", "position"}
	descHints      = []string{"desc", "detail", "content"}
)

const (
	defaultTitle    = "Job Opening"
	defaultLocation = "India"
	headings        = "h1, h2, h3, h4"
)

func parseListings(body []byte, pageURL string, limit int, cities []string, now time.Time) ([]domain.Posting, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out []domain.Posting
	doc.Find("div, article").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if !classHas(c, containerHints) {
			return true
		}
		p := extract(c, cities)
		p.ID = int64(len(out) + 1)
		p.Source = Source
		p.ScrapedAt = now
		p.URL = pageURL
		out = append(out, p)
		return len(out) < limit
	})
	return out, nil
}

func extract(c *goquery.Selection, cities []string) domain.Posting {
	var p domain.Posting

	hs := c.Find(headings)
	titleEl := hs.FilterFunction(func(_ int, h *goquery.Selection) bool {
		return classHas(h, []string{"title"})
	}).First()
	if titleEl.Length() == 0 {
		titleEl = hs.First()
	}
	if titleEl.Length() > 0 {
		p.Title = util.CleanText(titleEl.Text())
	} else {
		p.Title = defaultTitle
	}

	descEl := c.Find("p, div").FilterFunction(func(_ int, d *goquery.Selection) bool {
		return classHas(d, descHints)
	}).First()
	if descEl.Length() > 0 {
		p.Description = util.CleanText(descEl.Text())
	} else {
		p.Description = p.Title
	}

	p.Location = util.FirstTextMentioning(c, cities)
	if p.Location == "" {
		p.Location = defaultLocation
	}
	return p
}

func classHas(s *goquery.Selection, hints []string) bool {
	cls, ok := s.Attr("class")
	if !ok || strings.TrimSpace(cls) == "" {
		return false
	}
	return util.ContainsAny(cls, hints)
}
