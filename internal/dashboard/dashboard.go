// Package dashboard serves the server-rendered HTML pages under /dashboard.
package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"jobclassify-engine/internal/classify"
	"jobclassify-engine/internal/domain"
	"jobclassify-engine/internal/jobs"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageSizes are the page sizes offered on the browse page.
var PageSizes = []int{5, 10, 20}

const defaultPageSize = 10

type Service interface {
	Postings(ctx context.Context) ([]domain.Posting, error)
	Stats(ctx context.Context) (jobs.Stats, error)
	Match(ctx context.Context, q jobs.MatchQuery) (jobs.MatchResult, error)
	Analyze(ctx context.Context, text string) domain.Analysis
	Scrape(ctx context.Context) (jobs.ScrapeResult, error)
}

type Handler struct {
	svc   Service
	pages map[string]*template.Template
	mux   *http.ServeMux
}

func New(svc Service) (*Handler, error) {
	p := message.NewPrinter(language.MustParse("en-IN"))
	funcs := template.FuncMap{
		"rupees":  func(n int) string { return p.Sprintf("₹%d", n) },
		"rupeesf": func(f float64) string { return p.Sprintf("₹%d", int(math.Round(f))) },
		"pct1":    func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
		"pct2":    func(f float64) string { return fmt.Sprintf("%.2f%%", f*100) },
	}

	h := &Handler{svc: svc, pages: map[string]*template.Template{}}
	for _, name := range []string{"browse", "analyze", "match", "analytics"} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		h.pages[name] = t
	}

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("/dashboard", h.browse)
	h.mux.HandleFunc("/dashboard/", h.browse)
	h.mux.HandleFunc("/dashboard/analyze", h.analyze)
	h.mux.HandleFunc("/dashboard/match", h.match)
	h.mux.HandleFunc("/dashboard/analytics", h.analytics)
	h.mux.HandleFunc("/dashboard/refresh", h.refresh)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type page struct {
	Title string
	Nav   string
	Total int
	Error string
	Data  any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, pg page) {
	if postings, err := h.svc.Postings(r.Context()); err == nil {
		pg.Total = len(postings)
	}
	pg.Nav = name
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages[name].Execute(w, pg); err != nil {
		log.Printf("[dashboard] level=error msg=%q page=%s err=%v", "render failed", name, err)
	}
}

type browseRow struct {
	Posting  domain.Posting
	Analysis *domain.Analysis
}

type browseData struct {
	Locations []string
	Location  string
	Query     string
	PerPage   int
	PageSizes []int
	Page      int
	Pages     int
	Matched   int
	Rows      []browseRow
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/dashboard" && r.URL.Path != "/dashboard/" {
		http.NotFound(w, r)
		return
	}
	postings, err := h.svc.Postings(r.Context())
	if err != nil {
		h.render(w, r, "browse", page{Title: "Browse Jobs", Error: err.Error()})
		return
	}

	q := r.URL.Query()
	d := browseData{
		Locations: distinctLocations(postings),
		Location:  q.Get("location"),
		Query:     strings.TrimSpace(q.Get("q")),
		PerPage:   pageSize(q.Get("per_page")),
		PageSizes: PageSizes,
	}
	analyzeID, _ := strconv.ParseInt(q.Get("analyze"), 10, 64)

	var filtered []domain.Posting
	needle := strings.ToLower(d.Query)
	for _, p := range postings {
		// the location select is an exact match
		if d.Location != "" && d.Location != "All" && p.Location != d.Location {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		filtered = append(filtered, p)
	}
	d.Matched = len(filtered)
	d.Pages = max(1, (len(filtered)+d.PerPage-1)/d.PerPage)
	d.Page, _ = strconv.Atoi(q.Get("page"))
	d.Page = min(max(d.Page, 1), d.Pages)

	start := (d.Page - 1) * d.PerPage
	end := min(start+d.PerPage, len(filtered))
	for _, p := range filtered[start:end] {
		row := browseRow{Posting: p}
		if analyzeID != 0 && p.ID == analyzeID {
			a := h.svc.Analyze(r.Context(), p.Description)
			row.Analysis = &a
		}
		d.Rows = append(d.Rows, row)
	}
	h.render(w, r, "browse", page{Title: "Browse Jobs", Data: d})
}

type analyzeData struct {
	Text     string
	Analysis *domain.Analysis
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	d := analyzeData{}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			h.render(w, r, "analyze", page{Title: "Job Analysis", Error: err.Error(), Data: d})
			return
		}
		d.Text = r.PostFormValue("text")
		if strings.TrimSpace(d.Text) != "" {
			a := h.svc.Analyze(r.Context(), d.Text)
			d.Analysis = &a
		}
	}
	h.render(w, r, "analyze", page{Title: "Job Analysis", Data: d})
}

type matchData struct {
	Skills, Experience, Location string
	MinSalary                    int
	Submitted                    bool
	Result                       jobs.MatchResult
}

func (h *Handler) match(w http.ResponseWriter, r *http.Request) {
	d := matchData{MinSalary: 10000}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			h.render(w, r, "match", page{Title: "Job Matching", Error: err.Error(), Data: d})
			return
		}
		d.Submitted = true
		d.Skills = r.PostFormValue("skills")
		d.Experience = r.PostFormValue("experience")
		d.Location = r.PostFormValue("location")
		d.MinSalary, _ = strconv.Atoi(r.PostFormValue("min_salary"))

		res, err := h.svc.Match(r.Context(), jobs.MatchQuery{
			Profile:   domain.Profile{Skills: d.Skills, Experience: d.Experience},
			Location:  d.Location,
			MinSalary: max(d.MinSalary, 0),
		})
		if err != nil {
			h.render(w, r, "match", page{Title: "Job Matching", Error: err.Error(), Data: d})
			return
		}
		d.Result = res
	}
	h.render(w, r, "match", page{Title: "Job Matching", Data: d})
}

type bar struct {
	Label string
	Value float64
	Width int // percent of the largest bar
}

type analyticsData struct {
	Stats      jobs.Stats
	ByCategory []bar
	BySalary   []bar
	ByLocation []bar
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.render(w, r, "analytics", page{Title: "Analytics", Error: err.Error()})
		return
	}
	d := analyticsData{Stats: st}
	for c, n := range st.Categories {
		d.ByCategory = append(d.ByCategory, bar{Label: classify.DisplayName(c), Value: float64(n)})
	}
	for c, v := range st.CategorySalary {
		d.BySalary = append(d.BySalary, bar{Label: classify.DisplayName(c), Value: v})
	}
	for l, n := range st.Locations {
		d.ByLocation = append(d.ByLocation, bar{Label: l, Value: float64(n)})
	}
	d.ByCategory = scaleBars(d.ByCategory)
	d.BySalary = scaleBars(d.BySalary)
	d.ByLocation = scaleBars(d.ByLocation)
	h.render(w, r, "analytics", page{Title: "Analytics", Data: d})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, err := h.svc.Scrape(r.Context()); err != nil {
		log.Printf("[dashboard] level=error msg=%q err=%v", "refresh failed", err)
		h.render(w, r, "browse", page{Title: "Browse Jobs", Error: "Refresh failed: " + err.Error(), Data: browseData{PageSizes: PageSizes, PerPage: defaultPageSize, Pages: 1, Page: 1}})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func distinctLocations(postings []domain.Posting) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range postings {
		if !seen[p.Location] {
			seen[p.Location] = true
			out = append(out, p.Location)
		}
	}
	sort.Strings(out)
	return out
}

func pageSize(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return defaultPageSize
	}
	for _, ok := range PageSizes {
		if n == ok {
			return n
		}
	}
	return defaultPageSize
}

// scaleBars sorts bars largest first (ties by label) and sets their widths.
func scaleBars(bars []bar) []bar {
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Value != bars[j].Value {
			return bars[i].Value > bars[j].Value
		}
		return bars[i].Label < bars[j].Label
	})
	if len(bars) == 0 || bars[0].Value <= 0 {
		return bars
	}
	for i := range bars {
		bars[i].Width = int(bars[i].Value / bars[0].Value * 100)
	}
	return bars
}
