// Package bot answers chat messages about jobs: a canned lookup by job type
// or an analysis of a pasted job description.
package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"jobclassify-engine/internal/domain"
)

// DefaultJobTypes are the trades a search message can name.
var DefaultJobTypes = []string{"electrician", "driver", "plumber", "sweeper"}

type Analyzer interface {
	Analyze(ctx context.Context, text string) domain.Analysis
}

// Inbound webhook payload.
type Webhook struct {
	Messages []Message `json:"messages"`
}

type Message struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
}

// Body returns the text body and whether the message should be answered.
func (m Message) Body() (string, bool) {
	if m.Type != "text" || m.Text == nil {
		return "", false
	}
	return m.Text.Body, strings.Contains(strings.ToLower(m.Text.Body), "job")
}

type Responder struct {
	Analyzer Analyzer
	JobTypes []string

	printer *message.Printer
	title   cases.Caser
}

func NewResponder(a Analyzer, jobTypes []string) *Responder {
	if len(jobTypes) == 0 {
		jobTypes = DefaultJobTypes
	}
	lower := make([]string, 0, len(jobTypes))
	for _, t := range jobTypes {
		lower = append(lower, strings.ToLower(t))
	}
	return &Responder{
		Analyzer: a,
		JobTypes: lower,
		printer:  message.NewPrinter(language.MustParse("en-IN")),
		title:    cases.Title(language.English),
	}
}

func (r *Responder) Reply(ctx context.Context, body string) string {
	low := strings.ToLower(body)
	if strings.Contains(low, "search") || strings.Contains(low, "find") {
		return r.search(low)
	}
	return r.describe(r.Analyzer.Analyze(ctx, body))
}

func (r *Responder) search(low string) string {
	for _, t := range r.JobTypes {
		if strings.Contains(low, t) {
			return fmt.Sprintf("🔍 Found jobs for %s:\n\n"+
				"1. %s needed in Mumbai - ₹15,000-20,000\n"+
				"2. Experienced %s required in Delhi - ₹18,000-25,000\n\n"+
				"Reply with job number for details!", t, r.title.String(t), t)
		}
	}
	return "Please specify job type: " + humanList(r.JobTypes)
}

func (r *Responder) describe(a domain.Analysis) string {
	var b strings.Builder
	b.WriteString("📝 Job Analysis:\n")
	fmt.Fprintf(&b, "Category: %s\n", a.Category)
	fmt.Fprintf(&b, "Confidence: %.1f%%\n", a.Confidence*100)
	if a.Salary != nil && a.Salary.Min > 0 {
		b.WriteString(r.printer.Sprintf("Salary: ₹%d-₹%d\n", a.Salary.Min, a.Salary.Max))
	}
	if a.Location != nil {
		fmt.Fprintf(&b, "Location: %s\n", *a.Location)
	}
	if a.IsSuspicious {
		b.WriteString("⚠️ Warning: Suspicious job posting!")
	}
	return b.String()
}

// humanList renders "a, b, c, or d".
func humanList(xs []string) string {
	switch len(xs) {
	case 0:
		return ""
	case 1:
		return xs[0]
	case 2:
		return xs[0] + " or " + xs[1]
	}
	return strings.Join(xs[:len(xs)-1], ", ") + ", or " + xs[len(xs)-1]
}

type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// LogSender writes outgoing replies to the log instead of a messaging API.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, text string) error {
	log.Printf("[bot] level=info msg=%q to=%s text=%q", "reply", to, text)
	return nil
}

// Handle answers every eligible message in the payload and returns how many
// replies were sent. Send failures are logged and skipped.
func Handle(ctx context.Context, r *Responder, s Sender, w Webhook) int {
	sent := 0
	for _, m := range w.Messages {
		body, ok := m.Body()
		if !ok {
			continue
		}
		if err := s.Send(ctx, m.From, r.Reply(ctx, body)); err != nil {
			log.Printf("[bot] level=error msg=%q to=%s err=%v", "send failed", m.From, err)
			continue
		}
		sent++
	}
	return sent
}
