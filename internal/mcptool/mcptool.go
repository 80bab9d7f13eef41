// Package mcptool exposes the job engine as MCP tools over stdio.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jobclassify-engine/internal/domain"
	"jobclassify-engine/internal/jobs"
)

const ServerName = "jobclassify-engine"

type Service interface {
	Analyze(ctx context.Context, text string) domain.Analysis
	List(ctx context.Context, q jobs.ListQuery) (jobs.ListResult, error)
	Match(ctx context.Context, q jobs.MatchQuery) (jobs.MatchResult, error)
	Stats(ctx context.Context) (jobs.Stats, error)
}

type Tools struct {
	svc Service
}

func NewServer(svc Service, version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version)
	t := &Tools{svc: svc}
	t.register(s)
	return s
}

// Serve blocks serving the tools on stdin/stdout.
func Serve(svc Service, version string) error {
	return server.ServeStdio(NewServer(svc, version))
}

func (t *Tools) register(s *server.MCPServer) {
	analyze := mcp.NewTool("analyze_job",
		mcp.WithDescription("Classify a job posting: trade category, confidence, salary, city and scam flag"),
	)
	analyze.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{"type": "string", "description": "The job posting text"},
		},
		Required: []string{"text"},
	}
	s.AddTool(analyze, t.analyzeJob)

	list := mcp.NewTool("list_jobs",
		mcp.WithDescription("List stored job postings filtered by location, title keyword and minimum salary"),
	)
	list.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"location":   map[string]interface{}{"type": "string", "description": "Case-insensitive location substring"},
			"category":   map[string]interface{}{"type": "string", "description": "Case-insensitive title substring"},
			"min_salary": map[string]interface{}{"type": "integer", "description": "Drop postings whose salary is below this"},
			"limit":      map[string]interface{}{"type": "integer", "description": "Max postings returned (default: 10)"},
		},
	}
	s.AddTool(list, t.listJobs)

	match := mcp.NewTool("match_jobs",
		mcp.WithDescription("Rank stored job postings against a worker's skills and experience"),
	)
	match.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"skills":     map[string]interface{}{"type": "string", "description": "Free-text skills"},
			"experience": map[string]interface{}{"type": "string", "description": "Free-text experience"},
			"location":   map[string]interface{}{"type": "string", "description": "Preferred location (optional)"},
			"min_salary": map[string]interface{}{"type": "integer", "description": "Minimum acceptable salary (optional)"},
		},
		Required: []string{"skills", "experience"},
	}
	s.AddTool(match, t.matchJobs)

	stats := mcp.NewTool("job_stats",
		mcp.WithDescription("Aggregate counts by category and location plus salary averages"),
	)
	s.AddTool(stats, t.jobStats)
}

func (t *Tools) analyzeJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	text, _ := args["text"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("missing required field: text"), nil
	}
	return jsonResult(t.svc.Analyze(ctx, text))
}

func (t *Tools) listJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	q := jobs.ListQuery{
		Location:  stringArg(args, "location"),
		Category:  stringArg(args, "category"),
		MinSalary: intArg(args, "min_salary"),
		Limit:     intArg(args, "limit"),
	}
	res, err := t.svc.List(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list jobs: %v", err)), nil
	}
	return jsonResult(res)
}

func (t *Tools) matchJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	skills, hasSkills := args["skills"].(string)
	experience, hasExp := args["experience"].(string)
	if !hasSkills || !hasExp {
		return mcp.NewToolResultError("missing required fields: skills, experience"), nil
	}
	minSalary := intArg(args, "min_salary")
	if minSalary < 0 {
		return mcp.NewToolResultError("min_salary must be >= 0"), nil
	}

	res, err := t.svc.Match(ctx, jobs.MatchQuery{
		Profile:   domain.Profile{Skills: skills, Experience: experience},
		Location:  stringArg(args, "location"),
		MinSalary: minSalary,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to match jobs: %v", err)), nil
	}
	return jsonResult(res)
}

func (t *Tools) jobStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := t.svc.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute stats: %v", err)), nil
	}
	return jsonResult(st)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

// intArg accepts JSON numbers, which arrive as float64.
func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
