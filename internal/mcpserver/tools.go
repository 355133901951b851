package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prismlab/prism/internal/analysis"
	"github.com/prismlab/prism/internal/output"
	"github.com/prismlab/prism/pkg/config"
	"github.com/prismlab/prism/pkg/report"
	toon "github.com/toon-format/toon-go"
)

// AnalyzeInput is the base input for both tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// ComponentsInput selects per-component metric output.
type ComponentsInput struct {
	AnalyzeInput
	Component string `json:"component,omitempty" jsonschema:"Restrict output to a single component by name."`
}

// RankInput selects risk-ranked output.
type RankInput struct {
	AnalyzeInput
	Top int `json:"top,omitempty" jsonschema:"Show only the N riskiest components. Default all."`
}

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func formatOutput(data any, format string) (string, error) {
	if output.ParseFormat(format) == output.FormatJSON {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func runPipeline(ctx context.Context, input AnalyzeInput) (*analysis.Run, error) {
	svc := analysis.New(config.LoadOrDefault())
	return svc.AnalyzePaths(ctx, getPaths(input), nil)
}

func handleAnalyzeComponents(ctx context.Context, req *mcp.CallToolRequest, input ComponentsInput) (*mcp.CallToolResult, any, error) {
	run, err := runPipeline(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}
	if len(run.Components) == 0 {
		return toolError("no components found")
	}

	rows := run.Report.Rows
	if input.Component != "" {
		filtered := rows[:0:0]
		for _, row := range rows {
			if row.Name == input.Component {
				filtered = append(filtered, row)
			}
		}
		if len(filtered) == 0 {
			return toolError("component not found: " + input.Component)
		}
		rows = filtered
	}

	out := struct {
		Components []report.Row   `json:"components" toon:"components"`
		Summary    report.Summary `json:"summary" toon:"summary"`
	}{rows, run.Report.Summary}
	return toolResult(out, input.Format)
}

func handleRankComponents(ctx context.Context, req *mcp.CallToolRequest, input RankInput) (*mcp.CallToolResult, any, error) {
	run, err := runPipeline(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}
	if len(run.Components) == 0 {
		return toolError("no components found")
	}

	rep := run.Report
	if input.Top > 0 {
		rep = rep.Top(input.Top)
	}
	return toolResult(rep, input.Format)
}
