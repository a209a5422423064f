package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/codemindmap/birdview/internal/output"
	"github.com/codemindmap/birdview/pkg/enhancer/currentfile"
	"github.com/codemindmap/birdview/pkg/enhancer/fullproject"
	"github.com/codemindmap/birdview/pkg/enhancer/gitanalytics"
	"github.com/codemindmap/birdview/pkg/interaction"
	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/payload"
	"github.com/codemindmap/birdview/pkg/transform"
)

// Common input structures for tools

// GraphInput is the base input for all graph tools.
type GraphInput struct {
	PayloadPath string `json:"payload_path" jsonschema:"Path to the analysis payload JSON file."`
	ProjectPath string `json:"project_path,omitempty" jsonschema:"Project root recorded in the graph metadata. Defaults to the payload path."`
	Format      string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// FocusInput adds current-file focus options.
type FocusInput struct {
	GraphInput
	File       string `json:"file" jsonschema:"Path of the file to focus on. Suffix matching is applied when no exact match exists."`
	MaxRelated int    `json:"max_related,omitempty" jsonschema:"Maximum related files to keep beyond direct dependencies. Default 10."`
}

// SearchInput adds search options.
type SearchInput struct {
	GraphInput
	Query string `json:"query" jsonschema:"Case-insensitive substring to match against node labels."`
}

// Helper functions

func getFormat(input GraphInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func loadNormalized(input GraphInput) (*payload.Normalized, error) {
	if input.PayloadPath == "" {
		return nil, fmt.Errorf("payload_path is required")
	}
	data, err := os.ReadFile(input.PayloadPath)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	n := payload.New().Normalize(data)
	if n.ProjectPath == "" {
		n.ProjectPath = input.ProjectPath
	}
	if n.ProjectPath == "" {
		n.ProjectPath = input.PayloadPath
	}
	return n, nil
}

func buildGraph(input GraphInput) (*models.GraphData, *payload.Normalized, error) {
	n, err := loadNormalized(input)
	if err != nil {
		return nil, nil, err
	}
	return transform.New().Transform(n), n, nil
}

func formatOutput(data any, format output.Format) (string, error) {
	if format == output.FormatJSON {
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
	if format == output.FormatMarkdown {
		return "```\n" + string(out) + "\n```", nil
	}
	return string(out), nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
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

// Tool handlers

func handleTransformGraph(ctx context.Context, req *mcp.CallToolRequest, input GraphInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input)

	g, n, err := buildGraph(input)
	if err != nil {
		return toolError(err.Error())
	}
	g = fullproject.New().Enhance(g, n)

	return toolResult(g, format)
}

func handleFocusFile(ctx context.Context, req *mcp.CallToolRequest, input FocusInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.GraphInput)
	if input.File == "" {
		return toolError("file is required")
	}

	g, _, err := buildGraph(input.GraphInput)
	if err != nil {
		return toolError(err.Error())
	}

	var opts []currentfile.Option
	if input.MaxRelated > 0 {
		opts = append(opts, currentfile.WithMaxRelated(input.MaxRelated))
	}
	focused := currentfile.New(opts...).Enhance(g, input.File)

	return toolResult(focused, format)
}

func handleGitAnalytics(ctx context.Context, req *mcp.CallToolRequest, input GraphInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input)

	g, n, err := buildGraph(input)
	if err != nil {
		return toolError(err.Error())
	}
	analytics := gitanalytics.New().Enhance(g, n)

	return toolResult(analytics, format)
}

func handleSearchNodes(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.GraphInput)

	g, _, err := buildGraph(input.GraphInput)
	if err != nil {
		return toolError(err.Error())
	}

	matches := interaction.Search(g, input.Query, false)
	results := make([]map[string]string, 0, len(matches))
	for _, id := range matches {
		label := id
		if f, ok := g.Files.Files[id]; ok {
			label = f.DisplayLabel()
		} else if m, ok := g.Modules.Flat[id]; ok {
			label = m.Name
		}
		results = append(results, map[string]string{"id": id, "label": label})
	}

	out := struct {
		Query   string              `json:"query" toon:"query"`
		Matches []map[string]string `json:"matches" toon:"matches"`
	}{input.Query, results}
	return toolResult(out, format)
}
