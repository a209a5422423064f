package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/codemindmap/birdview/internal/output"
	"github.com/codemindmap/birdview/pkg/config"
	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/payload"
	"github.com/codemindmap/birdview/pkg/transform"
)

// getPayloadPaths returns payload paths from positional args.
func getPayloadPaths(c *cli.Context) []string {
	return c.Args().Slice()
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if !c.IsSet("format") && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// loadGraph reads one payload file and runs the full transformation,
// including advisory schema validation and cycle marking.
func loadGraph(path string) (*models.GraphData, *payload.Normalized, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading payload: %w", err)
	}

	for _, warning := range payload.Validate(data) {
		fmt.Fprintf(os.Stderr, "payload warning: %s\n", warning)
	}

	n := payload.New().Normalize(data)
	if n.ProjectPath == "" {
		n.ProjectPath = path
	}

	return transform.New().Transform(n), n, nil
}

// graphSummaryRows builds the shared table rows for a transformed graph.
func graphSummaryRows(g *models.GraphData) [][]string {
	dist := g.Metadata.ComplexityDistribution
	return [][]string{
		{"Nodes", fmt.Sprintf("%d", g.Metadata.TotalNodes)},
		{"Edges", fmt.Sprintf("%d", g.Metadata.TotalEdges)},
		{"Modules", fmt.Sprintf("%d", g.Modules.Stats.TotalModules)},
		{"Max depth", fmt.Sprintf("%d", g.Modules.Stats.MaxDepth)},
		{"Circular edges", fmt.Sprintf("%d", g.Dependencies.Stats.CircularEdges)},
		{"Low / Medium / High", fmt.Sprintf("%d / %d / %d", dist.Low, dist.Medium, dist.High)},
	}
}
