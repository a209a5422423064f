package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/codemindmap/birdview/internal/output"
	"github.com/codemindmap/birdview/pkg/enhancer/gitanalytics"
	"github.com/codemindmap/birdview/pkg/models"
)

func gitStatsCmd() *cli.Command {
	return &cli.Command{
		Name:      "git-stats",
		Usage:     "Build the git analytics view from a payload",
		ArgsUsage: "payload.json",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 20,
				Usage: "Show top N contributors and hotspots",
			},
		},
		Action: runGitStatsCmd,
	}
}

func runGitStatsCmd(c *cli.Context) error {
	paths := getPayloadPaths(c)
	if len(paths) != 1 {
		return fmt.Errorf("exactly one payload file is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	g, n, err := loadGraph(paths[0])
	if err != nil {
		return err
	}
	analytics := gitanalytics.New().Enhance(g, n)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(analytics)
	}

	top := c.Int("top")
	contribRows := moduleRows(analytics, models.ModuleContributors, top)
	hotspotRows := moduleRows(analytics, models.ModuleHotspots, top)
	timelineRows := moduleRows(analytics, models.ModuleTimeline, 0)

	tables := []*output.Table{
		output.NewTable("Contributors", []string{"Name", "Level", "Score"}, contribRows, nil, nil),
		output.NewTable("Hotspots", []string{"File", "Level", "Score"}, hotspotRows, nil, nil),
		output.NewTable("Timeline", []string{"Week", "Level", "Commits"}, timelineRows, nil, nil),
	}
	for _, t := range tables {
		if err := formatter.Output(t); err != nil {
			return err
		}
	}
	return nil
}

// moduleRows lists nodes of one synthetic module sorted by score descending,
// timeline excepted (sorted by id for chronological order).
func moduleRows(g *models.GraphData, module string, top int) [][]string {
	var nodes []*models.FileNode
	for _, f := range g.Files.Files {
		if f.Module == module {
			nodes = append(nodes, f)
		}
	}
	if module == models.ModuleTimeline {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	} else {
		sort.Slice(nodes, func(i, j int) bool {
			if nodes[i].Complexity.Score != nodes[j].Complexity.Score {
				return nodes[i].Complexity.Score > nodes[j].Complexity.Score
			}
			return nodes[i].ID < nodes[j].ID
		})
	}
	if top > 0 && len(nodes) > top {
		nodes = nodes[:top]
	}

	rows := make([][]string, 0, len(nodes))
	for _, f := range nodes {
		score := fmt.Sprintf("%.1f", f.Complexity.Score)
		if module == models.ModuleTimeline {
			score = fmt.Sprintf("%d", f.Complexity.Cyclomatic)
		}
		rows = append(rows, []string{
			f.DisplayLabel(),
			output.LevelColorize(string(f.Complexity.Level), string(f.Complexity.Level)),
			score,
		})
	}
	return rows
}
