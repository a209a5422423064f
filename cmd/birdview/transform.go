package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/codemindmap/birdview/internal/fileproc"
	"github.com/codemindmap/birdview/internal/output"
	"github.com/codemindmap/birdview/internal/progress"
	"github.com/codemindmap/birdview/pkg/enhancer/fullproject"
	"github.com/codemindmap/birdview/pkg/models"
)

func transformCmd() *cli.Command {
	return &cli.Command{
		Name:      "transform",
		Aliases:   []string{"tx"},
		Usage:     "Transform analysis payloads into enhanced dependency graphs",
		ArgsUsage: "payload.json [payload.json...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "full",
				Usage: "Emit the full graph instead of a summary",
			},
		},
		Action: runTransformCmd,
	}
}

func runTransformCmd(c *cli.Context) error {
	paths := getPayloadPaths(c)
	if len(paths) == 0 {
		return fmt.Errorf("at least one payload file is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	tracker := progress.NewTracker("Transforming payloads...", len(paths))
	graphs, errs := fileproc.MapPayloads(paths, func(path string) (*models.GraphData, error) {
		g, n, err := loadGraph(path)
		if err != nil {
			return nil, err
		}
		enhancer := fullproject.New(fullproject.WithTopLibraries(cfg.Views.TopLibraries))
		return enhancer.Enhance(g, n), nil
	}, tracker.Tick)
	tracker.FinishSuccess()

	if errs.HasErrors() {
		for _, pe := range errs.Errors {
			color.Yellow("skipped %s", pe.Error())
		}
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	for i, g := range graphs {
		if g == nil {
			continue
		}
		if c.Bool("full") || formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
			if err := formatter.Output(g); err != nil {
				return err
			}
			continue
		}
		table := output.NewTable(
			fmt.Sprintf("Graph: %s", paths[i]),
			[]string{"Metric", "Value"},
			graphSummaryRows(g),
			nil,
			g.Metadata,
		)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}

	if errs.HasErrors() && len(errs.Errors) == len(paths) {
		return fmt.Errorf("no payloads could be transformed")
	}
	return nil
}
