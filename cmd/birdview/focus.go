package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/codemindmap/birdview/internal/output"
	"github.com/codemindmap/birdview/pkg/enhancer/currentfile"
)

func focusCmd() *cli.Command {
	return &cli.Command{
		Name:      "focus",
		Usage:     "Build the current-file focused subgraph from a payload",
		ArgsUsage: "payload.json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path of the file to focus on",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "max-related",
				Usage: "Maximum related files kept beyond direct dependencies",
			},
		},
		Action: runFocusCmd,
	}
}

func runFocusCmd(c *cli.Context) error {
	paths := getPayloadPaths(c)
	if len(paths) != 1 {
		return fmt.Errorf("exactly one payload file is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	g, _, err := loadGraph(paths[0])
	if err != nil {
		return err
	}

	maxRelated := cfg.Views.MaxRelatedFiles
	if c.IsSet("max-related") {
		maxRelated = c.Int("max-related")
	}
	focused := currentfile.New(currentfile.WithMaxRelated(maxRelated)).Enhance(g, c.String("file"))

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(focused)
	}

	table := output.NewTable(
		fmt.Sprintf("Focus: %s", c.String("file")),
		[]string{"Metric", "Value"},
		graphSummaryRows(focused),
		nil,
		focused.Metadata,
	)
	return formatter.Output(table)
}
