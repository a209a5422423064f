package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/codemindmap/birdview/internal/bridge"
	"github.com/codemindmap/birdview/internal/session"
	"github.com/codemindmap/birdview/pkg/enhancer/currentfile"
	"github.com/codemindmap/birdview/pkg/enhancer/fullproject"
	"github.com/codemindmap/birdview/pkg/enhancer/gitanalytics"
	"github.com/codemindmap/birdview/pkg/models"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the host-view bridge over websocket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to the configured server address)",
			},
		},
		Action: runServeCmd,
	}
}

func runServeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	var store *session.Store
	if cfg.Session.Enabled {
		store, err = session.NewStore(cfg.Session.MaxSize)
		if err != nil {
			return err
		}
	}

	analyzer := bridge.AnalyzerFunc(func(ctx context.Context, req bridge.RequestAnalysisPayload) (*models.GraphData, error) {
		g, n, err := loadGraph(req.ProjectPath)
		if err != nil {
			return nil, err
		}
		switch models.AnalysisType(req.AnalysisType) {
		case models.AnalysisCurrentFile:
			if req.ActiveFile == "" {
				return nil, fmt.Errorf("currentFile analysis needs an active file")
			}
			enhancer := currentfile.New(currentfile.WithMaxRelated(cfg.Views.MaxRelatedFiles))
			return enhancer.Enhance(g, req.ActiveFile), nil
		case models.AnalysisGitAnalytics:
			return gitanalytics.New().Enhance(g, n), nil
		default:
			enhancer := fullproject.New(fullproject.WithTopLibraries(cfg.Views.TopLibraries))
			return enhancer.Enhance(g, n), nil
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := bridge.NewServer(analyzer, store, slog.Default())
	return server.ListenAndServe(ctx, addr)
}
