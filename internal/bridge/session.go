package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/codemindmap/birdview/internal/session"
	"github.com/codemindmap/birdview/pkg/interaction"
	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/render"
)

// Analyzer produces a graph for an analysis request. The serve command
// wires this to the payload pipeline; tests substitute a stub.
type Analyzer interface {
	Analyze(ctx context.Context, req RequestAnalysisPayload) (*models.GraphData, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, req RequestAnalysisPayload) (*models.GraphData, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, req RequestAnalysisPayload) (*models.GraphData, error) {
	return f(ctx, req)
}

// Sender pushes an envelope to the view side of one connection.
type Sender interface {
	Send(env Envelope) error
}

// Session is the per-connection state: its own graph and view state pair,
// never shared with another panel.
type Session struct {
	analyzer Analyzer
	store    *session.Store
	sender   Sender
	logger   *slog.Logger

	graph   *models.GraphData
	state   *models.ViewState
	handler *interaction.Handler
	lastReq *RequestAnalysisPayload
}

// NewSession creates a session for one connection.
func NewSession(analyzer Analyzer, store *session.Store, sender Sender, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		analyzer: analyzer,
		store:    store,
		sender:   sender,
		logger:   logger,
	}
}

// Dispatch routes one view-to-host envelope. Unknown commands are logged
// and ignored; they never tear down the connection.
func (s *Session) Dispatch(ctx context.Context, env Envelope) {
	var err error
	switch env.Command {
	case CmdGraphInteraction:
		err = s.onInteraction(env.Payload)
	case CmdRequestAnalysis:
		err = s.onRequestAnalysis(ctx, env.Payload)
	case CmdRetryAnalysis:
		err = s.onRetryAnalysis(ctx)
	case CmdRequestTabContent, CmdRetryTabLoad:
		err = s.onRequestTabContent(env.Payload)
	default:
		s.logger.Warn("ignoring unknown bridge command", "command", env.Command)
		return
	}
	if err != nil {
		s.logger.Error("bridge command failed", "command", env.Command, "error", err)
	}
}

func (s *Session) onInteraction(payload json.RawMessage) error {
	if s.handler == nil {
		return fmt.Errorf("no active graph")
	}
	var ev interaction.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decoding interaction: %w", err)
	}
	s.handler.Handle(ev)
	if s.store != nil && s.graph != nil {
		if err := s.store.Save(s.graph.Metadata.ProjectPath, s.state); err != nil {
			s.logger.Warn("persisting view state failed", "error", err)
		}
	}
	return s.push(CmdUpdateState, s.state)
}

func (s *Session) onRequestAnalysis(ctx context.Context, payload json.RawMessage) error {
	var req RequestAnalysisPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding analysis request: %w", err)
	}
	s.lastReq = &req
	return s.runAnalysis(ctx, req)
}

func (s *Session) onRetryAnalysis(ctx context.Context) error {
	if s.lastReq == nil {
		return fmt.Errorf("no analysis to retry")
	}
	return s.runAnalysis(ctx, *s.lastReq)
}

func (s *Session) runAnalysis(ctx context.Context, req RequestAnalysisPayload) error {
	if err := s.push(CmdShowTabLoading, TabPayload{Tab: "graph"}); err != nil {
		return err
	}

	graph, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return s.push(CmdShowTabError, TabPayload{Tab: "graph", Message: err.Error()})
	}

	// A new analysis fully replaces the session's graph/state pair.
	s.graph = graph
	s.state = s.restoreState(graph)
	s.handler = interaction.NewHandler(s.state, s.graph, interaction.WithLogger(s.logger))

	if err := s.push(CmdUpdateGraph, graph); err != nil {
		return err
	}
	return s.push(CmdUpdateState, s.state)
}

func (s *Session) restoreState(graph *models.GraphData) *models.ViewState {
	if s.store != nil {
		if saved, ok := s.store.Load(graph.Metadata.ProjectPath, graph.Metadata.AnalysisType); ok {
			return saved
		}
	}
	return models.NewViewState(graph.Metadata.AnalysisType)
}

func (s *Session) onRequestTabContent(payload json.RawMessage) error {
	var req TabPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding tab request: %w", err)
	}
	if s.graph == nil {
		return s.push(CmdShowTabError, TabPayload{Tab: req.Tab, Message: "no analysis loaded"})
	}

	var content any
	switch req.Tab {
	case "distribution":
		content = render.BuildDistributionChart(s.graph)
	case "timeline":
		content = render.BuildTimelineChart(s.graph)
	case "elements":
		elements, fallback := render.SafeBuild(s.graph, s.state, render.Options{}, s.logger)
		if fallback != nil {
			return s.push(CmdShowTabError, TabPayload{Tab: req.Tab, Message: fallback.Message})
		}
		content = elements
	default:
		return s.push(CmdShowTabError, TabPayload{Tab: req.Tab, Message: "unknown tab"})
	}
	return s.push(CmdUpdateTabContent, TabPayload{Tab: req.Tab, Content: content})
}

// Highlight pushes a highlight command for the given nodes.
func (s *Session) Highlight(nodeIDs []string) error {
	if len(nodeIDs) == 0 {
		return s.push(CmdClearHighlights, nil)
	}
	return s.push(CmdHighlightNodes, HighlightPayload{NodeIDs: nodeIDs})
}

func (s *Session) push(command string, payload any) error {
	env, err := NewEnvelope(command, payload)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", command, err)
	}
	return s.sender.Send(env)
}
