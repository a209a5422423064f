package interaction

import (
	"log/slog"

	"github.com/codemindmap/birdview/pkg/models"
)

// FileOpener asks the host to open a file in the editor. Invocations are
// fire-and-forget: failures are logged, never propagated.
type FileOpener func(path string) error

// Handler owns one view's state and dispatches interaction events against
// it. Dispatch is synchronous; the only asynchrony is the host-side file
// open, which the handler does not wait on.
type Handler struct {
	state  *models.ViewState
	graph  *models.GraphData
	open   FileOpener
	logger *slog.Logger

	// highlightedPath is renderer-only scratch set by edge clicks; it is
	// deliberately not part of the persisted ViewState.
	highlightedPath []string
}

// Option is a functional option for configuring Handler.
type Option func(*Handler)

// WithFileOpener injects the host open-file callback.
func WithFileOpener(open FileOpener) Option {
	return func(h *Handler) {
		h.open = open
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a handler owning the given state and reading the given
// graph. The graph may be swapped later via SetGraph when a
// re-transformation replaces it.
func NewHandler(state *models.ViewState, graph *models.GraphData, opts ...Option) *Handler {
	h := &Handler{
		state:  state,
		graph:  graph,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetGraph replaces the graph after a re-transformation. The prior graph is
// fully superseded; there is no incremental diffing.
func (h *Handler) SetGraph(graph *models.GraphData) {
	h.graph = graph
	h.highlightedPath = nil
}

// State returns the view state the handler owns.
func (h *Handler) State() *models.ViewState {
	return h.state
}

// HighlightedPath returns the renderer-only path set by the last edge click.
func (h *Handler) HighlightedPath() []string {
	return h.highlightedPath
}

// Handle dispatches one event. Unknown event types are logged and ignored;
// nothing here ever panics past this boundary or returns an error.
func (h *Handler) Handle(ev Event) {
	switch ev.Type {
	case NodeClick:
		h.handleNodeClick(ev.NodeID)
	case NodeHover:
		h.handleNodeHover(ev.NodeID)
	case EdgeClick:
		h.handleEdgeClick(ev.EdgeID)
	case EdgeHover:
		h.handleEdgeHover(ev.EdgeID)
	case BackgroundClick:
		h.state.ClearSelection()
	case Zoom:
		h.state.ZoomLevel = ev.Zoom
	case Pan:
		// Viewport offset is renderer-owned; accepted without state change.
	default:
		h.logger.Warn("ignoring unknown interaction", "type", ev.Type)
	}
}

// handleNodeClick toggles expansion for module nodes and requests file-open
// for real file nodes. Synthetic nodes skip file-open but still update the
// selection.
func (h *Handler) handleNodeClick(nodeID string) {
	if h.graph == nil || nodeID == "" {
		return
	}

	if _, isModule := h.graph.Modules.Flat[nodeID]; isModule {
		h.state.ToggleExpanded(nodeID)
		return
	}

	file, ok := h.graph.Files.Files[nodeID]
	if !ok {
		h.logger.Warn("clicked node not in graph", "node", nodeID)
		return
	}

	h.state.Select(nodeID)

	if models.SyntheticModules[file.Module] {
		return
	}
	if h.open == nil {
		return
	}
	go func(path string) {
		if err := h.open(path); err != nil {
			h.logger.Warn("host failed to open file", "path", path, "error", err)
		}
	}(file.Path)
}

// handleNodeHover applies a transient highlight to the node and its direct
// neighbors. Transient highlighting only adds; it never dims.
func (h *Handler) handleNodeHover(nodeID string) {
	if h.graph == nil {
		return
	}
	file, ok := h.graph.Files.Files[nodeID]
	if !ok {
		return
	}
	file.IsHighlighted = true
	for _, id := range h.graph.Dependencies.Adjacency[nodeID] {
		if neighbor, ok := h.graph.Files.Files[id]; ok {
			neighbor.IsHighlighted = true
		}
	}
	for _, id := range h.graph.Dependencies.ReverseAdjacency[nodeID] {
		if neighbor, ok := h.graph.Files.Files[id]; ok {
			neighbor.IsHighlighted = true
		}
	}
}

// handleEdgeClick records the edge's path for the renderer and logs the
// dependency relation. Circular edges highlight their full cycle path.
func (h *Handler) handleEdgeClick(edgeID string) {
	edge := h.findEdge(edgeID)
	if edge == nil {
		h.logger.Warn("clicked edge not in graph", "edge", edgeID)
		return
	}
	if edge.Metadata.IsCircular && len(edge.Metadata.CyclePath) > 0 {
		h.highlightedPath = append([]string(nil), edge.Metadata.CyclePath...)
	} else {
		h.highlightedPath = []string{edge.Source, edge.Target}
	}
	h.logger.Info("dependency selected", "source", edge.Source,
		"target", edge.Target, "type", edge.Type, "circular", edge.Metadata.IsCircular)
}

func (h *Handler) handleEdgeHover(edgeID string) {
	edge := h.findEdge(edgeID)
	if edge == nil {
		return
	}
	for _, id := range []string{edge.Source, edge.Target} {
		if f, ok := h.graph.Files.Files[id]; ok {
			f.IsHighlighted = true
		}
	}
}

func (h *Handler) findEdge(edgeID string) *models.DependencyEdge {
	if h.graph == nil || edgeID == "" {
		return nil
	}
	for _, e := range h.graph.Dependencies.Edges {
		if e.ID == edgeID {
			return e
		}
	}
	return nil
}
