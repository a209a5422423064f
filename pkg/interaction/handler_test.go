package interaction

import (
	"sync"
	"testing"
	"time"

	"github.com/codemindmap/birdview/pkg/models"
)

func testGraph(t *testing.T) *models.GraphData {
	t.Helper()
	g := models.NewGraphData(models.AnalysisFullCode, "/proj")

	if err := g.AddModule(&models.ModuleNode{ID: "module_src", Name: "src", Path: "src"}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	if err := g.AddModule(&models.ModuleNode{ID: models.ModuleContributors, Name: "Contributors", Path: models.ModuleContributors}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	files := []*models.FileNode{
		{ID: "file_a", Name: "a.ts", Path: "src/a.ts", Module: "module_src", Complexity: models.NewFileComplexity(3, 0, 10, 0, 3)},
		{ID: "file_b", Name: "b.ts", Path: "src/b.ts", Module: "module_src", Complexity: models.NewFileComplexity(4, 0, 10, 0, 4)},
		{ID: "contributor_x", Name: "alice", Path: "", Module: models.ModuleContributors, Language: "contributor"},
	}
	for _, f := range files {
		if err := g.AddFile(f); err != nil {
			t.Fatalf("AddFile: %v", err)
		}
	}

	if err := g.AddEdge(&models.DependencyEdge{ID: "e1", Source: "file_a", Target: "file_b", Type: models.EdgeImport}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	g.Recount()
	return g
}

func TestBackgroundClickClearsSelection(t *testing.T) {
	state := models.NewViewState(models.AnalysisFullCode)
	h := NewHandler(state, testGraph(t))

	h.Handle(Event{Type: NodeClick, NodeID: "file_a"})
	if len(state.SelectedNodes) != 1 {
		t.Fatalf("SelectedNodes = %v, want one entry", state.SelectedNodes)
	}

	h.Handle(Event{Type: BackgroundClick})
	if len(state.SelectedNodes) != 0 {
		t.Errorf("SelectedNodes = %v, want empty after background click", state.SelectedNodes)
	}
}

func TestModuleClickTogglesExpansion(t *testing.T) {
	state := models.NewViewState(models.AnalysisFullCode)
	h := NewHandler(state, testGraph(t))

	h.Handle(Event{Type: NodeClick, NodeID: "module_src"})
	if !state.IsExpanded("module_src") {
		t.Error("module should be expanded after first click")
	}
	if len(state.SelectedNodes) != 0 {
		t.Error("module click must not change selection")
	}

	h.Handle(Event{Type: NodeClick, NodeID: "module_src"})
	if state.IsExpanded("module_src") {
		t.Error("double click should restore the collapsed state")
	}
}

func TestFileClickOpensFile(t *testing.T) {
	state := models.NewViewState(models.AnalysisFullCode)

	var mu sync.Mutex
	var opened []string
	done := make(chan struct{}, 1)
	opener := func(path string) error {
		mu.Lock()
		opened = append(opened, path)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	h := NewHandler(state, testGraph(t), WithFileOpener(opener))
	h.Handle(Event{Type: NodeClick, NodeID: "file_a"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("file opener not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(opened) != 1 || opened[0] != "src/a.ts" {
		t.Errorf("opened = %v, want [src/a.ts]", opened)
	}
}

func TestSyntheticNodeClickSkipsOpen(t *testing.T) {
	state := models.NewViewState(models.AnalysisGitAnalytics)

	opened := make(chan string, 1)
	opener := func(path string) error {
		opened <- path
		return nil
	}

	h := NewHandler(state, testGraph(t), WithFileOpener(opener))
	h.Handle(Event{Type: NodeClick, NodeID: "contributor_x"})

	select {
	case path := <-opened:
		t.Errorf("synthetic node click opened %q", path)
	case <-time.After(50 * time.Millisecond):
	}

	if len(state.SelectedNodes) != 1 || state.SelectedNodes[0] != "contributor_x" {
		t.Errorf("SelectedNodes = %v, want [contributor_x]", state.SelectedNodes)
	}
}

func TestZoomStoredUnclamped(t *testing.T) {
	state := models.NewViewState(models.AnalysisFullCode)
	h := NewHandler(state, testGraph(t))

	h.Handle(Event{Type: Zoom, Zoom: 3.5})
	if state.ZoomLevel != 3.5 {
		t.Errorf("ZoomLevel = %v, want 3.5 (clamping is renderer-side)", state.ZoomLevel)
	}
}

func TestPanAndUnknownEventsLeaveStateAlone(t *testing.T) {
	state := models.NewViewState(models.AnalysisFullCode)
	state.Select("file_a")
	state.ZoomLevel = 1.2
	h := NewHandler(state, testGraph(t))

	h.Handle(Event{Type: Pan, X: 10, Y: 20})
	h.Handle(Event{Type: EventType("triple-click")})

	if state.ZoomLevel != 1.2 || len(state.SelectedNodes) != 1 {
		t.Errorf("state changed: zoom=%v selected=%v", state.ZoomLevel, state.SelectedNodes)
	}
}

func TestNodeHoverHighlightsNeighbors(t *testing.T) {
	g := testGraph(t)
	h := NewHandler(models.NewViewState(models.AnalysisFullCode), g)

	h.Handle(Event{Type: NodeHover, NodeID: "file_a"})

	if !g.Files.Files["file_a"].IsHighlighted {
		t.Error("hovered node not highlighted")
	}
	if !g.Files.Files["file_b"].IsHighlighted {
		t.Error("direct dependency not highlighted")
	}
	if g.Files.Files["file_b"].IsDimmed {
		t.Error("transient highlight must never dim")
	}
}

func TestEdgeClickRecordsPath(t *testing.T) {
	g := testGraph(t)
	h := NewHandler(models.NewViewState(models.AnalysisFullCode), g)

	h.Handle(Event{Type: EdgeClick, EdgeID: "e1"})
	if got := h.HighlightedPath(); len(got) != 2 || got[0] != "file_a" || got[1] != "file_b" {
		t.Errorf("HighlightedPath = %v, want [file_a file_b]", got)
	}
}

func TestEdgeClickCircularUsesCyclePath(t *testing.T) {
	g := testGraph(t)
	g.Dependencies.Edges[0].Metadata.IsCircular = true
	g.Dependencies.Edges[0].Metadata.CyclePath = []string{"file_a", "file_b", "file_a"}
	h := NewHandler(models.NewViewState(models.AnalysisFullCode), g)

	h.Handle(Event{Type: EdgeClick, EdgeID: "e1"})
	if got := h.HighlightedPath(); len(got) != 3 {
		t.Errorf("HighlightedPath = %v, want full cycle path", got)
	}
}

func TestSetGraphResetsHighlightedPath(t *testing.T) {
	g := testGraph(t)
	h := NewHandler(models.NewViewState(models.AnalysisFullCode), g)

	h.Handle(Event{Type: EdgeClick, EdgeID: "e1"})
	h.SetGraph(testGraph(t))

	if h.HighlightedPath() != nil {
		t.Error("highlighted path should reset when the graph is replaced")
	}
}
