package interaction

import (
	"testing"

	"github.com/codemindmap/birdview/pkg/models"
)

func searchGraph(t *testing.T) *models.GraphData {
	t.Helper()
	g := models.NewGraphData(models.AnalysisFullCode, "/proj")
	files := []*models.FileNode{
		{ID: "file_1", Name: "handler.ts", Path: "src/handler.ts", Module: "module_src"},
		{ID: "file_2", Name: "HandlerTest.ts", Path: "src/HandlerTest.ts", Module: "module_src"},
		{ID: "file_3", Name: "util.ts", Path: "src/util.ts", Module: "module_src"},
		{ID: "file_4", Name: "raw", Label: "Custom Handler Label", Path: "x", Module: "module_src"},
	}
	for _, f := range files {
		if err := g.AddFile(f); err != nil {
			t.Fatalf("AddFile: %v", err)
		}
	}
	return g
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	g := searchGraph(t)

	matches := Search(g, "handler", true)

	want := []string{"file_1", "file_2", "file_4"}
	if len(matches) != len(want) {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
	for i, id := range want {
		if matches[i] != id {
			t.Errorf("matches[%d] = %s, want %s", i, matches[i], id)
		}
	}

	if !g.Files.Files["file_1"].IsHighlighted || g.Files.Files["file_1"].IsDimmed {
		t.Error("match should be highlighted and not dimmed")
	}
	if g.Files.Files["file_3"].IsHighlighted || !g.Files.Files["file_3"].IsDimmed {
		t.Error("persistent non-match should be dimmed and not highlighted")
	}
}

func TestSearchTransientNeverDims(t *testing.T) {
	g := searchGraph(t)

	Search(g, "handler", false)

	if g.Files.Files["file_3"].IsDimmed {
		t.Error("transient search must not dim non-matches")
	}
}

func TestSearchUsesDisplayLabel(t *testing.T) {
	g := searchGraph(t)

	matches := Search(g, "custom", true)

	if len(matches) != 1 || matches[0] != "file_4" {
		t.Errorf("matches = %v, want [file_4] (label overrides name)", matches)
	}
}

func TestEmptySearchClearsMarks(t *testing.T) {
	g := searchGraph(t)
	Search(g, "handler", true)

	matches := Search(g, "   ", true)

	if matches != nil {
		t.Errorf("matches = %v, want nil for blank query", matches)
	}
	for id, f := range g.Files.Files {
		if f.IsHighlighted || f.IsDimmed {
			t.Errorf("node %s still marked after empty search", id)
		}
	}
}

func TestSearchRoundTrip(t *testing.T) {
	g := searchGraph(t)

	first := Search(g, "handler", true)
	Search(g, "", true)
	second := Search(g, "handler", true)

	if len(first) != len(second) {
		t.Fatalf("round trip changed results: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("round trip mismatch at %d: %s vs %s", i, first[i], second[i])
		}
	}
}
