package transform

import (
	"testing"

	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/payload"
)

func testPayload() *payload.Normalized {
	return &payload.Normalized{
		ProjectPath: "/proj",
		Modules: []payload.RawModule{
			{Name: "src", Path: "src", Files: []payload.RawFile{
				{Name: "a.ts", Path: "src/a.ts", Language: "TypeScript", Cyclomatic: 3, Lines: 50},
			}},
			{Name: "core", Path: "src/core", Files: []payload.RawFile{
				{Name: "b.ts", Path: "src/core/b.ts", Language: "TypeScript", Cyclomatic: 8, Lines: 100},
				{Name: "c.ts", Path: "src/core/c.ts", Language: "TypeScript", Cyclomatic: 12, Lines: 200},
			}},
		},
		Dependencies: []payload.RawDependency{
			{Source: "src/a.ts", Target: "src/core/b.ts", Type: "import", Weight: 1},
			{Source: "src/core/b.ts", Target: "src/core/c.ts", Type: "composition", Weight: 1},
		},
	}
}

func TestTransformBuildsHierarchy(t *testing.T) {
	g := New().Transform(testPayload())

	src, ok := g.Modules.Flat[models.ModuleID("src")]
	if !ok {
		t.Fatal("src module missing")
	}
	core, ok := g.Modules.Flat[models.ModuleID("src/core")]
	if !ok {
		t.Fatal("src/core module missing")
	}

	if src.Level != 0 {
		t.Errorf("src.Level = %d, want 0", src.Level)
	}
	if core.Level != 1 {
		t.Errorf("core.Level = %d, want 1", core.Level)
	}
	if len(src.SubModules) != 1 || src.SubModules[0] != core.ID {
		t.Errorf("src.SubModules = %v, want [%s]", src.SubModules, core.ID)
	}
	if len(g.Modules.Roots) != 1 || g.Modules.Roots[0] != src.ID {
		t.Errorf("Roots = %v, want [%s]", g.Modules.Roots, src.ID)
	}
	if g.Modules.Stats.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want 1", g.Modules.Stats.MaxDepth)
	}
}

func TestTransformAggregatesModuleComplexity(t *testing.T) {
	g := New().Transform(testPayload())

	core := g.Modules.Flat[models.ModuleID("src/core")]
	if core.Complexity.TotalFiles != 2 {
		t.Errorf("core.TotalFiles = %d, want 2", core.Complexity.TotalFiles)
	}
	if core.Complexity.AverageComplexity != 10 {
		t.Errorf("core.AverageComplexity = %v, want 10", core.Complexity.AverageComplexity)
	}
	if core.Complexity.MaxComplexity != 12 {
		t.Errorf("core.MaxComplexity = %v, want 12", core.Complexity.MaxComplexity)
	}
	if core.Complexity.Level != models.LevelMedium {
		t.Errorf("core.Level = %v, want medium", core.Complexity.Level)
	}

	// Root folds its own file plus the submodule aggregate.
	src := g.Modules.Flat[models.ModuleID("src")]
	if src.Complexity.TotalFiles != 3 {
		t.Errorf("src.TotalFiles = %d, want 3", src.Complexity.TotalFiles)
	}
	if src.Complexity.TotalLinesOfCode != 350 {
		t.Errorf("src.TotalLinesOfCode = %d, want 350", src.Complexity.TotalLinesOfCode)
	}
}

func TestTransformEdgesAndAdjacency(t *testing.T) {
	g := New().Transform(testPayload())

	if g.Metadata.TotalEdges != 2 {
		t.Fatalf("TotalEdges = %d, want 2", g.Metadata.TotalEdges)
	}

	aID := models.NodeID("src/a.ts")
	bID := models.NodeID("src/core/b.ts")
	if adj := g.Dependencies.Adjacency[aID]; len(adj) != 1 || adj[0] != bID {
		t.Errorf("Adjacency[a] = %v, want [%s]", adj, bID)
	}
	if rev := g.Dependencies.ReverseAdjacency[bID]; len(rev) != 1 || rev[0] != aID {
		t.Errorf("ReverseAdjacency[b] = %v, want [%s]", rev, aID)
	}
}

func TestTransformSkipsUnresolvableAndDuplicateEdges(t *testing.T) {
	p := testPayload()
	p.Dependencies = append(p.Dependencies,
		payload.RawDependency{Source: "src/a.ts", Target: "missing.ts", Type: "import", Weight: 1},
		payload.RawDependency{Source: "src/a.ts", Target: "src/core/b.ts", Type: "import", Weight: 1},
		payload.RawDependency{Source: "src/a.ts", Target: "src/a.ts", Type: "import", Weight: 1},
	)

	g := New().Transform(p)

	if g.Metadata.TotalEdges != 2 {
		t.Errorf("TotalEdges = %d, want 2 (unresolved, duplicate, and self-loop all skipped)", g.Metadata.TotalEdges)
	}
}

func TestTransformNilPayload(t *testing.T) {
	g := New().Transform(nil)

	if g == nil {
		t.Fatal("Transform must not return nil")
	}
	if g.Metadata.TotalNodes != 0 || g.Metadata.TotalEdges != 0 {
		t.Errorf("empty graph expected, got %d nodes / %d edges", g.Metadata.TotalNodes, g.Metadata.TotalEdges)
	}
}

func TestTransformScoreFallsBackToCognitive(t *testing.T) {
	p := &payload.Normalized{
		Modules: []payload.RawModule{
			{Name: "src", Path: "src", Files: []payload.RawFile{
				{Name: "a.ts", Path: "src/a.ts", Cognitive: 7},
			}},
		},
	}
	g := New().Transform(p)

	f := g.Files.Files[models.NodeID("src/a.ts")]
	if f.Complexity.Score != 7 {
		t.Errorf("Score = %v, want 7 (cognitive fallback)", f.Complexity.Score)
	}
	if f.Complexity.Level != models.LevelMedium {
		t.Errorf("Level = %v, want medium", f.Complexity.Level)
	}
}

func TestMarkCycles(t *testing.T) {
	p := testPayload()
	p.Dependencies = append(p.Dependencies,
		payload.RawDependency{Source: "src/core/c.ts", Target: "src/core/b.ts", Type: "import", Weight: 1},
	)

	g := New().Transform(p)

	bID := models.NodeID("src/core/b.ts")
	cID := models.NodeID("src/core/c.ts")

	var circular int
	for _, e := range g.Dependencies.Edges {
		inCycle := (e.Source == bID && e.Target == cID) || (e.Source == cID && e.Target == bID)
		if e.Metadata.IsCircular != inCycle {
			t.Errorf("edge %s IsCircular = %v, want %v", e.ID, e.Metadata.IsCircular, inCycle)
		}
		if e.Metadata.IsCircular {
			circular++
			if len(e.Metadata.CyclePath) < 2 {
				t.Errorf("edge %s cycle path = %v, want both endpoints", e.ID, e.Metadata.CyclePath)
			}
			if e.Metadata.CyclePath[0] != e.Source {
				t.Errorf("cycle path should start at the edge source, got %v", e.Metadata.CyclePath)
			}
		}
	}
	if circular != 2 {
		t.Errorf("circular edges = %d, want 2", circular)
	}
	if g.Dependencies.Stats.CircularEdges != 2 {
		t.Errorf("Stats.CircularEdges = %d, want 2", g.Dependencies.Stats.CircularEdges)
	}
}

func TestMarkCyclesAcyclicGraphUntouched(t *testing.T) {
	g := New().Transform(testPayload())

	for _, e := range g.Dependencies.Edges {
		if e.Metadata.IsCircular {
			t.Errorf("edge %s marked circular in acyclic graph", e.ID)
		}
		if e.Metadata.CyclePath != nil {
			t.Errorf("edge %s has cycle path in acyclic graph", e.ID)
		}
	}
}
