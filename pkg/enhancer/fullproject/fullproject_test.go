package fullproject

import (
	"fmt"
	"testing"

	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/payload"
)

func baseGraph(t *testing.T) *models.GraphData {
	t.Helper()
	g := models.NewGraphData(models.AnalysisFullCode, "/proj")
	if err := g.AddModule(&models.ModuleNode{ID: models.ModuleID("src"), Name: "src", Path: "src", SubModules: []string{models.ModuleID("src/core")}}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	if err := g.AddModule(&models.ModuleNode{ID: models.ModuleID("src/core"), Name: "core", Path: "src/core", Level: 1}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	g.Recount()
	return g
}

func TestEnhanceAddsFrameworks(t *testing.T) {
	n := &payload.Normalized{
		Frameworks: []payload.RawFramework{
			{Name: "React", Version: "18.2.0", Confidence: 0.95},
			{Name: "Express", Version: "4.18.0", Confidence: 0.8},
		},
	}

	g := New().Enhance(baseGraph(t), n)

	if _, ok := g.Modules.Flat[models.ModuleFrameworks]; !ok {
		t.Fatal("frameworks module missing")
	}
	react := g.Files.Files["framework_"+models.NodeID("React")]
	if react == nil {
		t.Fatal("React node missing")
	}
	if react.Metadata.Extra["version"] != "18.2.0" {
		t.Errorf("version = %v, want 18.2.0", react.Metadata.Extra["version"])
	}
	if react.Language != LangFramework {
		t.Errorf("Language = %q, want %q", react.Language, LangFramework)
	}
}

func TestEnhanceTopLibraries(t *testing.T) {
	var libs []payload.RawLibrary
	for i := 0; i < 15; i++ {
		libs = append(libs, payload.RawLibrary{
			Name:  fmt.Sprintf("lib%02d", i),
			Usage: i,
		})
	}
	n := &payload.Normalized{TechStack: libs}

	g := New().Enhance(baseGraph(t), n)

	var count int
	for _, f := range g.Files.Files {
		if f.Module == models.ModuleTechStack {
			count++
		}
	}
	if count != DefaultTopLibraries {
		t.Errorf("tech-stack nodes = %d, want %d", count, DefaultTopLibraries)
	}

	// Highest usage must make the cut, lowest must not.
	if g.Files.Files["tech_"+models.NodeID("lib14")] == nil {
		t.Error("most-used library missing")
	}
	if g.Files.Files["tech_"+models.NodeID("lib00")] != nil {
		t.Error("least-used library should be cut")
	}
}

func TestEnhanceBuildsHierarchy(t *testing.T) {
	g := New().Enhance(baseGraph(t), &payload.Normalized{})

	src, ok := g.Modules.Hierarchy["src"]
	if !ok {
		t.Fatal("hierarchy entry for src missing")
	}
	if src.Module != models.ModuleID("src") {
		t.Errorf("src entry module = %s", src.Module)
	}
	if len(src.Children) != 1 || src.Children[0] != models.ModuleID("src/core") {
		t.Errorf("src children = %v", src.Children)
	}

	core, ok := g.Modules.Hierarchy["core"]
	if !ok {
		t.Fatal("hierarchy entry for core missing")
	}
	if core.Module != models.ModuleID("src/core") {
		t.Errorf("core entry module = %s", core.Module)
	}
}

func TestEnhanceDoesNotMutateBase(t *testing.T) {
	base := baseGraph(t)
	before := len(base.Files.Files)

	New().Enhance(base, &payload.Normalized{
		Frameworks: []payload.RawFramework{{Name: "Vue"}},
	})

	if len(base.Files.Files) != before {
		t.Error("enhancer mutated its input graph")
	}
}
