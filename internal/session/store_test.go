package session

import (
	"fmt"
	"testing"

	"github.com/codemindmap/birdview/pkg/models"
)

func TestKeyDistinguishesViews(t *testing.T) {
	a := Key("/proj", models.AnalysisFullCode)
	b := Key("/proj", models.AnalysisCurrentFile)
	c := Key("/other", models.AnalysisFullCode)

	if a == b {
		t.Error("same project, different views must not collide")
	}
	if a == c {
		t.Error("different projects must not collide")
	}
	if a != Key("/proj", models.AnalysisFullCode) {
		t.Error("key must be deterministic")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(8)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	state := models.NewViewState(models.AnalysisFullCode)
	state.ZoomLevel = 1.5
	state.SearchQuery = "handler"
	state.Select("file_a")
	state.ToggleExpanded("module_src")

	if err := store.Save("/proj", state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok := store.Load("/proj", models.AnalysisFullCode)
	if !ok {
		t.Fatal("Load: not found")
	}
	if got.ZoomLevel != 1.5 || got.SearchQuery != "handler" {
		t.Errorf("restored state = %+v", got)
	}
	if len(got.SelectedNodes) != 1 || got.SelectedNodes[0] != "file_a" {
		t.Errorf("SelectedNodes = %v", got.SelectedNodes)
	}
	if !got.IsExpanded("module_src") {
		t.Error("expanded set not restored")
	}
}

func TestLoadMissing(t *testing.T) {
	store, err := NewStore(8)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, ok := store.Load("/proj", models.AnalysisGitAnalytics); ok {
		t.Error("expected miss for unsaved key")
	}
}

func TestSaveNilState(t *testing.T) {
	store, err := NewStore(8)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("/proj", nil); err == nil {
		t.Error("expected error for nil state")
	}
}

func TestEvictionAtMaxSize(t *testing.T) {
	store, err := NewStore(2)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	for i := 0; i < 3; i++ {
		state := models.NewViewState(models.AnalysisFullCode)
		if err := store.Save(fmt.Sprintf("/proj%d", i), state); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
	if _, ok := store.Load("/proj0", models.AnalysisFullCode); ok {
		t.Error("oldest entry should be evicted")
	}
	if _, ok := store.Load("/proj2", models.AnalysisFullCode); !ok {
		t.Error("newest entry should survive")
	}
}

func TestCorruptEntryDropped(t *testing.T) {
	store, err := NewStore(8)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	key := Key("/proj", models.AnalysisFullCode)
	store.cache.Add(key, []byte("not json"))

	if _, ok := store.Load("/proj", models.AnalysisFullCode); ok {
		t.Error("corrupt entry should not load")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, corrupt entry should be evicted", store.Len())
	}
}

func TestDrop(t *testing.T) {
	store, err := NewStore(8)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("/proj", models.NewViewState(models.AnalysisFullCode)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	store.Drop("/proj", models.AnalysisFullCode)
	if _, ok := store.Load("/proj", models.AnalysisFullCode); ok {
		t.Error("dropped entry should not load")
	}
}
