package render

import (
	"reflect"
	"testing"

	"github.com/codemindmap/birdview/pkg/models"
)

func TestBuildDistributionChart(t *testing.T) {
	g := models.NewGraphData(models.AnalysisFullCode, "/proj")
	g.Metadata.ComplexityDistribution = models.Distribution{Low: 4, Medium: 2, High: 1}

	cfg := BuildDistributionChart(g)

	if cfg.Type != "doughnut" {
		t.Errorf("Type = %q, want doughnut", cfg.Type)
	}
	if !reflect.DeepEqual(cfg.Data.Labels, []string{"Low", "Medium", "High"}) {
		t.Errorf("Labels = %v", cfg.Data.Labels)
	}
	if len(cfg.Data.Datasets) != 1 {
		t.Fatalf("Datasets = %d, want 1", len(cfg.Data.Datasets))
	}
	ds := cfg.Data.Datasets[0]
	if !reflect.DeepEqual(ds.Data, []float64{4, 2, 1}) {
		t.Errorf("Data = %v, want [4 2 1]", ds.Data)
	}
	if len(ds.BackgroundColor) != 3 || ds.BackgroundColor[0] != models.LevelColor(models.LevelLow) {
		t.Errorf("BackgroundColor = %v", ds.BackgroundColor)
	}
}

func TestBuildTimelineChart(t *testing.T) {
	g := models.NewGraphData(models.AnalysisGitAnalytics, "/proj")
	nodes := []*models.FileNode{
		{ID: "timeline_2024-W02", Name: "2024-W02", Module: models.ModuleTimeline, Complexity: models.FileComplexity{Cyclomatic: 3}},
		{ID: "timeline_2024-W01", Name: "2024-W01", Module: models.ModuleTimeline, Complexity: models.FileComplexity{Cyclomatic: 7}},
		{ID: "contributor_alice", Name: "alice", Module: models.ModuleContributors, Complexity: models.FileComplexity{Cyclomatic: 99}},
	}
	for _, n := range nodes {
		if err := g.AddFile(n); err != nil {
			t.Fatalf("AddFile: %v", err)
		}
	}

	cfg := BuildTimelineChart(g)

	if cfg.Type != "line" {
		t.Errorf("Type = %q, want line", cfg.Type)
	}
	if !reflect.DeepEqual(cfg.Data.Labels, []string{"2024-W01", "2024-W02"}) {
		t.Errorf("Labels = %v, want sorted buckets without prefix", cfg.Data.Labels)
	}
	if !reflect.DeepEqual(cfg.Data.Datasets[0].Data, []float64{7, 3}) {
		t.Errorf("Data = %v, want [7 3]", cfg.Data.Datasets[0].Data)
	}
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		analysisType models.AnalysisType
		want         string
	}{
		{models.AnalysisCurrentFile, "concentric"},
		{models.AnalysisGitAnalytics, "grid"},
		{models.AnalysisFullCode, "cose"},
		{models.AnalysisType("unknown"), "cose"},
	}
	for _, tt := range tests {
		if got := LayoutFor(tt.analysisType); got.Name != tt.want {
			t.Errorf("LayoutFor(%s) = %s, want %s", tt.analysisType, got.Name, tt.want)
		}
	}
}
