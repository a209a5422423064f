package render

import (
	"sort"
	"strings"

	"github.com/codemindmap/birdview/pkg/models"
)

// ChartDataset is one series of a chart config.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            bool      `json:"fill"`
}

// ChartData holds axis labels plus datasets.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartConfig is a chart-library-ready configuration.
type ChartConfig struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BuildDistributionChart renders the complexity distribution as a doughnut
// chart, one slice per level.
func BuildDistributionChart(g *models.GraphData) ChartConfig {
	dist := g.Metadata.ComplexityDistribution
	levels := []models.ComplexityLevel{models.LevelLow, models.LevelMedium, models.LevelHigh}

	labels := make([]string, 0, len(levels))
	data := make([]float64, 0, len(levels))
	colors := make([]string, 0, len(levels))
	for _, lvl := range levels {
		labels = append(labels, titleCase(string(lvl)))
		data = append(data, float64(dist.Count(lvl)))
		colors = append(colors, models.LevelColor(lvl))
	}

	return ChartConfig{
		Type: "doughnut",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:           "Complexity",
				Data:            data,
				BackgroundColor: colors,
			}},
		},
		Options: map[string]any{"responsive": true},
	}
}

// BuildTimelineChart renders commit activity over time as a line chart.
// Buckets come from the timeline synthetic module's nodes; anything else in
// the graph is ignored.
func BuildTimelineChart(g *models.GraphData) ChartConfig {
	type bucket struct {
		id    string
		count float64
	}
	var buckets []bucket
	for _, f := range g.Files.Files {
		if f.Module != models.ModuleTimeline {
			continue
		}
		buckets = append(buckets, bucket{id: f.ID, count: float64(f.Complexity.Cyclomatic)})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].id < buckets[j].id })

	labels := make([]string, 0, len(buckets))
	data := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, strings.TrimPrefix(b.id, "timeline_"))
		data = append(data, b.count)
	}

	return ChartConfig{
		Type: "line",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:       "Commits",
				Data:        data,
				BorderColor: "#42A5F5",
				Fill:        false,
			}},
		},
		Options: map[string]any{
			"responsive": true,
			"scales": map[string]any{
				"y": map[string]any{"beginAtZero": true},
			},
		},
	}
}
