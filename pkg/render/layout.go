package render

import "github.com/codemindmap/birdview/pkg/models"

// Layout is a layout preset for the graph library.
type Layout struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options,omitempty"`
}

// LayoutFor picks a layout preset suited to the view: the focused view
// radiates out from the current file, the analytics view is a flat grid,
// and the full project view uses force-directed placement with compounds.
func LayoutFor(t models.AnalysisType) Layout {
	switch t {
	case models.AnalysisCurrentFile:
		return Layout{
			Name: "concentric",
			Options: map[string]any{
				"minNodeSpacing": 40,
				"animate":        false,
			},
		}
	case models.AnalysisGitAnalytics:
		return Layout{
			Name: "grid",
			Options: map[string]any{
				"avoidOverlap": true,
				"condense":     true,
			},
		}
	default:
		return Layout{
			Name: "cose",
			Options: map[string]any{
				"nodeRepulsion":   4500,
				"idealEdgeLength": 80,
				"nestingFactor":   1.2,
				"animate":         false,
			},
		}
	}
}
