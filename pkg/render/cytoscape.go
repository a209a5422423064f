// Package render builds configuration for the external graph and chart
// libraries. Everything here is a pure projection of GraphData plus view
// state; no algorithmic state of its own.
package render

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/codemindmap/birdview/pkg/models"
)

// Zoom clamp bounds applied render-side (the state machine stores the raw
// level; the 50%-200% window lives here).
const (
	MinZoom = 0.5
	MaxZoom = 2.0
)

// Default visual ranges for node sizing. Tuned for readability, not derived
// from the metrics themselves.
const (
	DefaultMinNodeSize = 20.0
	DefaultMaxNodeSize = 50.0
	DefaultSizeDivisor = 2.0
	DefaultEdgeWidth   = 1.5
	CircularEdgeColor  = "#E53935"
	HighlightNodeColor = "#2962FF"
	DimmedNodeOpacity  = 0.25
)

// ClampZoom bounds a zoom level to the supported window.
func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ElementData is the data envelope of one graph element.
type ElementData struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Parent string `json:"parent,omitempty"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// Element is one node or edge in the external graph library's format.
type Element struct {
	Group   string         `json:"group"` // "nodes" or "edges"
	Data    ElementData    `json:"data"`
	Classes []string       `json:"classes,omitempty"`
	Style   map[string]any `json:"style,omitempty"`
}

// Options tunes the visual ranges. Zero values fall back to the defaults.
type Options struct {
	MinNodeSize float64
	MaxNodeSize float64
	SizeDivisor float64
}

func (o Options) withDefaults() Options {
	if o.MinNodeSize <= 0 {
		o.MinNodeSize = DefaultMinNodeSize
	}
	if o.MaxNodeSize <= 0 {
		o.MaxNodeSize = DefaultMaxNodeSize
	}
	if o.SizeDivisor <= 0 {
		o.SizeDivisor = DefaultSizeDivisor
	}
	return o
}

// NodeSize maps a complexity score to a display size within the configured
// range.
func (o Options) NodeSize(score float64) float64 {
	o = o.withDefaults()
	size := o.MinNodeSize + score/o.SizeDivisor
	if size > o.MaxNodeSize {
		return o.MaxNodeSize
	}
	return size
}

// BuildElements projects the graph into element configs. Collapsed modules
// render as single module nodes; expanded modules render their files inside
// a compound parent. Edges between hidden files are re-routed to their
// module nodes where possible and dropped otherwise.
func BuildElements(g *models.GraphData, state *models.ViewState, opts Options) []Element {
	opts = opts.withDefaults()
	var elements []Element

	moduleIDs := make([]string, 0, len(g.Modules.Flat))
	for id := range g.Modules.Flat {
		moduleIDs = append(moduleIDs, id)
	}
	sort.Strings(moduleIDs)

	visible := make(map[string]string) // file id -> rendered node id
	for _, modID := range moduleIDs {
		mod := g.Modules.Flat[modID]
		expanded := state != nil && state.IsExpanded(modID)

		classes := []string{"module", string(mod.Complexity.Level)}
		if expanded {
			classes = append(classes, "expanded")
		}
		elements = append(elements, Element{
			Group:   "nodes",
			Data:    ElementData{ID: modID, Label: mod.Name},
			Classes: classes,
			Style: map[string]any{
				"background-color": models.LevelColor(mod.Complexity.Level),
			},
		})

		for _, fileID := range mod.Files {
			if !expanded {
				visible[fileID] = modID
				continue
			}
			f, ok := g.Files.Files[fileID]
			if !ok {
				continue
			}
			visible[fileID] = fileID
			elements = append(elements, fileElement(f, modID, opts))
		}
	}

	// Files whose module is not in the graph still render at top level.
	fileIDs := make([]string, 0, len(g.Files.Files))
	for id := range g.Files.Files {
		fileIDs = append(fileIDs, id)
	}
	sort.Strings(fileIDs)
	for _, id := range fileIDs {
		if _, done := visible[id]; done {
			continue
		}
		f := g.Files.Files[id]
		visible[id] = id
		elements = append(elements, fileElement(f, "", opts))
	}

	seen := make(map[string]bool)
	for _, e := range g.Dependencies.Edges {
		source := renderedID(visible, e.Source)
		target := renderedID(visible, e.Target)
		if source == "" || target == "" || source == target {
			continue
		}
		key := source + "->" + target
		if seen[key] {
			continue
		}
		seen[key] = true
		elements = append(elements, edgeElement(e, source, target))
	}

	return elements
}

func renderedID(visible map[string]string, id string) string {
	if mapped, ok := visible[id]; ok {
		return mapped
	}
	return ""
}

func fileElement(f *models.FileNode, parent string, opts Options) Element {
	classes := []string{"file", string(f.Complexity.Level)}
	style := map[string]any{
		"background-color": f.Complexity.Color,
		"width":            opts.NodeSize(f.Complexity.Score),
		"height":           opts.NodeSize(f.Complexity.Score),
	}
	if f.IsHighlighted {
		classes = append(classes, "highlighted")
		style["border-color"] = HighlightNodeColor
	}
	if f.IsDimmed {
		classes = append(classes, "dimmed")
		style["opacity"] = DimmedNodeOpacity
	}
	return Element{
		Group:   "nodes",
		Data:    ElementData{ID: f.ID, Label: f.DisplayLabel(), Parent: parent},
		Classes: classes,
		Style:   style,
	}
}

func edgeElement(e *models.DependencyEdge, source, target string) Element {
	classes := []string{"edge", string(e.Type)}
	style := map[string]any{"width": DefaultEdgeWidth}
	if e.Metadata.IsCircular {
		classes = append(classes, "circular")
		style["line-color"] = CircularEdgeColor
	}
	return Element{
		Group: "edges",
		Data: ElementData{
			ID:     fmt.Sprintf("%s->%s", source, target),
			Source: source,
			Target: target,
		},
		Classes: classes,
		Style:   style,
	}
}

// Fallback is the minimal payload shown when element building fails; it is
// the one user-visible failure mode of this subsystem.
type Fallback struct {
	Message string `json:"message"`
}

// SafeBuild wraps BuildElements with a recovery boundary: a panic inside
// the projection is logged and replaced with a fallback payload instead of
// crossing into the caller.
func SafeBuild(g *models.GraphData, state *models.ViewState, opts Options, logger *slog.Logger) (elements []Element, fallback *Fallback) {
	defer func() {
		if r := recover(); r != nil {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("renderer configuration failed", "panic", r)
			elements = nil
			fallback = &Fallback{Message: "could not render graph"}
		}
	}()
	return BuildElements(g, state, opts), nil
}
