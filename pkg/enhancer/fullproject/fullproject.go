// Package fullproject decorates the base graph for the full-project view:
// framework and tech-stack pseudo-nodes plus the path-segment hierarchy
// consumed by tree-style renderers.
package fullproject

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/payload"
)

// DefaultTopLibraries caps how many tech-stack entries become nodes.
const DefaultTopLibraries = 10

// Language markers for the synthetic nodes this view adds.
const (
	LangFramework = "framework"
	LangTechStack = "techstack"
)

// Enhancer specializes a base graph for the full-project view.
type Enhancer struct {
	logger       *slog.Logger
	topLibraries int
}

// Option is a functional option for configuring Enhancer.
type Option func(*Enhancer)

// WithLogger sets the warning logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enhancer) {
		e.logger = logger
	}
}

// WithTopLibraries overrides the tech-stack node cap.
func WithTopLibraries(n int) Option {
	return func(e *Enhancer) {
		if n > 0 {
			e.topLibraries = n
		}
	}
}

// New creates a full-project enhancer.
func New(opts ...Option) *Enhancer {
	e := &Enhancer{
		logger:       slog.Default(),
		topLibraries: DefaultTopLibraries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance returns a copy of the base graph with framework and tech-stack
// pseudo-nodes added and the module hierarchy index rebuilt.
func (e *Enhancer) Enhance(base *models.GraphData, n *payload.Normalized) *models.GraphData {
	g := base.Clone()
	g.Metadata.AnalysisType = models.AnalysisFullCode
	if n != nil {
		e.addFrameworks(g, n.Frameworks)
		e.addTechStack(g, n.TechStack)
	}
	buildHierarchy(g)
	g.Recount()
	return g
}

func (e *Enhancer) addFrameworks(g *models.GraphData, frameworks []payload.RawFramework) {
	if len(frameworks) == 0 {
		return
	}
	e.ensureModule(g, models.ModuleFrameworks, "Frameworks")
	for _, fw := range frameworks {
		node := &models.FileNode{
			ID:       "framework_" + models.NodeID(fw.Name),
			Name:     fw.Name,
			Label:    fw.Name,
			Path:     fw.Name,
			Module:   models.ModuleFrameworks,
			Language: LangFramework,
			Metadata: models.FileMetadata{
				Extra: map[string]any{
					"version":    fw.Version,
					"confidence": fw.Confidence,
				},
			},
		}
		node.Complexity = models.NewFileComplexity(0, 0, 0, 0, 0)
		if err := g.AddFile(node); err != nil {
			e.logger.Warn("skipping duplicate framework", "name", fw.Name, "error", err)
		}
	}
}

// addTechStack adds the top libraries by usage as pseudo-nodes.
func (e *Enhancer) addTechStack(g *models.GraphData, libs []payload.RawLibrary) {
	if len(libs) == 0 {
		return
	}
	e.ensureModule(g, models.ModuleTechStack, "Tech Stack")

	ranked := make([]payload.RawLibrary, len(libs))
	copy(ranked, libs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Usage > ranked[j].Usage
	})
	if len(ranked) > e.topLibraries {
		ranked = ranked[:e.topLibraries]
	}

	for _, lib := range ranked {
		node := &models.FileNode{
			ID:       "tech_" + models.NodeID(lib.Name),
			Name:     lib.Name,
			Label:    lib.Name,
			Path:     lib.Name,
			Module:   models.ModuleTechStack,
			Language: LangTechStack,
			Metadata: models.FileMetadata{
				Extra: map[string]any{"usage": lib.Usage},
			},
		}
		node.Complexity = models.NewFileComplexity(0, 0, 0, 0, 0)
		if err := g.AddFile(node); err != nil {
			e.logger.Warn("skipping duplicate library", "name", lib.Name, "error", err)
		}
	}
}

func (e *Enhancer) ensureModule(g *models.GraphData, id, name string) {
	if _, ok := g.Modules.Flat[id]; ok {
		return
	}
	mod := &models.ModuleNode{
		ID:         id,
		Name:       name,
		Path:       id,
		Files:      make([]string, 0),
		SubModules: make([]string, 0),
	}
	if err := g.AddModule(mod); err != nil {
		e.logger.Warn("skipping synthetic module", "id", id, "error", err)
	}
}

// buildHierarchy rebuilds the path-segment-keyed module tree from the flat
// list: each module is slotted under its final path segment.
func buildHierarchy(g *models.GraphData) {
	hierarchy := make(map[string]*models.HierarchyEntry, len(g.Modules.Flat))
	for _, mod := range g.Modules.Flat {
		segment := finalSegment(mod.Path)
		if segment == "" {
			segment = mod.Name
		}
		hierarchy[segment] = &models.HierarchyEntry{
			Module:   mod.ID,
			Children: append([]string(nil), mod.SubModules...),
		}
	}
	g.Modules.Hierarchy = hierarchy
}

func finalSegment(p string) string {
	p = strings.TrimSuffix(p, "/")
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
