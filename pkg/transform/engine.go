// Package transform converts normalized analyzer payloads into the graph
// model. The transformation is total: malformed records degrade to warnings
// and the result is always structurally valid, possibly empty.
package transform

import (
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/payload"
)

// Engine builds GraphData instances. It is the sole constructor of graph
// model instances; enhancers receive copies, never ownership.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option is a functional option for configuring Engine.
type Option func(*Engine)

// WithLogger sets the warning logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates a transformation engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transform builds a full-code graph from a normalized payload. It never
// fails: unknown or unresolvable records are skipped with a warning.
func (e *Engine) Transform(n *payload.Normalized) *models.GraphData {
	start := e.now()

	g := models.NewGraphData(models.AnalysisFullCode, "")
	if n == nil {
		g.Recount()
		return g
	}
	g.Metadata.ProjectPath = n.ProjectPath
	g.Metadata.Timestamp = start.UTC()

	pathToNode := e.buildModulesAndFiles(g, n)
	e.buildEdges(g, n, pathToNode)
	e.aggregateModules(g)
	MarkCycles(g)
	g.Recount()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	g.Metadata.Performance.AnalysisTimeMs = e.now().Sub(start).Milliseconds()
	g.Metadata.Performance.MemoryUsage = int64(mem.Alloc)

	return g
}

// buildModulesAndFiles constructs the module tree and file nodes, returning
// a path -> node-id index for edge resolution.
func (e *Engine) buildModulesAndFiles(g *models.GraphData, n *payload.Normalized) map[string]string {
	pathToNode := make(map[string]string)

	// Shallower paths first so parents exist before their submodules.
	mods := make([]payload.RawModule, len(n.Modules))
	copy(mods, n.Modules)
	sort.SliceStable(mods, func(i, j int) bool {
		return pathDepth(mods[i].Path) < pathDepth(mods[j].Path)
	})

	pathToModule := make(map[string]*models.ModuleNode)
	for _, raw := range mods {
		id := models.ModuleID(raw.Path)
		parent := findParentModule(pathToModule, raw.Path)

		mod := &models.ModuleNode{
			ID:         id,
			Name:       raw.Name,
			Path:       raw.Path,
			Files:      make([]string, 0, len(raw.Files)),
			SubModules: make([]string, 0),
		}
		if parent != nil {
			mod.Level = parent.Level + 1
		}
		if err := g.AddModule(mod); err != nil {
			e.logger.Warn("skipping module", "path", raw.Path, "error", err)
			continue
		}
		if parent != nil {
			parent.SubModules = append(parent.SubModules, id)
		}
		pathToModule[raw.Path] = mod
		pathToNode[raw.Path] = id

		for _, rawFile := range raw.Files {
			file := fileNode(rawFile, id)
			if err := g.AddFile(file); err != nil {
				e.logger.Warn("skipping file", "path", rawFile.Path, "error", err)
				continue
			}
			pathToNode[rawFile.Path] = file.ID
		}
	}
	return pathToNode
}

// buildEdges resolves raw dependencies against the node index and adds
// validated edges. Endpoints may be file paths or already-derived node ids.
func (e *Engine) buildEdges(g *models.GraphData, n *payload.Normalized, pathToNode map[string]string) {
	seen := make(map[string]bool)
	for _, dep := range n.Dependencies {
		source := resolveEndpoint(g, pathToNode, dep.Source)
		target := resolveEndpoint(g, pathToNode, dep.Target)
		if source == "" || target == "" {
			e.logger.Warn("skipping dependency with unresolved endpoint",
				"source", dep.Source, "target", dep.Target)
			continue
		}
		key := source + "->" + target
		if seen[key] {
			continue
		}
		edge := &models.DependencyEdge{
			Source: source,
			Target: target,
			Type:   edgeType(dep.Type),
			Weight: dep.Weight,
		}
		if err := g.AddEdge(edge); err != nil {
			e.logger.Warn("skipping invalid dependency", "source", dep.Source,
				"target", dep.Target, "error", err)
			continue
		}
		seen[key] = true
	}
}

// aggregateModules computes module complexity bottom-up: deepest modules
// first, each folding its own files plus already-aggregated submodules.
func (e *Engine) aggregateModules(g *models.GraphData) {
	mods := make([]*models.ModuleNode, 0, len(g.Modules.Flat))
	for _, m := range g.Modules.Flat {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool {
		return mods[i].Level > mods[j].Level
	})

	for _, mod := range mods {
		var totalFiles, totalLines int
		var scoreSum, maxScore float64

		for _, fileID := range mod.Files {
			f, ok := g.Files.Files[fileID]
			if !ok {
				continue
			}
			totalFiles++
			totalLines += f.Complexity.LinesOfCode
			scoreSum += f.Complexity.Score
			if f.Complexity.Score > maxScore {
				maxScore = f.Complexity.Score
			}
		}
		for _, subID := range mod.SubModules {
			sub, ok := g.Modules.Flat[subID]
			if !ok {
				continue
			}
			totalFiles += sub.Complexity.TotalFiles
			totalLines += sub.Complexity.TotalLinesOfCode
			scoreSum += sub.Complexity.AverageComplexity * float64(sub.Complexity.TotalFiles)
			if sub.Complexity.MaxComplexity > maxScore {
				maxScore = sub.Complexity.MaxComplexity
			}
		}

		var avg float64
		if totalFiles > 0 {
			avg = scoreSum / float64(totalFiles)
		}
		mod.Complexity = models.ModuleComplexity{
			TotalFiles:        totalFiles,
			AverageComplexity: avg,
			MaxComplexity:     maxScore,
			TotalLinesOfCode:  totalLines,
			Level:             models.ClassifyScore(avg),
		}
	}
}

// fileNode converts a canonical file record. Complexity score defaults to
// cyclomatic complexity, falling back to cognitive when absent.
func fileNode(raw payload.RawFile, moduleID string) *models.FileNode {
	score := float64(raw.Cyclomatic)
	if score == 0 && raw.Cognitive > 0 {
		score = float64(raw.Cognitive)
	}
	return &models.FileNode{
		ID:         models.NodeID(raw.Path),
		Name:       raw.Name,
		Path:       raw.Path,
		Module:     moduleID,
		Language:   raw.Language,
		Complexity: models.NewFileComplexity(raw.Cyclomatic, raw.Cognitive, raw.Lines, raw.MaintainabilityIndex, score),
		Metadata: models.FileMetadata{
			LastModified: raw.LastModified,
			Author:       raw.Author,
			Functions:    raw.Functions,
			Classes:      raw.Classes,
			Imports:      raw.Imports,
		},
	}
}

// resolveEndpoint maps a raw endpoint (path or node id) to a known node id.
func resolveEndpoint(g *models.GraphData, pathToNode map[string]string, ref string) string {
	if id, ok := pathToNode[ref]; ok {
		return id
	}
	if g.HasNode(ref) {
		return ref
	}
	return ""
}

// edgeType maps a raw type string onto the closed edge-type enum,
// defaulting to import for anything unrecognized.
func edgeType(raw string) models.EdgeType {
	switch models.EdgeType(raw) {
	case models.EdgeDependency:
		return models.EdgeDependency
	case models.EdgeComposition:
		return models.EdgeComposition
	case models.EdgeCollaboration:
		return models.EdgeCollaboration
	default:
		return models.EdgeImport
	}
}

// findParentModule returns the registered module with the longest proper
// path prefix of childPath.
func findParentModule(byPath map[string]*models.ModuleNode, childPath string) *models.ModuleNode {
	var parent *models.ModuleNode
	longest := -1
	for p, mod := range byPath {
		if p == childPath || p == "" {
			continue
		}
		if strings.HasPrefix(childPath, p+"/") && len(p) > longest {
			parent = mod
			longest = len(p)
		}
	}
	return parent
}

func pathDepth(p string) int {
	if p == "" {
		return 0
	}
	return strings.Count(p, "/") + 1
}
