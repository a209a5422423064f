// Package currentfile narrows a full graph to the dependency neighborhood
// of the active editor file.
package currentfile

import (
	"log/slog"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/codemindmap/birdview/pkg/models"
)

// DefaultMaxRelated limits how many related files join the focused graph.
const DefaultMaxRelated = 10

// Enhancer specializes a base graph for the current-file view.
type Enhancer struct {
	logger     *slog.Logger
	maxRelated int
}

// Option is a functional option for configuring Enhancer.
type Option func(*Enhancer)

// WithLogger sets the warning logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enhancer) {
		e.logger = logger
	}
}

// WithMaxRelated overrides the related-file cap.
func WithMaxRelated(n int) Option {
	return func(e *Enhancer) {
		if n > 0 {
			e.maxRelated = n
		}
	}
}

// New creates a current-file enhancer.
func New(opts ...Option) *Enhancer {
	e := &Enhancer{
		logger:     slog.Default(),
		maxRelated: DefaultMaxRelated,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ImpactScore combines a file's complexity with its dependency fan-in and
// fan-out into a 0-100 metric.
func ImpactScore(cyclomatic, dependencies, reverseDependencies int) int {
	score := cyclomatic + (dependencies+reverseDependencies)*2
	if score > 100 {
		return 100
	}
	return score
}

// Enhance restricts the graph to the active file, its direct and reverse
// dependencies, and up to maxRelated related files. When the active file is
// not found the base graph passes through unmodified. The input graph is
// never mutated; the result is a fresh copy.
func (e *Enhancer) Enhance(base *models.GraphData, activePath string) *models.GraphData {
	g := base.Clone()
	g.Metadata.AnalysisType = models.AnalysisCurrentFile

	current := findFile(g, activePath)
	if current == nil {
		e.logger.Warn("active file not in graph, passing base graph through", "path", activePath)
		return g
	}

	deps := append([]string(nil), g.Dependencies.Adjacency[current.ID]...)
	reverseDeps := append([]string(nil), g.Dependencies.ReverseAdjacency[current.ID]...)

	// Index file ids so the kept set can live in a bitmap.
	ids := make([]string, 0, len(g.Files.Files))
	indexOf := make(map[string]uint32, len(g.Files.Files))
	for id := range g.Files.Files {
		indexOf[id] = uint32(len(ids))
		ids = append(ids, id)
	}

	kept := roaring.New()
	kept.Add(indexOf[current.ID])
	for _, id := range deps {
		if i, ok := indexOf[id]; ok {
			kept.Add(i)
		}
	}
	for _, id := range reverseDeps {
		if i, ok := indexOf[id]; ok {
			kept.Add(i)
		}
	}
	for _, id := range e.relatedFiles(g, current, kept, indexOf, ids) {
		kept.Add(indexOf[id])
	}

	dropFilesOutside(g, kept, indexOf, ids)
	dropDanglingEdges(g)

	current.Metadata.Extra = extendExtra(current.Metadata.Extra, map[string]any{
		"impactScore":            ImpactScore(current.Complexity.Cyclomatic, len(deps), len(reverseDeps)),
		"dependencyCount":        len(deps),
		"reverseDependencyCount": len(reverseDeps),
	})

	g.Recount()
	return g
}

// relatedFiles picks up to maxRelated files not already kept, preferring
// same module, then same language, then same complexity level. The first
// matching criterion wins per candidate; no duplicates.
func (e *Enhancer) relatedFiles(g *models.GraphData, current *models.FileNode, kept *roaring.Bitmap, indexOf map[string]uint32, ids []string) []string {
	var related []string
	chosen := make(map[string]bool)

	pick := func(candidates []string) {
		for _, id := range candidates {
			if len(related) >= e.maxRelated {
				return
			}
			if id == current.ID || chosen[id] || kept.Contains(indexOf[id]) {
				continue
			}
			chosen[id] = true
			related = append(related, id)
		}
	}

	pick(g.Files.ByModule[current.Module])
	if len(related) < e.maxRelated {
		byLanguage := make([]string, 0)
		for _, id := range ids {
			if f := g.Files.Files[id]; f != nil && f.Language == current.Language {
				byLanguage = append(byLanguage, id)
			}
		}
		pick(byLanguage)
	}
	if len(related) < e.maxRelated {
		pick(g.Files.ByComplexity[current.Complexity.Level])
	}
	return related
}

// findFile locates the node matching the active path: exact match first,
// then suffix match against the stored path. Among several suffix candidates
// the longest stored path wins, with the node id as tiebreak, so the pick is
// stable across runs.
func findFile(g *models.GraphData, activePath string) *models.FileNode {
	if activePath == "" {
		return nil
	}
	for _, f := range g.Files.Files {
		if f.Path == activePath {
			return f
		}
	}
	var best *models.FileNode
	for _, f := range g.Files.Files {
		if !strings.HasSuffix(activePath, f.Path) && !strings.HasSuffix(f.Path, activePath) {
			continue
		}
		if best == nil || len(f.Path) > len(best.Path) || (len(f.Path) == len(best.Path) && f.ID < best.ID) {
			best = f
		}
	}
	return best
}

// dropFilesOutside removes every file node whose index is not in the kept
// set, along with its byModule/byComplexity entries.
func dropFilesOutside(g *models.GraphData, kept *roaring.Bitmap, indexOf map[string]uint32, ids []string) {
	for _, id := range ids {
		if kept.Contains(indexOf[id]) {
			continue
		}
		f := g.Files.Files[id]
		delete(g.Files.Files, id)
		g.Files.ByModule[f.Module] = removeID(g.Files.ByModule[f.Module], id)
		g.Files.ByComplexity[f.Complexity.Level] = removeID(g.Files.ByComplexity[f.Complexity.Level], id)
		if m, ok := g.Modules.Flat[f.Module]; ok {
			m.Files = removeID(m.Files, id)
		}
	}
}

// dropDanglingEdges removes edges touching dropped nodes and rebuilds the
// adjacency maps so no dangling reference survives.
func dropDanglingEdges(g *models.GraphData) {
	edges := g.Dependencies.Edges[:0]
	adjacency := make(map[string][]string)
	reverse := make(map[string][]string)
	for _, e := range g.Dependencies.Edges {
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			continue
		}
		edges = append(edges, e)
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		reverse[e.Target] = append(reverse[e.Target], e.Source)
	}
	g.Dependencies.Edges = edges
	g.Dependencies.Adjacency = adjacency
	g.Dependencies.ReverseAdjacency = reverse
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func extendExtra(extra map[string]any, values map[string]any) map[string]any {
	if extra == nil {
		extra = make(map[string]any, len(values))
	}
	for k, v := range values {
		extra[k] = v
	}
	return extra
}
