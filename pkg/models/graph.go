package models

import (
	"errors"
	"fmt"
	"time"
)

// AnalysisType identifies which view produced a graph.
type AnalysisType string

const (
	AnalysisFullCode     AnalysisType = "fullCode"
	AnalysisCurrentFile  AnalysisType = "currentFile"
	AnalysisGitAnalytics AnalysisType = "gitAnalytics"
)

// EdgeType is the closed set of dependency relations.
type EdgeType string

const (
	EdgeImport        EdgeType = "import"
	EdgeDependency    EdgeType = "dependency"
	EdgeComposition   EdgeType = "composition"
	EdgeCollaboration EdgeType = "collaboration"
)

// Synthetic module ids. Pseudo-nodes (contributors, hotspots, timeline
// buckets, frameworks, tech-stack items) reuse the FileNode shape and are
// parented under one of these.
const (
	ModuleContributors = "contributors"
	ModuleHotspots     = "hotspots"
	ModuleTimeline     = "timeline"
	ModuleFrameworks   = "frameworks"
	ModuleTechStack    = "techstack"
)

// SyntheticModules lists the module ids whose children are pseudo-nodes
// rather than openable source files.
var SyntheticModules = map[string]bool{
	ModuleContributors: true,
	ModuleHotspots:     true,
	ModuleTimeline:     true,
	ModuleFrameworks:   true,
	ModuleTechStack:    true,
}

// Point is a renderer-owned layout hint.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions is a renderer-owned size hint.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FileMetadata carries source-specific details attached to a FileNode.
type FileMetadata struct {
	LastModified time.Time      `json:"lastModified,omitempty"`
	Author       string         `json:"author,omitempty"`
	Functions    int            `json:"functions,omitempty"`
	Classes      int            `json:"classes,omitempty"`
	Imports      int            `json:"imports,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// FileNode is a source file or a pseudo-file. Synthetic nodes mark their
// origin through the Language field ("contributor", "hotspot", ...).
type FileNode struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Label         string         `json:"label,omitempty"`
	Path          string         `json:"path"`
	Module        string         `json:"module"`
	Complexity    FileComplexity `json:"complexity"`
	Language      string         `json:"language"`
	IsHighlighted bool           `json:"isHighlighted"`
	IsDimmed      bool           `json:"isDimmed"`
	Metadata      FileMetadata   `json:"metadata"`
}

// DisplayLabel returns the label used for search matching, falling back to
// the node name when no explicit label is set.
func (f *FileNode) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// ModuleNode is a directory/package grouping of files and submodules.
type ModuleNode struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Path       string           `json:"path"`
	Files      []string         `json:"files"`
	SubModules []string         `json:"subModules"`
	Complexity ModuleComplexity `json:"complexity"`
	IsExpanded bool             `json:"isExpanded"`
	Level      int              `json:"level"`
	Position   *Point           `json:"position,omitempty"`
	Size       *Dimensions      `json:"size,omitempty"`
}

// EdgeStyle carries presentation-only edge attributes.
type EdgeStyle struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Arrow string  `json:"arrow,omitempty"`
}

// EdgeMetadata carries derived edge attributes. CyclePath is populated by
// the cycle-detection pass for circular edges only.
type EdgeMetadata struct {
	Strength   float64  `json:"strength,omitempty"`
	Frequency  int      `json:"frequency,omitempty"`
	IsCircular bool     `json:"isCircular"`
	CyclePath  []string `json:"path,omitempty"`
}

// DependencyEdge is a directed relation between two node ids.
type DependencyEdge struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	Target   string       `json:"target"`
	Type     EdgeType     `json:"type"`
	Weight   float64      `json:"weight"`
	Style    EdgeStyle    `json:"style,omitempty"`
	Metadata EdgeMetadata `json:"metadata"`
}

// HierarchyEntry is one slot of the path-segment-keyed module tree built
// for tree-style renderers.
type HierarchyEntry struct {
	Module   string   `json:"module"`
	Children []string `json:"children,omitempty"`
}

// ModuleStats summarizes the module collection.
type ModuleStats struct {
	TotalModules int `json:"totalModules"`
	MaxDepth     int `json:"maxDepth"`
}

// FileStats summarizes the file collection.
type FileStats struct {
	TotalFiles       int     `json:"totalFiles"`
	TotalLinesOfCode int     `json:"totalLinesOfCode"`
	AverageScore     float64 `json:"averageScore"`
}

// EdgeStats summarizes the edge collection.
type EdgeStats struct {
	TotalEdges    int `json:"totalEdges"`
	CircularEdges int `json:"circularEdges"`
}

// ModuleSet is the module side of a transformed graph.
type ModuleSet struct {
	Roots     []string                   `json:"root"`
	Flat      map[string]*ModuleNode     `json:"flatList"`
	Hierarchy map[string]*HierarchyEntry `json:"hierarchy"`
	Stats     ModuleStats                `json:"statistics"`
}

// FileSet is the file side of a transformed graph.
type FileSet struct {
	Files        map[string]*FileNode        `json:"files"`
	ByModule     map[string][]string         `json:"byModule"`
	ByComplexity map[ComplexityLevel][]string `json:"byComplexity"`
	Stats        FileStats                   `json:"statistics"`
}

// EdgeSet is the dependency side of a transformed graph.
type EdgeSet struct {
	Edges            []*DependencyEdge   `json:"edges"`
	Adjacency        map[string][]string `json:"adjacencyList"`
	ReverseAdjacency map[string][]string `json:"reverseAdjacencyList"`
	Stats            EdgeStats           `json:"statistics"`
}

// PerformanceMetrics records transformation cost, reported in the metadata.
type PerformanceMetrics struct {
	AnalysisTimeMs int64 `json:"analysisTime"`
	RenderTimeMs   int64 `json:"renderTime"`
	MemoryUsage    int64 `json:"memoryUsage"`
	NodeCount      int   `json:"nodeCount"`
	EdgeCount      int   `json:"edgeCount"`
}

// GraphMetadata describes one transformed graph instance. TotalNodes and
// TotalEdges must match the collections after every mutating operation;
// Recount enforces that.
type GraphMetadata struct {
	AnalysisType           AnalysisType       `json:"analysisType"`
	Timestamp              time.Time          `json:"timestamp"`
	ProjectPath            string             `json:"projectPath"`
	TotalNodes             int                `json:"totalNodes"`
	TotalEdges             int                `json:"totalEdges"`
	ComplexityDistribution Distribution       `json:"complexityDistribution"`
	Performance            PerformanceMetrics `json:"performanceMetrics"`
}

// GraphData is the normalized in-memory graph handed to renderers.
type GraphData struct {
	Modules      ModuleSet     `json:"modules"`
	Files        FileSet       `json:"files"`
	Dependencies EdgeSet       `json:"dependencies"`
	Metadata     GraphMetadata `json:"metadata"`
}

// Edge construction errors. Callers in the transformation path log these
// and skip the offending record rather than failing the transform.
var (
	ErrSelfLoop        = errors.New("self-referencing edge rejected")
	ErrUnknownEndpoint = errors.New("edge endpoint does not resolve to a known node")
	ErrDuplicateFileID = errors.New("duplicate file node id")
	ErrDuplicateModule = errors.New("duplicate module node id")
)

// NewGraphData creates an empty graph for the given analysis type.
func NewGraphData(analysisType AnalysisType, projectPath string) *GraphData {
	return &GraphData{
		Modules: ModuleSet{
			Roots:     make([]string, 0),
			Flat:      make(map[string]*ModuleNode),
			Hierarchy: make(map[string]*HierarchyEntry),
		},
		Files: FileSet{
			Files:        make(map[string]*FileNode),
			ByModule:     make(map[string][]string),
			ByComplexity: make(map[ComplexityLevel][]string),
		},
		Dependencies: EdgeSet{
			Edges:            make([]*DependencyEdge, 0),
			Adjacency:        make(map[string][]string),
			ReverseAdjacency: make(map[string][]string),
		},
		Metadata: GraphMetadata{
			AnalysisType: analysisType,
			Timestamp:    time.Now().UTC(),
			ProjectPath:  projectPath,
		},
	}
}

// AddModule registers a module node.
func (g *GraphData) AddModule(m *ModuleNode) error {
	if _, exists := g.Modules.Flat[m.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, m.ID)
	}
	g.Modules.Flat[m.ID] = m
	if m.Level == 0 {
		g.Modules.Roots = append(g.Modules.Roots, m.ID)
	}
	return nil
}

// AddFile registers a file node. The id must be unique across the whole
// collection, synthetic or not.
func (g *GraphData) AddFile(f *FileNode) error {
	if _, exists := g.Files.Files[f.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFileID, f.ID)
	}
	g.Files.Files[f.ID] = f
	g.Files.ByModule[f.Module] = append(g.Files.ByModule[f.Module], f.ID)
	g.Files.ByComplexity[f.Complexity.Level] = append(g.Files.ByComplexity[f.Complexity.Level], f.ID)
	if m, ok := g.Modules.Flat[f.Module]; ok {
		m.Files = append(m.Files, f.ID)
	}
	return nil
}

// AddEdge registers an edge after validating both endpoints resolve and the
// edge is not a self-loop.
func (g *GraphData) AddEdge(e *DependencyEdge) error {
	if e.Source == e.Target {
		return fmt.Errorf("%w: %s", ErrSelfLoop, e.Source)
	}
	if !g.HasNode(e.Source) {
		return fmt.Errorf("%w: source %s", ErrUnknownEndpoint, e.Source)
	}
	if !g.HasNode(e.Target) {
		return fmt.Errorf("%w: target %s", ErrUnknownEndpoint, e.Target)
	}
	if e.ID == "" {
		e.ID = e.Source + "->" + e.Target
	}
	g.Dependencies.Edges = append(g.Dependencies.Edges, e)
	g.Dependencies.Adjacency[e.Source] = append(g.Dependencies.Adjacency[e.Source], e.Target)
	g.Dependencies.ReverseAdjacency[e.Target] = append(g.Dependencies.ReverseAdjacency[e.Target], e.Source)
	return nil
}

// HasNode reports whether id resolves to a file node or a module node.
func (g *GraphData) HasNode(id string) bool {
	if _, ok := g.Files.Files[id]; ok {
		return true
	}
	_, ok := g.Modules.Flat[id]
	return ok
}

// Recount recomputes metadata totals, collection statistics, and the
// complexity distribution from the current collections. Every mutating
// operation (filter, focus, expansion) must call this before handing the
// graph on.
func (g *GraphData) Recount() {
	g.Metadata.TotalNodes = len(g.Files.Files)
	g.Metadata.TotalEdges = len(g.Dependencies.Edges)

	var dist Distribution
	var totalLines int
	var scoreSum float64
	for _, f := range g.Files.Files {
		dist.Add(f.Complexity.Level)
		totalLines += f.Complexity.LinesOfCode
		scoreSum += f.Complexity.Score
	}
	g.Metadata.ComplexityDistribution = dist

	g.Files.Stats.TotalFiles = len(g.Files.Files)
	g.Files.Stats.TotalLinesOfCode = totalLines
	if len(g.Files.Files) > 0 {
		g.Files.Stats.AverageScore = scoreSum / float64(len(g.Files.Files))
	} else {
		g.Files.Stats.AverageScore = 0
	}

	circular := 0
	for _, e := range g.Dependencies.Edges {
		if e.Metadata.IsCircular {
			circular++
		}
	}
	g.Dependencies.Stats.TotalEdges = len(g.Dependencies.Edges)
	g.Dependencies.Stats.CircularEdges = circular

	maxDepth := 0
	for _, m := range g.Modules.Flat {
		if m.Level > maxDepth {
			maxDepth = m.Level
		}
	}
	g.Modules.Stats.TotalModules = len(g.Modules.Flat)
	g.Modules.Stats.MaxDepth = maxDepth

	g.Metadata.Performance.NodeCount = g.Metadata.TotalNodes
	g.Metadata.Performance.EdgeCount = g.Metadata.TotalEdges
}

// Clone returns a deep copy. Enhancers operate on copies so views never
// alias each other's graph instances.
func (g *GraphData) Clone() *GraphData {
	out := NewGraphData(g.Metadata.AnalysisType, g.Metadata.ProjectPath)
	out.Metadata = g.Metadata

	out.Modules.Roots = append([]string(nil), g.Modules.Roots...)
	for id, m := range g.Modules.Flat {
		cp := *m
		cp.Files = append([]string(nil), m.Files...)
		cp.SubModules = append([]string(nil), m.SubModules...)
		if m.Position != nil {
			p := *m.Position
			cp.Position = &p
		}
		if m.Size != nil {
			s := *m.Size
			cp.Size = &s
		}
		out.Modules.Flat[id] = &cp
	}
	for seg, h := range g.Modules.Hierarchy {
		out.Modules.Hierarchy[seg] = &HierarchyEntry{
			Module:   h.Module,
			Children: append([]string(nil), h.Children...),
		}
	}
	out.Modules.Stats = g.Modules.Stats

	for id, f := range g.Files.Files {
		cp := *f
		if f.Metadata.Extra != nil {
			cp.Metadata.Extra = make(map[string]any, len(f.Metadata.Extra))
			for k, v := range f.Metadata.Extra {
				cp.Metadata.Extra[k] = v
			}
		}
		out.Files.Files[id] = &cp
	}
	for mod, ids := range g.Files.ByModule {
		out.Files.ByModule[mod] = append([]string(nil), ids...)
	}
	for level, ids := range g.Files.ByComplexity {
		out.Files.ByComplexity[level] = append([]string(nil), ids...)
	}
	out.Files.Stats = g.Files.Stats

	for _, e := range g.Dependencies.Edges {
		cp := *e
		cp.Metadata.CyclePath = append([]string(nil), e.Metadata.CyclePath...)
		out.Dependencies.Edges = append(out.Dependencies.Edges, &cp)
	}
	for id, ids := range g.Dependencies.Adjacency {
		out.Dependencies.Adjacency[id] = append([]string(nil), ids...)
	}
	for id, ids := range g.Dependencies.ReverseAdjacency {
		out.Dependencies.ReverseAdjacency[id] = append([]string(nil), ids...)
	}
	out.Dependencies.Stats = g.Dependencies.Stats

	return out
}
