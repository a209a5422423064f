// Package gitanalytics synthesizes a graph from commit history: contributor,
// hotspot, and timeline pseudo-nodes plus collaboration edges. Unlike the
// other views it does not filter an existing code graph.
package gitanalytics

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/codemindmap/birdview/pkg/models"
	"github.com/codemindmap/birdview/pkg/payload"
)

// Rescaling divisors compressing wide-range git metrics onto the shared
// 3-tier complexity axis. These are not a second threshold scheme: the
// classification thresholds stay the fixed ones in pkg/models.
const (
	CommitScoreDivisor  = 10.0
	ChurnScoreDivisor   = 1000.0
	HotspotScoreDivisor = 2.0
)

// Language markers distinguishing pseudo-nodes from source files.
const (
	LangContributor = "contributor"
	LangHotspot     = "hotspot"
	LangTimeline    = "timeline"
)

// Enhancer builds the git-analytics view.
type Enhancer struct {
	logger *slog.Logger
}

// Option is a functional option for configuring Enhancer.
type Option func(*Enhancer)

// WithLogger sets the warning logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enhancer) {
		e.logger = logger
	}
}

// New creates a git-analytics enhancer.
func New(opts ...Option) *Enhancer {
	e := &Enhancer{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WeekBucket returns the timeline bucket id for a commit date, in the form
// timeline_YYYY-Www with the week number computed as ceil(ordinal day / 7).
func WeekBucket(t time.Time) string {
	week := (t.YearDay() + 6) / 7
	return fmt.Sprintf("timeline_%d-W%02d", t.Year(), week)
}

// Enhance synthesizes a fresh graph from the payload's commit, contributor,
// and file-change data. The base graph is only consulted for project
// metadata; its nodes do not carry over.
func (e *Enhancer) Enhance(base *models.GraphData, n *payload.Normalized) *models.GraphData {
	projectPath := ""
	if base != nil {
		projectPath = base.Metadata.ProjectPath
	}
	g := models.NewGraphData(models.AnalysisGitAnalytics, projectPath)
	if n == nil {
		g.Recount()
		return g
	}

	e.addSyntheticModules(g)
	contributorIDs := e.addContributors(g, n.Contributors)
	hotspotIDs := e.addHotspots(g, n.FileChanges)
	e.addTimeline(g, n.Commits)
	e.addCollaborationEdges(g, n, contributorIDs, hotspotIDs)

	g.Recount()
	return g
}

func (e *Enhancer) addSyntheticModules(g *models.GraphData) {
	for _, m := range []struct{ id, name string }{
		{models.ModuleContributors, "Contributors"},
		{models.ModuleHotspots, "Hotspots"},
		{models.ModuleTimeline, "Timeline"},
	} {
		mod := &models.ModuleNode{
			ID:         m.id,
			Name:       m.name,
			Path:       m.id,
			Files:      make([]string, 0),
			SubModules: make([]string, 0),
		}
		if err := g.AddModule(mod); err != nil {
			e.logger.Warn("skipping synthetic module", "id", m.id, "error", err)
		}
	}
}

// addContributors creates one pseudo-node per contributor. Commit count and
// lines changed are compressed onto the shared complexity axis.
func (e *Enhancer) addContributors(g *models.GraphData, contributors []payload.RawContributor) map[string]string {
	ids := make(map[string]string, len(contributors))
	for _, c := range contributors {
		score := float64(c.Commits) / CommitScoreDivisor
		cognitive := int(float64(c.LinesChanged) / ChurnScoreDivisor)
		node := &models.FileNode{
			ID:         "contributor_" + models.NodeID(c.Name),
			Name:       c.Name,
			Label:      c.Name,
			Path:       c.Email,
			Module:     models.ModuleContributors,
			Language:   LangContributor,
			Complexity: models.NewFileComplexity(int(score), cognitive, c.LinesChanged, 0, score),
			Metadata: models.FileMetadata{
				Author: c.Name,
				Extra: map[string]any{
					"commits":      c.Commits,
					"linesChanged": c.LinesChanged,
				},
			},
		}
		if err := g.AddFile(node); err != nil {
			e.logger.Warn("skipping duplicate contributor", "name", c.Name, "error", err)
			continue
		}
		ids[c.Name] = node.ID
	}
	return ids
}

// addHotspots creates one pseudo-node per frequently-changed file, keyed by
// its change count.
func (e *Enhancer) addHotspots(g *models.GraphData, changes []payload.RawFileChange) map[string]string {
	ids := make(map[string]string, len(changes))
	for _, fc := range changes {
		score := float64(fc.Changes) / HotspotScoreDivisor
		node := &models.FileNode{
			ID:         "hotspot_" + models.NodeID(fc.Path),
			Name:       fc.Path,
			Path:       fc.Path,
			Module:     models.ModuleHotspots,
			Language:   LangHotspot,
			Complexity: models.NewFileComplexity(fc.Changes, 0, 0, 0, score),
			Metadata: models.FileMetadata{
				Extra: map[string]any{
					"changeCount": fc.Changes,
					"authors":     fc.Authors,
				},
			},
		}
		if err := g.AddFile(node); err != nil {
			e.logger.Warn("skipping duplicate hotspot", "path", fc.Path, "error", err)
			continue
		}
		ids[fc.Path] = node.ID
	}
	return ids
}

// addTimeline buckets commits into week pseudo-nodes.
func (e *Enhancer) addTimeline(g *models.GraphData, commits []payload.RawCommit) {
	buckets := make(map[string]int)
	var order []string
	for _, c := range commits {
		id := WeekBucket(c.Date)
		if _, seen := buckets[id]; !seen {
			order = append(order, id)
		}
		buckets[id]++
	}
	sort.Strings(order)

	for _, id := range order {
		count := buckets[id]
		score := float64(count) / CommitScoreDivisor
		node := &models.FileNode{
			ID:         id,
			Name:       id,
			Label:      fmt.Sprintf("%s (%d commits)", id, count),
			Path:       id,
			Module:     models.ModuleTimeline,
			Language:   LangTimeline,
			Complexity: models.NewFileComplexity(count, 0, 0, 0, score),
			Metadata: models.FileMetadata{
				Extra: map[string]any{"commitCount": count},
			},
		}
		if err := g.AddFile(node); err != nil {
			e.logger.Warn("skipping duplicate timeline bucket", "id", id, "error", err)
		}
	}
}

// addCollaborationEdges connects each contributor to every hotspot file
// listing them as an author, weighted by the contributor's commit count.
func (e *Enhancer) addCollaborationEdges(g *models.GraphData, n *payload.Normalized, contributorIDs, hotspotIDs map[string]string) {
	commitsByName := make(map[string]int, len(n.Contributors))
	for _, c := range n.Contributors {
		commitsByName[c.Name] = c.Commits
	}

	for _, fc := range n.FileChanges {
		hotspotID, ok := hotspotIDs[fc.Path]
		if !ok {
			continue
		}
		for _, author := range fc.Authors {
			contributorID, ok := contributorIDs[author]
			if !ok {
				continue
			}
			edge := &models.DependencyEdge{
				Source: contributorID,
				Target: hotspotID,
				Type:   models.EdgeCollaboration,
				Weight: float64(commitsByName[author]),
			}
			if err := g.AddEdge(edge); err != nil {
				e.logger.Warn("skipping collaboration edge", "author", author,
					"path", fc.Path, "error", err)
			}
		}
	}
}
