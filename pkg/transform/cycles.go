package transform

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/codemindmap/birdview/pkg/models"
)

// MarkCycles is the cycle-detection pass, run once after the edge list is
// fully built. Every edge whose endpoints share a multi-node strongly
// connected component is marked circular, with the cycle's node-id path
// recorded on the edge metadata.
func MarkCycles(g *models.GraphData) {
	if len(g.Dependencies.Edges) == 0 {
		return
	}

	// Index node ids for the gonum representation.
	idToIndex := make(map[string]int64)
	indexToID := make(map[int64]string)
	next := int64(0)
	index := func(id string) int64 {
		if i, ok := idToIndex[id]; ok {
			return i
		}
		i := next
		next++
		idToIndex[id] = i
		indexToID[i] = id
		return i
	}

	directed := simple.NewDirectedGraph()
	for _, e := range g.Dependencies.Edges {
		from := index(e.Source)
		to := index(e.Target)
		if directed.Node(from) == nil {
			directed.AddNode(simple.Node(from))
		}
		if directed.Node(to) == nil {
			directed.AddNode(simple.Node(to))
		}
		directed.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	// Component id per node, multi-node SCCs only.
	component := make(map[string]int)
	for compID, scc := range topo.TarjanSCC(directed) {
		if len(scc) < 2 {
			continue
		}
		for _, node := range scc {
			component[indexToID[node.ID()]] = compID + 1
		}
	}
	if len(component) == 0 {
		return
	}

	for _, e := range g.Dependencies.Edges {
		src, dst := component[e.Source], component[e.Target]
		if src == 0 || src != dst {
			continue
		}
		e.Metadata.IsCircular = true
		e.Metadata.CyclePath = cyclePath(g, e, component)
	}
}

// cyclePath returns the node-id path of the cycle closed by edge e:
// source, target, then the shortest route from target back to source,
// staying within the edge's strongly connected component.
func cyclePath(g *models.GraphData, e *models.DependencyEdge, component map[string]int) []string {
	comp := component[e.Source]
	back := bfsWithin(g, e.Target, e.Source, comp, component)
	if back == nil {
		return []string{e.Source, e.Target}
	}
	path := make([]string, 0, len(back)+1)
	path = append(path, e.Source)
	path = append(path, back...)
	return path
}

// bfsWithin finds the shortest path from start to goal using only nodes in
// the given component. The returned path includes both endpoints.
func bfsWithin(g *models.GraphData, start, goal string, comp int, component map[string]int) []string {
	prev := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			var path []string
			for at := goal; at != ""; at = prev[at] {
				path = append([]string{at}, path...)
			}
			return path
		}
		for _, neighbor := range g.Dependencies.Adjacency[current] {
			if component[neighbor] != comp {
				continue
			}
			if _, visited := prev[neighbor]; visited {
				continue
			}
			prev[neighbor] = current
			queue = append(queue, neighbor)
		}
	}
	return nil
}
