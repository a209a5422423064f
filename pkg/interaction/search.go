package interaction

import (
	"sort"
	"strings"

	"github.com/codemindmap/birdview/pkg/models"
)

// Search marks nodes whose display label contains the query
// (case-insensitive) and returns the matching ids in stable order. An empty
// query clears all highlight and dim marks and matches nothing. In
// persistent mode non-matching nodes are dimmed; transient searches only
// add highlights.
func Search(g *models.GraphData, query string, persistent bool) []string {
	if g == nil {
		return nil
	}
	if strings.TrimSpace(query) == "" {
		ClearMarks(g)
		return nil
	}

	needle := strings.ToLower(query)
	var matches []string
	for id, f := range g.Files.Files {
		if strings.Contains(strings.ToLower(f.DisplayLabel()), needle) {
			f.IsHighlighted = true
			f.IsDimmed = false
			matches = append(matches, id)
		} else {
			f.IsHighlighted = false
			if persistent {
				f.IsDimmed = true
			}
		}
	}
	sort.Strings(matches)
	return matches
}

// ClearMarks removes every highlight and dim mark from the graph.
func ClearMarks(g *models.GraphData) {
	for _, f := range g.Files.Files {
		f.IsHighlighted = false
		f.IsDimmed = false
	}
}
