package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeTransformGraph() string {
	return `Transforms an analysis payload into the enhanced dependency graph: modules, files, edges, complexity classification, and circular-dependency marking.

USE WHEN:
- Getting an overview of a project's module structure
- Finding circular dependencies between files
- Checking the complexity distribution of a codebase

INTERPRETING RESULTS:
- Complexity levels: low (score <= 5), medium (<= 10), high (> 10)
- Edges with isCircular=true participate in a dependency cycle; path lists the cycle members
- statistics.circularCount is the number of edges on cycles, not the number of cycles
- maxDepth is the deepest module nesting level

RETURNED:
- Module hierarchy with per-module complexity aggregates
- File nodes with cyclomatic/cognitive scores and classification
- Dependency edges with adjacency statistics`
}

func describeFocusFile() string {
	return `Builds the current-file focused subgraph: the given file, its direct dependencies and dependents, plus a bounded set of related files.

USE WHEN:
- Understanding the blast radius of changing one file
- Reviewing a file's direct coupling before refactoring

INTERPRETING RESULTS:
- impactScore (0-100) combines the file's complexity with its dependency fan-in/fan-out
- relatedness preference: same module, then same language, then same complexity level
- If the file is not found the full graph is returned unchanged`
}

func describeGitAnalytics() string {
	return `Builds the git analytics view: contributor nodes, hotspot nodes, weekly commit timeline, and contributor-to-hotspot collaboration edges.

USE WHEN:
- Finding who works on the riskiest files
- Spotting files that change suspiciously often
- Reviewing commit activity trends week by week

INTERPRETING RESULTS:
- Contributor score = commits / 10, so 50+ commits classifies as medium and 100+ as high
- Hotspot score = change count / 2; a high hotspot changed more than 20 times
- Timeline buckets are ordinal weeks (timeline_YYYY-WNN), grouped by day-of-year, not ISO weeks`
}

func describeSearchNodes() string {
	return `Searches node labels in the transformed graph with case-insensitive substring matching.

USE WHEN:
- Locating a file or module by partial name
- Listing everything matching a naming convention

INTERPRETING RESULTS:
- Matches are display labels; files fall back to their short name when unlabeled
- An empty query matches nothing and returns an empty list`
}
