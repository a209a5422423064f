package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all birdview graph tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all birdview tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "birdview",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	// Full project graph
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "transform_graph",
		Description: describeTransformGraph(),
	}, handleTransformGraph)

	// Current-file focused subgraph
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "focus_file",
		Description: describeFocusFile(),
	}, handleFocusFile)

	// Git analytics view
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "git_analytics",
		Description: describeGitAnalytics(),
	}, handleGitAnalytics)

	// Label search
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_nodes",
		Description: describeSearchNodes(),
	}, handleSearchNodes)
}
