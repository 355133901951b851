package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the prism analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all prism tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "prism",
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
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_components",
		Description: describeAnalyzeComponents(),
	}, handleAnalyzeComponents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rank_components",
		Description: describeRankComponents(),
	}, handleRankComponents)
}
