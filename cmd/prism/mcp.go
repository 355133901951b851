package main

import (
	"context"

	"github.com/prismlab/prism/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes prism's
component analysis as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "prism": {
        "command": "prism",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_components  Full metric set for every component
  - rank_components     Components ranked by composite risk`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
