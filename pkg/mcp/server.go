// Package mcp exposes route analysis to MCP clients over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdul-hamid-achik/routemap/internal/version"
	"github.com/abdul-hamid-achik/routemap/pkg/config"
)

// Server wraps an MCP server bound to one project directory.
type Server struct {
	workdir   string
	ignore    []string
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for the project in workdir.
func NewServer(workdir string) *Server {
	s := &Server{
		workdir: workdir,
		ignore:  config.Default().Ignore,
	}

	s.mcpServer = server.NewMCPServer(
		"routemap",
		version.GetVersion(),
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("analyze_routes",
		mcp.WithDescription("Analyze the Next.js project and render its routes in the requested format"),
		mcp.WithString("format",
			mcp.Description("Output format: raw, json, yaml, markdown, typescript or openapi (default json)"),
		),
		mcp.WithString("depth",
			mcp.Description("Analysis depth: basic or detailed (default basic)"),
		),
		mcp.WithBoolean("nested",
			mcp.Description("Render the nested route structure instead of a flat list"),
		),
		mcp.WithString("path_style",
			mcp.Description("Dynamic segment style: next, colon or braces"),
		),
		mcp.WithString("strip_prefixes",
			mcp.Description("Comma-separated prefixes (or //regex//) removed from TypeScript module paths"),
		),
		mcp.WithString("exclude_fields",
			mcp.Description("Comma-separated route fields removed from data formats"),
		),
	), s.handleAnalyzeRoutes)

	s.mcpServer.AddTool(mcp.NewTool("list_routes",
		mcp.WithDescription("List the routes of the project, optionally filtered"),
		mcp.WithString("router",
			mcp.Description("Restrict to one router: app or pages"),
		),
		mcp.WithString("filter",
			mcp.Description("Filter: api, special, dynamic or static"),
		),
	), s.handleListRoutes)

	s.mcpServer.AddTool(mcp.NewTool("route_info",
		mcp.WithDescription("Show everything known about one route"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Route path, e.g. /blog/[slug]"),
		),
		mcp.WithString("router",
			mcp.Description("Router to search: app or pages (default both)"),
		),
	), s.handleRouteInfo)
}
