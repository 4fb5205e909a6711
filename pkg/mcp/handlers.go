package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abdul-hamid-achik/routemap/pkg/analyzer"
	"github.com/abdul-hamid-achik/routemap/pkg/format"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

func (s *Server) analyze(ctx context.Context, depth analyzer.Depth) (*analyzer.Analyzer, *analyzer.Result, error) {
	a := analyzer.New(analyzer.Options{
		RootDir: s.workdir,
		Depth:   depth,
		Ignore:  s.ignore,
	})
	result, err := a.Analyze(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a, result, nil
}

func (s *Server) handleAnalyzeRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := format.ParseKind(req.GetString("format", string(format.JSON)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	depth, err := analyzer.ParseDepth(req.GetString("depth", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	style, err := transform.ParsePathStyle(req.GetString("path_style", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a, _, err := s.analyze(ctx, depth)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Analysis failed: %v", err)), nil
	}

	out, err := a.Render(kind, format.Options{
		Indent:        2,
		Nested:        req.GetBool("nested", false),
		PathStyle:     style,
		StripPrefixes: splitList(req.GetString("strip_prefixes", "")),
		ExcludeFields: splitList(req.GetString("exclude_fields", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render routes: %v", err)), nil
	}

	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleListRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, result, err := s.analyze(ctx, analyzer.DepthBasic)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Analysis failed: %v", err)), nil
	}

	var routes []scanner.Route
	switch filter := req.GetString("filter", ""); filter {
	case "":
		routes = result.Routes
	case "api":
		routes = result.APIRoutes()
	case "special":
		routes = result.SpecialPages()
	case "dynamic":
		routes = result.DynamicRoutes()
	case "static":
		routes = result.StaticRoutes()
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown filter %q (supported: api, special, dynamic, static)", filter)), nil
	}

	router, err := parseRouter(req.GetString("router", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type listed struct {
		Path     string `json:"path"`
		Router   string `json:"router"`
		Pattern  string `json:"pattern"`
		FilePath string `json:"filePath"`
	}
	items := make([]listed, 0, len(routes))
	for _, r := range routes {
		if router != "" && r.Router != router {
			continue
		}
		items = append(items, listed{
			Path:     r.Path,
			Router:   string(r.Router),
			Pattern:  string(r.Pattern),
			FilePath: r.FilePath,
		})
	}

	return jsonResult(map[string]any{
		"success": true,
		"count":   len(items),
		"routes":  items,
	})
}

func (s *Server) handleRouteInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}
	router, err := parseRouter(req.GetString("router", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	_, result, err := s.analyze(ctx, analyzer.DepthDetailed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Analysis failed: %v", err)), nil
	}

	route, ok := result.Find(path, router)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("route %q not found", path)), nil
	}

	return jsonResult(map[string]any{
		"success": true,
		"route":   route,
	})
}

func parseRouter(s string) (scanner.RouterKind, error) {
	switch scanner.RouterKind(s) {
	case "", scanner.RouterApp, scanner.RouterPages:
		return scanner.RouterKind(s), nil
	}
	return "", fmt.Errorf("unknown router %q (supported: app, pages)", s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
