package format

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/abdul-hamid-achik/routemap/internal/version"
	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// OpenAPIVersion is the OpenAPI version of generated documents.
const OpenAPIVersion = "3.0.3"

var httpMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// FormatOpenAPI describes the project's API routes (pages/api files and app
// route handlers) as an OpenAPI document in JSON.
func FormatOpenAPI(routes []scanner.Route, info *project.Info, opts Options) (any, error) {
	return encodeJSON(BuildOpenAPI(routes, info, opts), opts.Indent)
}

// BuildOpenAPI creates the OpenAPI document for the API routes.
func BuildOpenAPI(routes []scanner.Route, info *project.Info, opts Options) *openapi3.T {
	title := opts.Title
	if title == "" {
		title = "API"
		if info != nil && info.Package != nil && info.Package.Name != "" {
			title = info.Package.Name
		}
	}
	apiVersion := version.GetVersion()
	if info != nil && info.Package != nil && info.Package.Version != "" {
		apiVersion = info.Package.Version
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: apiVersion,
		},
		Paths: openapi3.NewPaths(),
	}

	for i := range routes {
		r := &routes[i]
		if !IsAPI(r) {
			continue
		}
		pattern := openAPIPath(r.Path)
		doc.Paths.Set(pattern, buildPathItem(r, pattern))
	}

	return doc
}

// IsAPI reports whether a route serves an API endpoint rather than a page.
func IsAPI(r *scanner.Route) bool {
	if r.IsAPIRoute {
		return true
	}
	return r.Router == scanner.RouterApp && r.SpecialFiles != nil && r.SpecialFiles.Route
}

func buildPathItem(r *scanner.Route, pattern string) *openapi3.PathItem {
	pathItem := &openapi3.PathItem{}

	for _, method := range routeMethods(r) {
		op := buildOperation(r, method, pattern)

		switch method {
		case "GET":
			pathItem.Get = op
		case "POST":
			pathItem.Post = op
		case "PUT":
			pathItem.Put = op
		case "PATCH":
			pathItem.Patch = op
		case "DELETE":
			pathItem.Delete = op
		case "HEAD":
			pathItem.Head = op
		case "OPTIONS":
			pathItem.Options = op
		}
	}

	return pathItem
}

// routeMethods returns the HTTP methods exported by a route handler,
// or GET when none were detected.
func routeMethods(r *scanner.Route) []string {
	var methods []string
	for _, m := range httpMethods {
		for _, e := range r.Exports {
			if e == m {
				methods = append(methods, m)
				break
			}
		}
	}
	if len(methods) == 0 {
		return []string{"GET"}
	}
	return methods
}

func buildOperation(r *scanner.Route, method, pattern string) *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:   fmt.Sprintf("%s %s", method, r.Path),
		Tags:      []string{string(r.Router)},
		Responses: openapi3.NewResponses(),
	}

	params := buildParameters(pattern)
	if len(params) > 0 {
		op.Parameters = params
	}

	op.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: openapi3.Ptr("Success"),
		},
	})

	if len(params) > 0 && method != "POST" {
		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: openapi3.Ptr("Not Found"),
			},
		})
	}

	return op
}

// buildParameters extracts path parameters from a pattern.
// Example: /users/{id} -> [Parameter{name: "id", in: "path"}]
func buildParameters(pattern string) openapi3.Parameters {
	var params openapi3.Parameters

	for _, seg := range strings.Split(pattern, "/") {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")

		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:        name,
			In:          "path",
			Required:    true,
			Description: fmt.Sprintf("%s parameter", name),
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type: &openapi3.Types{"string"},
				},
			},
		}})
	}

	return params
}

// openAPIPath converts /users/[id]/[...rest] to /users/{id}/{rest}.
func openAPIPath(path string) string {
	segs := scanner.ParseSegments(path)
	if len(segs) == 0 {
		return "/"
	}
	parts := make([]string, len(segs))
	for i, seg := range segs {
		if seg.IsDynamic() {
			parts[i] = "{" + seg.Name + "}"
		} else {
			parts[i] = seg.Raw
		}
	}
	return "/" + strings.Join(parts, "/")
}
