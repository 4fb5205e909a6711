// Package format renders analyzed routes as raw documents, JSON, YAML,
// Markdown, a TypeScript route module or an OpenAPI description.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/routemap/internal/version"
	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

// ErrUnknownFormat is returned for a format key with no formatter.
var ErrUnknownFormat = errors.New("unknown format")

// Kind names an output format.
type Kind string

const (
	Raw        Kind = "raw"
	JSON       Kind = "json"
	YAML       Kind = "yaml"
	Markdown   Kind = "markdown"
	TypeScript Kind = "typescript"
	OpenAPI    Kind = "openapi"
)

// Kinds lists every supported format in display order.
var Kinds = []Kind{Raw, JSON, YAML, Markdown, TypeScript, OpenAPI}

// Options control rendering. The zero value renders compact JSON, flat route
// lists and bracket-style paths.
type Options struct {
	// Indent is the JSON/YAML indent width; 0 renders compact JSON
	Indent int
	// Nested replaces the route list with the nested route structure
	Nested bool
	// PathStyle changes how dynamic segments are displayed
	PathStyle transform.PathStyle
	// StripPrefixes are literal or //regex// prefixes removed from module paths
	StripPrefixes []string
	// ExcludeFields are removed from raw, JSON and YAML documents
	ExcludeFields []string
	// Title overrides the Markdown and OpenAPI title
	Title string
}

// Formatter renders routes. Text formats return a string; Raw returns the
// document value.
type Formatter func(routes []scanner.Route, info *project.Info, opts Options) (any, error)

// Formatters returns a fresh mapping of every format kind to its formatter.
func Formatters() map[Kind]Formatter {
	return map[Kind]Formatter{
		Raw:        FormatRaw,
		JSON:       FormatJSON,
		YAML:       FormatYAML,
		Markdown:   FormatMarkdown,
		TypeScript: FormatTypeScript,
		OpenAPI:    FormatOpenAPI,
	}
}

// ParseKind validates a format key. "md" and "ts" are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "md":
		return Markdown, nil
	case "ts":
		return TypeScript, nil
	}
	k := Kind(strings.ToLower(s))
	if _, ok := Formatters()[k]; !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, s, KindList())
	}
	return k, nil
}

// KindList returns the supported format names, comma-separated.
func KindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Format renders routes with the formatter registered for kind.
func Format(kind Kind, routes []scanner.Route, info *project.Info, opts Options) (any, error) {
	f, ok := Formatters()[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, kind, KindList())
	}
	return f(routes, info, opts)
}

// Render is Format for callers that need text. Raw documents are rendered
// as indented JSON.
func Render(kind Kind, routes []scanner.Route, info *project.Info, opts Options) (string, error) {
	out, err := Format(kind, routes, info, opts)
	if err != nil {
		return "", err
	}
	if s, ok := out.(string); ok {
		return s, nil
	}
	indent := opts.Indent
	if indent == 0 {
		indent = 2
	}
	return encodeJSON(out, indent)
}

// Document is the composed result rendered by the data formats.
type Document struct {
	SchemaVersion int           `json:"schemaVersion" yaml:"schemaVersion"`
	Project       *project.Info `json:"project,omitempty" yaml:"project,omitempty"`
	Routes        any           `json:"routes" yaml:"routes"`
}

// Compose builds the data document: path style applied, optionally nested,
// with excluded fields stripped.
func Compose(routes []scanner.Route, info *project.Info, opts Options) (any, error) {
	styled := StyledRoutes(routes, opts.PathStyle)

	doc := &Document{
		SchemaVersion: version.GetSchemaVersion(),
		Project:       info,
		Routes:        styled,
	}
	if opts.Nested {
		doc.Routes = transform.ToNested(styled)
	}

	if len(opts.ExcludeFields) == 0 {
		return doc, nil
	}
	return transform.ExcludeFields(doc, opts.ExcludeFields)
}

// StyledRoutes returns a copy of routes with paths in the given style.
func StyledRoutes(routes []scanner.Route, style transform.PathStyle) []scanner.Route {
	out := make([]scanner.Route, len(routes))
	copy(out, routes)
	if style == "" || style == transform.StyleNext {
		return out
	}
	for i := range out {
		out[i].Path = transform.FormatPath(out[i].Path, style)
	}
	return out
}

func encodeJSON(v any, indent int) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
