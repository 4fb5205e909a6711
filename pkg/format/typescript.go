package format

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

// routesBinding names the nested object export.
const routesBinding = "routes"

var moduleTmpl = template.Must(template.New("routes.ts").Parse(moduleTemplate))

// FormatTypeScript renders a TypeScript module with one named export per
// node of the page structure and a nested routes object referencing those
// exports. Nodes carrying a page export its path or template; grouping nodes
// without a page export an object of their children's bindings.
// API routes and directories without a page are omitted.
func FormatTypeScript(routes []scanner.Route, _ *project.Info, opts Options) (any, error) {
	rules, err := transform.ParseStripRules(opts.StripPrefixes)
	if err != nil {
		return nil, err
	}

	var pages []scanner.Route
	for i := range routes {
		if routes[i].IsPage() {
			pages = append(pages, routes[i])
		}
	}

	m := &moduleBuilder{
		rules: rules,
		namer: transform.NewNamer(),
		names: make(map[*transform.Node]string),
	}
	m.namer.Reserve(routesBinding)

	tree := transform.ToAccessorTree(pages)
	m.bind(tree, nil)

	data := moduleTemplateData{
		Bindings: m.bindings,
		Object:   m.object(tree, 0),
	}

	var b strings.Builder
	if err := moduleTmpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return b.String(), nil
}

type moduleBuilder struct {
	rules    []transform.StripRule
	namer    *transform.Namer
	names    map[*transform.Node]string
	bindings []moduleBinding
}

// bind assigns export names depth-first, a node before its children. Grouping
// bindings are emitted after their children so they only reference declared names.
func (m *moduleBuilder) bind(n *transform.Node, tokens []string) {
	group := n.Route == nil && len(tokens) > 0
	switch {
	case n.Route != nil:
		nameTokens := tokens
		if len(nameTokens) == 0 {
			nameTokens = []string{transform.IndexKey}
		}
		name := m.namer.Name(nameTokens)
		m.names[n] = name

		path := transform.StripPrefix(n.Route.Path, m.rules)
		m.bindings = append(m.bindings, moduleBinding{
			Name: name,
			Path: n.Route.Path,
			Expr: transform.NewTemplate(path).Expression(),
		})
	case group:
		m.names[n] = m.namer.Name(tokens)
	}

	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		m.bind(pair.Value, append(tokens[:len(tokens):len(tokens)], pair.Key))
	}

	if group {
		m.bindings = append(m.bindings, moduleBinding{
			Name: m.names[n],
			Path: n.Path,
			Expr: m.object(n, 0) + " as const",
		})
	}
}

// object renders the nested object for n. Children that have a binding of
// their own are referenced by name; a child carrying both a page and
// children is rendered inline.
func (m *moduleBuilder) object(n *transform.Node, depth int) string {
	entries := n.Entries()
	if entries.Len() == 0 {
		return "{}"
	}

	indent := strings.Repeat("  ", depth+1)
	var b strings.Builder
	b.WriteString("{\n")
	for pair := entries.Oldest(); pair != nil; pair = pair.Next() {
		var value string
		switch v := pair.Value.(type) {
		case *scanner.Route:
			value = m.routeName(n, pair.Key)
		case *transform.Node:
			if v.Route == nil {
				value = m.names[v]
			} else {
				value = m.object(v, depth+1)
			}
		}
		fmt.Fprintf(&b, "%s%s: %s,\n", indent, pair.Key, value)
	}
	b.WriteString(strings.Repeat("  ", depth) + "}")
	return b.String()
}

// routeName resolves the export bound to the route rendered under key in n:
// either n's own promoted route or a leaf child.
func (m *moduleBuilder) routeName(n *transform.Node, key string) string {
	if child, ok := n.Children.Get(key); ok && child.IsLeaf() {
		return m.names[child]
	}
	return m.names[n]
}
