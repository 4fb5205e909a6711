package transform

import (
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// Template is a route path with parameter placeholders.
type Template struct {
	// Path is the raw (possibly prefix-stripped) path, e.g. /blog/[slug]
	Path string
	// Params are the parameter names in path order
	Params []string
}

// NewTemplate parses the placeholders of path.
func NewTemplate(path string) Template {
	t := Template{Path: path}
	for _, seg := range scanner.ParseSegments(strings.Trim(path, "/")) {
		if seg.IsDynamic() {
			t.Params = append(t.Params, seg.Name)
		}
	}
	return t
}

// IsDynamic reports whether the template has parameters.
func (t Template) IsDynamic() bool {
	return len(t.Params) > 0
}

// Literal returns the template literal with each placeholder replaced by an
// interpolation slot, e.g. `/blog/${slug}`.
func (t Template) Literal() string {
	var b strings.Builder
	b.WriteByte('`')
	if t.Path == "/" || t.Path == "" {
		b.WriteByte('/')
	}
	for _, seg := range scanner.ParseSegments(strings.Trim(t.Path, "/")) {
		b.WriteByte('/')
		if seg.IsDynamic() {
			b.WriteString("${" + paramBinding(seg.Name) + "}")
			continue
		}
		b.WriteString(escapeTemplateText(seg.Raw))
	}
	b.WriteByte('`')
	return b.String()
}

// Signature returns the destructured parameter list with its string type,
// e.g. { slug }: { slug: string }.
func (t Template) Signature() string {
	binds := make([]string, len(t.Params))
	types := make([]string, len(t.Params))
	for i, p := range t.Params {
		key := propertyKey(p)
		if b := paramBinding(p); b != p {
			binds[i] = key + ": " + b
		} else {
			binds[i] = p
		}
		types[i] = key + ": string"
	}
	return "{ " + strings.Join(binds, ", ") + " }: { " + strings.Join(types, "; ") + " }"
}

// Function returns a callable that builds the path and exposes the raw
// template through its path field:
//
//	Object.assign(({ slug }: { slug: string }) => `/blog/${slug}`, { path: "/blog/[slug]" })
func (t Template) Function() string {
	return "Object.assign((" + t.Signature() + ") => " + t.Literal() +
		", { path: " + strconv.Quote(t.Path) + " })"
}

// Expression returns Function for dynamic paths and a quoted string otherwise.
func (t Template) Expression() string {
	if t.IsDynamic() {
		return t.Function()
	}
	return strconv.Quote(t.Path)
}

func paramBinding(name string) string {
	return SanitizeIdentifier(name)
}

func propertyKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}

func escapeTemplateText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", "\\${")
}
