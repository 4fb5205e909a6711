package format

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// FormatRaw returns the composed document without serializing it.
func FormatRaw(routes []scanner.Route, info *project.Info, opts Options) (any, error) {
	return Compose(routes, info, opts)
}

// FormatJSON serializes the composed document. Indent 0 renders a single line.
func FormatJSON(routes []scanner.Route, info *project.Info, opts Options) (any, error) {
	doc, err := Compose(routes, info, opts)
	if err != nil {
		return nil, err
	}
	return encodeJSON(doc, opts.Indent)
}

// FormatYAML serializes the composed document as YAML.
func FormatYAML(routes []scanner.Route, info *project.Info, opts Options) (any, error) {
	doc, err := Compose(routes, info, opts)
	if err != nil {
		return nil, err
	}

	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return b.String(), nil
}
