package transform

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// PathStyle selects how dynamic segments are displayed.
type PathStyle string

const (
	// StyleNext keeps bracket syntax: /blog/[slug]
	StyleNext PathStyle = "next"
	// StyleColon uses router-style params: /blog/:slug, /docs/*slug
	StyleColon PathStyle = "colon"
	// StyleBraces uses OpenAPI-style params: /blog/{slug}, /docs/{slug...}
	StyleBraces PathStyle = "braces"
)

// PathStyles lists the supported styles.
var PathStyles = []PathStyle{StyleNext, StyleColon, StyleBraces}

// ParsePathStyle validates a style name. The empty string means StyleNext.
func ParsePathStyle(s string) (PathStyle, error) {
	if s == "" {
		return StyleNext, nil
	}
	for _, st := range PathStyles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown path style %q", s)
}

// FormatPath renders path in the given style.
func FormatPath(path string, style PathStyle) string {
	if style == StyleNext || style == "" || path == "/" {
		return path
	}

	segs := scanner.ParseSegments(strings.Trim(path, "/"))
	parts := make([]string, len(segs))
	for i, seg := range segs {
		parts[i] = styleSegment(seg, style)
	}
	return "/" + strings.Join(parts, "/")
}

func styleSegment(seg scanner.Segment, style PathStyle) string {
	switch style {
	case StyleColon:
		switch {
		case seg.IsCatchAll():
			return "*" + seg.Name
		case seg.IsDynamic():
			return ":" + seg.Name
		}
	case StyleBraces:
		switch {
		case seg.IsCatchAll():
			return "{" + seg.Name + "...}"
		case seg.IsDynamic():
			return "{" + seg.Name + "}"
		}
	}
	return seg.Raw
}
