package scanner

import (
	"encoding/json"
	"strings"
)

// interceptMarkers are the inner texts of interception segments: (.), (..), (...), (....)
var interceptMarkers = map[string]bool{
	".":    true,
	"..":   true,
	"...":  true,
	"....": true,
}

// knownPrivateFolders contains folder names that should be skipped
var knownPrivateFolders = map[string]bool{
	"node_modules": true,
	".git":         true,
	".next":        true,
}

// ParseSegment classifies a path segment. It is total: anything that is not
// bracketed, parenthesized or @-prefixed is a static segment.
func ParseSegment(name string) Segment {
	seg := Segment{Raw: name}

	// Interception markers share the group syntax, so test them first
	if isWrapped(name, "(", ")") {
		inner := name[1 : len(name)-1]
		if interceptMarkers[inner] {
			seg.Type = SegmentIntercepting
			return seg
		}
		seg.Type = SegmentGroup
		return seg
	}

	// Parallel route slot: @modal
	if strings.HasPrefix(name, "@") {
		seg.Type = SegmentParallel
		return seg
	}

	if isWrapped(name, "[", "]") {
		inner := name[1 : len(name)-1]

		// Optional catch-all: [[...slug]]
		if strings.HasPrefix(inner, "[...") && strings.HasSuffix(inner, "]") {
			seg.Name = strings.TrimSuffix(strings.TrimPrefix(inner, "[..."), "]")
			seg.Type = SegmentOptionalCatchAll
			return seg
		}

		// Catch-all: [...slug]
		if strings.HasPrefix(inner, "...") {
			seg.Name = strings.TrimPrefix(inner, "...")
			seg.Type = SegmentCatchAll
			return seg
		}

		// Dynamic: [id]
		seg.Name = inner
		seg.Type = SegmentDynamic
		return seg
	}

	seg.Name = name
	seg.Type = SegmentStatic
	return seg
}

func isWrapped(s, open, close string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, open) && strings.HasSuffix(s, close)
}

// MarshalJSON encodes the segment with one boolean per role.
func (s Segment) MarshalJSON() ([]byte, error) {
	out := struct {
		Name               string `json:"name"`
		IsDynamic          bool   `json:"isDynamic"`
		IsCatchAll         bool   `json:"isCatchAll"`
		IsOptionalCatchAll bool   `json:"isOptionalCatchAll"`
		IsRouteGroup       bool   `json:"isRouteGroup"`
		IsIntercepting     bool   `json:"isIntercepting"`
		IsParallel         bool   `json:"isParallel"`
		ParamName          string `json:"paramName,omitempty"`
	}{
		Name:               s.Raw,
		IsDynamic:          s.IsDynamic(),
		IsCatchAll:         s.IsCatchAll(),
		IsOptionalCatchAll: s.IsOptionalCatchAll(),
		IsRouteGroup:       s.IsRouteGroup(),
		IsIntercepting:     s.IsIntercepting(),
		IsParallel:         s.IsParallel(),
	}
	if s.IsDynamic() {
		out.ParamName = s.Name
	}
	return json.Marshal(out)
}

// IsPrivateFolder checks if a directory should be skipped during scanning.
// Hidden folders and app router private folders (_components) never route.
func IsPrivateFolder(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	return knownPrivateFolders[name]
}

// ParseSegments splits a slash-separated relative path and classifies each part.
func ParseSegments(rel string) []Segment {
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return nil
	}

	parts := strings.Split(rel, "/")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, ParseSegment(part))
	}
	return segments
}

// BuildURLPath builds the URL path from segments.
// Groups, interception markers and parallel slots are excluded from the URL.
func BuildURLPath(segments []Segment) string {
	var parts []string
	for _, seg := range segments {
		if !seg.InURL() {
			continue
		}
		parts = append(parts, seg.Raw)
	}

	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// DerivePattern resolves the route pattern across the full segment list:
// optional catch-all dominates catch-all dominates dynamic dominates static.
func DerivePattern(segments []Segment) Pattern {
	pattern := PatternStatic
	for _, seg := range segments {
		switch seg.Type {
		case SegmentOptionalCatchAll:
			return PatternOptionalCatchAll
		case SegmentCatchAll:
			pattern = PatternCatchAll
		case SegmentDynamic:
			if pattern == PatternStatic {
				pattern = PatternDynamic
			}
		}
	}
	return pattern
}

// ExtractParams extracts parameter information from segments.
func ExtractParams(segments []Segment) []Param {
	var params []Param
	for _, seg := range segments {
		switch seg.Type {
		case SegmentDynamic:
			params = append(params, Param{Name: seg.Name})
		case SegmentCatchAll:
			params = append(params, Param{Name: seg.Name, IsCatchAll: true})
		case SegmentOptionalCatchAll:
			params = append(params, Param{Name: seg.Name, IsCatchAll: true, IsOptional: true})
		}
	}
	return params
}

// applySegments fills the pattern, parameter and role fields of a route.
func applySegments(route *Route, segments []Segment) {
	route.Pattern = DerivePattern(segments)
	for _, seg := range segments {
		switch seg.Type {
		case SegmentDynamic:
			route.DynamicSegments = append(route.DynamicSegments, seg.Name)
		case SegmentCatchAll, SegmentOptionalCatchAll:
			route.CatchAllSegment = seg.Name
		case SegmentGroup:
			route.IsRouteGroup = true
			route.RouteGroups = append(route.RouteGroups, seg.Raw[1:len(seg.Raw)-1])
		case SegmentIntercepting:
			route.IsIntercepting = true
		case SegmentParallel:
			route.IsParallel = true
			route.ParallelSlots = append(route.ParallelSlots, strings.TrimPrefix(seg.Raw, "@"))
		}
	}
}
