package transform

import (
	"fmt"
	"regexp"
	"strings"
)

// regexDelim marks a strip rule as a regular expression: //pattern//.
const regexDelim = "//"

// StripRule removes a leading part of a route path.
type StripRule struct {
	Prefix string
	Re     *regexp.Regexp
}

// ParseStripRules compiles literal and //regex// strip rules in order.
func ParseStripRules(rules []string) ([]StripRule, error) {
	out := make([]StripRule, 0, len(rules))
	for _, r := range rules {
		if len(r) > 2*len(regexDelim) && strings.HasPrefix(r, regexDelim) && strings.HasSuffix(r, regexDelim) {
			pattern := strings.TrimSuffix(strings.TrimPrefix(r, regexDelim), regexDelim)
			re, err := regexp.Compile("^(?:" + pattern + ")")
			if err != nil {
				return nil, fmt.Errorf("invalid strip pattern %q: %w", r, err)
			}
			out = append(out, StripRule{Re: re})
			continue
		}
		if r == "" {
			continue
		}
		out = append(out, StripRule{Prefix: r})
	}
	return out, nil
}

// Apply returns path without the rule's prefix and whether the rule matched.
func (r StripRule) Apply(path string) (string, bool) {
	if r.Re != nil {
		loc := r.Re.FindStringIndex(path)
		if loc == nil {
			return path, false
		}
		return path[loc[1]:], true
	}
	if !strings.HasPrefix(path, r.Prefix) {
		return path, false
	}
	return strings.TrimPrefix(path, r.Prefix), true
}

// StripPrefix applies the first matching rule and re-anchors the result at /.
func StripPrefix(path string, rules []StripRule) string {
	for _, r := range rules {
		if stripped, ok := r.Apply(path); ok {
			return anchor(stripped)
		}
	}
	return path
}

func anchor(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
