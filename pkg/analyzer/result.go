package analyzer

import (
	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// Result is the outcome of one analysis.
type Result struct {
	Project  *project.Info     `json:"project"`
	Routes   []scanner.Route   `json:"routes"`
	Warnings []scanner.Warning `json:"warnings,omitempty"`
}

func (r *Result) filter(keep func(*scanner.Route) bool) []scanner.Route {
	var out []scanner.Route
	for i := range r.Routes {
		if keep(&r.Routes[i]) {
			out = append(out, r.Routes[i])
		}
	}
	return out
}

// ByRouter returns the routes of one router family.
func (r *Result) ByRouter(kind scanner.RouterKind) []scanner.Route {
	return r.filter(func(rt *scanner.Route) bool { return rt.Router == kind })
}

// APIRoutes returns routes flagged as API routes.
func (r *Result) APIRoutes() []scanner.Route {
	return r.filter(func(rt *scanner.Route) bool { return rt.IsAPIRoute })
}

// SpecialPages returns routes flagged as special pages.
func (r *Result) SpecialPages() []scanner.Route {
	return r.filter(func(rt *scanner.Route) bool { return rt.IsSpecialPage })
}

// DynamicRoutes returns routes whose pattern is not static.
func (r *Result) DynamicRoutes() []scanner.Route {
	return r.filter(func(rt *scanner.Route) bool { return rt.Pattern != scanner.PatternStatic })
}

// StaticRoutes returns routes whose pattern is static.
func (r *Result) StaticRoutes() []scanner.Route {
	return r.filter(func(rt *scanner.Route) bool { return rt.Pattern == scanner.PatternStatic })
}

// Find returns the first route with the given path, optionally restricted to a router.
func (r *Result) Find(path string, kind scanner.RouterKind) (*scanner.Route, bool) {
	for i := range r.Routes {
		if r.Routes[i].Path == path && (kind == "" || r.Routes[i].Router == kind) {
			return &r.Routes[i], true
		}
	}
	return nil, false
}
