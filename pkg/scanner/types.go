// Package scanner infers Next.js routes from a project's file tree.
// It classifies path segments ([id], [...slug], [[...slug]], (group), (.), @slot)
// and builds one Route per logical route for the app and pages routers.
package scanner

// SegmentType represents the structural role of a path segment.
type SegmentType int

const (
	// SegmentStatic is a static path segment (e.g., "users")
	SegmentStatic SegmentType = iota
	// SegmentDynamic is a dynamic parameter (e.g., [id])
	SegmentDynamic
	// SegmentCatchAll is a catch-all parameter (e.g., [...slug])
	SegmentCatchAll
	// SegmentOptionalCatchAll is an optional catch-all (e.g., [[...slug]])
	SegmentOptionalCatchAll
	// SegmentGroup is a route group that doesn't affect the URL (e.g., (admin))
	SegmentGroup
	// SegmentIntercepting is an interception marker (e.g., (.), (..), (...))
	SegmentIntercepting
	// SegmentParallel is a parallel route slot (e.g., @modal)
	SegmentParallel
)

// String returns the lowercase name of the segment type.
func (t SegmentType) String() string {
	switch t {
	case SegmentDynamic:
		return "dynamic"
	case SegmentCatchAll:
		return "catch-all"
	case SegmentOptionalCatchAll:
		return "optional-catch-all"
	case SegmentGroup:
		return "group"
	case SegmentIntercepting:
		return "intercepting"
	case SegmentParallel:
		return "parallel"
	default:
		return "static"
	}
}

// Segment represents a classified path segment.
type Segment struct {
	// Raw is the original directory or file name (e.g., "[id]", "(admin)")
	Raw string
	// Name is the parameter name for dynamic segments (e.g., "id" from "[id]")
	Name string
	// Type is the segment type
	Type SegmentType
}

// IsDynamic reports whether the segment binds a parameter.
// Catch-all and optional catch-all segments are dynamic too.
func (s Segment) IsDynamic() bool {
	return s.Type == SegmentDynamic || s.IsCatchAll()
}

// IsCatchAll reports whether the segment is a catch-all or optional catch-all.
func (s Segment) IsCatchAll() bool {
	return s.Type == SegmentCatchAll || s.Type == SegmentOptionalCatchAll
}

// IsOptionalCatchAll reports whether the segment is an optional catch-all.
func (s Segment) IsOptionalCatchAll() bool { return s.Type == SegmentOptionalCatchAll }

// IsRouteGroup reports whether the segment is a route group.
func (s Segment) IsRouteGroup() bool { return s.Type == SegmentGroup }

// IsIntercepting reports whether the segment is an interception marker.
func (s Segment) IsIntercepting() bool { return s.Type == SegmentIntercepting }

// IsParallel reports whether the segment is a parallel route slot.
func (s Segment) IsParallel() bool { return s.Type == SegmentParallel }

// InURL reports whether the segment contributes to the URL path.
func (s Segment) InURL() bool {
	switch s.Type {
	case SegmentGroup, SegmentIntercepting, SegmentParallel:
		return false
	}
	return true
}

// RouterKind tags the file-convention family a route was inferred from.
type RouterKind string

const (
	// RouterApp is the nested-layout family (app/ directory).
	RouterApp RouterKind = "app"
	// RouterPages is the flat file-per-route family (pages/ directory).
	RouterPages RouterKind = "pages"
)

// Pattern classifies a route by its most general dynamic segment.
type Pattern string

const (
	PatternStatic           Pattern = "static"
	PatternDynamic          Pattern = "dynamic"
	PatternCatchAll         Pattern = "catch-all"
	PatternOptionalCatchAll Pattern = "optional-catch-all"
)

// ComponentType is the rendering environment of a component.
type ComponentType string

const (
	ComponentServer ComponentType = "server"
	ComponentClient ComponentType = "client"
)

// SpecialFiles records which app router special files exist for a route.
type SpecialFiles struct {
	Page     bool `json:"page" yaml:"page"`
	Layout   bool `json:"layout" yaml:"layout"`
	Loading  bool `json:"loading" yaml:"loading"`
	Error    bool `json:"error" yaml:"error"`
	NotFound bool `json:"notFound" yaml:"notFound"`
	Template bool `json:"template" yaml:"template"`
	Default  bool `json:"default" yaml:"default"`
	Route    bool `json:"route" yaml:"route"`
}

// Names returns the names of the special files present, in declaration order.
func (f SpecialFiles) Names() []string {
	var names []string
	for _, e := range []struct {
		name string
		ok   bool
	}{
		{"page", f.Page},
		{"layout", f.Layout},
		{"loading", f.Loading},
		{"error", f.Error},
		{"not-found", f.NotFound},
		{"template", f.Template},
		{"default", f.Default},
		{"route", f.Route},
	} {
		if e.ok {
			names = append(names, e.name)
		}
	}
	return names
}

// DataFetching records the data-fetching exports detected in a source file.
type DataFetching struct {
	GetStaticProps     bool `json:"getStaticProps,omitempty" yaml:"getStaticProps,omitempty"`
	GetStaticPaths     bool `json:"getStaticPaths,omitempty" yaml:"getStaticPaths,omitempty"`
	GetServerSideProps bool `json:"getServerSideProps,omitempty" yaml:"getServerSideProps,omitempty"`
	GenerateStatic     bool `json:"generateStaticParams,omitempty" yaml:"generateStaticParams,omitempty"`
	Revalidate         *int `json:"revalidate,omitempty" yaml:"revalidate,omitempty"`
}

// Empty reports whether no data-fetching method was detected.
func (d *DataFetching) Empty() bool {
	return d == nil || (!d.GetStaticProps && !d.GetStaticPaths && !d.GetServerSideProps &&
		!d.GenerateStatic && d.Revalidate == nil)
}

// Route is one logical route inferred from the file tree.
type Route struct {
	// Path is the normalized URL path; the root route is "/"
	Path string `json:"path" yaml:"path"`
	// FilePath is the source file backing the route
	FilePath string `json:"filePath" yaml:"filePath"`
	// Pattern is derived from the segment list
	Pattern Pattern `json:"pattern" yaml:"pattern"`
	// Router is the family the route was inferred from
	Router RouterKind `json:"router" yaml:"router"`
	// DynamicSegments are plain dynamic parameter names in order
	DynamicSegments []string `json:"dynamicSegments,omitempty" yaml:"dynamicSegments,omitempty"`
	// CatchAllSegment is the catch-all parameter name, if any
	CatchAllSegment string `json:"catchAllSegment,omitempty" yaml:"catchAllSegment,omitempty"`

	IsRouteGroup   bool     `json:"isRouteGroup,omitempty" yaml:"isRouteGroup,omitempty"`
	IsIntercepting bool     `json:"isIntercepting,omitempty" yaml:"isIntercepting,omitempty"`
	IsParallel     bool     `json:"isParallel,omitempty" yaml:"isParallel,omitempty"`
	RouteGroups    []string `json:"routeGroups,omitempty" yaml:"routeGroups,omitempty"`
	ParallelSlots  []string `json:"parallelSlots,omitempty" yaml:"parallelSlots,omitempty"`

	// app router
	SpecialFiles *SpecialFiles `json:"specialFiles,omitempty" yaml:"specialFiles,omitempty"`

	// pages router
	IsAPIRoute    bool   `json:"isApiRoute,omitempty" yaml:"isApiRoute,omitempty"`
	IsSpecialPage bool   `json:"isSpecialPage,omitempty" yaml:"isSpecialPage,omitempty"`
	SpecialPage   string `json:"specialPage,omitempty" yaml:"specialPage,omitempty"`

	// detailed analysis
	ComponentType ComponentType `json:"componentType,omitempty" yaml:"componentType,omitempty"`
	Exports       []string      `json:"exports,omitempty" yaml:"exports,omitempty"`
	DataFetching  *DataFetching `json:"dataFetching,omitempty" yaml:"dataFetching,omitempty"`

	// Metadata is merged in from an external source
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// IsDynamic reports whether the route has any dynamic segment.
func (r *Route) IsDynamic() bool {
	return r.Pattern != PatternStatic && r.Pattern != ""
}

// IsPage reports whether the route is backed by a primary page file,
// as opposed to a layout-only directory, a route handler, an API route,
// or an _app/_document/_error page.
func (r *Route) IsPage() bool {
	switch r.Router {
	case RouterApp:
		return r.SpecialFiles != nil && r.SpecialFiles.Page
	case RouterPages:
		if r.IsAPIRoute {
			return false
		}
		if r.IsSpecialPage && len(r.SpecialPage) > 0 && r.SpecialPage[0] == '_' {
			return false
		}
		return true
	}
	return false
}

// Param represents a route parameter.
type Param struct {
	// Name is the parameter name
	Name string `json:"name"`
	// IsCatchAll indicates if this is a catch-all parameter
	IsCatchAll bool `json:"isCatchAll,omitempty"`
	// IsOptional indicates if this is an optional catch-all
	IsOptional bool `json:"isOptional,omitempty"`
}

// Entry is one file-system entry yielded by the walker.
type Entry struct {
	// AbsPath is the absolute path of the entry
	AbsPath string
	// RelPath is the slash-separated path relative to the walk root
	RelPath string
	// IsDir is true for directories
	IsDir bool
	// Name is the base name
	Name string
}

// ScanResult holds the routes discovered by a builder.
type ScanResult struct {
	// Routes are the discovered routes in discovery order
	Routes []Route
	// Warnings are non-fatal issues encountered during scanning
	Warnings []Warning
}

// Warning represents a non-fatal issue during scanning.
type Warning struct {
	FilePath string `json:"filePath" yaml:"filePath"`
	Message  string `json:"message" yaml:"message"`
}
