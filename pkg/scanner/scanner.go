package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtensions are the file extensions recognized as route sources.
var SourceExtensions = []string{".tsx", ".jsx", ".js", ".ts"}

// appSpecialFiles maps app router special file names (without extension) to setters.
var appSpecialFiles = map[string]func(*SpecialFiles){
	"page":      func(f *SpecialFiles) { f.Page = true },
	"layout":    func(f *SpecialFiles) { f.Layout = true },
	"loading":   func(f *SpecialFiles) { f.Loading = true },
	"error":     func(f *SpecialFiles) { f.Error = true },
	"not-found": func(f *SpecialFiles) { f.NotFound = true },
	"template":  func(f *SpecialFiles) { f.Template = true },
	"default":   func(f *SpecialFiles) { f.Default = true },
	"route":     func(f *SpecialFiles) { f.Route = true },
}

// pagesSpecialFiles are the pages router files that are not ordinary routes.
var pagesSpecialFiles = map[string]bool{
	"_app":      true,
	"_document": true,
	"_error":    true,
	"404":       true,
	"500":       true,
}

// Options configures a Scanner.
type Options struct {
	// Ignore holds doublestar globs excluded from the walk
	Ignore []string
	// MaxDepth bounds directory recursion
	MaxDepth int
	// Inspector enables detailed analysis when non-nil
	Inspector Inspector
	// Logger receives warnings and debug traces; slog.Default() when nil
	Logger *slog.Logger
}

// Scanner builds routes for the app and pages routers.
type Scanner struct {
	opts Options
}

// NewScanner creates a new Scanner.
func NewScanner(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

func (s *Scanner) logger() *slog.Logger {
	if s.opts.Logger != nil {
		return s.opts.Logger
	}
	return slog.Default()
}

// splitExt returns the base name without a recognized source extension.
func splitExt(name string) (string, bool) {
	ext := filepath.Ext(name)
	for _, e := range SourceExtensions {
		if ext == e {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return name, false
}

// ScanApp walks an app directory and emits one route per directory that holds
// at least one special file.
func (s *Scanner) ScanApp(appDir string) *ScanResult {
	result := &ScanResult{}

	if _, err := os.Stat(appDir); err != nil {
		if !os.IsNotExist(err) {
			s.warn(result, appDir, err)
		}
		return result
	}

	walker := &Walker{
		Ignore:   s.opts.Ignore,
		MaxDepth: s.opts.MaxDepth,
		SkipDir:  IsPrivateFolder,
		Logger:   s.opts.Logger,
	}
	entries, warnings := walker.Walk(appDir)
	result.Warnings = append(result.Warnings, warnings...)

	type group struct {
		dir   string
		files []Entry
		found SpecialFiles
		page  string
	}
	groups := make(map[string]*group)
	var order []string

	for _, e := range entries {
		if e.IsDir {
			continue
		}
		base, ok := splitExt(e.Name)
		if !ok {
			continue
		}
		set, ok := appSpecialFiles[base]
		if !ok {
			continue
		}

		dir := path.Dir(e.RelPath)
		if dir == "." {
			dir = ""
		}
		g, ok := groups[dir]
		if !ok {
			g = &group{dir: dir}
			groups[dir] = g
			order = append(order, dir)
		}
		g.files = append(g.files, e)
		set(&g.found)
		if base == "page" && g.page == "" {
			g.page = e.AbsPath
		}
	}

	for _, dir := range order {
		g := groups[dir]
		segments := ParseSegments(dir)
		found := g.found

		route := Route{
			Path:         BuildURLPath(segments),
			FilePath:     g.files[0].AbsPath,
			Router:       RouterApp,
			SpecialFiles: &found,
		}
		applySegments(&route, segments)

		if s.opts.Inspector != nil {
			target := g.page
			if target == "" {
				target = route.FilePath
			}
			s.inspect(result, &route, target, true)
		}

		s.logger().Debug("found app route", "path", route.Path, "files", found.Names())
		result.Routes = append(result.Routes, route)
	}

	sortRoutes(result.Routes)
	s.detectConflicts(result)
	return result
}

// ScanPages walks a pages directory and emits one route per source file.
func (s *Scanner) ScanPages(pagesDir string) *ScanResult {
	result := &ScanResult{}

	if _, err := os.Stat(pagesDir); err != nil {
		if !os.IsNotExist(err) {
			s.warn(result, pagesDir, err)
		}
		return result
	}

	walker := &Walker{
		Ignore:   s.opts.Ignore,
		MaxDepth: s.opts.MaxDepth,
		SkipDir: func(name string) bool {
			return strings.HasPrefix(name, ".") || knownPrivateFolders[name]
		},
		Logger: s.opts.Logger,
	}
	entries, warnings := walker.Walk(pagesDir)
	result.Warnings = append(result.Warnings, warnings...)

	for _, e := range entries {
		if e.IsDir || !IsPagesSource(e.Name) {
			continue
		}

		rel, _ := splitExt(e.RelPath)
		route := Route{
			Path:     PagesURLPath(rel),
			FilePath: e.AbsPath,
			Router:   RouterPages,
		}

		segments := parsePagesSegments(strings.TrimPrefix(route.Path, "/"))
		applySegments(&route, segments)

		if len(segments) > 0 && segments[0].Raw == "api" {
			route.IsAPIRoute = true
		}
		if base, _ := splitExt(e.Name); pagesSpecialFiles[base] && path.Dir(e.RelPath) == "." {
			route.IsSpecialPage = true
			route.SpecialPage = base
		}

		if s.opts.Inspector != nil {
			s.inspect(result, &route, e.AbsPath, false)
		}

		s.logger().Debug("found pages route", "path", route.Path, "api", route.IsAPIRoute)
		result.Routes = append(result.Routes, route)
	}

	sortRoutes(result.Routes)
	s.detectConflicts(result)
	return result
}

// IsPagesSource reports whether a file name is a pages router source file.
// Declaration files and test/spec files are excluded.
func IsPagesSource(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".d.ts") {
		return false
	}
	if strings.Contains(name, ".test.") || strings.Contains(name, ".spec.") {
		return false
	}
	_, ok := splitExt(name)
	return ok
}

// PagesURLPath converts an extension-less path relative to pages/ into a URL path.
// An index basename maps to its parent.
func PagesURLPath(rel string) string {
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	if rel == "index" {
		rel = ""
	}
	rel = strings.TrimSuffix(rel, "/index")

	if rel == "" {
		return "/"
	}
	return "/" + rel
}

// parsePagesSegments classifies segments without the app router only roles.
func parsePagesSegments(rel string) []Segment {
	segments := ParseSegments(rel)
	for i, seg := range segments {
		if !seg.InURL() {
			segments[i] = Segment{Raw: seg.Raw, Name: seg.Raw, Type: SegmentStatic}
		}
	}
	return segments
}

func (s *Scanner) inspect(result *ScanResult, route *Route, file string, withComponent bool) {
	inspection, err := s.opts.Inspector.Inspect(file)
	if err != nil {
		s.warn(result, file, err)
		return
	}
	if withComponent {
		route.ComponentType = inspection.ComponentType
	}
	route.Exports = inspection.Exports
	route.DataFetching = inspection.DataFetching
}

func (s *Scanner) warn(result *ScanResult, file string, err error) {
	result.Warnings = append(result.Warnings, Warning{FilePath: file, Message: err.Error()})
	s.logger().Warn("scan failed", "path", file, "err", err)
}

// detectConflicts records a warning when two ordinary routes share a URL path.
// Parallel slots and interception routes legitimately reuse paths.
func (s *Scanner) detectConflicts(result *ScanResult) {
	seen := make(map[string]string)
	for _, r := range result.Routes {
		if r.IsParallel || r.IsIntercepting {
			continue
		}
		if existing, ok := seen[r.Path]; ok {
			msg := fmt.Sprintf("duplicate route %s (also defined by %s)", r.Path, existing)
			result.Warnings = append(result.Warnings, Warning{FilePath: r.FilePath, Message: msg})
			s.logger().Warn("duplicate route", "path", r.Path, "file", r.FilePath, "existing", existing)
			continue
		}
		seen[r.Path] = r.FilePath
	}
}

func sortRoutes(routes []Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
}
