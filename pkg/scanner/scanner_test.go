package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFiles creates each relative path under root with the given content.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
}

func routePaths(routes []Route) []string {
	paths := make([]string, len(routes))
	for i, r := range routes {
		paths[i] = r.Path
	}
	return paths
}

func TestScanApp_Basic(t *testing.T) {
	appDir := filepath.Join(t.TempDir(), "app")
	writeFiles(t, appDir, map[string]string{
		"page.tsx":             "export default function Home() {}",
		"blog/page.tsx":        "export default function Blog() {}",
		"blog/[slug]/page.tsx": "export default function Post() {}",
	})

	result := NewScanner(Options{}).ScanApp(appDir)

	if got := strings.Join(routePaths(result.Routes), ","); got != "/,/blog,/blog/[slug]" {
		t.Fatalf("Paths = %s", got)
	}

	wantPatterns := []Pattern{PatternStatic, PatternStatic, PatternDynamic}
	for i, r := range result.Routes {
		if r.Pattern != wantPatterns[i] {
			t.Errorf("%s pattern = %q, want %q", r.Path, r.Pattern, wantPatterns[i])
		}
		if r.Router != RouterApp {
			t.Errorf("%s router = %q", r.Path, r.Router)
		}
		if r.SpecialFiles == nil || !r.SpecialFiles.Page {
			t.Errorf("%s should have a page", r.Path)
		}
	}

	post := result.Routes[2]
	if len(post.DynamicSegments) != 1 || post.DynamicSegments[0] != "slug" {
		t.Errorf("DynamicSegments = %v, want [slug]", post.DynamicSegments)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", result.Warnings)
	}
}

func TestScanApp_SpecialFilesGrouped(t *testing.T) {
	appDir := filepath.Join(t.TempDir(), "app")
	writeFiles(t, appDir, map[string]string{
		"dashboard/layout.tsx":    "",
		"dashboard/loading.tsx":   "",
		"dashboard/page.tsx":      "",
		"dashboard/error.tsx":     "",
		"dashboard/not-found.tsx": "",
		"dashboard/helpers.ts":    "",
		"api/health/route.ts":     "",
	})

	result := NewScanner(Options{}).ScanApp(appDir)
	if len(result.Routes) != 2 {
		t.Fatalf("Expected 2 routes, got %d: %v", len(result.Routes), routePaths(result.Routes))
	}

	api := result.Routes[0]
	if api.Path != "/api/health" || !api.SpecialFiles.Route || api.SpecialFiles.Page {
		t.Errorf("Unexpected api route: %+v", api)
	}

	dash := result.Routes[1]
	files := dash.SpecialFiles
	if !files.Layout || !files.Loading || !files.Page || !files.Error || !files.NotFound {
		t.Errorf("Missing special files: %+v", files)
	}
	if files.Template || files.Default || files.Route {
		t.Errorf("Unexpected special files: %+v", files)
	}
	// first file found in name order backs the route
	if filepath.Base(dash.FilePath) != "error.tsx" {
		t.Errorf("FilePath = %s, want error.tsx", dash.FilePath)
	}
}

func TestScanApp_GroupsParallelIntercepting(t *testing.T) {
	appDir := filepath.Join(t.TempDir(), "app")
	writeFiles(t, appDir, map[string]string{
		"(marketing)/about/page.tsx":        "",
		"dashboard/@analytics/page.tsx":     "",
		"feed/(..)/photo/[id]/page.tsx":     "",
		"_components/button/page.tsx":       "",
		"shop/[[...filters]]/page.jsx":      "",
		"docs/[...slug]/page.js":            "",
		"[lang]/settings/[section]/page.ts": "",
	})

	result := NewScanner(Options{}).ScanApp(appDir)

	byPath := make(map[string]Route)
	for _, r := range result.Routes {
		byPath[r.Path] = r
	}

	if _, ok := byPath["/button"]; ok {
		t.Error("Private folder should be skipped")
	}
	if r := byPath["/about"]; !r.IsRouteGroup || r.RouteGroups[0] != "marketing" {
		t.Errorf("Expected /about in group marketing, got %+v", r)
	}
	if r := byPath["/dashboard"]; !r.IsParallel {
		t.Errorf("Expected /dashboard to be parallel, got %+v", r)
	}
	if r := byPath["/feed/photo/[id]"]; !r.IsIntercepting || r.Pattern != PatternDynamic {
		t.Errorf("Expected intercepting dynamic route, got %+v", r)
	}
	if r := byPath["/shop/[[...filters]]"]; r.Pattern != PatternOptionalCatchAll || r.CatchAllSegment != "filters" {
		t.Errorf("Unexpected optional catch-all: %+v", r)
	}
	if r := byPath["/docs/[...slug]"]; r.Pattern != PatternCatchAll || len(r.DynamicSegments) != 0 {
		t.Errorf("Unexpected catch-all: %+v", r)
	}
	if r := byPath["/[lang]/settings/[section]"]; strings.Join(r.DynamicSegments, ",") != "lang,section" {
		t.Errorf("Unexpected dynamic segments: %v", r.DynamicSegments)
	}
}

func TestScanApp_MissingDir(t *testing.T) {
	result := NewScanner(Options{}).ScanApp(filepath.Join(t.TempDir(), "app"))
	if len(result.Routes) != 0 || len(result.Warnings) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}

func TestScanApp_DuplicateRouteWarns(t *testing.T) {
	appDir := filepath.Join(t.TempDir(), "app")
	writeFiles(t, appDir, map[string]string{
		"(a)/about/page.tsx": "",
		"(b)/about/page.tsx": "",
	})

	result := NewScanner(Options{}).ScanApp(appDir)
	if len(result.Routes) != 2 {
		t.Fatalf("Both routes should be kept, got %d", len(result.Routes))
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "duplicate route /about") {
		t.Errorf("Expected duplicate warning, got %v", result.Warnings)
	}
}

func TestScanApp_Detailed(t *testing.T) {
	appDir := filepath.Join(t.TempDir(), "app")
	writeFiles(t, appDir, map[string]string{
		"layout.tsx": "export default function Layout() {}",
		"page.tsx":   "'use client'\n\nexport default function Home() {}\n",
		"blog/page.tsx": `import { db } from "@/lib/db"

export const revalidate = 60
export async function generateStaticParams() { return [] }
export default async function Blog() {}
`,
	})

	inspector, err := NewRegexInspector(0)
	if err != nil {
		t.Fatalf("NewRegexInspector failed: %v", err)
	}
	result := NewScanner(Options{Inspector: inspector}).ScanApp(appDir)
	if len(result.Routes) != 2 {
		t.Fatalf("Expected 2 routes, got %d", len(result.Routes))
	}

	home, blog := result.Routes[0], result.Routes[1]
	if home.ComponentType != ComponentClient {
		t.Errorf("Home should be a client component, got %q", home.ComponentType)
	}
	if blog.ComponentType != ComponentServer {
		t.Errorf("Blog should be a server component, got %q", blog.ComponentType)
	}
	if blog.DataFetching == nil || blog.DataFetching.Revalidate == nil || *blog.DataFetching.Revalidate != 60 {
		t.Errorf("Expected revalidate 60, got %+v", blog.DataFetching)
	}
	if !blog.DataFetching.GenerateStatic {
		t.Error("Expected generateStaticParams to be detected")
	}
}

func TestScanPages_Basic(t *testing.T) {
	pagesDir := filepath.Join(t.TempDir(), "pages")
	writeFiles(t, pagesDir, map[string]string{
		"index.tsx":     "",
		"api/users.ts":  "",
		"blog/index.js": "",
		"blog/[id].tsx": "",
		"_app.tsx":      "",
		"404.tsx":       "",
		"types.d.ts":    "",
		"page.test.tsx": "",
		"foo.spec.ts":   "",
		"styles.css":    "",
	})

	result := NewScanner(Options{}).ScanPages(pagesDir)

	if got := strings.Join(routePaths(result.Routes), ","); got != "/,/404,/_app,/api/users,/blog,/blog/[id]" {
		t.Fatalf("Paths = %s", got)
	}

	byPath := make(map[string]Route)
	for _, r := range result.Routes {
		byPath[r.Path] = r
		if r.Router != RouterPages {
			t.Errorf("%s router = %q", r.Path, r.Router)
		}
	}

	if !byPath["/api/users"].IsAPIRoute {
		t.Error("/api/users should be an API route")
	}
	if byPath["/"].IsAPIRoute {
		t.Error("/ should not be an API route")
	}
	if r := byPath["/_app"]; !r.IsSpecialPage || r.SpecialPage != "_app" {
		t.Errorf("Unexpected _app route: %+v", r)
	}
	if r := byPath["/404"]; !r.IsSpecialPage || r.SpecialPage != "404" {
		t.Errorf("Unexpected 404 route: %+v", r)
	}
	if r := byPath["/blog/[id]"]; r.Pattern != PatternDynamic || r.DynamicSegments[0] != "id" {
		t.Errorf("Unexpected dynamic route: %+v", r)
	}
}

func TestScanPages_NoGroupConcept(t *testing.T) {
	pagesDir := filepath.Join(t.TempDir(), "pages")
	writeFiles(t, pagesDir, map[string]string{
		"(legacy)/about.tsx": "",
	})

	result := NewScanner(Options{}).ScanPages(pagesDir)
	if len(result.Routes) != 1 || result.Routes[0].Path != "/(legacy)/about" {
		t.Fatalf("Unexpected routes: %v", routePaths(result.Routes))
	}
	if result.Routes[0].IsRouteGroup {
		t.Error("Pages routes have no route groups")
	}
}

func TestScanPages_Detailed(t *testing.T) {
	pagesDir := filepath.Join(t.TempDir(), "pages")
	writeFiles(t, pagesDir, map[string]string{
		"posts/[id].tsx": `export async function getStaticPaths() {}
export const getStaticProps = async () => ({ props: {} })
export default function Post() {}
`,
	})

	inspector, _ := NewRegexInspector(8)
	result := NewScanner(Options{Inspector: inspector}).ScanPages(pagesDir)
	if len(result.Routes) != 1 {
		t.Fatalf("Expected 1 route, got %d", len(result.Routes))
	}

	r := result.Routes[0]
	if r.ComponentType != "" {
		t.Errorf("Pages routes are not classified, got %q", r.ComponentType)
	}
	if r.DataFetching == nil || !r.DataFetching.GetStaticPaths || !r.DataFetching.GetStaticProps {
		t.Errorf("Expected static data fetching, got %+v", r.DataFetching)
	}
}

func TestPagesURLPath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"index", "/"},
		{"", "/"},
		{"about", "/about"},
		{"blog/index", "/blog"},
		{"blog/[slug]", "/blog/[slug]"},
		{"api/users/index", "/api/users"},
	}

	for _, tt := range tests {
		if got := PagesURLPath(tt.rel); got != tt.want {
			t.Errorf("PagesURLPath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestRouteIsPage(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		want  bool
	}{
		{"app page", Route{Router: RouterApp, SpecialFiles: &SpecialFiles{Page: true}}, true},
		{"app layout only", Route{Router: RouterApp, SpecialFiles: &SpecialFiles{Layout: true}}, false},
		{"app handler", Route{Router: RouterApp, SpecialFiles: &SpecialFiles{Route: true}}, false},
		{"pages page", Route{Router: RouterPages}, true},
		{"pages api", Route{Router: RouterPages, IsAPIRoute: true}, false},
		{"pages _app", Route{Router: RouterPages, IsSpecialPage: true, SpecialPage: "_app"}, false},
		{"pages 404", Route{Router: RouterPages, IsSpecialPage: true, SpecialPage: "404"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.route.IsPage(); got != tt.want {
				t.Errorf("IsPage() = %v, want %v", got, tt.want)
			}
		})
	}
}
