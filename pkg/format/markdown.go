package format

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

const notAvailable = "N/A"

// FormatMarkdown renders a Markdown report: project info, config,
// statistics, then one section per router family.
func FormatMarkdown(routes []scanner.Route, info *project.Info, opts Options) (any, error) {
	styled := StyledRoutes(routes, opts.PathStyle)
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", markdownTitle(info, opts))

	writeProject(&b, info)
	if info != nil && info.Config != nil {
		writeConfig(&b, info.Config)
	}
	writeStats(&b, styled)

	for _, family := range []struct {
		kind  scanner.RouterKind
		title string
	}{
		{scanner.RouterApp, "App Router"},
		{scanner.RouterPages, "Pages Router"},
	} {
		var group []scanner.Route
		for _, r := range styled {
			if r.Router == family.kind {
				group = append(group, r)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", family.title)
		for i := range group {
			writeRoute(&b, &group[i], info)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func markdownTitle(info *project.Info, opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	if info != nil && info.Package != nil && info.Package.Name != "" {
		return info.Package.Name + " Routes"
	}
	return "Routes"
}

func writeProject(b *strings.Builder, info *project.Info) {
	b.WriteString("## Project\n\n")
	if info == nil {
		b.WriteString("- **Framework:** N/A\n\n")
		return
	}
	item(b, "Framework", info.Framework)
	item(b, "Version", info.Version)
	item(b, "Router", info.Router)
	item(b, "Root", code(info.RootDir))

	var dirs []string
	for _, k := range sortedKeys(info.Directories) {
		dirs = append(dirs, fmt.Sprintf("%s (%s)", k, code(relTo(info.RootDir, info.Directories[k]))))
	}
	item(b, "Directories", strings.Join(dirs, ", "))
	b.WriteString("\n")
}

func writeConfig(b *strings.Builder, cfg *project.NextConfig) {
	b.WriteString("## Configuration\n\n")
	item(b, "File", code(cfg.File))
	item(b, "Base path", cfg.BasePath)
	item(b, "Dist dir", cfg.DistDir)
	if cfg.TrailingSlash != nil {
		item(b, "Trailing slash", fmt.Sprintf("%t", *cfg.TrailingSlash))
	} else {
		item(b, "Trailing slash", "")
	}
	item(b, "Image domains", strings.Join(cfg.ImageDomains, ", "))
	item(b, "Middleware", yesNo(cfg.HasMiddleware))

	var flags []string
	for _, k := range sortedKeys(cfg.Experimental) {
		flags = append(flags, fmt.Sprintf("%s=%t", k, cfg.Experimental[k]))
	}
	item(b, "Experimental", strings.Join(flags, ", "))
	b.WriteString("\n")
}

func writeStats(b *strings.Builder, routes []scanner.Route) {
	var app, pages, api, dynamic int
	for i := range routes {
		r := &routes[i]
		switch r.Router {
		case scanner.RouterApp:
			app++
		case scanner.RouterPages:
			pages++
		}
		if r.IsAPIRoute {
			api++
		}
		if r.IsDynamic() {
			dynamic++
		}
	}

	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(b, "| Total routes | %d |\n", len(routes))
	fmt.Fprintf(b, "| App router | %d |\n", app)
	fmt.Fprintf(b, "| Pages router | %d |\n", pages)
	fmt.Fprintf(b, "| API routes | %d |\n", api)
	fmt.Fprintf(b, "| Dynamic routes | %d |\n\n", dynamic)
}

func writeRoute(b *strings.Builder, r *scanner.Route, info *project.Info) {
	fmt.Fprintf(b, "### %s\n\n", code(r.Path))

	item(b, "Pattern", string(r.Pattern))
	root := ""
	if info != nil {
		root = info.RootDir
	}
	item(b, "File", code(relTo(root, r.FilePath)))
	item(b, "Dynamic segments", strings.Join(r.DynamicSegments, ", "))
	item(b, "Catch-all segment", r.CatchAllSegment)

	switch r.Router {
	case scanner.RouterApp:
		var names []string
		if r.SpecialFiles != nil {
			names = r.SpecialFiles.Names()
		}
		item(b, "Special files", strings.Join(names, ", "))
		if r.IsRouteGroup {
			item(b, "Route groups", strings.Join(r.RouteGroups, ", "))
		}
		if r.IsParallel {
			item(b, "Parallel slots", strings.Join(r.ParallelSlots, ", "))
		}
		if r.IsIntercepting {
			item(b, "Intercepting", "yes")
		}
	case scanner.RouterPages:
		item(b, "API route", yesNo(r.IsAPIRoute))
		item(b, "Special page", r.SpecialPage)
	}

	item(b, "Component", string(r.ComponentType))
	if len(r.Exports) > 0 {
		item(b, "Exports", strings.Join(r.Exports, ", "))
	}
	if !r.DataFetching.Empty() {
		item(b, "Data fetching", dataFetching(r.DataFetching))
	}

	if len(r.Metadata) > 0 {
		b.WriteString("- **Metadata:**\n")
		for _, k := range sortedKeys(r.Metadata) {
			fmt.Fprintf(b, "  - %s: %s\n", k, metadataValue(r.Metadata[k]))
		}
	}
	b.WriteString("\n")
}

func dataFetching(d *scanner.DataFetching) string {
	var parts []string
	if d.GetStaticProps {
		parts = append(parts, "getStaticProps")
	}
	if d.GetStaticPaths {
		parts = append(parts, "getStaticPaths")
	}
	if d.GetServerSideProps {
		parts = append(parts, "getServerSideProps")
	}
	if d.GenerateStatic {
		parts = append(parts, "generateStaticParams")
	}
	if d.Revalidate != nil {
		parts = append(parts, fmt.Sprintf("revalidate=%d", *d.Revalidate))
	}
	return strings.Join(parts, ", ")
}

func item(b *strings.Builder, label, value string) {
	if value == "" || value == "``" {
		value = notAvailable
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func code(s string) string {
	return "`" + s + "`"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func relTo(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

func metadataValue(v any) string {
	switch t := v.(type) {
	case nil:
		return notAvailable
	case string:
		return t
	case map[string]any, []any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return code(string(data))
	default:
		return fmt.Sprint(t)
	}
}
