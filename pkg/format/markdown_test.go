package format

import (
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

func TestFormatMarkdown_Sections(t *testing.T) {
	info := testInfo()
	trailing := true
	info.Config = &project.NextConfig{
		File:          "next.config.js",
		TrailingSlash: &trailing,
		ImageDomains:  []string{"cdn.example.com"},
	}

	out, err := FormatMarkdown(testRoutes(), info, Options{})
	if err != nil {
		t.Fatal(err)
	}
	md := out.(string)

	order := []string{
		"# shop Routes",
		"## Project",
		"## Configuration",
		"## Statistics",
		"## App Router",
		"## Pages Router",
	}
	last := -1
	for _, h := range order {
		i := strings.Index(md, h)
		if i < 0 {
			t.Fatalf("Missing section %q:\n%s", h, md)
		}
		if i < last {
			t.Errorf("Section %q out of order", h)
		}
		last = i
	}

	for _, want := range []string{
		"- **Base path:** N/A",
		"- **Trailing slash:** true",
		"- **Image domains:** cdn.example.com",
		"| Total routes | 7 |",
		"| App router | 5 |",
		"| Pages router | 2 |",
		"| API routes | 1 |",
		"| Dynamic routes | 2 |",
		"- **Directories:** app (`app`), pages (`pages`)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestFormatMarkdown_RouteDetails(t *testing.T) {
	out, err := FormatMarkdown(testRoutes(), testInfo(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	md := out.(string)

	section := func(path string) string {
		start := strings.Index(md, "### `"+path+"`")
		if start < 0 {
			t.Fatalf("Missing route %s", path)
		}
		rest := md[start+1:]
		if end := strings.Index(rest, "\n### "); end >= 0 {
			rest = rest[:end]
		}
		return rest
	}

	slug := section("/blog/[slug]")
	for _, want := range []string{
		"- **Pattern:** dynamic",
		"- **File:** `app/blog/[slug]/page.tsx`",
		"- **Dynamic segments:** slug",
		"- **Catch-all segment:** N/A",
		"- **Special files:** page",
		"- **Component:** client",
	} {
		if !strings.Contains(slug, want) {
			t.Errorf("/blog/[slug] missing %q:\n%s", want, slug)
		}
	}

	blog := section("/blog")
	if !strings.Contains(blog, "  - title: Blog") {
		t.Errorf("/blog missing metadata:\n%s", blog)
	}
	if !strings.Contains(blog, "- **Component:** N/A") {
		t.Errorf("Missing component should render N/A:\n%s", blog)
	}

	users := section("/api/users/[id]")
	if !strings.Contains(users, "- **API route:** yes") || !strings.Contains(users, "- **Special page:** N/A") {
		t.Errorf("/api/users/[id] details:\n%s", users)
	}
}

func TestFormatMarkdown_NilInfo(t *testing.T) {
	out, err := FormatMarkdown([]scanner.Route{{Path: "/", Router: scanner.RouterPages, Pattern: scanner.PatternStatic}}, nil, Options{Title: "Sitemap"})
	if err != nil {
		t.Fatal(err)
	}
	md := out.(string)
	if !strings.HasPrefix(md, "# Sitemap\n") {
		t.Errorf("Expected custom title:\n%s", md)
	}
	if !strings.Contains(md, "- **Framework:** N/A") {
		t.Errorf("Expected N/A framework:\n%s", md)
	}
	if strings.Contains(md, "## App Router") {
		t.Error("Empty families should be omitted")
	}
}
