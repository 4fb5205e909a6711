package scanner

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestWalker_OrderAndIgnore(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"b.txt":                     "",
		"a/one.ts":                  "",
		"node_modules/pkg/index.js": "",
		"dist/out.js":               "",
		"src/app/page.tsx":          "",
	})

	w := &Walker{Ignore: []string{"node_modules/**", "dist/**"}}
	entries, warnings := w.Walk(root)
	if len(warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", warnings)
	}

	var rels []string
	for _, e := range entries {
		rels = append(rels, e.RelPath)
		if e.AbsPath != filepath.Join(root, filepath.FromSlash(e.RelPath)) {
			t.Errorf("AbsPath mismatch for %s: %s", e.RelPath, e.AbsPath)
		}
	}

	want := "a,a/one.ts,b.txt,src,src/app,src/app/page.tsx"
	if got := strings.Join(rels, ","); got != want {
		t.Errorf("Walk order = %s, want %s", got, want)
	}
}

func TestWalker_BaseNamePattern(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"keep.ts":             "",
		"skip.stories.ts":     "",
		"nested/x.stories.ts": "",
	})

	w := &Walker{Ignore: []string{"*.stories.ts"}}
	entries, _ := w.Walk(root)
	for _, e := range entries {
		if strings.HasSuffix(e.Name, ".stories.ts") {
			t.Errorf("%s should be ignored", e.RelPath)
		}
	}
}

func TestWalker_MaxDepth(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"one/two/three/deep.ts": "",
		"top.ts":                "",
	})

	w := &Walker{MaxDepth: 2}
	entries, warnings := w.Walk(root)
	if len(warnings) != 0 {
		t.Errorf("Truncation must not warn: %v", warnings)
	}
	for _, e := range entries {
		if strings.Count(e.RelPath, "/") >= 2 {
			t.Errorf("Entry beyond max depth: %s", e.RelPath)
		}
	}
}

func TestWalker_UnreadableRoot(t *testing.T) {
	w := &Walker{}
	entries, warnings := w.Walk(filepath.Join(t.TempDir(), "missing"))
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
	if len(warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", warnings)
	}
}
