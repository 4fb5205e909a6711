package scanner

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxDepth bounds directory recursion when no depth is configured.
const DefaultMaxDepth = 20

// Walker lists a directory tree one entry at a time, in name order.
// Unreadable directories are reported as warnings and contribute nothing.
type Walker struct {
	// Ignore holds doublestar globs matched against the slash path relative to the root
	Ignore []string
	// MaxDepth bounds recursion; deeper subtrees are silently truncated
	MaxDepth int
	// SkipDir prunes directories by name in addition to Ignore
	SkipDir func(name string) bool
	// Logger receives warnings; slog.Default() when nil
	Logger *slog.Logger
}

// Walk returns every file and directory under root.
func (w *Walker) Walk(root string) ([]Entry, []Warning) {
	var entries []Entry
	var warnings []Warning

	maxDepth := w.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var walk func(dir, rel string, depth int)
	walk = func(dir, rel string, depth int) {
		if depth > maxDepth {
			return
		}

		items, err := os.ReadDir(dir)
		if err != nil {
			warnings = append(warnings, Warning{FilePath: dir, Message: err.Error()})
			w.logger().Warn("cannot read directory", "path", dir, "err", err)
			return
		}

		for _, item := range items {
			name := item.Name()
			childRel := name
			if rel != "" {
				childRel = path.Join(rel, name)
			}

			isDir := item.IsDir()
			if item.Type()&os.ModeSymlink != 0 {
				if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
					isDir = info.IsDir()
				}
			}

			if w.ignored(childRel, name, isDir) {
				continue
			}
			if isDir && w.SkipDir != nil && w.SkipDir(name) {
				continue
			}

			abs := filepath.Join(dir, name)
			entries = append(entries, Entry{
				AbsPath: abs,
				RelPath: childRel,
				IsDir:   isDir,
				Name:    name,
			})

			if isDir {
				walk(abs, childRel, depth+1)
			}
		}
	}

	walk(root, "", 1)
	return entries, warnings
}

func (w *Walker) ignored(rel, name string, isDir bool) bool {
	return Ignored(w.Ignore, rel, name, isDir)
}

// Ignored reports whether a slash path relative to the scan root, or its
// base name, matches one of the ignore globs. A directory also matches
// "dir/**".
func Ignored(patterns []string, rel, name string, isDir bool) bool {
	for _, pattern := range patterns {
		if match(pattern, rel) || match(pattern, name) {
			return true
		}
		if isDir && (match(pattern, rel+"/") || strings.TrimSuffix(pattern, "/**") == rel) {
			return true
		}
	}
	return false
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

func (w *Walker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
