package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Inspection is what a source file reveals about the route it backs.
type Inspection struct {
	ComponentType ComponentType
	Exports       []string
	DataFetching  *DataFetching
}

// clone returns a deep copy so callers never share state with the cache.
func (in *Inspection) clone() *Inspection {
	out := *in
	if in.Exports != nil {
		out.Exports = append([]string(nil), in.Exports...)
	}
	if in.DataFetching != nil {
		df := *in.DataFetching
		if df.Revalidate != nil {
			v := *df.Revalidate
			df.Revalidate = &v
		}
		out.DataFetching = &df
	}
	return &out
}

// Inspector reads a source file and classifies it. The regex implementation
// below is a heuristic; an AST-backed one can replace it behind this interface.
type Inspector interface {
	Inspect(path string) (*Inspection, error)
}

// directiveLines is how many significant lines are checked for "use client".
const directiveLines = 3

var (
	clientDirectiveRe = regexp.MustCompile(`^['"]use client['"];?$`)

	exportDefaultRe  = regexp.MustCompile(`(?m)^\s*export\s+default\b`)
	exportFunctionRe = regexp.MustCompile(`(?m)^\s*export\s+(?:async\s+)?function\*?\s+([A-Za-z_$][\w$]*)`)
	exportVarRe      = regexp.MustCompile(`(?m)^\s*export\s+(?:const|let|var|class)\s+([A-Za-z_$][\w$]*)`)
	exportListRe     = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)
	revalidateRe     = regexp.MustCompile(`(?m)^\s*export\s+const\s+revalidate\s*=\s*(\d+)`)
)

// RegexInspector scans source text with line heuristics and regular expressions.
// Results are cached by path and invalidated when size or mtime change.
type RegexInspector struct {
	cache *lru.Cache[string, cachedInspection]
}

type cachedInspection struct {
	modTime    time.Time
	size       int64
	inspection Inspection
}

// DefaultInspectorCacheSize is the number of files the inspector remembers.
const DefaultInspectorCacheSize = 1024

// NewRegexInspector creates an inspector caching up to size files.
func NewRegexInspector(size int) (*RegexInspector, error) {
	if size <= 0 {
		size = DefaultInspectorCacheSize
	}
	cache, err := lru.New[string, cachedInspection](size)
	if err != nil {
		return nil, fmt.Errorf("create inspector cache: %w", err)
	}
	return &RegexInspector{cache: cache}, nil
}

// Inspect implements Inspector.
func (ri *RegexInspector) Inspect(path string) (*Inspection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if cached, ok := ri.cache.Get(path); ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.inspection.clone(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	inspection := InspectSource(content)
	ri.cache.Add(path, cachedInspection{
		modTime:    info.ModTime(),
		size:       info.Size(),
		inspection: *inspection.clone(),
	})
	return inspection, nil
}

// Len returns the number of cached files.
func (ri *RegexInspector) Len() int {
	return ri.cache.Len()
}

// InspectSource classifies source text without touching the file system.
func InspectSource(content []byte) *Inspection {
	inspection := &Inspection{
		ComponentType: ComponentServer,
		Exports:       findExports(content),
	}
	if hasClientDirective(content) {
		inspection.ComponentType = ComponentClient
	}

	df := &DataFetching{}
	for _, name := range inspection.Exports {
		switch name {
		case "getStaticProps":
			df.GetStaticProps = true
		case "getStaticPaths":
			df.GetStaticPaths = true
		case "getServerSideProps":
			df.GetServerSideProps = true
		case "generateStaticParams":
			df.GenerateStatic = true
		}
	}
	if m := revalidateRe.FindSubmatch(content); m != nil {
		if n, err := strconv.Atoi(string(m[1])); err == nil {
			df.Revalidate = &n
		}
	}
	if !df.Empty() {
		inspection.DataFetching = df
	}

	return inspection
}

// hasClientDirective looks at the first significant lines, skipping comments and imports.
func hasClientDirective(content []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(content))
	inBlock := false
	seen := 0

	for sc.Scan() && seen < directiveLines {
		line := strings.TrimSpace(sc.Text())

		if inBlock {
			if strings.Contains(line, "*/") {
				inBlock = false
			}
			continue
		}
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "/*"):
			if !strings.Contains(line, "*/") {
				inBlock = true
			}
			continue
		case strings.HasPrefix(line, "import "), strings.HasPrefix(line, "import{"):
			continue
		}

		if clientDirectiveRe.MatchString(line) {
			return true
		}
		seen++
	}
	return false
}

func findExports(content []byte) []string {
	var exports []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			exports = append(exports, name)
		}
	}

	if exportDefaultRe.Match(content) {
		add("default")
	}
	for _, m := range exportFunctionRe.FindAllSubmatch(content, -1) {
		add(string(m[1]))
	}
	for _, m := range exportVarRe.FindAllSubmatch(content, -1) {
		add(string(m[1]))
	}
	for _, m := range exportListRe.FindAllSubmatch(content, -1) {
		for _, item := range strings.Split(string(m[1]), ",") {
			fields := strings.Fields(item)
			switch {
			case len(fields) == 0:
			case len(fields) >= 3 && fields[1] == "as":
				add(fields[2])
			default:
				add(fields[0])
			}
		}
	}
	return exports
}
