// Package analyzer runs route analysis for a Next.js project: it detects the
// project, scans both router families, merges metadata and hands the result
// to the formatters.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abdul-hamid-achik/routemap/pkg/format"
	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// ErrNotAnalyzed is returned by result accessors before Analyze has succeeded.
var ErrNotAnalyzed = errors.New("no analysis result: call Analyze first")

// Depth selects how much work is done per route.
type Depth string

const (
	// DepthBasic only classifies paths and special files.
	DepthBasic Depth = "basic"
	// DepthDetailed also inspects source files for directives and exports.
	DepthDetailed Depth = "detailed"
)

// ParseDepth validates a depth name. The empty string means DepthBasic.
func ParseDepth(s string) (Depth, error) {
	switch Depth(s) {
	case "", DepthBasic:
		return DepthBasic, nil
	case DepthDetailed:
		return DepthDetailed, nil
	}
	return "", fmt.Errorf("unknown analysis depth %q (supported: basic, detailed)", s)
}

// Options configures an Analyzer.
type Options struct {
	// RootDir is the project root
	RootDir string
	// Depth is the analysis depth
	Depth Depth
	// Ignore are glob patterns skipped while walking route directories
	Ignore []string
	// MaxDepth bounds directory recursion (default scanner.DefaultMaxDepth)
	MaxDepth int
	// Metadata is merged onto matching routes
	Metadata Metadata
	// MetadataFile is loaded and merged after Metadata; load failures become warnings
	MetadataFile string
	// Inspector overrides the source inspector used in detailed mode
	Inspector scanner.Inspector
	// Logger receives warnings and debug tracing (default slog.Default())
	Logger *slog.Logger
}

// Analyzer runs one analysis and keeps its result.
type Analyzer struct {
	opts   Options
	result *Result
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Depth == "" {
		opts.Depth = DepthBasic
	}
	return &Analyzer{opts: opts}
}

// Analyze detects the project and scans its routes. A fatal project error
// aborts the run; per-file problems are collected as warnings.
func (a *Analyzer) Analyze(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := a.opts.Logger
	info, warnings, err := project.Detect(a.opts.RootDir, log)
	if err != nil {
		return nil, err
	}

	inspector := a.opts.Inspector
	if a.opts.Depth == DepthDetailed && inspector == nil {
		ri, err := scanner.NewRegexInspector(0)
		if err != nil {
			return nil, fmt.Errorf("create inspector: %w", err)
		}
		inspector = ri
	}
	if a.opts.Depth != DepthDetailed {
		inspector = nil
	}

	s := scanner.NewScanner(scanner.Options{
		Ignore:    a.opts.Ignore,
		MaxDepth:  a.opts.MaxDepth,
		Inspector: inspector,
		Logger:    log,
	})

	result := &Result{Project: info, Warnings: warnings}
	for _, family := range []struct {
		kind scanner.RouterKind
		scan func(string) *scanner.ScanResult
	}{
		{scanner.RouterApp, s.ScanApp},
		{scanner.RouterPages, s.ScanPages},
	} {
		dir, ok := info.Directories[string(family.kind)]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scanned := family.scan(dir)
		result.Routes = append(result.Routes, scanned.Routes...)
		result.Warnings = append(result.Warnings, scanned.Warnings...)
		log.Debug("scanned router", "router", family.kind, "dir", dir, "routes", len(scanned.Routes))
	}

	if len(a.opts.Metadata) > 0 {
		MergeMetadata(result.Routes, a.opts.Metadata)
	}
	if a.opts.MetadataFile != "" {
		md, err := LoadMetadata(a.opts.MetadataFile)
		if err != nil {
			log.Warn("metadata not merged", "path", a.opts.MetadataFile, "err", err)
			result.Warnings = append(result.Warnings, scanner.Warning{FilePath: a.opts.MetadataFile, Message: err.Error()})
		} else {
			MergeMetadata(result.Routes, md)
		}
	}

	a.result = result
	return result, nil
}

// Result returns the last analysis result.
func (a *Analyzer) Result() (*Result, error) {
	if a.result == nil {
		return nil, ErrNotAnalyzed
	}
	return a.result, nil
}

// Routes returns the routes of the last analysis.
func (a *Analyzer) Routes() ([]scanner.Route, error) {
	r, err := a.Result()
	if err != nil {
		return nil, err
	}
	return r.Routes, nil
}

// Format renders the last analysis result.
func (a *Analyzer) Format(kind format.Kind, opts format.Options) (any, error) {
	r, err := a.Result()
	if err != nil {
		return nil, err
	}
	return format.Format(kind, r.Routes, r.Project, opts)
}

// Render renders the last analysis result as text.
func (a *Analyzer) Render(kind format.Kind, opts format.Options) (string, error) {
	r, err := a.Result()
	if err != nil {
		return "", err
	}
	return format.Render(kind, r.Routes, r.Project, opts)
}
