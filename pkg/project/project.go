// Package project recognizes Next.js projects and collects their metadata.
package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/routemap/internal/version"
	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// Framework is the only framework the analyzer understands.
const Framework = "next"

// MinAppRouterVersion is the first Next.js release with the app directory.
const MinAppRouterVersion = "13.0.0"

// Router kinds reported in Info.Router.
const (
	RouterApp     = string(scanner.RouterApp)
	RouterPages   = string(scanner.RouterPages)
	RouterHybrid  = "hybrid"
	RouterUnknown = "unknown"
)

// Info describes a recognized project.
type Info struct {
	Framework   string            `json:"framework" yaml:"framework"`
	Version     string            `json:"version,omitempty" yaml:"version,omitempty"`
	Router      string            `json:"router" yaml:"router"`
	RootDir     string            `json:"rootDir" yaml:"rootDir"`
	Config      *NextConfig       `json:"config,omitempty" yaml:"config,omitempty"`
	Package     *Manifest         `json:"package,omitempty" yaml:"package,omitempty"`
	Directories map[string]string `json:"directories,omitempty" yaml:"directories,omitempty"`
}

// HasRouter reports whether the route directory for kind was found.
func (i *Info) HasRouter(kind scanner.RouterKind) bool {
	_, ok := i.Directories[string(kind)]
	return ok
}

// Detect verifies root is a Next.js project and collects its metadata.
// Fatal problems are returned as *Error; recoverable problems become warnings.
func Detect(root string, logger *slog.Logger) (*Info, []scanner.Warning, error) {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, &Error{Root: root, Err: err}
	}

	st, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &Error{Root: abs, Err: ErrRootNotFound}
		}
		return nil, nil, &Error{Root: abs, Err: err}
	}
	if !st.IsDir() {
		return nil, nil, &Error{Root: abs, Err: ErrNotDirectory}
	}

	var warnings []scanner.Warning
	warn := func(file string, err error) {
		logger.Warn("project metadata unavailable", "file", file, "err", err)
		warnings = append(warnings, scanner.Warning{FilePath: file, Message: err.Error()})
	}

	info := &Info{
		Framework:   Framework,
		RootDir:     abs,
		Directories: FindRouteDirs(abs),
	}

	manifest, err := ReadManifest(abs)
	if err != nil {
		warn(filepath.Join(abs, ManifestFile), err)
	}
	info.Package = manifest
	if v, ok := manifest.Dependency("next"); ok {
		info.Version = v
	}

	_, hasConfigFile := FindConfigFile(abs)
	cfg, err := ScrapeConfig(abs)
	if err != nil {
		warn(abs, err)
	}
	info.Config = cfg

	if info.Version == "" && !hasConfigFile && len(info.Directories) == 0 {
		return nil, warnings, &Error{Root: abs, Err: ErrNotRecognized}
	}

	info.Router = routerKind(info)
	if dir, ok := info.Directories[RouterApp]; ok && !SupportsAppRouter(info.Version) {
		warn(dir, fmt.Errorf("app directory requires Next.js %s or later, found %s", MinAppRouterVersion, info.Version))
	}
	logger.Debug("project detected", "root", abs, "router", info.Router, "version", info.Version)
	return info, warnings, nil
}

// FindRouteDirs locates the app and pages directories, preferring the
// project root over src/.
func FindRouteDirs(root string) map[string]string {
	dirs := make(map[string]string)
	for _, kind := range []scanner.RouterKind{scanner.RouterApp, scanner.RouterPages} {
		for _, base := range []string{root, filepath.Join(root, "src")} {
			p := filepath.Join(base, string(kind))
			if st, err := os.Stat(p); err == nil && st.IsDir() {
				dirs[string(kind)] = p
				break
			}
		}
	}
	return dirs
}

func routerKind(info *Info) string {
	app := info.HasRouter(scanner.RouterApp)
	pages := info.HasRouter(scanner.RouterPages)
	switch {
	case app && pages:
		return RouterHybrid
	case app:
		return RouterApp
	case pages:
		return RouterPages
	default:
		return RouterUnknown
	}
}

// NormalizeVersion extracts a comparable version from a package.json
// dependency range such as "^14.1.0" or ">=13 <15". Tags like "latest" and
// protocol ranges like "workspace:*" are not comparable.
func NormalizeVersion(spec string) (string, bool) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return "", false
	}
	v := strings.TrimLeft(fields[0], "^~>=<v")
	if v == "" || v[0] < '0' || v[0] > '9' {
		return "", false
	}
	return strings.ReplaceAll(v, ".x", ".0"), true
}

// SupportsAppRouter reports whether a dependency range can use the app
// directory. Unknown or non-numeric versions are assumed to support it.
func SupportsAppRouter(spec string) bool {
	v, ok := NormalizeVersion(spec)
	if !ok {
		return true
	}
	return version.Compare(v, MinAppRouterVersion) >= 0
}
