package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ConfigFiles are the recognized Next.js config file names, in lookup order.
var ConfigFiles = []string{"next.config.js", "next.config.mjs", "next.config.ts", "next.config.cjs"}

// middlewareFiles are checked at the root and under src/.
var middlewareFiles = []string{"middleware.ts", "middleware.js"}

// NextConfig holds the keys scraped from a Next.js config file.
// It is advisory: the file is never executed, only matched with regexes.
type NextConfig struct {
	File          string          `json:"file" yaml:"file"`
	BasePath      string          `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	DistDir       string          `json:"distDir,omitempty" yaml:"distDir,omitempty"`
	TrailingSlash *bool           `json:"trailingSlash,omitempty" yaml:"trailingSlash,omitempty"`
	ImageDomains  []string        `json:"imageDomains,omitempty" yaml:"imageDomains,omitempty"`
	HasMiddleware bool            `json:"hasMiddleware,omitempty" yaml:"hasMiddleware,omitempty"`
	Experimental  map[string]bool `json:"experimental,omitempty" yaml:"experimental,omitempty"`
}

var (
	basePathRe      = regexp.MustCompile(`basePath\s*:\s*['"` + "`" + `]([^'"` + "`" + `]*)['"` + "`" + `]`)
	distDirRe       = regexp.MustCompile(`distDir\s*:\s*['"` + "`" + `]([^'"` + "`" + `]*)['"` + "`" + `]`)
	trailingSlashRe = regexp.MustCompile(`trailingSlash\s*:\s*(true|false)`)
	imageDomainsRe  = regexp.MustCompile(`domains\s*:\s*\[([^\]]*)\]`)
	quotedRe        = regexp.MustCompile(`['"]([^'"]+)['"]`)
	experimentalRe  = regexp.MustCompile(`(?s)experimental\s*:\s*\{([^}]*)\}`)
	boolFlagRe      = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*:\s*(true|false)`)
)

// FindConfigFile returns the path of the first config file present in root.
func FindConfigFile(root string) (string, bool) {
	for _, name := range ConfigFiles {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// ScrapeConfig reads the config file in root. Without a config file it only
// reports middleware, and returns nil when there is none.
func ScrapeConfig(root string) (*NextConfig, error) {
	file, ok := FindConfigFile(root)
	if !ok {
		if hasMiddleware(root) {
			return &NextConfig{HasMiddleware: true}, nil
		}
		return nil, nil
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(file), err)
	}

	cfg := ParseConfig(string(content))
	cfg.File = filepath.Base(file)
	cfg.HasMiddleware = hasMiddleware(root)
	return cfg, nil
}

// ParseConfig extracts the known keys from config source text.
func ParseConfig(src string) *NextConfig {
	cfg := &NextConfig{}

	if m := basePathRe.FindStringSubmatch(src); m != nil {
		cfg.BasePath = m[1]
	}
	if m := distDirRe.FindStringSubmatch(src); m != nil {
		cfg.DistDir = m[1]
	}
	if m := trailingSlashRe.FindStringSubmatch(src); m != nil {
		v := m[1] == "true"
		cfg.TrailingSlash = &v
	}
	if m := imageDomainsRe.FindStringSubmatch(src); m != nil {
		for _, q := range quotedRe.FindAllStringSubmatch(m[1], -1) {
			cfg.ImageDomains = append(cfg.ImageDomains, q[1])
		}
	}
	if m := experimentalRe.FindStringSubmatch(src); m != nil {
		for _, f := range boolFlagRe.FindAllStringSubmatch(m[1], -1) {
			if cfg.Experimental == nil {
				cfg.Experimental = make(map[string]bool)
			}
			cfg.Experimental[f[1]] = f[2] == "true"
		}
	}

	return cfg
}

func hasMiddleware(root string) bool {
	for _, dir := range []string{root, filepath.Join(root, "src")} {
		for _, name := range middlewareFiles {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return true
			}
		}
	}
	return false
}
