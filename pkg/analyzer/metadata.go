package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// Metadata maps a route key to free-form fields. Keys are tried per route in
// order: exact path ("/blog/[slug]"), dotted form ("blog.[slug]", root is
// "index"), then router-prefixed path ("app:/blog/[slug]").
type Metadata map[string]map[string]any

// DottedKey returns the dotted lookup key for a path.
func DottedKey(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "index"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}

// MetadataKeys returns the lookup keys for a route in priority order.
func MetadataKeys(path string, router scanner.RouterKind) []string {
	return []string{path, DottedKey(path), string(router) + ":" + path}
}

// Lookup returns the metadata entry for a route, if any.
func (m Metadata) Lookup(path string, router scanner.RouterKind) (map[string]any, bool) {
	for _, k := range MetadataKeys(path, router) {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// MergeMetadata shallow-merges matching entries into each route's Metadata.
// Structural fields are never touched. It returns the number of routes updated.
func MergeMetadata(routes []scanner.Route, md Metadata) int {
	merged := 0
	for i := range routes {
		r := &routes[i]
		fields, ok := md.Lookup(r.Path, r.Router)
		if !ok {
			continue
		}
		r.Metadata = mergeFields(r.Metadata, fields)
		merged++
	}
	return merged
}

func mergeFields(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

// LoadMetadata reads a metadata mapping from a JSON or YAML file.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	return ParseMetadata(data, filepath.Ext(path))
}

// ParseMetadata decodes a metadata mapping; ext selects YAML for ".yaml"/".yml".
func ParseMetadata(data []byte, ext string) (Metadata, error) {
	var md Metadata
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &md); err != nil {
			return nil, fmt.Errorf("parse metadata: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &md); err != nil {
			return nil, fmt.Errorf("parse metadata: %w", err)
		}
	}
	return md, nil
}
