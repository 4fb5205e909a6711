package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

// Merge combines a previously exported result document with either a new
// result document (it has a "routes" field) or a bare metadata mapping.
// Routes are matched by path; on collision the incoming fields win. Metadata
// is merged with the MergeMetadata lookup rules. Both documents are the
// decoded JSON form; a nested previous document stays nested.
func Merge(previous, incoming map[string]any) (map[string]any, error) {
	routes, nested, err := documentRoutes(previous)
	if err != nil {
		return nil, fmt.Errorf("previous result: %w", err)
	}

	out := make(map[string]any, len(previous))
	for k, v := range previous {
		out[k] = v
	}

	if _, ok := incoming["routes"]; ok {
		newRoutes, _, err := documentRoutes(incoming)
		if err != nil {
			return nil, fmt.Errorf("incoming result: %w", err)
		}
		for k, v := range incoming {
			out[k] = v
		}
		routes = mergeRoutes(routes, newRoutes)
	} else {
		md, err := toMetadata(incoming)
		if err != nil {
			return nil, err
		}
		mergeGenericMetadata(routes, md)
	}

	if !nested {
		out["routes"] = toAnySlice(routes)
		return out, nil
	}

	typed, err := decodeRoutes(routes)
	if err != nil {
		return nil, err
	}
	tree, err := transform.Generic(transform.ToNested(typed))
	if err != nil {
		return nil, err
	}
	out["routes"] = tree
	return out, nil
}

// documentRoutes extracts the route list of a document, flattening a nested
// route structure.
func documentRoutes(doc map[string]any) ([]map[string]any, bool, error) {
	switch v := doc["routes"].(type) {
	case nil:
		return nil, false, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false, fmt.Errorf("route %d is not an object", i)
			}
			out = append(out, m)
		}
		return out, false, nil
	case map[string]any:
		typed, err := transform.ToArray(v)
		if err != nil {
			return nil, true, err
		}
		generic, err := transform.Generic(typed)
		if err != nil {
			return nil, true, err
		}
		items, _ := generic.([]any)
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			out = append(out, item.(map[string]any))
		}
		return out, true, nil
	default:
		return nil, false, fmt.Errorf("routes has unexpected type %T", v)
	}
}

// routeKeys returns the keys a route record is indexed under: router and path
// together, and the bare path for records that carry no router.
func routeKeys(r map[string]any) (exact, bare string) {
	p, _ := r["path"].(string)
	if p == "" {
		return "", ""
	}
	if router, ok := r["router"].(string); ok && router != "" {
		return router + ":" + p, p
	}
	return p, p
}

func mergeRoutes(previous, incoming []map[string]any) []map[string]any {
	index := make(map[string]int, 2*len(previous))
	remember := func(key string, i int) {
		if _, dup := index[key]; key != "" && !dup {
			index[key] = i
		}
	}
	for i, r := range previous {
		exact, bare := routeKeys(r)
		remember(exact, i)
		remember(bare, i)
	}

	for _, r := range incoming {
		exact, bare := routeKeys(r)
		if i, ok := index[exact]; ok && exact != "" {
			previous[i] = mergeFields(previous[i], r)
			continue
		}
		previous = append(previous, r)
		remember(exact, len(previous)-1)
		remember(bare, len(previous)-1)
	}
	return previous
}

func mergeGenericMetadata(routes []map[string]any, md Metadata) {
	for i, r := range routes {
		path, _ := r["path"].(string)
		router, _ := r["router"].(string)
		fields, ok := md.Lookup(path, scanner.RouterKind(router))
		if !ok {
			continue
		}
		existing, _ := r["metadata"].(map[string]any)
		routes[i] = mergeFields(r, map[string]any{"metadata": mergeFields(existing, fields)})
	}
}

func toMetadata(m map[string]any) (Metadata, error) {
	md := make(Metadata, len(m))
	for k, v := range m {
		fields, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("metadata for %q is not an object", k)
		}
		md[k] = fields
	}
	return md, nil
}

func decodeRoutes(routes []map[string]any) ([]scanner.Route, error) {
	data, err := json.Marshal(routes)
	if err != nil {
		return nil, err
	}
	var out []scanner.Route
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return out, nil
}

func toAnySlice(routes []map[string]any) []any {
	out := make([]any, len(routes))
	for i, r := range routes {
		out[i] = r
	}
	return out
}
