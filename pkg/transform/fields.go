package transform

import (
	"encoding/json"
	"fmt"
)

// StripFields removes every key named in fields from v, recursing through
// maps and slices. It mutates and returns v.
func StripFields(v any, fields []string) any {
	if len(fields) == 0 {
		return v
	}
	drop := make(map[string]bool, len(fields))
	for _, f := range fields {
		drop[f] = true
	}
	return stripFields(v, drop)
}

func stripFields(v any, drop map[string]bool) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if drop[k] {
				delete(t, k)
				continue
			}
			t[k] = stripFields(child, drop)
		}
	case []any:
		for i, child := range t {
			t[i] = stripFields(child, drop)
		}
	}
	return v
}

// Generic converts v into its JSON document form (maps, slices and scalars).
func Generic(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// ExcludeFields returns the JSON document form of v with the named fields removed.
func ExcludeFields(v any, fields []string) (any, error) {
	doc, err := Generic(v)
	if err != nil {
		return nil, err
	}
	return StripFields(doc, fields), nil
}
