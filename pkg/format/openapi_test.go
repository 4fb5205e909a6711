package format

import (
	"encoding/json"
	"testing"
)

func TestFormatOpenAPI(t *testing.T) {
	out, err := FormatOpenAPI(testRoutes(), testInfo(), Options{Indent: 2})
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]map[string]struct {
			Parameters []struct {
				Name     string `json:"name"`
				In       string `json:"in"`
				Required bool   `json:"required"`
			} `json:"parameters"`
		} `json:"paths"`
	}
	if err := json.Unmarshal([]byte(out.(string)), &doc); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if doc.OpenAPI != OpenAPIVersion {
		t.Errorf("openapi = %q", doc.OpenAPI)
	}
	if doc.Info.Title != "shop" || doc.Info.Version != "1.2.0" {
		t.Errorf("info = %+v", doc.Info)
	}
	if len(doc.Paths) != 2 {
		t.Fatalf("Expected 2 API paths, got %v", doc.Paths)
	}

	health := doc.Paths["/api/health"]
	if _, ok := health["get"]; !ok {
		t.Error("Expected GET /api/health")
	}
	if _, ok := health["post"]; !ok {
		t.Error("Expected POST /api/health from exports")
	}

	users, ok := doc.Paths["/api/users/{id}"]
	if !ok {
		t.Fatalf("Missing /api/users/{id}: %v", doc.Paths)
	}
	params := users["get"].Parameters
	if len(params) != 1 || params[0].Name != "id" || params[0].In != "path" || !params[0].Required {
		t.Errorf("Parameters = %+v", params)
	}
}

func TestOpenAPIPath(t *testing.T) {
	tests := map[string]string{
		"/":                   "/",
		"/api/users":          "/api/users",
		"/api/users/[id]":     "/api/users/{id}",
		"/api/files/[...key]": "/api/files/{key}",
	}
	for in, want := range tests {
		if got := openAPIPath(in); got != want {
			t.Errorf("openAPIPath(%q) = %q, want %q", in, got, want)
		}
	}
}
