package scanner

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseSegment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType SegmentType
		wantName string
	}{
		{"dynamic bracket", "[id]", SegmentDynamic, "id"},
		{"dynamic bracket underscore", "[user_id]", SegmentDynamic, "user_id"},
		{"dynamic with hyphen", "[post-id]", SegmentDynamic, "post-id"},
		{"catch-all", "[...slug]", SegmentCatchAll, "slug"},
		{"optional catch-all", "[[...slug]]", SegmentOptionalCatchAll, "slug"},
		{"route group", "(admin)", SegmentGroup, ""},
		{"route group with hyphen", "(marketing-site)", SegmentGroup, ""},
		{"intercept same level", "(.)", SegmentIntercepting, ""},
		{"intercept one up", "(..)", SegmentIntercepting, ""},
		{"intercept root", "(...)", SegmentIntercepting, ""},
		{"intercept four dots", "(....)", SegmentIntercepting, ""},
		{"five dots is a group", "(.....)", SegmentGroup, ""},
		{"parallel slot", "@modal", SegmentParallel, ""},

		{"static simple", "users", SegmentStatic, "users"},
		{"static with hyphen", "user-profile", SegmentStatic, "user-profile"},
		{"static api", "api", SegmentStatic, "api"},
		{"unclosed bracket", "[id", SegmentStatic, "[id"},
		{"unclosed paren", "(admin", SegmentStatic, "(admin"},
		{"empty", "", SegmentStatic, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSegment(tt.input)
			if got.Type != tt.wantType {
				t.Errorf("ParseSegment(%q).Type = %v, want %v", tt.input, got.Type, tt.wantType)
			}
			if got.Name != tt.wantName {
				t.Errorf("ParseSegment(%q).Name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
			if got.Raw != tt.input {
				t.Errorf("ParseSegment(%q).Raw = %q, want %q", tt.input, got.Raw, tt.input)
			}
		})
	}
}

func TestParseSegment_RoleFlagsExclusive(t *testing.T) {
	inputs := []string{"users", "[id]", "[...slug]", "[[...slug]]", "(admin)", "(.)", "(..)", "@modal", "[]", "()", "@"}

	for _, in := range inputs {
		seg := ParseSegment(in)
		roles := 0
		for _, set := range []bool{seg.IsDynamic(), seg.IsRouteGroup(), seg.IsIntercepting(), seg.IsParallel()} {
			if set {
				roles++
			}
		}
		if roles > 1 {
			t.Errorf("ParseSegment(%q) has %d role flags set", in, roles)
		}
		if seg.Type == SegmentStatic && roles != 0 {
			t.Errorf("ParseSegment(%q) is static but has role flags", in)
		}
	}
}

func TestSegment_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ParseSegment("[[...slug]]"))
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	got := string(data)
	for _, want := range []string{`"name":"[[...slug]]"`, `"isDynamic":true`, `"isCatchAll":true`, `"isOptionalCatchAll":true`, `"paramName":"slug"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %s in %s", want, got)
		}
	}

	data, _ = json.Marshal(ParseSegment("(admin)"))
	if strings.Contains(string(data), "paramName") {
		t.Errorf("Route group should not carry a param name: %s", data)
	}
}

func TestBuildURLPath(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want string
	}{
		{"empty", "", "/"},
		{"static only", "api/users", "/api/users"},
		{"with dynamic", "blog/[slug]", "/blog/[slug]"},
		{"with catch-all", "docs/[...slug]", "/docs/[...slug]"},
		{"group excluded", "(admin)/dashboard", "/dashboard"},
		{"only group", "(marketing)", "/"},
		{"parallel excluded", "dashboard/@analytics", "/dashboard"},
		{"intercept excluded", "feed/(..)/photo/[id]", "/feed/photo/[id]"},
		{"complex nested", "(auth)/api/users/[userId]/posts/[postId]", "/api/users/[userId]/posts/[postId]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildURLPath(ParseSegments(tt.rel))
			if got != tt.want {
				t.Errorf("BuildURLPath(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestDerivePattern(t *testing.T) {
	tests := []struct {
		rel  string
		want Pattern
	}{
		{"", PatternStatic},
		{"about/team", PatternStatic},
		{"blog/[slug]", PatternDynamic},
		{"[a]/[b]", PatternDynamic},
		{"docs/[...slug]", PatternCatchAll},
		{"[lang]/docs/[...slug]", PatternCatchAll},
		{"shop/[[...filters]]", PatternOptionalCatchAll},
		{"[lang]/[[...rest]]", PatternOptionalCatchAll},
		{"(admin)/@modal/settings", PatternStatic},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := DerivePattern(ParseSegments(tt.rel)); got != tt.want {
				t.Errorf("DerivePattern(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestExtractParams(t *testing.T) {
	params := ExtractParams(ParseSegments("[lang]/docs/[[...slug]]"))
	if len(params) != 2 {
		t.Fatalf("Expected 2 params, got %d", len(params))
	}
	if params[0].Name != "lang" || params[0].IsCatchAll {
		t.Errorf("Unexpected first param: %+v", params[0])
	}
	if params[1].Name != "slug" || !params[1].IsCatchAll || !params[1].IsOptional {
		t.Errorf("Unexpected second param: %+v", params[1])
	}
}

func TestApplySegments(t *testing.T) {
	route := Route{}
	applySegments(&route, ParseSegments("(shop)/@modal/[category]/[id]/[...rest]"))

	if route.Pattern != PatternCatchAll {
		t.Errorf("Pattern = %q, want catch-all", route.Pattern)
	}
	if strings.Join(route.DynamicSegments, ",") != "category,id" {
		t.Errorf("DynamicSegments = %v", route.DynamicSegments)
	}
	if route.CatchAllSegment != "rest" {
		t.Errorf("CatchAllSegment = %q", route.CatchAllSegment)
	}
	if !route.IsRouteGroup || route.RouteGroups[0] != "shop" {
		t.Errorf("Expected route group shop, got %v", route.RouteGroups)
	}
	if !route.IsParallel || route.ParallelSlots[0] != "modal" {
		t.Errorf("Expected parallel slot modal, got %v", route.ParallelSlots)
	}
}

func TestIsPrivateFolder(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"_components", true},
		{"_lib", true},
		{".git", true},
		{"node_modules", true},
		{"blog", false},
		{"[id]", false},
		{"(group)", false},
		{"@modal", false},
	}

	for _, tt := range tests {
		if got := IsPrivateFolder(tt.name); got != tt.want {
			t.Errorf("IsPrivateFolder(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
