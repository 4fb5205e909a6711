package transform

import (
	"regexp"
	"strings"
	"testing"
)

func TestAccessorTokens(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index"},
		{"/blog", "blog"},
		{"/blog/[slug]", "blog,bySlug"},
		{"/docs/[...path]", "docs,byPathRest"},
		{"/shop/[[...filters]]", "shop,byFiltersOptional"},
		{"/user-profile/[user-id]", "userProfile,byUserId"},
		{"/2024/archive", "_2024,archive"},
		{"/api/v1.0", "api,v1_0"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := strings.Join(AccessorTokens(tt.path), ",")
			if got != tt.want {
				t.Errorf("AccessorTokens(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentifier_Total(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	inputs := []string{"", "-", "123", "héllo", "a b", "$ok", "foo-bar-baz", "[slug]", "..", "delete", "class"}

	for _, in := range inputs {
		got := SanitizeIdentifier(in)
		if !valid.MatchString(got) {
			t.Errorf("SanitizeIdentifier(%q) = %q is not a valid identifier", in, got)
		}
	}
}

func TestSanitizeIdentifier_Reserved(t *testing.T) {
	for _, word := range []string{"delete", "new", "default", "class", "null"} {
		if got := SanitizeIdentifier(word); got != word+ReservedSuffix {
			t.Errorf("SanitizeIdentifier(%q) = %q, want %q", word, got, word+ReservedSuffix)
		}
	}
	if got := Identifier([]string{"new"}); got != "new_route" {
		t.Errorf("Identifier(new) = %q", got)
	}
	if got := Identifier([]string{"blog", "new"}); got != "blog_new" {
		t.Errorf("Identifier(blog,new) = %q", got)
	}
}

func TestNamer_Collisions(t *testing.T) {
	n := NewNamer()
	got := []string{
		n.Name([]string{"blog", "bySlug"}),
		n.Name([]string{"blog_bySlug"}),
		n.Name([]string{"blog", "bySlug"}),
		n.Name([]string{"index"}),
	}
	want := []string{"blog_bySlug", "blog_bySlug_2", "blog_bySlug_3", "index"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Name #%d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := map[string]bool{
		"slug":    true,
		"$x":      true,
		"_a1":     true,
		"1a":      false,
		"post-id": false,
		"":        false,
	}
	for in, want := range tests {
		if got := IsIdentifier(in); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", in, got, want)
		}
	}
}
