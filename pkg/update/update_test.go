package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"
)

const releasesJSON = `[
  {"tag_name": "v0.4.0-rc.1", "prerelease": true},
  {"tag_name": "v0.3.0", "html_url": "https://github.com/abdul-hamid-achik/routemap/releases/tag/v0.3.0"},
  {"tag_name": "v0.2.0"}
]`

func newTestChecker(t *testing.T, current string, handler http.HandlerFunc) *Checker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewChecker()
	c.CurrentVersion = current
	c.APIURL = srv.URL
	c.CacheDir = t.TempDir()
	return c
}

func releasesHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abdul-hamid-achik/routemap/releases" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("expected a User-Agent")
		}
		_, _ = w.Write([]byte(releasesJSON))
	}
}

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		prerelease bool
		wantTag    string
		wantUpdate bool
	}{
		{"older", "v0.2.0", false, "v0.3.0", true},
		{"current", "v0.3.0", false, "v0.3.0", false},
		{"dev build", "dev", false, "v0.3.0", true},
		{"prerelease opt in", "v0.3.0", true, "v0.4.0-rc.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChecker(t, tt.current, releasesHandler(t))
			c.IncludePrerelease = tt.prerelease

			latest, hasUpdate, err := c.Check(context.Background())
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if latest.TagName != tt.wantTag {
				t.Errorf("latest = %s, want %s", latest.TagName, tt.wantTag)
			}
			if hasUpdate != tt.wantUpdate {
				t.Errorf("hasUpdate = %v, want %v", hasUpdate, tt.wantUpdate)
			}
		})
	}
}

func TestChecker_CheckErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"only drafts", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"tag_name": "v1.0.0", "draft": true}]`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChecker(t, "v0.1.0", tt.handler)
			if _, _, err := c.Check(context.Background()); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestChecker_ShouldCheck(t *testing.T) {
	c := NewChecker()
	c.CacheDir = t.TempDir()

	if !c.ShouldCheck() {
		t.Error("Expected check without a timestamp file")
	}

	if err := c.SaveLastCheck(); err != nil {
		t.Fatalf("SaveLastCheck() error = %v", err)
	}
	if c.ShouldCheck() {
		t.Error("Expected no check right after saving")
	}

	old := strconv.FormatInt(time.Now().Add(-2*CheckInterval).Unix(), 10)
	if err := os.WriteFile(c.LastCheckPath(), []byte(old), 0644); err != nil {
		t.Fatal(err)
	}
	if !c.ShouldCheck() {
		t.Error("Expected check after the interval")
	}

	if err := os.WriteFile(c.LastCheckPath(), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if !c.ShouldCheck() {
		t.Error("Expected check with an unreadable timestamp")
	}
}
