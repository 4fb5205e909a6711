package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/routemap/pkg/analyzer"
	"github.com/abdul-hamid-achik/routemap/pkg/format"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

func TestLoadSettings_Defaults(t *testing.T) {
	dir := t.TempDir()

	s, err := loadSettings(testCommand(t, nil), dir, "")
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}

	if s.Kind != format.JSON {
		t.Errorf("Kind = %q, want json", s.Kind)
	}
	if s.Depth != analyzer.DepthBasic {
		t.Errorf("Depth = %q, want basic", s.Depth)
	}
	if s.Format.Indent != 2 {
		t.Errorf("Indent = %d, want 2", s.Format.Indent)
	}
	if s.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want empty", s.ConfigFile)
	}
	if s.Config.Watch.Debounce != 300*time.Millisecond {
		t.Errorf("Debounce = %v, want 300ms", s.Config.Watch.Debounce)
	}
}

func TestLoadSettings_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		env       map[string]string
		flags     map[string]string
		wantKind  format.Kind
		wantStyle transform.PathStyle
	}{
		{
			name:     "config file",
			config:   "format: markdown\n",
			wantKind: format.Markdown,
		},
		{
			name:     "env overrides config",
			config:   "format: markdown\n",
			env:      map[string]string{"ROUTEMAP_FORMAT": "yaml"},
			wantKind: format.YAML,
		},
		{
			name:     "flag overrides env",
			config:   "format: markdown\n",
			env:      map[string]string{"ROUTEMAP_FORMAT": "yaml"},
			flags:    map[string]string{"format": "ts"},
			wantKind: format.TypeScript,
		},
		{
			name:      "path style flag",
			flags:     map[string]string{"path-style": "colon"},
			wantKind:  format.JSON,
			wantStyle: transform.StyleColon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			if tt.config != "" {
				files["routemap.yaml"] = tt.config
			}
			dir := writeProject(t, files)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			s, err := loadSettings(testCommand(t, tt.flags), dir, "")
			if err != nil {
				t.Fatalf("loadSettings() error = %v", err)
			}
			if s.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", s.Kind, tt.wantKind)
			}
			if tt.wantStyle != "" && s.Format.PathStyle != tt.wantStyle {
				t.Errorf("PathStyle = %q, want %q", s.Format.PathStyle, tt.wantStyle)
			}
		})
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
	}{
		{"unknown format", map[string]string{"format": "xml"}},
		{"unknown depth", map[string]string{"depth": "deep"}},
		{"unknown style", map[string]string{"path-style": "express"}},
		{"negative indent", map[string]string{"indent": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadSettings(testCommand(t, tt.flags), t.TempDir(), ""); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestSettings_Paths(t *testing.T) {
	dir := t.TempDir()
	s, err := loadSettings(testCommand(t, map[string]string{
		"metadata": "routes.meta.yaml",
		"output":   "out/routes.md",
	}), dir, "")
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}

	opts := s.analyzerOptions(nil)
	if opts.MetadataFile != filepath.Join(dir, "routes.meta.yaml") {
		t.Errorf("MetadataFile = %q", opts.MetadataFile)
	}
	if opts.RootDir != dir {
		t.Errorf("RootDir = %q, want %q", opts.RootDir, dir)
	}
	if got := s.outputPath(); got != filepath.Join(dir, "out", "routes.md") {
		t.Errorf("outputPath() = %q", got)
	}
}
