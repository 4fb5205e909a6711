package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdul-hamid-achik/routemap/pkg/analyzer"
	"github.com/abdul-hamid-achik/routemap/pkg/config"
	"github.com/abdul-hamid-achik/routemap/pkg/format"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"format":         "format",
	"output":         "output",
	"indent":         "indent",
	"depth":          "depth",
	"nested":         "nested",
	"path_style":     "path-style",
	"strip_prefixes": "strip",
	"exclude_fields": "exclude",
	"ignore":         "ignore",
	"max_depth":      "max-depth",
	"metadata":       "metadata",
	"watch.debounce": "debounce",
	"serve.addr":     "addr",
}

// settings is the resolved configuration for one command run.
type settings struct {
	Dir        string
	ConfigFile string
	Config     *config.Config
	Kind       format.Kind
	Depth      analyzer.Depth
	Format     format.Options
}

// loadSettings resolves the project dir and merges the config file,
// environment and the flags defined on cmd, in increasing precedence.
func loadSettings(cmd *cobra.Command, dir, file string) (*settings, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid project dir %q: %w", dir, err)
	}

	v := config.New(abs, file)
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	cfg, used, err := config.Load(v, abs)
	if err != nil {
		return nil, err
	}

	kind, err := format.ParseKind(cfg.Format)
	if err != nil {
		return nil, err
	}
	depth, err := analyzer.ParseDepth(cfg.Depth)
	if err != nil {
		return nil, err
	}
	style, err := transform.ParsePathStyle(cfg.PathStyle)
	if err != nil {
		return nil, err
	}
	if cfg.Indent < 0 {
		return nil, fmt.Errorf("indent must not be negative, got %d", cfg.Indent)
	}

	return &settings{
		Dir:        abs,
		ConfigFile: used,
		Config:     cfg,
		Kind:       kind,
		Depth:      depth,
		Format: format.Options{
			Indent:        cfg.Indent,
			Nested:        cfg.Nested,
			PathStyle:     style,
			StripPrefixes: cfg.StripPrefixes,
			ExcludeFields: cfg.ExcludeFields,
		},
	}, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// analyzerOptions builds the analysis options for the resolved settings.
func (s *settings) analyzerOptions(logger *slog.Logger) analyzer.Options {
	metadata := s.Config.Metadata
	if metadata != "" && !filepath.IsAbs(metadata) {
		metadata = filepath.Join(s.Dir, metadata)
	}
	return analyzer.Options{
		RootDir:      s.Dir,
		Depth:        s.Depth,
		Ignore:       s.Config.Ignore,
		MaxDepth:     s.Config.MaxDepth,
		MetadataFile: metadata,
		Logger:       logger,
	}
}

// outputPath returns the configured output file, relative to the project dir.
func (s *settings) outputPath() string {
	out := s.Config.Output
	if out == "" || out == "-" || filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(s.Dir, out)
}
