// Package config loads routemap settings from routemap.yaml, ROUTEMAP_*
// environment variables and a project .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name without extension.
const FileName = "routemap"

// EnvPrefix prefixes environment overrides, e.g. ROUTEMAP_FORMAT.
const EnvPrefix = "ROUTEMAP"

// Config holds every setting the CLI reads.
type Config struct {
	Format        string      `mapstructure:"format" yaml:"format"`
	Output        string      `mapstructure:"output" yaml:"output,omitempty"`
	Indent        int         `mapstructure:"indent" yaml:"indent"`
	Depth         string      `mapstructure:"depth" yaml:"depth"`
	Nested        bool        `mapstructure:"nested" yaml:"nested,omitempty"`
	PathStyle     string      `mapstructure:"path_style" yaml:"path_style"`
	StripPrefixes []string    `mapstructure:"strip_prefixes" yaml:"strip_prefixes,omitempty"`
	ExcludeFields []string    `mapstructure:"exclude_fields" yaml:"exclude_fields,omitempty"`
	Ignore        []string    `mapstructure:"ignore" yaml:"ignore"`
	MaxDepth      int         `mapstructure:"max_depth" yaml:"max_depth"`
	Metadata      string      `mapstructure:"metadata" yaml:"metadata,omitempty"`
	Watch         WatchConfig `mapstructure:"watch" yaml:"watch"`
	Serve         ServeConfig `mapstructure:"serve" yaml:"serve"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Format:    "json",
		Indent:    2,
		Depth:     "basic",
		PathStyle: "next",
		Ignore: []string{
			"node_modules/**",
			".git/**",
			".next/**",
			"dist/**",
			"build/**",
			"coverage/**",
		},
		MaxDepth: 20,
		Watch:    WatchConfig{Debounce: 300 * time.Millisecond},
		Serve:    ServeConfig{Addr: "localhost:4321"},
	}
}

// New returns a viper instance with defaults, env overrides and the config
// file set. If file is empty, routemap.yaml or .routemap.yaml is looked up
// in dir and then the working directory.
func New(dir, file string) *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("depth", d.Depth)
	v.SetDefault("nested", d.Nested)
	v.SetDefault("path_style", d.PathStyle)
	v.SetDefault("strip_prefixes", d.StripPrefixes)
	v.SetDefault("exclude_fields", d.ExcludeFields)
	v.SetDefault("ignore", d.Ignore)
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("metadata", d.Metadata)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("serve.addr", d.Serve.Addr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file, _ = Find(dir)
	}
	if file != "" {
		v.SetConfigFile(file)
		return v
	}
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")
	return v
}

// Find returns the first config file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range []string{FileName + ".yaml", FileName + ".yml", "." + FileName + ".yaml", "." + FileName + ".yml"} {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load reads the .env file in dir and the config file into cfg.
// A missing config file is not an error; the returned path is empty then.
func Load(v *viper.Viper, dir string) (*Config, string, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to load .env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

// Write saves cfg as YAML.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
