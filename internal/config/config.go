package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/natefinch/atomic"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ICONIC_*). Nested keys use a double
// underscore: ICONIC_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("ICONIC_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "ICONIC_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validSources = map[SourceType]bool{
	SourceFile:   true,
	SourceHTTP:   true,
	SourceSQLite: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validSources[c.Source] {
		return fmt.Errorf("invalid source %q: must be one of file, http, sqlite", c.Source)
	}

	switch c.Source {
	case SourceFile:
		if c.GlyphsPath == "" || c.FontsPath == "" {
			return fmt.Errorf("glyphs_path and fonts_path are required for the file source")
		}
	case SourceHTTP:
		if c.GlyphsURL == "" || c.FontsURL == "" {
			return fmt.Errorf("glyphs_url and fonts_url are required for the http source")
		}
	case SourceSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for the sqlite source")
		}
	}

	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be between 0 and 1")
	}
	if c.Search.InitialLoad <= 0 {
		return fmt.Errorf("search.initial_load must be positive")
	}
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("search.page_size must be positive")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.FetchTimeout != "" {
		if _, err := time.ParseDuration(c.Server.FetchTimeout); err != nil {
			return fmt.Errorf("server.fetch_timeout: %w", err)
		}
	}

	return nil
}
