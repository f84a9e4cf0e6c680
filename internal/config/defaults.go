package config

import "time"

// DefaultPackBase is where the upstream repository publishes pack assets.
const DefaultPackBase = "https://raw.githubusercontent.com/iconicFonts/if/main/packs"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source:     SourceFile,
		GlyphsPath: "if.csv",
		FontsPath:  "fonts.json",
		DBPath:     ".iconic/catalog.db",
		PackBase:   DefaultPackBase,
		OutputDir:  "site",
		Search: SearchConfig{
			Threshold:   0.5,
			InitialLoad: 500,
			PageSize:    200,
		},
		Server: ServerConfig{
			Port:         8080,
			FetchTimeout: "15s",
		},
	}
}

// Timeout parses FetchTimeout, falling back to 15 seconds.
func (s ServerConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(s.FetchTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
