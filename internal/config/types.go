package config

// SourceType identifies where the catalog data is read from.
type SourceType string

const (
	SourceFile   SourceType = "file"
	SourceHTTP   SourceType = "http"
	SourceSQLite SourceType = "sqlite"
)

// Config is the top-level iconic configuration, corresponding to .iconic.yml.
type Config struct {
	Source     SourceType   `yaml:"source" koanf:"source"`
	GlyphsPath string       `yaml:"glyphs_path" koanf:"glyphs_path"`
	FontsPath  string       `yaml:"fonts_path" koanf:"fonts_path"`
	GlyphsURL  string       `yaml:"glyphs_url" koanf:"glyphs_url"`
	FontsURL   string       `yaml:"fonts_url" koanf:"fonts_url"`
	DBPath     string       `yaml:"db_path" koanf:"db_path"`
	PacksDir   string       `yaml:"packs_dir" koanf:"packs_dir"`
	PackBase   string       `yaml:"pack_base_url" koanf:"pack_base_url"`
	Snippets   string       `yaml:"snippets_dir" koanf:"snippets_dir"`
	License    string       `yaml:"license_file" koanf:"license_file"`
	OutputDir  string       `yaml:"output_dir" koanf:"output_dir"`
	Search     SearchConfig `yaml:"search" koanf:"search"`
	Server     ServerConfig `yaml:"server" koanf:"server"`
}

// SearchConfig tunes glyph filtering and paging.
type SearchConfig struct {
	Threshold   float64 `yaml:"threshold" koanf:"threshold"`
	InitialLoad int     `yaml:"initial_load" koanf:"initial_load"`
	PageSize    int     `yaml:"page_size" koanf:"page_size"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int    `yaml:"port" koanf:"port"`
	AllowAll     bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch        bool   `yaml:"watch" koanf:"watch"`
	FetchTimeout string `yaml:"fetch_timeout" koanf:"fetch_timeout"`
}
