package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// dataFileCandidates lists file names probed in the working directory so
// the wizard can suggest paths that already exist.
var dataFileCandidates = map[string][]string{
	"glyphs": {"if.csv", "data/if.csv", "glyphs.csv"},
	"fonts":  {"fonts.json", "data/fonts.json"},
}

// detectDataFile returns the first candidate of the given kind that exists.
func detectDataFile(kind string) string {
	for _, name := range dataFileCandidates[kind] {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to iconic! Let's configure your catalog.")
	fmt.Println()

	cfg := DefaultConfig()

	sourcePrompt := promptui.Select{
		Label: "Where does the catalog come from",
		Items: []string{
			"file   : local if.csv and fonts.json",
			"http   : fetch both files from URLs",
			"sqlite : a snapshot written by `iconic import`",
		},
	}
	idx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}
	cfg.Source = []SourceType{SourceFile, SourceHTTP, SourceSQLite}[idx]

	switch cfg.Source {
	case SourceFile:
		if cfg.GlyphsPath, err = prompt("Glyph CSV path", firstNonEmpty(detectDataFile("glyphs"), cfg.GlyphsPath)); err != nil {
			return nil, err
		}
		if cfg.FontsPath, err = prompt("Fonts JSON path", firstNonEmpty(detectDataFile("fonts"), cfg.FontsPath)); err != nil {
			return nil, err
		}
	case SourceHTTP:
		if cfg.GlyphsURL, err = prompt("Glyph CSV URL", ""); err != nil {
			return nil, err
		}
		if cfg.FontsURL, err = prompt("Fonts JSON URL", ""); err != nil {
			return nil, err
		}
	case SourceSQLite:
		if cfg.DBPath, err = prompt("SQLite database path", cfg.DBPath); err != nil {
			return nil, err
		}
	}

	if cfg.PacksDir, err = prompt("Local packs directory (blank to use remote assets)", ""); err != nil {
		return nil, err
	}

	portStr, err := prompt("Server port", strconv.Itoa(cfg.Server.Port))
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	cfg.Server.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func prompt(label, def string) (string, error) {
	p := promptui.Prompt{Label: label, Default: def}
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(v), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
