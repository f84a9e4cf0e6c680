// Package catalog loads the glyph table and font list and keeps the
// current read-only snapshot of both.
package catalog

import (
	"errors"
	"time"
)

var (
	// ErrFetch is returned when a data source cannot be read.
	ErrFetch = errors.New("fetch failed")
	// ErrParse is returned when a data source is malformed.
	ErrParse = errors.New("parse failed")
)

// Glyph is a single visual character entry.
type Glyph struct {
	Name      string `json:"name"`
	Unicode   string `json:"unicode"`
	Character string `json:"character"`
	Pack      string `json:"pack"`
	Style     string `json:"style"`
	Tags      string `json:"tags"`
}

// ID identifies a glyph across packs, e.g. "arrow-left_solid-pack".
func (g Glyph) ID() string {
	return g.Name + "_" + g.Pack
}

// Font is a showcase font with its downloadable asset.
type Font struct {
	Name     string `json:"name"`
	FontFile string `json:"fontFile"`
	Version  string `json:"version"`
}

// Catalog is an immutable snapshot of both datasets.
type Catalog struct {
	Glyphs   []Glyph
	Fonts    []Font
	Packs    []string
	Styles   []string
	LoadedAt time.Time
}

// New builds a Catalog, deriving the pack and style lists.
func New(glyphs []Glyph, fonts []Font) *Catalog {
	return &Catalog{
		Glyphs:   glyphs,
		Fonts:    fonts,
		Packs:    Packs(glyphs),
		Styles:   Styles(glyphs),
		LoadedAt: time.Now(),
	}
}

// PackCount returns the number of glyphs in the named pack.
func (c *Catalog) PackCount(pack string) int {
	n := 0
	for _, g := range c.Glyphs {
		if g.Pack == pack {
			n++
		}
	}
	return n
}

// Find returns the glyph with the given pack and name.
func (c *Catalog) Find(pack, name string) (Glyph, bool) {
	for _, g := range c.Glyphs {
		if g.Pack == pack && g.Name == name {
			return g, true
		}
	}
	return Glyph{}, false
}

// Packs returns distinct packs in first-seen order.
func Packs(glyphs []Glyph) []string {
	return distinct(glyphs, func(g Glyph) string { return g.Pack })
}

// Styles returns distinct non-empty styles in first-seen order.
func Styles(glyphs []Glyph) []string {
	return distinct(glyphs, func(g Glyph) string { return g.Style })
}

func distinct(glyphs []Glyph, key func(Glyph) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range glyphs {
		k := key(g)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
