package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// glyphColumns maps lowercased header names to field setters.
var glyphColumns = map[string]func(*Glyph, string){
	"name":      func(g *Glyph, v string) { g.Name = v },
	"unicode":   func(g *Glyph, v string) { g.Unicode = v },
	"character": func(g *Glyph, v string) { g.Character = v },
	"pack":      func(g *Glyph, v string) { g.Pack = v },
	"style":     func(g *Glyph, v string) { g.Style = v },
	"tags":      func(g *Glyph, v string) { g.Tags = v },
}

// ParseGlyphs reads the glyph table. The first row is the header; columns
// are matched by name and unknown columns are ignored. Blank lines and rows
// without a pack are dropped.
func ParseGlyphs(r io.Reader) ([]Glyph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: glyph table is empty", ErrParse)
		}
		return nil, fmt.Errorf("%w: reading header: %v", ErrParse, err)
	}

	setters := make([]func(*Glyph, string), len(header))
	hasPack := false
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		setters[i] = glyphColumns[h]
		if h == "pack" {
			hasPack = true
		}
	}
	if !hasPack {
		return nil, fmt.Errorf("%w: glyph table has no pack column", ErrParse)
	}

	var glyphs []Glyph
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if isBlank(rec) {
			continue
		}

		var g Glyph
		for i, v := range rec {
			if i < len(setters) && setters[i] != nil {
				setters[i](&g, strings.TrimSpace(v))
			}
		}
		if g.Pack == "" {
			continue
		}
		if g.Character == "" {
			g.Character = characterFor(g.Unicode)
		}
		glyphs = append(glyphs, g)
	}

	return glyphs, nil
}

// characterFor decodes a hex code point such as "f101" or "U+F101".
func characterFor(code string) string {
	code = strings.TrimPrefix(strings.TrimPrefix(strings.ToUpper(code), "U+"), "0X")
	if code == "" {
		return ""
	}
	n, err := strconv.ParseUint(code, 16, 32)
	if err != nil || n > 0x10FFFF {
		return ""
	}
	return string(rune(n))
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseFonts reads the JSON font list. Entries without a name are dropped.
func ParseFonts(r io.Reader) ([]Font, error) {
	var raw []Font
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding fonts: %v", ErrParse, err)
	}
	fonts := raw[:0]
	for _, f := range raw {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			continue
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}
