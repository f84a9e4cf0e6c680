package catalog

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `name,unicode,character,pack,style,tags
arrow-left,f101,,arrows,solid,"direction back previous"
arrow-right,f102,,arrows,regular,"direction forward next"

star,2605,★,shapes,solid,favorite rating
orphan,f200,x,,solid,no pack here
circle,2b24,⬤,shapes,circle,round dot
`

func TestParseGlyphs(t *testing.T) {
	glyphs, err := ParseGlyphs(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseGlyphs: %v", err)
	}
	if len(glyphs) != 4 {
		t.Fatalf("got %d glyphs, want 4 (blank and pack-less rows dropped)", len(glyphs))
	}

	first := glyphs[0]
	if first.Name != "arrow-left" || first.Pack != "arrows" || first.Style != "solid" {
		t.Errorf("unexpected first glyph: %+v", first)
	}
	if first.Character != "\uf101" {
		t.Errorf("character derived from unicode = %q, want U+F101", first.Character)
	}
	if first.Tags != "direction back previous" {
		t.Errorf("tags = %q", first.Tags)
	}
	if glyphs[2].Character != "★" {
		t.Errorf("explicit character not kept: %q", glyphs[2].Character)
	}
	for _, g := range glyphs {
		if g.Name == "orphan" {
			t.Error("row without pack should be dropped")
		}
	}
}

func TestParseGlyphsHeaderOrder(t *testing.T) {
	in := "\ufeffPack , Name,extra\nicons,home,ignored\n"
	glyphs, err := ParseGlyphs(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseGlyphs: %v", err)
	}
	if len(glyphs) != 1 || glyphs[0].Pack != "icons" || glyphs[0].Name != "home" {
		t.Errorf("unexpected result: %+v", glyphs)
	}
}

func TestParseGlyphsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no pack column", "name,unicode\nhome,f101\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGlyphs(strings.NewReader(tt.input))
			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestCharacterFor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2605", "★"},
		{"U+2605", "★"},
		{"0x2605", "★"},
		{"", ""},
		{"zzz", ""},
		{"110000", ""},
	}
	for _, tt := range tests {
		if got := characterFor(tt.in); got != tt.want {
			t.Errorf("characterFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFonts(t *testing.T) {
	in := `[
		{"name": "IconicMono", "fontFile": "fonts/IconicMono.woff2", "version": "1.2.0"},
		{"name": "  ", "fontFile": "fonts/blank.woff2", "version": "0"},
		{"name": "IconicSans", "fontFile": "fonts/IconicSans.woff2", "version": "2.0"}
	]`
	fonts, err := ParseFonts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseFonts: %v", err)
	}
	if len(fonts) != 2 {
		t.Fatalf("got %d fonts, want 2", len(fonts))
	}
	if fonts[0].FontFile != "fonts/IconicMono.woff2" || fonts[0].Version != "1.2.0" {
		t.Errorf("unexpected font: %+v", fonts[0])
	}

	if _, err := ParseFonts(strings.NewReader(`{"name":`)); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for malformed JSON, got %v", err)
	}
}

func TestPacksAndStyles(t *testing.T) {
	glyphs := []Glyph{
		{Name: "a", Pack: "p2", Style: "solid"},
		{Name: "b", Pack: "p1", Style: ""},
		{Name: "c", Pack: "p2", Style: "regular"},
		{Name: "d", Pack: "p1", Style: "solid"},
	}
	packs := Packs(glyphs)
	if strings.Join(packs, ",") != "p2,p1" {
		t.Errorf("Packs = %v, want first-seen order [p2 p1]", packs)
	}
	styles := Styles(glyphs)
	if strings.Join(styles, ",") != "solid,regular" {
		t.Errorf("Styles = %v, want [solid regular]", styles)
	}

	c := New(glyphs, nil)
	if c.PackCount("p1") != 2 {
		t.Errorf("PackCount(p1) = %d, want 2", c.PackCount("p1"))
	}
	if g, ok := c.Find("p2", "c"); !ok || g.Style != "regular" {
		t.Errorf("Find(p2, c) = %+v, %v", g, ok)
	}
	if _, ok := c.Find("p1", "c"); ok {
		t.Error("Find should not match across packs")
	}
}
