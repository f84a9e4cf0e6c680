package site

import (
	"reflect"
	"strings"
	"testing"

	"github.com/iconicfonts/iconic/internal/catalog"
)

func TestCurrentPage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index"},
		{"", "index"},
		{"/icons.html", "icons"},
		{"/docs/Fonts.html", "fonts"},
		{"/license.html/", "license"},
		{"/index.html", "index"},
	}
	for _, tt := range tests {
		if got := CurrentPage(tt.path); got != tt.want {
			t.Errorf("CurrentPage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNavbar(t *testing.T) {
	items := Navbar("fonts")
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for _, it := range items {
		if it.Active != (it.Name == "Fonts") {
			t.Errorf("%s active = %v", it.Name, it.Active)
		}
	}
	if Navbar("fonts")[0].Active || navPages[1].Active {
		t.Error("Navbar must not modify the shared page list")
	}
}

func TestStyleButtons(t *testing.T) {
	buttons := StyleButtons([]string{"circle"})
	if len(buttons) != 4 {
		t.Fatalf("got %d buttons, want 4", len(buttons))
	}
	for _, b := range buttons {
		if b.Active != (b.Value == "circle") {
			t.Errorf("%s active = %v", b.Value, b.Active)
		}
	}
	if got := buttons[3].Label(); got != "■ square" {
		t.Errorf("label = %q", got)
	}
}

func TestFontFaceCSS(t *testing.T) {
	css := string(FontFaceCSS([]catalog.Font{
		{Name: `Odd "Name"`, FontFile: "a.woff2"},
		{Name: "Plain", FontFile: "b.woff2"},
	}))
	if strings.Count(css, "@font-face") != 2 {
		t.Errorf("expected two rules:\n%s", css)
	}
	if !strings.Contains(css, `font-family: "Odd \"Name\""`) {
		t.Errorf("name not escaped:\n%s", css)
	}
	if !strings.Contains(css, `src: url("b.woff2") format("woff2")`) {
		t.Errorf("missing src:\n%s", css)
	}
}

func TestFontID(t *testing.T) {
	tests := map[string]string{
		"Iconic Sans": "Iconic-Sans",
		"  ":          "font",
		"a/b.c":       "a-b-c",
	}
	for in, want := range tests {
		if got := FontID(in); got != want {
			t.Errorf("FontID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFontIDsAreUnique(t *testing.T) {
	fonts := []catalog.Font{{Name: "Iconic Sans"}, {Name: "Iconic-Sans"}, {Name: "Mono"}, {Name: "Iconic/Sans"}}
	got := FontIDs(fonts)
	want := []string{"Iconic-Sans", "Iconic-Sans-2", "Mono", "Iconic-Sans-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FontIDs = %v, want %v", got, want)
	}
}
