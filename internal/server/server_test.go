package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/iconicfonts/iconic/internal/assets"
	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/search"
	"github.com/iconicfonts/iconic/internal/site"
	"github.com/iconicfonts/iconic/internal/snippets"
)

type stubSource struct {
	glyphs []catalog.Glyph
	fonts  []catalog.Font
}

func (s stubSource) Glyphs(context.Context) ([]catalog.Glyph, error) { return s.glyphs, nil }
func (s stubSource) Fonts(context.Context) ([]catalog.Font, error)   { return s.fonts, nil }

func testGlyphs(n int) []catalog.Glyph {
	glyphs := []catalog.Glyph{
		{Name: "home", Unicode: "f101", Character: "\uf101", Pack: "essentials", Style: "solid", Tags: "house"},
		{Name: "star", Unicode: "2605", Character: "★", Pack: "shapes", Style: "regular", Tags: "favorite"},
		{Name: "user", Unicode: "f102", Character: "\uf102", Pack: "essentials", Style: "regular", Tags: "person"},
	}
	for i := 0; i < n; i++ {
		glyphs = append(glyphs, catalog.Glyph{Name: fmt.Sprintf("bulk-%04d", i), Unicode: "2605", Character: "★", Pack: "bulk"})
	}
	return glyphs
}

type testEnv struct {
	srv      *Server
	upstream *httptest.Server
}

func newTestServer(t *testing.T, extra int) *testEnv {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/shapes/svgs/star.svg" {
			io.WriteString(w, `<svg id="remote-star"/>`)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(upstream.Close)

	holder := catalog.NewHolder(stubSource{
		glyphs: testGlyphs(extra),
		fonts: []catalog.Font{
			{Name: "Iconic Sans", FontFile: "a.woff2", Version: "1"},
			{Name: "Mono Glyphs", FontFile: "b.woff2", Version: "2"},
		},
	}, nil)
	if _, err := holder.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	lib, err := snippets.New("", nil)
	if err != nil {
		t.Fatalf("snippets.New: %v", err)
	}
	urls := assets.URLs{Base: upstream.URL}
	pages, err := site.NewPages(site.Options{Snippets: lib, URLs: urls})
	if err != nil {
		t.Fatalf("NewPages: %v", err)
	}
	local := assets.NewLocalPacksFS(fstest.MapFS{
		"essentials/svgs/home.svg": {Data: []byte(`<svg id="local-home"/>`)},
		"essentials/svgs/user.svg": {Data: []byte(`<svg id="local-user"/>`)},
	})

	srv := New(Config{Port: 0}, Deps{
		Holder:   holder,
		Pages:    pages,
		Snippets: lib,
		URLs:     urls,
		Local:    local,
		Fetcher:  &assets.Fetcher{URLs: urls},
	})
	return &testEnv{srv: srv, upstream: upstream}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	e.srv.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealthCheck(t *testing.T) {
	env := newTestServer(t, 0)
	w := env.get(t, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode[map[string]string](t, w)
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	env := newTestServer(t, 0)
	env.srv = New(Config{AllowAll: true}, env.srv.deps)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	env.srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestGlyphsEndpoint(t *testing.T) {
	env := newTestServer(t, 0)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"home", "star", "user"}},
		{"?pack=essentials", []string{"home", "user"}},
		{"?style=regular", []string{"star", "user"}},
		{"?style=%E2%98%85+regular&pack=essentials", []string{"user"}},
		{"?q=favorite", []string{"star"}},
		{"?q=zzzzzz", nil},
	}
	for _, tt := range tests {
		w := env.get(t, "/api/glyphs"+tt.query)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.query, w.Code)
		}
		res := decode[search.Result](t, w)
		var names []string
		for _, g := range res.Glyphs {
			names = append(names, g.Name)
		}
		if strings.Join(names, ",") != strings.Join(tt.want, ",") {
			t.Errorf("%s: got %v, want %v", tt.query, names, tt.want)
		}
		if res.Total != len(tt.want) {
			t.Errorf("%s: total = %d, want %d", tt.query, res.Total, len(tt.want))
		}
	}
}

func TestGlyphsPaging(t *testing.T) {
	env := newTestServer(t, 800)

	first := decode[search.Result](t, env.get(t, "/api/glyphs"))
	if len(first.Glyphs) != 500 || !first.HasMore || first.NextOffset != 500 {
		t.Fatalf("first page: len=%d more=%v next=%d", len(first.Glyphs), first.HasMore, first.NextOffset)
	}

	second := decode[search.Result](t, env.get(t, fmt.Sprintf("/api/glyphs?offset=%d", first.NextOffset)))
	if len(second.Glyphs) != 200 || second.Offset != 500 || second.NextOffset != 700 {
		t.Fatalf("second page: len=%d offset=%d next=%d", len(second.Glyphs), second.Offset, second.NextOffset)
	}
	// The three named glyphs come first, so overall index 500 is bulk-0497.
	if second.Glyphs[0].Name != "bulk-0497" {
		t.Errorf("second page starts at %s, want bulk-0497", second.Glyphs[0].Name)
	}

	last := decode[search.Result](t, env.get(t, "/api/glyphs?offset=700"))
	if len(last.Glyphs) != 103 || last.HasMore {
		t.Errorf("last page: len=%d more=%v", len(last.Glyphs), last.HasMore)
	}
}

func TestGlyphsLimit(t *testing.T) {
	env := newTestServer(t, 1500)

	tests := []struct {
		query string
		want  int
	}{
		{"?limit=10", 10},
		{"?limit=0", 1},
		{"?limit=-5", 1},
		{"?limit=5000", MaxLimit},
	}
	for _, tt := range tests {
		res := decode[search.Result](t, env.get(t, "/api/glyphs"+tt.query))
		if len(res.Glyphs) != tt.want {
			t.Errorf("%s: got %d glyphs, want %d", tt.query, len(res.Glyphs), tt.want)
		}
	}
}

func TestGlyphsBadParams(t *testing.T) {
	env := newTestServer(t, 0)
	for _, q := range []string{"?offset=-1", "?offset=abc", "?limit=ten"} {
		w := env.get(t, "/api/glyphs"+q)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, w.Code)
			continue
		}
		if body := decode[map[string]string](t, w); body["error"] == "" {
			t.Errorf("%s: expected an error message", q)
		}
	}
}

func TestPacksEndpoint(t *testing.T) {
	env := newTestServer(t, 0)
	packs := decode[[]packInfo](t, env.get(t, "/api/packs"))
	if len(packs) != 2 {
		t.Fatalf("got %d packs, want 2", len(packs))
	}
	if packs[0].Name != "essentials" || packs[0].Count != 2 || !packs[0].Local {
		t.Errorf("essentials = %+v", packs[0])
	}
	if packs[0].ArchiveURL != "/api/packs/essentials/archive" {
		t.Errorf("local archive url = %q", packs[0].ArchiveURL)
	}
	if packs[1].Local || packs[1].ArchiveURL != env.upstream.URL+"/shapes/svgs.zip" {
		t.Errorf("shapes = %+v", packs[1])
	}
}

func TestArchiveEndpoint(t *testing.T) {
	env := newTestServer(t, 0)

	w := env.get(t, "/api/packs/essentials/archive")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q", ct)
	}
	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "home.svg" {
		t.Errorf("archive entries = %d, first %q", len(zr.File), zr.File[0].Name)
	}

	w = env.get(t, "/api/packs/shapes/archive")
	if w.Code != http.StatusFound || w.Header().Get("Location") != env.upstream.URL+"/shapes/svgs.zip" {
		t.Errorf("remote archive: code %d location %q", w.Code, w.Header().Get("Location"))
	}

	if w := env.get(t, "/api/packs/nope/archive"); w.Code != http.StatusNotFound {
		t.Errorf("unknown pack: expected 404, got %d", w.Code)
	}
}

func TestSVGEndpoint(t *testing.T) {
	env := newTestServer(t, 0)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/api/svg/essentials/home", http.StatusOK, "local-home"},
		{"/api/svg/essentials/user.svg", http.StatusOK, "local-user"},
		{"/api/svg/shapes/star", http.StatusOK, "remote-star"},
		{"/api/svg/shapes/missing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		w := env.get(t, tt.path)
		if w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.code, w.Code)
			continue
		}
		if tt.code == http.StatusOK {
			if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
				t.Errorf("%s: content type = %q", tt.path, ct)
			}
			if !strings.Contains(w.Body.String(), tt.body) {
				t.Errorf("%s: body = %q", tt.path, w.Body.String())
			}
		}
	}
}

func TestStylesEndpoint(t *testing.T) {
	env := newTestServer(t, 0)
	styles := decode[[]styleInfo](t, env.get(t, "/api/styles"))
	if len(styles) != 4 {
		t.Fatalf("got %d styles, want 4", len(styles))
	}
	if styles[1].Value != "regular" || styles[1].Label != "★ regular" {
		t.Errorf("regular = %+v", styles[1])
	}
}

func TestFontsEndpoint(t *testing.T) {
	env := newTestServer(t, 0)
	if fonts := decode[[]catalog.Font](t, env.get(t, "/api/fonts")); len(fonts) != 2 {
		t.Errorf("got %d fonts, want 2", len(fonts))
	}
	fonts := decode[[]catalog.Font](t, env.get(t, "/api/fonts?search=mono"))
	if len(fonts) != 1 || fonts[0].Name != "Mono Glyphs" {
		t.Errorf("search = %+v", fonts)
	}
	w := env.get(t, "/api/fonts?search=nothing")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty search body = %q", w.Body.String())
	}
}

func TestSnippetEndpoints(t *testing.T) {
	env := newTestServer(t, 0)

	sn := decode[snippets.Snippet](t, env.get(t, "/api/snippets/css"))
	if sn.Language.Value != "css" || !strings.Contains(string(sn.HTML), "<pre") {
		t.Errorf("css snippet = %+v", sn.Language)
	}
	if sn := decode[snippets.Snippet](t, env.get(t, "/api/snippets/cobol")); sn.Language.Value != "javascript" {
		t.Errorf("unknown language fell back to %q", sn.Language.Value)
	}

	w := env.get(t, "/snippets/html.html")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("snippet file: code %d type %q", w.Code, w.Header().Get("Content-Type"))
	}
}

func TestPages(t *testing.T) {
	env := newTestServer(t, 0)

	tests := []struct {
		path string
		code int
		want string
	}{
		{"/", http.StatusOK, `data-page="index"`},
		{"/icons.html", http.StatusOK, `id="glyphCount"`},
		{"/fonts.html?search=mono", http.StatusOK, `id="searchResults"`},
		{"/license.html", http.StatusOK, `class="license"`},
		{"/nope.html", http.StatusNotFound, ""},
		{"/static/site.js", http.StatusOK, "setupIcons"},
		{"/static/favicon.svg", http.StatusOK, "<svg"},
	}
	for _, tt := range tests {
		w := env.get(t, tt.path)
		if w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.code, w.Code)
			continue
		}
		if tt.want != "" && !strings.Contains(w.Body.String(), tt.want) {
			t.Errorf("%s: body missing %q", tt.path, tt.want)
		}
	}
}

func TestDataFiles(t *testing.T) {
	env := newTestServer(t, 0)

	w := env.get(t, "/if.csv")
	glyphs, err := catalog.ParseGlyphs(w.Body)
	if err != nil {
		t.Fatalf("if.csv: %v", err)
	}
	if len(glyphs) != 3 {
		t.Errorf("if.csv has %d glyphs, want 3", len(glyphs))
	}

	if g := decode[[]catalog.Glyph](t, env.get(t, "/glyphs.json")); len(g) != 3 {
		t.Errorf("glyphs.json has %d glyphs", len(g))
	}
	if f := decode[[]catalog.Font](t, env.get(t, "/fonts.json")); len(f) != 2 {
		t.Errorf("fonts.json has %d fonts", len(f))
	}
}
