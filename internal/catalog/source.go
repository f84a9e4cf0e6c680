package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Source provides the raw datasets.
type Source interface {
	Glyphs(ctx context.Context) ([]Glyph, error)
	Fonts(ctx context.Context) ([]Font, error)
}

// SnapshotSource is a Source that can return both datasets from one
// consistent read. Holder prefers it over separate Glyphs and Fonts calls.
type SnapshotSource interface {
	Source
	Snapshot(ctx context.Context) ([]Glyph, []Font, error)
}

// FileSource reads both datasets from local files.
type FileSource struct {
	GlyphsPath string
	FontsPath  string
}

func (s FileSource) Glyphs(ctx context.Context) ([]Glyph, error) {
	f, err := os.Open(s.GlyphsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer f.Close()
	return ParseGlyphs(f)
}

func (s FileSource) Fonts(ctx context.Context) ([]Font, error) {
	f, err := os.Open(s.FontsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer f.Close()
	return ParseFonts(f)
}

// HTTPSource fetches both datasets from remote URLs.
type HTTPSource struct {
	GlyphsURL string
	FontsURL  string
	Client    *http.Client
}

func (s HTTPSource) Glyphs(ctx context.Context) ([]Glyph, error) {
	body, err := s.get(ctx, s.GlyphsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseGlyphs(body)
}

func (s HTTPSource) Fonts(ctx context.Context) ([]Font, error) {
	body, err := s.get(ctx, s.FontsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseFonts(body)
}

func (s HTTPSource) get(ctx context.Context, url string) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrFetch, url, resp.StatusCode)
	}
	return resp.Body, nil
}
