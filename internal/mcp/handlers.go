package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/search"
)

const (
	defaultLimit = 50
	maxLimit     = 1000
)

// handleSearchGlyphs filters the catalog the same way the icons page does.
func (s *Server) handleSearchGlyphs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := search.ParseQuery(url.Values{
		"q":     {request.GetString("query", "")},
		"pack":  {request.GetString("packs", "")},
		"style": {request.GetString("styles", "")},
	})

	limit := request.GetInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset := max(request.GetInt("offset", 0), 0)

	c := s.catalog.Current()
	if len(c.Glyphs) == 0 {
		return mcp.NewToolResultText("The glyph catalog is empty. Check the configured data source and run `iconic import` or reload the server."), nil
	}

	matches := s.filter.Apply(c.Glyphs, q)
	page := search.Pager{Initial: limit, Step: limit}.Page(matches, offset, limit)
	if page.Total == 0 {
		return mcp.NewToolResultText("No glyphs matched."), nil
	}
	return mcp.NewToolResultText(formatGlyphs(page)), nil
}

// handleListPacks lists every pack in first-seen order.
func (s *Server) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := s.catalog.Current()
	if len(c.Packs) == 0 {
		return mcp.NewToolResultText("No packs loaded."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d pack(s):\n", len(c.Packs)))
	for _, p := range c.Packs {
		sb.WriteString(fmt.Sprintf("- %s: %d glyph(s)", p, c.PackCount(p)))
		if s.urls.Base != "" {
			sb.WriteString(fmt.Sprintf(", archive %s", s.urls.Archive(p)))
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListFonts lists the showcase fonts, optionally filtered by name.
func (s *Server) handleListFonts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fonts := s.catalog.Current().Fonts
	if term := request.GetString("search", ""); strings.TrimSpace(term) != "" {
		fonts = search.FilterFonts(fonts, term)
	}
	if len(fonts) == 0 {
		return mcp.NewToolResultText("No fonts found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d font(s):\n", len(fonts)))
	for _, f := range fonts {
		sb.WriteString(fmt.Sprintf("- %s (version %s): %s\n", f.Name, f.Version, f.FontFile))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetGlyph returns one glyph's fields.
func (s *Server) handleGetGlyph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pack, err := request.RequireString("pack")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pack"), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	g, ok := s.catalog.Current().Find(pack, name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No glyph %q in pack %q. Use search_glyphs to find it.", name, pack)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name: %s\n", g.Name))
	sb.WriteString(fmt.Sprintf("Pack: %s\n", g.Pack))
	sb.WriteString(fmt.Sprintf("Unicode: U+%s\n", strings.ToUpper(g.Unicode)))
	sb.WriteString(fmt.Sprintf("Character: %s\n", g.Character))
	if g.Style != "" {
		sb.WriteString(fmt.Sprintf("Style: %s\n", g.Style))
	}
	if g.Tags != "" {
		sb.WriteString(fmt.Sprintf("Tags: %s\n", g.Tags))
	}
	if s.urls.Base != "" {
		sb.WriteString(fmt.Sprintf("SVG: %s\n", s.urls.SVG(g.Pack, g.Name)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatGlyphs renders one page of matches, one glyph per line.
func formatGlyphs(page search.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d glyph(s), showing %d-%d:\n",
		page.Total, page.Offset+1, page.Offset+len(page.Glyphs)))
	for _, g := range page.Glyphs {
		sb.WriteString(formatGlyph(g))
	}
	if page.HasMore {
		sb.WriteString(fmt.Sprintf("More results available at offset %d.\n", page.NextOffset))
	}
	return sb.String()
}

func formatGlyph(g catalog.Glyph) string {
	line := fmt.Sprintf("- %s %s U+%s [%s]", g.Character, g.Name, strings.ToUpper(g.Unicode), g.Pack)
	if g.Style != "" {
		line += " style=" + g.Style
	}
	if g.Tags != "" {
		line += " tags=" + g.Tags
	}
	return line + "\n"
}
