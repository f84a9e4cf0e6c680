package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/iconicfonts/iconic/internal/assets"
	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Snapshotter yields the current catalog. *catalog.Holder satisfies it.
type Snapshotter interface {
	Current() *catalog.Catalog
}

// Server wraps an MCP server that exposes glyph and font lookup tools.
type Server struct {
	catalog Snapshotter
	filter  search.Filter
	urls    assets.URLs
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over the given catalog.
func NewServer(c Snapshotter, filter search.Filter, urls assets.URLs) *Server {
	s := &Server{
		catalog: c,
		filter:  filter,
		urls:    urls,
	}

	s.mcp = server.NewMCPServer(
		"iconic",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchGlyphsTool, s.handleSearchGlyphs)
	s.mcp.AddTool(listPacksTool, s.handleListPacks)
	s.mcp.AddTool(listFontsTool, s.handleListFonts)
	s.mcp.AddTool(getGlyphTool, s.handleGetGlyph)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
