package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchGlyphsTool defines the search_glyphs MCP tool.
var searchGlyphsTool = mcp.NewTool("search_glyphs",
	mcp.WithDescription("Fuzzy-search the glyph catalog by name, unicode, character, tags or pack, optionally restricted to packs and styles."),
	mcp.WithString("query",
		mcp.Description("Search term; empty lists every glyph"),
	),
	mcp.WithString("packs",
		mcp.Description("Comma-separated pack names to keep"),
	),
	mcp.WithString("styles",
		mcp.Description("Comma-separated styles to keep (solid, regular, circle, square)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 50)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of matches to skip"),
	),
)

// listPacksTool defines the list_packs MCP tool.
var listPacksTool = mcp.NewTool("list_packs",
	mcp.WithDescription("List the glyph packs with their glyph counts and archive download URLs."),
)

// listFontsTool defines the list_fonts MCP tool.
var listFontsTool = mcp.NewTool("list_fonts",
	mcp.WithDescription("List the showcase fonts with their versions and font file URLs."),
	mcp.WithString("search",
		mcp.Description("Case-insensitive substring of the font name"),
	),
)

// getGlyphTool defines the get_glyph MCP tool.
var getGlyphTool = mcp.NewTool("get_glyph",
	mcp.WithDescription("Get every field of one glyph plus its SVG download URL."),
	mcp.WithString("pack",
		mcp.Required(),
		mcp.Description("Pack the glyph belongs to"),
	),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Glyph name within the pack"),
	),
)
