// Package markup renders markdown and highlighted code to HTML.
package markup

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used for code blocks.
const DefaultStyle = "github"

// Renderer converts markdown to HTML with GFM and syntax highlighting.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer using the given chroma style.
func New(style string) *Renderer {
	if style == "" {
		style = DefaultStyle
	}
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)}
}

// Markdown renders a markdown document.
func (r *Renderer) Markdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Code renders src as a highlighted block in the given language.
func (r *Renderer) Code(lang string, src string) (template.HTML, error) {
	fence := "```"
	for strings.Contains(src, fence) {
		fence += "`"
	}
	doc := fence + lang + "\n" + strings.TrimRight(src, "\n") + "\n" + fence + "\n"
	return r.Markdown([]byte(doc))
}
