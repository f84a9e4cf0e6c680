package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/iconicfonts/iconic/internal/assets"
	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/markup"
	"github.com/iconicfonts/iconic/internal/search"
	"github.com/iconicfonts/iconic/internal/snippets"
)

// ErrUnknownPage is returned by Render for a page key it does not know.
var ErrUnknownPage = errors.New("unknown page")

//go:embed static/*
var staticFS embed.FS

// StaticFS holds the stylesheet, scripts and favicon shared by all pages.
func StaticFS() embed.FS { return staticFS }

// Options configures page rendering.
type Options struct {
	Snippets *snippets.Library
	Markup   *markup.Renderer
	License  []byte
	URLs     assets.URLs
	Filter   search.Filter
	Pager    search.Pager
	// Static pages are built ahead of time and have no API to call.
	Static bool
}

// Pages renders the site's HTML pages from a catalog snapshot.
type Pages struct {
	opts Options
	tmpl map[string]*template.Template
}

// layoutData is passed to the shared layout.
type layoutData struct {
	Title     string
	Page      string
	Brand     string
	Nav       []NavItem
	Static    bool
	PackBase  string
	FontFaces template.CSS
	Body      any
}

type packEntry struct {
	Name       string
	Count      int
	ArchiveURL string
	Checked    bool
}

type iconsData struct {
	Query   search.Query
	Result  search.Result
	Packs   []packEntry
	Styles  []StyleButton
	Preview *catalog.Glyph
	Next    string
}

type fontEntry struct {
	catalog.Font
	ID string
}

type fontsData struct {
	Fonts     []fontEntry
	Search    string
	Results   []fontEntry
	Languages []snippets.Language
	Snippet   template.HTML
}

type indexData struct {
	Glyphs int
	Packs  int
	Fonts  int
}

type licenseData struct {
	Content template.HTML
}

// NewPages parses the page templates.
func NewPages(opts Options) (*Pages, error) {
	if opts.Markup == nil {
		opts.Markup = markup.New("")
	}
	if opts.Pager.Initial <= 0 || opts.Pager.Step <= 0 {
		opts.Pager = search.DefaultPager
	}
	if len(opts.License) == 0 {
		opts.License = defaultLicense
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Pages{opts: opts, tmpl: tmpl}, nil
}

// Names lists the page keys in build order.
func (p *Pages) Names() []string {
	return []string{"index", "icons", "fonts", "license"}
}

// Render writes the named page. params carries the page's URL query
// (q, pack, style on icons; search on fonts).
func (p *Pages) Render(w io.Writer, page string, c *catalog.Catalog, params url.Values) error {
	t, ok := p.tmpl[page]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}

	data := layoutData{
		Page:     page,
		Brand:    Brand,
		Nav:      Navbar(page),
		Static:   p.opts.Static,
		PackBase: p.opts.URLs.Base,
	}

	var err error
	switch page {
	case "index":
		data.Title = Brand
		data.Body = indexData{Glyphs: len(c.Glyphs), Packs: len(c.Packs), Fonts: len(c.Fonts)}
	case "icons":
		data.Title = "Icons"
		data.Body = p.iconsData(c, params)
	case "fonts":
		data.Title = "Fonts"
		data.FontFaces = FontFaceCSS(c.Fonts)
		data.Body, err = p.fontsData(c, params)
	case "license":
		data.Title = "License"
		var content template.HTML
		content, err = p.opts.Markup.Markdown(p.opts.License)
		data.Body = licenseData{Content: content}
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("executing %s template: %w", page, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (p *Pages) iconsData(c *catalog.Catalog, params url.Values) iconsData {
	q := search.ParseQuery(params)
	filtered := p.opts.Filter.Apply(c.Glyphs, q)
	result := p.opts.Pager.Page(filtered, 0, 0)

	selectedPacks := make(map[string]bool, len(q.Packs))
	for _, pk := range q.Packs {
		selectedPacks[pk] = true
	}
	packs := make([]packEntry, len(c.Packs))
	for i, name := range c.Packs {
		packs[i] = packEntry{
			Name:       name,
			Count:      c.PackCount(name),
			ArchiveURL: p.opts.URLs.Archive(name),
			Checked:    selectedPacks[name],
		}
	}

	styles := make([]string, len(q.Styles))
	for i, s := range q.Styles {
		styles[i] = search.NormalizeStyle(s)
	}

	d := iconsData{
		Query:  q,
		Result: result,
		Packs:  packs,
		Styles: StyleButtons(styles),
	}
	if len(filtered) > 0 {
		first := filtered[0]
		d.Preview = &first
	}
	if result.HasMore {
		v := q.Values()
		v.Set("offset", fmt.Sprint(result.NextOffset))
		d.Next = v.Encode()
	}
	return d
}

func (p *Pages) fontsData(c *catalog.Catalog, params url.Values) (fontsData, error) {
	d := fontsData{
		Search:    params.Get("search"),
		Languages: snippets.Languages,
	}
	for i, id := range FontIDs(c.Fonts) {
		d.Fonts = append(d.Fonts, fontEntry{Font: c.Fonts[i], ID: id})
	}
	// FilterFonts keeps order, so results line up with their accordion ids.
	matched := search.FilterFonts(c.Fonts, d.Search)
	for _, e := range d.Fonts {
		if len(matched) > 0 && e.Font == matched[0] {
			d.Results = append(d.Results, e)
			matched = matched[1:]
		}
	}

	if p.opts.Snippets != nil {
		s, err := p.opts.Snippets.Get(snippets.DefaultLanguage)
		if err != nil {
			return d, err
		}
		d.Snippet = s.HTML
	}
	return d, nil
}
