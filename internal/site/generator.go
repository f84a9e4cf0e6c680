package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/export"
	"github.com/iconicfonts/iconic/internal/progress"
	"github.com/iconicfonts/iconic/internal/snippets"
)

// Generator writes the whole site as static files.
type Generator struct {
	Catalog  *catalog.Catalog
	Pages    *Pages
	Snippets *snippets.Library
	Reporter progress.Reporter
	Logger   *slog.Logger
}

// NewGenerator creates a Generator whose pages are rendered for static
// hosting.
func NewGenerator(c *catalog.Catalog, opts Options, reporter progress.Reporter, logger *slog.Logger) (*Generator, error) {
	opts.Static = true
	pages, err := NewPages(opts)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		Catalog:  c,
		Pages:    pages,
		Snippets: opts.Snippets,
		Reporter: reporter,
		Logger:   logger,
	}, nil
}

// output is one file of the built site.
type output struct {
	name  string
	write func(io.Writer) error
}

func (g *Generator) outputs() ([]output, error) {
	c := g.Catalog
	var outs []output

	for _, name := range g.Pages.Names() {
		outs = append(outs, output{name + ".html", func(w io.Writer) error {
			return g.Pages.Render(w, name, c, nil)
		}})
	}

	outs = append(outs,
		output{"if.csv", func(w io.Writer) error { return export.WriteCSV(w, c.Glyphs) }},
		output{"glyphs.json", func(w io.Writer) error { return export.WriteJSON(w, c.Glyphs) }},
		output{"fonts.json", func(w io.Writer) error {
			fonts := c.Fonts
			if fonts == nil {
				fonts = []catalog.Font{}
			}
			return json.NewEncoder(w).Encode(fonts)
		}},
	)

	if g.Snippets != nil {
		for _, lang := range snippets.Languages {
			outs = append(outs, output{path.Join("snippets", lang.Value+".html"), func(w io.Writer) error {
				s, err := g.Snippets.Get(lang.Value)
				if err != nil {
					return err
				}
				_, err = io.WriteString(w, string(s.HTML))
				return err
			}})
		}
	}

	static, err := fs.Glob(staticFS, "static/*")
	if err != nil {
		return nil, err
	}
	for _, name := range static {
		outs = append(outs, output{name, func(w io.Writer) error {
			data, err := staticFS.ReadFile(name)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		}})
	}
	return outs, nil
}

// Build writes every page, data file, snippet and static asset under
// outDir and returns the number of files written. Each file is replaced
// atomically so a server reading outDir never sees a partial file.
func (g *Generator) Build(ctx context.Context, outDir string) (int, error) {
	if g.Catalog == nil {
		return 0, fmt.Errorf("no catalog loaded")
	}
	outs, err := g.outputs()
	if err != nil {
		return 0, fmt.Errorf("listing site files: %w", err)
	}

	g.Reporter.Start(len(outs))
	defer g.Reporter.Finish()

	for i, o := range outs {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		var buf bytes.Buffer
		if err := o.write(&buf); err != nil {
			return i, fmt.Errorf("rendering %s: %w", o.name, err)
		}

		dst := filepath.Join(outDir, filepath.FromSlash(o.name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return i, err
		}
		if err := atomic.WriteFile(dst, &buf); err != nil {
			return i, fmt.Errorf("writing %s: %w", o.name, err)
		}
		g.Reporter.Update(i+1, o.name)
		g.Logger.Debug("wrote site file", "path", dst, "bytes", buf.Len())
	}
	return len(outs), nil
}
