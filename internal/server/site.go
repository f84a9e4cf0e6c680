package server

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/export"
	"github.com/iconicfonts/iconic/internal/site"
)

// registerSite serves the rendered pages at the same paths the static
// build writes them to.
func (s *Server) registerSite(r chi.Router) {
	static, err := fs.Sub(site.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	r.Get("/snippets/{file}", func(w http.ResponseWriter, r *http.Request) {
		lang := strings.TrimSuffix(chi.URLParam(r, "file"), ".html")
		if sn, ok := s.snippet(w, lang); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			io.WriteString(w, string(sn.HTML))
		}
	})

	r.Get("/if.csv", s.dataFile("text/csv; charset=utf-8", func(w io.Writer, c *catalog.Catalog) error {
		return export.WriteCSV(w, c.Glyphs)
	}))
	r.Get("/glyphs.json", s.dataFile("application/json", func(w io.Writer, c *catalog.Catalog) error {
		return export.WriteJSON(w, c.Glyphs)
	}))
	r.Get("/fonts.json", func(w http.ResponseWriter, r *http.Request) {
		fonts := s.deps.Holder.Current().Fonts
		if fonts == nil {
			fonts = []catalog.Font{}
		}
		writeJSON(w, http.StatusOK, fonts)
	})

	r.Get("/", s.handlePage)
	r.Get("/*", s.handlePage)
}

func (s *Server) dataFile(contentType string, write func(io.Writer, *catalog.Catalog) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := write(&buf, s.deps.Holder.Current()); err != nil {
			s.deps.Logger.Error("writing data file", "path", r.URL.Path, "err", err)
			writeError(w, http.StatusInternalServerError, "writing data failed")
			return
		}
		w.Header().Set("Content-Type", contentType)
		buf.WriteTo(w)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if s.deps.Pages == nil {
		http.NotFound(w, r)
		return
	}
	page := site.CurrentPage(r.URL.Path)

	var buf bytes.Buffer
	err := s.deps.Pages.Render(&buf, page, s.deps.Holder.Current(), r.URL.Query())
	switch {
	case errors.Is(err, site.ErrUnknownPage):
		http.NotFound(w, r)
		return
	case err != nil:
		s.deps.Logger.Error("rendering page", "page", page, "err", err)
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
