package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iconicfonts/iconic/internal/assets"
	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/search"
	"github.com/iconicfonts/iconic/internal/site"
	"github.com/iconicfonts/iconic/internal/snippets"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 1000

type packInfo struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	ArchiveURL string `json:"archive_url"`
	Local      bool   `json:"local"`
}

type styleInfo struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	Character string `json:"character"`
}

func (s *Server) handleGlyphs(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	offset, err := intParam(params, "offset")
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	limit, err := intParam(params, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	if params.Has("limit") {
		limit = min(max(limit, 1), MaxLimit)
	}

	c := s.deps.Holder.Current()
	filtered := s.deps.Filter.Apply(c.Glyphs, search.ParseQuery(params))
	writeJSON(w, http.StatusOK, s.deps.Pager.Page(filtered, offset, limit))
}

func intParam(v url.Values, key string) (int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (s *Server) handlePacks(w http.ResponseWriter, r *http.Request) {
	c := s.deps.Holder.Current()
	out := make([]packInfo, 0, len(c.Packs))
	for _, name := range c.Packs {
		p := packInfo{Name: name, Count: c.PackCount(name), ArchiveURL: s.deps.URLs.Archive(name)}
		if s.hasLocal(name) {
			p.Local = true
			p.ArchiveURL = "/api/packs/" + url.PathEscape(name) + "/archive"
		}
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) hasLocal(pack string) bool {
	if s.deps.Local == nil {
		return false
	}
	_, err := s.deps.Local.SVGs(pack)
	return err == nil
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	pack := pathParam(r, "pack")

	if s.hasLocal(pack) {
		var buf bytes.Buffer
		if err := s.deps.Local.WriteArchive(&buf, pack); err != nil {
			s.deps.Logger.Error("building pack archive", "pack", pack, "err", err)
			writeError(w, http.StatusInternalServerError, "building archive failed")
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(pack, `"`, "")+`.zip"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		buf.WriteTo(w)
		return
	}

	known := false
	for _, p := range s.deps.Holder.Current().Packs {
		if p == pack {
			known = true
			break
		}
	}
	if !known || s.deps.URLs.Base == "" {
		writeError(w, http.StatusNotFound, "pack not found")
		return
	}
	http.Redirect(w, r, s.deps.URLs.Archive(pack), http.StatusFound)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	pack := pathParam(r, "pack")
	name := strings.TrimSuffix(pathParam(r, "name"), ".svg")

	data, err := s.svg(r, pack, name)
	switch {
	case errors.Is(err, assets.ErrNotFound):
		writeError(w, http.StatusNotFound, "svg not found")
		return
	case err != nil:
		s.deps.Logger.Error("fetching svg", "pack", pack, "name", name, "err", err)
		writeError(w, http.StatusBadGateway, "fetching svg failed")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

func (s *Server) svg(r *http.Request, pack, name string) ([]byte, error) {
	if s.deps.Local != nil {
		data, err := s.deps.Local.SVG(pack, name)
		if err == nil || !errors.Is(err, assets.ErrNotFound) {
			return data, err
		}
	}
	if s.deps.Fetcher == nil {
		return nil, assets.ErrNotFound
	}
	return s.deps.Fetcher.SVG(r.Context(), pack, name)
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	buttons := site.StyleButtons(nil)
	out := make([]styleInfo, len(buttons))
	for i, b := range buttons {
		out[i] = styleInfo{Value: b.Value, Label: b.Label(), Character: b.Character}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFonts(w http.ResponseWriter, r *http.Request) {
	fonts := s.deps.Holder.Current().Fonts
	if term := r.URL.Query().Get("search"); strings.TrimSpace(term) != "" {
		fonts = search.FilterFonts(fonts, term)
	}
	if fonts == nil {
		fonts = []catalog.Font{}
	}
	writeJSON(w, http.StatusOK, fonts)
}

func (s *Server) handleSnippet(w http.ResponseWriter, r *http.Request) {
	sn, ok := s.snippet(w, chi.URLParam(r, "lang"))
	if ok {
		writeJSON(w, http.StatusOK, sn)
	}
}

func (s *Server) snippet(w http.ResponseWriter, lang string) (snippets.Snippet, bool) {
	if s.deps.Snippets == nil {
		writeError(w, http.StatusNotFound, "snippets not configured")
		return snippets.Snippet{}, false
	}
	sn, err := s.deps.Snippets.Get(lang)
	if err != nil {
		s.deps.Logger.Error("rendering snippet", "lang", lang, "err", err)
		writeError(w, http.StatusInternalServerError, "rendering snippet failed")
		return snippets.Snippet{}, false
	}
	return sn, true
}

// pathParam returns an unescaped chi URL parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
