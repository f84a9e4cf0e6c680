package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iconicfonts/iconic/internal/assets"
	"github.com/iconicfonts/iconic/internal/catalog"
	"github.com/iconicfonts/iconic/internal/livereload"
	"github.com/iconicfonts/iconic/internal/search"
	"github.com/iconicfonts/iconic/internal/site"
	"github.com/iconicfonts/iconic/internal/snippets"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool          // allow all CORS origins (dev mode)
	Timeout  time.Duration // per-request timeout for everything but websockets
}

// Deps are the components the handlers read from.
type Deps struct {
	Holder   *catalog.Holder
	Pages    *site.Pages
	Snippets *snippets.Library
	URLs     assets.URLs
	Local    *assets.LocalPacks // nil when no packs directory is configured
	Fetcher  *assets.Fetcher    // nil disables the SVG proxy
	Hub      *livereload.Hub
	Filter   search.Filter
	Pager    search.Pager
	Logger   *slog.Logger
}

// Server serves the catalog site and its JSON API.
type Server struct {
	cfg        Config
	deps       Deps
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over deps.
func New(cfg Config, deps Deps) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Pager.Initial <= 0 || deps.Pager.Step <= 0 {
		deps.Pager = search.DefaultPager
	}
	if deps.Hub == nil {
		deps.Hub = livereload.NewHub(deps.Logger)
	}

	s := &Server{cfg: cfg, deps: deps}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Websocket connections outlive any request timeout.
	livereload.RegisterRoutes(r, s.deps.Hub, s.deps.Holder)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/api/glyphs", s.handleGlyphs)
		r.Get("/api/packs", s.handlePacks)
		r.Get("/api/packs/{pack}/archive", s.handleArchive)
		r.Get("/api/styles", s.handleStyles)
		r.Get("/api/fonts", s.handleFonts)
		r.Get("/api/snippets/{lang}", s.handleSnippet)
		r.Get("/api/svg/{pack}/{name}", s.handleSVG)

		s.registerSite(r)
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live reload hub.
func (s *Server) Hub() *livereload.Hub { return s.deps.Hub }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.deps.Logger.Info("iconic server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.deps.Hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
