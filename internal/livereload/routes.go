package livereload

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iconicfonts/iconic/internal/catalog"
)

// Loader reloads the catalog. *catalog.Holder satisfies it.
type Loader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// RegisterRoutes mounts the websocket endpoint and the manual reload
// trigger.
func RegisterRoutes(r chi.Router, hub *Hub, loader Loader) {
	r.Get("/ws/reload", hub.ServeHTTP)
	r.Post("/api/reload", func(w http.ResponseWriter, r *http.Request) {
		c, err := loader.Load(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, EventFor(c))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
