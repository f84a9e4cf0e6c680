// Package livereload tells open browser pages when the catalog has been
// reloaded, and reloads it when the local data files change.
package livereload

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iconicfonts/iconic/internal/catalog"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 4
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is the message pushed to every connected page after a reload.
type Event struct {
	Type     string    `json:"type"`
	Glyphs   int       `json:"glyphs"`
	Packs    int       `json:"packs"`
	Fonts    int       `json:"fonts"`
	LoadedAt time.Time `json:"loaded_at"`
}

// EventFor summarizes a catalog snapshot.
func EventFor(c *catalog.Catalog) Event {
	return Event{
		Type:     "catalog",
		Glyphs:   len(c.Glyphs),
		Packs:    len(c.Packs),
		Fonts:    len(c.Fonts),
		LoadedAt: c.LoadedAt,
	}
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub tracks websocket clients and fans events out to them.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{logger: logger, clients: make(map[*client]struct{})}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Notify broadcasts the summary of c. It matches catalog.Holder.OnLoad.
func (h *Hub) Notify(c *catalog.Catalog) {
	h.Broadcast(EventFor(c))
}

// Broadcast queues ev for every client. A client whose queue is full is
// disconnected rather than allowed to block the others.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			h.logger.Warn("live reload client too slow, dropping", "remote", c.conn.RemoteAddr())
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the request and keeps the client registered until
// the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan Event, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("live reload client connected", "remote", conn.RemoteAddr())

	go h.writeLoop(c)

	// Pages never send anything; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read", "err", err)
			}
			break
		}
	}

	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for ev := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			h.logger.Warn("websocket write", "err", err)
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}
