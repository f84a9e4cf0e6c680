package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Holder keeps the current catalog snapshot. Loads are serialized and
// each successful load replaces the snapshot; a failed load leaves the
// previous one in place.
type Holder struct {
	src    Source
	logger *slog.Logger

	cur atomic.Pointer[Catalog]

	mu        sync.Mutex
	listeners []func(*Catalog)
}

// NewHolder creates a Holder with an empty snapshot.
func NewHolder(src Source, logger *slog.Logger) *Holder {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Holder{src: src, logger: logger}
	h.cur.Store(New(nil, nil))
	return h
}

// Current returns the latest snapshot. It is never nil.
func (h *Holder) Current() *Catalog {
	return h.cur.Load()
}

// OnLoad registers fn to be called after every successful load.
func (h *Holder) OnLoad(fn func(*Catalog)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Load fetches both datasets and swaps in the new snapshot.
func (h *Holder) Load(ctx context.Context) (*Catalog, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	glyphs, fonts, err := h.fetch(ctx)
	if err != nil {
		h.logger.Error("loading catalog", "err", err)
		return nil, err
	}

	c := New(glyphs, fonts)
	h.cur.Store(c)
	h.logger.Info("catalog loaded", "glyphs", len(c.Glyphs), "packs", len(c.Packs), "fonts", len(c.Fonts))

	for _, fn := range h.listeners {
		fn(c)
	}
	return c, nil
}

func (h *Holder) fetch(ctx context.Context) ([]Glyph, []Font, error) {
	if ss, ok := h.src.(SnapshotSource); ok {
		glyphs, fonts, err := ss.Snapshot(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("loading snapshot: %w", err)
		}
		return glyphs, fonts, nil
	}

	glyphs, err := h.src.Glyphs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading glyphs: %w", err)
	}
	fonts, err := h.src.Fonts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading fonts: %w", err)
	}
	return glyphs, fonts, nil
}
