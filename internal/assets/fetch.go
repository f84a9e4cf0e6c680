package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxSVGSize bounds remote SVG downloads.
const maxSVGSize = 2 << 20

// Fetcher downloads SVG content from the upstream packs repository.
type Fetcher struct {
	URLs    URLs
	Client  *http.Client
	Timeout time.Duration
}

// SVG fetches one glyph's SVG.
func (f *Fetcher) SVG(ctx context.Context, pack, name string) ([]byte, error) {
	if !validName(pack) || !validName(name) {
		return nil, ErrNotFound
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	url := f.URLs.SVG(pack, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSVGSize))
}
