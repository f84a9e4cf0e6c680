package search

import "github.com/iconicfonts/iconic/internal/catalog"

// Pager slices a filtered list into the pages the grid appends: one
// large initial page followed by fixed-size increments.
type Pager struct {
	Initial int
	Step    int
}

// DefaultPager matches the grid's 500-then-200 loading.
var DefaultPager = Pager{Initial: 500, Step: 200}

// Result is one page of a filtered list.
type Result struct {
	Total      int             `json:"total"`
	Offset     int             `json:"offset"`
	Glyphs     []catalog.Glyph `json:"glyphs"`
	HasMore    bool            `json:"has_more"`
	NextOffset int             `json:"next_offset"`
}

// Window returns the bounds of the n-th load, where load 0 is the
// initial page.
func (p Pager) Window(n int) (start, end int) {
	if n <= 0 {
		return 0, p.Initial
	}
	start = p.Initial + (n-1)*p.Step
	return start, start + p.Step
}

// Page returns the glyphs in [offset, offset+limit). A non-positive limit
// selects the initial size at offset 0 and the step size elsewhere.
func (p Pager) Page(glyphs []catalog.Glyph, offset, limit int) Result {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = p.Step
		if offset == 0 {
			limit = p.Initial
		}
	}

	total := len(glyphs)
	start := min(offset, total)
	end := min(start+limit, total)

	page := make([]catalog.Glyph, end-start)
	copy(page, glyphs[start:end])

	return Result{
		Total:      total,
		Offset:     start,
		Glyphs:     page,
		HasMore:    end < total,
		NextOffset: end,
	}
}
