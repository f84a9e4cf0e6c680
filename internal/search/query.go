// Package search filters and pages the glyph catalog.
package search

import (
	"net/url"
	"strings"
)

// Query is a glyph search: a fuzzy term plus pack and style selections.
// Empty selections do not filter.
type Query struct {
	Term   string
	Packs  []string
	Styles []string
}

// ParseQuery reads q, pack and style from URL values. Pack and style may
// repeat or hold comma-separated lists.
func ParseQuery(v url.Values) Query {
	return Query{
		Term:   v.Get("q"),
		Packs:  splitValues(v["pack"]),
		Styles: splitValues(v["style"]),
	}
}

// Values encodes the query back into URL values.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Term != "" {
		v.Set("q", q.Term)
	}
	for _, p := range q.Packs {
		v.Add("pack", p)
	}
	for _, s := range q.Styles {
		v.Add("style", s)
	}
	return v
}

// IsZero reports whether the query selects the whole catalog.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Term) == "" && len(q.Packs) == 0 && len(q.Styles) == 0
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// NormalizeStyle turns a style button label such as "★ regular" into the
// style value stored on glyphs.
func NormalizeStyle(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		s = s[i+1:]
	}
	return strings.ToLower(s)
}
