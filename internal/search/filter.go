package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"

	"github.com/iconicfonts/iconic/internal/catalog"
)

// DefaultThreshold drops matches whose characters are spread over more
// than twice the length of the term.
const DefaultThreshold = 0.5

// keys are the glyph fields the fuzzy term is matched against.
var keys = []func(catalog.Glyph) string{
	func(g catalog.Glyph) string { return g.Name },
	func(g catalog.Glyph) string { return g.Unicode },
	func(g catalog.Glyph) string { return g.Character },
	func(g catalog.Glyph) string { return g.Tags },
	func(g catalog.Glyph) string { return g.Pack },
}

// Filter is the glyph filter. The zero value uses DefaultThreshold.
type Filter struct {
	Threshold float64
}

// keySource adapts one glyph field to fuzzy.Source.
type keySource struct {
	glyphs []catalog.Glyph
	key    func(catalog.Glyph) string
	fold   cases.Caser
}

func (s keySource) String(i int) string { return s.fold.String(s.key(s.glyphs[i])) }
func (s keySource) Len() int            { return len(s.glyphs) }

type scored struct {
	index int
	norm  float64
	raw   int
}

// Apply recomputes the filtered list from the full dataset: fuzzy match
// the term against every key, then keep glyphs whose pack and style are
// selected. Without a term the dataset order is kept; with one, results
// are ordered best match first.
func (f Filter) Apply(glyphs []catalog.Glyph, q Query) []catalog.Glyph {
	threshold := f.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	filtered := glyphs
	if term := strings.TrimSpace(q.Term); term != "" {
		filtered = fuzzyMatch(glyphs, term, threshold)
	}

	if len(q.Packs) > 0 {
		packs := toSet(q.Packs, strings.TrimSpace)
		filtered = keep(filtered, func(g catalog.Glyph) bool { return packs[g.Pack] })
	}
	if len(q.Styles) > 0 {
		styles := toSet(q.Styles, NormalizeStyle)
		filtered = keep(filtered, func(g catalog.Glyph) bool { return styles[strings.ToLower(g.Style)] })
	}
	return filtered
}

// fuzzyMatch splits the term into words; a glyph is kept when every word
// passes the threshold on at least one key. Word scores are summed.
func fuzzyMatch(glyphs []catalog.Glyph, term string, threshold float64) []catalog.Glyph {
	fold := cases.Fold()
	words := strings.Fields(fold.String(term))

	var total map[int]scored
	for _, word := range words {
		best := matchWord(glyphs, word, threshold, fold)
		if total == nil {
			total = best
			continue
		}
		for i, cur := range total {
			s, ok := best[i]
			if !ok {
				delete(total, i)
				continue
			}
			total[i] = scored{index: i, norm: cur.norm + s.norm, raw: cur.raw + s.raw}
		}
	}

	ranked := make([]scored, 0, len(total))
	for _, s := range total {
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.norm != b.norm {
			return a.norm > b.norm
		}
		if a.raw != b.raw {
			return a.raw > b.raw
		}
		return a.index < b.index
	})

	out := make([]catalog.Glyph, len(ranked))
	for i, s := range ranked {
		out[i] = glyphs[s.index]
	}
	return out
}

// matchWord returns each glyph's best key score for one word.
func matchWord(glyphs []catalog.Glyph, word string, threshold float64, fold cases.Caser) map[int]scored {
	best := make(map[int]scored)
	for _, key := range keys {
		src := keySource{glyphs: glyphs, key: key, fold: fold}
		for _, m := range fuzzy.FindFrom(word, src) {
			norm := compactness(word, m)
			if norm < threshold {
				continue
			}
			cur, ok := best[m.Index]
			if !ok || norm > cur.norm || (norm == cur.norm && m.Score > cur.raw) {
				best[m.Index] = scored{index: m.Index, norm: norm, raw: m.Score}
			}
		}
	}
	return best
}

// compactness scores a match in [0,1]: the term length divided by the
// number of runes its matched characters span. A substring scores 1.
func compactness(pattern string, m fuzzy.Match) float64 {
	if strings.Contains(m.Str, pattern) {
		return 1
	}
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	first := utf8.RuneCountInString(m.Str[:m.MatchedIndexes[0]])
	last := utf8.RuneCountInString(m.Str[:m.MatchedIndexes[len(m.MatchedIndexes)-1]])
	span := last - first + 1
	n := utf8.RuneCountInString(pattern)
	if span < n {
		return 1
	}
	return float64(n) / float64(span)
}

func toSet(vals []string, norm func(string) string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[norm(v)] = true
	}
	return set
}

func keep(glyphs []catalog.Glyph, pred func(catalog.Glyph) bool) []catalog.Glyph {
	out := make([]catalog.Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out
}
