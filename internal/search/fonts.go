package search

import (
	"strings"

	"github.com/iconicfonts/iconic/internal/catalog"
)

// FilterFonts returns fonts whose name contains term, ignoring case. A
// blank term matches nothing; callers show the full list instead.
func FilterFonts(fonts []catalog.Font, term string) []catalog.Font {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	needle := strings.ToLower(term)
	var out []catalog.Font
	for _, f := range fonts {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			out = append(out, f)
		}
	}
	return out
}
