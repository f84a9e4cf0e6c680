// Package assets locates the SVG files and pack archives behind glyphs,
// either in a local checkout of the packs tree or at the upstream URL.
package assets

import (
	"net/url"
	"strings"
)

// URLs builds upstream asset URLs from a base such as
// https://raw.githubusercontent.com/iconicFonts/if/main/packs.
type URLs struct {
	Base string
}

// SVG returns the URL of a glyph's SVG: {base}/{pack}/svgs/{name}.svg.
func (u URLs) SVG(pack, name string) string {
	return u.join(pack, "svgs", name+".svg")
}

// Archive returns the URL of a pack's zipped SVGs: {base}/{pack}/svgs.zip.
func (u URLs) Archive(pack string) string {
	return u.join(pack, "svgs.zip")
}

func (u URLs) join(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.TrimRight(u.Base, "/") + "/" + strings.Join(escaped, "/")
}
