package site

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/iconicfonts/iconic/internal/catalog"
)

// cssString quotes s for use inside a double-quoted CSS string.
func cssString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '<' || r == '>' || r < 0x20:
			fmt.Fprintf(&b, "\\%x ", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FontFaceCSS returns one @font-face rule per font, loading its woff2 asset.
func FontFaceCSS(fonts []catalog.Font) template.CSS {
	var b strings.Builder
	for _, f := range fonts {
		fmt.Fprintf(&b, "@font-face {\n  font-family: \"%s\";\n  src: url(\"%s\") format(\"woff2\");\n}\n",
			cssString(f.Name), cssString(f.FontFile))
	}
	return template.CSS(b.String())
}

var nonIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FontID turns a font name into an element id fragment.
func FontID(name string) string {
	id := nonIDChars.ReplaceAllString(name, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return "font"
	}
	return id
}

// FontIDs returns one id per font. Names that collapse to the same id get
// a numeric suffix so accordion items stay distinct.
func FontIDs(fonts []catalog.Font) []string {
	ids := make([]string, len(fonts))
	seen := make(map[string]bool, len(fonts))
	for i, f := range fonts {
		base := FontID(f.Name)
		id := base
		for n := 2; seen[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		seen[id] = true
		ids[i] = id
	}
	return ids
}
