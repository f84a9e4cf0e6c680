package site

import (
	"path"
	"strings"
)

// NavItem is one link in the shared navigation bar.
type NavItem struct {
	Name   string
	Href   string
	Active bool
}

// navPages are the pages linked from the navigation bar, in order.
var navPages = []NavItem{
	{Name: "Icons", Href: "icons.html"},
	{Name: "Fonts", Href: "fonts.html"},
	{Name: "License", Href: "license.html"},
}

// Brand is the navigation bar title.
const Brand = "IconicFonts"

// CurrentPage derives the page key from a request path:
// "/docs/Icons.html" -> "icons". The site root maps to "index".
func CurrentPage(urlPath string) string {
	base := path.Base("/" + strings.TrimSuffix(urlPath, "/"))
	if base == "/" || base == "." || base == "" {
		return "index"
	}
	return strings.ToLower(strings.TrimSuffix(base, ".html"))
}

// Navbar returns the navigation items with the current page marked.
func Navbar(current string) []NavItem {
	items := make([]NavItem, len(navPages))
	for i, p := range navPages {
		p.Active = strings.EqualFold(current, strings.TrimSuffix(p.Href, ".html"))
		items[i] = p
	}
	return items
}
