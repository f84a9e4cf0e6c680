package site

import (
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed license.md
var defaultLicense []byte

// layoutTemplate wraps every page with the head, navigation bar and scripts.
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en" data-bs-theme="dark">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.Brand}}</title>
  <link rel="icon" href="static/favicon.svg" type="image/svg+xml">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <link rel="stylesheet" href="static/style.css">
  <style id="fontStyles">{{.FontFaces}}</style>
  <style id="codeFontSize"></style>
</head>
<body data-page="{{.Page}}" data-mode="{{if .Static}}static{{else}}server{{end}}"{{with .PackBase}} data-pack-base="{{.}}"{{end}}>
  <div id="navbar-container">
    <nav class="navbar navbar-expand-lg bg-body-tertiary">
      <div class="container-lg">
        <a class="navbar-brand" href="index.html"><img src="static/favicon.svg" alt="{{.Brand}}" width="24" height="24"> {{.Brand}}</a>
        <button class="navbar-toggler" type="button" data-bs-toggle="collapse" data-bs-target="#navbarSupportedContent" aria-controls="navbarSupportedContent" aria-expanded="false" aria-label="Toggle navigation">
          <span class="navbar-toggler-icon"></span>
        </button>
        <div class="collapse navbar-collapse" id="navbarSupportedContent">
          <ul class="navbar-nav me-auto mb-2 mb-lg-0">
            {{range .Nav}}<li class="nav-item"><a class="nav-link{{if .Active}} active{{end}}" href="{{.Href}}"{{if .Active}} aria-current="page"{{end}}>{{.Name}}</a></li>
            {{end}}
          </ul>
        </div>
      </div>
    </nav>
  </div>
  <main class="container-lg py-4">
{{template "content" .Body}}
  </main>
  <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"></script>
  <script src="static/site.js"></script>
</body>
</html>
{{end}}`

const indexContent = `<div class="py-5 text-center">
  <img class="mb-4" src="static/favicon.svg" alt="" width="72" height="72">
  <h1 class="display-5 fw-bold">IconicFonts</h1>
  <p class="lead mb-4">
    <span id="indexGlyphs">{{.Glyphs}}</span> glyphs in <span id="indexPacks">{{.Packs}}</span> packs,
    and <span id="indexFonts">{{.Fonts}}</span> showcase fonts.
  </p>
  <div class="d-grid gap-2 d-sm-flex justify-content-sm-center">
    <a class="btn btn-primary btn-lg px-4" href="icons.html">Browse icons</a>
    <a class="btn btn-outline-secondary btn-lg px-4" href="fonts.html">See fonts</a>
  </div>
</div>`

const iconsContent = `<div class="row">
  <aside class="col-lg-3 mb-4">
    <div id="glyphContainer" class="text-center mb-3">
      {{with .Preview}}<div class="fs-6">{{.ID}}</div>
      <div class="display-1 mb-3">{{.Character}}</div>{{end}}
    </div>
    <div id="colorPickerContainer" class="mb-3">
      <input type="color" class="form-control form-control-color" id="exampleColorInput" value="#dee2e6" title="Choose your color">
    </div>
    <h2 class="h6">Packs</h2>
    <div id="checkboxes">
      {{range .Packs}}<div class="d-flex justify-content-between">
        <div class="ms-1 form-check">
          <input class="form-check-input" type="checkbox" value="{{.Name}}" id="checkbox-{{.Name}}"{{if .Checked}} checked{{end}}>
          <label class="form-check-label" for="checkbox-{{.Name}}">{{.Name}} <small class="text-body-secondary">{{.Count}}</small></label>
        </div>
        <a class="btn btn-secondary btn-sm mb-2" href="{{.ArchiveURL}}" data-pack="{{.Name}}" download="{{.Name}}.zip">Download</a>
      </div>
      {{end}}
    </div>
  </aside>
  <section class="col-lg-9">
    <form class="mb-3" action="icons.html" method="get" role="search">
      <input type="search" class="form-control" id="searchBar" name="q" value="{{.Query.Term}}" placeholder="Search glyphs by name, unicode, tag or pack" autocomplete="off">
    </form>
    <div id="stylesButtonsContainer" class="btn-group mb-3" role="group" aria-label="Styles">
      {{range .Styles}}<button type="button" class="btn btn-secondary{{if .Active}} active{{end}}" data-style="{{.Value}}">{{.Label}}</button>
      {{end}}
    </div>
    <p class="text-body-secondary"><span id="glyphCount">{{.Result.Total}}</span> glyphs</p>
    <div id="results" data-total="{{.Result.Total}}" data-next-offset="{{.Result.NextOffset}}" data-has-more="{{.Result.HasMore}}">
      {{range .Result.Glyphs}}<button class="btn mt-2 me-2 btn-glyph" type="button" title="{{.Name}}" data-name="{{.Name}}" data-pack="{{.Pack}}" data-unicode="{{.Unicode}}" data-character="{{.Character}}">{{.Character}}</button>{{end}}
    </div>
    {{if .Next}}<noscript><a class="btn btn-outline-secondary mt-3" href="icons.html?{{.Next}}">More</a></noscript>{{end}}
  </section>
</div>`

const fontsContent = `<div class="d-flex flex-wrap gap-3 align-items-center mb-4">
  <input type="search" class="form-control w-auto flex-grow-1" id="searchInput" value="{{.Search}}" placeholder="Search fonts" autocomplete="off">
  <div id="languageSelectButton">
    <select class="form-select" aria-label="Select language">
      {{range .Languages}}<option value="{{.Value}}"{{if eq .Value "javascript"}} selected{{end}}>{{.Label}}</option>
      {{end}}
    </select>
  </div>
  <div class="d-flex align-items-center gap-2">
    <label for="customRange1" class="form-label mb-0">Size</label>
    <input type="range" class="form-range" min="10" max="32" value="16" id="customRange1">
  </div>
</div>
<div id="searchResults">
  {{range .Results}}{{template "fontDetails" (details . $.Snippet)}}{{end}}
</div>
<div class="accordion" id="accordionExample"{{if .Results}} style="display: none"{{end}}>
  {{range $i, $f := .Fonts}}<div class="accordion-item" data-font="{{$f.Name}}" style="font-family: '{{$f.Name}}'">
    <h2 class="accordion-header">
      <button class="accordion-button{{if $i}} collapsed{{end}}" type="button" data-bs-toggle="collapse" data-bs-target="#collapse{{$f.ID}}" aria-expanded="{{if $i}}false{{else}}true{{end}}" aria-controls="collapse{{$f.ID}}">{{$f.Name}}</button>
    </h2>
    <div id="collapse{{$f.ID}}" class="accordion-collapse collapse{{if not $i}} show{{end}}" data-bs-parent="#accordionExample">
      <div class="accordion-body">
        {{template "fontDetails" (details $f $.Snippet)}}
      </div>
    </div>
  </div>
  {{end}}
</div>
<script type="application/json" id="fontData">{{.Fonts}}</script>`

const fontDetailsTemplate = `{{define "fontDetails"}}<div class="container text-center font-details" data-font="{{.Font.Name}}">
  <div class="row align-items-start">
    <div class="col">
      <div class="snippet" contenteditable="true" style="font-family: '{{.Font.Name}}', monospace">{{.Snippet}}</div>
    </div>
    <div class="col">
      <p>Text displayed with {{.Font.Name}}</p>
      <a href="{{.Font.FontFile}}" download="{{.Font.Name}}.woff2">Download Font</a>
      <p>Version: {{.Font.Version}}</p>
    </div>
  </div>
</div>{{end}}`

const licenseContent = `<article class="license">
{{.Content}}
</article>`

// detailsArgs feeds the fontDetails partial.
type detailsArgs struct {
	Font    fontEntry
	Snippet template.HTML
}

var pageContents = map[string]string{
	"index":   indexContent,
	"icons":   iconsContent,
	"fonts":   fontsContent,
	"license": licenseContent,
}

func parseTemplates() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"details": func(f fontEntry, snippet template.HTML) detailsArgs {
			return detailsArgs{Font: f, Snippet: snippet}
		},
	}

	base, err := template.New("site").Funcs(funcs).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if _, err := base.Parse(fontDetailsTemplate); err != nil {
		return nil, fmt.Errorf("parsing font details: %w", err)
	}

	out := make(map[string]*template.Template, len(pageContents))
	for name, body := range pageContents {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.New("content").Parse(body); err != nil {
			return nil, fmt.Errorf("parsing %s page: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}
