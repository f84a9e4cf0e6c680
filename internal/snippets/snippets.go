// Package snippets serves the sample code shown on the font showcase,
// highlighted for each supported language.
package snippets

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"sync"

	"github.com/iconicfonts/iconic/internal/markup"
)

//go:embed defaults/*
var defaults embed.FS

// Language describes one entry of the language selector.
type Language struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Class string `json:"class"`
}

// Languages are offered in selector order. Javascript is the default.
var Languages = []Language{
	{Value: "css", Label: "CSS", Class: "language-css"},
	{Value: "html", Label: "HTML", Class: "language-html"},
	{Value: "javascript", Label: "JavaScript", Class: "language-js"},
}

// DefaultLanguage is used for unknown language values.
const DefaultLanguage = "javascript"

// Lookup returns the language for value, falling back to javascript.
func Lookup(value string) Language {
	for _, l := range Languages {
		if l.Value == value {
			return l
		}
	}
	return Languages[len(Languages)-1]
}

// Snippet is one rendered code sample.
type Snippet struct {
	Language Language      `json:"language"`
	Source   string        `json:"source"`
	HTML     template.HTML `json:"html"`
}

// Library loads snippet sources and caches their highlighted form.
type Library struct {
	fsys     fs.FS
	renderer *markup.Renderer

	mu    sync.Mutex
	cache map[string]Snippet
}

// New returns a Library reading from dir, or the built-in snippets when
// dir is empty.
func New(dir string, renderer *markup.Renderer) (*Library, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(defaults, "defaults")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("opening snippets dir: %w", err)
		}
		fsys = os.DirFS(dir)
	}
	if renderer == nil {
		renderer = markup.New("")
	}
	return &Library{fsys: fsys, renderer: renderer, cache: make(map[string]Snippet)}, nil
}

// Get returns the highlighted snippet for a language value.
func (l *Library) Get(value string) (Snippet, error) {
	lang := Lookup(value)

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.cache[lang.Value]; ok {
		return s, nil
	}

	src, err := fs.ReadFile(l.fsys, lang.Value)
	if errors.Is(err, fs.ErrNotExist) {
		return Snippet{}, fmt.Errorf("no %s snippet: %w", lang.Label, err)
	}
	if err != nil {
		return Snippet{}, fmt.Errorf("reading %s snippet: %w", lang.Label, err)
	}

	html, err := l.renderer.Code(lang.Value, string(src))
	if err != nil {
		return Snippet{}, err
	}
	s := Snippet{Language: lang, Source: string(src), HTML: html}
	l.cache[lang.Value] = s
	return s, nil
}
