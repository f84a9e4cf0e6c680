package assets

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"testing"
	"testing/fstest"
)

func TestURLs(t *testing.T) {
	u := URLs{Base: "https://example.com/packs/"}
	if got := u.SVG("arrows", "arrow-left"); got != "https://example.com/packs/arrows/svgs/arrow-left.svg" {
		t.Errorf("SVG = %q", got)
	}
	if got := u.Archive("arrows"); got != "https://example.com/packs/arrows/svgs.zip" {
		t.Errorf("Archive = %q", got)
	}
	if got := u.SVG("my pack", "a b"); got != "https://example.com/packs/my%20pack/svgs/a%20b.svg" {
		t.Errorf("SVG with spaces = %q", got)
	}
}

func testPacks() *LocalPacks {
	return NewLocalPacksFS(fstest.MapFS{
		"arrows/svgs/arrow-left.svg":  {Data: []byte("<svg>left</svg>")},
		"arrows/svgs/arrow-right.svg": {Data: []byte("<svg>right</svg>")},
		"shapes/svgs/star.svg":        {Data: []byte("<svg>star</svg>")},
		"shapes/readme.txt":           {Data: []byte("not an svg")},
		"empty/svgs/notes.txt":        {Data: []byte("nothing")},
	})
}

func TestLocalPacks(t *testing.T) {
	l := testPacks()

	packs, err := l.Packs()
	if err != nil {
		t.Fatalf("Packs: %v", err)
	}
	if !reflect.DeepEqual(packs, []string{"arrows", "shapes"}) {
		t.Errorf("Packs = %v", packs)
	}

	data, err := l.SVG("shapes", "star")
	if err != nil || string(data) != "<svg>star</svg>" {
		t.Errorf("SVG = %q, %v", data, err)
	}

	for _, tc := range [][2]string{{"shapes", "missing"}, {"..", "star"}, {"shapes", "../arrows/svgs/arrow-left"}} {
		if _, err := l.SVG(tc[0], tc[1]); !errors.Is(err, ErrNotFound) {
			t.Errorf("SVG(%q, %q) error = %v, want ErrNotFound", tc[0], tc[1], err)
		}
	}
}

func TestWriteArchive(t *testing.T) {
	var buf bytes.Buffer
	if err := testPacks().WriteArchive(&buf, "arrows"); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading zip: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"arrow-left.svg", "arrow-right.svg"}) {
		t.Errorf("archive entries = %v", names)
	}

	if err := testPacks().WriteArchive(&bytes.Buffer{}, "empty"); !errors.Is(err, ErrNotFound) {
		t.Errorf("archive of pack without SVGs: %v, want ErrNotFound", err)
	}
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/packs/shapes/svgs/star.svg" {
			w.Write([]byte("<svg>remote</svg>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := &Fetcher{URLs: URLs{Base: srv.URL + "/packs"}}
	data, err := f.SVG(context.Background(), "shapes", "star")
	if err != nil || string(data) != "<svg>remote</svg>" {
		t.Fatalf("SVG = %q, %v", data, err)
	}
	if _, err := f.SVG(context.Background(), "shapes", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
