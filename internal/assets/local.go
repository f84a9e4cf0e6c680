package assets

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned when a pack or SVG does not exist locally.
var ErrNotFound = errors.New("asset not found")

// LocalPacks serves assets from a packs tree laid out as
// {pack}/svgs/{name}.svg.
type LocalPacks struct {
	fsys fs.FS
}

// NewLocalPacks opens the packs tree rooted at dir.
func NewLocalPacks(dir string) (*LocalPacks, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening packs dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("packs dir %s is not a directory", dir)
	}
	return &LocalPacks{fsys: os.DirFS(dir)}, nil
}

// NewLocalPacksFS serves assets from an existing file system.
func NewLocalPacksFS(fsys fs.FS) *LocalPacks {
	return &LocalPacks{fsys: fsys}
}

// validName rejects names that could escape the pack directory.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// Packs lists pack directories that contain at least one SVG.
func (l *LocalPacks) Packs() ([]string, error) {
	matches, err := doublestar.Glob(l.fsys, "*/svgs/*.svg")
	if err != nil {
		return nil, fmt.Errorf("listing packs: %w", err)
	}
	seen := make(map[string]bool)
	var packs []string
	for _, m := range matches {
		p := strings.SplitN(m, "/", 2)[0]
		if !seen[p] {
			seen[p] = true
			packs = append(packs, p)
		}
	}
	sort.Strings(packs)
	return packs, nil
}

// SVGs lists the SVG paths of one pack, relative to the packs root.
func (l *LocalPacks) SVGs(pack string) ([]string, error) {
	if !validName(pack) {
		return nil, ErrNotFound
	}
	matches, err := doublestar.Glob(l.fsys, path.Join(escapeMeta(pack), "svgs", "**", "*.svg"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", pack, err)
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	sort.Strings(matches)
	return matches, nil
}

// SVG returns the content of one glyph's SVG.
func (l *LocalPacks) SVG(pack, name string) ([]byte, error) {
	if !validName(pack) || !validName(name) {
		return nil, ErrNotFound
	}
	data, err := fs.ReadFile(l.fsys, path.Join(pack, "svgs", name+".svg"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// WriteArchive zips every SVG of pack into w. Entry names are relative to
// the pack's svgs directory.
func (l *LocalPacks) WriteArchive(w io.Writer, pack string) error {
	files, err := l.SVGs(pack)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	prefix := path.Join(pack, "svgs") + "/"
	for _, name := range files {
		if err := l.addFile(zw, name, strings.TrimPrefix(name, prefix)); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func (l *LocalPacks) addFile(zw *zip.Writer, src, entry string) error {
	f, err := l.fsys.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	dst, err := zw.Create(entry)
	if err != nil {
		return fmt.Errorf("adding %s: %w", entry, err)
	}
	_, err = io.Copy(dst, f)
	return err
}

// escapeMeta quotes glob metacharacters in a literal path segment.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
