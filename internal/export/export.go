// Package export writes glyph lists as CSV, JSON or Excel workbooks.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iconicfonts/iconic/internal/catalog"
)

// Format is an output encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{CSV, JSON, XLSX}

// AllSheet names the workbook sheet holding every glyph.
const AllSheet = "All"

// Header is the column order of CSV and sheet rows. It matches the
// columns the catalog parser reads, so an exported CSV can be loaded back.
var Header = []string{"name", "unicode", "character", "pack", "style", "tags"}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json or xlsx)", s)
}

// Write encodes glyphs to w in the given format.
func Write(w io.Writer, format Format, glyphs []catalog.Glyph) error {
	switch format {
	case CSV:
		return WriteCSV(w, glyphs)
	case JSON:
		return WriteJSON(w, glyphs)
	case XLSX:
		return WriteXLSX(w, glyphs)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func row(g catalog.Glyph) []string {
	return []string{g.Name, g.Unicode, g.Character, g.Pack, g.Style, g.Tags}
}

// WriteCSV writes a header row followed by one row per glyph.
func WriteCSV(w io.Writer, glyphs []catalog.Glyph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, g := range glyphs {
		if err := cw.Write(row(g)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes glyphs as an indented JSON array. An empty list is
// written as [].
func WriteJSON(w io.Writer, glyphs []catalog.Glyph) error {
	if glyphs == nil {
		glyphs = []catalog.Glyph{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(glyphs)
}

// WriteXLSX writes a workbook with an "All" sheet followed by one sheet
// per pack in first-seen order.
func WriteXLSX(w io.Writer, glyphs []catalog.Glyph) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AllSheet); err != nil {
		return err
	}
	if err := writeSheet(f, AllSheet, glyphs); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(AllSheet): true}
	for _, pack := range catalog.Packs(glyphs) {
		name := SheetName(pack, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		var rows []catalog.Glyph
		for _, g := range glyphs {
			if g.Pack == pack {
				rows = append(rows, g)
			}
		}
		if err := writeSheet(f, name, rows); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, glyphs []catalog.Glyph) error {
	// StreamWriter for efficiency on large tables
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, g := range glyphs {
		r := row(g)
		cells := make([]interface{}, len(r))
		for j, v := range r {
			cells[j] = v
		}
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cellAddr, cells); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// SheetName turns a pack name into a unique, valid sheet name and
// records it in used (keys are lowercased, as Excel compares names
// case-insensitively).
func SheetName(pack string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, pack)
	base = strings.Trim(base, "'")
	if base == "" {
		base = "pack"
	}
	base = truncate(base, excelize.MaxSheetNameLength)

	name := base
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncate(base, excelize.MaxSheetNameLength-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
