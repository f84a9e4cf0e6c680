package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/iconicfonts/iconic/internal/catalog"
)

var testGlyphs = []catalog.Glyph{
	{Name: "home", Unicode: "f101", Character: "\uf101", Pack: "essentials", Style: "solid", Tags: "house"},
	{Name: "star", Unicode: "2605", Character: "★", Pack: "shapes", Style: "regular", Tags: "favorite"},
	{Name: "user", Unicode: "f102", Character: "\uf102", Pack: "essentials", Style: "regular", Tags: "person, account"},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", CSV, false},
		{"JSON", JSON, false},
		{".xlsx", XLSX, false},
		{" xlsx ", XLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteCSVLoadsBack(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, CSV, testGlyphs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "name,unicode,character,pack,style,tags\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, err := catalog.ParseGlyphs(&buf)
	if err != nil {
		t.Fatalf("ParseGlyphs: %v", err)
	}
	if len(got) != len(testGlyphs) {
		t.Fatalf("got %d glyphs, want %d", len(got), len(testGlyphs))
	}
	for i := range got {
		if got[i] != testGlyphs[i] {
			t.Errorf("glyph %d = %+v, want %+v", i, got[i], testGlyphs[i])
		}
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("got %q, want []", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, testGlyphs[:1]); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != 1 || got[0]["name"] != "home" || got[0]["pack"] != "essentials" {
		t.Errorf("unexpected JSON: %v", got)
	}
}

func TestWriteXLSXSheets(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, XLSX, testGlyphs); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"All", "essentials", "shapes"}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i], want[i])
		}
	}

	all, err := f.GetRows("All")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("All sheet has %d rows, want 4", len(all))
	}
	ess, err := f.GetRows("essentials")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(ess) != 3 || ess[2][0] != "user" {
		t.Errorf("essentials rows = %v", ess)
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"all": true}
	tests := []struct {
		in   string
		want string
	}{
		{"essentials", "essentials"},
		{"a/b:c", "a_b_c"},
		{"ALL", "ALL (2)"},
		{"essentials", "essentials (2)"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{"", "pack"},
	}
	for _, tt := range tests {
		if got := SheetName(tt.in, used); got != tt.want {
			t.Errorf("SheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
