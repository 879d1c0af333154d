package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.lua", []byte("local a = 1\nlocal b = 2\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{6, LineCol{Line: 1, Col: 7}},
		{11, LineCol{Line: 1, Col: 12}}, // the newline ends line 1
		{12, LineCol{Line: 2, Col: 1}},
		{18, LineCol{Line: 2, Col: 7}},
	}
	for _, tc := range cases {
		if got := fs.Position(id, tc.off); got != tc.want {
			t.Fatalf("offset %d: want %v, got %v", tc.off, tc.want, got)
		}
	}
}

func TestPositionSingleLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("one.lua", []byte("return"))
	if got := fs.Position(id, 3); got != (LineCol{Line: 1, Col: 4}) {
		t.Fatalf("want 1:4, got %v", got)
	}
}

func TestAddNormalizesCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.lua", []byte("a = 1\r\nb = 2\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a = 1\nb = 2\n" {
		t.Fatalf("CRLF not normalized: %q", f.Content)
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("FileNormalizedCRLF flag not set")
	}
}

func TestAddKeepsLoneCR(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("cr.lua", []byte("a\rb"))
	f := fs.Get(id)
	if string(f.Content) != "a\rb" {
		t.Fatalf("lone CR must pass through, got %q", f.Content)
	}
	if f.Flags&FileNormalizedCRLF != 0 {
		t.Fatalf("FileNormalizedCRLF flag set without a CRLF")
	}
}

func TestAddStripsBOM(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("bom.lua", []byte("\xEF\xBB\xBFlocal a = 1\n"))
	f := fs.Get(id)

	if string(f.Content) != "local a = 1\n" {
		t.Fatalf("BOM not stripped: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("FileHadBOM flag not set")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.lua")
	if err := os.WriteFile(path, []byte("return 1\r\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "return 1\n" {
		t.Fatalf("loaded content not normalized: %q", f.Content)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatalf("disk file must not carry the virtual flag")
	}

	if _, ok := fs.GetByPath(path); !ok {
		t.Fatalf("loaded file not found by path")
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.lua")); err == nil {
		t.Fatalf("loading a missing file must fail")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got.Start != 2 || got.End != 8 {
		t.Fatalf("cover: want 2-8, got %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cover across files must be a no-op, got %v", got)
	}
}
