package format

import (
	"testing"

	"luafmt/internal/ast"
	"luafmt/internal/token"
)

func TestShapeBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 20
	cfg.IndentWidth = 4
	s := NewShape(cfg)

	if s.OverBudget() {
		t.Fatalf("fresh shape reported over budget")
	}
	if s.Add(20).OverBudget() {
		t.Fatalf("exactly at budget must not be over")
	}
	if !s.Add(21).OverBudget() {
		t.Fatalf("21 cells at width 20 must be over budget")
	}
}

func TestShapeIndentCountsTowardBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 20
	cfg.IndentWidth = 4
	s := NewShape(cfg).IncrementBlockIndent().IncrementBlockIndent()

	if got := s.UsedWidth(); got != 8 {
		t.Fatalf("two indent levels: want used width 8, got %d", got)
	}
	if !s.Add(13).OverBudget() {
		t.Fatalf("8 indent cells + 13 content cells must exceed width 20")
	}
}

func TestShapeBlockIndentClearsHang(t *testing.T) {
	s := NewShape(DefaultConfig())
	hung := s.IncrementAdditionalIndent().IncrementAdditionalIndent()
	if got := hung.IndentLevel(); got != 2 {
		t.Fatalf("hanging indent level: want 2, got %d", got)
	}
	nested := hung.IncrementBlockIndent()
	if got := nested.IndentLevel(); got != 1 {
		t.Fatalf("block indent must discard hanging indent: want level 1, got %d", got)
	}
}

func TestShapeResetKeepsIndent(t *testing.T) {
	s := NewShape(DefaultConfig()).IncrementBlockIndent().Add(50)
	fresh := s.Reset()
	if got := fresh.IndentLevel(); got != 1 {
		t.Fatalf("reset dropped indentation: want level 1, got %d", got)
	}
	if got, want := fresh.UsedWidth(), s.UsedWidth()-50; got != want {
		t.Fatalf("reset used width: want %d, got %d", want, got)
	}
}

func TestShapeImmutable(t *testing.T) {
	s := NewShape(DefaultConfig())
	_ = s.Add(10)
	_ = s.IncrementBlockIndent()
	if s.UsedWidth() != 0 || s.IndentLevel() != 0 {
		t.Fatalf("shape operations mutated the receiver")
	}
}

func TestWidthCountsTextAndSpaces(t *testing.T) {
	chunk := parseSource(t, "local a = 1")
	if got, want := Width(chunk.Block), len("local a = 1"); got != want {
		t.Fatalf("width of %q: want %d, got %d", "local a = 1", want, got)
	}
}

func TestWidthIgnoresCommentsAndNewlines(t *testing.T) {
	chunk := parseSource(t, "local a = 1 --[[ wide comment ]]\n")
	if got, want := Width(chunk.Block), len("local a = 1 "); got != want {
		t.Fatalf("width must skip comments: want %d, got %d", want, got)
	}
}

func TestWidthWideRunes(t *testing.T) {
	chunk := parseSource(t, `local s = "日本"`)
	if got, want := Width(chunk.Block), len("local s = ")+2+4; got != want {
		t.Fatalf("width of wide-rune string: want %d, got %d", want, got)
	}
}

func TestWidthCountsSyntheticSpacing(t *testing.T) {
	tok := token.Symbol(token.Plus)
	tok.Leading = []token.Trivia{token.Spaces(1)}
	tok.Trailing = []token.Trivia{token.Spaces(1)}
	if got := Width(&tok); got != 3 {
		t.Fatalf("spaced operator width: want 3, got %d", got)
	}
}

func TestWidthOfBareTokenValue(t *testing.T) {
	tok := token.Symbol(token.Plus)
	if got := Width(tok); got != 1 {
		t.Fatalf("token value width: want 1, got %d", got)
	}
}

func TestWidthOfTypeAnnotation(t *testing.T) {
	name := token.Token{Kind: token.Ident, Text: "number"}
	name.Leading = []token.Trivia{token.Spaces(1)}
	ann := &ast.TypeAnnotation{
		Colon: token.Symbol(token.Colon),
		Type:  []token.Token{name},
	}
	if got := Width(ann); got != 8 {
		t.Fatalf("annotation width: want 8, got %d", got)
	}
}
