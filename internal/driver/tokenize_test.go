package driver

import (
	"testing"

	"luafmt/internal/token"
)

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeLua(t, dir, "tok.lua", "local a = 1 -- note\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}

	want := []token.Kind{token.KwLocal, token.Ident, token.Assign, token.NumberLit, token.EOF}
	if len(res.Tokens) != len(want) {
		t.Fatalf("token count: want %d, got %d", len(want), len(res.Tokens))
	}
	for i, tok := range res.Tokens {
		if tok.Kind != want[i] {
			t.Fatalf("token %d: want %v, got %v", i, want[i], tok.Kind)
		}
	}
}

func TestTokenizeReportsLexErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeLua(t, dir, "bad.lua", "local s = \"open\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("unterminated string must produce a diagnostic")
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := Tokenize("/does/not/exist.lua", 0); err == nil {
		t.Fatalf("missing file must fail")
	}
}
