// Package format turns a parsed chunk back into normalized source text.
//
// Formatting is a pure tree transform: every pass builds new nodes, the
// input chunk is never mutated. The entry points parse, format, print, and
// optionally verify that the output still parses to an equivalent tree.
package format

import (
	"fmt"
	"strings"

	"luafmt/internal/ast"
	"luafmt/internal/diag"
	"luafmt/internal/parser"
	"luafmt/internal/source"
)

// Verification selects how much checking runs on formatter output.
type Verification int

const (
	// VerifyNone skips output verification.
	VerifyNone Verification = iota
	// VerifyFull reparses the output and compares it structurally against
	// the input tree.
	VerifyFull
)

// Options bundles the knobs for one formatting run.
type Options struct {
	Config Config
	Range  *Range
	Verify Verification
}

// ParseError reports that the input did not parse. The diagnostics carry
// positions and messages for each problem found.
type ParseError struct {
	Path  string
	Diags []diag.Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diags) == 0 {
		return fmt.Sprintf("%s: parse failed", e.Path)
	}
	first := e.Diags[0]
	if len(e.Diags) == 1 {
		return fmt.Sprintf("%s: %s: %s", e.Path, first.Code, first.Message)
	}
	return fmt.Sprintf("%s: %s: %s (and %d more)", e.Path, first.Code, first.Message, len(e.Diags)-1)
}

// ReparseError reports that formatter output failed to parse. This is an
// internal fault: the formatter produced broken code.
type ReparseError struct {
	Path  string
	Diags []diag.Diagnostic
}

func (e *ReparseError) Error() string {
	return fmt.Sprintf("%s: internal fault: formatted output does not parse", e.Path)
}

// EquivalenceError reports that formatter output parsed to a structurally
// different tree than the input. Callers treat it as a warning: the output
// is suspect but was still produced.
type EquivalenceError struct {
	Path   string
	Detail string
}

func (e *EquivalenceError) Error() string {
	return fmt.Sprintf("%s: formatted output differs structurally: %s", e.Path, e.Detail)
}

// Chunk formats a parsed chunk. The input is not modified.
func Chunk(chunk *ast.Chunk, ctx Context) *ast.Chunk {
	shape := NewShape(ctx.Config)
	block := ctx.formatBlock(chunk.Block, shape)

	eof := chunk.EOF
	eof.Leading = ctx.eofLeadingTrivia(chunk.EOF.Leading, len(block.Stmts) == 0)
	eof.Trailing = nil
	return &ast.Chunk{Block: block, EOF: eof}
}

// File parses and formats one file, returning the formatted text. A nil
// error means clean output; an *EquivalenceError comes back alongside the
// output and is safe to treat as a warning.
func File(sf *source.File, opts Options) (string, error) {
	bag := diag.NewBag(64)
	chunk := parser.Parse(sf, parser.Options{Bag: bag})
	if chunk == nil || bag.HasErrors() {
		bag.Sort()
		return "", &ParseError{Path: sf.Path, Diags: bag.Items()}
	}

	ctx := NewContext(opts.Config, opts.Range)
	formatted := Chunk(chunk, ctx)
	out := ast.Print(formatted)

	if opts.Verify == VerifyFull {
		if err := verifyOutput(sf.Path, chunk, out, ctx); err != nil {
			if _, ok := err.(*EquivalenceError); ok {
				return out, err
			}
			return "", err
		}
	}
	return out, nil
}

// Bytes formats in-memory source under a display name.
func Bytes(name string, src []byte, opts Options) (string, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return File(fs.Get(id), opts)
}

// verifyOutput reparses formatter output and compares it against the input
// tree, ignoring cosmetic differences the formatter is allowed to make.
func verifyOutput(path string, input *ast.Chunk, out string, ctx Context) error {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(out))
	bag := diag.NewBag(16)
	reparsed := parser.Parse(fs.Get(id), parser.Options{Bag: bag})
	if reparsed == nil || bag.HasErrors() {
		bag.Sort()
		return &ReparseError{Path: path, Diags: bag.Items()}
	}
	if detail := compareChunks(input, reparsed); detail != "" {
		return &EquivalenceError{Path: path, Detail: detail}
	}
	return nil
}

// CommentCount counts the comments attached anywhere in a chunk, including
// on the EOF token. Formatting must conserve this count.
func CommentCount(chunk *ast.Chunk) int {
	n := len(ast.Comments(chunk.Block))
	for _, tr := range chunk.EOF.Leading {
		if tr.IsComment() {
			n++
		}
	}
	for _, tr := range chunk.EOF.Trailing {
		if tr.IsComment() {
			n++
		}
	}
	return n
}

// normalizeLineEndings rewrites bare CR and CRLF to LF, used before
// comparing idempotence in tests and tools.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
