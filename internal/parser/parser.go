// Package parser builds the Lua concrete syntax tree from the token stream.
package parser

import (
	"fmt"

	"luafmt/internal/ast"
	"luafmt/internal/diag"
	"luafmt/internal/lexer"
	"luafmt/internal/source"
	"luafmt/internal/token"
)

// Options configures a parse.
type Options struct {
	// Bag receives diagnostics. May be nil.
	Bag *diag.Bag
}

// Parse lexes and parses a source file. On a syntax error it reports into
// the bag and returns nil; the input is rejected rather than repaired, since
// the formatter must never guess at malformed code.
func Parse(sf *source.File, opts Options) *ast.Chunk {
	bag := opts.Bag
	if bag == nil {
		bag = diag.NewBag(100)
	}
	toks := lexer.New(sf, lexer.Options{Bag: bag}).Tokens()
	if bag.HasErrors() {
		return nil
	}

	p := &parser{toks: toks, bag: bag}
	chunk := p.parseChunk()
	if p.failed || bag.HasErrors() {
		return nil
	}
	return chunk
}

type parser struct {
	toks   []token.Token
	pos    int
	bag    *diag.Bag
	failed bool
}

// bailout aborts the parse on the first syntax error.
type bailout struct{}

func (p *parser) parseChunk() (chunk *ast.Chunk) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			chunk = nil
		}
	}()

	block := p.parseBlock()
	eof := p.expect(token.EOF)
	return &ast.Chunk{Block: block, EOF: eof}
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) peekKind() token.Kind {
	return p.toks[p.pos].Kind
}

func (p *parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(kind token.Kind) bool {
	return p.peekKind() == kind
}

func (p *parser) eat(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *parser) expect(kind token.Kind) token.Token {
	if p.at(kind) {
		return p.advance()
	}
	p.errorf(diag.CodeParseExpectedToken, "expected %q, found %q", kind.String(), p.peek().Text)
	panic(bailout{})
}

func (p *parser) errorf(code diag.Code, format string, args ...any) {
	p.failed = true
	p.bag.AddError(code, fmt.Sprintf(format, args...), p.peek().Span)
}
