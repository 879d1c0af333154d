// Package ast defines the Lua concrete syntax tree.
//
// The tree retains every token with its trivia, so Print reproduces source
// text byte-for-byte. Nodes are treated as immutable values: formatting
// passes build new nodes instead of mutating, which keeps independent
// subtrees safe to format concurrently.
package ast

import (
	"luafmt/internal/source"
	"luafmt/internal/token"
)

// Stmt is one statement variant. The set of implementations is closed:
// consumers dispatch with an exhaustive type switch and treat an unknown
// variant as an internal fault.
type Stmt interface {
	Span() source.Span
	stmtNode()
}

// Expr is one expression variant; the set of implementations is closed.
type Expr interface {
	Span() source.Span
	exprNode()
}

// StmtSemi is a statement with its optional trailing semicolon separator.
type StmtSemi struct {
	Stmt      Stmt
	Semicolon *token.Token
}

// Block is an ordered sequence of statements. It owns no trivia of its own;
// everything hangs off the tokens of its statements and boundary keywords.
type Block struct {
	Stmts []StmtSemi
}

// Span covers the whole block, or an empty span for an empty block.
func (b *Block) Span() source.Span {
	if len(b.Stmts) == 0 {
		return source.Span{}
	}
	sp := b.Stmts[0].Stmt.Span()
	last := b.Stmts[len(b.Stmts)-1]
	sp = sp.Cover(last.Stmt.Span())
	if last.Semicolon != nil {
		sp = sp.Cover(last.Semicolon.Span)
	}
	return sp
}

// Pair is one element of a separated list with its optional separator token.
type Pair[T any] struct {
	Value T
	Sep   *token.Token
}

// Punctuated is a separator-delimited list (names, expressions, fields).
type Punctuated[T any] []Pair[T]

// Values returns just the list values, dropping separators.
func (p Punctuated[T]) Values() []T {
	out := make([]T, len(p))
	for i := range p {
		out[i] = p[i].Value
	}
	return out
}

// Chunk is a whole parsed file: the top-level block plus the EOF token,
// which carries any trivia after the last statement.
type Chunk struct {
	Block *Block
	EOF   token.Token
}
