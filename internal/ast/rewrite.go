package ast

import "luafmt/internal/token"

// TriviaMode selects how an update combines with the trivia already present.
type TriviaMode uint8

const (
	// TriviaReplace discards the existing run.
	TriviaReplace TriviaMode = iota
	// TriviaAppend keeps the existing run and adds after it.
	TriviaAppend
)

// FirstTokenOf returns the first token of the node in source order, or nil
// for an empty node. The pointer aliases the tree; callers must not mutate
// through it unless they own the tree (see CloneExpr).
func FirstTokenOf(node any) *token.Token {
	var first *token.Token
	VisitTokens(node, func(tok *token.Token) {
		if first == nil {
			first = tok
		}
	})
	return first
}

// LastTokenOf returns the last token of the node in source order, or nil for
// an empty node.
func LastTokenOf(node any) *token.Token {
	var last *token.Token
	VisitTokens(node, func(tok *token.Token) {
		last = tok
	})
	return last
}

// UpdateLeading returns a copy of the expression with the leading trivia of
// its first token replaced or extended.
func UpdateLeading(e Expr, mode TriviaMode, run []token.Trivia) Expr {
	c := CloneExpr(e)
	if tok := FirstTokenOf(c); tok != nil {
		switch mode {
		case TriviaReplace:
			*tok = tok.WithLeading(run)
		case TriviaAppend:
			*tok = tok.AppendLeading(run...)
		}
	}
	return c
}

// UpdateTrailing returns a copy of the expression with the trailing trivia
// of its last token replaced or extended.
func UpdateTrailing(e Expr, mode TriviaMode, run []token.Trivia) Expr {
	c := CloneExpr(e)
	if tok := LastTokenOf(c); tok != nil {
		switch mode {
		case TriviaReplace:
			*tok = tok.WithTrailing(run)
		case TriviaAppend:
			*tok = tok.AppendTrailing(run...)
		}
	}
	return c
}

// StmtWithTrailing returns a copy of the statement with the trailing trivia
// of its last token extended.
func StmtWithTrailing(s Stmt, run []token.Trivia) Stmt {
	c := CloneStmt(s)
	if tok := LastTokenOf(c); tok != nil {
		*tok = tok.AppendTrailing(run...)
	}
	return c
}
