package format

import (
	"strings"

	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// formatBlock formats the statements of a block, one per line at the
// shape's indent level. Statements outside the requested range keep their
// tokens untouched; only their nested blocks are visited. Statement
// semicolons are dropped unless the next statement starts with a
// parenthesis, where the separator keeps the parse unambiguous.
func (ctx Context) formatBlock(b *ast.Block, shape Shape) *ast.Block {
	out := &ast.Block{Stmts: make([]ast.StmtSemi, 0, len(b.Stmts))}
	for i, ss := range b.Stmts {
		if !ctx.ShouldFormatNode(ss.Stmt) {
			out.Stmts = append(out.Stmts, ast.StmtSemi{
				Stmt:      ctx.rebuildNestedBlocks(ss.Stmt, shape),
				Semicolon: cloneSemicolon(ss.Semicolon),
			})
			continue
		}
		out.Stmts = append(out.Stmts, ctx.formatStmtLine(b, i, shape))
	}
	return out
}

// formatStmtLine formats one in-range statement onto its own line:
// synthesized leading trivia (blank line, comments, indent), the formatted
// statement, relocated semicolon comments, and a trailing line break.
func (ctx Context) formatStmtLine(b *ast.Block, i int, shape Shape) ast.StmtSemi {
	ss := b.Stmts[i]
	formatted := ctx.formatStmt(ss.Stmt, shape.Reset())

	var origLeading []token.Trivia
	if first := ast.FirstTokenOf(ss.Stmt); first != nil {
		origLeading = first.Leading
	}
	lead := ctx.stmtLeadingTrivia(origLeading, shape, i == 0)
	if tok := ast.FirstTokenOf(formatted); tok != nil {
		*tok = tok.WithLeading(lead)
	}

	var semi *token.Token
	if ss.Semicolon != nil {
		if i+1 < len(b.Stmts) && stmtStartsWithParen(b.Stmts[i+1].Stmt) {
			s := ctx.symbol(*ss.Semicolon, shape)
			s = s.AppendTrailing(ctx.newlineTrivia())
			semi = &s
		} else if comments := semicolonComments(*ss.Semicolon); len(comments) > 0 {
			appendStmtTrailing(formatted, trailingCommentLine(comments))
		}
	}
	if semi == nil {
		appendStmtTrailing(formatted, []token.Trivia{ctx.newlineTrivia()})
	}
	return ast.StmtSemi{Stmt: formatted, Semicolon: semi}
}

// stmtLeadingTrivia rebuilds the trivia placed before a statement from the
// original leading run: blank lines collapse to at most one, each comment
// sits on its own indented line, and the statement itself gets its indent.
// Blank lines at the very start of a block are dropped.
func (ctx Context) stmtLeadingTrivia(orig []token.Trivia, shape Shape, first bool) []token.Trivia {
	var out []token.Trivia
	ind := ctx.indentTrivia(shape)
	blank := false
	for _, tr := range orig {
		switch {
		case tr.Kind == token.TriviaNewline:
			if strings.Count(tr.Text, "\n") >= 1 {
				blank = true
			}
		case tr.IsComment():
			if blank && (!first || len(out) > 0) {
				out = append(out, ctx.newlineTrivia())
			}
			blank = false
			if ind.Text != "" {
				out = append(out, ind)
			}
			out = append(out, tr, ctx.newlineTrivia())
		}
	}
	if blank && (!first || len(out) > 0) {
		out = append(out, ctx.newlineTrivia())
	}
	if ind.Text != "" {
		out = append(out, ind)
	}
	return out
}

// eofLeadingTrivia rebuilds the trivia dangling after the last statement.
// Comments keep their lines and at most one blank line before them; a
// pending blank at the very end is dropped, the statement line break already
// terminates the file.
func (ctx Context) eofLeadingTrivia(orig []token.Trivia, blockEmpty bool) []token.Trivia {
	var out []token.Trivia
	blank := false
	for _, tr := range orig {
		switch {
		case tr.Kind == token.TriviaNewline:
			blank = true
		case tr.IsComment():
			if blank && (!blockEmpty || len(out) > 0) {
				out = append(out, ctx.newlineTrivia())
			}
			blank = false
			out = append(out, tr, ctx.newlineTrivia())
		}
	}
	return out
}

// semicolonComments collects the comments attached to a dropped semicolon.
func semicolonComments(semi token.Token) []token.Trivia {
	return append(commentsOnly(semi.Leading), commentsOnly(semi.Trailing)...)
}

// appendStmtTrailing appends trivia after the statement's last token. The
// statement must be freshly built by the formatter, which makes the
// in-place edit safe.
func appendStmtTrailing(s ast.Stmt, run []token.Trivia) {
	if tok := ast.LastTokenOf(s); tok != nil {
		*tok = tok.AppendTrailing(run...)
	}
}

// stmtStartsWithParen reports whether the statement's first token is an
// opening parenthesis. "a = b; (f)()" needs the semicolon to keep the
// second statement from parsing as a call on b.
func stmtStartsWithParen(s ast.Stmt) bool {
	first := ast.FirstTokenOf(s)
	return first != nil && first.Kind == token.LParen
}

func cloneSemicolon(semi *token.Token) *token.Token {
	if semi == nil {
		return nil
	}
	c := *semi
	return &c
}
