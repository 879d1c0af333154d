package format

import (
	"strings"

	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// formatExpression formats an expression for single-line layout. The shape
// tracks the width already used on the line so nested decisions (call
// arguments, tables) can still choose to expand.
func (ctx Context) formatExpression(e ast.Expr, shape Shape) ast.Expr {
	switch e := e.(type) {
	case *ast.TokenExpr:
		return &ast.TokenExpr{Tok: ctx.formatTokenReference(e.Tok, shape)}
	case *ast.UnExpr:
		op := ctx.symbol(e.Op, shape)
		if e.Op.Kind == token.KwNot {
			op = ctx.trailingSpaceSymbol(e.Op, shape)
		}
		operand := ctx.formatExpression(e.Operand, shape.Add(Width(&op)))
		if minusWouldFuse(op, operand) {
			op = op.AppendTrailing(token.Spaces(1))
		}
		return &ast.UnExpr{Op: op, Operand: operand}
	case *ast.BinExpr:
		lhs := ctx.formatExpression(e.LHS, shape)
		opShape := shape.AddWidthOf(lhs)
		op := ctx.spacedSymbol(e.Op, opShape)
		rhs := ctx.formatExpression(e.RHS, opShape.Add(Width(&op)))
		return &ast.BinExpr{LHS: lhs, Op: op, RHS: rhs}
	case *ast.ParenExpr:
		lp := ctx.symbol(e.LParen, shape)
		inner := ctx.formatExpression(e.Inner, shape.Add(Width(&lp)))
		rp := ctx.symbol(e.RParen, shape)
		return &ast.ParenExpr{LParen: lp, Inner: inner, RParen: rp}
	case *ast.FunctionExpr:
		fn := ctx.symbol(e.Function, shape)
		body := ctx.formatFunctionBody(e.Body, shape.AddWidthOf(&fn))
		return &ast.FunctionExpr{Function: fn, Body: body}
	case *ast.PrefixExpr:
		return ctx.formatPrefixExpr(e, shape)
	case *ast.TableExpr:
		return ctx.formatTable(e, shape)
	default:
		panic("format: unknown expression variant")
	}
}

// formatExpressionFitting formats an expression, hanging it over multiple
// lines when the single-line rendering exceeds the budget or when the
// expression carries comments that a single line cannot hold.
func (ctx Context) formatExpressionFitting(e ast.Expr, shape Shape) ast.Expr {
	single := ctx.formatExpression(e, shape)
	if !shape.AddWidthOf(single).OverBudget() && !exprNeedsHangForComments(e) {
		return single
	}
	return ctx.hangExpression(e, shape)
}

// exprNeedsHangForComments reports whether the expression has interior
// comments that would be lost or misplaced on a single line. Comments at
// the very edges are safe; the surrounding construct owns those positions.
func exprNeedsHangForComments(e ast.Expr) bool {
	first := ast.FirstTokenOf(e)
	last := ast.LastTokenOf(e)
	found := false
	ast.VisitTokens(e, func(tok *token.Token) {
		if found {
			return
		}
		leading := tok.HasLeadingComments() && tok != first
		trailing := tok.HasTrailingComments() && tok != last
		if leading || trailing {
			found = true
		}
	})
	return found
}

// minusWouldFuse reports whether printing the operand directly after a minus
// operator would join the two into a "--" comment opener, either because the
// operand itself starts with a minus or because a leading comment renders
// first.
func minusWouldFuse(op token.Token, operand ast.Expr) bool {
	if op.Kind != token.Minus || len(op.Trailing) > 0 {
		return false
	}
	first := ast.FirstTokenOf(operand)
	if first == nil {
		return false
	}
	return strings.HasPrefix(first.Text, "-") || first.HasLeadingComments()
}

// hangExpression formats an expression over multiple lines. Binary chains
// break before each operator at one extra level of hanging indentation;
// calls and tables expand their own bodies instead.
func (ctx Context) hangExpression(e ast.Expr, shape Shape) ast.Expr {
	switch e := e.(type) {
	case *ast.BinExpr:
		return ctx.hangBinExpr(e, shape)
	case *ast.UnExpr:
		op := ctx.symbol(e.Op, shape)
		if e.Op.Kind == token.KwNot {
			op = ctx.trailingSpaceSymbol(e.Op, shape)
		}
		operand := ctx.hangExpression(e.Operand, shape.Add(Width(&op)))
		if minusWouldFuse(op, operand) {
			op = op.AppendTrailing(token.Spaces(1))
		}
		return &ast.UnExpr{Op: op, Operand: operand}
	case *ast.ParenExpr:
		lp := ctx.symbol(e.LParen, shape)
		inner := ctx.hangExpression(e.Inner, shape.Add(Width(&lp)))
		rp := ctx.symbol(e.RParen, shape)
		return &ast.ParenExpr{LParen: lp, Inner: inner, RParen: rp}
	case *ast.PrefixExpr:
		return ctx.expandPrefixExpr(e, shape)
	case *ast.TableExpr:
		return ctx.expandTable(e, shape)
	default:
		return ctx.formatExpression(e, shape)
	}
}

// hangBinExpr hangs a binary chain: the first operand stays on the current
// line and every following operator starts a continuation line one hanging
// indent deeper.
func (ctx Context) hangBinExpr(e *ast.BinExpr, shape Shape) ast.Expr {
	return ctx.hangBinChain(e, shape, shape.IncrementAdditionalIndent())
}

func (ctx Context) hangBinChain(e *ast.BinExpr, shape, hang Shape) ast.Expr {
	var lhs ast.Expr
	if bin, ok := e.LHS.(*ast.BinExpr); ok {
		lhs = ctx.hangBinChain(bin, shape, hang)
	} else {
		lhs = ctx.formatExpression(e.LHS, shape)
		if shape.AddWidthOf(lhs).OverBudget() {
			lhs = ctx.hangExpression(e.LHS, shape)
		}
	}
	op := ctx.formatSymbol(e.Op, hang, ctx.breakTrivia(hang), []token.Trivia{token.Spaces(1)})
	rhsShape := hang.Reset().AddWidthOf(&op)
	rhs := ctx.formatExpression(e.RHS, rhsShape)
	if rhsShape.AddWidthOf(rhs).OverBudget() {
		rhs = ctx.hangExpression(e.RHS, rhsShape)
	}
	return &ast.BinExpr{LHS: lhs, Op: op, RHS: rhs}
}

// formatPrefixExpr formats a primary expression with its suffix chain on
// one line.
func (ctx Context) formatPrefixExpr(e *ast.PrefixExpr, shape Shape) *ast.PrefixExpr {
	prefix := ctx.formatExpression(e.Prefix, shape)
	cur := shape.AddWidthOf(prefix)
	suffixes := make([]ast.Suffix, 0, len(e.Suffixes))
	for _, s := range e.Suffixes {
		formatted := ctx.formatSuffix(s, cur)
		cur = cur.Add(Width(formatted))
		suffixes = append(suffixes, formatted)
	}
	return &ast.PrefixExpr{Prefix: prefix, Suffixes: suffixes}
}

// expandPrefixExpr formats a prefix expression whose single-line rendering
// did not fit: every call suffix expands its arguments over multiple lines.
func (ctx Context) expandPrefixExpr(e *ast.PrefixExpr, shape Shape) *ast.PrefixExpr {
	prefix := ctx.formatExpression(e.Prefix, shape)
	cur := shape.AddWidthOf(prefix)
	suffixes := make([]ast.Suffix, 0, len(e.Suffixes))
	for _, s := range e.Suffixes {
		var formatted ast.Suffix
		switch s := s.(type) {
		case *ast.CallSuffix:
			formatted = &ast.CallSuffix{Args: ctx.expandCallArgs(s.Args, cur)}
		case *ast.MethodCallSuffix:
			colon := ctx.symbol(s.Colon, cur)
			name := ctx.symbol(s.Name, cur)
			formatted = &ast.MethodCallSuffix{
				Colon: colon,
				Name:  name,
				Args:  ctx.expandCallArgs(s.Args, cur.Add(Width(&colon)+Width(&name))),
			}
		default:
			formatted = ctx.formatSuffix(s, cur)
		}
		cur = cur.Add(Width(formatted))
		suffixes = append(suffixes, formatted)
	}
	return &ast.PrefixExpr{Prefix: prefix, Suffixes: suffixes}
}

// formatSuffix formats one index or call step of a prefix chain.
func (ctx Context) formatSuffix(s ast.Suffix, shape Shape) ast.Suffix {
	switch s := s.(type) {
	case *ast.DotIndex:
		return &ast.DotIndex{
			Dot:  ctx.symbol(s.Dot, shape),
			Name: ctx.symbol(s.Name, shape),
		}
	case *ast.BracketIndex:
		return ctx.formatBracketIndex(s, shape)
	case *ast.CallSuffix:
		return &ast.CallSuffix{Args: ctx.formatCallArgs(s.Args, shape)}
	case *ast.MethodCallSuffix:
		colon := ctx.symbol(s.Colon, shape)
		name := ctx.symbol(s.Name, shape)
		return &ast.MethodCallSuffix{
			Colon: colon,
			Name:  name,
			Args:  ctx.formatCallArgs(s.Args, shape.Add(Width(&colon)+Width(&name))),
		}
	default:
		panic("format: unknown suffix variant")
	}
}

// formatBracketIndex formats "[expr]", padding the inside when the index
// starts or ends with a bracket so the output never forms "[[" or "]]".
func (ctx Context) formatBracketIndex(s *ast.BracketIndex, shape Shape) *ast.BracketIndex {
	lb := ctx.symbol(s.LBracket, shape)
	index := ctx.formatExpression(s.Index, shape.Add(Width(&lb)))
	rb := ctx.symbol(s.RBracket, shape)
	if first := ast.FirstTokenOf(index); first != nil && strings.HasPrefix(first.Text, "[") {
		lb = lb.AppendTrailing(token.Spaces(1))
	}
	if last := ast.LastTokenOf(index); last != nil && strings.HasSuffix(last.Text, "]") {
		rb = rb.PrependLeading(token.Spaces(1))
	}
	return &ast.BracketIndex{LBracket: lb, Index: index, RBracket: rb}
}

// stripParens removes redundant parentheses wrapping an expression,
// recursively, moving any comments on the parens onto the inner tokens.
// Conditions and loop bounds never need the outer parens.
func stripParens(e ast.Expr) ast.Expr {
	paren, ok := e.(*ast.ParenExpr)
	if !ok {
		return e
	}
	inner := stripParens(paren.Inner)
	if lead := commentsOnly(paren.LParen.Leading); len(lead) > 0 {
		run := append([]token.Trivia(nil), lead...)
		if first := ast.FirstTokenOf(inner); first != nil {
			run = append(run, first.Leading...)
		}
		inner = ast.UpdateLeading(inner, ast.TriviaReplace, run)
	}
	if trail := commentsOnly(paren.RParen.Trailing); len(trail) > 0 {
		inner = ast.UpdateTrailing(inner, ast.TriviaAppend, trail)
	}
	return inner
}
