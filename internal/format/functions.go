package format

import (
	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// formatCallArgs formats call arguments for single-line layout, applying
// the call-parentheses-omission knob when the sole argument allows it.
func (ctx Context) formatCallArgs(args ast.CallArgs, shape Shape) ast.CallArgs {
	switch args := args.(type) {
	case *ast.ParenArgs:
		if omitted, ok := ctx.omitCallParens(args, shape); ok {
			return omitted
		}
		lp := ctx.symbol(args.LParen, shape)
		list := formatPunctuated(ctx, args.Args, shape.Add(Width(&lp)), Context.formatExpression)
		rp := ctx.symbol(args.RParen, shape)
		return &ast.ParenArgs{LParen: lp, Args: list, RParen: rp}
	case *ast.StringArg:
		tok := ctx.formatTokenReference(args.Tok, shape)
		tok = tok.PrependLeading(token.Spaces(1))
		return &ast.StringArg{Tok: tok}
	case *ast.TableArg:
		table := ctx.formatTable(args.Table, shape.Add(1))
		table.LBrace = table.LBrace.PrependLeading(token.Spaces(1))
		return &ast.TableArg{Table: table}
	default:
		panic("format: unknown call argument variant")
	}
}

// omitCallParens rewrites f("x") to f "x" and f({...}) to f {...} when the
// knob is on and the call has exactly one string or table argument with no
// comments on the dropped parentheses.
func (ctx Context) omitCallParens(args *ast.ParenArgs, shape Shape) (ast.CallArgs, bool) {
	if !ctx.Config.NoCallParentheses || len(args.Args) != 1 {
		return nil, false
	}
	if args.LParen.HasComments() || args.RParen.HasComments() {
		return nil, false
	}
	switch arg := args.Args[0].Value.(type) {
	case *ast.TokenExpr:
		if arg.Tok.Kind != token.StringLit && arg.Tok.Kind != token.LongStringLit {
			return nil, false
		}
		tok := ctx.formatTokenReference(arg.Tok, shape)
		tok = tok.PrependLeading(token.Spaces(1))
		return &ast.StringArg{Tok: tok}, true
	case *ast.TableExpr:
		table := ctx.formatTable(arg, shape.Add(1))
		table.LBrace = table.LBrace.PrependLeading(token.Spaces(1))
		return &ast.TableArg{Table: table}, true
	default:
		return nil, false
	}
}

// expandCallArgs formats call arguments over multiple lines: one argument
// per line, one block indent deeper, with the closing parenthesis back at
// the current level.
func (ctx Context) expandCallArgs(args ast.CallArgs, shape Shape) ast.CallArgs {
	parens, ok := args.(*ast.ParenArgs)
	if !ok || len(parens.Args) == 0 {
		return ctx.formatCallArgs(args, shape)
	}
	inner := shape.IncrementBlockIndent()
	lp := ctx.formatSymbol(parens.LParen, shape, nil, ctx.breakTrivia(inner))
	list := make(ast.Punctuated[ast.Expr], 0, len(parens.Args))
	for i, pair := range parens.Args {
		value := ctx.formatExpressionFitting(pair.Value, inner.Reset())
		var sep *token.Token
		if pair.Sep != nil {
			var moved []token.Trivia
			value, moved = detachTrailingComments(value)
			after := ctx.breakTrivia(inner)
			if i == len(parens.Args)-1 {
				after = ctx.breakTrivia(shape)
			}
			s := ctx.formatSymbol(*pair.Sep, inner, nil, append(trailingCommentLine(moved), after...))
			sep = &s
		} else if i == len(parens.Args)-1 {
			value = ast.UpdateTrailing(value, ast.TriviaAppend, ctx.breakTrivia(shape))
		}
		list = append(list, ast.Pair[ast.Expr]{Value: value, Sep: sep})
	}
	rp := ctx.symbol(parens.RParen, shape)
	return &ast.ParenArgs{LParen: lp, Args: list, RParen: rp}
}

// formatFunctionBody formats a parameter list and block. The block always
// goes multi-line unless it is empty, in which case the end keyword stays
// adjacent: "function() end".
func (ctx Context) formatFunctionBody(body *ast.FunctionBody, shape Shape) *ast.FunctionBody {
	lp := ctx.symbol(body.LParen, shape)
	cur := shape.Add(Width(&lp))
	params := formatPunctuated(ctx, body.Params, cur, Context.formatParamName)
	types := ctx.formatAnnotations(body.ParamTypes, cur)
	rp := ctx.symbol(body.RParen, shape)
	var ret *ast.TypeAnnotation
	if body.ReturnType != nil {
		ret = ctx.formatAnnotation(body.ReturnType, shape)
	}

	out := &ast.FunctionBody{
		LParen:     lp,
		Params:     params,
		ParamTypes: types,
		RParen:     rp,
		ReturnType: ret,
	}
	if len(body.Body.Stmts) == 0 && !ast.ContainsComments(body.Body) && !body.End.HasLeadingComments() {
		out.Body = &ast.Block{}
		out.End = ctx.formatSymbol(body.End, shape, []token.Trivia{token.Spaces(1)}, nil)
		return out
	}
	if out.ReturnType != nil && len(out.ReturnType.Type) > 0 {
		last := len(out.ReturnType.Type) - 1
		out.ReturnType.Type[last] = ctx.blockOpen(out.ReturnType.Type[last])
	} else {
		out.RParen = ctx.blockOpen(out.RParen)
	}
	out.Body = ctx.formatBlock(body.Body, shape.IncrementBlockIndent())
	out.End = ctx.indentedSymbol(body.End, shape.Reset())
	return out
}

// formatParamName formats one parameter, a name or the vararg token.
func (ctx Context) formatParamName(name token.Token, shape Shape) token.Token {
	return ctx.formatTokenReference(name, shape)
}

// formatAnnotation normalizes a ": type" annotation: no space before the
// colon, one after, and the raw type tokens separated by single spaces.
func (ctx Context) formatAnnotation(a *ast.TypeAnnotation, shape Shape) *ast.TypeAnnotation {
	if a == nil {
		return nil
	}
	colon := ctx.trailingSpaceSymbol(a.Colon, shape)
	types := make([]token.Token, 0, len(a.Type))
	for i, tok := range a.Type {
		t := ctx.formatTokenReference(tok, shape)
		if i > 0 && wantSpaceBetweenTypeTokens(a.Type[i-1], tok) {
			t = t.PrependLeading(token.Spaces(1))
		}
		types = append(types, t)
	}
	return &ast.TypeAnnotation{Colon: colon, Type: types}
}

func (ctx Context) formatAnnotations(list []*ast.TypeAnnotation, shape Shape) []*ast.TypeAnnotation {
	if list == nil {
		return nil
	}
	out := make([]*ast.TypeAnnotation, len(list))
	for i, a := range list {
		out[i] = ctx.formatAnnotation(a, shape)
	}
	return out
}

// wantSpaceBetweenTypeTokens keeps type token runs readable without parsing
// them: words get spaces between each other and around arrows and unions,
// while punctuation stays tight.
func wantSpaceBetweenTypeTokens(prev, next token.Token) bool {
	switch next.Kind {
	case token.Arrow:
		return true
	case token.Comma, token.Colon, token.RParen, token.RBrace, token.RBracket:
		return false
	}
	switch prev.Kind {
	case token.Arrow, token.Comma, token.Colon:
		return true
	}
	wordish := func(t token.Token) bool {
		return t.Kind == token.Ident || t.IsKeyword() || t.IsLiteral()
	}
	return wordish(prev) && wordish(next)
}
