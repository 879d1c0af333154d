package format

import (
	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// formatStmt formats one statement. The result carries no leading
// indentation; formatBlock owns line placement.
func (ctx Context) formatStmt(s ast.Stmt, shape Shape) ast.Stmt {
	switch s := s.(type) {
	case *ast.Assign:
		return ctx.formatAssign(s, shape)
	case *ast.LocalAssign:
		return ctx.formatLocalAssign(s, shape)
	case *ast.FunctionDecl:
		return ctx.formatFunctionDecl(s, shape)
	case *ast.LocalFunction:
		return ctx.formatLocalFunction(s, shape)
	case *ast.If:
		return ctx.formatIf(s, shape)
	case *ast.While:
		return ctx.formatWhile(s, shape)
	case *ast.NumericFor:
		return ctx.formatNumericFor(s, shape)
	case *ast.GenericFor:
		return ctx.formatGenericFor(s, shape)
	case *ast.Repeat:
		return ctx.formatRepeat(s, shape)
	case *ast.Do:
		return ctx.formatDo(s, shape)
	case *ast.CallStmt:
		return ctx.formatCallStmt(s, shape)
	case *ast.Return:
		return ctx.formatReturn(s, shape)
	case *ast.Break:
		return &ast.Break{Break: ctx.symbol(s.Break, shape)}
	case *ast.Goto:
		return &ast.Goto{
			Goto:  ctx.trailingSpaceSymbol(s.Goto, shape),
			Label: ctx.symbol(s.Label, shape),
		}
	case *ast.Label:
		return &ast.Label{
			Left:  ctx.symbol(s.Left, shape),
			Name:  ctx.symbol(s.Name, shape),
			Right: ctx.symbol(s.Right, shape),
		}
	case *ast.CompoundAssign:
		return ctx.formatCompoundAssign(s, shape)
	case *ast.TypeDecl:
		return ctx.formatTypeDecl(s, shape)
	default:
		panic("format: unknown statement variant")
	}
}

// condLayout is the result of laying out a "keyword condition keyword"
// header such as "if cond then" or "while cond do".
type condLayout struct {
	lead  token.Token
	cond  ast.Expr
	trail token.Token
}

// formatConditionHeader lays out a condition between two keywords. The
// single-line form is "kw cond kw2". The header hangs when it is over
// budget or any comment would be trapped on the line: the condition then
// moves to its own lines one hanging indent deeper and the trailing keyword
// returns to the base indent.
func (ctx Context) formatConditionHeader(lead token.Token, cond ast.Expr, trail token.Token, shape Shape) condLayout {
	cond = stripParens(cond)

	singleLead := ctx.trailingSpaceSymbol(lead, shape)
	condShape := shape.AddWidthOf(&singleLead)
	singleCond := ctx.formatExpression(cond, condShape)
	singleTrail := ctx.formatSymbol(trail, shape, []token.Trivia{token.Spaces(1)}, nil)

	over := condShape.AddWidthOf(singleCond).AddWidthOf(&singleTrail).OverBudget()
	hang := over ||
		lead.HasTrailingComments() ||
		trail.HasLeadingComments() ||
		ast.ContainsComments(cond)
	if !hang {
		return condLayout{lead: singleLead, cond: singleCond, trail: singleTrail}
	}

	hangShape := shape.IncrementAdditionalIndent()
	hungLead := ctx.symbol(lead, shape)
	hungLead = hungLead.AppendTrailing(ctx.breakTrivia(hangShape)...)
	hungCond := ctx.formatExpressionFitting(cond, hangShape.Reset())
	hungCond = ast.UpdateTrailing(hungCond, ast.TriviaAppend, []token.Trivia{ctx.newlineTrivia()})
	hungTrail := ctx.indentedSymbol(trail, shape.Reset())
	return condLayout{lead: hungLead, cond: hungCond, trail: hungTrail}
}

// blockOpen appends the line break that separates a block-opening token
// from the block body.
func (ctx Context) blockOpen(tok token.Token) token.Token {
	return tok.AppendTrailing(ctx.newlineTrivia())
}

func (ctx Context) formatAssign(s *ast.Assign, shape Shape) *ast.Assign {
	targets := formatPunctuated(ctx, s.Targets, shape, Context.formatExpression)
	cur := shape
	for i := range targets {
		cur = cur.AddWidthOf(targets[i].Value)
		if targets[i].Sep != nil {
			cur = cur.Add(Width(targets[i].Sep))
		}
	}
	eq := ctx.spacedSymbol(s.Eq, cur)
	cur = cur.Add(Width(&eq))
	values := formatPunctuated(ctx, s.Values, cur, Context.formatExpressionFitting)
	return &ast.Assign{Targets: targets, Eq: eq, Values: values}
}

func (ctx Context) formatLocalAssign(s *ast.LocalAssign, shape Shape) *ast.LocalAssign {
	local := ctx.trailingSpaceSymbol(s.Local, shape)
	cur := shape.AddWidthOf(&local)

	names := make(ast.Punctuated[token.Token], 0, len(s.Names))
	types := make([]*ast.TypeAnnotation, len(s.Names))
	for i, pair := range s.Names {
		name := ctx.formatTokenReference(pair.Value, cur)
		cur = cur.Add(Width(&name))
		if i < len(s.Types) && s.Types[i] != nil {
			types[i] = ctx.formatAnnotation(s.Types[i], cur)
			cur = cur.Add(Width(types[i]))
		}
		var sep *token.Token
		if pair.Sep != nil {
			sp := ctx.trailingSpaceSymbol(*pair.Sep, cur)
			sep = &sp
			cur = cur.Add(Width(&sp))
		}
		names = append(names, ast.Pair[token.Token]{Value: name, Sep: sep})
	}

	out := &ast.LocalAssign{Local: local, Names: names, Types: types}
	if s.Eq != nil {
		eq := ctx.spacedSymbol(*s.Eq, cur)
		cur = cur.Add(Width(&eq))
		out.Eq = &eq
		out.Values = formatPunctuated(ctx, s.Values, cur, Context.formatExpressionFitting)
	}
	return out
}

func (ctx Context) formatFunctionName(n ast.FunctionName, shape Shape) ast.FunctionName {
	out := ast.FunctionName{Base: ctx.symbol(n.Base, shape)}
	for _, d := range n.Dots {
		var dot *token.Token
		if d.Sep != nil {
			t := ctx.symbol(*d.Sep, shape)
			dot = &t
		}
		out.Dots = append(out.Dots, ast.Pair[token.Token]{Value: ctx.symbol(d.Value, shape), Sep: dot})
	}
	if n.Colon != nil {
		c := ctx.symbol(*n.Colon, shape)
		m := ctx.symbol(*n.Method, shape)
		out.Colon = &c
		out.Method = &m
	}
	return out
}

func (ctx Context) formatFunctionDecl(s *ast.FunctionDecl, shape Shape) *ast.FunctionDecl {
	fn := ctx.trailingSpaceSymbol(s.Function, shape)
	name := ctx.formatFunctionName(s.Name, shape.AddWidthOf(&fn))
	body := ctx.formatFunctionBody(s.Body, shape.AddWidthOf(&fn).AddWidthOf(&name))
	return &ast.FunctionDecl{Function: fn, Name: name, Body: body}
}

func (ctx Context) formatLocalFunction(s *ast.LocalFunction, shape Shape) *ast.LocalFunction {
	local := ctx.trailingSpaceSymbol(s.Local, shape)
	fn := ctx.trailingSpaceSymbol(s.Function, shape.AddWidthOf(&local))
	name := ctx.symbol(s.Name, shape)
	body := ctx.formatFunctionBody(s.Body, shape.AddWidthOf(&local).AddWidthOf(&fn).AddWidthOf(&name))
	return &ast.LocalFunction{Local: local, Function: fn, Name: name, Body: body}
}

func (ctx Context) formatIf(s *ast.If, shape Shape) *ast.If {
	header := ctx.formatConditionHeader(s.If, s.Cond, s.Then, shape)
	out := &ast.If{
		If:   header.lead,
		Cond: header.cond,
		Then: ctx.blockOpen(header.trail),
		Body: ctx.formatBlock(s.Body, shape.IncrementBlockIndent()),
	}
	for _, arm := range s.ElseIfs {
		armHeader := ctx.formatConditionHeader(arm.ElseIf, arm.Cond, arm.Then, shape)
		if ind := ctx.indentTrivia(shape.Reset()); ind.Text != "" {
			armHeader.lead = armHeader.lead.PrependLeading(ind)
		}
		out.ElseIfs = append(out.ElseIfs, &ast.ElseIf{
			ElseIf: armHeader.lead,
			Cond:   armHeader.cond,
			Then:   ctx.blockOpen(armHeader.trail),
			Body:   ctx.formatBlock(arm.Body, shape.IncrementBlockIndent()),
		})
	}
	if s.Else != nil {
		el := ctx.blockOpen(ctx.indentedSymbol(*s.Else, shape.Reset()))
		out.Else = &el
		out.ElseBody = ctx.formatBlock(s.ElseBody, shape.IncrementBlockIndent())
	}
	out.End = ctx.indentedSymbol(s.End, shape.Reset())
	return out
}

func (ctx Context) formatWhile(s *ast.While, shape Shape) *ast.While {
	header := ctx.formatConditionHeader(s.While, s.Cond, s.Do, shape)
	return &ast.While{
		While: header.lead,
		Cond:  header.cond,
		Do:    ctx.blockOpen(header.trail),
		Body:  ctx.formatBlock(s.Body, shape.IncrementBlockIndent()),
		End:   ctx.indentedSymbol(s.End, shape.Reset()),
	}
}

func (ctx Context) formatNumericFor(s *ast.NumericFor, shape Shape) *ast.NumericFor {
	forTok := ctx.trailingSpaceSymbol(s.For, shape)
	cur := shape.AddWidthOf(&forTok)
	v := ctx.symbol(s.Var, cur)
	cur = cur.Add(Width(&v))
	varType := ctx.formatAnnotation(s.VarType, cur)
	if varType != nil {
		cur = cur.Add(Width(varType))
	}
	eq := ctx.spacedSymbol(s.Eq, cur)
	cur = cur.Add(Width(&eq))
	start := ctx.formatExpressionFitting(stripParens(s.Start), cur)
	cur = cur.AddWidthOf(start)
	c1 := ctx.trailingSpaceSymbol(s.Comma1, cur)
	cur = cur.Add(Width(&c1))
	limit := ctx.formatExpressionFitting(stripParens(s.Limit), cur)
	cur = cur.AddWidthOf(limit)

	out := &ast.NumericFor{
		For: forTok, Var: v, VarType: varType, Eq: eq,
		Start: start, Comma1: c1, Limit: limit,
	}
	if s.Comma2 != nil {
		c2 := ctx.trailingSpaceSymbol(*s.Comma2, cur)
		cur = cur.Add(Width(&c2))
		out.Comma2 = &c2
		out.Step = ctx.formatExpressionFitting(stripParens(s.Step), cur)
		cur = cur.AddWidthOf(out.Step)
	}
	out.Do = ctx.blockOpen(ctx.formatSymbol(s.Do, cur, []token.Trivia{token.Spaces(1)}, nil))
	out.Body = ctx.formatBlock(s.Body, shape.IncrementBlockIndent())
	out.EndToken = ctx.indentedSymbol(s.EndToken, shape.Reset())
	return out
}

func (ctx Context) formatGenericFor(s *ast.GenericFor, shape Shape) *ast.GenericFor {
	forTok := ctx.trailingSpaceSymbol(s.For, shape)
	cur := shape.AddWidthOf(&forTok)

	names := make(ast.Punctuated[token.Token], 0, len(s.Names))
	types := make([]*ast.TypeAnnotation, len(s.Names))
	for i, pair := range s.Names {
		name := ctx.formatTokenReference(pair.Value, cur)
		cur = cur.Add(Width(&name))
		if i < len(s.Types) && s.Types[i] != nil {
			types[i] = ctx.formatAnnotation(s.Types[i], cur)
			cur = cur.Add(Width(types[i]))
		}
		var sep *token.Token
		if pair.Sep != nil {
			sp := ctx.trailingSpaceSymbol(*pair.Sep, cur)
			sep = &sp
			cur = cur.Add(Width(&sp))
		}
		names = append(names, ast.Pair[token.Token]{Value: name, Sep: sep})
	}

	in := ctx.spacedSymbol(s.In, cur)
	cur = cur.Add(Width(&in))
	exprs := formatPunctuated(ctx, s.Exprs, cur, Context.formatExpressionFitting)
	for i := range exprs {
		cur = cur.AddWidthOf(exprs[i].Value)
		if exprs[i].Sep != nil {
			cur = cur.Add(Width(exprs[i].Sep))
		}
	}
	return &ast.GenericFor{
		For: forTok, Names: names, Types: types, In: in, Exprs: exprs,
		Do:       ctx.blockOpen(ctx.formatSymbol(s.Do, cur, []token.Trivia{token.Spaces(1)}, nil)),
		Body:     ctx.formatBlock(s.Body, shape.IncrementBlockIndent()),
		EndToken: ctx.indentedSymbol(s.EndToken, shape.Reset()),
	}
}

// formatRepeat lays out "repeat block until cond". The until condition
// follows the same hang rules as other headers, minus a trailing keyword.
func (ctx Context) formatRepeat(s *ast.Repeat, shape Shape) *ast.Repeat {
	rep := ctx.blockOpen(ctx.symbol(s.Repeat, shape))
	body := ctx.formatBlock(s.Body, shape.IncrementBlockIndent())

	cond := stripParens(s.Cond)
	until := ctx.indentedSymbol(s.Until, shape.Reset())
	untilLine := until.AppendTrailing(token.Spaces(1))
	condShape := shape.Reset().Add(Width(&untilLine))
	single := ctx.formatExpression(cond, condShape)

	hang := condShape.AddWidthOf(single).OverBudget() ||
		s.Until.HasTrailingComments() ||
		ast.ContainsComments(cond)
	if !hang {
		return &ast.Repeat{Repeat: rep, Body: body, Until: untilLine, Cond: single}
	}
	hangShape := shape.IncrementAdditionalIndent()
	hungUntil := until.AppendTrailing(ctx.breakTrivia(hangShape)...)
	hungCond := ctx.formatExpressionFitting(cond, hangShape.Reset())
	return &ast.Repeat{Repeat: rep, Body: body, Until: hungUntil, Cond: hungCond}
}

func (ctx Context) formatDo(s *ast.Do, shape Shape) *ast.Do {
	return &ast.Do{
		Do:   ctx.blockOpen(ctx.symbol(s.Do, shape)),
		Body: ctx.formatBlock(s.Body, shape.IncrementBlockIndent()),
		End:  ctx.indentedSymbol(s.End, shape.Reset()),
	}
}

// formatCallStmt formats a call in statement position: single-line when it
// fits, otherwise the trailing call arguments expand over multiple lines.
func (ctx Context) formatCallStmt(s *ast.CallStmt, shape Shape) *ast.CallStmt {
	single := ctx.formatPrefixExpr(s.Call, shape)
	if !shape.AddWidthOf(single).OverBudget() && !exprNeedsHangForComments(s.Call) {
		return &ast.CallStmt{Call: single}
	}
	return &ast.CallStmt{Call: ctx.expandPrefixExpr(s.Call, shape)}
}

func (ctx Context) formatReturn(s *ast.Return, shape Shape) *ast.Return {
	if len(s.Exprs) == 0 {
		return &ast.Return{Return: ctx.symbol(s.Return, shape)}
	}
	ret := ctx.trailingSpaceSymbol(s.Return, shape)
	exprs := formatPunctuated(ctx, s.Exprs, shape.AddWidthOf(&ret), Context.formatExpressionFitting)
	return &ast.Return{Return: ret, Exprs: exprs}
}

func (ctx Context) formatCompoundAssign(s *ast.CompoundAssign, shape Shape) *ast.CompoundAssign {
	target := ctx.formatExpression(s.Target, shape)
	op := ctx.spacedSymbol(s.Op, shape.AddWidthOf(target))
	value := ctx.formatExpressionFitting(s.Value, shape.AddWidthOf(target).AddWidthOf(&op))
	return &ast.CompoundAssign{Target: target, Op: op, Value: value}
}

func (ctx Context) formatTypeDecl(s *ast.TypeDecl, shape Shape) *ast.TypeDecl {
	out := &ast.TypeDecl{}
	cur := shape
	if s.Export != nil {
		exp := ctx.trailingSpaceSymbol(*s.Export, cur)
		out.Export = &exp
		cur = cur.Add(Width(&exp))
	}
	out.Type = ctx.trailingSpaceSymbol(s.Type, cur)
	cur = cur.Add(Width(&out.Type))
	out.Name = ctx.symbol(s.Name, cur)
	cur = cur.Add(Width(&out.Name))
	out.Eq = ctx.spacedSymbol(s.Eq, cur)
	for i, tok := range s.Def {
		t := ctx.formatTokenReference(tok, cur)
		if i > 0 && wantSpaceBetweenTypeTokens(s.Def[i-1], tok) {
			t = t.PrependLeading(token.Spaces(1))
		}
		out.Def = append(out.Def, t)
	}
	return out
}
