package format

import (
	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// formatTable formats a table constructor, choosing single-line or expanded
// layout. A table expands when its single-line rendering is over budget or
// when it holds comments.
func (ctx Context) formatTable(t *ast.TableExpr, shape Shape) *ast.TableExpr {
	if len(t.Fields) == 0 {
		return ctx.formatEmptyTable(t, shape)
	}
	if ast.ContainsComments(t) {
		return ctx.expandTable(t, shape)
	}
	single := ctx.formatSingleLineTable(t, shape)
	if shape.AddWidthOf(single).OverBudget() {
		return ctx.expandTable(t, shape)
	}
	return single
}

func (ctx Context) formatEmptyTable(t *ast.TableExpr, shape Shape) *ast.TableExpr {
	lb := ctx.symbol(t.LBrace, shape)
	rb := ctx.symbol(t.RBrace, shape)
	if t.RBrace.HasLeadingComments() {
		inner := shape.IncrementBlockIndent()
		lb = lb.AppendTrailing(ctx.breakTrivia(inner)...)
		rb = ctx.indentedSymbol(t.RBrace, shape.Reset())
		return &ast.TableExpr{LBrace: lb, RBrace: rb}
	}
	if ctx.Config.PadEmptyTables {
		lb = lb.AppendTrailing(token.Spaces(1))
	}
	return &ast.TableExpr{LBrace: lb, RBrace: rb}
}

// formatSingleLineTable lays the table out as "{ a, b }" or "{a, b}"
// depending on the padding knob, with separators normalized to the
// configured kind.
func (ctx Context) formatSingleLineTable(t *ast.TableExpr, shape Shape) *ast.TableExpr {
	lb := ctx.symbol(t.LBrace, shape)
	if ctx.Config.PadTables {
		lb = lb.AppendTrailing(token.Spaces(1))
	}
	cur := shape.Add(Width(&lb))
	fields := make([]ast.TableField, 0, len(t.Fields))
	for i, f := range t.Fields {
		last := i == len(t.Fields)-1
		formatted := ctx.formatTableField(f, cur)
		cur = cur.Add(Width(formatted))
		if last {
			formatted = ast.WithSeparator(formatted, nil)
		} else {
			sep := ctx.separatorToken(f.Separator(), cur)
			sep = sep.AppendTrailing(token.Spaces(1))
			formatted = ast.WithSeparator(formatted, &sep)
			cur = cur.Add(Width(&sep))
		}
		fields = append(fields, formatted)
	}
	rb := ctx.symbol(t.RBrace, shape)
	if ctx.Config.PadTables {
		rb = rb.PrependLeading(token.Spaces(1))
	}
	return &ast.TableExpr{LBrace: lb, Fields: fields, RBrace: rb}
}

// expandTable lays the table out with one field per line, one block indent
// deeper, the closing brace back at the current level.
func (ctx Context) expandTable(t *ast.TableExpr, shape Shape) *ast.TableExpr {
	if len(t.Fields) == 0 {
		return ctx.formatEmptyTable(t, shape)
	}
	inner := shape.IncrementBlockIndent()
	lb := ctx.formatSymbol(t.LBrace, shape, nil, ctx.breakTrivia(inner))
	fields := make([]ast.TableField, 0, len(t.Fields))
	for i, f := range t.Fields {
		last := i == len(t.Fields)-1
		formatted := ctx.formatTableFieldFitting(f, inner.Reset())
		keepSep := !last || ctx.Config.ExtraSepAtTableEnd
		if keepSep {
			sep := ctx.separatorToken(f.Separator(), inner)
			after := ctx.breakTrivia(inner)
			if last {
				after = ctx.breakTrivia(shape)
			}
			sep = sep.WithTrailing(append(commentTrail(f.Separator()), after...))
			formatted = ast.WithSeparator(formatted, &sep)
		} else {
			formatted = ast.WithSeparator(formatted, nil)
			formatted = withFieldTrailing(formatted, ctx.breakTrivia(shape))
		}
		fields = append(fields, formatted)
	}
	rb := ctx.indentedSymbol(t.RBrace, shape.Reset())
	return &ast.TableExpr{LBrace: lb, Fields: fields, RBrace: rb}
}

// separatorToken normalizes a field separator to the configured kind,
// synthesizing one when the source omitted it.
func (ctx Context) separatorToken(sep *token.Token, shape Shape) token.Token {
	kind := token.Comma
	if ctx.Config.TableSeparator == SeparatorSemicolon {
		kind = token.Semicolon
	}
	if sep == nil {
		return token.Symbol(kind)
	}
	out := ctx.symbol(*sep, shape)
	out.Kind = kind
	out.Text = token.Symbol(kind).Text
	return out
}

// commentTrail returns the trailing comments of a separator, spaced for
// same-line placement, or nil when there is no separator.
func commentTrail(sep *token.Token) []token.Trivia {
	if sep == nil {
		return nil
	}
	return trailingCommentLine(commentsOnly(sep.Trailing))
}

// withFieldTrailing appends trivia after the last token of a field value.
func withFieldTrailing(f ast.TableField, run []token.Trivia) ast.TableField {
	switch f := f.(type) {
	case *ast.NameField:
		c := *f
		c.Value = ast.UpdateTrailing(c.Value, ast.TriviaAppend, run)
		return &c
	case *ast.ExprField:
		c := *f
		c.Value = ast.UpdateTrailing(c.Value, ast.TriviaAppend, run)
		return &c
	case *ast.ValueField:
		c := *f
		c.Value = ast.UpdateTrailing(c.Value, ast.TriviaAppend, run)
		return &c
	default:
		panic("format: unknown table field variant")
	}
}

// formatTableField formats one field for single-line layout.
func (ctx Context) formatTableField(f ast.TableField, shape Shape) ast.TableField {
	switch f := f.(type) {
	case *ast.NameField:
		name := ctx.symbol(f.Name, shape)
		eq := ctx.spacedSymbol(f.Eq, shape.AddWidthOf(&name))
		value := ctx.formatExpression(f.Value, shape.AddWidthOf(&name).AddWidthOf(&eq))
		return &ast.NameField{Name: name, Eq: eq, Value: value, Sep: f.Sep}
	case *ast.ExprField:
		idx := ctx.formatBracketIndex(&ast.BracketIndex{
			LBracket: f.LBracket,
			Index:    f.Key,
			RBracket: f.RBracket,
		}, shape)
		cur := shape.AddWidthOf(idx)
		eq := ctx.spacedSymbol(f.Eq, cur)
		value := ctx.formatExpression(f.Value, cur.AddWidthOf(&eq))
		return &ast.ExprField{
			LBracket: idx.LBracket,
			Key:      idx.Index,
			RBracket: idx.RBracket,
			Eq:       eq,
			Value:    value,
			Sep:      f.Sep,
		}
	case *ast.ValueField:
		return &ast.ValueField{Value: ctx.formatExpression(f.Value, shape), Sep: f.Sep}
	default:
		panic("format: unknown table field variant")
	}
}

// formatTableFieldFitting formats one field for expanded layout, hanging
// the value when it does not fit its line.
func (ctx Context) formatTableFieldFitting(f ast.TableField, shape Shape) ast.TableField {
	switch f := f.(type) {
	case *ast.NameField:
		name := ctx.symbol(f.Name, shape)
		eq := ctx.spacedSymbol(f.Eq, shape.AddWidthOf(&name))
		value := ctx.formatExpressionFitting(f.Value, shape.AddWidthOf(&name).AddWidthOf(&eq))
		return &ast.NameField{Name: name, Eq: eq, Value: value, Sep: f.Sep}
	case *ast.ExprField:
		idx := ctx.formatBracketIndex(&ast.BracketIndex{
			LBracket: f.LBracket,
			Index:    f.Key,
			RBracket: f.RBracket,
		}, shape)
		cur := shape.AddWidthOf(idx)
		eq := ctx.spacedSymbol(f.Eq, cur)
		value := ctx.formatExpressionFitting(f.Value, cur.AddWidthOf(&eq))
		return &ast.ExprField{
			LBracket: idx.LBracket,
			Key:      idx.Index,
			RBracket: idx.RBracket,
			Eq:       eq,
			Value:    value,
			Sep:      f.Sep,
		}
	case *ast.ValueField:
		return &ast.ValueField{Value: ctx.formatExpressionFitting(f.Value, shape), Sep: f.Sep}
	default:
		panic("format: unknown table field variant")
	}
}
