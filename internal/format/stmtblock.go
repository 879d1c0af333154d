package format

import (
	"luafmt/internal/ast"
)

// rebuildNestedBlocks keeps every token of an out-of-range statement
// untouched while still visiting its nested blocks, so statements inside
// the range get formatted no matter how deep they sit. Blocks reached
// through expressions count too: anonymous functions, table values, and
// call arguments all carry blocks.
func (ctx Context) rebuildNestedBlocks(s ast.Stmt, shape Shape) ast.Stmt {
	inner := shape.IncrementBlockIndent()
	switch s := s.(type) {
	case *ast.Assign:
		c := *s
		c.Targets = ctx.rebuildExprList(s.Targets, shape)
		c.Values = ctx.rebuildExprList(s.Values, shape)
		return &c
	case *ast.LocalAssign:
		c := *s
		c.Values = ctx.rebuildExprList(s.Values, shape)
		return &c
	case *ast.FunctionDecl:
		c := *s
		c.Body = ctx.rebuildFunctionBody(s.Body, shape)
		return &c
	case *ast.LocalFunction:
		c := *s
		c.Body = ctx.rebuildFunctionBody(s.Body, shape)
		return &c
	case *ast.If:
		c := *s
		c.Cond = ctx.rebuildExpr(s.Cond, shape)
		c.Body = ctx.formatBlock(s.Body, inner)
		c.ElseIfs = make([]*ast.ElseIf, len(s.ElseIfs))
		for i, arm := range s.ElseIfs {
			a := *arm
			a.Cond = ctx.rebuildExpr(arm.Cond, shape)
			a.Body = ctx.formatBlock(arm.Body, inner)
			c.ElseIfs[i] = &a
		}
		if s.ElseBody != nil {
			c.ElseBody = ctx.formatBlock(s.ElseBody, inner)
		}
		return &c
	case *ast.While:
		c := *s
		c.Cond = ctx.rebuildExpr(s.Cond, shape)
		c.Body = ctx.formatBlock(s.Body, inner)
		return &c
	case *ast.NumericFor:
		c := *s
		c.Start = ctx.rebuildExpr(s.Start, shape)
		c.Limit = ctx.rebuildExpr(s.Limit, shape)
		if s.Step != nil {
			c.Step = ctx.rebuildExpr(s.Step, shape)
		}
		c.Body = ctx.formatBlock(s.Body, inner)
		return &c
	case *ast.GenericFor:
		c := *s
		c.Exprs = ctx.rebuildExprList(s.Exprs, shape)
		c.Body = ctx.formatBlock(s.Body, inner)
		return &c
	case *ast.Repeat:
		c := *s
		c.Body = ctx.formatBlock(s.Body, inner)
		c.Cond = ctx.rebuildExpr(s.Cond, shape)
		return &c
	case *ast.Do:
		c := *s
		c.Body = ctx.formatBlock(s.Body, inner)
		return &c
	case *ast.CallStmt:
		c := *s
		c.Call = ctx.rebuildPrefixExpr(s.Call, shape)
		return &c
	case *ast.Return:
		c := *s
		c.Exprs = ctx.rebuildExprList(s.Exprs, shape)
		return &c
	case *ast.CompoundAssign:
		c := *s
		c.Target = ctx.rebuildExpr(s.Target, shape)
		c.Value = ctx.rebuildExpr(s.Value, shape)
		return &c
	case *ast.Break, *ast.Goto, *ast.Label, *ast.TypeDecl:
		return s
	default:
		panic("format: unknown statement variant")
	}
}

// rebuildExpr visits an expression without formatting it, rebuilding only
// the blocks reachable through it.
func (ctx Context) rebuildExpr(e ast.Expr, shape Shape) ast.Expr {
	switch e := e.(type) {
	case *ast.TokenExpr:
		return e
	case *ast.BinExpr:
		c := *e
		c.LHS = ctx.rebuildExpr(e.LHS, shape)
		c.RHS = ctx.rebuildExpr(e.RHS, shape)
		return &c
	case *ast.UnExpr:
		c := *e
		c.Operand = ctx.rebuildExpr(e.Operand, shape)
		return &c
	case *ast.ParenExpr:
		c := *e
		c.Inner = ctx.rebuildExpr(e.Inner, shape)
		return &c
	case *ast.FunctionExpr:
		c := *e
		c.Body = ctx.rebuildFunctionBody(e.Body, shape)
		return &c
	case *ast.PrefixExpr:
		return ctx.rebuildPrefixExpr(e, shape)
	case *ast.TableExpr:
		return ctx.rebuildTable(e, shape)
	default:
		panic("format: unknown expression variant")
	}
}

func (ctx Context) rebuildExprList(list ast.Punctuated[ast.Expr], shape Shape) ast.Punctuated[ast.Expr] {
	out := make(ast.Punctuated[ast.Expr], len(list))
	for i, pair := range list {
		out[i] = ast.Pair[ast.Expr]{Value: ctx.rebuildExpr(pair.Value, shape), Sep: pair.Sep}
	}
	return out
}

func (ctx Context) rebuildFunctionBody(body *ast.FunctionBody, shape Shape) *ast.FunctionBody {
	c := *body
	c.Body = ctx.formatBlock(body.Body, shape.IncrementBlockIndent())
	return &c
}

func (ctx Context) rebuildPrefixExpr(e *ast.PrefixExpr, shape Shape) *ast.PrefixExpr {
	c := *e
	c.Prefix = ctx.rebuildExpr(e.Prefix, shape)
	c.Suffixes = make([]ast.Suffix, len(e.Suffixes))
	for i, s := range e.Suffixes {
		switch s := s.(type) {
		case *ast.BracketIndex:
			b := *s
			b.Index = ctx.rebuildExpr(s.Index, shape)
			c.Suffixes[i] = &b
		case *ast.CallSuffix:
			c.Suffixes[i] = &ast.CallSuffix{Args: ctx.rebuildCallArgs(s.Args, shape)}
		case *ast.MethodCallSuffix:
			m := *s
			m.Args = ctx.rebuildCallArgs(s.Args, shape)
			c.Suffixes[i] = &m
		default:
			c.Suffixes[i] = s
		}
	}
	return &c
}

func (ctx Context) rebuildCallArgs(args ast.CallArgs, shape Shape) ast.CallArgs {
	switch args := args.(type) {
	case *ast.ParenArgs:
		c := *args
		c.Args = ctx.rebuildExprList(args.Args, shape)
		return &c
	case *ast.TableArg:
		return &ast.TableArg{Table: ctx.rebuildTable(args.Table, shape)}
	default:
		return args
	}
}

func (ctx Context) rebuildTable(t *ast.TableExpr, shape Shape) *ast.TableExpr {
	c := *t
	c.Fields = make([]ast.TableField, len(t.Fields))
	for i, f := range t.Fields {
		switch f := f.(type) {
		case *ast.NameField:
			n := *f
			n.Value = ctx.rebuildExpr(f.Value, shape)
			c.Fields[i] = &n
		case *ast.ExprField:
			n := *f
			n.Key = ctx.rebuildExpr(f.Key, shape)
			n.Value = ctx.rebuildExpr(f.Value, shape)
			c.Fields[i] = &n
		case *ast.ValueField:
			n := *f
			n.Value = ctx.rebuildExpr(f.Value, shape)
			c.Fields[i] = &n
		default:
			panic("format: unknown table field variant")
		}
	}
	return &c
}
