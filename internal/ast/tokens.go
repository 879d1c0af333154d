package ast

import (
	"fmt"

	"luafmt/internal/source"
	"luafmt/internal/token"
)

// VisitTokens calls fn for every token of the node, in source order. This is
// the single traversal behind printing, comment collection, and span
// computation, so the three can never disagree on token order.
func VisitTokens(node any, fn func(tok *token.Token)) {
	switch n := node.(type) {
	case *token.Token:
		fn(n)
	case token.Token:
		fn(&n)
	case *TypeAnnotation:
		visitTypeAnnotation(n, fn)
	case *Chunk:
		VisitTokens(n.Block, fn)
		fn(&n.EOF)
	case *Block:
		for i := range n.Stmts {
			VisitTokens(n.Stmts[i].Stmt, fn)
			if n.Stmts[i].Semicolon != nil {
				fn(n.Stmts[i].Semicolon)
			}
		}

	case *Assign:
		visitPunctuatedExpr(n.Targets, fn)
		fn(&n.Eq)
		visitPunctuatedExpr(n.Values, fn)
	case *LocalAssign:
		fn(&n.Local)
		visitNamesWithTypes(n.Names, n.Types, fn)
		if n.Eq != nil {
			fn(n.Eq)
			visitPunctuatedExpr(n.Values, fn)
		}
	case *FunctionDecl:
		fn(&n.Function)
		fn(&n.Name.Base)
		for i := range n.Name.Dots {
			fn(n.Name.Dots[i].Sep)
			fn(&n.Name.Dots[i].Value)
		}
		if n.Name.Colon != nil {
			fn(n.Name.Colon)
			fn(n.Name.Method)
		}
		VisitTokens(n.Body, fn)
	case *LocalFunction:
		fn(&n.Local)
		fn(&n.Function)
		fn(&n.Name)
		VisitTokens(n.Body, fn)
	case *If:
		fn(&n.If)
		VisitTokens(n.Cond, fn)
		fn(&n.Then)
		VisitTokens(n.Body, fn)
		for _, arm := range n.ElseIfs {
			fn(&arm.ElseIf)
			VisitTokens(arm.Cond, fn)
			fn(&arm.Then)
			VisitTokens(arm.Body, fn)
		}
		if n.Else != nil {
			fn(n.Else)
			VisitTokens(n.ElseBody, fn)
		}
		fn(&n.End)
	case *While:
		fn(&n.While)
		VisitTokens(n.Cond, fn)
		fn(&n.Do)
		VisitTokens(n.Body, fn)
		fn(&n.End)
	case *NumericFor:
		fn(&n.For)
		fn(&n.Var)
		visitTypeAnnotation(n.VarType, fn)
		fn(&n.Eq)
		VisitTokens(n.Start, fn)
		fn(&n.Comma1)
		VisitTokens(n.Limit, fn)
		if n.Comma2 != nil {
			fn(n.Comma2)
			VisitTokens(n.Step, fn)
		}
		fn(&n.Do)
		VisitTokens(n.Body, fn)
		fn(&n.EndToken)
	case *GenericFor:
		fn(&n.For)
		visitNamesWithTypes(n.Names, n.Types, fn)
		fn(&n.In)
		visitPunctuatedExpr(n.Exprs, fn)
		fn(&n.Do)
		VisitTokens(n.Body, fn)
		fn(&n.EndToken)
	case *Repeat:
		fn(&n.Repeat)
		VisitTokens(n.Body, fn)
		fn(&n.Until)
		VisitTokens(n.Cond, fn)
	case *Do:
		fn(&n.Do)
		VisitTokens(n.Body, fn)
		fn(&n.End)
	case *CallStmt:
		VisitTokens(n.Call, fn)
	case *Return:
		fn(&n.Return)
		visitPunctuatedExpr(n.Exprs, fn)
	case *Break:
		fn(&n.Break)
	case *Goto:
		fn(&n.Goto)
		fn(&n.Label)
	case *Label:
		fn(&n.Left)
		fn(&n.Name)
		fn(&n.Right)
	case *CompoundAssign:
		VisitTokens(n.Target, fn)
		fn(&n.Op)
		VisitTokens(n.Value, fn)
	case *TypeDecl:
		if n.Export != nil {
			fn(n.Export)
		}
		fn(&n.Type)
		fn(&n.Name)
		fn(&n.Eq)
		for i := range n.Def {
			fn(&n.Def[i])
		}

	case *TokenExpr:
		fn(&n.Tok)
	case *BinExpr:
		VisitTokens(n.LHS, fn)
		fn(&n.Op)
		VisitTokens(n.RHS, fn)
	case *UnExpr:
		fn(&n.Op)
		VisitTokens(n.Operand, fn)
	case *ParenExpr:
		fn(&n.LParen)
		VisitTokens(n.Inner, fn)
		fn(&n.RParen)
	case *FunctionExpr:
		fn(&n.Function)
		VisitTokens(n.Body, fn)
	case *PrefixExpr:
		VisitTokens(n.Prefix, fn)
		for _, s := range n.Suffixes {
			VisitTokens(s, fn)
		}
	case *TableExpr:
		fn(&n.LBrace)
		for _, f := range n.Fields {
			VisitTokens(f, fn)
		}
		fn(&n.RBrace)

	case *DotIndex:
		fn(&n.Dot)
		fn(&n.Name)
	case *BracketIndex:
		fn(&n.LBracket)
		VisitTokens(n.Index, fn)
		fn(&n.RBracket)
	case *CallSuffix:
		VisitTokens(n.Args, fn)
	case *MethodCallSuffix:
		fn(&n.Colon)
		fn(&n.Name)
		VisitTokens(n.Args, fn)

	case *ParenArgs:
		fn(&n.LParen)
		visitPunctuatedExpr(n.Args, fn)
		fn(&n.RParen)
	case *StringArg:
		fn(&n.Tok)
	case *TableArg:
		VisitTokens(n.Table, fn)

	case *NameField:
		fn(&n.Name)
		fn(&n.Eq)
		VisitTokens(n.Value, fn)
		if n.Sep != nil {
			fn(n.Sep)
		}
	case *ExprField:
		fn(&n.LBracket)
		VisitTokens(n.Key, fn)
		fn(&n.RBracket)
		fn(&n.Eq)
		VisitTokens(n.Value, fn)
		if n.Sep != nil {
			fn(n.Sep)
		}
	case *ValueField:
		VisitTokens(n.Value, fn)
		if n.Sep != nil {
			fn(n.Sep)
		}

	case *FunctionBody:
		fn(&n.LParen)
		visitNamesWithTypes(n.Params, n.ParamTypes, fn)
		fn(&n.RParen)
		visitTypeAnnotation(n.ReturnType, fn)
		VisitTokens(n.Body, fn)
		fn(&n.End)

	default:
		panic(fmt.Sprintf("ast: unknown node %T", node))
	}
}

func visitPunctuatedExpr(list Punctuated[Expr], fn func(tok *token.Token)) {
	for i := range list {
		VisitTokens(list[i].Value, fn)
		if list[i].Sep != nil {
			fn(list[i].Sep)
		}
	}
}

func visitNamesWithTypes(names Punctuated[token.Token], types []*TypeAnnotation, fn func(tok *token.Token)) {
	for i := range names {
		fn(&names[i].Value)
		if i < len(types) {
			visitTypeAnnotation(types[i], fn)
		}
		if names[i].Sep != nil {
			fn(names[i].Sep)
		}
	}
}

func visitTypeAnnotation(a *TypeAnnotation, fn func(tok *token.Token)) {
	if a == nil {
		return
	}
	fn(&a.Colon)
	for i := range a.Type {
		fn(&a.Type[i])
	}
}

func spanOf(node any) source.Span {
	var sp source.Span
	first := true
	VisitTokens(node, func(tok *token.Token) {
		if tok.Span.Empty() && tok.Span.Start == 0 && tok.Kind != token.EOF {
			// synthetic token, contributes no position
			return
		}
		if first {
			sp = tok.Span
			first = false
			return
		}
		sp = sp.Cover(tok.Span)
	})
	return sp
}

func (n *Assign) Span() source.Span         { return spanOf(n) }
func (n *LocalAssign) Span() source.Span    { return spanOf(n) }
func (n *FunctionDecl) Span() source.Span   { return spanOf(n) }
func (n *LocalFunction) Span() source.Span  { return spanOf(n) }
func (n *If) Span() source.Span             { return spanOf(n) }
func (n *While) Span() source.Span          { return spanOf(n) }
func (n *NumericFor) Span() source.Span     { return spanOf(n) }
func (n *GenericFor) Span() source.Span     { return spanOf(n) }
func (n *Repeat) Span() source.Span         { return spanOf(n) }
func (n *Do) Span() source.Span             { return spanOf(n) }
func (n *CallStmt) Span() source.Span       { return spanOf(n) }
func (n *Return) Span() source.Span         { return spanOf(n) }
func (n *Break) Span() source.Span          { return spanOf(n) }
func (n *Goto) Span() source.Span           { return spanOf(n) }
func (n *Label) Span() source.Span          { return spanOf(n) }
func (n *CompoundAssign) Span() source.Span { return spanOf(n) }
func (n *TypeDecl) Span() source.Span       { return spanOf(n) }

func (n *TokenExpr) Span() source.Span    { return spanOf(n) }
func (n *BinExpr) Span() source.Span      { return spanOf(n) }
func (n *UnExpr) Span() source.Span       { return spanOf(n) }
func (n *ParenExpr) Span() source.Span    { return spanOf(n) }
func (n *FunctionExpr) Span() source.Span { return spanOf(n) }
func (n *PrefixExpr) Span() source.Span   { return spanOf(n) }
func (n *TableExpr) Span() source.Span    { return spanOf(n) }

func (n *DotIndex) span() source.Span         { return spanOf(n) }
func (n *BracketIndex) span() source.Span     { return spanOf(n) }
func (n *CallSuffix) span() source.Span       { return spanOf(n) }
func (n *MethodCallSuffix) span() source.Span { return spanOf(n) }
func (n *ParenArgs) span() source.Span        { return spanOf(n) }
func (n *StringArg) span() source.Span        { return spanOf(n) }
func (n *TableArg) span() source.Span         { return spanOf(n) }
