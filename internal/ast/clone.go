package ast

import (
	"fmt"

	"luafmt/internal/token"
)

// CloneBlock deep-copies a block. Token values are copied by value; their
// trivia slices are shared but never mutated in place, so the copy is safe
// to rewrite token-by-token.
func CloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	out := &Block{Stmts: make([]StmtSemi, len(b.Stmts))}
	for i := range b.Stmts {
		out.Stmts[i].Stmt = CloneStmt(b.Stmts[i].Stmt)
		if b.Stmts[i].Semicolon != nil {
			semi := *b.Stmts[i].Semicolon
			out.Stmts[i].Semicolon = &semi
		}
	}
	return out
}

// CloneStmt deep-copies one statement.
func CloneStmt(s Stmt) Stmt {
	switch n := s.(type) {
	case *Assign:
		c := *n
		c.Targets = cloneExprList(n.Targets)
		c.Values = cloneExprList(n.Values)
		return &c
	case *LocalAssign:
		c := *n
		c.Names = cloneTokenList(n.Names)
		c.Types = cloneTypes(n.Types)
		if n.Eq != nil {
			eq := *n.Eq
			c.Eq = &eq
		}
		c.Values = cloneExprList(n.Values)
		return &c
	case *FunctionDecl:
		c := *n
		c.Name = cloneFunctionName(n.Name)
		c.Body = cloneFunctionBody(n.Body)
		return &c
	case *LocalFunction:
		c := *n
		c.Body = cloneFunctionBody(n.Body)
		return &c
	case *If:
		c := *n
		c.Cond = CloneExpr(n.Cond)
		c.Body = CloneBlock(n.Body)
		c.ElseIfs = make([]*ElseIf, len(n.ElseIfs))
		for i, arm := range n.ElseIfs {
			a := *arm
			a.Cond = CloneExpr(arm.Cond)
			a.Body = CloneBlock(arm.Body)
			c.ElseIfs[i] = &a
		}
		if len(c.ElseIfs) == 0 {
			c.ElseIfs = nil
		}
		if n.Else != nil {
			el := *n.Else
			c.Else = &el
			c.ElseBody = CloneBlock(n.ElseBody)
		}
		return &c
	case *While:
		c := *n
		c.Cond = CloneExpr(n.Cond)
		c.Body = CloneBlock(n.Body)
		return &c
	case *NumericFor:
		c := *n
		c.VarType = cloneType(n.VarType)
		c.Start = CloneExpr(n.Start)
		c.Limit = CloneExpr(n.Limit)
		if n.Comma2 != nil {
			comma := *n.Comma2
			c.Comma2 = &comma
			c.Step = CloneExpr(n.Step)
		}
		c.Body = CloneBlock(n.Body)
		return &c
	case *GenericFor:
		c := *n
		c.Names = cloneTokenList(n.Names)
		c.Types = cloneTypes(n.Types)
		c.Exprs = cloneExprList(n.Exprs)
		c.Body = CloneBlock(n.Body)
		return &c
	case *Repeat:
		c := *n
		c.Body = CloneBlock(n.Body)
		c.Cond = CloneExpr(n.Cond)
		return &c
	case *Do:
		c := *n
		c.Body = CloneBlock(n.Body)
		return &c
	case *CallStmt:
		return &CallStmt{Call: clonePrefix(n.Call)}
	case *Return:
		c := *n
		c.Exprs = cloneExprList(n.Exprs)
		return &c
	case *Break:
		c := *n
		return &c
	case *Goto:
		c := *n
		return &c
	case *Label:
		c := *n
		return &c
	case *CompoundAssign:
		c := *n
		c.Target = CloneExpr(n.Target)
		c.Value = CloneExpr(n.Value)
		return &c
	case *TypeDecl:
		c := *n
		if n.Export != nil {
			exp := *n.Export
			c.Export = &exp
		}
		c.Def = append([]token.Token(nil), n.Def...)
		return &c
	default:
		panic(fmt.Sprintf("ast: unknown statement %T", s))
	}
}

// CloneExpr deep-copies one expression.
func CloneExpr(e Expr) Expr {
	switch n := e.(type) {
	case *TokenExpr:
		c := *n
		return &c
	case *BinExpr:
		c := *n
		c.LHS = CloneExpr(n.LHS)
		c.RHS = CloneExpr(n.RHS)
		return &c
	case *UnExpr:
		c := *n
		c.Operand = CloneExpr(n.Operand)
		return &c
	case *ParenExpr:
		c := *n
		c.Inner = CloneExpr(n.Inner)
		return &c
	case *FunctionExpr:
		c := *n
		c.Body = cloneFunctionBody(n.Body)
		return &c
	case *PrefixExpr:
		return clonePrefix(n)
	case *TableExpr:
		return cloneTable(n)
	default:
		panic(fmt.Sprintf("ast: unknown expression %T", e))
	}
}

func clonePrefix(p *PrefixExpr) *PrefixExpr {
	c := &PrefixExpr{Prefix: CloneExpr(p.Prefix)}
	if len(p.Suffixes) > 0 {
		c.Suffixes = make([]Suffix, len(p.Suffixes))
		for i, s := range p.Suffixes {
			c.Suffixes[i] = cloneSuffix(s)
		}
	}
	return c
}

func cloneSuffix(s Suffix) Suffix {
	switch n := s.(type) {
	case *DotIndex:
		c := *n
		return &c
	case *BracketIndex:
		c := *n
		c.Index = CloneExpr(n.Index)
		return &c
	case *CallSuffix:
		return &CallSuffix{Args: cloneCallArgs(n.Args)}
	case *MethodCallSuffix:
		c := *n
		c.Args = cloneCallArgs(n.Args)
		return &c
	default:
		panic(fmt.Sprintf("ast: unknown suffix %T", s))
	}
}

func cloneCallArgs(a CallArgs) CallArgs {
	switch n := a.(type) {
	case *ParenArgs:
		c := *n
		c.Args = cloneExprList(n.Args)
		return &c
	case *StringArg:
		c := *n
		return &c
	case *TableArg:
		return &TableArg{Table: cloneTable(n.Table)}
	default:
		panic(fmt.Sprintf("ast: unknown call arguments %T", a))
	}
}

func cloneTable(t *TableExpr) *TableExpr {
	c := &TableExpr{LBrace: t.LBrace, RBrace: t.RBrace}
	if len(t.Fields) > 0 {
		c.Fields = make([]TableField, len(t.Fields))
		for i, f := range t.Fields {
			c.Fields[i] = cloneTableField(f)
		}
	}
	return c
}

func cloneTableField(f TableField) TableField {
	switch n := f.(type) {
	case *NameField:
		c := *n
		c.Value = CloneExpr(n.Value)
		c.Sep = cloneTokenPtr(n.Sep)
		return &c
	case *ExprField:
		c := *n
		c.Key = CloneExpr(n.Key)
		c.Value = CloneExpr(n.Value)
		c.Sep = cloneTokenPtr(n.Sep)
		return &c
	case *ValueField:
		c := *n
		c.Value = CloneExpr(n.Value)
		c.Sep = cloneTokenPtr(n.Sep)
		return &c
	default:
		panic(fmt.Sprintf("ast: unknown table field %T", f))
	}
}

func cloneFunctionName(n FunctionName) FunctionName {
	c := n
	if len(n.Dots) > 0 {
		c.Dots = make([]Pair[token.Token], len(n.Dots))
		for i := range n.Dots {
			c.Dots[i].Value = n.Dots[i].Value
			c.Dots[i].Sep = cloneTokenPtr(n.Dots[i].Sep)
		}
	}
	c.Colon = cloneTokenPtr(n.Colon)
	c.Method = cloneTokenPtr(n.Method)
	return c
}

func cloneFunctionBody(b *FunctionBody) *FunctionBody {
	c := *b
	c.Params = cloneTokenList(b.Params)
	c.ParamTypes = cloneTypes(b.ParamTypes)
	c.ReturnType = cloneType(b.ReturnType)
	c.Body = CloneBlock(b.Body)
	return &c
}

func cloneExprList(list Punctuated[Expr]) Punctuated[Expr] {
	if len(list) == 0 {
		return nil
	}
	out := make(Punctuated[Expr], len(list))
	for i := range list {
		out[i].Value = CloneExpr(list[i].Value)
		out[i].Sep = cloneTokenPtr(list[i].Sep)
	}
	return out
}

func cloneTokenList(list Punctuated[token.Token]) Punctuated[token.Token] {
	if len(list) == 0 {
		return nil
	}
	out := make(Punctuated[token.Token], len(list))
	for i := range list {
		out[i].Value = list[i].Value
		out[i].Sep = cloneTokenPtr(list[i].Sep)
	}
	return out
}

func cloneTypes(types []*TypeAnnotation) []*TypeAnnotation {
	if len(types) == 0 {
		return nil
	}
	out := make([]*TypeAnnotation, len(types))
	for i, t := range types {
		out[i] = cloneType(t)
	}
	return out
}

func cloneType(t *TypeAnnotation) *TypeAnnotation {
	if t == nil {
		return nil
	}
	c := *t
	c.Type = append([]token.Token(nil), t.Type...)
	return &c
}

func cloneTokenPtr(t *token.Token) *token.Token {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
