package ast

import (
	"luafmt/internal/source"
	"luafmt/internal/token"
)

// TokenExpr is a single-token expression: a name, number, string, nil,
// true, false, or '...'.
type TokenExpr struct {
	Tok token.Token
}

// BinExpr is "lhs op rhs".
type BinExpr struct {
	LHS Expr
	Op  token.Token
	RHS Expr
}

// UnExpr is "op operand" (not, -, #).
type UnExpr struct {
	Op      token.Token
	Operand Expr
}

// ParenExpr is "( inner )".
type ParenExpr struct {
	LParen token.Token
	Inner  Expr
	RParen token.Token
}

// FunctionExpr is an anonymous "function(...) ... end".
type FunctionExpr struct {
	Function token.Token
	Body     *FunctionBody
}

// PrefixExpr is a primary expression followed by index/call suffixes:
// "a.b[c](d):m(e)". Prefix is a TokenExpr name or a ParenExpr.
type PrefixExpr struct {
	Prefix   Expr
	Suffixes []Suffix
}

// Suffix is one step of a PrefixExpr chain; the set is closed.
type Suffix interface {
	suffixNode()
	span() source.Span
}

// DotIndex is ".name".
type DotIndex struct {
	Dot  token.Token
	Name token.Token
}

// BracketIndex is "[expr]".
type BracketIndex struct {
	LBracket token.Token
	Index    Expr
	RBracket token.Token
}

// CallSuffix is a call with its arguments.
type CallSuffix struct {
	Args CallArgs
}

// MethodCallSuffix is ":name(args)".
type MethodCallSuffix struct {
	Colon token.Token
	Name  token.Token
	Args  CallArgs
}

func (*DotIndex) suffixNode()         {}
func (*BracketIndex) suffixNode()     {}
func (*CallSuffix) suffixNode()       {}
func (*MethodCallSuffix) suffixNode() {}

// CallArgs is one argument form: parenthesized list, bare string, or bare
// table constructor. The set is closed.
type CallArgs interface {
	callArgsNode()
	span() source.Span
}

// ParenArgs is "(e1, e2)".
type ParenArgs struct {
	LParen token.Token
	Args   Punctuated[Expr]
	RParen token.Token
}

// StringArg is a bare string argument: f "x" or f [[x]].
type StringArg struct {
	Tok token.Token
}

// TableArg is a bare table-constructor argument: f { ... }.
type TableArg struct {
	Table *TableExpr
}

func (*ParenArgs) callArgsNode() {}
func (*StringArg) callArgsNode() {}
func (*TableArg) callArgsNode()  {}

// TableExpr is a table constructor "{ fields }".
type TableExpr struct {
	LBrace token.Token
	Fields []TableField
	RBrace token.Token
}

// TableField is one field of a table constructor with its optional
// separator; the set of variants is closed.
type TableField interface {
	tableFieldNode()
	Separator() *token.Token
	withSeparator(sep *token.Token) TableField
}

// NameField is "name = value".
type NameField struct {
	Name  token.Token
	Eq    token.Token
	Value Expr
	Sep   *token.Token
}

// ExprField is "[key] = value".
type ExprField struct {
	LBracket token.Token
	Key      Expr
	RBracket token.Token
	Eq       token.Token
	Value    Expr
	Sep      *token.Token
}

// ValueField is a positional "value" field.
type ValueField struct {
	Value Expr
	Sep   *token.Token
}

func (*NameField) tableFieldNode()  {}
func (*ExprField) tableFieldNode()  {}
func (*ValueField) tableFieldNode() {}

func (f *NameField) Separator() *token.Token  { return f.Sep }
func (f *ExprField) Separator() *token.Token  { return f.Sep }
func (f *ValueField) Separator() *token.Token { return f.Sep }

func (f *NameField) withSeparator(sep *token.Token) TableField {
	c := *f
	c.Sep = sep
	return &c
}

func (f *ExprField) withSeparator(sep *token.Token) TableField {
	c := *f
	c.Sep = sep
	return &c
}

func (f *ValueField) withSeparator(sep *token.Token) TableField {
	c := *f
	c.Sep = sep
	return &c
}

// WithSeparator returns a copy of the field with the separator replaced;
// nil removes it.
func WithSeparator(f TableField, sep *token.Token) TableField {
	return f.withSeparator(sep)
}

func (*TokenExpr) exprNode()    {}
func (*BinExpr) exprNode()      {}
func (*UnExpr) exprNode()       {}
func (*ParenExpr) exprNode()    {}
func (*FunctionExpr) exprNode() {}
func (*PrefixExpr) exprNode()   {}
func (*TableExpr) exprNode()    {}

// IsCall reports whether the suffix chain ends in a call, i.e. the whole
// prefix expression is a function call.
func (p *PrefixExpr) IsCall() bool {
	if len(p.Suffixes) == 0 {
		return false
	}
	switch p.Suffixes[len(p.Suffixes)-1].(type) {
	case *CallSuffix, *MethodCallSuffix:
		return true
	default:
		return false
	}
}
