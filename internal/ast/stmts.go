package ast

import (
	"luafmt/internal/source"
	"luafmt/internal/token"
)

// TypeAnnotation is a luau-style ": type" decorator on a name or parameter.
// The type itself is kept as a raw token run; the formatter only normalizes
// spacing around it.
type TypeAnnotation struct {
	Colon token.Token
	Type  []token.Token
}

func (a *TypeAnnotation) span() source.Span {
	sp := a.Colon.Span
	for i := range a.Type {
		sp = sp.Cover(a.Type[i].Span)
	}
	return sp
}

// Assign is "e1, e2 = v1, v2".
type Assign struct {
	Targets Punctuated[Expr]
	Eq      token.Token
	Values  Punctuated[Expr]
}

// LocalAssign is "local n1, n2 = v1, v2"; Eq and Values may be absent.
// Types runs parallel to Names; entries are nil without an annotation.
type LocalAssign struct {
	Local  token.Token
	Names  Punctuated[token.Token]
	Types  []*TypeAnnotation
	Eq     *token.Token
	Values Punctuated[Expr]
}

// FunctionName is "a.b.c" or "a.b:m" in a function declaration.
type FunctionName struct {
	Base   token.Token
	Dots   []Pair[token.Token] // Sep is the '.' token, Value the name after it
	Colon  *token.Token
	Method *token.Token
}

// FunctionBody is the parameter list and block shared by all function forms.
type FunctionBody struct {
	LParen     token.Token
	Params     Punctuated[token.Token] // names or the '...' token
	ParamTypes []*TypeAnnotation       // parallel to Params, nil entries allowed
	RParen     token.Token
	ReturnType *TypeAnnotation
	Body       *Block
	End        token.Token
}

// FunctionDecl is "function a.b:c(...) ... end".
type FunctionDecl struct {
	Function token.Token
	Name     FunctionName
	Body     *FunctionBody
}

// LocalFunction is "local function name(...) ... end".
type LocalFunction struct {
	Local    token.Token
	Function token.Token
	Name     token.Token
	Body     *FunctionBody
}

// ElseIf is one "elseif cond then block" arm of an If.
type ElseIf struct {
	ElseIf token.Token
	Cond   Expr
	Then   token.Token
	Body   *Block
}

// If is "if cond then block {elseif cond then block} [else block] end".
// Else and ElseBody are present together or not at all.
type If struct {
	If       token.Token
	Cond     Expr
	Then     token.Token
	Body     *Block
	ElseIfs  []*ElseIf
	Else     *token.Token
	ElseBody *Block
	End      token.Token
}

// While is "while cond do block end".
type While struct {
	While token.Token
	Cond  Expr
	Do    token.Token
	Body  *Block
	End   token.Token
}

// NumericFor is "for v = start, limit [, step] do block end".
type NumericFor struct {
	For      token.Token
	Var      token.Token
	VarType  *TypeAnnotation
	Eq       token.Token
	Start    Expr
	Comma1   token.Token
	Limit    Expr
	Comma2   *token.Token
	Step     Expr
	Do       token.Token
	Body     *Block
	EndToken token.Token
}

// GenericFor is "for n1, n2 in e1, e2 do block end".
type GenericFor struct {
	For      token.Token
	Names    Punctuated[token.Token]
	Types    []*TypeAnnotation
	In       token.Token
	Exprs    Punctuated[Expr]
	Do       token.Token
	Body     *Block
	EndToken token.Token
}

// Repeat is "repeat block until cond".
type Repeat struct {
	Repeat token.Token
	Body   *Block
	Until  token.Token
	Cond   Expr
}

// Do is a bare "do block end".
type Do struct {
	Do   token.Token
	Body *Block
	End  token.Token
}

// CallStmt is a function call in statement position. Call's suffix chain is
// guaranteed by the parser to end in a call suffix.
type CallStmt struct {
	Call *PrefixExpr
}

// Return is "return e1, e2"; always the last statement of its block.
type Return struct {
	Return token.Token
	Exprs  Punctuated[Expr]
}

// Break is a bare "break"; always the last statement of its block.
type Break struct {
	Break token.Token
}

// Goto is a lua52 "goto label" statement.
type Goto struct {
	Goto  token.Token
	Label token.Token
}

// Label is a lua52 "::name::" statement.
type Label struct {
	Left  token.Token
	Name  token.Token
	Right token.Token
}

// CompoundAssign is a luau "target op= value" statement.
type CompoundAssign struct {
	Target Expr
	Op     token.Token
	Value  Expr
}

// TypeDecl is a luau "[export] type Name = ..." statement. The definition is
// kept as a raw token run like TypeAnnotation.
type TypeDecl struct {
	Export *token.Token // "export" spelled as an identifier, if present
	Type   token.Token  // "type" spelled as an identifier
	Name   token.Token
	Eq     token.Token
	Def    []token.Token
}

func (*Assign) stmtNode()         {}
func (*LocalAssign) stmtNode()    {}
func (*FunctionDecl) stmtNode()   {}
func (*LocalFunction) stmtNode()  {}
func (*If) stmtNode()             {}
func (*While) stmtNode()          {}
func (*NumericFor) stmtNode()     {}
func (*GenericFor) stmtNode()     {}
func (*Repeat) stmtNode()         {}
func (*Do) stmtNode()             {}
func (*CallStmt) stmtNode()       {}
func (*Return) stmtNode()         {}
func (*Break) stmtNode()          {}
func (*Goto) stmtNode()           {}
func (*Label) stmtNode()          {}
func (*CompoundAssign) stmtNode() {}
func (*TypeDecl) stmtNode()       {}
