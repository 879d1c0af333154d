package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwElseif represents the 'elseif' keyword.
	KwElseif // elseif
	// KwEnd represents the 'end' keyword.
	KwEnd // end
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwGoto represents the 'goto' keyword (lua52 dialect).
	KwGoto // goto
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwLocal represents the 'local' keyword.
	KwLocal // local
	// KwNil represents the 'nil' keyword.
	KwNil // nil
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwRepeat represents the 'repeat' keyword.
	KwRepeat // repeat
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwThen represents the 'then' keyword.
	KwThen // then
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwUntil represents the 'until' keyword.
	KwUntil // until
	// KwWhile represents the 'while' keyword.
	KwWhile // while

	// NumberLit represents a numeric literal token.
	NumberLit
	// StringLit represents a quoted string literal token.
	StringLit
	// LongStringLit represents a long-bracket [[...]] string literal token.
	LongStringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Caret represents the caret operator token.
	Caret // ^
	// Hash represents the length operator token.
	Hash // #
	// Assign represents the assignment token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// TildeEq represents the inequality operator token.
	TildeEq // ~=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Concat represents the string concatenation operator token.
	Concat // ..
	// Ellipsis represents the vararg token.
	Ellipsis // ...
	// Semicolon represents the statement separator token.
	Semicolon // ;
	// Colon represents the method-call / type-annotation colon token.
	Colon // :
	// DoubleColon represents the label delimiter token (lua52 dialect).
	DoubleColon // ::
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the field access token.
	Dot // .
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]

	// PlusAssign represents the '+=' compound assignment token (luau dialect).
	PlusAssign // +=
	// MinusAssign represents the '-=' compound assignment token (luau dialect).
	MinusAssign // -=
	// StarAssign represents the '*=' compound assignment token (luau dialect).
	StarAssign // *=
	// SlashAssign represents the '/=' compound assignment token (luau dialect).
	SlashAssign // /=
	// PercentAssign represents the '%=' compound assignment token (luau dialect).
	PercentAssign // %=
	// CaretAssign represents the '^=' compound assignment token (luau dialect).
	CaretAssign // ^=
	// ConcatAssign represents the '..=' compound assignment token (luau dialect).
	ConcatAssign // ..=
	// Arrow represents the '->' return-type token (luau dialect).
	Arrow // ->
)

var kindNames = map[Kind]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwAnd:         "and",
	KwBreak:       "break",
	KwDo:          "do",
	KwElse:        "else",
	KwElseif:      "elseif",
	KwEnd:         "end",
	KwFalse:       "false",
	KwFor:         "for",
	KwFunction:    "function",
	KwGoto:        "goto",
	KwIf:          "if",
	KwIn:          "in",
	KwLocal:       "local",
	KwNil:         "nil",
	KwNot:         "not",
	KwOr:          "or",
	KwRepeat:      "repeat",
	KwReturn:      "return",
	KwThen:        "then",
	KwTrue:        "true",
	KwUntil:       "until",
	KwWhile:       "while",
	NumberLit:     "NumberLit",
	StringLit:     "StringLit",
	LongStringLit: "LongStringLit",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Caret:         "^",
	Hash:          "#",
	Assign:        "=",
	EqEq:          "==",
	TildeEq:       "~=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Concat:        "..",
	Ellipsis:      "...",
	Semicolon:     ";",
	Colon:         ":",
	DoubleColon:   "::",
	Comma:         ",",
	Dot:           ".",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	CaretAssign:   "^=",
	ConcatAssign:  "..=",
	Arrow:         "->",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}
