package diag

import "luafmt/internal/source"

// Code identifies a diagnostic class.
type Code string

const (
	// CodeLexUnterminatedString reports a string literal without a closing quote.
	CodeLexUnterminatedString Code = "LEX0001"
	// CodeLexUnterminatedComment reports a long comment without a closing bracket.
	CodeLexUnterminatedComment Code = "LEX0002"
	// CodeLexUnexpectedChar reports a byte no token can start with.
	CodeLexUnexpectedChar Code = "LEX0003"
	// CodeLexMalformedNumber reports an invalid numeric literal.
	CodeLexMalformedNumber Code = "LEX0004"
	// CodeParseUnexpectedToken reports a token the grammar cannot accept.
	CodeParseUnexpectedToken Code = "PAR0001"
	// CodeParseExpectedToken reports a missing required token.
	CodeParseExpectedToken Code = "PAR0002"
	// CodeParseExpectedExpr reports a missing expression.
	CodeParseExpectedExpr Code = "PAR0003"
)

func (c Code) String() string { return string(c) }

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	// SevError is for error diagnostics.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Diagnostic is a single reported problem anchored to a source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
}
