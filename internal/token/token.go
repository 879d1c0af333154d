package token

import (
	"strings"

	"luafmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// New builds a synthetic token with the given kind and exact spelling.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// Symbol builds a synthetic token whose spelling is the kind's canonical one.
func Symbol(kind Kind) Token {
	return Token{Kind: kind, Text: kind.String()}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwAnd, KwBreak, KwDo, KwElse, KwElseif, KwEnd, KwFalse, KwFor,
		KwFunction, KwGoto, KwIf, KwIn, KwLocal, KwNil, KwNot, KwOr,
		KwRepeat, KwReturn, KwThen, KwTrue, KwUntil, KwWhile:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, LongStringLit, KwNil, KwTrue, KwFalse, Ellipsis:
		return true
	default:
		return false
	}
}

// HasLeadingComments reports whether any leading trivia is a comment.
func (t Token) HasLeadingComments() bool {
	return ContainsComment(t.Leading)
}

// HasTrailingComments reports whether any trailing trivia is a comment.
func (t Token) HasTrailingComments() bool {
	return ContainsComment(t.Trailing)
}

// HasComments reports whether any trivia on either side is a comment.
func (t Token) HasComments() bool {
	return t.HasLeadingComments() || t.HasTrailingComments()
}

// WithLeading returns a copy of the token with leading trivia replaced.
func (t Token) WithLeading(run []Trivia) Token {
	t.Leading = cloneTrivia(run)
	return t
}

// WithTrailing returns a copy of the token with trailing trivia replaced.
func (t Token) WithTrailing(run []Trivia) Token {
	t.Trailing = cloneTrivia(run)
	return t
}

// AppendLeading returns a copy of the token with extra leading trivia
// appended after the existing run.
func (t Token) AppendLeading(extra ...Trivia) Token {
	run := make([]Trivia, 0, len(t.Leading)+len(extra))
	run = append(run, t.Leading...)
	run = append(run, extra...)
	t.Leading = run
	return t
}

// PrependLeading returns a copy of the token with extra leading trivia
// placed before the existing run.
func (t Token) PrependLeading(extra ...Trivia) Token {
	run := make([]Trivia, 0, len(t.Leading)+len(extra))
	run = append(run, extra...)
	run = append(run, t.Leading...)
	t.Leading = run
	return t
}

// AppendTrailing returns a copy of the token with extra trailing trivia
// appended after the existing run.
func (t Token) AppendTrailing(extra ...Trivia) Token {
	run := make([]Trivia, 0, len(t.Trailing)+len(extra))
	run = append(run, t.Trailing...)
	run = append(run, extra...)
	t.Trailing = run
	return t
}

// StripTrivia returns a copy of the token with all trivia removed. Used when
// measuring the rendered width of a token without its comments.
func (t Token) StripTrivia() Token {
	t.Leading = nil
	t.Trailing = nil
	return t
}

// Render writes the token with its trivia exactly as it would appear in
// serialized output.
func (t Token) Render(sb *strings.Builder) {
	for _, tr := range t.Leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(t.Text)
	for _, tr := range t.Trailing {
		sb.WriteString(tr.Text)
	}
}

// String renders the token including trivia.
func (t Token) String() string {
	var sb strings.Builder
	t.Render(&sb)
	return sb.String()
}

func cloneTrivia(run []Trivia) []Trivia {
	if len(run) == 0 {
		return nil
	}
	out := make([]Trivia, len(run))
	copy(out, run)
	return out
}
