package token

import "luafmt/internal/source"

// TriviaKind classifies a run of non-semantic source text.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces and tabs.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a run of one or more line breaks.
	TriviaNewline
	// TriviaLineComment is a "--..." comment up to the end of the line.
	TriviaLineComment
	// TriviaBlockComment is a "--[[...]]" long-bracket comment.
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	}
	return "Unknown"
}

// Trivia is one piece of whitespace or comment text attached to a token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is a line or block comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}

// IsWhitespace reports whether the trivia is spaces or newlines.
func (t Trivia) IsWhitespace() bool {
	return t.Kind == TriviaSpace || t.Kind == TriviaNewline
}

// Spaces builds synthetic space trivia of the given count.
func Spaces(n int) Trivia {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return Trivia{Kind: TriviaSpace, Text: string(b)}
}

// Tabs builds synthetic tab trivia of the given count.
func Tabs(n int) Trivia {
	b := make([]byte, n)
	for i := range b {
		b[i] = '\t'
	}
	return Trivia{Kind: TriviaSpace, Text: string(b)}
}

// Newline builds synthetic newline trivia with the given line ending.
func Newline(ending string) Trivia {
	return Trivia{Kind: TriviaNewline, Text: ending}
}

// LineComment builds synthetic line-comment trivia from its full spelling.
func LineComment(text string) Trivia {
	return Trivia{Kind: TriviaLineComment, Text: text}
}

// ContainsComment reports whether any trivia in the run is a comment.
func ContainsComment(run []Trivia) bool {
	for _, t := range run {
		if t.IsComment() {
			return true
		}
	}
	return false
}

// Comments returns only the comment trivia of the run, in order.
func Comments(run []Trivia) []Trivia {
	var out []Trivia
	for _, t := range run {
		if t.IsComment() {
			out = append(out, t)
		}
	}
	return out
}
