package format

import (
	"luafmt/internal/token"
)

// newlineTrivia returns a single configured line ending.
func (ctx Context) newlineTrivia() token.Trivia {
	return token.Newline(ctx.Config.LineEnding())
}

// indentTrivia returns whitespace for the shape's indent level.
func (ctx Context) indentTrivia(shape Shape) token.Trivia {
	return ctx.indentTriviaLevel(shape.IndentLevel())
}

func (ctx Context) indentTriviaLevel(level int) token.Trivia {
	if level <= 0 {
		return token.Spaces(0)
	}
	if ctx.Config.IndentKind == IndentTabs {
		return token.Tabs(level)
	}
	return token.Spaces(level * ctx.Config.IndentWidth)
}

// breakTrivia returns a newline followed by indentation, the standard
// sequence used when a construct is hung over multiple lines.
func (ctx Context) breakTrivia(shape Shape) []token.Trivia {
	ind := ctx.indentTrivia(shape)
	if ind.Text == "" {
		return []token.Trivia{ctx.newlineTrivia()}
	}
	return []token.Trivia{ctx.newlineTrivia(), ind}
}

// commentsOnly filters a trivia list down to its comments.
func commentsOnly(trivia []token.Trivia) []token.Trivia {
	var out []token.Trivia
	for _, tr := range trivia {
		if tr.IsComment() {
			out = append(out, tr)
		}
	}
	return out
}

// trailingCommentLine formats relocated comments so they trail a token on
// the same line, separated by single spaces.
func trailingCommentLine(comments []token.Trivia) []token.Trivia {
	var out []token.Trivia
	for _, c := range comments {
		out = append(out, token.Spaces(1), c)
	}
	return out
}

