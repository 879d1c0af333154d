package format

import (
	"strings"

	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// formatTokenReference normalizes one token: string literals are requoted
// per the configured quote style, and surrounding trivia is reduced to its
// comments. Line comments in the leading run get a break after them so the
// token still starts a fresh line.
func (ctx Context) formatTokenReference(tok token.Token, shape Shape) token.Token {
	out := tok
	if tok.Kind == token.StringLit {
		out.Text = requoteString(tok.Text, ctx.Config.QuoteStyle)
	}

	var leading []token.Trivia
	for _, tr := range tok.Leading {
		if !tr.IsComment() {
			continue
		}
		leading = append(leading, tr)
		if tr.Kind == token.TriviaLineComment {
			leading = append(leading, ctx.breakTrivia(shape)...)
		} else {
			leading = append(leading, token.Spaces(1))
		}
	}
	var trailing []token.Trivia
	for _, tr := range tok.Trailing {
		if tr.IsComment() {
			trailing = append(trailing, token.Spaces(1), tr)
		}
	}
	out.Leading = leading
	out.Trailing = trailing
	return out
}

// formatSymbol formats a punctuation or keyword token, preserving its
// comments and wrapping it in the given whitespace runs.
func (ctx Context) formatSymbol(tok token.Token, shape Shape, leading, trailing []token.Trivia) token.Token {
	out := ctx.formatTokenReference(tok, shape)
	out.Leading = append(append([]token.Trivia(nil), leading...), out.Leading...)
	out.Trailing = append(out.Trailing, trailing...)
	return out
}

// symbol formats a token with no surrounding whitespace.
func (ctx Context) symbol(tok token.Token, shape Shape) token.Token {
	return ctx.formatSymbol(tok, shape, nil, nil)
}

// spacedSymbol formats a token with a single space on each side, the shape
// of binary operators and assignment signs.
func (ctx Context) spacedSymbol(tok token.Token, shape Shape) token.Token {
	one := []token.Trivia{token.Spaces(1)}
	return ctx.formatSymbol(tok, shape, one, one)
}

// trailingSpaceSymbol formats a token followed by a single space, the shape
// of leading keywords and list separators.
func (ctx Context) trailingSpaceSymbol(tok token.Token, shape Shape) token.Token {
	return ctx.formatSymbol(tok, shape, nil, []token.Trivia{token.Spaces(1)})
}

// indentedSymbol formats a token that starts a fresh line at the shape's
// indent level, the shape of block-closing keywords.
func (ctx Context) indentedSymbol(tok token.Token, shape Shape) token.Token {
	ind := ctx.indentTrivia(shape)
	var leading []token.Trivia
	if ind.Text != "" {
		leading = append(leading, ind)
	}
	return ctx.formatSymbol(tok, shape, leading, nil)
}

// formatPunctuated formats a separated list on one line: each separator is
// normalized to "sep " and each value is formatted by the callback with the
// shape advanced past the preceding items. A line comment riding a value or
// a separator would swallow the rest of the line, so it is relocated past
// the separator and the list continues on a hung line.
func formatPunctuated[T any](
	ctx Context,
	list ast.Punctuated[T],
	shape Shape,
	format func(Context, T, Shape) T,
) ast.Punctuated[T] {
	out := make(ast.Punctuated[T], 0, len(list))
	cur := shape
	for _, pair := range list {
		value := format(ctx, pair.Value, cur)
		var moved []token.Trivia
		if pair.Sep != nil {
			value, moved = detachTrailingComments(value)
		}
		cur = cur.AddWidthOf(value)
		var sep *token.Token
		if pair.Sep != nil {
			s := ctx.trailingSpaceSymbol(*pair.Sep, cur)
			if len(moved) > 0 || hasLineComment(s.Trailing) {
				comments := append(moved, commentsOnly(s.Trailing)...)
				hang := shape.IncrementAdditionalIndent()
				s = s.WithTrailing(append(trailingCommentLine(comments), ctx.breakTrivia(hang)...))
				cur = hang.Reset()
			} else {
				cur = cur.Add(Width(&s))
			}
			sep = &s
		}
		out = append(out, ast.Pair[T]{Value: value, Sep: sep})
	}
	return out
}

// detachTrailingComments strips the comments trailing a formatted value when
// the run holds a line comment, returning the stripped value and the
// comments so the caller can print them after the separator. Runs holding
// only block comments stay put; they cannot swallow what follows.
func detachTrailingComments[T any](value T) (T, []token.Trivia) {
	switch v := any(value).(type) {
	case ast.Expr:
		last := ast.LastTokenOf(v)
		if last == nil || !hasLineComment(last.Trailing) {
			return value, nil
		}
		moved := commentsOnly(last.Trailing)
		return any(ast.UpdateTrailing(v, ast.TriviaReplace, nil)).(T), moved
	case token.Token:
		if !hasLineComment(v.Trailing) {
			return value, nil
		}
		moved := commentsOnly(v.Trailing)
		return any(v.WithTrailing(nil)).(T), moved
	default:
		return value, nil
	}
}

func hasLineComment(trivia []token.Trivia) bool {
	for _, tr := range trivia {
		if tr.Kind == token.TriviaLineComment {
			return true
		}
	}
	return false
}

// formatPunctuatedMultiline formats a separated list with each value on its
// own line at the shape's indent level. Separators keep no trailing space;
// the line break follows them instead.
func formatPunctuatedMultiline[T any](
	ctx Context,
	list ast.Punctuated[T],
	shape Shape,
	format func(Context, T, Shape) T,
) ast.Punctuated[T] {
	out := make(ast.Punctuated[T], 0, len(list))
	for _, pair := range list {
		item := shape.Reset()
		value := format(ctx, pair.Value, item)
		var sep *token.Token
		if pair.Sep != nil {
			s := ctx.symbol(*pair.Sep, item)
			sep = &s
		}
		out = append(out, ast.Pair[T]{Value: value, Sep: sep})
	}
	return out
}

// requoteString rewrites a short string literal to the configured quote
// style, adjusting escapes as needed. Long-bracket strings pass through.
func requoteString(text string, style QuoteStyle) string {
	if len(text) < 2 {
		return text
	}
	cur := text[0]
	if cur != '"' && cur != '\'' {
		return text
	}
	body := text[1 : len(text)-1]

	// Split into units so escape sequences survive the rewrite intact.
	var units []string
	for i := 0; i < len(body); {
		if body[i] == '\\' && i+1 < len(body) {
			units = append(units, body[i:i+2])
			i += 2
		} else {
			units = append(units, string(body[i]))
			i++
		}
	}
	hasDouble, hasSingle := false, false
	for _, u := range units {
		switch u {
		case `"`, `\"`:
			hasDouble = true
		case `'`, `\'`:
			hasSingle = true
		}
	}

	var target byte
	switch style {
	case QuoteForceDouble:
		target = '"'
	case QuoteForceSingle:
		target = '\''
	case QuotePreferSingle:
		target = '\''
		if hasSingle && !hasDouble {
			target = '"'
		}
	default:
		target = '"'
		if hasDouble && !hasSingle {
			target = '\''
		}
	}

	var b strings.Builder
	b.Grow(len(text))
	b.WriteByte(target)
	for _, u := range units {
		switch {
		case u == string(target) || u == `\`+string(target):
			b.WriteByte('\\')
			b.WriteByte(target)
		case len(u) == 2 && (u[1] == '"' || u[1] == '\''):
			// The other quote no longer needs escaping.
			b.WriteByte(u[1])
		default:
			b.WriteString(u)
		}
	}
	b.WriteByte(target)
	return b.String()
}
