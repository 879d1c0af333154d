package lexer

import (
	"luafmt/internal/diag"
	"luafmt/internal/source"
	"luafmt/internal/token"
)

// Options configures a Lexer.
type Options struct {
	// Bag receives lexing diagnostics. May be nil.
	Bag *diag.Bag
}

// Lexer produces trivia-carrying tokens from a Lua source file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	bag    *diag.Bag
	hold   []token.Trivia // trivia collected but not yet attached
}

// New creates a lexer for the given file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		bag:    opts.Bag,
	}
}

// Tokens scans the whole file and returns its tokens with leading and
// trailing trivia attached. The final token is always EOF; any trivia after
// the last semantic token becomes the EOF token's leading trivia.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		lx.collectLeadingTrivia()
		leading := lx.takeHold()

		if lx.cursor.EOF() {
			out = append(out, token.Token{
				Kind:    token.EOF,
				Span:    lx.cursor.SpanFrom(lx.cursor.Mark()),
				Leading: leading,
			})
			return out
		}

		tok := lx.scanToken()
		tok.Leading = leading
		lx.collectTrailingTrivia()
		tok.Trailing = lx.takeHold()
		out = append(out, tok)
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	run := make([]token.Trivia, len(lx.hold))
	copy(run, lx.hold)
	lx.hold = lx.hold[:0]
	return run
}

func (lx *Lexer) report(code diag.Code, msg string, span source.Span) {
	if lx.bag != nil {
		lx.bag.AddError(code, msg, span)
	}
}

func (lx *Lexer) scanToken() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	switch {
	case isIdentStart(b):
		return lx.scanIdentOrKeyword(start)
	case isDigit(b) || (b == '.' && isDigit(lx.cursor.PeekAt(1))):
		return lx.scanNumber(start)
	case b == '"' || b == '\'':
		return lx.scanQuotedString(start)
	case b == '[' && (lx.cursor.PeekAt(1) == '[' || lx.cursor.PeekAt(1) == '='):
		if tok, ok := lx.scanLongString(start); ok {
			return tok
		}
		// '[=' with no matching '[' is a plain bracket
		lx.cursor.Bump()
		return lx.make(token.LBracket, start)
	}

	return lx.scanOperator(start)
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	}
}

func (lx *Lexer) scanIdentOrKeyword(start Mark) token.Token {
	for isIdentPart(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	if kind, ok := token.LookupKeyword(text); ok {
		return lx.make(kind, start)
	}
	return lx.make(token.Ident, start)
}

func (lx *Lexer) scanOperator(start Mark) token.Token {
	b := lx.cursor.Bump()
	switch b {
	case '+':
		if lx.cursor.Eat('=') {
			return lx.make(token.PlusAssign, start)
		}
		return lx.make(token.Plus, start)
	case '-':
		if lx.cursor.Eat('=') {
			return lx.make(token.MinusAssign, start)
		}
		if lx.cursor.Eat('>') {
			return lx.make(token.Arrow, start)
		}
		return lx.make(token.Minus, start)
	case '*':
		if lx.cursor.Eat('=') {
			return lx.make(token.StarAssign, start)
		}
		return lx.make(token.Star, start)
	case '/':
		if lx.cursor.Eat('=') {
			return lx.make(token.SlashAssign, start)
		}
		return lx.make(token.Slash, start)
	case '%':
		if lx.cursor.Eat('=') {
			return lx.make(token.PercentAssign, start)
		}
		return lx.make(token.Percent, start)
	case '^':
		if lx.cursor.Eat('=') {
			return lx.make(token.CaretAssign, start)
		}
		return lx.make(token.Caret, start)
	case '#':
		return lx.make(token.Hash, start)
	case '=':
		if lx.cursor.Eat('=') {
			return lx.make(token.EqEq, start)
		}
		return lx.make(token.Assign, start)
	case '~':
		if lx.cursor.Eat('=') {
			return lx.make(token.TildeEq, start)
		}
	case '<':
		if lx.cursor.Eat('=') {
			return lx.make(token.LtEq, start)
		}
		return lx.make(token.Lt, start)
	case '>':
		if lx.cursor.Eat('=') {
			return lx.make(token.GtEq, start)
		}
		return lx.make(token.Gt, start)
	case '.':
		if lx.cursor.Eat('.') {
			if lx.cursor.Eat('.') {
				return lx.make(token.Ellipsis, start)
			}
			if lx.cursor.Eat('=') {
				return lx.make(token.ConcatAssign, start)
			}
			return lx.make(token.Concat, start)
		}
		return lx.make(token.Dot, start)
	case ';':
		return lx.make(token.Semicolon, start)
	case ':':
		if lx.cursor.Eat(':') {
			return lx.make(token.DoubleColon, start)
		}
		return lx.make(token.Colon, start)
	case ',':
		return lx.make(token.Comma, start)
	case '(':
		return lx.make(token.LParen, start)
	case ')':
		return lx.make(token.RParen, start)
	case '{':
		return lx.make(token.LBrace, start)
	case '}':
		return lx.make(token.RBrace, start)
	case '[':
		return lx.make(token.LBracket, start)
	case ']':
		return lx.make(token.RBracket, start)
	}

	tok := lx.make(token.Invalid, start)
	lx.report(diag.CodeLexUnexpectedChar, "unexpected character "+tok.Text, tok.Span)
	return tok
}
