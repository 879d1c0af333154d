package lexer

import (
	"luafmt/internal/diag"
	"luafmt/internal/token"
)

func (lx *Lexer) scanQuotedString(start Mark) token.Token {
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			return lx.make(token.StringLit, start)
		}
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump() // escaped byte, may be the quote or a newline
			continue
		}
		if b == '\n' {
			break
		}
	}
	tok := lx.make(token.StringLit, start)
	lx.report(diag.CodeLexUnterminatedString, "unterminated string literal", tok.Span)
	return tok
}

// peekLongBracketLevel checks for "[" "="* "[" at the cursor and returns the
// level (number of '='). The cursor does not move.
func (lx *Lexer) peekLongBracketLevel() (int, bool) {
	if lx.cursor.Peek() != '[' {
		return 0, false
	}
	level := 0
	for lx.cursor.PeekAt(uint32(level+1)) == '=' {
		level++
	}
	if lx.cursor.PeekAt(uint32(level+1)) != '[' {
		return 0, false
	}
	return level, true
}

// consumeLongBracket eats "[" "="* "[" and everything up to the matching
// closing bracket of the same level.
func (lx *Lexer) consumeLongBracket(level int, start Mark, isComment bool) {
	for range level + 2 {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != ']' {
			continue
		}
		matched := true
		for i := range level {
			if lx.cursor.PeekAt(uint32(i)) != '=' {
				matched = false
				break
			}
		}
		if matched && lx.cursor.PeekAt(uint32(level)) == ']' {
			for range level + 1 {
				lx.cursor.Bump()
			}
			return
		}
	}
	code := diag.CodeLexUnterminatedString
	msg := "unterminated long string"
	if isComment {
		code = diag.CodeLexUnterminatedComment
		msg = "unterminated long comment"
	}
	lx.report(code, msg, lx.cursor.SpanFrom(start))
}

func (lx *Lexer) scanLongString(start Mark) (token.Token, bool) {
	level, ok := lx.peekLongBracketLevel()
	if !ok {
		return token.Token{}, false
	}
	lx.consumeLongBracket(level, start, false)
	return lx.make(token.LongStringLit, start), true
}
