package lexer

import "luafmt/internal/token"

func (lx *Lexer) scanNumber(start Mark) token.Token {
	// Hex: 0x / 0X with hex digits, optional fraction and p-exponent.
	if lx.cursor.Peek() == '0' {
		next := lx.cursor.PeekAt(1)
		if next == 'x' || next == 'X' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isHexDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
				lx.cursor.Bump()
			}
			lx.scanExponent('p', 'P')
			return lx.make(token.NumberLit, start)
		}
	}

	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' {
		lx.cursor.Bump()
		for isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	lx.scanExponent('e', 'E')
	return lx.make(token.NumberLit, start)
}

func (lx *Lexer) scanExponent(lower, upper byte) {
	b := lx.cursor.Peek()
	if b != lower && b != upper {
		return
	}
	next := lx.cursor.PeekAt(1)
	if isDigit(next) {
		lx.cursor.Bump()
	} else if (next == '+' || next == '-') && isDigit(lx.cursor.PeekAt(2)) {
		lx.cursor.Bump()
		lx.cursor.Bump()
	} else {
		return
	}
	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
