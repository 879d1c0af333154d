package lexer

import "luafmt/internal/token"

// collectLeadingTrivia gathers every run of trivia before the next semantic
// token:
//   - spaces and tabs coalesce into one TriviaSpace
//   - consecutive newlines coalesce into one TriviaNewline (text keeps the
//     exact count, so blank lines survive)
//   - "--..." up to \n -> TriviaLineComment
//   - "--[[...]]" (any level of =) -> TriviaBlockComment
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		if lx.scanSpaceIntoHold() || lx.scanNewlinesIntoHold() || lx.scanCommentIntoHold() {
			continue
		}
		break
	}
}

// collectTrailingTrivia gathers trivia after a token up to and including the
// first newline. Comments on the same line trail the token; anything after
// the newline leads the next token.
func (lx *Lexer) collectTrailingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		if lx.scanSpaceIntoHold() {
			continue
		}
		if lx.cursor.Peek() == '\n' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: lx.cursor.TextFrom(start),
			})
			return
		}
		if lx.cursor.Peek() == '-' && lx.cursor.PeekAt(1) == '-' {
			lx.scanCommentIntoHold()
			continue
		}
		return
	}
}

func (lx *Lexer) scanSpaceIntoHold() bool {
	b := lx.cursor.Peek()
	if b != ' ' && b != '\t' {
		return false
	}
	start := lx.cursor.Mark()
	for {
		b = lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaSpace,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	})
	return true
}

func (lx *Lexer) scanNewlinesIntoHold() bool {
	if lx.cursor.Peek() != '\n' {
		return false
	}
	start := lx.cursor.Mark()
	for lx.cursor.Peek() == '\n' {
		lx.cursor.Bump()
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaNewline,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	})
	return true
}

func (lx *Lexer) scanCommentIntoHold() bool {
	if lx.cursor.Peek() != '-' || lx.cursor.PeekAt(1) != '-' {
		return false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()

	// Long-bracket comment: --[[ ... ]] with any level of '='.
	if lx.cursor.Peek() == '[' {
		if level, ok := lx.peekLongBracketLevel(); ok {
			lx.consumeLongBracket(level, start, true)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaBlockComment,
				Span: lx.cursor.SpanFrom(start),
				Text: lx.cursor.TextFrom(start),
			})
			return true
		}
	}

	// Line comment: everything up to the newline.
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaLineComment,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	})
	return true
}
