package ast

import (
	"strings"

	"luafmt/internal/token"
)

// Print serializes the chunk back to source text. The output is exactly the
// concatenation of every token's leading trivia, text, and trailing trivia,
// so an unmodified tree prints byte-for-byte what was parsed.
func Print(chunk *Chunk) string {
	var sb strings.Builder
	VisitTokens(chunk, func(tok *token.Token) {
		tok.Render(&sb)
	})
	return sb.String()
}

// Comments returns every comment of the node in source order, verbatim.
func Comments(node any) []token.Trivia {
	var out []token.Trivia
	VisitTokens(node, func(tok *token.Token) {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				out = append(out, tr)
			}
		}
		for _, tr := range tok.Trailing {
			if tr.IsComment() {
				out = append(out, tr)
			}
		}
	})
	return out
}

// ContainsComments reports whether any token of the node carries a comment.
func ContainsComments(node any) bool {
	found := false
	VisitTokens(node, func(tok *token.Token) {
		if tok.HasComments() {
			found = true
		}
	})
	return found
}
