package format

import (
	"github.com/mattn/go-runewidth"

	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// Shape is the immutable line-width budget threaded through every recursive
// formatting call. It tracks the block indentation level, any additional
// hanging indentation, and the width already used on the current line.
// Shapes are never mutated; every operation derives a new value, so sibling
// subtrees can be formatted independently.
type Shape struct {
	columnWidth      int
	indentWidth      int
	indentLevel      int
	additionalIndent int
	offset           int
}

// NewShape creates the root shape for a formatting run.
func NewShape(cfg Config) Shape {
	return Shape{
		columnWidth: cfg.ColumnWidth,
		indentWidth: cfg.IndentWidth,
	}
}

// Reset clears the used width for a fresh line, keeping indentation context.
func (s Shape) Reset() Shape {
	s.offset = 0
	return s
}

// IncrementBlockIndent derives the shape for a nested block body. Entering a
// block discards any hanging indent; the block starts its own lines.
func (s Shape) IncrementBlockIndent() Shape {
	s.indentLevel++
	s.additionalIndent = 0
	return s
}

// IncrementAdditionalIndent derives the shape for a hung continuation line.
func (s Shape) IncrementAdditionalIndent() Shape {
	s.additionalIndent++
	return s
}

// Add derives a shape with n more width cells used on the current line.
func (s Shape) Add(n int) Shape {
	s.offset += n
	return s
}

// AddWidthOf derives a shape accounting for the node's rendered width.
func (s Shape) AddWidthOf(node any) Shape {
	return s.Add(Width(node))
}

// IndentLevel returns the total indentation depth, block plus hanging.
func (s Shape) IndentLevel() int {
	return s.indentLevel + s.additionalIndent
}

// UsedWidth returns the width consumed on the current line, including
// indentation. With tab indentation the configured indent width serves as
// the heuristic cell count per level.
func (s Shape) UsedWidth() int {
	return s.IndentLevel()*s.indentWidth + s.offset
}

// OverBudget reports whether the current line exceeds the column width.
// This is the single source of truth for every line-wrap decision.
func (s Shape) OverBudget() bool {
	return s.UsedWidth() > s.columnWidth
}

// Width measures the display width of a node's rendering, counting token
// text and whitespace trivia but excluding comments and newlines. Wide runes
// count per their terminal cell width.
func Width(node any) int {
	total := 0
	ast.VisitTokens(node, func(tok *token.Token) {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaSpace {
				total += runewidth.StringWidth(tr.Text)
			}
		}
		total += runewidth.StringWidth(tok.Text)
		for _, tr := range tok.Trailing {
			if tr.Kind == token.TriviaSpace {
				total += runewidth.StringWidth(tr.Text)
			}
		}
	})
	return total
}
