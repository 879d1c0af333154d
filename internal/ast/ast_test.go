package ast_test

import (
	"testing"

	"luafmt/internal/ast"
	"luafmt/internal/diag"
	"luafmt/internal/parser"
	"luafmt/internal/source"
	"luafmt/internal/token"
)

func parseChunk(t *testing.T, src string) *ast.Chunk {
	t.Helper()

	fs := source.NewFileSet()
	id := fs.AddVirtual("ast.lua", []byte(src))
	bag := diag.NewBag(64)
	chunk := parser.Parse(fs.Get(id), parser.Options{Bag: bag})
	if chunk == nil {
		t.Fatalf("parse failed for %q: %v", src, bag.Items())
	}
	return chunk
}

func firstValue(t *testing.T, chunk *ast.Chunk) ast.Expr {
	t.Helper()

	local, ok := chunk.Block.Stmts[0].Stmt.(*ast.LocalAssign)
	if !ok {
		t.Fatalf("expected a local assignment, got %T", chunk.Block.Stmts[0].Stmt)
	}
	return local.Values[0].Value
}

func TestVisitTokensOrder(t *testing.T) {
	chunk := parseChunk(t, "local a = f(1) + t.x\n")
	var texts []string
	ast.VisitTokens(chunk, func(tok *token.Token) {
		texts = append(texts, tok.Text)
	})
	want := []string{"local", "a", "=", "f", "(", "1", ")", "+", "t", ".", "x", ""}
	if len(texts) != len(want) {
		t.Fatalf("token count: want %d, got %d (%v)", len(want), len(texts), texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("token %d: want %q, got %q", i, want[i], texts[i])
		}
	}
}

func TestFirstAndLastTokenOf(t *testing.T) {
	chunk := parseChunk(t, "local a = x + f(y)\n")
	value := firstValue(t, chunk)
	if first := ast.FirstTokenOf(value); first == nil || first.Text != "x" {
		t.Fatalf("first token: want x, got %v", first)
	}
	if last := ast.LastTokenOf(value); last == nil || last.Text != ")" {
		t.Fatalf("last token: want ), got %v", last)
	}
}

func TestCloneExprIndependence(t *testing.T) {
	chunk := parseChunk(t, "local a = f(x) + { y }\n")
	orig := firstValue(t, chunk)
	clone := ast.CloneExpr(orig)

	tok := ast.FirstTokenOf(clone)
	*tok = tok.WithLeading([]token.Trivia{token.Spaces(4)})
	tok.Text = "mutated"

	if got := ast.FirstTokenOf(orig); got.Text == "mutated" || len(got.Leading) != 0 {
		t.Fatalf("mutating the clone reached the original: %v", got)
	}
}

func TestCloneStmtIndependence(t *testing.T) {
	chunk := parseChunk(t, "if x then f() end\n")
	orig := chunk.Block.Stmts[0].Stmt
	clone := ast.CloneStmt(orig)

	tok := ast.LastTokenOf(clone)
	*tok = tok.AppendTrailing(token.Spaces(2))

	if got := ast.LastTokenOf(orig); len(got.Trailing) != 1 {
		t.Fatalf("mutating the clone changed the original trailing run: %v", got.Trailing)
	}
}

func TestUpdateLeadingAndTrailing(t *testing.T) {
	chunk := parseChunk(t, "local a = x\n")
	value := firstValue(t, chunk)

	replaced := ast.UpdateLeading(value, ast.TriviaReplace, []token.Trivia{token.Spaces(2)})
	if got := ast.FirstTokenOf(replaced).Leading; len(got) != 1 || got[0].Text != "  " {
		t.Fatalf("replace leading: got %v", got)
	}

	appended := ast.UpdateTrailing(value, ast.TriviaAppend, []token.Trivia{token.Spaces(1)})
	trail := ast.LastTokenOf(appended).Trailing
	if len(trail) == 0 || trail[len(trail)-1].Text != " " {
		t.Fatalf("append trailing: got %v", trail)
	}

	// The source expression is untouched either way.
	if got := ast.FirstTokenOf(value).Leading; len(got) != 0 {
		t.Fatalf("update mutated its input: %v", got)
	}
}

func TestContainsComments(t *testing.T) {
	with := parseChunk(t, "local a = x --[[c]] + y\n")
	if !ast.ContainsComments(firstValue(t, with)) {
		t.Fatalf("comment inside the expression was not seen")
	}
	without := parseChunk(t, "local a = x + y\n")
	if ast.ContainsComments(firstValue(t, without)) {
		t.Fatalf("comment reported where there is none")
	}
}

func TestCommentsInSourceOrder(t *testing.T) {
	chunk := parseChunk(t, "-- one\nlocal a = 1 -- two\n--[[ three ]]\n")
	comments := ast.Comments(chunk)
	want := []string{"-- one", "-- two", "--[[ three ]]"}
	if len(comments) != len(want) {
		t.Fatalf("comment count: want %d, got %d", len(want), len(comments))
	}
	for i := range want {
		if comments[i].Text != want[i] {
			t.Fatalf("comment %d: want %q, got %q", i, want[i], comments[i].Text)
		}
	}
}

func TestWithSeparator(t *testing.T) {
	chunk := parseChunk(t, "local t = { a = 1 }\n")
	table := firstValue(t, chunk).(*ast.TableExpr)
	field := table.Fields[0]
	if field.Separator() != nil {
		t.Fatalf("single field must have no separator")
	}
	sep := token.Symbol(token.Comma)
	updated := ast.WithSeparator(field, &sep)
	if got := updated.Separator(); got == nil || got.Text != "," {
		t.Fatalf("separator not attached: %v", got)
	}
	if field.Separator() != nil {
		t.Fatalf("WithSeparator mutated its input")
	}
}

func TestPrefixExprIsCall(t *testing.T) {
	call := parseChunk(t, "f(x)\n").Block.Stmts[0].Stmt.(*ast.CallStmt)
	if !call.Call.IsCall() {
		t.Fatalf("call statement prefix must report IsCall")
	}

	chunk := parseChunk(t, "local a = t.x\n")
	index, ok := firstValue(t, chunk).(*ast.PrefixExpr)
	if !ok {
		t.Fatalf("expected a prefix expression")
	}
	if index.IsCall() {
		t.Fatalf("plain index chain must not report IsCall")
	}
}

func TestSpanCoversNode(t *testing.T) {
	src := "local a = 1\nf(a)\n"
	chunk := parseChunk(t, src)
	second := chunk.Block.Stmts[1].Stmt
	sp := second.Span()
	if got := src[sp.Start:sp.End]; got != "f(a)" {
		t.Fatalf("span text: want %q, got %q", "f(a)", got)
	}
}
