package parser

import (
	"testing"

	"luafmt/internal/ast"
	"luafmt/internal/diag"
	"luafmt/internal/source"
)

func parseChunk(t *testing.T, src string) *ast.Chunk {
	t.Helper()

	fs := source.NewFileSet()
	id := fs.AddVirtual("parse.lua", []byte(src))
	bag := diag.NewBag(64)
	chunk := Parse(fs.Get(id), Options{Bag: bag})
	if chunk == nil {
		t.Fatalf("parse failed for %q: %v", src, bag.Items())
	}
	return chunk
}

func parseFails(t *testing.T, src string) *diag.Bag {
	t.Helper()

	fs := source.NewFileSet()
	id := fs.AddVirtual("parse.lua", []byte(src))
	bag := diag.NewBag(64)
	if chunk := Parse(fs.Get(id), Options{Bag: bag}); chunk != nil {
		t.Fatalf("expected parse of %q to fail", src)
	}
	if !bag.HasErrors() {
		t.Fatalf("failed parse of %q reported no diagnostics", src)
	}
	return bag
}

func TestParsePrintRoundTrip(t *testing.T) {
	sources := []string{
		"local a = 1\n",
		"  local   a\t=1  -- mess\n\n\nreturn a\n",
		"if (x) then y() elseif z then w() else v() end\n",
		"for i = 1, 10 do break end\n",
		"for k, v in pairs(t) do print(k, v) end\n",
		"while true do repeat x() until done end\n",
		"local function f(a, b, ...) return a + b end\n",
		"function obj.sub:method() return self end\n",
		"local t = { a = 1, [k] = 2, 3; 4 }\n",
		"x, y = y, x;\n::again:: goto again\n",
		"f 'str'\ng {tbl = true}\nh(--[[inline]] 1)\n",
		"local s = [[long\nstring]] .. \"short\"\n",
		"a.b.c[d](e):m(f)\n",
		"x += 1\ny ..= 'tail'\n",
		"-- only a comment\n",
		"",
	}
	for _, src := range sources {
		chunk := parseChunk(t, src)
		if got := ast.Print(chunk); got != src {
			t.Fatalf("print round trip mismatch:\nwant %q\ngot  %q", src, got)
		}
	}
}

func TestParseStatementKinds(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"do end", "*ast.Do"},
		{"while x do end", "*ast.While"},
		{"repeat until x", "*ast.Repeat"},
		{"if x then end", "*ast.If"},
		{"for i = 1, 2 do end", "*ast.NumericFor"},
		{"for k in f do end", "*ast.GenericFor"},
		{"function f() end", "*ast.FunctionDecl"},
		{"local function f() end", "*ast.LocalFunction"},
		{"local x = 1", "*ast.LocalAssign"},
		{"x = 1", "*ast.Assign"},
		{"x += 1", "*ast.CompoundAssign"},
		{"f()", "*ast.CallStmt"},
		{"return 1", "*ast.Return"},
		{"goto top", "*ast.Goto"},
		{"::top::", "*ast.Label"},
		{"type Pair = { a: number }", "*ast.TypeDecl"},
		{"export type Id = number\n", "*ast.TypeDecl"},
	}
	for _, tc := range cases {
		chunk := parseChunk(t, tc.src)
		if len(chunk.Block.Stmts) == 0 {
			t.Fatalf("%q: no statements parsed", tc.src)
		}
		stmt := chunk.Block.Stmts[0].Stmt
		if got := typeName(stmt); got != tc.want {
			t.Fatalf("%q: want %s, got %s", tc.src, tc.want, got)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *ast.Do:
		return "*ast.Do"
	case *ast.While:
		return "*ast.While"
	case *ast.Repeat:
		return "*ast.Repeat"
	case *ast.If:
		return "*ast.If"
	case *ast.NumericFor:
		return "*ast.NumericFor"
	case *ast.GenericFor:
		return "*ast.GenericFor"
	case *ast.FunctionDecl:
		return "*ast.FunctionDecl"
	case *ast.LocalFunction:
		return "*ast.LocalFunction"
	case *ast.LocalAssign:
		return "*ast.LocalAssign"
	case *ast.Assign:
		return "*ast.Assign"
	case *ast.CompoundAssign:
		return "*ast.CompoundAssign"
	case *ast.CallStmt:
		return "*ast.CallStmt"
	case *ast.Return:
		return "*ast.Return"
	case *ast.Break:
		return "*ast.Break"
	case *ast.Goto:
		return "*ast.Goto"
	case *ast.Label:
		return "*ast.Label"
	case *ast.TypeDecl:
		return "*ast.TypeDecl"
	default:
		return "unknown"
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	// a + b * c parses as a + (b * c).
	chunk := parseChunk(t, "x = a + b * c")
	assign := chunk.Block.Stmts[0].Stmt.(*ast.Assign)
	bin := assign.Values[0].Value.(*ast.BinExpr)
	if bin.Op.Text != "+" {
		t.Fatalf("top operator: want +, got %q", bin.Op.Text)
	}
	rhs, ok := bin.RHS.(*ast.BinExpr)
	if !ok || rhs.Op.Text != "*" {
		t.Fatalf("multiplication must bind tighter than addition")
	}

	// a .. b .. c parses right-associative as a .. (b .. c).
	chunk = parseChunk(t, "x = a .. b .. c")
	assign = chunk.Block.Stmts[0].Stmt.(*ast.Assign)
	bin = assign.Values[0].Value.(*ast.BinExpr)
	if _, ok := bin.RHS.(*ast.BinExpr); !ok {
		t.Fatalf("concat must be right-associative")
	}

	// a ^ b ^ c parses right-associative.
	chunk = parseChunk(t, "x = a ^ b ^ c")
	assign = chunk.Block.Stmts[0].Stmt.(*ast.Assign)
	bin = assign.Values[0].Value.(*ast.BinExpr)
	if _, ok := bin.RHS.(*ast.BinExpr); !ok {
		t.Fatalf("power must be right-associative")
	}
}

func TestParseAdjacentPrecedenceTiers(t *testing.T) {
	topOp := func(t *testing.T, src string) *ast.BinExpr {
		t.Helper()
		chunk := parseChunk(t, src)
		assign := chunk.Block.Stmts[0].Stmt.(*ast.Assign)
		return assign.Values[0].Value.(*ast.BinExpr)
	}

	bin := topOp(t, "x = a or b and c")
	if bin.Op.Text != "or" {
		t.Fatalf("top operator: want or, got %q", bin.Op.Text)
	}
	if rhs, ok := bin.RHS.(*ast.BinExpr); !ok || rhs.Op.Text != "and" {
		t.Fatalf("and must bind tighter than or")
	}

	bin = topOp(t, "x = a and b < c")
	if bin.Op.Text != "and" {
		t.Fatalf("top operator: want and, got %q", bin.Op.Text)
	}
	if rhs, ok := bin.RHS.(*ast.BinExpr); !ok || rhs.Op.Text != "<" {
		t.Fatalf("comparison must bind tighter than and")
	}

	bin = topOp(t, "x = a * b + c")
	if bin.Op.Text != "+" {
		t.Fatalf("top operator: want +, got %q", bin.Op.Text)
	}
	if lhs, ok := bin.LHS.(*ast.BinExpr); !ok || lhs.Op.Text != "*" {
		t.Fatalf("multiplication must group on the left of addition")
	}

	bin = topOp(t, "x = a - b - c")
	if _, ok := bin.LHS.(*ast.BinExpr); !ok {
		t.Fatalf("subtraction must be left-associative")
	}
}

func TestParseCallChain(t *testing.T) {
	chunk := parseChunk(t, "a.b[c](d):m(e)\n")
	call := chunk.Block.Stmts[0].Stmt.(*ast.CallStmt)
	if n := len(call.Call.Suffixes); n != 4 {
		t.Fatalf("suffix chain length: want 4, got %d", n)
	}
	if _, ok := call.Call.Suffixes[0].(*ast.DotIndex); !ok {
		t.Fatalf("first suffix must be a dot index")
	}
	if _, ok := call.Call.Suffixes[1].(*ast.BracketIndex); !ok {
		t.Fatalf("second suffix must be a bracket index")
	}
	if _, ok := call.Call.Suffixes[2].(*ast.CallSuffix); !ok {
		t.Fatalf("third suffix must be a call")
	}
	if _, ok := call.Call.Suffixes[3].(*ast.MethodCallSuffix); !ok {
		t.Fatalf("fourth suffix must be a method call")
	}
}

func TestParseTableFields(t *testing.T) {
	chunk := parseChunk(t, "x = { a = 1, [k] = 2, 3 }\n")
	assign := chunk.Block.Stmts[0].Stmt.(*ast.Assign)
	table := assign.Values[0].Value.(*ast.TableExpr)
	if n := len(table.Fields); n != 3 {
		t.Fatalf("field count: want 3, got %d", n)
	}
	if _, ok := table.Fields[0].(*ast.NameField); !ok {
		t.Fatalf("first field must be a name field")
	}
	if _, ok := table.Fields[1].(*ast.ExprField); !ok {
		t.Fatalf("second field must be a bracket field")
	}
	if _, ok := table.Fields[2].(*ast.ValueField); !ok {
		t.Fatalf("third field must be a value field")
	}
}

func TestParseTypeAnnotations(t *testing.T) {
	chunk := parseChunk(t, "local n: number, s: string = 1, 'x'\n")
	local := chunk.Block.Stmts[0].Stmt.(*ast.LocalAssign)
	if len(local.Types) != 2 || local.Types[0] == nil || local.Types[1] == nil {
		t.Fatalf("both names must carry annotations, got %v", local.Types)
	}
	if local.Types[0].Type[0].Text != "number" {
		t.Fatalf("first annotation: want number, got %q", local.Types[0].Type[0].Text)
	}
}

func TestParseTypeIsContextual(t *testing.T) {
	// "type" without the declaration shape is an ordinary identifier.
	chunk := parseChunk(t, "type = 1\n")
	if _, ok := chunk.Block.Stmts[0].Stmt.(*ast.Assign); !ok {
		t.Fatalf("bare 'type' assignment must parse as a normal assignment")
	}
	chunk = parseChunk(t, "local t = type(x)\n")
	if _, ok := chunk.Block.Stmts[0].Stmt.(*ast.LocalAssign); !ok {
		t.Fatalf("'type' call must parse as a normal local")
	}
}

func TestParseReturnMustBeLast(t *testing.T) {
	parseFails(t, "return 1\nx = 2\n")
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"if then end",
		"local = 1",
		"f(",
		"do",
		"x +",
		"a b",
		"function 5() end",
		"repeat x()",
	}
	for _, src := range cases {
		parseFails(t, src)
	}
}

func TestParseErrorSpans(t *testing.T) {
	bag := parseFails(t, "local = 1")
	d := bag.Items()[0]
	if d.Code != diag.CodeParseExpectedToken && d.Code != diag.CodeParseUnexpectedToken {
		t.Fatalf("unexpected diagnostic code %s", d.Code)
	}
	if d.Primary.Start > d.Primary.End {
		t.Fatalf("diagnostic span is inverted: %v", d.Primary)
	}
}
