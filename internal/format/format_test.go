package format

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"luafmt/internal/ast"
	"luafmt/internal/diag"
	"luafmt/internal/parser"
	"luafmt/internal/source"
)

func parseSource(t *testing.T, src string) *ast.Chunk {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fmt.lua", []byte(src))
	bag := diag.NewBag(128)
	chunk := parser.Parse(fs.Get(fileID), parser.Options{Bag: bag})
	if chunk == nil || bag.HasErrors() {
		issues := make([]string, 0, bag.Len())
		for _, d := range bag.Items() {
			issues = append(issues, fmt.Sprintf("%s: %s", d.Code, d.Message))
		}
		t.Fatalf("parse failed: %v", issues)
	}
	return chunk
}

func formatSource(t *testing.T, src string, cfg Config) string {
	t.Helper()

	out, err := Bytes("fmt.lua", []byte(src), Options{Config: cfg, Verify: VerifyFull})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	return out
}

func TestFormatSimpleIf(t *testing.T) {
	got := formatSource(t, "if x then y() end\n", DefaultConfig())
	want := "if x then\n\ty()\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatStripsConditionParens(t *testing.T) {
	got := formatSource(t, "if (a) then end\n", DefaultConfig())
	want := "if a then\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatStripsNestedConditionParens(t *testing.T) {
	got := formatSource(t, "while ((ok)) do step() end\n", DefaultConfig())
	want := "while ok do\n\tstep()\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatHangsOverBudgetCondition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 20
	got := formatSource(t, "while aVeryLongConditionName do x() end\n", cfg)
	want := "while\n\taVeryLongConditionName\ndo\n\tx()\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatHangsOnConditionComment(t *testing.T) {
	got := formatSource(t, "if x --[[c]] then y() end\n", DefaultConfig())
	want := "if\n\tx --[[c]]\nthen\n\ty()\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatIdempotent(t *testing.T) {
	sources := []string{
		"if x then y() end\n",
		"local a   =1\nlocal b=2\n\n\nlocal c = a+b\n",
		"local t = {1,2,3}\nfor i,v in ipairs(t) do print(i ,v) end\n",
		"-- header\nlocal function f(a, b)\n  return a + b -- sum\nend\n",
		"repeat\n  x = x - 1\nuntil x <= 0\n",
		"local s = 'hi'\nf 'bare'\ng {1, 2}\n",
		"do\n  local scoped = true;\nend\n",
		"if x --[[c]] then y() end\n",
		"local x = a, -- c\nb\n",
		"local a = - -b\n",
		"-- only a comment\n",
	}
	cfg := DefaultConfig()
	for _, src := range sources {
		once := formatSource(t, src, cfg)
		twice := formatSource(t, once, cfg)
		if once != twice {
			t.Fatalf("not idempotent for %q:\nfirst  %q\nsecond %q", src, once, twice)
		}
	}
}

func commentTexts(t *testing.T, src string) []string {
	t.Helper()

	chunk := parseSource(t, src)
	var texts []string
	for _, c := range ast.Comments(chunk) {
		texts = append(texts, c.Text)
	}
	return texts
}

func TestFormatConservesComments(t *testing.T) {
	src := "-- top\nlocal a = 1 -- trail\n--[[ block ]]\nif a then\n  -- inner\n  f()\nend\n-- eof note\n"
	out := formatSource(t, src, DefaultConfig())

	want := commentTexts(t, src)
	got := commentTexts(t, out)
	sort.Strings(want)
	sort.Strings(got)
	if len(want) != len(got) {
		t.Fatalf("comment count changed: want %d, got %d\noutput:\n%s", len(want), len(got), out)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("comment %d changed: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatDropsSemicolons(t *testing.T) {
	got := formatSource(t, "local a = 1;\nf();\n", DefaultConfig())
	want := "local a = 1\nf()\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatKeepsDisambiguatingSemicolon(t *testing.T) {
	got := formatSource(t, "local a = b;\n(f)()\n", DefaultConfig())
	if !strings.Contains(got, ";") {
		t.Fatalf("semicolon before parenthesized statement was dropped:\n%s", got)
	}
}

func TestFormatCollapsesBlankLines(t *testing.T) {
	got := formatSource(t, "local a = 1\n\n\n\nlocal b = 2\n", DefaultConfig())
	want := "local a = 1\n\nlocal b = 2\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatQuoteStyles(t *testing.T) {
	cases := []struct {
		style QuoteStyle
		src   string
		want  string
	}{
		{QuotePreferDouble, "local s = 'hi'\n", "local s = \"hi\"\n"},
		{QuotePreferDouble, "local s = 'say \"hi\"'\n", "local s = 'say \"hi\"'\n"},
		{QuotePreferSingle, "local s = \"hi\"\n", "local s = 'hi'\n"},
		{QuoteForceDouble, "local s = 'it\\'s'\n", "local s = \"it's\"\n"},
		{QuoteForceSingle, "local s = \"it's\"\n", "local s = 'it\\'s'\n"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.QuoteStyle = tc.style
		got := formatSource(t, tc.src, cfg)
		if got != tc.want {
			t.Fatalf("quote style %s mismatch:\nwant %q\ngot  %q", tc.style, tc.want, got)
		}
	}
}

func TestFormatTableSingleLine(t *testing.T) {
	got := formatSource(t, "local t = {1,2 , 3}\n", DefaultConfig())
	want := "local t = { 1, 2, 3 }\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatTableNoPadding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PadTables = false
	got := formatSource(t, "local t = {1, 2}\n", cfg)
	want := "local t = {1, 2}\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatTableExpandsOverBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 20
	got := formatSource(t, "local t = {alpha = 1, beta = 2}\n", cfg)
	want := "local t = {\n\talpha = 1,\n\tbeta = 2\n}\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatTableTrailingSeparator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 20
	cfg.ExtraSepAtTableEnd = true
	got := formatSource(t, "local t = {alpha = 1, beta = 2}\n", cfg)
	want := "local t = {\n\talpha = 1,\n\tbeta = 2,\n}\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatTableSeparatorKnobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 20
	cfg.TableSeparator = SeparatorSemicolon
	cfg.ExtraSepAtTableEnd = false
	got := formatSource(t, "local t = {alpha = 1, beta = 2}\n", cfg)
	want := "local t = {\n\talpha = 1;\n\tbeta = 2\n}\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatEmptyTablePadding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PadEmptyTables = true
	got := formatSource(t, "local t = {}\n", cfg)
	want := "local t = { }\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatCallParenOmission(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoCallParentheses = true
	got := formatSource(t, "f(\"x\")\ng({1})\nh(1)\n", cfg)
	want := "f \"x\"\ng { 1 }\nh(1)\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatBinaryChainHangs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 24
	got := formatSource(t, "local x = aaaaaaa + bbbbbbb + ccccccc\n", cfg)
	want := "local x = aaaaaaa\n\t+ bbbbbbb\n\t+ ccccccc\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatCallArgsExpandOverBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 20
	got := formatSource(t, "configure(firstOption, secondOption)\n", cfg)
	want := "configure(\n\tfirstOption,\n\tsecondOption\n)\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatWindowsLineEndings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineEndings = LineEndingsWindows
	got := formatSource(t, "if x then y() end\n", cfg)
	want := "if x then\r\n\ty()\r\nend\r\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatLineEndingsRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	unix := formatSource(t, "if x then y() end\n", cfg)

	cfg.LineEndings = LineEndingsWindows
	windows := formatSource(t, "if x then y() end\r\n", cfg)
	if got := normalizeLineEndings(windows); got != unix {
		t.Fatalf("line ending normalization mismatch:\nwant %q\ngot  %q", unix, got)
	}
}

func TestFormatSpacesIndent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IndentKind = IndentSpaces
	cfg.IndentWidth = 2
	got := formatSource(t, "if x then y() end\n", cfg)
	want := "if x then\n  y()\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatParseErrorSurfaced(t *testing.T) {
	_, err := Bytes("bad.lua", []byte("if then end\n"), Options{Config: DefaultConfig()})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
}

func TestFormatRangeLocality(t *testing.T) {
	src := "local a   =   1\nlocal b   =   2\nlocal c   =   3\n"
	start := strings.Index(src, "local b")
	end := start + len("local b   =   2")

	cfg := DefaultConfig()
	rng := &Range{Start: &start, End: &end}
	out, err := Bytes("fmt.lua", []byte(src), Options{Config: cfg, Range: rng})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	if !strings.Contains(out, "local a   =   1") {
		t.Fatalf("statement before range was reformatted:\n%s", out)
	}
	if !strings.Contains(out, "local c   =   3") {
		t.Fatalf("statement after range was reformatted:\n%s", out)
	}
	if !strings.Contains(out, "local b = 2") {
		t.Fatalf("statement inside range was not reformatted:\n%s", out)
	}
}

func TestFormatRangeReachesNestedBlocks(t *testing.T) {
	src := "local a   =   1\nlocal f = function()\nnested   =   2\nend\n"
	start := strings.Index(src, "nested")
	end := start + len("nested   =   2")

	cfg := DefaultConfig()
	rng := &Range{Start: &start, End: &end}
	out, err := Bytes("fmt.lua", []byte(src), Options{Config: cfg, Range: rng})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	if !strings.Contains(out, "local a   =   1") {
		t.Fatalf("statement before range was reformatted:\n%s", out)
	}
	if !strings.Contains(out, "nested = 2") {
		t.Fatalf("nested in-range statement was not reformatted:\n%s", out)
	}
}

func TestCompareChunksDetectsDrift(t *testing.T) {
	a := parseSource(t, "local a = 1\nlocal b = 2\n")
	b := parseSource(t, "local a = 1\n")
	if detail := compareChunks(a, b); detail == "" {
		t.Fatalf("expected structural difference to be reported")
	}

	c := parseSource(t, "f('x')\n")
	d := parseSource(t, "f \"x\"\n")
	if detail := compareChunks(c, d); detail != "" {
		t.Fatalf("cosmetic difference reported as structural: %s", detail)
	}
}

func TestFormatTypeAnnotatedLocal(t *testing.T) {
	got := formatSource(t, "local n:number=1\n", DefaultConfig())
	want := "local n: number = 1\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatFunctionTypeAnnotations(t *testing.T) {
	got := formatSource(t, "local function f(a:string) : boolean\nreturn true\nend\n", DefaultConfig())
	want := "local function f(a: string): boolean\n\treturn true\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatFunctionBodyOnOwnLine(t *testing.T) {
	got := formatSource(t, "local function f(a, b) return a + b end\n", DefaultConfig())
	want := "local function f(a, b)\n\treturn a + b\nend\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatNestedUnaryMinus(t *testing.T) {
	got := formatSource(t, "local a = - -b\n", DefaultConfig())
	want := "local a = - -b\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatKeepsOperatorGrouping(t *testing.T) {
	sources := []string{
		"local r = a + b * c\n",
		"local r = a or b and c\n",
		"local r = a and b < c\n",
		"local r = a .. b .. c\n",
	}
	for _, src := range sources {
		got := formatSource(t, src, DefaultConfig())
		if got != src {
			t.Fatalf("format mismatch:\nwant %q\ngot  %q", src, got)
		}
	}
}

func TestFormatListCommentKeepsRest(t *testing.T) {
	cases := []struct{ src, want string }{
		{"local x = a, -- c\nb\n", "local x = a, -- c\n\tb\n"},
		{"local x = a -- c\n, b\n", "local x = a, -- c\n\tb\n"},
		{"a, -- c\nb = 1, 2\n", "a, -- c\n\tb = 1, 2\n"},
	}
	for _, tc := range cases {
		got := formatSource(t, tc.src, DefaultConfig())
		if got != tc.want {
			t.Fatalf("format mismatch for %q:\nwant %q\ngot  %q", tc.src, tc.want, got)
		}
	}
}

func TestFormatExpandedCallArgsCommentAfterSeparator(t *testing.T) {
	cases := []string{
		"f(a -- c\n, b)\n",
		"f(a, -- c\nb)\n",
	}
	want := "f(\n\ta, -- c\n\tb\n)\n"
	for _, src := range cases {
		got := formatSource(t, src, DefaultConfig())
		if got != want {
			t.Fatalf("format mismatch for %q:\nwant %q\ngot  %q", src, want, got)
		}
	}
}

func TestFormatCommentOnlyFile(t *testing.T) {
	got := formatSource(t, "-- only a comment\n", DefaultConfig())
	want := "-- only a comment\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatDropsFinalBlankLines(t *testing.T) {
	got := formatSource(t, "local a = 1\n\n\n", DefaultConfig())
	want := "local a = 1\n"
	if got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestVerifyAcceptsOwnOutput(t *testing.T) {
	sources := []string{
		"local a = 1\n",
		"if (a and b) or c then f(1, 'two', {3})\nelseif d then g()\nelse h() end\n",
		"for i = 1, 10, 2 do t[i] = i * i end\n",
		"local function fact(n)\n  if n <= 1 then return 1 end\n  return n * fact(n - 1)\nend\n",
	}
	for _, src := range sources {
		if _, err := Bytes("fmt.lua", []byte(src), Options{Config: DefaultConfig(), Verify: VerifyFull}); err != nil {
			t.Fatalf("verification failed for %q: %v", src, err)
		}
	}
}
