package format

import (
	"fmt"

	"luafmt/internal/ast"
	"luafmt/internal/token"
)

// compareChunks compares two parsed chunks structurally, ignoring the
// cosmetic differences formatting is allowed to make: trivia, dropped
// semicolons, stripped condition parentheses, requoted strings, normalized
// table separators, and omitted call parentheses. It returns an empty
// string when the trees match, otherwise a short description of the first
// mismatch.
func compareChunks(a, b *ast.Chunk) string {
	return compareBlocks(a.Block, b.Block)
}

func compareBlocks(a, b *ast.Block) string {
	if len(a.Stmts) != len(b.Stmts) {
		return fmt.Sprintf("statement count %d vs %d", len(a.Stmts), len(b.Stmts))
	}
	for i := range a.Stmts {
		if d := compareStmt(a.Stmts[i].Stmt, b.Stmts[i].Stmt); d != "" {
			return fmt.Sprintf("statement %d: %s", i+1, d)
		}
	}
	return ""
}

func compareStmt(a, b ast.Stmt) string {
	switch a := a.(type) {
	case *ast.Assign:
		bb, ok := b.(*ast.Assign)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareExprList(a.Targets, bb.Targets); d != "" {
			return d
		}
		return compareExprList(a.Values, bb.Values)
	case *ast.LocalAssign:
		bb, ok := b.(*ast.LocalAssign)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareNameList(a.Names, bb.Names); d != "" {
			return d
		}
		return compareExprList(a.Values, bb.Values)
	case *ast.FunctionDecl:
		bb, ok := b.(*ast.FunctionDecl)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareFunctionName(a.Name, bb.Name); d != "" {
			return d
		}
		return compareFunctionBody(a.Body, bb.Body)
	case *ast.LocalFunction:
		bb, ok := b.(*ast.LocalFunction)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareToken(a.Name, bb.Name); d != "" {
			return d
		}
		return compareFunctionBody(a.Body, bb.Body)
	case *ast.If:
		bb, ok := b.(*ast.If)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareCondition(a.Cond, bb.Cond); d != "" {
			return d
		}
		if d := compareBlocks(a.Body, bb.Body); d != "" {
			return d
		}
		if len(a.ElseIfs) != len(bb.ElseIfs) {
			return "elseif arm count differs"
		}
		for i := range a.ElseIfs {
			if d := compareCondition(a.ElseIfs[i].Cond, bb.ElseIfs[i].Cond); d != "" {
				return d
			}
			if d := compareBlocks(a.ElseIfs[i].Body, bb.ElseIfs[i].Body); d != "" {
				return d
			}
		}
		if (a.ElseBody == nil) != (bb.ElseBody == nil) {
			return "else arm presence differs"
		}
		if a.ElseBody != nil {
			return compareBlocks(a.ElseBody, bb.ElseBody)
		}
		return ""
	case *ast.While:
		bb, ok := b.(*ast.While)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareCondition(a.Cond, bb.Cond); d != "" {
			return d
		}
		return compareBlocks(a.Body, bb.Body)
	case *ast.NumericFor:
		bb, ok := b.(*ast.NumericFor)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareToken(a.Var, bb.Var); d != "" {
			return d
		}
		if d := compareCondition(a.Start, bb.Start); d != "" {
			return d
		}
		if d := compareCondition(a.Limit, bb.Limit); d != "" {
			return d
		}
		if (a.Step == nil) != (bb.Step == nil) {
			return "for step presence differs"
		}
		if a.Step != nil {
			if d := compareCondition(a.Step, bb.Step); d != "" {
				return d
			}
		}
		return compareBlocks(a.Body, bb.Body)
	case *ast.GenericFor:
		bb, ok := b.(*ast.GenericFor)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareNameList(a.Names, bb.Names); d != "" {
			return d
		}
		if d := compareExprList(a.Exprs, bb.Exprs); d != "" {
			return d
		}
		return compareBlocks(a.Body, bb.Body)
	case *ast.Repeat:
		bb, ok := b.(*ast.Repeat)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareBlocks(a.Body, bb.Body); d != "" {
			return d
		}
		return compareCondition(a.Cond, bb.Cond)
	case *ast.Do:
		bb, ok := b.(*ast.Do)
		if !ok {
			return stmtKindDiff(a, b)
		}
		return compareBlocks(a.Body, bb.Body)
	case *ast.CallStmt:
		bb, ok := b.(*ast.CallStmt)
		if !ok {
			return stmtKindDiff(a, b)
		}
		return compareExpr(a.Call, bb.Call)
	case *ast.Return:
		bb, ok := b.(*ast.Return)
		if !ok {
			return stmtKindDiff(a, b)
		}
		return compareExprList(a.Exprs, bb.Exprs)
	case *ast.Break:
		if _, ok := b.(*ast.Break); !ok {
			return stmtKindDiff(a, b)
		}
		return ""
	case *ast.Goto:
		bb, ok := b.(*ast.Goto)
		if !ok {
			return stmtKindDiff(a, b)
		}
		return compareToken(a.Label, bb.Label)
	case *ast.Label:
		bb, ok := b.(*ast.Label)
		if !ok {
			return stmtKindDiff(a, b)
		}
		return compareToken(a.Name, bb.Name)
	case *ast.CompoundAssign:
		bb, ok := b.(*ast.CompoundAssign)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareExpr(a.Target, bb.Target); d != "" {
			return d
		}
		if d := compareToken(a.Op, bb.Op); d != "" {
			return d
		}
		return compareExpr(a.Value, bb.Value)
	case *ast.TypeDecl:
		bb, ok := b.(*ast.TypeDecl)
		if !ok {
			return stmtKindDiff(a, b)
		}
		if d := compareToken(a.Name, bb.Name); d != "" {
			return d
		}
		if len(a.Def) != len(bb.Def) {
			return "type definition token count differs"
		}
		for i := range a.Def {
			if d := compareToken(a.Def[i], bb.Def[i]); d != "" {
				return d
			}
		}
		return ""
	default:
		panic("format: unknown statement variant")
	}
}

func stmtKindDiff(a, b ast.Stmt) string {
	return fmt.Sprintf("statement kind %T vs %T", a, b)
}

// compareCondition compares expressions in positions where the formatter
// strips redundant parentheses, so both sides are stripped first.
func compareCondition(a, b ast.Expr) string {
	return compareExpr(stripParens(a), stripParens(b))
}

func compareExpr(a, b ast.Expr) string {
	switch a := a.(type) {
	case *ast.TokenExpr:
		bb, ok := b.(*ast.TokenExpr)
		if !ok {
			return exprKindDiff(a, b)
		}
		return compareToken(a.Tok, bb.Tok)
	case *ast.BinExpr:
		bb, ok := b.(*ast.BinExpr)
		if !ok {
			return exprKindDiff(a, b)
		}
		if a.Op.Kind != bb.Op.Kind {
			return fmt.Sprintf("operator %q vs %q", a.Op.Text, bb.Op.Text)
		}
		if d := compareExpr(a.LHS, bb.LHS); d != "" {
			return d
		}
		return compareExpr(a.RHS, bb.RHS)
	case *ast.UnExpr:
		bb, ok := b.(*ast.UnExpr)
		if !ok {
			return exprKindDiff(a, b)
		}
		if a.Op.Kind != bb.Op.Kind {
			return fmt.Sprintf("operator %q vs %q", a.Op.Text, bb.Op.Text)
		}
		return compareExpr(a.Operand, bb.Operand)
	case *ast.ParenExpr:
		bb, ok := b.(*ast.ParenExpr)
		if !ok {
			return exprKindDiff(a, b)
		}
		return compareExpr(a.Inner, bb.Inner)
	case *ast.FunctionExpr:
		bb, ok := b.(*ast.FunctionExpr)
		if !ok {
			return exprKindDiff(a, b)
		}
		return compareFunctionBody(a.Body, bb.Body)
	case *ast.PrefixExpr:
		bb, ok := b.(*ast.PrefixExpr)
		if !ok {
			return exprKindDiff(a, b)
		}
		if d := compareExpr(a.Prefix, bb.Prefix); d != "" {
			return d
		}
		if len(a.Suffixes) != len(bb.Suffixes) {
			return "suffix chain length differs"
		}
		for i := range a.Suffixes {
			if d := compareSuffix(a.Suffixes[i], bb.Suffixes[i]); d != "" {
				return d
			}
		}
		return ""
	case *ast.TableExpr:
		bb, ok := b.(*ast.TableExpr)
		if !ok {
			return exprKindDiff(a, b)
		}
		return compareTables(a, bb)
	default:
		panic("format: unknown expression variant")
	}
}

func exprKindDiff(a, b ast.Expr) string {
	return fmt.Sprintf("expression kind %T vs %T", a, b)
}

func compareSuffix(a, b ast.Suffix) string {
	switch a := a.(type) {
	case *ast.DotIndex:
		bb, ok := b.(*ast.DotIndex)
		if !ok {
			return fmt.Sprintf("suffix kind %T vs %T", a, b)
		}
		return compareToken(a.Name, bb.Name)
	case *ast.BracketIndex:
		bb, ok := b.(*ast.BracketIndex)
		if !ok {
			return fmt.Sprintf("suffix kind %T vs %T", a, b)
		}
		return compareExpr(a.Index, bb.Index)
	case *ast.CallSuffix:
		bb, ok := b.(*ast.CallSuffix)
		if !ok {
			return fmt.Sprintf("suffix kind %T vs %T", a, b)
		}
		return compareCallArgs(a.Args, bb.Args)
	case *ast.MethodCallSuffix:
		bb, ok := b.(*ast.MethodCallSuffix)
		if !ok {
			return fmt.Sprintf("suffix kind %T vs %T", a, b)
		}
		if d := compareToken(a.Name, bb.Name); d != "" {
			return d
		}
		return compareCallArgs(a.Args, bb.Args)
	default:
		panic("format: unknown suffix variant")
	}
}

// compareCallArgs compares argument forms after canonicalizing them to a
// plain expression list, so f("x") and f "x" compare equal.
func compareCallArgs(a, b ast.CallArgs) string {
	as := callArgExprs(a)
	bs := callArgExprs(b)
	if len(as) != len(bs) {
		return fmt.Sprintf("argument count %d vs %d", len(as), len(bs))
	}
	for i := range as {
		if d := compareExpr(as[i], bs[i]); d != "" {
			return d
		}
	}
	return ""
}

func callArgExprs(args ast.CallArgs) []ast.Expr {
	switch args := args.(type) {
	case *ast.ParenArgs:
		return args.Args.Values()
	case *ast.StringArg:
		return []ast.Expr{&ast.TokenExpr{Tok: args.Tok}}
	case *ast.TableArg:
		return []ast.Expr{args.Table}
	default:
		panic("format: unknown call argument variant")
	}
}

// compareTables compares table constructors field by field, ignoring the
// separator tokens between fields.
func compareTables(a, b *ast.TableExpr) string {
	if len(a.Fields) != len(b.Fields) {
		return fmt.Sprintf("table field count %d vs %d", len(a.Fields), len(b.Fields))
	}
	for i := range a.Fields {
		switch fa := a.Fields[i].(type) {
		case *ast.NameField:
			fb, ok := b.Fields[i].(*ast.NameField)
			if !ok {
				return "table field kind differs"
			}
			if d := compareToken(fa.Name, fb.Name); d != "" {
				return d
			}
			if d := compareExpr(fa.Value, fb.Value); d != "" {
				return d
			}
		case *ast.ExprField:
			fb, ok := b.Fields[i].(*ast.ExprField)
			if !ok {
				return "table field kind differs"
			}
			if d := compareExpr(fa.Key, fb.Key); d != "" {
				return d
			}
			if d := compareExpr(fa.Value, fb.Value); d != "" {
				return d
			}
		case *ast.ValueField:
			fb, ok := b.Fields[i].(*ast.ValueField)
			if !ok {
				return "table field kind differs"
			}
			if d := compareExpr(fa.Value, fb.Value); d != "" {
				return d
			}
		default:
			panic("format: unknown table field variant")
		}
	}
	return ""
}

func compareNameList(a, b ast.Punctuated[token.Token]) string {
	if len(a) != len(b) {
		return fmt.Sprintf("name count %d vs %d", len(a), len(b))
	}
	for i := range a {
		if d := compareToken(a[i].Value, b[i].Value); d != "" {
			return d
		}
	}
	return ""
}

func compareExprList(a, b ast.Punctuated[ast.Expr]) string {
	if len(a) != len(b) {
		return fmt.Sprintf("expression count %d vs %d", len(a), len(b))
	}
	for i := range a {
		if d := compareExpr(a[i].Value, b[i].Value); d != "" {
			return d
		}
	}
	return ""
}

func compareFunctionName(a, b ast.FunctionName) string {
	if d := compareToken(a.Base, b.Base); d != "" {
		return d
	}
	if len(a.Dots) != len(b.Dots) {
		return "function name depth differs"
	}
	for i := range a.Dots {
		if d := compareToken(a.Dots[i].Value, b.Dots[i].Value); d != "" {
			return d
		}
	}
	if (a.Method == nil) != (b.Method == nil) {
		return "method name presence differs"
	}
	if a.Method != nil {
		return compareToken(*a.Method, *b.Method)
	}
	return ""
}

func compareFunctionBody(a, b *ast.FunctionBody) string {
	if d := compareNameList(a.Params, b.Params); d != "" {
		return d
	}
	return compareBlocks(a.Body, b.Body)
}

// compareToken compares two tokens by kind and text. Strings compare in a
// canonical quoting so requoted literals still match.
func compareToken(a, b token.Token) string {
	if a.Kind != b.Kind {
		return fmt.Sprintf("token %q vs %q", a.Text, b.Text)
	}
	at, bt := a.Text, b.Text
	if a.Kind == token.StringLit {
		at = requoteString(at, QuoteForceDouble)
		bt = requoteString(bt, QuoteForceDouble)
	}
	if at != bt {
		return fmt.Sprintf("token %q vs %q", a.Text, b.Text)
	}
	return ""
}
