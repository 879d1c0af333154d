package parser

import (
	"luafmt/internal/ast"
	"luafmt/internal/diag"
	"luafmt/internal/token"
)

// Binary operator precedence, per the Lua reference manual. Left-associative
// operators carry equal left and right priorities; concat and exponentiation
// are right-associative, so their right priority is one lower.
func binaryPrec(kind token.Kind) (left, right int, ok bool) {
	switch kind {
	case token.KwOr:
		return 1, 1, true
	case token.KwAnd:
		return 2, 2, true
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.TildeEq, token.EqEq:
		return 3, 3, true
	case token.Concat:
		return 5, 4, true // right-assoc
	case token.Plus, token.Minus:
		return 6, 6, true
	case token.Star, token.Slash, token.Percent:
		return 7, 7, true
	case token.Caret:
		return 10, 9, true // right-assoc, binds tighter than unary
	default:
		return 0, 0, false
	}
}

const unaryPrec = 8

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(0)
}

func (p *parser) parseBinExpr(minPrec int) ast.Expr {
	var lhs ast.Expr
	switch p.peekKind() {
	case token.KwNot, token.Minus, token.Hash:
		op := p.advance()
		lhs = &ast.UnExpr{Op: op, Operand: p.parseBinExpr(unaryPrec)}
	default:
		lhs = p.parseSimpleExpr()
	}

	for {
		left, right, ok := binaryPrec(p.peekKind())
		if !ok || left <= minPrec {
			return lhs
		}
		op := p.advance()
		rhs := p.parseBinExpr(right)
		lhs = &ast.BinExpr{LHS: lhs, Op: op, RHS: rhs}
	}
}

func (p *parser) parseSimpleExpr() ast.Expr {
	switch p.peekKind() {
	case token.NumberLit, token.StringLit, token.LongStringLit,
		token.KwNil, token.KwTrue, token.KwFalse, token.Ellipsis:
		return &ast.TokenExpr{Tok: p.advance()}
	case token.KwFunction:
		fnTok := p.advance()
		return &ast.FunctionExpr{Function: fnTok, Body: p.parseFunctionBody()}
	case token.LBrace:
		return p.parseTable()
	case token.Ident, token.LParen:
		return p.parsePrefixExpr()
	default:
		p.errorf(diag.CodeParseExpectedExpr, "expected expression, found %q", p.peek().Text)
		panic(bailout{})
	}
}

// parsePrefixExpr parses a name or parenthesized expression followed by any
// chain of index and call suffixes. With no suffixes the bare primary is
// returned directly.
func (p *parser) parsePrefixExpr() ast.Expr {
	var prefix ast.Expr
	switch p.peekKind() {
	case token.Ident:
		prefix = &ast.TokenExpr{Tok: p.advance()}
	case token.LParen:
		lp := p.advance()
		inner := p.parseExpr()
		rp := p.expect(token.RParen)
		prefix = &ast.ParenExpr{LParen: lp, Inner: inner, RParen: rp}
	default:
		p.errorf(diag.CodeParseExpectedExpr, "expected name or parenthesized expression, found %q", p.peek().Text)
		panic(bailout{})
	}

	var suffixes []ast.Suffix
	for {
		suffix := p.tryParseSuffix()
		if suffix == nil {
			break
		}
		suffixes = append(suffixes, suffix)
	}
	if len(suffixes) == 0 {
		return prefix
	}
	return &ast.PrefixExpr{Prefix: prefix, Suffixes: suffixes}
}

func (p *parser) tryParseSuffix() ast.Suffix {
	switch p.peekKind() {
	case token.Dot:
		dot := p.advance()
		return &ast.DotIndex{Dot: dot, Name: p.expect(token.Ident)}
	case token.LBracket:
		lb := p.advance()
		index := p.parseExpr()
		rb := p.expect(token.RBracket)
		return &ast.BracketIndex{LBracket: lb, Index: index, RBracket: rb}
	case token.Colon:
		// Method call only when arguments follow; a bare colon belongs to a
		// type annotation at statement level.
		switch p.peekAt(2).Kind {
		case token.LParen, token.StringLit, token.LongStringLit, token.LBrace:
		default:
			return nil
		}
		colon := p.advance()
		name := p.expect(token.Ident)
		return &ast.MethodCallSuffix{Colon: colon, Name: name, Args: p.parseCallArgs()}
	case token.LParen, token.StringLit, token.LongStringLit, token.LBrace:
		return &ast.CallSuffix{Args: p.parseCallArgs()}
	default:
		return nil
	}
}

func (p *parser) parseCallArgs() ast.CallArgs {
	switch p.peekKind() {
	case token.LParen:
		lp := p.advance()
		args := &ast.ParenArgs{LParen: lp}
		if !p.at(token.RParen) {
			args.Args = p.parseExprList()
		}
		args.RParen = p.expect(token.RParen)
		return args
	case token.StringLit, token.LongStringLit:
		return &ast.StringArg{Tok: p.advance()}
	case token.LBrace:
		return &ast.TableArg{Table: p.parseTable()}
	default:
		p.errorf(diag.CodeParseExpectedToken, "expected call arguments, found %q", p.peek().Text)
		panic(bailout{})
	}
}

func (p *parser) parseTable() *ast.TableExpr {
	lb := p.expect(token.LBrace)
	table := &ast.TableExpr{LBrace: lb}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field := p.parseTableField()
		if sep, ok := p.eat(token.Comma); ok {
			field = ast.WithSeparator(field, &sep)
		} else if sep, ok := p.eat(token.Semicolon); ok {
			field = ast.WithSeparator(field, &sep)
		} else {
			table.Fields = append(table.Fields, field)
			break
		}
		table.Fields = append(table.Fields, field)
	}
	table.RBrace = p.expect(token.RBrace)
	return table
}

func (p *parser) parseTableField() ast.TableField {
	switch {
	case p.at(token.LBracket):
		lb := p.advance()
		key := p.parseExpr()
		rb := p.expect(token.RBracket)
		eq := p.expect(token.Assign)
		return &ast.ExprField{LBracket: lb, Key: key, RBracket: rb, Eq: eq, Value: p.parseExpr()}
	case p.at(token.Ident) && p.peekAt(1).Kind == token.Assign:
		name := p.advance()
		eq := p.advance()
		return &ast.NameField{Name: name, Eq: eq, Value: p.parseExpr()}
	default:
		return &ast.ValueField{Value: p.parseExpr()}
	}
}

func (p *parser) parseExprList() ast.Punctuated[ast.Expr] {
	var list ast.Punctuated[ast.Expr]
	list = append(list, ast.Pair[ast.Expr]{Value: p.parseExpr()})
	for {
		comma, ok := p.eat(token.Comma)
		if !ok {
			return list
		}
		list[len(list)-1].Sep = &comma
		list = append(list, ast.Pair[ast.Expr]{Value: p.parseExpr()})
	}
}

func (p *parser) parseFunctionBody() *ast.FunctionBody {
	body := &ast.FunctionBody{LParen: p.expect(token.LParen)}
	for !p.at(token.RParen) {
		var param token.Token
		switch p.peekKind() {
		case token.Ident, token.Ellipsis:
			param = p.advance()
		default:
			p.errorf(diag.CodeParseExpectedToken, "expected parameter name, found %q", p.peek().Text)
			panic(bailout{})
		}
		body.Params = append(body.Params, ast.Pair[token.Token]{Value: param})
		body.ParamTypes = append(body.ParamTypes, p.tryParseTypeAnnotation())
		comma, ok := p.eat(token.Comma)
		if !ok {
			break
		}
		body.Params[len(body.Params)-1].Sep = &comma
	}
	body.RParen = p.expect(token.RParen)
	body.ReturnType = p.tryParseTypeAnnotation()
	body.Body = p.parseBlock()
	body.End = p.expect(token.KwEnd)
	return body
}
