package parser

import (
	"luafmt/internal/ast"
	"luafmt/internal/diag"
	"luafmt/internal/token"
)

// blockEnd reports whether the current token terminates a block.
func (p *parser) blockEnd() bool {
	switch p.peekKind() {
	case token.EOF, token.KwEnd, token.KwElse, token.KwElseif, token.KwUntil:
		return true
	default:
		return false
	}
}

func (p *parser) parseBlock() *ast.Block {
	block := &ast.Block{}
	for !p.blockEnd() {
		stmt, last := p.parseStmt()
		entry := ast.StmtSemi{Stmt: stmt}
		if semi, ok := p.eat(token.Semicolon); ok {
			entry.Semicolon = &semi
		}
		block.Stmts = append(block.Stmts, entry)
		if last {
			break
		}
	}
	return block
}

// parseStmt returns the statement and whether it must be the last one of its
// block (return/break).
func (p *parser) parseStmt() (ast.Stmt, bool) {
	switch p.peekKind() {
	case token.KwDo:
		return p.parseDo(), false
	case token.KwWhile:
		return p.parseWhile(), false
	case token.KwRepeat:
		return p.parseRepeat(), false
	case token.KwIf:
		return p.parseIf(), false
	case token.KwFor:
		return p.parseFor(), false
	case token.KwFunction:
		return p.parseFunctionDecl(), false
	case token.KwLocal:
		return p.parseLocal(), false
	case token.KwReturn:
		return p.parseReturn(), true
	case token.KwBreak:
		return &ast.Break{Break: p.advance()}, true
	case token.KwGoto:
		gt := p.advance()
		return &ast.Goto{Goto: gt, Label: p.expect(token.Ident)}, false
	case token.DoubleColon:
		left := p.advance()
		name := p.expect(token.Ident)
		right := p.expect(token.DoubleColon)
		return &ast.Label{Left: left, Name: name, Right: right}, false
	case token.Ident:
		if stmt, ok := p.tryParseTypeDecl(); ok {
			return stmt, false
		}
		return p.parseExprStmt(), false
	case token.LParen:
		return p.parseExprStmt(), false
	default:
		p.errorf(diag.CodeParseUnexpectedToken, "unexpected token %q", p.peek().Text)
		panic(bailout{})
	}
}

func (p *parser) parseDo() ast.Stmt {
	do := p.advance()
	body := p.parseBlock()
	end := p.expect(token.KwEnd)
	return &ast.Do{Do: do, Body: body, End: end}
}

func (p *parser) parseWhile() ast.Stmt {
	while := p.advance()
	cond := p.parseExpr()
	do := p.expect(token.KwDo)
	body := p.parseBlock()
	end := p.expect(token.KwEnd)
	return &ast.While{While: while, Cond: cond, Do: do, Body: body, End: end}
}

func (p *parser) parseRepeat() ast.Stmt {
	rep := p.advance()
	body := p.parseBlock()
	until := p.expect(token.KwUntil)
	cond := p.parseExpr()
	return &ast.Repeat{Repeat: rep, Body: body, Until: until, Cond: cond}
}

func (p *parser) parseIf() ast.Stmt {
	ifTok := p.advance()
	cond := p.parseExpr()
	then := p.expect(token.KwThen)
	body := p.parseBlock()

	node := &ast.If{If: ifTok, Cond: cond, Then: then, Body: body}
	for p.at(token.KwElseif) {
		arm := &ast.ElseIf{ElseIf: p.advance()}
		arm.Cond = p.parseExpr()
		arm.Then = p.expect(token.KwThen)
		arm.Body = p.parseBlock()
		node.ElseIfs = append(node.ElseIfs, arm)
	}
	if elseTok, ok := p.eat(token.KwElse); ok {
		node.Else = &elseTok
		node.ElseBody = p.parseBlock()
	}
	node.End = p.expect(token.KwEnd)
	return node
}

func (p *parser) parseFor() ast.Stmt {
	forTok := p.advance()
	first := p.expect(token.Ident)
	firstType := p.tryParseTypeAnnotation()

	if eq, ok := p.eat(token.Assign); ok {
		node := &ast.NumericFor{For: forTok, Var: first, VarType: firstType, Eq: eq}
		node.Start = p.parseExpr()
		node.Comma1 = p.expect(token.Comma)
		node.Limit = p.parseExpr()
		if comma2, ok := p.eat(token.Comma); ok {
			node.Comma2 = &comma2
			node.Step = p.parseExpr()
		}
		node.Do = p.expect(token.KwDo)
		node.Body = p.parseBlock()
		node.EndToken = p.expect(token.KwEnd)
		return node
	}

	node := &ast.GenericFor{For: forTok}
	node.Names = append(node.Names, ast.Pair[token.Token]{Value: first})
	node.Types = append(node.Types, firstType)
	for {
		comma, ok := p.eat(token.Comma)
		if !ok {
			break
		}
		node.Names[len(node.Names)-1].Sep = &comma
		node.Names = append(node.Names, ast.Pair[token.Token]{Value: p.expect(token.Ident)})
		node.Types = append(node.Types, p.tryParseTypeAnnotation())
	}
	node.In = p.expect(token.KwIn)
	node.Exprs = p.parseExprList()
	node.Do = p.expect(token.KwDo)
	node.Body = p.parseBlock()
	node.EndToken = p.expect(token.KwEnd)
	return node
}

func (p *parser) parseFunctionDecl() ast.Stmt {
	fnTok := p.advance()
	name := ast.FunctionName{Base: p.expect(token.Ident)}
	for p.at(token.Dot) {
		dot := p.advance()
		name.Dots = append(name.Dots, ast.Pair[token.Token]{
			Value: p.expect(token.Ident),
			Sep:   &dot,
		})
	}
	if colon, ok := p.eat(token.Colon); ok {
		method := p.expect(token.Ident)
		name.Colon = &colon
		name.Method = &method
	}
	return &ast.FunctionDecl{Function: fnTok, Name: name, Body: p.parseFunctionBody()}
}

func (p *parser) parseLocal() ast.Stmt {
	local := p.advance()

	if fnTok, ok := p.eat(token.KwFunction); ok {
		name := p.expect(token.Ident)
		return &ast.LocalFunction{Local: local, Function: fnTok, Name: name, Body: p.parseFunctionBody()}
	}

	node := &ast.LocalAssign{Local: local}
	for {
		name := p.expect(token.Ident)
		node.Names = append(node.Names, ast.Pair[token.Token]{Value: name})
		node.Types = append(node.Types, p.tryParseTypeAnnotation())
		comma, ok := p.eat(token.Comma)
		if !ok {
			break
		}
		node.Names[len(node.Names)-1].Sep = &comma
	}
	if eq, ok := p.eat(token.Assign); ok {
		node.Eq = &eq
		node.Values = p.parseExprList()
	}
	return node
}

func (p *parser) parseReturn() ast.Stmt {
	ret := p.advance()
	node := &ast.Return{Return: ret}
	if !p.blockEnd() && !p.at(token.Semicolon) {
		node.Exprs = p.parseExprList()
	}
	return node
}

// parseExprStmt handles statements that begin with a prefix expression:
// assignments, compound assignments, and bare calls.
func (p *parser) parseExprStmt() ast.Stmt {
	target := p.parsePrefixExpr()

	switch p.peekKind() {
	case token.Assign, token.Comma:
		return p.parseAssign(target)
	case token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.CaretAssign,
		token.ConcatAssign:
		op := p.advance()
		return &ast.CompoundAssign{Target: target, Op: op, Value: p.parseExpr()}
	}

	call, ok := target.(*ast.PrefixExpr)
	if !ok || !call.IsCall() {
		p.errorf(diag.CodeParseUnexpectedToken, "expression cannot be used as a statement")
		panic(bailout{})
	}
	return &ast.CallStmt{Call: call}
}

func (p *parser) parseAssign(first ast.Expr) ast.Stmt {
	node := &ast.Assign{}
	node.Targets = append(node.Targets, ast.Pair[ast.Expr]{Value: first})
	for {
		comma, ok := p.eat(token.Comma)
		if !ok {
			break
		}
		node.Targets[len(node.Targets)-1].Sep = &comma
		node.Targets = append(node.Targets, ast.Pair[ast.Expr]{Value: p.parsePrefixExpr()})
	}
	node.Eq = p.expect(token.Assign)
	node.Values = p.parseExprList()
	return node
}

// tryParseTypeDecl recognizes luau "type Name = ..." and
// "export type Name = ..." statements. "type" and "export" stay plain
// identifiers everywhere else.
func (p *parser) tryParseTypeDecl() (ast.Stmt, bool) {
	node := &ast.TypeDecl{}
	offset := 0
	if p.peek().Text == "export" && p.peekAt(1).Text == "type" && p.peekAt(2).Kind == token.Ident {
		offset = 1
	} else if p.peek().Text != "type" {
		return nil, false
	}
	if p.peekAt(offset+1).Kind != token.Ident || p.peekAt(offset+2).Kind != token.Assign {
		return nil, false
	}

	if offset == 1 {
		export := p.advance()
		node.Export = &export
	}
	node.Type = p.advance()
	node.Name = p.expect(token.Ident)
	node.Eq = p.expect(token.Assign)
	node.Def = p.parseTypeTokens()
	return node, true
}

// parseTypeTokens consumes a raw luau type expression: balanced brackets,
// ending at an unnested token that closes the line or starts a new
// statement. Type syntax is carried through, not understood.
func (p *parser) parseTypeTokens() []token.Token {
	var out []token.Token
	depth := 0
	for {
		switch p.peekKind() {
		case token.EOF, token.KwEnd, token.KwUntil, token.KwElse, token.KwElseif,
			token.Semicolon, token.KwLocal, token.KwIf, token.KwWhile, token.KwFor,
			token.KwRepeat, token.KwReturn, token.KwBreak, token.KwFunction, token.KwDo:
			if depth == 0 {
				return out
			}
		case token.LParen, token.LBrace, token.LBracket, token.Lt:
			depth++
		case token.RParen, token.RBrace, token.RBracket, token.Gt:
			depth--
		}
		tok := p.advance()
		out = append(out, tok)
		if depth <= 0 && endsLine(tok) {
			return out
		}
	}
}

// tryParseTypeAnnotation consumes a luau ": type" decorator if present.
func (p *parser) tryParseTypeAnnotation() *ast.TypeAnnotation {
	if !p.at(token.Colon) {
		return nil
	}
	colon := p.advance()
	ann := &ast.TypeAnnotation{Colon: colon}
	depth := 0
	for {
		switch p.peekKind() {
		case token.EOF, token.KwEnd, token.KwUntil, token.KwElse, token.KwElseif,
			token.Semicolon, token.KwIn, token.KwDo, token.KwThen, token.KwLocal,
			token.KwIf, token.KwWhile, token.KwFor, token.KwRepeat, token.KwReturn,
			token.KwBreak:
			return ann
		case token.Comma, token.Assign:
			if depth == 0 {
				return ann
			}
		case token.RParen:
			if depth == 0 {
				return ann
			}
			depth--
		case token.LParen, token.LBrace, token.LBracket, token.Lt:
			depth++
		case token.RBrace, token.RBracket, token.Gt:
			depth--
		}
		tok := p.advance()
		ann.Type = append(ann.Type, tok)
		if depth <= 0 && endsLine(tok) {
			return ann
		}
	}
}

// endsLine reports whether a token's trailing trivia reaches a newline.
func endsLine(tok token.Token) bool {
	for _, tr := range tok.Trailing {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}
