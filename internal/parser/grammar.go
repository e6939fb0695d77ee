package parser

import (
	"strconv"

	"github.com/minilang/minilangc/internal/ast"
	"github.com/minilang/minilangc/internal/token"
)

// ParseProgram parses the whole token stream as an implicit top-level
// block (MiniLang has no crate/module wrapper: a program is just a
// sequence of statements) and then builds the scope tree over the
// resulting AST.
func (p *Parser) ParseProgram() *ast.Program {
	pos := p.curPos()
	root := p.parseStmtSequence(pos, nil)
	prog := ast.NewProgram(pos, root)
	buildScopes(prog)
	return prog
}

// parseStmtSequence parses statements until the stream hits EOF or (when
// closing is non-nil) the given closing punctuation kind, without consuming it.
func (p *Parser) parseStmtSequence(pos token.Position, closing *token.Kind) *ast.Block {
	var stmts []ast.Stmt
	for {
		if p.isEOF() {
			break
		}
		if closing != nil && p.peek().Type == *closing {
			break
		}
		stmts = append(stmts, p.parseStmt())
	}
	return ast.NewBlock(pos, stmts)
}

// ParseBlock parses a brace-delimited statement sequence: "{" Stmt* "}".
func (p *Parser) ParseBlock() *ast.Block {
	open := p.expect(token.LBRACE, "'{'")
	rbrace := token.RBRACE
	block := p.parseStmtSequence(open.Pos(), &rbrace)
	p.expect(token.RBRACE, "'}'")
	return block
}

func (p *Parser) parseStmt() ast.Stmt {
	tok := p.peek()
	switch tok.Type {
	case token.INTDCL:
		return p.parseIntDcl(true)
	case token.FLOATDCL:
		return p.parseFloatDcl()
	case token.STRINGDCL:
		return p.parseStringDcl()
	case token.BOOLDCL:
		return p.parseBoolDcl()
	case token.PRINT:
		p.next()
		val := p.parseExpr()
		p.expect(token.SEMI, "';'")
		return ast.NewPrint(tok.Pos(), val)
	case token.IDENT:
		return p.parseReassign(true)
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	default:
		p.fail("expected a statement", tok)
		return nil
	}
}

// parseIntDcl parses `int NAME [= expr] [;]`. consumeSemi is false when
// called from a for-loop header, where the semicolon is the loop's own
// delimiter rather than a statement terminator.
func (p *Parser) parseIntDcl(consumeSemi bool) *ast.IntDcl {
	tok := p.expect(token.INTDCL, "'int'")
	name := p.expect(token.IDENT, "identifier").Literal
	var init ast.Expr
	if p.peek().Type == token.ASSIGN {
		p.next()
		init = p.parseExpr()
	}
	if consumeSemi {
		p.expect(token.SEMI, "';'")
	}
	return ast.NewIntDcl(tok.Pos(), name, init)
}

func (p *Parser) parseFloatDcl() *ast.FloatDcl {
	tok := p.expect(token.FLOATDCL, "'float'")
	name := p.expect(token.IDENT, "identifier").Literal
	var init ast.Expr
	if p.peek().Type == token.ASSIGN {
		p.next()
		init = p.parseExpr()
	}
	p.expect(token.SEMI, "';'")
	return ast.NewFloatDcl(tok.Pos(), name, init)
}

func (p *Parser) parseStringDcl() *ast.StringDcl {
	tok := p.expect(token.STRINGDCL, "'string'")
	name := p.expect(token.IDENT, "identifier").Literal
	var init ast.Expr
	if p.peek().Type == token.ASSIGN {
		p.next()
		init = p.parseExpr()
	}
	p.expect(token.SEMI, "';'")
	return ast.NewStringDcl(tok.Pos(), name, init)
}

func (p *Parser) parseBoolDcl() *ast.BoolDcl {
	tok := p.expect(token.BOOLDCL, "'bool'")
	name := p.expect(token.IDENT, "identifier").Literal
	var init ast.Expr
	if p.peek().Type == token.ASSIGN {
		p.next()
		init = p.parseExpr()
	}
	p.expect(token.SEMI, "';'")
	return ast.NewBoolDcl(tok.Pos(), name, init)
}

// parseReassign parses `NAME = expr [;]`.
func (p *Parser) parseReassign(consumeSemi bool) *ast.Reassign {
	nameTok := p.expect(token.IDENT, "identifier")
	p.expect(token.ASSIGN, "'='")
	value := p.parseExpr()
	if consumeSemi {
		p.expect(token.SEMI, "';'")
	}
	return ast.NewReassign(nameTok.Pos(), nameTok.Literal, value)
}

func (p *Parser) parseIf() *ast.IfStatement {
	tok := p.expect(token.IF, "'if'")
	cond := p.parseExpr()
	then := p.ParseBlock()
	var elifs []*ast.Elif
	for p.peek().Type == token.ELIF {
		elifTok := p.next()
		elifCond := p.parseExpr()
		elifBody := p.ParseBlock()
		elifs = append(elifs, ast.NewElif(elifTok.Pos(), elifCond, elifBody))
	}
	var els *ast.Block
	if p.peek().Type == token.ELSE {
		p.next()
		els = p.ParseBlock()
	}
	return ast.NewIfStatement(tok.Pos(), cond, then, elifs, els)
}

func (p *Parser) parseWhile() *ast.WhileStatement {
	tok := p.expect(token.WHILE, "'while'")
	cond := p.parseExpr()
	body := p.ParseBlock()
	return ast.NewWhileStatement(tok.Pos(), cond, body)
}

// parseFor parses `for ( int NAME = expr ; cond ; NAME = expr ) { ... }`.
// The init slot is restricted to an int declaration and the update slot
// to a reassignment, mirroring the original grammar's production rule
// exactly rather than accepting any statement in either slot.
func (p *Parser) parseFor() *ast.ForStatement {
	tok := p.expect(token.FOR, "'for'")
	p.expect(token.LPAREN, "'('")
	init := p.parseIntDcl(false)
	p.expect(token.SEMI, "';'")
	cond := p.parseExpr()
	p.expect(token.SEMI, "';'")
	update := p.parseReassign(false)
	p.expect(token.RPAREN, "')'")
	body := p.ParseBlock()
	return ast.NewForStatement(tok.Pos(), init, cond, update, body)
}

// --- expression grammar: and/or < == != < </>/<=/>= (nonassoc) < +/- <
// */÷ < ^ (left) < unary- < primary, grounded on the original
// grammar's precedence table. ---

func (p *Parser) parseExpr() ast.Expr { return p.parseLogic() }

func (p *Parser) parseLogic() ast.Expr {
	left := p.parseEquality()
	for {
		tok := p.peek()
		switch tok.Type {
		case token.AND:
			p.next()
			left = ast.NewAndOp(tok.Pos(), left, p.parseEquality())
		case token.OR:
			p.next()
			left = ast.NewOrOp(tok.Pos(), left, p.parseEquality())
		default:
			return left
		}
	}
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for {
		tok := p.peek()
		switch tok.Type {
		case token.EQ:
			p.next()
			left = ast.NewCmpEq(tok.Pos(), left, p.parseComparison())
		case token.NEQ:
			p.next()
			left = ast.NewCmpNe(tok.Pos(), left, p.parseComparison())
		default:
			return left
		}
	}
}

// parseComparison is nonassoc: at most one comparison operator may appear
// at this level, so unlike the other binary levels there is no loop.
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	tok := p.peek()
	switch tok.Type {
	case token.GE:
		p.next()
		return ast.NewCmpGe(tok.Pos(), left, p.parseAdditive())
	case token.LE:
		p.next()
		return ast.NewCmpLe(tok.Pos(), left, p.parseAdditive())
	case token.GT:
		p.next()
		return ast.NewCmpGt(tok.Pos(), left, p.parseAdditive())
	case token.LT:
		p.next()
		return ast.NewCmpLt(tok.Pos(), left, p.parseAdditive())
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		tok := p.peek()
		switch tok.Type {
		case token.PLUS:
			p.next()
			left = ast.NewSum(tok.Pos(), left, p.parseMultiplicative())
		case token.MINUS:
			p.next()
			left = ast.NewSub(tok.Pos(), left, p.parseMultiplicative())
		default:
			return left
		}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseExponent()
	for {
		tok := p.peek()
		switch tok.Type {
		case token.STAR:
			p.next()
			left = ast.NewMul(tok.Pos(), left, p.parseExponent())
		case token.SLASH:
			p.next()
			left = ast.NewDiv(tok.Pos(), left, p.parseExponent())
		default:
			return left
		}
	}
}

// parseExponent is left-associative: 2^3^2 == (2^3)^2.
func (p *Parser) parseExponent() ast.Expr {
	left := p.parseUnary()
	for p.peek().Type == token.CARET {
		tok := p.next()
		left = ast.NewExp(tok.Pos(), left, p.parseUnary())
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.peek().Type == token.MINUS {
		tok := p.next()
		return ast.NewUMinus(tok.Pos(), p.parseUnary())
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case token.INTNUM:
		p.next()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.fail("malformed integer literal "+tok.Literal, tok)
		}
		return ast.NewIntLit(tok.Pos(), v)
	case token.FLOATNUM:
		p.next()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.fail("malformed float literal "+tok.Literal, tok)
		}
		return ast.NewFloatLit(tok.Pos(), v)
	case token.STRING:
		p.next()
		return ast.NewStringLit(tok.Pos(), unquote(tok.Literal))
	case token.TRUE:
		p.next()
		return ast.NewBoolLit(tok.Pos(), true)
	case token.FALSE:
		p.next()
		return ast.NewBoolLit(tok.Pos(), false)
	case token.IDENT:
		p.next()
		return ast.NewVarRef(tok.Pos(), tok.Literal)
	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(token.RPAREN, "')'")
		return inner
	default:
		p.fail("expected an expression", tok)
		return nil
	}
}

// unquote strips the surrounding double quotes and un-escapes \" to ".
func unquote(lit string) string {
	if len(lit) >= 2 {
		lit = lit[1 : len(lit)-1]
	}
	out := make([]byte, 0, len(lit))
	for i := 0; i < len(lit); i++ {
		if lit[i] == '\\' && i+1 < len(lit) && lit[i+1] == '"' {
			out = append(out, '"')
			i++
			continue
		}
		out = append(out, lit[i])
	}
	return string(out)
}
