// Package parser implements a recursive-descent parser for MiniLang,
// producing an ast.Program and then, in a second walk over the finished
// AST, the scope tree each Block owns. The grammar and precedence ladder are grounded on the
// language's original PLY grammar; see DESIGN.md.
//
// Parsing aborts at the first syntax error: no partial AST is returned,
// matching the pipeline's single-error-aborts contract. Internally this
// is implemented with a bail-out panic caught at the top-level entry
// point, the common idiomatic-Go shape for a hand-written descent parser
// that must unwind arbitrarily deep without threading an error return
// through every production.
package parser

import (
	"fmt"

	"github.com/minilang/minilangc/internal/ast"
	"github.com/minilang/minilangc/internal/token"
)

// ParseError is the single error a parse run can fail with.
type ParseError struct {
	Msg string
	Pos token.Position
}

func (pe ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", pe.Pos.Line, pe.Pos.Col, pe.Msg)
}

func (pe ParseError) String() string { return pe.Error() }

// bailout is the internal panic payload used to unwind to ParseFile or
// ParseStatement, which recover it and return its ParseError.
type bailout struct{ err ParseError }

// Parser holds the token cursor for one parse run: a finished token slice
// (as produced by the lexer) plus an index of the next unconsumed token.
// Past the end of input, peek/next keep reporting an EOF token rather than
// panicking, so callers never need a bounds check of their own.
type Parser struct {
	tokens []token.Token
	pos    int
}

// NewParser constructs a Parser over a finished token slice, cursor
// starting at index 0.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// peek returns the current token without advancing.
func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

// next returns the current token and advances the cursor.
func (p *Parser) next() token.Token {
	tok := p.peek()
	p.pos++
	return tok
}

// isEOF reports whether peek would return EOF.
func (p *Parser) isEOF() bool {
	return p.peek().Type == token.EOF
}

// curPos returns the position of the token peek would return.
func (p *Parser) curPos() token.Position {
	return p.peek().Pos()
}

// ParseFile parses the whole token stream, building the AST and its
// scope tree together. On the first syntax error, it returns (nil, err)
// with no partial AST.
func (p *Parser) ParseFile() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()
	return p.ParseProgram(), nil
}

// ParseStatement parses a single statement from the token stream and
// binds it into scope (an already-running scope from a prior statement,
// for the REPL's one-line-at-a-time mode), instead of building a fresh
// Program and root scope the way ParseFile does.
func (p *Parser) ParseStatement(scope *ast.Scope) (stmt ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			stmt, err = nil, b.err
		}
	}()
	s := p.parseStmt()
	buildStmtScope(s, scope)
	return s, nil
}

// fail aborts the current parse with msg at tok's position.
func (p *Parser) fail(msg string, tok token.Token) {
	panic(bailout{ParseError{Msg: msg, Pos: tok.Pos()}})
}

// expect consumes the current token if it matches typ, else aborts the
// parse with a descriptive error.
func (p *Parser) expect(typ token.Kind, desc string) token.Token {
	tok := p.peek()
	if tok.Type != typ {
		p.fail(fmt.Sprintf("expected %s, got %s %q", desc, tok.Type, tok.Literal), tok)
	}
	return p.next()
}
