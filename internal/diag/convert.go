package diag

import (
	"strings"

	"github.com/minilang/minilangc/internal/lexer"
	"github.com/minilang/minilangc/internal/parser"
	"github.com/minilang/minilangc/internal/sema"
)

// sourceLine returns the 1-indexed line n of src, or "" if out of range.
func sourceLine(src string, n int) string {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FromStageError classifies err into the diag.Error it originated as,
// attaching the offending source line when the stage reports a line
// number. Stage code never imports diag itself — this keeps the lexer,
// parser and checker free of any driver-facing concern — so the driver
// calls this once per pipeline stage to normalize whatever it got back.
func FromStageError(err error, src string) *Error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *lexer.Error:
		return &Error{Kind: Lex, Line: e.Line, Msg: e.Error(), Source: sourceLine(src, e.Line)}
	case parser.ParseError:
		return &Error{Kind: Parse, Line: e.Pos.Line, Col: e.Pos.Col, Msg: e.Msg, Source: sourceLine(src, e.Pos.Line)}
	case sema.SemanticError:
		return &Error{Kind: Semantic, Line: e.Pos.Line, Col: e.Pos.Col, Msg: e.Msg, Source: sourceLine(src, e.Pos.Line)}
	default:
		return &Error{Kind: Codegen, Msg: err.Error()}
	}
}
