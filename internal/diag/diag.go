// Package diag unifies the four stages' distinct error kinds
// (lexer.Error, parser.ParseError, sema.SemanticError, and any other
// error, classed as codegen) into one structured Error the driver can
// format, highlight, and batch.
package diag

import "fmt"

// Kind identifies which pipeline stage produced an Error.
type Kind int

const (
	Lex Kind = iota
	Parse
	Semantic
	Codegen
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Semantic:
		return "semantic"
	case Codegen:
		return "codegen"
	default:
		return "error"
	}
}

// Error is a structured pipeline failure: which stage produced it, where
// in the source it occurred, and the message. Source is the offending
// line's text, if known, so the driver can render a caret under it.
type Error struct {
	Kind   Kind
	Line   int
	Col    int
	Msg    string
	Source string
	File   string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s error at %d:%d: %s", e.File, e.Kind, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s error at %d:%d: %s", e.Kind, e.Line, e.Col, e.Msg)
}

// WithFile returns a copy of e tagged with the source file it came from,
// used when the driver aggregates failures across a batch of files.
func (e *Error) WithFile(file string) *Error {
	cp := *e
	cp.File = file
	return &cp
}
