package sema_test

import (
	"testing"

	"github.com/minilang/minilangc/internal/lexer"
	"github.com/minilang/minilangc/internal/parser"
	"github.com/minilang/minilangc/internal/sema"
)

// runSource lexes and parses src, then runs it through the checker,
// returning the first error from whichever stage fails (if any).
func runSource(src string) error {
	toks, err := lexer.New(src).Lex()
	if err != nil {
		return err
	}
	prog, err := parser.NewParser(toks).ParseFile()
	if err != nil {
		return err
	}
	return sema.NewChecker().Check(prog)
}

func TestSemaPositivePrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"arithmetic with widening", `float x = 1; int y = 2; float z = x + y;`},
		{"string concatenation", `string s = "count: " + 3;`},
		{"comparison chain across ifs", `int x = 5; if x > 3 { print x; } elif x == 3 { print x; } else { print x; }`},
		{"while loop", `int i = 0; while i < 5 { i = i + 1; }`},
		{"for loop", `for (int i = 0; i < 5; i = i + 1) { print i; }`},
		{"logical mix", `bool b = true and 1 or false;`},
		{"nested expressions", `int x = (1 + 2) * (3 - 1) / 2;`},
		{"unary and exponent", `int x = -2 ^ 2;`},
		{"equality allows bool vs int", `bool b = true == 1;`},
		{"equality allows bool vs string", `bool b = true == "x";`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runSource(tt.src); err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestSemaNegativePrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"undeclared variable", `print y;`},
		{"reassign before declare", `y = 1;`},
		{"shadowing across nested scope", `int x = 1; if true { int x = 2; }`},
		{"type mismatch on decl", `int x = "hello";`},
		{"string arithmetic", `int x = "a" * 2;`},
		{"logical two ints", `bool b = 1 and 2;`},
		{"comparison across incompatible types", `bool b = "x" == 1;`},
		{"division by zero", `int x = 1/0;`},
		{"inexact int division into int decl", `int x = 7/2;`},
		{"loop variable escapes its scope", `for (int i = 0; i < 3; i = i + 1) { } print i;`},
		{"use before initialization", `int x; print x;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runSource(tt.src); err == nil {
				t.Errorf("expected an error for %q, got none", tt.src)
			}
		})
	}
}
