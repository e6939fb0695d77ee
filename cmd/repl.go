package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minilang/minilangc/internal/ast"
	"github.com/minilang/minilangc/internal/backend"
	"github.com/minilang/minilangc/internal/lexer"
	"github.com/minilang/minilangc/internal/parser"
	"github.com/minilang/minilangc/internal/sema"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively lex, parse, check and lower one statement at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl()
			return nil
		},
	}
}

// replSession holds the state reused across lines: the running scope, the
// checker, and the generator whose temp/label counters keep advancing for
// the whole session. Only a fresh file-level compilation gets a fresh
// Generator — a REPL session is a single ongoing compilation.
type replSession struct {
	root    *ast.Block
	checker *sema.Checker
	gen     *backend.Generator
}

func newReplSession() *replSession {
	root := ast.NewBlock(ast.Position{}, nil)
	root.Scope = ast.NewScope(nil)
	return &replSession{root: root, checker: sema.NewChecker(), gen: backend.NewGenerator()}
}

func runRepl() {
	greenColor := color.New(color.FgGreen)
	cyanColor := color.New(color.FgCyan)
	redColor := color.New(color.FgRed)

	cyanColor.Println("minilangc repl — one statement per line, ';' terminated; 'exit' to quit")

	rl, err := readline.New("minilang> ")
	if err != nil {
		redColor.Printf("readline: %v\n", err)
		return
	}
	defer rl.Close()

	sess := newReplSession()
	for {
		line, err := rl.Readline()
		if err != nil {
			greenColor.Println("bye")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			greenColor.Println("bye")
			return
		}
		rl.SaveHistory(line)
		sess.eval(line, redColor, greenColor)
	}
}

// eval lexes and parses one statement as a standalone program (reusing
// the session's long-lived scope as the parse's enclosing scope), then
// checks and lowers it against the session's running Checker/Generator
// before appending it to the session's block so later lines see it.
func (s *replSession) eval(line string, errColor, okColor *color.Color) {
	toks, err := lexer.New(line).Lex()
	if err != nil {
		errColor.Printf("lex error: %v\n", err)
		return
	}
	stmt, err := parser.NewParser(toks).ParseStatement(s.root.Scope)
	if err != nil {
		errColor.Printf("parse error: %v\n", err)
		return
	}
	if err := s.checker.CheckStmt(stmt, s.root.Scope); err != nil {
		errColor.Printf("semantic error: %v\n", err)
		return
	}
	s.root.Stmts = append(s.root.Stmts, stmt)
	for _, l := range s.gen.GenStmt(stmt) {
		okColor.Println(l)
	}
}
