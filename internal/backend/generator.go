// Package backend lowers a type-checked MiniLang AST into three-address
// code. It owns the two monotonic counters (temporaries and labels) that
// the rest of the pipeline stays free of: a single Generator belongs to
// exactly one compilation, and a second run needs a fresh instance.
package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minilang/minilangc/internal/ast"
	"github.com/minilang/minilangc/internal/ir"
)

// Generator walks a Program already accepted by the semantic analyzer
// and produces its TAC instruction sequence.
type Generator struct {
	tempCount  int
	labelCount int
}

// NewGenerator constructs a fresh Generator with its counters at zero.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) newTemp() string {
	t := fmt.Sprintf("t%d", g.tempCount)
	g.tempCount++
	return t
}

func (g *Generator) newLabel() string {
	l := fmt.Sprintf("L%d", g.labelCount)
	g.labelCount++
	return l
}

// Generate lowers prog into a TAC program.
func (g *Generator) Generate(prog *ast.Program) *ir.Program {
	return &ir.Program{Instructions: g.genBlock(prog.Root)}
}

// GenStmt lowers a single statement, advancing this Generator's counters
// same as Generate would. Used by the REPL, which keeps one Generator
// alive for a whole session instead of creating one per compilation.
func (g *Generator) GenStmt(stmt ast.Stmt) []string {
	lines := g.genStmt(stmt)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func (g *Generator) genBlock(b *ast.Block) []ir.Instruction {
	var out []ir.Instruction
	for _, s := range b.Stmts {
		out = append(out, g.genStmt(s)...)
	}
	return out
}

func (g *Generator) genStmt(stmt ast.Stmt) []ir.Instruction {
	switch s := stmt.(type) {
	case *ast.IntDcl:
		return g.genDecl("int", s.Name, s.Init)
	case *ast.FloatDcl:
		return g.genDecl("float", s.Name, s.Init)
	case *ast.StringDcl:
		return g.genDecl("string", s.Name, s.Init)
	case *ast.BoolDcl:
		return g.genDecl("bool", s.Name, s.Init)
	case *ast.Reassign:
		v, lines, _ := g.genExpr(s.Value)
		return append(lines, ir.Assign{Name: s.Name, Operand: v})
	case *ast.Print:
		v, lines, _ := g.genExpr(s.Value)
		return append(lines, ir.Print{Operand: v})
	case *ast.IfStatement:
		return g.genIf(s)
	case *ast.WhileStatement:
		return g.genWhile(s)
	case *ast.ForStatement:
		return g.genFor(s)
	default:
		panic(fmt.Sprintf("backend: unhandled statement kind %T", stmt))
	}
}

// genDecl lowers a declaration: any temporaries the initializer needs
// are emitted before the `declare` line, which itself precedes the
// assignment — matching the reference generator's ordering even though
// it reads as declare-then-assign rather than assign-then-declare.
func (g *Generator) genDecl(typeName, name string, init ast.Expr) []ir.Instruction {
	if init == nil {
		return []ir.Instruction{ir.Declare{Type: typeName, Name: name}}
	}
	v, lines, _ := g.genExpr(init)
	out := append(lines, ir.Declare{Type: typeName, Name: name})
	out = append(out, ir.Assign{Name: name, Operand: v})
	return out
}

// genExpr lowers an expression to an operand, returning any instructions
// needed to compute it and whether the operand is a bare literal (as
// opposed to a name or a temporary already holding a computed value).
func (g *Generator) genExpr(e ast.Expr) (string, []ir.Instruction, bool) {
	switch n := e.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(n.Value, 10), nil, true
	case *ast.FloatLit:
		return formatFloat(n.Value), nil, true
	case *ast.StringLit:
		return quoteString(n.Value), nil, true
	case *ast.BoolLit:
		return formatBool(n.Value), nil, true
	case *ast.VarRef:
		return n.Name, nil, false
	case *ast.IntToFloat:
		v, lines, _ := g.genExpr(n.Operand)
		t := g.newTemp()
		lines = append(lines, ir.ToFloat{Temp: t, Operand: v})
		return t, lines, false
	case *ast.UMinus:
		v, lines, _ := g.genExpr(n.Operand)
		t := g.newTemp()
		lines = append(lines, ir.Neg{Temp: t, Operand: v})
		return t, lines, false
	case *ast.Sum:
		return g.genBinOp(n.Left, n.Right, "+")
	case *ast.Sub:
		return g.genBinOp(n.Left, n.Right, "-")
	case *ast.Mul:
		return g.genBinOp(n.Left, n.Right, "*")
	case *ast.Div:
		return g.genBinOp(n.Left, n.Right, "/")
	case *ast.Exp:
		return g.genBinOp(n.Left, n.Right, "^")
	case *ast.CmpEq:
		return g.genBinOp(n.Left, n.Right, "==")
	case *ast.CmpNe:
		return g.genBinOp(n.Left, n.Right, "!=")
	case *ast.CmpGe:
		return g.genBinOp(n.Left, n.Right, ">=")
	case *ast.CmpLe:
		return g.genBinOp(n.Left, n.Right, "<=")
	case *ast.CmpGt:
		return g.genBinOp(n.Left, n.Right, ">")
	case *ast.CmpLt:
		return g.genBinOp(n.Left, n.Right, "<")
	case *ast.AndOp:
		return g.genBinOp(n.Left, n.Right, "and")
	case *ast.OrOp:
		return g.genBinOp(n.Left, n.Right, "or")
	default:
		panic(fmt.Sprintf("backend: unhandled expression kind %T", e))
	}
}

// genBinOp lowers the two children left-to-right before allocating its
// own temporary, so nested expressions number their temporaries in a
// deterministic depth-first, left-to-right order.
func (g *Generator) genBinOp(left, right ast.Expr, op string) (string, []ir.Instruction, bool) {
	l, llines, _ := g.genExpr(left)
	r, rlines, _ := g.genExpr(right)
	t := g.newTemp()
	lines := append(llines, rlines...)
	lines = append(lines, ir.BinOp{Temp: t, Op: op, Left: l, Right: r})
	return t, lines, false
}

// genCondition lowers an if/while/for condition. A comparison, logical
// op or bare variable reference already yields a named operand; any
// other producible value (a literal) is wrapped in a fresh assignment
// first so the `not` instruction that follows always has a named
// target.
func (g *Generator) genCondition(cond ast.Expr) (string, []ir.Instruction) {
	v, lines, isLiteral := g.genExpr(cond)
	if isLiteral {
		t := g.newTemp()
		lines = append(lines, ir.Assign{Name: t, Operand: v})
		return t, lines
	}
	return v, lines
}

type condArm struct {
	cond ast.Expr
	body *ast.Block
}

// genIf lowers if/elif/else. Each arm is fully resolved — condition,
// negation, skip label, body — before moving to the next; a trailing
// GOTO to the shared end label is only emitted when more than one arm
// exists, and the end label itself is only emitted then too: a bare
// `if` with no elif/else has its skip label double as the end of the
// statement, with no separate LABEL/GOTO pair.
func (g *Generator) genIf(s *ast.IfStatement) []ir.Instruction {
	arms := []condArm{{s.Cond, s.Then}}
	for _, e := range s.Elifs {
		arms = append(arms, condArm{e.Cond, e.Then})
	}
	hasElse := s.Else != nil
	multi := len(arms) > 1 || hasElse

	var lend string
	if multi {
		lend = g.newLabel()
	}

	var out []ir.Instruction
	for _, a := range arms {
		condVar, condLines := g.genCondition(a.cond)
		notT := g.newTemp()
		skip := g.newLabel()

		out = append(out, condLines...)
		out = append(out, ir.Not{Temp: notT, Operand: condVar})
		out = append(out, ir.IfGoto{Cond: notT, Label: skip})
		out = append(out, g.genBlock(a.body)...)
		if multi {
			out = append(out, ir.Goto{Label: lend})
		}
		out = append(out, ir.Label{Name: skip})
	}
	if hasElse {
		out = append(out, g.genBlock(s.Else)...)
	}
	if multi {
		out = append(out, ir.Label{Name: lend})
	}
	return out
}

// genWhile lowers a while loop. The condition's own operand is resolved
// before the loop's start label is allocated; the end label and the
// loop's `not` temporary are allocated only after the body, so a
// condition that is itself a complex expression numbers its temporaries
// ahead of anything the body introduces.
func (g *Generator) genWhile(s *ast.WhileStatement) []ir.Instruction {
	condVar, condLines := g.genCondition(s.Cond)
	lstart := g.newLabel()
	body := g.genBlock(s.Body)
	lend := g.newLabel()
	notT := g.newTemp()

	out := []ir.Instruction{ir.Label{Name: lstart}}
	out = append(out, condLines...)
	out = append(out, ir.Not{Temp: notT, Operand: condVar})
	out = append(out, ir.IfGoto{Cond: notT, Label: lend})
	out = append(out, body...)
	out = append(out, ir.Goto{Label: lstart})
	out = append(out, ir.Label{Name: lend})
	return out
}

// genFor lowers a for loop. Allocation order: start label first, then
// init, condition and update (update ahead of the body, even though its
// instructions are spliced in after the body in the final output), then
// the body, and finally, as in while, the end label and the loop's `not`
// temporary.
func (g *Generator) genFor(s *ast.ForStatement) []ir.Instruction {
	lstart := g.newLabel()
	initLines := g.genStmt(s.Init)
	condVar, condLines := g.genCondition(s.Cond)
	updateLines := g.genStmt(s.Update)
	body := g.genBlock(s.Body)
	lend := g.newLabel()
	notT := g.newTemp()

	out := append([]ir.Instruction{}, initLines...)
	out = append(out, ir.Label{Name: lstart})
	out = append(out, condLines...)
	out = append(out, ir.Not{Temp: notT, Operand: condVar})
	out = append(out, ir.IfGoto{Cond: notT, Label: lend})
	out = append(out, body...)
	out = append(out, updateLines...)
	out = append(out, ir.Goto{Label: lstart})
	out = append(out, ir.Label{Name: lend})
	return out
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func quoteString(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// formatFloat renders a float in its natural decimal form, adding a
// decimal point when the value is integral (2 -> "2.0"), since a bare
// "2" on a Float-typed line would be indistinguishable from an Int.
// Values rendered in exponent form (e.g. "1e+21") are left as they are.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
