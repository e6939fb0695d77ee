// Package ir defines MiniLang's three-address code: a flat sequence of
// instructions, one per textual line, that the TAC generator in
// internal/backend emits from a type-checked AST. Each instruction type
// renders itself to exactly the textual form the driver writes out, so
// this package is both the in-memory IR and the source of truth for the
// TAC format.
package ir

import "fmt"

// Instruction is one line of three-address code.
type Instruction interface {
	String() string
}

// Declare is `declare<type> NAME`, introducing a variable before its
// first assignment.
type Declare struct {
	Type string // "int", "float", "string" or "bool"
	Name string
}

func (d Declare) String() string { return fmt.Sprintf("declare%s %s", d.Type, d.Name) }

// Assign is `NAME = OPERAND`: storing an already-computed operand into a
// declared variable or temporary.
type Assign struct {
	Name    string
	Operand string
}

func (a Assign) String() string { return fmt.Sprintf("%s = %s", a.Name, a.Operand) }

// BinOp is `TEMP = L OP R`, one of the 13 binary operators.
type BinOp struct {
	Temp  string
	Op    string
	Left  string
	Right string
}

func (b BinOp) String() string { return fmt.Sprintf("%s = %s %s %s", b.Temp, b.Left, b.Op, b.Right) }

// Neg is `TEMP = -OPERAND`, unary minus.
type Neg struct {
	Temp    string
	Operand string
}

func (n Neg) String() string { return fmt.Sprintf("%s = -%s", n.Temp, n.Operand) }

// ToFloat is `TEMP = toFloat OPERAND`, the Int->Float widening coercion.
type ToFloat struct {
	Temp    string
	Operand string
}

func (t ToFloat) String() string { return fmt.Sprintf("%s = toFloat %s", t.Temp, t.Operand) }

// Not is `TEMP = not OPERAND`, synthesized only for if/while/for control
// flow; MiniLang has no source-level boolean-negation operator.
type Not struct {
	Temp    string
	Operand string
}

func (n Not) String() string { return fmt.Sprintf("%s = not %s", n.Temp, n.Operand) }

// Print is `print OPERAND`.
type Print struct {
	Operand string
}

func (p Print) String() string { return fmt.Sprintf("print %s", p.Operand) }

// Label is `LABEL L<n>`, a jump target.
type Label struct {
	Name string
}

func (l Label) String() string { return fmt.Sprintf("LABEL %s", l.Name) }

// Goto is `GOTO L<n>`, an unconditional jump.
type Goto struct {
	Label string
}

func (g Goto) String() string { return fmt.Sprintf("GOTO %s", g.Label) }

// IfGoto is `TEMP IFGOTO L<n>`: jump to Label when Cond is truthy.
type IfGoto struct {
	Cond  string
	Label string
}

func (i IfGoto) String() string { return fmt.Sprintf("%s IFGOTO %s", i.Cond, i.Label) }

// Program is the full instruction sequence produced for one compilation.
type Program struct {
	Instructions []Instruction
}

// Lines renders every instruction to its textual form, one per line, in
// the exact order the driver writes them out.
func (p *Program) Lines() []string {
	lines := make([]string, len(p.Instructions))
	for i, instr := range p.Instructions {
		lines[i] = instr.String()
	}
	return lines
}
