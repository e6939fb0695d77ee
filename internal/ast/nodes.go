// Package ast defines MiniLang's abstract syntax tree: the program/block
// structure, the statement and expression node kinds, the scope tree each
// Block owns, and a PrimType lattice the semantic analyzer annotates
// expressions with.
package ast

import (
	"fmt"

	"github.com/minilang/minilangc/internal/token"
)

// Position is a source location, reused directly from the lexer's token
// package so every stage shares one coordinate system.
type Position = token.Position

// Node is implemented by every AST node.
type Node interface {
	Pos() Position
	String() string
}

// Stmt is implemented by every statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression-level node. Type reports the
// PrimType the semantic analyzer resolved for this expression — Unknown
// until the analyzer has run.
type Expr interface {
	Node
	exprNode()
	Type() PrimType
}

// Program is the AST root: a single top-level Block.
type Program struct {
	pos  Position
	Root *Block
}

func (p *Program) Pos() Position  { return p.pos }
func (p *Program) String() string { return "Program" }

// NewProgram constructs a Program rooted at root.
func NewProgram(pos Position, root *Block) *Program {
	return &Program{pos: pos, Root: root}
}

// Block is a brace-delimited statement sequence and owns the Scope that
// names declared directly inside it (and, for a for-loop's body, its
// deferred init/cond/update) are bound in.
type Block struct {
	pos   Position
	Stmts []Stmt
	Scope *Scope
}

func (b *Block) Pos() Position  { return b.pos }
func (b *Block) String() string { return fmt.Sprintf("Block{%d stmts}", len(b.Stmts)) }
func (b *Block) stmtNode()      {}

// NewBlock constructs a Block; its Scope is attached separately once the
// scope-construction pass creates it.
func NewBlock(pos Position, stmts []Stmt) *Block {
	return &Block{pos: pos, Stmts: stmts}
}

// --- declarations ---

// IntDcl declares an int-typed variable, with an optional initializer
// (omitting one leaves the variable uninitialized until first reassigned).
type IntDcl struct {
	pos  Position
	Name string
	Init Expr
}

func (d *IntDcl) Pos() Position  { return d.pos }
func (d *IntDcl) String() string { return fmt.Sprintf("IntDcl(%s)", d.Name) }
func (d *IntDcl) stmtNode()      {}

func NewIntDcl(pos Position, name string, init Expr) *IntDcl {
	return &IntDcl{pos: pos, Name: name, Init: init}
}

// FloatDcl declares a float-typed variable.
type FloatDcl struct {
	pos  Position
	Name string
	Init Expr
}

func (d *FloatDcl) Pos() Position  { return d.pos }
func (d *FloatDcl) String() string { return fmt.Sprintf("FloatDcl(%s)", d.Name) }
func (d *FloatDcl) stmtNode()      {}

func NewFloatDcl(pos Position, name string, init Expr) *FloatDcl {
	return &FloatDcl{pos: pos, Name: name, Init: init}
}

// StringDcl declares a string-typed variable.
type StringDcl struct {
	pos  Position
	Name string
	Init Expr
}

func (d *StringDcl) Pos() Position  { return d.pos }
func (d *StringDcl) String() string { return fmt.Sprintf("StringDcl(%s)", d.Name) }
func (d *StringDcl) stmtNode()      {}

func NewStringDcl(pos Position, name string, init Expr) *StringDcl {
	return &StringDcl{pos: pos, Name: name, Init: init}
}

// BoolDcl declares a bool-typed variable.
type BoolDcl struct {
	pos  Position
	Name string
	Init Expr
}

func (d *BoolDcl) Pos() Position  { return d.pos }
func (d *BoolDcl) String() string { return fmt.Sprintf("BoolDcl(%s)", d.Name) }
func (d *BoolDcl) stmtNode()      {}

func NewBoolDcl(pos Position, name string, init Expr) *BoolDcl {
	return &BoolDcl{pos: pos, Name: name, Init: init}
}

// Reassign assigns a new value to an already-declared variable: `name = value;`.
type Reassign struct {
	pos   Position
	Name  string
	Value Expr
}

func (r *Reassign) Pos() Position  { return r.pos }
func (r *Reassign) String() string { return fmt.Sprintf("Reassign(%s)", r.Name) }
func (r *Reassign) stmtNode()      {}

func NewReassign(pos Position, name string, value Expr) *Reassign {
	return &Reassign{pos: pos, Name: name, Value: value}
}

// Print is the `print expr;` statement.
type Print struct {
	pos   Position
	Value Expr
}

func (p *Print) Pos() Position  { return p.pos }
func (p *Print) String() string { return "Print" }
func (p *Print) stmtNode()      {}

func NewPrint(pos Position, value Expr) *Print {
	return &Print{pos: pos, Value: value}
}

// --- control flow ---

// Elif is one `elif cond { ... }` arm of an IfStatement's chain.
type Elif struct {
	pos  Position
	Cond Expr
	Then *Block
}

func (e *Elif) Pos() Position  { return e.pos }
func (e *Elif) String() string { return "Elif" }

func NewElif(pos Position, cond Expr, then *Block) *Elif {
	return &Elif{pos: pos, Cond: cond, Then: then}
}

// IfStatement is `if cond {...} [elif cond {...}]* [else {...}]?`. The
// arity-varying elif chain and optional else get their own fields rather
// than a generic child vector, since their shapes differ from the
// mandatory if-arm.
type IfStatement struct {
	pos   Position
	Cond  Expr
	Then  *Block
	Elifs []*Elif
	Else  *Block
}

func (s *IfStatement) Pos() Position  { return s.pos }
func (s *IfStatement) String() string { return fmt.Sprintf("IfStatement{%d elifs}", len(s.Elifs)) }
func (s *IfStatement) stmtNode()      {}

func NewIfStatement(pos Position, cond Expr, then *Block, elifs []*Elif, els *Block) *IfStatement {
	return &IfStatement{pos: pos, Cond: cond, Then: then, Elifs: elifs, Else: els}
}

// WhileStatement is `while cond { ... }`.
type WhileStatement struct {
	pos  Position
	Cond Expr
	Body *Block
}

func (w *WhileStatement) Pos() Position  { return w.pos }
func (w *WhileStatement) String() string { return "WhileStatement" }
func (w *WhileStatement) stmtNode()      {}

func NewWhileStatement(pos Position, cond Expr, body *Block) *WhileStatement {
	return &WhileStatement{pos: pos, Cond: cond, Body: body}
}

// ForStatement is `for (init; cond; update) { ... }`. Init is restricted to
// an int declaration and Update to a reassignment, mirroring the original
// grammar's production rule exactly (see DESIGN.md Open Questions).
type ForStatement struct {
	pos    Position
	Init   *IntDcl
	Cond   Expr
	Update *Reassign
	Body   *Block
}

func (f *ForStatement) Pos() Position  { return f.pos }
func (f *ForStatement) String() string { return "ForStatement" }
func (f *ForStatement) stmtNode()      {}

func NewForStatement(pos Position, init *IntDcl, cond Expr, update *Reassign, body *Block) *ForStatement {
	return &ForStatement{pos: pos, Init: init, Cond: cond, Update: update, Body: body}
}

// --- literals and references ---

type IntLit struct {
	pos   Position
	Value int64
}

func (l *IntLit) Pos() Position   { return l.pos }
func (l *IntLit) String() string  { return fmt.Sprintf("IntLit(%d)", l.Value) }
func (l *IntLit) exprNode()       {}
func (l *IntLit) Type() PrimType  { return Int }

func NewIntLit(pos Position, value int64) *IntLit { return &IntLit{pos: pos, Value: value} }

type FloatLit struct {
	pos   Position
	Value float64
}

func (l *FloatLit) Pos() Position  { return l.pos }
func (l *FloatLit) String() string { return fmt.Sprintf("FloatLit(%g)", l.Value) }
func (l *FloatLit) exprNode()      {}
func (l *FloatLit) Type() PrimType { return Float }

func NewFloatLit(pos Position, value float64) *FloatLit { return &FloatLit{pos: pos, Value: value} }

type StringLit struct {
	pos   Position
	Value string
}

func (l *StringLit) Pos() Position  { return l.pos }
func (l *StringLit) String() string { return fmt.Sprintf("StringLit(%q)", l.Value) }
func (l *StringLit) exprNode()      {}
func (l *StringLit) Type() PrimType { return String }

func NewStringLit(pos Position, value string) *StringLit { return &StringLit{pos: pos, Value: value} }

type BoolLit struct {
	pos   Position
	Value bool
}

func (l *BoolLit) Pos() Position  { return l.pos }
func (l *BoolLit) String() string { return fmt.Sprintf("BoolLit(%t)", l.Value) }
func (l *BoolLit) exprNode()      {}
func (l *BoolLit) Type() PrimType { return Bool }

func NewBoolLit(pos Position, value bool) *BoolLit { return &BoolLit{pos: pos, Value: value} }

// VarRef is a use of a previously-declared variable. Typ and Value are
// filled in by the semantic analyzer during name resolution.
type VarRef struct {
	pos   Position
	Name  string
	Typ   PrimType
	Value any
}

func (v *VarRef) Pos() Position  { return v.pos }
func (v *VarRef) String() string { return fmt.Sprintf("VarRef(%s)", v.Name) }
func (v *VarRef) exprNode()      {}
func (v *VarRef) Type() PrimType { return v.Typ }

func NewVarRef(pos Position, name string) *VarRef { return &VarRef{pos: pos, Name: name} }

// --- unary operators ---

// UMinus negates its operand; rejects Bool and String at type-check time.
type UMinus struct {
	pos     Position
	Operand Expr
	Typ     PrimType
	Value   any
}

func (u *UMinus) Pos() Position  { return u.pos }
func (u *UMinus) String() string { return "UMinus" }
func (u *UMinus) exprNode()      {}
func (u *UMinus) Type() PrimType { return u.Typ }

func NewUMinus(pos Position, operand Expr) *UMinus { return &UMinus{pos: pos, Operand: operand} }

// IntToFloat is inserted by the semantic analyzer wherever an Int operand
// must widen to Float to match a Float-typed sibling.
type IntToFloat struct {
	pos     Position
	Operand Expr
	Value   any
}

func (c *IntToFloat) Pos() Position  { return c.pos }
func (c *IntToFloat) String() string { return "IntToFloat" }
func (c *IntToFloat) exprNode()      {}
func (c *IntToFloat) Type() PrimType { return Float }

func NewIntToFloat(pos Position, operand Expr) *IntToFloat {
	return &IntToFloat{pos: pos, Operand: operand}
}

// --- binary operators ---

// binOp is the shared field set every binary-operator node embeds. Each
// operator still gets its own named Go type (Sum, Sub, CmpEq, ...) per
// kind rather than one generic BinaryExpr, so the sema/TAC stages can
// switch on concrete type instead of carrying an operator-string field.
type binOp struct {
	pos   Position
	Left  Expr
	Right Expr
	Typ   PrimType
	Value any
}

func (b *binOp) Pos() Position  { return b.pos }
func (b *binOp) exprNode()      {}
func (b *binOp) Type() PrimType { return b.Typ }

func newBinOp(pos Position, left, right Expr) binOp {
	return binOp{pos: pos, Left: left, Right: right}
}

// Sum is `+`: numeric addition, or stringifying concatenation if either
// operand is String.
type Sum struct{ binOp }

func (s *Sum) String() string { return "Sum" }
func NewSum(pos Position, left, right Expr) *Sum {
	return &Sum{newBinOp(pos, left, right)}
}

// Sub is `-`.
type Sub struct{ binOp }

func (s *Sub) String() string { return "Sub" }
func NewSub(pos Position, left, right Expr) *Sub {
	return &Sub{newBinOp(pos, left, right)}
}

// Mul is `*`.
type Mul struct{ binOp }

func (m *Mul) String() string { return "Mul" }
func NewMul(pos Position, left, right Expr) *Mul {
	return &Mul{newBinOp(pos, left, right)}
}

// Div is `/`; division by a literal zero is a semantic error, and an
// Int/Int quotient that isn't integral becomes Float (see DESIGN.md Open
// Questions).
type Div struct{ binOp }

func (d *Div) String() string { return "Div" }
func NewDiv(pos Position, left, right Expr) *Div {
	return &Div{newBinOp(pos, left, right)}
}

// Exp is `^`; a negative exponent forces a Float result even for two Int
// operands.
type Exp struct{ binOp }

func (e *Exp) String() string { return "Exp" }
func NewExp(pos Position, left, right Expr) *Exp {
	return &Exp{newBinOp(pos, left, right)}
}

// CmpEq is `==`.
type CmpEq struct{ binOp }

func (c *CmpEq) String() string { return "CmpEq" }
func NewCmpEq(pos Position, left, right Expr) *CmpEq {
	return &CmpEq{newBinOp(pos, left, right)}
}

// CmpNe is `!=`.
type CmpNe struct{ binOp }

func (c *CmpNe) String() string { return "CmpNe" }
func NewCmpNe(pos Position, left, right Expr) *CmpNe {
	return &CmpNe{newBinOp(pos, left, right)}
}

// CmpGe is `>=`.
type CmpGe struct{ binOp }

func (c *CmpGe) String() string { return "CmpGe" }
func NewCmpGe(pos Position, left, right Expr) *CmpGe {
	return &CmpGe{newBinOp(pos, left, right)}
}

// CmpLe is `<=`.
type CmpLe struct{ binOp }

func (c *CmpLe) String() string { return "CmpLe" }
func NewCmpLe(pos Position, left, right Expr) *CmpLe {
	return &CmpLe{newBinOp(pos, left, right)}
}

// CmpGt is `>`.
type CmpGt struct{ binOp }

func (c *CmpGt) String() string { return "CmpGt" }
func NewCmpGt(pos Position, left, right Expr) *CmpGt {
	return &CmpGt{newBinOp(pos, left, right)}
}

// CmpLt is `<`.
type CmpLt struct{ binOp }

func (c *CmpLt) String() string { return "CmpLt" }
func NewCmpLt(pos Position, left, right Expr) *CmpLt {
	return &CmpLt{newBinOp(pos, left, right)}
}

// AndOp is `and`: operands must be Bool or Int (coerced via 0/nonzero),
// and at least one of them must be Bool.
type AndOp struct{ binOp }

func (a *AndOp) String() string { return "AndOp" }
func NewAndOp(pos Position, left, right Expr) *AndOp {
	return &AndOp{newBinOp(pos, left, right)}
}

// OrOp is `or`.
type OrOp struct{ binOp }

func (o *OrOp) String() string { return "OrOp" }
func NewOrOp(pos Position, left, right Expr) *OrOp {
	return &OrOp{newBinOp(pos, left, right)}
}
