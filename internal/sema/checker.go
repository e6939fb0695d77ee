// Package sema implements MiniLang's semantic analyzer: name resolution,
// type checking with implicit Int->Float widening, constant folding, and
// division-by-zero detection. It walks the AST in place, annotating each
// expression's Typ/Value fields and inserting IntToFloat coercion nodes
// wherever a Float-typed sibling forces an Int operand to widen.
package sema

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/minilang/minilangc/internal/ast"
)

// SemanticError is the single error kind a Check run can fail with.
type SemanticError struct {
	Msg string
	Pos ast.Position
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("semantic error at %d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// Checker walks a parsed Program and resolves, type-checks, coerces and
// folds every expression. It aborts at the first error found, matching
// the rest of the pipeline's single-error-aborts contract.
type Checker struct {
	err error
}

// NewChecker constructs a fresh Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check analyzes prog in place and returns the first semantic error found,
// or nil if the program is well-typed.
func (c *Checker) Check(prog *ast.Program) error {
	c.checkBlock(prog.Root)
	return c.err
}

// CheckStmt type-checks a single statement against scope and returns its
// error, if any, without leaving the Checker permanently wedged — unlike
// Check's whole-program pass, a REPL session reuses one Checker across
// many independently-submitted lines, and one line's error must not
// silently short-circuit every later one.
func (c *Checker) CheckStmt(stmt ast.Stmt, scope *ast.Scope) error {
	c.err = nil
	c.checkStmt(stmt, scope)
	return c.err
}

func (c *Checker) failed() bool { return c.err != nil }

func (c *Checker) fail(msg string, pos ast.Position) {
	if c.err == nil {
		c.err = SemanticError{Msg: msg, Pos: pos}
	}
}

func (c *Checker) checkBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		if c.failed() {
			return
		}
		c.checkStmt(s, b.Scope)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt, scope *ast.Scope) {
	switch s := stmt.(type) {
	case *ast.IntDcl:
		c.checkDecl(scope, s.Name, ast.Int, &s.Init)
	case *ast.FloatDcl:
		c.checkDecl(scope, s.Name, ast.Float, &s.Init)
	case *ast.StringDcl:
		c.checkDecl(scope, s.Name, ast.String, &s.Init)
	case *ast.BoolDcl:
		c.checkDecl(scope, s.Name, ast.Bool, &s.Init)
	case *ast.Reassign:
		c.checkReassign(scope, s)
	case *ast.Print:
		c.checkExpr(s.Value, scope)
	case *ast.IfStatement:
		c.checkCondition(s.Cond, scope)
		if c.failed() {
			return
		}
		c.checkBlock(s.Then)
		for _, e := range s.Elifs {
			if c.failed() {
				return
			}
			c.checkCondition(e.Cond, scope)
			if c.failed() {
				return
			}
			c.checkBlock(e.Then)
		}
		if !c.failed() && s.Else != nil {
			c.checkBlock(s.Else)
		}
	case *ast.WhileStatement:
		c.checkCondition(s.Cond, scope)
		if c.failed() {
			return
		}
		c.checkBlock(s.Body)
	case *ast.ForStatement:
		c.checkForStatement(s)
	default:
		c.fail(fmt.Sprintf("internal: unhandled statement kind %T", stmt), stmt.Pos())
	}
}

// checkCondition requires an if/while/for condition to be Bool, rejecting
// a VarRef of any other type (the parser's shape check already limits the
// other allowed condition kinds to Bool-producing ones).
func (c *Checker) checkCondition(cond ast.Expr, scope *ast.Scope) {
	t, _, _ := c.checkExpr(cond, scope)
	if c.failed() {
		return
	}
	if t != ast.Bool {
		c.fail(fmt.Sprintf("condition must be bool, got %s", t), cond.Pos())
	}
}

// checkDecl resolves a declaration's optional initializer against declType,
// inserting an IntToFloat coercion if needed, and seeds the variable's
// scope symbol with the folded constant value (if any).
func (c *Checker) checkDecl(scope *ast.Scope, name string, declType ast.PrimType, init *ast.Expr) {
	sym := scope.Table[name]
	if *init == nil {
		return
	}
	newInit, val, _ := c.resolveInto(scope, declType, *init)
	if c.failed() {
		return
	}
	*init = newInit
	sym.Value = val
	sym.Initialized = true
}

// checkReassign resolves a reassignment's RHS against the variable's
// already-declared type and updates its folded value. The original
// compiler this language is modeled on never folds REASSIGN targets
// (REASSIGN isn't in its list of foldable declaration kinds); MiniLang
// fixes that gap rather than reproducing it, since leaving stale folded
// values around after a reassignment would make later constant folding
// silently wrong.
func (c *Checker) checkReassign(scope *ast.Scope, r *ast.Reassign) {
	sym, _ := scope.Lookup(r.Name)
	newVal, val, _ := c.resolveInto(scope, sym.Type, r.Value)
	if c.failed() {
		return
	}
	r.Value = newVal
	sym.Value = val
	sym.Initialized = true
}

// checkForStatement type-checks the init/cond/update triple against the
// loop body's own scope, where the parser bound them, then the body.
func (c *Checker) checkForStatement(f *ast.ForStatement) {
	bodyScope := f.Body.Scope

	c.checkDecl(bodyScope, f.Init.Name, ast.Int, &f.Init.Init)
	if c.failed() {
		return
	}

	c.checkCondition(f.Cond, bodyScope)
	if c.failed() {
		return
	}

	c.checkReassign(bodyScope, f.Update)
	if c.failed() {
		return
	}

	c.checkBlock(f.Body)
}

// resolveInto type-checks init, and if its type differs from declType by
// exactly an Int->Float widen, wraps it in an IntToFloat node. Any other
// mismatch is a type error.
func (c *Checker) resolveInto(scope *ast.Scope, declType ast.PrimType, init ast.Expr) (ast.Expr, any, bool) {
	t, v, isConst := c.checkExpr(init, scope)
	if c.failed() {
		return init, nil, false
	}
	if t == declType {
		return init, v, isConst
	}
	if declType == ast.Float && t == ast.Int {
		wrapped := ast.NewIntToFloat(init.Pos(), init)
		var fv any
		if v != nil {
			fv = float64(v.(int64))
		}
		wrapped.Value = fv
		return wrapped, fv, isConst
	}
	c.fail(fmt.Sprintf("cannot assign %s value to %s variable", t, declType), init.Pos())
	return init, nil, false
}

// checkExpr type-checks e, folds it to a constant value when possible, and
// returns its resolved type, folded value (nil if not constant), and
// whether it folded. It also mutates e in place: Typ/Value fields are set
// and Int operands needing to widen to Float are wrapped in IntToFloat.
func (c *Checker) checkExpr(e ast.Expr, scope *ast.Scope) (ast.PrimType, any, bool) {
	if c.failed() {
		return ast.Unknown, nil, false
	}
	switch n := e.(type) {
	case *ast.IntLit:
		return ast.Int, n.Value, true
	case *ast.FloatLit:
		return ast.Float, n.Value, true
	case *ast.StringLit:
		return ast.String, n.Value, true
	case *ast.BoolLit:
		return ast.Bool, n.Value, true
	case *ast.VarRef:
		return c.checkVarRef(n, scope)
	case *ast.IntToFloat:
		return ast.Float, n.Value, n.Value != nil
	case *ast.UMinus:
		return c.checkUMinus(n, scope)
	case *ast.Sum:
		return c.checkSum(n, scope)
	case *ast.Sub:
		t, v, isC := c.numericArith(&n.Left, &n.Right, scope,
			func(l, r int64) int64 { return l - r },
			func(l, r float64) float64 { return l - r })
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.Mul:
		t, v, isC := c.numericArith(&n.Left, &n.Right, scope,
			func(l, r int64) int64 { return l * r },
			func(l, r float64) float64 { return l * r })
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.Div:
		return c.checkDiv(n, scope)
	case *ast.Exp:
		return c.checkExp(n, scope)
	case *ast.CmpEq:
		t, v, isC := c.checkEquality(&n.Left, &n.Right, scope, false)
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.CmpNe:
		t, v, isC := c.checkEquality(&n.Left, &n.Right, scope, true)
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.CmpGe:
		t, v, isC := c.checkRelational(n.Pos(), &n.Left, &n.Right, scope, func(o int) bool { return o >= 0 })
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.CmpLe:
		t, v, isC := c.checkRelational(n.Pos(), &n.Left, &n.Right, scope, func(o int) bool { return o <= 0 })
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.CmpGt:
		t, v, isC := c.checkRelational(n.Pos(), &n.Left, &n.Right, scope, func(o int) bool { return o > 0 })
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.CmpLt:
		t, v, isC := c.checkRelational(n.Pos(), &n.Left, &n.Right, scope, func(o int) bool { return o < 0 })
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.AndOp:
		t, v, isC := c.checkLogical(n.Pos(), &n.Left, &n.Right, scope, true)
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	case *ast.OrOp:
		t, v, isC := c.checkLogical(n.Pos(), &n.Left, &n.Right, scope, false)
		if c.failed() {
			return ast.Unknown, nil, false
		}
		n.Typ, n.Value = t, v
		return t, v, isC
	default:
		c.fail(fmt.Sprintf("internal: unhandled expression kind %T", e), e.Pos())
		return ast.Unknown, nil, false
	}
}

func (c *Checker) checkVarRef(n *ast.VarRef, scope *ast.Scope) (ast.PrimType, any, bool) {
	sym, ok := scope.Lookup(n.Name)
	if !ok {
		c.fail(fmt.Sprintf("internal: unresolved variable %q reached sema", n.Name), n.Pos())
		return ast.Unknown, nil, false
	}
	if !sym.Initialized {
		c.fail(fmt.Sprintf("use of uninitialized variable %q", n.Name), n.Pos())
		return ast.Unknown, nil, false
	}
	n.Typ = sym.Type
	n.Value = sym.Value
	return sym.Type, sym.Value, sym.Value != nil
}

func (c *Checker) checkUMinus(n *ast.UMinus, scope *ast.Scope) (ast.PrimType, any, bool) {
	t, v, isC := c.checkExpr(n.Operand, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	if !isNumeric(t) {
		c.fail(fmt.Sprintf("unary '-' requires a numeric operand, got %s", t), n.Pos())
		return ast.Unknown, nil, false
	}
	var val any
	if isC {
		if t == ast.Int {
			val = -(v.(int64))
		} else {
			val = -(v.(float64))
		}
	}
	n.Typ, n.Value = t, val
	return t, val, isC
}

// checkSum is the only arithmetic operator with a second, non-numeric
// mode: if either operand is String, '+' stringifies the other side and
// concatenates instead of adding.
func (c *Checker) checkSum(n *ast.Sum, scope *ast.Scope) (ast.PrimType, any, bool) {
	lt, lv, lok := c.checkExpr(n.Left, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	rt, rv, rok := c.checkExpr(n.Right, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}

	if lt == ast.String || rt == ast.String {
		bothConst := lok && rok
		var val any
		if bothConst {
			val = cast.ToString(lv) + cast.ToString(rv)
		}
		n.Typ, n.Value = ast.String, val
		return ast.String, val, bothConst
	}

	if !isNumeric(lt) || !isNumeric(rt) {
		c.fail(fmt.Sprintf("'+' operands must be numeric or include a string, got %s and %s", lt, rt), n.Pos())
		return ast.Unknown, nil, false
	}

	bothConst := lok && rok
	if lt == ast.Float || rt == ast.Float {
		n.Left = c.widenIfInt(n.Left, lt)
		n.Right = c.widenIfInt(n.Right, rt)
		var val any
		if bothConst {
			val = toFloat64(lv, lt) + toFloat64(rv, rt)
		}
		n.Typ, n.Value = ast.Float, val
		return ast.Float, val, bothConst
	}
	var val any
	if bothConst {
		val = lv.(int64) + rv.(int64)
	}
	n.Typ, n.Value = ast.Int, val
	return ast.Int, val, bothConst
}

// numericArith is shared by Sub and Mul: both operands must be numeric,
// the result widens to Float if either side is, and constant operands
// fold eagerly.
func (c *Checker) numericArith(left, right *ast.Expr, scope *ast.Scope, foldInt func(int64, int64) int64, foldFloat func(float64, float64) float64) (ast.PrimType, any, bool) {
	lt, lv, lok := c.checkExpr(*left, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	rt, rv, rok := c.checkExpr(*right, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	if !isNumeric(lt) || !isNumeric(rt) {
		c.fail(fmt.Sprintf("operands must be numeric, got %s and %s", lt, rt), (*left).Pos())
		return ast.Unknown, nil, false
	}
	bothConst := lok && rok
	if lt == ast.Float || rt == ast.Float {
		*left = c.widenIfInt(*left, lt)
		*right = c.widenIfInt(*right, rt)
		var val any
		if bothConst {
			val = foldFloat(toFloat64(lv, lt), toFloat64(rv, rt))
		}
		return ast.Float, val, bothConst
	}
	var val any
	if bothConst {
		val = foldInt(lv.(int64), rv.(int64))
	}
	return ast.Int, val, bothConst
}

// checkDiv implements true division: Int/Int that folds to an exact
// integral quotient stays Int, otherwise the result (and a non-constant
// Int/Int division, conservatively) is Float. A literal zero divisor is a
// semantic error rather than left for runtime.
func (c *Checker) checkDiv(n *ast.Div, scope *ast.Scope) (ast.PrimType, any, bool) {
	lt, lv, lok := c.checkExpr(n.Left, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	rt, rv, rok := c.checkExpr(n.Right, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	if !isNumeric(lt) || !isNumeric(rt) {
		c.fail(fmt.Sprintf("'/' operands must be numeric, got %s and %s", lt, rt), n.Pos())
		return ast.Unknown, nil, false
	}
	bothConst := lok && rok

	if lt == ast.Float || rt == ast.Float {
		n.Left = c.widenIfInt(n.Left, lt)
		n.Right = c.widenIfInt(n.Right, rt)
		var val any
		if bothConst {
			rf := toFloat64(rv, rt)
			if rf == 0 {
				c.fail("division by zero", n.Pos())
				return ast.Unknown, nil, false
			}
			val = toFloat64(lv, lt) / rf
		}
		n.Typ, n.Value = ast.Float, val
		return ast.Float, val, bothConst
	}

	if bothConst {
		ri := rv.(int64)
		if ri == 0 {
			c.fail("division by zero", n.Pos())
			return ast.Unknown, nil, false
		}
		q := float64(lv.(int64)) / float64(ri)
		if q == math.Trunc(q) {
			iv := int64(q)
			n.Typ, n.Value = ast.Int, iv
			return ast.Int, iv, true
		}
		n.Typ, n.Value = ast.Float, q
		return ast.Float, q, true
	}

	// Non-constant Int/Int division: true division, conservatively Float.
	n.Typ = ast.Float
	return ast.Float, nil, false
}

// checkExp implements '^'; a negative exponent forces Float even when both
// operands are Int, since the result cannot be represented exactly.
func (c *Checker) checkExp(n *ast.Exp, scope *ast.Scope) (ast.PrimType, any, bool) {
	lt, lv, lok := c.checkExpr(n.Left, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	rt, rv, rok := c.checkExpr(n.Right, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	if !isNumeric(lt) || !isNumeric(rt) {
		c.fail(fmt.Sprintf("'^' operands must be numeric, got %s and %s", lt, rt), n.Pos())
		return ast.Unknown, nil, false
	}
	bothConst := lok && rok
	negExp := rok && toFloat64(rv, rt) < 0

	if lt == ast.Float || rt == ast.Float || negExp {
		n.Left = c.widenIfInt(n.Left, lt)
		n.Right = c.widenIfInt(n.Right, rt)
		var val any
		if bothConst {
			val = math.Pow(toFloat64(lv, lt), toFloat64(rv, rt))
		}
		n.Typ, n.Value = ast.Float, val
		return ast.Float, val, bothConst
	}
	var val any
	if bothConst {
		val = int64(math.Pow(float64(lv.(int64)), float64(rv.(int64))))
	}
	n.Typ, n.Value = ast.Int, val
	return ast.Int, val, bothConst
}

// checkEquality handles '==' and '!=': the only rejected pairing is an
// Int/Float operand against a String, mirroring the host language's own
// equality operator where numbers and strings never compare equal and
// every other combination (including Bool against a number or a string)
// is legal and simply evaluates by the usual cross-type rules: numeric
// operands compare after widening, String compares lexicographically,
// Bool compares as itself or, against a number, as 0/1, and a Bool vs
// String pairing is never equal.
func (c *Checker) checkEquality(left, right *ast.Expr, scope *ast.Scope, negate bool) (ast.PrimType, any, bool) {
	lt, lv, lok := c.checkExpr(*left, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	rt, rv, rok := c.checkExpr(*right, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}

	if (isNumeric(lt) && rt == ast.String) || (isNumeric(rt) && lt == ast.String) {
		c.fail(fmt.Sprintf("cannot compare %s with %s", lt, rt), (*left).Pos())
		return ast.Unknown, nil, false
	}

	bothConst := lok && rok

	var equal bool
	switch {
	case isNumeric(lt) && isNumeric(rt):
		if lt == ast.Float || rt == ast.Float {
			*left = c.widenIfInt(*left, lt)
			*right = c.widenIfInt(*right, rt)
		}
		if bothConst {
			equal = toFloat64(lv, lt) == toFloat64(rv, rt)
		}
	case lt == ast.String && rt == ast.String:
		if bothConst {
			equal = lv.(string) == rv.(string)
		}
	case lt == ast.Bool && rt == ast.Bool:
		if bothConst {
			equal = lv.(bool) == rv.(bool)
		}
	case lt == ast.Bool && isNumeric(rt):
		if bothConst {
			lf := 0.0
			if lv.(bool) {
				lf = 1
			}
			equal = lf == toFloat64(rv, rt)
		}
	case rt == ast.Bool && isNumeric(lt):
		if bothConst {
			rf := 0.0
			if rv.(bool) {
				rf = 1
			}
			equal = rf == toFloat64(lv, lt)
		}
	default:
		// Bool vs String (or any other leftover pairing): never equal,
		// but not a type error per the relaxed equality rule.
		equal = false
	}

	var val any
	if bothConst {
		b := equal
		if negate {
			b = !b
		}
		val = b
	}
	return ast.Bool, val, bothConst
}

// checkRelational handles '<' '>' '<=' '>=': numeric operands only.
func (c *Checker) checkRelational(pos ast.Position, left, right *ast.Expr, scope *ast.Scope, cmp func(order int) bool) (ast.PrimType, any, bool) {
	lt, lv, lok := c.checkExpr(*left, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	rt, rv, rok := c.checkExpr(*right, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	if !isNumeric(lt) || !isNumeric(rt) {
		c.fail(fmt.Sprintf("relational comparison requires numeric operands, got %s and %s", lt, rt), pos)
		return ast.Unknown, nil, false
	}
	bothConst := lok && rok
	if lt == ast.Float || rt == ast.Float {
		*left = c.widenIfInt(*left, lt)
		*right = c.widenIfInt(*right, rt)
	}
	var val any
	if bothConst {
		lf, rf := toFloat64(lv, lt), toFloat64(rv, rt)
		order := 0
		if lf < rf {
			order = -1
		} else if lf > rf {
			order = 1
		}
		val = cmp(order)
	}
	return ast.Bool, val, bothConst
}

// checkLogical handles 'and'/'or'. Operands may be Bool or Int (0/nonzero
// truthy), but two Int operands together are rejected: at least one side
// must be genuinely Bool-typed.
func (c *Checker) checkLogical(pos ast.Position, left, right *ast.Expr, scope *ast.Scope, isAnd bool) (ast.PrimType, any, bool) {
	lt, lv, lok := c.checkExpr(*left, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	rt, rv, rok := c.checkExpr(*right, scope)
	if c.failed() {
		return ast.Unknown, nil, false
	}
	if !isBoolish(lt) || !isBoolish(rt) {
		c.fail(fmt.Sprintf("'and'/'or' operands must be bool or int, got %s and %s", lt, rt), pos)
		return ast.Unknown, nil, false
	}
	if lt == ast.Int && rt == ast.Int {
		c.fail("'and'/'or' require at least one bool operand, got two ints", pos)
		return ast.Unknown, nil, false
	}
	bothConst := lok && rok
	var val any
	if bothConst {
		lb, rb := truthy(lv, lt), truthy(rv, rt)
		if isAnd {
			val = lb && rb
		} else {
			val = lb || rb
		}
	}
	return ast.Bool, val, bothConst
}

func (c *Checker) widenIfInt(e ast.Expr, t ast.PrimType) ast.Expr {
	if t != ast.Int {
		return e
	}
	wrapped := ast.NewIntToFloat(e.Pos(), e)
	if e.Type() == ast.Int {
		if v := exprConstValue(e); v != nil {
			wrapped.Value = float64(v.(int64))
		}
	}
	return wrapped
}

// exprConstValue extracts a literal's folded value for IntToFloat wrapping
// of a freshly-checked node; it only needs to handle the node kinds
// checkExpr can hand back here (literals, refs and already-folded ops all
// carry their value on the node itself).
func exprConstValue(e ast.Expr) any {
	switch n := e.(type) {
	case *ast.IntLit:
		return n.Value
	case *ast.VarRef:
		return n.Value
	case *ast.Sum:
		return n.Value
	case *ast.Sub:
		return n.Value
	case *ast.Mul:
		return n.Value
	case *ast.Div:
		return n.Value
	case *ast.Exp:
		return n.Value
	case *ast.UMinus:
		return n.Value
	default:
		return nil
	}
}

func isNumeric(t ast.PrimType) bool { return t == ast.Int || t == ast.Float }
func isBoolish(t ast.PrimType) bool { return t == ast.Bool || t == ast.Int }

func truthy(v any, t ast.PrimType) bool {
	if t == ast.Bool {
		return v.(bool)
	}
	return v.(int64) != 0
}

func toFloat64(v any, t ast.PrimType) float64 {
	if t == ast.Int {
		return float64(v.(int64))
	}
	return v.(float64)
}
