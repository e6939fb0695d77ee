package parser

import (
	"fmt"

	"github.com/minilang/minilangc/internal/ast"
)

// buildScopes walks a freshly-parsed Program and attaches a Scope to every
// Block, binding declarations and checking that every name used by a
// VarRef, Reassign, or for-loop update already exists somewhere in the
// ancestor chain. MiniLang forbids shadowing across ANY ancestor scope
// (not just the immediately enclosing one), so both the declare-time and
// use-time checks walk the full chain rather than just the current table.
func buildScopes(prog *ast.Program) {
	root := ast.NewScope(nil)
	buildBlockScope(prog.Root, root)
}

func buildBlockScope(block *ast.Block, scope *ast.Scope) {
	block.Scope = scope
	for _, stmt := range block.Stmts {
		buildStmtScope(stmt, scope)
	}
}

// declareName binds name in scope after checking it is not already bound
// in scope or any ancestor; a violation aborts the parse, mirroring the
// original symbol-table builder's "already declared" failure.
func declareName(scope *ast.Scope, name string, typ ast.PrimType, node ast.Node) {
	if scope.ExistsInAncestry(name) {
		failScope(fmt.Sprintf("variable %q already declared in an enclosing scope", name), node)
	}
	scope.Declare(name, typ, node.Pos())
}

func requireBound(scope *ast.Scope, name string, node ast.Node) {
	if !scope.ExistsInAncestry(name) {
		failScope(fmt.Sprintf("use of undeclared variable %q", name), node)
	}
}

func failScope(msg string, node ast.Node) {
	panic(bailout{ParseError{Msg: msg, Pos: node.Pos()}})
}

func buildStmtScope(stmt ast.Stmt, scope *ast.Scope) {
	switch s := stmt.(type) {
	case *ast.IntDcl:
		checkExprRefs(s.Init, scope)
		declareName(scope, s.Name, ast.Int, s)
	case *ast.FloatDcl:
		checkExprRefs(s.Init, scope)
		declareName(scope, s.Name, ast.Float, s)
	case *ast.StringDcl:
		checkExprRefs(s.Init, scope)
		declareName(scope, s.Name, ast.String, s)
	case *ast.BoolDcl:
		checkExprRefs(s.Init, scope)
		declareName(scope, s.Name, ast.Bool, s)
	case *ast.Reassign:
		checkExprRefs(s.Value, scope)
		requireBound(scope, s.Name, s)
	case *ast.Print:
		checkExprRefs(s.Value, scope)
	case *ast.IfStatement:
		checkExprRefs(s.Cond, scope)
		checkConditionShape(s.Cond)
		buildBlockScope(s.Then, ast.NewScope(scope))
		for _, e := range s.Elifs {
			checkExprRefs(e.Cond, scope)
			checkConditionShape(e.Cond)
			buildBlockScope(e.Then, ast.NewScope(scope))
		}
		if s.Else != nil {
			buildBlockScope(s.Else, ast.NewScope(scope))
		}
	case *ast.WhileStatement:
		checkExprRefs(s.Cond, scope)
		checkConditionShape(s.Cond)
		buildBlockScope(s.Body, ast.NewScope(scope))
	case *ast.ForStatement:
		buildForScope(s, scope)
	default:
		failScope(fmt.Sprintf("internal: unhandled statement kind %T", stmt), stmt)
	}
}

// buildForScope binds the loop's init/cond/update into the BODY's own
// scope rather than the enclosing one: i is visible inside the loop body
// and to cond/update, but nowhere outside the loop. The init expression
// itself is still resolved against the OUTER scope, since the loop
// variable is not yet in scope while its own initializer is evaluated.
// This mirrors the original symbol-table builder's deferred-insertion
// pass, which processes the body block first to create its scope and then
// inserts init/cond/update into it before descending further.
func buildForScope(s *ast.ForStatement, outer *ast.Scope) {
	bodyScope := ast.NewScope(outer)

	checkExprRefs(s.Init.Init, outer)
	declareName(bodyScope, s.Init.Name, ast.Int, s.Init)

	checkExprRefs(s.Cond, bodyScope)
	checkConditionShape(s.Cond)

	requireBound(bodyScope, s.Update.Name, s.Update)
	checkExprRefs(s.Update.Value, bodyScope)

	buildBlockScope(s.Body, bodyScope)
}

// checkConditionShape restricts if/elif/while/for conditions to a BoolLit,
// a VarRef, a comparison, or a logical-op node, rejecting anything else
// (e.g. a bare arithmetic expression) regardless of what type it would
// later fold to. This is a shape check at scope-construction time, not a
// type check: checker.go's checkCondition still verifies the resolved type
// is Bool (which matters for a VarRef), but a node kind excluded here
// never reaches it.
func checkConditionShape(cond ast.Expr) {
	switch cond.(type) {
	case *ast.BoolLit, *ast.VarRef,
		*ast.CmpEq, *ast.CmpNe, *ast.CmpGe, *ast.CmpLe, *ast.CmpGt, *ast.CmpLt,
		*ast.AndOp, *ast.OrOp:
		return
	default:
		failScope("invalid condition", cond)
	}
}

// checkExprRefs recurses through an expression tree verifying every VarRef
// names a variable already bound somewhere in scope's ancestry. It does
// not assign types: that is the semantic analyzer's job.
func checkExprRefs(e ast.Expr, scope *ast.Scope) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.StringLit, *ast.BoolLit:
		// leaves
	case *ast.VarRef:
		requireBound(scope, n.Name, n)
	case *ast.UMinus:
		checkExprRefs(n.Operand, scope)
	case *ast.IntToFloat:
		checkExprRefs(n.Operand, scope)
	case *ast.Sum:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.Sub:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.Mul:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.Div:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.Exp:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.CmpEq:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.CmpNe:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.CmpGe:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.CmpLe:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.CmpGt:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.CmpLt:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.AndOp:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	case *ast.OrOp:
		checkExprRefs(n.Left, scope)
		checkExprRefs(n.Right, scope)
	default:
		failScope(fmt.Sprintf("internal: unhandled expression kind %T", e), e)
	}
}
