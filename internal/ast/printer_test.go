package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minilang/minilangc/internal/ast"
	"github.com/minilang/minilangc/internal/token"
)

func TestNewProgram(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	block := ast.NewBlock(pos, nil)
	prog := ast.NewProgram(pos, block)

	require.NotNil(t, prog)
	assert.Equal(t, 1, prog.Pos().Line)
	assert.Same(t, block, prog.Root)
}

func TestNewIntDcl(t *testing.T) {
	pos := token.Position{Line: 2, Col: 3}
	dcl := ast.NewIntDcl(pos, "x", ast.NewIntLit(pos, 5))

	require.NotNil(t, dcl)
	assert.Equal(t, "x", dcl.Name)
	assert.Contains(t, dcl.String(), "x")
}

func TestLiteralTypes(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}

	assert.Equal(t, ast.Int, ast.NewIntLit(pos, 1).Type())
	assert.Equal(t, ast.Float, ast.NewFloatLit(pos, 1.0).Type())
	assert.Equal(t, ast.String, ast.NewStringLit(pos, "s").Type())
	assert.Equal(t, ast.Bool, ast.NewBoolLit(pos, true).Type())
}

func TestBinaryOpNodesAreDistinctTypes(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	left := ast.NewIntLit(pos, 1)
	right := ast.NewIntLit(pos, 2)

	sum := ast.NewSum(pos, left, right)
	sub := ast.NewSub(pos, left, right)

	assert.NotEqual(t, sum.String(), sub.String())
	assert.Same(t, left, sum.Left)
	assert.Same(t, right, sum.Right)
}

func TestIfStatementShape(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	then := ast.NewBlock(pos, nil)
	elif := ast.NewElif(pos, ast.NewBoolLit(pos, false), ast.NewBlock(pos, nil))
	els := ast.NewBlock(pos, nil)

	stmt := ast.NewIfStatement(pos, ast.NewBoolLit(pos, true), then, []*ast.Elif{elif}, els)

	require.NotNil(t, stmt)
	assert.Len(t, stmt.Elifs, 1)
	assert.Same(t, els, stmt.Else)
}

func TestForStatementRestrictsInitAndUpdateKinds(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	init := ast.NewIntDcl(pos, "i", ast.NewIntLit(pos, 0))
	cond := ast.NewCmpLt(pos, ast.NewVarRef(pos, "i"), ast.NewIntLit(pos, 10))
	update := ast.NewReassign(pos, "i", ast.NewSum(pos, ast.NewVarRef(pos, "i"), ast.NewIntLit(pos, 1)))
	body := ast.NewBlock(pos, nil)

	loop := ast.NewForStatement(pos, init, cond, update, body)

	require.NotNil(t, loop)
	assert.Equal(t, "i", loop.Init.Name)
	assert.Equal(t, "i", loop.Update.Name)
}

func TestPrettyPrintWalksBlockAndDecls(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	block := ast.NewBlock(pos, []ast.Stmt{
		ast.NewIntDcl(pos, "a", ast.NewIntLit(pos, 5)),
		ast.NewPrint(pos, ast.NewVarRef(pos, "a")),
	})
	prog := ast.NewProgram(pos, block)

	out := ast.PrettyPrint(prog)
	assert.True(t, strings.Contains(out, "IntDcl"))
	assert.True(t, strings.Contains(out, "Print"))
	assert.True(t, strings.Contains(out, "VarRef"))
}

func TestPrettyPrintWalksControlFlow(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	ifStmt := ast.NewIfStatement(
		pos,
		ast.NewBoolLit(pos, true),
		ast.NewBlock(pos, []ast.Stmt{ast.NewPrint(pos, ast.NewIntLit(pos, 1))}),
		nil,
		ast.NewBlock(pos, []ast.Stmt{ast.NewPrint(pos, ast.NewIntLit(pos, 2))}),
	)
	block := ast.NewBlock(pos, []ast.Stmt{ifStmt})
	out := ast.PrettyPrint(ast.NewProgram(pos, block))

	assert.True(t, strings.Contains(out, "IfStatement"))
	assert.True(t, strings.Contains(out, "IntLit(1)"))
	assert.True(t, strings.Contains(out, "IntLit(2)"))
}
