package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minilang/minilangc/internal/ast"
	"github.com/minilang/minilangc/internal/lexer"
	"github.com/minilang/minilangc/internal/parser"
)

func parseSource(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.New(src).Lex()
	require.NoError(t, err)
	return parser.NewParser(toks).ParseFile()
}

func TestParseIntDeclAndPrint(t *testing.T) {
	prog, err := parseSource(t, `int x = 5; print x;`)
	require.NoError(t, err)
	require.Len(t, prog.Root.Stmts, 2)

	dcl, ok := prog.Root.Stmts[0].(*ast.IntDcl)
	require.True(t, ok)
	assert.Equal(t, "x", dcl.Name)

	_, ok = prog.Root.Stmts[1].(*ast.Print)
	assert.True(t, ok)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog, err := parseSource(t, `int x = 2 + 3 * 4;`)
	require.NoError(t, err)
	dcl := prog.Root.Stmts[0].(*ast.IntDcl)

	sum, ok := dcl.Init.(*ast.Sum)
	require.True(t, ok, "top-level node should be the addition, with multiplication binding tighter")
	_, ok = sum.Left.(*ast.IntLit)
	assert.True(t, ok)
	_, ok = sum.Right.(*ast.Mul)
	assert.True(t, ok)
}

func TestParseUnaryIsTighterThanExponent(t *testing.T) {
	prog, err := parseSource(t, `int x = -2 ^ 2;`)
	require.NoError(t, err)
	dcl := prog.Root.Stmts[0].(*ast.IntDcl)

	exp, ok := dcl.Init.(*ast.Exp)
	require.True(t, ok, "unary minus binds tighter than '^', so -2^2 parses as (-2)^2")
	_, ok = exp.Left.(*ast.UMinus)
	assert.True(t, ok)
}

func TestParseExponentLeftAssociativeChain(t *testing.T) {
	prog, err := parseSource(t, `int x = 2 ^ 3 ^ 2;`)
	require.NoError(t, err)
	dcl := prog.Root.Stmts[0].(*ast.IntDcl)

	outer, ok := dcl.Init.(*ast.Exp)
	require.True(t, ok)
	_, ok = outer.Left.(*ast.Exp)
	assert.True(t, ok, "(2 ^ 3) ^ 2: left is the nested exponent")
	_, ok = outer.Right.(*ast.IntLit)
	assert.True(t, ok, "(2 ^ 3) ^ 2: right is the literal 2")
}

func TestParseComparisonIsNonAssociative(t *testing.T) {
	_, err := parseSource(t, `int x = 1 < 2 < 3;`)
	assert.Error(t, err, "chaining two comparison operators should fail to parse")
}

func TestParseIfElifElse(t *testing.T) {
	src := `
	int x = 1;
	if x == 1 {
		print x;
	} elif x == 2 {
		print x;
	} else {
		print x;
	}
	`
	prog, err := parseSource(t, src)
	require.NoError(t, err)
	require.Len(t, prog.Root.Stmts, 2)

	ifStmt, ok := prog.Root.Stmts[1].(*ast.IfStatement)
	require.True(t, ok)
	assert.Len(t, ifStmt.Elifs, 1)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseWhileLoop(t *testing.T) {
	prog, err := parseSource(t, `int x = 0; while x < 10 { x = x + 1; }`)
	require.NoError(t, err)

	while, ok := prog.Root.Stmts[1].(*ast.WhileStatement)
	require.True(t, ok)
	assert.NotNil(t, while.Cond)
	assert.Len(t, while.Body.Stmts, 1)
}

func TestParseForLoopHeaderShape(t *testing.T) {
	prog, err := parseSource(t, `for (int i = 0; i < 10; i = i + 1) { print i; }`)
	require.NoError(t, err)

	forStmt, ok := prog.Root.Stmts[0].(*ast.ForStatement)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Init.Name)
	assert.Equal(t, "i", forStmt.Update.Name)
	assert.Len(t, forStmt.Body.Stmts, 1)
}

func TestScopeDisallowsShadowingInNestedBlock(t *testing.T) {
	src := `
	int x = 1;
	if x == 1 {
		int x = 2;
	}
	`
	_, err := parseSource(t, src)
	assert.Error(t, err, "redeclaring x in a nested scope must fail even though it's not the same scope")
}

func TestScopeAllowsSameNameInSiblingScopes(t *testing.T) {
	src := `
	if true {
		int x = 1;
	} else {
		int x = 2;
	}
	`
	_, err := parseSource(t, src)
	assert.NoError(t, err, "sibling branches are not ancestors of each other")
}

func TestScopeRejectsUndeclaredReference(t *testing.T) {
	_, err := parseSource(t, `print y;`)
	assert.Error(t, err)
}

func TestScopeRejectsReassignOfUndeclared(t *testing.T) {
	_, err := parseSource(t, `y = 5;`)
	assert.Error(t, err)
}

func TestForLoopVariableVisibleOnlyInBody(t *testing.T) {
	src := `
	for (int i = 0; i < 10; i = i + 1) {
		print i;
	}
	print i;
	`
	_, err := parseSource(t, src)
	assert.Error(t, err, "the loop variable must not leak past the loop body")
}

func TestForLoopRejectsNonIntDeclInit(t *testing.T) {
	_, err := parseSource(t, `for (i = 0; i < 10; i = i + 1) { print i; }`)
	assert.Error(t, err, "the init slot must be an int declaration, not a bare reassignment")
}

func TestMissingSemicolonFails(t *testing.T) {
	_, err := parseSource(t, `int x = 5`)
	assert.Error(t, err)
}

func TestMissingClosingBraceFails(t *testing.T) {
	_, err := parseSource(t, `if true { print 1;`)
	assert.Error(t, err)
}

func TestParenthesizedExpression(t *testing.T) {
	prog, err := parseSource(t, `int x = (2 + 3) * 4;`)
	require.NoError(t, err)
	dcl := prog.Root.Stmts[0].(*ast.IntDcl)

	mul, ok := dcl.Init.(*ast.Mul)
	require.True(t, ok)
	_, ok = mul.Left.(*ast.Sum)
	assert.True(t, ok)
}

func TestStringLiteralEscape(t *testing.T) {
	prog, err := parseSource(t, `string s = "a \"b\" c";`)
	require.NoError(t, err)
	dcl := prog.Root.Stmts[0].(*ast.StringDcl)
	lit, ok := dcl.Init.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, `a "b" c`, lit.Value)
}

func TestIfConditionRejectsNonBoolShapedExpression(t *testing.T) {
	_, err := parseSource(t, `if (1 + 1) { print 1; }`)
	assert.Error(t, err, "an arithmetic expression is not a valid condition shape even though it folds to Int")
}

func TestWhileConditionRejectsNonBoolShapedExpression(t *testing.T) {
	_, err := parseSource(t, `int x = 1; while x + 1 { x = x - 1; }`)
	assert.Error(t, err)
}

func TestForConditionRejectsNonBoolShapedExpression(t *testing.T) {
	_, err := parseSource(t, `for (int i = 0; i + 1; i = i + 1) { print i; }`)
	assert.Error(t, err, "a bare VarRef is a valid condition shape, but an arithmetic combination of it is not")
}

func TestIfConditionAcceptsVarRefAndLogicalOp(t *testing.T) {
	_, err := parseSource(t, `bool a = true; bool b = false; if a and b { print a; }`)
	assert.NoError(t, err)
}

func TestLogicalOperatorsLeftAssociative(t *testing.T) {
	prog, err := parseSource(t, `bool b = true and false or true;`)
	require.NoError(t, err)
	dcl := prog.Root.Stmts[0].(*ast.BoolDcl)

	or, ok := dcl.Init.(*ast.OrOp)
	require.True(t, ok)
	_, ok = or.Left.(*ast.AndOp)
	assert.True(t, ok, "'and'/'or' share one precedence level, left associative")
}
