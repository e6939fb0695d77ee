package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minilang/minilangc/internal/backend"
	"github.com/minilang/minilangc/internal/lexer"
	"github.com/minilang/minilangc/internal/parser"
	"github.com/minilang/minilangc/internal/sema"
)

// compile runs src through the full pipeline and returns its TAC lines.
func compile(t *testing.T, src string) []string {
	t.Helper()
	toks, err := lexer.New(src).Lex()
	require.NoError(t, err)
	prog, err := parser.NewParser(toks).ParseFile()
	require.NoError(t, err)
	require.NoError(t, sema.NewChecker().Check(prog))
	return backend.NewGenerator().Generate(prog).Lines()
}

func TestTacSumChain(t *testing.T) {
	lines := compile(t, `int a = 5 + 3 + 2;`)
	assert.Equal(t, []string{
		"t0 = 5 + 3",
		"t1 = t0 + 2",
		"declareint a",
		"a = t1",
	}, lines)
}

func TestTacIntToFloatWidening(t *testing.T) {
	lines := compile(t, `float a = 1 + 2.0;`)
	assert.Equal(t, []string{
		"t0 = toFloat 1",
		"t1 = t0 + 2.0",
		"declarefloat a",
		"a = t1",
	}, lines)
}

func TestTacMultipleDecls(t *testing.T) {
	lines := compile(t, `int a = 5; int b = 6; int c = a + b;`)
	assert.Equal(t, []string{
		"declareint a",
		"a = 5",
		"declareint b",
		"b = 6",
		"t0 = a + b",
		"declareint c",
		"c = t0",
	}, lines)
}

func TestTacWhileWithNestedIf(t *testing.T) {
	src := `bool a = true; int i = 0; while a { print a; if i == 10 { a = false; } i = i + 1; }`
	lines := compile(t, src)
	assert.Equal(t, []string{
		"declarebool a",
		"a = True",
		"declareint i",
		"i = 0",
		"LABEL L0",
		"t3 = not a",
		"t3 IFGOTO L2",
		"print a",
		"t0 = i == 10",
		"t1 = not t0",
		"t1 IFGOTO L1",
		"a = False",
		"LABEL L1",
		"t2 = i + 1",
		"i = t2",
		"GOTO L0",
		"LABEL L2",
	}, lines)
}

func TestTacForLoopScopesItsVariable(t *testing.T) {
	src := `for (int i = 0; i < 9; i = i + 1) { int a = 5; print a; } int i = 2;`
	lines := compile(t, src)
	assert.Equal(t, []string{
		"declareint i",
		"i = 0",
		"LABEL L0",
		"t0 = i < 9",
		"t2 = not t0",
		"t2 IFGOTO L1",
		"declareint a",
		"a = 5",
		"print a",
		"t1 = i + 1",
		"i = t1",
		"GOTO L0",
		"LABEL L1",
		"declareint i",
		"i = 2",
	}, lines)
}

func TestTacSimpleIfNoElse(t *testing.T) {
	lines := compile(t, `int x = 1; if x == 1 { print x; }`)
	assert.Equal(t, []string{
		"declareint x",
		"x = 1",
		"t0 = x == 1",
		"t1 = not t0",
		"t1 IFGOTO L0",
		"print x",
		"LABEL L0",
	}, lines)
}

func TestTacIfElse(t *testing.T) {
	lines := compile(t, `int x = 1; if x == 1 { print x; } else { print 0; }`)
	assert.Equal(t, []string{
		"declareint x",
		"x = 1",
		"t0 = x == 1",
		"t1 = not t0",
		"t1 IFGOTO L1",
		"print x",
		"GOTO L0",
		"LABEL L1",
		"print 0",
		"LABEL L0",
	}, lines)
}

func TestTacLiteralConditionIsWrappedBeforeNot(t *testing.T) {
	lines := compile(t, `if true { print 1; }`)
	assert.Equal(t, []string{
		"t0 = True",
		"t1 = not t0",
		"t1 IFGOTO L0",
		"print 1",
		"LABEL L0",
	}, lines)
}

func TestTacStringAndBoolLiteralRendering(t *testing.T) {
	lines := compile(t, `string s = "hi"; bool b = false;`)
	assert.Equal(t, []string{
		`declarestring s`,
		`s = "hi"`,
		`declarebool b`,
		`b = False`,
	}, lines)
}

func TestTacUnaryMinus(t *testing.T) {
	lines := compile(t, `int x = -5;`)
	assert.Equal(t, []string{
		"t0 = -5",
		"declareint x",
		"x = t0",
	}, lines)
}

func TestTacFreshGeneratorRestartsCounters(t *testing.T) {
	first := compile(t, `int a = 1 + 2;`)
	second := compile(t, `int a = 1 + 2;`)
	assert.Equal(t, first, second, "a fresh Generator per compilation must restart its counters")
}
