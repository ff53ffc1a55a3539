package parser_test

import (
	"testing"

	"github.com/347online/lox/ast"
	"github.com/347online/lox/diag"
	"github.com/347online/lox/parser"
	"github.com/347online/lox/scanner"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *diag.State) {
	t.Helper()
	state := diag.New()
	tokens := scanner.New(src, state, nil).ScanTokens()
	stmts := parser.New(tokens, state).Parse()
	return stmts, state
}

func TestParsePrintArithmetic(t *testing.T) {
	stmts, state := parse(t, "print 1 + 2 * 3;")
	require.False(t, state.HadSyntaxError())
	require.Len(t, stmts, 1)
	assert.Equal(t, "(print (+ 1 (* 2 3)))\n", ast.Print(stmts))
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, state := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, state.HadSyntaxError())
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok, "expected for-loop to desugar into a block")
	require.Len(t, block.Statements, 2)

	_, isVar := block.Statements[0].(*ast.Var)
	assert.True(t, isVar, "first statement should be the loop initializer")

	whileStmt, isWhile := block.Statements[1].(*ast.While)
	require.True(t, isWhile)

	body, isBodyBlock := whileStmt.Body.(*ast.Block)
	require.True(t, isBodyBlock, "body+increment should be wrapped in a block")
	assert.Len(t, body.Statements, 2)
}

func TestParseForWithMissingClausesDefaultsTrueCondition(t *testing.T) {
	stmts, state := parse(t, "for (;;) print 1;")
	require.False(t, state.HadSyntaxError())
	require.Len(t, stmts, 1)

	whileStmt, ok := stmts[0].(*ast.While)
	require.True(t, ok, "with no initializer, for desugars directly to a While")

	lit, ok := whileStmt.Condition.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestParseInvalidAssignmentTargetContinues(t *testing.T) {
	stmts, state := parse(t, "1 + 2 = 3;")
	assert.True(t, state.HadSyntaxError())
	require.Len(t, stmts, 1, "the statement is still produced, just with the l-value unchanged")

	exprStmt, ok := stmts[0].(*ast.Expression)
	require.True(t, ok)
	_, isBinary := exprStmt.Expr.(*ast.Binary)
	assert.True(t, isBinary, "invalid assignment target leaves the l-value expression as-is")
}

func TestParseSynchronizeAfterError(t *testing.T) {
	stmts, state := parse(t, "var = ; print 1;")
	assert.True(t, state.HadSyntaxError())
	require.Len(t, stmts, 1, "the bad declaration is elided, the next one parses fine")
	_, isPrint := stmts[0].(*ast.Print)
	assert.True(t, isPrint)
}

func TestParseRoundTripIsStable(t *testing.T) {
	src := `
fun make() {
  var i = 0;
  fun inc() {
    i = i + 1;
    return i;
  }
  return inc;
}
var c = make();
print c();
`
	stmts, state := parse(t, src)
	require.False(t, state.HadSyntaxError())

	first := ast.Print(stmts)

	// Re-parsing the printed form isn't meaningful (the printer emits a
	// Lisp-style trace, not Lox source), so the round-trip property is
	// checked the way the spec frames it: parse twice from the same
	// source and assert the printed shapes agree modulo node identity,
	// which Print never emits.
	stmts2, state2 := parse(t, src)
	require.False(t, state2.HadSyntaxError())
	second := ast.Print(stmts2)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parse not stable across runs (-first +second):\n%s", diff)
	}
}

func TestParseTooManyArgumentsIsFlaggedNotAborted(t *testing.T) {
	src := "print f(" + repeat("1,", 256) + "1);"
	stmts, state := parse(t, src)
	assert.True(t, state.HadSyntaxError())
	assert.Len(t, stmts, 1, "the over-long call still yields its print statement")
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
