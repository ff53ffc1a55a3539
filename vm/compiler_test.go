package vm_test

import (
	"errors"
	"testing"

	"github.com/347online/lox/diag"
	"github.com/347online/lox/parser"
	"github.com/347online/lox/scanner"
	"github.com/347online/lox/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLiteralAndPrint(t *testing.T) {
	state := diag.New()
	tokens := scanner.New(`print 1 + 2;`, state, nil).ScanTokens()
	stmts := parser.New(tokens, state).Parse()
	require.False(t, state.HadSyntaxError())

	chunk, err := vm.Compile(stmts)
	require.NoError(t, err)

	out := vm.Disassemble(chunk, "test")
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "OP_ADD")
	assert.Contains(t, out, "OP_PRINT")
	assert.Contains(t, out, "OP_RETURN")
}

func TestCompileUnaryNegateAndNot(t *testing.T) {
	state := diag.New()
	tokens := scanner.New(`!true; -1;`, state, nil).ScanTokens()
	stmts := parser.New(tokens, state).Parse()
	require.False(t, state.HadSyntaxError())

	chunk, err := vm.Compile(stmts)
	require.NoError(t, err)

	out := vm.Disassemble(chunk, "test")
	assert.Contains(t, out, "OP_NOT")
	assert.Contains(t, out, "OP_NEGATE")
}

func TestCompileRefusesVariableDeclarations(t *testing.T) {
	state := diag.New()
	tokens := scanner.New(`var a = 1;`, state, nil).ScanTokens()
	stmts := parser.New(tokens, state).Parse()
	require.False(t, state.HadSyntaxError())

	_, err := vm.Compile(stmts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrUnsupportedBytecode))
}

func TestCompileRefusesFunctionDeclarations(t *testing.T) {
	state := diag.New()
	tokens := scanner.New(`fun f() { return 1; }`, state, nil).ScanTokens()
	stmts := parser.New(tokens, state).Parse()
	require.False(t, state.HadSyntaxError())

	_, err := vm.Compile(stmts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrUnsupportedBytecode))
}

func TestCompileRefusesControlFlow(t *testing.T) {
	state := diag.New()
	tokens := scanner.New(`if (true) print 1;`, state, nil).ScanTokens()
	stmts := parser.New(tokens, state).Parse()
	require.False(t, state.HadSyntaxError())

	_, err := vm.Compile(stmts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrUnsupportedBytecode))
}
