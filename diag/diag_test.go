package diag_test

import (
	"testing"

	"github.com/347online/lox/diag"
	"github.com/stretchr/testify/assert"
)

func TestStaticDiagnosticFormatting(t *testing.T) {
	d := diag.Diagnostic{Severity: diag.Static, Line: 3, Where: " at 'foo'", Message: "Expect ';'."}
	assert.Equal(t, "[line 3] Error at 'foo': Expect ';'.", d.Error())
}

func TestRuntimeDiagnosticFormatting(t *testing.T) {
	d := diag.Diagnostic{Severity: diag.Runtime, Line: 7, Message: "Operands must be numbers."}
	assert.Equal(t, "Operands must be numbers.\n[line 7]", d.Error())
}

func TestFlagsReflectReportedSeverities(t *testing.T) {
	state := diag.New()
	assert.False(t, state.HadSyntaxError())
	assert.False(t, state.HadRuntimeError())

	state.ReportStatic(1, "", "Unexpected character.")
	assert.True(t, state.HadSyntaxError())
	assert.False(t, state.HadRuntimeError())

	state.ReportRuntime(2, "Operands must be numbers.")
	assert.True(t, state.HadRuntimeError())
}

func TestResetClearsBothFlags(t *testing.T) {
	state := diag.New()
	state.ReportStatic(1, "", "bad")
	state.ReportRuntime(2, "bad too")
	require := assert.New(t)
	require.True(state.HadSyntaxError())
	require.True(state.HadRuntimeError())

	state.Reset()
	require.False(state.HadSyntaxError())
	require.False(state.HadRuntimeError())
	require.Empty(state.Diagnostics())
}

func TestDiagnosticsPreservesReportOrder(t *testing.T) {
	state := diag.New()
	state.ReportStatic(1, "", "first")
	state.ReportStatic(2, "", "second")

	got := state.Diagnostics()
	assert.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
}
