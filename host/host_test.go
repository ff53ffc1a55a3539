package host_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/347online/lox/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHost() (*host.Host, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return host.New(&out, &errOut, nil), &out, &errOut
}

func TestRunSuccessReportsNothingToStderr(t *testing.T) {
	h, out, errOut := newHost()
	state := h.Run(`print 1 + 1;`)

	assert.False(t, state.HadSyntaxError())
	assert.False(t, state.HadRuntimeError())
	assert.Equal(t, "2\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRunSyntaxErrorSkipsInterpretation(t *testing.T) {
	h, out, errOut := newHost()
	state := h.Run(`print ;`)

	assert.True(t, state.HadSyntaxError())
	assert.Empty(t, out.String(), "interpretation never runs after a syntax error")
	assert.NotEmpty(t, errOut.String())
}

func TestRunResetsStateBetweenCalls(t *testing.T) {
	h, _, _ := newHost()
	h.Run(`print ;`)
	require.True(t, h.State().HadSyntaxError())

	state := h.Run(`print 1;`)
	assert.False(t, state.HadSyntaxError(), "a later clean Run must not still see the earlier error")
}

func TestExitCodeMapping(t *testing.T) {
	h, _, _ := newHost()

	h.Run(`print 1;`)
	assert.Equal(t, host.ExitOK, h.ExitCode())

	h.Run(`print ;`)
	assert.Equal(t, host.ExitSyntax, h.ExitCode())

	h.Run(`print 1 + "x";`)
	assert.Equal(t, host.ExitRuntime, h.ExitCode())
}

func TestRunFileMissingReturnsExitIO(t *testing.T) {
	h, _, _ := newHost()
	code := h.RunFile(filepath.Join(t.TempDir(), "does-not-exist.lox"))
	assert.Equal(t, host.ExitIO, code)
}

func TestRunFileSuccess(t *testing.T) {
	h, out, _ := newHost()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print "hi";`), 0o644))

	code := h.RunFile(path)
	assert.Equal(t, host.ExitOK, code)
	assert.Equal(t, "hi\n", out.String())
}

func TestRunPersistsGlobalsAcrossCalls(t *testing.T) {
	h, out, errOut := newHost()

	state := h.Run(`var greeting = "hi";`)
	require.False(t, state.HadRuntimeError())
	require.Empty(t, errOut.String())

	state = h.Run(`print greeting;`)
	assert.False(t, state.HadRuntimeError(), "a variable defined on an earlier call must still be visible")
	assert.Equal(t, "hi\n", out.String())
}

func TestRunPersistsFunctionsAcrossCalls(t *testing.T) {
	h, out, _ := newHost()

	h.Run(`
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    return i;
  }
  return count;
}
var counter = makeCounter();
`)
	h.Run(`print counter();`)
	state := h.Run(`print counter();`)

	assert.False(t, state.HadRuntimeError())
	assert.Equal(t, "1\n2\n", out.String(), "the same counter closure must survive across separate Run calls")
}

func TestParseExposesStatementsWithoutInterpreting(t *testing.T) {
	h, out, _ := newHost()
	stmts := h.Parse(`print 1 + 2;`)

	assert.Len(t, stmts, 1)
	assert.False(t, h.State().HadSyntaxError())
	assert.Empty(t, out.String(), "Parse must not run the interpreter")
}
