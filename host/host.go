// Package host implements the orchestration described in spec §4.5: it
// drives scan → parse → (resolve → interpret), owns the two error flags
// via diag.State, and maps them to the exit codes in §6.
package host

import (
	"fmt"
	"io"
	"os"

	"github.com/347online/lox/ast"
	"github.com/347online/lox/diag"
	"github.com/347online/lox/interp"
	"github.com/347online/lox/parser"
	"github.com/347online/lox/resolver"
	"github.com/347online/lox/scanner"
	"github.com/sirupsen/logrus"
)

// Exit codes, per spec §6.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitSyntax  = 65
	ExitRuntime = 70
	ExitIO      = 74
)

// Host ties one Interpreter to one diag.State across possibly many
// Run calls (the REPL resets the state between lines; file mode runs
// it once).
type Host struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    logrus.FieldLogger

	state *diag.State
	it    *interp.Interpreter
}

// New returns a Host with its own Interpreter and diag.State.
func New(stdout, stderr io.Writer, log logrus.FieldLogger) *Host {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if log == nil {
		log = logrus.New()
	}
	state := diag.New()
	h := &Host{Stdout: stdout, Stderr: stderr, Log: log, state: state}
	h.it = interp.New(interp.Options{Stdout: stdout, Stderr: stderr}, state, nil)
	return h
}

// Run drives one full pass of the pipeline over source: scan, parse,
// and — only if parsing produced no syntax error — resolve and
// interpret. It reports diagnostics to Stderr itself (so callers don't
// need to inspect the returned State), and returns the State so a
// caller (Host.RunFile, the REPL) can decide on an exit code.
func (h *Host) Run(source string) *diag.State {
	h.state.Reset()

	scan := scanner.New(source, h.state, h.Log)
	tokens := scan.ScanTokens()

	parse := parser.New(tokens, h.state)
	stmts := parse.Parse()

	if h.state.HadSyntaxError() {
		h.reportStatic()
		return h.state
	}

	res := resolver.New(h.state)
	res.Resolve(stmts)

	if h.state.HadSyntaxError() {
		h.reportStatic()
		return h.state
	}

	// h.it is the same Interpreter (and the same globals frame) across
	// every call: a REPL line or a --watch re-run only merges in the
	// locals table this pass's resolver produced, so a var/fun declared
	// on one call is still visible (and callable) on the next.
	h.it.SetLocals(res.Locals)
	h.it.Interpret(stmts)
	return h.state
}

// Parse exposes just the scan+parse stages, used by the bytecode-sketch
// CLI flags and by tests asserting the parser round-trip property
// (§8) without needing to run the rest of the pipeline.
func (h *Host) Parse(source string) []ast.Stmt {
	h.state.Reset()
	tokens := scanner.New(source, h.state, h.Log).ScanTokens()
	return parser.New(tokens, h.state).Parse()
}

// State returns the diagnostic state from the most recent Run/Parse.
func (h *Host) State() *diag.State { return h.state }

func (h *Host) reportStatic() {
	for _, d := range h.state.Diagnostics() {
		if d.Severity == diag.Static {
			fmt.Fprintln(h.Stderr, d.Error())
		}
	}
}

// ExitCode maps the Host's current diagnostic state to the exit code
// contract in §6: syntax error beats runtime error if somehow both are
// set (syntax errors suppress interpretation, so in practice this is
// exclusive), success otherwise.
func (h *Host) ExitCode() int {
	switch {
	case h.state.HadSyntaxError():
		return ExitSyntax
	case h.state.HadRuntimeError():
		return ExitRuntime
	default:
		return ExitOK
	}
}

// RunFile runs source read from path once and returns the process exit
// code per §6 (any flag set after the pipeline terminates is a non-zero
// exit in file mode).
func (h *Host) RunFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(h.Stderr, "%s\n", err)
		return ExitIO
	}
	h.Run(string(data))
	return h.ExitCode()
}
