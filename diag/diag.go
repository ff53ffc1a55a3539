// Package diag implements the shared diagnostic/error-flag state threaded
// through the scanner, parser, resolver and interpreter, and the fixed
// message formats those phases report to the Host (§6/§7 of the spec).
//
// Diagnostics accumulate per pass into a *multierror.Error rather than
// aborting on the first one, mirroring §4.1/§4.2's "scanning/parsing
// continues after an error" behavior; the two boolean flags classic to
// this design (had_syntax_error, had_runtime_error) are derived
// predicates over what got collected, not separate state to keep in
// sync.
package diag

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Severity distinguishes a static (scan/parse/resolve) diagnostic from a
// runtime fault, since the two are formatted differently (§6).
type Severity int

const (
	Static Severity = iota
	Runtime
)

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Line     int
	Where    string // "" , " at end", or " at 'lexeme'"
	Message  string
}

func (d Diagnostic) Error() string {
	if d.Severity == Runtime {
		return fmt.Sprintf("%s\n[line %d]", d.Message, d.Line)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// State is the shared handle threaded into scanner, parser, resolver and
// interpreter so they can report diagnostics without importing the Host.
// It corresponds to spec §3's LoxState.
type State struct {
	errs *multierror.Error
}

// New returns a fresh, empty State.
func New() *State { return &State{} }

// ReportStatic records a scan/parse/resolve-time diagnostic at the given
// line, with an optional "at X" location suffix (empty for none).
func (s *State) ReportStatic(line int, where, message string) {
	s.errs = multierror.Append(s.errs, Diagnostic{Severity: Static, Line: line, Where: where, Message: message})
}

// ReportRuntime records a runtime fault.
func (s *State) ReportRuntime(line int, message string) {
	s.errs = multierror.Append(s.errs, Diagnostic{Severity: Runtime, Line: line, Message: message})
}

// HadSyntaxError reports whether any Static diagnostic has been recorded
// since the last Reset.
func (s *State) HadSyntaxError() bool {
	for _, e := range s.errors() {
		if d, ok := e.(Diagnostic); ok && d.Severity == Static {
			return true
		}
	}
	return false
}

// HadRuntimeError reports whether any Runtime diagnostic has been
// recorded since the last Reset.
func (s *State) HadRuntimeError() bool {
	for _, e := range s.errors() {
		if d, ok := e.(Diagnostic); ok && d.Severity == Runtime {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic recorded since the last Reset, in
// report order.
func (s *State) Diagnostics() []Diagnostic {
	errs := s.errors()
	out := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		if d, ok := e.(Diagnostic); ok {
			out = append(out, d)
		}
	}
	return out
}

func (s *State) errors() []error {
	if s.errs == nil {
		return nil
	}
	return s.errs.Errors
}

// Reset clears both flags. The REPL calls this between lines (§4.5) so
// one bad line never disables the rest of the session.
func (s *State) Reset() {
	s.errs = nil
}
