// Package object defines the runtime value representation: the tagged
// union described in spec §3 plus the two Function shapes from §3/§4.4.
package object

import (
	"fmt"
	"strconv"

	"github.com/347online/lox/ast"
	"github.com/347online/lox/environment"
)

// Object is any Lox runtime value: nil, bool, float64, string, or a
// Callable. Go's `any` already gives us the tagged union; the helper
// functions below implement the spec's truthiness/equality/display
// rules on top of it.
type Object = any

// Callable is implemented by *Native and *UserFunction. It exists as a
// tag interface so the interpreter can recognize "this value can be
// called" without a long type switch at every call site; the actual
// invocation logic lives in the interpreter, which is the one place that
// knows how to run a function body.
type Callable interface {
	Arity() int
	String() string
	callable()
}

// Native is a host-implemented builtin, e.g. clock or dbg. Fn receives
// already-evaluated arguments and returns a result or an error (a
// Native is never the source of a §4.4-style fault carrying a token,
// since builtins have no call-site token of their own beyond the one the
// interpreter already has).
type Native struct {
	Name    string
	NumArgs int
	Fn      func(args []Object) (Object, error)
}

func (n *Native) Arity() int    { return n.NumArgs }
func (*Native) callable()       {}
func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// UserFunction is a function declared in source. Closure is the
// environment frame live at the moment of declaration, captured by
// reference (per §3/§5) — this is how closures work.
type UserFunction struct {
	Decl    *ast.Function
	Closure *environment.Environment
}

func (f *UserFunction) Arity() int { return len(f.Decl.Parameters) }
func (*UserFunction) callable()    {}
func (f *UserFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

// IsTruthy implements §3's truthiness rule: nil and false are falsy,
// everything else (including 0 and "") is truthy.
func IsTruthy(v Object) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Equal implements §3's equality rule: nil == nil; same-variant value
// equality; cross-variant equality is false.
func Equal(a, b Object) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify implements §3's display rule.
func Stringify(v Object) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// 'f' rather than 'g': the original's Display for Object never
		// switches to scientific notation at any magnitude (verified
		// against the Rust f64 Display impl: 1e20.to_string() is
		// "100000000000000000000", not "1e+20"), and 'f' with prec -1
		// still yields the shortest decimal that round-trips.
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case Callable:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// TypeName names a value's runtime kind, used in debug output (dbg).
func TypeName(v Object) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case Callable:
		return "callable"
	default:
		return "unknown"
	}
}
