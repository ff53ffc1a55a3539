// Package interp implements the environment-threaded tree-walking
// evaluator described in spec §4.4: it threads lexically-scoped, chained
// environments, implements closures by capturing the defining
// environment, and uses a non-local control-transfer carrier for
// `return`. The overall shape — an exported Interpreter built via a
// small Options struct, with Stdout/Stderr defaulted rather than
// hardcoded — follows the teacher interpreter's New(Options) pattern.
package interp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/347online/lox/ast"
	"github.com/347online/lox/diag"
	"github.com/347online/lox/environment"
	"github.com/347online/lox/object"
	"github.com/347online/lox/token"
)

// Options configures a new Interpreter. Stdout/Stderr default to
// os.Stdout/os.Stderr when nil.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Interpreter holds the state described in spec §3: globals, the frame
// currently executing, and the resolver's side table.
type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	locals  map[int64]int

	state  *diag.State
	stdout io.Writer
	stderr io.Writer
}

// returnSignal is the internal, non-error control-transfer carrier for
// `return` described in §4.4/§7. It is never reported as a user-visible
// error; the call boundary in callUserFunction is the only site that
// converts it into a normal value.
type returnSignal struct {
	value object.Object
}

func (returnSignal) Error() string {
	// Reaching this would mean a returnSignal escaped past a function
	// call boundary, which §4.4 calls a bug in the implementation, not a
	// recoverable condition — this string exists purely so returnSignal
	// satisfies `error` and can travel through the error returns of
	// execute/executeBlock below.
	return "internal: return escaped its function call boundary"
}

// runtimeFault carries the offending token's line and the spec's fixed
// message text (§4.4's table), so the Host can format it per §6/§7.
type runtimeFault struct {
	line    int
	message string
}

func (f *runtimeFault) Error() string { return f.message }

func fault(line int, message string) *runtimeFault { return &runtimeFault{line: line, message: message} }

// New returns an Interpreter whose globals frame is pre-populated with
// the clock and dbg builtins (§4.4), wired up with locals: the side
// table the resolver pass produced for this program.
func New(opts Options, state *diag.State, locals map[int64]int) *Interpreter {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	globals := environment.New(nil)
	it := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  locals,
		state:   state,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
	}
	it.defineBuiltins()
	return it
}

// Globals exposes the root frame, e.g. for a REPL to list known names
// when suggesting "did you mean" completions at the Host layer.
func (it *Interpreter) Globals() *environment.Environment { return it.globals }

// SetLocals merges the side table produced by resolving a new statement
// list into the interpreter's table, without disturbing globals or any
// frame already threaded through env. A REPL (or --watch) re-resolves
// each new line or re-run independently; entries from earlier passes
// are kept (node ids are process-wide unique, so they never collide), so
// a function declared on one call still resolves its own body's
// variables when called from a later one, and globals persist so a
// variable or function one line defines is still visible on the next
// (§4.5/§6).
func (it *Interpreter) SetLocals(locals map[int64]int) {
	if it.locals == nil {
		it.locals = make(map[int64]int, len(locals))
	}
	for id, distance := range locals {
		it.locals[id] = distance
	}
}

func (it *Interpreter) defineBuiltins() {
	it.globals.Define("clock", &object.Native{
		Name: "clock", NumArgs: 0,
		Fn: func(args []object.Object) (object.Object, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
	it.globals.Define("dbg", &object.Native{
		Name: "dbg", NumArgs: 1,
		Fn: func(args []object.Object) (object.Object, error) {
			v := args[0]
			fmt.Fprintf(it.stdout, "[%s] %s\n", object.TypeName(v), object.Stringify(v))
			return nil, nil
		},
	})
}

// Interpret executes a statement list. A runtime fault is reported to
// state and halts execution of the remaining statements, matching §7
// ("runtime errors ... unwind the current statement execution ... end
// the current program or REPL turn").
func (it *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, s := range stmts {
		if err := it.execute(s); err != nil {
			it.reportFault(err)
			return
		}
	}
}

func (it *Interpreter) reportFault(err error) {
	if rf, ok := err.(*runtimeFault); ok {
		it.state.ReportRuntime(rf.line, rf.message)
		fmt.Fprintf(it.stderr, "%s\n[line %d]\n", rf.message, rf.line)
		return
	}
	// Any other error type reaching here (including a stray
	// returnSignal) is the implementation bug §4.4 warns about.
	panic(fmt.Sprintf("interp: unexpected error type escaped Interpret: %v (%T)", err, err))
}

func (it *Interpreter) execute(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Expression:
		_, err := it.evaluate(n.Expr)
		return err
	case *ast.Print:
		v, err := it.evaluate(n.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.stdout, object.Stringify(v))
		return nil
	case *ast.Var:
		var value object.Object
		if n.Initializer != nil {
			v, err := it.evaluate(n.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		it.env.Define(n.Name.Lexeme, value)
		return nil
	case *ast.Block:
		return it.executeBlock(n.Statements, environment.New(it.env))
	case *ast.If:
		cond, err := it.evaluate(n.Condition)
		if err != nil {
			return err
		}
		if object.IsTruthy(cond) {
			return it.execute(n.Then)
		} else if n.Else != nil {
			return it.execute(n.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := it.evaluate(n.Condition)
			if err != nil {
				return err
			}
			if !object.IsTruthy(cond) {
				return nil
			}
			if err := it.execute(n.Body); err != nil {
				return err
			}
		}
	case *ast.Function:
		fn := &object.UserFunction{Decl: n, Closure: it.env}
		it.env.Define(n.Name.Lexeme, fn)
		return nil
	case *ast.Return:
		var value object.Object
		if n.Value != nil {
			v, err := it.evaluate(n.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}
	default:
		return nil
	}
}

// executeBlock runs stmts in env, restoring the previous frame on every
// exit path (normal or faulting) — an invariant per §4.4, not an
// optimization, so it is implemented with a defer rather than scattered
// restores at each return site.
func (it *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) (err error) {
	previous := it.env
	it.env = env
	defer func() { it.env = previous }()

	for _, s := range stmts {
		if err = it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) evaluate(e ast.Expr) (object.Object, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Grouping:
		return it.evaluate(n.Expr)
	case *ast.Unary:
		return it.evalUnary(n)
	case *ast.Binary:
		return it.evalBinary(n)
	case *ast.Logical:
		return it.evalLogical(n)
	case *ast.Variable:
		return it.lookupVariable(n.Name.Lexeme, n.ID(), n.Name.Line)
	case *ast.Assign:
		return it.evalAssign(n)
	case *ast.Call:
		return it.evalCall(n)
	default:
		return nil, fault(0, "Unknown expression.")
	}
}

func (it *Interpreter) lookupVariable(name string, exprID int64, line int) (object.Object, error) {
	if distance, ok := it.locals[exprID]; ok {
		return it.env.GetAt(distance, name), nil
	}
	v, err := it.globals.Get(name)
	if err != nil {
		return nil, fault(line, fmt.Sprintf("Undefined variable '%s'.", name))
	}
	return v, nil
}

func (it *Interpreter) evalAssign(n *ast.Assign) (object.Object, error) {
	value, err := it.evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := it.locals[n.ID()]; ok {
		it.env.AssignAt(distance, n.Name.Lexeme, value)
		return value, nil
	}
	if err := it.globals.Assign(n.Name.Lexeme, value); err != nil {
		return nil, fault(n.Name.Line, fmt.Sprintf("Undefined variable '%s'.", n.Name.Lexeme))
	}
	return value, nil
}

func (it *Interpreter) evalLogical(n *ast.Logical) (object.Object, error) {
	left, err := it.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op.Kind == token.Or {
		if object.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !object.IsTruthy(left) {
			return left, nil
		}
	}
	return it.evaluate(n.Right)
}

func (it *Interpreter) evalUnary(n *ast.Unary) (object.Object, error) {
	right, err := it.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Lexeme {
	case "-":
		num, ok := right.(float64)
		if !ok {
			return nil, fault(n.Op.Line, "Operand must be a number.")
		}
		return -num, nil
	case "!":
		return !object.IsTruthy(right), nil
	default:
		return nil, fault(n.Op.Line, "Unknown unary operator.")
	}
}

func (it *Interpreter) evalBinary(n *ast.Binary) (object.Object, error) {
	left, err := it.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Lexeme {
	case "+":
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, fault(n.Op.Line, "Operands must be two numbers or two strings.")
	case "-":
		lf, rf, err := it.numberOperands(left, right, n.Op.Line)
		if err != nil {
			return nil, err
		}
		return lf - rf, nil
	case "*":
		lf, rf, err := it.numberOperands(left, right, n.Op.Line)
		if err != nil {
			return nil, err
		}
		return lf * rf, nil
	case "/":
		lf, rf, err := it.numberOperands(left, right, n.Op.Line)
		if err != nil {
			return nil, err
		}
		return lf / rf, nil
	case ">":
		lf, rf, err := it.numberOperands(left, right, n.Op.Line)
		if err != nil {
			return nil, err
		}
		return lf > rf, nil
	case ">=":
		lf, rf, err := it.numberOperands(left, right, n.Op.Line)
		if err != nil {
			return nil, err
		}
		return lf >= rf, nil
	case "<":
		lf, rf, err := it.numberOperands(left, right, n.Op.Line)
		if err != nil {
			return nil, err
		}
		return lf < rf, nil
	case "<=":
		lf, rf, err := it.numberOperands(left, right, n.Op.Line)
		if err != nil {
			return nil, err
		}
		return lf <= rf, nil
	case "==":
		return object.Equal(left, right), nil
	case "!=":
		return !object.Equal(left, right), nil
	default:
		return nil, fault(n.Op.Line, "Unknown binary operator.")
	}
}

func (it *Interpreter) numberOperands(left, right object.Object, line int) (float64, float64, error) {
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, fault(line, "Operands must be numbers.")
	}
	return lf, rf, nil
}

func (it *Interpreter) evalCall(n *ast.Call) (object.Object, error) {
	callee, err := it.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]object.Object, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(object.Callable)
	if !ok {
		return nil, fault(n.Paren.Line, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, fault(n.Paren.Line, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}

	switch fn := callable.(type) {
	case *object.Native:
		return fn.Fn(args)
	case *object.UserFunction:
		return it.callUserFunction(fn, args)
	default:
		return nil, fault(n.Paren.Line, "Can only call functions and classes.")
	}
}

// callUserFunction is the only site that converts a returnSignal into a
// normal value; any other error (a runtimeFault) propagates unchanged.
func (it *Interpreter) callUserFunction(fn *object.UserFunction, args []object.Object) (object.Object, error) {
	callEnv := environment.New(fn.Closure)
	for i, param := range fn.Decl.Parameters {
		callEnv.Define(param.Lexeme, args[i])
	}

	err := it.executeBlock(fn.Decl.Body, callEnv)
	if err == nil {
		return nil, nil
	}
	if rs, ok := err.(returnSignal); ok {
		return rs.value, nil
	}
	return nil, err
}
