// Package resolver implements the static pass described in spec §4.3: it
// walks the parsed statement list, computes a scope-distance side table
// for every variable-use expression, and surfaces use-before-define and
// return-outside-function as static errors.
package resolver

import (
	"github.com/347online/lox/ast"
	"github.com/347online/lox/diag"
	"github.com/347online/lox/token"
)

// functionType tracks whether resolution is currently inside a function
// body, mirroring the teacher's closed-mode-enum style (the same shape
// `opt`-style flags take in the teacher interpreter) and the original
// Rust resolver's FunctionType.
type functionType int

const (
	funcNone functionType = iota
	funcFunction
)

type scopeEntry struct {
	defined bool
}

// Resolver produces Locals: a side table from expression identity (see
// ast.Expr.ID) to scope distance, consumed by the interpreter to route
// variable access without re-walking the environment chain.
type Resolver struct {
	state   *diag.State
	scopes  []map[string]*scopeEntry
	current functionType

	Locals map[int64]int
}

// New returns a Resolver reporting into state.
func New(state *diag.State) *Resolver {
	return &Resolver{state: state, Locals: make(map[int64]int)}
}

// Resolve walks the full statement list (a program, or a REPL line).
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]*scopeEntry{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, funcFunction)
	case *ast.Expression:
		r.resolveExpr(n.Expr)
	case *ast.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.Print:
		r.resolveExpr(n.Expr)
	case *ast.Return:
		if r.current == funcNone {
			r.state.ReportStatic(n.Keyword.Line, " at '"+n.Keyword.Lexeme+"'", "Can't return from top-level code.")
		}
		if n.Value != nil {
			r.resolveExpr(n.Value)
		}
	case *ast.While:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, ft functionType) {
	enclosing := r.current
	r.current = ft
	r.beginScope()
	for _, p := range fn.Parameters {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.current = enclosing
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if entry, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !entry.defined {
				r.state.ReportStatic(n.Name.Line, " at '"+n.Name.Lexeme+"'", "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n.ID(), n.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.ID(), n.Name.Lexeme)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Arguments {
			r.resolveExpr(a)
		}
	case *ast.Grouping:
		r.resolveExpr(n.Expr)
	case *ast.Literal:
		// nothing to resolve
	case *ast.Unary:
		r.resolveExpr(n.Right)
	}
}

// resolveLocal searches from the innermost scope outward; if found at
// index i from the top, the distance is len(scopes)-1-i. If the name is
// not resolved in any scope, it is left unresolved and treated as a
// global at interpretation time.
func (r *Resolver) resolveLocal(exprID int64, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Locals[exprID] = len(r.scopes) - 1 - i
			return
		}
	}
}

// declare inserts name into the current (innermost) scope with
// defined=false. At global scope (no open scopes) there is nothing to
// declare into — globals are resolved dynamically at interpretation
// time, never through the side table. Redeclaring a name already
// declared in the same non-global scope is reported per §4.3; the
// source's own permissiveness about global-scope redeclaration (§9) is
// preserved by this scope-emptiness check.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.state.ReportStatic(name.Line, " at '"+name.Lexeme+"'", "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = &scopeEntry{defined: false}
}

// define flips the current scope's entry for name to defined=true.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	scope[name.Lexeme] = &scopeEntry{defined: true}
}
