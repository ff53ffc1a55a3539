package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a statement list as a fully-parenthesized Lisp-style
// string. It exists so the parser stability check has something to
// compare: parse the same source twice and compare the two trees'
// printed forms (identity-independent, since printing never emits a
// node's id). The printed form is not Lox source and is not re-parsed.
func Print(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(printStmt(s))
		b.WriteByte('\n')
	}
	return b.String()
}

func printStmt(s Stmt) string {
	switch n := s.(type) {
	case *Expression:
		return parenthesize(";", n.Expr)
	case *Print:
		return parenthesize("print", n.Expr)
	case *Var:
		if n.Initializer == nil {
			return fmt.Sprintf("(var %s)", n.Name.Lexeme)
		}
		return parenthesize("var "+n.Name.Lexeme, n.Initializer)
	case *Block:
		var b strings.Builder
		b.WriteString("(block")
		for _, stmt := range n.Statements {
			b.WriteByte(' ')
			b.WriteString(printStmt(stmt))
		}
		b.WriteByte(')')
		return b.String()
	case *If:
		if n.Else == nil {
			return fmt.Sprintf("(if %s %s)", printExpr(n.Condition), printStmt(n.Then))
		}
		return fmt.Sprintf("(if %s %s %s)", printExpr(n.Condition), printStmt(n.Then), printStmt(n.Else))
	case *While:
		return fmt.Sprintf("(while %s %s)", printExpr(n.Condition), printStmt(n.Body))
	case *Function:
		names := make([]string, len(n.Parameters))
		for i, p := range n.Parameters {
			names[i] = p.Lexeme
		}
		var b strings.Builder
		fmt.Fprintf(&b, "(fun %s (%s)", n.Name.Lexeme, strings.Join(names, " "))
		for _, stmt := range n.Body {
			b.WriteByte(' ')
			b.WriteString(printStmt(stmt))
		}
		b.WriteByte(')')
		return b.String()
	case *Return:
		if n.Value == nil {
			return "(return)"
		}
		return parenthesize("return", n.Value)
	default:
		return "(?unknown-stmt?)"
	}
}

func printExpr(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		return literalString(n.Value)
	case *Grouping:
		return parenthesize("group", n.Expr)
	case *Unary:
		return parenthesize(n.Op.Lexeme, n.Right)
	case *Binary:
		return parenthesize(n.Op.Lexeme, n.Left, n.Right)
	case *Logical:
		return parenthesize(n.Op.Lexeme, n.Left, n.Right)
	case *Variable:
		return n.Name.Lexeme
	case *Assign:
		return parenthesize("= "+n.Name.Lexeme, n.Value)
	case *Call:
		args := make([]Expr, 0, len(n.Arguments)+1)
		args = append(args, n.Callee)
		args = append(args, n.Arguments...)
		return parenthesize("call", args...)
	default:
		return "(?unknown-expr?)"
	}
}

func literalString(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case float64:
		// Matches object.Stringify: always decimal, never scientific
		// notation, per the original's Display for Object.
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(printExpr(e))
	}
	b.WriteByte(')')
	return b.String()
}
