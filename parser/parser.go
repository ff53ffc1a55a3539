// Package parser implements the recursive-descent parser described in
// spec §4.2: tokens in, a statement list out, with confined per-
// declaration error recovery.
package parser

import (
	"github.com/347online/lox/ast"
	"github.com/347online/lox/diag"
	"github.com/347online/lox/token"
)

const maxArgs = 255

// parseError unwinds the recursive descent back to the nearest
// declaration boundary; it is always caught within Parser.declaration
// and never escapes Parse.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// Parser consumes a token sequence ending in Eof.
type Parser struct {
	tokens  []token.Token
	state   *diag.State
	current int
}

// New returns a Parser over tokens, reporting diagnostics into state.
func New(tokens []token.Token, state *diag.State) *Parser {
	return &Parser{tokens: tokens, state: state}
}

// Parse runs program → declaration* EOF and returns the (possibly
// partial) statement list.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (p *Parser) declaration() (result ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				result = nil
				return
			}
			panic(r)
		}
	}()

	if p.match(token.Var) {
		return p.varDecl()
	}
	if p.match(token.Fun) {
		return p.function("function")
	}
	return p.statement()
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return ast.NewVar(name, init)
}

func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.Identifier, "Expect "+kind+" name.")
	p.consume(token.LeftParen, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return ast.NewFunction(name, params, body)
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.LeftBrace):
		return ast.NewBlock(p.block())
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Return):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return ast.NewPrint(value)
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return ast.NewExpression(expr)
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return ast.NewIf(cond, then, els)
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return ast.NewWhile(cond, body)
}

// forStmt desugars `for` into a `while`, per §4.2's desugaring rule.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = ast.NewBlock([]ast.Stmt{body, ast.NewExpression(increment)})
	}
	if condition == nil {
		condition = ast.NewLiteral(true)
	}
	body = ast.NewWhile(condition, body)

	if initializer != nil {
		body = ast.NewBlock([]ast.Stmt{initializer, body})
	}
	return body
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return ast.NewReturn(keyword, value)
}

func (p *Parser) expression() ast.Expr { return p.assignment() }

// assignment parses an r-value, then if followed by '=' recursively
// parses another assignment (right-associative). If the l-value is a
// Variable, it emits Assign; otherwise it reports "Invalid assignment
// target." without consuming further and returns the l-value unchanged —
// the surprising-but-intentional behavior §4.2/§9 call out.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return ast.NewAssign(v.Name, value)
		}
		p.errorAt(equals, "Invalid assignment target.")
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnary(op, right)
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LeftParen) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return ast.NewCall(callee, paren, args)
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return ast.NewLiteral(false)
	case p.match(token.True):
		return ast.NewLiteral(true)
	case p.match(token.Nil):
		return ast.NewLiteral(nil)
	case p.match(token.Number, token.String):
		return ast.NewLiteral(p.previous().Literal)
	case p.match(token.Identifier):
		return ast.NewVariable(p.previous())
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return ast.NewGrouping(expr)
	default:
		panic(p.errorAt(p.peek(), "Expect expression."))
	}
}

// --- token-stream helpers ---

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(k token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool          { return p.peek().Kind == token.Eof }
func (p *Parser) peek() token.Token      { return p.tokens[p.current] }
func (p *Parser) previous() token.Token  { return p.tokens[p.current-1] }

func (p *Parser) consume(k token.Kind, message string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// errorAt reports a diagnostic at tok's position and returns a
// parseError that the caller may panic with to unwind to the nearest
// declaration boundary. Reporting a cap overrun (§4.2's 255-argument
// rule) does not itself unwind — callers call this without panicking
// for that case, exactly matching "flags had_syntax_error but does not
// abort parsing".
func (p *Parser) errorAt(tok token.Token, message string) parseError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.Eof {
		where = " at end"
	}
	p.state.ReportStatic(tok.Line, where, message)
	return parseError{}
}

// synchronize discards tokens until a statement boundary, per §4.2.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
