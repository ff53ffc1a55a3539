package vm

import (
	"errors"
	"fmt"

	"github.com/347online/lox/ast"
	"github.com/347online/lox/token"
)

// ErrUnsupportedBytecode is returned for any construct the sketch
// compiler does not lower. The original compiler.rs is, per spec §1,
// "only a token-printing stub" — this is the faithful re-implementation
// of that honesty: a real compiler for the subset it actually reaches
// (literals, unary/binary arithmetic, print), and a clear refusal for
// everything else (functions, control flow, variables) rather than a
// silent mis-lowering.
var ErrUnsupportedBytecode = errors.New("vm: construct not supported by the bytecode sketch")

// Compile lowers stmts into a Chunk. It supports only top-level
// Expression and Print statements over the literal/unary/binary
// expression grammar; anything else yields ErrUnsupportedBytecode.
func Compile(stmts []ast.Stmt) (*Chunk, error) {
	c := &compiler{chunk: NewChunk()}
	for _, s := range stmts {
		if err := c.statement(s); err != nil {
			return nil, err
		}
	}
	c.chunk.Write(OpReturn, 0)
	return c.chunk, nil
}

type compiler struct {
	chunk *Chunk
}

func (c *compiler) statement(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Expression:
		if err := c.expression(n.Expr); err != nil {
			return err
		}
		c.chunk.Write(OpPop, lineOf(n.Expr))
		return nil
	case *ast.Print:
		if err := c.expression(n.Expr); err != nil {
			return err
		}
		c.chunk.Write(OpPrint, lineOf(n.Expr))
		return nil
	default:
		return fmt.Errorf("%w: statement %T", ErrUnsupportedBytecode, s)
	}
}

func (c *compiler) expression(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Literal:
		return c.literal(n)
	case *ast.Grouping:
		return c.expression(n.Expr)
	case *ast.Unary:
		if err := c.expression(n.Right); err != nil {
			return err
		}
		switch n.Op.Lexeme {
		case "-":
			c.chunk.Write(OpNegate, n.Op.Line)
		case "!":
			c.chunk.Write(OpNot, n.Op.Line)
		default:
			return fmt.Errorf("%w: unary operator %q", ErrUnsupportedBytecode, n.Op.Lexeme)
		}
		return nil
	case *ast.Binary:
		if err := c.expression(n.Left); err != nil {
			return err
		}
		if err := c.expression(n.Right); err != nil {
			return err
		}
		return c.binaryOp(n.Op)
	default:
		return fmt.Errorf("%w: expression %T", ErrUnsupportedBytecode, e)
	}
}

func (c *compiler) binaryOp(op token.Token) error {
	switch op.Lexeme {
	case "+":
		c.chunk.Write(OpAdd, op.Line)
	case "-":
		c.chunk.Write(OpSubtract, op.Line)
	case "*":
		c.chunk.Write(OpMultiply, op.Line)
	case "/":
		c.chunk.Write(OpDivide, op.Line)
	case "==":
		c.chunk.Write(OpEqual, op.Line)
	case ">":
		c.chunk.Write(OpGreater, op.Line)
	case "<":
		c.chunk.Write(OpLess, op.Line)
	default:
		return fmt.Errorf("%w: binary operator %q", ErrUnsupportedBytecode, op.Lexeme)
	}
	return nil
}

func (c *compiler) literal(n *ast.Literal) error {
	switch n.Value {
	case nil:
		c.chunk.Write(OpNil, 0)
		return nil
	case true:
		c.chunk.Write(OpTrue, 0)
		return nil
	case false:
		c.chunk.Write(OpFalse, 0)
		return nil
	}
	idx := c.chunk.AddConstant(n.Value)
	c.chunk.Write(OpConstant, 0)
	c.chunk.WriteByte(idx, 0)
	return nil
}

// lineOf recovers a best-effort source line for a top-level expression
// statement, used only for the chunk's line table: unary and binary
// nodes carry their operator tokens' lines, while any other expression
// (a bare Literal or a Grouping) carries no token, so line 0 is
// recorded for it, the same line literal() records for constants.
func lineOf(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.Binary:
		return n.Op.Line
	case *ast.Unary:
		return n.Op.Line
	default:
		return 0
	}
}
