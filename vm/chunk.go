// Package vm sketches the stack-based bytecode instruction/stack model
// referenced by spec §1/§9 as a possible re-target, grounded directly on
// the original Rust source's bytecode/src/{chunk,debug,stack}.rs. It is
// deliberately partial: §1 scopes "bytecode execution of the full
// language" as a Non-goal, and the original's own compiler.rs is "only a
// token-printing stub" — so this package builds the chunk/opcode/stack
// model and a compiler honest about what subset it lowers, but no
// execution loop.
package vm

import (
	"github.com/347online/lox/object"
)

// OpCode is the closed instruction set, mirroring chunk.rs's OpCode enum
// plus the arithmetic/comparison/print opcodes debug.rs already
// disassembles.
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNegate
	OpNot
	OpEqual
	OpGreater
	OpLess
	OpPrint
	OpReturn
)

var opNames = map[OpCode]string{
	OpConstant: "OP_CONSTANT", OpNil: "OP_NIL", OpTrue: "OP_TRUE", OpFalse: "OP_FALSE",
	OpPop: "OP_POP", OpAdd: "OP_ADD", OpSubtract: "OP_SUBTRACT", OpMultiply: "OP_MULTIPLY",
	OpDivide: "OP_DIVIDE", OpNegate: "OP_NEGATE", OpNot: "OP_NOT", OpEqual: "OP_EQUAL",
	OpGreater: "OP_GREATER", OpLess: "OP_LESS", OpPrint: "OP_PRINT", OpReturn: "OP_RETURN",
}

// Chunk is a flat instruction stream with a parallel per-byte line table
// (for diagnostics) and a constant pool, exactly as chunk.rs lays out
// Chunk.code/lines/constants. Fields are exported so cbor can
// marshal/unmarshal a Chunk without bespoke (de)serialization code (see
// serialize.go).
type Chunk struct {
	Code      []byte          `cbor:"code"`
	Lines     []int           `cbor:"lines"`
	Constants []object.Object `cbor:"constants"`
}

// NewChunk returns an empty chunk.
func NewChunk() *Chunk { return &Chunk{} }

// WriteByte appends a raw byte with its source line, per chunk.rs's
// write_byte.
func (c *Chunk) WriteByte(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// Write appends an opcode with its source line.
func (c *Chunk) Write(op OpCode, line int) {
	c.WriteByte(byte(op), line)
}

// AddConstant appends value to the constant pool and returns its index.
func (c *Chunk) AddConstant(value object.Object) byte {
	c.Constants = append(c.Constants, value)
	return byte(len(c.Constants) - 1)
}
