package vm

import (
	"fmt"
	"strings"

	"github.com/347online/lox/object"
)

// Disassemble renders every instruction in chunk under a "== name =="
// banner, following debug.rs's disassemble/disassemble_instruction format
// verbatim: a zero-padded offset, the source line (or "   |" when it
// repeats the previous instruction's line), the opcode mnemonic, and any
// operand.
func Disassemble(chunk *Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(chunk.Code); {
		offset = disassembleInstruction(&b, chunk, offset)
	}
	return b.String()
}

func disassembleInstruction(b *strings.Builder, chunk *Chunk, offset int) int {
	fmt.Fprintf(b, "%04d ", offset)
	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(b, "%4d ", chunk.Lines[offset])
	}

	op := OpCode(chunk.Code[offset])
	name, ok := opNames[op]
	if !ok {
		fmt.Fprintf(b, "Unknown opcode %d\n", chunk.Code[offset])
		return offset + 1
	}

	switch op {
	case OpConstant:
		return constantInstruction(b, name, chunk, offset)
	default:
		return simpleInstruction(b, name, offset)
	}
}

func simpleInstruction(b *strings.Builder, name string, offset int) int {
	fmt.Fprintf(b, "%s\n", name)
	return offset + 1
}

func constantInstruction(b *strings.Builder, name string, chunk *Chunk, offset int) int {
	constant := chunk.Code[offset+1]
	value := chunk.Constants[constant]
	fmt.Fprintf(b, "%-16s %4d '%s'\n", name, constant, object.Stringify(value))
	return offset + 2
}

// StackTrace renders a snapshot of the value stack bottom-to-top,
// following stack.rs's debug print convention of bracketing each slot:
// "[ v1 ][ v2 ]...".
func StackTrace(stack []object.Object) string {
	var b strings.Builder
	for _, v := range stack {
		fmt.Fprintf(&b, "[ %s ]", object.Stringify(v))
	}
	return b.String()
}
