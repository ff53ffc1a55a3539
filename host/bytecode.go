package host

import (
	"fmt"
	"os"

	"github.com/347online/lox/vm"
)

// EmitBytecode compiles source's top-level expression/print statements
// with the bytecode sketch (vm.Compile) and writes the resulting chunk,
// CBOR-encoded, to path. It reports vm.ErrUnsupportedBytecode rather
// than silently dropping unsupported constructs (functions, control
// flow): the sketch is honest about its own scope, per §1/§9.
func (h *Host) EmitBytecode(source, path string) error {
	stmts := h.Parse(source)
	if h.state.HadSyntaxError() {
		h.reportStatic()
		return fmt.Errorf("emit-bytecode: source has syntax errors")
	}
	chunk, err := vm.Compile(stmts)
	if err != nil {
		return err
	}
	data, err := chunk.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DumpBytecode loads a chunk previously written by EmitBytecode and
// returns its disassembly (§9's debug.rs-format trace).
func (h *Host) DumpBytecode(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	chunk, err := vm.Unmarshal(data)
	if err != nil {
		return "", err
	}
	return vm.Disassemble(chunk, path), nil
}
