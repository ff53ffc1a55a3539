package vm

import "github.com/fxamacker/cbor/v2"

// Marshal serializes a chunk to CBOR so the Host's --emit-bytecode flag
// can cache a compiled chunk on disk without re-parsing source.
func (c *Chunk) Marshal() ([]byte, error) {
	return cbor.Marshal(c)
}

// Unmarshal loads a chunk previously written by Marshal, e.g. for
// --dump-bytecode to disassemble a cached chunk.
func Unmarshal(data []byte) (*Chunk, error) {
	var c Chunk
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
