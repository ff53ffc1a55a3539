// Package environment implements the chained-frame variable storage
// described in spec §3/§5: a frame holds name-to-value bindings plus a
// link to an enclosing frame, and frames form a singly-linked chain
// toward a distinguished globals frame at the root.
//
// A user function's closure is a reference to the frame live at its
// declaration site, so a frame must stay reachable for as long as any
// function value captured it — ordinary Go garbage collection handles
// that for free (every reference here is a plain pointer), which is the
// "cycle-tolerant shared-ownership primitive" §9 asks for without
// needing the arena-of-handles alternative it also offers.
package environment

import "fmt"

// Environment is one frame in the chain.
type Environment struct {
	enclosing *Environment
	values    map[string]any
}

// New returns a fresh frame linked to enclosing (nil for the root
// globals frame).
func New(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]any)}
}

// Define binds name to value in this frame. Re-defining an existing name
// in the same frame replaces it; per §9's open question, the source
// permits this even at global scope and this implementation preserves
// that rather than rejecting it.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get looks up name by walking from this frame outward. It reports an
// UndefinedVariableError if the name is not found anywhere on the chain.
func (e *Environment) Get(name string) (any, error) {
	for frame := e; frame != nil; frame = frame.enclosing {
		if v, ok := frame.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// Assign requires name to already exist somewhere on the chain and
// updates the first frame it is found in.
func (e *Environment) Assign(name string, value any) error {
	for frame := e; frame != nil; frame = frame.enclosing {
		if _, ok := frame.values[name]; ok {
			frame.values[name] = value
			return nil
		}
	}
	return &UndefinedVariableError{Name: name}
}

// Ancestor walks distance hops toward globals. distance is precomputed by
// the resolver; walking off the end of the chain is a resolver defect,
// not a user-facing condition, so it panics rather than returning an
// error — the invariant is "the resolver never emits a distance the
// environment chain can't satisfy".
func (e *Environment) Ancestor(distance int) *Environment {
	frame := e
	for i := 0; i < distance; i++ {
		if frame.enclosing == nil {
			panic(fmt.Sprintf("environment: ancestor distance %d exceeds chain depth", distance))
		}
		frame = frame.enclosing
	}
	return frame
}

// GetAt bypasses the chain walk using a precomputed hop count.
func (e *Environment) GetAt(distance int, name string) any {
	v, ok := e.Ancestor(distance).values[name]
	if !ok {
		panic(fmt.Sprintf("environment: resolved name %q absent at distance %d", name, distance))
	}
	return v
}

// AssignAt bypasses the chain walk using a precomputed hop count.
func (e *Environment) AssignAt(distance int, name string, value any) {
	e.Ancestor(distance).values[name] = value
}

// UndefinedVariableError is the fault raised by Get/Assign when name is
// not bound anywhere on the chain — the interp package formats this into
// the fixed "Undefined variable 'x'." message at the use site, since
// only the caller has the token needed to report a line number.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}
