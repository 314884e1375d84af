package interp

import (
	"context"
	"io"
	"maps"
	"os"
	"slices"
)

// Func is a host function. Calls are synchronous.
type Func func(ctx context.Context, m *Machine, args []Value) (Value, error)

// VarStore holds variables by name.
type VarStore interface {
	Get(name string) (Value, bool)
	Set(name string, v Value)
	Names() []string
}

// FuncStore resolves host functions by name.
type FuncStore interface {
	Lookup(name string) (Func, bool)
	Names() []string
}

// Vars is the map-backed VarStore.
type Vars map[string]Value

func (vs Vars) Get(name string) (Value, bool) {
	v, ok := vs[name]
	return v, ok
}

func (vs Vars) Set(name string, v Value) { vs[name] = v }

// Names returns the variable names in sorted order.
func (vs Vars) Names() []string { return slices.Sorted(maps.Keys(vs)) }

// Funcs is the map-backed FuncStore.
type Funcs map[string]Func

func (fs Funcs) Lookup(name string) (Func, bool) {
	f, ok := fs[name]
	return f, ok
}

// Names returns the function names in sorted order.
func (fs Funcs) Names() []string { return slices.Sorted(maps.Keys(fs)) }

// Register adds or replaces f under name.
func (fs Funcs) Register(name string, f Func) { fs[name] = f }

// Machine is the state a program runs against.
type Machine struct {
	Vars  VarStore
	Funcs FuncStore
	Out   io.Writer // where host functions print
}

// NewMachine returns a machine with map stores, stdout output and the
// variables true and false predeclared.
func NewMachine() *Machine {
	return &Machine{
		Vars: Vars{
			"true":  Bool(true),
			"false": Bool(false),
		},
		Funcs: Funcs{},
		Out:   os.Stdout,
	}
}

// Register adds a host function. It panics unless Funcs is a Funcs map.
func (m *Machine) Register(name string, f Func) {
	m.Funcs.(Funcs).Register(name, f)
}

// Output returns Out, or io.Discard when it is nil.
func (m *Machine) Output() io.Writer {
	if m.Out == nil {
		return io.Discard
	}
	return m.Out
}
