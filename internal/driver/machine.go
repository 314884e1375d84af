package driver

import (
	"fmt"
	"maps"
	"slices"

	"ember/internal/builtins"
	"ember/internal/interp"
)

// NewMachine returns a machine with the builtin library registered, its
// output set to opts.Out and opts.Vars preset.
func NewMachine(opts Options) (*interp.Machine, error) {
	m := interp.NewMachine()
	builtins.Register(m)
	if opts.Out != nil {
		m.Out = opts.Out
	}
	for _, name := range slices.Sorted(maps.Keys(opts.Vars)) {
		v, ok := interp.FromGo(opts.Vars[name])
		if !ok {
			return nil, fmt.Errorf("preset variable %q has unsupported type %T", name, opts.Vars[name])
		}
		m.Vars.Set(name, v)
	}
	return m, nil
}
