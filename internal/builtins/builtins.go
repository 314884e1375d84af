// Package builtins is the standard host function library of ember.
package builtins

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"ember/internal/interp"
)

var (
	ErrArity   = errors.New("wrong number of arguments")
	ErrArgType = errors.New("wrong argument type")
)

type hostFunc struct {
	arity int // -1 for variadic
	fn    func(m *interp.Machine, args []interp.Value) (interp.Value, error)
}

var table = map[string]hostFunc{
	"print":     {-1, printFn},
	"pow":       {2, powFn},
	"len":       {1, stringFn(func(s string) interp.Value { return interp.Number(float64(utf8.RuneCountInString(s))) })},
	"width":     {1, stringFn(func(s string) interp.Value { return interp.Number(float64(runewidth.StringWidth(s))) })},
	"upper":     {1, stringFn(caser(func() cases.Caser { return cases.Upper(language.Und) }))},
	"lower":     {1, stringFn(caser(func() cases.Caser { return cases.Lower(language.Und) }))},
	"title":     {1, stringFn(caser(func() cases.Caser { return cases.Title(language.Und) }))},
	"normalize": {1, stringFn(func(s string) interp.Value { return interp.String(norm.NFC.String(s)) })},
	"str":       {1, strFn},
	"num":       {1, numFn},
}

// Register installs every builtin into m, replacing functions of the same name.
func Register(m *interp.Machine) {
	for name, sp := range table {
		m.Register(name, wrap(name, sp))
	}
}

// Names lists the builtin names in sorted order.
func Names() []string { return slices.Sorted(maps.Keys(table)) }

func wrap(name string, sp hostFunc) interp.Func {
	return func(_ context.Context, m *interp.Machine, args []interp.Value) (interp.Value, error) {
		if sp.arity >= 0 && len(args) != sp.arity {
			return interp.Null(), fmt.Errorf("%w: %s takes %d, got %d", ErrArity, name, sp.arity, len(args))
		}
		return sp.fn(m, args)
	}
}

// printFn writes the display forms separated by spaces and a newline.
func printFn(m *interp.Machine, args []interp.Value) (interp.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	if _, err := fmt.Fprintln(m.Output(), strings.Join(parts, " ")); err != nil {
		return interp.Null(), err
	}
	return interp.Null(), nil
}

func powFn(_ *interp.Machine, args []interp.Value) (interp.Value, error) {
	x, ok1 := args[0].AsNumber()
	y, ok2 := args[1].AsNumber()
	if !ok1 || !ok2 {
		return interp.Null(), fmt.Errorf("%w: pow expects numbers, got %s and %s", ErrArgType, args[0].Kind(), args[1].Kind())
	}
	return interp.Number(math.Pow(x, y)), nil
}

func stringFn(f func(string) interp.Value) func(*interp.Machine, []interp.Value) (interp.Value, error) {
	return func(_ *interp.Machine, args []interp.Value) (interp.Value, error) {
		s, ok := args[0].AsString()
		if !ok {
			return interp.Null(), fmt.Errorf("%w: expected string, got %s", ErrArgType, args[0].Kind())
		}
		return f(s), nil
	}
}

// caser builds a fresh Caser per call: a Caser keeps state and batch runs
// call builtins from several goroutines.
func caser(mk func() cases.Caser) func(string) interp.Value {
	return func(s string) interp.Value {
		c := mk()
		return interp.String(c.String(s))
	}
}

func strFn(_ *interp.Machine, args []interp.Value) (interp.Value, error) {
	return interp.String(args[0].String()), nil
}

// numFn converts a string or a bool to a number. Numbers pass through.
func numFn(_ *interp.Machine, args []interp.Value) (interp.Value, error) {
	v := args[0]
	switch v.Kind() {
	case interp.KindNumber:
		return v, nil
	case interp.KindBool:
		if b, _ := v.AsBool(); b {
			return interp.Number(1), nil
		}
		return interp.Number(0), nil
	case interp.KindString:
		s, _ := v.AsString()
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return interp.Null(), fmt.Errorf("%w: cannot convert %q to a number", ErrArgType, s)
		}
		return interp.Number(n), nil
	}
	return interp.Null(), fmt.Errorf("%w: cannot convert %s to a number", ErrArgType, v.Kind())
}
