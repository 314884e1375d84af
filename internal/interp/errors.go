package interp

import (
	"fmt"

	"ember/internal/ast"
)

// Located is implemented by runtime errors that know the offending node.
type Located interface {
	error
	Where() ast.Range
}

type UndefinedVariableError struct {
	Name string
	At   ast.Range
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s: undefined variable %q", e.At.Pos, e.Name)
}

type UndefinedFunctionError struct {
	Name string
	At   ast.Range
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("%s: undefined function %q", e.At.Pos, e.Name)
}

// TypeError reports an operator applied to operands it does not accept.
type TypeError struct {
	Op       string
	Operands []ValueKind
	At       ast.Range
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.At.Pos, e.Detail())
}

// Detail is the message without the position.
func (e *TypeError) Detail() string {
	switch len(e.Operands) {
	case 1:
		return fmt.Sprintf("operator '%s' cannot be applied to %s", e.Op, e.Operands[0])
	case 2:
		return fmt.Sprintf("operator '%s' cannot be applied to %s and %s", e.Op, e.Operands[0], e.Operands[1])
	}
	return fmt.Sprintf("invalid operands for '%s'", e.Op)
}

type DivisionByZeroError struct {
	At ast.Range
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s: division by zero", e.At.Pos)
}

// HostError wraps an error returned by a host function.
type HostError struct {
	Name string
	Err  error
	At   ast.Range
}

func (e *HostError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.At.Pos, e.Name, e.Err)
}

func (e *HostError) Unwrap() error { return e.Err }

// InvalidNodeError means the tree has a shape the evaluator does not know.
// The parser never produces such trees.
type InvalidNodeError struct {
	Kind   ast.Kind
	Reason string
	At     ast.Range
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.At.Pos, e.Detail())
}

// Detail is the message without the position.
func (e *InvalidNodeError) Detail() string {
	return fmt.Sprintf("invalid %s node: %s", e.Kind, e.Reason)
}

func (e *UndefinedVariableError) Where() ast.Range { return e.At }
func (e *UndefinedFunctionError) Where() ast.Range { return e.At }
func (e *TypeError) Where() ast.Range              { return e.At }
func (e *DivisionByZeroError) Where() ast.Range    { return e.At }
func (e *HostError) Where() ast.Range              { return e.At }
func (e *InvalidNodeError) Where() ast.Range       { return e.At }
