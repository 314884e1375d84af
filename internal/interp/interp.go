package interp

import (
	"context"
	"errors"
	"strconv"

	"ember/internal/ast"
	"ember/internal/trace"
)

// Options tune evaluation.
type Options struct {
	// EagerLogic evaluates both operands of && and || before combining
	// them. By default the right operand is skipped when the left one
	// decides the result.
	EagerLogic bool
}

// Run executes stmts in order against m and returns the value of the last
// statement, or null for an empty list. The first error stops the run;
// assignments made before it stay in m.
func Run(ctx context.Context, stmts []ast.Stmt, m *Machine, opts Options) (Value, error) {
	ev := evaluator{ctx: ctx, m: m, opts: opts}
	return ev.block(stmts)
}

// Eval evaluates a single expression against m.
func Eval(ctx context.Context, expr ast.Expr, m *Machine, opts Options) (Value, error) {
	ev := evaluator{ctx: ctx, m: m, opts: opts}
	return ev.eval(expr)
}

type evaluator struct {
	ctx  context.Context
	m    *Machine
	opts Options
}

func (ev *evaluator) block(stmts []ast.Stmt) (Value, error) {
	last := Null()
	for _, s := range stmts {
		v, err := ev.exec(s)
		if err != nil {
			return Null(), err
		}
		last = v
	}
	return last, nil
}

func (ev *evaluator) exec(s ast.Stmt) (Value, error) {
	switch s := s.(type) {
	case *ast.Assignment:
		v, err := ev.eval(s.Expression)
		if err != nil {
			return Null(), err
		}
		ev.m.Vars.Set(s.Name, v)
		return v, nil
	case *ast.FunctionCall:
		return ev.call(s)
	case *ast.If:
		cond, err := ev.eval(s.Condition)
		if err != nil {
			return Null(), err
		}
		if cond.Truthy() {
			return ev.block(s.Body)
		}
		return ev.block(s.ElseBody)
	case nil:
		return Null(), &InvalidNodeError{Reason: "nil statement"}
	}
	return Null(), &InvalidNodeError{Kind: s.Kind(), Reason: "not a statement", At: s.Loc()}
}

func (ev *evaluator) eval(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.NumberLiteral:
		n, err := strconv.ParseFloat(e.Text, 64)
		// слишком длинная цепочка цифр даёт ±Inf, это не ошибка узла
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Null(), &InvalidNodeError{Kind: e.Kind(), Reason: "malformed number " + strconv.Quote(e.Text), At: e.Range}
		}
		return Number(n), nil
	case *ast.StringLiteral:
		return String(e.Text), nil
	case *ast.VariableRef:
		v, ok := ev.m.Vars.Get(e.Name)
		if !ok {
			return Null(), &UndefinedVariableError{Name: e.Name, At: e.Range}
		}
		return v, nil
	case *ast.FunctionCall:
		return ev.call(e)
	case *ast.Unary:
		operand, err := ev.eval(e.Operand)
		if err != nil {
			return Null(), err
		}
		return unary(e, operand)
	case *ast.Binary:
		return ev.binary(e)
	case nil:
		return Null(), &InvalidNodeError{Reason: "nil expression"}
	}
	return Null(), &InvalidNodeError{Kind: e.Kind(), Reason: "not an expression", At: e.Loc()}
}

// call evaluates the arguments left to right, then resolves the function.
func (ev *evaluator) call(fc *ast.FunctionCall) (Value, error) {
	args := make([]Value, 0, len(fc.Arguments))
	for _, a := range fc.Arguments {
		v, err := ev.eval(a)
		if err != nil {
			return Null(), err
		}
		args = append(args, v)
	}
	fn, ok := ev.m.Funcs.Lookup(fc.Name)
	if !ok {
		return Null(), &UndefinedFunctionError{Name: fc.Name, At: fc.Range}
	}
	trace.Point(ev.ctx, trace.ScopeNode, "call", fc.Name)
	v, err := fn(ev.ctx, ev.m, args)
	if err != nil {
		return Null(), &HostError{Name: fc.Name, Err: err, At: fc.Range}
	}
	return v, nil
}

func (ev *evaluator) binary(e *ast.Binary) (Value, error) {
	left, err := ev.eval(e.Left)
	if err != nil {
		return Null(), err
	}
	if e.Operator == ast.BinaryAnd || e.Operator == ast.BinaryOr {
		// left решает сам: false && _, true || _
		decided := left.Truthy() == (e.Operator == ast.BinaryOr)
		if decided && !ev.opts.EagerLogic {
			return Bool(left.Truthy()), nil
		}
	}
	right, err := ev.eval(e.Right)
	if err != nil {
		return Null(), err
	}
	return binary(e, left, right)
}
