// Package ast holds the closed set of AST node kinds described by the
// evaluation contract: every node implements value.Node's
// Execute(scope, ctx) (value.Value, error). Nodes are built by the parser
// and owned exclusively by their parent in a single tree.
package ast

import (
	"bytes"
	"strings"

	"github.com/mythonlang/mython/pkg/core/value"
)

// VariableValue resolves a dotted identifier path against scope: the first
// name is looked up directly, and each subsequent name descends into the
// current value's fields, which requires a ClassInstance at every step.
type VariableValue struct {
	Path []string
}

func (n *VariableValue) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	if len(n.Path) == 0 {
		return value.None, value.NewRuntimeError("empty variable reference")
	}
	v, ok := scope.Get(n.Path[0])
	if !ok {
		return value.None, value.NewRuntimeError("name '%s' is not defined", n.Path[0])
	}
	for _, field := range n.Path[1:] {
		if v.Type != value.TypeClassInstance {
			return value.None, value.NewRuntimeError("'%s' has no field '%s'", n.Path[0], field)
		}
		next, ok := v.Instance.Fields.Get(field)
		if !ok {
			return value.None, value.NewRuntimeError("instance of '%s' has no field '%s'", v.Instance.Class.Name, field)
		}
		v = next
	}
	return v, nil
}

// FieldAccess reads Field off the ClassInstance that Object evaluates to.
// It differs from VariableValue only in that Object is an arbitrary node
// (e.g. the result of a call) rather than a scope-rooted dotted path.
type FieldAccess struct {
	Object value.Node
	Field  string
}

func (n *FieldAccess) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	obj, err := n.Object.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if obj.Type != value.TypeClassInstance {
		return value.None, value.NewRuntimeError("cannot read field '%s' off a non-instance value", n.Field)
	}
	v, ok := obj.Instance.Fields.Get(n.Field)
	if !ok {
		return value.None, value.NewRuntimeError("instance of '%s' has no field '%s'", obj.Instance.Class.Name, n.Field)
	}
	return v, nil
}

// Assignment evaluates Rhs and stores the result into scope under Name,
// returning the stored value.
type Assignment struct {
	Name string
	Rhs  value.Node
}

func (n *Assignment) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	v, err := n.Rhs.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	scope.Set(n.Name, v)
	return v, nil
}

// FieldAssignment evaluates Object, requires a ClassInstance, evaluates
// Rhs, and writes it into that instance's field table under Field. The
// write is observable through every holder of the instance.
type FieldAssignment struct {
	Object value.Node
	Field  string
	Rhs    value.Node
}

func (n *FieldAssignment) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	obj, err := n.Object.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if obj.Type != value.TypeClassInstance {
		return value.None, value.NewRuntimeError("cannot assign field '%s' on a non-instance value", n.Field)
	}
	v, err := n.Rhs.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	obj.Instance.Fields.Set(n.Field, v)
	return v, nil
}

// NoneLiteral always evaluates to the absent value.
type NoneLiteral struct{}

func (n *NoneLiteral) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	return value.None, nil
}

// NumberLiteral evaluates to a fixed Number.
type NumberLiteral struct {
	Val int32
}

func (n *NumberLiteral) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	return value.Num(n.Val), nil
}

// StringLiteral evaluates to a fixed String.
type StringLiteral struct {
	Val string
}

func (n *StringLiteral) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	return value.Str(n.Val), nil
}

// BoolLiteral evaluates to a fixed Bool.
type BoolLiteral struct {
	Val bool
}

func (n *BoolLiteral) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	return value.Bool(n.Val), nil
}

// Print evaluates Args left-to-right, renders each via the value model's
// print rule, joins with single spaces, writes the joined text plus a
// trailing newline to the context's output sink, and returns the printed
// text (without the trailing newline) as a String.
type Print struct {
	Args []value.Node
}

func (n *Print) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	parts := make([]string, len(n.Args))
	for i, arg := range n.Args {
		v, err := arg.Execute(scope, ctx)
		if err != nil {
			return value.None, err
		}
		rendered, err := value.Print(v, ctx.OutputStream(), ctx)
		if err != nil {
			return value.None, err
		}
		parts[i] = rendered
	}
	line := strings.Join(parts, " ")
	if _, err := ctx.OutputStream().Write([]byte(line + "\n")); err != nil {
		return value.None, err
	}
	return value.Str(line), nil
}

// MethodCall evaluates Object to a ClassInstance, then dispatches Method
// on it with the left-to-right evaluated Args.
type MethodCall struct {
	Object value.Node
	Method string
	Args   []value.Node
}

func (n *MethodCall) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	obj, err := n.Object.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if obj.Type != value.TypeClassInstance {
		return value.None, value.NewRuntimeError("cannot call method '%s' on a non-instance value", n.Method)
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Execute(scope, ctx)
		if err != nil {
			return value.None, err
		}
		args[i] = v
	}
	return obj.Instance.Call(n.Method, args, ctx)
}

// NewInstance creates a fresh ClassInstance bound to Class. If Class
// defines __init__ with matching arity, Args are evaluated left-to-right
// and passed to it; otherwise the arguments (if any) are ignored.
type NewInstance struct {
	Class value.Node
	Args  []value.Node
}

func (n *NewInstance) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	classVal, err := n.Class.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if classVal.Type != value.TypeClassObject {
		return value.None, value.NewRuntimeError("cannot instantiate a non-class value")
	}
	inst := value.NewInstance(classVal.Class)
	instVal := value.ClassInstance(inst)

	if inst.HasMethod("__init__", len(n.Args)) {
		args := make([]value.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := a.Execute(scope, ctx)
			if err != nil {
				return value.None, err
			}
			args[i] = v
		}
		if _, err := inst.Call("__init__", args, ctx); err != nil {
			return value.None, err
		}
	}
	return instVal, nil
}

// Stringify evaluates Arg and renders it via the value model's print rule
// into a buffer, never touching the context's output sink.
type Stringify struct {
	Arg value.Node
}

func (n *Stringify) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	v, err := n.Arg.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	var buf bytes.Buffer
	rendered, err := value.Print(v, &buf, ctx)
	if err != nil {
		return value.None, err
	}
	return value.Str(rendered), nil
}

// Add implements integer addition, string concatenation, and __add__/1
// dispatch on a left-hand ClassInstance.
type Add struct {
	L, R value.Node
}

func (n *Add) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	l, r, err := evalPair(n.L, n.R, scope, ctx)
	if err != nil {
		return value.None, err
	}
	switch {
	case l.Type == value.TypeNumber && r.Type == value.TypeNumber:
		return value.Num(l.Number + r.Number), nil
	case l.Type == value.TypeString && r.Type == value.TypeString:
		return value.Str(l.Str + r.Str), nil
	case l.Type == value.TypeClassInstance && l.Instance.HasMethod("__add__", 1):
		return l.Instance.Call("__add__", []value.Value{r}, ctx)
	default:
		return value.None, value.NewRuntimeError("cannot add the given operands")
	}
}

// Sub implements integer-only subtraction.
type Sub struct {
	L, R value.Node
}

func (n *Sub) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	l, r, err := evalPair(n.L, n.R, scope, ctx)
	if err != nil {
		return value.None, err
	}
	if l.Type != value.TypeNumber || r.Type != value.TypeNumber {
		return value.None, value.NewRuntimeError("'-' requires two numbers")
	}
	return value.Num(l.Number - r.Number), nil
}

// Mult implements integer-only multiplication.
type Mult struct {
	L, R value.Node
}

func (n *Mult) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	l, r, err := evalPair(n.L, n.R, scope, ctx)
	if err != nil {
		return value.None, err
	}
	if l.Type != value.TypeNumber || r.Type != value.TypeNumber {
		return value.None, value.NewRuntimeError("'*' requires two numbers")
	}
	return value.Num(l.Number * r.Number), nil
}

// Div implements integer-only division, failing on a zero divisor.
type Div struct {
	L, R value.Node
}

func (n *Div) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	l, r, err := evalPair(n.L, n.R, scope, ctx)
	if err != nil {
		return value.None, err
	}
	if l.Type != value.TypeNumber || r.Type != value.TypeNumber {
		return value.None, value.NewRuntimeError("'/' requires two numbers")
	}
	if r.Number == 0 {
		return value.None, value.NewRuntimeError("division by zero")
	}
	return value.Num(l.Number / r.Number), nil
}

// Or evaluates L; if is_true(L) it short-circuits to Bool(true) without
// evaluating R; otherwise it evaluates R and returns Bool(is_true(R)).
type Or struct {
	L, R value.Node
}

func (n *Or) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	l, err := n.L.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if value.IsTrue(l) {
		return value.Bool(true), nil
	}
	r, err := n.R.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	return value.Bool(value.IsTrue(r)), nil
}

// And mirrors Or: short-circuits to Bool(false) when L is falsy.
type And struct {
	L, R value.Node
}

func (n *And) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	l, err := n.L.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if !value.IsTrue(l) {
		return value.Bool(false), nil
	}
	r, err := n.R.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	return value.Bool(value.IsTrue(r)), nil
}

// Not negates a Bool operand, failing on any other value kind.
type Not struct {
	Arg value.Node
}

func (n *Not) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	v, err := n.Arg.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if v.Type != value.TypeBool {
		return value.None, value.NewRuntimeError("'not' requires a bool operand")
	}
	return value.Bool(!v.Bool), nil
}

// Compound evaluates each statement in order, discarding results, and
// returns the absent value. A Return unwinding from one of its statements
// propagates through unchanged.
type Compound struct {
	Statements []value.Node
}

func (n *Compound) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	for _, stmt := range n.Statements {
		if err := ctx.Step(); err != nil {
			return value.None, err
		}
		if _, err := stmt.Execute(scope, ctx); err != nil {
			return value.None, err
		}
	}
	return value.None, nil
}

// MethodBody evaluates Body; a *value.ReturnSignal unwinding out of it is
// caught here and converted back into its carried value.
type MethodBody struct {
	Body value.Node
}

func (n *MethodBody) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	v, err := n.Body.Execute(scope, ctx)
	if ret, ok := err.(*value.ReturnSignal); ok {
		return ret.Value, nil
	}
	if err != nil {
		return value.None, err
	}
	return v, nil
}

// Return evaluates Expr and unwinds to the nearest enclosing MethodBody,
// carrying the result via a *value.ReturnSignal propagated through the
// error channel.
type Return struct {
	Expr value.Node
}

func (n *Return) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	v, err := n.Expr.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	return value.None, &value.ReturnSignal{Value: v}
}

// ClassDefinition binds ClassVal into scope under its class name and
// returns the class value.
type ClassDefinition struct {
	ClassVal value.Value
}

func (n *ClassDefinition) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	scope.Set(n.ClassVal.Class.Name, n.ClassVal)
	return n.ClassVal, nil
}

// IfElse evaluates Cond, requires a Bool, and evaluates Then on true or
// Else (if present) on false; absent Else on a false condition yields the
// absent value.
type IfElse struct {
	Cond value.Node
	Then value.Node
	Else value.Node
}

func (n *IfElse) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	cond, err := n.Cond.Execute(scope, ctx)
	if err != nil {
		return value.None, err
	}
	if cond.Type != value.TypeBool {
		return value.None, value.NewRuntimeError("if condition must be a bool")
	}
	if cond.Bool {
		return n.Then.Execute(scope, ctx)
	}
	if n.Else != nil {
		return n.Else.Execute(scope, ctx)
	}
	return value.None, nil
}

// ComparisonOp identifies which comparison a Comparison node applies.
type ComparisonOp uint8

const (
	OpEqual ComparisonOp = iota
	OpNotEqual
	OpLess
	OpGreater
	OpLessOrEqual
	OpGreaterOrEqual
)

// Comparison evaluates both operands and applies the value model's
// comparison rule named by Op, wrapping the boolean result.
type Comparison struct {
	Op   ComparisonOp
	L, R value.Node
}

func (n *Comparison) Execute(scope *value.Scope, ctx value.Context) (value.Value, error) {
	l, r, err := evalPair(n.L, n.R, scope, ctx)
	if err != nil {
		return value.None, err
	}
	var result bool
	switch n.Op {
	case OpEqual:
		result, err = value.Equal(l, r, ctx)
	case OpNotEqual:
		result, err = value.NotEqual(l, r, ctx)
	case OpLess:
		result, err = value.Less(l, r, ctx)
	case OpGreater:
		result, err = value.Greater(l, r, ctx)
	case OpLessOrEqual:
		result, err = value.LessOrEqual(l, r, ctx)
	case OpGreaterOrEqual:
		result, err = value.GreaterOrEqual(l, r, ctx)
	default:
		return value.None, value.NewRuntimeError("unknown comparison operator")
	}
	if err != nil {
		return value.None, err
	}
	return value.Bool(result), nil
}

func evalPair(l, r value.Node, scope *value.Scope, ctx value.Context) (value.Value, value.Value, error) {
	lv, err := l.Execute(scope, ctx)
	if err != nil {
		return value.None, value.None, err
	}
	rv, err := r.Execute(scope, ctx)
	if err != nil {
		return value.None, value.None, err
	}
	return lv, rv, nil
}
