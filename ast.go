// ast.go — the AST node set and its Execute semantics (spec §3.5, §4.5).
//
// Every node transliterates directly from the matching function in
// original_source/mython/statement.cpp: Assignment, VariableValue, Print,
// MethodCall, Stringify, the arithmetic quartet, Compound, Return,
// ClassDefinition, FieldAssignment, IfElse, the logical trio, Comparison,
// NewInstance, and MethodBody. Runtime failures panic(runtimeError{...})
// (signal.go) carrying the failing node's own position; only
// MethodBody.Execute and Interpreter.Run ever recover.
package mython

import "fmt"

// Node is satisfied by every AST node. Execute runs the node against a
// closure and a host context and yields its value — nil for statements
// that have none, per spec §3.5.
type Node interface {
	Execute(cl *Closure, ctx *Context) *Object
}

// ---- literals ----

type NumberLit struct{ Value int64 }

func (n *NumberLit) Execute(*Closure, *Context) *Object { return NumberObj(n.Value) }

type StringLit struct{ Value string }

func (n *StringLit) Execute(*Closure, *Context) *Object { return StringObj(n.Value) }

type BoolLit struct{ Value bool }

func (n *BoolLit) Execute(*Closure, *Context) *Object { return BoolObj(n.Value) }

type NoneLit struct{}

func (n *NoneLit) Execute(*Closure, *Context) *Object { return nil }

// ---- names ----

// VariableValue reads a name, or a dotted chain of field accesses starting
// from one (spec §9: reads may be arbitrarily dotted). Every hop past the
// first must land on an instance.
type VariableValue struct {
	Ids       []string
	Line, Col int
}

func (n *VariableValue) Execute(cl *Closure, ctx *Context) *Object {
	v, ok := cl.Get(n.Ids[0])
	if !ok {
		panicRuntime(n.Line, n.Col, fmt.Sprintf("Name %q is not defined", n.Ids[0]))
	}
	for _, field := range n.Ids[1:] {
		if v == nil || v.Tag != TagInstance {
			panicRuntime(n.Line, n.Col, fmt.Sprintf("%q is not an object", field))
		}
		fv, has := v.Instance.Fields[field]
		if !has {
			panicRuntime(n.Line, n.Col, fmt.Sprintf("%s object has no field %q", v.Instance.Class.Name, field))
		}
		v = fv
	}
	return v
}

// Assignment binds a plain (non-dotted) name in the current closure.
type Assignment struct {
	Name  string
	Value Node
}

func (n *Assignment) Execute(cl *Closure, ctx *Context) *Object {
	v := n.Value.Execute(cl, ctx)
	cl.Set(n.Name, v)
	return v
}

// FieldAssignment writes one field on the instance Receiver evaluates to
// (spec §9: writes take one receiver expression plus a final field name —
// the asymmetry with VariableValue's arbitrarily dotted reads).
type FieldAssignment struct {
	Receiver  Node
	Field     string
	Value     Node
	Line, Col int
}

func (n *FieldAssignment) Execute(cl *Closure, ctx *Context) *Object {
	recv := n.Receiver.Execute(cl, ctx)
	if recv == nil || recv.Tag != TagInstance {
		panicRuntime(n.Line, n.Col, fmt.Sprintf("Cannot assign field %q on a non-object", n.Field))
	}
	v := n.Value.Execute(cl, ctx)
	recv.Instance.Fields[n.Field] = v
	return v
}

// ---- output ----

// Print writes its arguments space-separated with a trailing newline
// (statement.cpp's Print: absent values render as "None").
type Print struct {
	Args []Node
}

func (n *Print) Execute(cl *Closure, ctx *Context) *Object {
	for i, a := range n.Args {
		if i > 0 {
			fmt.Fprint(ctx.Out, " ")
		}
		fmt.Fprint(ctx.Out, Render(ctx, a.Execute(cl, ctx)))
	}
	fmt.Fprint(ctx.Out, "\n")
	return nil
}

// Stringify is `str(expr)`: renders expr the way Print would, but returns
// the text as a String value instead of writing it.
type Stringify struct {
	Arg Node
}

func (n *Stringify) Execute(cl *Closure, ctx *Context) *Object {
	return StringObj(Render(ctx, n.Arg.Execute(cl, ctx)))
}

// ---- arithmetic ----

type Add struct {
	Lhs, Rhs  Node
	Line, Col int
}

func (n *Add) Execute(cl *Closure, ctx *Context) *Object {
	a, b := n.Lhs.Execute(cl, ctx), n.Rhs.Execute(cl, ctx)
	switch {
	case a != nil && b != nil && a.Tag == TagNumber && b.Tag == TagNumber:
		return NumberObj(a.Num + b.Num)
	case a != nil && b != nil && a.Tag == TagString && b.Tag == TagString:
		return StringObj(a.Str + b.Str)
	case a != nil && a.Tag == TagInstance && a.Instance.Class.HasMethod("__add__"):
		return a.Instance.Call(ctx, n.Line, n.Col, "__add__", []*Object{b})
	default:
		panicRuntime(n.Line, n.Col, "Cannot add objects of different types")
		return nil
	}
}

type Sub struct {
	Lhs, Rhs  Node
	Line, Col int
}

func (n *Sub) Execute(cl *Closure, ctx *Context) *Object {
	a, b := numberOperands(ctx, n.Lhs, n.Rhs, cl, n.Line, n.Col, "Sub")
	return NumberObj(a - b)
}

type Mult struct {
	Lhs, Rhs  Node
	Line, Col int
}

func (n *Mult) Execute(cl *Closure, ctx *Context) *Object {
	a, b := numberOperands(ctx, n.Lhs, n.Rhs, cl, n.Line, n.Col, "Mult")
	return NumberObj(a * b)
}

type Div struct {
	Lhs, Rhs  Node
	Line, Col int
}

func (n *Div) Execute(cl *Closure, ctx *Context) *Object {
	a, b := numberOperands(ctx, n.Lhs, n.Rhs, cl, n.Line, n.Col, "Div")
	if b == 0 {
		panicRuntime(n.Line, n.Col, "Division by zero")
	}
	return NumberObj(a / b)
}

func numberOperands(ctx *Context, lhs, rhs Node, cl *Closure, line, col int, op string) (int64, int64) {
	a, b := lhs.Execute(cl, ctx), rhs.Execute(cl, ctx)
	if a == nil || b == nil || a.Tag != TagNumber || b.Tag != TagNumber {
		panicRuntime(line, col, fmt.Sprintf("Cannot %s objects of these types", op))
	}
	return a.Num, b.Num
}

type UnaryMinus struct {
	Arg       Node
	Line, Col int
}

func (n *UnaryMinus) Execute(cl *Closure, ctx *Context) *Object {
	v := n.Arg.Execute(cl, ctx)
	if v == nil || v.Tag != TagNumber {
		panicRuntime(n.Line, n.Col, "Cannot negate a non-number")
	}
	return NumberObj(-v.Num)
}

// ---- logic ----

type Or struct{ Lhs, Rhs Node }

func (n *Or) Execute(cl *Closure, ctx *Context) *Object {
	if IsTrue(n.Lhs.Execute(cl, ctx)) {
		return BoolObj(true)
	}
	return BoolObj(IsTrue(n.Rhs.Execute(cl, ctx)))
}

type And struct{ Lhs, Rhs Node }

func (n *And) Execute(cl *Closure, ctx *Context) *Object {
	if !IsTrue(n.Lhs.Execute(cl, ctx)) {
		return BoolObj(false)
	}
	return BoolObj(IsTrue(n.Rhs.Execute(cl, ctx)))
}

type Not struct{ Arg Node }

func (n *Not) Execute(cl *Closure, ctx *Context) *Object {
	return BoolObj(!IsTrue(n.Arg.Execute(cl, ctx)))
}

// CompareOp is the closed set of comparison operators spec §6 allows.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLess
	CmpLessEq
	CmpGreater
	CmpGreaterEq
)

type Comparison struct {
	Op        CompareOp
	Lhs, Rhs  Node
	Line, Col int
}

func (n *Comparison) Execute(cl *Closure, ctx *Context) *Object {
	a, b := n.Lhs.Execute(cl, ctx), n.Rhs.Execute(cl, ctx)
	var result bool
	var err error
	switch n.Op {
	case CmpEq:
		result, err = Equal(ctx, a, b)
	case CmpNotEq:
		result, err = NotEqual(ctx, a, b)
	case CmpLess:
		result, err = Less(ctx, a, b)
	case CmpLessEq:
		result, err = LessOrEqual(ctx, a, b)
	case CmpGreater:
		result, err = Greater(ctx, a, b)
	case CmpGreaterEq:
		result, err = GreaterOrEqual(ctx, a, b)
	}
	if err != nil {
		panicRuntime(n.Line, n.Col, err.Error())
	}
	return BoolObj(result)
}

// ---- control flow ----

// Compound is a sequence of statements executed for effect; its own value
// is always nil — only Return (via MethodBody) ever produces a method's
// result.
type Compound struct {
	Stmts []Node
}

func (n *Compound) Execute(cl *Closure, ctx *Context) *Object {
	for _, s := range n.Stmts {
		s.Execute(cl, ctx)
	}
	return nil
}

type IfElse struct {
	Cond       Node
	Then, Else Node // Else may be nil
}

func (n *IfElse) Execute(cl *Closure, ctx *Context) *Object {
	if IsTrue(n.Cond.Execute(cl, ctx)) {
		n.Then.Execute(cl, ctx)
	} else if n.Else != nil {
		n.Else.Execute(cl, ctx)
	}
	return nil
}

// Return binds the method's result and unwinds to the enclosing
// MethodBody via a private panic signal (SPEC_FULL.md §4.5.1) — never a
// string comparison against a caught exception's message.
type Return struct {
	Expr Node // nil for a bare `return`
}

func (n *Return) Execute(cl *Closure, ctx *Context) *Object {
	var v *Object
	if n.Expr != nil {
		v = n.Expr.Execute(cl, ctx)
	}
	panic(returnSignal{value: v})
}

// MethodBody wraps a method or function's compound body and is the sole
// place that recovers a returnSignal; any runtimeError panic passes
// through untouched, exactly the fix spec.md §9 prescribes over the
// original's `e.what() == "return"` string match.
type MethodBody struct {
	Body Node
}

func (n *MethodBody) Execute(cl *Closure, ctx *Context) *Object {
	var result *Object
	func() {
		defer func() {
			if r := recover(); r != nil {
				if sig, ok := r.(returnSignal); ok {
					result = sig.value
					return
				}
				panic(r)
			}
		}()
		n.Body.Execute(cl, ctx)
	}()
	return result
}

// ---- classes ----

// MethodDef is one `def` inside a ClassDefinition's body.
type MethodDef struct {
	Name   string
	Params []string
	Body   Node // always a *MethodBody
}

// ClassDefinition builds a *Class and binds its own name to the class
// value (SPEC_FULL.md §4.6: the class-instantiation Open Question,
// repaired so `Name(args)` constructs an instance rather than being a
// no-op on a preconstructed singleton).
type ClassDefinition struct {
	Name       string
	ParentName string // "" for no base class
	Methods    []MethodDef
	Line, Col  int
}

func (n *ClassDefinition) Execute(cl *Closure, ctx *Context) *Object {
	var parent *Class
	if n.ParentName != "" {
		pv, ok := cl.Get(n.ParentName)
		if !ok || pv == nil || pv.Tag != TagClass {
			panicRuntime(n.Line, n.Col, fmt.Sprintf("Name %q is not a class", n.ParentName))
		}
		parent = pv.Class
	}
	class := NewClass(n.Name, parent)
	for _, md := range n.Methods {
		class.Methods[md.Name] = &Method{Name: md.Name, Params: md.Params, Body: md.Body}
	}
	v := ClassObj(class)
	cl.Set(n.Name, v)
	return v
}

// NewInstanceExpr calls a class found by name as a constructor (spec §9's
// Name(args) == NewInstance rule).
type NewInstanceExpr struct {
	ClassName string
	Args      []Node
	Line, Col int
}

func (n *NewInstanceExpr) Execute(cl *Closure, ctx *Context) *Object {
	cv, ok := cl.Get(n.ClassName)
	if !ok || cv == nil || cv.Tag != TagClass {
		panicRuntime(n.Line, n.Col, fmt.Sprintf("Name %q is not a class", n.ClassName))
	}
	args := make([]*Object, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.Execute(cl, ctx)
	}
	return InstanceObj(NewInstance(ctx, n.Line, n.Col, cv.Class, args))
}

// MethodCall evaluates Receiver and invokes Method on it.
type MethodCall struct {
	Receiver  Node
	Method    string
	Args      []Node
	Line, Col int
}

func (n *MethodCall) Execute(cl *Closure, ctx *Context) *Object {
	recv := n.Receiver.Execute(cl, ctx)
	if recv == nil || recv.Tag != TagInstance {
		panicRuntime(n.Line, n.Col, fmt.Sprintf("Cannot call method %q on a non-object", n.Method))
	}
	args := make([]*Object, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.Execute(cl, ctx)
	}
	return recv.Instance.Call(ctx, n.Line, n.Col, n.Method, args)
}
