package mython

import "testing"

func execOK(n Node) *Object {
	return n.Execute(NewClosure(), NewContext(nil))
}

func TestCompoundReturnsNilAndRunsForEffect(t *testing.T) {
	cl := NewClosure()
	ctx := NewContext(nil)
	comp := &Compound{Stmts: []Node{
		&Assignment{Name: "x", Value: &NumberLit{Value: 1}},
		&Assignment{Name: "x", Value: &NumberLit{Value: 2}},
	}}
	if v := comp.Execute(cl, ctx); v != nil {
		t.Fatalf("Compound.Execute should return nil, got %v", v)
	}
	got, ok := cl.Get("x")
	if !ok || got.Num != 2 {
		t.Fatalf("expected x==2 after sequential assignment, got %+v ok=%v", got, ok)
	}
}

func TestMethodBodyRecoversReturnSignal(t *testing.T) {
	body := &MethodBody{Body: &Compound{Stmts: []Node{
		&Return{Expr: &NumberLit{Value: 7}},
		&Return{Expr: &NumberLit{Value: 999}}, // unreachable
	}}}
	got := execOK(body)
	if got == nil || got.Num != 7 {
		t.Fatalf("MethodBody should yield the first return's value, got %v", got)
	}
}

func TestMethodBodyWithNoReturnYieldsNil(t *testing.T) {
	body := &MethodBody{Body: &Compound{Stmts: []Node{
		&Assignment{Name: "x", Value: &NumberLit{Value: 1}},
	}}}
	if got := execOK(body); got != nil {
		t.Fatalf("a method body with no return should yield nil, got %v", got)
	}
}

func TestMethodBodyLetsRuntimeErrorsPassThrough(t *testing.T) {
	body := &MethodBody{Body: &Div{
		Lhs: &NumberLit{Value: 1},
		Rhs: &NumberLit{Value: 0},
	}}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected the runtimeError panic to pass through MethodBody unrecovered")
		}
		if _, ok := r.(runtimeError); !ok {
			t.Fatalf("expected a runtimeError panic, got %T", r)
		}
	}()
	execOK(body)
}

func TestUnaryMinus(t *testing.T) {
	got := execOK(&UnaryMinus{Arg: &NumberLit{Value: 5}})
	if got.Num != -5 {
		t.Fatalf("-5 = %v, want -5", got)
	}
}

func TestUnaryMinusOnNonNumberPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic negating a string")
		}
	}()
	execOK(&UnaryMinus{Arg: &StringLit{Value: "x"}})
}

func TestComparisonDispatchesEveryOperator(t *testing.T) {
	cases := []struct {
		op   CompareOp
		a, b int64
		want bool
	}{
		{CmpEq, 3, 3, true},
		{CmpEq, 3, 4, false},
		{CmpNotEq, 3, 4, true},
		{CmpLess, 3, 4, true},
		{CmpLessEq, 4, 4, true},
		{CmpGreater, 5, 4, true},
		{CmpGreaterEq, 4, 4, true},
	}
	for _, c := range cases {
		cmp := &Comparison{Op: c.op, Lhs: &NumberLit{Value: c.a}, Rhs: &NumberLit{Value: c.b}}
		got := execOK(cmp)
		if got.Bool != c.want {
			t.Errorf("op=%d %d,%d => %v, want %v", c.op, c.a, c.b, got.Bool, c.want)
		}
	}
}

func TestIfElseWithNilElseBranch(t *testing.T) {
	cl := NewClosure()
	ctx := NewContext(nil)
	ifStmt := &IfElse{
		Cond: &BoolLit{Value: false},
		Then: &Assignment{Name: "x", Value: &NumberLit{Value: 1}},
		Else: nil,
	}
	ifStmt.Execute(cl, ctx)
	if cl.Has("x") {
		t.Fatalf("then-branch must not run when the condition is false and there is no else")
	}
}

func TestClassDefinitionBindsItsOwnName(t *testing.T) {
	cl := NewClosure()
	ctx := NewContext(nil)
	def := &ClassDefinition{Name: "C"}
	v := def.Execute(cl, ctx)
	if v == nil || v.Tag != TagClass {
		t.Fatalf("ClassDefinition.Execute should return the new class value")
	}
	bound, ok := cl.Get("C")
	if !ok || bound.Class != v.Class {
		t.Fatalf("ClassDefinition must bind its own name in the enclosing closure")
	}
}

func TestClassDefinitionUnknownParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for an undefined base class")
		}
	}()
	(&ClassDefinition{Name: "C", ParentName: "NoSuchClass"}).Execute(NewClosure(), NewContext(nil))
}

func TestFieldAssignmentOnNonObjectPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic assigning a field on a non-object")
		}
	}()
	(&FieldAssignment{
		Receiver: &NumberLit{Value: 1},
		Field:    "x",
		Value:    &NumberLit{Value: 2},
	}).Execute(NewClosure(), NewContext(nil))
}

func TestVariableValueDottedReadWalksFields(t *testing.T) {
	cl := NewClosure()
	ctx := NewContext(nil)
	inner := &Instance{Class: NewClass("Inner", nil), Fields: map[string]*Object{"v": NumberObj(9)}}
	outer := &Instance{Class: NewClass("Outer", nil), Fields: map[string]*Object{"inner": InstanceObj(inner)}}
	cl.Set("o", InstanceObj(outer))

	got := (&VariableValue{Ids: []string{"o", "inner", "v"}}).Execute(cl, ctx)
	if got == nil || got.Num != 9 {
		t.Fatalf("dotted read o.inner.v = %v, want 9", got)
	}
}
