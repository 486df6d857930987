package mython

import "testing"

func TestIsTrue(t *testing.T) {
	cases := []struct {
		name string
		v    *Object
		want bool
	}{
		{"nil is false", nil, false},
		{"zero number is false", NumberObj(0), false},
		{"nonzero number is true", NumberObj(5), true},
		{"empty string is false", StringObj(""), false},
		{"nonempty string is true", StringObj("x"), true},
		{"bool true", BoolObj(true), true},
		{"bool false", BoolObj(false), false},
		{"class is always false", ClassObj(NewClass("C", nil)), false},
		{"instance with no __bool__ notion is always false", InstanceObj(&Instance{Class: NewClass("C", nil), Fields: map[string]*Object{}}), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsTrue(c.v); got != c.want {
				t.Errorf("IsTrue(%v) = %v, want %v", c.v, got, c.want)
			}
		})
	}
}

func TestEqualPrimitives(t *testing.T) {
	ctx := NewContext(nil)
	cases := []struct {
		name string
		a, b *Object
		want bool
	}{
		{"nil equals nil", nil, nil, true},
		{"nil never equals present", nil, NumberObj(0), false},
		{"present never equals nil", NumberObj(0), nil, false},
		{"same numbers", NumberObj(3), NumberObj(3), true},
		{"different numbers", NumberObj(3), NumberObj(4), false},
		{"same strings", StringObj("a"), StringObj("a"), true},
		{"different strings", StringObj("a"), StringObj("b"), false},
		{"same bools", BoolObj(true), BoolObj(true), true},
		{"different bools", BoolObj(true), BoolObj(false), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Equal(ctx, c.a, c.b)
			if err != nil {
				t.Fatalf("Equal: unexpected error %v", err)
			}
			if got != c.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestEqualMismatchedTagsIsAnError(t *testing.T) {
	ctx := NewContext(nil)
	if _, err := Equal(ctx, NumberObj(1), StringObj("1")); err == nil {
		t.Fatalf("expected an error comparing a Number to a String for equality")
	}
}

func TestEqualClassesByIdentity(t *testing.T) {
	ctx := NewContext(nil)
	c1 := NewClass("C", nil)
	c2 := NewClass("C", nil)
	if eq, err := Equal(ctx, ClassObj(c1), ClassObj(c1)); err != nil || !eq {
		t.Fatalf("same class pointer should be equal, got (%v, %v)", eq, err)
	}
	if eq, err := Equal(ctx, ClassObj(c1), ClassObj(c2)); err != nil || eq {
		t.Fatalf("distinct class pointers with the same name must not be equal, got (%v, %v)", eq, err)
	}
}

func TestEqualInstanceWithoutEqErrors(t *testing.T) {
	ctx := NewContext(nil)
	class := NewClass("C", nil)
	a := InstanceObj(&Instance{Class: class, Fields: map[string]*Object{}})
	b := InstanceObj(&Instance{Class: class, Fields: map[string]*Object{}})
	if _, err := Equal(ctx, a, b); err == nil {
		t.Fatalf("expected an error comparing instances of a class with no __eq__")
	}
}

func TestEqualSameInstancePointerStillRequiresEq(t *testing.T) {
	// Comparing an instance to itself is not special-cased: a class with no
	// __eq__ errors even when both operands are the same pointer.
	ctx := NewContext(nil)
	class := NewClass("C", nil)
	inst := &Instance{Class: class, Fields: map[string]*Object{}}
	a := InstanceObj(inst)
	b := InstanceObj(inst)
	if _, err := Equal(ctx, a, b); err == nil {
		t.Fatalf("expected an error comparing same-pointer instances of a class with no __eq__")
	}
}

func TestEqualInstanceDispatchesEqEvenForSamePointer(t *testing.T) {
	ctx := NewContext(nil)
	class := NewClass("C", nil)
	class.Methods["__eq__"] = &Method{
		Name:   "__eq__",
		Params: []string{"other"},
		Body:   &MethodBody{Body: &Return{Expr: &BoolLit{Value: false}}},
	}
	inst := &Instance{Class: class, Fields: map[string]*Object{}}
	eq, err := Equal(ctx, InstanceObj(inst), InstanceObj(inst))
	if err != nil {
		t.Fatalf("Equal: unexpected error %v", err)
	}
	if eq {
		t.Fatalf("__eq__ result must be honored even for the same pointer, not overridden by an identity shortcut")
	}
}

func TestLessRequiresPresentOperands(t *testing.T) {
	ctx := NewContext(nil)
	if _, err := Less(ctx, nil, NumberObj(1)); err == nil {
		t.Fatalf("expected an error comparing None for less")
	}
	if _, err := Less(ctx, NumberObj(1), nil); err == nil {
		t.Fatalf("expected an error comparing None for less")
	}
}

func TestLessMismatchedTagsIsAnError(t *testing.T) {
	ctx := NewContext(nil)
	if _, err := Less(ctx, NumberObj(1), StringObj("1")); err == nil {
		t.Fatalf("expected an error comparing mismatched tags for less")
	}
}

func TestLessPrimitives(t *testing.T) {
	ctx := NewContext(nil)
	if lt, err := Less(ctx, NumberObj(1), NumberObj(2)); err != nil || !lt {
		t.Fatalf("1 < 2 should hold, got (%v, %v)", lt, err)
	}
	if lt, err := Less(ctx, StringObj("a"), StringObj("b")); err != nil || !lt {
		t.Fatalf(`"a" < "b" should hold, got (%v, %v)`, lt, err)
	}
	if lt, err := Less(ctx, BoolObj(false), BoolObj(true)); err != nil || !lt {
		t.Fatalf("False < True should hold, got (%v, %v)", lt, err)
	}
}

// Greater is ¬Less ∧ ¬Equal, preserved as the original defines it, so
// equal operands are never Greater.
func TestGreaterOfEqualOperandsIsFalse(t *testing.T) {
	ctx := NewContext(nil)
	a, b := NumberObj(3), NumberObj(3)
	gt, err := Greater(ctx, a, b)
	if err != nil {
		t.Fatalf("Greater: unexpected error %v", err)
	}
	if gt {
		t.Fatalf("equal operands must not be Greater")
	}
}

func TestLessOrEqualAndGreaterOrEqual(t *testing.T) {
	ctx := NewContext(nil)
	if le, err := LessOrEqual(ctx, NumberObj(2), NumberObj(2)); err != nil || !le {
		t.Fatalf("2 <= 2 should hold, got (%v, %v)", le, err)
	}
	if ge, err := GreaterOrEqual(ctx, NumberObj(2), NumberObj(1)); err != nil || !ge {
		t.Fatalf("2 >= 1 should hold, got (%v, %v)", ge, err)
	}
	if ge, err := GreaterOrEqual(ctx, NumberObj(1), NumberObj(2)); err != nil || ge {
		t.Fatalf("1 >= 2 should not hold, got (%v, %v)", ge, err)
	}
}

func TestRender(t *testing.T) {
	ctx := NewContext(nil)
	cases := []struct {
		name string
		v    *Object
		want string
	}{
		{"nil renders as None", nil, "None"},
		{"number", NumberObj(42), "42"},
		{"negative number", NumberObj(-7), "-7"},
		{"string verbatim", StringObj("hi"), "hi"},
		{"true", BoolObj(true), "True"},
		{"false", BoolObj(false), "False"},
		{"class renders as 'Class <name>'", ClassObj(NewClass("Widget", nil)), "Class Widget"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Render(ctx, c.v); got != c.want {
				t.Errorf("Render(%v) = %q, want %q", c.v, got, c.want)
			}
		})
	}
}

func TestRenderInstanceIdentityIsStable(t *testing.T) {
	ctx := NewContext(nil)
	class := NewClass("Widget", nil)
	inst := &Instance{Class: class, Fields: map[string]*Object{}}
	first := Render(ctx, InstanceObj(inst))
	second := Render(ctx, InstanceObj(inst))
	if first != second {
		t.Fatalf("an instance's default label must stay stable across renders: %q != %q", first, second)
	}
}

func TestRenderInstanceUsesStr(t *testing.T) {
	ctx := NewContext(nil)
	class := NewClass("Widget", nil)
	class.Methods["__str__"] = &Method{
		Name: "__str__",
		Body: &MethodBody{Body: &Return{Expr: &StringLit{Value: "a widget"}}},
	}
	inst := &Instance{Class: class, Fields: map[string]*Object{}}
	if got := Render(ctx, InstanceObj(inst)); got != "a widget" {
		t.Fatalf("Render with __str__ defined = %q, want %q", got, "a widget")
	}
}
