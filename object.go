// object.go — the runtime value representation (spec §3.2, §4.2).
//
// Grounded on original_source/mython/runtime.cpp for the comparison and
// truthiness semantics (IsTrue, Equal, Less and their derived operators),
// and on the teacher's tagged Value{Tag, Data} pattern (interpreter.go) for
// the Go representation — simplified to a single struct with one active
// field per Tag, since Mython's value set is closed and small enough that
// an interface-based open hierarchy would only add indirection (spec.md §9).
package mython

import (
	"fmt"
	"strconv"
)

// ObjectTag selects which field of Object is meaningful. A nil *Object,
// rather than a tag, represents the absent/None value everywhere in this
// package (spec §3.2).
type ObjectTag int

const (
	TagNumber ObjectTag = iota
	TagString
	TagBool
	TagClass
	TagInstance
)

// Object is the tagged union of every value a Mython program can hold.
type Object struct {
	Tag      ObjectTag
	Num      int64
	Str      string
	Bool     bool
	Class    *Class
	Instance *Instance
}

func NumberObj(n int64) *Object  { return &Object{Tag: TagNumber, Num: n} }
func StringObj(s string) *Object { return &Object{Tag: TagString, Str: s} }
func BoolObj(b bool) *Object     { return &Object{Tag: TagBool, Bool: b} }
func ClassObj(c *Class) *Object  { return &Object{Tag: TagClass, Class: c} }
func InstanceObj(i *Instance) *Object {
	return &Object{Tag: TagInstance, Instance: i}
}

// IsTrue reports a value's truthiness. Only Bool, Number, and String carry
// their own notion of truth (nonzero / nonempty); every other value, absent
// included, is false — runtime.cpp's IsTrue falls through to false for any
// object that isn't one of those three primitive kinds.
func IsTrue(o *Object) bool {
	if o == nil {
		return false
	}
	switch o.Tag {
	case TagBool:
		return o.Bool
	case TagNumber:
		return o.Num != 0
	case TagString:
		return o.Str != ""
	default:
		return false
	}
}

// Equal implements spec §4.2's equality. Absent equals absent; absent
// never equals a present value but that is not an error (only Less treats
// absent operands as an error). Any other cross-type pair is an error.
// Same-tag primitives compare by value; classes compare by identity;
// instances always defer to __eq__, erroring when the class defines none.
func Equal(ctx *Context, a, b *Object) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	if a.Tag != b.Tag {
		return false, fmt.Errorf("Cannot compare objects for equality")
	}
	switch a.Tag {
	case TagNumber:
		return a.Num == b.Num, nil
	case TagString:
		return a.Str == b.Str, nil
	case TagBool:
		return a.Bool == b.Bool, nil
	case TagClass:
		return a.Class == b.Class, nil
	case TagInstance:
		if a.Instance.Class.FindMethod("__eq__") == nil {
			return false, fmt.Errorf("Cannot compare objects for equality")
		}
		result := a.Instance.Call(ctx, 0, 0, "__eq__", []*Object{InstanceObj(b.Instance)})
		return IsTrue(result), nil
	default:
		return false, fmt.Errorf("Cannot compare objects for equality")
	}
}

// Less implements spec §4.2's ordering. Absent operands are always an
// error: None has no position in any order.
func Less(ctx *Context, a, b *Object) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("Cannot compare objects for less")
	}
	if a.Tag != b.Tag {
		return false, fmt.Errorf("Cannot compare objects for less")
	}
	switch a.Tag {
	case TagNumber:
		return a.Num < b.Num, nil
	case TagString:
		return a.Str < b.Str, nil
	case TagBool:
		return !a.Bool && b.Bool, nil
	case TagInstance:
		if a.Instance.Class.FindMethod("__lt__") == nil {
			return false, fmt.Errorf("Cannot compare objects for less")
		}
		result := a.Instance.Call(ctx, 0, 0, "__lt__", []*Object{InstanceObj(b.Instance)})
		return IsTrue(result), nil
	default:
		return false, fmt.Errorf("Cannot compare objects for less")
	}
}

func NotEqual(ctx *Context, a, b *Object) (bool, error) {
	eq, err := Equal(ctx, a, b)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Greater is preserved exactly as the original defines it — ¬Less ∧ ¬Equal
// — rather than the more obvious Less(b, a). See spec.md §9 / SPEC_FULL.md
// §4.6: documented and kept, not "fixed".
func Greater(ctx *Context, a, b *Object) (bool, error) {
	lt, err := Less(ctx, a, b)
	if err != nil {
		return false, err
	}
	eq, err := Equal(ctx, a, b)
	if err != nil {
		return false, err
	}
	return !lt && !eq, nil
}

func LessOrEqual(ctx *Context, a, b *Object) (bool, error) {
	lt, err := Less(ctx, a, b)
	if err != nil {
		return false, err
	}
	if lt {
		return true, nil
	}
	return Equal(ctx, a, b)
}

func GreaterOrEqual(ctx *Context, a, b *Object) (bool, error) {
	lt, err := Less(ctx, a, b)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

// Render produces the text `print`/`str(...)` show for a value (spec §4.2):
// numbers in decimal, strings verbatim, booleans as True/False, None for
// absent, and for instances, the result of __str__ when the class defines
// it, else a stable implementation-defined identity label.
func Render(ctx *Context, o *Object) string {
	if o == nil {
		return "None"
	}
	switch o.Tag {
	case TagNumber:
		return strconv.FormatInt(o.Num, 10)
	case TagString:
		return o.Str
	case TagBool:
		if o.Bool {
			return "True"
		}
		return "False"
	case TagClass:
		return "Class " + o.Class.Name
	case TagInstance:
		return renderInstance(ctx, o.Instance)
	default:
		return "None"
	}
}

func renderInstance(ctx *Context, inst *Instance) string {
	if inst.Class.FindMethod("__str__") != nil {
		return Render(ctx, inst.Call(ctx, 0, 0, "__str__", nil))
	}
	return fmt.Sprintf("<%s object at %d>", inst.Class.Name, inst.identity(ctx))
}
