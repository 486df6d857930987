// class.go — classes, methods, single inheritance, and instance binding
// (spec §3.4, §4.3).
//
// Method dispatch order and Call's closure-building (self plus positional
// params, nothing inherited lexically) are transliterated from
// runtime.cpp's Class::GetMethod and ClassInstance::Call. The
// findMethod-walks-to-Superclass shape is grounded on
// other_examples/sayotte-lox__class.go.
package mython

import "fmt"

// Method is a single def inside a class body: a name, its positional
// parameter names (not counting the implicit self), and a body node.
type Method struct {
	Name   string
	Params []string
	Body   Node
}

// Class is a named, single-inheritance method table (spec §3.4). Parent is
// nil for a class with no base.
type Class struct {
	Name    string
	Methods map[string]*Method
	Parent  *Class
}

func NewClass(name string, parent *Class) *Class {
	return &Class{Name: name, Methods: make(map[string]*Method), Parent: parent}
}

// FindMethod looks up name by name only (no arity in the key), walking the
// parent chain on a miss, per runtime.cpp's Class::GetMethod.
func (c *Class) FindMethod(name string) *Method {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.Methods[name]; ok {
			return m
		}
	}
	return nil
}

func (c *Class) HasMethod(name string) bool {
	return c.FindMethod(name) != nil
}

// Instance is a live object of some Class: a mutable field table plus a
// lazily assigned identity label for default printing.
type Instance struct {
	Class  *Class
	Fields map[string]*Object

	id         int
	idAssigned bool
}

func (inst *Instance) identity(ctx *Context) int {
	if !inst.idAssigned {
		inst.id = ctx.nextID()
		inst.idAssigned = true
	}
	return inst.id
}

// NewInstance allocates an instance of class and runs its __init__ (if any)
// against args, per runtime.cpp's NewInstance arity/presence check: a class
// with no __init__ accepts no constructor arguments at all.
func NewInstance(ctx *Context, line, col int, class *Class, args []*Object) *Instance {
	inst := &Instance{Class: class, Fields: make(map[string]*Object)}
	if m := class.FindMethod("__init__"); m != nil {
		if len(m.Params) != len(args) {
			panicRuntime(line, col, fmt.Sprintf(
				"%s.__init__() takes %d argument(s), got %d", class.Name, len(m.Params), len(args)))
		}
		inst.Call(ctx, line, col, "__init__", args)
	} else if len(args) != 0 {
		panicRuntime(line, col, fmt.Sprintf("%s() takes 0 arguments, got %d", class.Name, len(args)))
	}
	return inst
}

// Call invokes a named method on inst with a fresh closure holding only
// self and the method's positional parameters — runtime.cpp's
// ClassInstance::Call builds exactly this and nothing more; the method
// body sees no lexical access to whatever closure called it.
func (inst *Instance) Call(ctx *Context, line, col int, name string, args []*Object) *Object {
	m := inst.Class.FindMethod(name)
	if m == nil {
		panicRuntime(line, col, fmt.Sprintf("%s object has no method %q", inst.Class.Name, name))
	}
	if len(m.Params) != len(args) {
		panicRuntime(line, col, fmt.Sprintf(
			"%s.%s() takes %d argument(s), got %d", inst.Class.Name, name, len(m.Params), len(args)))
	}
	cl := NewClosure()
	cl.Set("self", InstanceObj(inst))
	for i, p := range m.Params {
		cl.Set(p, args[i])
	}
	return m.Body.Execute(cl, ctx)
}
