package classmodel

import (
	"github.com/skdltmxn/classwrap/accessor"
	"github.com/skdltmxn/classwrap/ctype"
)

// Language receives class level callbacks. Every callback except
// ClassDecl and Cleanup runs while one class is being emitted and gets
// that class's EmitContext.
type Language interface {
	// ClassDecl is called when a class is closed during collection.
	ClassDecl(name, iname string, kind ClassKind) error

	OpenClass(ctx *EmitContext, name, rename string, kind ClassKind, strip bool) error
	Pragma(ctx *EmitContext, pragmas []Pragma) error
	MemberFunc(ctx *EmitContext, name, iname string, ret ctype.Type, parms ctype.ParmList) error
	StaticFunc(ctx *EmitContext, name, iname string, ret ctype.Type, parms ctype.ParmList) error
	Constructor(ctx *EmitContext, name, iname string, parms ctype.ParmList) error
	Destructor(ctx *EmitContext, name, iname string) error
	Variable(ctx *EmitContext, name, iname string, t ctype.Type, readOnly bool) error
	StaticVar(ctx *EmitContext, name, iname string, t ctype.Type, readOnly bool) error
	DeclareConst(ctx *EmitContext, name, iname string, t ctype.Type, value string) error
	Inherit(ctx *EmitContext, bases []string) error
	CloseClass(ctx *EmitContext) error

	// Cleanup is called once after every class was emitted.
	Cleanup() error
}

// Sink receives the low-level registrations that bind target language
// names to generated code.
type Sink interface {
	// CreateFunction binds iname to the C function wrapper.
	CreateFunction(wrapper, iname string, ret ctype.Type, parms ctype.ParmList) error
	// CreateCommand binds iname to the function already bound as wrapper.
	CreateCommand(wrapper, iname string) error
	LinkVariable(name, iname string, t ctype.Type, readOnly bool) error
	DeclareConstant(name, iname string, t ctype.Type, value string) error
	// SetAction sets the statement the next CreateFunction performs.
	SetAction(action string)
	// PrintWrapper outputs a generated C function.
	PrintWrapper(w accessor.Wrapper) error
	RegisterCast(derived, base string) error
	RememberPointer(t ctype.Type) error
}

// Backend is what the pipeline emits to.
type Backend interface {
	Language
	Sink
}

// BaseBackend implements Language with the stock C accessor behavior on
// top of the EmitContext helpers. Backends embed it, supply a Sink and
// override the callbacks they need.
type BaseBackend struct{}

func (BaseBackend) ClassDecl(name, iname string, kind ClassKind) error { return nil }

func (BaseBackend) OpenClass(ctx *EmitContext, name, rename string, kind ClassKind, strip bool) error {
	return nil
}

func (BaseBackend) Pragma(ctx *EmitContext, pragmas []Pragma) error { return nil }

func (BaseBackend) MemberFunc(ctx *EmitContext, name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	return ctx.EmitMemberFunc(name, iname, ret, parms)
}

func (BaseBackend) StaticFunc(ctx *EmitContext, name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	return ctx.EmitStaticFunc(name, iname, ret, parms)
}

func (BaseBackend) Constructor(ctx *EmitContext, name, iname string, parms ctype.ParmList) error {
	return ctx.EmitConstructor(name, iname, parms)
}

func (BaseBackend) Destructor(ctx *EmitContext, name, iname string) error {
	return ctx.EmitDestructor(name, iname)
}

// Variable emits a getter and, unless the member is read-only, a setter.
func (BaseBackend) Variable(ctx *EmitContext, name, iname string, t ctype.Type, readOnly bool) error {
	if err := ctx.EmitVariableGet(name, iname, t); err != nil {
		return err
	}
	if readOnly {
		return nil
	}
	return ctx.EmitVariableSet(name, iname, t)
}

// StaticVar links Class::name directly.
func (BaseBackend) StaticVar(ctx *EmitContext, name, iname string, t ctype.Type, readOnly bool) error {
	cls := ctx.Class()
	return ctx.Sink().LinkVariable(cls.Name+"::"+name, ctx.Naming().MemberName(cls.IName(), iname), t, readOnly)
}

// DeclareConst declares Class::name as a constant. The literal value is
// passed along for backends that inline it.
func (BaseBackend) DeclareConst(ctx *EmitContext, name, iname string, t ctype.Type, value string) error {
	cls := ctx.Class()
	return ctx.Sink().DeclareConstant(cls.Name+"::"+name, ctx.Naming().MemberName(cls.IName(), iname), t, value)
}

// Inherit replays the members of every base with the configured mode.
func (BaseBackend) Inherit(ctx *EmitContext, bases []string) error {
	for _, b := range bases {
		ctx.InheritMembers(b, ctx.Options().InheritMode)
	}
	return nil
}

func (BaseBackend) CloseClass(ctx *EmitContext) error { return nil }

func (BaseBackend) Cleanup() error { return nil }
