package classmodel

import (
	"github.com/skdltmxn/classwrap/accessor"
	"github.com/skdltmxn/classwrap/ctype"
)

// EmitContext is the state of one class emission. Backends receive it in
// every Language callback and use its helpers to generate accessors.
type EmitContext struct {
	p          *Pipeline
	class      *Class
	current    Member
	inheriting bool
}

// Class returns the class being emitted.
func (e *EmitContext) Class() *Class { return e.class }

// Current returns the member being emitted, nil for class level callbacks.
func (e *EmitContext) Current() Member { return e.current }

// Inheriting reports whether the backend's Inherit callback is running.
func (e *EmitContext) Inheriting() bool { return e.inheriting }

// Options returns the pipeline configuration.
func (e *EmitContext) Options() Options { return e.p.opts }

// Naming returns the accessor name formats.
func (e *EmitContext) Naming() accessor.Naming { return e.p.opts.Naming }

// Sink returns the low-level half of the backend.
func (e *EmitContext) Sink() Sink { return e.p.backend }

// Registry returns the class registry.
func (e *EmitContext) Registry() *Registry { return e.p.reg }

// OwningBase returns the class that defines the member named name in the
// class being emitted, or the class itself when it has no such member.
func (e *EmitContext) OwningBase(name string) string {
	if m := e.current; m != nil && m.Info().LookupName() == name && m.Info().Base != "" {
		return m.Info().Base
	}
	if m := e.class.FindMember(name); m != nil && m.Info().Base != "" {
		return m.Info().Base
	}
	return e.class.Name
}

// addMethods and code describe the member being emitted.
func (e *EmitContext) addMethods() bool {
	return e.current != nil && e.current.Info().NewMethod
}

func (e *EmitContext) code() string {
	if e.current == nil {
		return ""
	}
	return e.current.Info().Code
}

func (e *EmitContext) emit() error {
	cls := e.class
	b := e.p.backend

	if err := b.OpenClass(e, cls.Name, cls.Rename, cls.Kind, cls.Strip); err != nil {
		return &EmitError{Class: cls.Name, Err: err}
	}
	if err := b.Pragma(e, cls.Pragmas); err != nil {
		return &EmitError{Class: cls.Name, Err: err}
	}
	e.createDefault()
	if len(cls.Bases) > 0 {
		e.mergeBaseTypes()
		if err := e.InheritDecl(cls.Bases); err != nil {
			return &EmitError{Class: cls.Name, Err: err}
		}
	}
	for _, m := range cls.Members {
		if err := e.emitMember(m); err != nil {
			return &EmitError{Class: cls.Name, Member: m.Info().LookupName(), Err: err}
		}
	}
	if err := b.CloseClass(e); err != nil {
		return &EmitError{Class: cls.Name, Err: err}
	}
	return nil
}

// createDefault adds the constructor and destructor a class did not
// declare. Abstract classes get no constructor.
func (e *EmitContext) createDefault() {
	cls := e.class
	if !cls.GenerateDefault {
		return
	}
	if !cls.HasConstructor && !cls.Abstract {
		e.p.reg.addConstructor(cls, &Constructor{MemberInfo: MemberInfo{Name: cls.Name, Loc: cls.Loc}}, nil)
	}
	if !cls.HasDestructor {
		e.p.reg.addDestructor(cls, &Destructor{MemberInfo: MemberInfo{Name: cls.Name, Loc: cls.Loc}}, nil)
	}
}

// mergeBaseTypes makes nested types of the declared bases visible even if
// a base was completed after the derived class declared it.
func (e *EmitContext) mergeBaseTypes() {
	for _, name := range e.class.Bases {
		if bc := e.p.reg.Search(name); bc != nil && bc != e.class {
			e.class.Local.Merge(bc.Local)
		}
	}
}

// emitMember hands one member to the backend with types qualified through
// the class's local type table.
func (e *EmitContext) emitMember(m Member) error {
	e.current = m
	defer func() { e.current = nil }()

	b := e.p.backend
	lt := e.class.Local
	switch m := m.(type) {
	case *Function:
		ret := lt.Substitute(m.Type)
		parms := lt.SubstituteParms(m.Parms)
		if m.Static {
			return b.StaticFunc(e, m.Name, m.IName, ret, parms)
		}
		return b.MemberFunc(e, m.Name, m.IName, ret, parms)
	case *Constructor:
		if e.class.Abstract {
			return nil
		}
		return b.Constructor(e, m.Name, m.IName, lt.SubstituteParms(m.Parms))
	case *Destructor:
		return b.Destructor(e, m.Name, m.IName)
	case *Variable:
		t := lt.Substitute(m.Type)
		readOnly := m.ReadOnly || t.IsArray() || t.IsConst()
		if m.Static {
			return b.StaticVar(e, m.Name, m.IName, t, readOnly)
		}
		return b.Variable(e, m.Name, m.IName, t, readOnly)
	case *Constant:
		return b.DeclareConst(e, m.Name, m.IName, m.Type, m.Value)
	}
	return nil
}

// EmitMemberFunc generates the accessor of a member function, or aliases
// the accessor already generated for the same member of the owning base.
func (e *EmitContext) EmitMemberFunc(name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	if iname == "" {
		iname = name
	}
	cls := e.class
	n := e.p.opts.Naming
	sink := e.p.backend

	scriptName := n.MemberName(cls.IName(), iname)
	key := accessor.MethodKey(n.MemberName(e.OwningBase(iname), iname), parms.String())
	if prev, hit := e.p.reg.dedup.Resolve(key, scriptName); hit {
		e.p.obs.WrapperEmitted(WrapperMethod, OutcomeAliased)
		return sink.CreateCommand(prev, scriptName)
	}

	w := accessor.MethodWrapper(n.MemberName(cls.Name, name), cls.FullName(), name, ret, parms, e.code())
	if err := e.prepare(w); err != nil {
		return err
	}
	e.p.obs.WrapperEmitted(WrapperMethod, OutcomeCreated)
	return sink.CreateFunction(w.Name, scriptName, w.Type, w.Parms)
}

// EmitStaticFunc binds a static member function. Outside addmethods mode
// the function is called directly as Base::name.
func (e *EmitContext) EmitStaticFunc(name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	if iname == "" {
		iname = name
	}
	cls := e.class
	n := e.p.opts.Naming
	sink := e.p.backend
	bc := e.OwningBase(name)

	cname := bc + "::" + name
	if e.addMethods() {
		cname = n.MemberName(bc, name)
	}
	scriptName := n.MemberName(cls.IName(), iname)
	if prev, hit := e.p.reg.dedup.Resolve(accessor.StaticKey(cname, parms.String()), scriptName); hit {
		e.p.obs.WrapperEmitted(WrapperStatic, OutcomeAliased)
		return sink.CreateCommand(prev, scriptName)
	}

	e.p.obs.WrapperEmitted(WrapperStatic, OutcomeCreated)
	switch code := e.code(); {
	case !e.addMethods():
		return sink.CreateFunction(cname, scriptName, ret, parms)
	case code == "":
		return sink.CreateFunction(n.MemberName(cls.Name, name), scriptName, ret, parms)
	default:
		w := accessor.FunctionWrapper(cname, ret, parms, code)
		if err := sink.PrintWrapper(w); err != nil {
			return err
		}
		return sink.CreateFunction(cname, scriptName, w.Type, w.Parms)
	}
}

// EmitConstructor generates the allocation accessor of the class. It is
// never shared between classes.
func (e *EmitContext) EmitConstructor(name, iname string, parms ctype.ParmList) error {
	cls := e.class
	n := e.p.opts.Naming
	scriptName := n.ConstructName(cls.IName())
	if iname != "" {
		scriptName = n.ConstructName(iname)
	}
	w := accessor.ConstructorWrapper(n.ConstructName(cls.Name), cls.FullName(), parms, e.code(), e.p.opts.CPlusPlus)
	if err := e.prepare(w); err != nil {
		return err
	}
	e.p.obs.WrapperEmitted(WrapperConstructor, OutcomeCreated)
	return e.p.backend.CreateFunction(w.Name, scriptName, w.Type, w.Parms)
}

// EmitDestructor generates the release accessor of the class. It is never
// shared between classes.
func (e *EmitContext) EmitDestructor(name, iname string) error {
	cls := e.class
	n := e.p.opts.Naming
	scriptName := n.DestroyName(cls.IName())
	if iname != "" {
		scriptName = n.DestroyName(iname)
	}
	w := accessor.DestructorWrapper(n.DestroyName(cls.Name), cls.FullName(), e.code(), e.p.opts.CPlusPlus)
	if err := e.prepare(w); err != nil {
		return err
	}
	e.p.obs.WrapperEmitted(WrapperDestructor, OutcomeCreated)
	return e.p.backend.CreateFunction(w.Name, scriptName, w.Type, w.Parms)
}

// EmitVariableGet generates or aliases the getter of a data member.
func (e *EmitContext) EmitVariableGet(name, iname string, t ctype.Type) error {
	if iname == "" {
		iname = name
	}
	n := e.p.opts.Naming
	cname := n.GetName(n.MemberName(e.OwningBase(iname), name))
	scriptName := n.GetName(n.MemberName(e.class.IName(), iname))
	w := accessor.GetterWrapper(cname, e.class.FullName(), name, t, e.code())
	return e.variableAccessor(WrapperGetter, w, scriptName)
}

// EmitVariableSet generates or aliases the setter of a data member.
func (e *EmitContext) EmitVariableSet(name, iname string, t ctype.Type) error {
	if iname == "" {
		iname = name
	}
	n := e.p.opts.Naming
	cname := n.SetName(n.MemberName(e.OwningBase(iname), name))
	scriptName := n.SetName(n.MemberName(e.class.IName(), iname))
	w := accessor.SetterWrapper(cname, e.class.FullName(), name, t, e.code())
	return e.variableAccessor(WrapperSetter, w, scriptName)
}

func (e *EmitContext) variableAccessor(kind string, w accessor.Wrapper, scriptName string) error {
	sink := e.p.backend
	if prev, hit := e.p.reg.dedup.Resolve(w.Name, scriptName); hit {
		e.p.obs.WrapperEmitted(kind, OutcomeAliased)
		return sink.CreateCommand(prev, scriptName)
	}
	if err := e.prepare(w); err != nil {
		return err
	}
	e.p.obs.WrapperEmitted(kind, OutcomeCreated)
	return sink.CreateFunction(w.Name, scriptName, w.Type, w.Parms)
}

// prepare prints w when the member carries its own code in addmethods
// mode, or sets the inline action otherwise.
func (e *EmitContext) prepare(w accessor.Wrapper) error {
	switch {
	case e.addMethods() && w.Code != "":
		return e.p.backend.PrintWrapper(w)
	case !e.addMethods():
		e.p.backend.SetAction(w.Action())
	}
	return nil
}
