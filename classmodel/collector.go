package classmodel

import (
	"fmt"
	"slices"

	"github.com/skdltmxn/classwrap/ctype"
	"github.com/skdltmxn/classwrap/scope"
)

// Collector receives declaration events from a frontend while the input is
// parsed. One class is current at a time; member operations attach to it.
type Collector struct {
	p       *Pipeline
	current *Class

	// ambient state read when a member is created
	loc        Location
	addMethods bool
	code       string
	newObject  bool
	readOnly   bool
	importMode bool
}

// Current returns the class members attach to, or nil.
func (c *Collector) Current() *Class {
	return c.current
}

// SetLocation sets the source position recorded on new classes, members,
// pragmas and diagnostics.
func (c *Collector) SetLocation(file string, line int) {
	c.loc = Location{File: file, Line: line}
}

// Location returns the current source position.
func (c *Collector) Location() Location {
	return c.loc
}

// SetAddMethods marks members registered from now on as added methods.
// Open resets it.
func (c *Collector) SetAddMethods(on bool) {
	c.addMethods = on
}

// SetCode attaches a code snippet to the next member registered in
// addmethods mode.
func (c *Collector) SetCode(code string) {
	c.code = code
}

// SetNewObject marks the next function as returning a new object.
func (c *Collector) SetNewObject(on bool) {
	c.newObject = on
}

// SetReadOnly makes variables registered from now on read-only.
func (c *Collector) SetReadOnly(on bool) {
	c.readOnly = on
}

// SetImportMode marks classes opened from now on as imported.
func (c *Collector) SetImportMode(on bool) {
	c.importMode = on
}

func (c *Collector) ready() error {
	if c.p.emitted {
		return ErrPipelineEmitted
	}
	return nil
}

func (c *Collector) class() (*Class, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if c.current == nil {
		return nil, ErrNoCurrentClass
	}
	return c.current, nil
}

// info builds the common attributes of a new member from the ambient state
// and consumes the one-shot parts of it.
func (c *Collector) info(name, iname string) MemberInfo {
	info := MemberInfo{
		Name:      name,
		IName:     iname,
		NewMethod: c.addMethods,
		Loc:       c.loc,
	}
	if c.addMethods {
		info.Code = c.code
	}
	c.code = ""
	return info
}

func (c *Collector) newClass(name string, kind ClassKind) *Class {
	cls := newClass(name, kind, c.loc)
	cls.ImportMode = c.importMode
	cls.GenerateDefault = c.p.opts.GenerateDefault
	c.p.reg.append(cls)
	return cls
}

// Open starts a class definition. A class already defined under name is
// shadowed by a new record; a placeholder is completed in place.
func (c *Collector) Open(name, rename string, kind ClassKind) error {
	if err := c.ready(); err != nil {
		return err
	}
	if _, err := ParseClassKind(string(kind)); err != nil {
		return err
	}

	cls := c.p.reg.Search(name)
	switch {
	case cls == nil, cls.Kind != KindNone:
		cls = c.newClass(name, kind)
	default:
		cls.Kind = kind
		cls.State = StatePopulating
	}
	if rename != "" {
		cls.Rename = rename
	}
	c.current = cls
	c.addMethods = false
	c.p.log.Debug("open class", "class", name, "kind", kind, "records", c.p.reg.Len())
	return nil
}

// Reopen makes an existing class current so members can be added outside
// its original body. An unknown name yields a placeholder and a warning.
func (c *Collector) Reopen(name string) error {
	if err := c.ready(); err != nil {
		return err
	}
	cls := c.p.reg.Search(name)
	if cls == nil {
		c.p.warnf(c.loc, "class %s undefined", name)
		cls = c.newClass(name, KindNone)
	}
	c.current = cls
	return nil
}

// Unset clears the current class without closing it.
func (c *Collector) Unset() {
	c.current = nil
}

// Close ends the current class definition. A non-empty rename names a class
// that was anonymous until a typedef gave it one.
func (c *Collector) Close(rename string) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	c.current = nil
	return c.finish(cls, rename)
}

// finish closes cls and declares it to the backend.
func (c *Collector) finish(cls *Class, rename string) error {
	if rename != "" {
		cls.Name = rename
		cls.Strip = true
	}
	if c.p.opts.CPlusPlus {
		cls.Strip = true
	}
	cls.State = StateClosed

	if err := c.p.backend.ClassDecl(cls.Name, cls.IName(), cls.Kind); err != nil {
		return fmt.Errorf("classmodel: declare class %s: %w", cls.Name, err)
	}
	return nil
}

// Abort marks the current class as unrecoverable. It is kept in the
// registry but skipped at emission.
func (c *Collector) Abort() error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	cls.Error = true
	c.current = nil
	c.p.log.Debug("abort class", "class", cls.Name)
	return nil
}

// AddFunction registers a member function.
func (c *Collector) AddFunction(name, iname string, ret ctype.Type, parms ctype.ParmList, virt VirtualKind) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	f := &Function{
		MemberInfo: c.info(name, iname),
		Type:       ret.Copy(),
		Parms:      parms.Copy(),
		NewObject:  c.newObject,
	}
	f.Virtual = virt
	c.newObject = false
	c.p.reg.addFunction(cls, f, nil)
	return nil
}

// AddStaticFunction registers a static member function.
func (c *Collector) AddStaticFunction(name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	f := &Function{
		MemberInfo: c.info(name, iname),
		Type:       ret.Copy(),
		Parms:      parms.Copy(),
		NewObject:  c.newObject,
	}
	c.newObject = false
	c.p.reg.addStaticFunction(cls, f, nil)
	return nil
}

// AddConstructor registers a constructor. iname may be empty.
func (c *Collector) AddConstructor(name, iname string, parms ctype.ParmList) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	c.p.reg.addConstructor(cls, &Constructor{MemberInfo: c.info(name, iname), Parms: parms.Copy()}, nil)
	return nil
}

// AddDestructor registers a destructor. A second destructor is ignored.
func (c *Collector) AddDestructor(name, iname string) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	c.p.reg.addDestructor(cls, &Destructor{MemberInfo: c.info(name, iname)}, nil)
	return nil
}

// AddVariable registers a data member.
func (c *Collector) AddVariable(name, iname string, t ctype.Type) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	v := &Variable{MemberInfo: c.info(name, iname), Type: t.Copy(), ReadOnly: c.readOnly}
	c.p.reg.addVariable(cls, v, nil)
	return nil
}

// AddStaticVariable registers a static data member.
func (c *Collector) AddStaticVariable(name, iname string, t ctype.Type) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	v := &Variable{MemberInfo: c.info(name, iname), Type: t.Copy(), ReadOnly: c.readOnly}
	c.p.reg.addStaticVariable(cls, v, nil)
	return nil
}

// AddConstant registers a class constant and makes its name a local type
// of the class.
func (c *Collector) AddConstant(name, iname string, t ctype.Type, value string) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	k := &Constant{MemberInfo: c.info(name, iname), Type: t.Copy(), Value: value}
	c.p.reg.addConstant(cls, k, nil)
	return nil
}

// DeclareBases records the base classes of the current class and merges
// their scopes into it.
func (c *Collector) DeclareBases(names []string) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	cls.Bases = slices.Clone(names)
	return c.InheritScope(names)
}

// AddPragma attaches a pragma to the current class.
func (c *Collector) AddPragma(lang, name, value string) error {
	cls, err := c.class()
	if err != nil {
		return err
	}
	cls.Pragmas = append(cls.Pragmas, Pragma{Lang: lang, Name: name, Value: value, Loc: c.loc})
	return nil
}

// RegisterType records a type nested in the current class. Outside a
// class it does nothing.
func (c *Collector) RegisterType(name string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.current != nil {
		c.current.Local.Register(c.current.Name, name)
	}
	return nil
}

// RegisterScope stores the frontend's scope handle on the current class.
// Outside a class it does nothing.
func (c *Collector) RegisterScope(s *scope.Scope) error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.current != nil {
		c.current.Scope = s
	}
	return nil
}

// InheritScope merges the scope handle and local type table of each named
// base into the current class. Entries already present are kept.
func (c *Collector) InheritScope(names []string) error {
	if err := c.ready(); err != nil {
		return err
	}
	cls := c.current
	if cls == nil {
		return nil
	}
	for _, name := range names {
		bc := c.p.reg.Search(name)
		if bc == nil {
			c.p.warnf(c.loc, "base class %s undefined (ignored)", name)
			continue
		}
		if bc == cls {
			continue
		}
		if bc.Scope != nil {
			cls.ensureScope().Merge(bc.Scope)
		}
		cls.Local.Merge(bc.Local)
	}
	return nil
}
