package classmodel

import (
	"slices"
)

// InheritMembers replays the members of base selected by mode into the
// class being emitted. Each replay goes through the ordinary registration
// path, so members the class already has are skipped. An undefined base is
// reported and ignored.
func (e *EmitContext) InheritMembers(base string, mode InheritMode) {
	bc := e.p.reg.Search(base)
	if bc == nil {
		e.p.warnf(e.class.Loc, "base class %s undefined (ignored)", base)
		return
	}
	if bc == e.class {
		return
	}
	for _, m := range slices.Clone(bc.Members) {
		e.p.reg.inherit(e.class, m, mode)
	}
}

// inherit dispatches one base member to the registration function of its
// kind. Constructors are never inherited.
func (r *Registry) inherit(c *Class, m Member, mode InheritMode) bool {
	rp := &replay{base: m.Info().Base}
	switch m := m.(type) {
	case *Function:
		if mode&InheritFunctions == 0 {
			return false
		}
		f := replica(m).(*Function)
		if f.Static {
			return r.addStaticFunction(c, f, rp)
		}
		return r.addFunction(c, f, rp)
	case *Destructor:
		if mode&InheritFunctions == 0 {
			return false
		}
		return r.addDestructor(c, replica(m).(*Destructor), rp)
	case *Variable:
		if mode&InheritVariables == 0 {
			return false
		}
		v := replica(m).(*Variable)
		if v.Static {
			return r.addStaticVariable(c, v, rp)
		}
		return r.addVariable(c, v, rp)
	case *Constant:
		if mode&InheritConstants == 0 {
			return false
		}
		return r.addConstant(c, replica(m).(*Constant), rp)
	case *Constructor:
		return false
	}
	return false
}

// InheritDecl runs the backend's Inherit callback for bases and then
// registers the casts of the whole hierarchy above the class.
func (e *EmitContext) InheritDecl(bases []string) error {
	if len(bases) == 0 {
		return nil
	}
	e.inheriting = true
	err := e.p.backend.Inherit(e, bases)
	e.inheriting = false
	if err != nil {
		return err
	}
	return e.GenerateTypes(bases)
}

// GenerateTypes walks the declared bases depth first and registers a cast
// from the class being emitted to every class found. A pair is registered
// at most once per registry, but the walk always continues into the bases
// of a base so longer chains are covered.
func (e *EmitContext) GenerateTypes(bases []string) error {
	return e.generateTypes(bases, map[*Class]bool{e.class: true})
}

func (e *EmitContext) generateTypes(bases []string, onPath map[*Class]bool) error {
	for _, name := range bases {
		bc := e.p.reg.Search(name)
		if bc == nil {
			continue
		}
		if onPath[bc] {
			e.p.warnf(e.class.Loc, "inheritance cycle through %s ignored", bc.Name)
			continue
		}
		if e.p.reg.markCast(e.class.Name, bc.Name) {
			if err := e.p.backend.RegisterCast(e.class.Name, bc.Name); err != nil {
				return err
			}
			e.p.obs.CastRegistered()
		}
		onPath[bc] = true
		err := e.generateTypes(bc.Bases, onPath)
		delete(onPath, bc)
		if err != nil {
			return err
		}
	}
	return nil
}
