package classmodel

import (
	"iter"
	"slices"

	"github.com/skdltmxn/classwrap/accessor"
)

// Cast is a derived to base pointer conversion registered with the backend.
type Cast struct {
	Derived string `json:"derived"`
	Base    string `json:"base"`
}

// Registry is the append-only, declaration ordered set of every class ever
// opened, shadowed and errored records included. It also owns the wrapper
// dedup table and the set of casts already registered.
type Registry struct {
	classes []*Class
	dedup   *accessor.Dedup
	casts   map[Cast]struct{}
	order   []Cast
	lastID  int
}

// NewRegistry creates an empty registry with its own wrapper table.
func NewRegistry() *Registry {
	return &Registry{
		dedup: accessor.NewDedup(),
		casts: make(map[Cast]struct{}),
	}
}

// Search returns the most recently appended class with the given real
// name, or nil.
func (r *Registry) Search(name string) *Class {
	if name == "" {
		return nil
	}
	for i := len(r.classes) - 1; i >= 0; i-- {
		if r.classes[i].Name == name {
			return r.classes[i]
		}
	}
	return nil
}

// Len returns the number of class records.
func (r *Registry) Len() int {
	return len(r.classes)
}

// Classes returns the class records in declaration order.
func (r *Registry) Classes() []*Class {
	return slices.Clone(r.classes)
}

// All iterates the class records in declaration order.
func (r *Registry) All() iter.Seq2[int, *Class] {
	return slices.All(r.classes)
}

// Dedup returns the wrapper dedup table.
func (r *Registry) Dedup() *accessor.Dedup {
	return r.dedup
}

// Casts returns the registered casts in registration order.
func (r *Registry) Casts() []Cast {
	return slices.Clone(r.order)
}

func (r *Registry) append(c *Class) {
	r.classes = append(r.classes, c)
}

// markCast records derived→base and reports whether it was new.
func (r *Registry) markCast(derived, base string) bool {
	k := Cast{Derived: derived, Base: base}
	if _, ok := r.casts[k]; ok {
		return false
	}
	r.casts[k] = struct{}{}
	r.order = append(r.order, k)
	return true
}

// replay marks a registration as an inheritance replay from base, the
// class that textually defines the member.
type replay struct {
	base string
}

func (r *Registry) nextID() int {
	r.lastID++
	return r.lastID
}

// addMember assigns owning base and id and appends m to c.
func (r *Registry) addMember(c *Class, m Member, rp *replay) {
	info := m.Info()
	if rp != nil {
		info.Base = rp.base
		info.Inherited = true
	} else {
		info.Base = c.Name
	}
	info.ID = r.nextID()
	c.Members = append(c.Members, m)
}

// duplicate reports whether a replayed member named iname is already
// present in c.
func duplicate(c *Class, iname string, rp *replay) (Member, bool) {
	if rp == nil {
		return nil, false
	}
	m := c.FindMember(iname)
	return m, m != nil
}

func (r *Registry) addFunction(c *Class, f *Function, rp *replay) bool {
	if f.IName == "" {
		f.IName = f.Name
	}
	f.Signature = Signature(f.Name, f.Parms)
	if m, dup := duplicate(c, f.IName, rp); dup {
		// an unmodified virtual keeps the implementation identity of the
		// ancestor that defines it
		if existing, ok := m.(*Function); ok && f.Virtual != NotVirtual && existing.Virtual != NotVirtual &&
			existing.Signature == f.Signature {
			existing.Base = rp.base
		}
		return false
	}
	r.addMember(c, f, rp)
	if f.Virtual == PureVirtual {
		c.Abstract = true
	}
	return true
}

func (r *Registry) addStaticFunction(c *Class, f *Function, rp *replay) bool {
	if f.IName == "" {
		f.IName = f.Name
	}
	f.Static = true
	f.Signature = Signature(f.Name, f.Parms)
	if _, dup := duplicate(c, f.IName, rp); dup {
		return false
	}
	r.addMember(c, f, rp)
	return true
}

func (r *Registry) addConstructor(c *Class, k *Constructor, rp *replay) bool {
	r.addMember(c, k, rp)
	c.HasConstructor = true
	return true
}

func (r *Registry) addDestructor(c *Class, d *Destructor, rp *replay) bool {
	if c.HasDestructor {
		return false
	}
	r.addMember(c, d, rp)
	c.HasDestructor = true
	return true
}

func (r *Registry) addVariable(c *Class, v *Variable, rp *replay) bool {
	if v.IName == "" {
		v.IName = v.Name
	}
	if _, dup := duplicate(c, v.IName, rp); dup {
		return false
	}
	r.addMember(c, v, rp)
	return true
}

func (r *Registry) addStaticVariable(c *Class, v *Variable, rp *replay) bool {
	v.Static = true
	return r.addVariable(c, v, rp)
}

func (r *Registry) addConstant(c *Class, k *Constant, rp *replay) bool {
	if k.IName == "" {
		k.IName = k.Name
	}
	if _, dup := duplicate(c, k.IName, rp); dup {
		return false
	}
	r.addMember(c, k, rp)
	c.Local.Register(c.Name, k.Name)
	return true
}
