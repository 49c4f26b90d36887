package classmodel

import (
	"github.com/skdltmxn/classwrap/ctype"
)

// VirtualKind tells whether a member function is virtual.
type VirtualKind int

const (
	NotVirtual VirtualKind = iota
	Virtual
	PureVirtual
)

func (v VirtualKind) String() string {
	switch v {
	case Virtual:
		return "virtual"
	case PureVirtual:
		return "pure_virtual"
	default:
		return "none"
	}
}

func (v VirtualKind) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// MemberKind identifies the variant of a Member.
type MemberKind int

const (
	KindFunction MemberKind = iota
	KindConstructor
	KindDestructor
	KindVariable
	KindConstant
)

func (k MemberKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// MemberInfo holds the attributes every member variant carries.
type MemberInfo struct {
	Name      string      `json:"name"`
	IName     string      `json:"iname,omitempty"` // interpreter name
	Static    bool        `json:"static,omitempty"`
	Virtual   VirtualKind `json:"virtual,omitempty"`
	NewMethod bool        `json:"new_method,omitempty"` // added in an addmethods block
	Loc       Location    `json:"loc"`
	Code      string      `json:"code,omitempty"`
	Base      string      `json:"base"` // owning base
	Inherited bool        `json:"inherited,omitempty"`
	ID        int         `json:"id"`
	Signature string      `json:"signature,omitempty"`
}

// Info returns the common attributes. It lets every variant satisfy
// Member through embedding.
func (m *MemberInfo) Info() *MemberInfo { return m }

// LookupName is the name FindMember matches: the interpreter name when one
// was given, otherwise the declared name.
func (m *MemberInfo) LookupName() string {
	if m.IName != "" {
		return m.IName
	}
	return m.Name
}

// Member is one of *Function, *Constructor, *Destructor, *Variable or
// *Constant.
type Member interface {
	Info() *MemberInfo
	Kind() MemberKind
	member()
}

// Function is a member function, static or not.
type Function struct {
	MemberInfo
	Type      ctype.Type     `json:"type"`
	Parms     ctype.ParmList `json:"parms,omitempty"`
	NewObject bool           `json:"new_object,omitempty"`
}

// Constructor is a class constructor.
type Constructor struct {
	MemberInfo
	Parms ctype.ParmList `json:"parms,omitempty"`
}

// Destructor is a class destructor.
type Destructor struct {
	MemberInfo
}

// Variable is a data member, static or not.
type Variable struct {
	MemberInfo
	Type     ctype.Type `json:"type"`
	ReadOnly bool       `json:"read_only,omitempty"`
}

// Constant is a class scoped constant, typically an enum value.
type Constant struct {
	MemberInfo
	Type  ctype.Type `json:"type"`
	Value string     `json:"value"`
}

func (*Function) Kind() MemberKind    { return KindFunction }
func (*Constructor) Kind() MemberKind { return KindConstructor }
func (*Destructor) Kind() MemberKind  { return KindDestructor }
func (*Variable) Kind() MemberKind    { return KindVariable }
func (*Constant) Kind() MemberKind    { return KindConstant }

func (*Function) member()    {}
func (*Constructor) member() {}
func (*Destructor) member()  {}
func (*Variable) member()    {}
func (*Constant) member()    {}

// Signature renders name(parms) with parameter names, the form compared
// when a derived class overrides a virtual function.
func Signature(name string, parms ctype.ParmList) string {
	return name + "(" + parms.ProtoString() + ")"
}

// replica returns a copy of m prepared for replay into a derived class.
// Owning base and id are assigned when the copy is registered.
func replica(m Member) Member {
	switch m := m.(type) {
	case *Function:
		c := *m
		c.Type = m.Type.Copy()
		c.Parms = m.Parms.Copy()
		c.Inherited = true
		return &c
	case *Constructor:
		c := *m
		c.Parms = m.Parms.Copy()
		c.Inherited = true
		return &c
	case *Destructor:
		c := *m
		c.Inherited = true
		return &c
	case *Variable:
		c := *m
		c.Type = m.Type.Copy()
		c.Inherited = true
		return &c
	case *Constant:
		c := *m
		c.Type = m.Type.Copy()
		c.Inherited = true
		return &c
	default:
		return nil
	}
}
