// Package ctype models C and C++ type expressions and parameter lists as
// they appear in declarations handed to the class model.
package ctype

import (
	"strings"
)

// DeclKind identifies a declarator applied on top of a base type.
type DeclKind int

const (
	DeclPointer DeclKind = iota
	DeclReference
	DeclRValueReference
	DeclArray
)

func (k DeclKind) String() string {
	switch k {
	case DeclPointer:
		return "pointer"
	case DeclReference:
		return "reference"
	case DeclRValueReference:
		return "rvalue_reference"
	case DeclArray:
		return "array"
	default:
		return "unknown"
	}
}

// Declarator is one level of indirection or one array dimension.
type Declarator struct {
	Kind     DeclKind
	Const    bool   // "* const"
	Volatile bool   // "* volatile"
	Size     string // array dimension, empty for "[]"
}

// Type is a base type name with cv-qualifiers and a declarator chain.
// Declarators are ordered from the base outward, so "const char **" is
// base "char", Const, two pointers.
type Type struct {
	Base     string
	Const    bool
	Volatile bool
	Decls    []Declarator
}

// Named returns a plain type with the given base name.
func Named(base string) Type {
	return Type{Base: base}
}

// IsZero reports whether t carries no base type.
func (t Type) IsZero() bool {
	return t.Base == ""
}

// Copy returns a deep copy of t.
func (t Type) Copy() Type {
	c := t
	if t.Decls != nil {
		c.Decls = make([]Declarator, len(t.Decls))
		copy(c.Decls, t.Decls)
	}
	return c
}

// WithBase returns a copy of t with its base name replaced.
func (t Type) WithBase(base string) Type {
	c := t.Copy()
	c.Base = base
	return c
}

// Pointer returns a pointer to t.
func (t Type) Pointer() Type {
	c := t.Copy()
	c.Decls = append(c.Decls, Declarator{Kind: DeclPointer})
	return c
}

func (t Type) outer() (Declarator, bool) {
	if len(t.Decls) == 0 {
		return Declarator{}, false
	}
	return t.Decls[len(t.Decls)-1], true
}

// IsPointer reports whether the outermost declarator is a pointer.
func (t Type) IsPointer() bool {
	d, ok := t.outer()
	return ok && d.Kind == DeclPointer
}

// IsReference reports whether the outermost declarator is an lvalue or
// rvalue reference.
func (t Type) IsReference() bool {
	d, ok := t.outer()
	return ok && (d.Kind == DeclReference || d.Kind == DeclRValueReference)
}

// IsArray reports whether the outermost declarator is an array dimension.
func (t Type) IsArray() bool {
	d, ok := t.outer()
	return ok && d.Kind == DeclArray
}

// IsConst reports whether the type itself is const-qualified. For
// "const char *" that is false, the pointer can be reassigned.
func (t Type) IsConst() bool {
	d, ok := t.outer()
	if !ok {
		return t.Const
	}
	return d.Kind == DeclPointer && d.Const
}

// IsVoid reports whether t is plain void.
func (t Type) IsVoid() bool {
	return t.Base == "void" && len(t.Decls) == 0
}

// String renders t in C declaration syntax without a declarator name.
func (t Type) String() string {
	return t.Declare("")
}

// Declare renders t declaring name, e.g. "const char *s" or "int v[4]".
func (t Type) Declare(name string) string {
	var b strings.Builder
	if t.Const {
		b.WriteString("const ")
	}
	if t.Volatile {
		b.WriteString("volatile ")
	}
	b.WriteString(t.Base)

	sep := " "
	var dims strings.Builder
	for _, d := range t.Decls {
		switch d.Kind {
		case DeclPointer:
			b.WriteString(sep)
			b.WriteString("*")
			sep = ""
			if d.Const {
				b.WriteString(" const")
				sep = " "
			}
			if d.Volatile {
				b.WriteString(" volatile")
				sep = " "
			}
		case DeclReference:
			b.WriteString(sep)
			b.WriteString("&")
			sep = ""
		case DeclRValueReference:
			b.WriteString(sep)
			b.WriteString("&&")
			sep = ""
		case DeclArray:
			dims.WriteString("[")
			dims.WriteString(d.Size)
			dims.WriteString("]")
		}
	}
	if name != "" {
		b.WriteString(sep)
		b.WriteString(name)
		sep = ""
	}
	if dims.Len() > 0 {
		b.WriteString(sep)
		b.WriteString(dims.String())
	}
	return b.String()
}
