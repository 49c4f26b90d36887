package scope

import (
	"bytes"
	"fmt"
	"slices"
)

// A Scope maintains the set of named entities a frontend declared inside a
// class body, and a link to the immediately surrounding (outer) scope.
// The class model treats it as opaque: it only stores it and merges base
// scopes into the active one.
type Scope struct {
	Name    string
	Outer   *Scope
	Objects map[string]*Object
}

// NewScope creates a new scope nested in the outer scope.
func NewScope(name string, outer *Scope) *Scope {
	const n = 4 // initial scope capacity
	return &Scope{Name: name, Outer: outer, Objects: make(map[string]*Object, n)}
}

// Lookup returns the object with the given name if it is found in scope s,
// otherwise it returns nil. Outer scopes are ignored.
func (s *Scope) Lookup(name string) *Object {
	if s == nil {
		return nil
	}
	return s.Objects[name]
}

// LookupParent searches s and then every outer scope.
func (s *Scope) LookupParent(name string) *Object {
	for ; s != nil; s = s.Outer {
		if obj := s.Objects[name]; obj != nil {
			return obj
		}
	}
	return nil
}

// Insert attempts to insert a named object obj into the scope s.
// If the scope already contains an object alt with the same name,
// Insert leaves the scope unchanged and returns alt. Otherwise
// it inserts obj and returns nil.
func (s *Scope) Insert(obj *Object) (alt *Object) {
	if alt = s.Objects[obj.Name]; alt == nil {
		s.Objects[obj.Name] = obj
		if obj.Decl == nil {
			obj.Decl = s
		}
	}
	return
}

// Merge inserts every object of other that s does not define yet and
// returns how many were added. Objects keep their declaring scope.
func (s *Scope) Merge(other *Scope) int {
	if other == nil || other == s {
		return 0
	}
	n := 0
	for _, name := range other.Names() {
		if s.Insert(other.Objects[name]) == nil {
			n++
		}
	}
	return n
}

// Len returns the number of objects declared directly in s.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Objects)
}

// Names returns the object names of s, sorted.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Objects))
	for name := range s.Objects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Debugging support
func (s *Scope) String() string {
	var buf bytes.Buffer
	if s == nil {
		return "scope <nil> {}\n"
	}
	fmt.Fprintf(&buf, "scope %s {", s.Name)
	if len(s.Objects) > 0 {
		fmt.Fprintln(&buf)
		for _, name := range s.Names() {
			obj := s.Objects[name]
			fmt.Fprintf(&buf, "\t%s %s\n", obj.Kind, obj.Name)
		}
	}
	fmt.Fprintf(&buf, "}\n")
	return buf.String()
}

// Object describes a named entity such as a type, variable, function or
// namespace.
type Object struct {
	Kind ObjKind
	Name string // declared name
	Decl *Scope // declaring scope, or nil
	Data any    // frontend data for that object; or nil
}

// NewObj creates a new object of a given kind and name.
func NewObj(kind ObjKind, name string) *Object {
	return &Object{Kind: kind, Name: name}
}

// ObjKind describes what an object represents.
type ObjKind int

// The list of possible Object kinds.
const (
	ObjBad ObjKind = iota // for error handling
	ObjType
	ObjVar
	ObjFunc
	ObjNamespace
)

var objKindStrings = [...]string{
	ObjBad:       "bad",
	ObjType:      "type",
	ObjVar:       "var",
	ObjFunc:      "func",
	ObjNamespace: "namespace",
}

func (kind ObjKind) String() string {
	if kind < 0 || int(kind) >= len(objKindStrings) {
		return "bad"
	}
	return objKindStrings[kind]
}

// ParseObjKind maps a kind name as printed by String back to its value.
func ParseObjKind(s string) (ObjKind, bool) {
	for k, name := range objKindStrings {
		if name == s {
			return ObjKind(k), true
		}
	}
	return ObjBad, false
}
