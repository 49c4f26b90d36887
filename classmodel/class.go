package classmodel

import (
	"fmt"
	"strings"

	"github.com/skdltmxn/classwrap/scope"
)

// ClassKind is the keyword a class was declared with. The zero value marks
// a placeholder created by a reference before any definition was seen.
type ClassKind string

const (
	KindNone   ClassKind = ""
	KindStruct ClassKind = "struct"
	KindUnion  ClassKind = "union"
	KindClass  ClassKind = "class"
)

// ParseClassKind validates a class keyword.
func ParseClassKind(s string) (ClassKind, error) {
	switch k := ClassKind(s); k {
	case KindStruct, KindUnion, KindClass:
		return k, nil
	default:
		return KindNone, fmt.Errorf("%w: %q", ErrBadKind, s)
	}
}

// State is a class's lifecycle stage.
type State int

const (
	StateOpen State = iota
	StatePopulating
	StateClosed
	StateEmitted
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StatePopulating:
		return "populating"
	case StateClosed:
		return "closed"
	case StateEmitted:
		return "emitted"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Pragma is a language specific directive attached to a class.
type Pragma struct {
	Lang  string   `json:"lang"`
	Name  string   `json:"name"`
	Value string   `json:"value,omitempty"`
	Loc   Location `json:"loc"`
}

// InheritMode selects which member kinds InheritMembers replays.
type InheritMode uint8

const (
	InheritFunctions InheritMode = 1 << iota
	InheritVariables
	InheritConstants

	InheritAll = InheritFunctions | InheritVariables | InheritConstants
)

var inheritModeNames = []struct {
	mode InheritMode
	name string
}{
	{InheritFunctions, "functions"},
	{InheritVariables, "variables"},
	{InheritConstants, "constants"},
}

func (m InheritMode) String() string {
	if m == InheritAll {
		return "all"
	}
	var parts []string
	for _, n := range inheritModeNames {
		if m&n.mode != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseInheritMode combines mode names ("functions", "variables",
// "constants", "all").
func ParseInheritMode(names []string) (InheritMode, error) {
	var m InheritMode
	for _, name := range names {
		if name == "all" {
			m |= InheritAll
			continue
		}
		found := false
		for _, n := range inheritModeNames {
			if n.name == name {
				m |= n.mode
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("classmodel: unknown inherit mode %q", name)
		}
	}
	return m, nil
}

// Class is everything collected about one class declaration.
type Class struct {
	Name            string
	Rename          string
	Kind            ClassKind
	Strip           bool // drop the kind keyword when naming the type
	ImportMode      bool
	HasConstructor  bool
	HasDestructor   bool
	Abstract        bool
	GenerateDefault bool
	Error           bool
	Loc             Location
	Members         []Member
	Bases           []string
	Local           *scope.LocalTypes
	Scope           *scope.Scope
	Pragmas         []Pragma
	State           State
}

func newClass(name string, kind ClassKind, loc Location) *Class {
	c := &Class{
		Name:  name,
		Kind:  kind,
		Loc:   loc,
		Local: scope.NewLocalTypes(),
	}
	if kind != KindNone {
		c.State = StatePopulating
	}
	return c
}

// IName is the name the class is known by in the target language.
func (c *Class) IName() string {
	if c.Rename != "" {
		return c.Rename
	}
	return c.Name
}

// FullName is the C type name of the class, "struct Point" unless the
// declarator is stripped.
func (c *Class) FullName() string {
	if c.Strip || c.Kind == KindNone {
		return c.Name
	}
	return string(c.Kind) + " " + c.Name
}

// FindMember returns the first member whose interpreter name, or declared
// name when it has none, equals name.
func (c *Class) FindMember(name string) Member {
	for _, m := range c.Members {
		if m.Info().LookupName() == name {
			return m
		}
	}
	return nil
}

// ensureScope returns the class scope handle, creating an empty one when
// the frontend never registered any.
func (c *Class) ensureScope() *scope.Scope {
	if c.Scope == nil {
		c.Scope = scope.NewScope(c.Name, nil)
	}
	return c.Scope
}
