package ctype

import (
	"fmt"
	"strings"
)

// Parm is one entry of a parameter list.
type Parm struct {
	Type  Type
	Name  string
	Value string // default value, verbatim
}

// NameOr returns the parameter name, or "argN" when the declaration left it
// unnamed.
func (p Parm) NameOr(i int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("arg%d", i)
}

// IsVarargs reports whether p is the "..." marker.
func (p Parm) IsVarargs() bool {
	return p.Type.Base == "..."
}

func (p Parm) String() string {
	if p.IsVarargs() {
		return "..."
	}
	s := p.Type.Declare(p.Name)
	if p.Value != "" {
		s += " = " + p.Value
	}
	return s
}

// ParmList is an ordered parameter list.
type ParmList []Parm

// String renders only the parameter types separated by commas, the form
// used in wrapper keys: "int,const char *".
func (l ParmList) String() string {
	parts := make([]string, len(l))
	for i, p := range l {
		if p.IsVarargs() {
			parts[i] = "..."
			continue
		}
		parts[i] = p.Type.String()
	}
	return strings.Join(parts, ",")
}

// ProtoString renders types with their declared names, no defaults. Member
// signatures are built from it.
func (l ParmList) ProtoString() string {
	parts := make([]string, len(l))
	for i, p := range l {
		if p.IsVarargs() {
			parts[i] = "..."
			continue
		}
		parts[i] = p.Type.Declare(p.Name)
	}
	return strings.Join(parts, ",")
}

// Declaration renders the list as a C parameter declaration, naming
// unnamed parameters argN.
func (l ParmList) Declaration() string {
	if len(l) == 0 {
		return "void"
	}
	parts := make([]string, len(l))
	for i, p := range l {
		if p.IsVarargs() {
			parts[i] = "..."
			continue
		}
		parts[i] = p.Type.Declare(p.NameOr(i))
	}
	return strings.Join(parts, ", ")
}

// Names returns the argument names used by Declaration.
func (l ParmList) Names() []string {
	names := make([]string, 0, len(l))
	for i, p := range l {
		if p.IsVarargs() {
			continue
		}
		names = append(names, p.NameOr(i))
	}
	return names
}

// Copy returns a deep copy of l.
func (l ParmList) Copy() ParmList {
	if l == nil {
		return nil
	}
	c := make(ParmList, len(l))
	for i, p := range l {
		c[i] = Parm{Type: p.Type.Copy(), Name: p.Name, Value: p.Value}
	}
	return c
}

// ParseParm parses a single parameter declaration such as
// "const char *name = 0".
func ParseParm(s string) (Parm, error) {
	s = strings.TrimSpace(s)
	if s == "..." {
		return Parm{Type: Named("...")}, nil
	}
	decl, value := s, ""
	if i := indexTopLevel(s, '='); i >= 0 {
		decl = strings.TrimSpace(s[:i])
		value = strings.TrimSpace(s[i+1:])
	}
	t, name, err := parseDecl(decl)
	if err != nil {
		return Parm{}, fmt.Errorf("parameter %q: %w", s, err)
	}
	return Parm{Type: t, Name: name, Value: value}, nil
}

// ParseParms parses a comma separated parameter list. An empty list and
// "void" both yield a nil list.
func ParseParms(s string) (ParmList, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "void" {
		return nil, nil
	}
	fields, err := splitTopLevel(s)
	if err != nil {
		return nil, err
	}
	list := make(ParmList, 0, len(fields))
	for _, f := range fields {
		p, err := ParseParm(f)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// MustParseParms is like ParseParms but panics on error.
func MustParseParms(s string) ParmList {
	l, err := ParseParms(s)
	if err != nil {
		panic(err)
	}
	return l
}

func splitTopLevel(s string) ([]string, error) {
	var (
		fields []string
		depth  int
		quote  byte
		start  int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '<', '(', '[', '{':
			depth++
		case '>', ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w in %q", ErrUnbalanced, s)
			}
		case ',':
			if depth == 0 {
				fields = append(fields, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 || quote != 0 {
		return nil, fmt.Errorf("%w in %q", ErrUnbalanced, s)
	}
	fields = append(fields, strings.TrimSpace(s[start:]))
	return fields, nil
}

func indexTopLevel(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
