package accessor

import (
	"fmt"
	"strings"

	"github.com/skdltmxn/classwrap/ctype"
)

// SelfName is the name of the object parameter of member accessors.
const SelfName = "self"

// Wrapper is a low-level C function wrapping one member operation.
type Wrapper struct {
	Name  string
	Type  ctype.Type     // return type
	Parms ctype.ParmList // including self for member accessors
	Code  string         // user supplied body, replaces the generated one
	Call  string         // the expression performing the operation
}

// Action returns the statement a backend puts in its own wrapper when no
// C function is printed: "result = self->area();" or "delete self;".
func (w Wrapper) Action() string {
	if w.Type.IsVoid() {
		return w.Call + ";"
	}
	return "result = " + w.Call + ";"
}

// String renders w as a C function definition.
func (w Wrapper) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s) {\n", w.Type.Declare(w.Name), w.Parms.Declaration())
	switch {
	case w.Code != "":
		for _, line := range strings.Split(strings.Trim(w.Code, "\n"), "\n") {
			b.WriteString("  ")
			b.WriteString(strings.TrimRight(line, " \t"))
			b.WriteByte('\n')
		}
	case w.Type.IsVoid():
		fmt.Fprintf(&b, "  %s;\n", w.Call)
	default:
		fmt.Fprintf(&b, "  return %s;\n", w.Call)
	}
	b.WriteString("}\n")
	return b.String()
}

func selfParm(class string) ctype.Parm {
	return ctype.Parm{Type: ctype.Named(class).Pointer(), Name: SelfName}
}

func callArgs(parms ctype.ParmList) string {
	return strings.Join(parms.Names(), ", ")
}

// MethodWrapper wraps member function member of class as name.
func MethodWrapper(name, class, member string, ret ctype.Type, parms ctype.ParmList, code string) Wrapper {
	args := parms.Copy()
	for i := range args {
		args[i].Name = args[i].NameOr(i)
		args[i].Value = ""
	}
	return Wrapper{
		Name:  name,
		Type:  ret.Copy(),
		Parms: append(ctype.ParmList{selfParm(class)}, args...),
		Code:  code,
		Call:  fmt.Sprintf("%s->%s(%s)", SelfName, member, callArgs(args)),
	}
}

// FunctionWrapper wraps a plain or static function callable as name.
func FunctionWrapper(name string, ret ctype.Type, parms ctype.ParmList, code string) Wrapper {
	args := parms.Copy()
	for i := range args {
		args[i].Name = args[i].NameOr(i)
		args[i].Value = ""
	}
	return Wrapper{
		Name:  name,
		Type:  ret.Copy(),
		Parms: args,
		Code:  code,
		Call:  fmt.Sprintf("%s(%s)", name, callArgs(args)),
	}
}

// ConstructorWrapper allocates a class instance, with new in C++ and
// calloc otherwise. C structs take no constructor arguments.
func ConstructorWrapper(name, class string, parms ctype.ParmList, code string, cplusplus bool) Wrapper {
	ptr := ctype.Named(class).Pointer()
	w := Wrapper{Name: name, Type: ptr, Code: code}
	if cplusplus {
		args := parms.Copy()
		for i := range args {
			args[i].Name = args[i].NameOr(i)
			args[i].Value = ""
		}
		w.Parms = args
		w.Call = fmt.Sprintf("new %s(%s)", class, callArgs(args))
		return w
	}
	w.Call = fmt.Sprintf("(%s) calloc(1, sizeof(%s))", ptr, class)
	return w
}

// DestructorWrapper releases a class instance, with delete in C++ and
// free otherwise.
func DestructorWrapper(name, class, code string, cplusplus bool) Wrapper {
	w := Wrapper{
		Name:  name,
		Type:  ctype.Named("void"),
		Parms: ctype.ParmList{selfParm(class)},
		Code:  code,
	}
	if cplusplus {
		w.Call = "delete " + SelfName
	} else {
		w.Call = fmt.Sprintf("free((char *) %s)", SelfName)
	}
	return w
}

// GetterWrapper reads data member member.
func GetterWrapper(name, class, member string, t ctype.Type, code string) Wrapper {
	return Wrapper{
		Name:  name,
		Type:  t.Copy(),
		Parms: ctype.ParmList{selfParm(class)},
		Code:  code,
		Call:  fmt.Sprintf("%s->%s", SelfName, member),
	}
}

// SetterWrapper assigns data member member from a value parameter.
func SetterWrapper(name, class, member string, t ctype.Type, code string) Wrapper {
	return Wrapper{
		Name: name,
		Type: ctype.Named("void"),
		Parms: ctype.ParmList{
			selfParm(class),
			{Type: t.Copy(), Name: "value"},
		},
		Code: code,
		Call: fmt.Sprintf("%s->%s = value", SelfName, member),
	}
}
