// Package listing implements a backend that writes every registration as a
// line of text. It shows what a real language module would be asked to
// bind, in order.
package listing

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/skdltmxn/classwrap/accessor"
	"github.com/skdltmxn/classwrap/classmodel"
	"github.com/skdltmxn/classwrap/ctype"
)

// Backend writes one line per call to w and keeps the lines.
type Backend struct {
	classmodel.BaseBackend

	w         io.Writer
	indent    string
	action    string
	newObject bool
	lines     []string
	created   int
	aliased   int
}

var _ classmodel.Backend = (*Backend)(nil)

// New creates a listing backend writing to w. A nil w only records.
func New(w io.Writer) *Backend {
	if w == nil {
		w = io.Discard
	}
	return &Backend{w: w}
}

// Lines returns everything written so far, without indentation.
func (b *Backend) Lines() []string {
	return slices.Clone(b.lines)
}

// Counts returns the number of functions created and aliased.
func (b *Backend) Counts() (created, aliased int) {
	return b.created, b.aliased
}

func (b *Backend) printf(format string, args ...any) error {
	line := fmt.Sprintf(format, args...)
	b.lines = append(b.lines, line)
	_, err := fmt.Fprintln(b.w, b.indent+line)
	return err
}

func (b *Backend) ClassDecl(name, iname string, kind classmodel.ClassKind) error {
	if name == iname {
		return b.printf("declare %s %s", kind, name)
	}
	return b.printf("declare %s %s as %s", kind, name, iname)
}

func (b *Backend) OpenClass(ctx *classmodel.EmitContext, name, rename string, kind classmodel.ClassKind, strip bool) error {
	cls := ctx.Class()
	line := fmt.Sprintf("class %s", cls.FullName())
	if rename != "" {
		line += " as " + rename
	}
	if len(cls.Bases) > 0 {
		line += " : " + strings.Join(cls.Bases, ", ")
	}
	if cls.Abstract {
		line += " (abstract)"
	}
	err := b.printf("%s", line)
	b.indent = "  "
	return err
}

func (b *Backend) Pragma(ctx *classmodel.EmitContext, pragmas []classmodel.Pragma) error {
	for _, p := range pragmas {
		if err := b.printf("pragma %s %s = %s", p.Lang, p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// MemberFunc marks functions returning a new object before binding them.
func (b *Backend) MemberFunc(ctx *classmodel.EmitContext, name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	b.newObject = isNewObject(ctx.Current())
	defer func() { b.newObject = false }()
	return b.BaseBackend.MemberFunc(ctx, name, iname, ret, parms)
}

func (b *Backend) StaticFunc(ctx *classmodel.EmitContext, name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	b.newObject = isNewObject(ctx.Current())
	defer func() { b.newObject = false }()
	return b.BaseBackend.StaticFunc(ctx, name, iname, ret, parms)
}

func isNewObject(m classmodel.Member) bool {
	f, ok := m.(*classmodel.Function)
	return ok && f.NewObject
}

func (b *Backend) CloseClass(ctx *classmodel.EmitContext) error {
	b.indent = ""
	return b.printf("end %s", ctx.Class().Name)
}

func (b *Backend) Cleanup() error {
	b.indent = ""
	return b.printf("# %d functions, %d aliases", b.created, b.aliased)
}

func (b *Backend) CreateFunction(wrapper, iname string, ret ctype.Type, parms ctype.ParmList) error {
	b.created++
	action := b.action
	b.action = ""
	line := fmt.Sprintf("function %s = %s", iname, ret.Declare(wrapper+"("+parms.Declaration()+")"))
	if b.newObject {
		line += " (newobject)"
	}
	if err := b.printf("%s", line); err != nil {
		return err
	}
	if action == "" {
		return nil
	}
	return b.printf("  { %s }", action)
}

func (b *Backend) CreateCommand(wrapper, iname string) error {
	b.aliased++
	return b.printf("alias %s = %s", iname, wrapper)
}

func (b *Backend) LinkVariable(name, iname string, t ctype.Type, readOnly bool) error {
	line := fmt.Sprintf("variable %s = %s", iname, t.Declare(name))
	if readOnly {
		line += " (readonly)"
	}
	return b.printf("%s", line)
}

func (b *Backend) DeclareConstant(name, iname string, t ctype.Type, value string) error {
	return b.printf("constant %s = %s = %s", iname, t.Declare(name), value)
}

func (b *Backend) SetAction(action string) {
	b.action = action
}

func (b *Backend) PrintWrapper(w accessor.Wrapper) error {
	for _, line := range strings.Split(strings.TrimSuffix(w.String(), "\n"), "\n") {
		if err := b.printf("| %s", line); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) RegisterCast(derived, base string) error {
	return b.printf("cast %s -> %s", derived, base)
}

func (b *Backend) RememberPointer(t ctype.Type) error {
	return b.printf("pointer %s", t)
}
