package classmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skdltmxn/classwrap/accessor"
	"github.com/skdltmxn/classwrap/ctype"
)

// recorder is a Backend that keeps every call as a line of text.
type recorder struct {
	BaseBackend
	calls   []string
	wrapped []accessor.Wrapper
	current []Member // ctx.Current() seen by MemberFunc
	fail    string   // op that returns errBackend
}

var errBackend = errors.New("backend failure")

func (r *recorder) add(op string, args ...any) error {
	parts := []string{op}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	r.calls = append(r.calls, strings.Join(parts, " "))
	if op == r.fail {
		return errBackend
	}
	return nil
}

// only returns the calls starting with op.
func (r *recorder) only(op string) []string {
	var out []string
	for _, c := range r.calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) ClassDecl(name, iname string, kind ClassKind) error {
	return r.add("decl", name, iname, kind)
}

func (r *recorder) OpenClass(ctx *EmitContext, name, rename string, kind ClassKind, strip bool) error {
	return r.add("open", name)
}

func (r *recorder) Pragma(ctx *EmitContext, pragmas []Pragma) error {
	for _, p := range pragmas {
		if err := r.add("pragma", p.Lang, p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (r *recorder) MemberFunc(ctx *EmitContext, name, iname string, ret ctype.Type, parms ctype.ParmList) error {
	r.current = append(r.current, ctx.Current())
	if err := r.add("member_func", iname, "("+parms.ProtoString()+")"); err != nil {
		return err
	}
	return r.BaseBackend.MemberFunc(ctx, name, iname, ret, parms)
}

func (r *recorder) Constructor(ctx *EmitContext, name, iname string, parms ctype.ParmList) error {
	if err := r.add("constructor", name, "("+parms.ProtoString()+")"); err != nil {
		return err
	}
	return r.BaseBackend.Constructor(ctx, name, iname, parms)
}

func (r *recorder) Destructor(ctx *EmitContext, name, iname string) error {
	if err := r.add("destructor", name); err != nil {
		return err
	}
	return r.BaseBackend.Destructor(ctx, name, iname)
}

func (r *recorder) Variable(ctx *EmitContext, name, iname string, t ctype.Type, readOnly bool) error {
	if err := r.add("variable", iname, "("+t.String()+")", readOnly); err != nil {
		return err
	}
	return r.BaseBackend.Variable(ctx, name, iname, t, readOnly)
}

func (r *recorder) Inherit(ctx *EmitContext, bases []string) error {
	if err := r.add("inherit", strings.Join(bases, ",")); err != nil {
		return err
	}
	return r.BaseBackend.Inherit(ctx, bases)
}

func (r *recorder) CloseClass(ctx *EmitContext) error {
	return r.add("close", ctx.Class().Name)
}

func (r *recorder) Cleanup() error {
	return r.add("cleanup")
}

func (r *recorder) CreateFunction(wrapper, iname string, ret ctype.Type, parms ctype.ParmList) error {
	return r.add("create_function", wrapper, iname)
}

func (r *recorder) CreateCommand(wrapper, iname string) error {
	return r.add("create_command", wrapper, iname)
}

func (r *recorder) LinkVariable(name, iname string, t ctype.Type, readOnly bool) error {
	return r.add("link_variable", name, iname, readOnly)
}

func (r *recorder) DeclareConstant(name, iname string, t ctype.Type, value string) error {
	return r.add("declare_constant", name, iname, value)
}

func (r *recorder) SetAction(action string) {
	r.calls = append(r.calls, "action "+action)
}

func (r *recorder) PrintWrapper(w accessor.Wrapper) error {
	r.wrapped = append(r.wrapped, w)
	return r.add("print_wrapper", w.Name)
}

func (r *recorder) RegisterCast(derived, base string) error {
	return r.add("cast", derived, base)
}

func (r *recorder) RememberPointer(t ctype.Type) error {
	return r.add("pointer", t.String())
}
