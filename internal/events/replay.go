package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/skdltmxn/classwrap/classmodel"
	"github.com/skdltmxn/classwrap/ctype"
	"github.com/skdltmxn/classwrap/scope"
)

var errMissingName = errors.New("missing name")

// Replay applies the events of s to col in order. It stops at the first
// event that fails and returns a *ScriptError for it.
func Replay(ctx context.Context, col *classmodel.Collector, s *Script) error {
	for _, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		col.SetLocation(s.File, ev.Line)
		if err := apply(col, ev); err != nil {
			return &ScriptError{File: s.File, Line: ev.Line, Op: ev.Op, Err: err}
		}
	}
	return nil
}

func apply(col *classmodel.Collector, ev Event) error {
	switch ev.Op {
	case OpOpen:
		kind := classmodel.KindClass
		if ev.Kind != "" {
			kind = classmodel.ClassKind(ev.Kind)
		}
		return col.Open(ev.Name, ev.Rename, kind)
	case OpReopen:
		if ev.Name == "" {
			return errMissingName
		}
		return col.Reopen(ev.Name)
	case OpUnset:
		col.Unset()
		return nil
	case OpClose:
		return col.Close(ev.Rename)
	case OpAbort:
		return col.Abort()
	case OpImport:
		col.SetImportMode(ev.On)
		return nil
	case OpAddMethods:
		col.SetAddMethods(ev.On)
		return nil
	case OpType:
		if ev.Name == "" {
			return errMissingName
		}
		return col.RegisterType(ev.Name)
	case OpBases:
		return col.DeclareBases(ev.Names)
	case OpPragma:
		return col.AddPragma(ev.Lang, ev.Name, ev.Value)
	case OpScope:
		return applyScope(col, ev)
	}
	return applyMember(col, ev)
}

func applyScope(col *classmodel.Collector, ev Event) error {
	name := ev.Name
	if name == "" && col.Current() != nil {
		name = col.Current().Name
	}
	s := scope.NewScope(name, nil)
	for _, o := range ev.Objects {
		kind, ok := scope.ParseObjKind(o.Kind)
		if !ok {
			return fmt.Errorf("bad object kind %q", o.Kind)
		}
		if alt := s.Insert(scope.NewObj(kind, o.Name)); alt != nil {
			return fmt.Errorf("%s redeclared in scope %s", o.Name, name)
		}
	}
	return col.RegisterScope(s)
}

func applyMember(col *classmodel.Collector, ev Event) error {
	if ev.Name == "" {
		return errMissingName
	}
	if ev.Code != "" {
		col.SetCode(ev.Code)
	}

	switch ev.Op {
	case OpConstructor:
		parms, err := ctype.ParseParms(ev.Parms)
		if err != nil {
			return err
		}
		return col.AddConstructor(ev.Name, ev.IName, parms)
	case OpDestructor:
		return col.AddDestructor(ev.Name, ev.IName)
	}

	t, err := parseType(ev.Type)
	if err != nil {
		return err
	}
	switch ev.Op {
	case OpFunction, OpStaticFunction:
		parms, err := ctype.ParseParms(ev.Parms)
		if err != nil {
			return err
		}
		col.SetNewObject(ev.NewObject)
		if ev.Op == OpStaticFunction {
			return col.AddStaticFunction(ev.Name, ev.IName, t, parms)
		}
		return col.AddFunction(ev.Name, ev.IName, t, parms, virtualKind(ev.Virtual))
	case OpVariable, OpStaticVariable:
		if ev.ReadOnly {
			col.SetReadOnly(true)
			defer col.SetReadOnly(false)
		}
		if ev.Op == OpStaticVariable {
			return col.AddStaticVariable(ev.Name, ev.IName, t)
		}
		return col.AddVariable(ev.Name, ev.IName, t)
	case OpConstant:
		return col.AddConstant(ev.Name, ev.IName, t, ev.Value)
	}
	return fmt.Errorf("unknown op %q", ev.Op)
}

// parseType reads a type expression; an empty one is int, as in C.
func parseType(s string) (ctype.Type, error) {
	if s == "" {
		return ctype.Named("int"), nil
	}
	return ctype.ParseType(s)
}

func virtualKind(s string) classmodel.VirtualKind {
	switch s {
	case "virtual":
		return classmodel.Virtual
	case "pure":
		return classmodel.PureVirtual
	}
	return classmodel.NotVirtual
}
