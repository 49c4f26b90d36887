// Package events reads declaration scripts: YAML lists of the events a
// C++ frontend would report while parsing an interface file. Replaying a
// script drives a classmodel.Collector without a real parser.
package events

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Event ops.
const (
	OpOpen           = "open"
	OpReopen         = "reopen"
	OpUnset          = "unset"
	OpClose          = "close"
	OpAbort          = "abort"
	OpFunction       = "function"
	OpStaticFunction = "static_function"
	OpConstructor    = "constructor"
	OpDestructor     = "destructor"
	OpVariable       = "variable"
	OpStaticVariable = "static_variable"
	OpConstant       = "constant"
	OpType           = "type"
	OpBases          = "bases"
	OpPragma         = "pragma"
	OpScope          = "scope"
	OpImport         = "import"
	OpAddMethods     = "addmethods"
)

// Script is a declaration script.
//
//	file: shapes.i
//	events:
//	  - {op: open, line: 3, name: Shape, kind: class}
//	  - {op: function, name: area, type: double, virtual: pure}
//	  - {op: close}
type Script struct {
	// File is reported in diagnostics and script errors.
	File   string  `yaml:"file"`
	Events []Event `yaml:"events" validate:"dive"`
}

// Event is one frontend report. Which fields matter depends on Op.
type Event struct {
	Op   string `yaml:"op" validate:"required,oneof=open reopen unset close abort function static_function constructor destructor variable static_variable constant type bases pragma scope import addmethods"`
	Line int    `yaml:"line" validate:"gte=0"`

	Name   string `yaml:"name"`
	IName  string `yaml:"iname"`
	Rename string `yaml:"rename"`
	Kind   string `yaml:"kind" validate:"omitempty,oneof=struct union class"`

	// Type is a C type expression, the return type for functions.
	Type string `yaml:"type"`
	// Parms is a C parameter list with optional defaults.
	Parms   string `yaml:"parms"`
	Virtual string `yaml:"virtual" validate:"omitempty,oneof=virtual pure"`
	Value   string `yaml:"value"`

	Names   []string `yaml:"names" validate:"omitempty,dive,required"`
	Lang    string   `yaml:"lang"`
	Objects []Object `yaml:"objects" validate:"dive"`

	// On switches the import and addmethods modes.
	On bool `yaml:"on"`

	// Code, NewObject and ReadOnly set the ambient state for this member.
	Code      string `yaml:"code"`
	NewObject bool   `yaml:"newobject"`
	ReadOnly  bool   `yaml:"readonly"`
}

// Object is an entry of a scope event.
type Object struct {
	Kind string `yaml:"kind" validate:"required,oneof=type var func namespace"`
	Name string `yaml:"name" validate:"required"`
}

// ScriptError reports an event that could not be applied.
type ScriptError struct {
	File string
	Line int
	Op   string
	Err  error
}

func (e *ScriptError) Error() string {
	file := e.File
	if file == "" {
		file = "<script>"
	}
	return fmt.Sprintf("%s:%d: %s: %v", file, e.Line, e.Op, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	return v
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("events: parse: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("events: invalid %s: %q", fe.Namespace(), fmt.Sprint(fe.Value()))
		}
		return nil, fmt.Errorf("events: %w", err)
	}
	return &s, nil
}

// Load reads the script at path. A script without a file name reports
// path in its errors.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.File == "" {
		s.File = path
	}
	return s, nil
}
