// Package classmodel buffers the classes and members a frontend reports,
// resolves inheritance once every class is known, and drives wrapper
// emission per class through a Backend.
package classmodel

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoCurrentClass indicates a member operation outside a class body.
	ErrNoCurrentClass = errors.New("classmodel: no current class")

	// ErrPipelineEmitted indicates a collection call after emission.
	ErrPipelineEmitted = errors.New("classmodel: pipeline already emitted")

	// ErrAlreadyEmitted indicates a second call to Emit.
	ErrAlreadyEmitted = errors.New("classmodel: emit called twice")

	// ErrBadKind indicates a class kind other than struct, union or class.
	ErrBadKind = errors.New("classmodel: bad class kind")
)

// EmitError reports a backend failure while emitting a class.
type EmitError struct {
	Class  string // class being emitted
	Member string // member being emitted, empty for class level calls
	Err    error  // underlying error
}

func (e *EmitError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("classmodel: emit %s::%s: %v", e.Class, e.Member, e.Err)
	}
	return fmt.Sprintf("classmodel: emit %s: %v", e.Class, e.Err)
}

func (e *EmitError) Unwrap() error { return e.Err }

// Location is a position in the frontend's input.
type Location struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("line %d", l.Line)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Diagnostic is an advisory message. Diagnostics never stop the pipeline.
type Diagnostic struct {
	Loc     Location
	Message string
}

func (d Diagnostic) String() string {
	return d.Loc.String() + ": Warning. " + d.Message
}
