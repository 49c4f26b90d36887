package classmodel

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skdltmxn/classwrap/accessor"
	"github.com/skdltmxn/classwrap/ctype"
)

const tracerName = "github.com/skdltmxn/classwrap/classmodel"

// Wrapper kinds and outcomes reported to an Observer.
const (
	WrapperMethod      = "method"
	WrapperStatic      = "static"
	WrapperConstructor = "constructor"
	WrapperDestructor  = "destructor"
	WrapperGetter      = "getter"
	WrapperSetter      = "setter"

	OutcomeCreated = "created"
	OutcomeAliased = "aliased"

	ClassEmitted  = "emitted"
	ClassImported = "imported"
	ClassSkipped  = "skipped"
)

// Observer is notified of emission events, typically to count them.
type Observer interface {
	WrapperEmitted(kind, outcome string)
	CastRegistered()
	ClassDone(outcome string)
	DiagnosticReported()
}

type nopObserver struct{}

func (nopObserver) WrapperEmitted(string, string) {}
func (nopObserver) CastRegistered()               {}
func (nopObserver) ClassDone(string)              {}
func (nopObserver) DiagnosticReported()           {}

// Options configures a Pipeline.
type Options struct {
	CPlusPlus       bool            // C++ input: strip class keywords, new/delete accessors
	GenerateDefault bool            // synthesize missing constructors and destructors
	InheritMode     InheritMode     // what BaseBackend.Inherit replays
	Naming          accessor.Naming // accessor name formats
	Logger          *slog.Logger
	Tracer          trace.Tracer
	Observer        Observer
}

// DefaultOptions returns C++ mode with default synthesis, full member
// inheritance and the stock naming.
func DefaultOptions() Options {
	return Options{
		CPlusPlus:       true,
		GenerateDefault: true,
		InheritMode:     InheritAll,
		Naming:          accessor.DefaultNaming(),
	}
}

// Pipeline owns the registry, hands out the Collector during collection
// and emits every class once collection is done.
type Pipeline struct {
	opts    Options
	reg     *Registry
	backend Backend
	col     *Collector
	emitted bool
	diags   []Diagnostic

	log    *slog.Logger
	tracer trace.Tracer
	obs    Observer
}

// New creates a pipeline emitting to b.
func New(b Backend, opts Options) *Pipeline {
	opts.Naming = opts.Naming.WithDefaults()
	p := &Pipeline{
		opts:    opts,
		reg:     NewRegistry(),
		backend: b,
		log:     opts.Logger,
		tracer:  opts.Tracer,
		obs:     opts.Observer,
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(tracerName)
	}
	if p.obs == nil {
		p.obs = nopObserver{}
	}
	p.col = &Collector{p: p}
	return p
}

// Collector returns the collection stage API.
func (p *Pipeline) Collector() *Collector { return p.col }

// Registry returns the class registry.
func (p *Pipeline) Registry() *Registry { return p.reg }

// Options returns the pipeline configuration.
func (p *Pipeline) Options() Options { return p.opts }

// Emitted reports whether Emit was called.
func (p *Pipeline) Emitted() bool { return p.emitted }

// Diagnostics returns the warnings reported so far.
func (p *Pipeline) Diagnostics() []Diagnostic {
	return slices.Clone(p.diags)
}

func (p *Pipeline) warnf(loc Location, format string, args ...any) {
	d := Diagnostic{Loc: loc, Message: fmt.Sprintf(format, args...)}
	p.diags = append(p.diags, d)
	p.obs.DiagnosticReported()
	p.log.Warn(d.Message, "file", loc.File, "line", loc.Line)
}

// Emit emits every class in declaration order. It runs once; collection
// calls fail afterwards.
func (p *Pipeline) Emit(ctx context.Context) error {
	if p.emitted {
		return ErrAlreadyEmitted
	}
	p.emitted = true

	ctx, span := p.tracer.Start(ctx, "classmodel.Pipeline.Emit",
		trace.WithAttributes(attribute.Int("classes", p.reg.Len())),
	)
	defer span.End()

	if cur := p.col.current; cur != nil {
		p.warnf(cur.Loc, "class %s still open at end of input", cur.Name)
		p.col.current = nil
		// a reopened class was declared by its own close
		if cur.State == StatePopulating {
			if err := p.col.finish(cur, ""); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}
		}
	}

	for _, cls := range p.reg.classes {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if err := p.emitClass(ctx, cls); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	if err := p.backend.Cleanup(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("classmodel: cleanup: %w", err)
	}

	span.SetAttributes(
		attribute.Int("wrappers", p.reg.dedup.Len()),
		attribute.Int("aliases", p.reg.dedup.Hits()),
		attribute.Int("casts", len(p.reg.order)),
	)
	span.SetStatus(codes.Ok, "")
	return nil
}

func (p *Pipeline) emitClass(ctx context.Context, cls *Class) error {
	switch {
	case cls.Error, cls.Kind == KindNone:
		p.obs.ClassDone(ClassSkipped)
		return nil
	case cls.ImportMode:
		// other classes may still refer to it by pointer
		if err := p.backend.RememberPointer(ctype.Named(cls.Name).Pointer()); err != nil {
			return &EmitError{Class: cls.Name, Err: err}
		}
		p.obs.ClassDone(ClassImported)
		return nil
	}

	_, span := p.tracer.Start(ctx, "classmodel.Pipeline.emitClass",
		trace.WithAttributes(
			attribute.String("class", cls.Name),
			attribute.String("kind", string(cls.Kind)),
			attribute.Int("bases", len(cls.Bases)),
		),
	)
	defer span.End()

	e := &EmitContext{p: p, class: cls}
	if err := e.emit(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("members", len(cls.Members)))
	cls.State = StateEmitted
	p.obs.ClassDone(ClassEmitted)
	return nil
}
