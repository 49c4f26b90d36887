// Package metrics counts emission events in Prometheus counters.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/skdltmxn/classwrap/classmodel"
)

const namespace = "classwrap"

// Recorder implements classmodel.Observer on a private registry, so every
// run starts from zero.
type Recorder struct {
	reg *prometheus.Registry

	// wrappers counts accessor functions by kind (method, static,
	// constructor, destructor, getter, setter) and outcome (created, aliased).
	wrappers *prometheus.CounterVec

	casts prometheus.Counter

	// classes counts classes by outcome (emitted, imported, skipped).
	classes *prometheus.CounterVec

	diagnostics prometheus.Counter
}

var _ classmodel.Observer = (*Recorder)(nil)

// New creates a recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	r := &Recorder{reg: reg}
	r.wrappers = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wrappers_total",
		Help:      "Accessor wrappers by kind and outcome",
	}, []string{"kind", "outcome"})
	r.casts = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "casts_total",
		Help:      "Derived to base casts registered with the backend",
	})
	r.classes = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classes_total",
		Help:      "Classes processed at emission by outcome",
	}, []string{"outcome"})
	r.diagnostics = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "diagnostics_total",
		Help:      "Warnings reported during collection and emission",
	})
	return r
}

// Registry returns the registry holding the counters.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) WrapperEmitted(kind, outcome string) {
	r.wrappers.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) CastRegistered() { r.casts.Inc() }

func (r *Recorder) ClassDone(outcome string) {
	r.classes.WithLabelValues(outcome).Inc()
}

func (r *Recorder) DiagnosticReported() { r.diagnostics.Inc() }

// WriteText writes every counter in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
