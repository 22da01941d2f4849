package walker

import (
	"fmt"

	"github.com/5l1v3r1/fuddly/walker/emit"
)

// Option configures a ModelWalker at construction time.
//
// Example:
//
//	w, err := walker.New(root, consumer,
//	    walker.WithMaxSteps(500),
//	    walker.WithInitialStep(120),
//	    walker.WithDeterminism(walker.Deterministic),
//	)
type Option func(*ModelWalker) error

// DeterminismMode selects whether the root is made deterministic or
// random before the first freeze. The two modes are mutually exclusive;
// the zero value leaves the root's existing mode untouched.
type DeterminismMode int

const (
	// Unspecified leaves the root node's determinism mode as-is.
	Unspecified DeterminismMode = iota
	// Deterministic forces every reachable node to always pick its next
	// variant in a fixed order.
	Deterministic
	// Random forces every reachable node to pick its next variant at
	// random.
	Random
)

// WithMaxSteps bounds the number of emissions a walk produces, counted
// from InitialStep. A value of -1 (the default) means unbounded — the
// walk runs until every node is exhausted.
func WithMaxSteps(n int) Option {
	return func(w *ModelWalker) error {
		if n != -1 && n <= 0 {
			return fmt.Errorf("walker: max steps must be positive or -1, got %d", n)
		}
		w.maxSteps = n
		return nil
	}
}

// WithInitialStep fast-forwards the walk: emissions with index below n
// are produced internally (so the data-model tree reaches the right
// state) but never delivered to the caller. The default is 1, meaning no
// fast-forward.
func WithInitialStep(n int) Option {
	return func(w *ModelWalker) error {
		if n <= 0 {
			return fmt.Errorf("walker: initial step must be positive, got %d", n)
		}
		w.initialStep = n
		return nil
	}
}

// WithDeterminism selects Deterministic or Random mode for the root
// node, applied recursively before the first freeze.
func WithDeterminism(mode DeterminismMode) Option {
	return func(w *ModelWalker) error {
		w.determinism = mode
		return nil
	}
}

// WithEmitter attaches an observability sink that receives an Event for
// every emission, reset, exhaustion, and recoverable anomaly the walk
// produces. The default is emit.NewNullEmitter().
func WithEmitter(e emit.Emitter) Option {
	return func(w *ModelWalker) error {
		if e != nil {
			w.emitter = e
		}
		return nil
	}
}

// WithMetrics attaches a Metrics sink. The default is a nil *Metrics,
// whose methods are all no-ops, so callers that don't need Prometheus can
// ignore this option entirely.
func WithMetrics(m *Metrics) Option {
	return func(w *ModelWalker) error {
		if m != nil {
			w.metrics = m
		}
		return nil
	}
}

// WithRunID stamps every emitted Event with an explicit run identifier,
// useful for correlating a walk's events across an external log or trace
// backend. The default generates a fresh identifier per call to Walk.
func WithRunID(id string) Option {
	return func(w *ModelWalker) error {
		w.runID = id
		return nil
	}
}
