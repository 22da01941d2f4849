// Package emit provides observability events for the walker package: a
// pluggable sink that receives one Event per emission, reset, exhaustion,
// and recoverable anomaly a ModelWalker produces.
package emit

// Event is an observability event emitted during a walk.
type Event struct {
	// RunID identifies the Walk invocation that produced this event.
	RunID string

	// Step is the emission's step index (1-indexed), or zero for
	// walk-level events that are not tied to a specific emission.
	Step int

	// NodeName names the node the event concerns, empty for walk-level
	// events.
	NodeName string

	// Msg is a short, stable machine-matchable event kind, e.g.
	// "emission", "reset", "exhausted", "initial_step_overshoot".
	Msg string

	// Meta carries event-specific structured data, such as the
	// consumer's type name or the reset's triggering node.
	Meta map[string]any
}
