package walker

import "errors"

// ErrContractViolation indicates a node's negotiation sequence was resumed
// past a directive the protocol declares terminal. This is a programming
// error, not a data-model condition: the negotiation of that node ends
// there, the walk goes on with the next node, and the error is surfaced
// through ModelWalker.Err. ConsumeNode returning false after a reset of
// the same node is not detected; it is handled as an ordinary decline.
var ErrContractViolation = errors.New("walker: consumer violated the negotiation protocol")

// ErrInitialStepOvershoot is recorded (not returned as a hard failure)
// when the total number of emissions produced by a walk is smaller than
// the requested InitialStep: every emission was fast-forwarded and none
// ever reached the caller. Rather than re-yield a stale tuple from the
// last internal iteration, the walk simply ends with zero deliveries,
// and the walker's Err reports this condition so the caller can
// distinguish it from a clean, empty walk.
var ErrInitialStepOvershoot = errors.New("walker: initial_step exceeds total emission count")

// errPathUnreachable signals that a consumed node's path could not be
// resolved from the current frozen root. It is never returned to the
// caller: the walker tolerates the condition, skips the emission, and
// only surfaces it as an observability event.
var errPathUnreachable = errors.New("walker: consumed node unreachable from frozen root")
