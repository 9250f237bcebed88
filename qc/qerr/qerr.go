// Package qerr defines the structured error taxonomy shared by every
// compile-path package: gate, circuit, dag, depmatrix, planner and
// relinearize. Each sentinel wraps a human-readable detail via fmt.Errorf's
// %w so callers can assert on the sentinel with errors.Is while still
// getting a useful message.
package qerr

import "errors"

// Sentinels. Callers compare with errors.Is, never by string.
var (
	// ErrMalformedCircuit is returned when a gate references an undefined
	// wire, or a static circuit measures the same wire twice.
	ErrMalformedCircuit = errors.New("qreduce: malformed circuit")

	// ErrUnknownGate is returned when a gate name is not in the catalog.
	ErrUnknownGate = errors.New("qreduce: unknown gate")

	// ErrPlanCyclic is returned when a reuse plan would introduce a cycle.
	// Planners never catch this; a PlanCyclic must fail loudly.
	ErrPlanCyclic = errors.New("qreduce: reuse plan is cyclic")

	// ErrInvalidMethod is returned for an unrecognized method selector.
	ErrInvalidMethod = errors.New("qreduce: invalid method")

	// ErrInvalidProbability is returned when a noise probability falls
	// outside [0, 1].
	ErrInvalidProbability = errors.New("qreduce: invalid probability")

	// ErrSimulatorError wraps errors propagated unchanged from an external
	// simulator backend.
	ErrSimulatorError = errors.New("qreduce: simulator error")
)

// Malformed wraps ErrMalformedCircuit with detail.
func Malformed(detail string) error { return wrap(ErrMalformedCircuit, detail) }

// Unknown wraps ErrUnknownGate with the offending name.
func Unknown(name string) error { return wrap(ErrUnknownGate, "gate "+name) }

// Cyclic wraps ErrPlanCyclic with detail.
func Cyclic(detail string) error { return wrap(ErrPlanCyclic, detail) }

// InvalidMethod wraps ErrInvalidMethod with the offending method string.
func InvalidMethod(method string) error { return wrap(ErrInvalidMethod, "method "+method) }

// InvalidProbability wraps ErrInvalidProbability with detail.
func InvalidProbability(detail string) error { return wrap(ErrInvalidProbability, detail) }

// Simulator wraps an underlying backend error as ErrSimulatorError.
func Simulator(cause error) error {
	if cause == nil {
		return nil
	}
	return &wrapped{sentinel: ErrSimulatorError, detail: cause.Error(), cause: cause}
}

type wrapped struct {
	sentinel error
	detail   string
	cause    error
}

func (w *wrapped) Error() string {
	if w.detail == "" {
		return w.sentinel.Error()
	}
	return w.sentinel.Error() + ": " + w.detail
}

func (w *wrapped) Is(target error) bool { return target == w.sentinel }

func (w *wrapped) Unwrap() error { return w.cause }

func wrap(sentinel error, detail string) error {
	return &wrapped{sentinel: sentinel, detail: detail}
}
