package nbody

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidBody indicates a non-positive mass or a non-finite vector.
	ErrInvalidBody = errors.New("nbody: invalid body")

	// ErrInvalidStep indicates a non-positive or non-finite time step.
	ErrInvalidStep = errors.New("nbody: time step must be positive and finite")

	// ErrInvalidDuration indicates a non-positive or non-finite run length.
	ErrInvalidDuration = errors.New("nbody: duration must be positive and finite")

	// ErrNonFinite indicates a position or velocity became NaN or Inf.
	ErrNonFinite = errors.New("nbody: non-finite state (NaN or Inf detected)")

	// ErrUnknownBody indicates a lookup by a name that is not in the system.
	ErrUnknownBody = errors.New("nbody: unknown body")
)

// SimulationError wraps an error with the step at which it happened.
type SimulationError struct {
	Step    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.1fs, %s): %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
