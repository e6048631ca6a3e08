package orbit

import (
	"errors"
	"fmt"
)

// Domain errors for body registration and stepping.
var (
	// ErrNonPositiveMass indicates a body registered with mass <= 0.
	ErrNonPositiveMass = errors.New("orbit: body mass must be positive")

	// ErrNonPositiveRadius indicates a body registered with a display radius <= 0.
	ErrNonPositiveRadius = errors.New("orbit: body radius must be positive")

	// ErrCoincidentBodies indicates two bodies registered at the same position.
	ErrCoincidentBodies = errors.New("orbit: bodies share the same initial position")

	// ErrDuplicateStar indicates a second body flagged as the star.
	ErrDuplicateStar = errors.New("orbit: system already has a star")

	// ErrNonPositiveStep indicates Step was called with dt <= 0.
	ErrNonPositiveStep = errors.New("orbit: time step must be positive")

	// ErrSystemStarted indicates registration after stepping has begun.
	ErrSystemStarted = errors.New("orbit: cannot add bodies after stepping has begun")

	// ErrNumericDivergence indicates a non-finite position or velocity after a step.
	ErrNumericDivergence = errors.New("orbit: non-finite state (NaN or Inf detected)")
)

// StepError wraps an error with the step context it occurred in.
type StepError struct {
	Step    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs) body %q: %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
