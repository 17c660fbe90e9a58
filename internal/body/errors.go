package body

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates inputs that cannot be combined, such as
// force and application-point lists of different lengths.
var ErrInvalidArgument = errors.New("body: invalid argument")

// StepError wraps a failure with the index of the step that produced it.
type StepError struct {
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
