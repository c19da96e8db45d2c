package gravity

import (
	"errors"
	"fmt"
)

// ErrUnknownPolicy indicates a policy name ParsePolicy does not recognise.
var ErrUnknownPolicy = errors.New("gravity: unknown update policy")

// StepError wraps a failed body update with the body that failed. A step
// that fails with exact.ErrDivisionByZero means two bodies coincide.
type StepError struct {
	Body string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("gravity: update %s: %v", e.Body, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
