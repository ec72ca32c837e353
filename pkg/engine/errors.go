package engine

import (
	"errors"
	"fmt"
)

// ErrFatalExecution is the sentinel wrapped by errors that must not be retried
// by the host engine, e.g. a task that is missing a required field. Transient
// errors (API server hiccups) are returned unwrapped and may be retried by the
// engine's own policy.
var ErrFatalExecution = errors.New("fatal error: ")

// ValidationError signals that a required task field was absent at run time.
// It is raised after parameter resolution and before any secret lookup or API
// call is made.
type ValidationError struct {
	// Field is the missing task field, e.g. "body" or "name".
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%vtask field %q must be provided", ErrFatalExecution, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrFatalExecution }

// IsFatal reports whether err should not be retried by the host engine.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatalExecution)
}
