package kube

import (
	"fmt"

	"github.com/flowbuilder/flow/pkg/engine"
)

// CredentialError reports that credential resolution failed. It carries the
// strategy that failed terminally; earlier strategies were either skipped or
// declared themselves inapplicable. Resolution is never retried internally,
// so the error wraps engine.ErrFatalExecution.
type CredentialError struct {
	Strategy Strategy
	Err      error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%vcould not resolve cluster credentials (%s): %v", engine.ErrFatalExecution, e.Strategy, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

func (e *CredentialError) Is(target error) bool { return target == engine.ErrFatalExecution }
