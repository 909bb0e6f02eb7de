package dp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrCycle indicates a key was re-entered while still pending.
	ErrCycle = errors.New("dp: cycle detected")

	// ErrMalformedDefault indicates a default-argument binding was rejected at construction.
	ErrMalformedDefault = errors.New("dp: malformed default initializer")

	// ErrDefaultInit indicates a default initializer failed while resolving the root key.
	ErrDefaultInit = errors.New("dp: default initializer failed")

	// ErrInvalidTransition indicates a memo table entry was asked to move backwards.
	ErrInvalidTransition = errors.New("dp: invalid memo state transition")
)

// CycleError reports a non-well-founded recurrence.
//
// Chain starts and ends with the re-entered key, e.g. [3 2 3] when solving 3
// needed 2 and solving 2 needed 3 again.
type CycleError struct {
	// RunID identifies the abandoned run.
	RunID uuid.UUID

	// Name is the evaluator label set with WithName, if any.
	Name string

	// Key is the re-entered key.
	Key any

	// Chain is the call chain that led back to Key.
	Chain []any
}

func (e *CycleError) Error() string {
	chain := make([]string, len(e.Chain))
	for i, k := range e.Chain {
		chain[i] = fmt.Sprintf("%v", k)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s on %s with key %v (run=%s): %s",
			ErrCycle, e.Name, e.Key, e.RunID, strings.Join(chain, " -> "))
	}
	return fmt.Sprintf("%s with key %v (run=%s): %s",
		ErrCycle, e.Key, e.RunID, strings.Join(chain, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// IsCycleError reports whether err is, or wraps, a *CycleError.
func IsCycleError(err error) bool {
	var ce *CycleError
	return errors.As(err, &ce)
}

// DefaultError reports a default-argument binding that could not be used.
type DefaultError struct {
	// Param is the offending default parameter.
	Param string

	// Ref is the referenced name, for reference errors.
	Ref string

	// Reason is a human-readable description.
	Reason string

	// Err is ErrMalformedDefault, or the initializer's own error wrapped with ErrDefaultInit.
	Err error
}

func (e *DefaultError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%v: parameter %q %s %q", e.Err, e.Param, e.Reason, e.Ref)
	}
	return fmt.Sprintf("%v: parameter %q %s", e.Err, e.Param, e.Reason)
}

func (e *DefaultError) Unwrap() error {
	return e.Err
}

func malformed(param, reason, ref string) *DefaultError {
	return &DefaultError{Param: param, Ref: ref, Reason: reason, Err: ErrMalformedDefault}
}
