package errs

import (
	"errors"
	"fmt"
)

var (
	ErrStateConflict      = errors.New("state conflict")
	ErrUniquenessConflict = errors.New("uniqueness conflict")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrTransient          = errors.New("transient failure")
)

// StateConflictError reports an operation that is not allowed from the
// aggregate's current state.
type StateConflictError struct {
	Operation string
	State     string
	Cause     error
}

func NewStateConflictError(operation, state string) *StateConflictError {
	return &StateConflictError{Operation: operation, State: state}
}

func NewStateConflictErrorWithCause(operation, state string, cause error) *StateConflictError {
	return &StateConflictError{Operation: operation, State: state, Cause: cause}
}

func (e *StateConflictError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s from %s", ErrStateConflict, e.Operation, e.State)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// UniquenessConflictError reports a duplicate natural key.
type UniquenessConflictError struct {
	ParamName string
	Key       any
	Cause     error
}

func NewUniquenessConflictError(paramName string, key any) *UniquenessConflictError {
	return &UniquenessConflictError{ParamName: paramName, Key: key}
}

func NewUniquenessConflictErrorWithCause(paramName string, key any, cause error) *UniquenessConflictError {
	return &UniquenessConflictError{ParamName: paramName, Key: key, Cause: cause}
}

func (e *UniquenessConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %v already exists", ErrUniquenessConflict, e.ParamName, e.Key)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *UniquenessConflictError) Unwrap() error {
	return ErrUniquenessConflict
}

// AuthorizationError reports an actor lacking the role or relationship the
// operation requires.
type AuthorizationError struct {
	Actor  string
	Reason string
}

func NewAuthorizationError(actor, reason string) *AuthorizationError {
	return &AuthorizationError{Actor: actor, Reason: reason}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: actor %s: %s", ErrNotAuthorized, e.Actor, e.Reason)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotAuthorized
}

// TransientError wraps a storage failure that may succeed on a later attempt.
type TransientError struct {
	Operation string
	Attempts  int
	Cause     error
}

func NewTransientError(operation string, attempts int, cause error) *TransientError {
	return &TransientError{Operation: operation, Attempts: attempts, Cause: cause}
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %s failed after %d attempt(s) (cause: %v)", ErrTransient, e.Operation, e.Attempts, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying driver error.
func (e *TransientError) Unwrap() []error {
	return []error{ErrTransient, e.Cause}
}
