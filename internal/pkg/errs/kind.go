package errs

import "errors"

// Kind is the coarse failure category reported to callers of the core.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindStateConflict      Kind = "STATE_CONFLICT"
	KindUniquenessConflict Kind = "UNIQUENESS_CONFLICT"
	KindAuthorization      Kind = "AUTHORIZATION_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindTransient          Kind = "TRANSIENT"
	KindInternal           Kind = "INTERNAL"
)

// KindOf classifies err by the first sentinel it wraps. A nil error has an
// empty kind; anything unrecognised is internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthorized):
		return KindAuthorization
	case errors.Is(err, ErrStateConflict), errors.Is(err, ErrVersionIsInvalid):
		return KindStateConflict
	case errors.Is(err, ErrUniquenessConflict):
		return KindUniquenessConflict
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrTransient):
		return KindTransient
	default:
		return KindInternal
	}
}
