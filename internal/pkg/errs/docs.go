// Package errs provides the typed errors shared by the domain, the use cases
// and the persistence adapters.
//
// Every error type wraps a sentinel (ErrValueIsInvalid, ErrStateConflict, ...)
// so callers can branch with errors.Is, and KindOf folds them into the
// categories reported to the surrounding transport layer:
//   - VALIDATION_ERROR: malformed or out-of-range input
//   - STATE_CONFLICT: operation not valid from the current state
//   - UNIQUENESS_CONFLICT: duplicate natural key
//   - AUTHORIZATION_ERROR: actor lacks the required role or relationship
//   - NOT_FOUND: referenced aggregate does not exist
//   - TRANSIENT: storage contention that outlasted the retries
//   - INTERNAL: anything else
package errs
