package sentinel

import "errors"

// Sentinel errors for storage facts. Record stores return these, possibly
// wrapped, and services translate them into domain errors:
//   - ErrNotFound: the row does not exist, or is not visible to the caller's owner scope
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrUnavailable: the backing store cannot be reached
//
// Validation failures never come from stores; use pkg/domain-errors for those.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
