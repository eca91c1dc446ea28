package types

import "errors"

// Error categories (prd001-trace-link-core R7). Every failure surfaced by the
// engine wraps exactly one of these sentinels so callers can classify with
// errors.Is regardless of the wrapped detail message.
var (
	// ErrValidation marks bad input: unknown link type, malformed entity ID,
	// empty required field, unrecognized import row shape.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown entity or link ID.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a rejected mutation: duplicate link, illegal cycle,
	// contradictory relationship, store lock contention, or a verification
	// transition that would regress.
	ErrConflict = errors.New("conflict")

	// ErrParse marks a corrupted persisted document or malformed import data.
	ErrParse = errors.New("parse failure")

	// ErrIO marks a filesystem failure underneath a store operation.
	ErrIO = errors.New("io failure")
)
