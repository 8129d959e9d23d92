package schema

import "errors"

// Error kinds surfaced by the growth engine. Callers match them with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidRange      = errors.New("measurement date precedes date of birth")
	ErrEmptyTable        = errors.New("reference table is empty")
	ErrNegativeQuery     = errors.New("query point cannot be negative")
	ErrMissingParentData = errors.New("missing parent height information")
	ErrNoReferenceTable  = errors.New("no reference table available")
)
