package series

import "errors"

// Sentinel kinds for series validation errors.
var (
	ErrNoEntries     = errors.New("event has no entries")
	ErrDuplicateSail = errors.New("duplicate sail number")
)
