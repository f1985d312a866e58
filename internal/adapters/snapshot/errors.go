package snapshot

import "errors"

// Sentinel kinds for snapshot loading errors.
var (
	ErrUnknownFormat    = errors.New("unknown snapshot format")
	ErrMissingField     = errors.New("missing required field")
	ErrDuplicateID      = errors.New("duplicate identifier")
	ErrUnknownReference = errors.New("reference to undeclared record")
	ErrBadTimestamp     = errors.New("timestamp is not RFC 3339")
	ErrEventNotFound    = errors.New("event not found")
)
