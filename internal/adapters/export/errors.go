package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrShapeMismatch  = errors.New("row shape does not match race list")
	ErrMalformedTable = errors.New("malformed result table")
)
