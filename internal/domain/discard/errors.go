package discard

import "errors"

// Sentinel kinds for discard policy errors.
var (
	ErrInvalidThresholds = errors.New("invalid discard thresholds")
)
