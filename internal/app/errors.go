package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotLoaded = errors.New("snapshot not loaded")
)
