package position

import "errors"

// Sentinel kinds for finish-data inconsistencies. These are reported, never
// auto-corrected.
var (
	ErrUnknownSail     = errors.New("finish references unknown sail number")
	ErrUnknownRace     = errors.New("finish references unknown race")
	ErrDuplicateFinish = errors.New("duplicate finish record")
)
