// Package discard implements the race-count-dependent discard policy: given
// the number of completed races and the event's threshold table, how many
// worst scores every boat excludes from its NET.
package discard

import "fmt"

// Validate checks that thresholds form a usable policy: every value positive
// and the sequence strictly ascending. An empty table is valid and means no
// discards ever. Non-ascending or duplicate tables are rejected rather than
// silently tolerated.
func Validate(thresholds []int) error {
	prev := 0
	for i, t := range thresholds {
		if t <= 0 {
			return fmt.Errorf("%w: threshold %d at index %d is not positive", ErrInvalidThresholds, t, i)
		}
		if t <= prev {
			return fmt.Errorf("%w: threshold %d at index %d is not strictly ascending", ErrInvalidThresholds, t, i)
		}
		prev = t
	}
	return nil
}

// Count returns the number of discards for a series of raceCount races:
// the count of thresholds t with t <= raceCount. With thresholds [3, 6, 9]
// a 4-race series allows 1 discard, a 9-race series allows 3. The count is
// series-level and identical for every boat.
func Count(raceCount int, thresholds []int) int {
	n := 0
	for _, t := range thresholds {
		if t <= raceCount {
			n++
		}
	}
	return n
}
