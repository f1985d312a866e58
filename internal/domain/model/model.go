// Package model contains the read-only snapshot types the scoring engine
// consumes and the result types it produces. Values are constructed once per
// computation and never mutated afterwards.
package model

import "time"

// EventConfig is the per-event scoring configuration.
type EventConfig struct {
	EventID string
	// DiscardThresholds is the ascending race-count table that controls how
	// many worst scores are excluded, e.g. [3, 6, 9].
	DiscardThresholds []int
}

// Entry is one boat registered for an event. Every entry produces exactly one
// result row, finishes or not.
type Entry struct {
	EventID    string
	SailNumber string // unique within the event
	Name       string
	// DivisionIDs lists the divisions the boat sails in; empty means the
	// boat only appears in the overall result.
	DivisionIDs []string
}

// Race is one scheduled race of an event. StartTime defines the series order
// R1..Rn, which matters for discard tie-breaks and RRS A8.2.
type Race struct {
	EventID   string
	RaceID    string
	StartTime time.Time
}

// Finish is a raw finish record for one boat in one race. A non-empty Code
// (OCS, DNF, DSQ, ...) suppresses normal position assignment.
type Finish struct {
	SailNumber string
	RaceID     string
	FinishTime time.Time
	Code       string
}

// OutcomeKind discriminates the three possible results of a boat in a race.
type OutcomeKind uint8

const (
	// OutcomePosition is a clean finish with a 1-based ordinal position.
	OutcomePosition OutcomeKind = iota
	// OutcomePenalty is a coded finish scored with the penalty value.
	OutcomePenalty
	// OutcomeDNC marks a boat with no finish record for the race.
	OutcomeDNC
)

// Outcome is the tagged variant {Position(n) | Penalty(code) | DNC} produced
// by the position resolver. Exactly one interpretation applies per cell.
type Outcome struct {
	Kind     OutcomeKind
	Position int    // set only for OutcomePosition
	Code     string // set only for OutcomePenalty
}

// Tag returns the display suffix for the outcome: the penalty code, "DNC",
// or "" for a clean finish.
func (o Outcome) Tag() string {
	switch o.Kind {
	case OutcomePenalty:
		return o.Code
	case OutcomeDNC:
		return "DNC"
	default:
		return ""
	}
}

// ScoreCell is one scored (boat, race) cell: the numeric points, whether the
// score is discarded, and the outcome it was derived from.
type ScoreCell struct {
	Points    float64
	Discarded bool
	Outcome   Outcome
}

// ResultRow is the ranked series result for one boat. Scores are in race
// order for the event.
type ResultRow struct {
	SailNumber  string
	Name        string
	Rank        int
	RankDisplay string
	Scores      []ScoreCell
	Total       float64
	Net         float64
}

// FilterByDivision returns the entries that belong to the given division.
// An empty divisionID returns the input unchanged, so callers can pass the
// filter through unconditionally. The engine itself is division-agnostic.
func FilterByDivision(entries []Entry, divisionID string) []Entry {
	if divisionID == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		for _, id := range e.DivisionIDs {
			if id == divisionID {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
