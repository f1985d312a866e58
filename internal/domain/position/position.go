// Package position converts raw per-race finish records into finishing
// positions. Clean finishes are ordered by finish time and numbered 1, 2,
// 3, ...; coded finishes carry their penalty code instead of a position; a
// boat with no finish record for a race is tagged DNC.
package position

import (
	"fmt"
	"sort"

	"github.com/okian/regatta/internal/domain/model"
)

// Matrix holds one outcome per (boat, race) pair. Outcomes are keyed by sail
// number; each slice is in race order for the event.
type Matrix map[string][]model.Outcome

// Resolve builds the outcome matrix for an event from its entry universe,
// race list, and finish records.
//
// A finish referencing a sail number outside the entry universe, a race id
// outside the event's race list, or a second finish for the same (sail, race)
// pair is a data inconsistency and fails the whole resolution; nothing is
// dropped or invented silently.
//
// Two clean finishes with identical timestamps keep their original record
// order, so resolution is reproducible for identical input.
func Resolve(entries []model.Entry, races []model.Race, finishes []model.Finish) (Matrix, error) {
	raceIdx := make(map[string]int, len(races))
	for i, r := range races {
		raceIdx[r.RaceID] = i
	}
	known := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		known[e.SailNumber] = struct{}{}
	}

	// indexed carries the original record order so timestamp ties stay stable.
	type indexed struct {
		seq int
		fin model.Finish
	}
	byRace := make([][]indexed, len(races))
	seen := make(map[string]struct{}, len(finishes))
	for seq, f := range finishes {
		if _, ok := known[f.SailNumber]; !ok {
			return nil, fmt.Errorf("%w: sail %q in race %q", ErrUnknownSail, f.SailNumber, f.RaceID)
		}
		ri, ok := raceIdx[f.RaceID]
		if !ok {
			return nil, fmt.Errorf("%w: race %q for sail %q", ErrUnknownRace, f.RaceID, f.SailNumber)
		}
		key := f.SailNumber + "\x00" + f.RaceID
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: sail %q in race %q", ErrDuplicateFinish, f.SailNumber, f.RaceID)
		}
		seen[key] = struct{}{}
		byRace[ri] = append(byRace[ri], indexed{seq: seq, fin: f})
	}

	// Every (boat, race) cell starts as DNC and is overwritten by a finish.
	m := make(Matrix, len(entries))
	for _, e := range entries {
		row := make([]model.Outcome, len(races))
		for i := range row {
			row[i] = model.Outcome{Kind: model.OutcomeDNC}
		}
		m[e.SailNumber] = row
	}

	for ri, recs := range byRace {
		clean := make([]indexed, 0, len(recs))
		for _, rec := range recs {
			if rec.fin.Code != "" {
				m[rec.fin.SailNumber][ri] = model.Outcome{Kind: model.OutcomePenalty, Code: rec.fin.Code}
				continue
			}
			clean = append(clean, rec)
		}
		sort.SliceStable(clean, func(a, b int) bool {
			ta, tb := clean[a].fin.FinishTime, clean[b].fin.FinishTime
			if ta.Equal(tb) {
				return clean[a].seq < clean[b].seq
			}
			return ta.Before(tb)
		})
		for pos, rec := range clean {
			m[rec.fin.SailNumber][ri] = model.Outcome{Kind: model.OutcomePosition, Position: pos + 1}
		}
	}

	return m, nil
}
