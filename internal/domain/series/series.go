// Package series orchestrates the scoring pipeline for one event: position
// resolution, discard selection, TOTAL/NET aggregation, A8 tie-breaking, and
// rank assignment. Compute is a pure function of its snapshot inputs; it
// holds no state between invocations, so independent events can be computed
// concurrently.
package series

import (
	"fmt"
	"slices"

	"github.com/okian/regatta/internal/domain/aggregate"
	"github.com/okian/regatta/internal/domain/discard"
	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/position"
	"github.com/okian/regatta/internal/domain/tiebreak"
	"github.com/okian/regatta/pkg/metrics"
)

// standing carries one boat through the pipeline before ranks are assigned.
type standing struct {
	entry    model.Entry
	outcomes []model.Outcome
	points   []float64
	agg      aggregate.Aggregate
	key      tiebreak.Contender
}

// Compute produces one ranked result row per entry, in rank order. The row
// set is in 1:1 correspondence with the entries: a boat with zero finishes
// still appears, scored DNC in every race. The penalty value for coded
// finishes and DNC is len(entries)+1, fixed per event.
//
// Validation failures (bad thresholds, empty or duplicated entry list) and
// finish-data inconsistencies abort the computation; no partial result is
// returned.
func Compute(cfg model.EventConfig, entries []model.Entry, races []model.Race, finishes []model.Finish) ([]model.ResultRow, error) {
	if err := discard.Validate(cfg.DiscardThresholds); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: event %q", ErrNoEntries, cfg.EventID)
	}
	sails := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := sails[e.SailNumber]; dup {
			return nil, fmt.Errorf("%w: sail %q in event %q", ErrDuplicateSail, e.SailNumber, cfg.EventID)
		}
		sails[e.SailNumber] = struct{}{}
	}

	matrix, err := position.Resolve(entries, races, finishes)
	if err != nil {
		return nil, err
	}

	penalty := float64(len(entries) + 1)
	discards := discard.Count(len(races), cfg.DiscardThresholds)

	standings := make([]standing, len(entries))
	for i, e := range entries {
		outcomes := matrix[e.SailNumber]
		points := make([]float64, len(outcomes))
		for ri, o := range outcomes {
			if o.Kind == model.OutcomePosition {
				points[ri] = float64(o.Position)
			} else {
				points[ri] = penalty
			}
		}
		agg := aggregate.Score(points, discards)
		standings[i] = standing{
			entry:    e,
			outcomes: outcomes,
			points:   points,
			agg:      agg,
			key:      tiebreak.New(e.SailNumber, agg.Net, points, agg.Discarded),
		}
	}

	slices.SortFunc(standings, func(a, b standing) int {
		return tiebreak.Compare(a.key, b.key)
	})

	// One metric per adjacent pair that needed more than NET to separate.
	for i := 1; i < len(standings); i++ {
		if _, rule := tiebreak.Resolve(standings[i-1].key, standings[i].key); rule != tiebreak.RuleNet {
			metrics.RecordTieResolved(string(rule))
		}
	}

	rows := make([]model.ResultRow, len(standings))
	for i, s := range standings {
		cells := make([]model.ScoreCell, len(s.points))
		for ri := range s.points {
			cells[ri] = model.ScoreCell{
				Points:    s.points[ri],
				Discarded: s.agg.Discarded[ri],
				Outcome:   s.outcomes[ri],
			}
		}
		rank := i + 1
		rows[i] = model.ResultRow{
			SailNumber:  s.entry.SailNumber,
			Name:        s.entry.Name,
			Rank:        rank,
			RankDisplay: Ordinal(rank),
			Scores:      cells,
			Total:       s.agg.Total,
			Net:         s.agg.Net,
		}
	}
	return rows, nil
}

// Ordinal formats a rank as an English ordinal: 1st, 2nd, 3rd, 4th, ...
// 11th, 12th, and 13th take "th" despite ending in 1, 2, 3.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
