// Package aggregate computes a boat's TOTAL and NET and selects which race
// scores are discarded.
package aggregate

import "sort"

// Aggregate is one boat's series totals. Discarded is indexed by race and
// marks the scores excluded from NET.
type Aggregate struct {
	Total     float64
	Net       float64
	Discarded []bool
}

// Score sums a boat's per-race points and discards the `discards` worst
// (highest) values. Every race has a numeric value, so TOTAL always counts
// all of them. When two scores tie for worst, the one from the later race is
// discarded first. NET = TOTAL minus the discarded sum.
func Score(points []float64, discards int) Aggregate {
	agg := Aggregate{Discarded: make([]bool, len(points))}
	for _, p := range points {
		agg.Total += p
	}
	agg.Net = agg.Total

	if discards <= 0 || len(points) == 0 {
		return agg
	}
	if discards > len(points) {
		discards = len(points)
	}

	// Worst first: higher points, then later race index.
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if points[ia] != points[ib] {
			return points[ia] > points[ib]
		}
		return ia > ib
	})

	for _, i := range order[:discards] {
		agg.Discarded[i] = true
		agg.Net -= points[i]
	}
	return agg
}
