// Package tiebreak implements the series ordering of Racing Rules of Sailing
// Appendix A8 for boats with equal NET scores, plus the final deterministic
// fallback that guarantees a strict total order.
package tiebreak

import "sort"

// Rule identifies which comparison step separated two contenders.
type Rule string

const (
	// RuleNet means the NET scores already differed; no tie to break.
	RuleNet Rule = "net"
	// RuleA81 is A8.1: non-discarded scores compared best to worst.
	RuleA81 Rule = "a8_1"
	// RuleA82 is A8.2: all scores compared from the last race backwards.
	RuleA82 Rule = "a8_2"
	// RuleSail is the documented fallback when A8.2 is exhausted:
	// sail number ascending.
	RuleSail Rule = "sail_number"
)

// Contender is one boat's precomputed sort keys. Build it once per boat with
// New and compare with Compare or Resolve.
type Contender struct {
	SailNumber string
	Net        float64

	a81 []float64
	a82 []float64
}

// New builds a contender from the boat's per-race points and discard flags.
// The A8.1 key is the non-discarded scores sorted best (lowest) to worst;
// the A8.2 key is all scores, including discarded ones, from the last race
// back to the first.
func New(sailNumber string, net float64, points []float64, discarded []bool) Contender {
	a81 := make([]float64, 0, len(points))
	for i, p := range points {
		if !discarded[i] {
			a81 = append(a81, p)
		}
	}
	sort.Float64s(a81)

	a82 := make([]float64, len(points))
	for i, p := range points {
		a82[len(points)-1-i] = p
	}

	return Contender{SailNumber: sailNumber, Net: net, a81: a81, a82: a82}
}

// Compare orders a before b when Compare < 0. The combined key is
// (NET asc, A8.1 asc, A8.2 asc, sail number asc); it is a total order.
func Compare(a, b Contender) int {
	c, _ := Resolve(a, b)
	return c
}

// Resolve compares two contenders and reports which rule decided. The result
// is never 0: after A8.2 the sail number settles any residual tie.
func Resolve(a, b Contender) (int, Rule) {
	switch {
	case a.Net < b.Net:
		return -1, RuleNet
	case a.Net > b.Net:
		return 1, RuleNet
	}
	if c := compareKeys(a.a81, b.a81); c != 0 {
		return c, RuleA81
	}
	if c := compareKeys(a.a82, b.a82); c != 0 {
		return c, RuleA82
	}
	if a.SailNumber < b.SailNumber {
		return -1, RuleSail
	}
	if a.SailNumber > b.SailNumber {
		return 1, RuleSail
	}
	return 0, RuleSail
}

// compareKeys is a lexicographic comparison where lower wins at the first
// differing slot. When one key runs out first, the exhausted key loses: a
// missing score counts as worse than any real one, so a boat with more
// non-discarded finishes is not disadvantaged.
func compareKeys(a, b []float64) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	switch {
	case len(a) > len(b):
		return -1
	case len(a) < len(b):
		return 1
	}
	return 0
}
