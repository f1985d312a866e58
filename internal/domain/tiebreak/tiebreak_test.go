package tiebreak_test

import (
	"testing"

	"github.com/okian/regatta/internal/domain/tiebreak"
	. "github.com/smartystreets/goconvey/convey"
)

func noDiscards(n int) []bool {
	return make([]bool, n)
}

func TestResolve(t *testing.T) {
	Convey("Given two boats with different NET scores", t, func() {
		a := tiebreak.New("USA-1", 5, []float64{1, 4}, noDiscards(2))
		b := tiebreak.New("GBR-2", 7, []float64{3, 4}, noDiscards(2))

		Convey("Then NET alone decides", func() {
			c, rule := tiebreak.Resolve(a, b)
			So(c, ShouldBeLessThan, 0)
			So(rule, ShouldEqual, tiebreak.RuleNet)
		})
	})

	Convey("Given equal NET with differing best scores (A8.1)", t, func() {
		// Non-discarded {1,4,5} vs {2,3,5}: sorted ascending the first
		// element 1 < 2 decides.
		a := tiebreak.New("USA-1", 10, []float64{4, 5, 1}, noDiscards(3))
		b := tiebreak.New("GBR-2", 10, []float64{3, 2, 5}, noDiscards(3))

		Convey("Then the boat with the better best score wins", func() {
			c, rule := tiebreak.Resolve(a, b)
			So(c, ShouldBeLessThan, 0)
			So(rule, ShouldEqual, tiebreak.RuleA81)
		})

		Convey("And the comparison is antisymmetric", func() {
			c, rule := tiebreak.Resolve(b, a)
			So(c, ShouldBeGreaterThan, 0)
			So(rule, ShouldEqual, tiebreak.RuleA81)
		})
	})

	Convey("Given equal NET and A8.1 keys (A8.2)", t, func() {
		// X scored (1,2,3,4) discarding the 4, Y scored
		// (2,1,4,3) discarding the 4. Non-discarded ascending is (1,2,3)
		// for both; last-race-first is X=(4,3,2,1) vs Y=(3,4,1,2), so Y
		// wins on the first element.
		x := tiebreak.New("X", 6, []float64{1, 2, 3, 4}, []bool{false, false, false, true})
		y := tiebreak.New("Y", 6, []float64{2, 1, 4, 3}, []bool{false, false, true, false})

		Convey("Then the later races decide, lower winning", func() {
			c, rule := tiebreak.Resolve(y, x)
			So(c, ShouldBeLessThan, 0)
			So(rule, ShouldEqual, tiebreak.RuleA82)
		})
	})

	Convey("Given discarded scores", t, func() {
		// Discards are invisible to A8.1 but present in A8.2.
		a := tiebreak.New("USA-1", 3, []float64{1, 2, 9}, []bool{false, false, true})
		b := tiebreak.New("GBR-2", 3, []float64{1, 2, 4}, []bool{false, false, true})

		Convey("Then A8.1 ignores them and A8.2 sees them", func() {
			c, rule := tiebreak.Resolve(b, a)
			So(c, ShouldBeLessThan, 0)
			So(rule, ShouldEqual, tiebreak.RuleA82)
		})
	})

	Convey("Given A8.1 keys of different lengths", t, func() {
		// Same NET, equal values up to the shorter key's end: the boat
		// with more non-discarded finishes is not disadvantaged, so the
		// exhausted key loses.
		longer := tiebreak.New("USA-1", 4, []float64{1, 3, 2}, noDiscards(3))
		shorter := tiebreak.New("GBR-2", 4, []float64{1, 2}, noDiscards(2))

		Convey("Then the longer key wins at the point of exhaustion", func() {
			c, rule := tiebreak.Resolve(longer, shorter)
			So(c, ShouldBeLessThan, 0)
			So(rule, ShouldEqual, tiebreak.RuleA81)
		})
	})

	Convey("Given boats fully tied through A8.2", t, func() {
		a := tiebreak.New("GBR-2", 6, []float64{1, 2, 3}, noDiscards(3))
		b := tiebreak.New("USA-1", 6, []float64{1, 2, 3}, noDiscards(3))

		Convey("Then sail number ascending settles the order", func() {
			c, rule := tiebreak.Resolve(a, b)
			So(c, ShouldBeLessThan, 0)
			So(rule, ShouldEqual, tiebreak.RuleSail)
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given any pair of distinct contenders", t, func() {
		a := tiebreak.New("USA-1", 6, []float64{1, 2, 3}, noDiscards(3))
		b := tiebreak.New("GBR-2", 6, []float64{1, 2, 3}, noDiscards(3))

		Convey("Then Compare never reports equality", func() {
			So(tiebreak.Compare(a, b), ShouldNotEqual, 0)
			So(tiebreak.Compare(a, b), ShouldEqual, -tiebreak.Compare(b, a))
		})
	})
}
