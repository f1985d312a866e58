package aggregate_test

import (
	"testing"

	"github.com/okian/regatta/internal/domain/aggregate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given a boat scoring 1, 2, 3, 4 across four races", t, func() {
		points := []float64{1, 2, 3, 4}

		Convey("When one discard is allowed", func() {
			agg := aggregate.Score(points, 1)

			Convey("Then the worst score is discarded and NET reflects it", func() {
				So(agg.Total, ShouldEqual, 10)
				So(agg.Net, ShouldEqual, 6)
				So(agg.Discarded, ShouldResemble, []bool{false, false, false, true})
			})
		})

		Convey("When no discard is allowed", func() {
			agg := aggregate.Score(points, 0)

			Convey("Then NET equals TOTAL", func() {
				So(agg.Total, ShouldEqual, 10)
				So(agg.Net, ShouldEqual, 10)
				So(agg.Discarded, ShouldResemble, []bool{false, false, false, false})
			})
		})

		Convey("When more discards are allowed than races exist", func() {
			agg := aggregate.Score(points, 9)

			Convey("Then everything is discarded and NET is zero", func() {
				So(agg.Total, ShouldEqual, 10)
				So(agg.Net, ShouldEqual, 0)
				So(agg.Discarded, ShouldResemble, []bool{true, true, true, true})
			})
		})
	})

	Convey("Given equal worst scores in different races", t, func() {
		Convey("When scores are 3.0 and 3.0 with one discard", func() {
			agg := aggregate.Score([]float64{3, 3}, 1)

			Convey("Then the later race is discarded first", func() {
				So(agg.Discarded, ShouldResemble, []bool{false, true})
				So(agg.Net, ShouldEqual, 3)
			})
		})

		Convey("When two of three equal scores must go", func() {
			agg := aggregate.Score([]float64{5, 5, 5}, 2)

			Convey("Then the two later races are discarded", func() {
				So(agg.Discarded, ShouldResemble, []bool{false, true, true})
				So(agg.Net, ShouldEqual, 5)
			})
		})
	})

	Convey("Given arbitrary score vectors", t, func() {
		cases := []struct {
			points   []float64
			discards int
		}{
			{[]float64{4, 1, 7, 2, 7}, 2},
			{[]float64{9, 9, 9, 1}, 1},
			{[]float64{2.5, 6.5, 3.5}, 3},
		}

		Convey("Then TOTAL minus NET equals the discarded sum and the count matches", func() {
			for _, tc := range cases {
				agg := aggregate.Score(tc.points, tc.discards)
				var discardedSum float64
				var count int
				for i, d := range agg.Discarded {
					if d {
						discardedSum += tc.points[i]
						count++
					}
				}
				So(agg.Total-agg.Net, ShouldAlmostEqual, discardedSum)
				want := tc.discards
				if want > len(tc.points) {
					want = len(tc.points)
				}
				So(count, ShouldEqual, want)
			}
		})
	})

	Convey("Given no races at all", t, func() {
		agg := aggregate.Score(nil, 2)

		Convey("Then the aggregate is empty", func() {
			So(agg.Total, ShouldEqual, 0)
			So(agg.Net, ShouldEqual, 0)
			So(agg.Discarded, ShouldHaveLength, 0)
		})
	})
}
