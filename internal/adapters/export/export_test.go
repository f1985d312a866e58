package export_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/regatta/internal/adapters/export"
	"github.com/okian/regatta/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRows() []model.ResultRow {
	return []model.ResultRow{
		{
			SailNumber: "USA-1", Rank: 1, RankDisplay: "1st",
			Scores: []model.ScoreCell{
				{Points: 1, Outcome: model.Outcome{Kind: model.OutcomePosition, Position: 1}},
				{Points: 5, Discarded: true, Outcome: model.Outcome{Kind: model.OutcomePenalty, Code: "OCS"}},
			},
			Total: 6, Net: 1,
		},
		{
			SailNumber: "GBR-2", Rank: 2, RankDisplay: "2nd",
			Scores: []model.ScoreCell{
				{Points: 2, Outcome: model.Outcome{Kind: model.OutcomePosition, Position: 2}},
				{Points: 3, Outcome: model.Outcome{Kind: model.OutcomeDNC}},
			},
			Total: 5, Net: 5,
		},
	}
}

func TestFormatCell(t *testing.T) {
	Convey("Given the cell shapes the table can contain", t, func() {
		Convey("Then each renders its canonical text", func() {
			So(export.FormatCell(model.ScoreCell{Points: 5}), ShouldEqual, "5.0")
			So(export.FormatCell(model.ScoreCell{Points: 3, Discarded: true}), ShouldEqual, "(3.0)")
			So(export.FormatCell(model.ScoreCell{
				Points: 5, Outcome: model.Outcome{Kind: model.OutcomePenalty, Code: "OCS"},
			}), ShouldEqual, "5.0 OCS")
			So(export.FormatCell(model.ScoreCell{
				Points: 5, Discarded: true, Outcome: model.Outcome{Kind: model.OutcomeDNC},
			}), ShouldEqual, "(5.0) DNC")
			So(export.FormatCell(model.ScoreCell{Points: 2.5}), ShouldEqual, "2.5")
		})
	})
}

func TestFormatTable(t *testing.T) {
	Convey("Given two ranked boats over two races", t, func() {
		out, err := export.FormatTable(sampleRows(), []string{"1", "2"})
		So(err, ShouldBeNil)

		Convey("Then the table matches line for line", func() {
			So(out, ShouldEqual, strings.Join([]string{
				"RANK,Sail Number,R1,R2,TOTAL,NET",
				"1st,USA-1,1.0,(5.0) OCS,6.0,1.0",
				"2nd,GBR-2,2.0,3.0 DNC,5.0,5.0",
				"",
			}, "\n"))
		})
	})

	Convey("Given a sail number containing the delimiter", t, func() {
		rows := []model.ResultRow{{
			SailNumber: "USA,1", Rank: 1, RankDisplay: "1st",
			Scores: []model.ScoreCell{{Points: 1, Outcome: model.Outcome{Kind: model.OutcomePosition, Position: 1}}},
			Total:  1, Net: 1,
		}}

		Convey("Then the field is quoted and survives a parse", func() {
			out, err := export.FormatTable(rows, []string{"1"})
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, `"USA,1"`)

			_, parsed, err := export.ParseTable(strings.NewReader(out))
			So(err, ShouldBeNil)
			So(parsed[0].SailNumber, ShouldEqual, "USA,1")
		})
	})

	Convey("Given a row whose score count disagrees with the race list", t, func() {
		_, err := export.FormatTable(sampleRows(), []string{"1", "2", "3"})

		Convey("Then formatting fails with the sail in context", func() {
			So(errors.Is(err, export.ErrShapeMismatch), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "USA-1")
		})
	})
}

func TestParseTable(t *testing.T) {
	Convey("Given a table produced by the formatter", t, func() {
		out, err := export.FormatTable(sampleRows(), []string{"1", "2"})
		So(err, ShouldBeNil)

		raceIDs, rows, err := export.ParseTable(strings.NewReader(out))
		So(err, ShouldBeNil)

		Convey("Then the header yields the race ids", func() {
			So(raceIDs, ShouldResemble, []string{"1", "2"})
		})

		Convey("Then ranks, cells, and totals round-trip", func() {
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Rank, ShouldEqual, 1)
			So(rows[0].RankDisplay, ShouldEqual, "1st")
			So(rows[0].SailNumber, ShouldEqual, "USA-1")
			So(rows[0].Cells[0], ShouldResemble, export.ParsedCell{Points: 1})
			So(rows[0].Cells[1], ShouldResemble, export.ParsedCell{Points: 5, Discarded: true, Tag: "OCS"})
			So(rows[0].Total, ShouldEqual, 6)
			So(rows[0].Net, ShouldEqual, 1)
			So(rows[1].Cells[1], ShouldResemble, export.ParsedCell{Points: 3, Tag: "DNC"})
		})
	})

	Convey("Given malformed input", t, func() {
		cases := []string{
			"POS,Boat,R1,TOTAL,NET\n",
			"RANK,NET\n",
			"RANK,Sail Number,1,TOTAL,NET\n",
			"RANK,Sail Number,R1,TOTAL,NET\n1st,USA-1,1.0,1.0\n",
			"RANK,Sail Number,R1,TOTAL,NET\nfirst,USA-1,1.0,1.0,1.0\n",
			"RANK,Sail Number,R1,TOTAL,NET\n1st,USA-1,one,1.0,1.0\n",
		}

		Convey("Then parsing reports a malformed table", func() {
			for _, input := range cases {
				_, _, err := export.ParseTable(strings.NewReader(input))
				So(errors.Is(err, export.ErrMalformedTable), ShouldBeTrue)
			}
		})
	})
}

func TestLazyFileWriter(t *testing.T) {
	Convey("Given a lazy writer pointed at a new path", t, func() {
		path := filepath.Join(t.TempDir(), "out.csv")
		w := export.NewLazyFileWriter(path)

		Convey("When nothing is ever written", func() {
			So(w.Close(), ShouldBeNil)

			Convey("Then no file appears", func() {
				_, err := os.Stat(path)
				So(os.IsNotExist(err), ShouldBeTrue)
			})
		})

		Convey("When bytes are written", func() {
			n, err := w.Write([]byte("hello"))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 5)
			So(w.Close(), ShouldBeNil)

			Convey("Then the file holds them", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "hello")
			})
		})
	})
}
