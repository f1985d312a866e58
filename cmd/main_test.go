package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/regatta/internal/adapters/export"
	"github.com/okian/regatta/internal/adapters/snapshot"
	"github.com/okian/regatta/internal/app"
	"github.com/okian/regatta/internal/testfleet"
	"github.com/okian/regatta/pkg/logger"
)

func TestPipelineFromSnapshotFile(t *testing.T) {
	convey.Convey("Given a generated snapshot on disk", t, func() {
		if err := logger.Init(); err != nil {
			t.Fatalf("failed to initialize logging: %v", err)
		}
		ctx := context.Background()

		snap := testfleet.Generate(testfleet.Config{Boats: 10, Races: 4, Seed: 1})
		path := filepath.Join(t.TempDir(), "fleet.json")
		convey.So(snapshot.Save(path, snap), convey.ShouldBeNil)

		convey.Convey("When the service loads it and exports the event", func() {
			svc := app.New(
				app.WithSnapshotPath(path),
				app.WithWorkerCount(2),
				app.WithLogger(logger.Get()),
			)
			convey.So(svc.Load(ctx), convey.ShouldBeNil)

			ids, err := svc.EventIDs()
			convey.So(err, convey.ShouldBeNil)
			convey.So(ids, convey.ShouldHaveLength, 1)

			var sb strings.Builder
			convey.So(svc.Export(ctx, &sb, ids[0], ""), convey.ShouldBeNil)

			convey.Convey("Then the exported table holds the whole fleet", func() {
				raceIDs, rows, err := export.ParseTable(strings.NewReader(sb.String()))
				convey.So(err, convey.ShouldBeNil)
				convey.So(raceIDs, convey.ShouldHaveLength, 4)
				convey.So(rows, convey.ShouldHaveLength, 10)
				convey.So(rows[0].Rank, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When every event is exported in batch", func() {
			svc := app.New(app.WithSnapshotPath(path))
			convey.So(svc.Load(ctx), convey.ShouldBeNil)

			results, err := svc.ComputeAll(ctx)
			convey.So(err, convey.ShouldBeNil)
			for _, res := range results {
				convey.So(res.Err, convey.ShouldBeNil)
				out := filepath.Join(t.TempDir(), "result_"+res.EventID+".csv")
				convey.So(export.WriteTableFile(out, res.Rows, res.RaceIDs), convey.ShouldBeNil)
			}
		})
	})
}
