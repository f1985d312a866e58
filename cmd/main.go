package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/okian/regatta/internal/adapters/export"
	"github.com/okian/regatta/internal/app"
	"github.com/okian/regatta/internal/config"
	"github.com/okian/regatta/pkg/logger"
)

const (
	snapshotFlag = "snapshot"
	eventFlag    = "event"
	divisionFlag = "division"
	outputFlag   = "output"
	allFlag      = "all"
	logLevelFlag = "log-level"

	stdoutCLIName = "-"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:  "regatta",
		Usage: "compute ranked sailing series results and export them as CSV tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    snapshotFlag,
				Aliases: []string{"s"},
				Usage:   "snapshot file (JSON or YAML) with events, entries, races, and finishes",
			},
			&cli.StringFlag{
				Name:    eventFlag,
				Aliases: []string{"e"},
				Usage:   "event id to score (defaults to the only event in the snapshot)",
			},
			&cli.StringFlag{
				Name:    divisionFlag,
				Aliases: []string{"d"},
				Usage:   "restrict the result to one division",
			},
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Usage:   "output file, or - for stdout (with --all, an output directory)",
			},
			&cli.BoolFlag{
				Name:  allFlag,
				Usage: "score every event in the snapshot",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "log verbosity: debug, info, warn, error",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, c)
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		logger.Get().Error(ctx, "run failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	applyFlags(c, cfg)

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}
	if cfg.SnapshotPath == "" {
		return fmt.Errorf("%w: snapshot path is required", config.ErrInvalidConfig)
	}

	svc := app.New(
		app.WithLogger(logger.Get()),
		app.WithSnapshotPath(cfg.SnapshotPath),
		app.WithWorkerCount(cfg.WorkerCount),
	)
	if err := svc.Load(ctx); err != nil {
		return err
	}

	if c.Bool(allFlag) {
		return exportAll(ctx, svc, cfg.OutputPath)
	}

	eventID := cfg.EventID
	if eventID == "" {
		ids, err := svc.EventIDs()
		if err != nil {
			return err
		}
		if len(ids) != 1 {
			return fmt.Errorf("%w: snapshot holds %d events, pick one with --event",
				config.ErrInvalidConfig, len(ids))
		}
		eventID = ids[0]
	}

	var w io.WriteCloser
	if cfg.OutputPath == stdoutCLIName || cfg.OutputPath == "" {
		w = os.Stdout
	} else {
		lazy := export.NewLazyFileWriter(cfg.OutputPath)
		defer func() {
			_ = lazy.Close()
		}()
		w = lazy
	}
	return svc.Export(ctx, w, eventID, cfg.DivisionID)
}

// exportAll writes one result_<event>.csv per event into the output
// directory (default: current directory).
func exportAll(ctx context.Context, svc *app.Service, outDir string) error {
	if outDir == "" || outDir == stdoutCLIName {
		outDir = "."
	}
	results, err := svc.ComputeAll(ctx)
	if err != nil {
		return err
	}
	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			logger.Get().Error(ctx, "event failed", logger.String("eventID", res.EventID), logger.Error(res.Err))
			continue
		}
		path := filepath.Join(outDir, "result_"+res.EventID+".csv")
		if err := export.WriteTableFile(path, res.Rows, res.RaceIDs); err != nil {
			return err
		}
		logger.Get().Info(ctx, "result written", logger.String("eventID", res.EventID), logger.String("path", path))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d events failed", failed, len(results))
	}
	return nil
}

// applyFlags overlays explicitly set CLI flags on the loaded config.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if v := c.String(snapshotFlag); v != "" {
		cfg.SnapshotPath = v
	}
	if v := c.String(eventFlag); v != "" {
		cfg.EventID = v
	}
	if v := c.String(divisionFlag); v != "" {
		cfg.DivisionID = v
	}
	if v := c.String(outputFlag); v != "" {
		cfg.OutputPath = v
	}
	if v := c.String(logLevelFlag); v != "" {
		cfg.LogLevel = v
	}
}
