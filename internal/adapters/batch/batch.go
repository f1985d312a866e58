// Package batch computes series results for many independent events
// concurrently. Each computation is a pure function of its snapshot inputs,
// so a fixed pool of workers can score events in parallel without locking.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/regatta/internal/domain/discard"
	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/position"
	"github.com/okian/regatta/internal/domain/series"
	"github.com/okian/regatta/pkg/logger"
	"github.com/okian/regatta/pkg/metrics"
)

// Source supplies the per-event collections a computation needs. A loaded
// snapshot satisfies this.
type Source interface {
	Event(eventID string) (model.EventConfig, error)
	EntriesFor(eventID string) []model.Entry
	RacesFor(eventID string) []model.Race
	FinishesFor(eventID string) []model.Finish
}

// Result is the outcome of scoring one event.
type Result struct {
	EventID string
	Rows    []model.ResultRow
	RaceIDs []string
	Err     error
}

// Pool runs series computations across a fixed number of workers.
type Pool struct {
	workers int
	logger  logger.Logger
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pool with default configuration.
func New(opts ...Option) *Pool {
	p := &Pool{
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("batch")
	}
	return p
}

// Run scores every listed event and returns one Result per event id, in the
// order given. A failed event carries its error in Result.Err; other events
// are unaffected. Run returns early only when ctx is canceled, in which case
// unprocessed events report the context error.
func (p *Pool) Run(ctx context.Context, src Source, eventIDs []string) []Result {
	results := make([]Result, len(eventIDs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.computeOne(ctx, src, eventIDs[i])
			}
		}()
	}

feed:
	for i := range eventIDs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	// Anything never picked up reports the cancellation.
	for i := range results {
		if results[i].EventID == "" && results[i].Err == nil {
			results[i] = Result{EventID: eventIDs[i], Err: ctx.Err()}
		}
	}
	return results
}

// computeOne scores a single event and records the computation metrics.
func (p *Pool) computeOne(ctx context.Context, src Source, eventID string) Result {
	start := time.Now()
	res := Result{EventID: eventID}

	cfg, err := src.Event(eventID)
	if err != nil {
		res.Err = err
		metrics.RecordComputationFailure("unknown_event")
		return res
	}

	entries := src.EntriesFor(eventID)
	races := src.RacesFor(eventID)
	finishes := src.FinishesFor(eventID)

	rows, err := series.Compute(cfg, entries, races, finishes)
	if err != nil {
		res.Err = fmt.Errorf("compute event %q: %w", eventID, err)
		metrics.RecordComputationFailure(failureKind(err))
		p.logger.Error(ctx, "series computation failed",
			logger.String("eventID", eventID),
			logger.Error(err),
		)
		return res
	}

	res.Rows = rows
	res.RaceIDs = make([]string, len(races))
	for i, r := range races {
		res.RaceIDs[i] = r.RaceID
	}

	elapsed := time.Since(start)
	metrics.RecordComputation(elapsed.Seconds())
	metrics.UpdateFleetSize(len(rows))
	metrics.UpdateRaceCount(len(races))
	p.logger.Debug(ctx, "series computed",
		logger.String("eventID", eventID),
		logger.Int("boats", len(rows)),
		logger.Int("races", len(races)),
		logger.Duration("elapsed", elapsed),
	)
	return res
}

// failureKind maps an error to its failure metric label.
func failureKind(err error) string {
	switch {
	case errors.Is(err, discard.ErrInvalidThresholds),
		errors.Is(err, series.ErrNoEntries),
		errors.Is(err, series.ErrDuplicateSail):
		return "validation"
	case errors.Is(err, position.ErrUnknownSail),
		errors.Is(err, position.ErrUnknownRace),
		errors.Is(err, position.ErrDuplicateFinish):
		return "data_inconsistency"
	default:
		return "other"
	}
}
