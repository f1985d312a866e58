// Package app provides the application service that wires the snapshot
// loader, the scoring engine, the batch pool, and the result exporter.
package app

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/okian/regatta/internal/adapters/batch"
	"github.com/okian/regatta/internal/adapters/export"
	"github.com/okian/regatta/internal/adapters/snapshot"
	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/pkg/logger"
	"github.com/okian/regatta/pkg/metrics"
)

// Service scores events from one loaded snapshot. Computations share no
// mutable state, so the service can be used from multiple goroutines once
// Load has returned.
type Service struct {
	mu sync.RWMutex

	snapshotPath string
	workerCount  int
	logger       logger.Logger

	snap *snapshot.Snapshot
	pool *batch.Pool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSnapshotPath sets the snapshot file to load.
func WithSnapshotPath(path string) Option {
	return func(s *Service) {
		s.snapshotPath = path
	}
}

// WithWorkerCount sets the number of concurrent event computations.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSnapshot injects an already-built snapshot instead of loading one from
// disk. Intended for tests and embedding callers.
func WithSnapshot(snap *snapshot.Snapshot) Option {
	return func(s *Service) {
		s.snap = snap
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	s.pool = batch.New(
		batch.WithWorkers(s.workerCount),
		batch.WithLogger(s.logger.Named("batch")),
	)
	return s
}

// Load reads the configured snapshot file. It is a no-op when a snapshot was
// injected with WithSnapshot.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil {
		return nil
	}
	if s.snapshotPath == "" {
		return fmt.Errorf("%w: no snapshot path configured", ErrNotLoaded)
	}

	snap, err := snapshot.Load(s.snapshotPath)
	if err != nil {
		return err
	}
	s.snap = snap
	s.logger.Info(ctx, "snapshot loaded",
		logger.String("path", s.snapshotPath),
		logger.Int("events", len(snap.Events)),
		logger.Int("entries", len(snap.Entries)),
		logger.Int("races", len(snap.Races)),
		logger.Int("finishes", len(snap.Finishes)),
	)
	return nil
}

// EventIDs lists the events available in the loaded snapshot.
func (s *Service) EventIDs() ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.EventIDs(), nil
}

// ComputeEvent scores one event and returns its ranked rows plus the race
// ids in series order. A non-empty divisionID restricts the ranked entries
// to that division before scoring; penalty values then reflect the division
// fleet size.
func (s *Service) ComputeEvent(ctx context.Context, eventID, divisionID string) ([]model.ResultRow, []string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, nil, err
	}

	src := batch.Source(snap)
	if divisionID != "" {
		src = &divisionSource{Snapshot: snap, divisionID: divisionID}
	}

	res := s.pool.Run(ctx, src, []string{eventID})[0]
	if res.Err != nil {
		return nil, nil, res.Err
	}
	return res.Rows, res.RaceIDs, nil
}

// ComputeAll scores every event in the snapshot concurrently.
func (s *Service) ComputeAll(ctx context.Context) ([]batch.Result, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return s.pool.Run(ctx, snap, snap.EventIDs()), nil
}

// Export computes one event and writes its result table to w.
func (s *Service) Export(ctx context.Context, w io.Writer, eventID, divisionID string) error {
	rows, raceIDs, err := s.ComputeEvent(ctx, eventID, divisionID)
	if err != nil {
		return err
	}
	if err := export.WriteTable(w, rows, raceIDs); err != nil {
		metrics.RecordExportError()
		return err
	}
	metrics.RecordExport()
	s.logger.Info(ctx, "result table exported",
		logger.String("eventID", eventID),
		logger.Int("rows", len(rows)),
	)
	return nil
}

func (s *Service) snapshot() (*snapshot.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNotLoaded
	}
	return s.snap, nil
}

// divisionSource narrows a snapshot to one division: the entry universe is
// filtered before ranking, and finishes from boats outside the division are
// dropped with it so positions are assigned within the division fleet. The
// engine itself stays division-agnostic and still flags any finish that does
// not match the entry universe it is given.
type divisionSource struct {
	*snapshot.Snapshot
	divisionID string
}

func (d *divisionSource) EntriesFor(eventID string) []model.Entry {
	return model.FilterByDivision(d.Snapshot.EntriesFor(eventID), d.divisionID)
}

func (d *divisionSource) FinishesFor(eventID string) []model.Finish {
	member := make(map[string]struct{})
	for _, e := range d.EntriesFor(eventID) {
		member[e.SailNumber] = struct{}{}
	}
	var out []model.Finish
	for _, f := range d.Snapshot.FinishesFor(eventID) {
		if _, ok := member[f.SailNumber]; ok {
			out = append(out, f)
		}
	}
	return out
}
