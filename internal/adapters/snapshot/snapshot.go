// Package snapshot loads the read-only data snapshot the engine consumes:
// event configs, entries, races, and finishes, all in one JSON or YAML file.
// It validates required fields and referential integrity up front so the
// engine only ever sees well-formed collections.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/pkg/metrics"
)

// Snapshot is the validated, in-memory form of one snapshot file.
type Snapshot struct {
	Events   []model.EventConfig
	Entries  []model.Entry
	Races    []model.Race
	Finishes []model.Finish
}

// File-level DTOs. Timestamps are RFC 3339 strings on disk.
type fileSnapshot struct {
	Events   []eventDTO  `json:"events" yaml:"events"`
	Entries  []entryDTO  `json:"entries" yaml:"entries"`
	Races    []raceDTO   `json:"races" yaml:"races"`
	Finishes []finishDTO `json:"finishes" yaml:"finishes"`
}

type eventDTO struct {
	ID      string `json:"id" yaml:"id"`
	Discard []int  `json:"discard,omitempty" yaml:"discard,omitempty"`
}

type entryDTO struct {
	EventID     string   `json:"event_id" yaml:"event_id"`
	SailNumber  string   `json:"sail_number" yaml:"sail_number"`
	Name        string   `json:"name" yaml:"name"`
	DivisionIDs []string `json:"division_ids,omitempty" yaml:"division_ids,omitempty"`
}

type raceDTO struct {
	EventID   string `json:"event_id" yaml:"event_id"`
	RaceID    string `json:"race_id" yaml:"race_id"`
	StartTime string `json:"start_time" yaml:"start_time"`
}

type finishDTO struct {
	SailNumber string `json:"sail_number" yaml:"sail_number"`
	RaceID     string `json:"race_id" yaml:"race_id"`
	FinishTime string `json:"finish_time" yaml:"finish_time"`
	Code       string `json:"code" yaml:"code"`
}

// Load reads and validates a snapshot file. The format is chosen by
// extension: .json, or .yaml/.yml.
func Load(path string) (*Snapshot, error) {
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var fs fileSnapshot
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &fs); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &fs); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	snap, err := build(fs)
	if err != nil {
		return nil, err
	}

	metrics.RecordSnapshotLoad(time.Since(start).Seconds())
	return snap, nil
}

// build converts DTOs into model types and enforces referential integrity:
// entries and races must reference a declared event, finishes must reference
// a declared race. Penalty codes are normalized to upper case.
func build(fs fileSnapshot) (*Snapshot, error) {
	snap := &Snapshot{}

	events := make(map[string]struct{}, len(fs.Events))
	for i, e := range fs.Events {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: events[%d].id", ErrMissingField, i)
		}
		if _, dup := events[e.ID]; dup {
			return nil, fmt.Errorf("%w: event %q", ErrDuplicateID, e.ID)
		}
		events[e.ID] = struct{}{}
		snap.Events = append(snap.Events, model.EventConfig{
			EventID:           e.ID,
			DiscardThresholds: e.Discard,
		})
	}

	for i, e := range fs.Entries {
		if e.EventID == "" || e.SailNumber == "" {
			return nil, fmt.Errorf("%w: entries[%d] needs event_id and sail_number", ErrMissingField, i)
		}
		if _, ok := events[e.EventID]; !ok {
			return nil, fmt.Errorf("%w: entries[%d] references event %q", ErrUnknownReference, i, e.EventID)
		}
		snap.Entries = append(snap.Entries, model.Entry{
			EventID:     e.EventID,
			SailNumber:  e.SailNumber,
			Name:        e.Name,
			DivisionIDs: e.DivisionIDs,
		})
	}

	races := make(map[string]struct{}, len(fs.Races))
	for i, r := range fs.Races {
		if r.EventID == "" || r.RaceID == "" {
			return nil, fmt.Errorf("%w: races[%d] needs event_id and race_id", ErrMissingField, i)
		}
		if _, ok := events[r.EventID]; !ok {
			return nil, fmt.Errorf("%w: races[%d] references event %q", ErrUnknownReference, i, r.EventID)
		}
		if _, dup := races[r.RaceID]; dup {
			return nil, fmt.Errorf("%w: race %q", ErrDuplicateID, r.RaceID)
		}
		races[r.RaceID] = struct{}{}
		start, err := parseTime(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("races[%d].start_time: %w", i, err)
		}
		snap.Races = append(snap.Races, model.Race{
			EventID:   r.EventID,
			RaceID:    r.RaceID,
			StartTime: start,
		})
	}

	for i, f := range fs.Finishes {
		if f.SailNumber == "" || f.RaceID == "" {
			return nil, fmt.Errorf("%w: finishes[%d] needs sail_number and race_id", ErrMissingField, i)
		}
		if _, ok := races[f.RaceID]; !ok {
			return nil, fmt.Errorf("%w: finishes[%d] references race %q", ErrUnknownReference, i, f.RaceID)
		}
		code := strings.ToUpper(strings.TrimSpace(f.Code))
		var finished time.Time
		if f.FinishTime != "" {
			var err error
			if finished, err = parseTime(f.FinishTime); err != nil {
				return nil, fmt.Errorf("finishes[%d].finish_time: %w", i, err)
			}
		} else if code == "" {
			return nil, fmt.Errorf("%w: finishes[%d] needs finish_time or code", ErrMissingField, i)
		}
		snap.Finishes = append(snap.Finishes, model.Finish{
			SailNumber: f.SailNumber,
			RaceID:     f.RaceID,
			FinishTime: finished,
			Code:       code,
		})
	}

	return snap, nil
}

// Save writes a snapshot to path, choosing the format by extension the same
// way Load does. Timestamps are written as RFC 3339.
func Save(path string, snap *Snapshot) error {
	fs := fileSnapshot{}
	for _, e := range snap.Events {
		fs.Events = append(fs.Events, eventDTO{ID: e.EventID, Discard: e.DiscardThresholds})
	}
	for _, e := range snap.Entries {
		fs.Entries = append(fs.Entries, entryDTO{
			EventID:     e.EventID,
			SailNumber:  e.SailNumber,
			Name:        e.Name,
			DivisionIDs: e.DivisionIDs,
		})
	}
	for _, r := range snap.Races {
		fs.Races = append(fs.Races, raceDTO{
			EventID:   r.EventID,
			RaceID:    r.RaceID,
			StartTime: r.StartTime.Format(time.RFC3339),
		})
	}
	for _, f := range snap.Finishes {
		dto := finishDTO{SailNumber: f.SailNumber, RaceID: f.RaceID, Code: f.Code}
		if !f.FinishTime.IsZero() {
			dto.FinishTime = f.FinishTime.Format(time.RFC3339)
		}
		fs.Finishes = append(fs.Finishes, dto)
	}

	var raw []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		raw, err = json.MarshalIndent(fs, "", "  ")
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(fs)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}
	return t, nil
}

// EventIDs returns the ids of all events in the snapshot, in declaration order.
func (s *Snapshot) EventIDs() []string {
	ids := make([]string, len(s.Events))
	for i, e := range s.Events {
		ids[i] = e.EventID
	}
	return ids
}

// Event returns the config for the given event id.
func (s *Snapshot) Event(eventID string) (model.EventConfig, error) {
	for _, e := range s.Events {
		if e.EventID == eventID {
			return e, nil
		}
	}
	return model.EventConfig{}, fmt.Errorf("%w: event %q", ErrEventNotFound, eventID)
}

// EntriesFor returns the entries registered for the event.
func (s *Snapshot) EntriesFor(eventID string) []model.Entry {
	var out []model.Entry
	for _, e := range s.Entries {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out
}

// RacesFor returns the event's races in series order: start time ascending,
// race id as the stable secondary key.
func (s *Snapshot) RacesFor(eventID string) []model.Race {
	var out []model.Race
	for _, r := range s.Races {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].StartTime.Equal(out[b].StartTime) {
			return out[a].StartTime.Before(out[b].StartTime)
		}
		return out[a].RaceID < out[b].RaceID
	})
	return out
}

// FinishesFor returns the finishes recorded in the event's races, in record
// order.
func (s *Snapshot) FinishesFor(eventID string) []model.Finish {
	races := make(map[string]struct{})
	for _, r := range s.Races {
		if r.EventID == eventID {
			races[r.RaceID] = struct{}{}
		}
	}
	var out []model.Finish
	for _, f := range s.Finishes {
		if _, ok := races[f.RaceID]; ok {
			out = append(out, f)
		}
	}
	return out
}
