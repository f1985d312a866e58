// Package testfleet generates synthetic regatta snapshots for exercising the
// scoring pipeline: configurable numbers of events, boats, and races, with
// randomized finish times, penalty codes, and no-shows.
package testfleet

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/regatta/internal/adapters/snapshot"
	"github.com/okian/regatta/internal/domain/model"
)

// Default generation parameters.
const (
	defaultBoats       = 20
	defaultRaces       = 6
	defaultPenaltyRate = 0.05
	defaultAbsenceRate = 0.05
	raceInterval       = time.Hour
	minLegDuration     = 30 * time.Minute
	legJitter          = 20 * time.Minute
)

// Penalty codes handed out by the race committee in generated data.
var penaltyCodes = []string{"OCS", "DNF", "DSQ", "DNS"}

var countryPrefixes = []string{"AUS", "DEN", "FRA", "GBR", "GER", "ITA", "NED", "NZL", "SUI", "USA"}

// Config controls snapshot generation. Zero values fall back to defaults;
// the Seed makes generation reproducible.
type Config struct {
	Events      int
	Boats       int
	Races       int
	PenaltyRate float64
	AbsenceRate float64
	Seed        int64
	Start       time.Time
}

func (c Config) withDefaults() Config {
	if c.Events < 1 {
		c.Events = 1
	}
	if c.Boats < 1 {
		c.Boats = defaultBoats
	}
	if c.Races < 1 {
		c.Races = defaultRaces
	}
	if c.PenaltyRate <= 0 {
		c.PenaltyRate = defaultPenaltyRate
	}
	if c.AbsenceRate <= 0 {
		c.AbsenceRate = defaultAbsenceRate
	}
	if c.Start.IsZero() {
		c.Start = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	}
	return c
}

// Generate builds a snapshot with cfg.Events independent events. Every event
// gets the standard [3, 6, 9] discard table, cfg.Boats entries, and
// cfg.Races races; each (boat, race) pair either finishes cleanly, draws a
// penalty code, or stays ashore.
func Generate(cfg Config) *snapshot.Snapshot {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible generation

	snap := &snapshot.Snapshot{}
	for ev := 0; ev < cfg.Events; ev++ {
		eventID := uuid.New().String()
		snap.Events = append(snap.Events, model.EventConfig{
			EventID:           eventID,
			DiscardThresholds: []int{3, 6, 9},
		})

		sails := make([]string, cfg.Boats)
		for b := 0; b < cfg.Boats; b++ {
			prefix := countryPrefixes[rng.Intn(len(countryPrefixes))]
			sails[b] = fmt.Sprintf("%s-%d", prefix, 100+b)
			snap.Entries = append(snap.Entries, model.Entry{
				EventID:    eventID,
				SailNumber: sails[b],
				Name:       fmt.Sprintf("Boat %d", b+1),
			})
		}

		for r := 0; r < cfg.Races; r++ {
			raceID := fmt.Sprintf("%s-R%d", eventID[:8], r+1)
			start := cfg.Start.Add(time.Duration(r) * raceInterval)
			snap.Races = append(snap.Races, model.Race{
				EventID:   eventID,
				RaceID:    raceID,
				StartTime: start,
			})

			for b := 0; b < cfg.Boats; b++ {
				roll := rng.Float64()
				switch {
				case roll < cfg.AbsenceRate:
					// No finish record: the boat is DNC for this race.
				case roll < cfg.AbsenceRate+cfg.PenaltyRate:
					snap.Finishes = append(snap.Finishes, model.Finish{
						SailNumber: sails[b],
						RaceID:     raceID,
						Code:       penaltyCodes[rng.Intn(len(penaltyCodes))],
					})
				default:
					leg := minLegDuration + time.Duration(rng.Int63n(int64(legJitter)))
					snap.Finishes = append(snap.Finishes, model.Finish{
						SailNumber: sails[b],
						RaceID:     raceID,
						FinishTime: start.Add(leg),
					})
				}
			}
		}
	}
	return snap
}
