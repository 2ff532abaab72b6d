// Package movement fakes professional travel: a fixed-interval ticker nudges
// every en-route assignment toward its job's coordinate and flips the
// assignment to arrived when it gets close enough. Cosmetic only; there is
// no real positioning behind it.
package movement

import (
	"context"
	"math"
	"time"

	"meup-backend/internal/domain"
	"meup-backend/pkg/logger"
)

const (
	// lerpFactor is the fraction of the remaining distance covered per tick.
	lerpFactor = 0.05
	// arriveThreshold is the Euclidean distance (in degrees) under which the
	// assignment flips to arrived.
	arriveThreshold = 2e-4
)

type Simulator struct {
	store    domain.Store
	interval time.Duration
}

func New(store domain.Store, interval time.Duration) *Simulator {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Simulator{store: store, interval: interval}
}

// Run ticks until the context is cancelled. Owned by main, torn down with
// the process.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("movement simulator stopping")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func lerp(start, end float64) float64 {
	return start + (end-start)*lerpFactor
}

// tick advances every en-route assignment one step. Distance to target
// decreases monotonically per step, and the arrived flip happens exactly
// once, the first time the distance drops under the threshold.
func (s *Simulator) tick() {
	// Plan from a read view first so ticks with nothing en route skip the
	// snapshot write entirely.
	var changes []domain.Change
	s.store.View(func(snap *domain.Snapshot) {
		for i := range snap.JobAssignments {
			a := &snap.JobAssignments[i]
			if a.Status == domain.AssignmentEnRoute {
				changes = append(changes, domain.Change{Kind: domain.ChangeAssignment, ID: a.ID})
			}
		}
	})
	if len(changes) == 0 {
		return
	}

	err := s.store.Update(func(snap *domain.Snapshot) error {
		now := time.Now()
		for i := range snap.JobAssignments {
			a := &snap.JobAssignments[i]
			if a.Status != domain.AssignmentEnRoute {
				continue
			}
			job := snap.JobByID(a.JobID)
			if job == nil {
				continue
			}

			a.LastLat = lerp(a.LastLat, job.GeoLat)
			a.LastLng = lerp(a.LastLng, job.GeoLng)
			a.UpdatedAt = now

			dist := math.Hypot(job.GeoLat-a.LastLat, job.GeoLng-a.LastLng)
			if dist < arriveThreshold {
				a.Status = domain.AssignmentArrived
			}
		}
		return nil
	}, changes...)
	if err != nil {
		logger.Log.Warn("movement tick failed", "error", err)
	}
}
