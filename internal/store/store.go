// Package store owns the single persisted aggregate. Every mutation in the
// system is a read-modify-write of the whole snapshot through Update, which
// stamps the logical clock, persists, and broadcasts typed change events.
package store

import (
	"context"
	"sync"
	"time"

	"meup-backend/internal/domain"
	"meup-backend/internal/events"
	"meup-backend/pkg/logger"
)

type Store struct {
	mu   sync.RWMutex
	repo domain.SnapshotRepository
	bus  *events.Bus
	snap *domain.Snapshot

	hookMu    sync.RWMutex
	saveHooks []func(*domain.Snapshot)
}

// New loads the persisted snapshot (or an empty one) and wires the bus.
func New(repo domain.SnapshotRepository, bus *events.Bus) (*Store, error) {
	snap, err := repo.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return &Store{repo: repo, bus: bus, snap: snap}, nil
}

// OnSave registers a hook invoked with a copy of the snapshot after every
// locally-originated save. The cloud mirror push hangs off this.
func (s *Store) OnSave(hook func(*domain.Snapshot)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.saveHooks = append(s.saveHooks, hook)
}

// View runs fn with read access to the live snapshot. fn must not retain or
// mutate anything it is handed.
func (s *Store) View(fn func(*domain.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.snap)
}

// Update applies fn to a working copy; if fn succeeds the copy becomes the
// live snapshot with a freshly stamped, strictly increased logical clock,
// gets persisted, and the changes are published. An fn error discards the
// copy, so callers never observe partial mutations.
//
// Persistence failures are logged and swallowed: the in-memory state stays
// authoritative and the next save retries implicitly, mirroring the
// original's fire-and-forget storage writes.
func (s *Store) Update(fn func(*domain.Snapshot) error, changes ...domain.Change) error {
	s.mu.Lock()
	work := s.snap.Clone()
	if err := fn(work); err != nil {
		s.mu.Unlock()
		return err
	}

	now := time.Now().UnixMilli()
	if now <= s.snap.LastUpdate {
		// Keeps last_update non-decreasing under clock hiccups.
		now = s.snap.LastUpdate + 1
	}
	work.LastUpdate = now
	s.snap = work

	if err := s.repo.Save(context.Background(), work); err != nil {
		logger.Log.Warn("snapshot save failed", "error", err)
	}
	published := work.Clone()
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(changes...)
	}
	s.runHooks(published)
	return nil
}

// Replace swaps in a snapshot wholesale, as pulled from the cloud mirror.
// The remote clock is kept as-is and no save hooks run, so a pull never
// re-pushes what it just fetched.
func (s *Store) Replace(snap *domain.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	if err := s.repo.Save(context.Background(), snap); err != nil {
		logger.Log.Warn("snapshot save failed", "error", err)
	}
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(domain.Change{Kind: domain.ChangeSnapshot})
	}
}

// LastUpdate returns the current logical clock.
func (s *Store) LastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.LastUpdate
}

func (s *Store) runHooks(snap *domain.Snapshot) {
	s.hookMu.RLock()
	hooks := make([]func(*domain.Snapshot), len(s.saveHooks))
	copy(hooks, s.saveHooks)
	s.hookMu.RUnlock()
	for _, h := range hooks {
		h(snap)
	}
}
