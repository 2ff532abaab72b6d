// Package file persists the snapshot as one JSON document on disk, the
// server-side analog of the original single localStorage entry.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"meup-backend/internal/domain"
	"meup-backend/pkg/logger"
)

type snapshotRepo struct {
	path string
}

// NewSnapshotRepository stores the snapshot at <dataDir>/<storageKey>.json.
// A snapshot written under a different storage key is simply invisible; there
// is no migration between keys.
func NewSnapshotRepository(dataDir, storageKey string) (domain.SnapshotRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &snapshotRepo{path: filepath.Join(dataDir, storageKey+".json")}, nil
}

// Load returns the persisted snapshot. A missing file or a payload that
// fails to parse both count as an empty database, never an error.
func (r *snapshotRepo) Load(ctx context.Context) (*domain.Snapshot, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Log.Warn("snapshot read failed, starting empty", "path", r.path, "error", err)
		}
		return domain.NewSnapshot(), nil
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(raw, snap); err != nil {
		logger.Log.Warn("snapshot parse failed, starting empty", "path", r.path, "error", err)
		return domain.NewSnapshot(), nil
	}
	return snap, nil
}

// Save writes the whole snapshot through a temp file and rename, so readers
// never observe a partial document.
func (r *snapshotRepo) Save(ctx context.Context, snap *domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
