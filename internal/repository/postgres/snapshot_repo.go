// Package postgres persists the snapshot as a single jsonb row per storage
// key. The aggregate is still written and read as one unit; Postgres only
// replaces the data file, it does not change the storage model.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"meup-backend/internal/domain"
	"meup-backend/pkg/logger"
)

type snapshotRepo struct {
	db  *pgxpool.Pool
	key string
}

// NewSnapshotRepository creates the backing table if needed and returns a
// repository bound to the given storage key.
func NewSnapshotRepository(db *pgxpool.Pool, storageKey string) (domain.SnapshotRepository, error) {
	const ddl = `CREATE TABLE IF NOT EXISTS snapshots (
		key         TEXT PRIMARY KEY,
		data        JSONB NOT NULL,
		last_update BIGINT NOT NULL DEFAULT 0
	)`
	if _, err := db.Exec(context.Background(), ddl); err != nil {
		return nil, fmt.Errorf("ensure snapshots table: %w", err)
	}
	return &snapshotRepo{db: db, key: storageKey}, nil
}

func (r *snapshotRepo) Load(ctx context.Context) (*domain.Snapshot, error) {
	var raw []byte
	query := `SELECT data FROM snapshots WHERE key = $1`
	err := r.db.QueryRow(ctx, query, r.key).Scan(&raw)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Log.Warn("snapshot row read failed, starting empty", "key", r.key, "error", err)
		}
		return domain.NewSnapshot(), nil
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(raw, snap); err != nil {
		logger.Log.Warn("snapshot row parse failed, starting empty", "key", r.key, "error", err)
		return domain.NewSnapshot(), nil
	}
	return snap, nil
}

func (r *snapshotRepo) Save(ctx context.Context, snap *domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := `INSERT INTO snapshots (key, data, last_update) VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, last_update = EXCLUDED.last_update`
	_, err = r.db.Exec(ctx, query, r.key, raw, snap.LastUpdate)
	return err
}
