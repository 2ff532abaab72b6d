package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"meup-backend/internal/domain"
	filerepo "meup-backend/internal/repository/file"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Should start empty when no file exists", func(t *testing.T) {
		repo, err := filerepo.NewSnapshotRepository(t.TempDir(), "meup_v1")
		assert.NoError(t, err)

		snap, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, snap.Profiles)
		assert.Zero(t, snap.LastUpdate)
	})

	t.Run("Should start empty on a corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "meup_v1.json"), []byte("{not json"), 0o644))

		repo, err := filerepo.NewSnapshotRepository(dir, "meup_v1")
		assert.NoError(t, err)

		snap, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, snap.Profiles)
	})

	t.Run("Should not see data saved under another storage key", func(t *testing.T) {
		dir := t.TempDir()
		old, err := filerepo.NewSnapshotRepository(dir, "meup_v1")
		assert.NoError(t, err)

		snap := domain.NewSnapshot()
		snap.Profiles = append(snap.Profiles, domain.Profile{ID: "a"})
		assert.NoError(t, old.Save(ctx, snap))

		fresh, err := filerepo.NewSnapshotRepository(dir, "meup_v2")
		assert.NoError(t, err)
		got, err := fresh.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, got.Profiles)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := filerepo.NewSnapshotRepository(t.TempDir(), "meup_v1")
	assert.NoError(t, err)

	snap := domain.NewSnapshot()
	snap.LastUpdate = 42
	snap.Profiles = append(snap.Profiles, domain.Profile{ID: "a", Email: "a@b.c"})
	snap.JobRequests = append(snap.JobRequests, domain.JobRequest{ID: "j1", Status: domain.JobStatusOpen})

	assert.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), got.LastUpdate)
	assert.NotNil(t, got.ProfileByID("a"))
	assert.NotNil(t, got.JobByID("j1"))
}
