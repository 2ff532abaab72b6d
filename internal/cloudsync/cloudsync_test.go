package cloudsync_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"meup-backend/internal/cloudsync"
	"meup-backend/internal/domain"
	"meup-backend/internal/events"
	filerepo "meup-backend/internal/repository/file"
	"meup-backend/internal/store"
)

// slotServer fakes the remote key-value service with a plain map.
type slotServer struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func newSlotServer() *slotServer {
	return &slotServer{slots: make(map[string][]byte)}
}

func (s *slotServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path[1:]
		s.mu.Lock()
		defer s.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			value, ok := s.slots[key]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(value)
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			s.slots[key] = body
			w.WriteHeader(http.StatusOK)
		}
	})
}

func (s *slotServer) put(t *testing.T, key string, snap *domain.Snapshot) {
	t.Helper()
	raw, err := json.Marshal(snap)
	assert.NoError(t, err)
	s.mu.Lock()
	s.slots[key] = raw
	s.mu.Unlock()
}

func newSyncedStore(t *testing.T) *store.Store {
	t.Helper()
	repo, err := filerepo.NewSnapshotRepository(t.TempDir(), "test")
	assert.NoError(t, err)
	st, err := store.New(repo, events.NewBus())
	assert.NoError(t, err)
	return st
}

func TestRoomKey(t *testing.T) {
	assert.Equal(t, "meup_familia", cloudsync.RoomKey("  Familia "))
	assert.Equal(t, "meup_sala1", cloudsync.RoomKey("SALA1"))
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Should round trip a snapshot through the slot", func(t *testing.T) {
		remote := newSlotServer()
		srv := httptest.NewServer(remote.handler())
		defer srv.Close()

		client := cloudsync.NewClient(srv.URL)
		snap := domain.NewSnapshot()
		snap.LastUpdate = 7
		client.Push(ctx, "sala", snap)

		got := client.Pull(ctx, "sala")
		assert.NotNil(t, got)
		assert.Equal(t, int64(7), got.LastUpdate)
	})

	t.Run("Should read missing or malformed slots as nil", func(t *testing.T) {
		remote := newSlotServer()
		srv := httptest.NewServer(remote.handler())
		defer srv.Close()

		client := cloudsync.NewClient(srv.URL)
		assert.Nil(t, client.Pull(ctx, "vazia"))

		remote.mu.Lock()
		remote.slots["meup_ruim"] = []byte("{broken")
		remote.mu.Unlock()
		assert.Nil(t, client.Pull(ctx, "ruim"))
	})

	t.Run("Should swallow push failures", func(t *testing.T) {
		client := cloudsync.NewClient("http://127.0.0.1:1")
		client.Push(ctx, "sala", domain.NewSnapshot())
		assert.Nil(t, client.Pull(ctx, "sala"))
	})
}

func TestManagerLastWriteWins(t *testing.T) {
	ctx := context.Background()
	remote := newSlotServer()
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	st := newSyncedStore(t)
	assert.NoError(t, st.Update(func(snap *domain.Snapshot) error {
		snap.Profiles = append(snap.Profiles, domain.Profile{ID: "local"})
		return nil
	}))

	dataDir := t.TempDir()
	manager := cloudsync.NewManager(cloudsync.NewClient(srv.URL), st, time.Hour, dataDir)
	manager.Start("sala")
	defer manager.Stop()

	t.Run("Should replace local state when remote is strictly newer", func(t *testing.T) {
		newer := domain.NewSnapshot()
		newer.LastUpdate = st.LastUpdate() + 1
		newer.Profiles = append(newer.Profiles, domain.Profile{ID: "remote"})
		remote.put(t, "meup_sala", newer)

		assert.True(t, manager.ForceRefresh(ctx))
		st.View(func(snap *domain.Snapshot) {
			assert.NotNil(t, snap.ProfileByID("remote"))
			assert.Nil(t, snap.ProfileByID("local"))
		})
	})

	t.Run("Should keep local state when remote clock is equal", func(t *testing.T) {
		same := domain.NewSnapshot()
		same.LastUpdate = st.LastUpdate()
		remote.put(t, "meup_sala", same)

		assert.False(t, manager.ForceRefresh(ctx))
	})

	t.Run("Should keep local state when remote clock is older", func(t *testing.T) {
		older := domain.NewSnapshot()
		older.LastUpdate = st.LastUpdate() - 1
		remote.put(t, "meup_sala", older)

		assert.False(t, manager.ForceRefresh(ctx))
	})
}

// Two writers in one room overwrite each other at snapshot granularity.
// This pins the accepted lossy behavior: the later write wins wholesale.
func TestTwoWritersLastWriteWins(t *testing.T) {
	ctx := context.Background()
	remote := newSlotServer()
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	newMember := func() (*store.Store, *cloudsync.Manager) {
		st := newSyncedStore(t)
		manager := cloudsync.NewManager(cloudsync.NewClient(srv.URL), st, time.Hour, t.TempDir())
		st.OnSave(manager.HandleSave)
		manager.Start("rio")
		t.Cleanup(manager.Stop)
		return st, manager
	}

	stA, mgrA := newMember()
	stB, mgrB := newMember()

	addJob := func(st *store.Store, id string) {
		assert.NoError(t, st.Update(func(snap *domain.Snapshot) error {
			snap.JobRequests = append(snap.JobRequests, domain.JobRequest{ID: id, Status: domain.JobStatusOpen})
			return nil
		}))
	}

	remoteAtLeast := func(clock int64) func() bool {
		return func() bool {
			got := cloudsync.NewClient(srv.URL).Pull(ctx, "rio")
			return got != nil && got.LastUpdate >= clock
		}
	}

	addJob(stA, "job-a")
	assert.Eventually(t, remoteAtLeast(stA.LastUpdate()), 2*time.Second, 20*time.Millisecond)

	// The millisecond clock must tick so B's write is strictly newer.
	time.Sleep(5 * time.Millisecond)
	addJob(stB, "job-b")
	assert.Eventually(t, remoteAtLeast(stB.LastUpdate()), 2*time.Second, 20*time.Millisecond)

	assert.True(t, mgrA.ForceRefresh(ctx))
	assert.False(t, mgrB.ForceRefresh(ctx))

	stA.View(func(snap *domain.Snapshot) {
		// A's own write is gone; no merge happened.
		assert.Nil(t, snap.JobByID("job-a"))
		assert.NotNil(t, snap.JobByID("job-b"))
	})
}

func TestManagerMembership(t *testing.T) {
	remote := newSlotServer()
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	t.Run("Should remember the room across restarts", func(t *testing.T) {
		dataDir := t.TempDir()
		st := newSyncedStore(t)

		first := cloudsync.NewManager(cloudsync.NewClient(srv.URL), st, time.Hour, dataDir)
		first.Start("Sala1")
		assert.Equal(t, "sala1", first.Room())

		second := cloudsync.NewManager(cloudsync.NewClient(srv.URL), st, time.Hour, dataDir)
		second.Restore()
		assert.Equal(t, "sala1", second.Room())
		second.Stop()
		first.Stop()
	})

	t.Run("Should forget the room after leaving", func(t *testing.T) {
		dataDir := t.TempDir()
		st := newSyncedStore(t)

		manager := cloudsync.NewManager(cloudsync.NewClient(srv.URL), st, time.Hour, dataDir)
		manager.Start("sala2")
		manager.Stop()
		assert.Empty(t, manager.Room())

		again := cloudsync.NewManager(cloudsync.NewClient(srv.URL), st, time.Hour, dataDir)
		again.Restore()
		assert.Empty(t, again.Room())
	})
}

func TestManagerPushOnSave(t *testing.T) {
	remote := newSlotServer()
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	st := newSyncedStore(t)
	manager := cloudsync.NewManager(cloudsync.NewClient(srv.URL), st, time.Hour, t.TempDir())
	st.OnSave(manager.HandleSave)
	manager.Start("sala")
	defer manager.Stop()

	assert.NoError(t, st.Update(func(snap *domain.Snapshot) error {
		snap.Profiles = append(snap.Profiles, domain.Profile{ID: "mirrored"})
		return nil
	}))

	// The push is fire-and-forget on a goroutine.
	assert.Eventually(t, func() bool {
		got := cloudsync.NewClient(srv.URL).Pull(context.Background(), "sala")
		return got != nil && got.ProfileByID("mirrored") != nil
	}, 2*time.Second, 20*time.Millisecond)
}
