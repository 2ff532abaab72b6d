package cloudsync

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"meup-backend/internal/domain"
	"meup-backend/pkg/logger"
)

const roomFileName = "sync_room"

// Manager owns the poll loop and the room membership. Membership is
// remembered in the data dir so a restart rejoins the room automatically;
// leaving clears the marker but never deletes remote data.
type Manager struct {
	client   *Client
	store    domain.Store
	interval time.Duration
	roomPath string

	mu     sync.Mutex
	room   string
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(client *Client, store domain.Store, interval time.Duration, dataDir string) *Manager {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Manager{
		client:   client,
		store:    store,
		interval: interval,
		roomPath: filepath.Join(dataDir, roomFileName),
	}
}

// Room returns the active room name, empty when not syncing.
func (m *Manager) Room() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.room
}

// Restore rejoins the room remembered from a previous run, if any.
func (m *Manager) Restore() {
	raw, err := os.ReadFile(m.roomPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Log.Warn("sync room marker unreadable", "error", err)
		}
		return
	}
	room := strings.TrimSpace(string(raw))
	if room != "" {
		m.Start(room)
	}
}

// Start joins a room and begins the fixed-interval poll. Joining a new room
// while already syncing switches rooms.
func (m *Manager) Start(room string) {
	room = strings.ToLower(strings.TrimSpace(room))
	if room == "" {
		return
	}

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.room = room
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	if err := os.WriteFile(m.roomPath, []byte(room), 0o644); err != nil {
		logger.Log.Warn("sync room marker write failed", "error", err)
	}

	m.wg.Add(1)
	go m.poll(ctx, room)
	logger.Log.Info("cloud sync started", "room", room, "interval", m.interval.String())
}

// Stop leaves the room: the poller halts and the membership marker is
// cleared. Remote data stays behind for whoever joins next.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.room = ""
	m.mu.Unlock()

	if err := os.Remove(m.roomPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log.Warn("sync room marker remove failed", "error", err)
	}
	m.wg.Wait()
	logger.Log.Info("cloud sync stopped")
}

// HandleSave mirrors a locally-saved snapshot to the active room,
// fire-and-forget. Registered as a store save hook.
func (m *Manager) HandleSave(snap *domain.Snapshot) {
	room := m.Room()
	if room == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		m.client.Push(ctx, room, snap)
	}()
}

// ForceRefresh pulls once, outside the poll schedule. Reports whether the
// local snapshot was replaced.
func (m *Manager) ForceRefresh(ctx context.Context) bool {
	room := m.Room()
	if room == "" {
		return false
	}
	return m.applyRemote(ctx, room)
}

func (m *Manager) poll(ctx context.Context, room string) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.applyRemote(ctx, room)
		}
	}
}

// applyRemote replaces the local snapshot wholesale when the remote logical
// clock is strictly ahead. Equal or older remote state leaves local alone.
func (m *Manager) applyRemote(ctx context.Context, room string) bool {
	remote := m.client.Pull(ctx, room)
	if remote == nil {
		return false
	}
	if remote.LastUpdate <= m.store.LastUpdate() {
		return false
	}
	m.store.Replace(remote)
	logger.Log.Debug("cloud sync applied remote snapshot", "room", room, "last_update", remote.LastUpdate)
	return true
}
