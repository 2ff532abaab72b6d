// Package cloudsync mirrors the full snapshot to a remote key-value slot
// keyed by a user-chosen room name. Everything here is best-effort and
// last-write-wins at snapshot granularity: no merge, no ordering beyond the
// last_update scalar. Two racing writers in one room can overwrite each
// other; that is an accepted demo-grade limitation.
package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"meup-backend/internal/domain"
	"meup-backend/pkg/logger"
)

// RoomKey derives the deterministic slot key for a room name.
func RoomKey(room string) string {
	return "meup_" + strings.ToLower(strings.TrimSpace(room))
}

// Client talks to any key-value HTTP service exposing GET/POST /{key}.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Push writes the full snapshot to the room's slot. Failures are logged and
// never propagated; the next save simply tries again.
func (c *Client) Push(ctx context.Context, room string, snap *domain.Snapshot) {
	body, err := json.Marshal(snap)
	if err != nil {
		logger.Log.Warn("cloud push marshal failed", "error", err)
		return
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, RoomKey(room))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Log.Warn("cloud push request failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Log.Warn("cloud push failed", "room", room, "error", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		logger.Log.Warn("cloud push rejected", "room", room, "status", resp.StatusCode)
	}
}

// Pull fetches the room's slot. Any failure (network, missing key, malformed
// payload) reads as "no newer data available" and returns nil.
func (c *Client) Pull(ctx context.Context, room string) *domain.Snapshot {
	// Cache-busting query param, same trick as the browser original.
	url := fmt.Sprintf("%s/%s?nocache=%d", c.baseURL, RoomKey(room), time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(body, snap); err != nil {
		return nil
	}
	return snap
}
