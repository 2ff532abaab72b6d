// Package kv backs the embedded key-value slot endpoint that sync rooms
// mirror through. Slots are opaque byte blobs, overwritten whole.
package kv

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("kv: key not found")

type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
