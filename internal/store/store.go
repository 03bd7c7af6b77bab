// Package store provides the key-value persistence behind per-session state.
// It plays the part browser local storage plays for a web client: small JSON
// documents under string keys, read on demand and overwritten on change.
package store

import (
	"context"
	"time"
)

// Store is a key-value store of opaque byte values.
// Get returns an error wrapping models.ErrNotFound when the key is missing or expired.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
