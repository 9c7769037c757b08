// Package storage is the persistent string key-value store behind saved game
// history. Backends: sqlite, redis, and an in-memory map for tests.
//
// Writers do read-modify-write with no cross-writer locking; concurrent
// writers can race and lose updates.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for absent keys.
var ErrNotFound = errors.New("not found")

// Store is a string-keyed, string-valued persistent map with key
// enumeration and no expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Keys(ctx context.Context) ([]string, error)
}
