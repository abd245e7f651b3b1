// Package storage defines the durable key-value collaborator the persistence
// layer writes through, plus an in-memory implementation.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("storage: key not found")

// KV is the minimal durable store: string values under string keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Backend is a KV that owns resources.
type Backend interface {
	KV
	Close() error
}
