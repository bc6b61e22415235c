// Package kv provides the byte-oriented key-value store that backs
// persistence. Values are opaque blobs; callers own serialization.
package kv

import (
	"context"
	"errors"
)

//go:generate mockgen -source=kv.go -destination=store_mock.go -package=kv

// Store reads and writes opaque byte blobs under string keys.
type Store interface {
	// Get returns the blob stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrKeyNotFound is returned by Get when no blob exists under the key.
var ErrKeyNotFound = errors.New("key not found")
