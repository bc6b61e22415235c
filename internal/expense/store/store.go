// Package store persists the expense dataset as a single JSON blob under
// one namespaced key of a byte-oriented key-value store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketdash/pocketdash/internal/expense"
	"github.com/pocketdash/pocketdash/internal/kv"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "expense_tracker_data"

type Store struct {
	kv  kv.Store
	key string
}

func New(kvStore kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}

	return &Store{kv: kvStore, key: key}
}

// Load reads the persisted dataset. A missing blob seeds storage with the
// defaults; an unreadable one is logged and replaced in memory only, so
// the old blob survives until the next save. Load never fails the caller.
func (s *Store) Load(ctx context.Context) *expense.Data {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		data := expense.DefaultData()
		if err := s.Save(ctx, data); err != nil {
			slog.Warn("seeding storage failed", "key", s.key, "error", err)
		}

		return data
	}

	if err != nil {
		slog.Error("loading dataset failed, using defaults", "key", s.key, "error", err)
		return expense.DefaultData()
	}

	var data expense.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Error("stored dataset is unreadable, using defaults", "key", s.key, "error", err)
		return expense.DefaultData()
	}

	return &data
}

// Save overwrites the stored blob with the full dataset.
func (s *Store) Save(ctx context.Context, data *expense.Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("serializing dataset failed", "key", s.key, "error", err)
		return fmt.Errorf("serializing dataset: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		slog.Error("saving dataset failed", "key", s.key, "error", err)
		return fmt.Errorf("saving dataset: %w", err)
	}

	return nil
}

// Reset deletes the stored blob and re-seeds it with the defaults.
func (s *Store) Reset(ctx context.Context) *expense.Data {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		slog.Warn("clearing stored dataset failed", "key", s.key, "error", err)
	}

	data := expense.DefaultData()
	if err := s.Save(ctx, data); err != nil {
		slog.Warn("re-seeding storage failed", "key", s.key, "error", err)
	}

	return data
}

// Available probes writability with a throwaway write and delete. It
// leaves no residue on either outcome.
func (s *Store) Available(ctx context.Context) bool {
	probe := s.key + ".probe"

	if err := s.kv.Set(ctx, probe, []byte("probe")); err != nil {
		return false
	}

	if err := s.kv.Delete(ctx, probe); err != nil {
		return false
	}

	return true
}
