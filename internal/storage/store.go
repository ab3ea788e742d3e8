// Package storage provides the key-value persistence adapter BloodBuddy keeps
// its documents in. Values are opaque bytes; a missing key reads as (nil, nil).
//
// Backends: SQLite file (default), PostgreSQL, Redis and an in-process map.
package storage

import (
	"context"
	"errors"
	"sort"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a string-keyed byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// BatchWriter is implemented by stores that can write several keys
// atomically.
type BatchWriter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

// SetMany writes all values, atomically when s implements BatchWriter and
// one key at a time in key order otherwise.
func SetMany(ctx context.Context, s Store, values map[string][]byte) error {
	if b, ok := s.(BatchWriter); ok {
		return b.SetMany(ctx, values)
	}
	for _, k := range sortedKeys(values) {
		if err := s.Set(ctx, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(values map[string][]byte) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
