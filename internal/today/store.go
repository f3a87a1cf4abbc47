// Package today implements the manual "today" date: a single persisted
// string value with change notification. The raw store is deliberately
// unvalidated and last-write-wins; date semantics live in Service.
package today

import (
	"context"

	"github.com/structhr/structhr/internal/kv"
)

// Key is the fixed key the manual today value is stored under.
const Key = "manual_today_struct_hr"

// Store persists the manual today value in an injected key-value store.
type Store struct {
	kv kv.Store
}

// NewStore creates a Store over the given key-value backend.
func NewStore(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// SetToday writes value under the fixed key. The value is not validated;
// storage errors propagate to the caller.
func (s *Store) SetToday(ctx context.Context, value string) error {
	return s.kv.Set(ctx, Key, value)
}

// GetToday reads the stored value. Absence is ("", false, nil), not an error.
func (s *Store) GetToday(ctx context.Context) (string, bool, error) {
	return s.kv.Get(ctx, Key)
}
