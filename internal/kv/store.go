// Package kv provides the key-value persistence abstraction used for
// singleton values such as the manual "today" date. The store is injected
// rather than ambient so it can be substituted with an in-memory
// implementation in tests.
package kv

import "context"

// Store defines the interface for persisting raw string values under keys.
type Store interface {
	// Get retrieves the value under key. The second return value is false
	// when the key has never been set; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}
