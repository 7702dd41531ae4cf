package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so that a retried
// request is not executed twice
type IdempotencyStore interface {
	// Claim marks the key as taken for ttl.
	// Returns true if the key was newly claimed, false if it is already held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a claimed key so the request can be retried
	Release(ctx context.Context, key string) error

	// IsClaimed checks whether the key is currently held
	IsClaimed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}
