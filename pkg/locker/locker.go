// Package locker provides distributed locking for coordinating background
// work across service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates mutual exclusion across instances.
// Implementations must be safe for concurrent use.
type DistributedLocker interface {
	// Acquire attempts to take the lock identified by key. It returns true
	// when the lock was taken and false when another instance holds it.
	// The lock expires on its own after ttl if never released.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives the lock back. Calling it for a lock this instance does
	// not own is a no-op.
	Release(ctx context.Context, key string) error
}
