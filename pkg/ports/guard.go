package ports

import "context"

// ReleaseFunc releases a guard acquired with TryAcquire.
type ReleaseFunc func(ctx context.Context) error

// BusyGuard enforces the one-request-in-flight rule.
// Acquisition never blocks: a held key means the caller must drop its input.
type BusyGuard interface {
	// TryAcquire marks key as busy. ok is false when key is already held.
	// When ok is true, the returned ReleaseFunc MUST be called.
	TryAcquire(ctx context.Context, key string) (release ReleaseFunc, ok bool, err error)

	// Busy reports whether key is currently held.
	Busy(ctx context.Context, key string) (bool, error)
}
