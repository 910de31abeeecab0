package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBusyGuardContract runs a suite of tests to verify that a BusyGuard implementation
// adheres to the defined interface contract.
func RunBusyGuardContract(t *testing.T, guard BusyGuard) {
	ctx := context.Background()
	key := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Acquire and Release", func(t *testing.T) {
		release, ok, err := guard.TryAcquire(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, "first acquisition should succeed")

		busy, err := guard.Busy(ctx, key)
		require.NoError(t, err)
		assert.True(t, busy)

		require.NoError(t, release(ctx))

		busy, err = guard.Busy(ctx, key)
		require.NoError(t, err)
		assert.False(t, busy)
	})

	t.Run("Second Acquire Is Rejected", func(t *testing.T) {
		release, ok, err := guard.TryAcquire(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		defer release(ctx)

		again, ok, err := guard.TryAcquire(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "held key must not be acquired twice")
		assert.Nil(t, again)
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		r1, ok, err := guard.TryAcquire(ctx, key+"-a")
		require.NoError(t, err)
		require.True(t, ok)
		defer r1(ctx)

		r2, ok, err := guard.TryAcquire(ctx, key+"-b")
		require.NoError(t, err)
		assert.True(t, ok)
		defer r2(ctx)
	})

	t.Run("Release Is Idempotent", func(t *testing.T) {
		release, ok, err := guard.TryAcquire(ctx, key+"-idem")
		require.NoError(t, err)
		require.True(t, ok)

		assert.NoError(t, release(ctx))
		assert.NoError(t, release(ctx))
	})
}
