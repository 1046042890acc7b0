package lock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic/infras/otel/mocks"
	"clinic/shared/lock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (lock.Locker, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return lock.NewRedisLocker(client, mocks.NewOtel()), server
}

func TestRedisLocker_Exclusive(t *testing.T) {
	locker, server := newLocker(t)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "booking:2025-06-10", time.Second)
	require.NoError(t, err)
	assert.True(t, server.Exists("lock:booking:2025-06-10"))

	_, err = locker.Acquire(ctx, "booking:2025-06-10", time.Second)
	assert.True(t, errors.Is(err, lock.ErrNotAcquired))

	_, err = locker.Acquire(ctx, "booking:2025-06-11", time.Second)
	assert.NoError(t, err, "other days must not share the lock")

	require.NoError(t, release(ctx))
	assert.False(t, server.Exists("lock:booking:2025-06-10"))

	_, err = locker.Acquire(ctx, "booking:2025-06-10", time.Second)
	assert.NoError(t, err)
}

func TestRedisLocker_ReleaseAfterExpiry(t *testing.T) {
	locker, server := newLocker(t)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "wizard:abc", time.Second)
	require.NoError(t, err)

	server.FastForward(2 * time.Second)

	next, err := locker.Acquire(ctx, "wizard:abc", time.Second)
	require.NoError(t, err)

	require.NoError(t, release(ctx))
	assert.True(t, server.Exists("lock:wizard:abc"), "stale release must not drop the new holder")

	require.NoError(t, next(ctx))
	assert.False(t, server.Exists("lock:wizard:abc"))
}

func TestRedisLocker_Unavailable(t *testing.T) {
	locker, server := newLocker(t)
	server.Close()

	_, err := locker.Acquire(context.Background(), "booking:2025-06-10", time.Second)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, lock.ErrNotAcquired))
}

func TestDo_RunsUnderLockAndReleases(t *testing.T) {
	locker, server := newLocker(t)

	ran := false

	err := lock.Do(context.Background(), locker, "wizard:w-1", time.Second, 3, time.Millisecond, func(context.Context) error {
		ran = true
		assert.True(t, server.Exists("lock:wizard:w-1"))

		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, server.Exists("lock:wizard:w-1"))
}

func TestDo_ReturnsFnError(t *testing.T) {
	locker, server := newLocker(t)
	boom := errors.New("boom")

	err := lock.Do(context.Background(), locker, "wizard:w-1", time.Second, 1, time.Millisecond, func(context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, server.Exists("lock:wizard:w-1"))
}

func TestDo_GivesUpWhenHeld(t *testing.T) {
	locker, server := newLocker(t)
	require.NoError(t, server.Set("lock:wizard:w-1", "someone-else"))

	err := lock.Do(context.Background(), locker, "wizard:w-1", time.Second, 3, time.Millisecond, func(context.Context) error {
		t.Fatal("fn must not run without the lock")

		return nil
	})
	require.ErrorIs(t, err, lock.ErrNotAcquired)

	value, getErr := server.Get("lock:wizard:w-1")
	require.NoError(t, getErr)
	assert.Equal(t, "someone-else", value)
}

func TestDo_WaitsForRelease(t *testing.T) {
	locker, _ := newLocker(t)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "booking:2025-06-10", time.Second)
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = release(ctx)
	}()

	err = lock.Do(ctx, locker, "booking:2025-06-10", time.Second, 50, 10*time.Millisecond, func(context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}
