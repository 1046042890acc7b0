package lock

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic/infras/otel"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName        = "lock"
	otelLockKeyAttribute = "lock.key"
	keyPrefix            = "lock:"
)

var ErrNotAcquired = errors.New("lock is held by another request")

// releaseScript deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Release gives a held lock back. It is safe to call after the ttl expired.
type Release func(ctx context.Context) error

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

type redisLocker struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisLocker(client *redis.Client, ot otel.Otel) Locker {
	return &redisLocker{
		client: client,
		otel:   ot,
	}
}

// Acquire takes the lock with SET NX PX and returns ErrNotAcquired when another holder has it.
func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (release Release, err error) {
	ctx, scope := l.otel.NewScope(ctx, otelScopeName, otelScopeName+".Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lockKey := keyPrefix + key
	token := uuid.NewString()

	scope.SetAttribute(otelLockKeyAttribute, lockKey)

	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		log.Error().Err(err).Str("key", lockKey).Msg("failed to acquire lock")

		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !ok {
		return nil, ErrNotAcquired
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err(); err != nil {
			log.Error().Err(err).Str("key", lockKey).Msg("failed to release lock")

			return fmt.Errorf("failed to release lock: %w", err)
		}

		return nil
	}, nil
}

// Do runs fn while holding key. Acquire is tried up to attempts times, delay apart; when every
// attempt finds the lock held, Do returns ErrNotAcquired without running fn.
func Do(ctx context.Context, locker Locker, key string, ttl time.Duration, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	var (
		release Release
		err     error
	)

	for attempt := range max(attempts, 1) {
		release, err = locker.Acquire(ctx, key, ttl)
		if !errors.Is(err, ErrNotAcquired) || attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case <-time.After(delay):
		}
	}

	if err != nil {
		return err
	}

	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to release lock")
		}
	}()

	return fn(ctx)
}
