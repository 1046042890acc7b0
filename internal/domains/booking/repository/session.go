package repository

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=../mocks/session_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"clinic/internal/domains/booking/wizard"
	"clinic/shared"
	"clinic/shared/cache"
	"clinic/shared/failure"
)

const sessionKeyPrefix = "wizard:session"

// Session keeps wizard state in redis between requests.
type Session interface {
	Save(ctx context.Context, w wizard.Wizard, ttl int) error
	Get(ctx context.Context, id string) (wizard.Wizard, error)
}

type sessionImpl struct {
	cache cache.RedisCache
}

func NewSession(cache cache.RedisCache) Session {
	return &sessionImpl{cache: cache}
}

// Save writes the session with a ttl in seconds, restarting its expiry.
func (s *sessionImpl) Save(ctx context.Context, w wizard.Wizard, ttl int) error {
	if err := s.cache.Save(ctx, shared.BuildCacheKey(sessionKeyPrefix, w.ID), w, ttl); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}

	return nil
}

func (s *sessionImpl) Get(ctx context.Context, id string) (wizard.Wizard, error) {
	var w wizard.Wizard

	err := s.cache.Get(ctx, shared.BuildCacheKey(sessionKeyPrefix, id), &w)
	if errors.Is(err, cache.Nil) {
		return wizard.Wizard{}, failure.NotFound("wizard session not found") // nolint:wrapcheck
	}

	if err != nil {
		return wizard.Wizard{}, fmt.Errorf("failed to load wizard session: %w", err)
	}

	return w, nil
}
