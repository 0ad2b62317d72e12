package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"compass-backend/internal/core/cache"
	"compass-backend/internal/domain"
)

const (
	profileKeyPrefix = "identity:profile:"
	profilesKey      = "identity:profiles"
)

// Cached memoizes profile reads in Redis and drops the affected keys on writes.
type Cached struct {
	next  Client
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCached(next Client, c *cache.Cache, ttl time.Duration, l *zap.Logger) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl, log: l}
}

func (c *Cached) FetchProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return cache.GetOrLoadJSON(c.cache, ctx, profileKeyPrefix+id, c.ttl, func(ctx context.Context) (*domain.Profile, error) {
		return c.next.FetchProfile(ctx, id)
	})
}

func (c *Cached) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	p, err := cache.GetOrLoadJSON(c.cache, ctx, profilesKey, c.ttl, func(ctx context.Context) (*[]domain.Profile, error) {
		list, err := c.next.ListProfiles(ctx)
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil || p == nil {
		return nil, err
	}
	return *p, nil
}

func (c *Cached) CreateProfile(ctx context.Context, in NewProfile) (*domain.Profile, error) {
	p, err := c.next.CreateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, profilesKey)
	return p, nil
}

func (c *Cached) PatchProfile(ctx context.Context, id string, in ProfilePatch) (*domain.Profile, error) {
	p, err := c.next.PatchProfile(ctx, id, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, profileKeyPrefix+id, profilesKey)
	return p, nil
}

func (c *Cached) Ping(ctx context.Context) error { return c.next.Ping(ctx) }

func (c *Cached) invalidate(ctx context.Context, keys ...string) {
	if err := c.cache.Del(ctx, keys...); err != nil {
		c.log.Warn("identity cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
