package information

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	bannersKey  = "catalog:banners"
	servicesKey = "catalog:services"
)

// CachedRepository layers a redis cache over the catalog. The catalog is
// read-only reference data, so entries expire by TTL only; any cache
// failure degrades to a direct database read.
type CachedRepository struct {
	inner Repository
	rdb   *redis.Client // nil disables caching
	ttl   time.Duration
}

// NewCachedRepository wraps a catalog repository with a redis cache
func NewCachedRepository(inner Repository, rdb *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedRepository) Banners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if c.lookup(ctx, bannersKey, &banners) {
		return banners, nil
	}

	banners, err := c.inner.Banners(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, bannersKey, banners)
	return banners, nil
}

func (c *CachedRepository) Services(ctx context.Context) ([]Service, error) {
	var services []Service
	if c.lookup(ctx, servicesKey, &services) {
		return services, nil
	}

	services, err := c.inner.Services(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, servicesKey, services)
	return services, nil
}

// ServiceByCode is on the payment path and always reads the database:
// a stale tariff must not be debited.
func (c *CachedRepository) ServiceByCode(ctx context.Context, code string) (*Service, error) {
	return c.inner.ServiceByCode(ctx, code)
}

func (c *CachedRepository) lookup(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("catalog cache entry corrupt")
		return false
	}
	return true
}

func (c *CachedRepository) store(ctx context.Context, key string, value interface{}) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}
