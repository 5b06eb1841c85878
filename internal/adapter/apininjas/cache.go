package apininjas

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/V4T54L/contact-hub/internal/adapter/metrics"
	"github.com/V4T54L/contact-hub/internal/domain"
)

const cacheKeyPrefix = "phone_validation:"

// CachedValidator wraps a domain.PhoneValidator with a Redis cache keyed by
// phone number.
//
// The default semantics of the API are derivation-on-read: every read of a
// derived field calls the validation service fresh. Enabling this cache
// trades that freshness for fewer upstream calls; a cached answer can lag
// the service's database by up to the configured TTL. The cache is
// best-effort — Redis failures fall through to the live service.
type CachedValidator struct {
	inner   domain.PhoneValidator
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.APIMetrics
}

// NewCachedValidator creates a caching wrapper around inner. The metrics
// argument may be nil.
func NewCachedValidator(inner domain.PhoneValidator, client *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.APIMetrics) *CachedValidator {
	return &CachedValidator{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		logger:  logger.With("component", "validation_cache"),
		metrics: m,
	}
}

// Validate serves the answer from cache when present, otherwise asks the
// wrapped validator and stores its answer with the configured TTL.
func (v *CachedValidator) Validate(ctx context.Context, number string) (domain.PhoneInfo, error) {
	key := cacheKeyPrefix + number

	payload, err := v.client.Get(ctx, key).Bytes()
	if err == nil {
		var info domain.PhoneInfo
		if err := json.Unmarshal(payload, &info); err == nil {
			if v.metrics != nil {
				v.metrics.ValidationCacheHits.Inc()
			}
			return info, nil
		}
		v.logger.Warn("dropping undecodable cache entry", "key", key)
		v.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		v.logger.Warn("cache read failed, falling through to live service", "error", err)
	}

	if v.metrics != nil {
		v.metrics.ValidationCacheMisses.Inc()
	}

	info, err := v.inner.Validate(ctx, number)
	if err != nil {
		return domain.PhoneInfo{}, err
	}

	if payload, err := json.Marshal(info); err == nil {
		if err := v.client.Set(ctx, key, payload, v.ttl).Err(); err != nil {
			v.logger.Warn("cache write failed", "error", err)
		}
	}

	return info, nil
}
