// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "foresight-workers/internal/common/errors"
	"foresight-workers/internal/common/logger"
	"foresight-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const CacheKey = "catalog:techniques"

// CachedSource keeps a JSON snapshot of another source in Redis. Cache
// failures are logged and never fail a load.
type CachedSource struct {
	next   Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"source": "redis-cache"}),
	}
}

func (s *CachedSource) Name() string { return s.next.Name() + "+cache" }

func (s *CachedSource) Techniques(ctx context.Context) ([]models.TechniqueDescriptor, error) {
	val, err := s.redis.Get(ctx, CacheKey).Result()
	switch {
	case err == nil:
		var techniques []models.TechniqueDescriptor
		if jsonErr := json.Unmarshal([]byte(val), &techniques); jsonErr == nil && len(techniques) > 0 {
			s.logger.Debug("catalog served from cache", map[string]interface{}{"count": len(techniques)})
			return techniques, nil
		}
		s.logger.Warn("discarding unreadable catalog snapshot", map[string]interface{}{
			"errorCode": string(apperrors.ErrCodeCacheUnavailable),
		})
	case errors.Is(err, redis.Nil):
	default:
		s.logger.Warn("catalog cache read failed", cacheFields(err))
	}

	techniques, err := s.next.Techniques(ctx)
	if err != nil {
		return nil, err
	}

	// An empty catalog is not cached so a later load can pick up new rows.
	if len(techniques) > 0 {
		data, _ := json.Marshal(techniques)
		if err := s.redis.Set(ctx, CacheKey, data, s.ttl).Err(); err != nil {
			s.logger.Warn("catalog cache write failed", cacheFields(err))
		}
	}
	return techniques, nil
}

func cacheFields(err error) map[string]interface{} {
	stdErr := apperrors.NewCacheUnavailableError(err)
	return map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	}
}

// Invalidate drops the snapshot.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.redis.Del(ctx, CacheKey).Err()
}
