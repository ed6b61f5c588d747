// internal/common/database/redis.go
package database

import (
	"context"
	"time"

	"foresight-workers/internal/common/config"
	apperrors "foresight-workers/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects to the catalog snapshot cache.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, apperrors.NewCacheUnavailableError(err)
	}
	return rdb, nil
}
