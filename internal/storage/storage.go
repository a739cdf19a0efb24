// Package storage opens the durable session backend selected by STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"localwear-storefront/internal/config"
	"localwear-storefront/internal/db"
	"localwear-storefront/internal/migrate"
	"localwear-storefront/internal/repository/kv"
)

// Open returns the configured repository and a func releasing its connections.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (kv.Repository, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageFile:
		return kv.NewFile(cfg.StoragePath), func() {}, nil

	case config.StoragePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		version, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if version == 0 || dirty {
			pool.Close()
			return nil, nil, fmt.Errorf("session schema not ready (version %d, dirty %t): run cmd/migrate", version, dirty)
		}
		return kv.NewPostgres(pool, logger), pool.Close, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		repo := kv.NewRedis(client, kv.DefaultRedisPrefix)
		if err := repo.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return repo, func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
