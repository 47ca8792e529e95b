package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/cache"
	"github.com/spec-kit/ticket-calendar/internal/config"
)

// OpenStore builds the cache store selected by cfg.Cache.Driver. The returned
// close function releases any connection the store holds.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (cache.Store, func(), error) {
	policy := cache.CorruptPolicy(cfg.Cache.CorruptPolicy)
	noop := func() {}

	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		return cache.NewMemoryStore(policy, logger), noop, nil

	case config.CacheDriverFile:
		logger.Info("using file cache", zap.String("path", cfg.Cache.FilePath))
		return cache.NewFileStore(cfg.Cache.FilePath, policy, logger), noop, nil

	case config.CacheDriverRedis:
		rdb, err := NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisStore(rdb.Client, cfg.Cache.Key, policy, logger), rdb.Close, nil

	case config.CacheDriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, cfg.App.Name, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Pool(), Migrations(), logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return cache.NewPostgresStore(pg.Pool(), cfg.Cache.Key, policy, logger), pg.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
}
