package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/config"
	"github.com/ledgerline/investprofile/backend/pkg/database"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
	"github.com/ledgerline/investprofile/backend/pkg/redis"
)

// openStore connects to the configured store backend for one-shot
// commands. The returned cleanup closes the connection.
func openStore() (context.Context, storage.Store, func(), *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	ctx := context.Background()

	if cfg.Redis.Enabled {
		client, err := redis.New(cfg)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return ctx, storage.NewRedisStore(client), func() { client.Close() }, log, nil
	}

	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		migrateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.Migrate(migrateCtx); err != nil {
			db.Close()
			return nil, nil, nil, nil, fmt.Errorf("run migrations: %w", err)
		}

		return ctx, storage.NewPostgresStore(db.Pool), func() { db.Close() }, log, nil
	}

	// No backend configured; an in-memory store is useless for
	// one-shot commands but keeps them runnable.
	log.Warn("No store backend configured, using in-memory store")
	return ctx, storage.NewMemoryStore(), func() {}, log, nil
}
