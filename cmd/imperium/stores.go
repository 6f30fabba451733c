package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/config"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
	"github.com/Ostwick/RPG-Imperium/internal/storage/memory"
	"github.com/Ostwick/RPG-Imperium/internal/storage/postgres"
	"github.com/Ostwick/RPG-Imperium/internal/storage/redisstore"
)

const healthTimeout = 5 * time.Second

// stores holds the repositories of the configured backend.
type stores struct {
	characters gameserver.CharacterStore
	campaigns  gameserver.CampaignStore
	templates  gameserver.TemplateStore
	health     func(context.Context) error
	close      func()
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
		)
		return &stores{
			characters: postgres.NewCharacterRepository(pool.DB()),
			campaigns:  postgres.NewCampaignRepository(pool.DB()),
			templates:  postgres.NewTemplateRepository(pool.DB()),
			health: func(ctx context.Context) error {
				return pool.Health(ctx, healthTimeout)
			},
			close: pool.Close,
		}, nil

	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		prefix := cfg.Redis.KeyPrefix
		return &stores{
			characters: redisstore.NewCharacterRepository(client, prefix),
			campaigns:  redisstore.NewCampaignRepository(client, prefix),
			templates:  redisstore.NewTemplateRepository(client, prefix),
			health: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, healthTimeout)
				defer cancel()
				return client.Ping(ctx).Err()
			},
			close: func() {
				if err := client.Close(); err != nil {
					logger.Warn("closing redis client", zap.Error(err))
				}
			},
		}, nil

	case config.BackendMemory:
		templates, err := bestiary(cfg.Content.BestiaryDir)
		if err != nil {
			return nil, err
		}
		repo, err := memory.NewTemplateRepository(templates...)
		if err != nil {
			return nil, fmt.Errorf("seeding bestiary: %w", err)
		}
		logger.Warn("using in-memory storage; data is lost on exit",
			zap.Int("enemy_templates", len(templates)),
		)
		return &stores{
			characters: memory.NewCharacterRepository(),
			campaigns:  memory.NewCampaignRepository(),
			templates:  repo,
			health:     func(context.Context) error { return nil },
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// bestiary loads the enemy templates in dir. A missing dir yields none.
func bestiary(dir string) ([]*npc.Template, error) {
	if dir == "" {
		return nil, nil
	}
	templates, err := npc.LoadTemplates(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return templates, err
}
