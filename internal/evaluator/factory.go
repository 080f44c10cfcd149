// internal/evaluator/factory.go
package evaluator

import (
	"context"
	"fmt"

	"adaptive-chassis/internal/common/cache"
	"adaptive-chassis/internal/common/config"
	"adaptive-chassis/internal/common/logger"
	"adaptive-chassis/internal/common/observability"
	"adaptive-chassis/internal/criteria"
	"adaptive-chassis/internal/models"
	"adaptive-chassis/internal/scoring"
	"adaptive-chassis/internal/session"
	"adaptive-chassis/pkg/registry"
)

// NewFromConfig assembles a ready-to-use Service from loaded configuration:
// registry, sheet source, TTL store (with the Redis snapshot layer when
// enabled), session store, and scoring engine. The returned cleanup func
// closes the Redis connection and flushes the metrics pipeline; callers
// should defer it.
func NewFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, func(), error) {
	reg, err := loadRegistry(cfg.Registry.Path)
	if err != nil {
		return nil, nil, err
	}

	var redisClient *cache.RedisClient
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Cache.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis init failed: %w", err)
		}
		if err := redisClient.Ping(ctx); err != nil {
			// The snapshot layer is best-effort; run without it rather
			// than refusing to start.
			log.WithError(err).Warn("redis unreachable, snapshot layer disabled", nil)
			_ = redisClient.Close()
			redisClient = nil
		}
	}

	source := criteria.NewSheetSource(cfg.Sheet.URL, config.GetDuration(cfg.Sheet.Timeout), reg, log)
	criteriaStore := criteria.NewStore(source, cfg.Sheet.SheetTTL(), redisClient, cfg.Cache.KeyPrefix, log)

	typologies := make([]models.Typology, 0, len(reg.Typologies))
	for _, t := range reg.Typologies {
		typologies = append(typologies, models.Typology(t.ID))
	}

	sessions := session.NewStore(typologies, cfg.Scoring.DefaultScore, cfg.Sessions.IdleTTL(), log)
	engine := scoring.NewEngine(cfg.Scoring.DefaultScore)
	obs := observability.New(cfg.App.Name)

	svc := NewService(criteriaStore, sessions, engine, reg, cfg.Scoring.TopGaps, log, obs)

	cleanup := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		obs.Shutdown()
	}

	return svc, cleanup, nil
}

func loadRegistry(path string) (*registry.TypologyRegistry, error) {
	if path == "" {
		return registry.DefaultRegistry(), nil
	}
	return registry.LoadRegistry(path)
}
