package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/redis"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/gcp"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

type Clients struct {
	// Images is nil when object storage is disabled.
	Images gcp.ImageBucket
	// StatsCache is nil when REDIS_ADDR is unset.
	StatsCache redis.Cache
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	images, err := resolveImageBucket(ctx, log, cfg)
	if err != nil {
		return Clients{}, err
	}

	// Redis
	var cache redis.Cache
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		c, err := redis.NewCache(log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			if images != nil {
				_ = images.Close()
			}
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		cache = c
	}

	return Clients{Images: images, StatsCache: cache}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.StatsCache != nil {
		_ = c.StatsCache.Close()
	}
	if c.Images != nil {
		_ = c.Images.Close()
	}
}
