package redis

import (
	"context"

	"github.com/mazisel/umzug/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("redis",
	fx.Provide(NewClient),
)

// NewClient connects to Redis when an address is configured. A nil client is
// a valid result: caching is optional and consumers must tolerate its absence.
func NewClient(cfg config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
