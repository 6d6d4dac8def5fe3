package session

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/adonay-express/orderflow/internal/config"
	"github.com/adonay-express/orderflow/internal/usecase"
)

// Module wires the Redis client and the batch tag store.
var Module = fx.Options(
	fx.Provide(newClient, newStore),
)

func newClient(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

func newStore(client *redis.Client) usecase.TagStore {
	return NewRedisStore(client)
}
