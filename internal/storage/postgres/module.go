package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/adonay-express/orderflow/internal/config"
	"github.com/adonay-express/orderflow/internal/connectivity"
	"github.com/adonay-express/orderflow/internal/domain/repository"
)

// Module wires PostgreSQL storage, repository adapters and the sentinel probe.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.CustomerRepository { return s.Customers() },
		newProbe,
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func newProbe(s *Storage, cfg *config.Config, logger *slog.Logger) connectivity.Probe {
	return NewSentinelProbe(s, cfg.SentinelPingInterval, logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
