package stream

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/adonay-express/orderflow/internal/config"
	"github.com/adonay-express/orderflow/internal/domain/repository"
)

// Module wires the snapshot poller as the order stream source.
var Module = fx.Provide(
	newPoller,
	func(p *Poller) Source { return p },
)

func newPoller(orders repository.OrderRepository, cfg *config.Config, logger *slog.Logger) *Poller {
	return NewPoller(orders, cfg.SnapshotPollInterval, logger)
}
