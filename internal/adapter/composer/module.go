package composer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/adonay-express/orderflow/internal/config"
	"github.com/adonay-express/orderflow/internal/notify"
)

// Module exposes the composer client implementation to fx graphs.
var Module = fx.Provide(newComposer)

type composerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newComposer(p composerParams) (notify.Composer, error) {
	return NewHTTPClient(p.Config.ComposerAddress, p.Logger)
}
