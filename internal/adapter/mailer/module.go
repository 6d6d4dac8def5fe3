package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/adonay-express/orderflow/internal/config"
	"github.com/adonay-express/orderflow/internal/notify"
)

// Module exposes the mail transport implementation to fx graphs.
var Module = fx.Provide(newTransport)

type transportParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newTransport(p transportParams) (notify.Transport, error) {
	return NewHTTPClient(p.Config.MailAPIAddress, p.Config.MailAPIKey, p.Config.MailFrom, p.Config.MailRecipientOverride, p.Logger)
}
