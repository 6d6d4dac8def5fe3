package di

import (
	"go.uber.org/fx"

	"github.com/adonay-express/orderflow/internal/adapter/composer"
	"github.com/adonay-express/orderflow/internal/adapter/mailer"
	"github.com/adonay-express/orderflow/internal/adapter/session"
	"github.com/adonay-express/orderflow/internal/aggregate"
	"github.com/adonay-express/orderflow/internal/app"
	"github.com/adonay-express/orderflow/internal/config"
	"github.com/adonay-express/orderflow/internal/connectivity"
	"github.com/adonay-express/orderflow/internal/logger"
	"github.com/adonay-express/orderflow/internal/notify"
	"github.com/adonay-express/orderflow/internal/server/http/router"
	"github.com/adonay-express/orderflow/internal/storage/postgres"
	"github.com/adonay-express/orderflow/internal/stream"
	"github.com/adonay-express/orderflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		session.Module,
		composer.Module,
		mailer.Module,
		notify.Module,
		usecase.Module,
		stream.Module,
		aggregate.Module,
		connectivity.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
