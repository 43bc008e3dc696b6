package di

import (
	"go.uber.org/fx"

	"github.com/comedor/comedor/internal/app"
	"github.com/comedor/comedor/internal/config"
	"github.com/comedor/comedor/internal/logger"
	"github.com/comedor/comedor/internal/notify"
	"github.com/comedor/comedor/internal/pkg/auth"
	"github.com/comedor/comedor/internal/server/http/handlers"
	"github.com/comedor/comedor/internal/server/http/router"
	"github.com/comedor/comedor/internal/storage/postgres"
	"github.com/comedor/comedor/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(f *app.RestaurantFacade) handlers.RestaurantFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
