package usecase

import (
	"go.uber.org/fx"

	"github.com/comedor/comedor/internal/notify"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(func(d *notify.Dispatcher) Notifier { return d }),
	fx.Provide(
		NewAuthUseCase,
		NewCartUseCase,
		NewOrderUseCase,
		NewCatalogUseCase,
	),
)
