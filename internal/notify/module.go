package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/comedor/comedor/internal/config"
	"github.com/comedor/comedor/internal/domain/repository"
)

// Module wires the notification hub, optional Kafka bridge and dispatcher.
var Module = fx.Options(
	fx.Provide(newHub),
	fx.Provide(newDispatcher),
)

func newHub(logger *slog.Logger) *Hub {
	return NewHub(logger)
}

type dispatcherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Hub       *Hub
	Staff     repository.StaffRepository
	Logger    *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	sinks := []Publisher{p.Hub}

	if brokers := ParseBrokers(p.Config.NotifyBrokers); len(brokers) > 0 {
		bridge := NewBridge(brokers, p.Config.NotifyKafkaTopic)
		sinks = append(sinks, bridge)
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return bridge.Close()
			},
		})
	}

	return NewDispatcher(sinks, p.Staff, p.Config.DispatchQueueSize, p.Logger)
}
