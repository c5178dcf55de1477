package filterstore

import (
	"go.uber.org/fx"

	"logreader/internal/app/bus"
	"logreader/internal/app/notify"
	"logreader/internal/app/settings"
	"logreader/internal/config/logger"
)

// Module provides the filter store
var Module = fx.Options(
	fx.Provide(func(manager settings.Manager, notifier notify.Notifier, b bus.Bus, log logger.Logger) Store {
		return NewStore(manager, notifier, b, log.WithComponent("FILTERS"))
	}),
)
