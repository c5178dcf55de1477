package refresh

import (
	"go.uber.org/fx"

	"logreader/internal/app/bus"
	"logreader/internal/app/cache"
	"logreader/internal/app/notify"
	"logreader/internal/app/worker"
	"logreader/internal/config/logger"
)

// Module provides the refresh pipeline
var Module = fx.Options(
	fx.Provide(func(pool worker.Pool, notifier notify.Notifier, b bus.Bus, log logger.Logger) *Pipeline {
		return New(pool, notifier, b, cache.New(), log.WithComponent("REFRESH"))
	}),
)
