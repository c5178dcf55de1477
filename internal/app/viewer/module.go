package viewer

import (
	"go.uber.org/fx"

	"logreader/internal/app/bus"
	"logreader/internal/app/notify"
	"logreader/internal/app/refresh"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
	"logreader/internal/app/watcher"
	"logreader/internal/app/worker"
	"logreader/internal/config/logger"
)

// Module provides the viewer
var Module = fx.Options(
	fx.Provide(func(
		manager settings.Manager,
		registry source.Registry,
		w watcher.ChangeWatcher,
		pipeline *refresh.Pipeline,
		pool worker.Pool,
		notifier notify.Notifier,
		b bus.Bus,
		log logger.Logger,
	) Viewer {
		return New(manager, registry, w, pipeline, pool, notifier, b, log.WithComponent("VIEWER"))
	}),
)
