package watcher

import (
	"go.uber.org/fx"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Module provides the change watcher
var Module = fx.Options(
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) ChangeWatcher {
		w := NewFromConfig(cfg, log.WithComponent("WATCHER"))
		lc.Append(fx.StopHook(w.Close))

		return w
	}),
)
