package worker

import (
	"go.uber.org/fx"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Module provides the worker pool and drains it on shutdown
var Module = fx.Options(
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) Pool {
		p := NewWorkerPool(cfg, log.WithComponent("WORKER"))
		lc.Append(fx.StopHook(p.Wait))

		return p
	}),
)
