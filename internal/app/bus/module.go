package bus

import (
	"go.uber.org/fx"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Module provides the event bus, closing every subscription on shutdown
var Module = fx.Module("bus",
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) Bus {
		b := New(cfg, log.WithComponent("BUS"))
		lc.Append(fx.StopHook(b.Close))

		return b
	}),
)
