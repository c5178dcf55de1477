package notify

import (
	"go.uber.org/fx"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Module provides the console notifier
var Module = fx.Options(
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) Notifier {
		n := NewConsole(cfg, log.WithComponent("NOTIFY"))

		lc.Append(fx.StopHook(n.Close))

		return n
	}),
)
