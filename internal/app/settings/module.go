package settings

import (
	"go.uber.org/fx"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Module provides the settings manager
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config, log logger.Logger) Manager {
		return NewManager(cfg, log.WithComponent("SETTINGS"))
	}),
)
