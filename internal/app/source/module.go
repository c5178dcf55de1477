package source

import (
	"go.uber.org/fx"

	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Module provides the source registry
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config, log logger.Logger) Registry {
		return NewRegistry(cfg, log.WithComponent("SOURCE"))
	}),
)
