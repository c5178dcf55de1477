package generator

import (
	"go.uber.org/fx"

	"logreader/internal/config/logger"
)

// Module provides the generator dependencies
var Module = fx.Options(
	fx.Provide(func(log logger.Logger) Generator {
		return NewGenerator(log.WithComponent("GENERATOR"))
	}),
)
