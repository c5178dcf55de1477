package logger

import (
	"go.uber.org/fx"

	"logreader/internal/config"
)

// Module provides the application logger and closes its log file on shutdown
var Module = fx.Options(
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config) (Logger, error) {
		log, closeFile, err := Open(cfg)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.StopHook(closeFile))

		return log, nil
	}),
)
