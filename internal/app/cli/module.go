package cli

import (
	"go.uber.org/fx"

	"logreader/internal/app/bus"
	"logreader/internal/app/filterstore"
	"logreader/internal/app/generator"
	"logreader/internal/app/notify"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
	"logreader/internal/app/viewer"
	"logreader/internal/config/logger"
)

// Module provides the fx dependency injection options for the cli package
var Module = fx.Options(
	fx.Provide(func(
		v viewer.Viewer,
		filters filterstore.Store,
		manager settings.Manager,
		registry source.Registry,
		gen generator.Generator,
		notifier notify.Notifier,
		b bus.Bus,
		log logger.Logger,
	) CLI {
		return NewCLI(v, filters, manager, registry, gen, notifier, b, log.WithComponent("CLI"))
	}),
)
