package app

import (
	"go.uber.org/fx"

	"logreader/internal/app/bus"
	"logreader/internal/app/cli"
	"logreader/internal/app/filterstore"
	"logreader/internal/app/generator"
	"logreader/internal/app/notify"
	"logreader/internal/app/refresh"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
	"logreader/internal/app/viewer"
	"logreader/internal/app/watcher"
	"logreader/internal/app/worker"
	"logreader/internal/config/logger"
)

var Module = fx.Options(
	logger.Module,
	bus.Module,
	notify.Module,
	settings.Module,
	source.Module,
	watcher.Module,
	worker.Module,
	refresh.Module,
	filterstore.Module,
	viewer.Module,
	generator.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
