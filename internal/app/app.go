package app

import (
	"context"
	"os"

	"go.uber.org/fx"

	"logreader/internal/app/cli"
	"logreader/internal/config/logger"
)

// App represents the main application container
type App struct {
	cli        cli.CLI
	shutdowner fx.Shutdowner
	log        logger.Logger
	done       chan struct{}
}

// NewApp creates a new application instance with its dependencies
func NewApp(cli cli.CLI, shutdowner fx.Shutdowner, log logger.Logger) *App {
	return &App{
		cli:        cli,
		shutdowner: shutdowner,
		log:        log,
		done:       make(chan struct{}),
	}
}

// Run executes the command line and shuts the application down with its exit code
func (a *App) Run() {
	defer close(a.done)

	exitCode := 0
	if err := a.execute(os.Args[1:]); err != nil {
		exitCode = 1
	}

	if err := a.shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
		a.log.Error().Err(err).Msg("Failed to shutdown application")
	}
}

// execute runs the CLI and logs its failure
func (a *App) execute(args []string) error {
	if err := a.cli.Run(args); err != nil {
		a.log.Error().Err(err).Msg("Application error")
		return err
	}

	return nil
}

// Register registers the application's lifecycle hooks with fx
func Register(lifecycle fx.Lifecycle, app *App) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-app.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
