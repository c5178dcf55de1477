//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"logreader/internal/app/bus"
	"logreader/internal/app/errors"
	"logreader/internal/app/filter"
	"logreader/internal/app/filterstore"
	"logreader/internal/app/generator"
	"logreader/internal/app/logs"
	"logreader/internal/app/notify"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
	"logreader/internal/app/viewer"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Run(args []string) error
}

// cli represents the command-line interface for the application
type cli struct {
	viewer    viewer.Viewer
	filters   filterstore.Store
	settings  settings.Manager
	registry  source.Registry
	generator generator.Generator
	notifier  notify.Notifier
	bus       bus.Bus
	out       io.Writer
	log       logger.Logger
}

// NewCLI creates a new cli instance writing to stdout
func NewCLI(
	v viewer.Viewer,
	filters filterstore.Store,
	manager settings.Manager,
	registry source.Registry,
	gen generator.Generator,
	notifier notify.Notifier,
	b bus.Bus,
	log logger.Logger,
) CLI {
	return NewCLIWithOutput(v, filters, manager, registry, gen, notifier, b, os.Stdout, log)
}

// NewCLIWithOutput creates a cli instance writing to out
func NewCLIWithOutput(
	v viewer.Viewer,
	filters filterstore.Store,
	manager settings.Manager,
	registry source.Registry,
	gen generator.Generator,
	notifier notify.Notifier,
	b bus.Bus,
	out io.Writer,
	log logger.Logger,
) CLI {
	return &cli{
		viewer:    v,
		filters:   filters,
		settings:  manager,
		registry:  registry,
		generator: gen,
		notifier:  notifier,
		bus:       b,
		out:       out,
		log:       log,
	}
}

// Run processes command-line arguments and executes commands
func (c *cli) Run(args []string) error {
	opts, err := Parse(args)
	if err != nil {
		c.log.Debug().Err(err).Msg("Failed to parse arguments")
		fmt.Fprintf(c.out, "\n%s %v\n", errorLabel.Render("Error:"), err)
		fmt.Fprintf(c.out, "Use '%s' for more information.\n\n", commandName.Render("logreader help"))

		return err
	}

	ctx := context.Background()

	switch opts.Type {
	case CommandVersion:
		return c.handleVersion()
	case CommandInit:
		return c.handleInit(opts)
	case CommandDays:
		return c.handleDays(ctx, opts)
	case CommandLogs:
		return c.handleLogs(ctx, opts)
	case CommandWatch:
		return c.handleWatch(ctx, opts)
	case CommandRepos:
		return c.handleRepos()
	case CommandRepoAdd:
		return c.handleRepoAdd(opts)
	case CommandFilters:
		return c.handleFilters()
	case CommandFilterAdd:
		return c.handleFilterAdd(opts)
	case CommandFilterRemove:
		return c.handleFilterRemove(opts)
	default:
		return c.handleHelp()
	}
}

// handleHelp displays help information
func (c *cli) handleHelp() error {
	c.log.Debug().Msg("Displaying help information")

	fmt.Fprintln(c.out, RenderTitle())

	fmt.Fprintln(c.out, sectionHeader.Render("USAGE"))
	fmt.Fprintf(c.out, "  %s %s\n", config.AppName, mutedText.Render("<command> [arguments] [flags]"))

	fmt.Fprintln(c.out, sectionHeader.Render("COMMANDS"))

	commands := [][2]string{
		{"days <repo>", "Show the days a repository has logs for"},
		{"logs <repo> [day]", "Show the logs of a day, the latest by default"},
		{"watch <repo> [day]", "Follow a day and print new rows as they arrive"},
		{"repos [add <name>]", "List or add repositories"},
		{"filters [add|rm]", "List, add or delete saved filters"},
		{"init", "Generate logreader.yaml template"},
		{"version", "Show version information"},
	}
	for _, cmd := range commands {
		fmt.Fprintf(c.out, "  %s %s\n", commandName.Width(24).Render(cmd[0]), bodyMedium.Render(cmd[1]))
	}

	fmt.Fprintln(c.out, sectionHeader.Render("EXAMPLES"))

	examples := [][2]string{
		{"logreader repos add app --dir ./logs", "Add a log directory"},
		{"logreader logs app --levels warn,error", "Warnings and errors of the latest day"},
		{"logreader logs app 2024-03-01 -q timeout", "Rows mentioning timeout on a given day"},
		{"logreader watch app", "Follow the latest day"},
	}
	for _, example := range examples {
		fmt.Fprintf(c.out, "  %s\n  %s\n", exampleCode.Render(example[0]), mutedText.Render(example[1]))
	}

	fmt.Fprintln(c.out)

	return nil
}

// handleVersion displays version information
func (c *cli) handleVersion() error {
	c.log.Debug().Msg("Displaying version information")
	fmt.Fprintln(c.out, RenderTitle())
	fmt.Fprintln(c.out)

	return nil
}

// handleInit writes the configuration template
func (c *cli) handleInit(opts *Options) error {
	if err := c.generator.Generate(generator.DefaultOptions(), opts.Force, opts.DryRun); err != nil {
		return err
	}

	if !opts.DryRun {
		c.notifier.NotifySuccess(fmt.Sprintf("Created %s", config.ConfigFile))
	}

	return nil
}

// handleDays prints the day tree of a repository
func (c *cli) handleDays(ctx context.Context, opts *Options) error {
	return c.withViewer(ctx, func(ctx context.Context, events <-chan bus.Message) error {
		loaded, err := c.openRepository(ctx, events, opts.Repository)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.out, renderDays(loaded.Repository, loaded.Tree))

		return nil
	})
}

// handleLogs prints the filtered rows of one day
func (c *cli) handleLogs(ctx context.Context, opts *Options) error {
	return c.withViewer(ctx, func(ctx context.Context, events <-chan bus.Message) error {
		day, published, err := c.loadDay(ctx, events, opts)
		if err != nil {
			return err
		}

		snapshot, err := c.viewer.Snapshot(ctx)
		if err != nil {
			return err
		}

		rows := published.Rows
		if opts.Limit > 0 && len(rows) > opts.Limit {
			rows = rows[:opts.Limit]
		}

		fmt.Fprintln(c.out, renderRows(rows, snapshot.UI, snapshot.Session.Criteria.Text))
		fmt.Fprintln(c.out, renderSummary(day, len(rows), published.Total, snapshot.Session.Criteria))

		return nil
	})
}

// handleWatch prints the rows of a day and then every new row until interrupted
func (c *cli) handleWatch(ctx context.Context, opts *Options) error {
	return c.withViewer(ctx, func(ctx context.Context, events <-chan bus.Message) error {
		day, published, err := c.loadDay(ctx, events, opts)
		if err != nil {
			return err
		}

		if err := c.viewer.SetListening(ctx, true); err != nil {
			return err
		}

		snapshot, err := c.viewer.Snapshot(ctx)
		if err != nil {
			return err
		}

		f := newFollower(c.out, snapshot.UI, snapshot.Session.Criteria.Text)
		f.print(published.Rows)

		if !snapshot.Listening {
			c.notifier.NotifyInformation(fmt.Sprintf("%s does not support live updates", snapshot.Session.Repository.Name))
			return nil
		}

		fmt.Fprintln(c.out, RenderHelp())

		watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return c.follow(watchCtx, events, day, f)
	})
}

func (c *cli) follow(ctx context.Context, events <-chan bus.Message, day logs.Day, f *follower) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-events:
			if !ok {
				return nil
			}

			switch data := msg.Data.(type) {
			case bus.RowsPublished:
				if data.Day == day {
					f.print(data.Rows)
				}
			case bus.WatchTriggered:
				c.log.Debug().Msgf("%d change(s) of %s", data.Count, data.Day)
			case bus.ListeningChanged:
				if !data.Listening {
					return nil
				}
			}
		}
	}
}

// handleRepos lists the configured repositories
func (c *cli) handleRepos() error {
	current, err := c.settings.Get()
	if err != nil {
		return err
	}

	lines := make([]repoLine, 0, len(current.Repositories))
	for _, repo := range current.Repositories {
		line := repoLine{Repository: repo}

		src, err := c.registry.Open(repo)
		if err != nil {
			line.Err = err
		} else {
			_, line.Live = source.ListenerOf(src)
		}

		lines = append(lines, line)
	}

	fmt.Fprintln(c.out, renderRepos(lines))

	return nil
}

// handleRepoAdd validates and saves a new repository
func (c *cli) handleRepoAdd(opts *Options) error {
	repo := settings.Repository{
		ID:      uuid.NewString(),
		Name:    opts.Repo.Name,
		Type:    opts.Repo.Kind,
		Dir:     opts.Repo.Dir,
		Include: opts.Repo.Include,
		Ignore:  opts.Repo.Ignore,
		Format:  opts.Repo.Format,
		DSN:     opts.Repo.DSN,
		Table:   opts.Repo.Table,
	}

	if _, err := c.registry.Open(repo); err != nil {
		return err
	}

	current, err := c.settings.Get()
	if err != nil {
		return err
	}

	if _, exists := current.Repository(repo.Name); exists {
		return fmt.Errorf("%w: %s", errors.ErrDuplicateRepository, repo.Name)
	}

	if err := c.settings.Save(func(s *settings.Settings) {
		s.Repositories = append(s.Repositories, repo)
	}); err != nil {
		return err
	}

	c.notifier.NotifySuccess(fmt.Sprintf("Repository %s added.", repo.Name))

	return nil
}

// handleFilters prints the saved filters
func (c *cli) handleFilters() error {
	if err := c.filters.Load(); err != nil {
		return err
	}

	fmt.Fprintln(c.out, renderFilters(c.filters.List(), c.filters.Children))

	return nil
}

// handleFilterAdd saves a new filter or subfilter
func (c *cli) handleFilterAdd(opts *Options) error {
	if err := c.filters.Load(); err != nil {
		return err
	}

	def := opts.Definition

	if def.Parent == "" {
		if _, err := c.filters.Create(def.Name, def.Expression); err != nil {
			return err
		}

		return c.filters.SaveAll()
	}

	parentID, err := c.resolveFilter(def.Parent)
	if err != nil {
		return err
	}

	if _, err := c.filters.CreateSub(parentID, def.Name, def.Expression); err != nil {
		return err
	}

	return c.filters.SaveAll()
}

// handleFilterRemove deletes a saved filter after confirmation
func (c *cli) handleFilterRemove(opts *Options) error {
	if err := c.filters.Load(); err != nil {
		return err
	}

	id, err := c.resolveFilter(opts.Definition.ID)
	if err != nil {
		return err
	}

	deleted, err := c.filters.Delete(id)
	if err != nil || !deleted {
		return err
	}

	return c.filters.SaveAll()
}

// resolveFilter finds a saved filter by id or name
func (c *cli) resolveFilter(key string) (string, error) {
	if def, ok := c.filters.Get(key); ok {
		return def.ID, nil
	}

	for _, def := range c.filters.List() {
		if def.Name == key {
			return def.ID, nil
		}
	}

	return "", fmt.Errorf("%w: %s", errors.ErrFilterNotFound, key)
}

// withViewer runs the viewer for the duration of fn. Events are subscribed
// before the viewer starts so no published message is missed.
func (c *cli) withViewer(ctx context.Context, fn func(ctx context.Context, events <-chan bus.Message) error) error {
	ctx, cancel := context.WithCancel(ctx)
	events := c.bus.Subscribe(ctx)

	stopped := make(chan error, 1)
	go func() {
		stopped <- c.viewer.Run(ctx)
	}()

	defer func() {
		cancel()

		if err := <-stopped; err != nil {
			c.log.Warn().Err(err).Msg("Viewer stopped with error")
		}
	}()

	if err := c.viewer.Activate(ctx); err != nil {
		return err
	}

	err := fn(ctx, events)

	if deactivateErr := c.viewer.Deactivate(ctx); deactivateErr != nil {
		c.log.Warn().Err(deactivateErr).Msg("Failed to save view preferences")
	}

	return err
}

// openRepository switches the viewer to a repository and waits for its day tree
func (c *cli) openRepository(ctx context.Context, events <-chan bus.Message, key string) (bus.DaysLoaded, error) {
	if err := c.viewer.UseSource(ctx, key); err != nil {
		return bus.DaysLoaded{}, err
	}

	for {
		select {
		case <-ctx.Done():
			return bus.DaysLoaded{}, ctx.Err()
		case msg, ok := <-events:
			if !ok {
				return bus.DaysLoaded{}, errors.ErrViewerStopped
			}

			switch data := msg.Data.(type) {
			case bus.DaysLoaded:
				return data, nil
			case bus.RefreshFailed:
				if data.Day.IsZero() {
					return bus.DaysLoaded{}, data.Error
				}
			}
		}
	}
}

// loadDay opens the repository, applies the criteria flags and waits for the rows of the chosen day
func (c *cli) loadDay(ctx context.Context, events <-chan bus.Message, opts *Options) (logs.Day, bus.RowsPublished, error) {
	loaded, err := c.openRepository(ctx, events, opts.Repository)
	if err != nil {
		return logs.Day{}, bus.RowsPublished{}, err
	}

	day, err := selectDay(opts.Day, loaded)
	if err != nil {
		return logs.Day{}, bus.RowsPublished{}, err
	}

	if err := c.applyCriteria(ctx, opts); err != nil {
		return logs.Day{}, bus.RowsPublished{}, err
	}

	if err := c.viewer.LoadLogs(ctx, day); err != nil {
		return logs.Day{}, bus.RowsPublished{}, err
	}

	published, err := waitRows(ctx, events, day)
	if err != nil {
		return logs.Day{}, bus.RowsPublished{}, err
	}

	return day, published, nil
}

// applyCriteria forwards the filter flags to the viewer
func (c *cli) applyCriteria(ctx context.Context, opts *Options) error {
	order, err := parseOrderFlag(opts.Order)
	if err != nil {
		return err
	}

	if opts.Levels != "" {
		levels, ok := filter.ParseLevelSet(opts.Levels)
		if !ok || levels.IsEmpty() {
			return fmt.Errorf("%w: levels %q", errors.ErrInvalidFilter, opts.Levels)
		}

		if err := c.viewer.SetLevels(ctx, levels); err != nil {
			return err
		}
	}

	if opts.Text != "" {
		if err := c.viewer.FilterMessage(ctx, opts.Text); err != nil {
			return err
		}
	}

	if opts.Filter != "" {
		if err := c.filters.Load(); err != nil {
			return err
		}

		id, err := c.resolveFilter(opts.Filter)
		if err != nil {
			return err
		}

		if err := c.viewer.ApplyDefinition(ctx, id); err != nil {
			return err
		}
	}

	if order == logs.None {
		return nil
	}

	snapshot, err := c.viewer.Snapshot(ctx)
	if err != nil {
		return err
	}

	if snapshot.Session.Criteria.Order() == order {
		return nil
	}

	return c.viewer.ToggleSortLogs(ctx)
}

// parseOrderFlag parses --order. Only a direction is accepted, None means the flag was not given
func parseOrderFlag(flag string) (logs.OrderBy, error) {
	if flag == "" {
		return logs.None, nil
	}

	order, err := logs.ParseOrder(flag)
	if err != nil {
		return logs.None, err
	}

	if order == logs.None {
		return logs.None, fmt.Errorf("%w: %q, use asc or desc", logs.ErrUnsupportedOrder, flag)
	}

	return order, nil
}

// selectDay parses the day argument, defaulting to the newest day of the tree
func selectDay(arg string, loaded bus.DaysLoaded) (logs.Day, error) {
	if arg != "" {
		return logs.ParseDay(arg)
	}

	days := loaded.Tree.Days()
	if len(days) == 0 {
		return logs.Day{}, fmt.Errorf("%w: %s has no logs", errors.ErrNoDaySelected, loaded.Repository)
	}

	return days[0], nil
}

// waitRows waits until the rows of day are published or their fetch fails
func waitRows(ctx context.Context, events <-chan bus.Message, day logs.Day) (bus.RowsPublished, error) {
	for {
		select {
		case <-ctx.Done():
			return bus.RowsPublished{}, ctx.Err()
		case msg, ok := <-events:
			if !ok {
				return bus.RowsPublished{}, errors.ErrViewerStopped
			}

			switch data := msg.Data.(type) {
			case bus.RowsPublished:
				if data.Day == day {
					return data, nil
				}
			case bus.RefreshFailed:
				if data.Day == day {
					return bus.RowsPublished{}, data.Error
				}
			}
		}
	}
}
