package viewer

//go:generate mockgen -source=viewer.go -destination=viewer_mock.go -package=viewer

import (
	"context"
	"fmt"
	"time"

	"logreader/internal/app/bus"
	"logreader/internal/app/dayindex"
	"logreader/internal/app/errors"
	"logreader/internal/app/filter"
	"logreader/internal/app/logs"
	"logreader/internal/app/notify"
	"logreader/internal/app/refresh"
	"logreader/internal/app/session"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
	"logreader/internal/app/watcher"
	"logreader/internal/app/worker"
	"logreader/internal/config/logger"
)

// Snapshot is a read-only copy of the viewer state
type Snapshot struct {
	Session        session.Session
	Tree           dayindex.Tree
	Rows           []logs.Row
	Total          int
	State          string
	LastRefresh    time.Time
	Listening      bool
	ChangeCount    int
	DefinitionName string
	UI             settings.UI
}

// Viewer is the presentation surface of the engine. Every operation runs on
// the goroutine executing Run; callers block until it has been applied.
type Viewer interface {
	Run(ctx context.Context) error
	Activate(ctx context.Context) error
	Deactivate(ctx context.Context) error
	UseSource(ctx context.Context, key string) error
	LoadDays(ctx context.Context) error
	LoadLogs(ctx context.Context, day logs.Day) error
	Filter(ctx context.Context) error
	SetLevels(ctx context.Context, levels filter.LevelSet) error
	FilterMessage(ctx context.Context, text string) error
	ResetFilter(ctx context.Context) error
	ToggleSortLogs(ctx context.Context) error
	RefreshData(ctx context.Context) error
	RefreshLogs(ctx context.Context, notify bool) error
	ApplyDefinition(ctx context.Context, id string) error
	SetListening(ctx context.Context, on bool) error
	Snapshot(ctx context.Context) (Snapshot, error)
}

type op struct {
	fn    func(ctx context.Context) error
	reply chan error
}

type daysResult struct {
	generation uint64
	repository string
	days       []logs.Day
	err        error
}

type viewer struct {
	settings settings.Manager
	registry source.Registry
	watcher  watcher.ChangeWatcher
	pipeline *refresh.Pipeline
	pool     worker.Pool
	notifier notify.Notifier
	bus      bus.Bus
	log      logger.Logger

	ops     chan op
	days    chan daysResult
	stopped chan struct{}

	session   session.Session
	ui        settings.UI
	filters   *filter.Set
	tree      dayindex.Tree
	daysGen   uint64
	daysBusy  bool
	daysQueue bool
	listening bool
	active    bool
}

// New creates a viewer; it accepts operations once Run is started
func New(
	manager settings.Manager,
	registry source.Registry,
	w watcher.ChangeWatcher,
	pipeline *refresh.Pipeline,
	pool worker.Pool,
	notifier notify.Notifier,
	b bus.Bus,
	log logger.Logger,
) Viewer {
	filters, _ := filter.NewSet(nil)

	return &viewer{
		settings: manager,
		registry: registry,
		watcher:  w,
		pipeline: pipeline,
		pool:     pool,
		notifier: notifier,
		bus:      b,
		log:      log,
		ops:      make(chan op),
		days:     make(chan daysResult, 1),
		stopped:  make(chan struct{}),
		session:  session.New(),
		ui:       settings.Default().UI,
		filters:  filters,
	}
}

// Run owns all viewer state until ctx is cancelled
func (v *viewer) Run(ctx context.Context) error {
	defer close(v.stopped)
	defer v.teardown()

	events := v.bus.Subscribe(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case o := <-v.ops:
			o.reply <- o.fn(ctx)
		case res := <-v.pipeline.Results():
			v.pipeline.Complete(ctx, res, v.view)
		case res := <-v.days:
			v.completeDays(ctx, res)
		case trigger := <-v.watcher.Triggers():
			v.onTrigger(ctx, trigger)
		case msg, ok := <-events:
			if !ok {
				events = nil
				continue
			}

			if msg.Type == bus.EventFiltersChanged {
				v.reloadFilters()
			}
		}
	}
}

func (v *viewer) do(ctx context.Context, fn func(ctx context.Context) error) error {
	o := op{fn: fn, reply: make(chan error, 1)}

	select {
	case v.ops <- o:
	case <-v.stopped:
		return errors.ErrViewerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-o.reply:
		return err
	case <-v.stopped:
		return errors.ErrViewerStopped
	}
}

// Activate reads the persisted preferences and resets the criteria to show every level
func (v *viewer) Activate(ctx context.Context) error {
	return v.do(ctx, func(ctx context.Context) error {
		current, err := v.settings.Get()
		if err != nil {
			return err
		}

		v.ui = current.UI
		v.session = v.session.
			WithCriteria(filter.DefaultCriteria().WithAscending(current.UI.OrderAsc)).
			WithDefinition(filter.NoFilterID)
		v.setFilters(current.Filters)
		v.active = true

		return nil
	})
}

// Deactivate stops listening, drops in-flight results and persists the view preferences
func (v *viewer) Deactivate(ctx context.Context) error {
	return v.do(ctx, func(ctx context.Context) error {
		v.stopListening()
		v.pipeline.Invalidate()

		if !v.active {
			return nil
		}

		v.active = false
		v.ui.OrderAsc = v.session.Criteria.Ascending
		ui := v.ui

		return v.settings.Save(func(s *settings.Settings) {
			s.UI = ui
		})
	})
}

// UseSource opens a configured repository by id or name and loads its days
func (v *viewer) UseSource(ctx context.Context, key string) error {
	return v.do(ctx, func(ctx context.Context) error {
		current, err := v.settings.Get()
		if err != nil {
			return err
		}

		repo, ok := current.Repository(key)
		if !ok {
			return fmt.Errorf("%w: %s", errors.ErrRepositoryNotFound, key)
		}

		src, err := v.registry.Open(repo)
		if err != nil {
			return err
		}

		v.stopListening()
		v.pipeline.Reset()

		v.session = v.session.WithSource(repo, src)
		v.tree = nil

		listenable := v.session.Listenable()
		if !listenable {
			v.log.Debug().Msgf("Repository %s does not support change notification", repo.Name)
		}

		v.bus.Publish(bus.Message{
			Type: bus.EventSourceChanged,
			Data: bus.SourceChanged{Repository: repo.Name, Listenable: listenable},
		})

		return v.loadDays(ctx)
	})
}

// LoadDays reloads the day tree of the active repository
func (v *viewer) LoadDays(ctx context.Context) error {
	return v.do(ctx, v.loadDays)
}

// loadDays asks for the day list of the active repository. At most one fetch
// runs at a time; calls made meanwhile collapse into a single follow-up fetch.
func (v *viewer) loadDays(ctx context.Context) error {
	if !v.session.HasSource() {
		return errors.ErrSourceRequired
	}

	v.daysGen++

	if v.daysBusy {
		v.daysQueue = true
		return nil
	}

	v.fetchDays(ctx)

	return nil
}

// fetchDays runs GetDays on a worker. The slot is acquired off the owner goroutine
// and the single result always fits the days buffer.
func (v *viewer) fetchDays(ctx context.Context) {
	v.daysBusy = true

	generation := v.daysGen
	src := v.session.Source
	repository := v.session.Repository.Name
	release := v.notifier.Busy("Loading days")

	go func() {
		err := v.pool.Go(ctx, func(ctx context.Context) {
			defer release()

			days, err := src.GetDays(ctx, logs.Desc)
			v.days <- daysResult{generation: generation, repository: repository, days: days, err: err}
		})
		if err != nil {
			release()
			v.days <- daysResult{generation: generation, repository: repository, err: err}
		}
	}()
}

func (v *viewer) completeDays(ctx context.Context, res daysResult) {
	v.daysBusy = false

	if v.daysQueue {
		v.daysQueue = false

		if v.session.HasSource() {
			v.fetchDays(ctx)
		}
	}

	if res.generation != v.daysGen {
		v.log.Debug().Msgf("Discarding stale day list of %s", res.repository)
		return
	}

	if res.err != nil {
		v.failDays(res.err, fmt.Sprintf("Failed to load days of %s", res.repository))
		return
	}

	tree, err := dayindex.BuildTree(res.days, logs.Desc)
	if err != nil {
		v.failDays(err, "Failed to build day tree")
		return
	}

	v.tree = tree

	v.bus.Publish(bus.Message{
		Type:     bus.EventDaysLoaded,
		Data:     bus.DaysLoaded{Repository: res.repository, Tree: tree},
		Critical: true,
	})
}

func (v *viewer) failDays(err error, msg string) {
	v.notifier.NotifyError(err, msg)
	v.bus.Publish(bus.Message{
		Type:     bus.EventRefreshFailed,
		Data:     bus.RefreshFailed{Error: err},
		Critical: true,
	})
}

// LoadLogs selects a day and fetches its rows. Switching day unregisters the
// change listener and makes any in-flight fetch stale.
func (v *viewer) LoadLogs(ctx context.Context, day logs.Day) error {
	return v.do(ctx, func(ctx context.Context) error {
		if !v.session.HasSource() {
			return errors.ErrSourceRequired
		}

		if day.IsZero() {
			return errors.ErrNoDaySelected
		}

		if day != v.session.Day {
			listening := v.listening

			v.stopListening()
			v.pipeline.Reset()
			v.session = v.session.WithDay(day)

			if listening {
				if err := v.startListening(); err != nil {
					v.notifier.NotifyError(err, "Failed to listen for changes")
				}
			}
		}

		return v.refreshLogs(ctx, false)
	})
}

// Filter re-applies the current criteria to the cached rows
func (v *viewer) Filter(ctx context.Context) error {
	return v.do(ctx, func(ctx context.Context) error {
		v.pipeline.Reapply(ctx, v.view)
		return nil
	})
}

// SetLevels changes the visible levels
func (v *viewer) SetLevels(ctx context.Context, levels filter.LevelSet) error {
	return v.do(ctx, func(ctx context.Context) error {
		v.session = v.session.WithCriteria(v.session.Criteria.WithLevels(levels))
		v.pipeline.Reapply(ctx, v.view)

		return nil
	})
}

// FilterMessage changes the message text criterion
func (v *viewer) FilterMessage(ctx context.Context, text string) error {
	return v.do(ctx, func(ctx context.Context) error {
		v.session = v.session.WithCriteria(v.session.Criteria.WithText(text))
		v.pipeline.Reapply(ctx, v.view)

		return nil
	})
}

// ResetFilter shows every level, clears the text and the saved filter, keeping the sort direction
func (v *viewer) ResetFilter(ctx context.Context) error {
	return v.do(ctx, func(ctx context.Context) error {
		criteria := filter.DefaultCriteria().WithAscending(v.session.Criteria.Ascending)
		v.session = v.session.WithCriteria(criteria).WithDefinition(filter.NoFilterID)

		v.publishDefinition()
		v.pipeline.Reapply(ctx, v.view)

		return nil
	})
}

// ToggleSortLogs flips the sort direction; the preference is persisted on deactivation
func (v *viewer) ToggleSortLogs(ctx context.Context) error {
	return v.do(ctx, func(ctx context.Context) error {
		v.session = v.session.WithCriteria(v.session.Criteria.WithAscending(!v.session.Criteria.Ascending))
		v.pipeline.Reapply(ctx, v.view)

		return nil
	})
}

// RefreshData reloads the day list and, when a day is selected, its rows
func (v *viewer) RefreshData(ctx context.Context) error {
	return v.do(ctx, func(ctx context.Context) error {
		if err := v.loadDays(ctx); err != nil {
			return err
		}

		if !v.session.HasDay() {
			return nil
		}

		return v.refreshLogs(ctx, true)
	})
}

// RefreshLogs fetches the rows of the selected day again
func (v *viewer) RefreshLogs(ctx context.Context, notify bool) error {
	return v.do(ctx, func(ctx context.Context) error {
		return v.refreshLogs(ctx, notify)
	})
}

func (v *viewer) refreshLogs(ctx context.Context, notify bool) error {
	if !v.session.HasSource() {
		return errors.ErrSourceRequired
	}

	if !v.session.HasDay() {
		return errors.ErrNoDaySelected
	}

	if notify {
		v.notifier.NotifyInformation("Refreshing logs...")
	}

	return v.pipeline.Request(ctx, refresh.Request{
		Source: v.session.Source,
		Day:    v.session.Day,
		Order:  v.session.Order(),
		Notify: notify,
	})
}

// ApplyDefinition narrows the rows with a saved filter; the no-filter id clears it
func (v *viewer) ApplyDefinition(ctx context.Context, id string) error {
	return v.do(ctx, func(ctx context.Context) error {
		if !filter.IsNoFilter(id) {
			if _, err := v.filters.Compile(id); err != nil {
				return err
			}
		}

		v.session = v.session.WithDefinition(id)

		v.publishDefinition()
		v.pipeline.Reapply(ctx, v.view)

		return nil
	})
}

// SetListening turns live refresh of the selected day on or off. A repository
// without change notification leaves listening off without an error.
func (v *viewer) SetListening(ctx context.Context, on bool) error {
	return v.do(ctx, func(ctx context.Context) error {
		if !on {
			v.stopListening()
			return nil
		}

		if !v.session.HasDay() {
			return errors.ErrNoDaySelected
		}

		return v.startListening()
	})
}

func (v *viewer) startListening() error {
	listener, ok := source.ListenerOf(v.session.Source)
	if !ok {
		v.log.Debug().Msgf("Listening unavailable for %s", v.session.Repository.Name)
		return nil
	}

	if err := v.watcher.Register(listener, v.session.Day); err != nil {
		return err
	}

	v.listening = true
	v.publishListening()

	return nil
}

func (v *viewer) stopListening() {
	v.watcher.Unregister()

	if !v.listening {
		return
	}

	v.listening = false
	v.publishListening()
}

func (v *viewer) onTrigger(ctx context.Context, trigger watcher.Trigger) {
	if !v.listening || trigger.Day != v.session.Day {
		v.log.Debug().Msgf("Ignoring change of %s", trigger.Day)
		return
	}

	v.bus.Publish(bus.Message{
		Type: bus.EventWatchTriggered,
		Data: bus.WatchTriggered{Day: trigger.Day, Files: trigger.Files, Count: trigger.Count},
	})

	if err := v.refreshLogs(ctx, false); err != nil {
		v.log.Warn().Err(err).Msg("Failed to refresh after change")
	}
}

// Snapshot returns a copy of the current state
func (v *viewer) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	err := v.do(ctx, func(ctx context.Context) error {
		snap = Snapshot{
			Session:        v.session,
			Tree:           v.tree,
			Rows:           v.pipeline.Published(),
			Total:          v.pipeline.Cache().Len(),
			State:          v.pipeline.State(),
			LastRefresh:    v.pipeline.LastRefresh(),
			Listening:      v.listening,
			ChangeCount:    v.watcher.ChangeCount(),
			DefinitionName: v.definitionName(),
			UI:             v.ui,
		}

		return nil
	})

	return snap, err
}

func (v *viewer) view(rows []logs.Row) []logs.Row {
	if id := v.session.Definition; !filter.IsNoFilter(id) {
		narrowed, err := v.filters.Evaluate(id, rows)
		if err != nil {
			v.log.Warn().Err(err).Msgf("Ignoring filter %s", id)
		} else {
			rows = narrowed
		}
	}

	return filter.Apply(rows, v.session.Criteria)
}

func (v *viewer) setFilters(defs []filter.Definition) {
	set, err := filter.NewSet(defs)
	if err != nil {
		v.log.Warn().Err(err).Msg("Ignoring saved filters")
		set, _ = filter.NewSet(nil)
	}

	if set.Len() == 0 {
		v.log.Debug().Msg("No saved filters")
	}

	v.filters = set

	if _, ok := set.Get(v.session.Definition); !ok && !filter.IsNoFilter(v.session.Definition) {
		v.session = v.session.WithDefinition(filter.NoFilterID)
		v.publishDefinition()
	}
}

func (v *viewer) reloadFilters() {
	current, err := v.settings.Get()
	if err != nil {
		v.log.Warn().Err(err).Msg("Failed to reload filters")
		return
	}

	v.setFilters(current.Filters)
}

func (v *viewer) definitionName() string {
	if def, ok := v.filters.Get(v.session.Definition); ok {
		return def.Name
	}

	return filter.NoFilter().Name
}

func (v *viewer) publishDefinition() {
	v.bus.Publish(bus.Message{
		Type: bus.EventFilterApplied,
		Data: bus.FilterApplied{ID: v.session.Definition, Name: v.definitionName()},
	})
}

func (v *viewer) publishListening() {
	v.bus.Publish(bus.Message{
		Type:     bus.EventListeningChanged,
		Data:     bus.ListeningChanged{Day: v.session.Day, Listening: v.listening},
		Critical: true,
	})
}

func (v *viewer) teardown() {
	v.watcher.Unregister()
	v.pipeline.Invalidate()
}
