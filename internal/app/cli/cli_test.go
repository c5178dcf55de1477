package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"logreader/internal/app/bus"
	"logreader/internal/app/dayindex"
	appErrors "logreader/internal/app/errors"
	"logreader/internal/app/filter"
	"logreader/internal/app/filterstore"
	"logreader/internal/app/generator"
	"logreader/internal/app/logs"
	"logreader/internal/app/notify"
	"logreader/internal/app/session"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
	"logreader/internal/app/viewer"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

type harness struct {
	viewer   *viewer.MockViewer
	filters  *filterstore.MockStore
	settings *settings.MockManager
	notifier *notify.MockNotifier
	bus      bus.Bus
	out      *bytes.Buffer
	cli      CLI
}

func newHarness(t *testing.T, ctrl *gomock.Controller) *harness {
	t.Helper()

	cfg := config.DefaultConfig()

	h := &harness{
		viewer:   viewer.NewMockViewer(ctrl),
		filters:  filterstore.NewMockStore(ctrl),
		settings: settings.NewMockManager(ctrl),
		notifier: notify.NewMockNotifier(ctrl),
		bus:      bus.New(cfg, nil),
		out:      &bytes.Buffer{},
	}
	t.Cleanup(h.bus.Close)

	h.cli = NewCLIWithOutput(
		h.viewer,
		h.filters,
		h.settings,
		source.NewRegistry(cfg, logger.Nop()),
		generator.NewGeneratorWithOutput(h.out, logger.Nop()),
		h.notifier,
		h.bus,
		h.out,
		logger.Nop(),
	)

	return h
}

// expectSession expects the viewer to be started, activated and deactivated once
func (h *harness) expectSession() {
	h.viewer.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	h.viewer.EXPECT().Activate(gomock.Any()).Return(nil)
	h.viewer.EXPECT().Deactivate(gomock.Any()).Return(nil)
}

// expectDays makes UseSource publish a day tree of days
func (h *harness) expectDays(t *testing.T, days ...logs.Day) {
	t.Helper()

	tree, err := dayindex.BuildTree(days, logs.Desc)
	require.NoError(t, err)

	h.viewer.EXPECT().UseSource(gomock.Any(), "app").DoAndReturn(func(ctx context.Context, key string) error {
		h.bus.Publish(bus.Message{Type: bus.EventDaysLoaded, Data: bus.DaysLoaded{Repository: "app", Tree: tree}, Critical: true})
		return nil
	})
}

// expectRows makes LoadLogs publish rows for day
func (h *harness) expectRows(day logs.Day, rows []logs.Row, total int) {
	h.viewer.EXPECT().LoadLogs(gomock.Any(), day).DoAndReturn(func(ctx context.Context, day logs.Day) error {
		h.bus.Publish(bus.Message{Type: bus.EventRowsPublished, Data: bus.RowsPublished{Day: day, Rows: rows, Total: total}, Critical: true})
		return nil
	})
}

func Test_Run_Help(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	for _, args := range [][]string{{}, {"help"}, {"--help"}} {
		h := newHarness(t, ctrl)

		require.NoError(t, h.cli.Run(args))
		assert.Contains(t, h.out.String(), "USAGE")
		assert.Contains(t, h.out.String(), "COMMANDS")
		assert.Contains(t, h.out.String(), "logs <repo> [day]")
	}
}

func Test_Run_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)

	require.NoError(t, h.cli.Run([]string{"version"}))
	assert.Contains(t, h.out.String(), config.Version)
}

func Test_Run_UnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)

	err := h.cli.Run([]string{"serve"})

	assert.Error(t, err)
	assert.Contains(t, h.out.String(), "Error:")
	assert.Contains(t, h.out.String(), "logreader help")
}

func Test_Run_InitDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)

	require.NoError(t, h.cli.Run([]string{"init", "--dry-run"}))
	assert.Contains(t, h.out.String(), "concurrency:")
}

func Test_Run_Days(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.expectSession()
	h.expectDays(t, march1, march2)

	require.NoError(t, h.cli.Run([]string{"days", "app"}))
	assert.Contains(t, h.out.String(), "2024-03-01")
	assert.Contains(t, h.out.String(), "2024-03-02")
}

func Test_Run_Days_Failures(t *testing.T) {
	failure := errors.New("permission denied")

	tests := []struct {
		name     string
		before   func(h *harness)
		expected error
	}{
		{
			name: "Unknown repository",
			before: func(h *harness) {
				h.viewer.EXPECT().UseSource(gomock.Any(), "app").Return(appErrors.ErrRepositoryNotFound)
			},
			expected: appErrors.ErrRepositoryNotFound,
		},
		{
			name: "Day list fails",
			before: func(h *harness) {
				h.viewer.EXPECT().UseSource(gomock.Any(), "app").DoAndReturn(func(ctx context.Context, key string) error {
					h.bus.Publish(bus.Message{Type: bus.EventRefreshFailed, Data: bus.RefreshFailed{Error: failure}, Critical: true})
					return nil
				})
			},
			expected: failure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h := newHarness(t, ctrl)
			h.expectSession()
			tt.before(h)

			assert.ErrorIs(t, h.cli.Run([]string{"days", "app"}), tt.expected)
		})
	}
}

func Test_Run_Logs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.expectSession()
	h.expectDays(t, march1, march2)

	rows := []logs.Row{
		testRow(march2, 2, logs.LevelError, "disk write failed"),
		testRow(march2, 1, logs.LevelWarn, "disk almost full"),
	}

	h.viewer.EXPECT().SetLevels(gomock.Any(), filter.NewLevelSet(logs.LevelWarn, logs.LevelError)).Return(nil)
	h.viewer.EXPECT().FilterMessage(gomock.Any(), "disk").Return(nil)
	h.viewer.EXPECT().Snapshot(gomock.Any()).Return(viewer.Snapshot{Session: session.New()}, nil).Times(2)
	h.viewer.EXPECT().ToggleSortLogs(gomock.Any()).Return(nil)
	h.expectRows(march2, rows, 3)

	require.NoError(t, h.cli.Run([]string{"logs", "app", "--levels", "warn,error", "-q", "disk", "--order", "asc"}))

	output := h.out.String()
	assert.Contains(t, output, "disk write failed")
	assert.Contains(t, output, "disk almost full")
	assert.Contains(t, output, "2024-03-02: 2 of 3 rows")
}

func Test_Run_Logs_KeepsOrderWhenUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.expectSession()
	h.expectDays(t, march1)

	h.viewer.EXPECT().Snapshot(gomock.Any()).Return(viewer.Snapshot{Session: session.New()}, nil).Times(2)
	h.viewer.EXPECT().ToggleSortLogs(gomock.Any()).Times(0)
	h.expectRows(march1, nil, 0)

	require.NoError(t, h.cli.Run([]string{"logs", "app", "--order", "desc"}))
}

func Test_Run_Logs_Limit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.expectSession()
	h.expectDays(t, march1)

	rows := []logs.Row{
		testRow(march1, 3, logs.LevelInfo, "third"),
		testRow(march1, 2, logs.LevelInfo, "second"),
		testRow(march1, 1, logs.LevelInfo, "first"),
	}

	h.viewer.EXPECT().Snapshot(gomock.Any()).Return(viewer.Snapshot{Session: session.New()}, nil)
	h.expectRows(march1, rows, 3)

	require.NoError(t, h.cli.Run([]string{"logs", "app", "2024-03-01", "-n", "1"}))

	assert.Contains(t, h.out.String(), "third")
	assert.NotContains(t, h.out.String(), "second")
	assert.Contains(t, h.out.String(), "1 of 3 rows")
}

func Test_Run_Logs_SavedFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.expectSession()
	h.expectDays(t, march1)

	def := filter.NewDefinition("errors", "level>=error")

	h.filters.EXPECT().Load().Return(nil)
	h.filters.EXPECT().Get("errors").Return(filter.Definition{}, false)
	h.filters.EXPECT().List().Return([]filter.Definition{def})
	h.viewer.EXPECT().ApplyDefinition(gomock.Any(), def.ID).Return(nil)
	h.viewer.EXPECT().Snapshot(gomock.Any()).Return(viewer.Snapshot{Session: session.New()}, nil)
	h.expectRows(march1, nil, 0)

	require.NoError(t, h.cli.Run([]string{"logs", "app", "--filter", "errors"}))
}

func Test_Run_Logs_Failures(t *testing.T) {
	failure := errors.New("connection refused")

	tests := []struct {
		name     string
		args     []string
		before   func(h *harness)
		expected error
	}{
		{
			name:     "Invalid levels",
			args:     []string{"logs", "app", "--levels", "loud"},
			before:   func(h *harness) {},
			expected: appErrors.ErrInvalidFilter,
		},
		{
			name:     "Order without a direction",
			args:     []string{"logs", "app", "--order", "none"},
			before:   func(h *harness) {},
			expected: logs.ErrUnsupportedOrder,
		},
		{
			name:     "Unknown order",
			args:     []string{"logs", "app", "--order", "sideways"},
			before:   func(h *harness) {},
			expected: logs.ErrUnsupportedOrder,
		},
		{
			name: "Unknown saved filter",
			args: []string{"logs", "app", "--filter", "missing"},
			before: func(h *harness) {
				h.filters.EXPECT().Load().Return(nil)
				h.filters.EXPECT().Get("missing").Return(filter.Definition{}, false)
				h.filters.EXPECT().List().Return(nil)
			},
			expected: appErrors.ErrFilterNotFound,
		},
		{
			name: "Fetch fails",
			args: []string{"logs", "app"},
			before: func(h *harness) {
				h.viewer.EXPECT().LoadLogs(gomock.Any(), march1).DoAndReturn(func(ctx context.Context, day logs.Day) error {
					h.bus.Publish(bus.Message{Type: bus.EventRefreshFailed, Data: bus.RefreshFailed{Day: day, Error: failure}, Critical: true})
					return nil
				})
			},
			expected: failure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h := newHarness(t, ctrl)
			h.expectSession()
			h.expectDays(t, march1)
			tt.before(h)

			assert.ErrorIs(t, h.cli.Run(tt.args), tt.expected)
		})
	}
}

func Test_Run_Logs_EmptyRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.expectSession()
	h.expectDays(t)

	assert.ErrorIs(t, h.cli.Run([]string{"logs", "app"}), appErrors.ErrNoDaySelected)
}

func Test_Run_Watch_Unsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	h.expectSession()
	h.expectDays(t, march1)
	h.expectRows(march1, []logs.Row{testRow(march1, 1, logs.LevelInfo, "started")}, 1)

	snapshot := viewer.Snapshot{Session: session.New().WithSource(settings.Repository{Name: "app"}, nil)}

	h.viewer.EXPECT().SetListening(gomock.Any(), true).Return(nil)
	h.viewer.EXPECT().Snapshot(gomock.Any()).Return(snapshot, nil)
	h.notifier.EXPECT().NotifyInformation("app does not support live updates")

	require.NoError(t, h.cli.Run([]string{"watch", "app"}))
	assert.Contains(t, h.out.String(), "started")
}

func Test_follow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	c := h.cli.(*cli)

	events := make(chan bus.Message, 4)
	events <- bus.Message{Data: bus.RowsPublished{Day: march2, Rows: []logs.Row{testRow(march2, 1, logs.LevelInfo, "other day")}}}
	events <- bus.Message{Data: bus.RowsPublished{Day: march1, Rows: []logs.Row{testRow(march1, 1, logs.LevelInfo, "appended")}}}
	events <- bus.Message{Data: bus.ListeningChanged{Day: march1, Listening: false}}

	require.NoError(t, c.follow(context.Background(), events, march1, newFollower(h.out, settings.UI{}, "")))

	assert.Contains(t, h.out.String(), "appended")
	assert.NotContains(t, h.out.String(), "other day")
}

func Test_Run_Repos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)

	current := settings.Default()
	current.Repositories = []settings.Repository{
		{ID: "1", Name: "app", Type: config.SourceFile, Dir: t.TempDir()},
		{ID: "2", Name: "db", Type: config.SourcePostgres},
	}
	h.settings.EXPECT().Get().Return(current, nil)

	require.NoError(t, h.cli.Run([]string{"repos"}))

	output := h.out.String()
	assert.Contains(t, output, "app")
	assert.Contains(t, output, "yes")
	assert.Contains(t, output, "has no dsn")
}

func Test_Run_RepoAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	dir := t.TempDir()
	saved := settings.Default()

	h.settings.EXPECT().Get().Return(settings.Default(), nil)
	h.settings.EXPECT().Save(gomock.Any()).DoAndReturn(func(mutate func(*settings.Settings)) error {
		mutate(&saved)
		return nil
	})
	h.notifier.EXPECT().NotifySuccess("Repository app added.")

	require.NoError(t, h.cli.Run([]string{"repos", "add", "app", "--dir", dir}))

	require.Len(t, saved.Repositories, 1)
	assert.Equal(t, "app", saved.Repositories[0].Name)
	assert.Equal(t, config.SourceFile, saved.Repositories[0].Type)
	assert.Equal(t, dir, saved.Repositories[0].Dir)
	assert.NotEmpty(t, saved.Repositories[0].ID)
}

func Test_Run_RepoAdd_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		before   func(h *harness)
		expected error
	}{
		{
			name:     "Missing dir",
			args:     []string{"repos", "add", "app"},
			before:   func(h *harness) {},
			expected: appErrors.ErrInvalidSource,
		},
		{
			name:     "Unknown type",
			args:     []string{"repos", "add", "app", "-t", "syslog"},
			before:   func(h *harness) {},
			expected: appErrors.ErrUnknownSourceType,
		},
		{
			name: "Duplicate name",
			args: []string{"repos", "add", "app", "-t", "sqlite", "--dsn", "logs.db"},
			before: func(h *harness) {
				current := settings.Default()
				current.Repositories = []settings.Repository{{ID: "1", Name: "app", Type: config.SourceFile}}
				h.settings.EXPECT().Get().Return(current, nil)
			},
			expected: appErrors.ErrDuplicateRepository,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h := newHarness(t, ctrl)
			tt.before(h)

			assert.ErrorIs(t, h.cli.Run(tt.args), tt.expected)
		})
	}
}

func Test_Run_Filters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	def := filter.NewDefinition("errors", "level>=error")

	h.filters.EXPECT().Load().Return(nil)
	h.filters.EXPECT().List().Return([]filter.Definition{def})
	h.filters.EXPECT().Children(def.ID).Return(nil).AnyTimes()

	require.NoError(t, h.cli.Run([]string{"filters"}))
	assert.Contains(t, h.out.String(), "level>=error")
}

func Test_Run_FilterAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)

	gomock.InOrder(
		h.filters.EXPECT().Load().Return(nil),
		h.filters.EXPECT().Create("errors", "level>=error").Return(filter.NewDefinition("errors", "level>=error"), nil),
		h.filters.EXPECT().SaveAll().Return(nil),
	)

	require.NoError(t, h.cli.Run([]string{"filters", "add", "errors", "level>=error"}))
}

func Test_Run_FilterAdd_Subfilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)
	parent := filter.NewDefinition("errors", "level>=error")

	h.filters.EXPECT().Load().Return(nil)
	h.filters.EXPECT().Get(parent.ID).Return(parent, true)
	h.filters.EXPECT().CreateSub(parent.ID, "db", "logger~db").Return(filter.NewDefinition("db", "logger~db"), nil)
	h.filters.EXPECT().SaveAll().Return(nil)

	require.NoError(t, h.cli.Run([]string{"filters", "add", "db", "logger~db", "--parent", parent.ID}))
}

func Test_Run_FilterAdd_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl)

	h.filters.EXPECT().Load().Return(nil)
	h.filters.EXPECT().Create("broken", "level>=").Return(filter.Definition{}, appErrors.ErrInvalidFilter)
	h.filters.EXPECT().SaveAll().Times(0)

	assert.ErrorIs(t, h.cli.Run([]string{"filters", "add", "broken", "level>="}), appErrors.ErrInvalidFilter)
}

func Test_Run_FilterRemove(t *testing.T) {
	def := filter.NewDefinition("errors", "level>=error")

	tests := []struct {
		name    string
		confirm bool
		saves   int
	}{
		{name: "Confirmed", confirm: true, saves: 1},
		{name: "Declined", confirm: false, saves: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h := newHarness(t, ctrl)

			h.filters.EXPECT().Load().Return(nil)
			h.filters.EXPECT().Get("errors").Return(filter.Definition{}, false)
			h.filters.EXPECT().List().Return([]filter.Definition{def})
			h.filters.EXPECT().Delete(def.ID).Return(tt.confirm, nil)
			h.filters.EXPECT().SaveAll().Return(nil).Times(tt.saves)

			require.NoError(t, h.cli.Run([]string{"filters", "rm", "errors"}))
		})
	}
}
