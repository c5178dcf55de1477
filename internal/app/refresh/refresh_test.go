package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"logreader/internal/app/bus"
	"logreader/internal/app/cache"
	appErrors "logreader/internal/app/errors"
	"logreader/internal/app/filter"
	"logreader/internal/app/logs"
	"logreader/internal/app/notify"
	"logreader/internal/app/source"
	"logreader/internal/app/worker"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

var (
	dayA = logs.Day{Year: 2024, Month: time.March, Date: 1}
	dayB = logs.Day{Year: 2024, Month: time.March, Date: 2}
	dayC = logs.Day{Year: 2024, Month: time.March, Date: 3}
)

func rowsOf(day logs.Day, levels ...logs.Level) []logs.Row {
	rows := make([]logs.Row, 0, len(levels))

	for i, level := range levels {
		rows = append(rows, logs.Row{
			Time:    day.Start(time.UTC).Add(time.Duration(i) * time.Second),
			Level:   level,
			Message: day.String(),
		})
	}

	return rows
}

func newTestPipeline(t *testing.T, ctrl *gomock.Controller) (*Pipeline, *notify.MockNotifier) {
	t.Helper()

	cfg := config.DefaultConfig()
	notifier := notify.NewMockNotifier(ctrl)
	notifier.EXPECT().Busy(gomock.Any()).Return(func() {}).AnyTimes()

	return New(worker.NewWorkerPool(cfg, logger.Nop()), notifier, bus.NoOp(), cache.New(), logger.Nop()), notifier
}

func receive(t *testing.T, p *Pipeline) Result {
	t.Helper()

	select {
	case res := <-p.Results():
		return res
	case <-time.After(time.Second):
		t.Fatal("Expected a result")
		return Result{}
	}
}

func errorsOnly(rows []logs.Row) []logs.Row {
	return filter.Apply(rows, filter.DefaultCriteria().WithLevels(filter.NewLevelSet(logs.LevelError)))
}

func Test_Request_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, _ := newTestPipeline(t, ctrl)
	src := source.NewMockLogSource(ctrl)

	err := p.Request(context.Background(), Request{Day: dayA})
	assert.ErrorIs(t, err, appErrors.ErrSourceRequired)

	err = p.Request(context.Background(), Request{Source: src})
	assert.ErrorIs(t, err, appErrors.ErrNoDaySelected)

	assert.Equal(t, Idle, p.State())
	assert.False(t, p.InFlight())
}

func Test_Refresh_PublishesFilteredRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	p, notifier := newTestPipeline(t, ctrl)
	src := source.NewMockLogSource(ctrl)

	src.EXPECT().GetLogs(gomock.Any(), dayA, logs.Desc).Return(rowsOf(dayA, logs.LevelInfo, logs.LevelError), nil)
	notifier.EXPECT().NotifySuccess("Refresh done.")

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA, Order: logs.Desc, Notify: true}))
	assert.Equal(t, Fetching, p.State())
	assert.True(t, p.InFlight())

	published := p.Complete(ctx, receive(t, p), errorsOnly)

	assert.True(t, published)
	assert.Equal(t, Published, p.State())
	assert.False(t, p.InFlight())
	assert.Equal(t, 2, p.Cache().Len())
	assert.Equal(t, dayA, p.Cache().Day())
	assert.Len(t, p.Published(), 1)
	assert.Equal(t, logs.LevelError, p.Published()[0].Level)
	assert.False(t, p.LastRefresh().IsZero())
}

func Test_Refresh_FailureKeepsPublishedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	p, notifier := newTestPipeline(t, ctrl)
	src := source.NewMockLogSource(ctrl)

	good := rowsOf(dayA, logs.LevelWarn, logs.LevelError)
	failure := errors.New("connection refused")

	gomock.InOrder(
		src.EXPECT().GetLogs(gomock.Any(), dayA, logs.Desc).Return(good, nil),
		src.EXPECT().GetLogs(gomock.Any(), dayA, logs.Desc).Return(nil, failure),
	)
	notifier.EXPECT().NotifyError(failure, gomock.Any()).Times(1)

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA, Order: logs.Desc}))
	require.True(t, p.Complete(ctx, receive(t, p), nil))

	before := p.Published()
	refreshedAt := p.LastRefresh()

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA, Order: logs.Desc}))
	assert.False(t, p.Complete(ctx, receive(t, p), nil))

	assert.Equal(t, Failed, p.State())
	assert.Equal(t, before, p.Published())
	assert.Equal(t, 2, p.Cache().Len())
	assert.Equal(t, refreshedAt, p.LastRefresh())
}

func Test_Refresh_FailurePublishesCriticalEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.DefaultConfig()
	b := bus.New(cfg, nil)
	defer b.Close()

	events := b.Subscribe(ctx)

	notifier := notify.NewMockNotifier(ctrl)
	notifier.EXPECT().Busy(gomock.Any()).Return(func() {})
	notifier.EXPECT().NotifyError(gomock.Any(), gomock.Any())

	src := source.NewMockLogSource(ctrl)
	src.EXPECT().GetLogs(gomock.Any(), dayA, logs.Asc).Return(nil, errors.New("timeout"))

	p := New(worker.NewWorkerPool(cfg, logger.Nop()), notifier, b, cache.New(), logger.Nop())

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA, Order: logs.Asc}))
	p.Complete(ctx, receive(t, p), nil)

	select {
	case msg := <-events:
		assert.Equal(t, bus.EventRefreshFailed, msg.Type)
		assert.True(t, msg.Critical)
	case <-time.After(time.Second):
		t.Fatal("Expected refresh failed event")
	}
}

func Test_Refresh_StaleResultAfterDaySwitch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	p, _ := newTestPipeline(t, ctrl)
	src := source.NewMockLogSource(ctrl)

	gate := make(chan struct{})

	src.EXPECT().GetLogs(gomock.Any(), dayA, logs.Desc).DoAndReturn(
		func(ctx context.Context, day logs.Day, order logs.OrderBy) ([]logs.Row, error) {
			<-gate
			return rowsOf(dayA, logs.LevelInfo), nil
		})
	src.EXPECT().GetLogs(gomock.Any(), dayB, logs.Desc).Return(rowsOf(dayB, logs.LevelWarn, logs.LevelError), nil)

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA, Order: logs.Desc}))

	p.Reset()
	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayB, Order: logs.Desc}))

	close(gate)

	assert.False(t, p.Complete(ctx, receive(t, p), nil))
	assert.Equal(t, 0, p.Cache().Len())
	assert.Empty(t, p.Published())
	assert.True(t, p.InFlight(), "Parked request should be dispatched after the stale result")

	assert.True(t, p.Complete(ctx, receive(t, p), nil))
	assert.Equal(t, dayB, p.Cache().Day())
	assert.Len(t, p.Published(), 2)
	assert.Equal(t, dayB.String(), p.Published()[0].Message)
}

func Test_Refresh_LatestParkedRequestWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	p, _ := newTestPipeline(t, ctrl)
	src := source.NewMockLogSource(ctrl)

	src.EXPECT().GetLogs(gomock.Any(), dayA, gomock.Any()).Return(rowsOf(dayA, logs.LevelInfo), nil)
	src.EXPECT().GetLogs(gomock.Any(), dayB, gomock.Any()).Times(0)
	src.EXPECT().GetLogs(gomock.Any(), dayC, gomock.Any()).Return(rowsOf(dayC, logs.LevelInfo), nil)

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA}))
	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayB}))
	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayC}))

	assert.True(t, p.Complete(ctx, receive(t, p), nil))
	assert.Equal(t, dayA, p.Cache().Day())

	assert.True(t, p.Complete(ctx, receive(t, p), nil))
	assert.Equal(t, dayC, p.Cache().Day())
	assert.False(t, p.InFlight())
}

func Test_Invalidate_DropsParkedRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	p, _ := newTestPipeline(t, ctrl)
	src := source.NewMockLogSource(ctrl)

	src.EXPECT().GetLogs(gomock.Any(), dayA, gomock.Any()).Return(rowsOf(dayA, logs.LevelInfo), nil)

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA}))
	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayB}))

	generation := p.Generation()
	p.Invalidate()

	assert.Equal(t, generation+1, p.Generation())
	assert.False(t, p.Complete(ctx, receive(t, p), nil))
	assert.Equal(t, Idle, p.State())
	assert.False(t, p.InFlight())
}

func Test_Reapply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	p, _ := newTestPipeline(t, ctrl)
	src := source.NewMockLogSource(ctrl)

	src.EXPECT().GetLogs(gomock.Any(), dayA, gomock.Any()).Return(rowsOf(dayA, logs.LevelInfo, logs.LevelError), nil)

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA}))
	require.True(t, p.Complete(ctx, receive(t, p), errorsOnly))
	require.Len(t, p.Published(), 1)

	p.Reapply(ctx, nil)

	assert.Len(t, p.Published(), 2, "Relaxing the filter restores rows from the cache")
	assert.Equal(t, Published, p.State())
}

func Test_Request_ReleasesBusyScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	released := 0

	notifier := notify.NewMockNotifier(ctrl)
	notifier.EXPECT().Busy("Loading 2024-03-01").Return(func() { released++ })

	src := source.NewMockLogSource(ctrl)
	src.EXPECT().GetLogs(gomock.Any(), dayA, gomock.Any()).Return(nil, nil)

	p := New(worker.NewWorkerPool(config.DefaultConfig(), logger.Nop()), notifier, bus.NoOp(), cache.New(), logger.Nop())

	require.NoError(t, p.Request(ctx, Request{Source: src, Day: dayA}))
	assert.Equal(t, 0, released)

	p.Complete(ctx, receive(t, p), nil)

	assert.Equal(t, 1, released)
	assert.Empty(t, p.Published())
}

func Test_Request_DoesNotWaitForWorkerSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := config.DefaultConfig()
	cfg.Concurrency.Workers = 1

	pool := worker.NewWorkerPool(cfg, logger.Nop())
	release := make(chan struct{})
	defer close(release)

	require.NoError(t, pool.Go(context.Background(), func(context.Context) { <-release }))

	notifier := notify.NewMockNotifier(ctrl)
	notifier.EXPECT().Busy(gomock.Any()).Return(func() {})
	notifier.EXPECT().NotifyError(gomock.Any(), "Failed to load logs of 2024-03-01")

	p := New(pool, notifier, bus.NoOp(), cache.New(), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, p.Request(ctx, Request{Source: source.NewMockLogSource(ctrl), Day: dayA}))
	assert.Equal(t, Fetching, p.State())

	cancel()

	res := receive(t, p)
	assert.ErrorIs(t, res.Err, appErrors.ErrFailedToAcquireSlot)

	p.Complete(context.Background(), res, nil)
	assert.Equal(t, Failed, p.State())
	assert.False(t, p.InFlight())
}
