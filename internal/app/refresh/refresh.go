package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"logreader/internal/app/bus"
	"logreader/internal/app/cache"
	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
	"logreader/internal/app/notify"
	"logreader/internal/app/source"
	"logreader/internal/app/worker"
	"logreader/internal/config/logger"
)

// Pipeline states
const (
	Idle      = "idle"
	Fetching  = "fetching"
	Applying  = "applying"
	Published = "published"
	Failed    = "failed"
)

// Pipeline events
const (
	Fetch   = "fetch"
	Fetched = "fetched"
	Apply   = "apply"
	Publish = "publish"
	Fail    = "fail"
	Discard = "discard"
)

// View derives the published rows from the raw cached rows
type View func(rows []logs.Row) []logs.Row

// Request asks for the rows of one day
type Request struct {
	Source source.LogSource
	Day    logs.Day
	Order  logs.OrderBy
	Notify bool
}

// Result is handed back from the worker that ran a request
type Result struct {
	Request    Request
	Generation uint64
	Rows       []logs.Row
	Err        error
}

// Pipeline runs fetch, cache, filter and publish for the active day. Only the
// owning goroutine may call its methods; workers report through Results.
type Pipeline struct {
	fsm      *fsm.FSM
	pool     worker.Pool
	notifier notify.Notifier
	bus      bus.Bus
	cache    *cache.LogCache
	log      logger.Logger

	results     chan Result
	generation  uint64
	inFlight    bool
	pending     *Request
	release     func()
	published   []logs.Row
	lastRefresh time.Time
}

// New creates an idle pipeline
func New(pool worker.Pool, notifier notify.Notifier, b bus.Bus, c *cache.LogCache, log logger.Logger) *Pipeline {
	p := &Pipeline{
		pool:     pool,
		notifier: notifier,
		bus:      b,
		cache:    c,
		log:      log,
		results:  make(chan Result, 1),
	}

	p.fsm = newPipelineFSM(log)

	return p
}

func newPipelineFSM(log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: Fetch, Src: []string{Idle, Published, Failed}, Dst: Fetching},
			{Name: Fetched, Src: []string{Fetching}, Dst: Applying},
			{Name: Apply, Src: []string{Idle, Published, Failed}, Dst: Applying},
			{Name: Publish, Src: []string{Applying}, Dst: Published},
			{Name: Fail, Src: []string{Fetching}, Dst: Failed},
			{Name: Discard, Src: []string{Fetching}, Dst: Idle},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				log.Debug().Msgf("STATE %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)
			},
		},
	)
}

// Results delivers finished fetches to the owner
func (p *Pipeline) Results() <-chan Result {
	return p.results
}

// Request dispatches a fetch, or parks it behind the one in flight. A parked
// request replaces any request parked before it.
func (p *Pipeline) Request(ctx context.Context, req Request) error {
	if req.Source == nil {
		return errors.ErrSourceRequired
	}

	if req.Day.IsZero() {
		return errors.ErrNoDaySelected
	}

	if p.inFlight {
		if p.pending != nil {
			p.log.Debug().Msgf("Request for %s superseded by %s", p.pending.Day, req.Day)
		}

		p.pending = &req

		return nil
	}

	return p.dispatch(ctx, req)
}

func (p *Pipeline) dispatch(ctx context.Context, req Request) error {
	if err := p.fsm.Event(ctx, Fetch); err != nil {
		return err
	}

	generation := p.generation
	p.inFlight = true
	p.release = p.notifier.Busy(fmt.Sprintf("Loading %s", req.Day))

	go func() {
		err := p.pool.Go(ctx, func(ctx context.Context) {
			rows, err := req.Source.GetLogs(ctx, req.Day, req.Order)
			p.results <- Result{Request: req, Generation: generation, Rows: rows, Err: err}
		})
		if err != nil {
			p.results <- Result{Request: req, Generation: generation, Err: err}
		}
	}()

	return nil
}

// Complete applies a result on the owner goroutine. Stale results are dropped,
// failures keep the cache and published rows. Returns whether rows were published.
func (p *Pipeline) Complete(ctx context.Context, res Result, view View) bool {
	p.finish()
	defer p.next(ctx)

	if res.Generation != p.generation {
		p.log.Debug().Msgf("Discarding stale result for %s (generation %d, current %d)", res.Request.Day, res.Generation, p.generation)
		p.event(ctx, Discard)

		return false
	}

	if res.Err != nil {
		p.event(ctx, Fail)
		p.notifier.NotifyError(res.Err, fmt.Sprintf("Failed to load logs of %s", res.Request.Day))
		p.bus.Publish(bus.Message{
			Type:     bus.EventRefreshFailed,
			Data:     bus.RefreshFailed{Day: res.Request.Day, Error: res.Err},
			Critical: true,
		})

		return false
	}

	p.cache.Store(res.Request.Day, res.Rows)
	p.event(ctx, Fetched)
	p.apply(view)
	p.event(ctx, Publish)

	p.lastRefresh = time.Now()

	if res.Request.Notify {
		p.notifier.NotifySuccess("Refresh done.")
	}

	return true
}

// Reapply derives the published rows again from the cache without fetching
func (p *Pipeline) Reapply(ctx context.Context, view View) {
	if !p.fsm.Can(Apply) {
		p.apply(view)
		return
	}

	p.event(ctx, Apply)
	p.apply(view)
	p.event(ctx, Publish)
}

// Invalidate makes the in-flight fetch stale and drops any parked request
func (p *Pipeline) Invalidate() {
	p.generation++
	p.pending = nil
}

// Reset invalidates and clears the cache and published rows, used on a day or source switch
func (p *Pipeline) Reset() {
	p.Invalidate()
	p.cache.Clear()
	p.published = nil
}

// State returns the current pipeline state
func (p *Pipeline) State() string {
	return p.fsm.Current()
}

// Generation returns the current request generation
func (p *Pipeline) Generation() uint64 {
	return p.generation
}

// InFlight reports whether a fetch is running
func (p *Pipeline) InFlight() bool {
	return p.inFlight
}

// Published returns the last published rows
func (p *Pipeline) Published() []logs.Row {
	return append([]logs.Row{}, p.published...)
}

// Cache returns the raw row cache
func (p *Pipeline) Cache() *cache.LogCache {
	return p.cache
}

// LastRefresh returns when rows were last fetched and published
func (p *Pipeline) LastRefresh() time.Time {
	return p.lastRefresh
}

func (p *Pipeline) apply(view View) {
	rows := p.cache.Current()
	if view != nil {
		rows = view(rows)
	}

	p.published = rows

	p.bus.Publish(bus.Message{
		Type: bus.EventRowsPublished,
		Data: bus.RowsPublished{
			Day:        p.cache.Day(),
			Rows:       p.Published(),
			Total:      p.cache.Len(),
			Generation: p.generation,
		},
		Critical: true,
	})
}

func (p *Pipeline) finish() {
	p.inFlight = false

	if p.release != nil {
		p.release()
		p.release = nil
	}
}

func (p *Pipeline) next(ctx context.Context) {
	if p.pending == nil {
		return
	}

	req := *p.pending
	p.pending = nil

	if err := p.dispatch(ctx, req); err != nil {
		p.log.Warn().Err(err).Msgf("Failed to dispatch refresh of %s", req.Day)
	}
}

func (p *Pipeline) event(ctx context.Context, name string) {
	if err := p.fsm.Event(ctx, name); err != nil {
		p.log.Debug().Err(err).Msgf("Ignoring %s in state %s", name, p.fsm.Current())
	}
}
