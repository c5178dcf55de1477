package watcher

import (
	"sync"
	"time"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
	"logreader/internal/app/source"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Trigger asks the owner to refresh the listened day
type Trigger struct {
	Day   logs.Day
	Files []string
	Count int
	At    time.Time
}

// ChangeWatcher debounces a source listener into refresh triggers.
// At most one listener is registered at any time.
type ChangeWatcher interface {
	Register(l source.Listener, day logs.Day) error
	Unregister()
	Triggers() <-chan Trigger
	IsListening() bool
	ChangeCount() int
	Close()
}

// registration holds the state of the currently registered listener
type registration struct {
	id        uint64
	listener  source.Listener
	day       logs.Day
	debouncer Debouncer
	stop      chan struct{}
	done      chan struct{}
}

// changeWatcher implements the ChangeWatcher interface
type changeWatcher struct {
	window   time.Duration
	triggers chan Trigger
	log      logger.Logger
	mu       sync.Mutex
	current  *registration
	nextID   uint64
	count    int
	closed   bool
}

// NewChangeWatcher creates a watcher with the given debounce window
func NewChangeWatcher(window time.Duration, log logger.Logger) ChangeWatcher {
	return &changeWatcher{
		window:   window,
		triggers: make(chan Trigger, 1),
		log:      log,
	}
}

// NewFromConfig creates a watcher with the configured debounce window
func NewFromConfig(cfg *config.Config, log logger.Logger) ChangeWatcher {
	return NewChangeWatcher(cfg.Watch.Debounce, log)
}

// Register unregisters any previous listener, then starts l on day
func (w *changeWatcher) Register(l source.Listener, day logs.Day) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.ErrViewerStopped
	}

	w.unregisterLocked()

	if day.IsZero() {
		return errors.ErrNoDaySelected
	}

	if err := l.StartListening(day); err != nil {
		return err
	}

	w.nextID++
	reg := &registration{
		id:       w.nextID,
		listener: l,
		day:      day,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	reg.debouncer = NewDebouncer(w.window, func(burst Burst) {
		w.emit(reg.id, burst)
	})

	w.current = reg

	go w.forward(reg)

	w.log.Debug().Msgf("Registered listener for %s", day)

	return nil
}

// Unregister stops the current listener and resets the change count
func (w *changeWatcher) Unregister() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.unregisterLocked()
}

// Triggers returns the refresh trigger stream; a pending trigger absorbs later ones
func (w *changeWatcher) Triggers() <-chan Trigger {
	return w.triggers
}

// IsListening reports whether a listener is registered
func (w *changeWatcher) IsListening() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.current != nil
}

// ChangeCount returns the number of triggers since the listener was registered
func (w *changeWatcher) ChangeCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.count
}

// Close unregisters and rejects further registrations
func (w *changeWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.unregisterLocked()
	w.closed = true
}

func (w *changeWatcher) unregisterLocked() {
	reg := w.current
	if reg == nil {
		return
	}

	close(reg.stop)
	<-reg.done

	reg.debouncer.Stop()
	reg.listener.StopListening()

	w.current = nil
	w.count = 0

	w.log.Debug().Msgf("Unregistered listener for %s", reg.day)
}

// forward feeds listener changes into the debouncer until stopped
func (w *changeWatcher) forward(reg *registration) {
	defer close(reg.done)

	changes := reg.listener.Changes()

	for {
		select {
		case <-reg.stop:
			return
		case change, ok := <-changes:
			if !ok {
				return
			}

			if !change.Day.IsZero() && change.Day != reg.day {
				w.log.Debug().Msgf("Dropping change for %s while listening to %s", change.Day, reg.day)
				continue
			}

			reg.debouncer.Trigger(change)
		}
	}
}

// emit publishes a trigger unless the registration it belongs to is gone
func (w *changeWatcher) emit(id uint64, burst Burst) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil || w.current.id != id {
		return
	}

	w.count++

	trigger := Trigger{
		Day:   w.current.day,
		Files: burst.Files,
		Count: w.count,
		At:    time.Now(),
	}

	select {
	case w.triggers <- trigger:
		w.log.Debug().Msgf("Change burst of %d events for %s", burst.Events, trigger.Day)
	default:
		w.log.Debug().Msg("Refresh already pending, coalescing change burst")
	}
}
