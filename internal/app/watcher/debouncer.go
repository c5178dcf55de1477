package watcher

import (
	"sort"
	"sync"
	"time"

	"logreader/internal/app/source"
)

// Burst is the set of changes coalesced by one debounce window
type Burst struct {
	Files  []string
	Events int
}

// Debouncer coalesces rapid changes into a single callback once the window passes quietly
type Debouncer interface {
	Trigger(change source.Change)
	Stop()
}

// debouncer implements the Debouncer interface
type debouncer struct {
	window   time.Duration
	callback func(burst Burst)
	timer    *time.Timer
	files    map[string]struct{}
	events   int
	mu       sync.Mutex
	stopped  bool
}

// NewDebouncer creates a Debouncer; every Trigger restarts the window
func NewDebouncer(window time.Duration, callback func(burst Burst)) Debouncer {
	return &debouncer{
		window:   window,
		callback: callback,
		files:    make(map[string]struct{}),
	}
}

// Trigger records a change and restarts the window
func (d *debouncer) Trigger(change source.Change) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	for _, f := range change.Files {
		d.files[f] = struct{}{}
	}

	d.events++

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.window, d.fire)
}

// Stop cancels any pending callback; later triggers are ignored
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.files = make(map[string]struct{})
	d.events = 0
}

func (d *debouncer) fire() {
	d.mu.Lock()

	if d.stopped || d.events == 0 {
		d.mu.Unlock()
		return
	}

	burst := Burst{
		Files:  make([]string, 0, len(d.files)),
		Events: d.events,
	}

	for f := range d.files {
		burst.Files = append(burst.Files, f)
	}

	sort.Strings(burst.Files)

	d.files = make(map[string]struct{})
	d.events = 0
	d.timer = nil

	d.mu.Unlock()

	d.callback(burst)
}
