package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"logreader/internal/app/dayindex"
	"logreader/internal/app/logs"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// MessageType represents the type of message
type MessageType string

// Event types
const (
	EventSourceChanged    MessageType = "source_changed"
	EventDaysLoaded       MessageType = "days_loaded"
	EventRowsPublished    MessageType = "rows_published"
	EventRefreshFailed    MessageType = "refresh_failed"
	EventFilterApplied    MessageType = "filter_applied"
	EventFiltersChanged   MessageType = "filters_changed"
	EventWatchTriggered   MessageType = "watch_triggered"
	EventListeningChanged MessageType = "listening_changed"
)

// Message represents a bus message
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// SourceChanged indicates the active repository was switched
type SourceChanged struct {
	Repository string
	Listenable bool
}

// DaysLoaded carries the rebuilt day tree of the active repository
type DaysLoaded struct {
	Repository string
	Tree       dayindex.Tree
}

// RowsPublished carries the filtered rows of the active day
type RowsPublished struct {
	Day        logs.Day
	Rows       []logs.Row
	Total      int
	Generation uint64
}

// RefreshFailed indicates a fetch failed; previously published rows stay valid.
// A zero Day means the day list could not be loaded.
type RefreshFailed struct {
	Day   logs.Day
	Error error
}

// FilterApplied indicates a saved filter was applied or cleared
type FilterApplied struct {
	ID   string
	Name string
}

// FiltersChanged indicates the saved filter collection was persisted
type FiltersChanged struct {
	Count int
}

// WatchTriggered indicates a debounced change of the listened day
type WatchTriggered struct {
	Day   logs.Day
	Files []string
	Count int
}

// ListeningChanged indicates live listening was switched on or off
type ListeningChanged struct {
	Day       logs.Day
	Listening bool
}

// Bus handles pub/sub messaging
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

// bus implements the Bus interface with pub/sub messaging
type bus struct {
	cfg         *config.Config
	subscribers []chan Message
	mu          sync.RWMutex
	closed      bool
	log         logger.Logger
}

// New creates a new Bus
func New(cfg *config.Config, log logger.Logger) Bus {
	return &bus{
		cfg:         cfg,
		subscribers: make([]chan Message, 0),
		log:         log,
	}
}

// Subscribe creates a new subscription channel
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, b.cfg.Events.Buffer)
	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish sends a message to all subscribers; critical messages are never dropped
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", msg.Type, formatData(msg.Data))
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			if msg.Critical {
				go func(c chan Message, m Message) {
					defer func() { recover() }()

					c <- m
				}(ch, msg)
			}
		}
	}
}

// Close closes all subscriber channels
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
}

func (b *bus) unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case SourceChanged:
		return fmt.Sprintf("{repository: %s, listenable: %t}", d.Repository, d.Listenable)
	case DaysLoaded:
		return fmt.Sprintf("{repository: %s, days: %d}", d.Repository, len(d.Tree.Days()))
	case RowsPublished:
		return fmt.Sprintf("{day: %s, rows: %d/%d, generation: %d}", d.Day, len(d.Rows), d.Total, d.Generation)
	case RefreshFailed:
		return fmt.Sprintf("{day: %s, error: %v}", d.Day, d.Error)
	case FilterApplied:
		return fmt.Sprintf("{filter: %s}", d.Name)
	case FiltersChanged:
		return fmt.Sprintf("{filters: %d}", d.Count)
	case WatchTriggered:
		return fmt.Sprintf("{day: %s, files: %v, count: %d}", d.Day, d.Files, d.Count)
	case ListeningChanged:
		return fmt.Sprintf("{day: %s, listening: %t}", d.Day, d.Listening)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a no-op bus for when messaging is disabled
func NoOp() Bus {
	return &noOpBus{}
}

// noOpBus implements Bus interface with no-op methods for testing
type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(msg Message) {}
func (n *noOpBus) Close()              {}
