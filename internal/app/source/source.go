package source

//go:generate mockgen -source=source.go -destination=source_mock.go -package=source

import (
	"context"
	"time"

	"logreader/internal/app/logs"
)

// Change is a single notification that data of the listened day may have changed
type Change struct {
	Day   logs.Day
	Files []string
	At    time.Time
}

// LogSource exposes a backend as days and rows. Implementations open whatever
// connection they need per call and release it before returning.
type LogSource interface {
	GetDays(ctx context.Context, order logs.OrderBy) ([]logs.Day, error)
	GetLogs(ctx context.Context, day logs.Day, order logs.OrderBy) ([]logs.Row, error)
}

// Listener is the optional change notification capability of a LogSource
type Listener interface {
	StartListening(day logs.Day) error
	StopListening()
	Changes() <-chan Change
}

// ListenerOf probes src for change notification support
func ListenerOf(src LogSource) (Listener, bool) {
	if src == nil {
		return nil, false
	}

	l, ok := src.(Listener)

	return l, ok
}
