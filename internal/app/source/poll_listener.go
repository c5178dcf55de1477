package source

import (
	"context"
	"sync"
	"time"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
	"logreader/internal/config/logger"
)

// counter returns the number of rows currently stored for day
type counter func(ctx context.Context, day logs.Day) (int64, error)

// pollListener emits a change whenever the row count of the listened day moves
type pollListener struct {
	fetch    counter
	interval time.Duration
	log      logger.Logger
	changes  chan Change
	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
}

func newPollListener(count counter, interval time.Duration, log logger.Logger) *pollListener {
	return &pollListener{
		fetch:    count,
		interval: interval,
		log:      log,
		changes:  make(chan Change, changesBuffer),
	}
}

// StartListening begins polling day, replacing any previous poll
func (l *pollListener) StartListening(day logs.Day) error {
	if day.IsZero() {
		return errors.ErrNoDaySelected
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	l.cancel = cancel
	l.done = done

	go l.run(ctx, day, done)

	l.log.Info().Msgf("Started polling every %s for %s", l.interval, day)

	return nil
}

// StopListening stops polling and waits for the poll loop to exit
func (l *pollListener) StopListening() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
}

// Changes returns the stream of change notifications
func (l *pollListener) Changes() <-chan Change {
	return l.changes
}

func (l *pollListener) stopLocked() {
	if l.cancel == nil {
		return
	}

	l.cancel()
	<-l.done

	l.cancel = nil
	l.done = nil

	discardPending(l.changes)

	l.log.Info().Msg("Stopped polling")
}

func (l *pollListener) run(ctx context.Context, day logs.Day, done chan struct{}) {
	defer close(done)

	last, err := l.fetch(ctx, day)
	if err != nil {
		l.log.Warn().Err(err).Msg("Initial poll failed")
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := l.fetch(ctx, day)
			if err != nil {
				if ctx.Err() == nil {
					l.log.Warn().Err(err).Msg("Poll failed")
				}

				continue
			}

			if n == last {
				continue
			}

			last = n

			select {
			case l.changes <- Change{Day: day, At: time.Now()}:
			default:
				l.log.Debug().Msg("Change buffer full, dropping poll result")
			}
		}
	}
}
