package worker

import (
	"context"
	"fmt"
	"sync"

	"logreader/internal/app/errors"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Pool bounds the number of concurrent backend calls
type Pool interface {
	Go(ctx context.Context, task func(ctx context.Context)) error
	InFlight() int
	Wait(ctx context.Context) error
}

type pool struct {
	sem   chan struct{}
	tasks sync.WaitGroup
	log   logger.Logger
}

// NewWorkerPool creates a pool sized by concurrency.workers
func NewWorkerPool(cfg *config.Config, log logger.Logger) Pool {
	return &pool{
		sem: make(chan struct{}, cfg.Concurrency.Workers),
		log: log,
	}
}

// Go waits for a free slot and runs task on its own goroutine, freeing the slot when it returns
func (w *pool) Go(ctx context.Context, task func(ctx context.Context)) error {
	select {
	case w.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", errors.ErrFailedToAcquireSlot, ctx.Err())
	}

	w.tasks.Add(1)

	go func() {
		defer w.tasks.Done()
		defer func() { <-w.sem }()

		task(ctx)
	}()

	return nil
}

// InFlight returns the number of tasks currently holding a slot
func (w *pool) InFlight() int {
	return len(w.sem)
}

// Wait blocks until every started task has returned or ctx ends
func (w *pool) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		w.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		w.log.Warn().Int("inFlight", w.InFlight()).Msg("Stopped before backend calls finished")
		return ctx.Err()
	}
}
