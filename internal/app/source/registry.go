package source

import (
	"fmt"
	"sort"
	"sync"

	"logreader/internal/app/errors"
	"logreader/internal/app/settings"
	"logreader/internal/config"
	"logreader/internal/config/logger"
)

// Factory builds a LogSource from a repository configuration
type Factory func(repo settings.Repository) (LogSource, error)

// entry represents a registered source type with its registration order
type entry struct {
	factory Factory
	order   int
}

// Registry maps repository types to source factories
type Registry interface {
	Register(kind string, factory Factory)
	Open(repo settings.Repository) (LogSource, error)
	Kinds() []string
}

// registry implements the Registry interface
type registry struct {
	mu        sync.RWMutex
	factories map[string]*entry
	nextOrder int
}

// NewRegistry creates a registry with the built-in file, sqlite and postgres sources
func NewRegistry(cfg *config.Config, log logger.Logger) Registry {
	reg := &registry{
		factories: make(map[string]*entry),
	}

	reg.Register(config.SourceFile, func(repo settings.Repository) (LogSource, error) {
		return NewFileSource(repo, log)
	})

	reg.Register(config.SourceSQLite, func(repo settings.Repository) (LogSource, error) {
		return NewTableSource(repo, SQLite, cfg.Watch.Poll, log)
	})

	reg.Register(config.SourcePostgres, func(repo settings.Repository) (LogSource, error) {
		return NewTableSource(repo, Postgres, cfg.Watch.Poll, log)
	})

	return reg
}

// Register adds or replaces the factory for kind
func (reg *registry) Register(kind string, factory Factory) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if existing, exists := reg.factories[kind]; exists {
		existing.factory = factory
		return
	}

	reg.factories[kind] = &entry{factory: factory, order: reg.nextOrder}
	reg.nextOrder++
}

// Open builds the source configured by repo
func (reg *registry) Open(repo settings.Repository) (LogSource, error) {
	reg.mu.RLock()
	item, exists := reg.factories[repo.Type]
	reg.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: '%s' in repository '%s'", errors.ErrUnknownSourceType, repo.Type, repo.Name)
	}

	return item.factory(repo)
}

// Kinds returns the registered types in registration order
func (reg *registry) Kinds() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	kinds := make([]string, 0, len(reg.factories))
	for kind := range reg.factories {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool {
		return reg.factories[kinds[i]].order < reg.factories[kinds[j]].order
	})

	return kinds
}
