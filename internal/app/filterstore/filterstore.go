package filterstore

//go:generate mockgen -source=filterstore.go -destination=filterstore_mock.go -package=filterstore

import (
	"fmt"
	"strings"
	"sync"

	"logreader/internal/app/bus"
	"logreader/internal/app/errors"
	"logreader/internal/app/filter"
	"logreader/internal/app/notify"
	"logreader/internal/app/settings"
	"logreader/internal/config/logger"
)

// Store edits saved filter definitions. Edits stay in memory until SaveAll.
type Store interface {
	Load() error
	List() []filter.Definition
	Get(id string) (filter.Definition, bool)
	Children(id string) []filter.Definition
	Create(name, expression string) (filter.Definition, error)
	CreateSub(parentID, name, expression string) (filter.Definition, error)
	Update(def filter.Definition) error
	Delete(id string) (bool, error)
	DiscardAll() (bool, error)
	SaveAll() error
}

type store struct {
	settings settings.Manager
	notifier notify.Notifier
	bus      bus.Bus
	log      logger.Logger
	mu       sync.Mutex
	set      *filter.Set
}

// NewStore creates an empty store; call Load to read the persisted definitions
func NewStore(manager settings.Manager, notifier notify.Notifier, b bus.Bus, log logger.Logger) Store {
	set, _ := filter.NewSet(nil)

	return &store{
		settings: manager,
		notifier: notifier,
		bus:      b,
		log:      log,
		set:      set,
	}
}

// Load replaces the in-memory definitions with the persisted ones
func (s *store) Load() error {
	current, err := s.settings.Get()
	if err != nil {
		return err
	}

	set, err := filter.NewSet(current.Filters)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()

	if set.Len() == 0 {
		s.log.Debug().Msg("No saved filters")
	}

	return nil
}

// List returns top-level definitions followed depth-first by their subfilters, without the no-filter sentinel
func (s *store) List() []filter.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()

	defs := make([]filter.Definition, 0, s.set.Len())

	var walk func(def filter.Definition)
	walk = func(def filter.Definition) {
		if filter.IsNoFilter(def.ID) {
			return
		}

		defs = append(defs, def)

		for _, child := range s.set.Children(def.ID) {
			walk(child)
		}
	}

	for _, root := range s.set.Roots() {
		walk(root)
	}

	return defs
}

// Get returns a definition by id
func (s *store) Get(id string) (filter.Definition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.set.Get(id)
}

// Children returns the subfilters of id
func (s *store) Children(id string) []filter.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.set.Children(id)
}

// Create adds a top-level definition
func (s *store) Create(name, expression string) (filter.Definition, error) {
	return s.create("", name, expression)
}

// CreateSub adds a definition as the last subfilter of parentID
func (s *store) CreateSub(parentID, name, expression string) (filter.Definition, error) {
	if filter.IsNoFilter(parentID) {
		return filter.Definition{}, errors.ErrNoFilterIsImmutable
	}

	return s.create(parentID, name, expression)
}

func (s *store) create(parentID, name, expression string) (filter.Definition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return filter.Definition{}, fmt.Errorf("%w: name is required", errors.ErrInvalidFilter)
	}

	if _, err := filter.ParsePredicate(expression); err != nil {
		return filter.Definition{}, err
	}

	def := filter.NewDefinition(name, expression)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.set.Add(def, parentID); err != nil {
		return filter.Definition{}, err
	}

	return def, nil
}

// Update changes name, expression and enabled flag of a definition
func (s *store) Update(def filter.Definition) error {
	if _, err := filter.ParsePredicate(def.Expression); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.set.Update(def)
}

// Delete removes a definition and its subfilters after confirmation; returns false when declined
func (s *store) Delete(id string) (bool, error) {
	if filter.IsNoFilter(id) {
		return false, errors.ErrNoFilterIsImmutable
	}

	def, ok := s.Get(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", errors.ErrFilterNotFound, id)
	}

	if !s.notifier.Ask(fmt.Sprintf("Delete filter %q?", def.Name)) {
		return false, nil
	}

	s.mu.Lock()
	removed, err := s.set.Remove(id)
	s.mu.Unlock()

	if err != nil {
		return false, err
	}

	s.log.Debug().Msgf("Removed %d filter(s) starting at %s", len(removed), id)

	return true, nil
}

// DiscardAll drops unsaved edits after confirmation by reloading the persisted definitions
func (s *store) DiscardAll() (bool, error) {
	if !s.notifier.Ask("Discard all unsaved filter changes?") {
		return false, nil
	}

	if err := s.Load(); err != nil {
		return false, err
	}

	return true, nil
}

// SaveAll persists every definition and announces the change
func (s *store) SaveAll() error {
	current, err := s.settings.Get()
	if err != nil {
		return err
	}

	s.mu.Lock()
	current.Filters = s.set.Definitions()
	count := s.set.Len()
	s.mu.Unlock()

	if err := <-s.settings.SaveAsync(current); err != nil {
		s.notifier.NotifyError(err, "Failed to save filters")
		return err
	}

	s.notifier.NotifySuccess("Filters saved.")
	s.bus.Publish(bus.Message{Type: bus.EventFiltersChanged, Data: bus.FiltersChanged{Count: count}})

	return nil
}
