package filter

import (
	"fmt"

	"github.com/google/uuid"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
)

// NoFilterID identifies the sentinel definition meaning "no filtering applied"
var NoFilterID = uuid.Nil.String()

// Definition is a saved, named filter. Subfilters reference other definitions by id.
type Definition struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Expression string   `yaml:"expression"`
	Enabled    bool     `yaml:"enabled"`
	Subfilters []string `yaml:"subfilters,omitempty"`
}

// NewDefinition creates an enabled definition with a fresh id
func NewDefinition(name, expression string) Definition {
	return Definition{
		ID:         uuid.NewString(),
		Name:       name,
		Expression: expression,
		Enabled:    true,
	}
}

// NoFilter returns the sentinel definition
func NoFilter() Definition {
	return Definition{ID: NoFilterID, Name: "No filter", Enabled: true}
}

// IsNoFilter reports whether id is the sentinel
func IsNoFilter(id string) bool {
	return id == "" || id == NoFilterID
}

// Set is an arena of definitions linked by id
type Set struct {
	defs    map[string]*Definition
	parents map[string]string
	order   []string
}

// NewSet builds an arena, rejecting duplicate ids, dangling references, shared children and cycles
func NewSet(defs []Definition) (*Set, error) {
	s := &Set{
		defs:    make(map[string]*Definition, len(defs)),
		parents: make(map[string]string),
		order:   make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		if _, exists := s.defs[def.ID]; exists {
			return nil, fmt.Errorf("%w: %s", errors.ErrDuplicateFilterID, def.ID)
		}

		d := def
		d.Subfilters = append([]string(nil), def.Subfilters...)
		s.defs[def.ID] = &d
		s.order = append(s.order, def.ID)
	}

	for _, id := range s.order {
		for _, child := range s.defs[id].Subfilters {
			if _, ok := s.defs[child]; !ok {
				return nil, fmt.Errorf("%w: subfilter %s of %s", errors.ErrFilterNotFound, child, id)
			}

			if parent, taken := s.parents[child]; taken {
				return nil, fmt.Errorf("%w: %s is a subfilter of both %s and %s", errors.ErrInvalidFilter, child, parent, id)
			}

			s.parents[child] = id
		}
	}

	for _, id := range s.order {
		if err := s.checkCycle(id); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Set) checkCycle(id string) error {
	seen := map[string]bool{id: true}

	for parent, ok := s.parents[id]; ok; parent, ok = s.parents[parent] {
		if seen[parent] {
			return fmt.Errorf("%w: %s", errors.ErrFilterCycle, id)
		}

		seen[parent] = true
	}

	return nil
}

// Len returns the number of definitions
func (s *Set) Len() int {
	return len(s.order)
}

// Get returns a copy of the definition
func (s *Set) Get(id string) (Definition, bool) {
	def, ok := s.defs[id]
	if !ok {
		return Definition{}, false
	}

	return clone(def), true
}

// Parent returns the id of the definition owning id as a subfilter
func (s *Set) Parent(id string) (string, bool) {
	parent, ok := s.parents[id]
	return parent, ok
}

// Roots returns top-level definitions in insertion order
func (s *Set) Roots() []Definition {
	roots := make([]Definition, 0)

	for _, id := range s.order {
		if _, child := s.parents[id]; !child {
			roots = append(roots, clone(s.defs[id]))
		}
	}

	return roots
}

// Children returns the subfilters of id in their stored order
func (s *Set) Children(id string) []Definition {
	def, ok := s.defs[id]
	if !ok {
		return nil
	}

	children := make([]Definition, 0, len(def.Subfilters))
	for _, child := range def.Subfilters {
		children = append(children, clone(s.defs[child]))
	}

	return children
}

// Definitions returns every definition in insertion order, suitable for persisting
func (s *Set) Definitions() []Definition {
	defs := make([]Definition, 0, len(s.order))
	for _, id := range s.order {
		defs = append(defs, clone(s.defs[id]))
	}

	return defs
}

// Add inserts def at the top level, or as the last subfilter of parentID when set
func (s *Set) Add(def Definition, parentID string) error {
	if _, exists := s.defs[def.ID]; exists {
		return fmt.Errorf("%w: %s", errors.ErrDuplicateFilterID, def.ID)
	}

	if parentID != "" {
		parent, ok := s.defs[parentID]
		if !ok {
			return fmt.Errorf("%w: %s", errors.ErrFilterNotFound, parentID)
		}

		parent.Subfilters = append(parent.Subfilters, def.ID)
		s.parents[def.ID] = parentID
	}

	d := def
	d.Subfilters = nil
	s.defs[def.ID] = &d
	s.order = append(s.order, def.ID)

	return nil
}

// Update replaces the name, expression and enabled flag of an existing definition
func (s *Set) Update(def Definition) error {
	if IsNoFilter(def.ID) {
		return errors.ErrNoFilterIsImmutable
	}

	existing, ok := s.defs[def.ID]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrFilterNotFound, def.ID)
	}

	existing.Name = def.Name
	existing.Expression = def.Expression
	existing.Enabled = def.Enabled

	return nil
}

// Remove deletes id together with its subfilters and returns the removed ids
func (s *Set) Remove(id string) ([]string, error) {
	if _, ok := s.defs[id]; !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrFilterNotFound, id)
	}

	if parentID, ok := s.parents[id]; ok {
		parent := s.defs[parentID]
		for i, child := range parent.Subfilters {
			if child == id {
				parent.Subfilters = append(parent.Subfilters[:i], parent.Subfilters[i+1:]...)
				break
			}
		}
	}

	removed := s.collect(id, nil)
	gone := make(map[string]bool, len(removed))

	for _, rid := range removed {
		gone[rid] = true
		delete(s.defs, rid)
		delete(s.parents, rid)
	}

	kept := s.order[:0]
	for _, oid := range s.order {
		if !gone[oid] {
			kept = append(kept, oid)
		}
	}

	s.order = kept

	return removed, nil
}

func (s *Set) collect(id string, acc []string) []string {
	acc = append(acc, id)
	for _, child := range s.defs[id].Subfilters {
		acc = s.collect(child, acc)
	}

	return acc
}

// Compile builds the conjunctive matcher of id: its own predicate and, recursively, every enabled subfilter
func (s *Set) Compile(id string) (func(logs.Row) bool, error) {
	if IsNoFilter(id) {
		return func(logs.Row) bool { return true }, nil
	}

	def, ok := s.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrFilterNotFound, id)
	}

	predicate, err := ParsePredicate(def.Expression)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", def.Name, err)
	}

	matchers := []func(logs.Row) bool{predicate.Match}

	for _, childID := range def.Subfilters {
		if !s.defs[childID].Enabled {
			continue
		}

		child, err := s.Compile(childID)
		if err != nil {
			return nil, err
		}

		matchers = append(matchers, child)
	}

	return func(row logs.Row) bool {
		for _, match := range matchers {
			if !match(row) {
				return false
			}
		}

		return true
	}, nil
}

// Evaluate returns the rows accepted by definition id, preserving order
func (s *Set) Evaluate(id string, rows []logs.Row) ([]logs.Row, error) {
	match, err := s.Compile(id)
	if err != nil {
		return nil, err
	}

	result := make([]logs.Row, 0, len(rows))
	for _, row := range rows {
		if match(row) {
			result = append(result, row)
		}
	}

	return result, nil
}

func clone(def *Definition) Definition {
	d := *def
	d.Subfilters = append([]string(nil), def.Subfilters...)

	return d
}
