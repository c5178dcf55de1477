package session

import (
	"logreader/internal/app/filter"
	"logreader/internal/app/logs"
	"logreader/internal/app/settings"
	"logreader/internal/app/source"
)

// Session is the viewer's current selection. It is a value: every change
// returns a new Session and the previous one stays valid.
type Session struct {
	Repository settings.Repository
	Source     source.LogSource
	Day        logs.Day
	Criteria   filter.Criteria
	Definition string
}

// New creates a session showing every level, newest first, with no filter applied
func New() Session {
	return Session{
		Criteria:   filter.DefaultCriteria(),
		Definition: filter.NoFilterID,
	}
}

// WithSource switches repository and clears the selected day
func (s Session) WithSource(repo settings.Repository, src source.LogSource) Session {
	s.Repository = repo
	s.Source = src
	s.Day = logs.Day{}

	return s
}

// WithDay selects a day
func (s Session) WithDay(day logs.Day) Session {
	s.Day = day
	return s
}

// WithCriteria replaces the level, text and sort criteria
func (s Session) WithCriteria(c filter.Criteria) Session {
	s.Criteria = c
	return s
}

// WithDefinition records the last applied saved filter
func (s Session) WithDefinition(id string) Session {
	if id == "" {
		id = filter.NoFilterID
	}

	s.Definition = id

	return s
}

// HasSource reports whether a repository is open
func (s Session) HasSource() bool {
	return s.Source != nil
}

// HasDay reports whether a day is selected
func (s Session) HasDay() bool {
	return !s.Day.IsZero()
}

// Listenable reports whether the open repository can push change notifications
func (s Session) Listenable() bool {
	_, ok := source.ListenerOf(s.Source)
	return ok
}

// Order returns the ordering rows are requested and shown in
func (s Session) Order() logs.OrderBy {
	return s.Criteria.Order()
}
