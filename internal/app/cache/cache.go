package cache

import (
	"time"

	"logreader/internal/app/logs"
)

// LogCache holds the raw rows of the active day. It is owned by a single
// goroutine and is not safe for concurrent use.
type LogCache struct {
	day      logs.Day
	rows     []logs.Row
	storedAt time.Time
}

// New creates an empty cache
func New() *LogCache {
	return &LogCache{}
}

// Store replaces the cached rows
func (c *LogCache) Store(day logs.Day, rows []logs.Row) {
	c.day = day
	c.rows = append([]logs.Row(nil), rows...)
	c.storedAt = time.Now()
}

// Current returns a copy of the cached rows, empty when nothing was stored
func (c *LogCache) Current() []logs.Row {
	return append([]logs.Row{}, c.rows...)
}

// Day returns the day the cached rows belong to
func (c *LogCache) Day() logs.Day {
	return c.day
}

// StoredAt returns when rows were last stored
func (c *LogCache) StoredAt() time.Time {
	return c.storedAt
}

// Len returns the number of cached rows
func (c *LogCache) Len() int {
	return len(c.rows)
}

// Clear drops the cached rows
func (c *LogCache) Clear() {
	c.day = logs.Day{}
	c.rows = nil
	c.storedAt = time.Time{}
}
