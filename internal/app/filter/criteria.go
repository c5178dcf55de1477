package filter

import (
	"sort"
	"strings"

	"logreader/internal/app/logs"
)

// Criteria is the immutable level/text/sort selection applied to cached rows
type Criteria struct {
	Levels    LevelSet
	Text      string
	Ascending bool
}

// DefaultCriteria shows every level, no text and newest first
func DefaultCriteria() Criteria {
	return Criteria{Levels: AllLevels}
}

// WithLevels returns a copy with a different level set
func (c Criteria) WithLevels(levels LevelSet) Criteria {
	c.Levels = levels
	return c
}

// WithText returns a copy with a different text criterion
func (c Criteria) WithText(text string) Criteria {
	c.Text = text
	return c
}

// WithAscending returns a copy with a different sort direction
func (c Criteria) WithAscending(ascending bool) Criteria {
	c.Ascending = ascending
	return c
}

// Order returns the ordering matching the sort direction
func (c Criteria) Order() logs.OrderBy {
	return logs.OrderOf(c.Ascending)
}

// Apply keeps rows whose level is in the level set and whose message contains the
// text criterion (case-insensitive), then stable-sorts them by timestamp
func Apply(rows []logs.Row, c Criteria) []logs.Row {
	text := strings.ToLower(c.Text)
	result := make([]logs.Row, 0, len(rows))

	for _, row := range rows {
		if !c.Levels.Contains(row.Level) {
			continue
		}

		if text != "" && !strings.Contains(strings.ToLower(row.Message), text) {
			continue
		}

		result = append(result, row)
	}

	if c.Ascending {
		sort.SliceStable(result, func(i, j int) bool { return result[i].Time.Before(result[j].Time) })
	} else {
		sort.SliceStable(result, func(i, j int) bool { return result[j].Time.Before(result[i].Time) })
	}

	return result
}
