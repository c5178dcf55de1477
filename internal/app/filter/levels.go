package filter

import (
	"strings"

	"logreader/internal/app/logs"
)

// LevelSet is the set of severities currently visible
type LevelSet uint8

// AllLevels contains every severity
const AllLevels LevelSet = 1<<len(levelBits) - 1

var levelBits = [...]logs.Level{
	logs.LevelTrace,
	logs.LevelDebug,
	logs.LevelInfo,
	logs.LevelWarn,
	logs.LevelError,
	logs.LevelFatal,
}

// NewLevelSet builds a set from the given levels; unknown levels are ignored
func NewLevelSet(levels ...logs.Level) LevelSet {
	var set LevelSet
	for _, level := range levels {
		set = set.With(level)
	}

	return set
}

// ParseLevelSet parses a comma separated list such as "warn,error"
func ParseLevelSet(s string) (LevelSet, bool) {
	var set LevelSet

	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		level, ok := logs.ParseLevel(part)
		if !ok {
			return 0, false
		}

		set = set.With(level)
	}

	return set, true
}

func bitOf(level logs.Level) (LevelSet, bool) {
	level = level.Normalize()

	for i, known := range levelBits {
		if known == level {
			return 1 << i, true
		}
	}

	return 0, false
}

// Contains reports whether level is visible; comparison is case-insensitive
func (s LevelSet) Contains(level logs.Level) bool {
	bit, ok := bitOf(level)
	return ok && s&bit != 0
}

// With returns a copy of the set including level
func (s LevelSet) With(level logs.Level) LevelSet {
	bit, _ := bitOf(level)
	return s | bit
}

// Without returns a copy of the set excluding level
func (s LevelSet) Without(level logs.Level) LevelSet {
	bit, _ := bitOf(level)
	return s &^ bit
}

// Toggle flips the visibility of level
func (s LevelSet) Toggle(level logs.Level) LevelSet {
	if s.Contains(level) {
		return s.Without(level)
	}

	return s.With(level)
}

// Levels lists the members of the set in ascending severity
func (s LevelSet) Levels() []logs.Level {
	levels := make([]logs.Level, 0, len(levelBits))
	for i, level := range levelBits {
		if s&(1<<i) != 0 {
			levels = append(levels, level)
		}
	}

	return levels
}

// IsEmpty reports whether no level is visible
func (s LevelSet) IsEmpty() bool {
	return s&AllLevels == 0
}

// String returns the comma separated member list
func (s LevelSet) String() string {
	parts := make([]string, 0, len(levelBits))
	for _, level := range s.Levels() {
		parts = append(parts, string(level))
	}

	return strings.Join(parts, ",")
}
