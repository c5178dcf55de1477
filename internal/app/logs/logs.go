package logs

import (
	"fmt"
	"strings"
	"time"
)

// Level is the severity of a log row
type Level string

// Severity levels, least to most severe
const (
	LevelTrace Level = "trace"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Levels lists every known severity in ascending order
var Levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}

var levelAliases = map[string]Level{
	"warning":  LevelWarn,
	"err":      LevelError,
	"critical": LevelFatal,
	"crit":     LevelFatal,
	"verbose":  LevelTrace,
	"trc":      LevelTrace,
	"dbg":      LevelDebug,
	"inf":      LevelInfo,
	"wrn":      LevelWarn,
	"ftl":      LevelFatal,
}

// ParseLevel normalizes a backend level string, case-insensitively
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, level := range Levels {
		if string(level) == s {
			return level, true
		}
	}

	if level, ok := levelAliases[s]; ok {
		return level, true
	}

	return Level(s), false
}

// Normalize returns the canonical lower-case form of the level
func (l Level) Normalize() Level {
	level, _ := ParseLevel(string(l))
	return level
}

// Row is a single log entry as produced by a source. Rows are immutable once produced.
type Row struct {
	Time    time.Time
	Level   Level
	Logger  string
	Thread  string
	Message string
}

// Day is a calendar date without a time component
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayLayout is the textual form of a Day
const DayLayout = "2006-01-02"

// DayOf returns the calendar day of t in t's location
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Date: d}
}

// ParseDay parses a YYYY-MM-DD string
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DayLayout) {
		s = s[:len(DayLayout)]
	}

	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}

	return DayOf(t), nil
}

// IsZero reports whether no day is set
func (d Day) IsZero() bool {
	return d == Day{}
}

// Start returns midnight of the day in loc
func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, loc)
}

// Before reports whether d is strictly earlier than other
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}

	if d.Month != other.Month {
		return d.Month < other.Month
	}

	return d.Date < other.Date
}

// String formats the day as YYYY-MM-DD
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Date)
}
