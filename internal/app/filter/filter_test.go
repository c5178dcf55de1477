package filter

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
)

func at(sec int) time.Time {
	return time.Date(2024, 3, 1, 10, 0, sec, 0, time.UTC)
}

func sampleRows() []logs.Row {
	return []logs.Row{
		{Time: at(1), Level: "TRACE", Logger: "App.Db", Thread: "1", Message: "opening connection"},
		{Time: at(2), Level: "debug", Logger: "App.Db", Thread: "1", Message: "query took 3ms"},
		{Time: at(3), Level: "Info", Logger: "App.Web", Thread: "2", Message: "GET /index"},
		{Time: at(4), Level: "warn", Logger: "App.Web", Thread: "2", Message: "slow request: Timeout close"},
		{Time: at(5), Level: "ERROR", Logger: "App.Db", Thread: "3", Message: "connection timeout"},
		{Time: at(6), Level: "fatal", Logger: "App", Thread: "3", Message: "shutting down"},
	}
}

func Test_LevelSet(t *testing.T) {
	set := NewLevelSet(logs.LevelWarn, logs.LevelError)

	assert.True(t, set.Contains("WARN"))
	assert.True(t, set.Contains(logs.LevelError))
	assert.False(t, set.Contains(logs.LevelInfo))
	assert.False(t, set.Contains("notice"))
	assert.Equal(t, "warn,error", set.String())

	set = set.Toggle(logs.LevelInfo).Without(logs.LevelWarn)
	assert.Equal(t, []logs.Level{logs.LevelInfo, logs.LevelError}, set.Levels())

	assert.Len(t, AllLevels.Levels(), 6)
	assert.True(t, LevelSet(0).IsEmpty())

	parsed, ok := ParseLevelSet("Warning, error")
	require.True(t, ok)
	assert.Equal(t, NewLevelSet(logs.LevelWarn, logs.LevelError), parsed)

	_, ok = ParseLevelSet("warn,bogus")
	assert.False(t, ok)
}

func Test_Apply_LevelSubsets(t *testing.T) {
	rows := sampleRows()

	for mask := LevelSet(0); mask <= AllLevels; mask++ {
		t.Run(fmt.Sprintf("levels=%s", mask), func(t *testing.T) {
			result := Apply(rows, DefaultCriteria().WithLevels(mask))

			assert.LessOrEqual(t, len(result), len(rows))
			assert.Len(t, result, len(mask.Levels()))

			for _, row := range result {
				assert.True(t, mask.Contains(row.Level))
			}
		})
	}
}

func Test_Apply_LevelsAndOrder(t *testing.T) {
	rows := []logs.Row{
		{Time: at(10), Level: logs.LevelWarn, Message: "a"},
		{Time: at(5), Level: logs.LevelError, Message: "b"},
		{Time: at(10), Level: logs.LevelInfo, Message: "c"},
	}

	result := Apply(rows, Criteria{Levels: NewLevelSet(logs.LevelWarn, logs.LevelError)})

	assert.Equal(t, []logs.Row{
		{Time: at(10), Level: logs.LevelWarn, Message: "a"},
		{Time: at(5), Level: logs.LevelError, Message: "b"},
	}, result)
}

func Test_Apply_StableOnEqualTimestamps(t *testing.T) {
	rows := []logs.Row{
		{Time: at(1), Level: logs.LevelInfo, Message: "first"},
		{Time: at(0), Level: logs.LevelInfo, Message: "early"},
		{Time: at(1), Level: logs.LevelInfo, Message: "second"},
		{Time: at(1), Level: logs.LevelInfo, Message: "third"},
	}

	asc := Apply(rows, DefaultCriteria().WithAscending(true))
	assert.Equal(t, []string{"early", "first", "second", "third"}, messages(asc))

	desc := Apply(rows, DefaultCriteria())
	assert.Equal(t, []string{"first", "second", "third", "early"}, messages(desc))
}

func Test_Apply_Text(t *testing.T) {
	result := Apply(sampleRows(), DefaultCriteria().WithText("TIMEOUT").WithAscending(true))

	assert.Equal(t, []string{"slow request: Timeout close", "connection timeout"}, messages(result))
}

func Test_Apply_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	_ = Apply(rows, DefaultCriteria())

	assert.Equal(t, sampleRows(), rows)
}

func Test_Criteria(t *testing.T) {
	c := DefaultCriteria()
	assert.Equal(t, AllLevels, c.Levels)
	assert.Equal(t, logs.Desc, c.Order())

	changed := c.WithText("x").WithAscending(true)
	assert.Equal(t, "", c.Text)
	assert.Equal(t, "x", changed.Text)
	assert.Equal(t, logs.Asc, changed.Order())
}

func Test_ParsePredicate(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected []string
		error    bool
	}{
		{name: "empty matches everything", expr: "", expected: messages(sampleRows())},
		{name: "levels", expr: "level:warn,error", expected: []string{"slow request: Timeout close", "connection timeout"}},
		{name: "logger glob", expr: "logger:App.Db", expected: []string{"opening connection", "query took 3ms", "connection timeout"}},
		{name: "logger wildcard", expr: "logger:App.*", expected: []string{"opening connection", "query took 3ms", "GET /index", "slow request: Timeout close", "connection timeout"}},
		{name: "thread", expr: "thread:3", expected: []string{"connection timeout", "shutting down"}},
		{name: "regex", expr: `re:^GET\s`, expected: []string{"GET /index"}},
		{name: "quoted words", expr: `"timeout close"`, expected: []string{"slow request: Timeout close"}},
		{name: "conjunction", expr: "connection level:error", expected: []string{"connection timeout"}},
		{name: "bad level", expr: "level:loud", error: true},
		{name: "bad regex", expr: "re:(", error: true},
		{name: "unterminated quote", expr: `"oops`, error: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePredicate(tt.expr)
			if tt.error {
				assert.ErrorIs(t, err, errors.ErrInvalidFilter)
				return
			}

			require.NoError(t, err)

			var matched []string
			for _, row := range sampleRows() {
				if p.Match(row) {
					matched = append(matched, row.Message)
				}
			}

			assert.Equal(t, tt.expected, matched)
		})
	}
}

func messages(rows []logs.Row) []string {
	result := make([]string, len(rows))
	for i, row := range rows {
		result[i] = row.Message
	}

	return result
}
