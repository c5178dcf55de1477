package source

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
	"logreader/internal/config"
)

// named groups understood in line patterns
const (
	groupTime    = "time"
	groupLevel   = "level"
	groupLogger  = "logger"
	groupThread  = "thread"
	groupMessage = "message"
)

// lineParser turns one line of a log file into a row
type lineParser interface {
	parse(line string) (logs.Row, bool)
	// continuation reports whether unparsed lines extend the previous row's message
	continuation() bool
}

// newLineParser builds the parser selected by format
func newLineParser(format, pattern, layout string) (lineParser, error) {
	if layout == "" {
		layout = config.DefaultTimeLayout
	}

	switch strings.ToLower(format) {
	case "", config.FormatPattern:
		return newPatternParser(pattern, layout)
	case config.FormatJSON:
		return &jsonParser{layout: layout}, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", errors.ErrInvalidFormat, format)
	}
}

// patternParser extracts fields with a regexp of named groups
type patternParser struct {
	re     *regexp.Regexp
	groups map[string]int
	layout string
}

func newPatternParser(pattern, layout string) (*patternParser, error) {
	if pattern == "" {
		pattern = config.DefaultPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidLinePattern, err)
	}

	groups := make(map[string]int)
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = i
		}
	}

	for _, required := range []string{groupTime, groupMessage} {
		if _, ok := groups[required]; !ok {
			return nil, fmt.Errorf("%w: missing named group '%s'", errors.ErrInvalidLinePattern, required)
		}
	}

	return &patternParser{re: re, groups: groups, layout: layout}, nil
}

func (p *patternParser) parse(line string) (logs.Row, bool) {
	match := p.re.FindStringSubmatch(line)
	if match == nil {
		return logs.Row{}, false
	}

	ts, err := parseTime(p.layout, match[p.groups[groupTime]])
	if err != nil {
		return logs.Row{}, false
	}

	return logs.Row{
		Time:    ts,
		Level:   logs.Level(p.group(match, groupLevel)).Normalize(),
		Logger:  p.group(match, groupLogger),
		Thread:  p.group(match, groupThread),
		Message: p.group(match, groupMessage),
	}, true
}

func (p *patternParser) group(match []string, name string) string {
	i, ok := p.groups[name]
	if !ok {
		return ""
	}

	return strings.TrimSpace(match[i])
}

func (p *patternParser) continuation() bool {
	return true
}

// json field aliases, first present wins
var (
	jsonTime    = []string{"time", "timestamp", "ts", "@t"}
	jsonLevel   = []string{"level", "lvl", "severity", "@l"}
	jsonLogger  = []string{"logger", "component", "source", "@logger"}
	jsonThread  = []string{"thread", "thread_id", "tid"}
	jsonMessage = []string{"message", "msg", "@m"}
)

// jsonParser reads one JSON object per line
type jsonParser struct {
	pool   fastjson.ParserPool
	layout string
}

func (j *jsonParser) parse(line string) (logs.Row, bool) {
	p := j.pool.Get()
	defer j.pool.Put(p)

	v, err := p.Parse(line)
	if err != nil || v.Type() != fastjson.TypeObject {
		return logs.Row{}, false
	}

	ts, ok := j.timeOf(v)
	if !ok {
		return logs.Row{}, false
	}

	return logs.Row{
		Time:    ts,
		Level:   logs.Level(stringOf(v, jsonLevel)).Normalize(),
		Logger:  stringOf(v, jsonLogger),
		Thread:  stringOf(v, jsonThread),
		Message: stringOf(v, jsonMessage),
	}, true
}

func (j *jsonParser) timeOf(v *fastjson.Value) (time.Time, bool) {
	for _, key := range jsonTime {
		field := v.Get(key)
		if field == nil {
			continue
		}

		switch field.Type() {
		case fastjson.TypeString:
			raw := string(field.GetStringBytes())

			if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
				return ts, true
			}

			if ts, err := parseTime(j.layout, raw); err == nil {
				return ts, true
			}
		case fastjson.TypeNumber:
			return unixTime(field.GetFloat64()), true
		}
	}

	return time.Time{}, false
}

func (j *jsonParser) continuation() bool {
	return false
}

func stringOf(v *fastjson.Value, keys []string) string {
	for _, key := range keys {
		field := v.Get(key)
		if field == nil {
			continue
		}

		switch field.Type() {
		case fastjson.TypeString:
			return string(field.GetStringBytes())
		case fastjson.TypeNumber:
			return field.String()
		}
	}

	return ""
}

// unixTime accepts seconds or milliseconds since the epoch
func unixTime(n float64) time.Time {
	if n > 1e12 {
		return time.UnixMilli(int64(n))
	}

	sec := int64(n)

	return time.Unix(sec, int64((n-float64(sec))*1e9))
}

// parseTime parses s in local time; the default layout also accepts a 'T' separator
func parseTime(layout, s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if layout == config.DefaultTimeLayout && len(s) > 10 && s[10] == 'T' {
		s = s[:10] + " " + s[11:]
	}

	return time.ParseInLocation(layout, s, time.Local)
}
