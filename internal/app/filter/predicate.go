package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
)

// predicate term prefixes
const (
	termLevel  = "level:"
	termLogger = "logger:"
	termThread = "thread:"
	termRegex  = "re:"
)

// Predicate is a compiled filter expression. All terms must match.
type Predicate struct {
	levels  LevelSet
	loggers []glob.Glob
	threads []string
	regexes []*regexp.Regexp
	words   []string
}

// ParsePredicate compiles an expression such as `level:warn,error logger:App.* "time out"`
func ParsePredicate(expr string) (Predicate, error) {
	var p Predicate

	tokens, err := tokenize(expr)
	if err != nil {
		return Predicate{}, err
	}

	for _, token := range tokens {
		lower := strings.ToLower(token)

		switch {
		case strings.HasPrefix(lower, termLevel):
			levels, ok := ParseLevelSet(token[len(termLevel):])
			if !ok || levels.IsEmpty() {
				return Predicate{}, fmt.Errorf("%w: unknown level in %q", errors.ErrInvalidFilter, token)
			}

			p.levels |= levels
		case strings.HasPrefix(lower, termLogger):
			g, err := glob.Compile(token[len(termLogger):], '.')
			if err != nil {
				return Predicate{}, fmt.Errorf("%w: %w", errors.ErrInvalidFilter, err)
			}

			p.loggers = append(p.loggers, g)
		case strings.HasPrefix(lower, termThread):
			p.threads = append(p.threads, token[len(termThread):])
		case strings.HasPrefix(lower, termRegex):
			re, err := regexp.Compile(token[len(termRegex):])
			if err != nil {
				return Predicate{}, fmt.Errorf("%w: %w", errors.ErrInvalidFilter, err)
			}

			p.regexes = append(p.regexes, re)
		default:
			p.words = append(p.words, lower)
		}
	}

	return p, nil
}

// Match reports whether row satisfies every term
func (p Predicate) Match(row logs.Row) bool {
	if p.levels != 0 && !p.levels.Contains(row.Level) {
		return false
	}

	for _, g := range p.loggers {
		if !g.Match(row.Logger) {
			return false
		}
	}

	for _, thread := range p.threads {
		if row.Thread != thread {
			return false
		}
	}

	for _, re := range p.regexes {
		if !re.MatchString(row.Message) {
			return false
		}
	}

	if len(p.words) > 0 {
		message := strings.ToLower(row.Message)
		for _, word := range p.words {
			if !strings.Contains(message, word) {
				return false
			}
		}
	}

	return true
}

// IsEmpty reports whether the predicate matches every row
func (p Predicate) IsEmpty() bool {
	return p.levels == 0 && len(p.loggers) == 0 && len(p.threads) == 0 && len(p.regexes) == 0 && len(p.words) == 0
}

// tokenize splits on whitespace, keeping double-quoted sections together
func tokenize(expr string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range expr {
		switch {
		case r == '"':
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote", errors.ErrInvalidFilter)
	}

	flush()

	return tokens, nil
}
