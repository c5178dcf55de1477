package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"logreader/internal/app/errors"
	"logreader/internal/config"
)

// Matcher selects log files by their path relative to the repository directory
type Matcher interface {
	Match(path string) bool
	SkipDir(dirPath string) bool
}

// matcher implements the Matcher interface
type matcher struct {
	includes []glob.Glob
	ignores  []glob.Glob
}

// NewMatcher compiles include and ignore globs; no includes means the default "*.log"
func NewMatcher(includes, ignores []string) (Matcher, error) {
	if len(includes) == 0 {
		includes = []string{config.DefaultInclude}
	}

	m := &matcher{}

	var err error
	if m.includes, err = compileAll(includes); err != nil {
		return nil, err
	}

	if m.ignores, err = compileAll(ignores); err != nil {
		return nil, err
	}

	return m, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, p := range expandPatterns(patterns) {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: glob '%s': %w", errors.ErrInvalidSource, p, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

// expandPatterns lets "**/x" also match x at the root
func expandPatterns(patterns []string) []string {
	expanded := make([]string, 0, len(patterns)*2)

	for _, p := range patterns {
		expanded = append(expanded, p)

		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			expanded = append(expanded, rest)
		}
	}

	return expanded
}

// Match reports whether path is included and not ignored
func (m *matcher) Match(path string) bool {
	path = normalizePath(path)

	for _, ignore := range m.ignores {
		if ignore.Match(path) {
			return false
		}
	}

	for _, include := range m.includes {
		if include.Match(path) {
			return true
		}
	}

	return false
}

// SkipDir reports whether an ignore glob covers everything below dirPath
func (m *matcher) SkipDir(dirPath string) bool {
	probe := normalizePath(dirPath + "/_probe")

	for _, ignore := range m.ignores {
		if ignore.Match(probe) {
			return true
		}
	}

	return false
}

func normalizePath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
