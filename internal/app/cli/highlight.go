package cli

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var (
	uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

	uuidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#26A69A"))
	matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#212121")).Background(lipgloss.Color("#FFD54F"))
)

type highlightPattern struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
}

// highlighter colours ids and occurrences of the message filter text
type highlighter struct {
	patterns []highlightPattern
}

func newHighlighter(match string) highlighter {
	h := highlighter{}

	if match != "" {
		h.patterns = append(h.patterns, highlightPattern{
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(match)),
			style:   matchStyle,
		})
	}

	h.patterns = append(h.patterns, highlightPattern{pattern: uuidPattern, style: uuidStyle})

	return h
}

func (h highlighter) highlight(message string) string {
	result := message

	for _, p := range h.patterns {
		result = p.pattern.ReplaceAllStringFunc(result, func(s string) string {
			return p.style.Render(s)
		})
	}

	return result
}
