package cli

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"logreader/internal/app/logs"
	"logreader/internal/config"
)

func Test_RenderTitle(t *testing.T) {
	result := RenderTitle()

	assert.NotEmpty(t, result)
	assert.Contains(t, result, config.AppName)
	assert.Contains(t, result, config.Version)
	assert.Contains(t, result, config.AppDescription)
}

func Test_RenderHelp(t *testing.T) {
	result := RenderHelp()

	assert.NotEmpty(t, result)
	assert.Contains(t, result, "ctrl+c")
}

func Test_LevelStyle(t *testing.T) {
	tests := []struct {
		name     string
		level    logs.Level
		expected string
	}{
		{name: "Error", level: logs.LevelError, expected: "#EF5350"},
		{name: "Alias of warn", level: logs.Level("WARNING"), expected: "#FFA726"},
		{name: "Unknown level", level: logs.Level("notice"), expected: "#BDBDBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(LevelStyle(tt.level).GetForeground().(lipgloss.Color)))
		})
	}
}
