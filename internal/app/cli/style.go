package cli

import (
	"github.com/charmbracelet/lipgloss"

	"logreader/internal/app/logs"
	"logreader/internal/config"
)

// Material Design 3 Typography Scale
// https://m3.material.io/styles/typography/overview

// Headline - High-emphasis text for section headers
var (
	headlineLarge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginTop(1)
)

// Title - Medium-emphasis text for titles and subtitles
var (
	titleMedium = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
)

// Body - Main content text
var (
	bodyLarge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	bodyMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
)

// Label - Small text for labels, captions, and supplementary content
var (
	labelLarge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true).MarginTop(1)
	labelMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true)
)

// Semantic styles - mapped to Material typography scale
var (
	sectionHeader = headlineLarge
	helpText      = labelLarge
	mutedText     = labelMedium

	commandName = titleMedium
	exampleCode = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	errorLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF5350"))

	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// Table styles
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	timeStyle     = cellStyle.Foreground(lipgloss.Color("#666666"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#424242"))
	treeRootStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
)

// Level styles
var levelStyles = map[logs.Level]lipgloss.Style{
	logs.LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("#757575")),
	logs.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
	logs.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#42A5F5")),
	logs.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA726")),
	logs.LevelError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF5350")),
	logs.LevelFatal: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#C62828")),
}

// LevelStyle returns the style a level is rendered with
func LevelStyle(level logs.Level) lipgloss.Style {
	if style, ok := levelStyles[level.Normalize()]; ok {
		return style
	}

	return bodyMedium
}

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
	description := bodyLarge.Render(config.AppDescription)

	return lipgloss.JoinVertical(lipgloss.Left, title, description)
}

// RenderHelp renders the hint shown while following a day
func RenderHelp() string {
	return helpText.Render("Press ctrl+c to stop watching")
}
