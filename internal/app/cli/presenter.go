package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"logreader/internal/app/dayindex"
	"logreader/internal/app/filter"
	"logreader/internal/app/logs"
	"logreader/internal/app/settings"
	"logreader/internal/config"
)

const rowTimeFormat = "15:04:05.000"

// repoLine is one row of the repository listing
type repoLine struct {
	Repository settings.Repository
	Live       bool
	Err        error
}

// renderDays renders the day tree of a repository as year → month → day branches
func renderDays(name string, days dayindex.Tree) string {
	root := tree.Root(name).RootStyle(treeRootStyle).EnumeratorStyle(borderStyle)

	if days.IsEmpty() {
		return root.Child(mutedText.Render("no logs")).String()
	}

	for _, year := range days {
		yearNode := tree.Root(year.Key)

		for _, month := range year.Children {
			monthNode := tree.Root(month.Day.Month.String())

			for _, day := range month.Children {
				monthNode.Child(day.Day.String())
			}

			yearNode.Child(monthNode)
		}

		root.Child(yearNode)
	}

	return root.String()
}

// renderRows renders rows as a table honouring the column and grid preferences,
// highlighting match in messages
func renderRows(rows []logs.Row, ui settings.UI, match string) string {
	h := newHighlighter(match)

	headers := []string{"TIME", "LEVEL"}
	if ui.LoggerVisible {
		headers = append(headers, "LOGGER")
	}

	if ui.ThreadVisible {
		headers = append(headers, "THREAD")
	}

	headers = append(headers, "MESSAGE")

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, rowCells(row, ui, h))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderRow(ui.GridLines).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return timeStyle
			case col == 1 && row < len(rows):
				return LevelStyle(rows[row].Level).Padding(0, 1)
			default:
				return cellStyle
			}
		})

	return t.String()
}

func rowCells(row logs.Row, ui settings.UI, h highlighter) []string {
	cells := []string{row.Time.Format(rowTimeFormat), strings.ToUpper(string(row.Level))}
	if ui.LoggerVisible {
		cells = append(cells, row.Logger)
	}

	if ui.ThreadVisible {
		cells = append(cells, row.Thread)
	}

	return append(cells, h.highlight(row.Message))
}

// renderLine renders a single row for live output
func renderLine(row logs.Row, ui settings.UI, h highlighter) string {
	parts := []string{
		timeStyle.UnsetPadding().Render(row.Time.Format(rowTimeFormat)),
		LevelStyle(row.Level).Render(fmt.Sprintf("%-5s", strings.ToUpper(string(row.Level)))),
	}

	if ui.LoggerVisible && row.Logger != "" {
		parts = append(parts, mutedText.Render(row.Logger))
	}

	if ui.ThreadVisible && row.Thread != "" {
		parts = append(parts, mutedText.Render("["+row.Thread+"]"))
	}

	return strings.Join(append(parts, h.highlight(row.Message)), " ")
}

// renderSummary renders the count line under a row table
func renderSummary(day logs.Day, shown, total int, criteria filter.Criteria) string {
	summary := fmt.Sprintf("%s: %d of %d rows, %s, levels %s", day, shown, total, criteria.Order(), criteria.Levels)
	if criteria.Text != "" {
		summary += fmt.Sprintf(", text %q", criteria.Text)
	}

	return mutedText.Render(summary)
}

// renderRepos renders the configured repositories
func renderRepos(lines []repoLine) string {
	if len(lines) == 0 {
		return mutedText.Render("No repositories configured, add one with: logreader repos add <name>")
	}

	cells := make([][]string, 0, len(lines))
	for _, line := range lines {
		live := "no"
		if line.Live {
			live = "yes"
		}

		if line.Err != nil {
			live = line.Err.Error()
		}

		cells = append(cells, []string{line.Repository.Name, line.Repository.Type, location(line.Repository), live})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("NAME", "TYPE", "LOCATION", "LIVE").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return commandName.Padding(0, 1)
			default:
				return cellStyle
			}
		})

	return t.String()
}

func location(repo settings.Repository) string {
	if repo.Dir != "" {
		return repo.Dir
	}

	if repo.Table != "" {
		return repo.Table
	}

	return config.DefaultTable
}

// renderFilters renders saved filters with their subfilters nested under them
func renderFilters(defs []filter.Definition, children func(id string) []filter.Definition) string {
	root := tree.Root("Filters").RootStyle(treeRootStyle).EnumeratorStyle(borderStyle)

	if len(defs) == 0 {
		return root.Child(mutedText.Render("no saved filters")).String()
	}

	nested := make(map[string]bool)
	for _, def := range defs {
		for _, child := range children(def.ID) {
			nested[child.ID] = true
		}
	}

	var branch func(def filter.Definition) *tree.Tree
	branch = func(def filter.Definition) *tree.Tree {
		node := tree.Root(definitionLabel(def))
		for _, child := range children(def.ID) {
			node.Child(branch(child))
		}

		return node
	}

	for _, def := range defs {
		if !nested[def.ID] {
			root.Child(branch(def))
		}
	}

	return root.String()
}

func definitionLabel(def filter.Definition) string {
	label := commandName.Render(def.Name)
	if def.Expression != "" {
		label += " " + exampleCode.Render(def.Expression)
	}

	if !def.Enabled {
		label += " " + mutedText.Render("(disabled)")
	}

	return label + " " + mutedText.Render(def.ID)
}

// follower prints each published row once, oldest first
type follower struct {
	out         io.Writer
	ui          settings.UI
	highlighter highlighter
	printed     map[rowKey]int
}

type rowKey struct {
	time    int64
	level   logs.Level
	logger  string
	thread  string
	message string
}

func newFollower(out io.Writer, ui settings.UI, match string) *follower {
	return &follower{out: out, ui: ui, highlighter: newHighlighter(match), printed: make(map[rowKey]int)}
}

// print writes the rows not printed before and returns how many were written
func (f *follower) print(rows []logs.Row) int {
	sorted, _ := logs.SortRows(rows, logs.Asc)
	seen := make(map[rowKey]int, len(sorted))
	written := 0

	for _, row := range sorted {
		key := rowKey{row.Time.UnixNano(), row.Level, row.Logger, row.Thread, row.Message}
		seen[key]++

		if seen[key] <= f.printed[key] {
			continue
		}

		f.printed[key] = seen[key]
		fmt.Fprintln(f.out, renderLine(row, f.ui, f.highlighter))
		written++
	}

	return written
}
