package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"worklog/internal/event"
	"worklog/internal/format"
	"worklog/internal/summary"
)

var (
	workingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	projectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	durationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func (a *App) renderFree() {
	fmt.Fprintln(a.Out, freeStyle.Render("Free"))
}

func (a *App) renderWorking(last event.Event, elapsed time.Duration) {
	line := fmt.Sprintf("%s %s %s",
		workingStyle.Render("Working on"),
		projectStyle.Render(last.Project),
		mutedStyle.Render("("+format.Human(elapsed)+")"))
	if last.Description != "" {
		line += ": " + last.Description
	}
	fmt.Fprintln(a.Out, line)
}

func (a *App) renderNoWork() {
	fmt.Fprintln(a.Out, mutedStyle.Render("No work done!"))
}

func (a *App) renderSummary(s *summary.ProjectSummary, tf format.TimeFormat) {
	for _, project := range s.Projects() {
		fmt.Fprintf(a.Out, "%s => %s\n",
			projectStyle.Render(project),
			durationStyle.Render(format.Duration(tf, s.Duration(project))))
	}
}

func (a *App) renderSummaryCSV(s *summary.ProjectSummary, tf format.TimeFormat) error {
	w := csv.NewWriter(a.Out)
	if err := w.Write([]string{"Project", "Time Spent"}); err != nil {
		return err
	}
	for _, project := range s.Projects() {
		if err := w.Write([]string{project, format.Duration(tf, s.Duration(project))}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (a *App) renderSummaryJSON(s *summary.ProjectSummary, tf format.TimeFormat) error {
	out := make(map[string]string, len(s.Projects()))
	for _, project := range s.Projects() {
		out[project] = format.Duration(tf, s.Duration(project))
	}
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
