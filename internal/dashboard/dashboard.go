// Package dashboard renders a live terminal view of the work log: current
// status plus today's per-project totals, refreshed every second.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"worklog/internal/event"
	"worklog/internal/format"
	"worklog/internal/summary"
	"worklog/internal/timeparse"
)

// LogReader is the read-only slice of the store the dashboard needs. Each
// tick re-reads the log, so appends from other invocations show up live.
type LogReader interface {
	ReadAll() ([]event.Event, error)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	workingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	log    LogReader
	now    func() time.Time
	events []event.Event
	err    error
	width  int
	height int
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.events, m.err = m.log.ReadAll()
		return m, tickCmd()
	}
	return m, nil
}

func (m model) View() string {
	now := m.now()

	header := headerStyle.Render(fmt.Sprintf("worklog - %s", now.Format("Jan 2, 2006 15:04:05")))

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			boxStyle.Render(freeStyle.Render(m.err.Error())),
			footerStyle.Render("Press 'q' to quit"))
	}

	var status string
	if n := len(m.events); n > 0 && m.events[n-1].Kind == event.Start {
		last := m.events[n-1]
		status = fmt.Sprintf("%s %s for %s",
			workingStyle.Render("Working on"), last.Project, format.Human(now.Sub(last.Timestamp)))
		if last.Description != "" {
			status += "\n" + last.Description
		}
	} else {
		status = freeStyle.Render("Free")
	}

	today, _ := timeparse.ResolveInterval("today", now)
	s := summary.Summarize(m.events, today, now)

	var lines []string
	lines = append(lines, "TODAY")
	lines = append(lines, "")
	if s.Empty() {
		lines = append(lines, "No work done yet")
	} else {
		for _, project := range s.Projects() {
			lines = append(lines, fmt.Sprintf("%-20s %s", project, format.Human(s.Duration(project))))
		}
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%-20s %s", "Total", format.Human(s.Total())))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		boxStyle.Render(status),
		boxStyle.Render(strings.Join(lines, "\n")),
		footerStyle.Render("Press 'q' to quit - refreshes every second"))
}

// Run blocks until the user quits the dashboard.
func Run(log LogReader, now func() time.Time) error {
	events, err := log.ReadAll()
	if err != nil {
		return err
	}
	m := model{log: log, now: now, events: events}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
