package dashboard

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/event"
)

type fakeLog struct {
	events []event.Event
	err    error
}

func (f *fakeLog) ReadAll() ([]event.Event, error) { return f.events, f.err }

func fixedNow() time.Time {
	return time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
}

func mustStart(t *testing.T, ts time.Time, project string) event.Event {
	t.Helper()
	ev, err := event.NewStart(ts, project, "")
	require.NoError(t, err)
	return ev
}

func TestViewWhileFree(t *testing.T) {
	m := model{log: &fakeLog{}, now: fixedNow}
	view := m.View()
	assert.Contains(t, view, "Free")
	assert.Contains(t, view, "No work done yet")
	assert.Contains(t, view, "Press 'q' to quit")
}

func TestViewWhileWorking(t *testing.T) {
	start := mustStart(t, fixedNow().Add(-25*time.Minute), "api")
	m := model{log: &fakeLog{}, now: fixedNow, events: []event.Event{start}}

	view := m.View()
	assert.Contains(t, view, "Working on")
	assert.Contains(t, view, "api")
	assert.Contains(t, view, "25 minutes")
	assert.Contains(t, view, "Total")
}

func TestViewShowsReadError(t *testing.T) {
	m := model{log: &fakeLog{}, now: fixedNow, err: errors.New("log unreadable")}
	assert.Contains(t, m.View(), "log unreadable")
}

func TestTickReloadsTheLog(t *testing.T) {
	log := &fakeLog{}
	m := model{log: log, now: fixedNow}

	log.events = []event.Event{mustStart(t, fixedNow().Add(-time.Hour), "api")}
	updated, cmd := m.Update(tickMsg(fixedNow()))

	require.NotNil(t, cmd)
	assert.Len(t, updated.(model).events, 1)
}

func TestQuitKeys(t *testing.T) {
	m := model{log: &fakeLog{}, now: fixedNow}
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		_, cmd := m.Update(key)
		require.NotNilf(t, cmd, "key %q should quit", key.String())
	}
}
