package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/event"
	"worklog/internal/timeparse"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 2, hour, min, 0, 0, time.UTC)
}

func start(ts time.Time, project string) event.Event {
	ev, err := event.NewStart(ts, project, "")
	if err != nil {
		panic(err)
	}
	return ev
}

func stop(ts time.Time) event.Event {
	return event.NewStop(ts)
}

func interval(from, to time.Time) timeparse.Interval {
	return timeparse.NewInterval(from, to)
}

func TestEmptyLogYieldsEmptySummary(t *testing.T) {
	s := Summarize(nil, interval(at(0, 0), at(23, 59)), at(12, 0))
	assert.True(t, s.Empty())
	assert.Empty(t, s.Projects())
	assert.Zero(t, s.Total())
}

func TestSinglePairInsideInterval(t *testing.T) {
	events := []event.Event{start(at(9, 0), "api"), stop(at(10, 30))}
	s := Summarize(events, interval(at(0, 0), at(23, 59)), at(12, 0))
	require.Equal(t, []string{"api"}, s.Projects())
	assert.Equal(t, 90*time.Minute, s.Duration("api"))
}

func TestPairClippedToInterval(t *testing.T) {
	// Worked 09:00-11:00, querying 10:00-12:00 counts only the hour inside.
	events := []event.Event{start(at(9, 0), "api"), stop(at(11, 0))}
	s := Summarize(events, interval(at(10, 0), at(12, 0)), at(12, 0))
	assert.Equal(t, time.Hour, s.Duration("api"))
}

func TestOpenIntervalRunsUntilNow(t *testing.T) {
	events := []event.Event{start(at(9, 0), "api")}
	s := Summarize(events, interval(at(0, 0), at(23, 59)), at(9, 30))
	assert.Equal(t, 30*time.Minute, s.Duration("api"))
}

func TestOpenIntervalClippedToIntervalEnd(t *testing.T) {
	// Still working at query time, but the interval closed at 10:00.
	events := []event.Event{start(at(9, 0), "api")}
	s := Summarize(events, interval(at(8, 0), at(10, 0)), at(11, 0))
	assert.Equal(t, time.Hour, s.Duration("api"))
}

func TestMultipleProjectsAccumulate(t *testing.T) {
	events := []event.Event{
		start(at(9, 0), "p1"), stop(at(9, 40)),
		start(at(10, 0), "p2"), stop(at(10, 30)),
		start(at(11, 0), "p1"), stop(at(11, 20)),
	}
	s := Summarize(events, interval(at(0, 0), at(23, 59)), at(12, 0))
	assert.Equal(t, []string{"p1", "p2"}, s.Projects())
	assert.Equal(t, time.Hour, s.Duration("p1"))
	assert.Equal(t, 30*time.Minute, s.Duration("p2"))
	assert.Equal(t, 90*time.Minute, s.Total())
}

func TestPairOutsideIntervalIgnored(t *testing.T) {
	events := []event.Event{start(at(7, 0), "api"), stop(at(8, 0))}
	s := Summarize(events, interval(at(9, 0), at(17, 0)), at(18, 0))
	assert.True(t, s.Empty())
	assert.NotContains(t, s.Projects(), "api")
}

func TestEmptyIntervalYieldsEmptySummary(t *testing.T) {
	events := []event.Event{
		start(at(9, 0), "api"), stop(at(11, 0)),
		start(at(11, 30), "web"),
	}
	s := Summarize(events, interval(at(10, 0), at(10, 0)), at(12, 0))
	assert.True(t, s.Empty())
	assert.Zero(t, s.Total())
}

func TestZeroDurationPairContributesNothing(t *testing.T) {
	events := []event.Event{start(at(9, 0), "api"), stop(at(9, 0))}
	s := Summarize(events, interval(at(0, 0), at(23, 59)), at(12, 0))
	assert.True(t, s.Empty())
}

func TestSummarizeIsPure(t *testing.T) {
	events := []event.Event{
		start(at(9, 0), "api"), stop(at(10, 0)),
		start(at(10, 30), "web"),
	}
	iv := interval(at(0, 0), at(23, 59))
	now := at(11, 0)

	first := Summarize(events, iv, now)
	second := Summarize(events, iv, now)

	assert.Equal(t, first.Projects(), second.Projects())
	assert.Equal(t, first.Total(), second.Total())
	assert.Equal(t, event.Start, events[0].Kind)
	assert.Equal(t, "api", events[0].Project)
}
