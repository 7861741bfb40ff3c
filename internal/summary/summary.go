// Package summary folds the event log into per-project time totals for a
// queried interval.
package summary

import (
	"time"

	"worklog/internal/event"
	"worklog/internal/timeparse"
)

// ProjectSummary maps project names to accumulated durations. Projects
// iterate in first-seen order among those with a positive contribution, so
// rendering is deterministic.
type ProjectSummary struct {
	order  []string
	totals map[string]time.Duration
}

// Projects returns project names in first-seen order.
func (s *ProjectSummary) Projects() []string { return s.order }

// Duration returns the accumulated time for one project.
func (s *ProjectSummary) Duration(project string) time.Duration { return s.totals[project] }

// Total returns the accumulated time across all projects.
func (s *ProjectSummary) Total() time.Duration {
	var total time.Duration
	for _, d := range s.totals {
		total += d
	}
	return total
}

// Empty reports whether no project contributed any time.
func (s *ProjectSummary) Empty() bool { return len(s.order) == 0 }

func (s *ProjectSummary) add(project string, d time.Duration) {
	if _, seen := s.totals[project]; !seen {
		s.order = append(s.order, project)
	}
	s.totals[project] += d
}

// Summarize walks the event sequence as [start, stop) pairs, clips each pair
// to the interval and accumulates positive clipped durations per project. A
// trailing unmatched start counts as running until min(now, interval end).
//
// Summarize is a pure function of (events, interval, now): it never mutates
// its inputs and repeated calls yield identical results.
func Summarize(events []event.Event, iv timeparse.Interval, now time.Time) *ProjectSummary {
	s := &ProjectSummary{totals: make(map[string]time.Duration)}

	for i := 0; i < len(events); i++ {
		if events[i].Kind != event.Start {
			continue
		}
		start := events[i]

		end := now
		if i+1 < len(events) && events[i+1].Kind == event.Stop {
			end = events[i+1].Timestamp
			i++
		}

		clipStart := start.Timestamp
		if clipStart.Before(iv.Start) {
			clipStart = iv.Start
		}
		clipEnd := end
		if clipEnd.After(iv.End) {
			clipEnd = iv.End
		}
		if clipEnd.After(clipStart) {
			s.add(start.Project, clipEnd.Sub(clipStart))
		}
	}
	return s
}
