// Package tasks implements the client-side task list: the server-owned
// list, the write-then-resync operations, and the views derived from it.
package tasks

import (
	"fmt"

	"todoctl/internal/service"
)

// Filter selects which tasks are displayed. It is pure view state:
// never sent to the server, never persisted.
type Filter int

const (
	// FilterAll shows every task.
	FilterAll Filter = iota
	// FilterActive shows tasks not yet completed.
	FilterActive
	// FilterCompleted shows completed tasks.
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Next cycles to the following filter value.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ParseFilter parses a filter name as given on the command line.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("invalid filter: %s", s)
	}
}

// Apply returns the subset of tasks selected by the filter, preserving
// the original order.
func Apply(list []service.Task, f Filter) []service.Task {
	if f == FilterAll {
		return list
	}
	var out []service.Task
	for _, t := range list {
		switch f {
		case FilterActive:
			if !t.IsComplete {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.IsComplete {
				out = append(out, t)
			}
		}
	}
	return out
}

// Counts are the aggregates derived from a task list. They are
// recomputed from the list on demand, never stored.
type Counts struct {
	Total     int
	Completed int
	Remaining int
}

// Count tallies a task list.
func Count(list []service.Task) Counts {
	c := Counts{Total: len(list)}
	for _, t := range list {
		if t.IsComplete {
			c.Completed++
		}
	}
	c.Remaining = c.Total - c.Completed
	return c
}

// Progress returns the completion percentage in [0,100], and 0 for an
// empty list.
func (c Counts) Progress() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total) * 100
}
